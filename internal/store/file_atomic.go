package store

import (
	"fmt"
	"os"
	"path/filepath"
)

// writeFileAtomic replaces path with data so that readers see either the old
// or the new content: the bytes go to a temporary file in the same
// directory, are synced and then renamed over path.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)

	tmpFile, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("%w: create temp file: %w", ErrWritingFile, err)
	}
	tmpPath := tmpFile.Name()

	cleanupTmp := true
	defer func() {
		if cleanupTmp {
			tmpFile.Close()
			os.Remove(tmpPath)
		}
	}()

	if _, err = tmpFile.Write(data); err != nil {
		return fmt.Errorf("%w: write: %w", ErrWritingFile, err)
	}
	if err = tmpFile.Sync(); err != nil {
		return fmt.Errorf("%w: sync: %w", ErrWritingFile, err)
	}
	if err = tmpFile.Close(); err != nil {
		return fmt.Errorf("%w: close: %w", ErrWritingFile, err)
	}
	if err = os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("%w: atomic rename: %w", ErrWritingFile, err)
	}
	cleanupTmp = false

	// best effort: the rename is already visible
	_ = syncDir(dir)
	return nil
}

func syncDir(dir string) error {
	d, err := os.Open(dir)
	if err != nil {
		return err
	}
	defer d.Close()
	return d.Sync()
}
