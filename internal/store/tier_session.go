package store

import (
	"context"
	"fmt"
	"os"

	"github.com/MKhiriev/go-save-keeper/internal/logger"
	"github.com/MKhiriev/go-save-keeper/models"
)

// SessionTier is the ephemeral per-process tier: plain JSON documents in a
// directory that does not outlive the runtime.
type SessionTier struct {
	*FileTier
	owned bool
}

// NewSessionTier opens the session tier in dir. With an empty dir a fresh
// temporary directory is created and removed again by Close.
func NewSessionTier(dir string, retention int, log *logger.Logger) (*SessionTier, error) {
	owned := false
	if dir == "" {
		tmp, err := os.MkdirTemp("", "save-keeper-session-*")
		if err != nil {
			log.Err(err).Str("func", "NewSessionTier").Msg("error creating session directory")
			return nil, fmt.Errorf("%w: %w", ErrWritingFile, err)
		}
		dir, owned = tmp, true
	} else if err := os.MkdirAll(dir, 0o700); err != nil {
		log.Err(err).Str("func", "NewSessionTier").Str("dir", dir).Msg("error creating session directory")
		return nil, fmt.Errorf("%w: %w", ErrWritingFile, err)
	}

	return &SessionTier{
		FileTier: &FileTier{
			name:      models.TierSession,
			dir:       dir,
			codec:     plainCodec{},
			retention: retention,
			logger:    log,
		},
		owned: owned,
	}, nil
}

// Close drops the session: the temporary directory is removed, a configured
// directory is emptied.
func (s *SessionTier) Close() error {
	if s.owned {
		return os.RemoveAll(s.dir)
	}

	if !s.Clear(context.Background()) {
		return fmt.Errorf("%w: clearing %s", ErrWritingFile, s.dir)
	}
	return nil
}
