package delta

import (
	"strconv"
	"strings"

	"github.com/MKhiriev/go-save-keeper/models"
)

// Optimize drops test operations and keeps only the last write to each path.
// A path read as the source of a later move or copy counts as touched, so the
// write feeding that read survives. Insertions and removals at an array
// index shift their siblings and are never collapsed.
func Optimize(d models.Delta) models.Delta {
	out := d
	kept := make([]models.Operation, 0, len(d.Operations))

	// walk back to front: the first write seen for a path is the last one
	written := make(map[string]struct{}, len(d.Operations))
	for i := len(d.Operations) - 1; i >= 0; i-- {
		op := d.Operations[i]
		if op.Op == models.OpTest {
			continue
		}

		if parent, ok := shiftsArray(op); ok {
			for p := range written {
				if strings.HasPrefix(p, parent+"/") {
					delete(written, p)
				}
			}
			kept = append(kept, op)
			continue
		}

		if _, superseded := written[op.Path]; superseded {
			continue
		}
		written[op.Path] = struct{}{}

		if op.Op == models.OpMove || op.Op == models.OpCopy {
			delete(written, op.From)
		}

		kept = append(kept, op)
	}

	for i, j := 0, len(kept)-1; i < j; i, j = i+1, j-1 {
		kept[i], kept[j] = kept[j], kept[i]
	}

	out.Operations = kept
	out.ChangeCount = len(kept)
	return out
}

// shiftsArray reports whether op inserts into or removes from an array and
// returns the array's pointer.
func shiftsArray(op models.Operation) (string, bool) {
	if op.Op != models.OpAdd && op.Op != models.OpRemove {
		return "", false
	}

	cut := strings.LastIndexByte(op.Path, '/')
	if cut < 0 {
		return "", false
	}

	last := op.Path[cut+1:]
	if last == "-" {
		return op.Path[:cut], true
	}
	if _, err := strconv.Atoi(last); err != nil {
		return "", false
	}
	return op.Path[:cut], true
}
