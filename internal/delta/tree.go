package delta

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-save-keeper/models"
)

// node is a decoded JSON value: map[string]any, []any, json.Number, string,
// bool or nil. Numbers stay json.Number so values round-trip exactly.

func decodeValue(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

func toTree(s models.Snapshot) (map[string]any, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncodingSnapshot, err)
	}

	v, err := decodeValue(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecodingSnapshot, err)
	}
	return v.(map[string]any), nil
}

// parsePointer splits an RFC 6901 pointer into unescaped reference tokens.
// The root pointer "" is rejected: a delta never replaces a whole snapshot.
func parsePointer(p string) ([]string, error) {
	if len(p) < 2 || p[0] != '/' {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPointer, p)
	}

	tokens := strings.Split(p[1:], "/")
	for i, t := range tokens {
		tokens[i] = strings.NewReplacer("~1", "/", "~0", "~").Replace(t)
	}
	return tokens, nil
}

func escapeToken(t string) string {
	return strings.NewReplacer("~", "~0", "/", "~1").Replace(t)
}

func joinPointer(parent, token string) string {
	return parent + "/" + escapeToken(token)
}
