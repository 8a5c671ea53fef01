package models

// SaveProgressRequest is the body of POST /api/progress/.
type SaveProgressRequest struct {
	// Snapshot is the full progress to store.
	Snapshot Snapshot `json:"snapshot"`

	// Hash is the hex HMAC-SHA256 of the JSON-encoded Snapshot, used as
	// a transport integrity check.
	Hash string `json:"hash"`
}

// SaveDeltaRequest is the body of POST /api/progress/delta.
// The server replies to both save endpoints with a [RemoteMeta].
type SaveDeltaRequest struct {
	Delta Delta  `json:"delta"`
	Hash  string `json:"hash"`
}

// ErrorResponse is the JSON error body of the progress API.
type ErrorResponse struct {
	Error string    `json:"error"`
	Kind  ErrorKind `json:"kind,omitempty"`
}
