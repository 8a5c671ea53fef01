package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/go-save-keeper/internal/config"
	"github.com/MKhiriev/go-save-keeper/internal/logger"
	"github.com/MKhiriev/go-save-keeper/internal/utils"
	"github.com/MKhiriev/go-save-keeper/models"
)

const (
	progressPath      = "/api/progress/"
	progressDeltaPath = "/api/progress/delta"
	progressMetaPath  = "/api/progress/meta"
)

type httpRemoteStore struct {
	client *utils.HTTPClient

	mu     sync.RWMutex
	token  string
	userID string

	logger *logger.Logger
}

// NewHTTPRemoteStore constructs an HTTP/REST implementation of [RemoteStore].
// It normalises and validates the base URL from adapterCfg.HTTPAddress,
// configures the underlying HTTP client with the resolved base URL and
// request timeout, and initialises the shared HMAC hasher pool used for
// transport integrity hashes.
//
// Returns an error if adapterCfg.HTTPAddress is empty or cannot be parsed as
// a valid URL.
func NewHTTPRemoteStore(adapterCfg config.ClientAdapter, appCfg config.ClientApp, logger *logger.Logger) (RemoteStore, error) {
	baseURL, err := normalizeBaseURL(adapterCfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}
	client := utils.NewHTTPClient(baseURL, adapterCfg.RequestTimeout)

	utils.InitHasherPool(appCfg.HashKey)

	return &httpRemoteStore{client: client, logger: logger}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// SetToken implements [RemoteStore]. It stores token (whitespace-trimmed) and
// remembers the subject of the token, which every userID argument must
// match. A token whose subject cannot be read disables the check.
func (h *httpRemoteStore) SetToken(token string) {
	token = strings.TrimSpace(token)
	userID, err := utils.ParseUserIDFromJWT(token)
	if err != nil {
		userID = ""
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = token
	h.userID = userID
}

// Token implements [RemoteStore].
func (h *httpRemoteStore) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

func (h *httpRemoteStore) checkUser(userID string) error {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if userID == "" {
		return models.ErrEmptyUserID
	}
	if h.userID != "" && h.userID != userID {
		return fmt.Errorf("%w: %q", ErrUserMismatch, userID)
	}
	return nil
}

// SaveProgress implements [RemoteStore]. It POSTs the snapshot together with
// its transport hash to POST /api/progress/.
func (h *httpRemoteStore) SaveProgress(ctx context.Context, snapshot models.Snapshot) (models.RemoteMeta, error) {
	if err := h.checkUser(snapshot.UserID); err != nil {
		return models.RemoteMeta{}, err
	}

	req := models.SaveProgressRequest{Snapshot: snapshot, Hash: computeTransportHash(snapshot)}

	var meta models.RemoteMeta
	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		SetResult(&meta).
		Post(progressPath)
	if err != nil {
		h.logger.Err(err).Str("func", "httpRemoteStore.SaveProgress").Str("user_id", snapshot.UserID).Msg("request failed")
		return models.RemoteMeta{}, mapTransportError("save progress request", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.RemoteMeta{}, err
	}

	return meta, nil
}

// SaveDelta implements [RemoteStore]. It POSTs the delta together with its
// transport hash to POST /api/progress/delta.
func (h *httpRemoteStore) SaveDelta(ctx context.Context, delta models.Delta) (models.RemoteMeta, error) {
	if err := h.checkUser(delta.UserID); err != nil {
		return models.RemoteMeta{}, err
	}

	req := models.SaveDeltaRequest{Delta: delta, Hash: computeTransportHash(delta)}

	var meta models.RemoteMeta
	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		SetResult(&meta).
		Post(progressDeltaPath)
	if err != nil {
		h.logger.Err(err).Str("func", "httpRemoteStore.SaveDelta").Str("user_id", delta.UserID).Msg("request failed")
		return models.RemoteMeta{}, mapTransportError("save delta request", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.RemoteMeta{}, err
	}

	return meta, nil
}

// LoadProgress implements [RemoteStore]. It GETs /api/progress/.
func (h *httpRemoteStore) LoadProgress(ctx context.Context, userID string) (models.Snapshot, error) {
	if err := h.checkUser(userID); err != nil {
		return models.Snapshot{}, err
	}

	resp, err := h.authedRequest(ctx).Get(progressPath)
	if err != nil {
		h.logger.Err(err).Str("func", "httpRemoteStore.LoadProgress").Str("user_id", userID).Msg("request failed")
		return models.Snapshot{}, mapTransportError("load progress request", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Snapshot{}, err
	}

	var snapshot models.Snapshot
	if err = json.Unmarshal(resp.Body(), &snapshot); err != nil {
		return models.Snapshot{}, fmt.Errorf("%w: progress: %w", ErrDecodingResponse, err)
	}
	if snapshot.UserID != userID {
		return models.Snapshot{}, fmt.Errorf("%w: server returned progress of %q", ErrUserMismatch, snapshot.UserID)
	}
	return snapshot, nil
}

// LoadMeta implements [RemoteStore]. It GETs /api/progress/meta.
func (h *httpRemoteStore) LoadMeta(ctx context.Context, userID string) (models.RemoteMeta, error) {
	if err := h.checkUser(userID); err != nil {
		return models.RemoteMeta{}, err
	}

	resp, err := h.authedRequest(ctx).Get(progressMetaPath)
	if err != nil {
		return models.RemoteMeta{}, mapTransportError("load meta request", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.RemoteMeta{}, err
	}

	var meta models.RemoteMeta
	if err = json.Unmarshal(resp.Body(), &meta); err != nil {
		return models.RemoteMeta{}, fmt.Errorf("%w: meta: %w", ErrDecodingResponse, err)
	}
	return meta, nil
}

// DeleteProgress implements [RemoteStore]. It sends DELETE /api/progress/.
func (h *httpRemoteStore) DeleteProgress(ctx context.Context, userID string) error {
	if err := h.checkUser(userID); err != nil {
		return err
	}

	resp, err := h.authedRequest(ctx).Delete(progressPath)
	if err != nil {
		h.logger.Err(err).Str("func", "httpRemoteStore.DeleteProgress").Str("user_id", userID).Msg("request failed")
		return mapTransportError("delete progress request", err)
	}
	return mapHTTPError(resp)
}

func (h *httpRemoteStore) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	return req
}

// computeTransportHash is the hex HMAC of the JSON form of v; the server
// recomputes it over the same field of the request body.
func computeTransportHash(v any) string {
	payload, err := json.Marshal(v)
	if err != nil {
		return ""
	}

	return utils.HashHex(payload)
}
