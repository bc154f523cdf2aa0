package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/go-pass-vault/internal/config"
	"github.com/MKhiriev/go-pass-vault/internal/logger"
	"github.com/MKhiriev/go-pass-vault/internal/utils"
	"github.com/MKhiriev/go-pass-vault/models"
)

type httpServerAdapter struct {
	client *utils.HTTPClient

	mu    sync.RWMutex
	token string
}

// NewHTTPServerAdapter constructs the REST implementation of [ServerAdapter].
// A base URL without scheme gets "http://". The token of cfg is set right
// away.
func NewHTTPServerAdapter(cfg config.Adapter, logger *logger.Logger) (ServerAdapter, error) {
	baseURL, err := normalizeBaseURL(cfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidAddress, err)
	}

	a := &httpServerAdapter{client: utils.NewHTTPClient(baseURL, cfg.RequestTimeout)}
	a.SetToken(cfg.Token)

	logger.Debug().Str("base_url", baseURL).Bool("token", a.Token() != "").Msg("server adapter created")

	return a, nil
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

func (h *httpServerAdapter) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

func (h *httpServerAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

func (h *httpServerAdapter) Version(ctx context.Context) (string, error) {
	resp, err := h.client.R().SetContext(ctx).Get("/api/version")
	if err != nil {
		return "", fmt.Errorf("version request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}
	return string(resp.Body()), nil
}

func (h *httpServerAdapter) ListItems(ctx context.Context, kind models.ItemKind) ([]models.PlainItem, error) {
	var list models.ItemListResponse

	resp, err := h.authedRequest(ctx).
		SetPathParam("kind", string(kind)).
		SetResult(&list).
		Get("/api/items/{kind}")
	if err != nil {
		return nil, fmt.Errorf("list items request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return list.Items, nil
}

func (h *httpServerAdapter) GetItem(ctx context.Context, kind models.ItemKind, id int64) (models.PlainItem, error) {
	var item models.PlainItem

	resp, err := h.itemRequest(ctx, kind, id).
		SetResult(&item).
		Get("/api/items/{kind}/{id}")
	if err != nil {
		return models.PlainItem{}, fmt.Errorf("get item request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.PlainItem{}, err
	}

	return item, nil
}

func (h *httpServerAdapter) CreateItem(ctx context.Context, kind models.ItemKind, fields map[string]string) (models.PlainItem, error) {
	var item models.PlainItem

	resp, err := h.authedRequest(ctx).
		SetPathParam("kind", string(kind)).
		SetHeader("Content-Type", "application/json").
		SetBody(models.ItemRequest{Fields: fields}).
		SetResult(&item).
		Post("/api/items/{kind}")
	if err != nil {
		return models.PlainItem{}, fmt.Errorf("create item request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.PlainItem{}, err
	}

	return item, nil
}

func (h *httpServerAdapter) ReplaceItem(ctx context.Context, kind models.ItemKind, id int64, fields map[string]string) (models.PlainItem, error) {
	var item models.PlainItem

	resp, err := h.itemRequest(ctx, kind, id).
		SetHeader("Content-Type", "application/json").
		SetBody(models.ItemRequest{Fields: fields}).
		SetResult(&item).
		Put("/api/items/{kind}/{id}")
	if err != nil {
		return models.PlainItem{}, fmt.Errorf("replace item request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.PlainItem{}, err
	}

	return item, nil
}

func (h *httpServerAdapter) DeleteItem(ctx context.Context, kind models.ItemKind, id int64) error {
	resp, err := h.itemRequest(ctx, kind, id).Delete("/api/items/{kind}/{id}")
	if err != nil {
		return fmt.Errorf("delete item request: %w", err)
	}

	return mapHTTPError(resp)
}

func (h *httpServerAdapter) MintVaultKey(ctx context.Context) error {
	resp, err := h.authedRequest(ctx).Post("/api/vault/key")
	if err != nil {
		return fmt.Errorf("mint vault key request: %w", err)
	}

	return mapHTTPError(resp)
}

func (h *httpServerAdapter) RotateVaultKey(ctx context.Context) error {
	resp, err := h.authedRequest(ctx).Post("/api/vault/key/rotate")
	if err != nil {
		return fmt.Errorf("rotate vault key request: %w", err)
	}

	return mapHTTPError(resp)
}

func (h *httpServerAdapter) SealSnapshot(ctx context.Context) (models.SnapshotResponse, error) {
	var sealed models.SnapshotResponse

	resp, err := h.authedRequest(ctx).SetResult(&sealed).Post("/api/vault/snapshot")
	if err != nil {
		return models.SnapshotResponse{}, fmt.Errorf("seal snapshot request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.SnapshotResponse{}, err
	}

	return sealed, nil
}

func (h *httpServerAdapter) OpenSnapshot(ctx context.Context) (models.VaultSnapshot, error) {
	var snapshot models.VaultSnapshot

	resp, err := h.authedRequest(ctx).SetResult(&snapshot).Get("/api/vault/snapshot")
	if err != nil {
		return models.VaultSnapshot{}, fmt.Errorf("open snapshot request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.VaultSnapshot{}, err
	}

	return snapshot, nil
}

func (h *httpServerAdapter) ImportSnapshot(ctx context.Context) (int, error) {
	var imported models.ImportResponse

	resp, err := h.authedRequest(ctx).SetResult(&imported).Post("/api/vault/snapshot/import")
	if err != nil {
		return 0, fmt.Errorf("import snapshot request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return 0, err
	}

	return imported.Imported, nil
}

func (h *httpServerAdapter) itemRequest(ctx context.Context, kind models.ItemKind, id int64) *resty.Request {
	return h.authedRequest(ctx).SetPathParams(map[string]string{
		"kind": string(kind),
		"id":   strconv.FormatInt(id, 10),
	})
}

func (h *httpServerAdapter) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetAuthToken(token)
	}
	return req
}
