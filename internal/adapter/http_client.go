package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sethvargo/go-retry"

	"github.com/dkrylov/go-data-vault/internal/logger"
	"github.com/dkrylov/go-data-vault/models"
)

// HTTPClientConfig configures the REST storage backend client.
type HTTPClientConfig struct {
	BaseURL string
	Token   string
	Timeout time.Duration

	// RetryAttempts is the number of extra attempts for idempotent reads
	// (Get/List/PublicGet). Writes are never retried here; write retry
	// policy belongs to the caller.
	RetryAttempts uint64
	RetryDelay    time.Duration
}

type httpStorageBackend struct {
	client        *resty.Client
	log           *logger.Logger
	retryAttempts uint64
	retryDelay    time.Duration

	mu    sync.RWMutex
	token string
}

// NewHTTPStorageBackend constructs a [StorageBackend] speaking the reference
// backend's REST dialect: space-scoped object CRUD, prefix list, and the
// public anyone-can-read area.
func NewHTTPStorageBackend(cfg HTTPClientConfig, log *logger.Logger) StorageBackend {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://localhost:8080"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = 500 * time.Millisecond
	}

	cli := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout)

	return &httpStorageBackend{
		client:        cli,
		log:           log,
		retryAttempts: cfg.RetryAttempts,
		retryDelay:    cfg.RetryDelay,
		token:         strings.TrimSpace(cfg.Token),
	}
}

// SetToken replaces the storage capability used for subsequent calls.
func (h *httpStorageBackend) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

func (h *httpStorageBackend) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

func (h *httpStorageBackend) Put(ctx context.Context, space, path string, obj models.StoredObject) error {
	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(obj).
		Put(objectURL(space, path))
	if err != nil {
		return fmt.Errorf("put %s: %w", path, err)
	}

	return mapHTTPError(resp)
}

func (h *httpStorageBackend) Get(ctx context.Context, space, path string) (models.StoredObject, error) {
	var obj models.StoredObject

	err := h.withReadRetry(ctx, func(ctx context.Context) error {
		resp, err := h.authedRequest(ctx).Get(objectURL(space, path))
		if err != nil {
			return retry.RetryableError(fmt.Errorf("get %s: %w", path, err))
		}
		if err = mapHTTPError(resp); err != nil {
			return err
		}

		if err = json.Unmarshal(resp.Body(), &obj); err != nil {
			return fmt.Errorf("decode object %s: %w", path, err)
		}
		return nil
	})
	if err != nil {
		return models.StoredObject{}, err
	}

	return obj, nil
}

func (h *httpStorageBackend) Delete(ctx context.Context, space, path string) error {
	resp, err := h.authedRequest(ctx).Delete(objectURL(space, path))
	if err != nil {
		return fmt.Errorf("delete %s: %w", path, err)
	}

	return mapHTTPError(resp)
}

func (h *httpStorageBackend) List(ctx context.Context, space, prefix string) ([]string, error) {
	var paths []string

	err := h.withReadRetry(ctx, func(ctx context.Context) error {
		resp, err := h.authedRequest(ctx).
			SetQueryParam("prefix", prefix).
			Get("/api/spaces/" + url.PathEscape(space) + "/objects")
		if err != nil {
			return retry.RetryableError(fmt.Errorf("list %s: %w", prefix, err))
		}
		if err = mapHTTPError(resp); err != nil {
			return err
		}

		if err = json.Unmarshal(resp.Body(), &paths); err != nil {
			return fmt.Errorf("decode list response: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return paths, nil
}

func (h *httpStorageBackend) PublicPut(ctx context.Context, address, path string, data []byte) error {
	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/octet-stream").
		SetBody(data).
		Put(publicURL(address, path))
	if err != nil {
		return fmt.Errorf("public put %s: %w", path, err)
	}

	return mapHTTPError(resp)
}

func (h *httpStorageBackend) PublicGet(ctx context.Context, address, path string) ([]byte, error) {
	var data []byte

	err := h.withReadRetry(ctx, func(ctx context.Context) error {
		// Public reads carry no capability at all.
		resp, err := h.client.R().SetContext(ctx).Get(publicURL(address, path))
		if err != nil {
			return retry.RetryableError(fmt.Errorf("public get %s: %w", path, err))
		}
		if err = mapHTTPError(resp); err != nil {
			return err
		}

		data = append([]byte(nil), resp.Body()...)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return data, nil
}

func (h *httpStorageBackend) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	return req
}

func (h *httpStorageBackend) withReadRetry(ctx context.Context, op func(ctx context.Context) error) error {
	backoff := retry.WithMaxRetries(h.retryAttempts, retry.NewConstant(h.retryDelay))
	return retry.Do(ctx, backoff, op)
}

func objectURL(space, path string) string {
	return "/api/spaces/" + url.PathEscape(space) + "/objects/" + escapeObjectPath(path)
}

func publicURL(address, path string) string {
	return "/api/public/" + url.PathEscape(address) + "/" + escapeObjectPath(path)
}

// escapeObjectPath escapes each segment while preserving the separators the
// backend routes on.
func escapeObjectPath(path string) string {
	segments := strings.Split(path, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return strings.Join(segments, "/")
}

func mapHTTPError(resp *resty.Response) error {
	code := resp.StatusCode()
	if code >= http.StatusOK && code < http.StatusMultipleChoices {
		return nil
	}

	switch code {
	case http.StatusNotFound:
		return ErrObjectNotFound
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrUnauthorized
	}

	body := strings.TrimSpace(string(resp.Body()))
	if body == "" {
		body = http.StatusText(code)
	}

	err := fmt.Errorf("http %d: %s", code, body)
	if code >= http.StatusInternalServerError {
		return retry.RetryableError(err)
	}
	return err
}
