// Package cgmcloud provides a client for the CGM Cloud data service, the
// REST API that owns all persistence for the station. The back office holds
// no database: every read and write in port.DataStore goes through here.
package cgmcloud

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/coder-muller/radio-cultura-go/internal/domain"
	"github.com/coder-muller/radio-cultura-go/internal/infra/resilience"

	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("cgmcloud")

// Client wraps HTTP calls to the CGM Cloud REST API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	cb         *gobreaker.CircuitBreaker
	cfg        resilience.Config
	logger     *zap.Logger
}

// NewClient creates a CGM Cloud client.
func NewClient(httpClient *http.Client, baseURL string, cb *gobreaker.CircuitBreaker, cfg resilience.Config, logger *zap.Logger) *Client {
	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		cb:         cb,
		cfg:        cfg,
		logger:     logger,
	}
}

// doGet executes a GET behind the circuit breaker, retrying with backoff.
// GETs are idempotent, so they are the only calls ever replayed.
// A 404 comes back as a nil body with no error.
func (c *Client) doGet(ctx context.Context, path string) ([]byte, error) {
	var body []byte
	_, err := c.cb.Execute(func() (any, error) {
		return nil, resilience.RetryWithBackoff(ctx, c.cfg, func() error {
			var err error
			body, err = c.send(ctx, http.MethodGet, path, nil)
			return err
		})
	})
	return body, err
}

// doSend executes a mutation (POST or PUT) exactly once. The circuit
// breaker still guards it, but a failed write is never replayed: the
// caller decides whether to surface or tally the failure.
func (c *Client) doSend(ctx context.Context, method, path string, payload any) ([]byte, error) {
	var reqBody []byte
	if payload != nil {
		var err error
		reqBody, err = json.Marshal(payload)
		if err != nil {
			return nil, err
		}
	}

	var body []byte
	_, err := c.cb.Execute(func() (any, error) {
		var err error
		body, err = c.send(ctx, method, path, reqBody)
		return nil, err
	})
	return body, err
}

// doDelete removes a record. Like other mutations it runs at most once.
func (c *Client) doDelete(ctx context.Context, path string) error {
	_, err := c.cb.Execute(func() (any, error) {
		_, err := c.send(ctx, http.MethodDelete, path, nil)
		return nil, err
	})
	return err
}

func (c *Client) send(ctx context.Context, method, path string, payload []byte) ([]byte, error) {
	url := c.baseURL + path

	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		c.logger.Error("cgmcloud: failed to create request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err),
		)
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("cgmcloud: request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err),
		)
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.Error("cgmcloud: failed to read response body",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err),
		)
		return nil, err
	}

	if resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusNoContent {
		return nil, nil // no data
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Warn("cgmcloud: non-2xx response",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.String("body", string(body)),
		)
		return nil, fmt.Errorf("cgmcloud %s %s returned %d: %s", method, path, resp.StatusCode, string(body))
	}

	c.logger.Debug("cgmcloud: request OK",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
	)
	return body, nil
}

// getList fetches and decodes a whole collection. A missing or empty body
// decodes to an empty slice, never nil errors for "no rows yet".
func getList[T any](ctx context.Context, c *Client, entity, path string) ([]T, error) {
	body, err := c.doGet(ctx, path)
	if err != nil {
		return nil, &domain.ErrExternalService{Service: "cgmcloud/" + entity, Err: err}
	}
	if body == nil || string(body) == "[]" {
		return []T{}, nil
	}

	var rows []T
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, &domain.ErrExternalService{
			Service: "cgmcloud/" + entity,
			Err:     fmt.Errorf("failed to decode %s: %w", entity, err),
		}
	}
	return rows, nil
}

// createRecord posts a new record and decodes the stored representation.
func createRecord[T any](ctx context.Context, c *Client, entity, path string, record *T) (*T, error) {
	body, err := c.doSend(ctx, http.MethodPost, path, record)
	if err != nil {
		return nil, &domain.ErrExternalService{Service: "cgmcloud/" + entity, Err: err}
	}
	return decodeRecord(entity, body, record)
}

// updateRecord puts a full record and decodes the stored representation.
func updateRecord[T any](ctx context.Context, c *Client, entity, path string, record *T) (*T, error) {
	body, err := c.doSend(ctx, http.MethodPut, path, record)
	if err != nil {
		return nil, &domain.ErrExternalService{Service: "cgmcloud/" + entity, Err: err}
	}
	return decodeRecord(entity, body, record)
}

// decodeRecord parses a mutation response. Some endpoints answer with the
// stored row, others with an empty body; fall back to what was sent.
func decodeRecord[T any](entity string, body []byte, sent *T) (*T, error) {
	if len(body) == 0 {
		return sent, nil
	}
	var stored T
	if err := json.Unmarshal(body, &stored); err != nil {
		return nil, &domain.ErrExternalService{
			Service: "cgmcloud/" + entity,
			Err:     fmt.Errorf("failed to decode %s: %w", entity, err),
		}
	}
	return &stored, nil
}
