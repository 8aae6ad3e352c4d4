package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/sxclient/internal/client/models"
	"github.com/dmitrijs2005/sxclient/internal/logging"
	"github.com/google/uuid"
)

const (
	APIKeyHeader    = "X-SX-API-KEY"
	RequestIDHeader = "X-Request-ID"

	// maxErrorBody bounds how much of a failed response is read for its message.
	maxErrorBody = 4 << 10
)

// envelope is the shape of every JSON response of the sx server.
type envelope struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type HTTPClient struct {
	baseURL string
	http    *http.Client
	creds   CredentialProvider
	log     logging.Logger
}

// NewHTTPClient builds a client for the sx server at baseURL. A zero timeout
// leaves requests unbounded.
func NewHTTPClient(baseURL string, creds CredentialProvider, timeout time.Duration, log logging.Logger) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		creds:   creds,
		log:     log,
	}
}

func (c *HTTPClient) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	token, err := c.creds.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("read token: %w", err)
	}
	if token == "" {
		return nil, ErrNoToken
	}

	req, err := http.NewRequestWithContext(ctx, method, models.JoinURL(c.baseURL, path), body)
	if err != nil {
		return nil, err
	}
	req.Header.Set(APIKeyHeader, token)
	req.Header.Set(RequestIDHeader, uuid.NewString())
	return req, nil
}

// do sends req and returns the response only when its status is 200.
// On failure the body is consumed and closed.
func (c *HTTPClient) do(req *http.Request) (*http.Response, error) {
	rid := req.Header.Get(RequestIDHeader)
	c.log.Debug(req.Context(), "sending request", "method", req.Method, "url", req.URL.String(), "requestId", rid)

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn(req.Context(), "request failed", "url", req.URL.String(), "requestId", rid, "err", err)
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	if resp.StatusCode == http.StatusOK {
		return resp, nil
	}
	defer resp.Body.Close()

	serr := &StatusError{Code: resp.StatusCode}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	var env envelope
	if json.Unmarshal(raw, &env) == nil && env.Message != "" {
		serr.Message = env.Message
	} else {
		serr.Message = strings.TrimSpace(string(raw))
	}

	c.log.Debug(req.Context(), "request rejected", "url", req.URL.String(), "requestId", rid, "status", resp.StatusCode, "message", serr.Message)
	return nil, serr
}

func (c *HTTPClient) TestAuth(ctx context.Context) error {
	req, err := c.newRequest(ctx, http.MethodGet, "/test-auth", nil)
	if err != nil {
		return err
	}

	resp, err := c.do(req)
	if err != nil {
		return err
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return resp.Body.Close()
}

func (c *HTTPClient) Export(ctx context.Context) (io.ReadCloser, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/export", nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}
	return resp.Body, nil
}

func (c *HTTPClient) ListFiles(ctx context.Context) ([]models.File, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/files", nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return nil, fmt.Errorf("%w: no data field", ErrMalformedResponse)
	}

	var files []models.File
	if err := json.Unmarshal(env.Data, &files); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}
	return files, nil
}

func (c *HTTPClient) Rename(ctx context.Context, filePath string, name string) error {
	body, err := json.Marshal(struct {
		Name string `json:"name"`
	}{Name: name})
	if err != nil {
		return err
	}

	req, err := c.newRequest(ctx, http.MethodPut, filePath, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.do(req)
	if err != nil {
		return err
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return resp.Body.Close()
}
