package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"golang.org/x/exp/slog"

	"datasets/internal/app/client/config"
	"datasets/internal/domain/dataset"
)

const userAgent = "datasets-client/1.0"

// APIError is a non-2xx answer from the server.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server returned status %d", e.Status)
	}
	return fmt.Sprintf("%s (status %d)", e.Message, e.Status)
}

type Client struct {
	http    *http.Client
	baseURL string
	log     *slog.Logger
}

func New(cfg *config.Config, log *slog.Logger) *Client {
	return &Client{
		http:    &http.Client{Timeout: cfg.Timeout},
		baseURL: cfg.BaseURL(),
		log:     log.With("component", "http_client"),
	}
}

func (c *Client) Health(ctx context.Context) error {
	var out struct {
		Status string `json:"status"`
	}
	return c.do(ctx, http.MethodGet, "/health", nil, &out)
}

func (c *Client) List(ctx context.Context) ([]Summary, error) {
	var out []Summary
	if err := c.do(ctx, http.MethodGet, "/datasets", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Get(ctx context.Context, id int64) (*Dataset, error) {
	var out Dataset
	if err := c.do(ctx, http.MethodGet, datasetPath(id, ""), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Verify(ctx context.Context, id int64, password string) (string, error) {
	return c.message(ctx, datasetPath(id, "verify"), dataset.PasswordRequest{Password: password})
}

// AddSentence submits text with an optional value; an empty value means
// none.
func (c *Client) AddSentence(ctx context.Context, id int64, text, value string) (string, error) {
	req := dataset.AddSentenceRequest{NewText: text}
	if value != "" {
		req.NewValue = value
	}
	return c.message(ctx, datasetPath(id, "add"), req)
}

func (c *Client) Create(ctx context.Context, req CreateRequest) (int64, error) {
	var out createResponse
	if err := c.do(ctx, http.MethodPost, "/datasets/new", req, &out); err != nil {
		return 0, err
	}
	return out.ID, nil
}

func (c *Client) Delete(ctx context.Context, id int64, password string) (string, error) {
	return c.message(ctx, datasetPath(id, "delete"), dataset.PasswordRequest{Password: password})
}

func (c *Client) Edit(ctx context.Context, id int64, req EditRequest) (string, error) {
	return c.message(ctx, datasetPath(id, "edit"), req)
}

func (c *Client) message(ctx context.Context, path string, body any) (string, error) {
	var out messageResponse
	if err := c.do(ctx, http.MethodPost, path, body, &out); err != nil {
		return "", err
	}
	return out.Message, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, result any) error {
	var reqBody io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.log.Debug("sending request", "method", method, "url", req.URL.String())

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	c.log.Debug("received response", "status", resp.StatusCode, "request_id", resp.Header.Get("X-Request-ID"))

	if resp.StatusCode >= http.StatusBadRequest {
		apiErr := &APIError{Status: resp.StatusCode}
		var errResp struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(raw, &errResp) == nil {
			apiErr.Message = errResp.Error
		}
		return apiErr
	}

	if result != nil {
		if err := json.Unmarshal(raw, result); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

func datasetPath(id int64, action string) string {
	p := "/datasets/" + strconv.FormatInt(id, 10)
	if action != "" {
		p += "/" + action
	}
	return p
}
