package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"gomelclient/pkg/logger"
)

// Client is the stateless adapter over the rental backend's REST contract.
// It holds no tokens; the caller passes the bearer per call so user and
// admin credentials are never mixed.
type Client struct {
	baseURL string
	http    *http.Client
	log     logger.ILogger
}

func New(baseURL string, log logger.ILogger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout:   5 * time.Second,
					KeepAlive: 30 * time.Second,
				}).DialContext,
				MaxIdleConns:        100,
				MaxConnsPerHost:     100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		log: log,
	}
}

func (c *Client) BaseURL() string { return c.baseURL }

// Health probes the backend liveness endpoint. The caller bounds it with a
// short context deadline; a reachable backend answers 200.
func (c *Client) Health(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return false
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)
	return resp.StatusCode == http.StatusOK
}

func (c *Client) do(ctx context.Context, method, path, bearer string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("X-Request-ID", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return c.asError(resp)
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

// asError folds a non-success response into a readable error. The backend
// answers JSON {"error": ...} on its own failures, but SPA fallbacks and
// proxies answer HTML, so the body is sniffed by content type first.
func (c *Client) asError(resp *http.Response) *Error {
	apiErr := &Error{Status: resp.StatusCode, Message: resp.Status}

	ct := resp.Header.Get("Content-Type")
	if strings.Contains(ct, "application/json") {
		var body struct {
			Error string `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Error != "" {
			apiErr.Message = body.Error
		}
		return apiErr
	}

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 120))
	if snippet := strings.TrimSpace(string(raw)); snippet != "" {
		apiErr.Message = snippet
	}
	return apiErr
}
