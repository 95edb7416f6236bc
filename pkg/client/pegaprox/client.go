// Package pegaprox provides the HTTP client for the PegaProx REST API.
//
// Every call funnels through Do, which normalizes all transport and HTTP
// outcomes into a (value, error) pair: tool handlers never see a raw
// transport fault or an unparsed error body.
package pegaprox

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// requestTimeout bounds every PegaProx API call.
const requestTimeout = 30 * time.Second

// Client is the PegaProx API client. Construct it once at server startup and
// share it across tool invocations; the underlying http.Client reuses
// connections between calls.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient creates a new PegaProx client for the given base URL and bearer token.
func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{Timeout: requestTimeout},
	}
}

// BaseURL returns the configured PegaProx endpoint.
func (c *Client) BaseURL() string {
	return c.baseURL
}

type requestOptions struct {
	query url.Values
	body  interface{}
}

// RequestOption customizes a single PegaProx request.
type RequestOption func(*requestOptions)

// WithQuery adds query parameters to the request.
func WithQuery(values url.Values) RequestOption {
	return func(o *requestOptions) {
		o.query = values
	}
}

// WithJSONBody attaches a JSON-encoded request body.
func WithJSONBody(body interface{}) RequestOption {
	return func(o *requestOptions) {
		o.body = body
	}
}

// Do issues one HTTP request against the PegaProx API and normalizes the
// outcome. On success the returned value is the decoded JSON body (an empty
// map for 204 or empty responses, the raw text when the body is not JSON).
// On failure the returned error carries a single human-readable reason.
func (c *Client) Do(ctx context.Context, method, path string, opts ...RequestOption) (interface{}, error) {
	options := &requestOptions{}
	for _, opt := range opts {
		opt(options)
	}

	requestURL := c.baseURL + path
	if len(options.query) > 0 {
		requestURL += "?" + options.query.Encode()
	}

	var bodyReader io.Reader
	if options.body != nil {
		payload, err := json.Marshal(options.body)
		if err != nil {
			return nil, fmt.Errorf("request error: %v", err)
		}
		bodyReader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, requestURL, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("request error: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, c.transportError(err, requestURL)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("request error: %v", err)
	}

	// A 503 with an offline marker means the target cluster is down, not the API.
	if resp.StatusCode == http.StatusServiceUnavailable {
		var body map[string]interface{}
		if json.Unmarshal(raw, &body) == nil {
			if offline, _ := body["offline"].(bool); offline {
				cluster := "unknown"
				if name, ok := body["cluster"].(string); ok && name != "" {
					cluster = name
				}
				return nil, fmt.Errorf("cluster '%s' is offline or unreachable", cluster)
			}
		}
		return nil, errors.New("PegaProx API returned 503: Service Unavailable")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("PegaProx API error %d: %s", resp.StatusCode, errorDetail(raw, resp.StatusCode))
	}

	if resp.StatusCode == http.StatusNoContent || len(raw) == 0 {
		return map[string]interface{}{}, nil
	}

	var data interface{}
	if err := json.Unmarshal(raw, &data); err != nil {
		// Not JSON: hand back the raw text rather than failing the call.
		return string(raw), nil
	}
	return data, nil
}

// transportError classifies a failed round trip: connection establishment
// first, then timeouts, then everything else.
func (c *Client) transportError(err error, requestURL string) error {
	var opErr *net.OpError
	if errors.As(err, &opErr) && opErr.Op == "dial" {
		return fmt.Errorf("cannot connect to PegaProx at %s", c.baseURL)
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("request to PegaProx timed out (%s)", requestURL)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("request to PegaProx timed out (%s)", requestURL)
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		err = urlErr.Err
	}
	return fmt.Errorf("request error: %v", err)
}

// errorDetail extracts the most specific failure description from an error
// response body: a "message" field, then an "error" field, then the raw body,
// then the standard status text.
func errorDetail(raw []byte, statusCode int) string {
	var body map[string]interface{}
	if json.Unmarshal(raw, &body) == nil {
		if msg, ok := body["message"].(string); ok && msg != "" {
			return msg
		}
		if msg, ok := body["error"].(string); ok && msg != "" {
			return msg
		}
	}
	if len(raw) > 0 {
		return string(raw)
	}
	return http.StatusText(statusCode)
}

// Get issues a GET request.
func (c *Client) Get(ctx context.Context, path string, opts ...RequestOption) (interface{}, error) {
	return c.Do(ctx, http.MethodGet, path, opts...)
}

// Post issues a POST request.
func (c *Client) Post(ctx context.Context, path string, opts ...RequestOption) (interface{}, error) {
	return c.Do(ctx, http.MethodPost, path, opts...)
}

// Put issues a PUT request.
func (c *Client) Put(ctx context.Context, path string, opts ...RequestOption) (interface{}, error) {
	return c.Do(ctx, http.MethodPut, path, opts...)
}

// Delete issues a DELETE request.
func (c *Client) Delete(ctx context.Context, path string, opts ...RequestOption) (interface{}, error) {
	return c.Do(ctx, http.MethodDelete, path, opts...)
}
