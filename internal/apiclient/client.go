package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-faster/errors"
)

// Client talks to the storefront REST API. It performs no retries.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client for the API rooted at baseURL
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Credentials are the caller's auth headers, relayed to the API unchanged
type Credentials struct {
	Authorization string
	Cookie        string
}

type credentialsKey struct{}

// WithCredentials attaches credentials to ctx for every request made with it
func WithCredentials(ctx context.Context, creds Credentials) context.Context {
	return context.WithValue(ctx, credentialsKey{}, creds)
}

// CredentialsFrom returns the credentials attached to ctx, if any
func CredentialsFrom(ctx context.Context) (Credentials, bool) {
	creds, ok := ctx.Value(credentialsKey{}).(Credentials)
	return creds, ok
}

// Fetch issues GET path?query and normalizes the list body
func (c *Client) Fetch(ctx context.Context, path string, query url.Values) (Payload, error) {
	body, err := c.do(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return Payload{}, err
	}

	payload, err := ParsePayload(body)
	if err != nil {
		return Payload{}, &TransportError{Err: err}
	}
	return payload, nil
}

// FetchList issues GET path?query and decodes the normalized elements into T
func FetchList[T any](ctx context.Context, c *Client, path string, query url.Values) ([]T, error) {
	payload, err := c.Fetch(ctx, path, query)
	if err != nil {
		return nil, err
	}

	items, err := Decode[T](payload)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	return items, nil
}

// FetchOne issues GET path and decodes the body into out
func (c *Client) FetchOne(ctx context.Context, path string, out any) error {
	body, err := c.do(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, out); err != nil {
		return &TransportError{Err: errors.Wrap(err, "decode response")}
	}
	return nil
}

// Mutate sends body as JSON with POST, PUT or PATCH. When out is non-nil
// the response body is decoded into it, and an empty body is a transport
// failure.
func (c *Client) Mutate(ctx context.Context, method, path string, body, out any) error {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch:
	default:
		return errors.Wrapf(ErrMethodNotAllowed, "method %s", method)
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return errors.Wrap(err, "encode request body")
	}

	respBody, err := c.do(ctx, method, path, nil, payload)
	if err != nil {
		return err
	}

	if out == nil {
		return nil
	}
	if len(bytes.TrimSpace(respBody)) == 0 {
		return &TransportError{Err: errors.New("empty response body")}
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return &TransportError{Err: errors.Wrap(err, "decode response")}
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body []byte) ([]byte, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, &TransportError{Err: errors.Wrap(err, "create request")}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-store")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if creds, ok := CredentialsFrom(ctx); ok {
		if creds.Authorization != "" {
			req.Header.Set("Authorization", creds.Authorization)
		}
		if creds.Cookie != "" {
			req.Header.Set("Cookie", creds.Cookie)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Err: errors.Wrapf(err, "%s %s", method, path)}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &StatusError{Code: resp.StatusCode}
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Err: errors.Wrap(err, "read response body")}
	}
	return respBody, nil
}
