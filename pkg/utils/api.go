package utils

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// HTTPError is returned for any non-2xx response.
type HTTPError struct {
	StatusCode int
	Message    string
	Body       []byte
}

func (e *HTTPError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("unexpected status %d", e.StatusCode)
}

type API struct {
	client  *http.Client
	baseURL string
	headers http.Header
}

func NewAPI(baseURL string) *API {
	return &API{
		client:  http.DefaultClient,
		baseURL: strings.TrimRight(baseURL, "/"),
		headers: http.Header{},
	}
}

// WithClient swaps the underlying HTTP client.
func (a *API) WithClient(c *http.Client) *API {
	a.client = c
	return a
}

// SetHeader sets a header sent on every request.
func (a *API) SetHeader(key, value string) {
	a.headers.Set(key, value)
}

func (a *API) Get(ctx context.Context, path string, params url.Values, v any) error {
	return a.Do(ctx, http.MethodGet, path, params, nil, nil, v)
}

func (a *API) Post(ctx context.Context, path string, params url.Values, headers http.Header, body, v any) error {
	return a.Do(ctx, http.MethodPost, path, params, headers, body, v)
}

func (a *API) Patch(ctx context.Context, path string, params url.Values, headers http.Header, body, v any) error {
	return a.Do(ctx, http.MethodPatch, path, params, headers, body, v)
}

func (a *API) Delete(ctx context.Context, path string, params url.Values) error {
	return a.Do(ctx, http.MethodDelete, path, params, nil, nil, nil)
}

// Do sends a JSON request and decodes the JSON response into v when v is
// non-nil.
func (a *API) Do(ctx context.Context, method, path string, params url.Values, headers http.Header, body, v any) error {
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, fmt.Sprintf("%s%s", a.baseURL, path), reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	for key, values := range a.headers {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}
	for key, values := range headers {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		return &HTTPError{StatusCode: resp.StatusCode, Message: errorMessage(raw), Body: raw}
	}

	if v == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(v)
}

// errorMessage pulls a human readable message out of a JSON error body.
func errorMessage(raw []byte) string {
	var body struct {
		Message          string `json:"message"`
		Error            string `json:"error"`
		ErrorDescription string `json:"error_description"`
		Msg              string `json:"msg"`
	}
	if err := json.Unmarshal(raw, &body); err == nil {
		for _, m := range []string{body.Message, body.ErrorDescription, body.Msg, body.Error} {
			if m != "" {
				return m
			}
		}
	}
	return strings.TrimSpace(string(raw))
}
