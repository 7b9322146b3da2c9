package utils

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPI_GetDecodesAndSendsHeaders(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/things", r.URL.Path)
		assert.Equal(t, "1", r.URL.Query().Get("page"))
		assert.Equal(t, "secret", r.Header.Get("apikey"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		io.WriteString(w, `{"name":"ok"}`)
	}))
	defer srv.Close()

	api := NewAPI(srv.URL + "/")
	api.SetHeader("apikey", "secret")

	var out struct {
		Name string `json:"name"`
	}
	err := api.Get(context.Background(), "/things", url.Values{"page": {"1"}}, &out)
	require.NoError(t, err)
	assert.Equal(t, "ok", out.Name)
}

func TestAPI_ErrorStatus(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"postgrest message", `{"message":"row level security"}`, "row level security"},
		{"auth error description", `{"error":"invalid_grant","error_description":"bad key"}`, "bad key"},
		{"plain text", "gateway timeout\n", "gateway timeout"},
		{"empty body", "", "unexpected status 502"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadGateway)
				io.WriteString(w, tt.body)
			}))
			defer srv.Close()

			err := NewAPI(srv.URL).Get(context.Background(), "/", nil, nil)
			require.Error(t, err)
			assert.Equal(t, tt.want, err.Error())

			var httpErr *HTTPError
			require.True(t, errors.As(err, &httpErr))
			assert.Equal(t, http.StatusBadGateway, httpErr.StatusCode)
		})
	}
}

func TestAPI_PostSendsJSONBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"title":"Monster"}`, string(body))
		assert.Equal(t, "return=representation", r.Header.Get("Prefer"))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	headers := http.Header{}
	headers.Set("Prefer", "return=representation")

	var out map[string]any
	err := NewAPI(srv.URL).Post(context.Background(), "/", nil, headers, map[string]string{"title": "Monster"}, &out)
	require.NoError(t, err)
	assert.Nil(t, out)
}
