package api

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientGetSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/datasets", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Accept"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"data":{"id":"ds-1"}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	body, err := client.Get(context.Background(), "/datasets")
	require.NoError(t, err)
	assert.Contains(t, string(body), "ds-1")
}

func TestClientAuthToken(t *testing.T) {
	var gotAuth atomic.Value
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth.Store(r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	client.SetAuthToken("secret")

	_, err := client.Get(context.Background(), "/users/me")
	require.NoError(t, err)
	assert.Equal(t, "Bearer secret", gotAuth.Load())

	client.ClearAuthToken()
	_, err = client.Get(context.Background(), "/users/me")
	require.NoError(t, err)
	assert.Equal(t, "", gotAuth.Load())
}

func TestClientRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, WithRetries(1))
	body, err := client.Get(context.Background(), "/flaky")
	require.NoError(t, err)
	assert.Contains(t, string(body), "ok")
	assert.Equal(t, int32(2), calls.Load())
}

func TestClientDoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"dataset not found","code":"NOT_FOUND"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, WithRetries(3))
	_, err := client.Get(context.Background(), "/datasets/nope")
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())

	apiErr, ok := AsError(err)
	require.True(t, ok)
	assert.True(t, apiErr.IsClientError())
	assert.True(t, apiErr.IsNotFound())
	assert.False(t, apiErr.IsServerError())
	assert.Equal(t, "dataset not found", apiErr.Message)
	assert.Equal(t, "NOT_FOUND", apiErr.Code)
}

func TestClientErrorWithoutJSONBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte("nope"))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.Get(context.Background(), "/datasets")
	require.Error(t, err)

	apiErr, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, 403, apiErr.Status)
	assert.Equal(t, "HTTP 403: Forbidden", apiErr.Message)
}

func TestClientPostSendsBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		buf, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		assert.JSONEq(t, `{"rating":5}`, string(buf))

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.Post(context.Background(), "/ratings", map[string]int{"rating": 5})
	require.NoError(t, err)
}

func TestClientContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	client := NewClient(server.URL, WithRetries(0))
	_, err := client.Get(ctx, "/slow")
	require.Error(t, err)
}

func TestBuildQuery(t *testing.T) {
	tests := []struct {
		name   string
		params map[string]any
		want   []string
		empty  bool
	}{
		{name: "nil map", params: nil, empty: true},
		{name: "empty values dropped", params: map[string]any{"search": "", "page": 0}, empty: true},
		{
			name:   "mixed values",
			params: map[string]any{"search": "fraud", "page": 2, "tags": []string{"risk", "kpi"}},
			want:   []string{"search=fraud", "page=2", "tags=risk", "tags=kpi"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildQuery(tt.params)
			if tt.empty {
				assert.Empty(t, got)
				return
			}
			assert.True(t, strings.HasPrefix(got, "?"))
			for _, part := range tt.want {
				assert.Contains(t, got, part)
			}
		})
	}
}
