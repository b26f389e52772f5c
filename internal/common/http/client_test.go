package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Get_MergesParams(t *testing.T) {
	var rawQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rawQuery = r.URL.RawQuery
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	c := NewClient(5 * time.Second)
	resp, err := c.Get(context.Background(), server.URL+"/apps/1?x=1", map[string]string{"q": "a b&c"})
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, resp.IsSuccess())
	assert.Equal(t, "q=a+b%26c&x=1", rawQuery)
	assert.Equal(t, server.URL+"/apps/1?q=a+b%26c&x=1", resp.URL)

	var body map[string]bool
	require.NoError(t, resp.JSON(&body))
	assert.True(t, body["ok"])
}

func TestClient_Get_EmptyParamValue(t *testing.T) {
	var values []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		values = r.URL.Query()["q"]
	}))
	defer server.Close()

	_, err := NewClient(0).Get(context.Background(), server.URL, map[string]string{"q": ""})
	require.NoError(t, err)
	assert.Equal(t, []string{""}, values)
}

func TestClient_Get_NonSuccessIsNotAnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream down"))
	}))
	defer server.Close()

	resp, err := NewClientWithHTTP(server.Client()).Get(context.Background(), server.URL, nil)
	require.NoError(t, err)
	assert.False(t, resp.IsSuccess())
	assert.Equal(t, "upstream down", string(resp.Body))
}

func TestClient_Get_InvalidURL(t *testing.T) {
	_, err := NewClient(time.Second).Get(context.Background(), "http://[::1", nil)
	require.Error(t, err)
}
