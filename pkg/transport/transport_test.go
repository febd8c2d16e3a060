package transport

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scoresync/pkg/logger"
)

func TestDoSetsJSONContentType(t *testing.T) {
	var gotContentType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	c := New(Config{Timeout: time.Second}, logger.Nop())

	resp, err := c.Do(context.Background(), "POST", srv.URL, []byte(`{}`))
	require.NoError(t, err)
	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.True(t, resp.OK())
	assert.Equal(t, []byte(`{"ok":true}`), resp.Body)
}

func TestDoNoBodyNoContentType(t *testing.T) {
	var gotContentType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := New(Config{Timeout: time.Second}, logger.Nop())

	_, err := c.Do(context.Background(), "GET", srv.URL, nil)
	require.NoError(t, err)
	assert.Empty(t, gotContentType)
}

func TestDoSingleAttempt(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := New(Config{Timeout: time.Second}, logger.Nop())

	resp, err := c.Do(context.Background(), "GET", srv.URL, nil)
	require.NoError(t, err)
	assert.False(t, resp.OK())
	assert.Equal(t, int32(1), calls.Load(), "a non-2xx response must not be retried")
}

func TestDoTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	c := New(Config{Timeout: time.Second}, logger.Nop())

	resp, err := c.Do(context.Background(), "GET", srv.URL, nil)
	assert.Error(t, err)
	assert.Nil(t, resp)
}

func TestDoTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	c := New(Config{Timeout: 20 * time.Millisecond}, logger.Nop())

	_, err := c.Do(context.Background(), "GET", srv.URL, nil)
	assert.Error(t, err)
}

func TestResponseOKRange(t *testing.T) {
	assert.True(t, (&Response{StatusCode: 200}).OK())
	assert.True(t, (&Response{StatusCode: 204}).OK())
	assert.True(t, (&Response{StatusCode: 299}).OK())
	assert.False(t, (&Response{StatusCode: 300}).OK())
	assert.False(t, (&Response{StatusCode: 404}).OK())
	assert.False(t, (&Response{StatusCode: 199}).OK())
}
