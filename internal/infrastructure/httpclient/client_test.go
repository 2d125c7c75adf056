package httpclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient() *Client {
	return New(5*time.Second, 3, time.Millisecond, "boundary-importer-test/1.0")
}

func TestClient_PostText(t *testing.T) {
	t.Run("successful request", func(t *testing.T) {
		var calls int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&calls, 1)
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "text/plain", r.Header.Get("Content-Type"))
			assert.Equal(t, "boundary-importer-test/1.0", r.Header.Get("User-Agent"))
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"elements":[{"id":42}]}`))
		}))
		defer server.Close()

		var out struct {
			Elements []struct {
				ID int64 `json:"id"`
			} `json:"elements"`
		}
		err := newTestClient().PostText(context.Background(), server.URL, "out ids;", &out)
		require.NoError(t, err)
		require.Len(t, out.Elements, 1)
		assert.Equal(t, int64(42), out.Elements[0].ID)
		assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	})

	t.Run("retries on 429 until exhausted", func(t *testing.T) {
		var calls int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&calls, 1)
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer server.Close()

		var out map[string]interface{}
		err := newTestClient().PostText(context.Background(), server.URL, "q", &out)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "429")
		assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
	})

	t.Run("retries then succeeds", func(t *testing.T) {
		var calls int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if atomic.AddInt32(&calls, 1) < 3 {
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
			w.Write([]byte(`{"ok":true}`))
		}))
		defer server.Close()

		var out map[string]interface{}
		err := newTestClient().PostText(context.Background(), server.URL, "q", &out)
		require.NoError(t, err)
		assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
	})

	t.Run("terminal status makes exactly one call", func(t *testing.T) {
		var calls int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&calls, 1)
			w.WriteHeader(http.StatusBadRequest)
		}))
		defer server.Close()

		var out map[string]interface{}
		err := newTestClient().PostText(context.Background(), server.URL, "q", &out)
		require.Error(t, err)
		assert.Equal(t, int32(1), atomic.LoadInt32(&calls))

		var statusErr *StatusError
		require.ErrorAs(t, err, &statusErr)
		assert.Equal(t, http.StatusBadRequest, statusErr.StatusCode)
		assert.False(t, statusErr.Retryable())
	})

	t.Run("malformed json is terminal", func(t *testing.T) {
		var calls int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&calls, 1)
			w.Write([]byte(`{not json`))
		}))
		defer server.Close()

		var out map[string]interface{}
		err := newTestClient().PostText(context.Background(), server.URL, "q", &out)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "decode")
		assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	})

	t.Run("transport error is retried", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		server.Close() // закрываем сразу, чтобы получить connection refused

		var out map[string]interface{}
		start := time.Now()
		err := newTestClient().PostText(context.Background(), server.URL, "q", &out)
		require.Error(t, err)
		// 3 попытки с задержками 1ms и 2ms не должны занимать заметного времени
		assert.Less(t, time.Since(start), time.Second)
	})
}

func TestClient_GetJSON(t *testing.T) {
	t.Run("decodes entities", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodGet, r.Method)
			w.Write([]byte(`{"entities":{"Q123":{}}}`))
		}))
		defer server.Close()

		var out struct {
			Entities map[string]interface{} `json:"entities"`
		}
		err := newTestClient().GetJSON(context.Background(), server.URL, &out)
		require.NoError(t, err)
		assert.Contains(t, out.Entities, "Q123")
	})

	t.Run("cancelled context stops retries", func(t *testing.T) {
		var calls int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&calls, 1)
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		var out map[string]interface{}
		err := New(5*time.Second, 3, time.Second, "test").GetJSON(ctx, server.URL, &out)
		require.Error(t, err)
		assert.LessOrEqual(t, atomic.LoadInt32(&calls), int32(1))
	})
}

func TestStatusError_Retryable(t *testing.T) {
	retryable := []int{429, 500, 502, 503, 504}
	for _, code := range retryable {
		assert.True(t, (&StatusError{StatusCode: code}).Retryable(), "status %d", code)
	}
	terminal := []int{400, 401, 403, 404, 410, 501}
	for _, code := range terminal {
		assert.False(t, (&StatusError{StatusCode: code}).Retryable(), "status %d", code)
	}
}
