package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fwojciec/aipage"
	aipagehttp "github.com/fwojciec/aipage/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Retries(t *testing.T) {
	t.Parallel()

	t.Run("retries server errors until success", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if calls.Add(1) < 3 {
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		client := aipagehttp.NewClient(server.URL, aipagehttp.WithRetries(time.Millisecond, time.Millisecond))

		err := client.CompilePage(context.Background(), &aipage.CompileRequest{Key: testKey})

		require.NoError(t, err)
		assert.Equal(t, int32(3), calls.Load())
	})

	t.Run("returns last error when retries are exhausted", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()

		client := aipagehttp.NewClient(server.URL, aipagehttp.WithRetries(time.Millisecond))

		err := client.SavePageSource(context.Background(), &aipage.SaveRequest{Key: testKey})

		assert.Equal(t, "HTTP 502", aipage.ErrorMessage(err))
		assert.Equal(t, int32(2), calls.Load())
	})

	t.Run("does not retry client errors", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusUnprocessableEntity)
		}))
		defer server.Close()

		client := aipagehttp.NewClient(server.URL, aipagehttp.WithRetries(time.Millisecond, time.Millisecond))

		err := client.SavePageSource(context.Background(), &aipage.SaveRequest{Key: testKey})

		assert.Equal(t, aipage.EINVALID, aipage.ErrorCode(err))
		assert.Equal(t, int32(1), calls.Load())
	})

	t.Run("stops waiting when context is cancelled", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		client := aipagehttp.NewClient(server.URL, aipagehttp.WithRetries(time.Hour))

		err := client.SavePageSource(ctx, &aipage.SaveRequest{Key: testKey})

		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})
}

func TestDefaultRetryDelays(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []time.Duration{time.Second, 2 * time.Second, 4 * time.Second}, aipagehttp.DefaultRetryDelays())
}
