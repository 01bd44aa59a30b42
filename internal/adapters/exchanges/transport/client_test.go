package transport

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hermes/internal/adapters/exchanges/retry"
	"hermes/pkg/errors"
)

// passthroughSigner signs nothing; it just points the request at the target.
type passthroughSigner struct {
	baseURL string
}

func (s passthroughSigner) Sign(req Request) (*Envelope, error) {
	return &Envelope{
		URL:     s.baseURL + "/" + req.Path,
		Method:  req.Method,
		Headers: http.Header{},
	}, nil
}

type statusClassifier struct{}

func (statusClassifier) Classify(status int, body []byte) error {
	switch {
	case status >= 500:
		return errors.Wrapf(errors.ErrExchangeUnavailable, "http %d", status)
	case status >= 400:
		return errors.Wrapf(errors.ErrExchange, "http %d", status)
	}
	return nil
}

func newTestTransport(t *testing.T, handler http.HandlerFunc, opts Options) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return New(passthroughSigner{baseURL: server.URL}, statusClassifier{}, opts)
}

func TestDoCachesPublicGets(t *testing.T) {
	var calls atomic.Int64
	client := newTestTransport(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		io.WriteString(w, `{"ok":true}`)
	}, Options{ExchangeName: "test", Cache: NewMemoryCache()})

	req := Request{Method: http.MethodGet, Path: "products", Idempotent: true, CacheTTL: time.Minute}
	ctx := context.Background()

	first, err := client.Do(ctx, req)
	require.NoError(t, err)
	second, err := client.Do(ctx, req)
	require.NoError(t, err)

	assert.Equal(t, string(first), string(second))
	assert.Equal(t, int64(1), calls.Load())
}

func TestDoSkipsCacheForPrivate(t *testing.T) {
	var calls atomic.Int64
	client := newTestTransport(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		io.WriteString(w, `{}`)
	}, Options{ExchangeName: "test", Cache: NewMemoryCache()})

	req := Request{Method: http.MethodGet, Path: "wallet/balances", Private: true, Idempotent: true, CacheTTL: time.Minute}
	ctx := context.Background()

	_, err := client.Do(ctx, req)
	require.NoError(t, err)
	_, err = client.Do(ctx, req)
	require.NoError(t, err)

	assert.Equal(t, int64(2), calls.Load())
}

func TestDoRetriesIdempotentOnly(t *testing.T) {
	retryCfg := retry.Config{MaxRetries: 3, InitialDelay: time.Millisecond, MaxDelay: 5 * time.Millisecond, Multiplier: 2}

	var calls atomic.Int64
	handler := func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		io.WriteString(w, `{}`)
	}

	client := newTestTransport(t, handler, Options{ExchangeName: "test", Retry: retry.New(retryCfg)})
	_, err := client.Do(context.Background(), Request{Method: http.MethodGet, Path: "tickers", Idempotent: true})
	require.NoError(t, err)
	assert.Equal(t, int64(3), calls.Load())

	// Non-idempotent calls surface the first failure untouched.
	calls.Store(0)
	client = newTestTransport(t, handler, Options{ExchangeName: "test", Retry: retry.New(retryCfg)})
	_, err = client.Do(context.Background(), Request{Method: http.MethodPost, Path: "orders"})
	assert.True(t, errors.Is(err, errors.ErrExchangeUnavailable))
	assert.Equal(t, int64(1), calls.Load())
}

func TestDoMapsTooManyRequests(t *testing.T) {
	client := newTestTransport(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}, Options{ExchangeName: "test", Retry: retry.New(retry.Config{MaxRetries: 1, InitialDelay: time.Millisecond, MaxDelay: time.Millisecond, Multiplier: 1})})

	_, err := client.Do(context.Background(), Request{Method: http.MethodGet, Path: "tickers", Idempotent: true})
	assert.True(t, errors.Is(err, errors.ErrRateLimited))
}

func TestMemoryCacheExpiry(t *testing.T) {
	cache := NewMemoryCache()
	ctx := context.Background()

	cache.Set(ctx, "k", []byte("v"), 20*time.Millisecond)
	value, ok := cache.Get(ctx, "k")
	require.True(t, ok)
	assert.Equal(t, "v", string(value))

	time.Sleep(30 * time.Millisecond)
	_, ok = cache.Get(ctx, "k")
	assert.False(t, ok)
}
