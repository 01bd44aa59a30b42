package transport

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"time"

	"hermes/internal/adapters/exchanges/ratelimit"
	"hermes/internal/adapters/exchanges/retry"
	"hermes/internal/metrics"
	"hermes/pkg/errors"
	"hermes/pkg/logger"
)

const defaultTimeout = 10 * time.Second

// Request describes one exchange API call in adapter terms. Path placeholders
// ({symbol}) are substituted from Params by the signer; remaining params
// become the query string or, for body-bearing private methods, the JSON body.
type Request struct {
	Method  string
	Path    string
	Params  map[string]interface{}
	Private bool

	// Idempotent calls may be retried on transport failures. Order creation
	// and edits are not idempotent: a retry after a timeout may double-submit,
	// so the transport never retries them and the caller is left to decide.
	Idempotent bool

	// CacheTTL > 0 enables response caching for public GETs
	CacheTTL time.Duration

	// Limits names the rate limiter keys to wait on; defaults to "global"
	Limits []string
}

// Envelope is the signed, ready-to-send form of a Request
type Envelope struct {
	URL     string
	Method  string
	Headers http.Header
	Body    []byte
}

// Signer builds the authenticated request envelope. Implementations are
// exchange-specific; signatures are timestamp-bound so signing happens once
// per attempt, not once per call.
type Signer interface {
	Sign(req Request) (*Envelope, error)
}

// Classifier turns an HTTP status and raw response body into a canonical
// error, or nil when the response is a success.
type Classifier interface {
	Classify(status int, body []byte) error
}

// Options configures the transport
type Options struct {
	ExchangeName string
	HTTPClient   *http.Client
	Limiter      *ratelimit.MultiLimiter
	Retry        *retry.Middleware
	Cache        Cache
	Log          *logger.Logger
}

// Client is the shared signed-HTTP transport every adapter composes: rate
// limiting, retries for idempotent calls, response caching for public catalog
// endpoints, metrics, and error classification.
type Client struct {
	name       string
	http       *http.Client
	signer     Signer
	classifier Classifier
	limiter    *ratelimit.MultiLimiter
	retry      *retry.Middleware
	cache      Cache
	log        *logger.Logger
}

// New creates a transport for one exchange
func New(signer Signer, classifier Classifier, opts Options) *Client {
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: defaultTimeout}
	}
	if opts.Retry == nil {
		opts.Retry = retry.New(retry.DefaultConfig())
	}
	if opts.Log == nil {
		opts.Log = logger.Get()
	}
	return &Client{
		name:       opts.ExchangeName,
		http:       opts.HTTPClient,
		signer:     signer,
		classifier: classifier,
		limiter:    opts.Limiter,
		retry:      opts.Retry,
		cache:      opts.Cache,
		log:        opts.Log.With("exchange", opts.ExchangeName),
	}
}

// Do executes the request and returns the raw response body after
// classification. Failures surface immediately; only transport-level errors
// on idempotent calls are retried.
func (c *Client) Do(ctx context.Context, req Request) ([]byte, error) {
	if c.limiter != nil {
		keys := req.Limits
		if len(keys) == 0 {
			keys = []string{"global"}
		}
		if err := c.limiter.Wait(ctx, keys...); err != nil {
			return nil, err
		}
	}

	cacheKey := ""
	if c.cacheable(req) {
		envelope, err := c.signer.Sign(req)
		if err != nil {
			return nil, err
		}
		cacheKey = envelope.Method + " " + envelope.URL
		if body, ok := c.cache.Get(ctx, cacheKey); ok {
			metrics.CacheHits.WithLabelValues(c.name, "hit").Inc()
			return body, nil
		}
		metrics.CacheHits.WithLabelValues(c.name, "miss").Inc()
	}

	var body []byte
	attempt := func() error {
		var err error
		body, err = c.execute(ctx, req)
		return err
	}

	started := time.Now()
	var err error
	if req.Idempotent {
		err = c.retry.Do(ctx, attempt)
	} else {
		err = attempt()
	}

	status := "success"
	if err != nil {
		status = "error"
		if errors.Is(err, errors.ErrRateLimited) {
			status = "rate_limited"
		}
		metrics.ExchangeAPIErrors.WithLabelValues(c.name, status).Inc()
	}
	metrics.ObserveAPICall(c.name, req.Path, status, started)

	if err != nil {
		return nil, err
	}

	if cacheKey != "" {
		c.cache.Set(ctx, cacheKey, body, req.CacheTTL)
	}
	return body, nil
}

func (c *Client) execute(ctx context.Context, req Request) ([]byte, error) {
	envelope, err := c.signer.Sign(req)
	if err != nil {
		return nil, err
	}

	var reader io.Reader
	if len(envelope.Body) > 0 {
		reader = bytes.NewReader(envelope.Body)
	}
	httpReq, err := http.NewRequestWithContext(ctx, envelope.Method, envelope.URL, reader)
	if err != nil {
		return nil, err
	}
	for key, values := range envelope.Headers {
		for _, value := range values {
			httpReq.Header.Add(key, value)
		}
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, errors.Wrapf(errors.ErrRateLimited, "%s %s", c.name, req.Path)
	}
	if err := c.classifier.Classify(resp.StatusCode, body); err != nil {
		c.log.Debugw("exchange call failed", "path", req.Path, "status", resp.StatusCode, "err", err)
		return nil, err
	}
	return body, nil
}

func (c *Client) cacheable(req Request) bool {
	return c.cache != nil && !req.Private && req.Method == http.MethodGet && req.CacheTTL > 0
}
