package retry

import (
	"context"
	"math"
	"net"
	"net/http"
	"strings"
	"time"

	"hermes/pkg/errors"
)

// Config contains retry configuration
type Config struct {
	MaxRetries   int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}

// DefaultConfig returns a sensible default configuration
func DefaultConfig() Config {
	return Config{
		MaxRetries:   3,
		InitialDelay: 100 * time.Millisecond,
		MaxDelay:     5 * time.Second,
		Multiplier:   2.0,
	}
}

// Middleware provides retry functionality with exponential backoff
type Middleware struct {
	config Config
}

// New creates a new retry middleware
func New(config Config) *Middleware {
	if config.MaxRetries <= 0 {
		config.MaxRetries = 3
	}
	if config.InitialDelay <= 0 {
		config.InitialDelay = 100 * time.Millisecond
	}
	if config.MaxDelay <= 0 {
		config.MaxDelay = 5 * time.Second
	}
	if config.Multiplier <= 0 {
		config.Multiplier = 2.0
	}

	return &Middleware{config: config}
}

// Do executes the function with retry logic
func (m *Middleware) Do(ctx context.Context, fn func() error) error {
	var lastErr error

	for attempt := 0; attempt <= m.config.MaxRetries; attempt++ {
		err := fn()
		if err == nil {
			return nil
		}

		lastErr = err

		if !isRetryableError(err) {
			return err
		}

		if attempt == m.config.MaxRetries {
			break
		}

		delay := m.calculateDelay(attempt)

		select {
		case <-ctx.Done():
			return errors.Wrap(ctx.Err(), "retry cancelled")
		case <-time.After(delay):
		}
	}

	return errors.Wrapf(lastErr, "max retries (%d) exceeded", m.config.MaxRetries)
}

// calculateDelay calculates the exponential backoff delay, capped at MaxDelay
func (m *Middleware) calculateDelay(attempt int) time.Duration {
	delay := time.Duration(float64(m.config.InitialDelay) * math.Pow(m.config.Multiplier, float64(attempt)))
	if delay > m.config.MaxDelay {
		delay = m.config.MaxDelay
	}
	return delay
}

// isRetryableError determines if an error is worth retrying. Exchange
// rejections are never retried here; classification happens upstream and the
// caller decides. Only transport-level failures qualify.
func isRetryableError(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	// Exchange-classified failures are terminal for the adapter
	for _, terminal := range []error{
		errors.ErrInsufficientFunds,
		errors.ErrInvalidOrder,
		errors.ErrBadRequest,
		errors.ErrBadSymbol,
		errors.ErrAuthentication,
		errors.ErrCredentialsMissing,
		errors.ErrOrderNotFound,
		errors.ErrExchange,
	} {
		if errors.Is(err, terminal) {
			return false
		}
	}

	if errors.Is(err, errors.ErrRateLimited) || errors.Is(err, errors.ErrExchangeUnavailable) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return netErr.Timeout()
	}

	var httpErr interface{ StatusCode() int }
	if errors.As(err, &httpErr) {
		code := httpErr.StatusCode()
		return code == http.StatusTooManyRequests ||
			code == http.StatusRequestTimeout ||
			code >= 500
	}

	errStr := strings.ToLower(err.Error())
	retryableMessages := []string{
		"connection refused",
		"connection reset",
		"broken pipe",
		"no such host",
		"timeout",
		"too many requests",
		"rate limit",
		"throttled",
	}
	for _, msg := range retryableMessages {
		if strings.Contains(errStr, msg) {
			return true
		}
	}

	return false
}
