package errors

import (
	"errors"
	"fmt"
)

// Domain error types for business logic

var (
	// ErrNotFound indicates a resource was not found
	ErrNotFound = errors.New("resource not found")

	// ErrInvalidInput indicates invalid input parameters
	ErrInvalidInput = errors.New("invalid input")

	// ErrInternal indicates an internal error
	ErrInternal = errors.New("internal error")

	// ErrTimeout indicates an operation timeout
	ErrTimeout = errors.New("operation timeout")

	// ErrUnavailable indicates a service is unavailable
	ErrUnavailable = errors.New("service unavailable")
)

// Exchange-specific errors, one per canonical error category

var (
	// ErrInsufficientFunds indicates margin below the requirement for the request
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrInvalidOrder indicates the exchange rejected the order itself
	// (liquidity, self-match, liquidation or bankruptcy limits, post-only)
	ErrInvalidOrder = errors.New("invalid order")

	// ErrBadRequest indicates schema validation failures or risk-limit breaches
	ErrBadRequest = errors.New("bad request")

	// ErrBadSymbol indicates an unknown or expired contract
	ErrBadSymbol = errors.New("bad symbol")

	// ErrAuthentication indicates the exchange rejected the key or signature
	ErrAuthentication = errors.New("authentication failed")

	// ErrCredentialsMissing indicates a private call was attempted without an
	// API key configured; distinct from a rejected signature
	ErrCredentialsMissing = errors.New("api credentials missing")

	// ErrOrderNotFound indicates an operation on an order that is no longer open
	ErrOrderNotFound = errors.New("order not found")

	// ErrMissingArgument indicates a local precondition failure raised before
	// any network call
	ErrMissingArgument = errors.New("missing required argument")

	// ErrExchange is the generic classification for any other coded failure;
	// wrapping always carries the raw response body for diagnostics
	ErrExchange = errors.New("exchange error")

	// ErrExchangeUnavailable indicates the exchange API is unavailable
	ErrExchangeUnavailable = errors.New("exchange unavailable")

	// ErrRateLimited indicates HTTP 429 or throttling
	ErrRateLimited = errors.New("rate limit exceeded")
)

// Helper functions

// Is checks if err is or wraps target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target type
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Wrap wraps an error with context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with formatted context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

func New(message string) error {
	return errors.New(message)
}

func Newf(format string, args ...interface{}) error {
	return fmt.Errorf(format, args...)
}
