package delta

import (
	"encoding/json"
	"strings"

	"hermes/pkg/errors"
)

// exactErrors maps Delta error codes to their canonical classification.
// Codes come back on HTTP 4xx as well as on 200 responses with success=false.
var exactErrors = map[string]error{
	// Margin required to place the order with the selected leverage and
	// quantity is insufficient.
	"insufficient_margin": errors.ErrInsufficientFunds,
	// The order book lacks the liquidity to fill the order, e.g. ioc orders.
	"order_size_exceed_available": errors.ErrInvalidOrder,
	// Placing the order would breach allowed risk limits.
	"risk_limits_breached": errors.ErrBadRequest,
	// The contract either doesn't exist or has already expired.
	"invalid_contract": errors.ErrBadSymbol,
	// Order would cause immediate liquidation.
	"immediate_liquidation": errors.ErrInvalidOrder,
	// Order prices are out of position bankruptcy limits.
	"out_of_bankruptcy": errors.ErrInvalidOrder,
	// Self matching is not allowed during auction.
	"self_matching_disrupted_post_only": errors.ErrInvalidOrder,
	// Post-only orders that would execute immediately.
	"immediate_execution_post_only": errors.ErrInvalidOrder,
	"bad_schema":                    errors.ErrBadRequest,
	"invalid_api_key":               errors.ErrAuthentication,
	"invalid_signature":             errors.ErrAuthentication,
	"open_order_not_found":          errors.ErrOrderNotFound,
}

// broadErrors is matched by substring after the exact table misses. Delta
// currently needs no entries, but sibling adapters in this family populate
// theirs, so the two-stage lookup stays.
var broadErrors = []struct {
	substring string
	err       error
}{}

// Classifier maps Delta responses to the canonical error taxonomy.
// Classification only; retry policy belongs to the transport.
type Classifier struct{}

// Classify implements transport.Classifier. A nil return means success.
func (Classifier) Classify(status int, body []byte) error {
	var env envelope
	if err := json.Unmarshal(body, &env); err == nil && env.Error != nil && env.Error.Code != "" {
		code := env.Error.Code
		if classified, ok := exactErrors[code]; ok {
			return errors.Wrapf(classified, "delta %s: %s", code, string(body))
		}
		for _, rule := range broadErrors {
			if strings.Contains(code, rule.substring) {
				return errors.Wrapf(rule.err, "delta %s: %s", code, string(body))
			}
		}
		return errors.Wrapf(errors.ErrExchange, "delta %s", string(body))
	}

	switch {
	case status >= 500:
		return errors.Wrapf(errors.ErrExchangeUnavailable, "delta http %d: %s", status, string(body))
	case status >= 400:
		return errors.Wrapf(errors.ErrExchange, "delta http %d: %s", status, string(body))
	}
	return nil
}
