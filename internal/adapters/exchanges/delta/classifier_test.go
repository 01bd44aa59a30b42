package delta

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"hermes/pkg/errors"
)

func TestClassifyErrorCodes(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   error
	}{
		{
			name:   "insufficient margin",
			status: 400,
			body:   `{"success":false,"error":{"code":"insufficient_margin"}}`,
			want:   errors.ErrInsufficientFunds,
		},
		{
			name:   "invalid contract",
			status: 400,
			body:   `{"success":false,"error":{"code":"invalid_contract"}}`,
			want:   errors.ErrBadSymbol,
		},
		{
			name:   "open order not found",
			status: 404,
			body:   `{"success":false,"error":{"code":"open_order_not_found"}}`,
			want:   errors.ErrOrderNotFound,
		},
		{
			name:   "invalid api key",
			status: 401,
			body:   `{"success":false,"error":{"code":"invalid_api_key"}}`,
			want:   errors.ErrAuthentication,
		},
		{
			name:   "post only immediate execution",
			status: 400,
			body:   `{"success":false,"error":{"code":"immediate_execution_post_only"}}`,
			want:   errors.ErrInvalidOrder,
		},
		{
			name:   "code on 200 response",
			status: 200,
			body:   `{"success":false,"error":{"code":"risk_limits_breached"}}`,
			want:   errors.ErrBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Classifier{}.Classify(tt.status, []byte(tt.body))
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestClassifyUnknownCodeKeepsBody(t *testing.T) {
	body := `{"success":false,"error":{"code":"mystery_code","context":{"x":1}}}`
	err := Classifier{}.Classify(400, []byte(body))

	assert.True(t, errors.Is(err, errors.ErrExchange))
	assert.Contains(t, err.Error(), "mystery_code")
}

func TestClassifyByHTTPStatus(t *testing.T) {
	err := Classifier{}.Classify(503, []byte("upstream unavailable"))
	assert.True(t, errors.Is(err, errors.ErrExchangeUnavailable))

	err = Classifier{}.Classify(400, []byte("bad request"))
	assert.True(t, errors.Is(err, errors.ErrExchange))

	err = Classifier{}.Classify(200, []byte(`{"success":true,"result":[]}`))
	assert.NoError(t, err)
}
