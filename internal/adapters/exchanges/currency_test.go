package exchanges

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCurrencyCode(t *testing.T) {
	assert.Equal(t, "BTC", CurrencyCode("XBT"))
	assert.Equal(t, "BCH", CurrencyCode("BCC"))
	assert.Equal(t, "DASH", CurrencyCode("DRK"))
	assert.Equal(t, "BSV", CurrencyCode("BCHSV"))

	// Unmapped ids pass through untouched.
	assert.Equal(t, "USDT", CurrencyCode("USDT"))
	assert.Equal(t, "", CurrencyCode(""))
}
