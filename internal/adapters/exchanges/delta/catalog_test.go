package delta

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hermes/internal/adapters/exchanges"
	"hermes/pkg/errors"
)

func rawList(t *testing.T, items ...string) []json.RawMessage {
	t.Helper()
	out := make([]json.RawMessage, 0, len(items))
	for _, item := range items {
		out = append(out, json.RawMessage(item))
	}
	return out
}

func TestBuildCurrencies(t *testing.T) {
	currencies, err := buildCurrencies(rawList(t,
		`{"id":2,"symbol":"BTC","name":"Bitcoin","precision":8,"deposit_status":"enabled","withdrawal_status":"enabled","base_withdrawal_fee":"0.0005","min_withdrawal_amount":"0.001"}`,
		`{"id":3,"symbol":"XBT","name":"Bitcoin legacy","precision":8,"deposit_status":"enabled","withdrawal_status":"disabled"}`,
	))
	require.NoError(t, err)
	require.Len(t, currencies, 2)

	btc := currencies[0]
	assert.Equal(t, "BTC", btc.Code)
	assert.Equal(t, int64(2), btc.NumericID)
	assert.True(t, btc.Active)
	assert.True(t, btc.Precision.Equal(decimal.RequireFromString("0.00000001")))
	assert.True(t, btc.WithdrawalFee.Equal(decimal.RequireFromString("0.0005")))

	legacy := currencies[1]
	// Legacy tickers canonicalize, the exchange's own id is retained.
	assert.Equal(t, "BTC", legacy.Code)
	assert.Equal(t, "XBT", legacy.ExchangeID)
	// Withdrawals disabled makes the asset inactive.
	assert.False(t, legacy.Active)
}

func TestBuildMarketsNormalization(t *testing.T) {
	markets, err := buildMarkets(rawList(t,
		`{"id":27,"symbol":"BTCUSDT","contract_type":"perpetual_futures","state":"live","tick_size":"0.5","position_size_limit":"1000000","maker_commission_rate":"0.0002","taker_commission_rate":"0.0005","underlying_asset":{"symbol":"BTC"},"quoting_asset":{"symbol":"USDT"}}`,
		`{"id":28,"symbol":"BTCUSDT_31Dec","contract_type":"futures","state":"live","underlying_asset":{"symbol":"BTC"},"quoting_asset":{"symbol":"USDT"}}`,
		`{"id":29,"symbol":"C-BTC-30000-311226","contract_type":"call_options","state":"live","underlying_asset":{"symbol":"BTC"},"quoting_asset":{"symbol":"USDT"}}`,
		`{"id":30,"symbol":"MV-BTC-28000-311226","contract_type":"move_options","state":"expired","underlying_asset":{"symbol":"BTC"},"quoting_asset":{"symbol":"USDT"}}`,
		`{"id":31,"symbol":"DETOUSDT","contract_type":"spot","state":"live","underlying_asset":{"symbol":"DETO"},"quoting_asset":{"symbol":"USDT"}}`,
	))
	require.NoError(t, err)
	require.Len(t, markets, 5)

	perp := markets[0]
	assert.Equal(t, exchanges.ContractKindSwap, perp.Kind)
	assert.True(t, perp.Swap)
	// Perpetuals get the synthetic pair symbol.
	assert.Equal(t, "BTC/USDT", perp.Symbol)
	assert.Equal(t, "BTCUSDT", perp.ID)
	assert.Equal(t, int64(27), perp.NumericID)
	assert.True(t, perp.TickSize.Equal(decimal.RequireFromString("0.5")))
	assert.True(t, perp.AmountStep.Equal(decimal.NewFromInt(1)))
	assert.True(t, perp.Active)

	future := markets[1]
	assert.Equal(t, exchanges.ContractKindFuture, future.Kind)
	assert.True(t, future.Future)
	// Dated contracts keep the raw id as symbol.
	assert.Equal(t, "BTCUSDT_31Dec", future.Symbol)

	call := markets[2]
	assert.Equal(t, exchanges.ContractKindOption, call.Kind)
	assert.True(t, call.Option)
	assert.Equal(t, "C-BTC-30000-311226", call.Symbol)

	move := markets[3]
	assert.Equal(t, exchanges.ContractKindOption, move.Kind)
	assert.False(t, move.Active)

	spot := markets[4]
	assert.Equal(t, exchanges.ContractKindSpot, spot.Kind)
	assert.Equal(t, "DETOUSDT", spot.Symbol)
}

func TestBuildMarketsParity(t *testing.T) {
	markets, err := buildMarkets(rawList(t,
		`{"id":40,"symbol":"ORPHANUSD","contract_type":"perpetual_futures","state":"live"}`,
		`{"id":41,"symbol":"HALFUSD","contract_type":"futures","state":"live","quoting_asset":{"symbol":"USD"}}`,
	))
	require.NoError(t, err)
	// Malformed products are retained, never dropped: catalog size stays in
	// parity with the exchange's product list.
	require.Len(t, markets, 2)

	orphan := markets[0]
	assert.Empty(t, orphan.BaseID)
	assert.Empty(t, orphan.QuoteID)
	assert.Equal(t, "/", orphan.Symbol)

	half := markets[1]
	assert.Empty(t, half.Base)
	assert.Equal(t, "USD", half.Quote)
	assert.Equal(t, "HALFUSD", half.Symbol)
}

func TestCatalogLookups(t *testing.T) {
	currencies, err := buildCurrencies(rawList(t,
		`{"id":5,"symbol":"USDT","precision":6,"deposit_status":"enabled","withdrawal_status":"enabled"}`,
	))
	require.NoError(t, err)
	markets, err := buildMarkets(rawList(t,
		`{"id":27,"symbol":"BTCUSDT","contract_type":"perpetual_futures","state":"live","underlying_asset":{"symbol":"BTC"},"quoting_asset":{"symbol":"USDT"}}`,
	))
	require.NoError(t, err)

	var c catalog
	c.install(currencies, markets)

	bySymbol, err := c.market("BTC/USDT")
	require.NoError(t, err)
	byID, err := c.market("BTCUSDT")
	require.NoError(t, err)
	assert.Same(t, bySymbol, byID)
	assert.Same(t, bySymbol, c.marketByNumericID(27))

	usdt, err := c.currency("USDT")
	require.NoError(t, err)
	assert.Same(t, usdt, c.currencyByNumericID(5))

	_, err = c.market("NOPE/USD")
	assert.True(t, errors.Is(err, errors.ErrBadSymbol))

	_, err = c.currency("NOPE")
	assert.Error(t, err)
}

func TestCatalogNotLoaded(t *testing.T) {
	var c catalog
	_, err := c.market("BTC/USDT")
	assert.True(t, errors.Is(err, exchanges.ErrCatalogNotLoaded))
}
