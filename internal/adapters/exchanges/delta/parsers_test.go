package delta

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hermes/internal/adapters/exchanges"
)

func TestParseTickerDerivedFields(t *testing.T) {
	data := json.RawMessage(`{
		"symbol": "BTCUSD",
		"timestamp": 1600000000000000,
		"open": "100",
		"close": "110",
		"high": "115",
		"low": "95",
		"volume": "20",
		"turnover": "2100"
	}`)

	ticker, err := parseTicker(data, "BTC/USD")
	require.NoError(t, err)

	assert.Equal(t, "BTC/USD", ticker.Symbol)
	assert.True(t, ticker.Timestamp.Equal(time.UnixMilli(1600000000000)))

	require.NotNil(t, ticker.Change)
	assert.True(t, ticker.Change.Equal(decimal.NewFromInt(10)))
	require.NotNil(t, ticker.Average)
	assert.True(t, ticker.Average.Equal(decimal.NewFromInt(105)))
	require.NotNil(t, ticker.PercentChange)
	assert.True(t, ticker.PercentChange.Equal(decimal.NewFromInt(10)))
	require.NotNil(t, ticker.VWAP)
	assert.True(t, ticker.VWAP.Equal(decimal.NewFromInt(105)))
}

func TestParseTickerZeroOpen(t *testing.T) {
	data := json.RawMessage(`{"symbol":"XRPUSD","timestamp":1,"open":"0","close":"5"}`)

	ticker, err := parseTicker(data, "")
	require.NoError(t, err)

	assert.Equal(t, "XRPUSD", ticker.Symbol)
	require.NotNil(t, ticker.Change)
	assert.True(t, ticker.Change.Equal(decimal.NewFromInt(5)))
	// Division by a zero open is undefined, the field stays absent.
	assert.Nil(t, ticker.PercentChange)
}

func TestParseTickerMissingOpen(t *testing.T) {
	data := json.RawMessage(`{"symbol":"ETHUSD","timestamp":1,"close":"2000"}`)

	ticker, err := parseTicker(data, "")
	require.NoError(t, err)

	assert.Nil(t, ticker.Change)
	assert.Nil(t, ticker.Average)
	assert.Nil(t, ticker.PercentChange)
	assert.Nil(t, ticker.VWAP)
}

func TestParseTradeSellerRole(t *testing.T) {
	tests := []struct {
		name string
		body string
		want exchanges.OrderSide
	}{
		{
			name: "taker seller means sell",
			body: `{"price":"100","size":"2","seller_role":"taker","timestamp":1600000000000000}`,
			want: exchanges.OrderSideSell,
		},
		{
			name: "maker seller means buy",
			body: `{"price":"100","size":"2","seller_role":"maker","timestamp":1600000000000000}`,
			want: exchanges.OrderSideBuy,
		},
		{
			name: "explicit side wins",
			body: `{"price":"100","size":"2","side":"sell","seller_role":"maker","created_at":"2020-09-13T12:26:40Z"}`,
			want: exchanges.OrderSideSell,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			trade, err := parseTrade(json.RawMessage(tt.body), "BTC/USD")
			require.NoError(t, err)
			assert.Equal(t, tt.want, trade.Side)
			assert.True(t, trade.Cost.Equal(decimal.NewFromInt(200)))
		})
	}
}

func TestParseTradeTimestamps(t *testing.T) {
	instant := time.Date(2020, 9, 13, 12, 26, 40, 0, time.UTC)

	public, err := parseTrade(json.RawMessage(`{"price":"1","size":"1","seller_role":"taker","timestamp":1600000000000000}`), "X")
	require.NoError(t, err)
	private, err := parseTrade(json.RawMessage(`{"price":"1","size":"1","side":"buy","created_at":"2020-09-13T12:26:40Z"}`), "X")
	require.NoError(t, err)

	assert.True(t, public.Timestamp.Equal(instant), "got %v", public.Timestamp)
	assert.True(t, private.Timestamp.Equal(instant), "got %v", private.Timestamp)
}

func TestParseOHLCVSecondsTimestamp(t *testing.T) {
	candle, err := parseOHLCV(json.RawMessage(`{"time":1600000000,"open":"1","high":"2","low":"0.5","close":"1.5","volume":"42"}`))
	require.NoError(t, err)

	// Candle times are seconds while tickers are microseconds, both land on
	// the same instant.
	assert.True(t, candle.Timestamp.Equal(time.Unix(1600000000, 0)))
	assert.True(t, candle.Volume.Equal(decimal.NewFromInt(42)))
}

func TestParseOrder(t *testing.T) {
	data := json.RawMessage(`{
		"id": 123456,
		"client_order_id": "my-tag",
		"product_id": 27,
		"limit_price": "27000.5",
		"side": "buy",
		"size": "10",
		"unfilled_size": "4",
		"order_type": "limit_order",
		"state": "open",
		"created_at": "2020-09-13T12:26:40Z"
	}`)
	market := &exchanges.Market{Symbol: "BTC/USDT", NumericID: 27}

	order, err := parseOrder(data, market)
	require.NoError(t, err)

	assert.Equal(t, "123456", order.ID)
	assert.Equal(t, "my-tag", order.ClientOrderID)
	assert.Equal(t, "BTC/USDT", order.Symbol)
	assert.Equal(t, exchanges.OrderSideBuy, order.Side)
	assert.Equal(t, exchanges.OrderTypeLimit, order.Type)
	assert.True(t, order.Filled.Equal(decimal.NewFromInt(6)))
	// State vocabulary passes through untouched.
	assert.Equal(t, "open", order.Status)
}

func TestParseOrderMarketType(t *testing.T) {
	order, err := parseOrder(json.RawMessage(`{"id":1,"product_id":27,"side":"sell","size":"1","unfilled_size":"0","order_type":"market_order","state":"closed"}`), nil)
	require.NoError(t, err)

	assert.Equal(t, exchanges.OrderTypeMarket, order.Type)
	assert.Equal(t, "closed", order.Status)
	assert.Empty(t, order.Symbol)
}

func TestParseBalanceUnknownAsset(t *testing.T) {
	data := json.RawMessage(`{"asset_id":99,"balance":"12.5","available_balance":"10"}`)

	resolved, err := parseBalance(data, &exchanges.Currency{Code: "USDT", NumericID: 99})
	require.NoError(t, err)
	assert.Equal(t, "USDT", resolved.Currency)
	assert.True(t, resolved.Total.Equal(decimal.RequireFromString("12.5")))

	unknown, err := parseBalance(data, nil)
	require.NoError(t, err)
	assert.Equal(t, "99", unknown.Currency)
}

func TestParseDepositAddress(t *testing.T) {
	addr, err := parseDepositAddress(json.RawMessage(`{"address":"bc1qxyz","status":"active"}`), "BTC")
	require.NoError(t, err)
	assert.Equal(t, "bc1qxyz", addr.Address)
	assert.Equal(t, "BTC", addr.Currency)

	_, err = parseDepositAddress(json.RawMessage(`{"address":""}`), "BTC")
	assert.Error(t, err)
}

func TestParseOrderBook(t *testing.T) {
	data := json.RawMessage(`{
		"symbol": "BTCUSD",
		"buy":  [{"price":"26999","size":"3"},{"price":"26998","size":"1"}],
		"sell": [{"price":"27001","size":"2"}]
	}`)

	book, err := parseOrderBook(data, "BTC/USD")
	require.NoError(t, err)

	assert.Equal(t, "BTC/USD", book.Symbol)
	require.Len(t, book.Bids, 2)
	require.Len(t, book.Asks, 1)
	assert.True(t, book.Bids[0].Price.Equal(decimal.NewFromInt(26999)))
	assert.True(t, book.Asks[0].Amount.Equal(decimal.NewFromInt(2)))
}
