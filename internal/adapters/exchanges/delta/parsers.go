package delta

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"hermes/internal/adapters/exchanges"
	"hermes/pkg/errors"
)

// Response parsers. Each is a pure function from a raw JSON fragment to a
// canonical record; catalog lookups are passed in, never reached for.

var two = decimal.NewFromInt(2)
var hundred = decimal.NewFromInt(100)

// parseTicker converts a ticker snapshot. Delta reports ticker timestamps in
// microseconds. Change, average and percentage are derived only when both
// open and close were transmitted; percentage stays nil when open is zero.
func parseTicker(data json.RawMessage, symbol string) (*exchanges.Ticker, error) {
	var raw rawTicker
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrap(err, "delta: parse ticker")
	}
	if symbol == "" {
		symbol = raw.Symbol
	}

	ticker := &exchanges.Ticker{
		Symbol:      symbol,
		Timestamp:   time.UnixMicro(raw.Timestamp),
		High:        dec(raw.High),
		Low:         dec(raw.Low),
		Open:        dec(raw.Open),
		Close:       dec(raw.Close),
		BaseVolume:  dec(raw.Volume),
		QuoteVolume: dec(raw.Turnover),
	}

	if raw.Volume.String() != "" && raw.Turnover.String() != "" && !ticker.BaseVolume.IsZero() {
		vwap := ticker.QuoteVolume.Div(ticker.BaseVolume)
		ticker.VWAP = &vwap
	}

	if raw.Open.String() != "" && raw.Close.String() != "" {
		change := ticker.Close.Sub(ticker.Open)
		average := ticker.Close.Add(ticker.Open).Div(two)
		ticker.Change = &change
		ticker.Average = &average
		if !ticker.Open.IsZero() {
			percentage := change.Div(ticker.Open).Mul(hundred)
			ticker.PercentChange = &percentage
		}
	}

	return ticker, nil
}

// parseTrade converts both public trade prints and private fills. Public
// prints do not transmit the side; it is inferred from seller_role. The taker
// is by definition the side whose order crossed the book, so a taker-seller
// means the print was a sell and a maker-seller means a resting sell was hit
// by a buyer, i.e. a buy.
func parseTrade(data json.RawMessage, symbol string) (*exchanges.Trade, error) {
	var raw rawTrade
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrap(err, "delta: parse trade")
	}
	if symbol == "" {
		symbol = raw.Symbol
	}

	var ts time.Time
	switch {
	case raw.Timestamp != 0:
		ts = time.UnixMicro(raw.Timestamp)
	case raw.CreatedAt != "":
		ts = parseTimeString(raw.CreatedAt)
	}

	var side exchanges.OrderSide
	switch {
	case raw.Side != "":
		side = exchanges.OrderSide(raw.Side)
	case raw.SellerRole == "taker":
		side = exchanges.OrderSideSell
	case raw.SellerRole == "maker":
		side = exchanges.OrderSideBuy
	}

	price := dec(raw.Price)
	amount := dec(raw.Size)
	return &exchanges.Trade{
		Timestamp: ts,
		Symbol:    symbol,
		Side:      side,
		Price:     price,
		Amount:    amount,
		Cost:      price.Mul(amount),
	}, nil
}

// parseOHLCV converts one candle. Candle timestamps are seconds, the one
// exception to Delta's microsecond convention.
func parseOHLCV(data json.RawMessage) (exchanges.OHLCV, error) {
	var raw rawCandle
	if err := json.Unmarshal(data, &raw); err != nil {
		return exchanges.OHLCV{}, errors.Wrap(err, "delta: parse candle")
	}
	return exchanges.OHLCV{
		Timestamp: time.Unix(raw.Time, 0),
		Open:      dec(raw.Open),
		High:      dec(raw.High),
		Low:       dec(raw.Low),
		Close:     dec(raw.Close),
		Volume:    dec(raw.Volume),
	}, nil
}

// parseOrder converts an order record. The exchange's lifecycle vocabulary
// (open, pending, closed, cancelled) passes through untouched.
func parseOrder(data json.RawMessage, market *exchanges.Market) (*exchanges.Order, error) {
	var raw rawOrder
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrap(err, "delta: parse order")
	}

	size := dec(raw.Size)
	filled := size.Sub(dec(raw.UnfilledSize))

	order := &exchanges.Order{
		ID:            raw.ID.String(),
		ClientOrderID: raw.ClientOrderID,
		NumericID:     raw.ProductID,
		Side:          exchanges.OrderSide(raw.Side),
		Type:          orderTypeFromAPI(raw.OrderType),
		Price:         dec(raw.LimitPrice),
		Size:          size,
		Filled:        filled,
		Status:        raw.State,
		CreatedAt:     parseTimeString(raw.CreatedAt),
		Raw:           data,
	}
	if market != nil {
		order.Symbol = market.Symbol
	}
	return order, nil
}

// parseBalance resolves the numeric asset id carried by the wallet response
// through the currency lookup; unknown ids keep the id digits as the code so
// nothing is silently dropped.
func parseBalance(data json.RawMessage, currency *exchanges.Currency) (exchanges.Balance, error) {
	var raw rawBalance
	if err := json.Unmarshal(data, &raw); err != nil {
		return exchanges.Balance{}, errors.Wrap(err, "delta: parse balance")
	}
	balance := exchanges.Balance{
		AssetID: raw.AssetID,
		Total:   dec(raw.Balance),
		Free:    dec(raw.AvailableBalance),
	}
	if currency != nil {
		balance.Currency = currency.Code
	} else {
		balance.Currency = itoa(raw.AssetID)
	}
	return balance, nil
}

func parsePosition(data json.RawMessage, market *exchanges.Market) (exchanges.Position, error) {
	var raw rawPosition
	if err := json.Unmarshal(data, &raw); err != nil {
		return exchanges.Position{}, errors.Wrap(err, "delta: parse position")
	}
	position := exchanges.Position{
		ProductID:        raw.ProductID,
		Size:             dec(raw.Size),
		EntryPrice:       dec(raw.EntryPrice),
		Margin:           dec(raw.Margin),
		LiquidationPrice: dec(raw.LiquidationPrice),
		BankruptcyPrice:  dec(raw.BankruptcyPrice),
		ADLLevel:         raw.ADLLevel,
		Raw:              data,
	}
	if market != nil {
		position.Symbol = market.Symbol
	}
	return position, nil
}

func parseLedgerEntry(data json.RawMessage, currency *exchanges.Currency) (exchanges.LedgerEntry, error) {
	var raw rawLedgerEntry
	if err := json.Unmarshal(data, &raw); err != nil {
		return exchanges.LedgerEntry{}, errors.Wrap(err, "delta: parse ledger entry")
	}
	entry := exchanges.LedgerEntry{
		ID:        raw.ID.String(),
		AssetID:   raw.AssetID,
		ProductID: raw.ProductID,
		Type:      raw.TransactionType,
		Amount:    dec(raw.Amount),
		Balance:   dec(raw.Balance),
		CreatedAt: parseTimeString(raw.CreatedAt),
		Raw:       data,
	}
	if currency != nil {
		entry.Currency = currency.Code
	} else {
		entry.Currency = itoa(raw.AssetID)
	}
	return entry, nil
}

func parseDepositAddress(data json.RawMessage, code string) (*exchanges.DepositAddress, error) {
	var raw rawDepositAddress
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrap(err, "delta: parse deposit address")
	}
	if raw.Address == "" {
		return nil, errors.Wrapf(errors.ErrExchange, "delta: empty deposit address for %s", code)
	}
	return &exchanges.DepositAddress{
		Currency: code,
		Address:  raw.Address,
		Status:   raw.Status,
	}, nil
}

func parseOrderBook(data json.RawMessage, symbol string) (*exchanges.OrderBook, error) {
	var raw rawOrderBook
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrap(err, "delta: parse order book")
	}
	if symbol == "" {
		symbol = raw.Symbol
	}
	book := &exchanges.OrderBook{Symbol: symbol}
	for _, level := range raw.Buy {
		book.Bids = append(book.Bids, exchanges.OrderBookLevel{Price: dec(level.Price), Amount: dec(level.Size)})
	}
	for _, level := range raw.Sell {
		book.Asks = append(book.Asks, exchanges.OrderBookLevel{Price: dec(level.Price), Amount: dec(level.Size)})
	}
	return book, nil
}

func orderTypeFromAPI(value string) exchanges.OrderType {
	switch value {
	case "market_order":
		return exchanges.OrderTypeMarket
	default:
		return exchanges.OrderTypeLimit
	}
}

func parseTimeString(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	ts, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}
	}
	return ts
}

func itoa(v int64) string {
	return strconv.FormatInt(v, 10)
}
