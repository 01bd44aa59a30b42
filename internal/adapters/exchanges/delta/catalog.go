package delta

import (
	"encoding/json"
	"sync"

	"github.com/shopspring/decimal"

	"hermes/internal/adapters/exchanges"
	"hermes/pkg/errors"
)

// catalog is the shared market/currency state for one adapter instance. It is
// populated by an explicit load that every catalog-dependent operation calls
// lazily; the mutex doubles as the load-once guard so concurrent callers
// observe a single load in flight instead of racing N redundant fetches.
// Reload rebuilds everything wholesale, including the numeric-id join tables
// used by the wallet, ledger and position endpoints.
type catalog struct {
	mu     sync.RWMutex
	loaded bool

	currencies            map[string]*exchanges.Currency
	currenciesByNumericID map[int64]*exchanges.Currency

	markets            []*exchanges.Market
	marketsBySymbol    map[string]*exchanges.Market
	marketsByID        map[string]*exchanges.Market
	marketsByNumericID map[int64]*exchanges.Market
}

func (c *catalog) install(currencies []*exchanges.Currency, markets []*exchanges.Market) {
	c.currencies = make(map[string]*exchanges.Currency, len(currencies))
	c.currenciesByNumericID = make(map[int64]*exchanges.Currency, len(currencies))
	for _, currency := range currencies {
		c.currencies[currency.Code] = currency
		c.currenciesByNumericID[currency.NumericID] = currency
	}

	c.markets = markets
	c.marketsBySymbol = make(map[string]*exchanges.Market, len(markets))
	c.marketsByID = make(map[string]*exchanges.Market, len(markets))
	c.marketsByNumericID = make(map[int64]*exchanges.Market, len(markets))
	for _, market := range markets {
		c.marketsBySymbol[market.Symbol] = market
		c.marketsByID[market.ID] = market
		c.marketsByNumericID[market.NumericID] = market
	}

	c.loaded = true
}

// market resolves a canonical symbol or raw exchange id
func (c *catalog) market(symbol string) (*exchanges.Market, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if !c.loaded {
		return nil, exchanges.ErrCatalogNotLoaded
	}
	if market, ok := c.marketsBySymbol[symbol]; ok {
		return market, nil
	}
	if market, ok := c.marketsByID[symbol]; ok {
		return market, nil
	}
	return nil, errors.Wrapf(errors.ErrBadSymbol, "delta: unknown market %q", symbol)
}

func (c *catalog) marketByNumericID(id int64) *exchanges.Market {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.marketsByNumericID[id]
}

func (c *catalog) currency(code string) (*exchanges.Currency, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if !c.loaded {
		return nil, exchanges.ErrCatalogNotLoaded
	}
	if currency, ok := c.currencies[code]; ok {
		return currency, nil
	}
	return nil, errors.Wrapf(errors.ErrBadSymbol, "delta: unknown currency %q", code)
}

func (c *catalog) currencyByNumericID(id int64) *exchanges.Currency {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.currenciesByNumericID[id]
}

// buildCurrencies maps raw asset records to canonical currencies. An asset is
// active only when both deposits and withdrawals are enabled; precision is
// 10^-decimalPlaces.
func buildCurrencies(data []json.RawMessage) ([]*exchanges.Currency, error) {
	currencies := make([]*exchanges.Currency, 0, len(data))
	for _, item := range data {
		var raw rawAsset
		if err := json.Unmarshal(item, &raw); err != nil {
			return nil, errors.Wrap(err, "delta: parse asset")
		}
		currencies = append(currencies, &exchanges.Currency{
			Code:          exchanges.CurrencyCode(raw.Symbol),
			ExchangeID:    raw.Symbol,
			NumericID:     raw.ID,
			Name:          raw.Name,
			Precision:     decimal.New(1, -int32(raw.Precision)),
			WithdrawalFee: dec(raw.BaseWithdrawalFee),
			WithdrawMin:   dec(raw.MinWithdrawalAmount),
			Active:        raw.DepositStatus == "enabled" && raw.WithdrawalStatus == "enabled",
			Raw:           item,
		})
	}
	return currencies, nil
}

// buildMarkets maps raw product records to canonical markets. Output length
// always equals input length: a product with missing underlying or quoting
// asset is kept with empty identifiers rather than dropped, so catalog size
// stays in parity with the exchange's product list. Tick size and position
// limits are carried verbatim; no rounding happens at build time.
func buildMarkets(data []json.RawMessage) ([]*exchanges.Market, error) {
	markets := make([]*exchanges.Market, 0, len(data))
	for _, item := range data {
		var raw rawProduct
		if err := json.Unmarshal(item, &raw); err != nil {
			return nil, errors.Wrap(err, "delta: parse product")
		}

		var baseID, quoteID string
		if raw.UnderlyingAsset != nil {
			baseID = raw.UnderlyingAsset.Symbol
		}
		if raw.QuotingAsset != nil {
			quoteID = raw.QuotingAsset.Symbol
		}
		base := exchanges.CurrencyCode(baseID)
		quote := exchanges.CurrencyCode(quoteID)

		market := &exchanges.Market{
			ID:                raw.Symbol,
			NumericID:         raw.ID,
			Symbol:            raw.Symbol,
			Base:              base,
			Quote:             quote,
			BaseID:            baseID,
			QuoteID:           quoteID,
			Kind:              exchanges.ContractKindSpot,
			MakerFee:          dec(raw.MakerCommissionRate),
			TakerFee:          dec(raw.TakerCommissionRate),
			TickSize:          dec(raw.TickSize),
			AmountStep:        decimal.NewFromInt(1),
			PositionSizeLimit: dec(raw.PositionSizeLimit),
			Active:            raw.State == "live",
			Raw:               item,
		}

		switch raw.ContractType {
		case "perpetual_futures":
			// Perpetuals trade as a continuous pair, so they get the synthetic
			// base/quote symbol; every other kind keeps the raw id because
			// expiry or strike already encode uniqueness into it.
			market.Kind = exchanges.ContractKindSwap
			market.Swap = true
			market.Symbol = base + "/" + quote
		case "futures":
			market.Kind = exchanges.ContractKindFuture
			market.Future = true
		case "call_options", "put_options", "move_options":
			market.Kind = exchanges.ContractKindOption
			market.Option = true
		}

		markets = append(markets, market)
	}
	return markets, nil
}
