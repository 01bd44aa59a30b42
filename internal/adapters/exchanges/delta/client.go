package delta

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"hermes/internal/adapters/exchanges"
	"hermes/internal/adapters/exchanges/ratelimit"
	"hermes/internal/adapters/exchanges/retry"
	"hermes/internal/adapters/exchanges/transport"
	"hermes/internal/metrics"
	"hermes/pkg/errors"
	"hermes/pkg/logger"
)

const (
	productionBaseURL = "https://api.delta.exchange"
	testnetBaseURL    = "https://testnet-api.delta.exchange"

	defaultCandleLimit = 2000 // exchange maximum
)

// Config configures the Delta Exchange adapter.
type Config struct {
	APIKey  string
	Secret  string
	Testnet bool
	BaseURL string // overrides Testnet selection when set

	HTTPClient      *http.Client
	Cache           transport.Cache
	CatalogCacheTTL time.Duration
	Limiter         *ratelimit.MultiLimiter
	Retry           *retry.Middleware
	Logger          *logger.Logger
}

// Client is the Delta Exchange adapter. It owns the market/currency catalog
// and composes the shared signed-HTTP transport with the exchange-specific
// signer, parsers and error classifier.
type Client struct {
	cfg       Config
	transport *transport.Client
	catalog   catalog
	log       *logger.Logger
}

var _ exchanges.Exchange = (*Client)(nil)

// NewClient constructs a new Delta adapter
func NewClient(cfg Config) (*Client, error) {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = productionBaseURL
		if cfg.Testnet {
			baseURL = testnetBaseURL
		}
	}
	if cfg.Limiter == nil {
		cfg.Limiter = ratelimit.NewDeltaLimiters()
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.Get()
	}
	if cfg.CatalogCacheTTL == 0 {
		cfg.CatalogCacheTTL = 5 * time.Minute
	}

	signer := &Signer{
		BaseURL: baseURL,
		APIKey:  cfg.APIKey,
		Secret:  cfg.Secret,
	}
	tr := transport.New(signer, Classifier{}, transport.Options{
		ExchangeName: "delta",
		HTTPClient:   cfg.HTTPClient,
		Limiter:      cfg.Limiter,
		Retry:        cfg.Retry,
		Cache:        cfg.Cache,
		Log:          cfg.Logger,
	})

	return &Client{
		cfg:       cfg,
		transport: tr,
		log:       cfg.Logger.With("exchange", "delta"),
	}, nil
}

func (c *Client) Name() string {
	return "delta"
}

// call executes one API call and unwraps the Delta response envelope
func (c *Client) call(ctx context.Context, req transport.Request) (json.RawMessage, error) {
	body, err := c.transport.Do(ctx, req)
	if err != nil {
		return nil, err
	}
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, errors.Wrap(err, "delta: decode response envelope")
	}
	return env.Result, nil
}

// callList is call for endpoints whose result is a JSON array. The envelope's
// page cursors, when transmitted, come back alongside the items.
func (c *Client) callList(ctx context.Context, req transport.Request) ([]json.RawMessage, exchanges.PageInfo, error) {
	body, err := c.transport.Do(ctx, req)
	if err != nil {
		return nil, exchanges.PageInfo{}, err
	}
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, exchanges.PageInfo{}, errors.Wrap(err, "delta: decode response envelope")
	}
	page := exchanges.PageInfo{}
	if env.Meta != nil {
		page.After = env.Meta.After
		page.Before = env.Meta.Before
	}
	if len(env.Result) == 0 {
		return nil, page, nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(env.Result, &items); err != nil {
		return nil, exchanges.PageInfo{}, errors.Wrap(err, "delta: decode response list")
	}
	return items, page, nil
}

// LoadMarkets populates the market and currency catalogs. The write lock is
// held across the fetch so concurrent first callers block on one load rather
// than each triggering their own. Reload rebuilds both catalogs and the
// numeric-id join tables wholesale.
func (c *Client) LoadMarkets(ctx context.Context, reload bool) error {
	c.catalog.mu.Lock()
	defer c.catalog.mu.Unlock()

	if c.catalog.loaded && !reload {
		return nil
	}

	assets, _, err := c.callList(ctx, transport.Request{
		Method:     http.MethodGet,
		Path:       "assets",
		Idempotent: true,
		CacheTTL:   c.cfg.CatalogCacheTTL,
	})
	if err != nil {
		return err
	}
	products, _, err := c.callList(ctx, transport.Request{
		Method:     http.MethodGet,
		Path:       "products",
		Idempotent: true,
		CacheTTL:   c.cfg.CatalogCacheTTL,
	})
	if err != nil {
		return err
	}

	currencies, err := buildCurrencies(assets)
	if err != nil {
		return err
	}
	markets, err := buildMarkets(products)
	if err != nil {
		return err
	}

	trigger := "initial"
	if c.catalog.loaded {
		trigger = "reload"
	}
	c.catalog.install(currencies, markets)
	metrics.CatalogLoads.WithLabelValues("delta", trigger).Inc()
	metrics.CatalogSize.WithLabelValues("delta").Set(float64(len(markets)))
	c.log.Debugw("catalog loaded", "markets", len(markets), "currencies", len(currencies))
	return nil
}

func (c *Client) ensureMarkets(ctx context.Context) error {
	return c.LoadMarkets(ctx, false)
}

// Currencies returns the loaded currency catalog keyed by code
func (c *Client) Currencies() map[string]*exchanges.Currency {
	c.catalog.mu.RLock()
	defer c.catalog.mu.RUnlock()
	out := make(map[string]*exchanges.Currency, len(c.catalog.currencies))
	for code, currency := range c.catalog.currencies {
		out[code] = currency
	}
	return out
}

// Markets returns all loaded markets
func (c *Client) Markets() []*exchanges.Market {
	c.catalog.mu.RLock()
	defer c.catalog.mu.RUnlock()
	return append([]*exchanges.Market(nil), c.catalog.markets...)
}

// Market resolves a canonical symbol or raw exchange id
func (c *Client) Market(symbol string) (*exchanges.Market, error) {
	return c.catalog.market(symbol)
}

// FetchTime returns the exchange server time (reported in microseconds)
func (c *Client) FetchTime(ctx context.Context) (time.Time, error) {
	result, err := c.call(ctx, transport.Request{
		Method:     http.MethodGet,
		Path:       "settings",
		Idempotent: true,
	})
	if err != nil {
		return time.Time{}, err
	}
	var settings rawSettings
	if err := json.Unmarshal(result, &settings); err != nil {
		return time.Time{}, errors.Wrap(err, "delta: parse settings")
	}
	return time.UnixMicro(settings.ServerTime), nil
}

// FetchStatus reports exchange availability from the settings endpoint
func (c *Client) FetchStatus(ctx context.Context) (*exchanges.Status, error) {
	result, err := c.call(ctx, transport.Request{
		Method:     http.MethodGet,
		Path:       "settings",
		Idempotent: true,
	})
	if err != nil {
		return nil, err
	}
	var settings rawSettings
	if err := json.Unmarshal(result, &settings); err != nil {
		return nil, errors.Wrap(err, "delta: parse settings")
	}
	return &exchanges.Status{
		OK:      settings.UnderMaintenance != "true",
		Updated: time.UnixMicro(settings.ServerTime),
		Raw:     result,
	}, nil
}

func (c *Client) FetchTicker(ctx context.Context, symbol string) (*exchanges.Ticker, error) {
	if err := c.ensureMarkets(ctx); err != nil {
		return nil, err
	}
	market, err := c.catalog.market(symbol)
	if err != nil {
		return nil, err
	}
	result, err := c.call(ctx, transport.Request{
		Method:     http.MethodGet,
		Path:       "tickers/{symbol}",
		Params:     map[string]interface{}{"symbol": market.ID},
		Idempotent: true,
	})
	if err != nil {
		return nil, err
	}
	return parseTicker(result, market.Symbol)
}

func (c *Client) FetchTickers(ctx context.Context) (map[string]*exchanges.Ticker, error) {
	if err := c.ensureMarkets(ctx); err != nil {
		return nil, err
	}
	items, _, err := c.callList(ctx, transport.Request{
		Method:     http.MethodGet,
		Path:       "tickers",
		Idempotent: true,
	})
	if err != nil {
		return nil, err
	}
	tickers := make(map[string]*exchanges.Ticker, len(items))
	for _, item := range items {
		ticker, err := parseTicker(item, "")
		if err != nil {
			return nil, err
		}
		if market, lookupErr := c.catalog.market(ticker.Symbol); lookupErr == nil {
			ticker.Symbol = market.Symbol
		}
		tickers[ticker.Symbol] = ticker
	}
	return tickers, nil
}

func (c *Client) FetchOrderBook(ctx context.Context, symbol string, depth int) (*exchanges.OrderBook, error) {
	if err := c.ensureMarkets(ctx); err != nil {
		return nil, err
	}
	market, err := c.catalog.market(symbol)
	if err != nil {
		return nil, err
	}
	params := map[string]interface{}{"symbol": market.ID}
	if depth > 0 {
		params["depth"] = depth
	}
	result, err := c.call(ctx, transport.Request{
		Method:     http.MethodGet,
		Path:       "l2orderbook/{symbol}",
		Params:     params,
		Idempotent: true,
	})
	if err != nil {
		return nil, err
	}
	return parseOrderBook(result, market.Symbol)
}

func (c *Client) FetchTrades(ctx context.Context, symbol string) ([]exchanges.Trade, error) {
	if err := c.ensureMarkets(ctx); err != nil {
		return nil, err
	}
	market, err := c.catalog.market(symbol)
	if err != nil {
		return nil, err
	}
	items, _, err := c.callList(ctx, transport.Request{
		Method:     http.MethodGet,
		Path:       "trades/{symbol}",
		Params:     map[string]interface{}{"symbol": market.ID},
		Idempotent: true,
	})
	if err != nil {
		return nil, err
	}
	trades := make([]exchanges.Trade, 0, len(items))
	for _, item := range items {
		trade, err := parseTrade(item, market.Symbol)
		if err != nil {
			return nil, err
		}
		trades = append(trades, *trade)
	}
	return trades, nil
}

// FetchOHLCV returns candles. When since is zero the window ends now and
// reaches back limit bars; otherwise it starts at since.
func (c *Client) FetchOHLCV(ctx context.Context, symbol, timeframe string, since time.Time, limit int) ([]exchanges.OHLCV, error) {
	if err := c.ensureMarkets(ctx); err != nil {
		return nil, err
	}
	market, err := c.catalog.market(symbol)
	if err != nil {
		return nil, err
	}
	token, err := resolution(timeframe)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = defaultCandleLimit
	}
	duration := int64(timeframeDuration(timeframe).Seconds())

	params := map[string]interface{}{
		"symbol":     market.ID,
		"resolution": token,
	}
	if since.IsZero() {
		end := time.Now().Unix()
		params["end"] = end
		params["start"] = end - int64(limit)*duration
	} else {
		start := since.Unix()
		params["start"] = start
		params["end"] = start + int64(limit)*duration
	}

	items, _, err := c.callList(ctx, transport.Request{
		Method:     http.MethodGet,
		Path:       "history/candles",
		Params:     params,
		Idempotent: true,
	})
	if err != nil {
		return nil, err
	}
	candles := make([]exchanges.OHLCV, 0, len(items))
	for _, item := range items {
		candle, err := parseOHLCV(item)
		if err != nil {
			return nil, err
		}
		candles = append(candles, candle)
	}
	return candles, nil
}

// FetchBalances resolves wallet entries, which carry only numeric asset ids,
// through the currency catalog's numeric-id join table.
func (c *Client) FetchBalances(ctx context.Context) ([]exchanges.Balance, error) {
	if err := c.ensureMarkets(ctx); err != nil {
		return nil, err
	}
	items, _, err := c.callList(ctx, transport.Request{
		Method:     http.MethodGet,
		Path:       "wallet/balances",
		Private:    true,
		Idempotent: true,
	})
	if err != nil {
		return nil, err
	}
	balances := make([]exchanges.Balance, 0, len(items))
	for _, item := range items {
		var probe rawBalance
		if err := json.Unmarshal(item, &probe); err != nil {
			return nil, errors.Wrap(err, "delta: parse balance")
		}
		balance, err := parseBalance(item, c.catalog.currencyByNumericID(probe.AssetID))
		if err != nil {
			return nil, err
		}
		balances = append(balances, balance)
	}
	return balances, nil
}

func (c *Client) FetchPositions(ctx context.Context) ([]exchanges.Position, error) {
	if err := c.ensureMarkets(ctx); err != nil {
		return nil, err
	}
	items, _, err := c.callList(ctx, transport.Request{
		Method:     http.MethodGet,
		Path:       "positions/margined",
		Private:    true,
		Idempotent: true,
	})
	if err != nil {
		return nil, err
	}
	positions := make([]exchanges.Position, 0, len(items))
	for _, item := range items {
		var probe rawPosition
		if err := json.Unmarshal(item, &probe); err != nil {
			return nil, errors.Wrap(err, "delta: parse position")
		}
		position, err := parsePosition(item, c.catalog.marketByNumericID(probe.ProductID))
		if err != nil {
			return nil, err
		}
		positions = append(positions, position)
	}
	return positions, nil
}

func (c *Client) FetchPosition(ctx context.Context, symbol string) (*exchanges.Position, error) {
	if err := c.ensureMarkets(ctx); err != nil {
		return nil, err
	}
	market, err := c.catalog.market(symbol)
	if err != nil {
		return nil, err
	}
	result, err := c.call(ctx, transport.Request{
		Method:     http.MethodGet,
		Path:       "positions",
		Params:     map[string]interface{}{"product_id": market.NumericID},
		Private:    true,
		Idempotent: true,
	})
	if err != nil {
		return nil, err
	}
	position, err := parsePosition(result, market)
	if err != nil {
		return nil, err
	}
	position.ProductID = market.NumericID
	return &position, nil
}

// ordersEndpoint identifies one of the two order list endpoints. Both share
// the same fetch routine and differ only in the path.
type ordersEndpoint struct {
	name string
	path string
}

var (
	endpointOpenOrders   = ordersEndpoint{name: "open", path: "orders"}
	endpointOrderHistory = ordersEndpoint{name: "history", path: "orders/history"}
)

func (c *Client) FetchOpenOrders(ctx context.Context, opts exchanges.ListOptions) ([]exchanges.Order, exchanges.PageInfo, error) {
	return c.fetchOrders(ctx, endpointOpenOrders, opts)
}

func (c *Client) FetchClosedOrders(ctx context.Context, opts exchanges.ListOptions) ([]exchanges.Order, exchanges.PageInfo, error) {
	return c.fetchOrders(ctx, endpointOrderHistory, opts)
}

func (c *Client) fetchOrders(ctx context.Context, endpoint ordersEndpoint, opts exchanges.ListOptions) ([]exchanges.Order, exchanges.PageInfo, error) {
	if err := c.ensureMarkets(ctx); err != nil {
		return nil, exchanges.PageInfo{}, err
	}
	params, market, err := c.listParams(opts)
	if err != nil {
		return nil, exchanges.PageInfo{}, err
	}
	items, page, err := c.callList(ctx, transport.Request{
		Method:     http.MethodGet,
		Path:       endpoint.path,
		Params:     params,
		Private:    true,
		Idempotent: true,
	})
	if err != nil {
		return nil, exchanges.PageInfo{}, err
	}
	orders := make([]exchanges.Order, 0, len(items))
	for _, item := range items {
		resolved := market
		if resolved == nil {
			var probe rawOrder
			if err := json.Unmarshal(item, &probe); err == nil {
				resolved = c.catalog.marketByNumericID(probe.ProductID)
			}
		}
		order, err := parseOrder(item, resolved)
		if err != nil {
			return nil, exchanges.PageInfo{}, err
		}
		orders = append(orders, *order)
	}
	return orders, page, nil
}

func (c *Client) FetchMyTrades(ctx context.Context, opts exchanges.ListOptions) ([]exchanges.Trade, exchanges.PageInfo, error) {
	if err := c.ensureMarkets(ctx); err != nil {
		return nil, exchanges.PageInfo{}, err
	}
	params, market, err := c.listParams(opts)
	if err != nil {
		return nil, exchanges.PageInfo{}, err
	}
	items, page, err := c.callList(ctx, transport.Request{
		Method:     http.MethodGet,
		Path:       "fills",
		Params:     params,
		Private:    true,
		Idempotent: true,
	})
	if err != nil {
		return nil, exchanges.PageInfo{}, err
	}
	trades := make([]exchanges.Trade, 0, len(items))
	for _, item := range items {
		symbol := ""
		if market != nil {
			symbol = market.Symbol
		} else {
			var probe rawTrade
			if err := json.Unmarshal(item, &probe); err == nil {
				if resolved := c.catalog.marketByNumericID(probe.ProductID); resolved != nil {
					symbol = resolved.Symbol
				}
			}
		}
		trade, err := parseTrade(item, symbol)
		if err != nil {
			return nil, exchanges.PageInfo{}, err
		}
		trades = append(trades, *trade)
	}
	return trades, page, nil
}

// FetchLedger lists wallet transactions, resolving numeric asset ids through
// the currency catalog.
func (c *Client) FetchLedger(ctx context.Context, opts exchanges.ListOptions) ([]exchanges.LedgerEntry, exchanges.PageInfo, error) {
	if err := c.ensureMarkets(ctx); err != nil {
		return nil, exchanges.PageInfo{}, err
	}
	params := map[string]interface{}{}
	if opts.Code != "" {
		currency, err := c.catalog.currency(opts.Code)
		if err != nil {
			return nil, exchanges.PageInfo{}, err
		}
		params["asset_id"] = currency.NumericID
	}
	applyCursors(params, opts)
	items, page, err := c.callList(ctx, transport.Request{
		Method:     http.MethodGet,
		Path:       "wallet/transactions",
		Params:     params,
		Private:    true,
		Idempotent: true,
	})
	if err != nil {
		return nil, exchanges.PageInfo{}, err
	}
	entries := make([]exchanges.LedgerEntry, 0, len(items))
	for _, item := range items {
		var probe rawLedgerEntry
		if err := json.Unmarshal(item, &probe); err != nil {
			return nil, exchanges.PageInfo{}, errors.Wrap(err, "delta: parse ledger entry")
		}
		entry, err := parseLedgerEntry(item, c.catalog.currencyByNumericID(probe.AssetID))
		if err != nil {
			return nil, exchanges.PageInfo{}, err
		}
		entries = append(entries, entry)
	}
	return entries, page, nil
}

func (c *Client) FetchDepositAddress(ctx context.Context, code string) (*exchanges.DepositAddress, error) {
	if err := c.ensureMarkets(ctx); err != nil {
		return nil, err
	}
	currency, err := c.catalog.currency(code)
	if err != nil {
		return nil, err
	}
	result, err := c.call(ctx, transport.Request{
		Method:     http.MethodGet,
		Path:       "deposits/address",
		Params:     map[string]interface{}{"asset_symbol": currency.ExchangeID},
		Private:    true,
		Idempotent: true,
	})
	if err != nil {
		return nil, err
	}
	return parseDepositAddress(result, currency.Code)
}

// CreateOrder places an order. Orders are sized in whole contracts and keyed
// by the market's numeric id; market orders never transmit a price. Not
// idempotent: the transport never retries it, a timeout leaves the outcome
// unknown to the caller.
func (c *Client) CreateOrder(ctx context.Context, req *exchanges.OrderRequest) (*exchanges.Order, error) {
	if req == nil || req.Symbol == "" {
		return nil, errors.Wrap(errors.ErrMissingArgument, "delta: createOrder requires a symbol")
	}
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, errors.Wrap(exchanges.ErrInvalidRequest, "delta: createOrder requires a positive amount")
	}
	if req.Type != exchanges.OrderTypeLimit && req.Type != exchanges.OrderTypeMarket {
		return nil, errors.Wrapf(exchanges.ErrInvalidRequest, "delta: unsupported order type %q", req.Type)
	}
	if err := c.ensureMarkets(ctx); err != nil {
		return nil, err
	}
	market, err := c.catalog.market(req.Symbol)
	if err != nil {
		return nil, err
	}

	clientOrderID := req.ClientOrderID
	if clientOrderID == "" {
		clientOrderID = uuid.NewString()
	}
	params := map[string]interface{}{
		"product_id":      market.NumericID,
		"size":            req.Amount.IntPart(),
		"side":            string(req.Side),
		"order_type":      string(req.Type) + "_order",
		"client_order_id": clientOrderID,
	}
	if req.Type == exchanges.OrderTypeLimit {
		params["limit_price"] = req.Price.String()
	}

	result, err := c.call(ctx, transport.Request{
		Method:  http.MethodPost,
		Path:    "orders",
		Params:  params,
		Private: true,
		Limits:  []string{"global", "trading"},
	})
	if err != nil {
		return nil, err
	}
	return parseOrder(result, market)
}

// EditOrder amends the size and/or price of an open order. Not idempotent,
// same as CreateOrder.
func (c *Client) EditOrder(ctx context.Context, id, symbol string, amount, price decimal.Decimal) (*exchanges.Order, error) {
	if symbol == "" {
		return nil, errors.Wrap(errors.ErrMissingArgument, "delta: editOrder requires a symbol")
	}
	if err := c.ensureMarkets(ctx); err != nil {
		return nil, err
	}
	market, err := c.catalog.market(symbol)
	if err != nil {
		return nil, err
	}
	orderID, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInvalidInput, "delta: order id %q", id)
	}

	params := map[string]interface{}{
		"id":         orderID,
		"product_id": market.NumericID,
	}
	if !amount.IsZero() {
		params["size"] = amount.IntPart()
	}
	if !price.IsZero() {
		params["limit_price"] = price.String()
	}

	result, err := c.call(ctx, transport.Request{
		Method:  http.MethodPut,
		Path:    "orders",
		Params:  params,
		Private: true,
		Limits:  []string{"global", "trading"},
	})
	if err != nil {
		return nil, err
	}
	return parseOrder(result, market)
}

// CancelOrder cancels one order. The exchange has no symbol-less
// cancel-by-id endpoint, so a missing symbol fails fast before any network
// call.
func (c *Client) CancelOrder(ctx context.Context, id, symbol string) (*exchanges.Order, error) {
	if symbol == "" {
		return nil, errors.Wrap(errors.ErrMissingArgument, "delta: cancelOrder requires a symbol")
	}
	if err := c.ensureMarkets(ctx); err != nil {
		return nil, err
	}
	market, err := c.catalog.market(symbol)
	if err != nil {
		return nil, err
	}
	orderID, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInvalidInput, "delta: order id %q", id)
	}

	result, err := c.call(ctx, transport.Request{
		Method: http.MethodDelete,
		Path:   "orders",
		Params: map[string]interface{}{
			"id":         orderID,
			"product_id": market.NumericID,
		},
		Private:    true,
		Idempotent: true,
		Limits:     []string{"global", "trading"},
	})
	if err != nil {
		return nil, err
	}
	return parseOrder(result, market)
}

// CancelAllOrders cancels every open order on one market
func (c *Client) CancelAllOrders(ctx context.Context, symbol string) error {
	if symbol == "" {
		return errors.Wrap(errors.ErrMissingArgument, "delta: cancelAllOrders requires a symbol")
	}
	if err := c.ensureMarkets(ctx); err != nil {
		return err
	}
	market, err := c.catalog.market(symbol)
	if err != nil {
		return err
	}
	_, err = c.call(ctx, transport.Request{
		Method:     http.MethodDelete,
		Path:       "orders/all",
		Params:     map[string]interface{}{"product_id": market.NumericID},
		Private:    true,
		Idempotent: true,
		Limits:     []string{"global", "trading"},
	})
	return err
}

// SetLeverage sets order leverage for one market
func (c *Client) SetLeverage(ctx context.Context, symbol string, leverage int) error {
	if symbol == "" {
		return errors.Wrap(errors.ErrMissingArgument, "delta: setLeverage requires a symbol")
	}
	if err := c.ensureMarkets(ctx); err != nil {
		return err
	}
	market, err := c.catalog.market(symbol)
	if err != nil {
		return err
	}
	_, err = c.call(ctx, transport.Request{
		Method: http.MethodPost,
		Path:   "orders/leverage",
		Params: map[string]interface{}{
			"product_id": market.NumericID,
			"leverage":   leverage,
		},
		Private:    true,
		Idempotent: true,
		Limits:     []string{"global", "trading"},
	})
	return err
}

// listParams builds the shared filter set for order/fill list endpoints.
// start_time is microseconds, pagination is cursor-based.
func (c *Client) listParams(opts exchanges.ListOptions) (map[string]interface{}, *exchanges.Market, error) {
	params := map[string]interface{}{}
	var market *exchanges.Market
	if opts.Symbol != "" {
		var err error
		market, err = c.catalog.market(opts.Symbol)
		if err != nil {
			return nil, nil, err
		}
		params["product_ids"] = strconv.FormatInt(market.NumericID, 10)
	}
	if !opts.Since.IsZero() {
		params["start_time"] = opts.Since.UnixMicro()
	}
	applyCursors(params, opts)
	return params, market, nil
}

func applyCursors(params map[string]interface{}, opts exchanges.ListOptions) {
	if opts.PageSize > 0 {
		params["page_size"] = opts.PageSize
	}
	if opts.After != "" {
		params["after"] = opts.After
	}
	if opts.Before != "" {
		params["before"] = opts.Before
	}
}
