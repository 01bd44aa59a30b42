package exchanges

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Exchange defines the unified contract each exchange adapter must satisfy.
type Exchange interface {
	Name() string

	// Catalogs
	LoadMarkets(ctx context.Context, reload bool) error
	Currencies() map[string]*Currency
	Markets() []*Market
	Market(symbol string) (*Market, error)

	// Market data
	FetchTime(ctx context.Context) (time.Time, error)
	FetchStatus(ctx context.Context) (*Status, error)
	FetchTicker(ctx context.Context, symbol string) (*Ticker, error)
	FetchTickers(ctx context.Context) (map[string]*Ticker, error)
	FetchOrderBook(ctx context.Context, symbol string, depth int) (*OrderBook, error)
	FetchTrades(ctx context.Context, symbol string) ([]Trade, error)
	FetchOHLCV(ctx context.Context, symbol, timeframe string, since time.Time, limit int) ([]OHLCV, error)

	// Account
	FetchBalances(ctx context.Context) ([]Balance, error)
	FetchPositions(ctx context.Context) ([]Position, error)
	FetchPosition(ctx context.Context, symbol string) (*Position, error)
	FetchOpenOrders(ctx context.Context, opts ListOptions) ([]Order, PageInfo, error)
	FetchClosedOrders(ctx context.Context, opts ListOptions) ([]Order, PageInfo, error)
	FetchMyTrades(ctx context.Context, opts ListOptions) ([]Trade, PageInfo, error)
	FetchLedger(ctx context.Context, opts ListOptions) ([]LedgerEntry, PageInfo, error)
	FetchDepositAddress(ctx context.Context, code string) (*DepositAddress, error)

	// Trading
	CreateOrder(ctx context.Context, req *OrderRequest) (*Order, error)
	EditOrder(ctx context.Context, id, symbol string, amount, price decimal.Decimal) (*Order, error)
	CancelOrder(ctx context.Context, id, symbol string) (*Order, error)
	CancelAllOrders(ctx context.Context, symbol string) error
	SetLeverage(ctx context.Context, symbol string, leverage int) error
}
