package exchanges

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// ContractKind classifies the contract families a derivatives exchange lists.
type ContractKind string

const (
	ContractKindSpot   ContractKind = "spot"
	ContractKindSwap   ContractKind = "swap"
	ContractKindFuture ContractKind = "future"
	ContractKindOption ContractKind = "option"
)

// OrderSide defines buy or sell direction.
type OrderSide string

const (
	OrderSideBuy  OrderSide = "buy"
	OrderSideSell OrderSide = "sell"
)

// OrderType defines supported order execution types.
type OrderType string

const (
	OrderTypeMarket OrderType = "market"
	OrderTypeLimit  OrderType = "limit"
)

// Currency is a canonical asset record. Code and NumericID are both keys into
// the currency catalog; NumericID is the join key used by wallet and ledger
// responses, which only carry numeric asset ids.
type Currency struct {
	Code          string
	ExchangeID    string
	NumericID     int64
	Name          string
	Precision     decimal.Decimal // 10^-decimalPlaces
	WithdrawalFee decimal.Decimal
	WithdrawMin   decimal.Decimal
	Active        bool
	Raw           json.RawMessage
}

// Market is a canonical market record. ID is the exchange symbol string and is
// unique within a catalog; NumericID is the only identifier accepted by the
// order and position endpoints. Symbol is base+"/"+quote for swaps and the raw
// exchange id for everything else.
type Market struct {
	ID                string
	NumericID         int64
	Symbol            string
	Base              string
	Quote             string
	BaseID            string
	QuoteID           string
	Kind              ContractKind
	Option            bool
	Swap              bool
	Future            bool
	MakerFee          decimal.Decimal
	TakerFee          decimal.Decimal
	TickSize          decimal.Decimal
	AmountStep        decimal.Decimal // contracts are integer-sized
	PositionSizeLimit decimal.Decimal
	Active            bool
	Raw               json.RawMessage
}

// Ticker is a point-in-time market snapshot. Change, Average, PercentChange
// and VWAP are derived, never transmitted; nil means underivable from the
// snapshot (PercentChange is nil whenever Open is zero).
type Ticker struct {
	Symbol        string
	Timestamp     time.Time
	High          decimal.Decimal
	Low           decimal.Decimal
	Open          decimal.Decimal
	Close         decimal.Decimal
	BaseVolume    decimal.Decimal
	QuoteVolume   decimal.Decimal
	VWAP          *decimal.Decimal
	Change        *decimal.Decimal
	Average       *decimal.Decimal
	PercentChange *decimal.Decimal
}

// Trade describes a single trade print. Side is inferred from the seller's
// role on exchanges that do not transmit it directly.
type Trade struct {
	Timestamp time.Time
	Symbol    string
	Side      OrderSide
	Price     decimal.Decimal
	Amount    decimal.Decimal
	Cost      decimal.Decimal
}

// OHLCV is one candle.
type OHLCV struct {
	Timestamp time.Time
	Open      decimal.Decimal
	High      decimal.Decimal
	Low       decimal.Decimal
	Close     decimal.Decimal
	Volume    decimal.Decimal
}

// OrderBookLevel is a single price level.
type OrderBookLevel struct {
	Price  decimal.Decimal
	Amount decimal.Decimal
}

// OrderBook captures aggregated bid/ask data.
type OrderBook struct {
	Symbol    string
	Bids      []OrderBookLevel
	Asks      []OrderBookLevel
	Timestamp time.Time
}

// Order represents a normalized exchange order. Status carries the exchange's
// own lifecycle vocabulary (open, pending, closed, cancelled) without
// reinterpretation.
type Order struct {
	ID            string
	ClientOrderID string
	Symbol        string
	NumericID     int64 // product id of the market
	Side          OrderSide
	Type          OrderType
	Price         decimal.Decimal
	Size          decimal.Decimal
	Filled        decimal.Decimal // size minus unfilled size
	Status        string
	CreatedAt     time.Time
	Raw           json.RawMessage
}

// OrderRequest is the unified payload for order placement.
type OrderRequest struct {
	Symbol        string
	Side          OrderSide
	Type          OrderType
	Amount        decimal.Decimal
	Price         decimal.Decimal
	ClientOrderID string
}

// Balance holds one wallet entry, resolved from the numeric asset id carried
// in the wallet response to a currency code.
type Balance struct {
	Currency string
	AssetID  int64
	Total    decimal.Decimal
	Free     decimal.Decimal
}

// Position is a pass-through margined position record keyed by product id.
type Position struct {
	Symbol           string
	ProductID        int64
	Size             decimal.Decimal
	EntryPrice       decimal.Decimal
	Margin           decimal.Decimal
	LiquidationPrice decimal.Decimal
	BankruptcyPrice  decimal.Decimal
	ADLLevel         int64
	Raw              json.RawMessage
}

// LedgerEntry is a single wallet balance-affecting event (funding, fee, PnL
// settlement), resolved from numeric asset id to currency code.
type LedgerEntry struct {
	ID        string
	Currency  string
	AssetID   int64
	ProductID int64
	Type      string
	Amount    decimal.Decimal
	Balance   decimal.Decimal
	CreatedAt time.Time
	Raw       json.RawMessage
}

// DepositAddress is a deposit address for a currency.
type DepositAddress struct {
	Currency string
	Address  string
	Status   string
}

// Status reports exchange availability.
type Status struct {
	OK      bool
	Updated time.Time
	Raw     json.RawMessage
}

// ListOptions filters order/trade/ledger list endpoints. Pagination uses the
// exchange's opaque after/before cursors, never offset/limit.
type ListOptions struct {
	Symbol   string
	Code     string // currency code, ledger only
	Since    time.Time
	PageSize int
	After    string
	Before   string
}

// PageInfo carries the opaque cursors returned alongside a list page. Feed
// After/Before back through ListOptions to walk forward or backward; empty
// cursors mean the exchange sent none.
type PageInfo struct {
	After  string
	Before string
}
