package delta

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Wire-level structures for the Delta Exchange v2 REST API. Every response is
// wrapped in the same envelope; list endpoints additionally carry cursor meta.

// The success flag is redundant with the error object and is not decoded;
// classification keys off error presence and HTTP status.
type envelope struct {
	Result json.RawMessage `json:"result"`
	Meta   *pageMeta       `json:"meta,omitempty"`
	Error  *apiError       `json:"error,omitempty"`
}

type apiError struct {
	Code    string          `json:"code"`
	Context json.RawMessage `json:"context,omitempty"`
}

type pageMeta struct {
	After  string `json:"after,omitempty"`
	Before string `json:"before,omitempty"`
}

type rawAsset struct {
	ID                  int64       `json:"id"`
	Symbol              string      `json:"symbol"`
	Name                string      `json:"name"`
	Precision           int         `json:"precision"`
	DepositStatus       string      `json:"deposit_status"`
	WithdrawalStatus    string      `json:"withdrawal_status"`
	BaseWithdrawalFee   json.Number `json:"base_withdrawal_fee"`
	MinWithdrawalAmount json.Number `json:"min_withdrawal_amount"`
}

type rawAssetRef struct {
	Symbol string `json:"symbol"`
}

type rawProduct struct {
	ID                  int64        `json:"id"`
	Symbol              string       `json:"symbol"`
	ContractType        string       `json:"contract_type"`
	TickSize            json.Number  `json:"tick_size"`
	PositionSizeLimit   json.Number  `json:"position_size_limit"`
	MakerCommissionRate json.Number  `json:"maker_commission_rate"`
	TakerCommissionRate json.Number  `json:"taker_commission_rate"`
	State               string       `json:"state"`
	UnderlyingAsset     *rawAssetRef `json:"underlying_asset"`
	QuotingAsset        *rawAssetRef `json:"quoting_asset"`
}

// Ticker and trade timestamps are microseconds; this is a Delta-wide unit
// convention, candles are the one endpoint reporting seconds instead.
type rawTicker struct {
	Symbol    string      `json:"symbol"`
	Timestamp int64       `json:"timestamp"`
	High      json.Number `json:"high"`
	Low       json.Number `json:"low"`
	Open      json.Number `json:"open"`
	Close     json.Number `json:"close"`
	Volume    json.Number `json:"volume"`
	Turnover  json.Number `json:"turnover"`
}

// rawTrade covers both public trade prints (timestamp + roles) and private
// fills (created_at + explicit side).
type rawTrade struct {
	Symbol     string      `json:"symbol"`
	Timestamp  int64       `json:"timestamp,omitempty"`
	CreatedAt  string      `json:"created_at,omitempty"`
	Price      json.Number `json:"price"`
	Size       json.Number `json:"size"`
	Side       string      `json:"side,omitempty"`
	SellerRole string      `json:"seller_role,omitempty"`
	BuyerRole  string      `json:"buyer_role,omitempty"`
	ProductID  int64       `json:"product_id,omitempty"`
}

type rawCandle struct {
	Time   int64       `json:"time"`
	Open   json.Number `json:"open"`
	High   json.Number `json:"high"`
	Low    json.Number `json:"low"`
	Close  json.Number `json:"close"`
	Volume json.Number `json:"volume"`
}

type rawOrder struct {
	ID            json.Number `json:"id"`
	ClientOrderID string      `json:"client_order_id,omitempty"`
	ProductID     int64       `json:"product_id"`
	LimitPrice    json.Number `json:"limit_price"`
	Side          string      `json:"side"`
	Size          json.Number `json:"size"`
	UnfilledSize  json.Number `json:"unfilled_size"`
	OrderType     string      `json:"order_type"`
	State         string      `json:"state"`
	CreatedAt     string      `json:"created_at"`
}

type rawBalance struct {
	AssetID          int64       `json:"asset_id"`
	Balance          json.Number `json:"balance"`
	AvailableBalance json.Number `json:"available_balance"`
}

type rawPosition struct {
	ProductID        int64       `json:"product_id"`
	Size             json.Number `json:"size"`
	EntryPrice       json.Number `json:"entry_price"`
	Margin           json.Number `json:"margin"`
	LiquidationPrice json.Number `json:"liquidation_price"`
	BankruptcyPrice  json.Number `json:"bankruptcy_price"`
	ADLLevel         int64       `json:"adl_level"`
}

type rawLedgerEntry struct {
	ID              json.Number `json:"id"`
	Amount          json.Number `json:"amount"`
	Balance         json.Number `json:"balance"`
	TransactionType string      `json:"transaction_type"`
	ProductID       int64       `json:"product_id"`
	AssetID         int64       `json:"asset_id"`
	CreatedAt       string      `json:"created_at"`
}

type rawDepositAddress struct {
	Address     string `json:"address"`
	Status      string `json:"status"`
	AssetSymbol string `json:"asset_symbol"`
}

type rawBookLevel struct {
	Price json.Number `json:"price"`
	Size  json.Number `json:"size"`
}

type rawOrderBook struct {
	Buy    []rawBookLevel `json:"buy"`
	Sell   []rawBookLevel `json:"sell"`
	Symbol string         `json:"symbol"`
}

type rawSettings struct {
	ServerTime       int64  `json:"server_time"`
	UnderMaintenance string `json:"under_maintenance"`
}

func dec(n json.Number) decimal.Decimal {
	d, err := decimal.NewFromString(n.String())
	if err != nil {
		return decimal.Zero
	}
	return d
}
