package domain

import (
	"errors"
	"time"
)

var ErrBrokerUserNotFound = errors.New("broker user not found")
var ErrBrokerUserExists = errors.New("broker user already exists")
var ErrInvalidCredentials = errors.New("invalid credentials")

// Trading segments a broker account can be configured for.
const (
	SegmentMCX        = "mcx"
	SegmentMCXOptBuy  = "mcx_opt_buy"
	SegmentMCXOptSell = "mcx_opt_sell"
	SegmentMCXOpt     = "mcx_opt"
	SegmentIdxNSE     = "idx_nse"
	SegmentIdxOptBuy  = "idx_opt_buy"
	SegmentIdxOptSell = "idx_opt_sell"
	SegmentIdxOpt     = "idx_opt"
	SegmentStkOptBuy  = "stk_opt_buy"
	SegmentStkOptSell = "stk_opt_sell"
	SegmentStkOpt     = "stk_opt"
)

// SegmentSettings holds per-segment trading limits and commissions.
// Not every field applies to every segment; unused ones stay zero.
type SegmentSettings struct {
	CommissionType       string  `json:"commissionType,omitempty" bson:"commission_type,omitempty"`
	Commission           float64 `json:"commission,omitempty" bson:"commission,omitempty"`
	Strike               float64 `json:"strike,omitempty" bson:"strike,omitempty"`
	Allow                bool    `json:"allow" bson:"allow"`
	MaxExchLots          int     `json:"maxExchLots,omitempty" bson:"max_exch_lots,omitempty"`
	MaxLots              int     `json:"maxLots,omitempty" bson:"max_lots,omitempty"`
	OrderLots            int     `json:"orderLots,omitempty" bson:"order_lots,omitempty"`
	LimitPercentage      float64 `json:"limitPercentage,omitempty" bson:"limit_percentage,omitempty"`
	Intraday             float64 `json:"intraday,omitempty" bson:"intraday,omitempty"`
	Holding              float64 `json:"holding,omitempty" bson:"holding,omitempty"`
	SellingOvernight     bool    `json:"sellingOvernight,omitempty" bson:"selling_overnight,omitempty"`
	ExpiryLossHold       float64 `json:"expiryLossHold,omitempty" bson:"expiry_loss_hold,omitempty"`
	ExpiryProfitHold     float64 `json:"expiryProfitHold,omitempty" bson:"expiry_profit_hold,omitempty"`
	ExpiryIntradayMargin float64 `json:"expiryIntradayMargin,omitempty" bson:"expiry_intraday_margin,omitempty"`
}

// BrokerUser is a trading account managed by the admin panel. It shares
// the credential concept with User (broker login) but is otherwise an
// independent aggregate.
type BrokerUser struct {
	ID                    string                     `json:"id" bson:"_id,omitempty"`
	LoginUserID           string                     `json:"loginUsrid" bson:"login_usrid"`
	Username              string                     `json:"username" bson:"username"`
	PasswordHash          string                     `json:"-" bson:"password_hash"`
	Role                  string                     `json:"role" bson:"role"`
	MarginType            string                     `json:"marginType,omitempty" bson:"margin_type,omitempty"`
	SegmentAllow          []string                   `json:"segmentAllow,omitempty" bson:"segment_allow,omitempty"`
	IntradaySquare        bool                       `json:"intradaySquare" bson:"intraday_square"`
	LedgerBalanceClose    float64                    `json:"ledgerBalanceClose" bson:"ledger_balance_close"`
	MarginUsed            float64                    `json:"marginUsed" bson:"margin_used"`
	ProfitTradeHoldMinSec int                        `json:"profitTradeHoldMinSec,omitempty" bson:"profit_trade_hold_min_sec,omitempty"`
	LossTradeHoldMinSec   int                        `json:"lossTradeHoldMinSec,omitempty" bson:"loss_trade_hold_min_sec,omitempty"`
	Segments              map[string]SegmentSettings `json:"segments,omitempty" bson:"segments,omitempty"`
	CreatedAt             time.Time                  `json:"createdAt" bson:"created_at"`
	UpdatedAt             time.Time                  `json:"updatedAt" bson:"updated_at"`
}
