package domain

import (
	"errors"
	"time"
)

var ErrOrderNotFound = errors.New("order not found")

// TradeOrder is a flat transactional record for a placed order. Numeric
// fields arrive as strings from the trading frontend and are coerced at
// the transport boundary.
type TradeOrder struct {
	ID               string    `json:"id" bson:"_id,omitempty"`
	UserID           string    `json:"userId" bson:"user_id"`
	ScriptName       string    `json:"scriptName" bson:"script_name"`
	LTP              float64   `json:"ltp" bson:"ltp"`
	BidPrice         float64   `json:"bidPrice" bson:"bid_price"`
	AskPrice         float64   `json:"askPrice" bson:"ask_price"`
	LTQ              float64   `json:"ltq" bson:"ltq"`
	OrderType        string    `json:"orderType" bson:"order_type"`
	LotSize          int       `json:"lotSize" bson:"lot_size"`
	OrderLots        int       `json:"orderLots" bson:"order_lots"`
	Quantity         int       `json:"quantity" bson:"quantity"`
	PriceType        string    `json:"priceType" bson:"price_type"`
	IsStopLossTarget bool      `json:"isStopLossTarget" bson:"is_stop_loss_target"`
	StopLoss         *float64  `json:"stopLoss,omitempty" bson:"stop_loss,omitempty"`
	Target           *float64  `json:"target,omitempty" bson:"target,omitempty"`
	Margin           float64   `json:"margin" bson:"margin"`
	Carry            float64   `json:"carry" bson:"carry"`
	MarginLimit      float64   `json:"marginLimit" bson:"margin_limit"`
	CreatedAt        time.Time `json:"createdAt" bson:"created_at"`
}
