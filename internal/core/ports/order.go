package ports

import (
	"context"

	"github.com/masum-abrar/nex-trade-backend/internal/core/domain"
)

// PlaceOrderInput carries an order with numerics already coerced from
// the frontend's string fields.
type PlaceOrderInput struct {
	UserID           string
	ScriptName       string
	LTP              float64
	BidPrice         float64
	AskPrice         float64
	LTQ              float64
	OrderType        string
	LotSize          int
	OrderLots        int
	Quantity         int
	PriceType        string
	IsStopLossTarget bool
	StopLoss         *float64
	Target           *float64
	Margin           float64
	Carry            float64
	MarginLimit      float64
}

// OrderRepository persists trade orders.
type OrderRepository interface {
	Create(ctx context.Context, o *domain.TradeOrder) (*domain.TradeOrder, error)
	// ListExecuted returns all orders, newest first.
	ListExecuted(ctx context.Context) ([]domain.TradeOrder, error)
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*domain.TradeOrder, error)
}

// OrderService places, lists, and deletes trade orders.
type OrderService interface {
	Place(ctx context.Context, in PlaceOrderInput) (*domain.TradeOrder, error)
	ListExecuted(ctx context.Context) ([]domain.TradeOrder, error)
	Delete(ctx context.Context, id string) error
}
