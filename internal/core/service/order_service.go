package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/masum-abrar/nex-trade-backend/internal/core/domain"
	"github.com/masum-abrar/nex-trade-backend/internal/core/ports"
)

// OrderService places, lists, and deletes trade orders.
type OrderService struct {
	orders ports.OrderRepository
	logger zerolog.Logger
}

func NewOrderService(orders ports.OrderRepository, logger zerolog.Logger) *OrderService {
	return &OrderService{orders: orders, logger: logger}
}

func (s *OrderService) Place(ctx context.Context, in ports.PlaceOrderInput) (*domain.TradeOrder, error) {
	order := &domain.TradeOrder{
		UserID:           in.UserID,
		ScriptName:       in.ScriptName,
		LTP:              in.LTP,
		BidPrice:         in.BidPrice,
		AskPrice:         in.AskPrice,
		LTQ:              in.LTQ,
		OrderType:        in.OrderType,
		LotSize:          in.LotSize,
		OrderLots:        in.OrderLots,
		Quantity:         in.Quantity,
		PriceType:        in.PriceType,
		IsStopLossTarget: in.IsStopLossTarget,
		StopLoss:         in.StopLoss,
		Target:           in.Target,
		Margin:           in.Margin,
		Carry:            in.Carry,
		MarginLimit:      in.MarginLimit,
		CreatedAt:        time.Now().UTC(),
	}

	created, err := s.orders.Create(ctx, order)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("order_id", created.ID).
		Str("script", created.ScriptName).
		Str("order_type", created.OrderType).
		Msg("order placed")
	return created, nil
}

func (s *OrderService) ListExecuted(ctx context.Context) ([]domain.TradeOrder, error) {
	return s.orders.ListExecuted(ctx)
}

// Delete removes an order; absent orders report ErrOrderNotFound.
func (s *OrderService) Delete(ctx context.Context, id string) error {
	if _, err := s.orders.FindByID(ctx, id); err != nil {
		return err
	}
	return s.orders.Delete(ctx, id)
}
