package service

import (
	"context"
	"strconv"
	"testing"

	"github.com/rs/zerolog"

	"github.com/masum-abrar/nex-trade-backend/internal/core/domain"
	"github.com/masum-abrar/nex-trade-backend/internal/core/ports"
)

type stubOrderRepo struct {
	orders map[string]*domain.TradeOrder
	nextID int
}

func newStubOrderRepo() *stubOrderRepo {
	return &stubOrderRepo{orders: make(map[string]*domain.TradeOrder)}
}

func (r *stubOrderRepo) Create(_ context.Context, o *domain.TradeOrder) (*domain.TradeOrder, error) {
	copy := *o
	r.nextID++
	copy.ID = "order_" + strconv.Itoa(r.nextID)
	r.orders[copy.ID] = &copy
	result := copy
	return &result, nil
}

func (r *stubOrderRepo) ListExecuted(_ context.Context) ([]domain.TradeOrder, error) {
	out := make([]domain.TradeOrder, 0, len(r.orders))
	for _, o := range r.orders {
		out = append(out, *o)
	}
	return out, nil
}

func (r *stubOrderRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.orders[id]; !ok {
		return domain.ErrOrderNotFound
	}
	delete(r.orders, id)
	return nil
}

func (r *stubOrderRepo) FindByID(_ context.Context, id string) (*domain.TradeOrder, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	result := *o
	return &result, nil
}

func TestOrderService_Place(t *testing.T) {
	repo := newStubOrderRepo()
	svc := NewOrderService(repo, zerolog.Nop())

	stopLoss := 98.5
	created, err := svc.Place(context.Background(), ports.PlaceOrderInput{
		UserID:           "BRK001",
		ScriptName:       "GOLD24FEB",
		LTP:              101.25,
		OrderType:        "buy",
		LotSize:          100,
		OrderLots:        2,
		Quantity:         200,
		PriceType:        "market",
		IsStopLossTarget: true,
		StopLoss:         &stopLoss,
	})
	if err != nil {
		t.Fatalf("Place failed: %v", err)
	}
	if created.ID == "" {
		t.Fatalf("expected assigned id")
	}
	if created.CreatedAt.IsZero() {
		t.Fatalf("expected creation timestamp")
	}
	if created.StopLoss == nil || *created.StopLoss != 98.5 {
		t.Fatalf("unexpected stop loss: %v", created.StopLoss)
	}
	if created.Target != nil {
		t.Fatalf("target should stay unset")
	}
}

func TestOrderService_Delete(t *testing.T) {
	repo := newStubOrderRepo()
	svc := NewOrderService(repo, zerolog.Nop())

	created, err := svc.Place(context.Background(), ports.PlaceOrderInput{
		UserID:     "BRK001",
		ScriptName: "GOLD24FEB",
		OrderType:  "sell",
	})
	if err != nil {
		t.Fatalf("Place failed: %v", err)
	}

	if err := svc.Delete(context.Background(), created.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := svc.Delete(context.Background(), created.ID); err != domain.ErrOrderNotFound {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
}
