package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/masum-abrar/nex-trade-backend/internal/core/domain"
	"github.com/masum-abrar/nex-trade-backend/internal/core/ports"
)

type stubOrderService struct {
	placeFn  func(ctx context.Context, in ports.PlaceOrderInput) (*domain.TradeOrder, error)
	listFn   func(ctx context.Context) ([]domain.TradeOrder, error)
	deleteFn func(ctx context.Context, id string) error
}

func (s *stubOrderService) Place(ctx context.Context, in ports.PlaceOrderInput) (*domain.TradeOrder, error) {
	return s.placeFn(ctx, in)
}

func (s *stubOrderService) ListExecuted(ctx context.Context) ([]domain.TradeOrder, error) {
	return s.listFn(ctx)
}

func (s *stubOrderService) Delete(ctx context.Context, id string) error {
	return s.deleteFn(ctx, id)
}

func TestNumeric_CoercesStringsAndNumbers(t *testing.T) {
	var req placeOrderRequest
	payload := `{
		"userId": "BRK001",
		"scriptName": "GOLD24FEB",
		"orderType": "buy",
		"ltp": "101.25",
		"bidPrice": 100.5,
		"lotSize": "100",
		"stopLoss": "98.5",
		"target": null,
		"margin": ""
	}`
	if err := json.Unmarshal([]byte(payload), &req); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	if req.LTP.Float() != 101.25 {
		t.Fatalf("string price not coerced: %v", req.LTP.Float())
	}
	if req.BidPrice.Float() != 100.5 {
		t.Fatalf("plain number broken: %v", req.BidPrice.Float())
	}
	if req.LotSize.Int() != 100 {
		t.Fatalf("string int not coerced: %v", req.LotSize.Int())
	}
	if ptr := req.StopLoss.FloatPtr(); ptr == nil || *ptr != 98.5 {
		t.Fatalf("stop loss pointer wrong: %v", ptr)
	}
	if req.Target.FloatPtr() != nil {
		t.Fatalf("null must stay unset")
	}
	if req.Margin.FloatPtr() != nil || req.Margin.Float() != 0 {
		t.Fatalf("empty string must stay unset and zero")
	}
}

func TestNumeric_RejectsGarbage(t *testing.T) {
	var req placeOrderRequest
	if err := json.Unmarshal([]byte(`{"ltp":"abc"}`), &req); err == nil {
		t.Fatalf("expected error for non-numeric string")
	}
}

func TestOrderHandler_Place(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()

	stub := &stubOrderService{
		placeFn: func(_ context.Context, in ports.PlaceOrderInput) (*domain.TradeOrder, error) {
			if in.LTP != 101.25 || in.Quantity != 200 {
				t.Fatalf("coerced input wrong: %+v", in)
			}
			return &domain.TradeOrder{ID: "order_1", OrderType: in.OrderType}, nil
		},
	}
	h := NewOrderHandler(stub)

	c, rec := postJSON(t, e, "/v1/tradeorder",
		`{"userId":"BRK001","scriptName":"GOLD24FEB","orderType":"buy","ltp":"101.25","quantity":"200"}`)
	if err := h.Place(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	resp := decodeEnvelope(t, rec)
	if resp["message"] != "Order placed successfully" {
		t.Fatalf("unexpected message: %v", resp["message"])
	}
}

func TestOrderHandler_Place_MissingRequired(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()

	stub := &stubOrderService{
		placeFn: func(_ context.Context, _ ports.PlaceOrderInput) (*domain.TradeOrder, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	h := NewOrderHandler(stub)

	c, rec := postJSON(t, e, "/v1/tradeorder", `{"scriptName":"GOLD24FEB"}`)
	_ = h.Place(c)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestOrderHandler_Delete_NotFound(t *testing.T) {
	e := echo.New()
	stub := &stubOrderService{
		deleteFn: func(_ context.Context, _ string) error {
			return domain.ErrOrderNotFound
		},
	}
	h := NewOrderHandler(stub)

	req := httptest.NewRequest(http.MethodDelete, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("missing")

	_ = h.Delete(c)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
