package handler

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/masum-abrar/nex-trade-backend/internal/api/metrics"
	"github.com/masum-abrar/nex-trade-backend/internal/core/domain"
	"github.com/masum-abrar/nex-trade-backend/internal/core/ports"
)

// OrderHandler places, lists, and deletes trade orders.
type OrderHandler struct {
	orders ports.OrderService
}

func NewOrderHandler(orders ports.OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

// numeric accepts a JSON number, a quoted number, null, or the empty
// string. The trading frontend sends prices as strings, so the
// coercion happens here at the transport boundary.
type numeric struct {
	value float64
	set   bool
}

func (n *numeric) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(bytes.TrimSpace(data), `"`)
	if len(data) == 0 || string(data) == "null" {
		return nil
	}
	f, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return fmt.Errorf("invalid number %q", data)
	}
	n.value = f
	n.set = true
	return nil
}

func (n numeric) Float() float64 { return n.value }

func (n numeric) Int() int { return int(n.value) }

func (n numeric) FloatPtr() *float64 {
	if !n.set {
		return nil
	}
	f := n.value
	return &f
}

// placeOrderRequest mirrors the trading frontend's order form.
type placeOrderRequest struct {
	UserID           string  `json:"userId" validate:"required"`
	ScriptName       string  `json:"scriptName" validate:"required"`
	LTP              numeric `json:"ltp"`
	BidPrice         numeric `json:"bidPrice"`
	AskPrice         numeric `json:"askPrice"`
	LTQ              numeric `json:"ltq"`
	OrderType        string  `json:"orderType" validate:"required"`
	LotSize          numeric `json:"lotSize"`
	OrderLots        numeric `json:"orderLots"`
	Quantity         numeric `json:"quantity"`
	PriceType        string  `json:"priceType"`
	IsStopLossTarget bool    `json:"isStopLossTarget"`
	StopLoss         numeric `json:"stopLoss"`
	Target           numeric `json:"target"`
	Margin           numeric `json:"margin"`
	Carry            numeric `json:"carry"`
	MarginLimit      numeric `json:"marginLimit"`
}

// Place records a trade order.
//
// @Summary      Place a trade order
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        body  body      placeOrderRequest  true  "Order details"
// @Success      201   {object}  envelope
// @Failure      400   {object}  envelope
// @Router       /v1/tradeorder [post]
func (h *OrderHandler) Place(c echo.Context) error {
	var req placeOrderRequest
	if err := c.Bind(&req); err != nil {
		return respondErr(c, http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return respondErr(c, http.StatusBadRequest, err.Error())
	}

	order, err := h.orders.Place(c.Request().Context(), ports.PlaceOrderInput{
		UserID:           req.UserID,
		ScriptName:       req.ScriptName,
		LTP:              req.LTP.Float(),
		BidPrice:         req.BidPrice.Float(),
		AskPrice:         req.AskPrice.Float(),
		LTQ:              req.LTQ.Float(),
		OrderType:        req.OrderType,
		LotSize:          req.LotSize.Int(),
		OrderLots:        req.OrderLots.Int(),
		Quantity:         req.Quantity.Int(),
		PriceType:        req.PriceType,
		IsStopLossTarget: req.IsStopLossTarget,
		StopLoss:         req.StopLoss.FloatPtr(),
		Target:           req.Target.FloatPtr(),
		Margin:           req.Margin.Float(),
		Carry:            req.Carry.Float(),
		MarginLimit:      req.MarginLimit.Float(),
	})
	if err != nil {
		return err
	}

	metrics.OrdersPlacedTotal.WithLabelValues(order.OrderType).Inc()
	return respondOK(c, http.StatusCreated, "Order placed successfully", order)
}

// ListExecuted returns all executed orders, newest first.
//
// @Summary      List executed orders
// @Tags         orders
// @Produce      json
// @Success      200  {object}  envelope
// @Router       /v1/executed-orders [get]
func (h *OrderHandler) ListExecuted(c echo.Context) error {
	orders, err := h.orders.ListExecuted(c.Request().Context())
	if err != nil {
		return err
	}
	if len(orders) == 0 {
		return respondOK(c, http.StatusOK, "No order is available", nil)
	}
	return respondOK(c, http.StatusOK, fmt.Sprintf("%d orders found", len(orders)), orders)
}

// Delete removes an order by id.
//
// @Summary      Delete an order
// @Tags         orders
// @Produce      json
// @Param        id   path      string  true  "Order id"
// @Success      200  {object}  envelope
// @Failure      404  {object}  envelope
// @Router       /v1/delete-order/{id} [delete]
func (h *OrderHandler) Delete(c echo.Context) error {
	if err := h.orders.Delete(c.Request().Context(), c.Param("id")); err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) {
			return respondErr(c, http.StatusNotFound, "Order not found")
		}
		return err
	}
	return respondOK(c, http.StatusOK, "Order deleted successfully", nil)
}
