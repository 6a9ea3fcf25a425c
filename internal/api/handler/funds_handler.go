package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/masum-abrar/nex-trade-backend/internal/api/metrics"
	"github.com/masum-abrar/nex-trade-backend/internal/core/domain"
	"github.com/masum-abrar/nex-trade-backend/internal/core/ports"
)

// FundsHandler records deposits and withdraws and moves them through
// their approval lifecycle.
type FundsHandler struct {
	funds ports.FundsService
}

func NewFundsHandler(funds ports.FundsService) *FundsHandler {
	return &FundsHandler{funds: funds}
}

type createDepositRequest struct {
	LoginUserID string  `json:"loginUserId" validate:"required"`
	Amount      numeric `json:"depositAmount"`
	Type        string  `json:"depositType"`
	Image       string  `json:"depositImage"`
}

type createWithdrawRequest struct {
	LoginUserID string  `json:"loginUserId" validate:"required"`
	Amount      numeric `json:"withdrawAmount"`
	Type        string  `json:"withdrawType"`
}

type fundStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending approved rejected"`
}

// CreateDeposit records an inbound payment as pending.
//
// @Summary      Record a deposit
// @Tags         funds
// @Accept       json
// @Produce      json
// @Param        body  body      createDepositRequest  true  "Deposit details"
// @Success      201   {object}  envelope
// @Failure      400   {object}  envelope
// @Router       /v1/deposite [post]
func (h *FundsHandler) CreateDeposit(c echo.Context) error {
	var req createDepositRequest
	if err := c.Bind(&req); err != nil {
		return respondErr(c, http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return respondErr(c, http.StatusBadRequest, err.Error())
	}

	deposit, err := h.funds.CreateDeposit(c.Request().Context(), ports.CreateDepositInput{
		LoginUserID: req.LoginUserID,
		Amount:      req.Amount.Float(),
		Type:        req.Type,
		Image:       req.Image,
	})
	if err != nil {
		return err
	}

	metrics.FundMovementsTotal.WithLabelValues("deposit").Inc()
	return respondOK(c, http.StatusCreated, "Deposit created successfully", deposit)
}

// ListDeposits returns every deposit, newest first.
//
// @Summary      List deposits
// @Tags         funds
// @Produce      json
// @Success      200  {object}  envelope
// @Router       /v1/deposites [get]
func (h *FundsHandler) ListDeposits(c echo.Context) error {
	deposits, err := h.funds.ListDeposits(c.Request().Context())
	if err != nil {
		return err
	}
	if len(deposits) == 0 {
		return respondOK(c, http.StatusOK, "No deposit is available", nil)
	}
	return respondOK(c, http.StatusOK, fmt.Sprintf("%d deposits found", len(deposits)), deposits)
}

// UpdateDepositStatus approves or rejects a pending deposit.
//
// @Summary      Update a deposit's status
// @Tags         funds
// @Accept       json
// @Produce      json
// @Param        id    path      string             true  "Deposit id"
// @Param        body  body      fundStatusRequest  true  "New status"
// @Success      200   {object}  envelope
// @Failure      400   {object}  envelope
// @Failure      404   {object}  envelope
// @Router       /v1/update-deposites/{id}/status [put]
func (h *FundsHandler) UpdateDepositStatus(c echo.Context) error {
	var req fundStatusRequest
	if err := c.Bind(&req); err != nil {
		return respondErr(c, http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return respondErr(c, http.StatusBadRequest, err.Error())
	}

	deposit, err := h.funds.UpdateDepositStatus(c.Request().Context(), c.Param("id"), req.Status)
	if err != nil {
		if errors.Is(err, domain.ErrDepositNotFound) {
			return respondErr(c, http.StatusNotFound, "Deposit not found")
		}
		return err
	}
	return respondOK(c, http.StatusOK, "Deposit status updated successfully", deposit)
}

// CreateWithdraw records an outbound payment request as pending.
//
// @Summary      Record a withdraw
// @Tags         funds
// @Accept       json
// @Produce      json
// @Param        body  body      createWithdrawRequest  true  "Withdraw details"
// @Success      201   {object}  envelope
// @Failure      400   {object}  envelope
// @Router       /v1/withdraw [post]
func (h *FundsHandler) CreateWithdraw(c echo.Context) error {
	var req createWithdrawRequest
	if err := c.Bind(&req); err != nil {
		return respondErr(c, http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return respondErr(c, http.StatusBadRequest, err.Error())
	}

	withdraw, err := h.funds.CreateWithdraw(c.Request().Context(), ports.CreateWithdrawInput{
		LoginUserID: req.LoginUserID,
		Amount:      req.Amount.Float(),
		Type:        req.Type,
	})
	if err != nil {
		return err
	}

	metrics.FundMovementsTotal.WithLabelValues("withdraw").Inc()
	return respondOK(c, http.StatusCreated, "Withdraw created successfully", withdraw)
}

// ListWithdraws returns every withdraw, newest first.
//
// @Summary      List withdraws
// @Tags         funds
// @Produce      json
// @Success      200  {object}  envelope
// @Router       /v1/withdraws [get]
func (h *FundsHandler) ListWithdraws(c echo.Context) error {
	withdraws, err := h.funds.ListWithdraws(c.Request().Context())
	if err != nil {
		return err
	}
	if len(withdraws) == 0 {
		return respondOK(c, http.StatusOK, "No withdraw is available", nil)
	}
	return respondOK(c, http.StatusOK, fmt.Sprintf("%d withdraws found", len(withdraws)), withdraws)
}

// UpdateWithdrawStatus approves or rejects a pending withdraw.
//
// @Summary      Update a withdraw's status
// @Tags         funds
// @Accept       json
// @Produce      json
// @Param        id    path      string             true  "Withdraw id"
// @Param        body  body      fundStatusRequest  true  "New status"
// @Success      200   {object}  envelope
// @Failure      400   {object}  envelope
// @Failure      404   {object}  envelope
// @Router       /v1/update-withdraws/{id}/status [put]
func (h *FundsHandler) UpdateWithdrawStatus(c echo.Context) error {
	var req fundStatusRequest
	if err := c.Bind(&req); err != nil {
		return respondErr(c, http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return respondErr(c, http.StatusBadRequest, err.Error())
	}

	withdraw, err := h.funds.UpdateWithdrawStatus(c.Request().Context(), c.Param("id"), req.Status)
	if err != nil {
		if errors.Is(err, domain.ErrWithdrawNotFound) {
			return respondErr(c, http.StatusNotFound, "Withdraw not found")
		}
		return err
	}
	return respondOK(c, http.StatusOK, "Withdraw status updated successfully", withdraw)
}
