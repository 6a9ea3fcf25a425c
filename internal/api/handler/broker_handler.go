package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/masum-abrar/nex-trade-backend/internal/core/domain"
	"github.com/masum-abrar/nex-trade-backend/internal/core/ports"
)

// BrokerHandler manages broker trading accounts and their login.
type BrokerHandler struct {
	brokers ports.BrokerService
}

func NewBrokerHandler(brokers ports.BrokerService) *BrokerHandler {
	return &BrokerHandler{brokers: brokers}
}

type brokerUserRequest struct {
	LoginUserID           string                             `json:"loginUsrid" validate:"required"`
	Username              string                             `json:"username" validate:"required"`
	Password              string                             `json:"password"`
	Role                  string                             `json:"role" validate:"required"`
	MarginType            string                             `json:"marginType"`
	SegmentAllow          []string                           `json:"segmentAllow"`
	IntradaySquare        bool                               `json:"intradaySquare"`
	LedgerBalanceClose    float64                            `json:"ledgerBalanceClose"`
	ProfitTradeHoldMinSec int                                `json:"profitTradeHoldMinSec"`
	LossTradeHoldMinSec   int                                `json:"lossTradeHoldMinSec"`
	Segments              map[string]domain.SegmentSettings `json:"segments"`
}

type brokerLoginRequest struct {
	LoginUserID string `json:"loginUsrid" validate:"required"`
	Password    string `json:"password"`
}

type brokerFundsRequest struct {
	LedgerBalanceClose float64 `json:"ledgerBalanceClose"`
	MarginUsed         float64 `json:"marginUsed"`
}

func (r brokerUserRequest) toInput() ports.BrokerUserInput {
	return ports.BrokerUserInput{
		LoginUserID:           r.LoginUserID,
		Username:              r.Username,
		Password:              r.Password,
		Role:                  r.Role,
		MarginType:            r.MarginType,
		SegmentAllow:          r.SegmentAllow,
		IntradaySquare:        r.IntradaySquare,
		LedgerBalanceClose:    r.LedgerBalanceClose,
		ProfitTradeHoldMinSec: r.ProfitTradeHoldMinSec,
		LossTradeHoldMinSec:   r.LossTradeHoldMinSec,
		Segments:              r.Segments,
	}
}

// Create registers a broker trading account.
//
// @Summary      Create a broker user
// @Tags         brokers
// @Accept       json
// @Produce      json
// @Param        body  body      brokerUserRequest  true  "Broker account"
// @Success      201   {object}  envelope
// @Failure      400   {object}  envelope
// @Failure      409   {object}  envelope
// @Router       /v1/brokerusers [post]
func (h *BrokerHandler) Create(c echo.Context) error {
	var req brokerUserRequest
	if err := c.Bind(&req); err != nil {
		return respondErr(c, http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return respondErr(c, http.StatusBadRequest, err.Error())
	}

	user, err := h.brokers.Create(c.Request().Context(), req.toInput())
	if err != nil {
		if errors.Is(err, domain.ErrBrokerUserExists) {
			return respondErr(c, http.StatusConflict, "User already exists")
		}
		return err
	}
	return respondOK(c, http.StatusCreated, "User created successfully", user)
}

// List returns every broker account.
//
// @Summary      List broker users
// @Tags         brokers
// @Produce      json
// @Success      200  {object}  envelope
// @Router       /v1/brokerusers [get]
func (h *BrokerHandler) List(c echo.Context) error {
	users, err := h.brokers.List(c.Request().Context())
	if err != nil {
		return err
	}
	if len(users) == 0 {
		return respondOK(c, http.StatusOK, "No user is available", nil)
	}
	return respondOK(c, http.StatusOK, fmt.Sprintf("%d users found", len(users)), users)
}

// Get returns a single broker account by its login id.
//
// @Summary      Get a broker user
// @Tags         brokers
// @Produce      json
// @Param        userId      path      string  true  "Broker login id"
// @Success      200         {object}  envelope
// @Failure      404         {object}  envelope
// @Router       /v1/brokerusers/{userId} [get]
func (h *BrokerHandler) Get(c echo.Context) error {
	user, err := h.brokers.Get(c.Request().Context(), c.Param("userId"))
	if err != nil {
		if errors.Is(err, domain.ErrBrokerUserNotFound) {
			return respondErr(c, http.StatusNotFound, "User not found")
		}
		return err
	}
	return respondOK(c, http.StatusOK, "1 user found", user)
}

// Update replaces a broker account's settings. An empty password keeps
// the stored one.
//
// @Summary      Update a broker user
// @Tags         brokers
// @Accept       json
// @Produce      json
// @Param        userId      path      string             true  "Broker login id"
// @Param        body        body      brokerUserRequest  true  "Broker account"
// @Success      200         {object}  envelope
// @Failure      400         {object}  envelope
// @Failure      404         {object}  envelope
// @Router       /v1/brokerusers/{userId} [put]
func (h *BrokerHandler) Update(c echo.Context) error {
	var req brokerUserRequest
	if err := c.Bind(&req); err != nil {
		return respondErr(c, http.StatusBadRequest, "invalid payload")
	}

	user, err := h.brokers.Update(c.Request().Context(), c.Param("userId"), req.toInput())
	if err != nil {
		if errors.Is(err, domain.ErrBrokerUserNotFound) {
			return respondErr(c, http.StatusNotFound, "User not found")
		}
		return err
	}
	return respondOK(c, http.StatusOK, "User updated successfully", user)
}

// UpdateFunds adjusts a broker account's ledger balance and used margin.
//
// @Summary      Update a broker user's funds
// @Tags         brokers
// @Accept       json
// @Produce      json
// @Param        userId      path      string              true  "Broker login id"
// @Param        body        body      brokerFundsRequest  true  "Funds"
// @Success      200         {object}  envelope
// @Failure      404         {object}  envelope
// @Router       /v1/brokerusers/{userId}/update-funds [put]
func (h *BrokerHandler) UpdateFunds(c echo.Context) error {
	var req brokerFundsRequest
	if err := c.Bind(&req); err != nil {
		return respondErr(c, http.StatusBadRequest, "invalid payload")
	}

	user, err := h.brokers.UpdateFunds(c.Request().Context(), c.Param("userId"),
		req.LedgerBalanceClose, req.MarginUsed)
	if err != nil {
		if errors.Is(err, domain.ErrBrokerUserNotFound) {
			return respondErr(c, http.StatusNotFound, "User not found")
		}
		return err
	}
	return respondOK(c, http.StatusOK, "Funds updated successfully", user)
}

// Login authenticates a broker account by its login id and password.
//
// @Summary      Broker user login
// @Tags         brokers
// @Accept       json
// @Produce      json
// @Param        body  body      brokerLoginRequest  true  "Broker credentials"
// @Success      200   {object}  envelope
// @Failure      401   {object}  envelope
// @Router       /v1/loginbrokerusers [post]
func (h *BrokerHandler) Login(c echo.Context) error {
	var req brokerLoginRequest
	if err := c.Bind(&req); err != nil {
		return respondErr(c, http.StatusBadRequest, "invalid payload")
	}

	result, err := h.brokers.Login(c.Request().Context(), req.LoginUserID, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			return respondErr(c, http.StatusUnauthorized, "Invalid credentials")
		}
		return err
	}
	return respondOK(c, http.StatusOK, "Logged In", map[string]any{
		"role":     result.Role,
		"userId":   result.UserID,
		"username": result.Username,
	})
}
