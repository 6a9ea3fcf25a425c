package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/masum-abrar/nex-trade-backend/internal/core/domain"
)

// errorEnvelope matches the panel's uniform response shape.
type errorEnvelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders the consistent JSON envelope: {success, message, data}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorEnvelope{Success: false, Message: msg, Data: nil})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return http.StatusBadRequest, ve.Error()
	}

	// Known domain errors → deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrUserExists):
		return http.StatusConflict, "User already exists"
	case errors.Is(err, domain.ErrWrongCredentials):
		return http.StatusNotFound, "Wrong credentials"
	case errors.Is(err, domain.ErrWrongPassword):
		return http.StatusNotFound, "Wrong password"
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, "No user is available"
	case errors.Is(err, domain.ErrNotAuthenticated):
		return http.StatusUnauthorized, "You are not authenticated!"
	case errors.Is(err, domain.ErrNotPermitted):
		return http.StatusUnauthorized, "You are not permitted!"
	case errors.Is(err, domain.ErrNoOTPIssued):
		return http.StatusBadRequest, "You didn't receive any OTP yet"
	case errors.Is(err, domain.ErrWrongOTP):
		return http.StatusBadRequest, "Wrong OTP"
	case errors.Is(err, domain.ErrEmailNotRegistered):
		return http.StatusBadRequest, "Email is not registered"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "Invalid credentials"
	case errors.Is(err, domain.ErrBrokerUserNotFound):
		return http.StatusNotFound, "Broker user not found"
	case errors.Is(err, domain.ErrBrokerUserExists):
		return http.StatusConflict, "Broker user already exists"
	case errors.Is(err, domain.ErrOrderNotFound):
		return http.StatusNotFound, "Order not found"
	case errors.Is(err, domain.ErrDepositNotFound):
		return http.StatusNotFound, "Deposit not found"
	case errors.Is(err, domain.ErrWithdrawNotFound):
		return http.StatusNotFound, "Withdraw not found"
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "Something went wrong. Try again."
}
