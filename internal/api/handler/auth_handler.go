package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/masum-abrar/nex-trade-backend/internal/api/metrics"
	"github.com/masum-abrar/nex-trade-backend/internal/core/domain"
	"github.com/masum-abrar/nex-trade-backend/internal/core/ports"
)

// AuthHandler handles registration, both login flows, and logout.
type AuthHandler struct {
	auth ports.AuthService
}

func NewAuthHandler(auth ports.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Register creates a new user account. Behind the admin route the
// acting principal is recorded as created_by; on the open customer
// route the actor is empty.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "User registration details"
// @Success      200   {object}  envelope
// @Failure      400   {object}  envelope
// @Failure      409   {object}  envelope
// @Router       /v1/auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return respondErr(c, http.StatusBadRequest, "invalid payload")
	}

	user, err := h.auth.Register(c.Request().Context(), ports.RegisterInput{
		RoleID:               req.RoleID,
		ParentID:             req.ParentID,
		Name:                 req.Name,
		Email:                req.Email,
		Phone:                req.Phone,
		Address:              req.Address,
		BillingAddress:       req.BillingAddress,
		Country:              req.Country,
		City:                 req.City,
		PostalCode:           req.PostalCode,
		Password:             req.Password,
		InitialPaymentAmount: req.InitialPaymentAmount,
		InitialPaymentDue:    req.InitialPaymentDue,
		InstallmentTime:      req.InstallmentTime,
		ActorID:              ctxActorID(c),
	})
	if err != nil {
		var ve *domain.ValidationError
		switch {
		case errors.As(err, &ve):
			metrics.RegistrationsTotal.WithLabelValues("invalid").Inc()
			return respondErr(c, http.StatusBadRequest, ve.Error())
		case errors.Is(err, domain.ErrUserExists):
			metrics.RegistrationsTotal.WithLabelValues("duplicate").Inc()
			return respondErr(c, http.StatusConflict, "User already exists")
		}
		return err
	}

	metrics.RegistrationsTotal.WithLabelValues("created").Inc()
	return respondOK(c, http.StatusOK, "User has been created", user)
}

// Login authenticates with email/phone and password, sets the session
// cookie, and returns the sanitized user with the token.
//
// @Summary      Login with password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  envelope
// @Failure      401   {object}  envelope
// @Failure      404   {object}  envelope
// @Router       /v1/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return respondErr(c, http.StatusBadRequest, "invalid payload")
	}

	result, err := h.auth.LoginWithPassword(c.Request().Context(),
		ports.LoginIdentifier{Email: req.Email, Phone: req.Phone}, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrWrongCredentials):
			metrics.LoginsTotal.WithLabelValues("password", "not_found").Inc()
			return respondErr(c, http.StatusNotFound, "Wrong credentials")
		case errors.Is(err, domain.ErrNotAuthenticated):
			metrics.LoginsTotal.WithLabelValues("password", "inactive").Inc()
			return respondErr(c, http.StatusUnauthorized, "You are not authenticated!")
		case errors.Is(err, domain.ErrWrongPassword):
			// The panel has always reported a bad password as 404.
			metrics.LoginsTotal.WithLabelValues("password", "wrong_password").Inc()
			return respondErr(c, http.StatusNotFound, "Wrong password")
		}
		metrics.LoginsTotal.WithLabelValues("password", "error").Inc()
		return err
	}

	metrics.LoginsTotal.WithLabelValues("password", "success").Inc()
	setSessionCookie(c, result.Token)
	return respondOK(c, http.StatusOK, "Logged In", loginData{User: result.User, AccessToken: result.Token})
}

// SendLoginOTP issues (or re-sends) a one-time login code by email.
//
// @Summary      Send a login OTP
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      sendOTPRequest  true  "OTP request"
// @Success      200   {object}  envelope
// @Failure      400   {object}  envelope
// @Failure      401   {object}  envelope
// @Failure      404   {object}  envelope
// @Router       /v1/auth/send-login-otp [post]
func (h *AuthHandler) SendLoginOTP(c echo.Context) error {
	var req sendOTPRequest
	if err := c.Bind(&req); err != nil {
		return respondErr(c, http.StatusBadRequest, "invalid payload")
	}

	err := h.auth.RequestOTP(c.Request().Context(),
		ports.LoginIdentifier{Email: req.Email, Phone: req.Phone}, req.Type)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			return respondErr(c, http.StatusNotFound, "You are not registered")
		case errors.Is(err, domain.ErrNotPermitted):
			return respondErr(c, http.StatusUnauthorized, "You are not permitted!")
		case errors.Is(err, domain.ErrEmailNotRegistered):
			return respondErr(c, http.StatusBadRequest, "Email is not registered")
		}
		return err
	}

	metrics.OTPIssuedTotal.Inc()
	return respondOK(c, http.StatusOK, "Otp is sent to your mail", nil)
}

// LoginWithOTP verifies the emailed code and logs the user in. Codes
// are single-use: the first successful verification consumes them.
//
// @Summary      Login with OTP
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      otpLoginRequest  true  "OTP verification"
// @Success      200   {object}  envelope
// @Failure      400   {object}  envelope
// @Failure      404   {object}  envelope
// @Router       /v1/auth/login-with-otp [post]
func (h *AuthHandler) LoginWithOTP(c echo.Context) error {
	var req otpLoginRequest
	if err := c.Bind(&req); err != nil {
		return respondErr(c, http.StatusBadRequest, "invalid payload")
	}

	result, err := h.auth.LoginWithOTP(c.Request().Context(),
		ports.LoginIdentifier{Email: req.Email, Phone: req.Phone}, req.OTP)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			metrics.LoginsTotal.WithLabelValues("otp", "not_found").Inc()
			return respondErr(c, http.StatusNotFound, "You are not registered")
		case errors.Is(err, domain.ErrNoOTPIssued):
			metrics.LoginsTotal.WithLabelValues("otp", "no_otp").Inc()
			return respondErr(c, http.StatusBadRequest, "You didn't receive any OTP yet")
		case errors.Is(err, domain.ErrWrongOTP):
			metrics.LoginsTotal.WithLabelValues("otp", "wrong_otp").Inc()
			return respondErr(c, http.StatusBadRequest, "Wrong OTP")
		}
		metrics.LoginsTotal.WithLabelValues("otp", "error").Inc()
		return err
	}

	metrics.LoginsTotal.WithLabelValues("otp", "success").Inc()
	setSessionCookie(c, result.Token)
	return respondOK(c, http.StatusOK, "Logged In", loginData{User: result.User, AccessToken: result.Token})
}

// Logout clears the session cookie. Tokens carry no server-side state,
// so there is nothing else to revoke.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Success      200  {object}  envelope
// @Router       /v1/auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	clearSessionCookie(c)
	return respondOK(c, http.StatusOK, "Logged out", nil)
}
