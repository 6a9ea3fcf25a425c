package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/masum-abrar/nex-trade-backend/internal/core/domain"
	"github.com/masum-abrar/nex-trade-backend/internal/core/ports"
)

type stubAuthService struct {
	registerFn     func(ctx context.Context, in ports.RegisterInput) (*domain.User, error)
	loginFn        func(ctx context.Context, id ports.LoginIdentifier, password string) (*ports.LoginResult, error)
	requestOTPFn   func(ctx context.Context, id ports.LoginIdentifier, loginType string) error
	loginWithOTPFn func(ctx context.Context, id ports.LoginIdentifier, code string) (*ports.LoginResult, error)
}

func (s *stubAuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	return s.registerFn(ctx, in)
}

func (s *stubAuthService) LoginWithPassword(ctx context.Context, id ports.LoginIdentifier, password string) (*ports.LoginResult, error) {
	return s.loginFn(ctx, id, password)
}

func (s *stubAuthService) RequestOTP(ctx context.Context, id ports.LoginIdentifier, loginType string) error {
	return s.requestOTPFn(ctx, id, loginType)
}

func (s *stubAuthService) LoginWithOTP(ctx context.Context, id ports.LoginIdentifier, code string) (*ports.LoginResult, error) {
	return s.loginWithOTPFn(ctx, id, code)
}

func postJSON(t *testing.T, e *echo.Echo, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	return resp
}

func TestAuthHandler_Register_Success(t *testing.T) {
	e := echo.New()
	stub := &stubAuthService{
		registerFn: func(_ context.Context, in ports.RegisterInput) (*domain.User, error) {
			if in.Name != "Alice" || in.Email != "alice@example.com" {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &domain.User{ID: "user_1", Name: in.Name, Email: in.Email, IsActive: true}, nil
		},
	}
	h := NewAuthHandler(stub)

	c, rec := postJSON(t, e, "/v1/auth/register",
		`{"name":"Alice","email":"alice@example.com","phone":"017","address":"a","billingAddress":"b","country":"BD","city":"Dhaka","password":"pw"}`)
	if err := h.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	resp := decodeEnvelope(t, rec)
	if resp["success"] != true || resp["message"] != "User has been created" {
		t.Fatalf("unexpected envelope: %+v", resp)
	}
	user, ok := resp["data"].(map[string]any)
	if !ok || user["id"] != "user_1" {
		t.Fatalf("unexpected data payload: %+v", resp["data"])
	}
}

func TestAuthHandler_Register_MissingField(t *testing.T) {
	e := echo.New()
	stub := &stubAuthService{
		registerFn: func(_ context.Context, _ ports.RegisterInput) (*domain.User, error) {
			return nil, &domain.ValidationError{Field: "Shipping Address"}
		},
	}
	h := NewAuthHandler(stub)

	c, rec := postJSON(t, e, "/v1/auth/register", `{"name":"Alice"}`)
	_ = h.Register(c)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	resp := decodeEnvelope(t, rec)
	if resp["message"] != "Shipping Address is required" {
		t.Fatalf("unexpected message: %v", resp["message"])
	}
}

func TestAuthHandler_Register_Duplicate(t *testing.T) {
	e := echo.New()
	stub := &stubAuthService{
		registerFn: func(_ context.Context, _ ports.RegisterInput) (*domain.User, error) {
			return nil, domain.ErrUserExists
		},
	}
	h := NewAuthHandler(stub)

	c, rec := postJSON(t, e, "/v1/auth/register", `{"name":"Alice"}`)
	_ = h.Register(c)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
	resp := decodeEnvelope(t, rec)
	if resp["message"] != "User already exists" {
		t.Fatalf("unexpected message: %v", resp["message"])
	}
}

func TestAuthHandler_Login_Success_SetsCookie(t *testing.T) {
	e := echo.New()
	stub := &stubAuthService{
		loginFn: func(_ context.Context, id ports.LoginIdentifier, password string) (*ports.LoginResult, error) {
			if id.Email != "alice@example.com" || password != "pw" {
				t.Fatalf("unexpected args: %+v %s", id, password)
			}
			return &ports.LoginResult{
				Token: "token123",
				User:  &domain.User{ID: "user_1", Name: "Alice", IsActive: true},
			}, nil
		},
	}
	h := NewAuthHandler(stub)

	c, rec := postJSON(t, e, "/v1/auth/login", `{"email":"alice@example.com","password":"pw"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	resp := decodeEnvelope(t, rec)
	if resp["message"] != "Logged In" {
		t.Fatalf("unexpected message: %v", resp["message"])
	}
	data, ok := resp["data"].(map[string]any)
	if !ok || data["accessToken"] != "token123" || data["id"] != "user_1" {
		t.Fatalf("unexpected data payload: %+v", resp["data"])
	}

	cookies := rec.Result().Cookies()
	var found *http.Cookie
	for _, ck := range cookies {
		if ck.Name == "accessToken" {
			found = ck
		}
	}
	if found == nil {
		t.Fatalf("expected accessToken cookie")
	}
	if found.Value != "token123" || !found.HttpOnly {
		t.Fatalf("unexpected cookie: %+v", found)
	}
}

func TestAuthHandler_Login_ErrorStatuses(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"unknown user", domain.ErrWrongCredentials, http.StatusNotFound, "Wrong credentials"},
		{"inactive user", domain.ErrNotAuthenticated, http.StatusUnauthorized, "You are not authenticated!"},
		{"wrong password", domain.ErrWrongPassword, http.StatusNotFound, "Wrong password"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			stub := &stubAuthService{
				loginFn: func(_ context.Context, _ ports.LoginIdentifier, _ string) (*ports.LoginResult, error) {
					return nil, tc.err
				},
			}
			h := NewAuthHandler(stub)

			c, rec := postJSON(t, e, "/v1/auth/login", `{"email":"a@b.c","password":"x"}`)
			_ = h.Login(c)

			if rec.Code != tc.status {
				t.Fatalf("expected %d, got %d", tc.status, rec.Code)
			}
			resp := decodeEnvelope(t, rec)
			if resp["message"] != tc.message {
				t.Fatalf("expected %q, got %v", tc.message, resp["message"])
			}
		})
	}
}

func TestAuthHandler_SendLoginOTP(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"success", nil, http.StatusOK, "Otp is sent to your mail"},
		{"unknown user", domain.ErrUserNotFound, http.StatusNotFound, "You are not registered"},
		{"admin without role", domain.ErrNotPermitted, http.StatusUnauthorized, "You are not permitted!"},
		{"no email", domain.ErrEmailNotRegistered, http.StatusBadRequest, "Email is not registered"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			stub := &stubAuthService{
				requestOTPFn: func(_ context.Context, _ ports.LoginIdentifier, _ string) error {
					return tc.err
				},
			}
			h := NewAuthHandler(stub)

			c, rec := postJSON(t, e, "/v1/auth/send-login-otp", `{"email":"a@b.c","type":"admin"}`)
			_ = h.SendLoginOTP(c)

			if rec.Code != tc.status {
				t.Fatalf("expected %d, got %d", tc.status, rec.Code)
			}
			resp := decodeEnvelope(t, rec)
			if resp["message"] != tc.message {
				t.Fatalf("expected %q, got %v", tc.message, resp["message"])
			}
		})
	}
}

func TestAuthHandler_LoginWithOTP(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"no pending code", domain.ErrNoOTPIssued, http.StatusBadRequest, "You didn't receive any OTP yet"},
		{"wrong code", domain.ErrWrongOTP, http.StatusBadRequest, "Wrong OTP"},
		{"unknown user", domain.ErrUserNotFound, http.StatusNotFound, "You are not registered"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			stub := &stubAuthService{
				loginWithOTPFn: func(_ context.Context, _ ports.LoginIdentifier, _ string) (*ports.LoginResult, error) {
					return nil, tc.err
				},
			}
			h := NewAuthHandler(stub)

			c, rec := postJSON(t, e, "/v1/auth/login-with-otp", `{"email":"a@b.c","otp":"123456"}`)
			_ = h.LoginWithOTP(c)

			if rec.Code != tc.status {
				t.Fatalf("expected %d, got %d", tc.status, rec.Code)
			}
			resp := decodeEnvelope(t, rec)
			if resp["message"] != tc.message {
				t.Fatalf("expected %q, got %v", tc.message, resp["message"])
			}
		})
	}
}

func TestAuthHandler_Logout_ClearsCookie(t *testing.T) {
	e := echo.New()
	h := NewAuthHandler(&stubAuthService{})

	c, rec := postJSON(t, e, "/v1/auth/logout", "")
	if err := h.Logout(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var found *http.Cookie
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == "accessToken" {
			found = ck
		}
	}
	if found == nil {
		t.Fatalf("expected accessToken cookie")
	}
	if found.Value != "" || found.MaxAge != -1 {
		t.Fatalf("expected expired empty cookie, got %+v", found)
	}
}
