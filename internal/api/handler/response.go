package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/masum-abrar/nex-trade-backend/internal/core/domain"
)

// envelope is the canonical response shape for the admin panel:
// {success, message, data}.
type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

func respondOK(c echo.Context, status int, message string, data any) error {
	return c.JSON(status, envelope{Success: true, Message: message, Data: data})
}

func respondErr(c echo.Context, status int, message string) error {
	return c.JSON(status, envelope{Success: false, Message: message, Data: nil})
}

// sessionCookieName carries the signed session token; HTTP-only so
// scripts cannot read it.
const sessionCookieName = "accessToken"

func setSessionCookie(c echo.Context, token string) {
	c.SetCookie(&http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
	})
}

func clearSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
}

// loginData is the success payload for both login flows: the sanitized
// user record with the token alongside.
type loginData struct {
	*domain.User
	AccessToken string `json:"accessToken"`
}
