package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/masum-abrar/nex-trade-backend/internal/core/domain"
	"github.com/masum-abrar/nex-trade-backend/internal/core/ports"
)

// UserHandler handles the admin-panel user CRUD surface.
type UserHandler struct {
	users ports.UserService
}

func NewUserHandler(users ports.UserService) *UserHandler {
	return &UserHandler{users: users}
}

type updateUserRequest struct {
	RoleID               string  `json:"roleId"`
	Name                 string  `json:"name"`
	Email                string  `json:"email"`
	Phone                string  `json:"phone"`
	Address              string  `json:"address"`
	BillingAddress       string  `json:"billingAddress"`
	Country              string  `json:"country"`
	City                 string  `json:"city"`
	PostalCode           string  `json:"postalCode"`
	Image                string  `json:"image"`
	InitialPaymentAmount float64 `json:"initialPaymentAmount"`
	InitialPaymentDue    string  `json:"initialPaymentDue"`
	InstallmentTime      string  `json:"installmentTime"`
}

// List returns users scoped by the caller's role: super-admins see all,
// everyone else sees their own sub-accounts.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Param        name    query  string  false  "Name filter (contains)"
// @Param        email   query  string  false  "Email filter (contains)"
// @Param        phone   query  string  false  "Phone filter (contains)"
// @Param        active  query  string  false  "active or inactive"
// @Param        page    query  int     false  "Page number"
// @Param        limit   query  int     false  "Page size"
// @Success      200  {object}  envelope
// @Router       /v1/auth/users [get]
func (h *UserHandler) List(c echo.Context) error {
	caller, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	users, err := h.users.ListUsers(c.Request().Context(), listInput(c, caller))
	if err != nil {
		return err
	}
	return listResponse(c, users)
}

// ListSubAccounts returns only the caller's sub-accounts.
//
// @Summary      List the caller's sub-accounts
// @Tags         users
// @Produce      json
// @Success      200  {object}  envelope
// @Router       /v1/auth/user/users [get]
func (h *UserHandler) ListSubAccounts(c echo.Context) error {
	caller, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	users, err := h.users.ListSubAccounts(c.Request().Context(), listInput(c, caller))
	if err != nil {
		return err
	}
	return listResponse(c, users)
}

// Get returns a single live user.
//
// @Summary      Get a user
// @Tags         users
// @Produce      json
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  envelope
// @Failure      404  {object}  envelope
// @Router       /v1/auth/users/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	user, err := h.users.GetUser(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return respondErr(c, http.StatusNotFound, "No user is available")
		}
		return err
	}
	return respondOK(c, http.StatusOK, "1 user found", user)
}

// Update mutates a user's profile.
//
// @Summary      Update a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        id    path      string             true  "User id"
// @Param        body  body      updateUserRequest  true  "Profile fields"
// @Success      200   {object}  envelope
// @Failure      400   {object}  envelope
// @Failure      404   {object}  envelope
// @Router       /v1/auth/users/{id} [put]
func (h *UserHandler) Update(c echo.Context) error {
	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return respondErr(c, http.StatusBadRequest, "invalid payload")
	}

	user, err := h.users.UpdateUser(c.Request().Context(), c.Param("id"), ports.UpdateUserInput{
		RoleID:               req.RoleID,
		Name:                 req.Name,
		Email:                req.Email,
		Phone:                req.Phone,
		Address:              req.Address,
		BillingAddress:       req.BillingAddress,
		Country:              req.Country,
		City:                 req.City,
		PostalCode:           req.PostalCode,
		Image:                req.Image,
		InitialPaymentAmount: req.InitialPaymentAmount,
		InitialPaymentDue:    req.InitialPaymentDue,
		InstallmentTime:      req.InstallmentTime,
		ActorID:              ctxActorID(c),
	})
	if err != nil {
		var ve *domain.ValidationError
		switch {
		case errors.As(err, &ve):
			return respondErr(c, http.StatusBadRequest, ve.Error())
		case errors.Is(err, domain.ErrUserNotFound):
			return respondErr(c, http.StatusNotFound, "Profile has not been updated")
		}
		return err
	}
	return respondOK(c, http.StatusOK, "Profile has been updated.", user)
}

// Ban toggles a user's active flag.
//
// @Summary      Ban or unban a user
// @Tags         users
// @Produce      json
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  envelope
// @Failure      404  {object}  envelope
// @Router       /v1/users/{id}/ban [put]
func (h *UserHandler) Ban(c echo.Context) error {
	user, err := h.users.BanUser(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return respondErr(c, http.StatusNotFound, "User has not been banned")
		}
		return err
	}
	return respondOK(c, http.StatusOK, "User has been banned", user)
}

// Delete soft-deletes a user; the record is retained for audit.
//
// @Summary      Delete a user
// @Tags         users
// @Produce      json
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  envelope
// @Failure      404  {object}  envelope
// @Router       /v1/auth/users/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	user, err := h.users.DeleteUser(c.Request().Context(), c.Param("id"), ctxActorID(c))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return respondErr(c, http.StatusNotFound, "User has not been deleted")
		}
		return err
	}
	return respondOK(c, http.StatusOK, "User has been deleted", user)
}

func listInput(c echo.Context, caller ports.Principal) ports.ListUsersInput {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	return ports.ListUsersInput{
		Caller:  caller,
		Name:    c.QueryParam("name"),
		Email:   c.QueryParam("email"),
		Phone:   c.QueryParam("phone"),
		Address: c.QueryParam("address"),
		Active:  c.QueryParam("active"),
		Page:    page,
		Limit:   limit,
	}
}

func listResponse(c echo.Context, users []domain.User) error {
	if len(users) == 0 {
		return respondOK(c, http.StatusOK, "No user is available", nil)
	}
	return respondOK(c, http.StatusOK, fmt.Sprintf("%d users found", len(users)), users)
}
