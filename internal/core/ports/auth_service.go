package ports

import (
	"context"

	"github.com/masum-abrar/nex-trade-backend/internal/core/domain"
)

// LoginIdentifier selects a user by email or phone; either may be empty.
type LoginIdentifier struct {
	Email string
	Phone string
}

// RegisterInput carries everything needed to create a user account.
// ActorID is the authenticated principal creating the account; empty for
// self-service customer registration.
type RegisterInput struct {
	RoleID               string
	ParentID             string
	Name                 string
	Email                string
	Phone                string
	Address              string
	BillingAddress       string
	Country              string
	City                 string
	PostalCode           string
	Password             string
	InitialPaymentAmount float64
	InitialPaymentDue    string
	InstallmentTime      string
	ActorID              string
}

// LoginResult is a successful authentication: the sanitized user plus
// the signed session token.
type LoginResult struct {
	Token string
	User  *domain.User
}

// AuthService orchestrates registration, both login flows, and OTP
// issuance.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	LoginWithPassword(ctx context.Context, id LoginIdentifier, password string) (*LoginResult, error)

	// RequestOTP issues (or re-sends a pending) one-time code to the
	// user's email. loginType "admin" requires an assigned role.
	RequestOTP(ctx context.Context, id LoginIdentifier, loginType string) error
	LoginWithOTP(ctx context.Context, id LoginIdentifier, code string) (*LoginResult, error)
}
