package ports

import (
	"context"

	"github.com/masum-abrar/nex-trade-backend/internal/core/domain"
)

// Principal is the authenticated caller as recorded in token claims.
type Principal struct {
	UserID   string
	RoleName string
	Modules  []string
}

// IsSuperAdmin reports whether the caller bypasses module grant checks.
func (p Principal) IsSuperAdmin() bool {
	return p.RoleName == domain.RoleNameSuperAdmin
}

// ListUsersInput is the admin listing query. Scope depends on the
// caller: super-admin sees everyone, others only their sub-accounts.
type ListUsersInput struct {
	Caller  Principal
	Name    string
	Email   string
	Phone   string
	Address string
	// Active is the raw query value ("active"/"inactive"); empty means
	// active-only, matching the admin panel default.
	Active string
	Page   int
	Limit  int
}

// UpdateUserInput carries the profile update for a user.
type UpdateUserInput struct {
	RoleID               string
	Name                 string
	Email                string
	Phone                string
	Address              string
	BillingAddress       string
	Country              string
	City                 string
	PostalCode           string
	Image                string
	InitialPaymentAmount float64
	InitialPaymentDue    string
	InstallmentTime      string
	ActorID              string
}

// UserService covers the admin-panel user CRUD surface.
type UserService interface {
	ListUsers(ctx context.Context, in ListUsersInput) ([]domain.User, error)
	// ListSubAccounts lists only the caller's sub-accounts regardless of role.
	ListSubAccounts(ctx context.Context, in ListUsersInput) ([]domain.User, error)
	GetUser(ctx context.Context, id string) (*domain.User, error)
	UpdateUser(ctx context.Context, id string, in UpdateUserInput) (*domain.User, error)
	// BanUser toggles the active flag and returns the updated record.
	BanUser(ctx context.Context, id string) (*domain.User, error)
	DeleteUser(ctx context.Context, id, actorID string) (*domain.User, error)
}
