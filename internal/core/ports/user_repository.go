package ports

import (
	"context"

	"github.com/masum-abrar/nex-trade-backend/internal/core/domain"
)

// UserFilter narrows List results. String fields are case-insensitive
// substring matches; zero values are ignored.
type UserFilter struct {
	ParentID string // restrict to sub-accounts of this user
	Name     string
	Email    string
	Phone    string
	Address  string
	Active   bool
	Page     int
	Limit    int
}

// UserUpdate carries the mutable profile fields. Pointer fields
// distinguish "leave unchanged" (nil) from "set to zero value".
type UserUpdate struct {
	RoleID               *string
	Name                 *string
	Email                *string
	Phone                *string
	Address              *string
	BillingAddress       *string
	Country              *string
	City                 *string
	PostalCode           *string
	Image                *string
	InitialPaymentAmount *float64
	InitialPaymentDue    *string
	InstallmentTime      *string
	UpdatedBy            string
}

// UserRepository persists identity records. All lookups exclude
// soft-deleted users.
type UserRepository interface {
	// FindByIdentifier matches a live user by email OR phone. When
	// activeOnly is set, inactive users are treated as absent.
	FindByIdentifier(ctx context.Context, email, phone string, activeOnly bool) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context, filter UserFilter) ([]domain.User, error)

	// Create inserts a new user. Implementations must reject a live
	// duplicate email or phone with domain.ErrUserExists, atomically with
	// the insert.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	Update(ctx context.Context, id string, upd UserUpdate) (*domain.User, error)
	SetActive(ctx context.Context, id string, active bool) (*domain.User, error)
	SoftDelete(ctx context.Context, id, deletedBy string) (*domain.User, error)

	// IssueOTP persists code against the user only if no code is pending,
	// incrementing the send counter. It returns the code now pending: the
	// new one, or the pre-existing one when a code was already on file
	// (pending codes are reused, never regenerated). The check and write
	// are a single atomic operation.
	IssueOTP(ctx context.Context, userID, code string) (string, error)

	// ConsumeOTP clears the stored code iff it equals code, atomically.
	// It reports whether the code matched and was cleared.
	ConsumeOTP(ctx context.Context, userID, code string) (bool, error)
}
