package domain

import (
	"errors"
	"fmt"
	"time"
)

// RoleNameCustomer is the implicit permission tier for users without an
// assigned role (self-service customers).
const RoleNameCustomer = "customer"

// RoleNameSuperAdmin bypasses module-level grant checks.
const RoleNameSuperAdmin = "super-admin"

// DefaultAvatarURL is assigned to every newly registered user.
const DefaultAvatarURL = "https://cdn-icons-png.flaticon.com/512/9368/9368192.png"

var ErrUserExists = errors.New("user already exists")
var ErrUserNotFound = errors.New("user not found")
var ErrWrongCredentials = errors.New("wrong credentials")
var ErrWrongPassword = errors.New("wrong password")
var ErrNotAuthenticated = errors.New("not authenticated")
var ErrNotPermitted = errors.New("not permitted")
var ErrNoOTPIssued = errors.New("no otp issued")
var ErrWrongOTP = errors.New("wrong otp")
var ErrEmailNotRegistered = errors.New("email not registered")

// ValidationError reports the first required field missing from a request.
// Field carries the human-facing label, e.g. "Shipping Address".
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s is required", e.Field)
}

// User is the identity aggregate. A user is never physically removed:
// deletion flips IsDeleted and the record stays for audit. At most one
// live (IsDeleted=false) user may own a given email or phone.
type User struct {
	ID             string `json:"id"`
	ParentID       string `json:"parentId,omitempty"`
	RoleID         string `json:"roleId,omitempty"`
	Name           string `json:"name"`
	Email          string `json:"email,omitempty"`
	Phone          string `json:"phone,omitempty"`
	Address        string `json:"address,omitempty"`
	BillingAddress string `json:"billingAddress,omitempty"`
	Country        string `json:"country,omitempty"`
	City           string `json:"city,omitempty"`
	PostalCode     string `json:"postalCode,omitempty"`
	Image          string `json:"image,omitempty"`

	// Credential state, never serialized to clients.
	PasswordHash string `json:"-"`
	OTP          string `json:"-"`
	OTPCount     int    `json:"-"`

	InitialPaymentAmount float64 `json:"initialPaymentAmount,omitempty"`
	InitialPaymentDue    string  `json:"initialPaymentDue,omitempty"`
	InstallmentTime      string  `json:"installmentTime,omitempty"`

	IsActive  bool `json:"isActive"`
	IsDeleted bool `json:"isDeleted"`

	CreatedBy string    `json:"createdBy,omitempty"`
	UpdatedBy string    `json:"updatedBy,omitempty"`
	DeletedBy string    `json:"deletedBy,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// EffectiveParentID is the parent reference embedded in session tokens:
// a user without a parent is its own parent.
func (u *User) EffectiveParentID() string {
	if u.ParentID != "" {
		return u.ParentID
	}
	return u.ID
}

// HasPendingOTP reports whether a one-time code is on file and unconsumed.
func (u *User) HasPendingOTP() bool {
	return u.OTP != ""
}

// Role is a named permission group referenced by zero or more users.
type Role struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	IsDeleted bool   `json:"isDeleted"`
}

// Module is a named capability unit; routes are gated on module names.
type Module struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// RoleModule grants a module to a role. The grant carries its own
// soft-delete flag so it can be revoked without touching role or module.
type RoleModule struct {
	ID        string `json:"id"`
	RoleID    string `json:"roleId"`
	ModuleID  string `json:"moduleId"`
	IsDeleted bool   `json:"isDeleted"`
}
