package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/masum-abrar/nex-trade-backend/internal/core/domain"
	"github.com/masum-abrar/nex-trade-backend/internal/core/ports"
)

const (
	defaultPage  = 1
	defaultLimit = 50
)

// requiredUpdateFields mirrors the profile update form's mandatory inputs.
var requiredUpdateFields = []string{"Name", "Email", "Phone", "Address", "Billing Address"}

// UserService implements the admin-panel user CRUD. Listing scope is
// caller-dependent: super-admins see everyone, everyone else sees only
// their own sub-accounts.
type UserService struct {
	users  ports.UserRepository
	logger zerolog.Logger
}

func NewUserService(users ports.UserRepository, logger zerolog.Logger) *UserService {
	return &UserService{users: users, logger: logger}
}

func (s *UserService) ListUsers(ctx context.Context, in ports.ListUsersInput) ([]domain.User, error) {
	if !in.Caller.IsSuperAdmin() {
		return s.ListSubAccounts(ctx, in)
	}
	return s.users.List(ctx, toUserFilter(in, ""))
}

func (s *UserService) ListSubAccounts(ctx context.Context, in ports.ListUsersInput) ([]domain.User, error) {
	return s.users.List(ctx, toUserFilter(in, in.Caller.UserID))
}

func (s *UserService) GetUser(ctx context.Context, id string) (*domain.User, error) {
	return s.users.FindByID(ctx, id)
}

func (s *UserService) UpdateUser(ctx context.Context, id string, in ports.UpdateUserInput) (*domain.User, error) {
	values := []string{in.Name, in.Email, in.Phone, in.Address, in.BillingAddress}
	for i, v := range values {
		if v == "" {
			return nil, &domain.ValidationError{Field: requiredUpdateFields[i]}
		}
	}

	upd := ports.UserUpdate{
		Name:           &in.Name,
		Email:          &in.Email,
		Phone:          &in.Phone,
		Address:        &in.Address,
		BillingAddress: &in.BillingAddress,
		UpdatedBy:      in.ActorID,
	}
	if in.RoleID != "" {
		upd.RoleID = &in.RoleID
	}
	if in.Country != "" {
		upd.Country = &in.Country
	}
	if in.City != "" {
		upd.City = &in.City
	}
	if in.PostalCode != "" {
		upd.PostalCode = &in.PostalCode
	}
	if in.Image != "" {
		upd.Image = &in.Image
	}
	if in.InitialPaymentAmount != 0 {
		upd.InitialPaymentAmount = &in.InitialPaymentAmount
	}
	if in.InitialPaymentDue != "" {
		upd.InitialPaymentDue = &in.InitialPaymentDue
	}
	if in.InstallmentTime != "" {
		upd.InstallmentTime = &in.InstallmentTime
	}

	updated, err := s.users.Update(ctx, id, upd)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", id).Str("updated_by", in.ActorID).Msg("profile updated")
	return updated, nil
}

func (s *UserService) BanUser(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.users.SetActive(ctx, id, !user.IsActive)
}

func (s *UserService) DeleteUser(ctx context.Context, id, actorID string) (*domain.User, error) {
	deleted, err := s.users.SoftDelete(ctx, id, actorID)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("user_id", id).Str("deleted_by", actorID).Msg("user soft-deleted")
	return deleted, nil
}

func toUserFilter(in ports.ListUsersInput, parentID string) ports.UserFilter {
	page := in.Page
	if page <= 0 {
		page = defaultPage
	}
	limit := in.Limit
	if limit <= 0 {
		limit = defaultLimit
	}

	// Absent filter means active accounts only; anything but "active"
	// flips to inactive, matching the panel's dropdown.
	active := true
	if in.Active != "" {
		active = strings.EqualFold(in.Active, "active")
	}

	return ports.UserFilter{
		ParentID: parentID,
		Name:     in.Name,
		Email:    in.Email,
		Phone:    in.Phone,
		Address:  in.Address,
		Active:   active,
		Page:     page,
		Limit:    limit,
	}
}
