package service

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/masum-abrar/nex-trade-backend/internal/core/domain"
	"github.com/masum-abrar/nex-trade-backend/internal/core/ports"
)

const otpMailSubject = "Nex Trade OTP"

// requiredRegisterFields pairs each mandatory registration value with
// the label reported back when it is missing.
var requiredRegisterFields = []string{
	"Name", "Email", "Phone", "Shipping Address", "Billing Address", "Country", "City",
}

// AuthService implements registration, password login, and the OTP
// login flow. Session tokens are HS256 JWTs carrying the resolved
// role/module grants; with tokenTTL == 0 no expiry claim is embedded,
// matching the admin panel's original behavior.
type AuthService struct {
	users     ports.UserRepository
	grants    ports.GrantRepository
	mail      ports.MailQueue
	jwtSecret string
	tokenTTL  time.Duration
	logger    zerolog.Logger
}

func NewAuthService(users ports.UserRepository, grants ports.GrantRepository, mail ports.MailQueue, jwtSecret string, tokenTTL time.Duration, logger zerolog.Logger) *AuthService {
	return &AuthService{
		users:     users,
		grants:    grants,
		mail:      mail,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		logger:    logger,
	}
}

// Register creates a user account. Duplicate detection is two-layered:
// a pre-check for the friendly conflict message, and the store's unique
// constraint on live email/phone so concurrent duplicates cannot both
// land.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	values := []string{in.Name, in.Email, in.Phone, in.Address, in.BillingAddress, in.Country, in.City}
	for i, v := range values {
		if v == "" {
			return nil, &domain.ValidationError{Field: requiredRegisterFields[i]}
		}
	}

	if _, err := s.users.FindByIdentifier(ctx, in.Email, in.Phone, false); err == nil {
		return nil, domain.ErrUserExists
	} else if err != domain.ErrUserNotFound {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		RoleID:               in.RoleID,
		ParentID:             in.ParentID,
		Name:                 in.Name,
		Email:                in.Email,
		Phone:                in.Phone,
		Address:              in.Address,
		BillingAddress:       in.BillingAddress,
		Country:              in.Country,
		City:                 in.City,
		PostalCode:           in.PostalCode,
		Image:                domain.DefaultAvatarURL,
		InitialPaymentAmount: in.InitialPaymentAmount,
		InitialPaymentDue:    in.InitialPaymentDue,
		InstallmentTime:      in.InstallmentTime,
		IsActive:             true,
		CreatedBy:            in.ActorID,
		CreatedAt:            now,
		UpdatedAt:            now,
	}

	if in.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", created.ID).Str("created_by", in.ActorID).Msg("user registered")
	return created, nil
}

// LoginWithPassword authenticates by email or phone plus password.
// A missing user and a wrong password are both reported as not-found
// (distinct messages), preserving the panel's observed contract.
func (s *AuthService) LoginWithPassword(ctx context.Context, id ports.LoginIdentifier, password string) (*ports.LoginResult, error) {
	user, err := s.users.FindByIdentifier(ctx, id.Email, id.Phone, false)
	if err != nil {
		if err == domain.ErrUserNotFound {
			return nil, domain.ErrWrongCredentials
		}
		return nil, err
	}

	if !user.IsActive {
		return nil, domain.ErrNotAuthenticated
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrWrongPassword
	}

	return s.issueSession(ctx, user)
}

// RequestOTP issues a one-time code and dispatches it by email. A code
// already pending is re-sent as is, never regenerated. Delivery is
// fire-and-forget: once the message is queued the request succeeds.
func (s *AuthService) RequestOTP(ctx context.Context, id ports.LoginIdentifier, loginType string) error {
	user, err := s.users.FindByIdentifier(ctx, id.Email, id.Phone, true)
	if err != nil {
		return err
	}

	if loginType == "admin" && user.RoleID == "" {
		return domain.ErrNotPermitted
	}

	if user.Email == "" {
		return domain.ErrEmailNotRegistered
	}

	code, err := s.users.IssueOTP(ctx, user.ID, generateOTP())
	if err != nil {
		return err
	}

	s.mail.Enqueue(ports.MailMessage{
		To:      user.Email,
		Subject: otpMailSubject,
		HTML:    fmt.Sprintf("<p>Your otp is %s</p>", code),
	})

	s.logger.Info().Str("user_id", user.ID).Msg("otp dispatched")
	return nil
}

// LoginWithOTP verifies the emailed code and logs the user in. The code
// is consumed exactly once: the clear is conditional on the stored value
// still matching, so a replay or a concurrent attempt fails cleanly.
func (s *AuthService) LoginWithOTP(ctx context.Context, id ports.LoginIdentifier, code string) (*ports.LoginResult, error) {
	user, err := s.users.FindByIdentifier(ctx, id.Email, id.Phone, true)
	if err != nil {
		return nil, err
	}

	if !user.HasPendingOTP() {
		return nil, domain.ErrNoOTPIssued
	}
	if user.OTP != code {
		return nil, domain.ErrWrongOTP
	}

	consumed, err := s.users.ConsumeOTP(ctx, user.ID, code)
	if err != nil {
		return nil, err
	}
	if !consumed {
		return nil, domain.ErrWrongOTP
	}
	user.OTP = ""

	return s.issueSession(ctx, user)
}

// issueSession resolves the user's grants and signs the session token.
func (s *AuthService) issueSession(ctx context.Context, user *domain.User) (*ports.LoginResult, error) {
	modules, err := s.grants.ModulesForRole(ctx, user.RoleID)
	if err != nil {
		return nil, err
	}

	roleName, err := s.grants.RoleName(ctx, user.RoleID)
	if err != nil {
		return nil, err
	}

	token, err := s.signToken(user, roleName, modules)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", user.ID).Str("role", roleName).Msg("session issued")
	return &ports.LoginResult{Token: token, User: user}, nil
}

func (s *AuthService) signToken(user *domain.User, roleName string, modules []string) (string, error) {
	claims := jwt.MapClaims{
		"id":          user.ID,
		"parentId":    user.EffectiveParentID(),
		"phone":       user.Phone,
		"email":       user.Email,
		"roleId":      user.RoleID,
		"roleName":    roleName,
		"isActive":    user.IsActive,
		"moduleNames": modules,
	}
	if s.tokenTTL > 0 {
		claims["exp"] = time.Now().Add(s.tokenTTL).Unix()
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

// generateOTP returns a uniform 6-digit numeric code.
func generateOTP() string {
	return fmt.Sprintf("%06d", 100000+rand.IntN(900000))
}
