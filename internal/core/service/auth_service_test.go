package service

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/masum-abrar/nex-trade-backend/internal/core/domain"
	"github.com/masum-abrar/nex-trade-backend/internal/core/ports"
)

type stubUserRepo struct {
	users  map[string]*domain.User
	nextID int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) FindByIdentifier(_ context.Context, email, phone string, activeOnly bool) (*domain.User, error) {
	for _, u := range r.users {
		if u.IsDeleted {
			continue
		}
		if activeOnly && !u.IsActive {
			continue
		}
		if (email != "" && u.Email == email) || (phone != "" && u.Phone == phone) {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok || u.IsDeleted {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) List(_ context.Context, _ ports.UserFilter) ([]domain.User, error) {
	out := make([]domain.User, 0, len(r.users))
	for _, u := range r.users {
		if !u.IsDeleted {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.IsDeleted {
			continue
		}
		if (user.Email != "" && u.Email == user.Email) || (user.Phone != "" && u.Phone == user.Phone) {
			return nil, domain.ErrUserExists
		}
	}
	copy := cloneUser(user)
	r.nextID++
	copy.ID = "user_" + strconv.Itoa(r.nextID)
	r.users[copy.ID] = cloneUser(copy)
	return copy, nil
}

func (r *stubUserRepo) Update(_ context.Context, id string, _ ports.UserUpdate) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok || u.IsDeleted {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) SetActive(_ context.Context, id string, active bool) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok || u.IsDeleted {
		return nil, domain.ErrUserNotFound
	}
	u.IsActive = active
	return cloneUser(u), nil
}

func (r *stubUserRepo) SoftDelete(_ context.Context, id, deletedBy string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok || u.IsDeleted {
		return nil, domain.ErrUserNotFound
	}
	u.IsDeleted = true
	u.DeletedBy = deletedBy
	return cloneUser(u), nil
}

func (r *stubUserRepo) IssueOTP(_ context.Context, userID, code string) (string, error) {
	u, ok := r.users[userID]
	if !ok {
		return "", domain.ErrUserNotFound
	}
	if u.OTP != "" {
		return u.OTP, nil
	}
	u.OTP = code
	u.OTPCount++
	return code, nil
}

func (r *stubUserRepo) ConsumeOTP(_ context.Context, userID, code string) (bool, error) {
	u, ok := r.users[userID]
	if !ok {
		return false, domain.ErrUserNotFound
	}
	if u.OTP != code {
		return false, nil
	}
	u.OTP = ""
	return true, nil
}

type stubGrants struct {
	modules  []string
	roleName string
}

func (g *stubGrants) ModulesForRole(_ context.Context, _ string) ([]string, error) {
	return g.modules, nil
}

func (g *stubGrants) RoleName(_ context.Context, _ string) (string, error) {
	if g.roleName == "" {
		return domain.RoleNameCustomer, nil
	}
	return g.roleName, nil
}

type stubMailQueue struct {
	sent []ports.MailMessage
}

func (q *stubMailQueue) Enqueue(msg ports.MailMessage) {
	q.sent = append(q.sent, msg)
}

func newAuthService(repo *stubUserRepo, grants *stubGrants, mail *stubMailQueue, ttl time.Duration) *AuthService {
	return NewAuthService(repo, grants, mail, "secret", ttl, zerolog.Nop())
}

func registerInput() ports.RegisterInput {
	return ports.RegisterInput{
		Name:           "Alice",
		Email:          "alice@example.com",
		Phone:          "01700000001",
		Address:        "12 Main St",
		BillingAddress: "12 Main St",
		Country:        "BD",
		City:           "Dhaka",
		Password:       "pass123",
	}
}

func TestAuthService_Register_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo, &stubGrants{}, &stubMailQueue{}, 0)

	user, err := svc.Register(context.Background(), registerInput())
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.ID == "" {
		t.Fatalf("expected assigned id")
	}
	if !user.IsActive {
		t.Fatalf("expected new user to be active")
	}
	if user.Image != domain.DefaultAvatarURL {
		t.Fatalf("expected default avatar, got %q", user.Image)
	}
	if user.PasswordHash == "pass123" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("pass123")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
}

func TestAuthService_Register_MissingField(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo, &stubGrants{}, &stubMailQueue{}, 0)

	in := registerInput()
	in.BillingAddress = ""

	_, err := svc.Register(context.Background(), in)
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if ve.Error() != "Billing Address is required" {
		t.Fatalf("unexpected message: %q", ve.Error())
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo, &stubGrants{}, &stubMailQueue{}, 0)

	if _, err := svc.Register(context.Background(), registerInput()); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	if _, err := svc.Register(context.Background(), registerInput()); err != domain.ErrUserExists {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthService_LoginWithPassword_Success(t *testing.T) {
	repo := newStubUserRepo()
	grants := &stubGrants{modules: []string{"users:list", "users:edit"}, roleName: "manager"}
	svc := newAuthService(repo, grants, &stubMailQueue{}, 0)

	created, err := svc.Register(context.Background(), registerInput())
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	result, err := svc.LoginWithPassword(context.Background(),
		ports.LoginIdentifier{Email: "alice@example.com"}, "pass123")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if result.Token == "" {
		t.Fatalf("expected token, got empty")
	}
	if result.User.ID != created.ID {
		t.Fatalf("unexpected user: %+v", result.User)
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(result.Token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	if claims["roleName"] != "manager" {
		t.Fatalf("expected roleName manager, got %v", claims["roleName"])
	}
	// Root account: parentId falls back to the user's own id.
	if claims["parentId"] != created.ID {
		t.Fatalf("expected parentId %s, got %v", created.ID, claims["parentId"])
	}
	if _, hasExp := claims["exp"]; hasExp {
		t.Fatalf("expected no exp claim with zero ttl")
	}
	modules, ok := claims["moduleNames"].([]interface{})
	if !ok || len(modules) != 2 {
		t.Fatalf("unexpected moduleNames claim: %v", claims["moduleNames"])
	}
}

func TestAuthService_LoginWithPassword_ExpiryClaim(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo, &stubGrants{}, &stubMailQueue{}, time.Hour)

	if _, err := svc.Register(context.Background(), registerInput()); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	result, err := svc.LoginWithPassword(context.Background(),
		ports.LoginIdentifier{Email: "alice@example.com"}, "pass123")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	claims := jwt.MapClaims{}
	if _, err := jwt.ParseWithClaims(result.Token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	}); err != nil {
		t.Fatalf("token invalid: %v", err)
	}
	if _, hasExp := claims["exp"]; !hasExp {
		t.Fatalf("expected exp claim with positive ttl")
	}
}

func TestAuthService_LoginWithPassword_UserNotFound(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo, &stubGrants{}, &stubMailQueue{}, 0)

	_, err := svc.LoginWithPassword(context.Background(),
		ports.LoginIdentifier{Email: "ghost@example.com"}, "pass")
	if err != domain.ErrWrongCredentials {
		t.Fatalf("expected ErrWrongCredentials, got %v", err)
	}
}

func TestAuthService_LoginWithPassword_WrongPassword(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo, &stubGrants{}, &stubMailQueue{}, 0)

	if _, err := svc.Register(context.Background(), registerInput()); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	_, err := svc.LoginWithPassword(context.Background(),
		ports.LoginIdentifier{Email: "alice@example.com"}, "badpass")
	if err != domain.ErrWrongPassword {
		t.Fatalf("expected ErrWrongPassword, got %v", err)
	}
}

func TestAuthService_LoginWithPassword_InactiveUser(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo, &stubGrants{}, &stubMailQueue{}, 0)

	created, err := svc.Register(context.Background(), registerInput())
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if _, err := repo.SetActive(context.Background(), created.ID, false); err != nil {
		t.Fatalf("deactivate failed: %v", err)
	}

	_, err = svc.LoginWithPassword(context.Background(),
		ports.LoginIdentifier{Email: "alice@example.com"}, "pass123")
	if err != domain.ErrNotAuthenticated {
		t.Fatalf("expected ErrNotAuthenticated, got %v", err)
	}
}

func TestAuthService_RequestOTP_SendsMail(t *testing.T) {
	repo := newStubUserRepo()
	mail := &stubMailQueue{}
	svc := newAuthService(repo, &stubGrants{}, mail, 0)

	created, err := svc.Register(context.Background(), registerInput())
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if err := svc.RequestOTP(context.Background(), ports.LoginIdentifier{Email: "alice@example.com"}, ""); err != nil {
		t.Fatalf("RequestOTP returned error: %v", err)
	}

	if len(mail.sent) != 1 {
		t.Fatalf("expected 1 mail, got %d", len(mail.sent))
	}
	if mail.sent[0].To != "alice@example.com" {
		t.Fatalf("unexpected recipient: %s", mail.sent[0].To)
	}

	stored := repo.users[created.ID].OTP
	if len(stored) != 6 {
		t.Fatalf("expected 6-digit code, got %q", stored)
	}
	if n, err := strconv.Atoi(stored); err != nil || n < 100000 || n > 999999 {
		t.Fatalf("code out of range: %q", stored)
	}
}

func TestAuthService_RequestOTP_ReusesPendingCode(t *testing.T) {
	repo := newStubUserRepo()
	mail := &stubMailQueue{}
	svc := newAuthService(repo, &stubGrants{}, mail, 0)

	created, err := svc.Register(context.Background(), registerInput())
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	id := ports.LoginIdentifier{Email: "alice@example.com"}
	if err := svc.RequestOTP(context.Background(), id, ""); err != nil {
		t.Fatalf("first RequestOTP failed: %v", err)
	}
	first := repo.users[created.ID].OTP

	if err := svc.RequestOTP(context.Background(), id, ""); err != nil {
		t.Fatalf("second RequestOTP failed: %v", err)
	}
	if repo.users[created.ID].OTP != first {
		t.Fatalf("pending code was regenerated")
	}
	if len(mail.sent) != 2 {
		t.Fatalf("expected the pending code to be re-sent, got %d mails", len(mail.sent))
	}
	if mail.sent[1].HTML != mail.sent[0].HTML {
		t.Fatalf("re-sent mail carries a different code")
	}
}

func TestAuthService_RequestOTP_AdminWithoutRole(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo, &stubGrants{}, &stubMailQueue{}, 0)

	if _, err := svc.Register(context.Background(), registerInput()); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	err := svc.RequestOTP(context.Background(), ports.LoginIdentifier{Email: "alice@example.com"}, "admin")
	if err != domain.ErrNotPermitted {
		t.Fatalf("expected ErrNotPermitted, got %v", err)
	}
}

func TestAuthService_RequestOTP_UnknownUser(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo, &stubGrants{}, &stubMailQueue{}, 0)

	err := svc.RequestOTP(context.Background(), ports.LoginIdentifier{Email: "ghost@example.com"}, "")
	if err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestAuthService_LoginWithOTP_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo, &stubGrants{}, &stubMailQueue{}, 0)

	created, err := svc.Register(context.Background(), registerInput())
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	id := ports.LoginIdentifier{Email: "alice@example.com"}
	if err := svc.RequestOTP(context.Background(), id, ""); err != nil {
		t.Fatalf("RequestOTP failed: %v", err)
	}
	code := repo.users[created.ID].OTP

	result, err := svc.LoginWithOTP(context.Background(), id, code)
	if err != nil {
		t.Fatalf("LoginWithOTP failed: %v", err)
	}
	if result.Token == "" {
		t.Fatalf("expected token")
	}
	if repo.users[created.ID].OTP != "" {
		t.Fatalf("expected code to be consumed")
	}

	// A second attempt with the same code must fail.
	if _, err := svc.LoginWithOTP(context.Background(), id, code); err != domain.ErrNoOTPIssued {
		t.Fatalf("expected ErrNoOTPIssued on replay, got %v", err)
	}
}

func TestAuthService_LoginWithOTP_WrongCodeKeepsPending(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo, &stubGrants{}, &stubMailQueue{}, 0)

	created, err := svc.Register(context.Background(), registerInput())
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	id := ports.LoginIdentifier{Email: "alice@example.com"}
	if err := svc.RequestOTP(context.Background(), id, ""); err != nil {
		t.Fatalf("RequestOTP failed: %v", err)
	}
	code := repo.users[created.ID].OTP

	if _, err := svc.LoginWithOTP(context.Background(), id, "000000"); err != domain.ErrWrongOTP {
		t.Fatalf("expected ErrWrongOTP, got %v", err)
	}
	if repo.users[created.ID].OTP != code {
		t.Fatalf("wrong attempt must not clear the pending code")
	}

	// The real code still works afterwards.
	if _, err := svc.LoginWithOTP(context.Background(), id, code); err != nil {
		t.Fatalf("valid code rejected after wrong attempt: %v", err)
	}
}

func TestAuthService_LoginWithOTP_NoPendingCode(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo, &stubGrants{}, &stubMailQueue{}, 0)

	if _, err := svc.Register(context.Background(), registerInput()); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	_, err := svc.LoginWithOTP(context.Background(),
		ports.LoginIdentifier{Email: "alice@example.com"}, "123456")
	if err != domain.ErrNoOTPIssued {
		t.Fatalf("expected ErrNoOTPIssued, got %v", err)
	}
}

func TestGenerateOTP_Range(t *testing.T) {
	for i := 0; i < 200; i++ {
		code := generateOTP()
		if len(code) != 6 {
			t.Fatalf("expected 6 digits, got %q", code)
		}
		n, err := strconv.Atoi(code)
		if err != nil || n < 100000 || n > 999999 {
			t.Fatalf("code out of range: %q", code)
		}
	}
}
