package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/masum-abrar/nex-trade-backend/internal/core/domain"
	"github.com/masum-abrar/nex-trade-backend/internal/core/ports"
)

// BrokerService manages broker trading accounts. Broker passwords are
// bcrypt-hashed at rest and verified on login.
type BrokerService struct {
	brokers ports.BrokerRepository
	logger  zerolog.Logger
}

func NewBrokerService(brokers ports.BrokerRepository, logger zerolog.Logger) *BrokerService {
	return &BrokerService{brokers: brokers, logger: logger}
}

func (s *BrokerService) Create(ctx context.Context, in ports.BrokerUserInput) (*domain.BrokerUser, error) {
	if in.LoginUserID == "" || in.Username == "" {
		return nil, &domain.ValidationError{Field: "Login User Id"}
	}

	now := time.Now().UTC()
	user := &domain.BrokerUser{
		LoginUserID:           in.LoginUserID,
		Username:              in.Username,
		Role:                  in.Role,
		MarginType:            in.MarginType,
		SegmentAllow:          in.SegmentAllow,
		IntradaySquare:        in.IntradaySquare,
		LedgerBalanceClose:    in.LedgerBalanceClose,
		ProfitTradeHoldMinSec: in.ProfitTradeHoldMinSec,
		LossTradeHoldMinSec:   in.LossTradeHoldMinSec,
		Segments:              in.Segments,
		CreatedAt:             now,
		UpdatedAt:             now,
	}

	if in.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}

	created, err := s.brokers.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("login_usrid", created.LoginUserID).Msg("broker user created")
	return created, nil
}

func (s *BrokerService) Get(ctx context.Context, loginUserID string) (*domain.BrokerUser, error) {
	return s.brokers.FindByLoginUserID(ctx, loginUserID)
}

func (s *BrokerService) List(ctx context.Context) ([]domain.BrokerUser, error) {
	return s.brokers.List(ctx)
}

func (s *BrokerService) Update(ctx context.Context, loginUserID string, in ports.BrokerUserInput) (*domain.BrokerUser, error) {
	existing, err := s.brokers.FindByLoginUserID(ctx, loginUserID)
	if err != nil {
		return nil, err
	}

	existing.Username = in.Username
	existing.Role = in.Role
	existing.MarginType = in.MarginType
	existing.SegmentAllow = in.SegmentAllow
	existing.IntradaySquare = in.IntradaySquare
	existing.ProfitTradeHoldMinSec = in.ProfitTradeHoldMinSec
	existing.LossTradeHoldMinSec = in.LossTradeHoldMinSec
	existing.Segments = in.Segments
	existing.UpdatedAt = time.Now().UTC()

	if in.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		existing.PasswordHash = string(hash)
	}

	return s.brokers.Update(ctx, loginUserID, existing)
}

func (s *BrokerService) UpdateFunds(ctx context.Context, loginUserID string, ledgerBalanceClose, marginUsed float64) (*domain.BrokerUser, error) {
	return s.brokers.UpdateFunds(ctx, loginUserID, ledgerBalanceClose, marginUsed)
}

// Login verifies broker credentials. Both an unknown account and a bad
// password collapse into ErrInvalidCredentials.
func (s *BrokerService) Login(ctx context.Context, loginUserID, password string) (*ports.BrokerLoginResult, error) {
	if password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.brokers.FindByLoginUserID(ctx, loginUserID)
	if err != nil {
		if err == domain.ErrBrokerUserNotFound {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	return &ports.BrokerLoginResult{
		Role:     user.Role,
		UserID:   user.LoginUserID,
		Username: user.Username,
	}, nil
}
