package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/masum-abrar/nex-trade-backend/internal/core/domain"
	"github.com/masum-abrar/nex-trade-backend/internal/core/ports"
)

// FundsService keeps deposit and withdraw records. New records start
// pending; status moves are driven by the admin panel.
type FundsService struct {
	funds  ports.FundsRepository
	logger zerolog.Logger
}

func NewFundsService(funds ports.FundsRepository, logger zerolog.Logger) *FundsService {
	return &FundsService{funds: funds, logger: logger}
}

func (s *FundsService) CreateDeposit(ctx context.Context, in ports.CreateDepositInput) (*domain.Deposit, error) {
	now := time.Now().UTC()
	deposit, err := s.funds.CreateDeposit(ctx, &domain.Deposit{
		LoginUserID: in.LoginUserID,
		Amount:      in.Amount,
		Type:        in.Type,
		Image:       in.Image,
		Status:      domain.FundStatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("deposit_id", deposit.ID).Str("login_user_id", in.LoginUserID).Float64("amount", in.Amount).Msg("deposit created")
	return deposit, nil
}

func (s *FundsService) ListDeposits(ctx context.Context) ([]domain.Deposit, error) {
	return s.funds.ListDeposits(ctx)
}

func (s *FundsService) UpdateDepositStatus(ctx context.Context, id, status string) (*domain.Deposit, error) {
	return s.funds.UpdateDepositStatus(ctx, id, status)
}

func (s *FundsService) CreateWithdraw(ctx context.Context, in ports.CreateWithdrawInput) (*domain.Withdraw, error) {
	now := time.Now().UTC()
	withdraw, err := s.funds.CreateWithdraw(ctx, &domain.Withdraw{
		LoginUserID: in.LoginUserID,
		Amount:      in.Amount,
		Type:        in.Type,
		Status:      domain.FundStatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("withdraw_id", withdraw.ID).Str("login_user_id", in.LoginUserID).Float64("amount", in.Amount).Msg("withdraw created")
	return withdraw, nil
}

func (s *FundsService) ListWithdraws(ctx context.Context) ([]domain.Withdraw, error) {
	return s.funds.ListWithdraws(ctx)
}

func (s *FundsService) UpdateWithdrawStatus(ctx context.Context, id, status string) (*domain.Withdraw, error) {
	return s.funds.UpdateWithdrawStatus(ctx, id, status)
}
