package ports

import (
	"context"

	"github.com/masum-abrar/nex-trade-backend/internal/core/domain"
)

// CreateDepositInput records an inbound payment with optional proof image.
type CreateDepositInput struct {
	LoginUserID string
	Amount      float64
	Type        string
	Image       string
}

// CreateWithdrawInput records an outbound payment request.
type CreateWithdrawInput struct {
	LoginUserID string
	Amount      float64
	Type        string
}

// FundsRepository persists deposit and withdraw records.
type FundsRepository interface {
	CreateDeposit(ctx context.Context, d *domain.Deposit) (*domain.Deposit, error)
	ListDeposits(ctx context.Context) ([]domain.Deposit, error)
	UpdateDepositStatus(ctx context.Context, id, status string) (*domain.Deposit, error)

	CreateWithdraw(ctx context.Context, w *domain.Withdraw) (*domain.Withdraw, error)
	ListWithdraws(ctx context.Context) ([]domain.Withdraw, error)
	UpdateWithdrawStatus(ctx context.Context, id, status string) (*domain.Withdraw, error)
}

// FundsService manages deposit/withdraw record-keeping.
type FundsService interface {
	CreateDeposit(ctx context.Context, in CreateDepositInput) (*domain.Deposit, error)
	ListDeposits(ctx context.Context) ([]domain.Deposit, error)
	UpdateDepositStatus(ctx context.Context, id, status string) (*domain.Deposit, error)

	CreateWithdraw(ctx context.Context, in CreateWithdrawInput) (*domain.Withdraw, error)
	ListWithdraws(ctx context.Context) ([]domain.Withdraw, error)
	UpdateWithdrawStatus(ctx context.Context, id, status string) (*domain.Withdraw, error)
}
