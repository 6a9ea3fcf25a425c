package ports

import (
	"context"

	"github.com/masum-abrar/nex-trade-backend/internal/core/domain"
)

// BrokerUserInput carries the broker account fields for create/update.
type BrokerUserInput struct {
	LoginUserID           string
	Username              string
	Password              string
	Role                  string
	MarginType            string
	SegmentAllow          []string
	IntradaySquare        bool
	LedgerBalanceClose    float64
	ProfitTradeHoldMinSec int
	LossTradeHoldMinSec   int
	Segments              map[string]domain.SegmentSettings
}

// BrokerLoginResult is the trimmed payload returned on broker login.
type BrokerLoginResult struct {
	Role     string
	UserID   string
	Username string
}

// BrokerRepository persists broker trading accounts.
type BrokerRepository interface {
	Create(ctx context.Context, u *domain.BrokerUser) (*domain.BrokerUser, error)
	FindByLoginUserID(ctx context.Context, loginUserID string) (*domain.BrokerUser, error)
	List(ctx context.Context) ([]domain.BrokerUser, error)
	Update(ctx context.Context, loginUserID string, u *domain.BrokerUser) (*domain.BrokerUser, error)
	UpdateFunds(ctx context.Context, loginUserID string, ledgerBalanceClose, marginUsed float64) (*domain.BrokerUser, error)
}

// BrokerService manages broker accounts and their login.
type BrokerService interface {
	Create(ctx context.Context, in BrokerUserInput) (*domain.BrokerUser, error)
	Get(ctx context.Context, loginUserID string) (*domain.BrokerUser, error)
	List(ctx context.Context) ([]domain.BrokerUser, error)
	Update(ctx context.Context, loginUserID string, in BrokerUserInput) (*domain.BrokerUser, error)
	UpdateFunds(ctx context.Context, loginUserID string, ledgerBalanceClose, marginUsed float64) (*domain.BrokerUser, error)
	Login(ctx context.Context, loginUserID, password string) (*BrokerLoginResult, error)
}
