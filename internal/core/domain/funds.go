package domain

import (
	"errors"
	"time"
)

var ErrDepositNotFound = errors.New("deposit not found")
var ErrWithdrawNotFound = errors.New("withdraw not found")

// Fund movement statuses.
const (
	FundStatusPending  = "pending"
	FundStatusApproved = "approved"
	FundStatusRejected = "rejected"
)

// Deposit records money paid in by a broker user. Image is an opaque
// reference (path or URL) to the uploaded payment proof.
type Deposit struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	LoginUserID string    `json:"loginUserId" bson:"login_user_id"`
	Amount      float64   `json:"depositAmount" bson:"amount"`
	Type        string    `json:"depositType" bson:"type"`
	Image       string    `json:"depositImage,omitempty" bson:"image,omitempty"`
	Status      string    `json:"status" bson:"status"`
	CreatedAt   time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" bson:"updated_at"`
}

// Withdraw records money paid out to a broker user.
type Withdraw struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	LoginUserID string    `json:"loginUserId" bson:"login_user_id"`
	Amount      float64   `json:"withdrawAmount" bson:"amount"`
	Type        string    `json:"withdrawType,omitempty" bson:"type,omitempty"`
	Status      string    `json:"status" bson:"status"`
	CreatedAt   time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" bson:"updated_at"`
}
