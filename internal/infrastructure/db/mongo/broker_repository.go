package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/masum-abrar/nex-trade-backend/internal/core/domain"
)

const brokerCollection = "broker_users"

// MongoBrokerRepository persists broker trading accounts.
type MongoBrokerRepository struct {
	coll *mongo.Collection
}

func NewBrokerRepository(db *mongo.Database) *MongoBrokerRepository {
	return &MongoBrokerRepository{coll: db.Collection(brokerCollection)}
}

func (r *MongoBrokerRepository) Create(ctx context.Context, u *domain.BrokerUser) (*domain.BrokerUser, error) {
	u.ID = ""
	res, err := r.coll.InsertOne(ctx, u)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrBrokerUserExists
		}
		return nil, fmt.Errorf("insert broker user: %w", err)
	}

	created := *u
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *MongoBrokerRepository) FindByLoginUserID(ctx context.Context, loginUserID string) (*domain.BrokerUser, error) {
	var u domain.BrokerUser
	if err := r.coll.FindOne(ctx, bson.M{"login_usrid": loginUserID}).Decode(&u); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrBrokerUserNotFound
		}
		return nil, fmt.Errorf("find broker user: %w", err)
	}
	return &u, nil
}

func (r *MongoBrokerRepository) List(ctx context.Context) ([]domain.BrokerUser, error) {
	cursor, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list broker users: %w", err)
	}
	defer cursor.Close(ctx)

	var users []domain.BrokerUser
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("decode broker users: %w", err)
	}
	return users, nil
}

func (r *MongoBrokerRepository) Update(ctx context.Context, loginUserID string, u *domain.BrokerUser) (*domain.BrokerUser, error) {
	set := bson.M{
		"username":                  u.Username,
		"role":                      u.Role,
		"margin_type":               u.MarginType,
		"segment_allow":             u.SegmentAllow,
		"intraday_square":           u.IntradaySquare,
		"profit_trade_hold_min_sec": u.ProfitTradeHoldMinSec,
		"loss_trade_hold_min_sec":   u.LossTradeHoldMinSec,
		"segments":                  u.Segments,
		"updated_at":                u.UpdatedAt,
	}
	if u.PasswordHash != "" {
		set["password_hash"] = u.PasswordHash
	}

	var updated domain.BrokerUser
	err := r.coll.FindOneAndUpdate(ctx,
		bson.M{"login_usrid": loginUserID},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrBrokerUserNotFound
		}
		return nil, fmt.Errorf("update broker user: %w", err)
	}
	return &updated, nil
}

func (r *MongoBrokerRepository) UpdateFunds(ctx context.Context, loginUserID string, ledgerBalanceClose, marginUsed float64) (*domain.BrokerUser, error) {
	var updated domain.BrokerUser
	err := r.coll.FindOneAndUpdate(ctx,
		bson.M{"login_usrid": loginUserID},
		bson.M{"$set": bson.M{
			"ledger_balance_close": ledgerBalanceClose,
			"margin_used":          marginUsed,
			"updated_at":           time.Now().UTC(),
		}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrBrokerUserNotFound
		}
		return nil, fmt.Errorf("update broker funds: %w", err)
	}
	return &updated, nil
}
