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

const (
	depositsCollection  = "deposits"
	withdrawsCollection = "withdraws"
)

// MongoFundsRepository persists deposit and withdraw records.
type MongoFundsRepository struct {
	deposits  *mongo.Collection
	withdraws *mongo.Collection
}

func NewFundsRepository(db *mongo.Database) *MongoFundsRepository {
	return &MongoFundsRepository{
		deposits:  db.Collection(depositsCollection),
		withdraws: db.Collection(withdrawsCollection),
	}
}

func (r *MongoFundsRepository) CreateDeposit(ctx context.Context, d *domain.Deposit) (*domain.Deposit, error) {
	d.ID = ""
	res, err := r.deposits.InsertOne(ctx, d)
	if err != nil {
		return nil, fmt.Errorf("insert deposit: %w", err)
	}

	created := *d
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *MongoFundsRepository) ListDeposits(ctx context.Context) ([]domain.Deposit, error) {
	cursor, err := r.deposits.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list deposits: %w", err)
	}
	defer cursor.Close(ctx)

	var deposits []domain.Deposit
	if err := cursor.All(ctx, &deposits); err != nil {
		return nil, fmt.Errorf("decode deposits: %w", err)
	}
	return deposits, nil
}

func (r *MongoFundsRepository) UpdateDepositStatus(ctx context.Context, id, status string) (*domain.Deposit, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrDepositNotFound
	}

	var updated domain.Deposit
	err = r.deposits.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"status": status, "updated_at": time.Now().UTC()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrDepositNotFound
		}
		return nil, fmt.Errorf("update deposit status: %w", err)
	}
	return &updated, nil
}

func (r *MongoFundsRepository) CreateWithdraw(ctx context.Context, w *domain.Withdraw) (*domain.Withdraw, error) {
	w.ID = ""
	res, err := r.withdraws.InsertOne(ctx, w)
	if err != nil {
		return nil, fmt.Errorf("insert withdraw: %w", err)
	}

	created := *w
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *MongoFundsRepository) ListWithdraws(ctx context.Context) ([]domain.Withdraw, error) {
	cursor, err := r.withdraws.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list withdraws: %w", err)
	}
	defer cursor.Close(ctx)

	var withdraws []domain.Withdraw
	if err := cursor.All(ctx, &withdraws); err != nil {
		return nil, fmt.Errorf("decode withdraws: %w", err)
	}
	return withdraws, nil
}

func (r *MongoFundsRepository) UpdateWithdrawStatus(ctx context.Context, id, status string) (*domain.Withdraw, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrWithdrawNotFound
	}

	var updated domain.Withdraw
	err = r.withdraws.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"status": status, "updated_at": time.Now().UTC()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrWithdrawNotFound
		}
		return nil, fmt.Errorf("update withdraw status: %w", err)
	}
	return &updated, nil
}
