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
	"github.com/masum-abrar/nex-trade-backend/internal/core/ports"
)

const usersCollection = "users"

// MongoUserRepository persists identity records in the users collection.
type MongoUserRepository struct {
	coll *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *MongoUserRepository {
	return &MongoUserRepository{coll: db.Collection(usersCollection)}
}

type mongoUser struct {
	ID                   primitive.ObjectID `bson:"_id,omitempty"`
	ParentID             string             `bson:"parent_id,omitempty"`
	RoleID               string             `bson:"role_id,omitempty"`
	Name                 string             `bson:"name"`
	Email                string             `bson:"email,omitempty"`
	Phone                string             `bson:"phone,omitempty"`
	Address              string             `bson:"address,omitempty"`
	BillingAddress       string             `bson:"billing_address,omitempty"`
	Country              string             `bson:"country,omitempty"`
	City                 string             `bson:"city,omitempty"`
	PostalCode           string             `bson:"postal_code,omitempty"`
	Image                string             `bson:"image,omitempty"`
	PasswordHash         string             `bson:"password_hash,omitempty"`
	OTP                  string             `bson:"otp,omitempty"`
	OTPCount             int                `bson:"otp_count"`
	InitialPaymentAmount float64            `bson:"initial_payment_amount,omitempty"`
	InitialPaymentDue    string             `bson:"initial_payment_due,omitempty"`
	InstallmentTime      string             `bson:"installment_time,omitempty"`
	IsActive             bool               `bson:"is_active"`
	IsDeleted            bool               `bson:"is_deleted"`
	CreatedBy            string             `bson:"created_by,omitempty"`
	UpdatedBy            string             `bson:"updated_by,omitempty"`
	DeletedBy            string             `bson:"deleted_by,omitempty"`
	CreatedAt            time.Time          `bson:"created_at"`
	UpdatedAt            time.Time          `bson:"updated_at"`
}

func (r *MongoUserRepository) FindByIdentifier(ctx context.Context, email, phone string, activeOnly bool) (*domain.User, error) {
	or := bson.A{}
	if email != "" {
		or = append(or, bson.M{"email": email})
	}
	if phone != "" {
		or = append(or, bson.M{"phone": phone})
	}
	if len(or) == 0 {
		return nil, domain.ErrUserNotFound
	}

	filter := bson.M{"is_deleted": false, "$or": or}
	if activeOnly {
		filter["is_active"] = true
	}

	var mu mongoUser
	if err := r.coll.FindOne(ctx, filter).Decode(&mu); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return mu.toDomain(), nil
}

func (r *MongoUserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	var mu mongoUser
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid, "is_deleted": false}).Decode(&mu); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user by id: %w", err)
	}
	return mu.toDomain(), nil
}

func (r *MongoUserRepository) List(ctx context.Context, f ports.UserFilter) ([]domain.User, error) {
	filter := bson.M{"is_deleted": false, "is_active": f.Active}
	if f.ParentID != "" {
		filter["parent_id"] = f.ParentID
	}
	for field, value := range map[string]string{
		"name":    f.Name,
		"email":   f.Email,
		"phone":   f.Phone,
		"address": f.Address,
	} {
		if value != "" {
			filter[field] = bson.M{"$regex": value, "$options": "i"}
		}
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64(f.Limit * (f.Page - 1))).
		SetLimit(int64(f.Limit))

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []mongoUser
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}

	users := make([]domain.User, 0, len(docs))
	for _, mu := range docs {
		users = append(users, *mu.toDomain())
	}
	return users, nil
}

func (r *MongoUserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	doc := fromDomain(user)

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		// The partial unique indexes on live email/phone close the
		// check-then-create race: the loser of a concurrent duplicate
		// registration lands here.
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	created := *user
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *MongoUserRepository) Update(ctx context.Context, id string, upd ports.UserUpdate) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	set := bson.M{
		"updated_by": upd.UpdatedBy,
		"updated_at": time.Now().UTC(),
	}
	for field, value := range map[string]*string{
		"role_id":             upd.RoleID,
		"name":                upd.Name,
		"email":               upd.Email,
		"phone":               upd.Phone,
		"address":             upd.Address,
		"billing_address":     upd.BillingAddress,
		"country":             upd.Country,
		"city":                upd.City,
		"postal_code":         upd.PostalCode,
		"image":               upd.Image,
		"initial_payment_due": upd.InitialPaymentDue,
		"installment_time":    upd.InstallmentTime,
	} {
		if value != nil {
			set[field] = *value
		}
	}
	if upd.InitialPaymentAmount != nil {
		set["initial_payment_amount"] = *upd.InitialPaymentAmount
	}

	return r.findOneAndUpdate(ctx, bson.M{"_id": oid, "is_deleted": false}, bson.M{"$set": set})
}

func (r *MongoUserRepository) SetActive(ctx context.Context, id string, active bool) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}
	return r.findOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{"is_active": active}})
}

func (r *MongoUserRepository) SoftDelete(ctx context.Context, id, deletedBy string) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}
	return r.findOneAndUpdate(ctx, bson.M{"_id": oid, "is_deleted": false}, bson.M{
		"$set": bson.M{"is_deleted": true, "deleted_by": deletedBy},
	})
}

// IssueOTP writes the code only when none is pending. The pending check
// and the write are one FindOneAndUpdate, so two concurrent requests
// cannot both mint a code; the loser re-reads and reuses the winner's.
func (r *MongoUserRepository) IssueOTP(ctx context.Context, userID, code string) (string, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return "", domain.ErrUserNotFound
	}

	filter := bson.M{
		"_id":        oid,
		"is_deleted": false,
		"$or": bson.A{
			bson.M{"otp": bson.M{"$exists": false}},
			bson.M{"otp": ""},
		},
	}
	update := bson.M{
		"$set": bson.M{"otp": code},
		"$inc": bson.M{"otp_count": 1},
	}

	var mu mongoUser
	err = r.coll.FindOneAndUpdate(ctx, filter, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&mu)
	if err == nil {
		return mu.OTP, nil
	}
	if err != mongo.ErrNoDocuments {
		return "", fmt.Errorf("issue otp: %w", err)
	}

	// A code is already pending (or the user vanished); reuse it.
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid, "is_deleted": false}).Decode(&mu); err != nil {
		if err == mongo.ErrNoDocuments {
			return "", domain.ErrUserNotFound
		}
		return "", fmt.Errorf("reload pending otp: %w", err)
	}
	if mu.OTP == "" {
		return "", domain.ErrNoOTPIssued
	}
	return mu.OTP, nil
}

// ConsumeOTP clears the code iff it still matches, making each code
// single-use even under concurrent verification attempts.
func (r *MongoUserRepository) ConsumeOTP(ctx context.Context, userID, code string) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return false, domain.ErrUserNotFound
	}

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": oid, "otp": code},
		bson.M{"$set": bson.M{"otp": ""}},
	)
	if err != nil {
		return false, fmt.Errorf("consume otp: %w", err)
	}
	return res.ModifiedCount > 0, nil
}

func (r *MongoUserRepository) findOneAndUpdate(ctx context.Context, filter, update bson.M) (*domain.User, error) {
	var mu mongoUser
	err := r.coll.FindOneAndUpdate(ctx, filter, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&mu)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	return mu.toDomain(), nil
}

func fromDomain(u *domain.User) mongoUser {
	return mongoUser{
		ParentID:             u.ParentID,
		RoleID:               u.RoleID,
		Name:                 u.Name,
		Email:                u.Email,
		Phone:                u.Phone,
		Address:              u.Address,
		BillingAddress:       u.BillingAddress,
		Country:              u.Country,
		City:                 u.City,
		PostalCode:           u.PostalCode,
		Image:                u.Image,
		PasswordHash:         u.PasswordHash,
		OTP:                  u.OTP,
		OTPCount:             u.OTPCount,
		InitialPaymentAmount: u.InitialPaymentAmount,
		InitialPaymentDue:    u.InitialPaymentDue,
		InstallmentTime:      u.InstallmentTime,
		IsActive:             u.IsActive,
		IsDeleted:            u.IsDeleted,
		CreatedBy:            u.CreatedBy,
		UpdatedBy:            u.UpdatedBy,
		DeletedBy:            u.DeletedBy,
		CreatedAt:            u.CreatedAt,
		UpdatedAt:            u.UpdatedAt,
	}
}

func (mu mongoUser) toDomain() *domain.User {
	return &domain.User{
		ID:                   mu.ID.Hex(),
		ParentID:             mu.ParentID,
		RoleID:               mu.RoleID,
		Name:                 mu.Name,
		Email:                mu.Email,
		Phone:                mu.Phone,
		Address:              mu.Address,
		BillingAddress:       mu.BillingAddress,
		Country:              mu.Country,
		City:                 mu.City,
		PostalCode:           mu.PostalCode,
		Image:                mu.Image,
		PasswordHash:         mu.PasswordHash,
		OTP:                  mu.OTP,
		OTPCount:             mu.OTPCount,
		InitialPaymentAmount: mu.InitialPaymentAmount,
		InitialPaymentDue:    mu.InitialPaymentDue,
		InstallmentTime:      mu.InstallmentTime,
		IsActive:             mu.IsActive,
		IsDeleted:            mu.IsDeleted,
		CreatedBy:            mu.CreatedBy,
		UpdatedBy:            mu.UpdatedBy,
		DeletedBy:            mu.DeletedBy,
		CreatedAt:            mu.CreatedAt,
		UpdatedAt:            mu.UpdatedAt,
	}
}
