package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/feeportal/fee-service/internal/domain"
	"github.com/feeportal/fee-service/internal/persistence"
)

// CollectionProvider hands out collections, connecting lazily if needed.
type CollectionProvider interface {
	Collection(ctx context.Context, name string) (*mongo.Collection, error)
}

type accountDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Username  string             `bson:"username"`
	Email     string             `bson:"email"`
	Password  string             `bson:"password"`
	Role      string             `bson:"role"`
	CreatedAt time.Time          `bson:"createdAt"`
}

func (d *accountDocument) toDomain() *domain.Account {
	return &domain.Account{
		ID:           d.ID.Hex(),
		Username:     d.Username,
		Email:        d.Email,
		PasswordHash: d.Password,
		Role:         domain.Role(d.Role),
		CreatedAt:    d.CreatedAt,
	}
}

type mongoAccountRepository struct {
	provider CollectionProvider
}

// NewMongoAccountRepository returns a MongoDB-backed implementation.
func NewMongoAccountRepository(provider CollectionProvider) AccountRepository {
	return &mongoAccountRepository{provider: provider}
}

func (r *mongoAccountRepository) collection(ctx context.Context) (*mongo.Collection, error) {
	return r.provider.Collection(ctx, persistence.AccountsCollection)
}

func (r *mongoAccountRepository) Create(ctx context.Context, account *domain.Account) error {
	coll, err := r.collection(ctx)
	if err != nil {
		return err
	}

	doc := accountDocument{
		Username:  account.Username,
		Email:     account.Email,
		Password:  account.PasswordHash,
		Role:      string(account.Role),
		CreatedAt: time.Now().UTC(),
	}
	res, err := coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicateEmail
		}
		return fmt.Errorf("insert account: %w", err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return fmt.Errorf("insert account: unexpected id type %T", res.InsertedID)
	}
	account.ID = oid.Hex()
	account.CreatedAt = doc.CreatedAt
	return nil
}

func (r *mongoAccountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *mongoAccountRepository) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *mongoAccountRepository) findOne(ctx context.Context, filter bson.M) (*domain.Account, error) {
	coll, err := r.collection(ctx)
	if err != nil {
		return nil, err
	}
	var doc accountDocument
	if err := coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find account: %w", err)
	}
	return doc.toDomain(), nil
}
