package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/feeportal/fee-service/internal/domain"
	"github.com/feeportal/fee-service/internal/persistence"
)

type feeRequestDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	StudentName string             `bson:"studentName"`
	RegNumber   string             `bson:"regNumber"`
	Year        string             `bson:"year"`
	Branch      string             `bson:"branch"`
	Section     string             `bson:"section"`
	FeeType     string             `bson:"feeType"`
	Status      string             `bson:"status"`
	Reason      string             `bson:"reason"`
	Faculty     string             `bson:"faculty"`
	Amount      float64            `bson:"amount"`
	CrtFee      float64            `bson:"crtFee"`
	Attendance  string             `bson:"attendance"`
	CreatedAt   time.Time          `bson:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt"`
}

func (d *feeRequestDocument) toDomain() domain.FeeRequest {
	return domain.FeeRequest{
		ID:          d.ID.Hex(),
		StudentName: d.StudentName,
		RegNumber:   d.RegNumber,
		Year:        d.Year,
		Branch:      d.Branch,
		Section:     d.Section,
		FeeType:     domain.FeeType(d.FeeType),
		Status:      domain.RequestStatus(d.Status),
		Reason:      d.Reason,
		Faculty:     d.Faculty,
		Amount:      d.Amount,
		CrtFee:      d.CrtFee,
		Attendance:  d.Attendance,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

var creationOrder = bson.D{{Key: "_id", Value: 1}}

type mongoFeeRequestRepository struct {
	provider CollectionProvider
}

// NewMongoFeeRequestRepository returns a MongoDB-backed implementation.
func NewMongoFeeRequestRepository(provider CollectionProvider) FeeRequestRepository {
	return &mongoFeeRequestRepository{provider: provider}
}

func (r *mongoFeeRequestRepository) collection(ctx context.Context) (*mongo.Collection, error) {
	return r.provider.Collection(ctx, persistence.FeeRequestsCollection)
}

func (r *mongoFeeRequestRepository) Create(ctx context.Context, request *domain.FeeRequest) error {
	coll, err := r.collection(ctx)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	doc := feeRequestDocument{
		StudentName: request.StudentName,
		RegNumber:   request.RegNumber,
		Year:        request.Year,
		Branch:      request.Branch,
		Section:     request.Section,
		FeeType:     string(request.FeeType),
		Status:      string(request.Status),
		Reason:      request.Reason,
		Faculty:     request.Faculty,
		Amount:      request.Amount,
		CrtFee:      request.CrtFee,
		Attendance:  request.Attendance,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	res, err := coll.InsertOne(ctx, doc)
	if err != nil {
		return fmt.Errorf("insert fee request: %w", err)
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return fmt.Errorf("insert fee request: unexpected id type %T", res.InsertedID)
	}
	request.ID = oid.Hex()
	request.CreatedAt = now
	request.UpdatedAt = now
	return nil
}

func (r *mongoFeeRequestRepository) GetByID(ctx context.Context, id string) (*domain.FeeRequest, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *mongoFeeRequestRepository) GetFirstByRegNumber(ctx context.Context, regNumber string) (*domain.FeeRequest, error) {
	return r.findOne(ctx, bson.M{"regNumber": regNumber})
}

func (r *mongoFeeRequestRepository) findOne(ctx context.Context, filter bson.M) (*domain.FeeRequest, error) {
	coll, err := r.collection(ctx)
	if err != nil {
		return nil, err
	}
	var doc feeRequestDocument
	err = coll.FindOne(ctx, filter, options.FindOne().SetSort(creationOrder)).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find fee request: %w", err)
	}
	request := doc.toDomain()
	return &request, nil
}

func (r *mongoFeeRequestRepository) List(ctx context.Context, filter FeeRequestFilter) ([]domain.FeeRequest, error) {
	coll, err := r.collection(ctx)
	if err != nil {
		return nil, err
	}
	query := bson.M{}
	if filter.Status != nil {
		query["status"] = string(*filter.Status)
	}

	cursor, err := coll.Find(ctx, query, options.Find().SetSort(creationOrder))
	if err != nil {
		return nil, fmt.Errorf("list fee requests: %w", err)
	}
	var docs []feeRequestDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode fee requests: %w", err)
	}

	result := make([]domain.FeeRequest, 0, len(docs))
	for i := range docs {
		result = append(result, docs[i].toDomain())
	}
	return result, nil
}

func (r *mongoFeeRequestRepository) TransitionStatus(ctx context.Context, id string, from domain.RequestStatus, update StatusUpdate) (*domain.FeeRequest, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrNotFound
	}
	coll, err := r.collection(ctx)
	if err != nil {
		return nil, err
	}

	set := bson.M{
		"status":    string(update.Status),
		"updatedAt": time.Now().UTC(),
	}
	if update.Reason != nil {
		set["reason"] = *update.Reason
	}
	if update.Faculty != nil {
		set["faculty"] = *update.Faculty
	}

	var doc feeRequestDocument
	err = coll.FindOneAndUpdate(ctx,
		bson.M{"_id": oid, "status": string(from)},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err == nil {
		request := doc.toDomain()
		return &request, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("update fee request: %w", err)
	}

	count, err := coll.CountDocuments(ctx, bson.M{"_id": oid})
	if err != nil {
		return nil, fmt.Errorf("count fee request: %w", err)
	}
	if count == 0 {
		return nil, domain.ErrNotFound
	}
	return nil, ErrStatusConflict
}
