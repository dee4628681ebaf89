package persistence

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"

	"github.com/feeportal/fee-service/internal/config"
)

// Collection names shared with existing deployments.
const (
	AccountsCollection    = "users"
	FeeRequestsCollection = "feerequests"
)

// Mongo owns the process-wide document database connection. The connection is
// opened on first use and reused afterwards; a failed attempt is retried by the
// next caller.
type Mongo struct {
	cfg    config.MongoConfig
	logger *zap.Logger

	mu     sync.Mutex
	client *mongo.Client
	db     *mongo.Database
}

// NewMongo prepares a lazy connection. No network I/O happens here.
func NewMongo(cfg config.MongoConfig, logger *zap.Logger) *Mongo {
	return &Mongo{cfg: cfg, logger: logger}
}

// Database returns the connected database, connecting if needed.
func (m *Mongo) Database(ctx context.Context) (*mongo.Database, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.db != nil {
		return m.db, nil
	}

	connectCtx, cancel := context.WithTimeout(ctx, m.cfg.ConnectTimeout())
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(m.cfg.URI))
	if err != nil {
		m.logger.Error("mongo connect failed", zap.Error(err))
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		m.logger.Error("mongo ping failed", zap.Error(err))
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	db := client.Database(m.cfg.Database)
	if err := ensureIndexes(connectCtx, db); err != nil {
		m.logger.Warn("mongo index creation failed", zap.Error(err))
	}

	m.client = client
	m.db = db
	m.logger.Info("connected to mongo", zap.String("database", m.cfg.Database))
	return db, nil
}

// Collection returns a handle to the named collection.
func (m *Mongo) Collection(ctx context.Context, name string) (*mongo.Collection, error) {
	db, err := m.Database(ctx)
	if err != nil {
		return nil, err
	}
	return db.Collection(name), nil
}

// Ping verifies connectivity, connecting first if necessary.
func (m *Mongo) Ping(ctx context.Context) error {
	db, err := m.Database(ctx)
	if err != nil {
		return err
	}
	return db.Client().Ping(ctx, readpref.Primary())
}

// Close disconnects the client if one was established.
func (m *Mongo) Close(ctx context.Context) error {
	if m == nil {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.client == nil {
		return nil
	}
	err := m.client.Disconnect(ctx)
	m.client = nil
	m.db = nil
	return err
}

func ensureIndexes(ctx context.Context, db *mongo.Database) error {
	_, accErr := db.Collection(AccountsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("email_unique"),
	})
	_, reqErr := db.Collection(FeeRequestsCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "regNumber", Value: 1}}, Options: options.Index().SetName("reg_number")},
		{Keys: bson.D{{Key: "status", Value: 1}}, Options: options.Index().SetName("status")},
	})
	return errors.Join(accErr, reqErr)
}
