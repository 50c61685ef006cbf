package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/taskboard/backend/internal/infrastructure/config"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

const (
	tasksCollection    = "tasks"
	projectsCollection = "projects"
)

// Mongo wraps the driver client and the application database handle.
// Connect once at startup and pass the handle down; repositories never
// open their own connections.
type Mongo struct {
	client *mongo.Client
	db     *mongo.Database
	logger *zap.Logger
}

// Connect establishes the MongoDB connection and verifies it with a ping.
func Connect(ctx context.Context, cfg config.MongoConfig, logger *zap.Logger) (*Mongo, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	opts := options.Client().
		ApplyURI(cfg.URI).
		SetConnectTimeout(cfg.ConnectTimeout).
		SetMaxPoolSize(cfg.MaxPoolSize).
		SetMinPoolSize(cfg.MinPoolSize)

	ctx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("connecting to mongodb: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("pinging mongodb: %w", err)
	}

	logger.Info("Connected to MongoDB", zap.String("database", cfg.Database))

	return &Mongo{
		client: client,
		db:     client.Database(cfg.Database),
		logger: logger,
	}, nil
}

// Database returns the application database handle
func (m *Mongo) Database() *mongo.Database {
	return m.db
}

// Ping verifies the connection is still alive
func (m *Mongo) Ping(ctx context.Context) error {
	return m.client.Ping(ctx, readpref.Primary())
}

// Close disconnects the underlying client
func (m *Mongo) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

// EnsureIndexes creates the indexes the repositories rely on. Name
// uniqueness is enforced here at the storage level so concurrent
// creates cannot slip past the service-level existence check.
func (m *Mongo) EnsureIndexes(ctx context.Context) error {
	nameUnique := mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	}

	for _, coll := range []string{tasksCollection, projectsCollection} {
		if _, err := m.db.Collection(coll).Indexes().CreateOne(ctx, nameUnique); err != nil {
			return fmt.Errorf("creating name index on %s: %w", coll, err)
		}
	}

	projectRef := mongo.IndexModel{
		Keys: bson.D{{Key: "projectId", Value: 1}},
	}
	if _, err := m.db.Collection(tasksCollection).Indexes().CreateOne(ctx, projectRef); err != nil {
		return fmt.Errorf("creating projectId index on %s: %w", tasksCollection, err)
	}

	m.logger.Info("MongoDB indexes ensured")
	return nil
}

// TxRunner returns a shared.TxRunner backed by a mongo session. On
// deployments without transaction support (standalone servers) the
// function runs directly, non-atomically.
func (m *Mongo) TxRunner() *MongoTxRunner {
	return &MongoTxRunner{client: m.client, logger: m.logger}
}

// MongoTxRunner runs functions inside a mongo multi-document transaction
type MongoTxRunner struct {
	client *mongo.Client
	logger *zap.Logger
}

// WithinTransaction implements shared.TxRunner
func (r *MongoTxRunner) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	session, err := r.client.StartSession()
	if err != nil {
		return fmt.Errorf("starting mongo session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	if err != nil && transactionsUnsupported(err) {
		r.logger.Warn("Transactions unsupported by deployment, running without one", zap.Error(err))
		return fn(ctx)
	}
	return err
}

// transactionsUnsupported reports whether the error indicates the
// deployment cannot run multi-document transactions (standalone mongod).
func transactionsUnsupported(err error) bool {
	if mongo.IsDuplicateKeyError(err) {
		return false
	}
	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) && cmdErr.Name == "IllegalOperation" {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "Transaction numbers are only allowed") ||
		strings.Contains(msg, "transactions are not supported")
}
