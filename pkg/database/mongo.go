package database

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"

	"github.com/Alijeyrad/taadol_backend/config"
)

// DB bundles the client with the application database.
type DB struct {
	client *mongo.Client
	db     *mongo.Database
	cfg    Config
}

// NewMongo creates a new client from central config and pings the server.
func NewMongo(cfg config.DatabaseConfig) (*DB, error) {
	return New(FromCentralConfig(cfg))
}

func New(cfg Config) (*DB, error) {
	opts := options.Client().
		ApplyURI(cfg.URI).
		SetConnectTimeout(cfg.ConnectTimeout()).
		SetTimeout(cfg.QueryTimeout()).
		SetMaxConnIdleTime(cfg.MaxConnIdleTime())

	if cfg.MaxPoolSize > 0 {
		opts.SetMaxPoolSize(cfg.MaxPoolSize)
	}
	if cfg.MinPoolSize > 0 {
		opts.SetMinPoolSize(cfg.MinPoolSize)
	}

	client, err := mongo.Connect(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ConnectTimeout())
	defer cancel()

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &DB{client: client, db: client.Database(cfg.Name), cfg: cfg}, nil
}

func (d *DB) Database() *mongo.Database {
	return d.db
}

func (d *DB) Collection(name string) *mongo.Collection {
	return d.db.Collection(name)
}

func (d *DB) Config() Config {
	return d.cfg
}

// Ping checks if the primary is reachable.
func (d *DB) Ping(ctx context.Context) error {
	return d.client.Ping(ctx, readpref.Primary())
}

func (d *DB) Close(ctx context.Context) error {
	return d.client.Disconnect(ctx)
}
