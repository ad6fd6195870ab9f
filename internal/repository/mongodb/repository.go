package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/safdamla/pressbook/internal/domain/models"
)

// ErrNoSnapshot is returned when the ledger document does not exist yet.
var ErrNoSnapshot = errors.New("no snapshot stored for ledger")

// Repository defines the cloud snapshot storage operations.
type Repository interface {
	ReadSnapshot(ctx context.Context, ledgerID string) (models.Snapshot, error)
	WriteSnapshot(ctx context.Context, ledgerID string, snap models.Snapshot) error
	Ping(ctx context.Context) error
}

// MongoDBRepository stores the whole ledger as a single document per ledger
// id, replaced wholesale on every write.
type MongoDBRepository struct {
	client   *mongo.Client
	dbName   string
	collName string
}

// ledgerDocument is the stored shape: the ledger id as _id and the snapshot
// embedded under data.
type ledgerDocument struct {
	ID   string          `bson:"_id"`
	Data models.Snapshot `bson:"data"`
}

// NewMongoDBRepository creates a new MongoDB repository.
func NewMongoDBRepository(ctx context.Context, uri string, dbName string) (*MongoDBRepository, error) {
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	// Ping the database to verify connection
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &MongoDBRepository{
		client:   client,
		dbName:   dbName,
		collName: "userData",
	}, nil
}

// ReadSnapshot loads the ledger document. The data is decoded leniently:
// documents migrated from legacy exports can carry string-typed numerics,
// which degrade through coercion instead of failing the read.
func (r *MongoDBRepository) ReadSnapshot(ctx context.Context, ledgerID string) (models.Snapshot, error) {
	collection := r.client.Database(r.dbName).Collection(r.collName)

	var doc struct {
		Data bson.M `bson:"data"`
	}
	err := collection.FindOne(ctx, bson.M{"_id": ledgerID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Snapshot{}, ErrNoSnapshot
	}
	if err != nil {
		return models.Snapshot{}, fmt.Errorf("failed to read snapshot: %w", err)
	}
	if doc.Data == nil {
		return models.Snapshot{}, nil
	}

	raw, err := bson.Marshal(models.NormalizeDocument(doc.Data))
	if err != nil {
		return models.Snapshot{}, fmt.Errorf("failed to re-encode snapshot: %w", err)
	}
	var snap models.Snapshot
	if err := bson.Unmarshal(raw, &snap); err != nil {
		return models.Snapshot{}, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	return snap, nil
}

// WriteSnapshot replaces the ledger document, creating it on first write.
func (r *MongoDBRepository) WriteSnapshot(ctx context.Context, ledgerID string, snap models.Snapshot) error {
	collection := r.client.Database(r.dbName).Collection(r.collName)

	doc := ledgerDocument{ID: ledgerID, Data: snap}
	opts := options.Replace().SetUpsert(true)
	if _, err := collection.ReplaceOne(ctx, bson.M{"_id": ledgerID}, doc, opts); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	return nil
}

// Ping verifies the connection is still alive.
func (r *MongoDBRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx, nil)
}

// Close closes the MongoDB connection.
func (r *MongoDBRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}
