package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/harshava123/powderlegacy/internal/config"
	"github.com/harshava123/powderlegacy/internal/domain"
	"github.com/harshava123/powderlegacy/pkg/errors"
)

// cartDocument is the mirror document, one per authenticated user.
type cartDocument struct {
	UserID    string                `bson:"user_id"`
	Items     []domain.CartLineItem `bson:"items"`
	UpdatedAt time.Time             `bson:"updated_at"`
}

type cartMirrorRepository struct {
	collection *mongo.Collection
}

// Connect opens the Mongo database holding the cart mirror collection.
func Connect(ctx context.Context, cfg config.MongoConfig) (*mongo.Database, error) {
	clientOpts := options.Client().
		ApplyURI(cfg.URI).
		SetConnectTimeout(10 * time.Second).
		SetServerSelectionTimeout(5 * time.Second).
		SetMaxPoolSize(100)

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	// Ping to verify connection
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	return client.Database(cfg.DBName), nil
}

// NewCartMirrorRepository creates the remote cart mirror over a Mongo database.
func NewCartMirrorRepository(db *mongo.Database) *cartMirrorRepository {
	return &cartMirrorRepository{collection: db.Collection("carts")}
}

func (r *cartMirrorRepository) Get(ctx context.Context, userID string) (*domain.Cart, error) {
	var doc cartDocument
	err := r.collection.FindOne(ctx, bson.M{"user_id": userID}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, &errors.ErrNotFound{Resource: "cart", ID: userID}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cart mirror: %w", err)
	}
	return &domain.Cart{Items: doc.Items}, nil
}

func (r *cartMirrorRepository) Set(ctx context.Context, userID string, cart *domain.Cart) error {
	doc := cartDocument{
		UserID:    userID,
		Items:     cart.Items,
		UpdatedAt: time.Now(),
	}
	opts := options.Update().SetUpsert(true)
	_, err := r.collection.UpdateOne(ctx, bson.M{"user_id": userID}, bson.M{"$set": doc}, opts)
	if err != nil {
		return fmt.Errorf("failed to upsert cart mirror: %w", err)
	}
	return nil
}

func (r *cartMirrorRepository) Delete(ctx context.Context, userID string) error {
	if _, err := r.collection.DeleteOne(ctx, bson.M{"user_id": userID}); err != nil {
		return fmt.Errorf("failed to delete cart mirror: %w", err)
	}
	return nil
}
