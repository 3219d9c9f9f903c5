package model

import (
	"context"
	"fmt"

	"github.com/lockuplabs/token-lockup-service/internal/config"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Setup creates the collections and indexes the service relies on. The TTL
// index on expires_at is how the store garbage-collects lockups whose
// liveness was never extended, mirroring the host-side expiry the
// extend-liveness side channel guards against.
func Setup(ctx context.Context, cfg *config.DbConfig) error {
	credential := options.Credential{
		Username: cfg.Username,
		Password: cfg.Password,
	}
	clientOps := options.Client().ApplyURI(cfg.Address).SetAuth(credential)
	client, err := mongo.Connect(ctx, clientOps)
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Disconnect(ctx)
	}()

	database := client.Database(cfg.DbName)

	lockupIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "expires_at", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(0),
		},
	}
	if _, err := database.Collection(LockupCollection).Indexes().CreateMany(ctx, lockupIndexes); err != nil {
		return fmt.Errorf("failed to create lockup indexes: %w", err)
	}

	watermarkIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "lockup_id", Value: 1}},
		},
	}
	if _, err := database.Collection(WatermarkCollection).Indexes().CreateMany(ctx, watermarkIndexes); err != nil {
		return fmt.Errorf("failed to create claim watermark indexes: %w", err)
	}

	return nil
}
