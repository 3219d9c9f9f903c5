//go:build integration

package db_test

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"github.com/lockuplabs/token-lockup-service/internal/config"
	"github.com/lockuplabs/token-lockup-service/internal/db"
	"github.com/lockuplabs/token-lockup-service/internal/db/model"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	testDB  *db.Database
	mongoDB *mongo.Database
)

// Tests in this package run against an externally provided mongo, configured
// through TEST_MONGO_* environment variables.
func TestMain(m *testing.M) {
	cfg := &config.DbConfig{
		Username: getenv("TEST_MONGO_USERNAME", "user"),
		Password: getenv("TEST_MONGO_PASSWORD", "password"),
		Address:  getenv("TEST_MONGO_ADDRESS", "mongodb://localhost:27017/"),
		DbName:   getenv("TEST_MONGO_DB_NAME", "lockup-test"),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// apply migrations
	if err := model.Setup(ctx, cfg); err != nil {
		log.Fatalf("failed to init mongo database: %v", err)
	}

	var err error
	testDB, err = db.New(ctx, *cfg)
	if err != nil {
		log.Fatalf("failed to setup db client: %v", err)
	}

	// raw handle used to reset collections between tests
	credential := options.Credential{
		Username: cfg.Username,
		Password: cfg.Password,
	}
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Address).SetAuth(credential))
	if err != nil {
		log.Fatalf("failed to connect raw mongo client: %v", err)
	}
	mongoDB = client.Database(cfg.DbName)

	os.Exit(m.Run())
}

func getenv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func resetDatabase(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	collections := []string{
		model.LockupCollection,
		model.WatermarkCollection,
	}
	for _, collection := range collections {
		_, err := mongoDB.Collection(collection).DeleteMany(ctx, bson.M{})
		require.NoError(t, err)
	}
}
