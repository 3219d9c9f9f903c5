package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lockuplabs/token-lockup-service/internal/db/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (db *Database) CreateLockup(ctx context.Context, doc *model.LockupDocument) error {
	_, err := db.collection(model.LockupCollection).InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return &DuplicateKeyError{
				Key:     doc.ID,
				Message: "lockup already exists",
			}
		}
		return err
	}
	return nil
}

func (db *Database) GetLockup(ctx context.Context, id string) (*model.LockupDocument, error) {
	var doc model.LockupDocument
	err := db.collection(model.LockupCollection).
		FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, &NotFoundError{
			Key:     id,
			Message: "lockup not found",
		}
	}
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

func (db *Database) UpdateLockupSchedule(ctx context.Context, id string, unlocks []model.UnlockEntry) error {
	return db.updateLockupField(ctx, id, "unlocks", unlocks)
}

func (db *Database) UpdateLockupAdmin(ctx context.Context, id, admin string) error {
	return db.updateLockupField(ctx, id, "admin", admin)
}

func (db *Database) UpdateLockupOwner(ctx context.Context, id, owner string) error {
	return db.updateLockupField(ctx, id, "owner", owner)
}

func (db *Database) updateLockupField(ctx context.Context, id, field string, value interface{}) error {
	result, err := db.collection(model.LockupCollection).
		UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{field: value}})
	if err != nil {
		return fmt.Errorf("failed to update lockup %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return &NotFoundError{
			Key:     id,
			Message: "lockup not found",
		}
	}
	return nil
}

func (db *Database) GetClaimWatermark(ctx context.Context, lockupID, asset string) (uint64, error) {
	var doc model.ClaimWatermarkDocument
	err := db.collection(model.WatermarkCollection).
		FindOne(ctx, bson.M{"_id": model.ClaimWatermarkID(lockupID, asset)}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		// assets that never claimed default to epoch 0
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return doc.LastClaimTime, nil
}

func (db *Database) SetClaimWatermark(ctx context.Context, lockupID, asset string, lastClaimTime uint64) error {
	doc := &model.ClaimWatermarkDocument{
		ID:            model.ClaimWatermarkID(lockupID, asset),
		LockupID:      lockupID,
		Asset:         asset,
		LastClaimTime: lastClaimTime,
	}
	update := bson.M{"$set": doc}
	opts := options.Update().SetUpsert(true)
	_, err := db.collection(model.WatermarkCollection).
		UpdateOne(ctx, bson.M{"_id": doc.ID}, update, opts)
	return err
}

// ExtendLiveness bumps the expiry of every lockup document within threshold
// of expiring. Called periodically so that live lockups are never collected
// by the TTL index.
func (db *Database) ExtendLiveness(ctx context.Context, threshold, bump time.Duration) (int64, error) {
	now := time.Now()
	filter := bson.M{"expires_at": bson.M{"$lte": now.Add(threshold)}}
	update := bson.M{"$set": bson.M{"expires_at": now.Add(bump)}}
	result, err := db.collection(model.LockupCollection).UpdateMany(ctx, filter, update)
	if err != nil {
		return 0, fmt.Errorf("failed to extend lockup liveness: %w", err)
	}
	return result.ModifiedCount, nil
}
