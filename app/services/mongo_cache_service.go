package services

import (
	"context"
	"crypto/sha256"
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/dariapavlova02/sanctions-screen/app/models"
)

// MongoCacheService is the persistent L2 cache tier (MongoDB) fronted by an
// in-process L1 LRU, adapted from the teacher's same-named service to store
// models.CacheEntry/ProcessingResult instead of AddressResult.
type MongoCacheService struct {
	collection *mongo.Collection
	l1Cache    *lru.Cache[string, models.CacheEntry]
	logger     *zap.Logger

	totalHits, totalMiss         int64
	l1Hits, l1Miss               int64
	mongoHits, mongoMiss         int64
}

func NewMongoCacheService(db *mongo.Database, l1Size int, logger *zap.Logger) (*MongoCacheService, error) {
	l1Cache, err := lru.New[string, models.CacheEntry](l1Size)
	if err != nil {
		return nil, fmt.Errorf("mongo cache: create LRU: %w", err)
	}

	collection := db.Collection("processing_cache")

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{bson.E{Key: "key", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{bson.E{Key: "inserted_at", Value: 1}}},
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := collection.Indexes().CreateMany(ctx, indexModels); err != nil {
		logger.Warn("mongo cache: could not create indexes", zap.Error(err))
	}

	return &MongoCacheService{
		collection: collection,
		l1Cache:    l1Cache,
		logger:     logger,
	}, nil
}

// Get resolves key through L1 then MongoDB, rehydrating L1 on an L2 hit.
// An expired entry is treated as a miss and evicted from L1.
func (mcs *MongoCacheService) Get(ctx context.Context, key string) (*models.ProcessingResult, bool, error) {
	if entry, found := mcs.l1Cache.Get(key); found {
		if entry.Expired(time.Now().Unix()) {
			mcs.l1Cache.Remove(key)
		} else {
			mcs.l1Hits++
			mcs.totalHits++
			return &entry.Value, true, nil
		}
	}
	mcs.l1Miss++

	fp := fingerprint(key)
	var entry models.CacheEntry
	err := mcs.collection.FindOne(ctx, bson.M{"key": fp}).Decode(&entry)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			mcs.mongoMiss++
			mcs.totalMiss++
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("mongo cache: query: %w", err)
	}

	if entry.Expired(time.Now().Unix()) {
		mcs.mongoMiss++
		mcs.totalMiss++
		_, _ = mcs.collection.DeleteOne(ctx, bson.M{"key": fp})
		return nil, false, nil
	}

	mcs.mongoHits++
	mcs.totalHits++
	mcs.l1Cache.Add(key, entry)

	mcs.logger.Debug("mongo cache hit", zap.String("key", key))
	return &entry.Value, true, nil
}

func (mcs *MongoCacheService) Set(ctx context.Context, key string, result *models.ProcessingResult, ttl time.Duration) error {
	entry := models.CacheEntry{
		Key:        fingerprint(key),
		Value:      *result,
		InsertedAt: time.Now().Unix(),
		TTLSec:     int(ttl.Seconds()),
	}

	mcs.l1Cache.Add(key, entry)

	opts := options.Replace().SetUpsert(true)
	_, err := mcs.collection.ReplaceOne(ctx, bson.M{"key": entry.Key}, entry, opts)
	if err != nil {
		mcs.logger.Error("mongo cache: store failed", zap.Error(err), zap.String("key", key))
		return fmt.Errorf("mongo cache: store: %w", err)
	}
	return nil
}

func (mcs *MongoCacheService) Delete(ctx context.Context, key string) error {
	mcs.l1Cache.Remove(key)
	_, err := mcs.collection.DeleteOne(ctx, bson.M{"key": fingerprint(key)})
	if err != nil {
		return fmt.Errorf("mongo cache: delete: %w", err)
	}
	return nil
}

func (mcs *MongoCacheService) Clear(ctx context.Context) error {
	mcs.l1Cache.Purge()
	if _, err := mcs.collection.DeleteMany(ctx, bson.M{}); err != nil {
		return fmt.Errorf("mongo cache: clear: %w", err)
	}
	mcs.totalHits, mcs.totalMiss = 0, 0
	mcs.l1Hits, mcs.l1Miss = 0, 0
	mcs.mongoHits, mcs.mongoMiss = 0, 0
	return nil
}

func (mcs *MongoCacheService) GetStats(ctx context.Context) (*CacheStats, error) {
	mongoCount, err := mcs.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("mongo cache: count: %w", err)
	}

	total := mcs.totalHits + mcs.totalMiss
	var hitRate float64
	if total > 0 {
		hitRate = float64(mcs.totalHits) / float64(total)
	}

	return &CacheStats{
		HitRate:    hitRate,
		TotalHits:  mcs.totalHits,
		TotalMiss:  mcs.totalMiss,
		TotalItems: mongoCount,
	}, nil
}

func (mcs *MongoCacheService) Exists(ctx context.Context, key string) (bool, error) {
	if mcs.l1Cache.Contains(key) {
		return true, nil
	}
	count, err := mcs.collection.CountDocuments(ctx, bson.M{"key": fingerprint(key)})
	if err != nil {
		return false, fmt.Errorf("mongo cache: exists: %w", err)
	}
	return count > 0, nil
}

// GetTTL returns 0: MongoDB entries self-describe expiry via Expired(), not
// a store-managed TTL.
func (mcs *MongoCacheService) GetTTL(ctx context.Context, key string) (time.Duration, error) {
	return 0, nil
}

func (mcs *MongoCacheService) Close() error {
	return nil
}

func fingerprint(key string) string {
	hash := sha256.Sum256([]byte(key))
	return fmt.Sprintf("sha256:%x", hash)
}
