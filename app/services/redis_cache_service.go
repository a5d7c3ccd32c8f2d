package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dariapavlova02/sanctions-screen/app/models"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisCacheService là tầng cache L1 dùng Redis, lưu ProcessingResult theo
// fingerprint khóa thay vì AddressResult.
type RedisCacheService struct {
	client *redis.Client
	logger *zap.Logger
	prefix string
	ttl    time.Duration

	hits   int64
	misses int64
}

func NewRedisCacheService(redisURL string, logger *zap.Logger) (*RedisCacheService, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("lỗi parse Redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("không thể kết nối Redis: %w", err)
	}

	return &RedisCacheService{
		client: client,
		logger: logger,
		prefix: "screen:",
		ttl:    time.Hour,
		hits:   0,
		misses: 0,
	}, nil
}

// Get lấy processing result từ cache.
func (rcs *RedisCacheService) Get(ctx context.Context, key string) (*models.ProcessingResult, bool, error) {
	cacheKey := rcs.prefix + fingerprint(key)

	val, err := rcs.client.Get(ctx, cacheKey).Result()
	if err == redis.Nil {
		rcs.misses++
		return nil, false, nil
	}
	if err != nil {
		rcs.logger.Error("Lỗi get từ Redis", zap.Error(err), zap.String("key", cacheKey))
		return nil, false, err
	}

	var entry models.CacheEntry
	if err := json.Unmarshal([]byte(val), &entry); err != nil {
		rcs.logger.Error("Lỗi unmarshal cache data", zap.Error(err))
		return nil, false, err
	}

	if entry.Expired(time.Now().Unix()) {
		rcs.misses++
		_ = rcs.client.Del(ctx, cacheKey).Err()
		return nil, false, nil
	}

	rcs.hits++
	rcs.logger.Debug("Redis cache hit", zap.String("key", key))
	return &entry.Value, true, nil
}

// Set lưu processing result vào cache với TTL riêng của entry.
func (rcs *RedisCacheService) Set(ctx context.Context, key string, result *models.ProcessingResult, ttl time.Duration) error {
	cacheKey := rcs.prefix + fingerprint(key)

	if ttl <= 0 {
		ttl = rcs.ttl
	}

	entry := models.CacheEntry{
		Key:        fingerprint(key),
		Value:      *result,
		InsertedAt: time.Now().Unix(),
		TTLSec:     int(ttl.Seconds()),
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("lỗi marshal cache data: %w", err)
	}

	if err := rcs.client.Set(ctx, cacheKey, data, ttl).Err(); err != nil {
		rcs.logger.Error("Lỗi set vào Redis", zap.Error(err), zap.String("key", cacheKey))
		return err
	}

	rcs.logger.Debug("Đã lưu vào Redis cache", zap.String("key", key))
	return nil
}

func (rcs *RedisCacheService) Delete(ctx context.Context, key string) error {
	cacheKey := rcs.prefix + fingerprint(key)

	if err := rcs.client.Del(ctx, cacheKey).Err(); err != nil {
		rcs.logger.Error("Lỗi delete từ Redis", zap.Error(err), zap.String("key", cacheKey))
		return err
	}

	rcs.logger.Debug("Đã xóa khỏi Redis cache", zap.String("key", key))
	return nil
}

func (rcs *RedisCacheService) Clear(ctx context.Context) error {
	pattern := rcs.prefix + "*"
	keys, err := rcs.client.Keys(ctx, pattern).Result()
	if err != nil {
		return fmt.Errorf("lỗi lấy danh sách keys: %w", err)
	}

	if len(keys) > 0 {
		if err := rcs.client.Del(ctx, keys...).Err(); err != nil {
			return fmt.Errorf("lỗi xóa keys: %w", err)
		}
	}

	rcs.logger.Info("Đã clear Redis cache", zap.Int("keys_deleted", len(keys)))
	return nil
}

func (rcs *RedisCacheService) GetStats(ctx context.Context) (*CacheStats, error) {
	_, err := rcs.client.Info(ctx, "memory").Result()
	if err != nil {
		rcs.logger.Warn("Không thể lấy Redis memory info", zap.Error(err))
	}

	total := rcs.hits + rcs.misses
	hitRate := float64(0)
	if total > 0 {
		hitRate = float64(rcs.hits) / float64(total)
	}

	keys, err := rcs.client.Keys(ctx, rcs.prefix+"*").Result()
	totalItems := int64(0)
	if err == nil {
		totalItems = int64(len(keys))
	}

	return &CacheStats{
		HitRate:    hitRate,
		TotalHits:  rcs.hits,
		TotalMiss:  rcs.misses,
		TotalItems: totalItems,
	}, nil
}

func (rcs *RedisCacheService) Exists(ctx context.Context, key string) (bool, error) {
	cacheKey := rcs.prefix + fingerprint(key)

	exists, err := rcs.client.Exists(ctx, cacheKey).Result()
	if err != nil {
		return false, err
	}

	return exists > 0, nil
}

func (rcs *RedisCacheService) GetTTL(ctx context.Context, key string) (time.Duration, error) {
	cacheKey := rcs.prefix + fingerprint(key)

	ttl, err := rcs.client.TTL(ctx, cacheKey).Result()
	if err != nil {
		return 0, err
	}

	return ttl, nil
}

func (rcs *RedisCacheService) Close() error {
	return rcs.client.Close()
}

// SetTTL thiết lập TTL mặc định cho service.
func (rcs *RedisCacheService) SetTTL(ttl time.Duration) {
	rcs.ttl = ttl
}

// GetClient lấy Redis client (cho debug).
func (rcs *RedisCacheService) GetClient() *redis.Client {
	return rcs.client
}
