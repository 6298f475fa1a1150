package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/vinaykumaredara/azure-drive-hub-sub001/internal/data/entity"
	"github.com/vinaykumaredara/azure-drive-hub-sub001/pkg/utils"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const publishedCarsTTL = 30 * time.Second

// RedisCache backs the short-lived car hold lock and the published
// fleet listing cache. A car lock lives exactly as long as the hold.
type RedisCache struct {
	client *redis.Client
	log    *zap.Logger
}

func NewRedisCache(cfg utils.RedisConfig, log *zap.Logger) *RedisCache {
	return &RedisCache{
		client: redis.NewClient(&redis.Options{
			Addr:     cfg.Addr,
			Password: cfg.Password,
			DB:       cfg.DB,
		}),
		log: log.With(zap.String("component", "cache")),
	}
}

func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

// AcquireCarLock takes the per-car hold lock. Returns false when another
// hold already owns the car.
func (c *RedisCache) AcquireCarLock(ctx context.Context, carID uuid.UUID, bookingID uuid.UUID, ttl time.Duration) (bool, error) {
	ok, err := c.client.SetNX(ctx, carLockKey(carID), bookingID.String(), ttl).Result()
	if err != nil {
		c.log.Error("Failed to acquire car lock",
			zap.Error(err),
			zap.String("car_id", carID.String()),
		)
		return false, fmt.Errorf("acquire lock for car %s: %w", carID.String(), err)
	}
	return ok, nil
}

func (c *RedisCache) ReleaseCarLock(ctx context.Context, carID uuid.UUID) error {
	if err := c.client.Del(ctx, carLockKey(carID)).Err(); err != nil {
		c.log.Error("Failed to release car lock",
			zap.Error(err),
			zap.String("car_id", carID.String()),
		)
		return fmt.Errorf("release lock for car %s: %w", carID.String(), err)
	}
	return nil
}

func (c *RedisCache) GetPublishedCars(ctx context.Context) ([]*entity.Car, error) {
	data, err := c.client.Get(ctx, publishedCarsKey()).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("get published cars cache: %w", err)
	}

	var cars []*entity.Car
	if err := json.Unmarshal(data, &cars); err != nil {
		return nil, fmt.Errorf("unmarshal published cars cache: %w", err)
	}
	return cars, nil
}

func (c *RedisCache) SetPublishedCars(ctx context.Context, cars []*entity.Car) error {
	payload, err := json.Marshal(cars)
	if err != nil {
		return fmt.Errorf("marshal published cars: %w", err)
	}
	return c.client.Set(ctx, publishedCarsKey(), payload, publishedCarsTTL).Err()
}

func (c *RedisCache) InvalidatePublishedCars(ctx context.Context) error {
	return c.client.Del(ctx, publishedCarsKey()).Err()
}

func publishedCarsKey() string {
	return "cache:cars:published"
}

func carLockKey(carID uuid.UUID) string {
	return fmt.Sprintf("lock:car:%s", carID.String())
}
