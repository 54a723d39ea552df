// api/db/redis.go
package db

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	logger "github.com/f4lcon-tech/aqari/api/logging"
	"github.com/f4lcon-tech/aqari/api/model"
)

var RedisClient *redis.Client

func InitRedis() error {
	RedisClient = redis.NewClient(&redis.Options{
		Addr:         viper.GetString("redis.addr"),
		Password:     viper.GetString("redis.password"),
		DB:           viper.GetInt("redis.db"),
		DialTimeout:  viper.GetDuration("redis.dialTimeout"),
		ReadTimeout:  viper.GetDuration("redis.readTimeout"),
		WriteTimeout: viper.GetDuration("redis.writeTimeout"),
		PoolSize:     viper.GetInt("redis.poolSize"),
		PoolTimeout:  viper.GetDuration("redis.poolTimeout"),
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := RedisClient.Ping(ctx).Result()
	if err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Info("Successfully connected to Redis")
	return nil
}

func CloseRedis() {
	if RedisClient != nil {
		if err := RedisClient.Close(); err != nil {
			logger.Error("Error closing Redis connection", zap.Error(err))
		}
	}
}

// RateLimit counts requests under key in a fixed window and reports
// whether the caller is still under the limit.
func RateLimit(ctx context.Context, key string, limit int, per time.Duration) (bool, error) {
	counterKey := fmt.Sprintf("ratelimit:%s", key)
	count, err := RedisClient.Incr(ctx, counterKey).Result()
	if err != nil {
		return false, fmt.Errorf("failed to increment rate limit counter: %w", err)
	}
	if count == 1 {
		if err := RedisClient.Expire(ctx, counterKey, per).Err(); err != nil {
			return false, fmt.Errorf("failed to set rate limit window: %w", err)
		}
	}
	return count <= int64(limit), nil
}

// CachePermission stores a single role/page/action decision.
func CachePermission(ctx context.Context, roleID int, page string, action string, allowed bool) error {
	key := fmt.Sprintf("perm:%d:%s:%s", roleID, page, action)
	defaultTTL := viper.GetDuration("redis.defaultCacheTTL")
	err := RedisClient.Set(ctx, key, strconv.FormatBool(allowed), defaultTTL).Err()
	if err != nil {
		return fmt.Errorf("failed to cache permission: %w", err)
	}
	return nil
}

// GetCachedPermission returns the cached decision, or found=false on a miss.
func GetCachedPermission(ctx context.Context, roleID int, page string, action string) (allowed bool, found bool, err error) {
	key := fmt.Sprintf("perm:%d:%s:%s", roleID, page, action)
	val, err := RedisClient.Get(ctx, key).Result()
	if err == redis.Nil {
		return false, false, nil
	}
	if err != nil {
		return false, false, fmt.Errorf("failed to get cached permission: %w", err)
	}
	allowed, err = strconv.ParseBool(val)
	if err != nil {
		return false, false, fmt.Errorf("corrupt cached permission: %w", err)
	}
	return allowed, true, nil
}

// DeleteCachedPermissions drops every cached decision for a role. Used
// after the matrix is reseeded.
func DeleteCachedPermissions(ctx context.Context, roleID int) error {
	pattern := fmt.Sprintf("perm:%d:*", roleID)
	iter := RedisClient.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		if err := RedisClient.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("failed to delete cached permission: %w", err)
		}
	}
	return iter.Err()
}

// CachePermissionSet stores the full permission listing for a role.
func CachePermissionSet(ctx context.Context, roleID int, entries []model.PermissionEntry) error {
	entriesJSON, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("failed to marshal permission set: %w", err)
	}

	key := fmt.Sprintf("permset:%d", roleID)
	defaultTTL := viper.GetDuration("redis.defaultCacheTTL")
	err = RedisClient.Set(ctx, key, entriesJSON, defaultTTL).Err()
	if err != nil {
		return fmt.Errorf("failed to cache permission set: %w", err)
	}

	logger.Debug("Permission set cached successfully", zap.Int("roleID", roleID))
	return nil
}

// GetCachedPermissionSet returns the cached listing, or nil on a miss.
func GetCachedPermissionSet(ctx context.Context, roleID int) ([]model.PermissionEntry, error) {
	key := fmt.Sprintf("permset:%d", roleID)
	val, err := RedisClient.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cached permission set: %w", err)
	}

	var entries []model.PermissionEntry
	if err := json.Unmarshal(val, &entries); err != nil {
		return nil, fmt.Errorf("failed to unmarshal permission set: %w", err)
	}
	return entries, nil
}

// CacheOfficeID stores the resolved office for a user.
func CacheOfficeID(ctx context.Context, userID int, officeID int) error {
	key := fmt.Sprintf("office:%d", userID)
	defaultTTL := viper.GetDuration("redis.defaultCacheTTL")
	err := RedisClient.Set(ctx, key, officeID, defaultTTL).Err()
	if err != nil {
		return fmt.Errorf("failed to cache office id: %w", err)
	}
	return nil
}

// GetCachedOfficeID returns the resolved office for a user, or found=false.
func GetCachedOfficeID(ctx context.Context, userID int) (officeID int, found bool, err error) {
	key := fmt.Sprintf("office:%d", userID)
	val, err := RedisClient.Get(ctx, key).Int()
	if err == redis.Nil {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to get cached office id: %w", err)
	}
	return val, true, nil
}
