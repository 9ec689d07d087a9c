package database

import (
	"context"

	"github.com/go-redis/redis/v8"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// InitRedis initializes the Redis client. The adapter works without Redis
// (launch QR handoff is then unavailable), so failures are logged, not fatal.
func InitRedis(log *zap.Logger) *redis.Client {
	viper.SetDefault("redis.host", "localhost")
	viper.SetDefault("redis.port", "6379")
	viper.SetDefault("redis.password", "")
	viper.SetDefault("redis.db", 0)

	addr := viper.GetString("redis.host") + ":" + viper.GetString("redis.port")
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: viper.GetString("redis.password"),
		DB:       viper.GetInt("redis.db"),
	})

	ctx := context.Background()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Warn("redis connection failed, continuing without redis", zap.Error(err))
		return nil
	}

	log.Info("redis connection established")
	return rdb
}
