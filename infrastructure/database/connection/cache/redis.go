package cache

import (
	"context"
	"os"
	"sync"

	"github.com/redis/go-redis/v9"
	"veriface.io/infrastructure/logger"
)

// RedisClient wraps the raw connection so every caller shares one pool.
type RedisClient struct {
	Client *redis.Client
}

var (
	instance *RedisClient
	once     sync.Once
)

func GetInstance() (*RedisClient, error) {
	once.Do(func() {
		opt := &redis.Options{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       0,
			PoolSize: 10,
		}
		instance = &RedisClient{Client: redis.NewClient(opt)}
		if err := instance.Client.Ping(context.Background()).Err(); err != nil {
			logger.Warning("redis connection could not be verified", logger.LoggerOptions{Key: "error", Data: err})
			return
		}
		logger.Info("connected to redis successfully")
	})
	return instance, nil
}

func ConnectToCache() {
	GetInstance()
}
