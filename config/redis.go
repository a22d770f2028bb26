package config

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/redis/go-redis/v9"
)

func ConnectToRedis(url string) *redis.Client {
	rdb := redis.NewClient(&redis.Options{Addr: url})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Panic("failed to connect to redis: ", err)
	}
	return rdb
}
