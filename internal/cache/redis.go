// Package cache is the Redis side channel: settled matches are pushed onto a
// list that the stats consumer drains into Postgres. Publishing is best
// effort and never blocks gameplay on Redis health.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/cyberrps/arena/internal/game"
)

// Rdb is the global Redis client. Connect it once at application startup.
var Rdb *redis.Client

// DefaultQueueName is the Redis list holding settled match records.
var DefaultQueueName = "rps_match_results"

// ErrNotConnected is returned when publishing before ConnectRedis succeeded.
var ErrNotConnected = errors.New("redis not connected")

// ConnectRedis initializes the global client from REDIS_ADDR (default
// "localhost:6379") and REDIS_DB (default 0).
func ConnectRedis() error {
	Rdb = redis.NewClient(&redis.Options{
		Addr: getEnv("REDIS_ADDR", "localhost:6379"),
		DB:   getEnvInt("REDIS_DB", 0),
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := Rdb.Ping(ctx).Err(); err != nil {
		Rdb = nil
		return fmt.Errorf("connect redis: %w", err)
	}
	return nil
}

// QueueName returns the configured match result list name.
func QueueName() string {
	return getEnv("MATCH_RESULTS_QUEUE", DefaultQueueName)
}

// PublishMatchResult serializes a settled match and pushes it onto the result
// list.
func PublishMatchResult(ctx context.Context, rec game.SettledMatch) error {
	if Rdb == nil {
		return ErrNotConnected
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal match record: %w", err)
	}
	if err := Rdb.RPush(ctx, QueueName(), data).Err(); err != nil {
		return fmt.Errorf("rpush %s: %w", QueueName(), err)
	}
	return nil
}

// PopMatchResult blocks up to timeout for the next settled match record.
// redis.Nil is returned unwrapped when the wait times out.
func PopMatchResult(ctx context.Context, timeout time.Duration) (*game.SettledMatch, error) {
	if Rdb == nil {
		return nil, ErrNotConnected
	}
	res, err := Rdb.BLPop(ctx, timeout, QueueName()).Result()
	if err != nil {
		return nil, err
	}
	if len(res) < 2 {
		return nil, redis.Nil
	}
	var rec game.SettledMatch
	if err := json.Unmarshal([]byte(res[1]), &rec); err != nil {
		return nil, fmt.Errorf("decode match record: %w", err)
	}
	return &rec, nil
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getEnvInt(key string, def int) int {
	s := os.Getenv(key)
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}
