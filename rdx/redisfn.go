package rdx

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

var Conn *redis.Client

func init() {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	Conn = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})
}

// RdxSet stores a plain string value with no expiry.
func RdxSet(key, value string) error {
	return Conn.Set(context.Background(), key, value, 0).Err()
}

// RdxSetWithExpiry stores a string value with a TTL.
func RdxSetWithExpiry(key, value string, ttl time.Duration) error {
	return Conn.Set(context.Background(), key, value, ttl).Err()
}

// RdxGet returns the stored value, or "" when the key is absent.
func RdxGet(key string) (string, error) {
	val, err := Conn.Get(context.Background(), key).Result()
	if err == redis.Nil {
		return "", nil
	}
	return val, err
}

func RdxDel(key string) (int64, error) {
	return Conn.Del(context.Background(), key).Result()
}

func RdxHset(hash, field, value string) error {
	return Conn.HSet(context.Background(), hash, field, value).Err()
}

func RdxHget(hash, field string) (string, error) {
	val, err := Conn.HGet(context.Background(), hash, field).Result()
	if err == redis.Nil {
		return "", nil
	}
	return val, err
}

func RdxHdel(hash, field string) (int64, error) {
	return Conn.HDel(context.Background(), hash, field).Result()
}

// Publish sends a payload on a pub/sub channel, logging failures instead of
// propagating them; notification fan-out is best effort.
func Publish(channel string, payload []byte) {
	if err := Conn.Publish(context.Background(), channel, payload).Err(); err != nil {
		log.Printf("redis publish failed on %s: %v", channel, err)
	}
}
