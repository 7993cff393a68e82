package database

import (
	"context"
	"log"

	"github.com/redis/go-redis/v9"
)

// ConnectRedis สร้าง Redis client ถ้าตั้ง REDIS_URI ไว้
// คืน nil เมื่อไม่มี Redis (ระบบทำงานต่อได้ แค่ไม่มี cache/jobs)
func ConnectRedis(uri string) *redis.Client {
	if uri == "" {
		log.Println("⚠️ REDIS_URI not set. Tally cache and background jobs disabled.")
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     uri,
		Password: "",
		DB:       0,
	})
	if _, err := client.Ping(context.Background()).Result(); err != nil {
		log.Println("⚠️ Failed to connect Redis:", err)
		return nil
	}

	log.Println("✅ Redis connected successfully")
	return client
}
