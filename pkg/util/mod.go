package util

import (
	"log"
	"os"
	"sync"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

var loadEnvOnce sync.Once

// LoadEnvFor reads a single environment variable, loading .env on first use.
func LoadEnvFor(v string) (x string) {
	loadEnvOnce.Do(func() {
		if err := godotenv.Load(); err != nil {
			log.Println("No .env file found, using environment variables")
		}
	})

	x = os.Getenv(v)
	return
}

var (
	redisOnce   sync.Once
	redisClient *redis.Client
)

// Redis returns the shared redis client, connecting on first use.
func Redis() *redis.Client {
	redisOnce.Do(func() {
		redisUrl := LoadEnvFor("REDIS_URL")
		log.Printf("starting redis connection..%v", redisUrl)
		addr, err := redis.ParseURL(redisUrl)
		if err != nil {
			log.Fatal(err)
		}

		redisClient = redis.NewClient(addr)
		log.Println("redis connection successful..")
	})

	return redisClient
}
