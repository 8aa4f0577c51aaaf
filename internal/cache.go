package internal

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

var CHANNEL_GLOBAL_CACHE = "GLOBAL_CACHE"

type CacheMessageType string

const (
	CacheInvalidateCart        CacheMessageType = "cart.invalidate"
	CacheInvalidateDisplayCart CacheMessageType = "cart.display.invalidate"
	CacheInvalidateCheckout    CacheMessageType = "checkout.invalidate"
)

type CacheMessage struct {
	Type      CacheMessageType `json:"type"`
	Payload   string           `json:"payload"`
	Timestamp int64            `json:"timestamp"`
}

// PublishCacheMessage publishes a cache invalidation message to Redis pub/sub as JSON
func PublishCacheMessage(ctx context.Context, rdb *redis.Client, messageType CacheMessageType, payload string) error {
	cacheMessage := CacheMessage{
		Type:      messageType,
		Payload:   payload,
		Timestamp: time.Now().Unix(),
	}

	messageJSON, err := json.Marshal(cacheMessage)
	if err != nil {
		log.Printf("Failed to marshal cache message: %v", err)
		return err
	}

	err = rdb.Publish(ctx, CHANNEL_GLOBAL_CACHE, string(messageJSON)).Err()
	if err != nil {
		log.Printf("Failed to publish cache message: %v", err)
		return err
	}

	return nil
}
