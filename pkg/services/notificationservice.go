package services

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"

	"verve-storefront-io/api/internal"
	"verve-storefront-io/api/internal/common"
	"verve-storefront-io/api/pkg/models"
	"verve-storefront-io/api/pkg/util"
)

// NotificationServiceImpl implements NotificationService over Redis: a
// short-lived display cart cache plus pub/sub invalidation messages so
// other storefront instances drop their copies.
type NotificationServiceImpl struct {
	rdb *redis.Client
}

// NewNotificationService creates a new instance of NotificationService
func NewNotificationService(rdb *redis.Client) NotificationService {
	return &NotificationServiceImpl{rdb: rdb}
}

// InvalidateCartCache drops the cached display cart and broadcasts the
// invalidation on the global cache channel.
func (ns *NotificationServiceImpl) InvalidateCartCache(ctx context.Context, cartId string) error {
	if err := ns.rdb.Del(ctx, displayCartKey(cartId)).Err(); err != nil && err != redis.Nil {
		return err
	}
	return internal.PublishCacheMessage(ctx, ns.rdb, internal.CacheInvalidateCart, cartId)
}

// CacheDisplayCart stores the display item list under a short TTL.
func (ns *NotificationServiceImpl) CacheDisplayCart(ctx context.Context, cartId string, items []models.DisplayItem) error {
	data, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return ns.rdb.Set(ctx, displayCartKey(cartId), data, common.DISPLAY_CART_CACHE_TTL).Err()
}

// CachedDisplayCart returns the cached display item list, if present. Any
// read or decode failure counts as a miss.
func (ns *NotificationServiceImpl) CachedDisplayCart(ctx context.Context, cartId string) ([]models.DisplayItem, bool) {
	data, err := ns.rdb.Get(ctx, displayCartKey(cartId)).Bytes()
	if err != nil {
		if err != redis.Nil {
			util.LogWarning("Failed to read cached display cart: " + err.Error())
		}
		return nil, false
	}

	var items []models.DisplayItem
	if err := json.Unmarshal(data, &items); err != nil {
		util.LogWarning("Failed to decode cached display cart: " + err.Error())
		return nil, false
	}
	return items, true
}

func displayCartKey(cartId string) string {
	return "cart:display:" + cartId
}
