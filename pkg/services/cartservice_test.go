package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"verve-storefront-io/api/internal/commerce"
	"verve-storefront-io/api/pkg/models"
)

type noopNotificationService struct{}

func (noopNotificationService) InvalidateCartCache(ctx context.Context, cartId string) error {
	return nil
}

func (noopNotificationService) CacheDisplayCart(ctx context.Context, cartId string, items []models.DisplayItem) error {
	return nil
}

func (noopNotificationService) CachedDisplayCart(ctx context.Context, cartId string) ([]models.DisplayItem, bool) {
	return nil, false
}

func serverCartJSON(id string) map[string]any {
	return map[string]any{
		"cart": map[string]any{
			"id": id,
			"items": []map[string]any{
				{
					"id":              "item_1",
					"title":           "Mug",
					"quantity":        2,
					"unit_price":      1250,
					"unit_price_unit": "minor",
					"variant_id":      "var_1",
				},
			},
		},
	}
}

func newCartServiceForTest(t *testing.T, handler http.HandlerFunc) (CartService, DisplayCartService) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := commerce.New(commerce.Config{BaseURL: server.URL, PublishableKey: "pk_test"})
	require.NoError(t, err)

	display := NewDisplayCartService()
	return NewCartService(client, display, noopNotificationService{}), display
}

func TestCartServiceGetOrCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("reuses a live cart", func(t *testing.T) {
		var created bool
		carts, _ := newCartServiceForTest(t, func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodPost {
				created = true
			}
			json.NewEncoder(w).Encode(serverCartJSON("cart_1"))
		})

		cart, wasCreated, err := carts.GetOrCreateCart(ctx, "cart_1")
		require.NoError(t, err)
		assert.False(t, wasCreated)
		assert.False(t, created)
		assert.Equal(t, "cart_1", cart.Id)
	})

	t.Run("unknown id creates a fresh cart", func(t *testing.T) {
		carts, _ := newCartServiceForTest(t, func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodGet {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			json.NewEncoder(w).Encode(serverCartJSON("cart_new"))
		})

		cart, wasCreated, err := carts.GetOrCreateCart(ctx, "cart_stale")
		require.NoError(t, err)
		assert.True(t, wasCreated)
		assert.Equal(t, "cart_new", cart.Id)
	})

	t.Run("completed cart is replaced", func(t *testing.T) {
		completedAt := time.Now().UTC().Format(time.RFC3339)
		carts, _ := newCartServiceForTest(t, func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodGet {
				body := serverCartJSON("cart_done")
				body["cart"].(map[string]any)["completed_at"] = completedAt
				json.NewEncoder(w).Encode(body)
				return
			}
			json.NewEncoder(w).Encode(serverCartJSON("cart_new"))
		})

		cart, wasCreated, err := carts.GetOrCreateCart(ctx, "cart_done")
		require.NoError(t, err)
		assert.True(t, wasCreated)
		assert.Equal(t, "cart_new", cart.Id)
	})

	t.Run("empty id skips the lookup", func(t *testing.T) {
		var gets int
		carts, _ := newCartServiceForTest(t, func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodGet {
				gets++
			}
			json.NewEncoder(w).Encode(serverCartJSON("cart_new"))
		})

		_, wasCreated, err := carts.GetOrCreateCart(ctx, "")
		require.NoError(t, err)
		assert.True(t, wasCreated)
		assert.Zero(t, gets)
	})
}

func TestCartServiceMutations(t *testing.T) {
	ctx := context.Background()

	t.Run("mutations reseed the display list", func(t *testing.T) {
		carts, display := newCartServiceForTest(t, func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(serverCartJSON("cart_1"))
		})

		_, err := carts.AddLineItem(ctx, "cart_1", models.AddLineItemRequest{VariantId: "var_1", Quantity: 2})
		require.NoError(t, err)

		items := display.Items("cart_1")
		require.Len(t, items, 1)
		assert.Equal(t, "item_1", items[0].Id)
		assert.Equal(t, 12.5, items[0].UnitPrice)
		assert.Equal(t, 2, display.Count("cart_1"))
	})

	t.Run("zero quantity turns into a delete", func(t *testing.T) {
		var method, path string
		carts, _ := newCartServiceForTest(t, func(w http.ResponseWriter, r *http.Request) {
			method = r.Method
			path = r.URL.Path
			json.NewEncoder(w).Encode(serverCartJSON("cart_1"))
		})

		_, err := carts.UpdateLineItemQuantity(ctx, "cart_1", "item_1", 0)
		require.NoError(t, err)
		assert.Equal(t, http.MethodDelete, method)
		assert.Equal(t, "/store/carts/cart_1/line-items/item_1", path)
	})

	t.Run("upstream errors pass through untouched", func(t *testing.T) {
		carts, _ := newCartServiceForTest(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusConflict)
			json.NewEncoder(w).Encode(map[string]any{"type": "conflict", "message": "cart locked"})
		})

		_, err := carts.SetEmail(ctx, "cart_1", "a@b.com")
		require.Error(t, err)

		var apiErr *commerce.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusConflict, apiErr.ClientStatus())
	})

	t.Run("missing billing address falls back to shipping", func(t *testing.T) {
		var body commerce.UpdateCartRequest
		carts, _ := newCartServiceForTest(t, func(w http.ResponseWriter, r *http.Request) {
			json.NewDecoder(r.Body).Decode(&body)
			json.NewEncoder(w).Encode(serverCartJSON("cart_1"))
		})

		shipping := models.Address{Address1: "1 Main St", City: "Lagos"}
		_, err := carts.SetAddresses(ctx, "cart_1", models.SetAddressesRequest{ShippingAddress: shipping})
		require.NoError(t, err)

		require.NotNil(t, body.BillingAddress)
		assert.Equal(t, shipping, *body.BillingAddress)
	})
}

func TestCartServiceComplete(t *testing.T) {
	ctx := context.Background()

	t.Run("order outcome clears the display list", func(t *testing.T) {
		carts, display := newCartServiceForTest(t, func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodGet {
				json.NewEncoder(w).Encode(serverCartJSON("cart_1"))
				return
			}
			json.NewEncoder(w).Encode(map[string]any{
				"type":  "order",
				"order": map[string]any{"id": "order_1"},
			})
		})

		_, err := carts.GetCart(ctx, "cart_1")
		require.NoError(t, err)
		require.NotEmpty(t, display.Items("cart_1"))

		result, err := carts.CompleteCart(ctx, "cart_1")
		require.NoError(t, err)
		assert.Equal(t, "order", result.Type)
		assert.Empty(t, display.Items("cart_1"))
	})

	t.Run("refused completion keeps the cart", func(t *testing.T) {
		carts, _ := newCartServiceForTest(t, func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]any{
				"type": "cart",
				"cart": serverCartJSON("cart_1")["cart"],
			})
		})

		result, err := carts.CompleteCart(ctx, "cart_1")
		require.NoError(t, err)
		assert.Equal(t, "cart", result.Type)
		assert.Nil(t, result.Order)
		require.NotNil(t, result.Cart)
	})
}
