package commerce

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"verve-storefront-io/api/pkg/models"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// storeAPIPath is the base path for the commerce backend's storefront API.
const storeAPIPath = "/store"

// Config holds commerce backend connection settings.
type Config struct {
	BaseURL        string
	PublishableKey string
}

// Client talks to the external commerce backend's REST API. The backend
// owns carts, pricing, inventory, payment capture and fulfillment; this
// client only forwards reads and discrete mutations.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	publishableKey string
}

// New creates a commerce client with the given configuration.
func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("commerce backend URL is required")
	}
	if cfg.PublishableKey == "" {
		return nil, errors.New("commerce publishable key is required")
	}

	return &Client{
		httpClient:     &http.Client{Timeout: 30 * time.Second},
		baseURL:        strings.TrimSuffix(cfg.BaseURL, "/"),
		publishableKey: cfg.PublishableKey,
	}, nil
}

// Wire request bodies for the backend's cart endpoints.

type CreateCartRequest struct {
	RegionId     string          `json:"region_id,omitempty"`
	CurrencyCode string          `json:"currency_code,omitempty"`
	Items        []LineItemInput `json:"items,omitempty"`
}

type LineItemInput struct {
	VariantId string         `json:"variant_id"`
	Quantity  int            `json:"quantity"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

type UpdateCartRequest struct {
	Email           *string         `json:"email,omitempty"`
	RegionId        string          `json:"region_id,omitempty"`
	ShippingAddress *models.Address `json:"shipping_address,omitempty"`
	BillingAddress  *models.Address `json:"billing_address,omitempty"`
	PromoCodes      []string        `json:"promo_codes,omitempty"`
}

type UpdateLineItemRequest struct {
	Quantity int            `json:"quantity"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

type addShippingMethodRequest struct {
	OptionId string `json:"option_id"`
}

type setPaymentSessionRequest struct {
	ProviderId string `json:"provider_id"`
}

type cartEnvelope struct {
	Cart *models.Cart `json:"cart"`
}

// CompleteResult is the outcome of completing a cart. The backend answers
// with an order on success, or hands the cart back when completion was
// rejected (e.g. a failed payment).
type CompleteResult struct {
	Type  string        `json:"type"`
	Cart  *models.Cart  `json:"cart,omitempty"`
	Order *models.Order `json:"order,omitempty"`
}

// CreateCart creates a fresh cart on the backend.
func (c *Client) CreateCart(ctx context.Context, req CreateCartRequest) (*models.Cart, error) {
	var envelope cartEnvelope
	if err := c.do(ctx, http.MethodPost, "/carts", req, &envelope); err != nil {
		return nil, err
	}
	return envelope.Cart, nil
}

// RetrieveCart fetches the authoritative cart state.
func (c *Client) RetrieveCart(ctx context.Context, cartId string) (*models.Cart, error) {
	var envelope cartEnvelope
	if err := c.do(ctx, http.MethodGet, "/carts/"+cartId, nil, &envelope); err != nil {
		return nil, err
	}
	return envelope.Cart, nil
}

// UpdateCart updates cart-level fields: region, addresses, email, promo codes.
func (c *Client) UpdateCart(ctx context.Context, cartId string, req UpdateCartRequest) (*models.Cart, error) {
	var envelope cartEnvelope
	if err := c.do(ctx, http.MethodPost, "/carts/"+cartId, req, &envelope); err != nil {
		return nil, err
	}
	return envelope.Cart, nil
}

// AddLineItem adds a variant to the cart.
func (c *Client) AddLineItem(ctx context.Context, cartId string, req LineItemInput) (*models.Cart, error) {
	var envelope cartEnvelope
	if err := c.do(ctx, http.MethodPost, "/carts/"+cartId+"/line-items", req, &envelope); err != nil {
		return nil, err
	}
	return envelope.Cart, nil
}

// UpdateLineItem updates a line item's quantity and/or metadata.
func (c *Client) UpdateLineItem(ctx context.Context, cartId, lineItemId string, req UpdateLineItemRequest) (*models.Cart, error) {
	var envelope cartEnvelope
	if err := c.do(ctx, http.MethodPost, "/carts/"+cartId+"/line-items/"+lineItemId, req, &envelope); err != nil {
		return nil, err
	}
	return envelope.Cart, nil
}

// DeleteLineItem removes a line item from the cart.
func (c *Client) DeleteLineItem(ctx context.Context, cartId, lineItemId string) (*models.Cart, error) {
	var envelope cartEnvelope
	if err := c.do(ctx, http.MethodDelete, "/carts/"+cartId+"/line-items/"+lineItemId, nil, &envelope); err != nil {
		return nil, err
	}
	return envelope.Cart, nil
}

// AddShippingMethod selects a shipping option for the cart.
func (c *Client) AddShippingMethod(ctx context.Context, cartId, optionId string) (*models.Cart, error) {
	var envelope cartEnvelope
	req := addShippingMethodRequest{OptionId: optionId}
	if err := c.do(ctx, http.MethodPost, "/carts/"+cartId+"/shipping-methods", req, &envelope); err != nil {
		return nil, err
	}
	return envelope.Cart, nil
}

// CreatePaymentSessions initializes payment sessions for the cart's
// payment collection.
func (c *Client) CreatePaymentSessions(ctx context.Context, cartId string) (*models.Cart, error) {
	var envelope cartEnvelope
	if err := c.do(ctx, http.MethodPost, "/carts/"+cartId+"/payment-sessions", nil, &envelope); err != nil {
		return nil, err
	}
	return envelope.Cart, nil
}

// SetPaymentSession selects a payment provider's session.
func (c *Client) SetPaymentSession(ctx context.Context, cartId, providerId string) (*models.Cart, error) {
	var envelope cartEnvelope
	req := setPaymentSessionRequest{ProviderId: providerId}
	if err := c.do(ctx, http.MethodPost, "/carts/"+cartId+"/payment-session", req, &envelope); err != nil {
		return nil, err
	}
	return envelope.Cart, nil
}

// CompleteCart submits the cart for completion.
func (c *Client) CompleteCart(ctx context.Context, cartId string) (*CompleteResult, error) {
	var result CompleteResult
	if err := c.do(ctx, http.MethodPost, "/carts/"+cartId+"/complete", nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "marshaling request")
		}
		bodyReader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+storeAPIPath+path, bodyReader)
	if err != nil {
		return errors.Wrap(err, "creating request")
	}
	c.setHeaders(req, method)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrap(err, "commerce backend request")
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, "reading response")
	}

	if resp.StatusCode >= 400 {
		return parseErrorResponse(resp.StatusCode, respBody)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return errors.Wrap(err, "parsing response")
	}
	return nil
}

// setHeaders sets the storefront API headers. Mutations carry an
// idempotency key so an at-least-once retry upstream cannot double-apply.
func (c *Client) setHeaders(req *http.Request, method string) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("x-publishable-api-key", c.publishableKey)

	if method != http.MethodGet {
		req.Header.Set("Idempotency-Key", uuid.NewString())
	}
}
