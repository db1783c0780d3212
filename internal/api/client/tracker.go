package client

import (
	"context"
	"encoding/json"

	"github.com/donaldgifford/cart-price-tracker/internal/api/handlers"
	"github.com/donaldgifford/cart-price-tracker/internal/tracker"
	domain "github.com/donaldgifford/cart-price-tracker/pkg/types"
)

// Check triggers a price check and returns the result.
func (c *Client) Check(ctx context.Context) (*tracker.CheckResult, error) {
	var result tracker.CheckResult
	if err := c.post(ctx, "/api/v1/check", nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Stats returns aggregate tracking statistics.
func (c *Client) Stats(ctx context.Context) (*domain.Stats, error) {
	var stats domain.Stats
	if err := c.get(ctx, "/api/v1/stats", &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// productListResponse mirrors the product list endpoint body.
type productListResponse struct {
	Products []handlers.ProductSummary `json:"products"`
}

// ListProducts returns summaries for all tracked products.
func (c *Client) ListProducts(ctx context.Context) ([]handlers.ProductSummary, error) {
	var resp productListResponse
	if err := c.get(ctx, "/api/v1/products", &resp); err != nil {
		return nil, err
	}
	return resp.Products, nil
}

// GetProduct returns the full record for one product.
func (c *Client) GetProduct(ctx context.Context, id string) (*domain.ProductRecord, error) {
	var rec domain.ProductRecord
	if err := c.get(ctx, "/api/v1/products/"+id, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// DeleteProduct stops tracking a product.
func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	return c.del(ctx, "/api/v1/products/"+id, nil)
}

// GetSettings returns the current tracking settings.
func (c *Client) GetSettings(ctx context.Context) (*domain.Settings, error) {
	var settings domain.Settings
	if err := c.get(ctx, "/api/v1/settings", &settings); err != nil {
		return nil, err
	}
	return &settings, nil
}

// UpdateSettings replaces the tracking settings.
func (c *Client) UpdateSettings(ctx context.Context, settings domain.Settings) (*domain.Settings, error) {
	var updated domain.Settings
	if err := c.put(ctx, "/api/v1/settings", settings, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// Export downloads the whole store as a versioned bundle. The raw bytes are
// returned alongside the parsed bundle so callers can write them out verbatim.
func (c *Client) Export(ctx context.Context) (*domain.ExportBundle, []byte, error) {
	var raw json.RawMessage
	if err := c.get(ctx, "/api/v1/export", &raw); err != nil {
		return nil, nil, err
	}

	var bundle domain.ExportBundle
	if err := json.Unmarshal(raw, &bundle); err != nil {
		return nil, nil, err
	}
	return &bundle, raw, nil
}

// Import uploads a previously exported bundle, replacing all data.
func (c *Client) Import(ctx context.Context, bundle json.RawMessage) error {
	return c.post(ctx, "/api/v1/import", bundle, nil)
}

// ClearHistory removes all tracked products. Settings survive.
func (c *Client) ClearHistory(ctx context.Context) error {
	return c.del(ctx, "/api/v1/history", nil)
}
