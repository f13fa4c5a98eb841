package woo

import (
	"context"
	"net/http"
)

// ListProducts returns one page of products, in store order.
func (c *Client) ListProducts(ctx context.Context, opts ListOptions) ([]map[string]any, error) {
	return c.list(ctx, "products", opts)
}

// GetProduct returns a single product by id.
func (c *Client) GetProduct(ctx context.Context, id int) (map[string]any, error) {
	return c.get(ctx, "products", id)
}

// CreateProduct creates a product and returns it with the assigned id.
func (c *Client) CreateProduct(ctx context.Context, body map[string]any) (map[string]any, error) {
	return c.create(ctx, "products", body)
}

// UpdateProduct updates a product and returns the new version.
func (c *Client) UpdateProduct(ctx context.Context, id int, body map[string]any) (map[string]any, error) {
	return c.update(ctx, "products", id, body)
}

// DeleteProduct deletes a product. force skips the trash.
func (c *Client) DeleteProduct(ctx context.Context, id int, force bool) (map[string]any, error) {
	return c.deleteRecord(ctx, "products", id, force)
}

// ListCategories returns one page of product categories.
func (c *Client) ListCategories(ctx context.Context, opts ListOptions) ([]map[string]any, error) {
	return c.list(ctx, "products/categories", opts)
}

// BatchUpdateProducts updates multiple products in a single request via the
// products/batch endpoint. Each entry must carry an "id" plus the fields to
// change. WooCommerce caps a batch at 100 entries.
func (c *Client) BatchUpdateProducts(ctx context.Context, updates []map[string]any) (map[string]any, error) {
	if len(updates) == 0 {
		return nil, validationError("batch update requires at least one entry")
	}
	for _, u := range updates {
		if _, ok := u["id"]; !ok {
			return nil, validationError("every batch update entry must include an id")
		}
	}

	data, err := c.do(ctx, http.MethodPost, "products/batch", nil, map[string]any{"update": updates})
	if err != nil {
		return nil, err
	}
	return decodeRecord("products/batch", data)
}
