package woo

import "context"

// ListOrders returns one page of orders, in store order.
func (c *Client) ListOrders(ctx context.Context, opts ListOptions) ([]map[string]any, error) {
	return c.list(ctx, "orders", opts)
}

// GetOrder returns a single order by id.
func (c *Client) GetOrder(ctx context.Context, id int) (map[string]any, error) {
	return c.get(ctx, "orders", id)
}

// CreateOrder creates an order and returns it with the assigned id.
func (c *Client) CreateOrder(ctx context.Context, body map[string]any) (map[string]any, error) {
	return c.create(ctx, "orders", body)
}

// UpdateOrder updates an order and returns the new version.
func (c *Client) UpdateOrder(ctx context.Context, id int, body map[string]any) (map[string]any, error) {
	return c.update(ctx, "orders", id, body)
}

// DeleteOrder deletes an order. force skips the trash.
func (c *Client) DeleteOrder(ctx context.Context, id int, force bool) (map[string]any, error) {
	return c.deleteRecord(ctx, "orders", id, force)
}
