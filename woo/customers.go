package woo

import "context"

// ListCustomers returns one page of customers, in store order.
func (c *Client) ListCustomers(ctx context.Context, opts ListOptions) ([]map[string]any, error) {
	return c.list(ctx, "customers", opts)
}

// GetCustomer returns a single customer by id.
func (c *Client) GetCustomer(ctx context.Context, id int) (map[string]any, error) {
	return c.get(ctx, "customers", id)
}

// CreateCustomer creates a customer and returns it with the assigned id.
func (c *Client) CreateCustomer(ctx context.Context, body map[string]any) (map[string]any, error) {
	return c.create(ctx, "customers", body)
}

// UpdateCustomer updates a customer and returns the new version.
func (c *Client) UpdateCustomer(ctx context.Context, id int, body map[string]any) (map[string]any, error) {
	return c.update(ctx, "customers", id, body)
}

// DeleteCustomer deletes a customer. WooCommerce only deletes customers
// permanently, so the store rejects the call unless force is set.
func (c *Client) DeleteCustomer(ctx context.Context, id int, force bool) (map[string]any, error) {
	return c.deleteRecord(ctx, "customers", id, force)
}
