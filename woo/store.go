package woo

import (
	"context"
	"net/http"
)

// SystemStatus returns the store's system status report (environment,
// settings, active theme). Used by the store stats resource.
func (c *Client) SystemStatus(ctx context.Context) (map[string]any, error) {
	data, err := c.do(ctx, http.MethodGet, "system_status", nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeRecord("system_status", data)
}
