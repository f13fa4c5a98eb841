package woo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/CSCSoftware/woohoo/config"
)

// DefaultPerPage is used when a list call does not specify per_page.
const DefaultPerPage = 10

// Client performs authenticated requests against a WooCommerce store's REST
// API. It holds the credential pair and no other mutable state, so concurrent
// calls are safe.
type Client struct {
	baseURL *url.URL
	key     string
	secret  string
	http    *http.Client
	logger  *slog.Logger
}

// New builds a client from the loaded configuration. The base URL is
// {store_url}/wp-json/{api_version}/.
func New(cfg *config.Config, logger *slog.Logger) (*Client, error) {
	raw := strings.TrimRight(cfg.StoreURL, "/") + "/wp-json/" + strings.Trim(cfg.APIVersion, "/") + "/"
	base, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("building API base URL: %w", err)
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		baseURL: base,
		key:     cfg.ConsumerKey,
		secret:  cfg.ConsumerSecret,
		http:    &http.Client{Timeout: cfg.Timeout()},
		logger:  logger,
	}, nil
}

// ListOptions control pagination and resource-specific filters for list calls.
// One list call fetches one page; pagination is never auto-followed.
type ListOptions struct {
	Page    int
	PerPage int
	Filters map[string]string
}

func (o ListOptions) values() url.Values {
	q := url.Values{}
	for k, v := range o.Filters {
		q.Set(k, v)
	}
	if o.Page > 0 {
		q.Set("page", strconv.Itoa(o.Page))
	}
	perPage := o.PerPage
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	q.Set("per_page", strconv.Itoa(perPage))
	return q
}

// wooErrorBody is the standard WooCommerce REST error envelope.
type wooErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// do performs one authenticated request and returns the raw response body.
// Non-2xx responses and transport failures come back as *APIError.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any) ([]byte, error) {
	ref, err := url.Parse(path)
	if err != nil {
		return nil, fmt.Errorf("building endpoint %q: %w", path, err)
	}
	u := c.baseURL.ResolveReference(ref)

	if query == nil {
		query = url.Values{}
	}
	query.Set("consumer_key", c.key)
	query.Set("consumer_secret", c.secret)
	u.RawQuery = query.Encode()

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encoding request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reqBody)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &APIError{Kind: KindTransient, Message: err.Error()}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &APIError{Kind: KindTransient, Status: resp.StatusCode, Message: err.Error()}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := strings.TrimSpace(string(data))
		var wooErr wooErrorBody
		if json.Unmarshal(data, &wooErr) == nil && wooErr.Message != "" {
			msg = wooErr.Message
		}
		c.logger.Warn("WooCommerce request failed",
			"method", method,
			"path", path,
			"status", resp.StatusCode,
		)
		return nil, &APIError{Kind: classifyStatus(resp.StatusCode), Status: resp.StatusCode, Message: msg}
	}

	return data, nil
}

// list fetches one page of records for a resource.
func (c *Client) list(ctx context.Context, resource string, opts ListOptions) ([]map[string]any, error) {
	data, err := c.do(ctx, http.MethodGet, resource, opts.values(), nil)
	if err != nil {
		return nil, err
	}
	var records []map[string]any
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decoding %s list: %w", resource, err)
	}
	return records, nil
}

// get fetches a single record by id.
func (c *Client) get(ctx context.Context, resource string, id int) (map[string]any, error) {
	if id <= 0 {
		return nil, validationError("%s id must be a positive integer, got %d", resource, id)
	}
	data, err := c.do(ctx, http.MethodGet, fmt.Sprintf("%s/%d", resource, id), nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeRecord(resource, data)
}

// create posts a new record and returns it with the server-assigned id.
func (c *Client) create(ctx context.Context, resource string, body map[string]any) (map[string]any, error) {
	if len(body) == 0 {
		return nil, validationError("%s body must not be empty", resource)
	}
	data, err := c.do(ctx, http.MethodPost, resource, nil, body)
	if err != nil {
		return nil, err
	}
	return decodeRecord(resource, data)
}

// update modifies an existing record and returns the updated version.
func (c *Client) update(ctx context.Context, resource string, id int, body map[string]any) (map[string]any, error) {
	if id <= 0 {
		return nil, validationError("%s id must be a positive integer, got %d", resource, id)
	}
	if len(body) == 0 {
		return nil, validationError("%s update must set at least one field", resource)
	}
	data, err := c.do(ctx, http.MethodPut, fmt.Sprintf("%s/%d", resource, id), nil, body)
	if err != nil {
		return nil, err
	}
	return decodeRecord(resource, data)
}

// deleteRecord removes a record. With force the store deletes permanently
// instead of trashing; WooCommerce requires force for customers.
func (c *Client) deleteRecord(ctx context.Context, resource string, id int, force bool) (map[string]any, error) {
	if id <= 0 {
		return nil, validationError("%s id must be a positive integer, got %d", resource, id)
	}
	query := url.Values{}
	if force {
		query.Set("force", "true")
	}
	data, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("%s/%d", resource, id), query, nil)
	if err != nil {
		return nil, err
	}
	return decodeRecord(resource, data)
}

func decodeRecord(resource string, data []byte) (map[string]any, error) {
	var record map[string]any
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("decoding %s record: %w", resource, err)
	}
	return record, nil
}
