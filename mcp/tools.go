package mcp

import (
	"context"
	"errors"
	"fmt"
	"net/mail"

	"github.com/CSCSoftware/woohoo/woo"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// registerTools registers all WooCommerce MCP tools. Every tool maps to
// exactly one woo.Client call; input schemas are inferred from the typed
// handler signatures and validated by the SDK before a handler runs.
func (s *Server) registerTools() {
	// === Products ===

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_products",
		Description: "List products from the WooCommerce store, one page per call.",
	}, s.handleListProducts)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_product",
		Description: "Get a single WooCommerce product by ID.",
	}, s.handleGetProduct)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "create_product",
		Description: "Create a new WooCommerce product.",
	}, s.handleCreateProduct)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "update_product",
		Description: "Update fields of an existing WooCommerce product.",
	}, s.handleUpdateProduct)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "delete_product",
		Description: "Delete a WooCommerce product. Set force to skip the trash.",
	}, s.handleDeleteProduct)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_categories",
		Description: "List product categories from the WooCommerce store.",
	}, s.handleListCategories)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "batch_update_products",
		Description: "Update multiple products in one request. Each entry needs an id plus the fields to change.",
	}, s.handleBatchUpdateProducts)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "analyze_products",
		Description: "Analyze products for missing descriptions and SEO metadata and return a report.",
	}, s.handleAnalyzeProducts)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "audit_product_images",
		Description: "Audit a product's images for missing or weak alt text and generic file names.",
	}, s.handleAuditProductImages)

	// === Orders ===

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_orders",
		Description: "List orders from the WooCommerce store, one page per call.",
	}, s.handleListOrders)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_order",
		Description: "Get a single WooCommerce order by ID.",
	}, s.handleGetOrder)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "create_order",
		Description: "Create a new WooCommerce order with line items and billing details.",
	}, s.handleCreateOrder)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "update_order",
		Description: "Update fields of an existing WooCommerce order, e.g. its status.",
	}, s.handleUpdateOrder)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "delete_order",
		Description: "Delete a WooCommerce order. Set force to skip the trash.",
	}, s.handleDeleteOrder)

	// === Customers ===

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_customers",
		Description: "List customers from the WooCommerce store, one page per call.",
	}, s.handleListCustomers)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_customer",
		Description: "Get a single WooCommerce customer by ID.",
	}, s.handleGetCustomer)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "create_customer",
		Description: "Create a new WooCommerce customer. Requires a valid email address.",
	}, s.handleCreateCustomer)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "update_customer",
		Description: "Update fields of an existing WooCommerce customer.",
	}, s.handleUpdateCustomer)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "delete_customer",
		Description: "Delete a WooCommerce customer. WooCommerce requires force for customers.",
	}, s.handleDeleteCustomer)
}

// --- Input types ---

type listProductsInput struct {
	Page     int    `json:"page,omitempty" jsonschema:"Page number to fetch (default 1)"`
	PerPage  int    `json:"per_page,omitempty" jsonschema:"Products per page (default 10, max 100)"`
	Status   string `json:"status,omitempty" jsonschema:"Filter by status: publish, draft, pending or private"`
	Category string `json:"category,omitempty" jsonschema:"Filter by category ID"`
	Search   string `json:"search,omitempty" jsonschema:"Free-text search over product names and content"`
}

type getProductInput struct {
	ID int `json:"id" jsonschema:"The product ID to retrieve"`
}

type createProductInput struct {
	Product map[string]any `json:"product" jsonschema:"Product fields per the WooCommerce REST schema, e.g. name, type, regular_price"`
}

type updateProductInput struct {
	ID      int            `json:"id" jsonschema:"The product ID to update"`
	Product map[string]any `json:"product" jsonschema:"Fields to change, e.g. description, regular_price, meta_data"`
}

type deleteProductInput struct {
	ID    int  `json:"id" jsonschema:"The product ID to delete"`
	Force bool `json:"force,omitempty" jsonschema:"Delete permanently instead of moving to the trash"`
}

type listCategoriesInput struct {
	Page    int    `json:"page,omitempty" jsonschema:"Page number to fetch (default 1)"`
	PerPage int    `json:"per_page,omitempty" jsonschema:"Categories per page (default 10, max 100)"`
	Search  string `json:"search,omitempty" jsonschema:"Free-text search over category names"`
}

type batchUpdateProductsInput struct {
	Updates []map[string]any `json:"updates" jsonschema:"Product updates; each entry must include id plus the fields to change"`
}

type analyzeProductsInput struct {
	PerPage int `json:"per_page,omitempty" jsonschema:"Number of products to analyze (default 50, max 100)"`
}

type auditProductImagesInput struct {
	ID int `json:"id" jsonschema:"The product ID whose images should be audited"`
}

type listOrdersInput struct {
	Page     int    `json:"page,omitempty" jsonschema:"Page number to fetch (default 1)"`
	PerPage  int    `json:"per_page,omitempty" jsonschema:"Orders per page (default 10, max 100)"`
	Status   string `json:"status,omitempty" jsonschema:"Filter by status, e.g. pending, processing, completed"`
	Customer int    `json:"customer,omitempty" jsonschema:"Filter by customer ID"`
	Search   string `json:"search,omitempty" jsonschema:"Free-text search over orders"`
}

type getOrderInput struct {
	ID int `json:"id" jsonschema:"The order ID to retrieve"`
}

type createOrderInput struct {
	Order map[string]any `json:"order" jsonschema:"Order fields per the WooCommerce REST schema, e.g. line_items, billing, payment_method"`
}

type updateOrderInput struct {
	ID    int            `json:"id" jsonschema:"The order ID to update"`
	Order map[string]any `json:"order" jsonschema:"Fields to change, e.g. status"`
}

type deleteOrderInput struct {
	ID    int  `json:"id" jsonschema:"The order ID to delete"`
	Force bool `json:"force,omitempty" jsonschema:"Delete permanently instead of moving to the trash"`
}

type listCustomersInput struct {
	Page    int    `json:"page,omitempty" jsonschema:"Page number to fetch (default 1)"`
	PerPage int    `json:"per_page,omitempty" jsonschema:"Customers per page (default 10, max 100)"`
	Email   string `json:"email,omitempty" jsonschema:"Filter by exact email address"`
	Role    string `json:"role,omitempty" jsonschema:"Filter by role (default customer)"`
	Search  string `json:"search,omitempty" jsonschema:"Free-text search over customers"`
}

type getCustomerInput struct {
	ID int `json:"id" jsonschema:"The customer ID to retrieve"`
}

type createCustomerInput struct {
	Customer map[string]any `json:"customer" jsonschema:"Customer fields per the WooCommerce REST schema; email is required"`
}

type updateCustomerInput struct {
	ID       int            `json:"id" jsonschema:"The customer ID to update"`
	Customer map[string]any `json:"customer" jsonschema:"Fields to change, e.g. email, first_name, billing"`
}

type deleteCustomerInput struct {
	ID    int  `json:"id" jsonschema:"The customer ID to delete"`
	Force bool `json:"force" jsonschema:"Must be true; WooCommerce deletes customers permanently"`
}

// --- Result helpers ---

// failure converts an adapter error into a tool failure result. Adapter
// errors never escape as protocol faults; each call yields exactly one result.
func failure(err error) *mcp.CallToolResult {
	kind := woo.KindTransient
	msg := err.Error()
	var apiErr *woo.APIError
	if errors.As(err, &apiErr) {
		kind = apiErr.Kind
		msg = apiErr.Message
	}
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{
			&mcp.TextContent{Text: fmt.Sprintf("%s: %s", kind, msg)},
		},
	}
}

// validationFailure reports a parameter problem caught before any HTTP call.
func validationFailure(format string, args ...any) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{
			&mcp.TextContent{Text: fmt.Sprintf("%s: %s", woo.KindValidation, fmt.Sprintf(format, args...))},
		},
	}
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}

// checkEmail validates an email field before the request reaches the store.
func checkEmail(address string) error {
	if _, err := mail.ParseAddress(address); err != nil {
		return fmt.Errorf("malformed email address %q", address)
	}
	return nil
}

// --- Product handlers ---

func (s *Server) handleListProducts(ctx context.Context, req *mcp.CallToolRequest, input listProductsInput) (*mcp.CallToolResult, []map[string]any, error) {
	opts := woo.ListOptions{Page: input.Page, PerPage: input.PerPage, Filters: map[string]string{}}
	if input.Status != "" {
		opts.Filters["status"] = input.Status
	}
	if input.Category != "" {
		opts.Filters["category"] = input.Category
	}
	if input.Search != "" {
		opts.Filters["search"] = input.Search
	}

	records, err := s.store.ListProducts(ctx, opts)
	if err != nil {
		return failure(err), nil, nil
	}
	return nil, records, nil
}

func (s *Server) handleGetProduct(ctx context.Context, req *mcp.CallToolRequest, input getProductInput) (*mcp.CallToolResult, map[string]any, error) {
	record, err := s.store.GetProduct(ctx, input.ID)
	if err != nil {
		return failure(err), nil, nil
	}
	return nil, record, nil
}

func (s *Server) handleCreateProduct(ctx context.Context, req *mcp.CallToolRequest, input createProductInput) (*mcp.CallToolResult, map[string]any, error) {
	record, err := s.store.CreateProduct(ctx, input.Product)
	if err != nil {
		return failure(err), nil, nil
	}
	return nil, record, nil
}

func (s *Server) handleUpdateProduct(ctx context.Context, req *mcp.CallToolRequest, input updateProductInput) (*mcp.CallToolResult, map[string]any, error) {
	record, err := s.store.UpdateProduct(ctx, input.ID, input.Product)
	if err != nil {
		return failure(err), nil, nil
	}
	return nil, record, nil
}

func (s *Server) handleDeleteProduct(ctx context.Context, req *mcp.CallToolRequest, input deleteProductInput) (*mcp.CallToolResult, map[string]any, error) {
	record, err := s.store.DeleteProduct(ctx, input.ID, input.Force)
	if err != nil {
		return failure(err), nil, nil
	}
	return nil, record, nil
}

func (s *Server) handleListCategories(ctx context.Context, req *mcp.CallToolRequest, input listCategoriesInput) (*mcp.CallToolResult, []map[string]any, error) {
	opts := woo.ListOptions{Page: input.Page, PerPage: input.PerPage, Filters: map[string]string{}}
	if input.Search != "" {
		opts.Filters["search"] = input.Search
	}

	records, err := s.store.ListCategories(ctx, opts)
	if err != nil {
		return failure(err), nil, nil
	}
	return nil, records, nil
}

func (s *Server) handleBatchUpdateProducts(ctx context.Context, req *mcp.CallToolRequest, input batchUpdateProductsInput) (*mcp.CallToolResult, map[string]any, error) {
	if len(input.Updates) == 0 {
		return validationFailure("updates must contain at least one entry"), nil, nil
	}
	record, err := s.store.BatchUpdateProducts(ctx, input.Updates)
	if err != nil {
		return failure(err), nil, nil
	}
	return nil, record, nil
}

func (s *Server) handleAnalyzeProducts(ctx context.Context, req *mcp.CallToolRequest, input analyzeProductsInput) (*mcp.CallToolResult, any, error) {
	perPage := input.PerPage
	if perPage <= 0 {
		perPage = 50
	}
	if perPage > 100 {
		perPage = 100
	}

	products, err := s.store.ListProducts(ctx, woo.ListOptions{PerPage: perPage})
	if err != nil {
		return failure(err), nil, nil
	}
	if len(products) == 0 {
		return textResult("No products found to analyze."), nil, nil
	}

	return textResult(renderProductAnalysis(products)), nil, nil
}

func (s *Server) handleAuditProductImages(ctx context.Context, req *mcp.CallToolRequest, input auditProductImagesInput) (*mcp.CallToolResult, any, error) {
	product, err := s.store.GetProduct(ctx, input.ID)
	if err != nil {
		return failure(err), nil, nil
	}

	return textResult(renderImageAudit(product)), nil, nil
}

// --- Order handlers ---

func (s *Server) handleListOrders(ctx context.Context, req *mcp.CallToolRequest, input listOrdersInput) (*mcp.CallToolResult, []map[string]any, error) {
	opts := woo.ListOptions{Page: input.Page, PerPage: input.PerPage, Filters: map[string]string{}}
	if input.Status != "" {
		opts.Filters["status"] = input.Status
	}
	if input.Customer > 0 {
		opts.Filters["customer"] = fmt.Sprintf("%d", input.Customer)
	}
	if input.Search != "" {
		opts.Filters["search"] = input.Search
	}

	records, err := s.store.ListOrders(ctx, opts)
	if err != nil {
		return failure(err), nil, nil
	}
	return nil, records, nil
}

func (s *Server) handleGetOrder(ctx context.Context, req *mcp.CallToolRequest, input getOrderInput) (*mcp.CallToolResult, map[string]any, error) {
	record, err := s.store.GetOrder(ctx, input.ID)
	if err != nil {
		return failure(err), nil, nil
	}
	return nil, record, nil
}

func (s *Server) handleCreateOrder(ctx context.Context, req *mcp.CallToolRequest, input createOrderInput) (*mcp.CallToolResult, map[string]any, error) {
	record, err := s.store.CreateOrder(ctx, input.Order)
	if err != nil {
		return failure(err), nil, nil
	}
	return nil, record, nil
}

func (s *Server) handleUpdateOrder(ctx context.Context, req *mcp.CallToolRequest, input updateOrderInput) (*mcp.CallToolResult, map[string]any, error) {
	record, err := s.store.UpdateOrder(ctx, input.ID, input.Order)
	if err != nil {
		return failure(err), nil, nil
	}
	return nil, record, nil
}

func (s *Server) handleDeleteOrder(ctx context.Context, req *mcp.CallToolRequest, input deleteOrderInput) (*mcp.CallToolResult, map[string]any, error) {
	record, err := s.store.DeleteOrder(ctx, input.ID, input.Force)
	if err != nil {
		return failure(err), nil, nil
	}
	return nil, record, nil
}

// --- Customer handlers ---

func (s *Server) handleListCustomers(ctx context.Context, req *mcp.CallToolRequest, input listCustomersInput) (*mcp.CallToolResult, []map[string]any, error) {
	opts := woo.ListOptions{Page: input.Page, PerPage: input.PerPage, Filters: map[string]string{}}
	if input.Email != "" {
		opts.Filters["email"] = input.Email
	}
	if input.Role != "" {
		opts.Filters["role"] = input.Role
	}
	if input.Search != "" {
		opts.Filters["search"] = input.Search
	}

	records, err := s.store.ListCustomers(ctx, opts)
	if err != nil {
		return failure(err), nil, nil
	}
	return nil, records, nil
}

func (s *Server) handleGetCustomer(ctx context.Context, req *mcp.CallToolRequest, input getCustomerInput) (*mcp.CallToolResult, map[string]any, error) {
	record, err := s.store.GetCustomer(ctx, input.ID)
	if err != nil {
		return failure(err), nil, nil
	}
	return nil, record, nil
}

func (s *Server) handleCreateCustomer(ctx context.Context, req *mcp.CallToolRequest, input createCustomerInput) (*mcp.CallToolResult, map[string]any, error) {
	email, ok := input.Customer["email"].(string)
	if !ok || email == "" {
		return validationFailure("customer email is required"), nil, nil
	}
	if err := checkEmail(email); err != nil {
		return validationFailure("%v", err), nil, nil
	}

	record, err := s.store.CreateCustomer(ctx, input.Customer)
	if err != nil {
		return failure(err), nil, nil
	}
	return nil, record, nil
}

func (s *Server) handleUpdateCustomer(ctx context.Context, req *mcp.CallToolRequest, input updateCustomerInput) (*mcp.CallToolResult, map[string]any, error) {
	if email, ok := input.Customer["email"].(string); ok {
		if err := checkEmail(email); err != nil {
			return validationFailure("%v", err), nil, nil
		}
	}

	record, err := s.store.UpdateCustomer(ctx, input.ID, input.Customer)
	if err != nil {
		return failure(err), nil, nil
	}
	return nil, record, nil
}

func (s *Server) handleDeleteCustomer(ctx context.Context, req *mcp.CallToolRequest, input deleteCustomerInput) (*mcp.CallToolResult, map[string]any, error) {
	if !input.Force {
		return validationFailure("force must be true; WooCommerce deletes customers permanently"), nil, nil
	}

	record, err := s.store.DeleteCustomer(ctx, input.ID, input.Force)
	if err != nil {
		return failure(err), nil, nil
	}
	return nil, record, nil
}
