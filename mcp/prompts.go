package mcp

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/CSCSoftware/woohoo/woo"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// registerPrompts registers the store consultant prompts. Both build their
// text from live store data at request time.
func (s *Server) registerPrompts() {
	s.mcpServer.AddPrompt(&mcp.Prompt{
		Name:        "analyze_store",
		Description: "Build a store optimization consultant prompt from current product and category data.",
		Arguments: []*mcp.PromptArgument{
			{Name: "include_products", Description: "Include per-product listings (true/false, default true)"},
			{Name: "max_products", Description: "Maximum products to analyze (default 50, max 100)"},
		},
	}, s.handleAnalyzeStorePrompt)

	s.mcpServer.AddPrompt(&mcp.Prompt{
		Name:        "bulk_generate_seo",
		Description: "Build an SEO copywriting prompt for products that are missing SEO metadata.",
		Arguments: []*mcp.PromptArgument{
			{Name: "category_id", Description: "Restrict to one category ID (optional)"},
			{Name: "limit", Description: "Maximum products to include (default 20, max 50)"},
		},
	}, s.handleBulkGenerateSEOPrompt)
}

// promptArg reads one string argument with a fallback.
func promptArg(req *mcp.GetPromptRequest, name, fallback string) string {
	if req == nil || req.Params == nil {
		return fallback
	}
	if v, ok := req.Params.Arguments[name]; ok && v != "" {
		return v
	}
	return fallback
}

// promptIntArg reads a bounded integer argument with a fallback.
func promptIntArg(req *mcp.GetPromptRequest, name string, fallback, max int) int {
	raw := promptArg(req, name, "")
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return fallback
	}
	if n > max {
		return max
	}
	return n
}

func promptResult(text string) *mcp.GetPromptResult {
	return &mcp.GetPromptResult{
		Messages: []*mcp.PromptMessage{
			{
				Role:    "user",
				Content: &mcp.TextContent{Text: text},
			},
		},
	}
}

func (s *Server) handleAnalyzeStorePrompt(ctx context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	includeProducts := promptArg(req, "include_products", "true") != "false"
	maxProducts := promptIntArg(req, "max_products", 50, 100)

	products, err := s.store.ListProducts(ctx, woo.ListOptions{PerPage: maxProducts})
	if err != nil {
		return nil, fmt.Errorf("fetching products: %w", err)
	}
	categories, err := s.store.ListCategories(ctx, woo.ListOptions{PerPage: 100})
	if err != nil {
		return nil, fmt.Errorf("fetching categories: %w", err)
	}

	stats := collectStats(products)

	var b strings.Builder
	b.WriteString("You are a WooCommerce store optimization consultant specialized in SEO and product optimization.\n\n")

	b.WriteString("STORE OVERVIEW:\n")
	fmt.Fprintf(&b, "- Total Products Analyzed: %d\n", stats.Total)
	fmt.Fprintf(&b, "- Published Products: %d\n", stats.Published)
	fmt.Fprintf(&b, "- Draft Products: %d\n", stats.Drafts)
	fmt.Fprintf(&b, "- Total Categories: %d\n\n", len(categories))

	b.WriteString("CONTENT ISSUES FOUND:\n")
	fmt.Fprintf(&b, "- Products Missing Descriptions: %d\n", len(stats.MissingDescription))
	fmt.Fprintf(&b, "- Products Missing Short Descriptions: %d\n", len(stats.MissingShortDescription))
	fmt.Fprintf(&b, "- Products Missing SEO Data: %d\n\n", len(stats.MissingSEO))

	if includeProducts && len(stats.MissingDescription) > 0 {
		fmt.Fprintf(&b, "PRODUCTS MISSING DESCRIPTIONS (%d):\n", len(stats.MissingDescription))
		writePromptRefList(&b, stats.MissingDescription, 10)
		b.WriteString("\n")
	}
	if includeProducts && len(stats.MissingSEO) > 0 {
		fmt.Fprintf(&b, "PRODUCTS MISSING SEO DATA (%d):\n", len(stats.MissingSEO))
		writePromptRefList(&b, stats.MissingSEO, 10)
		b.WriteString("\n")
	}

	b.WriteString("CATEGORY ANALYSIS:\n")
	for i, cat := range categories {
		if i == 10 {
			break
		}
		hasDesc := "no description"
		if strings.TrimSpace(strField(cat, "description")) != "" {
			hasDesc = "has description"
		}
		fmt.Fprintf(&b, "- %s: %d products, %s\n", strField(cat, "name"), intField(cat, "count"), hasDesc)
	}

	b.WriteString(`
Please provide:

1. PRIORITY ASSESSMENT (High/Medium/Low for each issue)
2. ACTIONABLE RECOMMENDATIONS with specific steps
3. CONTENT STRATEGY suggestions for improving product descriptions
4. SEO OPTIMIZATION roadmap
5. ESTIMATED TIMELINE for implementing improvements

Focus on quick wins that can be implemented immediately, long-term content
strategy, e-commerce SEO best practices and conversion opportunities. Provide
specific, actionable advice that a store owner can implement right away.
`)

	return promptResult(b.String()), nil
}

func writePromptRefList(b *strings.Builder, refs []productRef, limit int) {
	for i, ref := range refs {
		if i == limit {
			fmt.Fprintf(b, "... and %d more\n", len(refs)-limit)
			return
		}
		fmt.Fprintf(b, "- ID %d: %s ($%s)\n", ref.ID, ref.Name, ref.Price)
	}
}

func (s *Server) handleBulkGenerateSEOPrompt(ctx context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	limit := promptIntArg(req, "limit", 20, 50)

	opts := woo.ListOptions{PerPage: limit, Filters: map[string]string{}}
	if categoryID := promptArg(req, "category_id", ""); categoryID != "" {
		opts.Filters["category"] = categoryID
	}

	products, err := s.store.ListProducts(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("fetching products: %w", err)
	}

	var needingSEO []map[string]any
	for _, p := range products {
		if missingSEO(p) {
			needingSEO = append(needingSEO, p)
		}
	}

	if len(needingSEO) == 0 {
		return promptResult("Great news! All products in the specified range already have SEO metadata configured."), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, `You are an SEO expert helping to optimize WooCommerce products. Please generate SEO metadata for the following %d products that are missing SEO data.

For each product, provide:
1. SEO Title (max 60 characters) - compelling, with key product terms
2. Meta Description (max 160 characters) - engaging, encourages clicks
3. Natural language keywords

Products needing SEO optimization:

`, len(needingSEO))

	for i, p := range needingSEO {
		desc := strField(p, "description")
		if len(desc) > 200 {
			desc = desc[:200] + "..."
		}

		var catNames []string
		if cats, ok := p["categories"].([]any); ok {
			for _, raw := range cats {
				if cat, ok := raw.(map[string]any); ok {
					catNames = append(catNames, strField(cat, "name"))
				}
			}
		}
		categories := "Uncategorized"
		if len(catNames) > 0 {
			categories = strings.Join(catNames, ", ")
		}

		var missing []string
		if metaValue(p, seoTitleKey) == "" {
			missing = append(missing, "SEO Title")
		}
		if metaValue(p, seoDescKey) == "" {
			missing = append(missing, "Meta Description")
		}

		fmt.Fprintf(&b, "Product %d:\n", i+1)
		fmt.Fprintf(&b, "- ID: %d\n", intField(p, "id"))
		fmt.Fprintf(&b, "- Name: %s\n", strField(p, "name"))
		fmt.Fprintf(&b, "- Price: $%s\n", strField(p, "price"))
		fmt.Fprintf(&b, "- Categories: %s\n", categories)
		fmt.Fprintf(&b, "- Description: %s\n", desc)
		fmt.Fprintf(&b, "- Missing: %s\n\n", strings.Join(missing, ", "))
	}

	b.WriteString(`Please provide the SEO metadata in this format for each product:

Product ID [ID]:
SEO Title: [optimized title]
Meta Description: [optimized description]

Include relevant keywords naturally, stay within character limits and
highlight each product's unique selling points.
`)

	return promptResult(b.String()), nil
}
