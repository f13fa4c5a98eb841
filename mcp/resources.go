package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/CSCSoftware/woohoo/woo"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const storeStatsURI = "woo://store/stats"

// registerResources registers the read-only store resources.
func (s *Server) registerResources() {
	s.mcpServer.AddResource(&mcp.Resource{
		Name:        "store_stats",
		Description: "Store-wide product statistics and optimization opportunities.",
		MIMEType:    "text/plain",
		URI:         storeStatsURI,
	}, s.handleStoreStats)
}

// handleStoreStats computes store statistics from one products page and one
// categories page. Nothing is cached; every read hits the store.
func (s *Server) handleStoreStats(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	products, err := s.store.ListProducts(ctx, woo.ListOptions{PerPage: 100})
	if err != nil {
		return nil, fmt.Errorf("fetching products: %w", err)
	}
	categories, err := s.store.ListCategories(ctx, woo.ListOptions{PerPage: 100})
	if err != nil {
		return nil, fmt.Errorf("fetching categories: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{
			{
				URI:      storeStatsURI,
				MIMEType: "text/plain",
				Text:     renderStoreStats(collectStats(products), len(categories)),
			},
		},
	}, nil
}

// renderStoreStats builds the woo://store/stats text report.
func renderStoreStats(stats productStats, categoryCount int) string {
	var b strings.Builder
	b.WriteString("WooCommerce Store Statistics\n")
	b.WriteString("============================\n\n")

	b.WriteString("Product overview:\n")
	fmt.Fprintf(&b, "  Total products: %d\n", stats.Total)
	fmt.Fprintf(&b, "  Published: %d\n", stats.Published)
	fmt.Fprintf(&b, "  Drafts: %d\n\n", stats.Drafts)

	b.WriteString("Optimization opportunities:\n")
	fmt.Fprintf(&b, "  Products needing work: %d\n", stats.NeedingWork)
	fmt.Fprintf(&b, "  Missing descriptions: %d\n", len(stats.MissingDescription))
	fmt.Fprintf(&b, "  Missing short descriptions: %d\n", len(stats.MissingShortDescription))
	fmt.Fprintf(&b, "  Missing SEO metadata: %d\n\n", len(stats.MissingSEO))

	fmt.Fprintf(&b, "Categories:\n  Total categories: %d\n\n", categoryCount)

	b.WriteString("Priority actions:\n")
	if stats.NeedingWork > 0 {
		fmt.Fprintf(&b, "  - %d products need content optimization\n", stats.NeedingWork)
	}
	if n := len(stats.MissingSEO); n > 0 {
		fmt.Fprintf(&b, "  - %d products missing SEO metadata\n", n)
	}
	if n := len(stats.MissingDescription); n > 0 {
		fmt.Fprintf(&b, "  - %d products need descriptions\n", n)
	}
	if stats.NeedingWork == 0 {
		b.WriteString("  - All products are well-optimized\n")
	}

	score := 100.0
	if stats.Total > 0 {
		score = float64(stats.Total-stats.NeedingWork) / float64(stats.Total) * 100
	}
	fmt.Fprintf(&b, "\nStore optimization score: %.1f%%\n", score)

	return b.String()
}
