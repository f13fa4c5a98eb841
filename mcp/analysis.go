package mcp

import (
	"fmt"
	"strings"
)

// Yoast SEO meta keys checked by the analysis tools.
const (
	seoTitleKey = "_yoast_wpseo_title"
	seoDescKey  = "_yoast_wpseo_metadesc"
)

// productRef is the slice of a product the reports need.
type productRef struct {
	ID     int64
	Name   string
	Status string
	Price  string
}

func refOf(p map[string]any) productRef {
	return productRef{
		ID:     intField(p, "id"),
		Name:   strField(p, "name"),
		Status: strField(p, "status"),
		Price:  strField(p, "price"),
	}
}

func strField(m map[string]any, key string) string {
	v, _ := m[key].(string)
	return v
}

// intField reads a numeric field. JSON numbers decode as float64.
func intField(m map[string]any, key string) int64 {
	switch v := m[key].(type) {
	case float64:
		return int64(v)
	case int64:
		return v
	case int:
		return int64(v)
	default:
		return 0
	}
}

// metaValue scans a record's meta_data array for the given key.
func metaValue(p map[string]any, key string) string {
	items, _ := p["meta_data"].([]any)
	for _, raw := range items {
		item, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		if strField(item, "key") == key {
			return strField(item, "value")
		}
	}
	return ""
}

func missingDescription(p map[string]any) bool {
	return strings.TrimSpace(strField(p, "description")) == ""
}

func missingShortDescription(p map[string]any) bool {
	return strings.TrimSpace(strField(p, "short_description")) == ""
}

func missingSEO(p map[string]any) bool {
	return metaValue(p, seoTitleKey) == "" || metaValue(p, seoDescKey) == ""
}

// productStats aggregates content gaps over one page of products.
type productStats struct {
	Total                   int
	Published               int
	Drafts                  int
	MissingDescription      []productRef
	MissingShortDescription []productRef
	MissingSEO              []productRef
	NeedingWork             int
}

func collectStats(products []map[string]any) productStats {
	stats := productStats{Total: len(products)}
	for _, p := range products {
		switch strField(p, "status") {
		case "publish":
			stats.Published++
		case "draft":
			stats.Drafts++
		}

		needsWork := false
		if missingDescription(p) {
			stats.MissingDescription = append(stats.MissingDescription, refOf(p))
			needsWork = true
		}
		if missingShortDescription(p) {
			stats.MissingShortDescription = append(stats.MissingShortDescription, refOf(p))
			needsWork = true
		}
		if missingSEO(p) {
			stats.MissingSEO = append(stats.MissingSEO, refOf(p))
			needsWork = true
		}
		if needsWork {
			stats.NeedingWork++
		}
	}
	return stats
}

// writeRefList writes up to limit product references, then a remainder line.
func writeRefList(b *strings.Builder, refs []productRef, limit int) {
	for i, ref := range refs {
		if i == limit {
			fmt.Fprintf(b, "  ... and %d more\n", len(refs)-limit)
			return
		}
		fmt.Fprintf(b, "  - ID %d: %s\n", ref.ID, ref.Name)
	}
}

// renderProductAnalysis builds the analyze_products report.
func renderProductAnalysis(products []map[string]any) string {
	stats := collectStats(products)

	var b strings.Builder
	b.WriteString("Products Analysis\n")
	b.WriteString("=================\n\n")
	fmt.Fprintf(&b, "Analyzed %d products\n\n", stats.Total)

	fmt.Fprintf(&b, "Missing descriptions: %d\n", len(stats.MissingDescription))
	writeRefList(&b, stats.MissingDescription, 10)

	fmt.Fprintf(&b, "\nMissing short descriptions: %d\n", len(stats.MissingShortDescription))
	writeRefList(&b, stats.MissingShortDescription, 10)

	fmt.Fprintf(&b, "\nMissing SEO metadata: %d\n", len(stats.MissingSEO))
	writeRefList(&b, stats.MissingSEO, 10)

	return b.String()
}

// renderImageAudit builds the audit_product_images report for one product.
func renderImageAudit(product map[string]any) string {
	name := strField(product, "name")
	if name == "" {
		name = "Unknown Product"
	}
	images, _ := product["images"].([]any)

	var b strings.Builder
	fmt.Fprintf(&b, "Image audit for: %s\n", name)
	b.WriteString("==================================================\n\n")

	if len(images) == 0 {
		b.WriteString("Critical issue: no product images found.\n\n")
		b.WriteString("Suggestions:\n")
		fmt.Fprintf(&b, "  - Add at least 1-3 high-quality images for %q\n", name)
		b.WriteString("  - Include a main product image, detail shots and lifestyle images\n")
		return b.String()
	}

	var issues, suggestions, good []string
	for i, raw := range images {
		img, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		n := i + 1
		alt := strings.TrimSpace(strField(img, "alt"))
		imgName := strings.TrimSpace(strField(img, "name"))

		switch {
		case alt == "":
			issues = append(issues, fmt.Sprintf("Image %d missing alt text", n))
			suggestions = append(suggestions, fmt.Sprintf("Add alt text: %q", fmt.Sprintf("%s - product view %d", name, n)))
		case len(alt) < 10:
			issues = append(issues, fmt.Sprintf("Image %d alt text too short: %q", n, alt))
			suggestions = append(suggestions, fmt.Sprintf("Expand image %d alt text to be more descriptive (10+ characters)", n))
		case strings.EqualFold(alt, name):
			issues = append(issues, fmt.Sprintf("Image %d alt text is just the product name", n))
			suggestions = append(suggestions, fmt.Sprintf("Describe what image %d actually shows", n))
		default:
			good = append(good, fmt.Sprintf("Image %d has good alt text", n))
		}

		switch strings.ToLower(imgName) {
		case "", "image", "img", "photo", "picture":
			issues = append(issues, fmt.Sprintf("Image %d has a generic or missing name", n))
			suggestions = append(suggestions, fmt.Sprintf("Use a descriptive filename like %q", fmt.Sprintf("%s-%d", strings.ReplaceAll(strings.ToLower(name), " ", "-"), n)))
		}
	}

	b.WriteString("Summary:\n")
	fmt.Fprintf(&b, "  Total images: %d\n", len(images))
	fmt.Fprintf(&b, "  Issues found: %d\n", len(issues))
	fmt.Fprintf(&b, "  Good practices: %d\n\n", len(good))

	writeBulletSection(&b, "Issues:", issues)
	writeBulletSection(&b, "Suggestions:", suggestions)
	writeBulletSection(&b, "Good practices:", good)

	b.WriteString("SEO best practices:\n")
	b.WriteString("  - Alt text should describe what is in the image\n")
	b.WriteString("  - Include the product name plus descriptive details\n")
	b.WriteString("  - Keep alt text under 125 characters\n")

	return b.String()
}

func writeBulletSection(b *strings.Builder, title string, lines []string) {
	if len(lines) == 0 {
		return
	}
	b.WriteString(title + "\n")
	for _, line := range lines {
		fmt.Fprintf(b, "  - %s\n", line)
	}
	b.WriteString("\n")
}
