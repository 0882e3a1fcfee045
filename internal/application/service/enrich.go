package service

import (
	"context"
	"log"

	"github.com/tillboard/tillboard-api/internal/loyverse"
)

// UncategorizedLabel is the fallback category for items the catalog lookup
// cannot resolve.
const UncategorizedLabel = "Uncategorized"

// catalogClient is the slice of the Loyverse client enrichment needs
type catalogClient interface {
	ListCategories(ctx context.Context) (map[string]string, error)
	ListItems(ctx context.Context) ([]loyverse.Item, error)
}

// buildCategoryLookup fetches the category catalog and one page of items and
// maps item id to category name. A nil map means the lookup failed; callers
// fall back to UncategorizedLabel for everything.
func buildCategoryLookup(ctx context.Context, client catalogClient) map[string]string {
	categories, err := client.ListCategories(ctx)
	if err != nil {
		log.Printf("Warning: category fetch failed, items will be uncategorized: %v", err)
		return nil
	}

	items, err := client.ListItems(ctx)
	if err != nil {
		log.Printf("Warning: item catalog fetch failed, items will be uncategorized: %v", err)
		return nil
	}

	lookup := make(map[string]string, len(items))
	for _, item := range items {
		if name, ok := categories[item.CategoryID]; ok {
			lookup[item.ID] = name
		}
	}
	return lookup
}

// enrichCategories resolves the category on every item-breakdown entry across
// all dates and returns a new annotated slice; the input is not mutated. Any
// catalog failure degrades every category to UncategorizedLabel rather than
// failing the aggregation.
func enrichCategories(ctx context.Context, client catalogClient, takings []DailyTaking) []DailyTaking {
	lookup := buildCategoryLookup(ctx, client)

	enriched := make([]DailyTaking, len(takings))
	for i, day := range takings {
		items := make([]ItemSale, len(day.Items))
		for j, item := range day.Items {
			category, ok := lookup[item.itemID]
			if !ok {
				category = UncategorizedLabel
			}
			item.Category = category
			items[j] = item
		}
		day.Items = items
		enriched[i] = day
	}
	return enriched
}
