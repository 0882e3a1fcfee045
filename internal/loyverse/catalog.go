package loyverse

import (
	"context"
	"net/url"
	"strconv"
)

// itemCatalogLimit caps the catalog fetch used for category enrichment at a
// single page. Accounts with more distinct items than this have the surplus
// reported as "Uncategorized".
const itemCatalogLimit = 250

// ListCategories retrieves the full category catalog as an id to name map
func (c *Client) ListCategories(ctx context.Context) (map[string]string, error) {
	var page categoriesPage
	if err := c.get(ctx, "/categories", nil, &page); err != nil {
		return nil, err
	}

	categories := make(map[string]string, len(page.Categories))
	for _, category := range page.Categories {
		categories[category.ID] = category.Name
	}
	return categories, nil
}

// ListItems retrieves up to one page of catalog items
func (c *Client) ListItems(ctx context.Context) ([]Item, error) {
	query := url.Values{}
	query.Set("limit", strconv.Itoa(itemCatalogLimit))

	var page itemsPage
	if err := c.get(ctx, "/items", query, &page); err != nil {
		return nil, err
	}
	return page.Items, nil
}

// ListStores retrieves the store catalog for the account
func (c *Client) ListStores(ctx context.Context) ([]Store, error) {
	var page storesPage
	if err := c.get(ctx, "/stores", nil, &page); err != nil {
		return nil, err
	}
	return page.Stores, nil
}
