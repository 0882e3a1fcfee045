package loyverse

import (
	"context"
	"net/url"
	"strconv"
	"time"
)

const (
	receiptPageSize = 100

	// Accumulation ceilings. These bound worst-case latency and memory for
	// very large windows; hitting one is not an error, the fetch just stops.
	maxReceiptsSingleStore = 15000
	maxReceiptsAllStores   = 10000
)

// ListReceipts retrieves every receipt created at or after since, for one
// store when storeID is non-empty or for all stores otherwise. Pagination is
// driven purely by the server cursor: the loop continues while the response
// carries both receipts and a cursor. Voided and cancelled receipts are
// included; filtering is the aggregator's job.
//
// Any non-success page response aborts the whole fetch and discards receipts
// already accumulated. Callers must treat an error as total failure.
func (c *Client) ListReceipts(ctx context.Context, storeID string, since time.Time) ([]Receipt, error) {
	maxReceipts := maxReceiptsAllStores
	if storeID != "" {
		maxReceipts = maxReceiptsSingleStore
	}

	receipts := make([]Receipt, 0, receiptPageSize)
	cursor := ""

	for {
		query := url.Values{}
		query.Set("limit", strconv.Itoa(receiptPageSize))
		query.Set("created_at_min", since.UTC().Format(time.RFC3339))
		if storeID != "" {
			query.Set("store_id", storeID)
		}
		if cursor != "" {
			query.Set("cursor", cursor)
		}

		var page receiptsPage
		if err := c.get(ctx, "/receipts", query, &page); err != nil {
			return nil, err
		}

		receipts = append(receipts, page.Receipts...)

		if len(page.Receipts) == 0 || page.Cursor == "" || len(receipts) >= maxReceipts {
			break
		}
		cursor = page.Cursor
	}

	if len(receipts) > maxReceipts {
		receipts = receipts[:maxReceipts]
	}

	return receipts, nil
}
