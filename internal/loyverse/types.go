package loyverse

import "time"

// Receipt statuses as reported by the upstream API. Anything other than
// StatusNormal is excluded from aggregation.
const (
	StatusNormal    = "NORMAL"
	StatusVoided    = "VOIDED"
	StatusCancelled = "CANCELLED"
)

// Receipt represents one point-of-sale transaction as returned by the
// Loyverse receipts endpoint. Missing numeric fields decode as zero and
// missing arrays as nil, so downstream code never needs per-field fallbacks.
type Receipt struct {
	ReceiptNumber string     `json:"receipt_number"`
	StoreID       string     `json:"store_id"`
	Status        string     `json:"status"`
	CancelledAt   *time.Time `json:"cancelled_at"`
	CreatedAt     time.Time  `json:"created_at"`
	ReceiptDate   *time.Time `json:"receipt_date"`
	TotalMoney    float64    `json:"total_money"`
	LineItems     []LineItem `json:"line_items"`
	Payments      []Payment  `json:"payments"`
}

// LineItem represents one line on a receipt
type LineItem struct {
	ItemID      string  `json:"item_id"`
	ItemName    string  `json:"item_name"`
	VariantName string  `json:"variant_name"`
	Quantity    float64 `json:"quantity"`
	TotalMoney  float64 `json:"total_money"`
}

// Payment represents one payment on a receipt
type Payment struct {
	Type        string  `json:"type"`
	Name        string  `json:"name"`
	MoneyAmount float64 `json:"money_amount"`
}

// Store represents one store (outlet) under a Loyverse account
type Store struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
}

// Category represents one item category from the catalog
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Item represents one catalog item, optionally tagged with a category
type Item struct {
	ID         string `json:"id"`
	ItemName   string `json:"item_name"`
	CategoryID string `json:"category_id"`
}

// BusinessDate returns the calendar day a receipt is attributed to: the date
// portion of receipt_date when present, otherwise of created_at. Dates are
// compared and grouped in UTC.
func (r *Receipt) BusinessDate() string {
	ts := r.CreatedAt
	if r.ReceiptDate != nil {
		ts = *r.ReceiptDate
	}
	return ts.UTC().Format("2006-01-02")
}

// Excluded reports whether a receipt contributes nothing to any aggregate:
// voided, cancelled, or carrying a cancellation timestamp.
func (r *Receipt) Excluded() bool {
	return r.Status == StatusVoided || r.Status == StatusCancelled || r.CancelledAt != nil
}

type receiptsPage struct {
	Receipts []Receipt `json:"receipts"`
	Cursor   string    `json:"cursor"`
}

type categoriesPage struct {
	Categories []Category `json:"categories"`
}

type itemsPage struct {
	Items []Item `json:"items"`
}

type storesPage struct {
	Stores []Store `json:"stores"`
}
