package service

import (
	"sort"
	"strings"

	"github.com/tillboard/tillboard-api/internal/loyverse"
)

// DailyTaking is one day's aggregated revenue summary
type DailyTaking struct {
	Date         string             `json:"date"`
	Total        float64            `json:"total"`
	ReceiptCount int                `json:"receipt_count"`
	Average      float64            `json:"average"`
	Payments     PaymentBreakdown   `json:"payments"`
	Stores       map[string]float64 `json:"stores"`
	Items        []ItemSale         `json:"items"`
}

// PaymentBreakdown splits a day's takings into cash and card. Payments that
// match neither heuristic are omitted from both buckets; the day's total is
// an independent ledger and still includes them.
type PaymentBreakdown struct {
	Cash float64 `json:"cash"`
	Card float64 `json:"card"`
}

// ItemSale is one sellable unit's daily summary, keyed by (name, variant)
type ItemSale struct {
	Name         string  `json:"name"`
	Variant      string  `json:"variant"`
	Quantity     float64 `json:"quantity"`
	Total        float64 `json:"total"`
	AveragePrice float64 `json:"average_price"`
	Category     string  `json:"category"`

	// itemID is the upstream catalog id used for category enrichment.
	itemID string
}

type itemKey struct {
	name    string
	variant string
}

type itemAccumulator struct {
	itemID   string
	quantity float64
	total    float64
}

type dayAccumulator struct {
	total  float64
	count  int
	cash   float64
	card   float64
	stores map[string]float64
	items  map[itemKey]*itemAccumulator
}

var cardNameHints = []string{"card", "visa", "mastercard", "amex", "credit", "debit"}

// classifyPayments sums a receipt's payments into cash and card buckets and
// applies the reconciliation rule: when the classified sum is positive but
// short of the receipt total, the shortfall is presumed to be an unlisted
// card payment. The shortfall is never attributed to cash.
func classifyPayments(r *loyverse.Receipt) (cash, card float64) {
	for _, p := range r.Payments {
		paymentType := strings.ToLower(p.Type)
		name := strings.ToLower(p.Name)

		switch {
		case paymentType == "cash" || strings.Contains(name, "cash"):
			cash += p.MoneyAmount
		case paymentType == "card" || paymentType == "credit_card" || paymentType == "debit_card":
			card += p.MoneyAmount
		case containsAny(name, cardNameHints):
			card += p.MoneyAmount
		}
	}

	classified := cash + card
	if classified > 0 && classified < r.TotalMoney {
		card += r.TotalMoney - classified
	}

	return cash, card
}

func containsAny(s string, substrings []string) bool {
	for _, sub := range substrings {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// aggregateDailyTakings rolls raw receipts up into per-day summaries in a
// single order-independent pass. Voided and cancelled receipts are skipped
// entirely. Output is sorted newest day first; each day's items are sorted by
// total sales descending. Categories are left empty for enrichment.
func aggregateDailyTakings(receipts []loyverse.Receipt) []DailyTaking {
	days := make(map[string]*dayAccumulator)

	for i := range receipts {
		r := &receipts[i]
		if r.Excluded() {
			continue
		}

		date := r.BusinessDate()
		day, ok := days[date]
		if !ok {
			day = &dayAccumulator{
				stores: make(map[string]float64),
				items:  make(map[itemKey]*itemAccumulator),
			}
			days[date] = day
		}

		day.total += r.TotalMoney
		day.count++
		day.stores[r.StoreID] += r.TotalMoney

		cash, card := classifyPayments(r)
		day.cash += cash
		day.card += card

		for _, line := range r.LineItems {
			key := itemKey{name: line.ItemName, variant: line.VariantName}
			item, ok := day.items[key]
			if !ok {
				item = &itemAccumulator{itemID: line.ItemID}
				day.items[key] = item
			}
			item.quantity += line.Quantity
			item.total += line.TotalMoney
		}
	}

	takings := make([]DailyTaking, 0, len(days))
	for date, day := range days {
		items := make([]ItemSale, 0, len(day.items))
		for key, item := range day.items {
			averagePrice := 0.0
			if item.quantity != 0 {
				averagePrice = item.total / item.quantity
			}
			items = append(items, ItemSale{
				Name:         key.name,
				Variant:      key.variant,
				Quantity:     item.quantity,
				Total:        item.total,
				AveragePrice: averagePrice,
				itemID:       item.itemID,
			})
		}
		sort.Slice(items, func(i, j int) bool {
			if items[i].Total != items[j].Total {
				return items[i].Total > items[j].Total
			}
			return items[i].Name < items[j].Name
		})

		takings = append(takings, DailyTaking{
			Date:         date,
			Total:        day.total,
			ReceiptCount: day.count,
			Average:      day.total / float64(day.count),
			Payments:     PaymentBreakdown{Cash: day.cash, Card: day.card},
			Stores:       day.stores,
			Items:        items,
		})
	}

	// ISO dates compare lexicographically in chronological order.
	sort.Slice(takings, func(i, j int) bool {
		return takings[i].Date > takings[j].Date
	})

	return takings
}
