package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tillboard/tillboard-api/internal/loyverse"
)

func saleReceipt(date string, total float64, payments ...loyverse.Payment) loyverse.Receipt {
	day, _ := time.Parse("2006-01-02", date)
	return loyverse.Receipt{
		ReceiptNumber: "r-" + date,
		StoreID:       "store-1",
		Status:        loyverse.StatusNormal,
		CreatedAt:     day.Add(12 * time.Hour),
		TotalMoney:    total,
		Payments:      payments,
	}
}

func TestAggregateGroupsByBusinessDate(t *testing.T) {
	receipts := []loyverse.Receipt{
		saleReceipt("2024-03-01", 50, loyverse.Payment{Type: "cash", MoneyAmount: 50}),
		saleReceipt("2024-03-01", 30, loyverse.Payment{Type: "card", MoneyAmount: 30}),
		saleReceipt("2024-03-02", 20, loyverse.Payment{Type: "cash", MoneyAmount: 20}),
	}

	takings := aggregateDailyTakings(receipts)

	require.Len(t, takings, 2)
	// Newest day first.
	assert.Equal(t, "2024-03-02", takings[0].Date)
	assert.Equal(t, "2024-03-01", takings[1].Date)

	first := takings[1]
	assert.Equal(t, 80.0, first.Total)
	assert.Equal(t, 2, first.ReceiptCount)
	assert.Equal(t, 40.0, first.Average)
	assert.Equal(t, 50.0, first.Payments.Cash)
	assert.Equal(t, 30.0, first.Payments.Card)
	assert.Equal(t, map[string]float64{"store-1": 80}, first.Stores)
}

func TestAggregateTotalsMatchIncludedReceipts(t *testing.T) {
	receipts := []loyverse.Receipt{
		saleReceipt("2024-03-01", 12.34),
		saleReceipt("2024-03-02", 56.78),
		saleReceipt("2024-03-03", 90.12),
	}
	voided := saleReceipt("2024-03-02", 1000)
	voided.Status = loyverse.StatusVoided
	receipts = append(receipts, voided)

	takings := aggregateDailyTakings(receipts)

	var sum float64
	for _, day := range takings {
		sum += day.Total
	}
	assert.InDelta(t, 12.34+56.78+90.12, sum, 1e-9)

	for _, day := range takings {
		assert.InDelta(t, day.Total/float64(day.ReceiptCount), day.Average, 1e-12)
	}
}

func TestAggregateExcludesVoidedAndCancelled(t *testing.T) {
	// Receipt A: NORMAL 50.00 cash; receipt B: VOIDED 1000.00 same day.
	a := saleReceipt("2024-03-01", 50, loyverse.Payment{Type: "cash", MoneyAmount: 50})
	b := saleReceipt("2024-03-01", 1000)
	b.Status = loyverse.StatusVoided

	takings := aggregateDailyTakings([]loyverse.Receipt{a, b})

	require.Len(t, takings, 1)
	day := takings[0]
	assert.Equal(t, "2024-03-01", day.Date)
	assert.Equal(t, 50.0, day.Total)
	assert.Equal(t, 1, day.ReceiptCount)
	assert.Equal(t, 50.0, day.Payments.Cash)
	assert.Equal(t, 0.0, day.Payments.Card)
}

func TestAggregateExclusionIsIdempotent(t *testing.T) {
	base := []loyverse.Receipt{
		saleReceipt("2024-03-01", 50, loyverse.Payment{Type: "cash", MoneyAmount: 50}),
	}

	cancelled := saleReceipt("2024-03-01", 75)
	cancelled.Status = loyverse.StatusCancelled
	cancelledAt := time.Now()
	lateCancel := saleReceipt("2024-03-01", 33)
	lateCancel.CancelledAt = &cancelledAt

	withExcluded := append(append([]loyverse.Receipt{}, base...), cancelled, lateCancel, cancelled)

	assert.Equal(t, aggregateDailyTakings(base), aggregateDailyTakings(withExcluded))
}

func TestAggregateSkipsDatesWithNoQualifyingReceipts(t *testing.T) {
	voided := saleReceipt("2024-03-05", 10)
	voided.Status = loyverse.StatusVoided

	takings := aggregateDailyTakings([]loyverse.Receipt{
		saleReceipt("2024-03-01", 10),
		voided,
	})

	require.Len(t, takings, 1)
	assert.Equal(t, "2024-03-01", takings[0].Date)
}

func TestClassifyPaymentsShortfallGoesToCard(t *testing.T) {
	// Only a cash payment for half the total: the other half is presumed
	// to be an unlisted card payment, never extra cash.
	r := saleReceipt("2024-03-01", 100, loyverse.Payment{Type: "cash", MoneyAmount: 50})

	cash, card := classifyPayments(&r)

	assert.Equal(t, 50.0, cash)
	assert.Equal(t, 50.0, card)
}

func TestClassifyPaymentsNoShortfallWhenNothingClassified(t *testing.T) {
	// A payment matching neither heuristic stays out of both buckets, and
	// with a zero classified sum no shortfall is invented.
	r := saleReceipt("2024-03-01", 30, loyverse.Payment{Type: "visa-debit-unlisted", MoneyAmount: 30})

	cash, card := classifyPayments(&r)

	assert.Equal(t, 0.0, cash)
	assert.Equal(t, 0.0, card)

	// The revenue ledger is independent of the payment split.
	takings := aggregateDailyTakings([]loyverse.Receipt{r})
	require.Len(t, takings, 1)
	assert.Equal(t, 30.0, takings[0].Total)
}

func TestClassifyPaymentsHeuristics(t *testing.T) {
	tests := []struct {
		name    string
		payment loyverse.Payment
		cash    float64
		card    float64
	}{
		{"type cash", loyverse.Payment{Type: "CASH", MoneyAmount: 10}, 10, 0},
		{"name contains cash", loyverse.Payment{Type: "OTHER", Name: "Cash drawer", MoneyAmount: 10}, 10, 0},
		{"type credit_card", loyverse.Payment{Type: "CREDIT_CARD", MoneyAmount: 10}, 0, 10},
		{"name visa", loyverse.Payment{Type: "OTHER", Name: "Visa terminal", MoneyAmount: 10}, 0, 10},
		{"name mastercard", loyverse.Payment{Type: "OTHER", Name: "MasterCard", MoneyAmount: 10}, 0, 10},
		{"unmatched", loyverse.Payment{Type: "OTHER", Name: "Voucher", MoneyAmount: 10}, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := saleReceipt("2024-03-01", 10, tt.payment)
			cash, card := classifyPayments(&r)
			assert.Equal(t, tt.cash, cash)
			assert.Equal(t, tt.card, card)
		})
	}
}

func TestAggregateItemGrouping(t *testing.T) {
	r1 := saleReceipt("2024-03-01", 12, loyverse.Payment{Type: "cash", MoneyAmount: 12})
	r1.LineItems = []loyverse.LineItem{
		{ItemID: "item-1", ItemName: "Latte", VariantName: "Large", Quantity: 2, TotalMoney: 8},
		{ItemID: "item-1", ItemName: "Latte", VariantName: "Small", Quantity: 1, TotalMoney: 4},
	}
	r2 := saleReceipt("2024-03-01", 16, loyverse.Payment{Type: "cash", MoneyAmount: 16})
	r2.LineItems = []loyverse.LineItem{
		{ItemID: "item-1", ItemName: "Latte", VariantName: "Large", Quantity: 4, TotalMoney: 16},
	}

	takings := aggregateDailyTakings([]loyverse.Receipt{r1, r2})

	require.Len(t, takings, 1)
	items := takings[0].Items
	require.Len(t, items, 2)

	// Same (name, variant) pairs merge; different variants never do.
	// Items are sorted by total sales descending.
	assert.Equal(t, "Large", items[0].Variant)
	assert.Equal(t, 6.0, items[0].Quantity)
	assert.Equal(t, 24.0, items[0].Total)
	assert.Equal(t, 4.0, items[0].AveragePrice)

	assert.Equal(t, "Small", items[1].Variant)
	assert.Equal(t, 1.0, items[1].Quantity)
	assert.Equal(t, 4.0, items[1].Total)
}

func TestAggregateItemOrderingDescending(t *testing.T) {
	r := saleReceipt("2024-03-01", 60, loyverse.Payment{Type: "cash", MoneyAmount: 60})
	r.LineItems = []loyverse.LineItem{
		{ItemID: "a", ItemName: "Tea", Quantity: 1, TotalMoney: 10},
		{ItemID: "b", ItemName: "Cake", Quantity: 1, TotalMoney: 30},
		{ItemID: "c", ItemName: "Juice", Quantity: 1, TotalMoney: 20},
	}

	takings := aggregateDailyTakings([]loyverse.Receipt{r})

	require.Len(t, takings, 1)
	items := takings[0].Items
	require.Len(t, items, 3)
	for i := 1; i < len(items); i++ {
		assert.GreaterOrEqual(t, items[i-1].Total, items[i].Total)
	}
	assert.Equal(t, "Cake", items[0].Name)
}

func TestAggregatePerStoreBreakdown(t *testing.T) {
	r1 := saleReceipt("2024-03-01", 50)
	r2 := saleReceipt("2024-03-01", 30)
	r2.StoreID = "store-2"

	takings := aggregateDailyTakings([]loyverse.Receipt{r1, r2})

	require.Len(t, takings, 1)
	assert.Equal(t, map[string]float64{"store-1": 50, "store-2": 30}, takings[0].Stores)
}

func TestAggregateToleratesMalformedReceipts(t *testing.T) {
	// Missing payments, line items and total decode as zero values; one bad
	// record must not abort the batch.
	bare := loyverse.Receipt{
		ReceiptNumber: "bare",
		Status:        loyverse.StatusNormal,
		CreatedAt:     time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC),
	}

	takings := aggregateDailyTakings([]loyverse.Receipt{
		bare,
		saleReceipt("2024-03-01", 50, loyverse.Payment{Type: "cash", MoneyAmount: 50}),
	})

	require.Len(t, takings, 1)
	assert.Equal(t, 50.0, takings[0].Total)
	assert.Equal(t, 2, takings[0].ReceiptCount)
	assert.Equal(t, 25.0, takings[0].Average)
}

func TestAggregateEmptyInput(t *testing.T) {
	assert.Empty(t, aggregateDailyTakings(nil))
	assert.Empty(t, aggregateDailyTakings([]loyverse.Receipt{}))
}
