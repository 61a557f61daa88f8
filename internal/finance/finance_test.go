package finance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Joseda-hg/hrdesk/internal/model"
)

func TestSummarize(t *testing.T) {
	s := Summarize([]model.FinancialReport{
		{Period: "2025-07", TotalRevenue: 200000, TotalSpending: 150000},
		{Period: "2025-08", TotalRevenue: 180000, TotalSpending: 130000},
	})
	assert.Equal(t, 380000.0, s.Revenue)
	assert.Equal(t, 100000.0, s.NetProfit)
	assert.InDelta(t, 26.3, s.Margin, 0.05)

	assert.Equal(t, Summary{}, Summarize(nil))
	assert.Equal(t, Summary{Spending: 10, NetProfit: -10}, Summarize([]model.FinancialReport{{TotalSpending: 10}}))
}

func TestEntriesBreakdown(t *testing.T) {
	entries := []model.FinancialEntry{
		{Date: model.NewDate(2025, time.August, 30), Kind: model.EntryRevenue, Amount: 5000},
		{Date: model.NewDate(2025, time.September, 2), Kind: model.EntryRevenue, Category: "Consulting", Amount: 12000},
		{Date: model.NewDate(2025, time.September, 3), Kind: model.EntrySpending, Category: "Salaries", Amount: 6000},
		{Date: model.NewDate(2025, time.September, 9), Kind: model.EntrySpending, Category: "Rent", Amount: 2000},
		{Date: model.NewDate(2025, time.September, 10), Kind: model.EntrySpending, Amount: 2000},
	}

	s := SummarizeEntries(entries)
	assert.Equal(t, 17000.0, s.Revenue)
	assert.Equal(t, 10000.0, s.Spending)

	categories := SpendingByCategory(entries)
	require.Len(t, categories, 3)
	assert.Equal(t, "Salaries", categories[0].Category)
	assert.InDelta(t, 60.0, categories[0].Share, 0.001)
	assert.Equal(t, "Other", categories[1].Category)
	assert.Equal(t, "Rent", categories[2].Category)

	monthly := Monthly(entries)
	require.Len(t, monthly, 2)
	assert.Equal(t, model.FinancialReport{Period: "2025-08", TotalRevenue: 5000}, monthly[0])
	assert.Equal(t, model.FinancialReport{Period: "2025-09", TotalRevenue: 12000, TotalSpending: 10000}, monthly[1])
}

func TestFormatINR(t *testing.T) {
	assert.Equal(t, "₹0", FormatINR(0))
	assert.Equal(t, "₹999", FormatINR(999.4))
	assert.Equal(t, "₹1,000", FormatINR(1000))
	assert.Equal(t, "₹3,80,000", FormatINR(380000))
	assert.Equal(t, "₹1,23,45,678", FormatINR(12345678))
	assert.Equal(t, "-₹45,000", FormatINR(-45000))
	assert.Equal(t, "₹12,34,567", FormatINR(1234566.6))
	assert.Equal(t, "26.3%", FormatPercent(26.3157))
}
