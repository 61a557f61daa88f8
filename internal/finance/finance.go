package finance

import (
	"math"
	"sort"

	"github.com/dustin/go-humanize"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/Joseda-hg/hrdesk/internal/model"
)

type Summary struct {
	Revenue   float64 `json:"revenue"`
	Spending  float64 `json:"spending"`
	NetProfit float64 `json:"net_profit"`
	Margin    float64 `json:"margin"`
}

func summary(revenue, spending float64) Summary {
	s := Summary{Revenue: revenue, Spending: spending, NetProfit: revenue - spending}
	if revenue != 0 {
		s.Margin = s.NetProfit / revenue * 100
	}
	return s
}

func Summarize(reports []model.FinancialReport) Summary {
	var revenue, spending float64
	for _, report := range reports {
		revenue += report.TotalRevenue
		spending += report.TotalSpending
	}
	return summary(revenue, spending)
}

func SummarizeEntries(entries []model.FinancialEntry) Summary {
	var revenue, spending float64
	for _, entry := range entries {
		switch entry.Kind {
		case model.EntryRevenue:
			revenue += entry.Amount
		case model.EntrySpending:
			spending += entry.Amount
		}
	}
	return summary(revenue, spending)
}

type CategoryTotal struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
	Share    float64 `json:"share"`
}

// SpendingByCategory totals spending entries, largest first.
func SpendingByCategory(entries []model.FinancialEntry) []CategoryTotal {
	totals := map[string]float64{}
	var all float64
	for _, entry := range entries {
		if entry.Kind != model.EntrySpending {
			continue
		}
		category := entry.Category
		if category == "" {
			category = "Other"
		}
		totals[category] += entry.Amount
		all += entry.Amount
	}

	out := make([]CategoryTotal, 0, len(totals))
	for category, amount := range totals {
		row := CategoryTotal{Category: category, Amount: amount}
		if all > 0 {
			row.Share = amount / all * 100
		}
		out = append(out, row)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Amount != out[j].Amount {
			return out[i].Amount > out[j].Amount
		}
		return out[i].Category < out[j].Category
	})
	return out
}

// Monthly groups entries into one report per YYYY-MM period, oldest first.
func Monthly(entries []model.FinancialEntry) []model.FinancialReport {
	byPeriod := map[string]*model.FinancialReport{}
	for _, entry := range entries {
		if entry.Date.IsZero() {
			continue
		}
		period := entry.Date.Format("2006-01")
		report, ok := byPeriod[period]
		if !ok {
			report = &model.FinancialReport{Period: period}
			byPeriod[period] = report
		}
		switch entry.Kind {
		case model.EntryRevenue:
			report.TotalRevenue += entry.Amount
		case model.EntrySpending:
			report.TotalSpending += entry.Amount
		}
	}

	out := make([]model.FinancialReport, 0, len(byPeriod))
	for _, report := range byPeriod {
		out = append(out, *report)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Period < out[j].Period })
	return out
}

var rupees = message.NewPrinter(language.MustParse("en-IN"))

// FormatINR renders whole rupees with Indian digit grouping, e.g. ₹3,80,000.
func FormatINR(amount float64) string {
	rounded := int64(math.Round(amount))
	if rounded < 0 {
		return "-₹" + rupees.Sprintf("%d", -rounded)
	}
	return "₹" + rupees.Sprintf("%d", rounded)
}

func FormatPercent(value float64) string {
	return humanize.FormatFloat("#,###.#", value) + "%"
}
