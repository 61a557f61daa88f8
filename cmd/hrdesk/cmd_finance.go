package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Joseda-hg/hrdesk/internal/finance"
	"github.com/Joseda-hg/hrdesk/internal/model"
	"github.com/Joseda-hg/hrdesk/internal/report"
)

func newFinanceCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "finance",
		Short: "Revenue, spending and profit reports",
	}
	cmd.AddCommand(newFinanceSummaryCmd(a))
	cmd.AddCommand(newFinanceEntriesCmd(a))
	cmd.AddCommand(newFinanceAddCmd(a))
	cmd.AddCommand(newFinanceRecordCmd(a))
	return cmd
}

func newFinanceSummaryCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Totals across the recorded financial reports",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := a.requireSession(cmd.Context())
			if err != nil {
				return err
			}
			reports, err := a.client.FinancialReports(cmd.Context(), sess)
			if err != nil {
				return err
			}
			out := struct {
				Summary finance.Summary         `json:"summary"`
				Periods []model.FinancialReport `json:"periods"`
			}{finance.Summarize(reports), reports}

			return a.print(cmd, out, func(w io.Writer) error {
				rows := make([][]string, 0, len(reports))
				for _, r := range reports {
					period := finance.Summarize([]model.FinancialReport{r})
					rows = append(rows, []string{
						r.Period,
						finance.FormatINR(period.Revenue),
						finance.FormatINR(period.Spending),
						finance.FormatINR(period.NetProfit),
						finance.FormatPercent(period.Margin),
					})
				}
				if err := table(w, []string{"PERIOD", "REVENUE", "SPENDING", "NET", "MARGIN"}, rows); err != nil {
					return err
				}
				return writeSummary(w, out.Summary)
			})
		},
	}
}

func writeSummary(w io.Writer, s finance.Summary) error {
	_, err := fmt.Fprintf(w, "Revenue %s, spending %s, net profit %s, margin %s\n",
		finance.FormatINR(s.Revenue), finance.FormatINR(s.Spending), finance.FormatINR(s.NetProfit), finance.FormatPercent(s.Margin))
	return err
}

func newFinanceEntriesCmd(a *app) *cobra.Command {
	var from, to, export string
	cmd := &cobra.Command{
		Use:   "entries",
		Short: "List revenue and spending entries with a category breakdown",
		RunE: func(cmd *cobra.Command, args []string) error {
			var start, end model.Date
			var err error
			if from != "" {
				if start, err = model.ParseDate(from); err != nil {
					return err
				}
			}
			if to != "" {
				if end, err = model.ParseDate(to); err != nil {
					return err
				}
			}
			sess, err := a.requireSession(cmd.Context())
			if err != nil {
				return err
			}
			entries, err := a.client.FinancialEntries(cmd.Context(), sess, start, end)
			if err != nil {
				return err
			}
			if export != "" {
				if err := exportFinance(export, entries); err != nil {
					return err
				}
				a.recordActivity(cmd, "export", export)
			}

			out := struct {
				Entries    []model.FinancialEntry  `json:"entries"`
				Summary    finance.Summary         `json:"summary"`
				Categories []finance.CategoryTotal `json:"spending_by_category"`
				Monthly    []model.FinancialReport `json:"monthly"`
			}{entries, finance.SummarizeEntries(entries), finance.SpendingByCategory(entries), finance.Monthly(entries)}

			return a.print(cmd, out, func(w io.Writer) error {
				rows := make([][]string, 0, len(entries))
				for _, e := range entries {
					rows = append(rows, []string{
						strconv.FormatInt(e.ID, 10),
						e.Date.String(),
						string(e.Kind),
						e.Category,
						finance.FormatINR(e.Amount),
						e.Note,
					})
				}
				if err := table(w, []string{"ID", "DATE", "KIND", "CATEGORY", "AMOUNT", "NOTE"}, rows); err != nil {
					return err
				}
				if len(out.Categories) > 0 {
					fmt.Fprintln(w, "Spending by category")
					for _, c := range out.Categories {
						fmt.Fprintf(w, "  %-16s %s (%s)\n", c.Category, finance.FormatINR(c.Amount), finance.FormatPercent(c.Share))
					}
				}
				if export != "" {
					fmt.Fprintf(w, "Exported to %s\n", export)
				}
				return writeSummary(w, out.Summary)
			})
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "first day (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "last day (YYYY-MM-DD)")
	cmd.Flags().StringVar(&export, "export", "", "write the entries to this .xlsx file")
	return cmd
}

func exportFinance(path string, entries []model.FinancialEntry) error {
	book, err := report.NewWorkbook()
	if err != nil {
		return err
	}
	defer book.Close()
	if err := book.AddFinance(entries); err != nil {
		return err
	}
	return book.SaveAs(path)
}

func newFinanceAddCmd(a *app) *cobra.Command {
	var (
		entry model.FinancialEntry
		date  string
		kind  string
	)
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a revenue or spending entry",
		RunE: func(cmd *cobra.Command, args []string) error {
			entry.Kind = model.EntryKind(kind)
			entry.Date = model.DateOf(a.now())
			if date != "" {
				parsed, err := model.ParseDate(date)
				if err != nil {
					return err
				}
				entry.Date = parsed
			}
			sess, err := a.requireSession(cmd.Context())
			if err != nil {
				return err
			}
			created, err := a.client.AddEntry(cmd.Context(), sess, entry)
			if err != nil {
				return err
			}
			a.recordActivity(cmd, "finance-entry", fmt.Sprintf("%s %s %s", created.Kind, created.Category, finance.FormatINR(created.Amount)))
			return a.print(cmd, created, message("Recorded %s %s of %s", created.Category, created.Kind, finance.FormatINR(created.Amount)))
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "entry date (defaults to today)")
	cmd.Flags().StringVar(&kind, "kind", string(model.EntrySpending), "revenue or spending")
	cmd.Flags().StringVar(&entry.Category, "category", "", "category such as Salaries or Rent")
	cmd.Flags().Float64Var(&entry.Amount, "amount", 0, "amount in rupees")
	cmd.Flags().StringVar(&entry.Note, "note", "", "free text note")
	_ = cmd.MarkFlagRequired("category")
	_ = cmd.MarkFlagRequired("amount")
	return cmd
}

func newFinanceRecordCmd(a *app) *cobra.Command {
	var r model.FinancialReport
	cmd := &cobra.Command{
		Use:   "record",
		Short: "Record the totals for a reporting period",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := a.requireSession(cmd.Context())
			if err != nil {
				return err
			}
			if err := a.client.RecordReport(cmd.Context(), sess, r); err != nil {
				return err
			}
			a.recordActivity(cmd, "finance-report", r.Period)
			s := finance.Summarize([]model.FinancialReport{r})
			return a.print(cmd, r, func(w io.Writer) error {
				fmt.Fprintf(w, "Recorded %s\n", r.Period)
				return writeSummary(w, s)
			})
		},
	}
	cmd.Flags().StringVar(&r.Period, "period", "", "period label such as 2025-09")
	cmd.Flags().Float64Var(&r.TotalRevenue, "revenue", 0, "total revenue")
	cmd.Flags().Float64Var(&r.TotalSpending, "spending", 0, "total spending")
	_ = cmd.MarkFlagRequired("period")
	return cmd
}
