package report

import (
	"fmt"
	"io"
	"math"

	"github.com/xuri/excelize/v2"

	"github.com/Joseda-hg/hrdesk/internal/attendance"
	"github.com/Joseda-hg/hrdesk/internal/finance"
	"github.com/Joseda-hg/hrdesk/internal/model"
)

const (
	AttendanceSheet = "Attendance"
	FinanceSheet    = "Finance"
)

var attendanceHeader = []any{"Employee", "Department", "Present", "Absent", "Leave", "Total days", "Rate %", "Band"}

var financeHeader = []any{"Date", "Kind", "Category", "Amount", "Note"}

// Workbook collects the sheets of one export before it is written out.
type Workbook struct {
	file *excelize.File
	bold int
	used bool
}

func NewWorkbook() (*Workbook, error) {
	file := excelize.NewFile()
	bold, err := file.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("header style: %w", err)
	}
	return &Workbook{file: file, bold: bold}, nil
}

// AddAttendance writes the monthly rollup with a title row naming the month
// and a trailing average row.
func (w *Workbook) AddAttendance(month string, rows []model.MonthlyAttendance) error {
	if err := w.sheet(AttendanceSheet); err != nil {
		return err
	}
	if err := w.file.SetSheetRow(AttendanceSheet, "A1", &[]any{"Attendance " + month}); err != nil {
		return err
	}
	if err := w.header(AttendanceSheet, 2, attendanceHeader); err != nil {
		return err
	}

	for i, row := range rows {
		rate := attendance.Rate(row)
		values := []any{row.Name, row.Department, row.Present, row.Absent, row.Leave, row.TotalDays, round1(rate), string(attendance.BandOf(rate))}
		if err := w.row(AttendanceSheet, i+3, values); err != nil {
			return err
		}
	}

	stats := attendance.SummarizeRollup(rows)
	footer := []any{"Average", "", "", "", "", "", round1(stats.AverageRate)}
	if err := w.row(AttendanceSheet, len(rows)+3, footer); err != nil {
		return err
	}
	return w.file.SetColWidth(AttendanceSheet, "A", "B", 22)
}

func (w *Workbook) AddFinance(entries []model.FinancialEntry) error {
	if err := w.sheet(FinanceSheet); err != nil {
		return err
	}
	if err := w.header(FinanceSheet, 1, financeHeader); err != nil {
		return err
	}
	for i, entry := range entries {
		values := []any{entry.Date.String(), string(entry.Kind), entry.Category, entry.Amount, entry.Note}
		if err := w.row(FinanceSheet, i+2, values); err != nil {
			return err
		}
	}

	summary := finance.SummarizeEntries(entries)
	next := len(entries) + 3
	totals := [][]any{
		{"Revenue", "", "", summary.Revenue},
		{"Spending", "", "", summary.Spending},
		{"Net profit", "", "", summary.NetProfit},
		{"Margin %", "", "", round1(summary.Margin)},
	}
	for i, values := range totals {
		if err := w.row(FinanceSheet, next+i, values); err != nil {
			return err
		}
	}
	return nil
}

func (w *Workbook) WriteTo(out io.Writer) (int64, error) {
	return w.file.WriteTo(out)
}

func (w *Workbook) SaveAs(path string) error {
	return w.file.SaveAs(path)
}

func (w *Workbook) Close() error {
	return w.file.Close()
}

// sheet reuses the default sheet for the first export and appends the rest.
func (w *Workbook) sheet(name string) error {
	if !w.used {
		w.used = true
		return w.file.SetSheetName(w.file.GetSheetName(0), name)
	}
	if _, err := w.file.NewSheet(name); err != nil {
		return fmt.Errorf("sheet %s: %w", name, err)
	}
	return nil
}

func (w *Workbook) header(sheet string, rowNum int, values []any) error {
	if err := w.row(sheet, rowNum, values); err != nil {
		return err
	}
	return w.file.SetRowStyle(sheet, rowNum, rowNum, w.bold)
}

func (w *Workbook) row(sheet string, rowNum int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return err
	}
	if err := w.file.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("write %s!%s: %w", sheet, cell, err)
	}
	return nil
}

func round1(value float64) float64 {
	return math.Round(value*10) / 10
}
