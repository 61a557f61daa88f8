package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/Joseda-hg/hrdesk/internal/model"
)

func TestAttendanceAndFinanceSheets(t *testing.T) {
	book, err := NewWorkbook()
	require.NoError(t, err)
	defer book.Close()

	rows := []model.MonthlyAttendance{
		{Name: "Alice", Department: "Engineering", Present: 19, Absent: 1, Leave: 0, TotalDays: 20},
		{Name: "Tara", Department: "Design", Present: 12, Absent: 6, Leave: 2, TotalDays: 20},
	}
	require.NoError(t, book.AddAttendance("2025-09", rows))
	require.NoError(t, book.AddFinance([]model.FinancialEntry{
		{Date: model.NewDate(2025, time.September, 2), Kind: model.EntryRevenue, Category: "Consulting", Amount: 12000},
		{Date: model.NewDate(2025, time.September, 3), Kind: model.EntrySpending, Category: "Salaries", Amount: 8000},
	}))

	var buf bytes.Buffer
	_, err = book.WriteTo(&buf)
	require.NoError(t, err)

	file, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer file.Close()

	assert.Equal(t, []string{AttendanceSheet, FinanceSheet}, file.GetSheetList())

	got, err := file.GetRows(AttendanceSheet)
	require.NoError(t, err)
	require.Len(t, got, 5)
	assert.Equal(t, "Attendance 2025-09", got[0][0])
	assert.Equal(t, "Rate %", got[1][6])
	assert.Equal(t, []string{"Alice", "Engineering", "19", "1", "0", "20", "95", "high"}, got[2])
	assert.Equal(t, "low", got[3][7])
	assert.Equal(t, "Average", got[4][0])
	assert.Equal(t, "77.5", got[4][6])

	money, err := file.GetRows(FinanceSheet)
	require.NoError(t, err)
	assert.Equal(t, "Salaries", money[2][2])
	assert.Equal(t, "Net profit", money[6][0])
	assert.Equal(t, "4000", money[6][3])
}
