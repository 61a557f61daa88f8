package staff

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Joseda-hg/hrdesk/internal/model"
)

var employees = []model.Employee{
	{ID: 1, Name: "Alice", Email: "alice@example.com", Position: "Engineer", Department: "Engineering", Salary: 7000, Status: "Active"},
	{ID: 2, Name: "Tara", Email: "tara@example.com", Position: "Team Lead", Department: "Engineering", Salary: 9500, Status: "Active"},
	{ID: 3, Name: "Hana", Email: "hana@example.com", Position: "HR Partner", Department: "People", Salary: 6500, Status: "Inactive"},
}

func TestFilter(t *testing.T) {
	assert.Len(t, Filter{}.Apply(employees), 3)
	assert.Len(t, Filter{Search: "ENGINEER"}.Apply(employees), 1)
	assert.Len(t, Filter{Search: "example.com", Department: "engineering"}.Apply(employees), 2)
	assert.Len(t, Filter{Department: "all", Status: "Inactive"}.Apply(employees), 1)
	assert.Empty(t, Filter{Search: "lead", Status: "Inactive"}.Apply(employees))
}

func TestSummarize(t *testing.T) {
	stats := Summarize(employees)
	assert.Equal(t, Stats{Total: 3, Active: 2, Departments: 2, Payroll: 23000}, stats)
	assert.Equal(t, Stats{}, Summarize(nil))
	assert.Equal(t, []string{"Engineering", "People"}, Departments(employees))
}
