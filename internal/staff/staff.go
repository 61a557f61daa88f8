package staff

import (
	"sort"
	"strings"

	"github.com/Joseda-hg/hrdesk/internal/model"
)

const StatusActive = "Active"

type Filter struct {
	Search     string
	Department string
	Status     string
}

// Match reports whether the employee passes the filter. Search looks at
// name, email and position; department and status match exactly, with ""
// or "all" meaning any.
func (f Filter) Match(employee model.Employee) bool {
	if needle := strings.ToLower(strings.TrimSpace(f.Search)); needle != "" {
		fields := []string{employee.Name, employee.Email, employee.Position}
		found := false
		for _, field := range fields {
			if strings.Contains(strings.ToLower(field), needle) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if !wildcard(f.Department) && !strings.EqualFold(employee.Department, f.Department) {
		return false
	}
	if !wildcard(f.Status) && !strings.EqualFold(employee.Status, f.Status) {
		return false
	}
	return true
}

func (f Filter) Apply(employees []model.Employee) []model.Employee {
	out := make([]model.Employee, 0, len(employees))
	for _, employee := range employees {
		if f.Match(employee) {
			out = append(out, employee)
		}
	}
	return out
}

func wildcard(value string) bool {
	value = strings.TrimSpace(value)
	return value == "" || strings.EqualFold(value, "all")
}

type Stats struct {
	Total       int     `json:"total"`
	Active      int     `json:"active"`
	Departments int     `json:"departments"`
	Payroll     float64 `json:"payroll"`
}

func Summarize(employees []model.Employee) Stats {
	stats := Stats{Total: len(employees)}
	departments := map[string]struct{}{}
	for _, employee := range employees {
		if employee.Status == StatusActive {
			stats.Active++
		}
		departments[employee.Department] = struct{}{}
		stats.Payroll += employee.Salary
	}
	stats.Departments = len(departments)
	return stats
}

func Departments(employees []model.Employee) []string {
	seen := map[string]struct{}{}
	var out []string
	for _, employee := range employees {
		if employee.Department == "" {
			continue
		}
		if _, ok := seen[employee.Department]; ok {
			continue
		}
		seen[employee.Department] = struct{}{}
		out = append(out, employee.Department)
	}
	sort.Strings(out)
	return out
}
