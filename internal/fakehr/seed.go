package fakehr

import (
	"time"

	"github.com/Joseda-hg/hrdesk/internal/model"
)

// Seeded accounts. Every password is "secret".
const (
	EmployeeID   = "E001"
	AdminID      = "A001"
	LeaderID     = "T001"
	HRID         = "H001"
	Password     = "secret"
	EmployeeUser = int64(1)
)

func (s *Server) seed() {
	s.accounts = map[string]*Account{
		EmployeeID: {ID: 1, EmployeeID: EmployeeID, Password: Password, Name: "Alice", Email: "alice@example.com", Role: model.RoleEmployee},
		AdminID:    {ID: 2, EmployeeID: AdminID, Password: Password, Name: "Root", Email: "root@example.com", Role: model.RoleAdmin},
		LeaderID:   {ID: 3, EmployeeID: LeaderID, Password: Password, Name: "Tara", Email: "tara@example.com", Role: model.RoleTeamLeader},
		HRID:       {ID: 4, EmployeeID: HRID, Password: Password, Name: "Hana", Email: "hana@example.com", Role: model.RoleHR},
	}

	s.projects = map[int64]*model.Project{
		1: {
			ID:          1,
			Name:        "Apollo",
			Description: "Payroll migration",
			Team:        []model.Member{{ID: 1, Name: "Alice"}, {ID: 3, Name: "Tara"}},
			Phases: map[string]model.Phase{
				"Design":  {Status: "Completed", Progress: 100},
				"Build":   {Status: "In Progress", Progress: 40},
				"Release": {Status: "Waiting"},
			},
			TotalBudget:    100000,
			UsedBudget:     42000,
			AmountReceived: 60000,
			BudgetDistribution: []model.BudgetStep{
				{Step: "Design", Amount: 20000},
				{Step: "Build", Amount: 60000},
				{Step: "Release", Amount: 20000},
			},
			LaunchDate: model.NewDate(2025, time.December, 1),
			Progress:   45,
			Tasks: []model.Task{
				{ID: 11, Title: "Map salary fields", DueDate: model.NewDate(2025, time.September, 1), AssignedUserID: 1, AssignedUserName: "Alice", Category: "General", Priority: "High"},
				{ID: 12, Title: "Review cutover plan", DueDate: model.NewDate(2025, time.October, 15), AssignedUserID: 3, AssignedUserName: "Tara", Category: "General", Priority: "Medium"},
			},
		},
		2: {
			ID:          2,
			Name:        "Borealis",
			Description: "Office move",
			Team:        []model.Member{{ID: 3, Name: "Tara"}},
			Phases:      map[string]model.Phase{"Planning": {Status: "In Progress", Progress: 10}},
			TotalBudget: 25000,
			LaunchDate:  model.NewDate(2026, time.March, 1),
		},
	}

	s.employees = []model.Employee{
		{ID: 1, EmployeeID: EmployeeID, Name: "Alice", Email: "alice@example.com", Position: "Engineer", Department: "Engineering", Salary: 7000, Status: "Active", Role: model.RoleEmployee, HireDate: model.NewDate(2022, time.March, 1)},
		{ID: 3, EmployeeID: LeaderID, Name: "Tara", Email: "tara@example.com", Position: "Team Lead", Department: "Engineering", Salary: 9500, Status: "Active", Role: model.RoleTeamLeader, HireDate: model.NewDate(2020, time.June, 15)},
		{ID: 4, EmployeeID: HRID, Name: "Hana", Email: "hana@example.com", Position: "HR Partner", Department: "People", Salary: 6500, Status: "Inactive", Role: model.RoleHR, HireDate: model.NewDate(2021, time.January, 10)},
	}

	s.leaves = []model.Leave{
		{ID: 1, EmployeeName: "Tara", StartDate: model.NewDate(2025, time.September, 20), EndDate: model.NewDate(2025, time.September, 22), Reason: "Family event", Status: model.LeavePending},
		{ID: 2, EmployeeName: "Alice", StartDate: model.NewDate(2025, time.August, 4), EndDate: model.NewDate(2025, time.August, 4), Reason: "Dentist", Status: model.LeaveApproved},
	}

	s.monthly = []model.MonthlyAttendance{
		{EmployeeID: 1, Name: "Alice", Department: "Engineering", Present: 19, Absent: 0, Leave: 1, TotalDays: 20},
		{EmployeeID: 3, Name: "Tara", Department: "Engineering", Present: 15, Absent: 3, Leave: 2, TotalDays: 20},
		{EmployeeID: 4, Name: "Hana", Department: "People", Present: 12, Absent: 8, Leave: 0, TotalDays: 20},
	}

	s.reports = []model.FinancialReport{
		{Period: "2025-07", TotalRevenue: 72000, TotalSpending: 48000},
		{Period: "2025-08", TotalRevenue: 67000, TotalSpending: 45000},
	}
	s.entries = []model.FinancialEntry{
		{ID: 1, Date: model.NewDate(2025, time.September, 2), Kind: model.EntryRevenue, Category: "Consulting", Amount: 12000},
		{ID: 2, Date: model.NewDate(2025, time.September, 3), Kind: model.EntrySpending, Category: "Salaries", Amount: 8000},
		{ID: 3, Date: model.NewDate(2025, time.September, 9), Kind: model.EntrySpending, Category: "Rent", Amount: 2500},
	}
}
