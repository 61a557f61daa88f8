package model

import "time"

type Role string

const (
	RoleAdmin      Role = "ADMIN"
	RoleHR         Role = "HR"
	RoleEmployee   Role = "EMPLOYEE"
	RoleTeamLeader Role = "TEAM LEADER"
)

// IsManagement reports whether the role sees every project instead of the
// team-scoped list.
func (r Role) IsManagement() bool {
	return r == RoleAdmin || r == RoleTeamLeader
}

func (r Role) CanManageStaff() bool {
	return r == RoleAdmin || r == RoleHR
}

func (r Role) CanApproveLeave() bool {
	return r == RoleAdmin || r == RoleHR
}

type User struct {
	ID   int64  `json:"id,omitempty"`
	Name string `json:"name"`
	Role Role   `json:"role"`
}

type AttendanceRecord struct {
	ID         string     `json:"id,omitempty"`
	CheckInAt  *time.Time `json:"check_in_at"`
	CheckOutAt *time.Time `json:"check_out_at"`
	Status     string     `json:"status"`
}

type MonthlyAttendance struct {
	EmployeeID int64  `json:"id"`
	Name       string `json:"name"`
	Department string `json:"department,omitempty"`
	Present    int    `json:"present"`
	Absent     int    `json:"absent"`
	Leave      int    `json:"leave"`
	TotalDays  int    `json:"totalDays"`
}

type LoginResult struct {
	Token string `json:"token"`
	Role  Role   `json:"role"`
}

// LeaveRequest is an application for leave. Document is a local file path
// attached to the upload when set.
type LeaveRequest struct {
	StartDate Date   `validate:"-"`
	EndDate   Date   `validate:"-"`
	Reason    string `validate:"required"`
	Document  string `validate:"omitempty,file"`
}

type LeaveStatus string

const (
	LeavePending  LeaveStatus = "PENDING"
	LeaveApproved LeaveStatus = "APPROVED"
	LeaveRejected LeaveStatus = "REJECTED"
)

type Leave struct {
	ID           int64       `json:"id"`
	EmployeeName string      `json:"employee_name"`
	StartDate    Date        `json:"start_date"`
	EndDate      Date        `json:"end_date"`
	Reason       string      `json:"reason"`
	DocumentURL  string      `json:"document_url,omitempty"`
	Status       LeaveStatus `json:"status"`
}

type Member struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Task struct {
	ID               int64  `json:"id"`
	Title            string `json:"title"`
	Description      string `json:"description"`
	DueDate          Date   `json:"due_date"`
	AssignedUserID   int64  `json:"user_id"`
	AssignedUserName string `json:"assigned_user_name"`
	Category         string `json:"category"`
	Priority         string `json:"priority"`
}

// TaskDraft is the body for adding a task to a project.
type TaskDraft struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	DueDate     Date   `json:"dueDate"`
	UserID      int64  `json:"userId" validate:"required"`
	Category    string `json:"category"`
	Priority    string `json:"priority"`
}

type Phase struct {
	Status   string `json:"status"`
	Progress int    `json:"progress"`
}

type BudgetStep struct {
	Step   string  `json:"step"`
	Amount float64 `json:"amount"`
}

type Project struct {
	ID                 int64            `json:"id"`
	Name               string           `json:"name"`
	Description        string           `json:"description"`
	Team               []Member         `json:"team"`
	Phases             map[string]Phase `json:"phases"`
	TotalBudget        float64          `json:"total_budget"`
	UsedBudget         float64          `json:"used_budget"`
	AmountReceived     float64          `json:"amount_received"`
	BudgetDistribution []BudgetStep     `json:"budget_distribution"`
	LaunchDate         Date             `json:"launch_date"`
	Progress           int              `json:"progress"`
	Tasks              []Task           `json:"tasklist"`
}

type ProjectDraft struct {
	Name          string  `json:"name" validate:"required"`
	Description   string  `json:"description"`
	LaunchDate    Date    `json:"launch_date"`
	TeamMemberIDs []int64 `json:"teamMemberIds"`
}

type BudgetUpdate struct {
	TotalBudget    float64      `json:"totalBudget" validate:"gte=0"`
	UsedBudget     float64      `json:"usedBudget" validate:"gte=0"`
	AmountReceived float64      `json:"amountReceived" validate:"gte=0"`
	TargetBudget   float64      `json:"targetBudget" validate:"gte=0"`
	Distribution   []BudgetStep `json:"budget_distribution"`
}

type Employee struct {
	ID         int64   `json:"id"`
	EmployeeID string  `json:"employeeId"`
	Name       string  `json:"name" validate:"required"`
	Email      string  `json:"email" validate:"required,email"`
	Phone      string  `json:"phone"`
	Position   string  `json:"position"`
	Department string  `json:"department"`
	Salary     float64 `json:"salary" validate:"gte=0"`
	HireDate   Date    `json:"hireDate"`
	Status     string  `json:"status" validate:"omitempty,oneof=Active Inactive"`
	Location   string  `json:"location"`
	Role       Role    `json:"role" validate:"omitempty,oneof=ADMIN HR EMPLOYEE 'TEAM LEADER'"`
}

type EntryKind string

const (
	EntryRevenue  EntryKind = "revenue"
	EntrySpending EntryKind = "spending"
)

type FinancialEntry struct {
	ID       int64     `json:"id"`
	Date     Date      `json:"date"`
	Kind     EntryKind `json:"kind" validate:"oneof=revenue spending"`
	Category string    `json:"category" validate:"required"`
	Amount   float64   `json:"amount" validate:"gt=0"`
	Note     string    `json:"note,omitempty"`
}

type FinancialReport struct {
	Period        string  `json:"period" validate:"required"`
	TotalRevenue  float64 `json:"total_revenue" validate:"gte=0"`
	TotalSpending float64 `json:"total_spending" validate:"gte=0"`
}

type SavedSession struct {
	Token     string
	Role      Role
	Name      string
	Remember  bool
	CreatedAt time.Time
}

type Activity struct {
	ID        int64
	Kind      string
	Details   string
	CreatedAt time.Time
}

// Todo is a personal task kept in the local store, separate from project
// tasks on the server.
type Todo struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Category    string     `json:"category"`
	Priority    string     `json:"priority"`
	DueAt       *time.Time `json:"due_at,omitempty"`
	Completed   bool       `json:"completed"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type TodoInput struct {
	Title       string
	Description string
	Category    string
	Priority    string
	DueAt       *time.Time
}

type TodoStatus string

const (
	TodoAll       TodoStatus = "all"
	TodoPending   TodoStatus = "pending"
	TodoCompleted TodoStatus = "completed"
)

type TodoFilter struct {
	Query  string
	Status TodoStatus
}

type TodoCounts struct {
	Completed int `json:"completed"`
	Total     int `json:"total"`
}

var (
	TodoCategories = []string{"Coding", "Design", "Marketing", "Personal"}
	TodoPriorities = []string{"Low", "Medium", "High"}
)
