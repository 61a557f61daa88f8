package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Joseda-hg/hrdesk/internal/attendance"
	"github.com/Joseda-hg/hrdesk/internal/finance"
	"github.com/Joseda-hg/hrdesk/internal/model"
	"github.com/Joseda-hg/hrdesk/internal/report"
	"github.com/Joseda-hg/hrdesk/internal/staff"
)

func newAdminCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Staff records and organisation attendance",
	}
	cmd.AddCommand(newEmployeesCmd(a))
	cmd.AddCommand(newAdminAttendanceCmd(a))
	return cmd
}

func newEmployeesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "employees",
		Aliases: []string{"staff"},
		Short:   "Manage employee records",
	}
	cmd.AddCommand(newEmployeesListCmd(a))
	cmd.AddCommand(newEmployeesAddCmd(a))
	cmd.AddCommand(newEmployeesUpdateCmd(a))
	cmd.AddCommand(newEmployeesRemoveCmd(a))
	return cmd
}

func newEmployeesListCmd(a *app) *cobra.Command {
	var filter staff.Filter
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List employees with headcount and payroll totals",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := a.requireSession(cmd.Context())
			if err != nil {
				return err
			}
			employees, err := a.client.Employees(cmd.Context(), sess)
			if err != nil {
				return err
			}
			matched := filter.Apply(employees)
			out := struct {
				Employees []model.Employee `json:"employees"`
				Stats     staff.Stats      `json:"stats"`
			}{matched, staff.Summarize(matched)}

			return a.print(cmd, out, func(w io.Writer) error {
				rows := make([][]string, 0, len(matched))
				for _, e := range matched {
					rows = append(rows, []string{
						strconv.FormatInt(e.ID, 10),
						e.EmployeeID,
						e.Name,
						e.Position,
						e.Department,
						e.Status,
						finance.FormatINR(e.Salary),
					})
				}
				if err := table(w, []string{"ID", "EMPLOYEE", "NAME", "POSITION", "DEPARTMENT", "STATUS", "SALARY"}, rows); err != nil {
					return err
				}
				_, err := fmt.Fprintf(w, "%d employees, %d active, %d departments, payroll %s\n",
					out.Stats.Total, out.Stats.Active, out.Stats.Departments, finance.FormatINR(out.Stats.Payroll))
				return err
			})
		},
	}
	cmd.Flags().StringVar(&filter.Search, "search", "", "match name, email or position")
	cmd.Flags().StringVar(&filter.Department, "department", "", "department, or all")
	cmd.Flags().StringVar(&filter.Status, "status", "", "Active, Inactive or all")
	return cmd
}

type employeeFlags struct {
	employee model.Employee
	hireDate string
	role     string
}

func (f *employeeFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVar(&f.employee.EmployeeID, "employee-id", "", "login id such as E042")
	flags.StringVar(&f.employee.Name, "name", "", "full name")
	flags.StringVar(&f.employee.Email, "email", "", "email address")
	flags.StringVar(&f.employee.Phone, "phone", "", "phone number")
	flags.StringVar(&f.employee.Position, "position", "", "job title")
	flags.StringVar(&f.employee.Department, "department", "", "department")
	flags.Float64Var(&f.employee.Salary, "salary", 0, "monthly salary")
	flags.StringVar(&f.hireDate, "hire-date", "", "hire date (YYYY-MM-DD)")
	flags.StringVar(&f.employee.Status, "status", "", "Active or Inactive")
	flags.StringVar(&f.employee.Location, "location", "", "office location")
	flags.StringVar(&f.role, "role", "", "ADMIN, HR, EMPLOYEE or TEAM LEADER")
}

// apply copies every flag set on cmd onto target.
func (f *employeeFlags) apply(cmd *cobra.Command, target *model.Employee) error {
	changed := cmd.Flags().Changed
	set := f.employee
	if changed("employee-id") {
		target.EmployeeID = set.EmployeeID
	}
	if changed("name") {
		target.Name = set.Name
	}
	if changed("email") {
		target.Email = set.Email
	}
	if changed("phone") {
		target.Phone = set.Phone
	}
	if changed("position") {
		target.Position = set.Position
	}
	if changed("department") {
		target.Department = set.Department
	}
	if changed("salary") {
		target.Salary = set.Salary
	}
	if changed("status") {
		target.Status = set.Status
	}
	if changed("location") {
		target.Location = set.Location
	}
	if changed("role") {
		target.Role = model.Role(f.role)
	}
	if changed("hire-date") {
		hired, err := model.ParseDate(f.hireDate)
		if err != nil {
			return err
		}
		target.HireDate = hired
	}
	return nil
}

func newEmployeesAddCmd(a *app) *cobra.Command {
	var flags employeeFlags
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an employee",
		RunE: func(cmd *cobra.Command, args []string) error {
			employee := model.Employee{Status: staff.StatusActive, Role: model.RoleEmployee}
			if err := flags.apply(cmd, &employee); err != nil {
				return err
			}
			sess, err := a.requireSession(cmd.Context())
			if err != nil {
				return err
			}
			created, err := a.client.AddEmployee(cmd.Context(), sess, employee)
			if err != nil {
				return err
			}
			a.recordActivity(cmd, "employee-added", created.Name)
			return a.print(cmd, created, message("Added %s (#%d)", created.Name, created.ID))
		},
	}
	flags.register(cmd)
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func newEmployeesUpdateCmd(a *app) *cobra.Command {
	var flags employeeFlags
	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Change fields of an employee record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			sess, err := a.requireSession(cmd.Context())
			if err != nil {
				return err
			}
			employees, err := a.client.Employees(cmd.Context(), sess)
			if err != nil {
				return err
			}
			employee, ok := findEmployee(employees, id)
			if !ok {
				return fmt.Errorf("employee %d not found", id)
			}
			if err := flags.apply(cmd, &employee); err != nil {
				return err
			}
			updated, err := a.client.UpdateEmployee(cmd.Context(), sess, employee)
			if err != nil {
				return err
			}
			a.recordActivity(cmd, "employee-updated", updated.Name)
			return a.print(cmd, updated, message("Updated %s", updated.Name))
		},
	}
	flags.register(cmd)
	return cmd
}

func newEmployeesRemoveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "remove ID",
		Short: "Remove an employee",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			sess, err := a.requireSession(cmd.Context())
			if err != nil {
				return err
			}
			if err := a.client.RemoveEmployee(cmd.Context(), sess, id); err != nil {
				return err
			}
			a.recordActivity(cmd, "employee-removed", strconv.FormatInt(id, 10))
			return a.print(cmd, map[string]int64{"removed": id}, message("Removed employee %d", id))
		},
	}
}

func findEmployee(employees []model.Employee, id int64) (model.Employee, bool) {
	for _, e := range employees {
		if e.ID == id {
			return e, true
		}
	}
	return model.Employee{}, false
}

func newAdminAttendanceCmd(a *app) *cobra.Command {
	var month, search, band, export string
	cmd := &cobra.Command{
		Use:   "attendance",
		Short: "Monthly attendance for every employee, optionally exported to xlsx",
		RunE: func(cmd *cobra.Command, args []string) error {
			if month == "" {
				month = a.now().Format("2006-01")
			}
			from, to, err := attendance.MonthRange(month)
			if err != nil {
				return err
			}
			wanted, err := attendance.ParseBand(band)
			if err != nil {
				return err
			}
			sess, err := a.requireSession(cmd.Context())
			if err != nil {
				return err
			}
			rows, err := a.client.MonthlyAttendance(cmd.Context(), sess, from, to)
			if err != nil {
				return err
			}
			rows = attendance.FilterRollup(rows, search, wanted)
			stats := attendance.SummarizeRollup(rows)

			if export != "" {
				if err := exportAttendance(export, month, rows); err != nil {
					return err
				}
				a.recordActivity(cmd, "export", export)
			}

			out := struct {
				Month string                    `json:"month"`
				Rows  []model.MonthlyAttendance `json:"rows"`
				Stats attendance.RollupStats    `json:"stats"`
			}{month, rows, stats}
			return a.print(cmd, out, func(w io.Writer) error {
				lines := make([][]string, 0, len(rows))
				for _, row := range rows {
					rate := attendance.Rate(row)
					lines = append(lines, []string{
						row.Name,
						row.Department,
						strconv.Itoa(row.Present),
						strconv.Itoa(row.Absent),
						strconv.Itoa(row.Leave),
						strconv.Itoa(row.TotalDays),
						finance.FormatPercent(rate),
						string(attendance.BandOf(rate)),
					})
				}
				if err := table(w, []string{"EMPLOYEE", "DEPARTMENT", "PRESENT", "ABSENT", "LEAVE", "DAYS", "RATE", "BAND"}, lines); err != nil {
					return err
				}
				fmt.Fprintf(w, "%d employees, average %s\n", stats.Employees, finance.FormatPercent(stats.AverageRate))
				if export != "" {
					fmt.Fprintf(w, "Exported to %s\n", export)
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&month, "month", "", "month as YYYY-MM (defaults to the current month)")
	cmd.Flags().StringVar(&search, "search", "", "match employee name")
	cmd.Flags().StringVar(&band, "band", "all", "high, medium, low or all")
	cmd.Flags().StringVar(&export, "export", "", "write the rows to this .xlsx file")
	return cmd
}

func exportAttendance(path, month string, rows []model.MonthlyAttendance) error {
	book, err := report.NewWorkbook()
	if err != nil {
		return err
	}
	defer book.Close()
	if err := book.AddAttendance(month, rows); err != nil {
		return err
	}
	return book.SaveAs(path)
}
