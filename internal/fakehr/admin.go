package fakehr

import (
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"

	"github.com/Joseda-hg/hrdesk/internal/model"
)

func (s *Server) listEmployees(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.JSON(http.StatusOK, s.employees)
}

func (s *Server) addEmployee(c *gin.Context) {
	var employee model.Employee
	if err := c.ShouldBindJSON(&employee); err != nil || employee.Name == "" {
		abort(c, http.StatusBadRequest, "name is required")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	employee.ID = s.id()
	s.employees = append(s.employees, employee)
	c.JSON(http.StatusCreated, employee)
}

func (s *Server) updateEmployee(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var employee model.Employee
	if err := c.ShouldBindJSON(&employee); err != nil {
		abort(c, http.StatusBadRequest, "invalid body")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.employees {
		if s.employees[i].ID == id {
			employee.ID = id
			s.employees[i] = employee
			c.JSON(http.StatusOK, employee)
			return
		}
	}
	abort(c, http.StatusNotFound, "Employee not found")
}

func (s *Server) removeEmployee(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	before := len(s.employees)
	s.employees = slices.DeleteFunc(s.employees, func(e model.Employee) bool { return e.ID == id })
	if len(s.employees) == before {
		abort(c, http.StatusNotFound, "Employee not found")
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) monthlyAttendance(c *gin.Context) {
	if c.Query("from") == "" || c.Query("to") == "" {
		abort(c, http.StatusBadRequest, "from and to are required")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	c.JSON(http.StatusOK, s.monthly)
}

func (s *Server) listReports(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.JSON(http.StatusOK, s.reports)
}

func (s *Server) recordReport(c *gin.Context) {
	var report model.FinancialReport
	if err := c.ShouldBindJSON(&report); err != nil || report.Period == "" {
		abort(c, http.StatusBadRequest, "period is required")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reports = append(s.reports, report)
	c.JSON(http.StatusCreated, report)
}

func (s *Server) listEntries(c *gin.Context) {
	from, to := c.Query("from"), c.Query("to")
	s.mu.Lock()
	defer s.mu.Unlock()
	entries := []model.FinancialEntry{}
	for _, entry := range s.entries {
		day := entry.Date.String()
		if (from != "" && day < from) || (to != "" && day > to) {
			continue
		}
		entries = append(entries, entry)
	}
	c.JSON(http.StatusOK, entries)
}

func (s *Server) addEntry(c *gin.Context) {
	var entry model.FinancialEntry
	if err := c.ShouldBindJSON(&entry); err != nil || entry.Amount <= 0 {
		abort(c, http.StatusBadRequest, "amount must be positive")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	entry.ID = s.id()
	s.entries = append(s.entries, entry)
	c.JSON(http.StatusCreated, entry)
}
