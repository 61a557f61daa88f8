package fakehr

import (
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Joseda-hg/hrdesk/internal/model"
)

const accountKey = "account"

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.record, s.inject)

	api := r.Group("/api")
	api.POST("/auth/login", s.login)
	api.POST("/auth/forgot-password", s.forgotPassword)
	api.POST("/auth/reset-password/:token", s.resetPassword)

	authed := api.Group("", s.authenticate)
	authed.GET("/me", s.me)

	authed.GET("/attendance/me", s.myAttendance)
	authed.POST("/attendance/check-in", s.checkIn)
	authed.POST("/attendance/check-out", s.checkOut)

	authed.GET("/leaves/apply", s.myLeaves)
	authed.POST("/leaves/apply", s.applyLeave)
	approvers := authed.Group("", s.require(model.RoleAdmin, model.RoleHR))
	approvers.GET("/leaves/admin", s.leaveApplications)
	approvers.PUT("/leaves/admin/:id/status", s.setLeaveStatus)

	management := authed.Group("", s.require(model.RoleAdmin, model.RoleTeamLeader))
	management.GET("/projects", s.listProjects)
	authed.GET("/projects/team", s.teamProjects)
	authed.GET("/projects/assignable-users", s.assignableUsers)
	authed.GET("/projects/team/:id", s.teamProject)
	management.GET("/projects/:id", s.getProject)
	management.POST("/projects", s.createProject)
	management.PUT("/projects/:id", s.updateProject)
	management.DELETE("/projects/:id", s.deleteProject)
	authed.POST("/projects/:id/tasks", s.addTask)
	authed.DELETE("/projects/:id/tasks/:taskId", s.deleteTask)
	management.PUT("/projects/:id/budget", s.updateBudget)
	management.PUT("/projects/:id/phases", s.updatePhases)

	staff := authed.Group("", s.require(model.RoleAdmin, model.RoleHR))
	staff.GET("/admin", s.listEmployees)
	staff.POST("/admin", s.addEmployee)
	staff.GET("/admin/attendance", s.monthlyAttendance)
	staff.PUT("/admin/:id", s.updateEmployee)
	staff.DELETE("/admin/:id", s.removeEmployee)

	staff.GET("/financial", s.listReports)
	staff.POST("/financial", s.recordReport)
	staff.GET("/financial/entries", s.listEntries)
	staff.POST("/financial/entries", s.addEntry)
	return r
}

func abort(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"error": message})
}

func (s *Server) record(c *gin.Context) {
	s.mu.Lock()
	s.requests = append(s.requests, Request{
		Method:    c.Request.Method,
		Path:      c.Request.URL.Path,
		Route:     c.FullPath(),
		Bearer:    bearer(c.GetHeader("Authorization")),
		RequestID: c.GetHeader("X-Request-ID"),
	})
	s.mu.Unlock()
	c.Next()
}

func (s *Server) inject(c *gin.Context) {
	s.mu.Lock()
	status := s.failures[c.Request.Method+" "+c.FullPath()]
	s.mu.Unlock()
	if status != 0 {
		abort(c, status, "injected failure")
		return
	}
	c.Next()
}

func (s *Server) authenticate(c *gin.Context) {
	token := bearer(c.GetHeader("Authorization"))
	s.mu.Lock()
	account, ok := s.accountFor(token)
	s.mu.Unlock()
	if !ok {
		abort(c, http.StatusUnauthorized, "invalid or expired token")
		return
	}
	c.Set(accountKey, account)
	c.Next()
}

func (s *Server) require(roles ...model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !slices.Contains(roles, current(c).Role) {
			abort(c, http.StatusForbidden, "forbidden")
			return
		}
		c.Next()
	}
}

func current(c *gin.Context) *Account {
	return c.MustGet(accountKey).(*Account)
}

func paramID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		abort(c, http.StatusBadRequest, "invalid "+name)
		return 0, false
	}
	return id, true
}

func (s *Server) login(c *gin.Context) {
	var body struct {
		EmployeeID string `json:"employeeId"`
		Password   string `json:"password"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		abort(c, http.StatusBadRequest, "invalid body")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	account, ok := s.accounts[body.EmployeeID]
	if !ok || account.Password != body.Password {
		abort(c, http.StatusUnauthorized, "Invalid employee ID or password")
		return
	}
	token, err := s.sign(account)
	if err != nil {
		abort(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, model.LoginResult{Token: token, Role: account.Role})
}

func (s *Server) forgotPassword(c *gin.Context) {
	var body struct {
		Email string `json:"email"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.Email == "" {
		abort(c, http.StatusBadRequest, "email is required")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, account := range s.accounts {
		if account.Email == body.Email {
			s.resets[uuid.NewString()] = body.Email
		}
	}
	c.JSON(http.StatusOK, gin.H{"message": "If the account exists, a reset link was sent"})
}

func (s *Server) resetPassword(c *gin.Context) {
	var body struct {
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.Password == "" {
		abort(c, http.StatusBadRequest, "password is required")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	email, ok := s.resets[c.Param("token")]
	if !ok {
		abort(c, http.StatusBadRequest, "Invalid or expired reset token")
		return
	}
	delete(s.resets, c.Param("token"))
	for _, account := range s.accounts {
		if account.Email == email {
			account.Password = body.Password
		}
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password updated"})
}

func (s *Server) me(c *gin.Context) {
	account := current(c)
	c.JSON(http.StatusOK, model.User{ID: account.ID, Name: account.Name, Role: account.Role})
}

func (s *Server) myAttendance(c *gin.Context) {
	from, to := c.Query("from"), c.Query("to")
	account := current(c)
	s.mu.Lock()
	defer s.mu.Unlock()
	records := []model.AttendanceRecord{}
	for _, record := range s.attendance[account.ID] {
		if record.CheckInAt != nil {
			day := string(model.StampOf(*record.CheckInAt))
			if (from != "" && day < from) || (to != "" && day > to) {
				continue
			}
		}
		records = append(records, record)
	}
	c.JSON(http.StatusOK, records)
}

func (s *Server) checkIn(c *gin.Context) {
	account := current(c)
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now().UTC()
	today := model.Today(now)
	for _, record := range s.attendance[account.ID] {
		if record.CheckInAt != nil && model.StampOf(*record.CheckInAt) == today {
			abort(c, http.StatusBadRequest, "Already checked in today")
			return
		}
	}
	record := model.AttendanceRecord{ID: strconv.FormatInt(s.id(), 10), CheckInAt: &now, Status: "Present"}
	s.attendance[account.ID] = append(s.attendance[account.ID], record)
	c.JSON(http.StatusCreated, record)
}

func (s *Server) checkOut(c *gin.Context) {
	account := current(c)
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now().UTC()
	today := model.Today(now)
	records := s.attendance[account.ID]
	for i := range records {
		if records[i].CheckInAt == nil || model.StampOf(*records[i].CheckInAt) != today {
			continue
		}
		if records[i].CheckOutAt != nil {
			abort(c, http.StatusBadRequest, "Already checked out today")
			return
		}
		records[i].CheckOutAt = &now
		c.JSON(http.StatusOK, records[i])
		return
	}
	abort(c, http.StatusBadRequest, "No check-in found for today")
}

func (s *Server) myLeaves(c *gin.Context) {
	account := current(c)
	s.mu.Lock()
	defer s.mu.Unlock()
	leaves := []model.Leave{}
	for _, leave := range s.leaves {
		if leave.EmployeeName == account.Name {
			leaves = append(leaves, leave)
		}
	}
	c.JSON(http.StatusOK, leaves)
}

func (s *Server) applyLeave(c *gin.Context) {
	start, err := model.ParseDate(c.PostForm("startDate"))
	if err != nil {
		abort(c, http.StatusBadRequest, "invalid startDate")
		return
	}
	end, err := model.ParseDate(c.PostForm("endDate"))
	if err != nil {
		abort(c, http.StatusBadRequest, "invalid endDate")
		return
	}
	reason := strings.TrimSpace(c.PostForm("reason"))
	if reason == "" {
		abort(c, http.StatusBadRequest, "reason is required")
		return
	}
	leave := model.Leave{StartDate: start, EndDate: end, Reason: reason, Status: model.LeavePending, EmployeeName: current(c).Name}
	if file, err := c.FormFile("document"); err == nil {
		leave.DocumentURL = "/uploads/" + file.Filename
	}

	s.mu.Lock()
	leave.ID = s.id()
	s.leaves = append(s.leaves, leave)
	s.mu.Unlock()
	c.JSON(http.StatusCreated, leave)
}

func (s *Server) leaveApplications(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.JSON(http.StatusOK, s.leaves)
}

func (s *Server) setLeaveStatus(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var body struct {
		Status model.LeaveStatus `json:"status"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || (body.Status != model.LeaveApproved && body.Status != model.LeaveRejected) {
		abort(c, http.StatusBadRequest, "status must be APPROVED or REJECTED")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.leaves {
		if s.leaves[i].ID != id {
			continue
		}
		if s.leaves[i].Status != model.LeavePending {
			abort(c, http.StatusConflict, "Leave already decided")
			return
		}
		s.leaves[i].Status = body.Status
		c.JSON(http.StatusOK, s.leaves[i])
		return
	}
	abort(c, http.StatusNotFound, "Leave not found")
}
