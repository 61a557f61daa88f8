package fakehr

import (
	"net/http"
	"slices"
	"sort"

	"github.com/gin-gonic/gin"

	"github.com/Joseda-hg/hrdesk/internal/model"
)

func (s *Server) sortedProjects(keep func(*model.Project) bool) []model.Project {
	projects := []model.Project{}
	for _, project := range s.projects {
		if keep(project) {
			projects = append(projects, *project)
		}
	}
	sort.Slice(projects, func(i, j int) bool { return projects[i].ID < projects[j].ID })
	return projects
}

func onTeam(project *model.Project, userID int64) bool {
	return slices.ContainsFunc(project.Team, func(m model.Member) bool { return m.ID == userID })
}

func (s *Server) listProjects(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.JSON(http.StatusOK, s.sortedProjects(func(*model.Project) bool { return true }))
}

func (s *Server) teamProjects(c *gin.Context) {
	userID := current(c).ID
	s.mu.Lock()
	defer s.mu.Unlock()
	c.JSON(http.StatusOK, s.sortedProjects(func(p *model.Project) bool { return onTeam(p, userID) }))
}

func (s *Server) assignableUsers(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	users := []model.Member{}
	for _, account := range s.accounts {
		if account.Role == model.RoleEmployee || account.Role == model.RoleTeamLeader {
			users = append(users, model.Member{ID: account.ID, Name: account.Name})
		}
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	c.JSON(http.StatusOK, users)
}

func (s *Server) lookup(c *gin.Context) (*model.Project, bool) {
	id, ok := paramID(c, "id")
	if !ok {
		return nil, false
	}
	project, ok := s.projects[id]
	if !ok {
		abort(c, http.StatusNotFound, "Project not found")
		return nil, false
	}
	return project, true
}

func (s *Server) getProject(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if project, ok := s.lookup(c); ok {
		c.JSON(http.StatusOK, project)
	}
}

func (s *Server) teamProject(c *gin.Context) {
	userID := current(c).ID
	s.mu.Lock()
	defer s.mu.Unlock()
	project, ok := s.lookup(c)
	if !ok {
		return
	}
	if !onTeam(project, userID) {
		abort(c, http.StatusForbidden, "You are not assigned to this project")
		return
	}
	c.JSON(http.StatusOK, project)
}

func (s *Server) members(ids []int64) []model.Member {
	team := []model.Member{}
	for _, account := range s.accounts {
		if slices.Contains(ids, account.ID) {
			team = append(team, model.Member{ID: account.ID, Name: account.Name})
		}
	}
	sort.Slice(team, func(i, j int) bool { return team[i].ID < team[j].ID })
	return team
}

func (s *Server) createProject(c *gin.Context) {
	var draft model.ProjectDraft
	if err := c.ShouldBindJSON(&draft); err != nil || draft.Name == "" {
		abort(c, http.StatusBadRequest, "name is required")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	project := &model.Project{
		ID:          s.id(),
		Name:        draft.Name,
		Description: draft.Description,
		LaunchDate:  draft.LaunchDate,
		Team:        s.members(draft.TeamMemberIDs),
		Phases:      map[string]model.Phase{},
	}
	s.projects[project.ID] = project
	c.JSON(http.StatusCreated, project)
}

func (s *Server) updateProject(c *gin.Context) {
	var draft model.ProjectDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		abort(c, http.StatusBadRequest, "invalid body")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	project, ok := s.lookup(c)
	if !ok {
		return
	}
	project.Name = draft.Name
	project.Description = draft.Description
	project.LaunchDate = draft.LaunchDate
	project.Team = s.members(draft.TeamMemberIDs)
	c.JSON(http.StatusOK, project)
}

func (s *Server) deleteProject(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	project, ok := s.lookup(c)
	if !ok {
		return
	}
	delete(s.projects, project.ID)
	c.Status(http.StatusNoContent)
}

func (s *Server) addTask(c *gin.Context) {
	var draft model.TaskDraft
	if err := c.ShouldBindJSON(&draft); err != nil || draft.Title == "" {
		abort(c, http.StatusBadRequest, "title is required")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	project, ok := s.lookup(c)
	if !ok {
		return
	}
	task := model.Task{
		ID:             s.id(),
		Title:          draft.Title,
		Description:    draft.Description,
		DueDate:        draft.DueDate,
		AssignedUserID: draft.UserID,
		Category:       draft.Category,
		Priority:       draft.Priority,
	}
	for _, account := range s.accounts {
		if account.ID == draft.UserID {
			task.AssignedUserName = account.Name
		}
	}
	project.Tasks = append(project.Tasks, task)
	c.JSON(http.StatusCreated, task)
}

func (s *Server) deleteTask(c *gin.Context) {
	taskID, ok := paramID(c, "taskId")
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	project, ok := s.lookup(c)
	if !ok {
		return
	}
	before := len(project.Tasks)
	project.Tasks = slices.DeleteFunc(project.Tasks, func(t model.Task) bool { return t.ID == taskID })
	if len(project.Tasks) == before {
		abort(c, http.StatusNotFound, "Task not found")
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) updateBudget(c *gin.Context) {
	var budget model.BudgetUpdate
	if err := c.ShouldBindJSON(&budget); err != nil {
		abort(c, http.StatusBadRequest, "invalid body")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	project, ok := s.lookup(c)
	if !ok {
		return
	}
	project.TotalBudget = budget.TotalBudget
	project.UsedBudget = budget.UsedBudget
	project.AmountReceived = budget.AmountReceived
	if budget.Distribution != nil {
		project.BudgetDistribution = budget.Distribution
	}
	c.JSON(http.StatusOK, project)
}

func (s *Server) updatePhases(c *gin.Context) {
	var body struct {
		Phases map[string]model.Phase `json:"phases"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		abort(c, http.StatusBadRequest, "invalid body")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	project, ok := s.lookup(c)
	if !ok {
		return
	}
	project.Phases = body.Phases
	c.JSON(http.StatusOK, project)
}
