package projects

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Joseda-hg/hrdesk/internal/model"
)

// Source is the slice of the backend the board reads and mutates. Project
// paths are chosen by the implementation from the caller's role.
type Source interface {
	Projects(ctx context.Context) ([]model.Project, error)
	Project(ctx context.Context, id int64) (model.Project, error)
	AssignableUsers(ctx context.Context) ([]model.Member, error)
	AddTask(ctx context.Context, projectID int64, draft model.TaskDraft) error
	DeleteTask(ctx context.Context, projectID, taskID int64) error
}

// Board holds the project list, the selected project and its metrics. Metrics
// are recomputed whenever the selection or its task list changes.
type Board struct {
	source Source
	role   model.Role
	self   string
	now    func() time.Time
	logger *slog.Logger

	mu       sync.Mutex
	projects []model.Project
	users    []model.Member
	member   string
	selected int64
	current  model.Project
	metrics  Metrics
}

func NewBoard(source Source, role model.Role, self string, logger *slog.Logger) *Board {
	if logger == nil {
		logger = slog.Default()
	}
	return &Board{
		source:  source,
		role:    role,
		self:    self,
		now:     time.Now,
		logger:  logger,
		metrics: Aggregate(nil, nil, time.Now()),
	}
}

func (b *Board) SetClock(now func() time.Time) {
	b.now = now
}

// Load fetches projects and assignable users concurrently, then selects a
// default project.
func (b *Board) Load(ctx context.Context) error {
	var (
		projects []model.Project
		users    []model.Member
	)
	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		var err error
		projects, err = b.source.Projects(groupCtx)
		if err != nil {
			return fmt.Errorf("list projects: %w", err)
		}
		return nil
	})
	if b.role.IsManagement() {
		group.Go(func() error {
			var err error
			users, err = b.source.AssignableUsers(groupCtx)
			if err != nil {
				return fmt.Errorf("list assignable users: %w", err)
			}
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return err
	}

	b.mu.Lock()
	b.projects = projects
	b.users = users
	if b.member == "" {
		switch {
		case b.role.IsManagement() && len(users) > 0:
			b.member = users[0].Name
		case !b.role.IsManagement():
			b.member = b.self
		}
	}
	next, ok := DefaultSelection(VisibleProjects(projects, b.role, b.member), b.selected)
	b.mu.Unlock()

	if !ok {
		b.clearSelection()
		return nil
	}
	return b.Select(ctx, next)
}

func (b *Board) Projects() []model.Project {
	b.mu.Lock()
	defer b.mu.Unlock()
	return slices.Clone(b.projects)
}

func (b *Board) Visible() []model.Project {
	b.mu.Lock()
	defer b.mu.Unlock()
	return VisibleProjects(b.projects, b.role, b.member)
}

func (b *Board) Users() []model.Member {
	b.mu.Lock()
	defer b.mu.Unlock()
	return slices.Clone(b.users)
}

func (b *Board) Member() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.member
}

// FilterByMember changes the management member filter and reselects when the
// current project drops out of view.
func (b *Board) FilterByMember(ctx context.Context, name string) error {
	b.mu.Lock()
	b.member = name
	selected := b.selected
	next, ok := DefaultSelection(VisibleProjects(b.projects, b.role, name), selected)
	b.mu.Unlock()

	if !ok {
		b.clearSelection()
		return nil
	}
	if next == selected {
		return nil
	}
	return b.Select(ctx, next)
}

// Select fetches the project's details and recomputes its metrics.
func (b *Board) Select(ctx context.Context, id int64) error {
	project, err := b.source.Project(ctx, id)
	if err != nil {
		b.logger.Warn("fetch project", "project", id, "error", err)
		b.mu.Lock()
		if b.selected == id {
			b.current.Tasks = nil
			b.metrics = Aggregate(nil, b.current.Team, b.now())
		}
		b.mu.Unlock()
		return fmt.Errorf("fetch project %d: %w", id, err)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.selected = id
	b.current = project
	for i := range b.projects {
		if b.projects[i].ID == id {
			b.projects[i] = project
		}
	}
	b.metrics = Aggregate(project.Tasks, project.Team, b.now())
	return nil
}

func (b *Board) Current() (model.Project, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.current, b.selected != 0
}

func (b *Board) Metrics() Metrics {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.metrics
}

func (b *Board) AddTask(ctx context.Context, draft model.TaskDraft) error {
	id, err := b.selectedID()
	if err != nil {
		return err
	}
	if err := b.source.AddTask(ctx, id, draft); err != nil {
		return fmt.Errorf("add task: %w", err)
	}
	return b.Select(ctx, id)
}

// DeleteTask marks a task done, which removes it from the active list.
func (b *Board) DeleteTask(ctx context.Context, taskID int64) error {
	id, err := b.selectedID()
	if err != nil {
		return err
	}
	if err := b.source.DeleteTask(ctx, id, taskID); err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return b.Select(ctx, id)
}

func (b *Board) selectedID() (int64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.selected == 0 {
		return 0, fmt.Errorf("no project selected")
	}
	return b.selected, nil
}

func (b *Board) clearSelection() {
	b.mu.Lock()
	b.selected = 0
	b.current = model.Project{}
	b.metrics = Aggregate(nil, nil, b.now())
	b.mu.Unlock()
}
