package projects

import (
	"fmt"
	"slices"
	"sort"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/Joseda-hg/hrdesk/internal/model"
)

const (
	PhaseCompleted  = "Completed"
	PhaseInProgress = "In Progress"
	PhaseWaiting    = "Waiting"
)

// VisibleProjects applies the member filter management uses. Other roles
// already receive a team-scoped list from the server.
func VisibleProjects(projects []model.Project, role model.Role, member string) []model.Project {
	if !role.IsManagement() || member == "" {
		return projects
	}
	visible := make([]model.Project, 0, len(projects))
	for _, project := range projects {
		if slices.ContainsFunc(project.Team, func(m model.Member) bool { return m.Name == member }) {
			visible = append(visible, project)
		}
	}
	return visible
}

// DefaultSelection keeps the current project when it is still visible and
// otherwise falls back to the first visible one.
func DefaultSelection(visible []model.Project, current int64) (int64, bool) {
	if current != 0 && slices.ContainsFunc(visible, func(p model.Project) bool { return p.ID == current }) {
		return current, true
	}
	if len(visible) == 0 {
		return 0, false
	}
	return visible[0].ID, true
}

func NormalizePhase(phase model.Phase) model.Phase {
	switch phase.Status {
	case PhaseCompleted:
		phase.Progress = 100
	case PhaseWaiting:
		phase.Progress = 0
	default:
		phase.Progress = min(max(phase.Progress, 0), 100)
	}
	return phase
}

type PhaseRow struct {
	Name string
	model.Phase
}

// Phases lists a project's phases in name order with normalised progress.
func Phases(project model.Project) []PhaseRow {
	rows := make([]PhaseRow, 0, len(project.Phases))
	for name, phase := range project.Phases {
		rows = append(rows, PhaseRow{Name: name, Phase: NormalizePhase(phase)})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Name < rows[j].Name })
	return rows
}

func NormalizePhases(phases map[string]model.Phase) map[string]model.Phase {
	out := make(map[string]model.Phase, len(phases))
	for name, phase := range phases {
		out[name] = NormalizePhase(phase)
	}
	return out
}

func BudgetRemaining(project model.Project) float64 {
	return project.TotalBudget - project.UsedBudget
}

func LaunchCountdown(launch model.Date, now time.Time) string {
	if launch.IsZero() {
		return "no launch date"
	}
	today := model.DateOf(now)
	switch {
	case launch.Equal(today.Time):
		return "launches today"
	case launch.After(today.Time):
		return fmt.Sprintf("launches %s", humanize.RelTime(launch.Time, today.Time, "ago", "from now"))
	default:
		return fmt.Sprintf("launched %s", humanize.RelTime(launch.Time, today.Time, "ago", "from now"))
	}
}

func FindProject(projects []model.Project, id int64) (model.Project, bool) {
	for _, project := range projects {
		if project.ID == id {
			return project, true
		}
	}
	return model.Project{}, false
}
