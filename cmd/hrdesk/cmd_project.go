package main

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/Joseda-hg/hrdesk/internal/finance"
	"github.com/Joseda-hg/hrdesk/internal/model"
	"github.com/Joseda-hg/hrdesk/internal/projects"
	"github.com/Joseda-hg/hrdesk/internal/session"
)

func newProjectCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "project",
		Aliases: []string{"projects"},
		Short:   "Projects, tasks, budgets and phases",
	}
	cmd.AddCommand(newProjectListCmd(a))
	cmd.AddCommand(newProjectShowCmd(a))
	cmd.AddCommand(newProjectMetricsCmd(a))
	cmd.AddCommand(newProjectCreateCmd(a))
	cmd.AddCommand(newProjectUpdateCmd(a))
	cmd.AddCommand(newProjectDeleteCmd(a))
	cmd.AddCommand(newProjectAddTaskCmd(a))
	cmd.AddCommand(newProjectDeleteTaskCmd(a))
	cmd.AddCommand(newProjectBudgetCmd(a))
	cmd.AddCommand(newProjectPhaseCmd(a))
	return cmd
}

func newProjectListCmd(a *app) *cobra.Command {
	var member string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the projects visible to you",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := a.requireSession(cmd.Context())
			if err != nil {
				return err
			}
			board := a.board(sess)
			if err := board.Load(cmd.Context()); err != nil {
				return err
			}
			if member != "" {
				if err := board.FilterByMember(cmd.Context(), member); err != nil {
					return err
				}
			}
			visible := board.Visible()
			return a.print(cmd, visible, func(w io.Writer) error {
				if sess.Role().IsManagement() && board.Member() != "" {
					fmt.Fprintf(w, "Member: %s\n", board.Member())
				}
				rows := make([][]string, 0, len(visible))
				for _, project := range visible {
					rows = append(rows, []string{
						strconv.FormatInt(project.ID, 10),
						project.Name,
						fmt.Sprintf("%d%%", project.Progress),
						strconv.Itoa(len(project.Tasks)),
						finance.FormatINR(projects.BudgetRemaining(project)),
						projects.LaunchCountdown(project.LaunchDate, a.now()),
					})
				}
				return table(w, []string{"ID", "NAME", "PROGRESS", "TASKS", "BUDGET LEFT", "LAUNCH"}, rows)
			})
		},
	}
	cmd.Flags().StringVar(&member, "member", "", "team member whose projects to list (management roles)")
	return cmd
}

func newProjectShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show a project with its phases, budget, team and tasks",
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
			project, err := a.client.Project(cmd.Context(), sess, id)
			if err != nil {
				return err
			}
			return a.print(cmd, project, func(w io.Writer) error {
				return writeProject(w, project, a.now())
			})
		},
	}
}

func writeProject(w io.Writer, project model.Project, now time.Time) error {
	fmt.Fprintf(w, "%s (#%d) %d%%\n", project.Name, project.ID, project.Progress)
	if project.Description != "" {
		fmt.Fprintf(w, "%s\n", project.Description)
	}
	fmt.Fprintf(w, "Launch: %s (%s)\n", project.LaunchDate, projects.LaunchCountdown(project.LaunchDate, now))
	fmt.Fprintf(w, "Budget: %s total, %s used, %s received, %s left\n",
		finance.FormatINR(project.TotalBudget), finance.FormatINR(project.UsedBudget),
		finance.FormatINR(project.AmountReceived), finance.FormatINR(projects.BudgetRemaining(project)))
	for _, step := range project.BudgetDistribution {
		fmt.Fprintf(w, "  %s: %s\n", step.Step, finance.FormatINR(step.Amount))
	}

	names := make([]string, 0, len(project.Team))
	for _, member := range project.Team {
		names = append(names, member.Name)
	}
	fmt.Fprintf(w, "Team: %s\n\n", strings.Join(names, ", "))

	phaseRows := [][]string{}
	for _, phase := range projects.Phases(project) {
		phaseRows = append(phaseRows, []string{phase.Name, phase.Status, fmt.Sprintf("%d%%", phase.Progress)})
	}
	if err := table(w, []string{"PHASE", "STATUS", "PROGRESS"}, phaseRows); err != nil {
		return err
	}
	fmt.Fprintln(w)

	taskRows := make([][]string, 0, len(project.Tasks))
	for _, task := range project.Tasks {
		taskRows = append(taskRows, []string{
			strconv.FormatInt(task.ID, 10),
			task.Title,
			task.AssignedUserName,
			task.DueDate.String(),
			task.Priority,
			task.Category,
		})
	}
	return table(w, []string{"TASK", "TITLE", "ASSIGNEE", "DUE", "PRIORITY", "CATEGORY"}, taskRows)
}

func newProjectMetricsCmd(a *app) *cobra.Command {
	var byID bool
	cmd := &cobra.Command{
		Use:   "metrics ID",
		Short: "Show workload, overdue tasks and burndown for a project",
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
			project, err := a.client.Project(cmd.Context(), sess, id)
			if err != nil {
				return err
			}
			m := projects.Aggregate(project.Tasks, project.Team, a.now())
			if byID {
				return a.print(cmd, projects.WorkloadByID(project.Tasks, project.Team), nil)
			}
			return a.print(cmd, m, func(w io.Writer) error {
				return writeMetrics(w, project, m)
			})
		},
	}
	cmd.Flags().BoolVar(&byID, "by-id", false, "print workload keyed by member id as JSON")
	return cmd
}

func writeMetrics(w io.Writer, project model.Project, m projects.Metrics) error {
	fmt.Fprintf(w, "%s workload\n", project.Name)
	names := make([]string, 0, len(m.Workload))
	for name := range m.Workload {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "  %-16s %s\n", name, humanize.Comma(int64(m.Workload[name])))
	}

	if len(m.Overdue) == 0 {
		fmt.Fprintln(w, "No overdue tasks")
	} else {
		fmt.Fprintln(w, "Overdue")
		for _, task := range m.Overdue {
			fmt.Fprintf(w, "  %s (%s) %d days\n", task.Title, task.AssignedUserName, task.DaysOverdue)
		}
	}

	points := make([]string, 0, len(m.Burndown))
	for _, point := range m.Burndown {
		points = append(points, fmt.Sprintf("%s %d", point.Label, point.Remaining))
	}
	if len(points) > 0 {
		fmt.Fprintf(w, "Burndown: %s\n", strings.Join(points, ", "))
	}
	return nil
}

type projectFlags struct {
	name        string
	description string
	launch      string
	members     []int64
}

func (f *projectFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "name", "", "project name")
	cmd.Flags().StringVar(&f.description, "description", "", "project description")
	cmd.Flags().StringVar(&f.launch, "launch", "", "launch date (YYYY-MM-DD)")
	cmd.Flags().Int64SliceVar(&f.members, "members", nil, "team member ids, comma separated")
}

func (f *projectFlags) draft() (model.ProjectDraft, error) {
	draft := model.ProjectDraft{Name: f.name, Description: f.description, TeamMemberIDs: f.members}
	if f.launch != "" {
		launch, err := model.ParseDate(f.launch)
		if err != nil {
			return model.ProjectDraft{}, err
		}
		draft.LaunchDate = launch
	}
	return draft, nil
}

func newProjectCreateCmd(a *app) *cobra.Command {
	var flags projectFlags
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a project",
		RunE: func(cmd *cobra.Command, args []string) error {
			draft, err := flags.draft()
			if err != nil {
				return err
			}
			sess, err := a.requireSession(cmd.Context())
			if err != nil {
				return err
			}
			project, err := a.client.CreateProject(cmd.Context(), sess, draft)
			if err != nil {
				return err
			}
			a.recordActivity(cmd, "project-created", project.Name)
			return a.print(cmd, project, message("Created project %s (#%d)", project.Name, project.ID))
		},
	}
	flags.register(cmd)
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newProjectUpdateCmd(a *app) *cobra.Command {
	var flags projectFlags
	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Change a project's name, description, launch date or team",
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
			current, err := a.client.Project(cmd.Context(), sess, id)
			if err != nil {
				return err
			}
			draft, err := flags.draft()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("name") {
				draft.Name = current.Name
			}
			if !cmd.Flags().Changed("description") {
				draft.Description = current.Description
			}
			if !cmd.Flags().Changed("launch") {
				draft.LaunchDate = current.LaunchDate
			}
			if !cmd.Flags().Changed("members") {
				for _, member := range current.Team {
					draft.TeamMemberIDs = append(draft.TeamMemberIDs, member.ID)
				}
			}
			project, err := a.client.UpdateProject(cmd.Context(), sess, id, draft)
			if err != nil {
				return err
			}
			return a.print(cmd, project, message("Updated project %s", project.Name))
		},
	}
	flags.register(cmd)
	return cmd
}

func newProjectDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a project",
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
			if err := a.client.DeleteProject(cmd.Context(), sess, id); err != nil {
				return err
			}
			a.recordActivity(cmd, "project-deleted", strconv.FormatInt(id, 10))
			return a.print(cmd, map[string]int64{"deleted": id}, message("Deleted project %d", id))
		},
	}
}

func newProjectAddTaskCmd(a *app) *cobra.Command {
	var (
		draft model.TaskDraft
		due   string
	)
	cmd := &cobra.Command{
		Use:   "add-task PROJECT_ID",
		Short: "Add a task to a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if due != "" {
				if draft.DueDate, err = model.ParseDate(due); err != nil {
					return err
				}
			}
			sess, err := a.requireSession(cmd.Context())
			if err != nil {
				return err
			}
			board, err := a.selectProject(cmd, sess, id)
			if err != nil {
				return err
			}
			if err := board.AddTask(cmd.Context(), draft); err != nil {
				return err
			}
			a.recordActivity(cmd, "task-added", draft.Title)
			project, _ := board.Current()
			return a.print(cmd, board.Metrics(), func(w io.Writer) error {
				fmt.Fprintf(w, "Added %q to %s\n", draft.Title, project.Name)
				return writeMetrics(w, project, board.Metrics())
			})
		},
	}
	cmd.Flags().StringVar(&draft.Title, "title", "", "task title")
	cmd.Flags().StringVar(&draft.Description, "description", "", "task description")
	cmd.Flags().StringVar(&due, "due", "", "due date (YYYY-MM-DD)")
	cmd.Flags().Int64Var(&draft.UserID, "assignee", 0, "assignee user id")
	cmd.Flags().StringVar(&draft.Category, "category", "General", "task category")
	cmd.Flags().StringVar(&draft.Priority, "priority", "Medium", "Low, Medium or High")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("assignee")
	return cmd
}

func newProjectDeleteTaskCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete-task PROJECT_ID TASK_ID",
		Short: "Delete a task from a project",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			taskID, err := parseID(args[1])
			if err != nil {
				return err
			}
			sess, err := a.requireSession(cmd.Context())
			if err != nil {
				return err
			}
			board, err := a.selectProject(cmd, sess, id)
			if err != nil {
				return err
			}
			if err := board.DeleteTask(cmd.Context(), taskID); err != nil {
				return err
			}
			a.recordActivity(cmd, "task-deleted", strconv.FormatInt(taskID, 10))
			return a.print(cmd, board.Metrics(), message("Deleted task %d", taskID))
		},
	}
}

func newProjectBudgetCmd(a *app) *cobra.Command {
	var (
		budget model.BudgetUpdate
		steps  []string
	)
	cmd := &cobra.Command{
		Use:   "budget ID",
		Short: "Update a project's budget figures and distribution",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			for _, raw := range steps {
				step, err := parseBudgetStep(raw)
				if err != nil {
					return err
				}
				budget.Distribution = append(budget.Distribution, step)
			}
			sess, err := a.requireSession(cmd.Context())
			if err != nil {
				return err
			}
			project, err := a.client.UpdateBudget(cmd.Context(), sess, id, budget)
			if err != nil {
				return err
			}
			return a.print(cmd, project, message("Budget for %s: %s total, %s left",
				project.Name, finance.FormatINR(project.TotalBudget), finance.FormatINR(projects.BudgetRemaining(project))))
		},
	}
	cmd.Flags().Float64Var(&budget.TotalBudget, "total", 0, "total budget")
	cmd.Flags().Float64Var(&budget.UsedBudget, "used", 0, "budget used so far")
	cmd.Flags().Float64Var(&budget.AmountReceived, "received", 0, "amount received")
	cmd.Flags().Float64Var(&budget.TargetBudget, "target", 0, "target budget")
	cmd.Flags().StringArrayVar(&steps, "step", nil, "distribution step as NAME=AMOUNT, repeatable")
	return cmd
}

func parseBudgetStep(raw string) (model.BudgetStep, error) {
	name, amount, ok := strings.Cut(raw, "=")
	if !ok || strings.TrimSpace(name) == "" {
		return model.BudgetStep{}, fmt.Errorf("invalid step %q: want NAME=AMOUNT", raw)
	}
	value, err := strconv.ParseFloat(strings.TrimSpace(amount), 64)
	if err != nil || value < 0 {
		return model.BudgetStep{}, fmt.Errorf("invalid amount in step %q", raw)
	}
	return model.BudgetStep{Step: strings.TrimSpace(name), Amount: value}, nil
}

func newProjectPhaseCmd(a *app) *cobra.Command {
	var (
		name     string
		status   string
		progress int
	)
	cmd := &cobra.Command{
		Use:   "phase ID",
		Short: "Set the status and progress of one project phase",
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
			current, err := a.client.Project(cmd.Context(), sess, id)
			if err != nil {
				return err
			}
			phases := make(map[string]model.Phase, len(current.Phases)+1)
			for key, phase := range current.Phases {
				phases[key] = phase
			}
			phase := phases[name]
			if cmd.Flags().Changed("status") {
				phase.Status = status
			}
			if cmd.Flags().Changed("progress") {
				phase.Progress = progress
			}
			phases[name] = phase
			project, err := a.client.UpdatePhases(cmd.Context(), sess, id, projects.NormalizePhases(phases))
			if err != nil {
				return err
			}
			updated := project.Phases[name]
			return a.print(cmd, project, message("%s: %s %d%%", name, updated.Status, updated.Progress))
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "phase name")
	cmd.Flags().StringVar(&status, "status", "", "Waiting, In Progress or Completed")
	cmd.Flags().IntVar(&progress, "progress", 0, "progress percentage")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

// selectProject loads the board and selects id so task changes refresh its
// metrics.
func (a *app) selectProject(cmd *cobra.Command, sess *session.Session, id int64) (*projects.Board, error) {
	board := a.board(sess)
	if err := board.Load(cmd.Context()); err != nil {
		return nil, err
	}
	if err := board.Select(cmd.Context(), id); err != nil {
		return nil, err
	}
	return board, nil
}

func (a *app) recordActivity(cmd *cobra.Command, kind, details string) {
	if err := a.store.AddActivity(cmd.Context(), kind, details); err != nil {
		a.logger.Warn("record activity", "kind", kind, "error", err)
	}
}
