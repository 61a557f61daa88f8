package main

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/Joseda-hg/hrdesk/internal/model"
	"github.com/Joseda-hg/hrdesk/internal/todo"
)

func newTodoCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "todo",
		Short: "Personal todo list kept on this machine",
	}
	cmd.AddCommand(newTodoAddCmd(a))
	cmd.AddCommand(newTodoListCmd(a))
	cmd.AddCommand(newTodoEditCmd(a))
	cmd.AddCommand(newTodoToggleCmd(a, "done", true))
	cmd.AddCommand(newTodoToggleCmd(a, "undo", false))
	cmd.AddCommand(newTodoRemoveCmd(a))
	return cmd
}

type todoFlags struct {
	input model.TodoInput
	due   string
}

func (f *todoFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVar(&f.input.Title, "title", "", "what needs doing")
	flags.StringVar(&f.input.Description, "description", "", "details")
	flags.StringVar(&f.due, "due", "", "due date (YYYY-MM-DD)")
	flags.StringVar(&f.input.Category, "category", "", "Coding, Design, Marketing or Personal")
	flags.StringVar(&f.input.Priority, "priority", "", "Low, Medium or High")
}

// apply copies every flag set on cmd onto target.
func (f *todoFlags) apply(cmd *cobra.Command, target *model.TodoInput) error {
	changed := cmd.Flags().Changed
	if changed("title") {
		target.Title = f.input.Title
	}
	if changed("description") {
		target.Description = f.input.Description
	}
	if changed("category") {
		target.Category = f.input.Category
	}
	if changed("priority") {
		target.Priority = f.input.Priority
	}
	if changed("due") {
		due, err := todo.ParseDue(f.due)
		if err != nil {
			return err
		}
		target.DueAt = due
	}
	return nil
}

func newTodoAddCmd(a *app) *cobra.Command {
	var flags todoFlags
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a todo",
		RunE: func(cmd *cobra.Command, args []string) error {
			var input model.TodoInput
			if err := flags.apply(cmd, &input); err != nil {
				return err
			}
			created, err := a.store.CreateTodo(cmd.Context(), input)
			if err != nil {
				return err
			}
			return a.print(cmd, created, message("Added todo #%d %q", created.ID, created.Title))
		},
	}
	flags.register(cmd)
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

type todoView struct {
	model.Todo
	Flag todo.Flag `json:"flag,omitempty"`
}

func newTodoListCmd(a *app) *cobra.Command {
	var search, status string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List todos with overall progress",
		RunE: func(cmd *cobra.Command, args []string) error {
			wanted, err := todo.ParseStatus(status)
			if err != nil {
				return err
			}
			todos, err := a.store.ListTodos(cmd.Context(), model.TodoFilter{Query: search, Status: wanted})
			if err != nil {
				return err
			}
			counts, err := a.store.CountTodos(cmd.Context())
			if err != nil {
				return err
			}
			now := a.now()
			views := make([]todoView, 0, len(todos))
			for _, item := range todos {
				views = append(views, todoView{Todo: item, Flag: todo.FlagOf(item, now)})
			}
			out := struct {
				Todos   []todoView       `json:"todos"`
				Counts  model.TodoCounts `json:"counts"`
				Percent int              `json:"percent"`
			}{views, counts, todo.Percent(counts)}

			return a.print(cmd, out, func(w io.Writer) error {
				rows := make([][]string, 0, len(views))
				for _, view := range views {
					rows = append(rows, []string{
						strconv.FormatInt(view.ID, 10),
						checkbox(view.Completed),
						view.Title,
						view.Category,
						view.Priority,
						dueOrDash(view.DueAt),
						string(view.Flag),
					})
				}
				if err := table(w, []string{"ID", "DONE", "TITLE", "CATEGORY", "PRIORITY", "DUE", "FLAG"}, rows); err != nil {
					return err
				}
				_, err := fmt.Fprintf(w, "%d of %d completed (%d%%)\n", counts.Completed, counts.Total, out.Percent)
				return err
			})
		},
	}
	cmd.Flags().StringVar(&search, "search", "", "match title or description")
	cmd.Flags().StringVar(&status, "status", string(model.TodoAll), "all, pending or completed")
	return cmd
}

func newTodoEditCmd(a *app) *cobra.Command {
	var flags todoFlags
	cmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Change fields of a todo",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			current, err := a.store.GetTodo(cmd.Context(), id)
			if err != nil {
				return err
			}
			input := model.TodoInput{
				Title:       current.Title,
				Description: current.Description,
				Category:    current.Category,
				Priority:    current.Priority,
				DueAt:       current.DueAt,
			}
			if err := flags.apply(cmd, &input); err != nil {
				return err
			}
			updated, err := a.store.UpdateTodo(cmd.Context(), id, input)
			if err != nil {
				return err
			}
			return a.print(cmd, updated, message("Updated todo #%d %q", updated.ID, updated.Title))
		},
	}
	flags.register(cmd)
	return cmd
}

func newTodoToggleCmd(a *app, verb string, completed bool) *cobra.Command {
	short, done := "Reopen a completed todo", "Reopened"
	if completed {
		short, done = "Mark a todo as completed", "Completed"
	}
	return &cobra.Command{
		Use:   verb + " ID",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			updated, err := a.store.SetTodoCompleted(cmd.Context(), id, completed)
			if err != nil {
				return err
			}
			return a.print(cmd, updated, message("%s %q", done, updated.Title))
		},
	}
}

func newTodoRemoveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "rm ID",
		Aliases: []string{"delete"},
		Short:   "Delete a todo",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := a.store.DeleteTodo(cmd.Context(), id); err != nil {
				return err
			}
			return a.print(cmd, map[string]int64{"deleted": id}, message("Deleted todo %d", id))
		},
	}
}

func checkbox(done bool) string {
	if done {
		return "[x]"
	}
	return "[ ]"
}

func dueOrDash(due *time.Time) string {
	if due == nil {
		return "-"
	}
	return due.Format(model.DateLayout)
}
