package tui

import (
	"fmt"
	"strings"

	"github.com/jesseduffield/gocui"

	"github.com/Joseda-hg/hrdesk/internal/model"
	"github.com/Joseda-hg/hrdesk/internal/todo"
)

type formField struct {
	Label   string
	Value   string
	Options []string
}

const (
	fieldStart = iota
	fieldEnd
	fieldReason
	fieldDocument
)

const (
	fieldTitle = iota
	fieldDescription
	fieldDue
	fieldAssignee
	fieldCategory
	fieldPriority
)

const (
	todoFieldTitle = iota
	todoFieldDescription
	todoFieldDue
	todoFieldCategory
	todoFieldPriority
)

const (
	searchFieldQuery = iota
	searchFieldStatus
)

var priorities = []string{"Low", "Medium", "High"}

func buildLeaveFields(today model.Date) []formField {
	return []formField{
		{Label: "Start (YYYY-MM-DD)", Value: today.String()},
		{Label: "End (YYYY-MM-DD)", Value: today.String()},
		{Label: "Reason"},
		{Label: "Document (optional path)"},
	}
}

func parseLeaveFields(fields []formField) (model.LeaveRequest, error) {
	start, err := parseDay(fields[fieldStart].Value, "start date")
	if err != nil {
		return model.LeaveRequest{}, err
	}
	end, err := parseDay(fields[fieldEnd].Value, "end date")
	if err != nil {
		return model.LeaveRequest{}, err
	}
	return model.LeaveRequest{
		StartDate: start,
		EndDate:   end,
		Reason:    strings.TrimSpace(fields[fieldReason].Value),
		Document:  strings.TrimSpace(fields[fieldDocument].Value),
	}, nil
}

func buildTaskFields(team []model.Member) []formField {
	names := make([]string, 0, len(team))
	for _, member := range team {
		names = append(names, member.Name)
	}
	assignee := ""
	if len(names) > 0 {
		assignee = names[0]
	}
	return []formField{
		{Label: "Title"},
		{Label: "Description"},
		{Label: "Due (YYYY-MM-DD)"},
		{Label: "Assignee (space/←→)", Value: assignee, Options: names},
		{Label: "Category", Value: "General"},
		{Label: "Priority (space/←→)", Value: "Medium", Options: priorities},
	}
}

func parseTaskFields(fields []formField, team []model.Member) (model.TaskDraft, error) {
	title := strings.TrimSpace(fields[fieldTitle].Value)
	if title == "" {
		return model.TaskDraft{}, fmt.Errorf("title is required")
	}

	var due model.Date
	if value := strings.TrimSpace(fields[fieldDue].Value); value != "" {
		parsed, err := parseDay(value, "due date")
		if err != nil {
			return model.TaskDraft{}, err
		}
		due = parsed
	}

	name := strings.TrimSpace(fields[fieldAssignee].Value)
	var userID int64
	for _, member := range team {
		if member.Name == name {
			userID = member.ID
			break
		}
	}
	if userID == 0 {
		return model.TaskDraft{}, fmt.Errorf("pick an assignee from the project team")
	}

	return model.TaskDraft{
		Title:       title,
		Description: strings.TrimSpace(fields[fieldDescription].Value),
		DueDate:     due,
		UserID:      userID,
		Category:    strings.TrimSpace(fields[fieldCategory].Value),
		Priority:    strings.TrimSpace(fields[fieldPriority].Value),
	}, nil
}

func buildTodoFields() []formField {
	return []formField{
		{Label: "Title"},
		{Label: "Description"},
		{Label: "Due (YYYY-MM-DD)"},
		{Label: "Category (space/←→)", Value: model.TodoCategories[0], Options: model.TodoCategories},
		{Label: "Priority (space/←→)", Value: model.TodoPriorities[0], Options: model.TodoPriorities},
	}
}

func parseTodoFields(fields []formField) (model.TodoInput, error) {
	due, err := todo.ParseDue(fields[todoFieldDue].Value)
	if err != nil {
		return model.TodoInput{}, err
	}
	return todo.Normalize(model.TodoInput{
		Title:       fields[todoFieldTitle].Value,
		Description: fields[todoFieldDescription].Value,
		Category:    fields[todoFieldCategory].Value,
		Priority:    fields[todoFieldPriority].Value,
		DueAt:       due,
	})
}

func buildTodoSearchFields(current model.TodoFilter) []formField {
	statuses := make([]string, 0, len(todo.Statuses))
	for _, status := range todo.Statuses {
		statuses = append(statuses, string(status))
	}
	return []formField{
		{Label: "Search", Value: current.Query},
		{Label: "Show (space/←→)", Value: string(current.Status), Options: statuses},
	}
}

func parseTodoSearchFields(fields []formField) (model.TodoFilter, error) {
	status, err := todo.ParseStatus(fields[searchFieldStatus].Value)
	if err != nil {
		return model.TodoFilter{}, err
	}
	return model.TodoFilter{Query: strings.TrimSpace(fields[searchFieldQuery].Value), Status: status}, nil
}

func parseDay(value, label string) (model.Date, error) {
	parsed, err := model.ParseDate(value)
	if err != nil || parsed.IsZero() {
		return model.Date{}, fmt.Errorf("invalid %s", label)
	}
	return parsed, nil
}

func (e *formEditor) Edit(view *gocui.View, key gocui.Key, ch rune, mod gocui.Modifier) bool {
	ui := e.ui
	if ui == nil || ui.form == nil || view == nil {
		return false
	}
	field := &ui.form.fields[ui.form.index]

	if len(field.Options) > 0 {
		switch key {
		case gocui.KeyArrowRight, gocui.KeySpace:
			field.Value = cycleOption(field.Options, field.Value, 1)
		case gocui.KeyArrowLeft:
			field.Value = cycleOption(field.Options, field.Value, -1)
		}
		ui.renderForm(view)
		return true
	}

	switch key {
	case gocui.KeyBackspace, gocui.KeyBackspace2:
		runes := []rune(field.Value)
		if len(runes) > 0 {
			field.Value = string(runes[:len(runes)-1])
		}
	case gocui.KeySpace:
		field.Value += " "
	case gocui.KeyCtrlU:
		field.Value = ""
	}

	if ch != 0 && ch != '\n' && ch != '\r' && mod == 0 {
		field.Value += string(ch)
	}

	ui.renderForm(view)
	return true
}

// cycleOption steps through options from current, wrapping at either end.
// An unknown current value starts from the first option.
func cycleOption(options []string, current string, delta int) string {
	if len(options) == 0 {
		return ""
	}
	value := strings.TrimSpace(current)
	index := -1
	for i, option := range options {
		if option == value {
			index = i
			break
		}
	}
	if index < 0 {
		return options[0]
	}
	index = (index + delta + len(options)) % len(options)
	return options[index]
}
