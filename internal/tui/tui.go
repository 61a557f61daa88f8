package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	goerrors "github.com/go-errors/errors"
	"github.com/jesseduffield/gocui"

	"github.com/Joseda-hg/hrdesk/internal/api"
	"github.com/Joseda-hg/hrdesk/internal/attendance"
	"github.com/Joseda-hg/hrdesk/internal/finance"
	"github.com/Joseda-hg/hrdesk/internal/leave"
	"github.com/Joseda-hg/hrdesk/internal/model"
	"github.com/Joseda-hg/hrdesk/internal/projects"
	"github.com/Joseda-hg/hrdesk/internal/session"
	"github.com/Joseda-hg/hrdesk/internal/todo"
)

const (
	viewHeader     = "header"
	viewFooter     = "footer"
	viewAttendance = "attendance"
	viewProjects   = "projects"
	viewTasks      = "tasks"
	viewActivity   = "activity"
	viewTodos      = "todos"
	viewForm       = "form"
	viewHelp       = "help"
)

const (
	activityLimit = 20
	expiredStatus = "session expired, run hrdesk login"
)

// ActivityStore is the local history the activity pane shows.
type ActivityStore interface {
	AddActivity(ctx context.Context, kind, details string) error
	ListActivity(ctx context.Context, limit int) ([]model.Activity, error)
}

// TodoStore keeps the personal todo list.
type TodoStore interface {
	CreateTodo(ctx context.Context, input model.TodoInput) (model.Todo, error)
	SetTodoCompleted(ctx context.Context, id int64, completed bool) (model.Todo, error)
	DeleteTodo(ctx context.Context, id int64) error
	ListTodos(ctx context.Context, filter model.TodoFilter) ([]model.Todo, error)
	CountTodos(ctx context.Context) (model.TodoCounts, error)
}

type Deps struct {
	Session  *session.Session
	Tracker  *attendance.Tracker
	Board    *projects.Board
	Leaves   *leave.Service
	Activity ActivityStore
	Todos    TodoStore
	Logger   *slog.Logger
}

type UI struct {
	sess     *session.Session
	tracker  *attendance.Tracker
	board    *projects.Board
	leaves   *leave.Service
	store    ActivityStore
	todoList TodoStore
	logger   *slog.Logger
	gui      *gocui.Gui
	now      func() time.Time
	deadline time.Duration

	projects   []model.Project
	current    model.Project
	hasCurrent bool
	metrics    projects.Metrics
	activity   []model.Activity
	todos      []model.Todo
	todoCounts model.TodoCounts
	todoFilter model.TodoFilter

	selectedProject  int
	selectedTask     int
	selectedActivity int
	selectedTodo     int
	focus            string

	form       *formState
	formEditor *formEditor
	helpActive bool
	status     string
}

type formKind int

const (
	formLeave formKind = iota
	formTask
	formTodo
	formTodoSearch
)

type formState struct {
	kind   formKind
	fields []formField
	index  int
}

type formEditor struct {
	ui *UI
}

func newUI(deps Deps) *UI {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	ui := &UI{
		sess:     deps.Session,
		tracker:  deps.Tracker,
		board:    deps.Board,
		leaves:   deps.Leaves,
		store:    deps.Activity,
		todoList: deps.Todos,
		logger:   logger,
		now:      time.Now,
		deadline: 30 * time.Second,
		focus:    viewAttendance,
	}
	ui.todoFilter.Status = model.TodoAll
	ui.formEditor = &formEditor{ui: ui}
	return ui
}

func Run(deps Deps) error {
	gui, err := gocui.NewGui(gocui.NewGuiOpts{OutputMode: gocui.OutputNormal})
	if err != nil {
		return err
	}
	defer gui.Close()

	ui := newUI(deps)
	ui.gui = gui
	gui.Mouse = false

	gui.SetManagerFunc(ui.layout)
	if err := ui.bindKeys(gui); err != nil {
		return err
	}
	if err := ui.load(); err != nil {
		ui.fail(err)
	}

	if err := gui.MainLoop(); err != nil && !goerrors.Is(err, gocui.ErrQuit) {
		return err
	}
	return nil
}

type binding struct {
	view    string
	key     any
	handler func(*gocui.Gui, *gocui.View) error
}

func (u *UI) bindKeys(gui *gocui.Gui) error {
	bindings := []binding{
		{"", gocui.KeyCtrlC, u.quit},
		{"", 'q', u.quit},
		{"", 'r', u.reload},
		{"", 'i', u.checkIn},
		{"", 'o', u.checkOut},
		{"", 'l', u.openLeaveForm},
		{"", 'a', u.openTaskForm},
		{"", 'm', u.cycleMember},
		{"", 'n', u.openTodoForm},
		{"", '?', u.toggleHelp},
		{"", gocui.KeyTab, u.switchFocus},
		{"", '1', u.focusAttendance},
		{"", '2', u.focusProjects},
		{"", '3', u.focusTasks},
		{"", '4', u.focusActivity},
		{"", '5', u.focusTodos},
		{viewProjects, gocui.KeyEnter, u.selectProject},
		{viewTasks, 'd', u.deleteTask},
		{viewTodos, 'x', u.toggleTodo},
		{viewTodos, gocui.KeyEnter, u.toggleTodo},
		{viewTodos, 'd', u.deleteTodo},
		{viewTodos, 'f', u.cycleTodoFilter},
		{viewTodos, '/', u.openTodoSearch},
		{viewForm, gocui.KeyEnter, u.submitForm},
		{viewForm, gocui.KeyCtrlJ, u.submitForm},
		{viewForm, gocui.KeyTab, u.nextFormField},
		{viewForm, gocui.KeyBacktab, u.prevFormField},
		{viewForm, gocui.KeyArrowDown, u.nextFormField},
		{viewForm, gocui.KeyArrowUp, u.prevFormField},
		{viewForm, gocui.KeyEsc, u.cancelForm},
		{viewHelp, gocui.KeyEsc, u.closeHelp},
		{viewHelp, '?', u.closeHelp},
	}
	for _, name := range []string{viewProjects, viewTasks, viewActivity, viewTodos} {
		bindings = append(bindings,
			binding{name, gocui.KeyArrowDown, u.moveDown},
			binding{name, 'j', u.moveDown},
			binding{name, gocui.KeyArrowUp, u.moveUp},
			binding{name, 'k', u.moveUp},
		)
	}
	for _, b := range bindings {
		if err := gui.SetKeybinding(b.view, b.key, gocui.ModNone, b.handler); err != nil {
			return err
		}
	}
	return nil
}

func (u *UI) layout(gui *gocui.Gui) error {
	maxX, maxY := gui.Size()
	if maxX <= 0 || maxY <= 0 {
		return nil
	}

	headerView, err := gui.SetView(viewHeader, 0, 0, maxX-1, 0, 0)
	if err != nil && !goerrors.Is(err, gocui.ErrUnknownView) {
		return err
	}
	headerView.Frame = false
	u.renderHeader(headerView)

	footerY1 := max(maxY-2, 1)
	footerY0 := max(footerY1-2, 1)
	footerView, err := gui.SetView(viewFooter, 0, footerY0, maxX-1, footerY1, 0)
	if err != nil && !goerrors.Is(err, gocui.ErrUnknownView) {
		return err
	}
	footerView.Frame = false
	footerView.Wrap = true
	footerView.FgColor = gocui.ColorDefault | gocui.AttrDim
	u.renderFooter(footerView)

	bodyTop := 1
	bodyBottom := footerY0 - 1
	if bodyBottom < bodyTop {
		return nil
	}

	sizes := computeLayout(maxX, bodyBottom-bodyTop+1)
	leftX1 := sizes.leftWidth - 1
	rightX0 := min(leftX1+1, maxX-1)
	attendanceY1 := bodyTop + sizes.attendanceHeight - 1
	tasksY1 := bodyTop + sizes.tasksHeight - 1
	activityY1 := tasksY1 + 1 + (bodyBottom-tasksY1-1)/2

	panes := []struct {
		name, title    string
		x0, y0, x1, y1 int
		color          gocui.Attribute
		render         func(*gocui.View, bool)
	}{
		{viewAttendance, "1 Attendance", 0, bodyTop, leftX1, attendanceY1, gocui.ColorGreen, u.renderAttendance},
		{viewProjects, "2 Projects", 0, attendanceY1 + 1, leftX1, bodyBottom, gocui.ColorYellow, u.renderProjects},
		{viewTasks, "3 Tasks & Metrics", rightX0, bodyTop, maxX - 1, tasksY1, gocui.ColorCyan, u.renderTasks},
		{viewActivity, "4 Activity", rightX0, tasksY1 + 1, maxX - 1, activityY1, gocui.ColorMagenta, u.renderActivity},
		{viewTodos, "5 Todo", rightX0, activityY1 + 1, maxX - 1, bodyBottom, gocui.ColorBlue, u.renderTodos},
	}
	for _, pane := range panes {
		view, err := gui.SetView(pane.name, pane.x0, pane.y0, pane.x1, pane.y1, 0)
		if err != nil && !goerrors.Is(err, gocui.ErrUnknownView) {
			return err
		}
		if goerrors.Is(err, gocui.ErrUnknownView) {
			view.Title = pane.title
			view.TitleColor = pane.color
		}
		focused := u.focus == pane.name
		applyViewStyle(view, focused)
		pane.render(view, focused)
	}

	_, _ = gui.SetViewOnTop(viewHeader)
	_, _ = gui.SetViewOnTop(viewFooter)

	if u.form != nil {
		if err := u.showForm(gui); err != nil {
			return err
		}
	} else {
		_ = gui.DeleteView(viewForm)
	}

	if u.helpActive {
		if err := u.showHelp(gui); err != nil {
			return err
		}
	} else {
		_ = gui.DeleteView(viewHelp)
	}

	if gui.CurrentView() == nil {
		_, _ = gui.SetCurrentView(u.focus)
	}
	gui.Cursor = u.form != nil
	return nil
}

type paneSizes struct {
	leftWidth        int
	attendanceHeight int
	tasksHeight      int
}

func computeLayout(width, height int) paneSizes {
	safeWidth := max(width-2, 20)
	safeHeight := max(height, 8)

	leftWidth := max(safeWidth*2/5, 30)
	if leftWidth > safeWidth-24 {
		leftWidth = safeWidth / 2
	}

	attendanceHeight := max(int(float64(safeHeight)*0.55), 8)
	if attendanceHeight > safeHeight-4 {
		attendanceHeight = safeHeight / 2
	}
	tasksHeight := max(int(float64(safeHeight)*0.65), 6)
	if tasksHeight > safeHeight-4 {
		tasksHeight = safeHeight / 2
	}

	return paneSizes{leftWidth: leftWidth, attendanceHeight: attendanceHeight, tasksHeight: tasksHeight}
}

func (u *UI) ctx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), u.deadline)
}

// load refreshes every pane from the backend and the local store. It keeps
// going after a failure so one broken endpoint does not blank the screen.
func (u *UI) load() error {
	ctx, cancel := u.ctx()
	defer cancel()

	var errs []error
	if err := u.tracker.Refresh(ctx); err != nil {
		errs = append(errs, err)
	}
	if err := u.board.Load(ctx); err != nil {
		errs = append(errs, err)
	}
	u.syncBoard()
	if err := u.loadActivity(ctx); err != nil {
		errs = append(errs, err)
	}
	if err := u.loadTodos(ctx); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func (u *UI) loadTodos(ctx context.Context) error {
	if u.todoList == nil {
		return nil
	}
	todos, err := u.todoList.ListTodos(ctx, u.todoFilter)
	if err != nil {
		return fmt.Errorf("list todos: %w", err)
	}
	counts, err := u.todoList.CountTodos(ctx)
	if err != nil {
		return fmt.Errorf("count todos: %w", err)
	}
	u.todos = todos
	u.todoCounts = counts
	u.selectedTodo = clamp(u.selectedTodo, len(u.todos))
	return nil
}

func (u *UI) loadActivity(ctx context.Context) error {
	if u.store == nil {
		return nil
	}
	activity, err := u.store.ListActivity(ctx, activityLimit)
	if err != nil {
		return fmt.Errorf("list activity: %w", err)
	}
	u.activity = activity
	u.selectedActivity = clamp(u.selectedActivity, len(u.activity))
	return nil
}

func (u *UI) syncBoard() {
	u.projects = u.board.Visible()
	u.current, u.hasCurrent = u.board.Current()
	u.metrics = u.board.Metrics()
	u.selectedProject = clamp(u.selectedProject, len(u.projects))
	if u.hasCurrent {
		for i, project := range u.projects {
			if project.ID == u.current.ID {
				u.selectedProject = i
			}
		}
	}
	u.selectedTask = clamp(u.selectedTask, len(u.current.Tasks))
}

func (u *UI) record(ctx context.Context, kind, details string) {
	if u.store == nil {
		return
	}
	if err := u.store.AddActivity(ctx, kind, details); err != nil {
		u.logger.Warn("record activity", "kind", kind, "error", err)
	}
}

func (u *UI) fail(err error) {
	if errors.Is(err, session.ErrUnauthorized) {
		u.status = expiredStatus
		return
	}
	u.status = api.Message(err)
}

func (u *UI) renderHeader(view *gocui.View) {
	view.Clear()
	name, role := "signed out", model.Role("")
	if u.sess.Valid() {
		name, role = u.sess.Name(), u.sess.Role()
	}
	line := fmt.Sprintf("hrdesk | %s (%s) | %s", name, role, model.Today(u.now()))
	if role.IsManagement() {
		member := u.board.Member()
		if member == "" {
			member = "everyone"
		}
		line += " | member: " + member
	}
	fmt.Fprint(view, line)
}

func (u *UI) renderFooter(view *gocui.View) {
	view.Clear()
	fmt.Fprintln(view, "i check in | o check out | l leave | a add task | d delete | enter select | m member | n new todo | x done")
	fmt.Fprintln(view, "tab cycle | 1-5 panes | j/k move | f filter | / search | r reload | ? help | q quit")
	if u.status != "" {
		fmt.Fprint(view, u.status)
	}
}

func (u *UI) renderAttendance(view *gocui.View, _ bool) {
	view.Clear()
	status := u.tracker.Status()
	actions := u.tracker.Actions()
	records := u.tracker.Records()

	fmt.Fprintf(view, "Today %s\n", u.tracker.Today())
	fmt.Fprintf(view, "Checked in: %s | Checked out: %s | Leave: %s\n", yesNo(status.HasCheckedIn), yesNo(status.HasCheckedOut), yesNo(status.HasLeave))
	fmt.Fprintf(view, "[i] check in: %s\n", actionLabel(actions.CheckIn, u.tracker.Phase(attendance.ActionCheckIn)))
	fmt.Fprintf(view, "[o] check out: %s\n", actionLabel(actions.CheckOut, u.tracker.Phase(attendance.ActionCheckOut)))
	fmt.Fprintf(view, "[l] leave: %s\n", actionLabel(actions.Leave, u.tracker.Phase(attendance.ActionLeave)))
	if last, ok := u.tracker.LastAction(); ok {
		fmt.Fprintf(view, "Last: %s at %s\n", last.Action, last.At.Local().Format("15:04"))
	}

	summary := attendance.Summarize(records)
	now := u.now().UTC()
	fmt.Fprintf(view, "\n%s: present %d | leave %d | check-outs %d\n", now.Format("January"), summary.Present, summary.Leave, summary.CheckOuts)
	fmt.Fprintln(view, calendarStrip(attendance.Calendar(records, now.Year(), now.Month())))
	fmt.Fprintln(view)
	for _, record := range newestFirst(records) {
		fmt.Fprintln(view, formatRecord(record))
	}
}

func (u *UI) renderProjects(view *gocui.View, focused bool) {
	view.Clear()
	if len(u.projects) == 0 {
		fmt.Fprint(view, "No projects")
		return
	}
	now := u.now()
	for i, project := range u.projects {
		fmt.Fprintf(view, "%s %s\n", selectionPrefix(i == u.selectedProject, focused), formatProjectSummary(project, now))
	}
	if focused {
		view.SetCursor(0, min(u.selectedProject, len(u.projects)-1))
	}
}

func (u *UI) renderTasks(view *gocui.View, focused bool) {
	view.Clear()
	if !u.hasCurrent {
		fmt.Fprint(view, "No project selected")
		return
	}
	project := u.current

	lines := []string{
		project.Name,
		fmt.Sprintf("Budget %s | used %s | remaining %s", finance.FormatINR(project.TotalBudget), finance.FormatINR(project.UsedBudget), finance.FormatINR(projects.BudgetRemaining(project))),
		fmt.Sprintf("Launch: %s", projects.LaunchCountdown(project.LaunchDate, u.now())),
	}
	for _, phase := range projects.Phases(project) {
		lines = append(lines, fmt.Sprintf("  %-12s %-12s %3d%%", phase.Name, phase.Status, phase.Progress))
	}

	lines = append(lines, "", "Workload:")
	lines = append(lines, formatWorkload(u.metrics.Workload)...)
	if len(u.metrics.Overdue) > 0 {
		lines = append(lines, "Overdue:")
		for _, task := range u.metrics.Overdue {
			lines = append(lines, fmt.Sprintf("  %s (%s, %d days)", task.Title, task.AssignedUserName, task.DaysOverdue))
		}
	}
	if len(u.metrics.Burndown) > 0 {
		points := make([]string, 0, len(u.metrics.Burndown))
		for _, point := range u.metrics.Burndown {
			points = append(points, fmt.Sprintf("%s %d", point.Label, point.Remaining))
		}
		lines = append(lines, "Burndown: "+strings.Join(points, " -> "))
	}

	lines = append(lines, "", fmt.Sprintf("Tasks (%d):", len(project.Tasks)))
	for i, task := range project.Tasks {
		lines = append(lines, fmt.Sprintf("%s %s", selectionPrefix(i == u.selectedTask, focused), formatTask(task)))
	}
	fmt.Fprint(view, strings.Join(lines, "\n"))
}

func (u *UI) renderActivity(view *gocui.View, focused bool) {
	view.Clear()
	if len(u.activity) == 0 {
		fmt.Fprint(view, "Nothing yet")
		return
	}
	for i, entry := range u.activity {
		fmt.Fprintf(view, "%s %s\n", selectionPrefix(i == u.selectedActivity, focused), formatActivity(entry))
	}
	if focused {
		view.SetCursor(0, min(u.selectedActivity, len(u.activity)-1))
	}
}

func (u *UI) renderTodos(view *gocui.View, focused bool) {
	view.Clear()
	view.Title = "5 Todo: " + string(u.todoFilter.Status)
	if u.todoFilter.Query != "" {
		view.Title += fmt.Sprintf(" %q", u.todoFilter.Query)
	}
	fmt.Fprintf(view, "%d of %d completed (%d%%)\n", u.todoCounts.Completed, u.todoCounts.Total, todo.Percent(u.todoCounts))
	if len(u.todos) == 0 {
		fmt.Fprint(view, "No todos")
		return
	}
	now := u.now()
	for i, item := range u.todos {
		fmt.Fprintf(view, "%s %s\n", selectionPrefix(i == u.selectedTodo, focused), formatTodo(item, now))
	}
	if focused {
		view.SetCursor(0, min(u.selectedTodo, len(u.todos)-1)+1)
	}
}

func (u *UI) checkIn(gui *gocui.Gui, _ *gocui.View) error {
	if u.inputActive() {
		return nil
	}
	return u.runAttendance(attendance.ActionCheckIn, u.tracker.CheckIn)
}

func (u *UI) checkOut(gui *gocui.Gui, _ *gocui.View) error {
	if u.inputActive() {
		return nil
	}
	return u.runAttendance(attendance.ActionCheckOut, u.tracker.CheckOut)
}

// runAttendance sends the request off the main loop when a gui is running so
// the pane can show the pending state.
func (u *UI) runAttendance(action attendance.Action, send func(context.Context) error) error {
	if u.gui == nil {
		ctx, cancel := u.ctx()
		defer cancel()
		u.afterAttendance(action, send(ctx))
		return nil
	}

	u.status = fmt.Sprintf("%s...", action)
	go func() {
		ctx, cancel := u.ctx()
		defer cancel()
		err := send(ctx)
		u.gui.Update(func(*gocui.Gui) error {
			u.afterAttendance(action, err)
			return nil
		})
	}()
	return nil
}

func (u *UI) afterAttendance(action attendance.Action, err error) {
	if err != nil {
		u.fail(err)
		return
	}
	u.status = fmt.Sprintf("%s recorded", action)
	ctx, cancel := u.ctx()
	defer cancel()
	if err := u.loadActivity(ctx); err != nil {
		u.fail(err)
	}
}

func (u *UI) openLeaveForm(gui *gocui.Gui, _ *gocui.View) error {
	if u.inputActive() {
		return nil
	}
	if !u.tracker.Actions().Leave {
		u.status = "leave is not available after checking in today"
		return nil
	}
	u.form = &formState{kind: formLeave, fields: buildLeaveFields(model.DateOf(u.now().UTC()))}
	return nil
}

func (u *UI) openTaskForm(gui *gocui.Gui, _ *gocui.View) error {
	if u.inputActive() {
		return nil
	}
	if !u.hasCurrent {
		u.status = "select a project first"
		return nil
	}
	u.form = &formState{kind: formTask, fields: buildTaskFields(u.current.Team)}
	return nil
}

func (u *UI) showForm(gui *gocui.Gui) error {
	maxX, maxY := gui.Size()
	width := max(60, maxX/2)
	height := min(10, max(8, maxY/2))
	x0 := (maxX - width) / 2
	y0 := (maxY - height) / 2

	view, err := gui.SetView(viewForm, x0, y0, x0+width, y0+height, 0)
	if err != nil && !goerrors.Is(err, gocui.ErrUnknownView) {
		return err
	}
	if goerrors.Is(err, gocui.ErrUnknownView) {
		view.Wrap = true
	}
	switch u.form.kind {
	case formTask:
		view.Title = "New Task: " + u.current.Name
	case formTodo:
		view.Title = "New Todo"
	case formTodoSearch:
		view.Title = "Find Todos"
	default:
		view.Title = "Apply for Leave"
	}
	view.Editable = true
	view.KeybindOnEdit = true
	view.Editor = u.formEditor
	u.renderForm(view)
	_, _ = gui.SetCurrentView(viewForm)
	return nil
}

func (u *UI) submitForm(gui *gocui.Gui, _ *gocui.View) error {
	if u.form == nil {
		return nil
	}
	ctx, cancel := u.ctx()
	defer cancel()

	var done string
	switch u.form.kind {
	case formLeave:
		req, err := parseLeaveFields(u.form.fields)
		if err != nil {
			u.status = err.Error()
			return nil
		}
		if err := u.leaves.Apply(ctx, req); err != nil {
			u.fail(err)
			return nil
		}
		done = "leave applied"
	case formTask:
		draft, err := parseTaskFields(u.form.fields, u.current.Team)
		if err != nil {
			u.status = err.Error()
			return nil
		}
		if err := u.board.AddTask(ctx, draft); err != nil {
			u.fail(err)
			u.syncBoard()
			return nil
		}
		u.record(ctx, "task-added", fmt.Sprintf("%s: %s", u.current.Name, draft.Title))
		u.syncBoard()
		done = "task added"
	case formTodo:
		input, err := parseTodoFields(u.form.fields)
		if err != nil {
			u.status = err.Error()
			return nil
		}
		if _, err := u.todoList.CreateTodo(ctx, input); err != nil {
			u.status = err.Error()
			return nil
		}
		u.selectedTodo = 0
		done = "todo added"
	case formTodoSearch:
		filter, err := parseTodoSearchFields(u.form.fields)
		if err != nil {
			u.status = err.Error()
			return nil
		}
		u.todoFilter = filter
		u.selectedTodo = 0
	}

	u.closeForm(gui)
	u.status = done
	if err := u.loadActivity(ctx); err != nil {
		u.fail(err)
	}
	if err := u.loadTodos(ctx); err != nil {
		u.fail(err)
	}
	return nil
}

func (u *UI) cancelForm(gui *gocui.Gui, _ *gocui.View) error {
	u.closeForm(gui)
	return nil
}

func (u *UI) closeForm(gui *gocui.Gui) {
	u.form = nil
	if gui != nil {
		_ = gui.DeleteView(viewForm)
		_, _ = gui.SetCurrentView(u.focus)
	}
}

func (u *UI) nextFormField(gui *gocui.Gui, view *gocui.View) error {
	if u.form == nil {
		return nil
	}
	if u.form.index < len(u.form.fields)-1 {
		u.form.index++
	}
	u.renderForm(view)
	return nil
}

func (u *UI) prevFormField(gui *gocui.Gui, view *gocui.View) error {
	if u.form == nil {
		return nil
	}
	if u.form.index > 0 {
		u.form.index--
	}
	u.renderForm(view)
	return nil
}

func (u *UI) renderForm(view *gocui.View) {
	if u.form == nil || view == nil {
		return
	}
	view.Clear()
	for index, field := range u.form.fields {
		prefix := "  "
		if index == u.form.index {
			prefix = "> "
		}
		fmt.Fprintf(view, "%s%s: %s\n", prefix, field.Label, field.Value)
	}
	field := u.form.fields[u.form.index]
	cursorX := len([]rune(field.Label+": ")) + len([]rune(field.Value)) + 2
	view.SetCursor(cursorX, u.form.index)
}

func (u *UI) deleteTask(gui *gocui.Gui, _ *gocui.View) error {
	if u.inputActive() || u.focus != viewTasks || !u.hasCurrent {
		return nil
	}
	if u.selectedTask < 0 || u.selectedTask >= len(u.current.Tasks) {
		return nil
	}
	task := u.current.Tasks[u.selectedTask]
	ctx, cancel := u.ctx()
	defer cancel()
	if err := u.board.DeleteTask(ctx, task.ID); err != nil {
		u.fail(err)
		u.syncBoard()
		return nil
	}
	u.record(ctx, "task-deleted", fmt.Sprintf("%s: %s", u.current.Name, task.Title))
	u.syncBoard()
	u.status = "task deleted"
	if err := u.loadActivity(ctx); err != nil {
		u.fail(err)
	}
	return nil
}

func (u *UI) openTodoForm(gui *gocui.Gui, _ *gocui.View) error {
	if u.inputActive() || u.todoList == nil {
		return nil
	}
	u.form = &formState{kind: formTodo, fields: buildTodoFields()}
	return nil
}

func (u *UI) openTodoSearch(gui *gocui.Gui, _ *gocui.View) error {
	if u.inputActive() || u.todoList == nil {
		return nil
	}
	u.form = &formState{kind: formTodoSearch, fields: buildTodoSearchFields(u.todoFilter)}
	return nil
}

func (u *UI) selectedTodoItem() (model.Todo, bool) {
	if u.inputActive() || u.focus != viewTodos || u.todoList == nil {
		return model.Todo{}, false
	}
	if u.selectedTodo < 0 || u.selectedTodo >= len(u.todos) {
		return model.Todo{}, false
	}
	return u.todos[u.selectedTodo], true
}

// toggleTodo flips the selected todo between completed and open.
func (u *UI) toggleTodo(gui *gocui.Gui, _ *gocui.View) error {
	item, ok := u.selectedTodoItem()
	if !ok {
		return nil
	}
	ctx, cancel := u.ctx()
	defer cancel()
	updated, err := u.todoList.SetTodoCompleted(ctx, item.ID, !item.Completed)
	if err != nil {
		u.status = err.Error()
		return nil
	}
	u.status = "todo reopened"
	if updated.Completed {
		u.status = "todo completed"
	}
	u.reloadLocal(ctx)
	return nil
}

func (u *UI) deleteTodo(gui *gocui.Gui, _ *gocui.View) error {
	item, ok := u.selectedTodoItem()
	if !ok {
		return nil
	}
	ctx, cancel := u.ctx()
	defer cancel()
	if err := u.todoList.DeleteTodo(ctx, item.ID); err != nil {
		u.status = err.Error()
		return nil
	}
	u.status = "todo deleted"
	u.reloadLocal(ctx)
	return nil
}

func (u *UI) cycleTodoFilter(gui *gocui.Gui, _ *gocui.View) error {
	if u.inputActive() || u.todoList == nil {
		return nil
	}
	u.todoFilter.Status = todo.Cycle(u.todoFilter.Status)
	u.selectedTodo = 0
	ctx, cancel := u.ctx()
	defer cancel()
	if err := u.loadTodos(ctx); err != nil {
		u.fail(err)
	}
	return nil
}

func (u *UI) reloadLocal(ctx context.Context) {
	if err := u.loadTodos(ctx); err != nil {
		u.fail(err)
	}
	if err := u.loadActivity(ctx); err != nil {
		u.fail(err)
	}
}

func (u *UI) selectProject(gui *gocui.Gui, _ *gocui.View) error {
	if u.inputActive() || u.selectedProject >= len(u.projects) {
		return nil
	}
	ctx, cancel := u.ctx()
	defer cancel()
	if err := u.board.Select(ctx, u.projects[u.selectedProject].ID); err != nil {
		u.fail(err)
	} else {
		u.status = ""
	}
	u.selectedTask = 0
	u.syncBoard()
	return nil
}

// cycleMember steps the management member filter through assignable users.
func (u *UI) cycleMember(gui *gocui.Gui, _ *gocui.View) error {
	if u.inputActive() || !u.sess.Role().IsManagement() {
		return nil
	}
	users := u.board.Users()
	if len(users) == 0 {
		return nil
	}
	names := make([]string, 0, len(users))
	for _, user := range users {
		names = append(names, user.Name)
	}
	ctx, cancel := u.ctx()
	defer cancel()
	if err := u.board.FilterByMember(ctx, cycleOption(names, u.board.Member(), 1)); err != nil {
		u.fail(err)
	}
	u.syncBoard()
	return nil
}

func (u *UI) reload(gui *gocui.Gui, _ *gocui.View) error {
	if u.inputActive() {
		return nil
	}
	u.status = ""
	if err := u.load(); err != nil {
		u.fail(err)
	}
	return nil
}

func (u *UI) switchFocus(gui *gocui.Gui, _ *gocui.View) error {
	order := []string{viewAttendance, viewProjects, viewTasks, viewActivity, viewTodos}
	return u.setFocus(gui, cycleOption(order, u.focus, 1))
}

func (u *UI) focusAttendance(gui *gocui.Gui, _ *gocui.View) error {
	return u.setFocus(gui, viewAttendance)
}

func (u *UI) focusProjects(gui *gocui.Gui, _ *gocui.View) error {
	return u.setFocus(gui, viewProjects)
}

func (u *UI) focusTasks(gui *gocui.Gui, _ *gocui.View) error {
	return u.setFocus(gui, viewTasks)
}

func (u *UI) focusActivity(gui *gocui.Gui, _ *gocui.View) error {
	return u.setFocus(gui, viewActivity)
}

func (u *UI) focusTodos(gui *gocui.Gui, _ *gocui.View) error {
	return u.setFocus(gui, viewTodos)
}

func (u *UI) setFocus(gui *gocui.Gui, name string) error {
	if u.inputActive() {
		return nil
	}
	u.focus = name
	if gui != nil {
		_, _ = gui.SetCurrentView(name)
	}
	return nil
}

func (u *UI) moveDown(gui *gocui.Gui, _ *gocui.View) error {
	if u.inputActive() {
		return nil
	}
	switch u.focus {
	case viewProjects:
		u.selectedProject = clamp(u.selectedProject+1, len(u.projects))
	case viewTasks:
		u.selectedTask = clamp(u.selectedTask+1, len(u.current.Tasks))
	case viewActivity:
		u.selectedActivity = clamp(u.selectedActivity+1, len(u.activity))
	case viewTodos:
		u.selectedTodo = clamp(u.selectedTodo+1, len(u.todos))
	}
	return nil
}

func (u *UI) moveUp(gui *gocui.Gui, _ *gocui.View) error {
	if u.inputActive() {
		return nil
	}
	switch u.focus {
	case viewProjects:
		u.selectedProject = clamp(u.selectedProject-1, len(u.projects))
	case viewTasks:
		u.selectedTask = clamp(u.selectedTask-1, len(u.current.Tasks))
	case viewActivity:
		u.selectedActivity = clamp(u.selectedActivity-1, len(u.activity))
	case viewTodos:
		u.selectedTodo = clamp(u.selectedTodo-1, len(u.todos))
	}
	return nil
}

func (u *UI) toggleHelp(gui *gocui.Gui, _ *gocui.View) error {
	if u.form != nil {
		return nil
	}
	u.helpActive = !u.helpActive
	return nil
}

func (u *UI) closeHelp(gui *gocui.Gui, _ *gocui.View) error {
	u.helpActive = false
	_ = gui.DeleteView(viewHelp)
	_, _ = gui.SetCurrentView(u.focus)
	return nil
}

func (u *UI) showHelp(gui *gocui.Gui) error {
	maxX, maxY := gui.Size()
	width := max(60, maxX/2)
	height := 21
	x0 := (maxX - width) / 2
	y0 := (maxY - height) / 2

	view, err := gui.SetView(viewHelp, x0, y0, x0+width, y0+height, 0)
	if err != nil && !goerrors.Is(err, gocui.ErrUnknownView) {
		return err
	}
	if goerrors.Is(err, gocui.ErrUnknownView) {
		view.Title = "Help"
		view.Wrap = true
	}
	view.Clear()
	fmt.Fprint(view, helpText())
	_, _ = gui.SetCurrentView(viewHelp)
	return nil
}

func (u *UI) inputActive() bool {
	return u.form != nil || u.helpActive
}

func (u *UI) quit(_ *gocui.Gui, _ *gocui.View) error {
	if u.form != nil {
		return nil
	}
	return gocui.ErrQuit
}

func helpText() string {
	return strings.Join([]string{
		"Attendance:",
		"  i check in | o check out | l apply for leave",
		"  actions unlock once per day and only one request runs at a time",
		"",
		"Projects:",
		"  enter select project (Projects pane)",
		"  a add task to the selected project",
		"  d delete selected task (Tasks pane)",
		"  m next member filter (admins and team leaders)",
		"",
		"Todo:",
		"  n new todo | x/enter complete or undo | d delete (Todo pane)",
		"  f cycle all/pending/completed | / search title and description",
		"",
		"Forms:",
		"  tab/arrows move between fields | enter submit | esc cancel",
		"  space/left/right cycle assignee and priority",
		"",
		"Other:",
		"  tab cycle panes | 1-5 panes | j/k move | r reload | ? help | q quit",
	}, "\n")
}

func applyViewStyle(view *gocui.View, focused bool) {
	view.Frame = true
	view.Highlight = focused
	view.SelBgColor = gocui.ColorBlue
	view.SelFgColor = gocui.ColorBlack
	if focused {
		view.FrameColor = gocui.ColorCyan
	} else {
		view.FrameColor = gocui.ColorDefault
	}
}

func clamp(index, length int) int {
	if length == 0 || index < 0 {
		return 0
	}
	return min(index, length-1)
}

func sortedNames(workload map[string]int) []string {
	names := make([]string, 0, len(workload))
	for name := range workload {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
