package tui

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/Joseda-hg/hrdesk/internal/api"
	"github.com/Joseda-hg/hrdesk/internal/attendance"
	"github.com/Joseda-hg/hrdesk/internal/db"
	"github.com/Joseda-hg/hrdesk/internal/fakehr"
	"github.com/Joseda-hg/hrdesk/internal/leave"
	"github.com/Joseda-hg/hrdesk/internal/logger"
	"github.com/Joseda-hg/hrdesk/internal/model"
	"github.com/Joseda-hg/hrdesk/internal/projects"
	"github.com/Joseda-hg/hrdesk/internal/session"
)

var testNow = time.Date(2025, time.September, 10, 9, 0, 0, 0, time.UTC)

func TestCheckInThenCheckOut(t *testing.T) {
	ui, backend, store := newTestUI(t, fakehr.EmployeeID)

	if err := ui.checkIn(nil, nil); err != nil {
		t.Fatalf("check in: %v", err)
	}
	if ui.status != "check-in recorded" {
		t.Fatalf("unexpected status %q", ui.status)
	}
	if !ui.tracker.Status().HasCheckedIn {
		t.Fatalf("expected tracker to report check-in")
	}
	if got := len(backend.Attendance(fakehr.EmployeeUser)); got != 1 {
		t.Fatalf("expected 1 server record, got %d", got)
	}
	if len(ui.activity) != 1 || ui.activity[0].Kind != "check-in" {
		t.Fatalf("expected check-in activity, got %+v", ui.activity)
	}

	if err := ui.checkIn(nil, nil); err != nil {
		t.Fatalf("second check in: %v", err)
	}
	if ui.status != attendance.ErrAlreadySettled.Error() {
		t.Fatalf("expected settled error, got %q", ui.status)
	}

	if err := ui.checkOut(nil, nil); err != nil {
		t.Fatalf("check out: %v", err)
	}
	if !ui.tracker.Status().HasCheckedOut {
		t.Fatalf("expected tracker to report check-out")
	}
	activity, err := store.ListActivity(context.Background(), 10)
	if err != nil {
		t.Fatalf("list activity: %v", err)
	}
	if len(activity) != 2 {
		t.Fatalf("expected 2 activity rows, got %d", len(activity))
	}
}

func TestUnauthorizedShowsExpiredSession(t *testing.T) {
	ui, backend, _ := newTestUI(t, fakehr.EmployeeID)
	backend.Revoke(ui.sess.Token())

	if err := ui.checkIn(nil, nil); err != nil {
		t.Fatalf("check in: %v", err)
	}
	if ui.status != expiredStatus {
		t.Fatalf("expected expired status, got %q", ui.status)
	}
	if ui.sess.Valid() {
		t.Fatalf("expected session to end on 401")
	}
}

func TestLeaveForm(t *testing.T) {
	ui, backend, _ := newTestUI(t, fakehr.EmployeeID)

	if err := ui.openLeaveForm(nil, nil); err != nil {
		t.Fatalf("open leave form: %v", err)
	}
	if ui.form == nil || ui.form.kind != formLeave {
		t.Fatalf("expected leave form")
	}
	if ui.form.fields[fieldStart].Value != "2025-09-10" {
		t.Fatalf("expected start to default to today, got %q", ui.form.fields[fieldStart].Value)
	}

	if err := ui.submitForm(nil, nil); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if ui.form == nil {
		t.Fatalf("expected form to stay open without a reason")
	}
	if !strings.Contains(ui.status, "reason is required") {
		t.Fatalf("unexpected status %q", ui.status)
	}

	ui.form.fields[fieldEnd].Value = "2025-09-12"
	ui.form.fields[fieldReason].Value = "Family visit"
	if err := ui.submitForm(nil, nil); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if ui.form != nil {
		t.Fatalf("expected form to close, status %q", ui.status)
	}

	found := false
	for _, l := range backend.Leaves() {
		if l.EmployeeName == "Alice" && l.Reason == "Family visit" && l.Status == model.LeavePending {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected pending leave on the server")
	}
	if ui.tracker.Phase(attendance.ActionLeave) != attendance.Idle {
		t.Fatalf("expected leave slot to be released")
	}
}

func TestLeaveFormBlockedAfterCheckIn(t *testing.T) {
	ui, _, _ := newTestUI(t, fakehr.EmployeeID)
	if err := ui.checkIn(nil, nil); err != nil {
		t.Fatalf("check in: %v", err)
	}
	if err := ui.openLeaveForm(nil, nil); err != nil {
		t.Fatalf("open leave form: %v", err)
	}
	if ui.form != nil {
		t.Fatalf("expected leave form to stay closed")
	}
}

func TestAddAndDeleteTask(t *testing.T) {
	ui, backend, _ := newTestUI(t, fakehr.EmployeeID)
	if !ui.hasCurrent || ui.current.Name != "Apollo" {
		t.Fatalf("expected Apollo selected, got %+v", ui.current.Name)
	}
	if got := ui.metrics.Workload["Alice"]; got != 1 {
		t.Fatalf("expected Alice workload 1, got %d", got)
	}

	if err := ui.openTaskForm(nil, nil); err != nil {
		t.Fatalf("open task form: %v", err)
	}
	ui.form.fields[fieldTitle].Value = "Write runbook"
	ui.form.fields[fieldDue].Value = "2025-09-20"
	if err := ui.submitForm(nil, nil); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if ui.form != nil {
		t.Fatalf("expected form to close, status %q", ui.status)
	}
	if len(ui.current.Tasks) != 3 {
		t.Fatalf("expected 3 tasks, got %d", len(ui.current.Tasks))
	}
	if got := ui.metrics.Workload["Alice"]; got != 2 {
		t.Fatalf("expected Alice workload 2, got %d", got)
	}

	ui.focus = viewTasks
	ui.selectedTask = len(ui.current.Tasks) - 1
	if err := ui.deleteTask(nil, nil); err != nil {
		t.Fatalf("delete: %v", err)
	}
	project, _ := backend.ProjectSnapshot(1)
	if len(project.Tasks) != 2 || len(ui.current.Tasks) != 2 {
		t.Fatalf("expected 2 tasks after delete, server %d ui %d", len(project.Tasks), len(ui.current.Tasks))
	}

	kinds := map[string]bool{}
	for _, entry := range ui.activity {
		kinds[entry.Kind] = true
	}
	if !kinds["task-added"] || !kinds["task-deleted"] {
		t.Fatalf("expected task activity, got %+v", ui.activity)
	}
}

func TestTaskFormRequiresAssignee(t *testing.T) {
	fields := buildTaskFields(nil)
	fields[fieldTitle].Value = "Orphan"
	if _, err := parseTaskFields(fields, nil); err == nil {
		t.Fatalf("expected assignee error")
	}
}

func TestMemberFilterCycles(t *testing.T) {
	ui, _, _ := newTestUI(t, fakehr.AdminID)
	if ui.board.Member() != "Alice" {
		t.Fatalf("expected default member Alice, got %q", ui.board.Member())
	}
	if len(ui.projects) != 1 {
		t.Fatalf("expected 1 visible project, got %d", len(ui.projects))
	}

	if err := ui.cycleMember(nil, nil); err != nil {
		t.Fatalf("cycle member: %v", err)
	}
	if ui.board.Member() != "Tara" {
		t.Fatalf("expected Tara, got %q", ui.board.Member())
	}
	if len(ui.projects) != 2 {
		t.Fatalf("expected 2 visible projects, got %d", len(ui.projects))
	}
}

func TestTodoPaneAddCompleteFilterDelete(t *testing.T) {
	ui, _, store := newTestUI(t, fakehr.EmployeeID)
	ctx := context.Background()

	if err := ui.openTodoForm(nil, nil); err != nil {
		t.Fatalf("open todo form: %v", err)
	}
	if err := ui.submitForm(nil, nil); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if ui.form == nil || !strings.Contains(ui.status, "title is required") {
		t.Fatalf("expected form to stay open without a title, status %q", ui.status)
	}

	ui.form.fields[todoFieldTitle].Value = "Send offer letter"
	ui.form.fields[todoFieldDue].Value = "2025-09-09"
	ui.form.fields[todoFieldPriority].Value = cycleOption(model.TodoPriorities, ui.form.fields[todoFieldPriority].Value, -1)
	if err := ui.submitForm(nil, nil); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if ui.form != nil {
		t.Fatalf("expected form to close, status %q", ui.status)
	}
	if _, err := store.CreateTodo(ctx, model.TodoInput{Title: "Book room"}); err != nil {
		t.Fatalf("create todo: %v", err)
	}
	if err := ui.reload(nil, nil); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if len(ui.todos) != 2 || ui.todoCounts.Total != 2 {
		t.Fatalf("expected 2 todos, got %+v", ui.todos)
	}
	offer := ui.todos[1]
	if offer.Title != "Send offer letter" || offer.Priority != "High" {
		t.Fatalf("unexpected todo %+v", offer)
	}
	if !strings.Contains(formatTodo(offer, testNow), "Overdue") {
		t.Fatalf("expected overdue flag in %q", formatTodo(offer, testNow))
	}

	if err := ui.toggleTodo(nil, nil); err != nil {
		t.Fatalf("toggle outside pane: %v", err)
	}
	if ui.todoCounts.Completed != 0 {
		t.Fatalf("expected toggle to need the Todo pane focused")
	}

	if err := ui.focusTodos(nil, nil); err != nil {
		t.Fatalf("focus: %v", err)
	}
	if err := ui.moveDown(nil, nil); err != nil {
		t.Fatalf("move: %v", err)
	}
	if err := ui.toggleTodo(nil, nil); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if ui.status != "todo completed" || ui.todoCounts.Completed != 1 {
		t.Fatalf("expected completion, status %q counts %+v", ui.status, ui.todoCounts)
	}
	if strings.Contains(formatTodo(ui.todos[1], testNow), "Overdue") {
		t.Fatalf("completed todo should not be flagged")
	}

	if err := ui.cycleTodoFilter(nil, nil); err != nil {
		t.Fatalf("filter: %v", err)
	}
	if ui.todoFilter.Status != model.TodoPending || len(ui.todos) != 1 || ui.todos[0].Title != "Book room" {
		t.Fatalf("expected pending filter to hide the completed todo, got %+v", ui.todos)
	}

	if err := ui.openTodoSearch(nil, nil); err != nil {
		t.Fatalf("open search: %v", err)
	}
	ui.form.fields[searchFieldQuery].Value = "offer"
	ui.form.fields[searchFieldStatus].Value = string(model.TodoAll)
	if err := ui.submitForm(nil, nil); err != nil {
		t.Fatalf("submit search: %v", err)
	}
	if len(ui.todos) != 1 || ui.todos[0].Title != "Send offer letter" {
		t.Fatalf("expected search to match one todo, got %+v", ui.todos)
	}

	if err := ui.deleteTodo(nil, nil); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if ui.status != "todo deleted" || len(ui.todos) != 0 || ui.todoCounts.Total != 1 {
		t.Fatalf("expected deletion, status %q todos %+v", ui.status, ui.todos)
	}
	if len(ui.activity) == 0 || ui.activity[0].Kind != "todo-deleted" {
		t.Fatalf("expected todo-deleted activity, got %+v", ui.activity)
	}
}

func TestCycleOption(t *testing.T) {
	if got := cycleOption(priorities, "High", 1); got != "Low" {
		t.Fatalf("expected wrap to Low, got %q", got)
	}
	if got := cycleOption(priorities, "Low", -1); got != "High" {
		t.Fatalf("expected wrap to High, got %q", got)
	}
	if got := cycleOption(priorities, "unknown", 1); got != "Low" {
		t.Fatalf("expected first option, got %q", got)
	}
	if got := cycleOption(nil, "x", 1); got != "" {
		t.Fatalf("expected empty, got %q", got)
	}
}

func TestCalendarStrip(t *testing.T) {
	in := time.Date(2025, time.September, 2, 9, 0, 0, 0, time.UTC)
	out := in.Add(8 * time.Hour)
	records := []model.AttendanceRecord{{CheckInAt: &in, CheckOutAt: &out, Status: "Present"}}
	strip := calendarStrip(attendance.Calendar(records, 2025, time.September))
	if len(strip) != 30 || strip[:3] != ".#." {
		t.Fatalf("unexpected strip %q", strip)
	}
}

func newTestUI(t *testing.T, employeeID string) (*UI, *fakehr.Server, *db.Store) {
	t.Helper()
	backend := fakehr.New()
	backend.SetClock(func() time.Time { return testNow })
	server := backend.Serve()
	t.Cleanup(server.Close)

	store, cleanup := newTestStore(t)
	t.Cleanup(cleanup)

	client := api.New(api.Options{BaseURL: server.URL, Timeout: 5 * time.Second, Logger: logger.Discard()})
	result, err := client.Login(context.Background(), employeeID, fakehr.Password)
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	sess := session.New(result.Token, result.Role, false, testNow)
	bound := client.As(sess)

	clock := func() time.Time { return testNow }
	tracker := attendance.NewTracker(bound, attendance.WithClock(clock), attendance.WithLogger(logger.Discard()), attendance.WithRecorder(store))
	board := projects.NewBoard(bound, sess.Role(), sess.Name(), logger.Discard())
	board.SetClock(clock)

	ui := newUI(Deps{
		Session:  sess,
		Tracker:  tracker,
		Board:    board,
		Leaves:   leave.NewService(bound, tracker, store, logger.Discard()),
		Activity: store,
		Todos:    store,
		Logger:   logger.Discard(),
	})
	ui.now = clock
	if err := ui.load(); err != nil {
		t.Fatalf("load: %v", err)
	}
	return ui, backend, store
}

func newTestStore(t *testing.T) (*db.Store, func()) {
	t.Helper()
	dbConn, err := db.Open(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	return db.NewStore(dbConn), func() {
		_ = dbConn.Close()
	}
}
