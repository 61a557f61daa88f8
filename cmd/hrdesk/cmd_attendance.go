package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Joseda-hg/hrdesk/internal/attendance"
	"github.com/Joseda-hg/hrdesk/internal/model"
)

const clockLayout = "15:04"

func newAttendanceCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "attendance",
		Aliases: []string{"att"},
		Short:   "Check in, check out and review attendance",
	}
	cmd.AddCommand(newAttendanceStatusCmd(a))
	cmd.AddCommand(newAttendanceActionCmd(a, attendance.ActionCheckIn))
	cmd.AddCommand(newAttendanceActionCmd(a, attendance.ActionCheckOut))
	cmd.AddCommand(newAttendanceMonthCmd(a))
	return cmd
}

type statusView struct {
	Today   model.DateStamp    `json:"today"`
	Status  attendance.Status  `json:"status"`
	Actions attendance.Actions `json:"actions"`
	Summary attendance.Summary `json:"summary"`
}

func newAttendanceStatusCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show today's attendance and the allowed actions",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := a.requireSession(cmd.Context())
			if err != nil {
				return err
			}
			tracker := a.tracker(sess)
			if err := tracker.Refresh(cmd.Context()); err != nil {
				return err
			}
			view := statusView{
				Today:   tracker.Today(),
				Status:  tracker.Status(),
				Actions: tracker.Actions(),
				Summary: attendance.Summarize(tracker.Records()),
			}
			return a.print(cmd, view, func(w io.Writer) error {
				fmt.Fprintf(w, "Today %s\n", view.Today)
				fmt.Fprintf(w, "  checked in: %s  checked out: %s  on leave: %s\n",
					yesNo(view.Status.HasCheckedIn), yesNo(view.Status.HasCheckedOut), yesNo(view.Status.HasLeave))
				fmt.Fprintf(w, "  can check in: %s  can check out: %s  can apply leave: %s\n",
					yesNo(view.Actions.CheckIn), yesNo(view.Actions.CheckOut), yesNo(view.Actions.Leave))
				_, err := fmt.Fprintf(w, "This month: %d present, %d leave, %d check-outs\n",
					view.Summary.Present, view.Summary.Leave, view.Summary.CheckOuts)
				return err
			})
		},
	}
}

func newAttendanceActionCmd(a *app, action attendance.Action) *cobra.Command {
	return &cobra.Command{
		Use:   string(action),
		Short: "Record a " + string(action) + " for today",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := a.requireSession(cmd.Context())
			if err != nil {
				return err
			}
			tracker := a.tracker(sess)
			if err := tracker.Refresh(cmd.Context()); err != nil {
				return err
			}
			run := tracker.CheckIn
			if action == attendance.ActionCheckOut {
				run = tracker.CheckOut
			}
			if err := run(cmd.Context()); err != nil {
				return err
			}
			last, _ := tracker.LastAction()
			out := struct {
				Action string    `json:"action"`
				At     time.Time `json:"at"`
			}{string(last.Action), last.At}
			return a.print(cmd, out, message("%s recorded at %s", action, last.At.Local().Format(clockLayout)))
		},
	}
}

func newAttendanceMonthCmd(a *app) *cobra.Command {
	var month string
	cmd := &cobra.Command{
		Use:   "month",
		Short: "Show the attendance calendar and records for a month",
		RunE: func(cmd *cobra.Command, args []string) error {
			if month == "" {
				month = a.now().Format("2006-01")
			}
			from, to, err := attendance.MonthRange(month)
			if err != nil {
				return err
			}
			sess, err := a.requireSession(cmd.Context())
			if err != nil {
				return err
			}
			records, err := a.client.MyAttendance(cmd.Context(), sess, from, to)
			if err != nil {
				return err
			}
			calendar := attendance.Calendar(records, from.Year(), from.Month())
			out := struct {
				Month    string                   `json:"month"`
				Summary  attendance.Summary       `json:"summary"`
				Calendar []attendance.CalendarDay `json:"calendar"`
				Records  []model.AttendanceRecord `json:"records"`
			}{month, attendance.Summarize(records), calendar, records}

			return a.print(cmd, out, func(w io.Writer) error {
				fmt.Fprintf(w, "%s  %s\n", from.Format("January 2006"), calendarLine(calendar))
				rows := make([][]string, 0, len(records))
				for _, record := range records {
					rows = append(rows, []string{
						stampOrDash(record.CheckInAt, "2006-01-02"),
						stampOrDash(record.CheckInAt, clockLayout),
						stampOrDash(record.CheckOutAt, clockLayout),
						attendance.RowLabel(record),
					})
				}
				if err := table(w, []string{"DATE", "IN", "OUT", "STATUS"}, rows); err != nil {
					return err
				}
				_, err := fmt.Fprintf(w, "%d present, %d leave, %d check-outs\n", out.Summary.Present, out.Summary.Leave, out.Summary.CheckOuts)
				return err
			})
		},
	}
	cmd.Flags().StringVar(&month, "month", "", "month as YYYY-MM (defaults to the current month)")
	return cmd
}

// calendarLine marks each day: "." nothing, "o" open, "#" complete, "L" leave.
func calendarLine(days []attendance.CalendarDay) string {
	var b strings.Builder
	for _, day := range days {
		switch day.Kind {
		case attendance.DayOpen:
			b.WriteByte('o')
		case attendance.DayComplete:
			b.WriteByte('#')
		case attendance.DayLeave:
			b.WriteByte('L')
		default:
			b.WriteByte('.')
		}
	}
	return b.String()
}

func stampOrDash(value *time.Time, layout string) string {
	if value == nil {
		return "-"
	}
	return value.Local().Format(layout)
}
