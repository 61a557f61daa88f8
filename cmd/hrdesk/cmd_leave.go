package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/Joseda-hg/hrdesk/internal/leave"
	"github.com/Joseda-hg/hrdesk/internal/model"
)

func newLeaveCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "leave",
		Short: "Apply for leave and review applications",
	}
	cmd.AddCommand(newLeaveApplyCmd(a))
	cmd.AddCommand(newLeaveListCmd(a))
	cmd.AddCommand(newLeavePendingCmd(a))
	cmd.AddCommand(newLeaveDecideCmd(a, "approve"))
	cmd.AddCommand(newLeaveDecideCmd(a, "reject"))
	return cmd
}

func newLeaveApplyCmd(a *app) *cobra.Command {
	var from, to, reason, document string
	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Apply for leave",
		RunE: func(cmd *cobra.Command, args []string) error {
			if to == "" {
				to = from
			}
			start, err := model.ParseDate(from)
			if err != nil {
				return err
			}
			end, err := model.ParseDate(to)
			if err != nil {
				return err
			}
			sess, err := a.requireSession(cmd.Context())
			if err != nil {
				return err
			}
			tracker := a.tracker(sess)
			if err := tracker.Refresh(cmd.Context()); err != nil {
				return err
			}
			req := model.LeaveRequest{StartDate: start, EndDate: end, Reason: reason, Document: document}
			if err := a.leaves(sess, tracker).Apply(cmd.Context(), req); err != nil {
				return err
			}
			out := struct {
				From   model.Date `json:"from"`
				To     model.Date `json:"to"`
				Reason string     `json:"reason"`
			}{start, end, reason}
			return a.print(cmd, out, message("Leave applied for %s to %s", start, end))
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "first day of leave (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "last day of leave (defaults to --from)")
	cmd.Flags().StringVar(&reason, "reason", "", "reason for the leave")
	cmd.Flags().StringVar(&document, "document", "", "supporting document to upload")
	_ = cmd.MarkFlagRequired("from")
	return cmd
}

func newLeaveListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List my leave applications",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := a.requireSession(cmd.Context())
			if err != nil {
				return err
			}
			leaves, err := a.leaves(sess, nil).Mine(cmd.Context())
			if err != nil {
				return err
			}
			return a.print(cmd, leaves, leaveTable(leaves))
		},
	}
}

func newLeavePendingCmd(a *app) *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "pending",
		Short: "List applications awaiting a decision",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := a.requireSession(cmd.Context())
			if err != nil {
				return err
			}
			leaves, err := a.leaves(sess, nil).Applications(cmd.Context(), !all)
			if err != nil {
				return err
			}
			return a.print(cmd, leaves, leaveTable(leaves))
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "include decided applications")
	return cmd
}

func newLeaveDecideCmd(a *app, decision string) *cobra.Command {
	return &cobra.Command{
		Use:   decision + " ID",
		Short: cases.Title(language.English).String(decision) + " a pending leave application",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			status, err := leave.ParseDecision(decision)
			if err != nil {
				return err
			}
			sess, err := a.requireSession(cmd.Context())
			if err != nil {
				return err
			}
			leaves, err := a.leaves(sess, nil).Decide(cmd.Context(), id, status)
			if err != nil {
				return err
			}
			return a.print(cmd, leaves, message("Leave %d %s", id, leave.Label(status)))
		},
	}
}

func leaveTable(leaves []model.Leave) func(w io.Writer) error {
	return func(w io.Writer) error {
		if len(leaves) == 0 {
			_, err := fmt.Fprintln(w, "No leave applications")
			return err
		}
		rows := make([][]string, 0, len(leaves))
		for _, l := range leaves {
			rows = append(rows, []string{
				strconv.FormatInt(l.ID, 10),
				l.EmployeeName,
				l.StartDate.String(),
				l.EndDate.String(),
				leave.Label(l.Status),
				l.Reason,
			})
		}
		return table(w, []string{"ID", "EMPLOYEE", "FROM", "TO", "STATUS", "REASON"}, rows)
	}
}

func parseID(value string) (int64, error) {
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", value)
	}
	return id, nil
}

