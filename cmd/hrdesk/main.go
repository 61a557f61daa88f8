package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/Joseda-hg/hrdesk/internal/api"
)

var version = "dev"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	return runApp(newApp(), args, stdout, stderr)
}

func runApp(a *app, args []string, stdout, stderr io.Writer) int {
	defer a.close()

	root := newRootCmd(a)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.Execute(); err != nil {
		fmt.Fprintf(stderr, "Error: %s\n", api.Message(err))
		return 1
	}
	return 0
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "hrdesk",
		Short:         "hrdesk - terminal client for the HR portal",
		Long:          "Attendance, leave, projects and admin tools for the HR backend, as a CLI, a terminal UI and a local dashboard.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	addGlobalFlags(root, &a.opts)

	root.AddCommand(newLoginCmd(a))
	root.AddCommand(newLogoutCmd(a))
	root.AddCommand(newWhoamiCmd(a))
	root.AddCommand(newPasswordCmd(a))
	root.AddCommand(newAttendanceCmd(a))
	root.AddCommand(newLeaveCmd(a))
	root.AddCommand(newProjectCmd(a))
	root.AddCommand(newAdminCmd(a))
	root.AddCommand(newFinanceCmd(a))
	root.AddCommand(newTodoCmd(a))
	root.AddCommand(newActivityCmd(a))
	root.AddCommand(newTUICmd(a))
	root.AddCommand(newServeCmd(a))
	return root
}
