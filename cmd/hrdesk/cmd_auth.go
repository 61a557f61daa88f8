package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/Joseda-hg/hrdesk/internal/model"
	"github.com/Joseda-hg/hrdesk/internal/session"
)

const passwordEnv = "HRDESK_PASSWORD"

func newLoginCmd(a *app) *cobra.Command {
	var (
		employeeID string
		password   string
		remember   bool
	)
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in with an employee id and password",
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				password = os.Getenv(passwordEnv)
			}
			if password == "" {
				return fmt.Errorf("password is required: pass --password or set %s", passwordEnv)
			}
			ctx := cmd.Context()
			result, err := a.client.Login(ctx, employeeID, password)
			if err != nil {
				return err
			}
			sess, err := a.sessions.Start(ctx, result.Token, result.Role, remember)
			if err != nil {
				return err
			}
			user, err := a.client.Me(ctx, sess)
			if err != nil {
				a.logger.Warn("fetch profile", "error", err)
			} else if user.Name != "" {
				sess.SetName(user.Name)
				if err := a.sessions.Update(ctx, sess); err != nil {
					return err
				}
			}
			if err := a.store.AddActivity(ctx, "login", employeeID); err != nil {
				a.logger.Warn("record activity", "kind", "login", "error", err)
			}

			out := struct {
				Name     string     `json:"name"`
				Role     model.Role `json:"role"`
				Remember bool       `json:"remember"`
			}{sess.Name(), sess.Role(), remember}
			return a.print(cmd, out, message("Logged in as %s (%s)", displayName(sess.Name(), employeeID), sess.Role()))
		},
	}
	cmd.Flags().StringVar(&employeeID, "employee-id", "", "employee id")
	cmd.Flags().StringVar(&password, "password", "", "password (defaults to $"+passwordEnv+")")
	cmd.Flags().BoolVar(&remember, "remember", false, "keep the session past the session TTL")
	_ = cmd.MarkFlagRequired("employee-id")
	return cmd
}

func newLogoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := a.sessions.Resume(cmd.Context())
			if errors.Is(err, session.ErrNoSession) || errors.Is(err, session.ErrExpired) {
				return a.print(cmd, map[string]bool{"logged_out": false}, message("Not logged in"))
			}
			if err != nil {
				return err
			}
			a.sessions.Logout(sess)
			return a.print(cmd, map[string]bool{"logged_out": true}, message("Logged out"))
		},
	}
}

func newWhoamiCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged in user",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := a.requireSession(cmd.Context())
			if err != nil {
				return err
			}
			user, err := a.client.Me(cmd.Context(), sess)
			if err != nil {
				return err
			}
			return a.print(cmd, user, func(w io.Writer) error {
				_, err := fmt.Fprintf(w, "%s (%s)\nsession started %s, remember %s\n",
					user.Name, user.Role, sess.CreatedAt().Format("2006-01-02 15:04"), yesNo(sess.Remember()))
				return err
			})
		},
	}
}

func newPasswordCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "password",
		Short: "Password recovery",
	}
	cmd.AddCommand(newPasswordForgotCmd(a))
	cmd.AddCommand(newPasswordResetCmd(a))
	return cmd
}

func newPasswordForgotCmd(a *app) *cobra.Command {
	var email string
	cmd := &cobra.Command{
		Use:   "forgot",
		Short: "Request a password reset link",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.client.ForgotPassword(cmd.Context(), email); err != nil {
				return err
			}
			return a.print(cmd, map[string]string{"email": email}, message("If the account exists, a reset link was sent to %s", email))
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func newPasswordResetCmd(a *app) *cobra.Command {
	var token, password string
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Set a new password with a reset token",
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				password = os.Getenv(passwordEnv)
			}
			if err := a.client.ResetPassword(cmd.Context(), token, password); err != nil {
				return err
			}
			return a.print(cmd, map[string]bool{"reset": true}, message("Password updated"))
		},
	}
	cmd.Flags().StringVar(&token, "token", "", "reset token from the email")
	cmd.Flags().StringVar(&password, "password", "", "new password (defaults to $"+passwordEnv+")")
	_ = cmd.MarkFlagRequired("token")
	return cmd
}

func displayName(name, fallback string) string {
	if name == "" {
		return fallback
	}
	return name
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
