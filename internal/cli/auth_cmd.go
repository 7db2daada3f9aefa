package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/taskboard/internal/cli/formatter"
	"github.com/alexanderramin/taskboard/internal/domain"
	"github.com/alexanderramin/taskboard/internal/route"
)

// withSpinner runs fn with a spinner on the error stream when interactive.
func withSpinner(app *App, cmd *cobra.Command, msg string, fn func() error) error {
	if !app.interactive() {
		return fn()
	}
	stop := formatter.StartSpinner(cmd.ErrOrStderr(), msg)
	defer stop()
	return fn()
}

func newLoginCmd(app *App) *cobra.Command {
	var req domain.LoginRequest

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if (req.Email == "" || req.Password == "") && app.interactive() {
				if err := loginForm(&req).Run(); err != nil {
					return err
				}
			}

			var user *domain.User
			err := withSpinner(app, cmd, "Signing in...", func() error {
				var err error
				user, err = app.Session.Login(cmd.Context(), req)
				return err
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.SuccessLine("Signed in as "+user.DisplayName()))
			return nil
		},
	}

	cmd.Flags().StringVar(&req.Email, "email", "", "Account email")
	cmd.Flags().StringVar(&req.Password, "password", "", "Account password")
	return withRoute(cmd, route.Login)
}

func newRegisterCmd(app *App) *cobra.Command {
	var req domain.RegisterRequest

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if (req.Email == "" || req.Password == "") && app.interactive() {
				if err := registerForm(&req).Run(); err != nil {
					return err
				}
			}

			err := withSpinner(app, cmd, "Creating account...", func() error {
				return app.Session.Register(cmd.Context(), req)
			})
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, formatter.SuccessLine("Account created for "+req.Email))
			fmt.Fprintln(out, formatter.Dim("Run `taskboard login` to sign in."))
			return nil
		},
	}

	cmd.Flags().StringVar(&req.Email, "email", "", "Account email")
	cmd.Flags().StringVar(&req.Password, "password", "", "Account password")
	cmd.Flags().StringVar(&req.Name, "name", "", "Display name (optional)")
	return withRoute(cmd, route.Register)
}

// logout carries no route so it also succeeds when already signed out.
func newLogoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and clear the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Session.Logout(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.SuccessLine("Signed out"))
			return nil
		},
	}
}

func newProfileCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show the signed-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var user *domain.User
			err := withSpinner(app, cmd, "Loading profile...", func() error {
				var err error
				user, err = app.Session.RefreshProfile(cmd.Context())
				return err
			})
			if err != nil {
				return err
			}

			var expires *time.Time
			if exp, ok := app.Session.ExpiresAt(); ok {
				expires = &exp
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatProfile(user, expires, app.now()))
			return nil
		},
	}
	return withRoute(cmd, route.Profile)
}
