package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/taskboard/internal/api"
	"github.com/alexanderramin/taskboard/internal/route"
	"github.com/alexanderramin/taskboard/internal/service"
	"github.com/alexanderramin/taskboard/internal/session"
)

// App holds everything CLI commands and TUI views need.
type App struct {
	Session  *session.Store
	Projects service.ProjectService
	Tasks    service.TaskService
	Team     service.TeamService
	Nav      *route.Navigator

	// IsInteractive reports whether stdin is a terminal. Nil means false.
	IsInteractive func() bool
	// Now is the clock used for relative dates. Nil means time.Now.
	Now func() time.Time

	// ranOn is the route the last guarded command rendered.
	ranOn string
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

var (
	// ErrNotLoggedIn is returned by protected commands without a session.
	ErrNotLoggedIn = errors.New("not logged in")
	// ErrAlreadyLoggedIn is returned by login and register with a session.
	ErrAlreadyLoggedIn = errors.New("already logged in")
)

// routeAnnotation tags a command with the logical route it renders.
const routeAnnotation = "taskboard.route"

func withRoute(cmd *cobra.Command, pattern string) *cobra.Command {
	if cmd.Annotations == nil {
		cmd.Annotations = map[string]string{}
	}
	cmd.Annotations[routeAnnotation] = pattern
	return cmd
}

// commandRoute returns the concrete route for cmd, filling ":id" from the
// first positional argument.
func commandRoute(cmd *cobra.Command, args []string) (string, bool) {
	pattern, ok := cmd.Annotations[routeAnnotation]
	if !ok {
		return "", false
	}
	if strings.Contains(pattern, ":id") {
		if len(args) == 0 {
			return strings.TrimSuffix(pattern, "/:id"), true
		}
		return strings.Replace(pattern, ":id", args[0], 1), true
	}
	return pattern, true
}

// NewRootCmd creates the top-level "taskboard" command. Commands tagged with
// a route are guarded before they run.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "taskboard",
		Short:         "Terminal client for the taskboard project and task service",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return guardCommand(app, cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.interactive() {
				return runTUI(app)
			}
			return cmd.Help()
		},
	}

	root.AddCommand(
		newLoginCmd(app),
		newRegisterCmd(app),
		newLogoutCmd(app),
		newProfileCmd(app),
		newProjectCmd(app),
		newTaskCmd(app),
		newTeamCmd(app),
		newUICmd(app),
	)

	return root
}

func guardCommand(app *App, cmd *cobra.Command, args []string) error {
	path, ok := commandRoute(cmd, args)
	if !ok {
		return nil
	}
	app.Nav.Navigate(path)
	app.ranOn = path

	d := route.Guard(app.Session.IsAuthenticated(), path)
	if d.Render {
		return nil
	}
	app.Nav.Navigate(d.RedirectTo)
	if d.RedirectTo == route.Login {
		return fmt.Errorf("%w: run `taskboard login` first", ErrNotLoggedIn)
	}
	who := app.Session.User().DisplayName()
	if who == "" {
		return fmt.Errorf("%w: run `taskboard logout` first", ErrAlreadyLoggedIn)
	}
	return fmt.Errorf("%w as %s: run `taskboard logout` first", ErrAlreadyLoggedIn, who)
}

// ErrorMessage renders err for the terminal. Backend failures use the
// user-facing message table; a rejected session adds a login hint.
func (a *App) ErrorMessage(err error) string {
	if !isBackendError(err) {
		return err.Error()
	}
	msg := api.UserMessage(err)
	// A forced logout has already moved the navigator to login, so the
	// command's own route decides whether the session was rejected.
	if api.IsUnauthorized(err) && !a.Session.IsAuthenticated() && a.ranOn != "" && !route.IsPublic(a.ranOn) {
		msg += " Run `taskboard login` to sign in again."
	}
	return msg
}

func isBackendError(err error) bool {
	var apiErr *api.Error
	return errors.As(err, &apiErr) ||
		errors.Is(err, api.ErrNoResponse) ||
		errors.Is(err, api.ErrRequestSetup) ||
		errors.Is(err, api.ErrDecodeResponse)
}

// Execute runs the root command and prints failures as "Error: <msg>" on
// stderr. Returns the process exit code.
func Execute(app *App, args []string, stdout, stderr io.Writer) int {
	root := NewRootCmd(app)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	if err := root.Execute(); err != nil {
		fmt.Fprintf(stderr, "Error: %s\n", app.ErrorMessage(err))
		return 1
	}
	return 0
}
