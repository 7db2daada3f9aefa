package main

import (
	"context"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/alexanderramin/taskboard/internal/api"
	"github.com/alexanderramin/taskboard/internal/cli"
	"github.com/alexanderramin/taskboard/internal/config"
	"github.com/alexanderramin/taskboard/internal/db"
	"github.com/alexanderramin/taskboard/internal/route"
	"github.com/alexanderramin/taskboard/internal/service"
	"github.com/alexanderramin/taskboard/internal/session"
	"github.com/alexanderramin/taskboard/internal/storage"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	// Open the session database
	database, err := db.OpenDB(cfg.DBPath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: opening session store: %v\n", err)
		return 1
	}
	defer database.Close()

	store := storage.NewSQLiteSessionStorage(database, db.NewSQLiteUnitOfWork(database))
	nav := route.NewNavigator(route.Default)

	// Wire the HTTP client; call logging is opt-in since it shares stderr
	// with the TUI.
	var (
		clientOpts []api.Option
		observers  []service.UseCaseObserver
	)
	if cfg.LogCalls {
		clientOpts = append(clientOpts, api.WithObserver(api.NewLogObserver(os.Stderr)))
		observers = append(observers, service.NewLogUseCaseObserver(os.Stderr))
	}
	client := api.New(cfg, store, nav, clientOpts...)

	sess := session.New(store, service.NewAuthService(client, observers...), nav)
	defer sess.Close()
	if err := sess.Init(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	app := &cli.App{
		Session:  sess,
		Projects: service.NewProjectService(client, observers...),
		Tasks:    service.NewTaskService(client, observers...),
		Team:     service.NewTeamService(client),
		Nav:      nav,
	}

	// Prompts and the TUI only run on a terminal.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	return cli.Execute(app, os.Args[1:], os.Stdout, os.Stderr)
}
