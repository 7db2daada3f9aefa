package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/taskboard/internal/cli/formatter"
	"github.com/alexanderramin/taskboard/internal/domain"
	"github.com/alexanderramin/taskboard/internal/route"
)

func newProjectCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "project",
		Aliases: []string{"projects"},
		Short:   "Manage projects",
	}

	cmd.AddCommand(
		newProjectListCmd(app),
		newProjectShowCmd(app),
		newProjectCreateCmd(app),
		newProjectUpdateCmd(app),
		newProjectDeleteCmd(app),
	)
	return cmd
}

func newProjectListCmd(app *App) *cobra.Command {
	var pf pageFlags

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List projects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := pf.validate(); err != nil {
				return err
			}
			var page *domain.Page[domain.Project]
			err := withSpinner(app, cmd, "Loading projects...", func() error {
				var err error
				page, err = app.Projects.List(cmd.Context(), domain.ProjectFilter{
					Page: pf.page, Limit: pf.limit, Search: pf.search,
				})
				return err
			})
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatProjectList(page, app.now()))
			return nil
		},
	}

	pf.register(cmd.Flags(), 10)
	return withRoute(cmd, route.Projects)
}

func newProjectShowCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show ID",
		Short: "Show a project and its tasks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := app.Projects.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatProjectDetail(p, app.now()))
			return nil
		},
	}
	return withRoute(cmd, route.ProjectDetail)
}

func newProjectCreateCmd(app *App) *cobra.Command {
	var f projectFields

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if f.Name == "" && app.interactive() {
				if err := projectForm(&f).Run(); err != nil {
					return err
				}
			}
			p, err := app.Projects.Create(cmd.Context(), f.input())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.SuccessLine(fmt.Sprintf("Created project %s (%s)", p.Name, p.ID)))
			return nil
		},
	}

	cmd.Flags().StringVar(&f.Name, "name", "", "Project name")
	cmd.Flags().StringVar(&f.Description, "description", "", "Project description")
	projectStatusFlag(cmd.Flags(), &f.Status, "Initial status")
	return withRoute(cmd, route.Projects)
}

func newProjectUpdateCmd(app *App) *cobra.Command {
	var f projectFields

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update a project's name, description or status",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fs := cmd.Flags()
			patch := domain.ProjectPatch{
				Name:        changedString(fs, "name", f.Name),
				Description: changedString(fs, "description", f.Description),
				Status:      changedEnum(fs, "status", f.Status),
			}
			if patch.Empty() {
				return fmt.Errorf("nothing to update: pass --name, --description or --status")
			}
			p, err := app.Projects.Update(cmd.Context(), args[0], patch)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.SuccessLine("Updated project "+p.Name))
			return nil
		},
	}

	cmd.Flags().StringVar(&f.Name, "name", "", "New name")
	cmd.Flags().StringVar(&f.Description, "description", "", "New description")
	projectStatusFlag(cmd.Flags(), &f.Status, "New status")
	return withRoute(cmd, route.ProjectDetail)
}

func newProjectDeleteCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes && app.interactive() {
				confirmed := false
				if err := confirmForm("Delete project "+args[0]+"?", &confirmed).Run(); err != nil {
					return err
				}
				if !confirmed {
					fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Cancelled."))
					return nil
				}
			}
			if err := app.Projects.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.SuccessLine("Deleted project "+args[0]))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return withRoute(cmd, route.ProjectDetail)
}
