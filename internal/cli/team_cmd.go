package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/taskboard/internal/cli/formatter"
	"github.com/alexanderramin/taskboard/internal/route"
)

func newTeamCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "team",
		Short: "Browse team members and their tasks",
	}

	members := withRoute(&cobra.Command{
		Use:   "members",
		Short: "List team members",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ms, err := app.Team.Members(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatMembers(ms))
			return nil
		},
	}, route.Team)

	tasks := withRoute(&cobra.Command{
		Use:   "tasks MEMBER_ID",
		Short: "List tasks assigned to a team member",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ts, err := app.Team.MemberTasks(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatTasks(ts, app.now()))
			return nil
		},
	}, route.Team)

	cmd.AddCommand(members, tasks)
	return cmd
}
