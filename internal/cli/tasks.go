package cli

import (
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/sbdeploy/internal/cli/render"
	"github.com/trebuchet-org/sbdeploy/internal/usecase"
)

// NewTasksCmd creates the tasks command
func NewTasksCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tasks",
		Short: "List registered deploy tasks and their tags",
		Long: `List the registered deploy tasks in execution order.

Tasks selected by --tags are marked; without --tags every task is selected.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.ListTasks.Run(cmd.Context(), usecase.ListTasksParams{
				Tags: app.Config.Tags,
			})
			if err != nil {
				return err
			}

			return render.NewTasksRenderer(cmd.OutOrStdout()).Render(result)
		},
	}
}
