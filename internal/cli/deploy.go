package cli

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/sbdeploy/internal/cli/render"
	"github.com/trebuchet-org/sbdeploy/internal/usecase"
)

// NewDeployCmd creates the deploy command
func NewDeployCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Run deploy tasks against a network",
		Long: `Run every registered deploy task that matches --tags against the selected network.

Tasks run one after another; the first failure stops the run. A contract whose
bytecode and constructor arguments match its recorded deployment is reused
instead of deployed again.`,
		Example: `  # Deploy everything to Arbitrum Sepolia
  sbdeploy deploy --network arbitrumSepolia

  # Only run SmartBridge
  sbdeploy deploy -n morphHolesky --tags SmartBridge`,
		Args:        cobra.NoArgs,
		Annotations: map[string]string{progressAnnotation: "spinner"},
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			params := usecase.RunDeployParams{
				Network: app.Config.Network,
				Tags:    app.Config.Tags,
			}

			result, err := app.RunDeploy.Run(cmd.Context(), params)
			stopProgress(cmd)
			if err != nil {
				return err
			}

			renderer := render.NewDeployRenderer(cmd.OutOrStdout(), !color.NoColor)
			return renderer.RenderResult(result)
		},
	}

	return cmd
}
