package cli

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/sbdeploy/internal/cli/render"
	"github.com/trebuchet-org/sbdeploy/internal/usecase"
)

// NewListCmd creates the list command
func NewListCmd() *cobra.Command {
	var contractName string

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List recorded deployments",
		Long: `List all deployments recorded under the deployments directory.

The list can be filtered by network or contract name.`,
		Example: `  # List all deployments
  sbdeploy list

  # List SmartBridge deployments on one network
  sbdeploy list --network arbitrumSepolia --contract SmartBridge`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			params := usecase.ListDeploymentsParams{
				Network:      app.Config.Network,
				ContractName: contractName,
			}

			result, err := app.ListDeployments.Run(cmd.Context(), params)
			if err != nil {
				return err
			}

			renderer := render.NewDeploymentsRenderer(cmd.OutOrStdout(), !color.NoColor)
			return renderer.RenderDeploymentList(result)
		},
	}

	cmd.Flags().StringVar(&contractName, "contract", "", "Filter by contract name")

	return cmd
}
