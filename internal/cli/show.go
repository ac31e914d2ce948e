package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/sbdeploy/internal/cli/render"
	"github.com/trebuchet-org/sbdeploy/internal/usecase"
)

// NewShowCmd creates the show command
func NewShowCmd() *cobra.Command {
	var (
		asJSON bool
		asYAML bool
	)

	cmd := &cobra.Command{
		Use:   "show <contract>",
		Short: "Show a recorded deployment",
		Long: `Show the deployment record of a contract on a network.

The network comes from --network; in interactive mode it defaults to the only
configured network when there is exactly one.`,
		Example: `  sbdeploy show SmartBridge --network arbitrumSepolia
  sbdeploy show SmartBridge -n morphHolesky --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if asJSON && asYAML {
				return fmt.Errorf("--json and --yaml are mutually exclusive")
			}

			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			network := app.Config.Network
			if network == "" {
				if names := app.Networks.GetNetworks(cmd.Context()); len(names) == 1 {
					network = names[0]
				} else {
					return fmt.Errorf("no network selected: pass --network")
				}
			}

			record, err := app.ShowDeployment.Run(cmd.Context(), usecase.ShowDeploymentParams{
				Network:      network,
				ContractName: args[0],
			})
			if err != nil {
				return err
			}

			renderer := render.NewDeploymentRenderer(cmd.OutOrStdout(), !color.NoColor)
			switch {
			case asJSON:
				return renderer.RenderJSON(record)
			case asYAML:
				return renderer.RenderYAML(record)
			}

			var explorer string
			if resolved, err := app.Networks.ResolveNetwork(cmd.Context(), network); err == nil {
				explorer = resolved.ExplorerURL
			}
			return renderer.RenderDeployment(record, explorer)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output the record as JSON")
	cmd.Flags().BoolVar(&asYAML, "yaml", false, "Output the record as YAML")

	return cmd
}
