package cli

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/sbdeploy/internal/cli/render"
	"github.com/trebuchet-org/sbdeploy/internal/usecase"
)

// NewNetworksCmd creates the networks command
func NewNetworksCmd() *cobra.Command {
	var probe bool

	cmd := &cobra.Command{
		Use:   "networks",
		Short: "List networks from deploy.toml",
		Long: `List all networks configured in the [networks] section of deploy.toml.

Networks without a configured chain_id are contacted to read it. Pass --probe
to check every network's RPC endpoint.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.ListNetworks.Run(cmd.Context(), usecase.ListNetworksParams{Probe: probe})
			if err != nil {
				return err
			}

			renderer := render.NewNetworksRenderer(cmd.OutOrStdout(), !color.NoColor)
			return renderer.RenderNetworksList(result)
		},
	}

	cmd.Flags().BoolVar(&probe, "probe", false, "Connect to every network to check its RPC endpoint")

	return cmd
}
