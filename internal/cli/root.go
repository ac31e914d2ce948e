package cli

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/sbdeploy/internal/adapters/progress"
	"github.com/trebuchet-org/sbdeploy/internal/app"
	"github.com/trebuchet-org/sbdeploy/internal/cli/render"
	"github.com/trebuchet-org/sbdeploy/internal/config"
	"github.com/trebuchet-org/sbdeploy/internal/usecase"
)

// contextKey is the type for context keys
type contextKey string

const (
	// appKey is the context key for the app instance
	appKey contextKey = "app"
	// sinkKey is the context key for the progress sink of the running command
	sinkKey contextKey = "sink"
)

// progressAnnotation marks commands that report through a spinner
const progressAnnotation = "progress"

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "sbdeploy",
		Short: "Tagged contract deployment tasks for EVM networks",
		Long: `sbdeploy runs tagged deploy tasks against a network configured in deploy.toml.

Each task resolves the named accounts it needs, deploys its contract with the
constructor arguments configured for the network and records the result under
the deployments directory.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if skipAppInit(cmd) {
				return nil
			}

			projectRoot, err := config.FindProjectRoot()
			if err != nil {
				return err
			}

			v := config.SetupViper(projectRoot, cmd.Flags())
			sink := newProgressSink(cmd)

			appInstance, err := app.InitApp(v, sink)
			if err != nil {
				return fmt.Errorf("failed to initialize app: %w", err)
			}

			ctx := context.WithValue(cmd.Context(), appKey, appInstance)
			ctx = context.WithValue(ctx, sinkKey, sink)

			if appInstance.Config.Timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, appInstance.Config.Timeout)
				cmd.PostRun = func(cmd *cobra.Command, args []string) {
					cancel()
				}
			}

			cmd.SetContext(ctx)
			return nil
		},
	}

	// Global flags
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug output")
	rootCmd.PersistentFlags().Bool("non-interactive", false, "Disable interactive prompts")
	rootCmd.PersistentFlags().StringP("network", "n", "", "Network to use (as named in deploy.toml)")
	rootCmd.PersistentFlags().StringSlice("tags", nil, "Only consider tasks carrying one of these tags")
	rootCmd.PersistentFlags().Duration("timeout", 0, "Abort the command after this duration (default 10m)")

	rootCmd.AddGroup(&cobra.Group{
		ID:    "main",
		Title: "Main Commands",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "management",
		Title: "Management Commands",
	})

	deployCmd := NewDeployCmd()
	deployCmd.GroupID = "main"
	rootCmd.AddCommand(deployCmd)

	listCmd := NewListCmd()
	listCmd.GroupID = "main"
	rootCmd.AddCommand(listCmd)

	showCmd := NewShowCmd()
	showCmd.GroupID = "main"
	rootCmd.AddCommand(showCmd)

	tasksCmd := NewTasksCmd()
	tasksCmd.GroupID = "management"
	rootCmd.AddCommand(tasksCmd)

	networksCmd := NewNetworksCmd()
	networksCmd.GroupID = "management"
	rootCmd.AddCommand(networksCmd)

	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

// skipAppInit reports whether cmd runs without a project
func skipAppInit(cmd *cobra.Command) bool {
	switch cmd.Name() {
	case "version", "help", "completion", cobra.ShellCompRequestCmd, cobra.ShellCompNoDescRequestCmd:
		return true
	}
	return false
}

// newProgressSink picks the progress sink for cmd
func newProgressSink(cmd *cobra.Command) usecase.ProgressSink {
	if cmd.Annotations[progressAnnotation] == "spinner" {
		return progress.NewRunProgress(render.NewDeployRenderer(cmd.OutOrStdout(), !color.NoColor))
	}
	return progress.NewNopSink()
}

// stopProgress stops the command's spinner, if it has one
func stopProgress(cmd *cobra.Command) {
	if s, ok := cmd.Context().Value(sinkKey).(interface{ Stop() }); ok {
		s.Stop()
	}
}

// getApp retrieves the app instance from the command context
func getApp(cmd *cobra.Command) (*app.App, error) {
	appInstance := cmd.Context().Value(appKey)
	if appInstance == nil {
		return nil, fmt.Errorf("app not initialized")
	}

	app, ok := appInstance.(*app.App)
	if !ok {
		return nil, fmt.Errorf("invalid app instance")
	}

	return app, nil
}
