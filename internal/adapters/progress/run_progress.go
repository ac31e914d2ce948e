package progress

import (
	"context"

	"github.com/trebuchet-org/sbdeploy/internal/cli/render"
	"github.com/trebuchet-org/sbdeploy/internal/domain/config"
	"github.com/trebuchet-org/sbdeploy/internal/usecase"
)

// RunProgress prints the deploy banner once connected, then reports through a spinner
type RunProgress struct {
	renderer *render.DeployRenderer
	spinner  *SpinnerProgressReporter
	bannered bool
}

func NewRunProgress(renderer *render.DeployRenderer) *RunProgress {
	return &RunProgress{
		renderer: renderer,
		spinner:  NewSpinnerProgressReporter(),
	}
}

// OnProgress prints the banner before the first task runs
func (n *RunProgress) OnProgress(ctx context.Context, event usecase.ProgressEvent) {
	if event.Stage == string(usecase.StageRunning) && !n.bannered {
		if network, ok := event.Metadata.(*config.Network); ok {
			n.spinner.Stop()
			n.renderer.PrintDeployBanner(network)
			n.bannered = true
		}
	}

	n.spinner.OnProgress(ctx, event)
}

// Info prints through the spinner
func (n *RunProgress) Info(message string) {
	n.spinner.Info(message)
}

// Error prints through the spinner
func (n *RunProgress) Error(message string) {
	n.spinner.Error(message)
}

// Stop stops the spinner
func (n *RunProgress) Stop() {
	n.spinner.Stop()
}

// Ensure RunProgress implements ProgressSink
var _ usecase.ProgressSink = (*RunProgress)(nil)
