package progress

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/trebuchet-org/sbdeploy/internal/usecase"
)

// SpinnerProgressReporter implements progress reporting with a spinner
type SpinnerProgressReporter struct {
	spinner        *spinner.Spinner
	stages         []stageInfo
	currentStage   usecase.ExecutionStage
	stageStartTime time.Time
}

type stageInfo struct {
	Stage     usecase.ExecutionStage
	StartTime time.Time
	EndTime   time.Time
	Status    string
	Message   string
}

// NewSpinnerProgressReporter creates a new spinner-based progress reporter
func NewSpinnerProgressReporter() *SpinnerProgressReporter {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	s.HideCursor = false

	return &SpinnerProgressReporter{
		spinner: s,
		stages:  []stageInfo{},
	}
}

// reportStage records a stage transition
func (r *SpinnerProgressReporter) reportStage(stage usecase.ExecutionStage) {
	if r.currentStage == stage {
		return
	}
	if r.currentStage != "" {
		r.completeCurrentStage()
	}

	r.currentStage = stage
	r.stageStartTime = time.Now()
	r.stages = append(r.stages, stageInfo{
		Stage:     stage,
		StartTime: r.stageStartTime,
		Status:    "running",
	})
}

// OnProgress handles progress events
func (r *SpinnerProgressReporter) OnProgress(ctx context.Context, event usecase.ProgressEvent) {
	switch stage := usecase.ExecutionStage(event.Stage); stage {
	case usecase.StageResolving, usecase.StageConnecting, usecase.StageRunning:
		r.reportStage(stage)
	case usecase.StageCompleted:
		r.reportStage(stage)
		r.completeCurrentStage()
	}

	if event.Spinner {
		if !r.spinner.Active() {
			r.spinner.Start()
		}
		r.spinner.Suffix = " " + event.Message + r.stageTrail()
	} else if r.spinner.Active() {
		r.spinner.Stop()
	}

	if len(r.stages) > 0 {
		r.stages[len(r.stages)-1].Message = event.Message
	}
}

// Info prints an info message
func (r *SpinnerProgressReporter) Info(message string) {
	r.pause(func() {
		color.New(color.FgCyan).Fprintln(os.Stderr, message)
	})
}

// Error prints an error message
func (r *SpinnerProgressReporter) Error(message string) {
	r.pause(func() {
		color.New(color.FgRed).Fprintln(os.Stderr, message)
	})
}

// pause stops the spinner while fn prints, then restarts it
func (r *SpinnerProgressReporter) pause(fn func()) {
	wasActive := false
	if r.spinner != nil && r.spinner.Active() {
		wasActive = true
		r.spinner.Stop()
	}

	fn()

	if wasActive {
		r.spinner.Start()
	}
}

// completeCurrentStage marks the current stage as completed
func (r *SpinnerProgressReporter) completeCurrentStage() {
	if len(r.stages) > 0 {
		idx := len(r.stages) - 1
		if r.stages[idx].EndTime.IsZero() {
			r.stages[idx].EndTime = time.Now()
		}
		r.stages[idx].Status = "completed"
	}
}

// stageTrail renders the finished stages with their durations
func (r *SpinnerProgressReporter) stageTrail() string {
	var display string
	for _, stage := range r.stages {
		if stage.Status != "completed" {
			continue
		}
		display += fmt.Sprintf(" %s %s (%s)",
			color.GreenString("✓"),
			string(stage.Stage),
			stage.EndTime.Sub(stage.StartTime).Round(time.Millisecond))
	}
	return display
}

// Stop stops the spinner if it is running
func (r *SpinnerProgressReporter) Stop() {
	if r.spinner.Active() {
		r.spinner.Stop()
	}
}

// Ensure SpinnerProgressReporter implements ProgressSink
var _ usecase.ProgressSink = (*SpinnerProgressReporter)(nil)
