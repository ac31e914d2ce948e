package usecase

import (
	"context"
	"fmt"

	"github.com/trebuchet-org/sbdeploy/internal/domain/models"
)

// ShowDeploymentParams contains parameters for showing a deployment
type ShowDeploymentParams struct {
	Network      string
	ContractName string
}

// ShowDeployment is the use case for showing one deployment record
type ShowDeployment struct {
	repo DeploymentRepository
	sink ProgressSink
}

// NewShowDeployment creates a new ShowDeployment use case
func NewShowDeployment(repo DeploymentRepository, sink ProgressSink) *ShowDeployment {
	return &ShowDeployment{
		repo: repo,
		sink: sink,
	}
}

// Run executes the show deployment use case
func (uc *ShowDeployment) Run(ctx context.Context, params ShowDeploymentParams) (*models.DeploymentRecord, error) {
	if params.Network == "" || params.ContractName == "" {
		return nil, fmt.Errorf("both network and contract name must be provided")
	}

	uc.sink.OnProgress(ctx, ProgressEvent{
		Stage:   "loading",
		Message: "Loading deployment record",
		Spinner: true,
	})

	record, err := uc.repo.GetDeployment(ctx, params.Network, params.ContractName)
	if err != nil {
		return nil, fmt.Errorf("deployment %s on %s: %w", params.ContractName, params.Network, err)
	}

	uc.sink.OnProgress(ctx, ProgressEvent{
		Stage:   "complete",
		Message: "Deployment loaded",
	})

	return record, nil
}
