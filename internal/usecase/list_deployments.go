package usecase

import (
	"context"
	"sort"

	"github.com/trebuchet-org/sbdeploy/internal/domain"
	"github.com/trebuchet-org/sbdeploy/internal/domain/models"
)

// ListDeploymentsParams contains parameters for listing deployments
type ListDeploymentsParams struct {
	Network      string
	ContractName string
}

// DeploymentListResult contains the result of listing deployments
type DeploymentListResult struct {
	Deployments []*models.DeploymentRecord
	Summary     DeploymentSummary
}

// DeploymentSummary provides summary statistics
type DeploymentSummary struct {
	Total     int
	ByNetwork map[string]int
}

// ListDeployments is the use case for listing deployment records
type ListDeployments struct {
	repo DeploymentRepository
	sink ProgressSink
}

// NewListDeployments creates a new ListDeployments use case
func NewListDeployments(repo DeploymentRepository, sink ProgressSink) *ListDeployments {
	return &ListDeployments{
		repo: repo,
		sink: sink,
	}
}

// Run executes the list deployments use case
func (uc *ListDeployments) Run(ctx context.Context, params ListDeploymentsParams) (*DeploymentListResult, error) {
	uc.sink.OnProgress(ctx, ProgressEvent{
		Stage:   "loading",
		Message: "Loading deployment records",
		Spinner: true,
	})

	deployments, err := uc.repo.ListDeployments(ctx, domain.DeploymentFilter{
		Network:      params.Network,
		ContractName: params.ContractName,
	})
	if err != nil {
		return nil, err
	}

	sortDeployments(deployments)
	summary := calculateSummary(deployments)

	uc.sink.OnProgress(ctx, ProgressEvent{
		Stage:   "complete",
		Current: len(deployments),
		Total:   len(deployments),
		Message: "Deployments loaded",
	})

	return &DeploymentListResult{
		Deployments: deployments,
		Summary:     summary,
	}, nil
}

// sortDeployments sorts records by network, then contract name
func sortDeployments(deployments []*models.DeploymentRecord) {
	sort.Slice(deployments, func(i, j int) bool {
		if deployments[i].Network != deployments[j].Network {
			return deployments[i].Network < deployments[j].Network
		}
		return deployments[i].ContractName < deployments[j].ContractName
	})
}

// calculateSummary calculates summary statistics for deployments
func calculateSummary(deployments []*models.DeploymentRecord) DeploymentSummary {
	summary := DeploymentSummary{
		Total:     len(deployments),
		ByNetwork: make(map[string]int),
	}
	for _, dep := range deployments {
		summary.ByNetwork[dep.Network]++
	}
	return summary
}
