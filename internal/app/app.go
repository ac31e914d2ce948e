package app

import (
	"github.com/trebuchet-org/sbdeploy/internal/domain/config"
	"github.com/trebuchet-org/sbdeploy/internal/usecase"
)

// App is the main application container that holds all use cases
type App struct {
	// Configuration
	Config *config.RuntimeConfig

	// Shared dependencies
	Networks usecase.NetworkResolver

	// Use cases
	RunDeploy       *usecase.RunDeploy
	ListTasks       *usecase.ListTasks
	ListDeployments *usecase.ListDeployments
	ShowDeployment  *usecase.ShowDeployment
	ListNetworks    *usecase.ListNetworks
}

// NewApp creates a new application instance with all use cases
func NewApp(
	cfg *config.RuntimeConfig,
	networks usecase.NetworkResolver,
	runDeploy *usecase.RunDeploy,
	listTasks *usecase.ListTasks,
	listDeployments *usecase.ListDeployments,
	showDeployment *usecase.ShowDeployment,
	listNetworks *usecase.ListNetworks,
) (*App, error) {
	return &App{
		Config:          cfg,
		Networks:        networks,
		RunDeploy:       runDeploy,
		ListTasks:       listTasks,
		ListDeployments: listDeployments,
		ShowDeployment:  showDeployment,
		ListNetworks:    listNetworks,
	}, nil
}
