package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/sbdeploy/internal/domain"
	"github.com/trebuchet-org/sbdeploy/internal/domain/config"
	"github.com/trebuchet-org/sbdeploy/internal/domain/models"
)

// RunDeployParams contains parameters for a deploy run
type RunDeployParams struct {
	Network string
	Tags    []string
}

// RunDeployResult contains the result of a deploy run
type RunDeployResult struct {
	Network     *config.Network
	Tasks       []string
	Deployments []*models.DeploymentRecord
}

// RunDeploy selects deploy tasks by tag and runs them, one after another, against a network
type RunDeploy struct {
	config    *config.RuntimeConfig
	networks  NetworkResolver
	connector ChainConnector
	accounts  NamedAccountResolver
	deployer  ContractDeployer
	registry  TaskRegistry
	selector  NetworkSelector
	progress  ProgressSink
	log       *slog.Logger
}

// NewRunDeploy creates a new RunDeploy use case
func NewRunDeploy(
	cfg *config.RuntimeConfig,
	networks NetworkResolver,
	connector ChainConnector,
	accounts NamedAccountResolver,
	deployer ContractDeployer,
	registry TaskRegistry,
	selector NetworkSelector,
	progress ProgressSink,
	log *slog.Logger,
) *RunDeploy {
	return &RunDeploy{
		config:    cfg,
		networks:  networks,
		connector: connector,
		accounts:  accounts,
		deployer:  deployer,
		registry:  registry,
		selector:  selector,
		progress:  progress,
		log:       log,
	}
}

// Run executes the selected tasks. The first task error stops the run and is
// returned as is.
func (uc *RunDeploy) Run(ctx context.Context, params RunDeployParams) (*RunDeployResult, error) {
	tasks := domain.SelectTasks(uc.registry.Tasks(), params.Tags)
	if len(tasks) == 0 {
		return nil, fmt.Errorf("no deploy tasks match tags %v", params.Tags)
	}

	uc.progress.OnProgress(ctx, ProgressEvent{
		Stage:   string(StageResolving),
		Message: "Resolving network",
		Spinner: true,
	})

	networkName, err := uc.selectNetwork(ctx, params.Network)
	if err != nil {
		return nil, err
	}

	network, err := uc.networks.ResolveNetwork(ctx, networkName)
	if err != nil {
		return nil, err
	}

	uc.progress.OnProgress(ctx, ProgressEvent{
		Stage:   string(StageConnecting),
		Message: fmt.Sprintf("Connecting to %s", network.Name),
		Spinner: true,
	})

	client, err := uc.connector.Connect(ctx, network)
	if err != nil {
		return nil, err
	}
	defer client.Close()

	uc.log.Debug("connected", "network", network.Name, "chainId", network.ChainID, "local", network.Local)

	env := &deployEnvironment{
		network:  network,
		client:   client,
		accounts: uc.accounts,
		deployer: uc.deployer,
	}

	result := &RunDeployResult{Network: network}
	for i, task := range tasks {
		uc.progress.OnProgress(ctx, ProgressEvent{
			Stage:    string(StageRunning),
			Current:  i + 1,
			Total:    len(tasks),
			Message:  fmt.Sprintf("Running %s", task.Name()),
			Metadata: network,
		})
		uc.log.Info("running task", "task", task.Name(), "tags", task.Tags(), "network", network.Name)

		if err := task.Run(ctx, env); err != nil {
			uc.log.Debug("task failed", "task", task.Name(), "error", err)
			return nil, err
		}
		result.Tasks = append(result.Tasks, task.Name())
	}
	result.Deployments = env.records

	uc.progress.OnProgress(ctx, ProgressEvent{
		Stage:   string(StageCompleted),
		Current: len(tasks),
		Total:   len(tasks),
		Message: "Deploy run completed",
	})

	return result, nil
}

// selectNetwork returns the requested network, prompting when none was given
func (uc *RunDeploy) selectNetwork(ctx context.Context, requested string) (string, error) {
	if requested != "" {
		return requested, nil
	}
	if uc.config.NonInteractive {
		return "", fmt.Errorf("no network selected: pass --network")
	}

	names := uc.networks.GetNetworks(ctx)
	if len(names) == 0 {
		return "", fmt.Errorf("no networks configured in deploy.toml")
	}
	return uc.selector.SelectNetwork(ctx, names, "Select network")
}

// deployEnvironment is the per-invocation handle passed to tasks
type deployEnvironment struct {
	network  *config.Network
	client   ChainClient
	accounts NamedAccountResolver
	deployer ContractDeployer
	records  []*models.DeploymentRecord
}

func (e *deployEnvironment) NetworkName() string {
	return e.network.Name
}

func (e *deployEnvironment) GetNamedAccounts(ctx context.Context) (map[string]common.Address, error) {
	return e.accounts.ResolveNamedAccounts(ctx, e.network, e.client)
}

func (e *deployEnvironment) Deploy(ctx context.Context, contractName string, opts domain.DeployOptions) (*models.DeploymentRecord, error) {
	record, err := e.deployer.Deploy(ctx, e.client, domain.DeploymentRequest{
		ContractName: contractName,
		Network:      e.network.Name,
		Options:      opts,
	}, e.network)
	if err != nil {
		return nil, err
	}
	e.records = append(e.records, record)
	return record, nil
}

var _ domain.Environment = (*deployEnvironment)(nil)
