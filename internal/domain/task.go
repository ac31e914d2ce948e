package domain

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/samber/lo"
	"github.com/trebuchet-org/sbdeploy/internal/domain/models"
)

// DeployerRole is the named-account role that signs contract creations
const DeployerRole = "deployer"

// DeployOptions are the options a task passes to the deploy primitive
type DeployOptions struct {
	From     common.Address
	Args     []any
	Log      bool
	AutoMine bool
}

// DeploymentRequest is a single contract creation request
type DeploymentRequest struct {
	ContractName string
	Network      string
	Options      DeployOptions
}

// Environment is the runtime handle given to a task for one invocation
type Environment interface {
	// NetworkName returns the name of the network targeted by this invocation
	NetworkName() string
	// GetNamedAccounts resolves logical roles to addresses on the active network
	GetNamedAccounts(ctx context.Context) (map[string]common.Address, error)
	// Deploy deploys (or reuses) a contract and returns its record
	Deploy(ctx context.Context, contractName string, opts DeployOptions) (*models.DeploymentRecord, error)
}

// Task is a single deploy step that can be selected by tag
type Task interface {
	Name() string
	Tags() []string
	Run(ctx context.Context, env Environment) error
}

// MatchesTags reports whether a task is selected by the tag filter.
// An empty filter selects every task.
func MatchesTags(task Task, filter []string) bool {
	if len(filter) == 0 {
		return true
	}
	return len(lo.Intersect(task.Tags(), filter)) > 0
}

// SelectTasks returns the tasks matching the filter, keeping registration order
func SelectTasks(tasks []Task, filter []string) []Task {
	return lo.Filter(tasks, func(t Task, _ int) bool {
		return MatchesTags(t, filter)
	})
}
