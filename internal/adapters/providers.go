package adapters

import (
	"github.com/google/wire"
	"github.com/trebuchet-org/sbdeploy/internal/adapters/accounts"
	"github.com/trebuchet-org/sbdeploy/internal/adapters/artifacts"
	"github.com/trebuchet-org/sbdeploy/internal/adapters/chain"
	internalconfig "github.com/trebuchet-org/sbdeploy/internal/adapters/config"
	"github.com/trebuchet-org/sbdeploy/internal/adapters/deployer"
	"github.com/trebuchet-org/sbdeploy/internal/adapters/interactive"
	"github.com/trebuchet-org/sbdeploy/internal/adapters/repository/deployments"
	"github.com/trebuchet-org/sbdeploy/internal/tasks"
	"github.com/trebuchet-org/sbdeploy/internal/usecase"
)

// FSSet provides filesystem-based implementations
var FSSet = wire.NewSet(
	deployments.NewFileRepositoryFromConfig,
	wire.Bind(new(usecase.DeploymentRepository), new(*deployments.FileRepository)),

	artifacts.NewRepositoryFromConfig,
	wire.Bind(new(usecase.ArtifactRepository), new(*artifacts.Repository)),
)

// ChainSet provides chain access and the deploy primitive
var ChainSet = wire.NewSet(
	chain.NewConnector,
	wire.Bind(new(usecase.ChainConnector), new(*chain.Connector)),

	accounts.NewResolver,
	wire.Bind(new(usecase.NamedAccountResolver), new(*accounts.Resolver)),
	wire.Bind(new(usecase.SignerStore), new(*accounts.Resolver)),

	deployer.NewDeployer,
	wire.Bind(new(usecase.ContractDeployer), new(*deployer.Deployer)),
)

// InteractiveSet provides interactive implementations
var InteractiveSet = wire.NewSet(
	interactive.NewSelectorAdapter,
	wire.Bind(new(usecase.NetworkSelector), new(*interactive.SelectorAdapter)),
)

// ConfigSet provides configuration-based implementations
var ConfigSet = wire.NewSet(
	internalconfig.NewNetworkResolverAdapter,
	wire.Bind(new(usecase.NetworkResolver), new(*internalconfig.NetworkResolverAdapter)),
)

// TaskSet provides the deploy task registry
var TaskSet = wire.NewSet(
	tasks.NewRegistry,
	wire.Bind(new(usecase.TaskRegistry), new(*tasks.Registry)),
)

// AllAdapters includes all adapter sets
var AllAdapters = wire.NewSet(
	FSSet,
	ChainSet,
	InteractiveSet,
	ConfigSet,
	TaskSet,
)
