package usecase

import (
	"context"
	"crypto/ecdsa"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/sbdeploy/internal/domain"
	"github.com/trebuchet-org/sbdeploy/internal/domain/config"
	"github.com/trebuchet-org/sbdeploy/internal/domain/models"
)

// DeploymentRepository handles persistence of deployment records
type DeploymentRepository interface {
	GetDeployment(ctx context.Context, network, contractName string) (*models.DeploymentRecord, error)
	ListDeployments(ctx context.Context, filter domain.DeploymentFilter) ([]*models.DeploymentRecord, error)
	SaveDeployment(ctx context.Context, record *models.DeploymentRecord) error
}

// ArtifactRepository provides access to compiled contracts
type ArtifactRepository interface {
	GetArtifact(ctx context.Context, contractName string) (*models.Artifact, error)
}

// NetworkResolver handles network configuration resolution
type NetworkResolver interface {
	GetNetworks(ctx context.Context) []string
	ResolveNetwork(ctx context.Context, networkName string) (*config.Network, error)
}

// ChainConnector opens a connection to a network's RPC endpoint
type ChainConnector interface {
	Connect(ctx context.Context, network *config.Network) (ChainClient, error)
}

// ChainClient is a live connection to one network
type ChainClient interface {
	bind.ContractBackend
	bind.DeployBackend
	ChainID(ctx context.Context) (*big.Int, error)
	BalanceAt(ctx context.Context, account common.Address, blockNumber *big.Int) (*big.Int, error)
	// Mine asks a local node to seal pending transactions into a new block
	Mine(ctx context.Context) error
	Close()
}

// NamedAccountResolver resolves logical roles to accounts on a network
type NamedAccountResolver interface {
	ResolveNamedAccounts(ctx context.Context, network *config.Network, client ChainClient) (map[string]common.Address, error)
}

// SignerStore returns the signing key of a resolved account
type SignerStore interface {
	Signer(address common.Address) (*ecdsa.PrivateKey, error)
}

// ContractDeployer is the deploy primitive: it validates, broadcasts and records one contract creation
type ContractDeployer interface {
	Deploy(ctx context.Context, client ChainClient, req domain.DeploymentRequest, network *config.Network) (*models.DeploymentRecord, error)
}

// TaskRegistry provides the registered deploy tasks in execution order
type TaskRegistry interface {
	Tasks() []domain.Task
}

// NetworkSelector handles interactive selection of a network
type NetworkSelector interface {
	SelectNetwork(ctx context.Context, networks []string, prompt string) (string, error)
}

// Progress tracking interfaces

// ProgressEvent represents a progress update
type ProgressEvent struct {
	Stage    string
	Current  int
	Total    int
	Message  string
	Spinner  bool
	Metadata interface{}
}

// ProgressSink receives progress events
type ProgressSink interface {
	OnProgress(ctx context.Context, event ProgressEvent)
	Info(message string)
	Error(message string)
}

// NopProgress is a no-op implementation of ProgressSink
type NopProgress struct{}

func (NopProgress) OnProgress(context.Context, ProgressEvent) {}
func (NopProgress) Info(string)                               {}
func (NopProgress) Error(string)                              {}

// ExecutionStage represents a stage in the deploy run
type ExecutionStage string

const (
	StageResolving  ExecutionStage = "Resolving"
	StageConnecting ExecutionStage = "Connecting"
	StageRunning    ExecutionStage = "Running"
	StageCompleted  ExecutionStage = "Completed"
)
