package usecase_test

import (
	"context"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/mock"
	"github.com/trebuchet-org/sbdeploy/internal/domain"
	"github.com/trebuchet-org/sbdeploy/internal/domain/config"
	"github.com/trebuchet-org/sbdeploy/internal/domain/models"
	"github.com/trebuchet-org/sbdeploy/internal/usecase"
)

// MockDeploymentRepository is a mock implementation of DeploymentRepository
type MockDeploymentRepository struct {
	mock.Mock
}

func (m *MockDeploymentRepository) GetDeployment(ctx context.Context, network, contractName string) (*models.DeploymentRecord, error) {
	args := m.Called(ctx, network, contractName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DeploymentRecord), args.Error(1)
}

func (m *MockDeploymentRepository) ListDeployments(ctx context.Context, filter domain.DeploymentFilter) ([]*models.DeploymentRecord, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.DeploymentRecord), args.Error(1)
}

func (m *MockDeploymentRepository) SaveDeployment(ctx context.Context, record *models.DeploymentRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

// MockNetworkResolver is a mock implementation of NetworkResolver
type MockNetworkResolver struct {
	mock.Mock
}

func (m *MockNetworkResolver) GetNetworks(ctx context.Context) []string {
	args := m.Called(ctx)
	return args.Get(0).([]string)
}

func (m *MockNetworkResolver) ResolveNetwork(ctx context.Context, name string) (*config.Network, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*config.Network), args.Error(1)
}

// MockChainConnector is a mock implementation of ChainConnector
type MockChainConnector struct {
	mock.Mock
}

func (m *MockChainConnector) Connect(ctx context.Context, network *config.Network) (usecase.ChainClient, error) {
	args := m.Called(ctx, network)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(usecase.ChainClient), args.Error(1)
}

// MockAccountResolver is a mock implementation of NamedAccountResolver
type MockAccountResolver struct {
	mock.Mock
}

func (m *MockAccountResolver) ResolveNamedAccounts(ctx context.Context, network *config.Network, client usecase.ChainClient) (map[string]common.Address, error) {
	args := m.Called(ctx, network, client)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]common.Address), args.Error(1)
}

// MockContractDeployer is a mock implementation of ContractDeployer
type MockContractDeployer struct {
	mock.Mock
}

func (m *MockContractDeployer) Deploy(ctx context.Context, client usecase.ChainClient, req domain.DeploymentRequest, network *config.Network) (*models.DeploymentRecord, error) {
	args := m.Called(ctx, client, req, network)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DeploymentRecord), args.Error(1)
}

// MockNetworkSelector is a mock implementation of NetworkSelector
type MockNetworkSelector struct {
	mock.Mock
}

func (m *MockNetworkSelector) SelectNetwork(ctx context.Context, networks []string, prompt string) (string, error) {
	args := m.Called(ctx, networks, prompt)
	return args.String(0), args.Error(1)
}

// fakeClient satisfies ChainClient; only Close is expected to be called by use cases
type fakeClient struct {
	usecase.ChainClient
	closed bool
}

func (c *fakeClient) Close() { c.closed = true }

// staticRegistry serves a fixed task list
type staticRegistry []domain.Task

func (r staticRegistry) Tasks() []domain.Task { return r }

// fakeTask records invocations and delegates to run
type fakeTask struct {
	name string
	tags []string
	run  func(ctx context.Context, env domain.Environment) error

	mu    sync.Mutex
	calls int
}

func (t *fakeTask) Name() string   { return t.name }
func (t *fakeTask) Tags() []string { return t.tags }

func (t *fakeTask) Run(ctx context.Context, env domain.Environment) error {
	t.mu.Lock()
	t.calls++
	t.mu.Unlock()
	if t.run == nil {
		return nil
	}
	return t.run(ctx, env)
}

// MockProgressSink records progress events
type MockProgressSink struct {
	events []usecase.ProgressEvent
}

func (m *MockProgressSink) OnProgress(ctx context.Context, event usecase.ProgressEvent) {
	m.events = append(m.events, event)
}

func (m *MockProgressSink) Info(string)  {}
func (m *MockProgressSink) Error(string) {}
