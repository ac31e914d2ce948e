package deployments_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/sbdeploy/internal/adapters/repository/deployments"
	"github.com/trebuchet-org/sbdeploy/internal/domain"
	"github.com/trebuchet-org/sbdeploy/internal/domain/config"
	"github.com/trebuchet-org/sbdeploy/internal/domain/models"
)

func testRecord(network string, chainID uint64, contract string) *models.DeploymentRecord {
	return &models.DeploymentRecord{
		ContractName:    contract,
		Network:         network,
		ChainID:         chainID,
		Address:         "0x1234567890123456789012345678901234567890",
		ABI:             []byte(`[]`),
		TransactionHash: "0xabcd",
		BlockNumber:     7,
		GasUsed:         21000,
		Deployer:        "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266",
		Args:            []string{"0x9aA40Cc99973d8407a2AE7B2237d26E615EcaFd2"},
		ConstructorArgs: "0x00",
		BytecodeHash:    "0xbeef",
		CreatedAt:       time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		Newly:           true,
	}
}

func TestFileRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("save and get", func(t *testing.T) {
		dir := t.TempDir()
		repo := deployments.NewFileRepository(dir)

		record := testRecord("arbitrumSepolia", 421614, "SmartBridge")
		require.NoError(t, repo.SaveDeployment(ctx, record))

		assert.FileExists(t, filepath.Join(dir, "arbitrumSepolia", "SmartBridge.json"))
		chainID, err := os.ReadFile(filepath.Join(dir, "arbitrumSepolia", ".chainId"))
		require.NoError(t, err)
		assert.Equal(t, "421614", string(chainID))

		got, err := repo.GetDeployment(ctx, "arbitrumSepolia", "SmartBridge")
		require.NoError(t, err)
		assert.Equal(t, record.Address, got.Address)
		assert.Equal(t, record.Args, got.Args)
		assert.Equal(t, record.BytecodeHash, got.BytecodeHash)
		assert.True(t, record.CreatedAt.Equal(got.CreatedAt))
		assert.False(t, got.Newly)
	})

	t.Run("not found", func(t *testing.T) {
		repo := deployments.NewFileRepository(t.TempDir())
		_, err := repo.GetDeployment(ctx, "morphHolesky", "SmartBridge")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("overwrite keeps one file", func(t *testing.T) {
		dir := t.TempDir()
		repo := deployments.NewFileRepository(dir)

		first := testRecord("localhost", 31337, "SmartBridge")
		require.NoError(t, repo.SaveDeployment(ctx, first))
		second := testRecord("localhost", 31337, "SmartBridge")
		second.Address = "0x000000000000000000000000000000000000dEaD"
		require.NoError(t, repo.SaveDeployment(ctx, second))

		got, err := repo.GetDeployment(ctx, "localhost", "SmartBridge")
		require.NoError(t, err)
		assert.Equal(t, second.Address, got.Address)

		entries, err := os.ReadDir(filepath.Join(dir, "localhost"))
		require.NoError(t, err)
		assert.Len(t, entries, 2)
	})

	t.Run("chain id mismatch", func(t *testing.T) {
		repo := deployments.NewFileRepository(t.TempDir())
		require.NoError(t, repo.SaveDeployment(ctx, testRecord("localhost", 31337, "SmartBridge")))

		err := repo.SaveDeployment(ctx, testRecord("localhost", 1337, "Other"))
		assert.ErrorIs(t, err, domain.ErrNetworkMismatch)
	})

	t.Run("invalid record", func(t *testing.T) {
		repo := deployments.NewFileRepository(t.TempDir())
		assert.Error(t, repo.SaveDeployment(ctx, &models.DeploymentRecord{ContractName: "SmartBridge"}))
	})

	t.Run("list with filters", func(t *testing.T) {
		repo := deployments.NewFileRepository(t.TempDir())
		require.NoError(t, repo.SaveDeployment(ctx, testRecord("arbitrumSepolia", 421614, "SmartBridge")))
		require.NoError(t, repo.SaveDeployment(ctx, testRecord("morphHolesky", 2810, "SmartBridge")))
		require.NoError(t, repo.SaveDeployment(ctx, testRecord("morphHolesky", 2810, "Adapter")))

		all, err := repo.ListDeployments(ctx, domain.DeploymentFilter{})
		require.NoError(t, err)
		assert.Len(t, all, 3)

		byNetwork, err := repo.ListDeployments(ctx, domain.DeploymentFilter{Network: "morphHolesky"})
		require.NoError(t, err)
		assert.Len(t, byNetwork, 2)

		byContract, err := repo.ListDeployments(ctx, domain.DeploymentFilter{ContractName: "SmartBridge"})
		require.NoError(t, err)
		assert.Len(t, byContract, 2)

		byChain, err := repo.ListDeployments(ctx, domain.DeploymentFilter{ChainID: 421614})
		require.NoError(t, err)
		require.Len(t, byChain, 1)
		assert.Equal(t, "arbitrumSepolia", byChain[0].Network)
	})

	t.Run("list on missing directory", func(t *testing.T) {
		repo := deployments.NewFileRepository(filepath.Join(t.TempDir(), "missing"))
		records, err := repo.ListDeployments(ctx, domain.DeploymentFilter{})
		require.NoError(t, err)
		assert.Empty(t, records)
	})

	t.Run("config root", func(t *testing.T) {
		root := t.TempDir()
		repo := deployments.NewFileRepositoryFromConfig(&config.RuntimeConfig{ProjectRoot: root})
		assert.Equal(t, filepath.Join(root, "deployments"), repo.Root())

		repo = deployments.NewFileRepositoryFromConfig(&config.RuntimeConfig{
			ProjectRoot: root,
			Project:     &config.ProjectConfig{Deployments: "out/deploys"},
		})
		assert.Equal(t, filepath.Join(root, "out/deploys"), repo.Root())
	})
}
