package artifacts

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/sbdeploy/internal/domain"
	"github.com/trebuchet-org/sbdeploy/internal/domain/config"
)

const foundryArtifact = `{
  "abi": [{"type":"constructor","inputs":[{"name":"a","type":"address"},{"name":"b","type":"address"}],"stateMutability":"nonpayable"}],
  "bytecode": {"object": "0x6001600c60003960016000f300", "linkReferences": {}}
}`

const hardhatArtifact = `{
  "contractName": "SmartBridge",
  "abi": [],
  "bytecode": "0x6001600c60003960016000f300"
}`

func writeArtifact(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRepository_Foundry(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "out", "SmartBridge.sol", "SmartBridge.json")
	writeArtifact(t, path, foundryArtifact)

	repo := NewRepository(root, []string{"out", "artifacts"}, discardLogger())
	artifact, err := repo.GetArtifact(context.Background(), "SmartBridge")
	require.NoError(t, err)

	assert.Equal(t, "SmartBridge", artifact.ContractName)
	assert.Equal(t, path, artifact.Path)
	code, err := artifact.Bytecode.Bytes()
	require.NoError(t, err)
	assert.Len(t, code, 13)
}

func TestRepository_Hardhat(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "artifacts", "contracts", "SmartBridge.sol", "SmartBridge.json")
	writeArtifact(t, path, hardhatArtifact)

	repo := NewRepository(root, []string{"out", "artifacts"}, discardLogger())
	artifact, err := repo.GetArtifact(context.Background(), "SmartBridge")
	require.NoError(t, err)
	assert.Equal(t, path, artifact.Path)
	assert.Equal(t, "0x6001600c60003960016000f300", artifact.Bytecode.Object)
}

func TestRepository_SearchOrder(t *testing.T) {
	root := t.TempDir()
	foundry := filepath.Join(root, "out", "SmartBridge.sol", "SmartBridge.json")
	writeArtifact(t, foundry, foundryArtifact)
	writeArtifact(t, filepath.Join(root, "artifacts", "contracts", "SmartBridge.sol", "SmartBridge.json"), hardhatArtifact)

	repo := NewRepositoryFromConfig(&config.RuntimeConfig{ProjectRoot: root}, discardLogger())
	artifact, err := repo.GetArtifact(context.Background(), "SmartBridge")
	require.NoError(t, err)
	assert.Equal(t, foundry, artifact.Path)
}

func TestRepository_Cache(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "out", "SmartBridge.sol", "SmartBridge.json")
	writeArtifact(t, path, foundryArtifact)

	repo := NewRepository(root, []string{"out"}, discardLogger())
	first, err := repo.GetArtifact(context.Background(), "SmartBridge")
	require.NoError(t, err)

	require.NoError(t, os.Remove(path))
	second, err := repo.GetArtifact(context.Background(), "SmartBridge")
	require.NoError(t, err)
	assert.Same(t, first, second)
}

func TestRepository_Errors(t *testing.T) {
	root := t.TempDir()
	repo := NewRepository(root, []string{"out"}, discardLogger())

	_, err := repo.GetArtifact(context.Background(), "Missing")
	assert.ErrorIs(t, err, domain.ErrContractNotFound)

	writeArtifact(t, filepath.Join(root, "out", "Broken.sol", "Broken.json"), `{not json`)
	_, err = repo.GetArtifact(context.Background(), "Broken")
	assert.ErrorContains(t, err, "failed to parse artifact")

	writeArtifact(t, filepath.Join(root, "out", "NoAbi.sol", "NoAbi.json"), `{"bytecode":"0x00"}`)
	_, err = repo.GetArtifact(context.Background(), "NoAbi")
	assert.ErrorContains(t, err, "has no abi")
}
