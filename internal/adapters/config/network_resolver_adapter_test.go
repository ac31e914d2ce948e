package config

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/sbdeploy/internal/domain"
	domainconfig "github.com/trebuchet-org/sbdeploy/internal/domain/config"
)

func TestNetworkResolverAdapter(t *testing.T) {
	cfg := &domainconfig.RuntimeConfig{
		ProjectRoot: t.TempDir(),
		Project: &domainconfig.ProjectConfig{
			Networks: map[string]domainconfig.NetworkConfig{
				"morphHolesky":    {RPCURL: "https://rpc-holesky.morphl2.io", ChainID: 2810},
				"arbitrumSepolia": {RPCURL: "https://sepolia-rollup.arbitrum.io/rpc", ChainID: 421614},
			},
		},
	}
	adapter := NewNetworkResolverAdapter(cfg)
	ctx := context.Background()

	assert.Equal(t, []string{"arbitrumSepolia", "morphHolesky"}, adapter.GetNetworks(ctx))

	network, err := adapter.ResolveNetwork(ctx, "morphHolesky")
	require.NoError(t, err)
	assert.Equal(t, uint64(2810), network.ChainID)
	assert.Equal(t, "https://explorer-holesky.morphl2.io", network.ExplorerURL)
	assert.False(t, network.Local)

	_, err = adapter.ResolveNetwork(ctx, "mainnet")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
