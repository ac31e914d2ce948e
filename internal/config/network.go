package config

import (
	"fmt"
	"sort"

	"github.com/trebuchet-org/sbdeploy/internal/domain"
	"github.com/trebuchet-org/sbdeploy/internal/domain/config"
)

// localNetworkNames are treated as local development chains regardless of config
var localNetworkNames = map[string]bool{
	"localhost": true,
	"hardhat":   true,
	"anvil":     true,
}

// NetworkResolver resolves network names from deploy.toml
type NetworkResolver struct {
	projectRoot string
	networks    map[string]config.NetworkConfig
}

// NewNetworkResolver creates a new network resolver
func NewNetworkResolver(projectRoot string, project *config.ProjectConfig) *NetworkResolver {
	networks := map[string]config.NetworkConfig{}
	if project != nil && project.Networks != nil {
		networks = project.Networks
	}
	return &NetworkResolver{
		projectRoot: projectRoot,
		networks:    networks,
	}
}

// Names returns the configured network names, sorted
func (r *NetworkResolver) Names() []string {
	names := make([]string, 0, len(r.networks))
	for name := range r.networks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Resolve resolves a network name to its configuration. The chain ID is left
// at zero when deploy.toml doesn't set it; the chain connector fills it in.
func (r *NetworkResolver) Resolve(networkName string) (*config.Network, error) {
	nc, exists := r.networks[networkName]
	if !exists {
		return nil, fmt.Errorf("network '%s' %w in %s [networks]", networkName, domain.ErrNotFound, ProjectFile)
	}
	if nc.RPCURL == "" {
		return nil, missingRPCURLError(r.projectRoot, networkName)
	}

	explorer := nc.Explorer
	if explorer == "" {
		explorer = ExplorerURL(nc.ChainID)
	}

	return &config.Network{
		Name:        networkName,
		ChainID:     nc.ChainID,
		RPCURL:      nc.RPCURL,
		ExplorerURL: explorer,
		Local:       IsLocalNetwork(networkName, nc),
	}, nil
}

// IsLocalNetwork reports whether autoMine applies to a network
func IsLocalNetwork(name string, nc config.NetworkConfig) bool {
	return nc.Local || localNetworkNames[name] || config.IsLocalChainID(nc.ChainID)
}

// ExplorerURL returns a default block explorer for well-known chains
func ExplorerURL(chainID uint64) string {
	switch chainID {
	case 1:
		return "https://etherscan.io"
	case 11155111:
		return "https://sepolia.etherscan.io"
	case 17000:
		return "https://holesky.etherscan.io"
	case 10:
		return "https://optimistic.etherscan.io"
	case 8453:
		return "https://basescan.org"
	case 42161:
		return "https://arbiscan.io"
	case 421614:
		return "https://sepolia.arbiscan.io"
	case 2810:
		return "https://explorer-holesky.morphl2.io"
	case 137:
		return "https://polygonscan.com"
	default:
		return ""
	}
}
