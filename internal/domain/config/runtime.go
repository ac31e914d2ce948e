package config

import (
	"time"
)

// RuntimeConfig represents the complete runtime configuration
// This is injected into use cases and contains all resolved settings
type RuntimeConfig struct {
	// Core settings
	ProjectRoot string

	// Context settings
	Network string   // Network name selected with --network, may be empty
	Tags    []string // Task tag filter selected with --tags

	// Execution settings
	Debug          bool
	NonInteractive bool
	Timeout        time.Duration

	// Resolved configurations
	Project *ProjectConfig
}

// Network represents a resolved network
type Network struct {
	Name        string `json:"name"`
	ChainID     uint64 `json:"chainId"`
	RPCURL      string `json:"rpcUrl"`
	ExplorerURL string `json:"explorerUrl,omitempty"`
	Local       bool   `json:"local"`
}

// IsLocalChainID reports whether id is the default chain ID of anvil/hardhat or geth --dev
func IsLocalChainID(id uint64) bool {
	return id == 31337 || id == 1337
}
