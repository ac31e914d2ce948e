package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/trebuchet-org/sbdeploy/internal/domain/config"
)

const (
	// ProjectFile is the project configuration file searched for from the working directory
	ProjectFile = "deploy.toml"

	DefaultDeploymentsDir = "deployments"
)

// DefaultArtifactDirs are searched in order when deploy.toml sets no artifacts
var DefaultArtifactDirs = []string{"out", "artifacts"}

// projectFileRaw mirrors deploy.toml before named account tables are split
type projectFileRaw struct {
	Artifacts     []string                        `toml:"artifacts"`
	Deployments   string                          `toml:"deployments"`
	Networks      map[string]config.NetworkConfig `toml:"networks"`
	Accounts      map[string]config.AccountConfig `toml:"accounts"`
	NamedAccounts map[string]map[string]string    `toml:"named_accounts"`
	Tasks         map[string]config.TaskConfig    `toml:"tasks"`
}

// LoadProjectConfig loads .env files and parses deploy.toml in projectRoot
func LoadProjectConfig(projectRoot string) (*config.ProjectConfig, error) {
	loadEnvFiles(projectRoot)

	path := filepath.Join(projectRoot, ProjectFile)
	var raw projectFileRaw
	if _, err := toml.DecodeFile(path, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", ProjectFile, err)
	}

	cfg := &config.ProjectConfig{
		Artifacts:     raw.Artifacts,
		Deployments:   raw.Deployments,
		Networks:      make(map[string]config.NetworkConfig, len(raw.Networks)),
		Accounts:      make(map[string]config.AccountConfig, len(raw.Accounts)),
		NamedAccounts: make(map[string]config.NamedAccountConfig, len(raw.NamedAccounts)),
		Tasks:         make(map[string]config.TaskConfig, len(raw.Tasks)),
	}
	if len(cfg.Artifacts) == 0 {
		cfg.Artifacts = DefaultArtifactDirs
	}
	if cfg.Deployments == "" {
		cfg.Deployments = DefaultDeploymentsDir
	}

	for name, network := range raw.Networks {
		network.RPCURL = os.ExpandEnv(network.RPCURL)
		network.Explorer = os.ExpandEnv(network.Explorer)
		cfg.Networks[name] = network
	}

	for name, acct := range raw.Accounts {
		acct.PrivateKey = os.ExpandEnv(acct.PrivateKey)
		acct.Address = os.ExpandEnv(acct.Address)
		if acct.Type == "" {
			return nil, fmt.Errorf("account %q: type is required", name)
		}
		cfg.Accounts[name] = acct
	}

	for role, entries := range raw.NamedAccounts {
		named := config.NamedAccountConfig{Networks: make(map[string]string)}
		for key, account := range entries {
			if key == "default" {
				named.Default = account
				continue
			}
			named.Networks[key] = account
		}
		for network, account := range named.Networks {
			if _, ok := cfg.Accounts[account]; !ok {
				return nil, fmt.Errorf("named account %q on %s references unknown account %q", role, network, account)
			}
		}
		if named.Default != "" {
			if _, ok := cfg.Accounts[named.Default]; !ok {
				return nil, fmt.Errorf("named account %q references unknown account %q", role, named.Default)
			}
		}
		cfg.NamedAccounts[role] = named
	}

	for name, task := range raw.Tasks {
		for network, args := range task.Args {
			for i := range args {
				args[i] = os.ExpandEnv(args[i])
			}
			task.Args[network] = args
		}
		cfg.Tasks[name] = task
	}

	return cfg, nil
}

// loadEnvFiles loads .env and .env.local; existing variables win
func loadEnvFiles(projectRoot string) {
	envFiles := []string{
		filepath.Join(projectRoot, ".env"),
		filepath.Join(projectRoot, ".env.local"),
	}

	for _, envFile := range envFiles {
		if _, err := os.Stat(envFile); err == nil {
			if err := godotenv.Load(envFile); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: Failed to load %s: %v\n", envFile, err)
			}
		}
	}
}
