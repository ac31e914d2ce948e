package config

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/BurntSushi/toml"
)

// envVarPattern matches ${VAR_NAME} patterns in TOML values
var envVarPattern = regexp.MustCompile(`^\$\{([A-Za-z_][A-Za-z0-9_]*)\}$`)

// DetectEnvVar checks if a raw TOML value is a simple ${VAR_NAME} reference.
// Returns the variable name and true if the value is a pure env var reference.
func DetectEnvVar(rawValue string) (string, bool) {
	matches := envVarPattern.FindStringSubmatch(rawValue)
	if len(matches) == 2 {
		return matches[1], true
	}
	return "", false
}

// GenerateEnvVarName generates a conventional env var name for a network's RPC URL.
// Examples: sepolia -> SEPOLIA_RPC_URL, arbitrumSepolia -> ARBITRUMSEPOLIA_RPC_URL
func GenerateEnvVarName(networkName string) string {
	name := strings.ToUpper(networkName)
	name = strings.NewReplacer("-", "_", ".", "_").Replace(name)
	return name + "_RPC_URL"
}

// LoadRawRPCURL reads a network's rpc_url from deploy.toml without env var expansion
func LoadRawRPCURL(projectRoot, networkName string) (string, error) {
	var raw struct {
		Networks map[string]struct {
			RPCURL string `toml:"rpc_url"`
		} `toml:"networks"`
	}
	if _, err := toml.DecodeFile(filepath.Join(projectRoot, ProjectFile), &raw); err != nil {
		return "", fmt.Errorf("failed to parse %s: %w", ProjectFile, err)
	}

	network, ok := raw.Networks[networkName]
	if !ok {
		return "", fmt.Errorf("network '%s' not found in %s [networks]", networkName, ProjectFile)
	}
	return network.RPCURL, nil
}

// missingRPCURLError explains an rpc_url that expanded to nothing
func missingRPCURLError(projectRoot, networkName string) error {
	raw, err := LoadRawRPCURL(projectRoot, networkName)
	if err == nil {
		if envVar, ok := DetectEnvVar(raw); ok {
			return fmt.Errorf("rpc_url for network '%s' is empty: set %s in the environment or .env", networkName, envVar)
		}
	}
	return fmt.Errorf("rpc_url for network '%s' is empty (hint: rpc_url = \"${%s}\")", networkName, GenerateEnvVarName(networkName))
}
