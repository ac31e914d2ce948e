package config

// ProjectConfig represents deploy.toml after environment expansion
type ProjectConfig struct {
	// Paths relative to the project root
	Artifacts   []string `toml:"artifacts"`
	Deployments string   `toml:"deployments"`

	Networks      map[string]NetworkConfig      `toml:"networks"`
	Accounts      map[string]AccountConfig      `toml:"accounts"`
	NamedAccounts map[string]NamedAccountConfig `toml:"named_accounts"`
	Tasks         map[string]TaskConfig         `toml:"tasks"`
}

// NetworkConfig is a [networks.<name>] section
type NetworkConfig struct {
	RPCURL   string `toml:"rpc_url"`
	ChainID  uint64 `toml:"chain_id,omitempty"`
	Local    bool   `toml:"local,omitempty"`
	Explorer string `toml:"explorer,omitempty"`
}

// AccountType selects how an account is loaded
type AccountType string

const (
	AccountTypePrivateKey AccountType = "private_key"
	AccountTypeAddress    AccountType = "address"
)

// AccountConfig is an [accounts.<name>] section
type AccountConfig struct {
	Type       AccountType `toml:"type"`
	Address    string      `toml:"address,omitempty"`
	PrivateKey string      `toml:"private_key,omitempty"` //nolint:gosec // holds env var reference, not a literal secret
}

// NamedAccountConfig maps a role to an account name, per network.
// Default applies to any network without an explicit entry.
type NamedAccountConfig struct {
	Default  string            `toml:"default,omitempty"`
	Networks map[string]string `toml:"-"` // Populated from the remaining keys
}

// AccountFor returns the account name for the given network
func (n NamedAccountConfig) AccountFor(network string) string {
	if name, ok := n.Networks[network]; ok {
		return name
	}
	return n.Default
}

// TaskConfig is a [tasks.<name>] section
type TaskConfig struct {
	// Args maps a network name to its constructor arguments
	Args map[string][]string `toml:"args"`
}
