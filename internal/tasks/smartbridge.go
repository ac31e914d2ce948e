package tasks

import (
	"context"
	"fmt"
	"sort"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/sbdeploy/internal/domain"
	"github.com/trebuchet-org/sbdeploy/internal/domain/config"
)

// SmartBridgeName is both the task name and the contract it deploys
const SmartBridgeName = "SmartBridge"

// AddressPair is the ordered pair of constructor arguments for one network
type AddressPair [2]common.Address

// defaultSmartBridgeArgs holds the built-in constructor arguments per network
var defaultSmartBridgeArgs = map[string]AddressPair{
	"arbitrumSepolia": {
		common.HexToAddress("0x9aA40Cc99973d8407a2AE7B2237d26E615EcaFd2"),
		common.HexToAddress("0x6EDCE65403992e310A62460808c4b910D972f10f"),
	},
	"morphHolesky": {
		common.HexToAddress("0x9E12AD42c4E4d2acFBADE01a96446e48e6764B98"),
		common.HexToAddress("0x6C7Ab2202C98C4227C5c46f1417D81144DA716Ff"),
	},
}

// SmartBridge deploys the SmartBridge contract with the network's address pair
type SmartBridge struct {
	args map[string]AddressPair
}

// NewSmartBridge builds the task from the built-in pairs plus any
// [tasks.SmartBridge.args] entries, which take precedence.
func NewSmartBridge(overrides *config.TaskConfig) (*SmartBridge, error) {
	args := make(map[string]AddressPair, len(defaultSmartBridgeArgs))
	for network, pair := range defaultSmartBridgeArgs {
		args[network] = pair
	}

	if overrides != nil {
		for network, raw := range overrides.Args {
			pair, err := parsePair(raw)
			if err != nil {
				return nil, fmt.Errorf("tasks.%s.args.%s: %w", SmartBridgeName, network, err)
			}
			args[network] = pair
		}
	}

	return &SmartBridge{args: args}, nil
}

func (t *SmartBridge) Name() string { return SmartBridgeName }

func (t *SmartBridge) Tags() []string { return []string{SmartBridgeName} }

// Networks returns the networks the task has arguments for, sorted
func (t *SmartBridge) Networks() []string {
	names := make([]string, 0, len(t.args))
	for name := range t.args {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ArgsFor returns the constructor arguments for a network
func (t *SmartBridge) ArgsFor(network string) (AddressPair, bool) {
	pair, ok := t.args[network]
	return pair, ok
}

// Run resolves the deployer and submits a single deploy request.
// Errors from the environment's Deploy are returned as is.
func (t *SmartBridge) Run(ctx context.Context, env domain.Environment) error {
	network := env.NetworkName()
	pair, ok := t.args[network]
	if !ok {
		return &domain.UnsupportedNetworkError{
			Task:      SmartBridgeName,
			Network:   network,
			Supported: t.Networks(),
		}
	}

	accounts, err := env.GetNamedAccounts(ctx)
	if err != nil {
		return err
	}

	deployer, ok := accounts[domain.DeployerRole]
	if !ok {
		return &domain.AccountResolutionError{
			Role:    domain.DeployerRole,
			Network: network,
			Reason:  "no account configured",
		}
	}
	if deployer == (common.Address{}) {
		return &domain.AccountResolutionError{
			Role:    domain.DeployerRole,
			Network: network,
			Reason:  "zero address",
		}
	}

	_, err = env.Deploy(ctx, SmartBridgeName, domain.DeployOptions{
		From:     deployer,
		Args:     []any{pair[0], pair[1]},
		Log:      true,
		AutoMine: true,
	})
	return err
}

func parsePair(raw []string) (AddressPair, error) {
	var pair AddressPair
	if len(raw) != len(pair) {
		return pair, fmt.Errorf("expected %d addresses, got %d", len(pair), len(raw))
	}
	for i, s := range raw {
		if !common.IsHexAddress(s) {
			return pair, fmt.Errorf("%w: %q", domain.ErrInvalidAddress, s)
		}
		pair[i] = common.HexToAddress(s)
	}
	return pair, nil
}

var _ domain.Task = (*SmartBridge)(nil)
