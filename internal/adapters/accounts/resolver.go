package accounts

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/trebuchet-org/sbdeploy/internal/domain"
	"github.com/trebuchet-org/sbdeploy/internal/domain/config"
	"github.com/trebuchet-org/sbdeploy/internal/usecase"
)

// DevPrivateKey is anvil/hardhat account #0, funded on every local dev chain
const DevPrivateKey = "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"

// Resolver maps named-account roles to addresses and keeps their signing keys
type Resolver struct {
	project *config.ProjectConfig
	log     *slog.Logger

	mu      sync.RWMutex
	signers map[common.Address]*ecdsa.PrivateKey
}

// NewResolver creates a resolver for the project's accounts
func NewResolver(cfg *config.RuntimeConfig, log *slog.Logger) *Resolver {
	project := cfg.Project
	if project == nil {
		project = &config.ProjectConfig{}
	}
	return &Resolver{
		project: project,
		log:     log,
		signers: make(map[common.Address]*ecdsa.PrivateKey),
	}
}

// ResolveNamedAccounts returns role -> address for the network. On local
// networks a missing deployer falls back to the dev account. When a client is
// given, the deployer must hold a non-zero balance.
func (r *Resolver) ResolveNamedAccounts(ctx context.Context, network *config.Network, client usecase.ChainClient) (map[string]common.Address, error) {
	roles := make([]string, 0, len(r.project.NamedAccounts))
	for role := range r.project.NamedAccounts {
		roles = append(roles, role)
	}
	sort.Strings(roles)

	accounts := make(map[string]common.Address, len(roles)+1)
	for _, role := range roles {
		name := r.project.NamedAccounts[role].AccountFor(network.Name)
		if name == "" {
			continue
		}

		acct, ok := r.project.Accounts[name]
		if !ok {
			return nil, &domain.AccountResolutionError{
				Role:    role,
				Network: network.Name,
				Reason:  fmt.Sprintf("unknown account %q", name),
			}
		}

		address, err := r.load(acct)
		if err != nil {
			return nil, &domain.AccountResolutionError{
				Role:    role,
				Network: network.Name,
				Reason:  fmt.Sprintf("account %q", name),
				Err:     err,
			}
		}
		accounts[role] = address
	}

	if _, ok := accounts[domain.DeployerRole]; !ok && network.Local {
		address, err := r.load(config.AccountConfig{Type: config.AccountTypePrivateKey, PrivateKey: DevPrivateKey})
		if err != nil {
			return nil, err
		}
		r.log.Debug("using local dev account as deployer", "network", network.Name, "address", address.Hex())
		accounts[domain.DeployerRole] = address
	}

	if deployer, ok := accounts[domain.DeployerRole]; ok && client != nil {
		if err := checkFunded(ctx, client, network, deployer); err != nil {
			return nil, err
		}
	}

	return accounts, nil
}

// Signer returns the private key of a resolved account
func (r *Resolver) Signer(address common.Address) (*ecdsa.PrivateKey, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	key, ok := r.signers[address]
	if !ok {
		return nil, fmt.Errorf("%w %s", domain.ErrNoSigner, address.Hex())
	}
	return key, nil
}

// load parses an account and records its key when it has one
func (r *Resolver) load(acct config.AccountConfig) (common.Address, error) {
	switch acct.Type {
	case config.AccountTypePrivateKey:
		raw := strings.TrimPrefix(strings.TrimSpace(acct.PrivateKey), "0x")
		if raw == "" {
			return common.Address{}, fmt.Errorf("private key is empty")
		}
		key, err := crypto.HexToECDSA(raw)
		if err != nil {
			return common.Address{}, fmt.Errorf("invalid private key: %w", err)
		}
		address := crypto.PubkeyToAddress(key.PublicKey)

		r.mu.Lock()
		r.signers[address] = key
		r.mu.Unlock()
		return address, nil

	case config.AccountTypeAddress:
		if !common.IsHexAddress(acct.Address) {
			return common.Address{}, fmt.Errorf("%w: %q", domain.ErrInvalidAddress, acct.Address)
		}
		return common.HexToAddress(acct.Address), nil

	default:
		return common.Address{}, fmt.Errorf("unsupported account type %q", acct.Type)
	}
}

func checkFunded(ctx context.Context, client usecase.ChainClient, network *config.Network, address common.Address) error {
	balance, err := client.BalanceAt(ctx, address, nil)
	if err != nil {
		return &domain.NetworkUnavailableError{Network: network.Name, RPCURL: network.RPCURL, Err: err}
	}
	if balance.Sign() == 0 {
		return &domain.AccountResolutionError{
			Role:    domain.DeployerRole,
			Network: network.Name,
			Reason:  "unfunded",
			Err:     fmt.Errorf("%s has no balance", address.Hex()),
		}
	}
	return nil
}

var (
	_ usecase.NamedAccountResolver = (*Resolver)(nil)
	_ usecase.SignerStore          = (*Resolver)(nil)
)
