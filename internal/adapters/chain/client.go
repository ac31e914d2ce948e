package chain

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/trebuchet-org/sbdeploy/internal/domain"
	"github.com/trebuchet-org/sbdeploy/internal/domain/config"
	"github.com/trebuchet-org/sbdeploy/internal/usecase"
)

const chainIDTimeout = 10 * time.Second

// Connector dials JSON-RPC endpoints
type Connector struct {
	log *slog.Logger
}

// NewConnector creates a new chain connector
func NewConnector(log *slog.Logger) *Connector {
	return &Connector{log: log}
}

// Connect dials the network and verifies its chain ID. A zero ChainID on the
// network is filled in from the node, and a local dev chain ID marks it Local.
func (c *Connector) Connect(ctx context.Context, network *config.Network) (usecase.ChainClient, error) {
	rpcClient, err := rpc.DialContext(ctx, network.RPCURL)
	if err != nil {
		return nil, &domain.NetworkUnavailableError{Network: network.Name, RPCURL: network.RPCURL, Err: err}
	}
	client := &Client{
		Client: ethclient.NewClient(rpcClient),
		rpc:    rpcClient,
	}

	idCtx, cancel := context.WithTimeout(ctx, chainIDTimeout)
	defer cancel()

	chainID, err := client.ChainID(idCtx)
	if err != nil {
		client.Close()
		return nil, &domain.NetworkUnavailableError{Network: network.Name, RPCURL: network.RPCURL, Err: err}
	}

	if network.ChainID == 0 {
		network.ChainID = chainID.Uint64()
	} else if network.ChainID != chainID.Uint64() {
		client.Close()
		return nil, fmt.Errorf("%w: %s is configured for chain %d, node reports %d",
			domain.ErrNetworkMismatch, network.Name, network.ChainID, chainID.Uint64())
	}
	network.Local = network.Local || config.IsLocalChainID(network.ChainID)
	client.local = network.Local

	c.log.Debug("connected to chain", "network", network.Name, "chainId", network.ChainID, "local", network.Local)
	return client, nil
}

// Client is an ethclient connection that can also mine on local nodes
type Client struct {
	*ethclient.Client
	rpc   *rpc.Client
	local bool
}

// Mine seals pending transactions with evm_mine. No-op on live networks.
func (c *Client) Mine(ctx context.Context) error {
	if !c.local {
		return nil
	}
	if err := c.rpc.CallContext(ctx, nil, "evm_mine"); err != nil {
		return fmt.Errorf("evm_mine failed: %w", err)
	}
	return nil
}

var (
	_ usecase.ChainConnector = (*Connector)(nil)
	_ usecase.ChainClient    = (*Client)(nil)
)
