package chain

import (
	"context"
	"io"
	"log/slog"
	"math/big"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/sbdeploy/internal/domain"
	"github.com/trebuchet-org/sbdeploy/internal/domain/config"
)

type ethAPI struct {
	chainID int64
}

func (api *ethAPI) ChainId() *hexutil.Big {
	return (*hexutil.Big)(big.NewInt(api.chainID))
}

type evmAPI struct {
	mined atomic.Int32
}

func (api *evmAPI) Mine() string {
	api.mined.Add(1)
	return "0x0"
}

func newNode(t *testing.T, chainID int64) (string, *evmAPI) {
	t.Helper()

	evm := &evmAPI{}
	server := rpc.NewServer()
	require.NoError(t, server.RegisterName("eth", &ethAPI{chainID: chainID}))
	require.NoError(t, server.RegisterName("evm", evm))

	httpServer := httptest.NewServer(server)
	t.Cleanup(func() {
		httpServer.Close()
		server.Stop()
	})
	return httpServer.URL, evm
}

func newConnector() *Connector {
	return NewConnector(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestConnector_FillsChainID(t *testing.T) {
	url, _ := newNode(t, 31337)
	network := &config.Network{Name: "localhost", RPCURL: url, Local: true}

	client, err := newConnector().Connect(context.Background(), network)
	require.NoError(t, err)
	defer client.Close()

	assert.Equal(t, uint64(31337), network.ChainID)
}

func TestConnector_DetectsLocalChainID(t *testing.T) {
	url, evm := newNode(t, 31337)
	network := &config.Network{Name: "devnet", RPCURL: url}

	client, err := newConnector().Connect(context.Background(), network)
	require.NoError(t, err)
	defer client.Close()

	assert.Equal(t, uint64(31337), network.ChainID)
	assert.True(t, network.Local)

	require.NoError(t, client.Mine(context.Background()))
	assert.Equal(t, int32(1), evm.mined.Load())
}

func TestConnector_LiveChainIDStaysLive(t *testing.T) {
	url, _ := newNode(t, 2810)
	network := &config.Network{Name: "morphHolesky", RPCURL: url}

	client, err := newConnector().Connect(context.Background(), network)
	require.NoError(t, err)
	defer client.Close()

	assert.Equal(t, uint64(2810), network.ChainID)
	assert.False(t, network.Local)
}

func TestConnector_ChainIDMismatch(t *testing.T) {
	url, _ := newNode(t, 1)
	network := &config.Network{Name: "arbitrumSepolia", RPCURL: url, ChainID: 421614}

	_, err := newConnector().Connect(context.Background(), network)
	assert.ErrorIs(t, err, domain.ErrNetworkMismatch)
}

func TestConnector_Unreachable(t *testing.T) {
	server := httptest.NewServer(rpc.NewServer())
	url := server.URL
	server.Close()
	network := &config.Network{Name: "down", RPCURL: url}

	_, err := newConnector().Connect(context.Background(), network)

	var target *domain.NetworkUnavailableError
	require.ErrorAs(t, err, &target)
	assert.Equal(t, "down", target.Network)
}

func TestConnector_BadURL(t *testing.T) {
	network := &config.Network{Name: "bad", RPCURL: "ftp://example.com"}

	_, err := newConnector().Connect(context.Background(), network)

	var target *domain.NetworkUnavailableError
	assert.ErrorAs(t, err, &target)
}

func TestClient_Mine(t *testing.T) {
	t.Run("local network", func(t *testing.T) {
		url, evm := newNode(t, 31337)
		client, err := newConnector().Connect(context.Background(), &config.Network{Name: "localhost", RPCURL: url, Local: true})
		require.NoError(t, err)
		defer client.Close()

		require.NoError(t, client.Mine(context.Background()))
		assert.Equal(t, int32(1), evm.mined.Load())
	})

	t.Run("live network is a no-op", func(t *testing.T) {
		url, evm := newNode(t, 421614)
		client, err := newConnector().Connect(context.Background(), &config.Network{Name: "arbitrumSepolia", RPCURL: url})
		require.NoError(t, err)
		defer client.Close()

		require.NoError(t, client.Mine(context.Background()))
		assert.Equal(t, int32(0), evm.mined.Load())
	})
}
