package deployer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/big"
	"net"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/trebuchet-org/sbdeploy/internal/domain"
	"github.com/trebuchet-org/sbdeploy/internal/domain/config"
	"github.com/trebuchet-org/sbdeploy/internal/domain/models"
	"github.com/trebuchet-org/sbdeploy/internal/usecase"
)

// Deployer creates contracts from compiled artifacts and records them
type Deployer struct {
	artifacts usecase.ArtifactRepository
	repo      usecase.DeploymentRepository
	signers   usecase.SignerStore
	progress  usecase.ProgressSink
	log       *slog.Logger
	now       func() time.Time
}

// NewDeployer creates a new deployer
func NewDeployer(
	artifacts usecase.ArtifactRepository,
	repo usecase.DeploymentRepository,
	signers usecase.SignerStore,
	progress usecase.ProgressSink,
	log *slog.Logger,
) *Deployer {
	return &Deployer{
		artifacts: artifacts,
		repo:      repo,
		signers:   signers,
		progress:  progress,
		log:       log,
		now:       time.Now,
	}
}

// Deploy deploys req.ContractName, or returns the existing record when the
// same bytecode and arguments are already live at the recorded address.
func (d *Deployer) Deploy(ctx context.Context, client usecase.ChainClient, req domain.DeploymentRequest, network *config.Network) (*models.DeploymentRecord, error) {
	opts := req.Options

	artifact, err := d.artifacts.GetArtifact(ctx, req.ContractName)
	if err != nil {
		return nil, err
	}

	parsed, err := abi.JSON(bytes.NewReader(artifact.ABI))
	if err != nil {
		return nil, fmt.Errorf("failed to parse abi of %s: %w", req.ContractName, err)
	}

	bytecode, err := artifact.Bytecode.Bytes()
	if err != nil {
		return nil, fmt.Errorf("artifact %s: %w", req.ContractName, err)
	}

	expected := len(parsed.Constructor.Inputs)
	if expected != len(opts.Args) {
		return nil, &domain.ConstructorArgumentMismatchError{
			Contract: req.ContractName,
			Expected: expected,
			Got:      len(opts.Args),
		}
	}
	packed, err := parsed.Pack("", opts.Args...)
	if err != nil {
		return nil, &domain.ConstructorArgumentMismatchError{
			Contract: req.ContractName,
			Expected: expected,
			Got:      len(opts.Args),
			Err:      err,
		}
	}

	bytecodeHash := crypto.Keccak256Hash(bytecode).Hex()
	constructorArgs := hexutil.Encode(packed)

	existing, err := d.reusable(ctx, client, network, req.ContractName, bytecodeHash, constructorArgs)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		if opts.Log {
			d.progress.Info(fmt.Sprintf("reusing %q at %s", req.ContractName, existing.Address))
		}
		d.log.Debug("deployment unchanged, skipping", "contract", req.ContractName, "network", network.Name, "address", existing.Address)
		return existing, nil
	}

	key, err := d.signers.Signer(opts.From)
	if err != nil {
		return nil, &domain.AccountResolutionError{
			Role:    domain.DeployerRole,
			Network: network.Name,
			Reason:  "cannot sign",
			Err:     err,
		}
	}

	chainID := new(big.Int).SetUint64(network.ChainID)
	if network.ChainID == 0 {
		if chainID, err = client.ChainID(ctx); err != nil {
			return nil, unavailable(network, err)
		}
	}

	auth, err := bind.NewKeyedTransactorWithChainID(key, chainID)
	if err != nil {
		return nil, fmt.Errorf("failed to create transactor: %w", err)
	}
	auth.Context = ctx

	address, tx, _, err := bind.DeployContract(auth, parsed, bytecode, client, opts.Args...)
	if err != nil {
		return nil, classify(req.ContractName, "", network, err)
	}

	if opts.Log {
		d.progress.Info(fmt.Sprintf("deploying %q (tx: %s)...", req.ContractName, tx.Hash().Hex()))
	}
	d.log.Info("creation transaction sent", "contract", req.ContractName, "network", network.Name, "tx", tx.Hash().Hex())

	if opts.AutoMine && network.Local {
		if err := client.Mine(ctx); err != nil {
			return nil, unavailable(network, err)
		}
	}

	receipt, err := bind.WaitMined(ctx, client, tx)
	if err != nil {
		return nil, classify(req.ContractName, tx.Hash().Hex(), network, err)
	}
	if receipt.Status == types.ReceiptStatusFailed {
		return nil, &domain.TransactionFailureError{
			Contract: req.ContractName,
			TxHash:   tx.Hash().Hex(),
			Err:      errors.New("transaction reverted"),
		}
	}

	record := &models.DeploymentRecord{
		ContractName:    req.ContractName,
		Network:         network.Name,
		ChainID:         chainID.Uint64(),
		Address:         address.Hex(),
		ABI:             artifact.ABI,
		TransactionHash: tx.Hash().Hex(),
		BlockNumber:     receipt.BlockNumber.Uint64(),
		GasUsed:         receipt.GasUsed,
		Deployer:        opts.From.Hex(),
		Args:            formatArgs(opts.Args),
		ConstructorArgs: constructorArgs,
		BytecodeHash:    bytecodeHash,
		CreatedAt:       d.now().UTC(),
		Newly:           true,
	}

	if err := d.repo.SaveDeployment(ctx, record); err != nil {
		return nil, fmt.Errorf("contract deployed at %s but record not saved: %w", record.Address, err)
	}

	if opts.Log {
		d.progress.Info(fmt.Sprintf("deployed %q at %s with %d gas", req.ContractName, record.Address, record.GasUsed))
	}
	return record, nil
}

// reusable returns the stored record when it matches the inputs and its code is still on chain
func (d *Deployer) reusable(ctx context.Context, client usecase.ChainClient, network *config.Network, contractName, bytecodeHash, constructorArgs string) (*models.DeploymentRecord, error) {
	existing, err := d.repo.GetDeployment(ctx, network.Name, contractName)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if !existing.SameInputs(bytecodeHash, constructorArgs) {
		d.log.Debug("deployment inputs changed", "contract", contractName, "network", network.Name)
		return nil, nil
	}

	code, err := client.CodeAt(ctx, common.HexToAddress(existing.Address), nil)
	if err != nil {
		return nil, unavailable(network, err)
	}
	if len(code) == 0 {
		d.log.Debug("recorded deployment has no code", "contract", contractName, "address", existing.Address)
		return nil, nil
	}

	existing.Newly = false
	return existing, nil
}

func unavailable(network *config.Network, err error) error {
	return &domain.NetworkUnavailableError{Network: network.Name, RPCURL: network.RPCURL, Err: err}
}

// revertErrorCode is the JSON-RPC error code nodes use for execution reverts
const revertErrorCode = 3

// classify maps a send or receipt error onto the error taxonomy. Typed RPC and
// network errors are checked first; message matching covers nodes that report
// failures as plain -32000 errors.
func classify(contract, txHash string, network *config.Network, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	var dataErr rpc.DataError
	if errors.As(err, &dataErr) && dataErr.ErrorData() != nil {
		return &domain.TransactionFailureError{Contract: contract, TxHash: txHash, Err: err}
	}
	var rpcErr rpc.Error
	if errors.As(err, &rpcErr) && rpcErr.ErrorCode() == revertErrorCode {
		return &domain.TransactionFailureError{Contract: contract, TxHash: txHash, Err: err}
	}

	var netErr net.Error
	if errors.As(err, &netErr) || errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return unavailable(network, err)
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "revert"),
		strings.Contains(msg, "out of gas"),
		strings.Contains(msg, "gas required exceeds"),
		strings.Contains(msg, "insufficient funds"):
		return &domain.TransactionFailureError{Contract: contract, TxHash: txHash, Err: err}
	case strings.Contains(msg, "connection refused"),
		strings.Contains(msg, "no such host"):
		return unavailable(network, err)
	}
	return fmt.Errorf("deployment of %s failed: %w", contract, err)
}

// formatArgs renders constructor arguments for the record
func formatArgs(args []any) []string {
	out := make([]string, len(args))
	for i, arg := range args {
		if s, ok := arg.(fmt.Stringer); ok {
			out[i] = s.String()
			continue
		}
		out[i] = fmt.Sprint(arg)
	}
	return out
}

var _ usecase.ContractDeployer = (*Deployer)(nil)
