package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for domain operations
var (
	// ErrNotFound is returned when a requested resource doesn't exist
	ErrNotFound = errors.New("not found")

	// ErrInvalidAddress is returned when an Ethereum address is invalid
	ErrInvalidAddress = errors.New("invalid address")

	// ErrNetworkMismatch is returned when the configured chain ID differs from the node's
	ErrNetworkMismatch = errors.New("network mismatch")

	// ErrContractNotFound is returned when a contract artifact can't be found
	ErrContractNotFound = errors.New("contract not found")

	// ErrNoSigner is returned when no signing key is known for a sender address
	ErrNoSigner = errors.New("no signer for account")
)

// AccountResolutionError reports a named account that could not be resolved
// to a usable, funded address. It is never retried.
type AccountResolutionError struct {
	Role    string
	Network string
	Reason  string
	Err     error
}

func (e *AccountResolutionError) Error() string {
	msg := fmt.Sprintf("cannot resolve account %q on network %q", e.Role, e.Network)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *AccountResolutionError) Unwrap() error { return e.Err }

// ConstructorArgumentMismatchError is returned before broadcast when the
// supplied arguments don't fit the compiled constructor.
type ConstructorArgumentMismatchError struct {
	Contract string
	Expected int
	Got      int
	Err      error
}

func (e *ConstructorArgumentMismatchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("constructor arguments for %s do not match: %v", e.Contract, e.Err)
	}
	return fmt.Sprintf("constructor of %s takes %d arguments, got %d", e.Contract, e.Expected, e.Got)
}

func (e *ConstructorArgumentMismatchError) Unwrap() error { return e.Err }

// TransactionFailureError wraps a chain-side failure of the creation
// transaction (revert, out of gas).
type TransactionFailureError struct {
	Contract string
	TxHash   string
	Err      error
}

func (e *TransactionFailureError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "deployment of %s failed", e.Contract)
	if e.TxHash != "" {
		fmt.Fprintf(&b, " (tx: %s)", e.TxHash)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *TransactionFailureError) Unwrap() error { return e.Err }

// NetworkUnavailableError is returned when the RPC endpoint can't be reached.
type NetworkUnavailableError struct {
	Network string
	RPCURL  string
	Err     error
}

func (e *NetworkUnavailableError) Error() string {
	return fmt.Sprintf("network %q unavailable at %s: %v", e.Network, e.RPCURL, e.Err)
}

func (e *NetworkUnavailableError) Unwrap() error { return e.Err }

// UnsupportedNetworkError is returned when a task has no parameters for the
// active network.
type UnsupportedNetworkError struct {
	Task      string
	Network   string
	Supported []string
}

func (e *UnsupportedNetworkError) Error() string {
	if len(e.Supported) == 0 {
		return fmt.Sprintf("task %s has no configuration for network %q", e.Task, e.Network)
	}
	return fmt.Sprintf("task %s has no configuration for network %q (supported: %s)",
		e.Task, e.Network, strings.Join(e.Supported, ", "))
}
