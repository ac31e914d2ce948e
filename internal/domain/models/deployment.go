package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// DeploymentRecord is the persisted result of a contract deployment on one network
type DeploymentRecord struct {
	// Identification
	ContractName string `json:"contractName"` // e.g., "SmartBridge"
	Network      string `json:"network"`      // e.g., "arbitrumSepolia"
	ChainID      uint64 `json:"chainId"`
	Address      string `json:"address"`

	// Interface
	ABI json.RawMessage `json:"abi"`

	// Creation transaction
	TransactionHash string `json:"transactionHash"`
	BlockNumber     uint64 `json:"blockNumber"`
	GasUsed         uint64 `json:"gasUsed"`
	Deployer        string `json:"deployer"`

	// Inputs, used to decide whether a redeploy is needed
	Args            []string `json:"args"`            // Human readable constructor args
	ConstructorArgs string   `json:"constructorArgs"` // Hex encoded
	BytecodeHash    string   `json:"bytecodeHash"`    // keccak256 of creation bytecode

	CreatedAt time.Time `json:"createdAt"`

	// Runtime fields (not persisted)
	Newly bool `json:"-" yaml:"-"` // true when this invocation created it
}

// ID returns the registry key of the record
func (r *DeploymentRecord) ID() string {
	return fmt.Sprintf("%s/%s", r.Network, r.ContractName)
}

// SameInputs reports whether another deployment would use identical bytecode and arguments
func (r *DeploymentRecord) SameInputs(bytecodeHash, constructorArgs string) bool {
	return r.BytecodeHash == bytecodeHash && r.ConstructorArgs == constructorArgs
}
