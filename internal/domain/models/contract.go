package models

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
)

// BytecodeObject holds creation bytecode. Foundry emits {"object": "0x..."},
// hardhat emits a bare string; both decode here.
type BytecodeObject struct {
	Object         string         `json:"object"`
	LinkReferences map[string]any `json:"linkReferences,omitempty"`
}

// UnmarshalJSON accepts both the Foundry object form and the hardhat string form
func (b *BytecodeObject) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		b.Object = s
		return nil
	}
	type plain BytecodeObject
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("invalid bytecode: %w", err)
	}
	*b = BytecodeObject(p)
	return nil
}

// Bytes decodes the bytecode. Unlinked library placeholders are rejected.
func (b BytecodeObject) Bytes() ([]byte, error) {
	code := strings.TrimPrefix(b.Object, "0x")
	if code == "" {
		return nil, fmt.Errorf("empty bytecode")
	}
	if strings.Contains(code, "__") {
		return nil, fmt.Errorf("bytecode has unlinked libraries")
	}
	data, err := hex.DecodeString(code)
	if err != nil {
		return nil, fmt.Errorf("invalid bytecode: %w", err)
	}
	return data, nil
}

// Artifact represents a compiled contract artifact
type Artifact struct {
	ContractName string          `json:"contractName,omitempty"`
	ABI          json.RawMessage `json:"abi"`
	Bytecode     BytecodeObject  `json:"bytecode"`

	// Path the artifact was loaded from (not persisted)
	Path string `json:"-"`
}
