package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/trebuchet-org/sbdeploy/internal/domain/models"
	"gopkg.in/yaml.v3"
)

// DeploymentRenderer renders detailed information about a single deployment
type DeploymentRenderer struct {
	out   io.Writer
	color bool
}

// NewDeploymentRenderer creates a new deployment renderer
func NewDeploymentRenderer(out io.Writer, color bool) *DeploymentRenderer {
	return &DeploymentRenderer{
		out:   out,
		color: color,
	}
}

// RenderDeployment renders detailed deployment information
func (r *DeploymentRenderer) RenderDeployment(record *models.DeploymentRecord, explorerURL string) error {
	color.New(color.FgCyan, color.Bold).Fprintf(r.out, "Deployment: %s\n", record.ID())
	fmt.Fprintln(r.out, strings.Repeat("=", 80))

	fmt.Fprintln(r.out, "\nBasic Information:")
	fmt.Fprintf(r.out, "  Contract: %s\n", color.New(color.FgYellow).Sprint(record.ContractName))
	fmt.Fprintf(r.out, "  Address: %s\n", record.Address)
	fmt.Fprintf(r.out, "  Network: %s (chain %d)\n", record.Network, record.ChainID)
	if explorerURL != "" {
		fmt.Fprintf(r.out, "  Explorer: %s/address/%s\n", strings.TrimSuffix(explorerURL, "/"), record.Address)
	}

	fmt.Fprintln(r.out, "\nTransaction:")
	fmt.Fprintf(r.out, "  Hash: %s\n", record.TransactionHash)
	fmt.Fprintf(r.out, "  Block: %d\n", record.BlockNumber)
	fmt.Fprintf(r.out, "  Gas Used: %d\n", record.GasUsed)
	fmt.Fprintf(r.out, "  Deployer: %s\n", record.Deployer)

	if len(record.Args) > 0 {
		fmt.Fprintln(r.out, "\nConstructor Arguments:")
		for i, arg := range record.Args {
			fmt.Fprintf(r.out, "  [%d] %s\n", i, arg)
		}
	}

	fmt.Fprintln(r.out, "\nArtifact:")
	fmt.Fprintf(r.out, "  Bytecode Hash: %s\n", record.BytecodeHash)

	fmt.Fprintf(r.out, "\nDeployed: %s\n", timestampStyle.Sprint(record.CreatedAt.Format("2006-01-02 15:04:05 MST")))
	return nil
}

// RenderJSON writes the record as indented JSON
func (r *DeploymentRenderer) RenderJSON(record *models.DeploymentRecord) error {
	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal deployment: %w", err)
	}
	fmt.Fprintln(r.out, string(data))
	return nil
}

// RenderYAML writes the record as YAML, using the same field names as the JSON record
func (r *DeploymentRenderer) RenderYAML(record *models.DeploymentRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal deployment: %w", err)
	}

	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("failed to convert deployment: %w", err)
	}

	enc := yaml.NewEncoder(r.out)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode yaml: %w", err)
	}
	return enc.Close()
}
