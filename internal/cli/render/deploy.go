package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/trebuchet-org/sbdeploy/internal/domain/config"
	"github.com/trebuchet-org/sbdeploy/internal/domain/models"
	"github.com/trebuchet-org/sbdeploy/internal/usecase"
)

// DeployRenderer renders deploy runs
type DeployRenderer struct {
	out   io.Writer
	color bool
}

// NewDeployRenderer creates a new deploy renderer
func NewDeployRenderer(out io.Writer, color bool) *DeployRenderer {
	return &DeployRenderer{
		out:   out,
		color: color,
	}
}

// PrintDeployBanner prints the network a run is about to deploy to
func (r *DeployRenderer) PrintDeployBanner(network *config.Network) {
	bold := color.New(color.Bold)
	fmt.Fprintln(r.out)
	fmt.Fprintf(r.out, "🚀 Deploying to %s\n", color.New(color.FgCyan, color.Bold).Sprint(network.Name))
	fmt.Fprintf(r.out, "   %s %d\n", bold.Sprint("Chain ID:"), network.ChainID)
	fmt.Fprintf(r.out, "   %s %s\n", bold.Sprint("RPC:     "), redactURL(network.RPCURL))
	if network.Local {
		fmt.Fprintf(r.out, "   %s\n", color.New(color.FgYellow).Sprint("local network, auto-mining enabled"))
	}
	fmt.Fprintln(r.out)
}

// RenderResult renders the outcome of a deploy run
func (r *DeployRenderer) RenderResult(result *usecase.RunDeployResult) error {
	if len(result.Deployments) == 0 {
		fmt.Fprintf(r.out, "Ran %s, nothing deployed\n", strings.Join(result.Tasks, ", "))
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Contract", "Address", "Status", "Gas"})
	for _, record := range result.Deployments {
		t.AppendRow(table.Row{
			contractStyle.Sprint(record.ContractName),
			record.Address,
			deploymentStatus(record),
			record.GasUsed,
		})
	}
	t.Render()

	fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("Deploy run on %s completed", result.Network.Name)))
	return nil
}

func deploymentStatus(record *models.DeploymentRecord) string {
	if record.Newly {
		return color.New(color.FgGreen).Sprint(Title("newly deployed"))
	}
	return color.New(color.Faint).Sprint(Title("reused"))
}

// redactURL hides the path and query of an RPC URL, which often carry API keys
func redactURL(url string) string {
	scheme := ""
	rest := url
	if idx := strings.Index(url, "://"); idx != -1 {
		scheme, rest = url[:idx+3], url[idx+3:]
	}
	if idx := strings.IndexAny(rest, "/?"); idx != -1 && idx < len(rest)-1 {
		return scheme + rest[:idx] + "/…"
	}
	return url
}
