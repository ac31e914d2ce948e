package render

import (
	"fmt"
	"io"
	"regexp"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/trebuchet-org/sbdeploy/internal/domain/models"
	"github.com/trebuchet-org/sbdeploy/internal/usecase"
)

// Color styles for table format
var (
	networkBg          = color.BgCyan
	networkHeader      = color.New(networkBg, color.FgBlack)
	networkHeaderBold  = color.New(networkBg, color.FgBlack, color.Bold)
	contractStyle      = color.New(color.FgGreen, color.Bold)
	addressStyle       = color.New(color.FgWhite)
	txStyle            = color.New(color.Faint)
	timestampStyle     = color.New(color.Faint)
	sectionHeaderStyle = color.New(color.Bold, color.FgHiWhite)
)

type TableData [][]string

// DeploymentsRenderer renders deployment lists as formatted tables grouped by network
type DeploymentsRenderer struct {
	out   io.Writer
	color bool
}

// NewDeploymentsRenderer creates a new deployments renderer
func NewDeploymentsRenderer(out io.Writer, color bool) *DeploymentsRenderer {
	return &DeploymentsRenderer{
		out:   out,
		color: color,
	}
}

// RenderDeploymentList renders deployments in the tree-style format
func (r *DeploymentsRenderer) RenderDeploymentList(result *usecase.DeploymentListResult) error {
	if len(result.Deployments) == 0 {
		fmt.Fprintln(r.out, "No deployments found")
		return nil
	}

	r.displayTableFormat(result.Deployments)
	fmt.Fprintf(r.out, "Total deployments: %d (%s)\n", result.Summary.Total, summaryLine(result.Summary))
	return nil
}

// displayTableFormat shows deployments grouped by network
func (r *DeploymentsRenderer) displayTableFormat(deployments []*models.DeploymentRecord) {
	groups := make(map[string][]*models.DeploymentRecord)
	for _, dep := range deployments {
		groups[dep.Network] = append(groups[dep.Network], dep)
	}

	networks := make([]string, 0, len(groups))
	for network := range groups {
		networks = append(networks, network)
	}
	sort.Strings(networks)

	// Build all tables first for consistent column widths
	tables := make(map[string]TableData, len(networks))
	allTables := make([]TableData, 0, len(networks))
	for _, network := range networks {
		t := r.buildDeploymentTable(groups[network])
		tables[network] = t
		allTables = append(allTables, t)
	}
	globalColumnWidths := calculateTableColumnWidths(allTables)

	for netIdx, network := range networks {
		isLastNetwork := netIdx == len(networks)-1
		treePrefix := "├─"
		continuationPrefix := "│ "
		if isLastNetwork {
			treePrefix = "└─"
			continuationPrefix = "  "
		}

		chainID := groups[network][0].ChainID
		label := fmt.Sprintf("%-12s", "network:")
		value := fmt.Sprintf("%-30s", fmt.Sprintf("%s (%d)", network, chainID))
		fmt.Fprintf(r.out, "%s%s%s\n",
			treePrefix,
			networkHeader.Sprintf(" ⛓ %s ", label),
			networkHeaderBold.Sprint(value))
		fmt.Fprintln(r.out, continuationPrefix)

		fmt.Fprintf(r.out, "%s%s\n", continuationPrefix, sectionHeaderStyle.Sprint("CONTRACTS"))
		fmt.Fprint(r.out, renderTableWithWidths(tables[network], globalColumnWidths, continuationPrefix))
		fmt.Fprintln(r.out)

		if !isLastNetwork {
			fmt.Fprintln(r.out, continuationPrefix)
		} else {
			fmt.Fprintln(r.out)
		}
	}
}

// buildDeploymentTable creates a TableData for a list of deployments
func (r *DeploymentsRenderer) buildDeploymentTable(deployments []*models.DeploymentRecord) TableData {
	tableData := make(TableData, 0, len(deployments))

	sort.Slice(deployments, func(i, j int) bool {
		return deployments[i].ContractName < deployments[j].ContractName
	})

	for _, deployment := range deployments {
		tableData = append(tableData, []string{
			contractStyle.Sprint(deployment.ContractName),
			addressStyle.Sprint(deployment.Address),
			txStyle.Sprint(shortHash(deployment.TransactionHash)),
			timestampStyle.Sprint(deployment.CreatedAt.Format("2006-01-02 15:04:05")),
		})
	}

	return tableData
}

// shortHash abbreviates a transaction hash for table display
func shortHash(hash string) string {
	if len(hash) <= 14 {
		return hash
	}
	return hash[:10] + "…" + hash[len(hash)-4:]
}

// renderTableWithWidths renders a table with specific column widths
func renderTableWithWidths(tableData TableData, columnWidths []int, continuationPrefix string) string {
	if len(tableData) == 0 {
		return ""
	}

	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.Style().Options.SeparateRows = false
	t.Style().Options.DrawBorder = false
	t.Style().Options.SeparateHeader = false
	t.Style().Options.SeparateColumns = false
	t.Style().Box = table.BoxStyle{
		PaddingRight: "   ",
	}

	colConfigs := make([]table.ColumnConfig, len(columnWidths))
	for i, width := range columnWidths {
		if i == 0 {
			width += 2 + len([]rune(continuationPrefix))
		}
		colConfigs[i] = table.ColumnConfig{
			Number:   i + 1,
			Align:    text.AlignLeft,
			WidthMin: width,
			WidthMax: width,
		}
	}
	t.SetColumnConfigs(colConfigs)

	for _, row := range tableData {
		tableRow := make(table.Row, len(row))
		for i, cell := range row {
			if i == 0 {
				tableRow[i] = continuationPrefix + cell
			} else {
				tableRow[i] = cell
			}
		}
		t.AppendRow(tableRow)
	}

	return t.Render()
}

var ansiRegex = regexp.MustCompile(`\x1b\[[0-9;]*[mGKHF]`)

// stripAnsiCodes removes ANSI escape sequences from a string
func stripAnsiCodes(s string) string {
	return ansiRegex.ReplaceAllString(s, "")
}

// calculateTableColumnWidths calculates column widths for multiple tables
func calculateTableColumnWidths(tables []TableData) []int {
	if len(tables) == 0 {
		return nil
	}

	maxCols := 0
	for _, table := range tables {
		for _, row := range table {
			if len(row) > maxCols {
				maxCols = len(row)
			}
		}
	}

	widths := make([]int, maxCols)
	for _, table := range tables {
		for _, row := range table {
			for colIdx, cell := range row {
				cellWidth := len([]rune(stripAnsiCodes(cell)))
				if cellWidth > widths[colIdx] {
					widths[colIdx] = cellWidth
				}
			}
		}
	}

	return widths
}

// summaryLine renders per-network counts, e.g. "arbitrumSepolia: 1, morphHolesky: 2"
func summaryLine(summary usecase.DeploymentSummary) string {
	networks := make([]string, 0, len(summary.ByNetwork))
	for network := range summary.ByNetwork {
		networks = append(networks, network)
	}
	sort.Strings(networks)

	parts := make([]string, 0, len(networks))
	for _, network := range networks {
		parts = append(parts, fmt.Sprintf("%s: %d", network, summary.ByNetwork[network]))
	}
	return strings.Join(parts, ", ")
}
