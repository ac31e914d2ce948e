package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/trebuchet-org/sbdeploy/internal/usecase"
)

// TasksRenderer renders registered deploy tasks
type TasksRenderer struct {
	out io.Writer
}

// NewTasksRenderer creates a new tasks renderer
func NewTasksRenderer(out io.Writer) *TasksRenderer {
	return &TasksRenderer{out: out}
}

// Render renders the task list, marking tasks the tag filter selects
func (r *TasksRenderer) Render(result *usecase.ListTasksResult) error {
	if len(result.Tasks) == 0 {
		fmt.Fprintln(r.out, "No deploy tasks registered")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"", "Task", "Tags"})
	for _, task := range result.Tasks {
		mark := color.New(color.Faint).Sprint("○")
		if task.Selected {
			mark = color.New(color.FgGreen).Sprint("●")
		}
		t.AppendRow(table.Row{mark, task.Name, strings.Join(task.Tags, ", ")})
	}
	t.Render()
	return nil
}

var _ Renderer[*usecase.ListTasksResult] = (*TasksRenderer)(nil)
