package usecase

import (
	"context"

	"github.com/trebuchet-org/sbdeploy/internal/domain"
)

// ListTasksParams contains parameters for listing tasks
type ListTasksParams struct {
	Tags []string
}

// TaskInfo describes a registered task
type TaskInfo struct {
	Name     string
	Tags     []string
	Selected bool
}

// ListTasksResult contains the result of listing tasks
type ListTasksResult struct {
	Tasks []TaskInfo
}

// ListTasks lists registered deploy tasks and whether a tag filter selects them
type ListTasks struct {
	registry TaskRegistry
}

// NewListTasks creates a new ListTasks use case
func NewListTasks(registry TaskRegistry) *ListTasks {
	return &ListTasks{registry: registry}
}

// Run executes the use case
func (uc *ListTasks) Run(ctx context.Context, params ListTasksParams) (*ListTasksResult, error) {
	tasks := uc.registry.Tasks()
	result := &ListTasksResult{Tasks: make([]TaskInfo, 0, len(tasks))}
	for _, task := range tasks {
		result.Tasks = append(result.Tasks, TaskInfo{
			Name:     task.Name(),
			Tags:     task.Tags(),
			Selected: domain.MatchesTags(task, params.Tags),
		})
	}
	return result, nil
}
