package tasks

import (
	"fmt"

	"github.com/trebuchet-org/sbdeploy/internal/domain"
	"github.com/trebuchet-org/sbdeploy/internal/domain/config"
)

// Registry holds deploy tasks in execution order
type Registry struct {
	tasks []domain.Task
}

// NewRegistry builds the registry, applying task configuration from the project file
func NewRegistry(cfg *config.RuntimeConfig) (*Registry, error) {
	var taskCfgs map[string]config.TaskConfig
	if cfg.Project != nil {
		taskCfgs = cfg.Project.Tasks
	}

	var smartBridgeCfg *config.TaskConfig
	if tc, ok := taskCfgs[SmartBridgeName]; ok {
		smartBridgeCfg = &tc
	}

	smartBridge, err := NewSmartBridge(smartBridgeCfg)
	if err != nil {
		return nil, err
	}

	r := &Registry{tasks: []domain.Task{smartBridge}}
	for name := range taskCfgs {
		if r.find(name) == nil {
			return nil, fmt.Errorf("tasks.%s: unknown task", name)
		}
	}
	return r, nil
}

// Tasks returns the registered tasks in execution order
func (r *Registry) Tasks() []domain.Task {
	return r.tasks
}

func (r *Registry) find(name string) domain.Task {
	for _, t := range r.tasks {
		if t.Name() == name {
			return t
		}
	}
	return nil
}
