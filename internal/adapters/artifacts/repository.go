package artifacts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/trebuchet-org/sbdeploy/internal/domain"
	"github.com/trebuchet-org/sbdeploy/internal/domain/config"
	"github.com/trebuchet-org/sbdeploy/internal/domain/models"
	"github.com/trebuchet-org/sbdeploy/internal/usecase"
)

// Repository loads compiled contract artifacts from Foundry or hardhat output
type Repository struct {
	projectRoot string
	dirs        []string
	log         *slog.Logger

	mu    sync.RWMutex
	cache map[string]*models.Artifact
}

// NewRepository creates a repository searching dirs (relative to projectRoot) in order
func NewRepository(projectRoot string, dirs []string, log *slog.Logger) *Repository {
	return &Repository{
		projectRoot: projectRoot,
		dirs:        dirs,
		log:         log,
		cache:       make(map[string]*models.Artifact),
	}
}

// NewRepositoryFromConfig creates a repository using the project's artifact directories
func NewRepositoryFromConfig(cfg *config.RuntimeConfig, log *slog.Logger) *Repository {
	dirs := []string{"out", "artifacts"}
	if cfg.Project != nil && len(cfg.Project.Artifacts) > 0 {
		dirs = cfg.Project.Artifacts
	}
	return NewRepository(cfg.ProjectRoot, dirs, log)
}

// GetArtifact returns the artifact for a contract name
func (r *Repository) GetArtifact(ctx context.Context, contractName string) (*models.Artifact, error) {
	r.mu.RLock()
	cached, ok := r.cache[contractName]
	r.mu.RUnlock()
	if ok {
		return cached, nil
	}

	var searched []string
	for _, path := range r.candidates(contractName) {
		searched = append(searched, path)

		artifact, err := r.load(path)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, err
		}
		if artifact.ContractName == "" {
			artifact.ContractName = contractName
		}

		r.log.Debug("loaded artifact", "contract", contractName, "path", path)

		r.mu.Lock()
		r.cache[contractName] = artifact
		r.mu.Unlock()
		return artifact, nil
	}

	r.log.Debug("artifact not found", "contract", contractName, "searched", searched)
	return nil, fmt.Errorf("%w: %s (run forge build or hardhat compile)", domain.ErrContractNotFound, contractName)
}

// candidates lists the artifact paths for a contract, in search order
func (r *Repository) candidates(contractName string) []string {
	file := contractName + ".json"
	source := contractName + ".sol"

	var paths []string
	for _, dir := range r.dirs {
		if !filepath.IsAbs(dir) {
			dir = filepath.Join(r.projectRoot, dir)
		}
		paths = append(paths,
			// Foundry: out/<Name>.sol/<Name>.json
			filepath.Join(dir, source, file),
			// hardhat: artifacts/contracts/<Name>.sol/<Name>.json
			filepath.Join(dir, "contracts", source, file),
		)
	}
	return paths
}

func (r *Repository) load(path string) (*models.Artifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var artifact models.Artifact
	if err := json.Unmarshal(data, &artifact); err != nil {
		return nil, fmt.Errorf("failed to parse artifact %s: %w", path, err)
	}
	if len(artifact.ABI) == 0 {
		return nil, fmt.Errorf("artifact %s has no abi", path)
	}
	artifact.Path = path
	return &artifact, nil
}

var _ usecase.ArtifactRepository = (*Repository)(nil)
