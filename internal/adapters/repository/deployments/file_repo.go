package deployments

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/trebuchet-org/sbdeploy/internal/domain"
	"github.com/trebuchet-org/sbdeploy/internal/domain/config"
	"github.com/trebuchet-org/sbdeploy/internal/domain/models"
	"github.com/trebuchet-org/sbdeploy/internal/usecase"
)

const (
	ChainIDFile   = ".chainId"
	RecordFileExt = ".json"
)

// FileRepository stores deployment records as <root>/<network>/<Contract>.json
type FileRepository struct {
	rootDir string
	mu      sync.RWMutex
}

// NewFileRepository creates a repository rooted at dir
func NewFileRepository(rootDir string) *FileRepository {
	return &FileRepository{rootDir: rootDir}
}

// NewFileRepositoryFromConfig creates a repository in the project's deployments directory
func NewFileRepositoryFromConfig(cfg *config.RuntimeConfig) *FileRepository {
	dir := "deployments"
	if cfg.Project != nil && cfg.Project.Deployments != "" {
		dir = cfg.Project.Deployments
	}
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(cfg.ProjectRoot, dir)
	}
	return NewFileRepository(dir)
}

// Root returns the directory records are stored in
func (r *FileRepository) Root() string {
	return r.rootDir
}

// GetDeployment loads the record for a contract on a network
func (r *FileRepository) GetDeployment(ctx context.Context, network, contractName string) (*models.DeploymentRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.loadRecord(filepath.Join(r.rootDir, network, contractName+RecordFileExt))
}

// ListDeployments returns every record matching the filter
func (r *FileRepository) ListDeployments(ctx context.Context, filter domain.DeploymentFilter) ([]*models.DeploymentRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	networks, err := r.networkDirs()
	if err != nil {
		return nil, err
	}

	var records []*models.DeploymentRecord
	for _, network := range networks {
		if filter.Network != "" && filter.Network != network {
			continue
		}

		entries, err := os.ReadDir(filepath.Join(r.rootDir, network))
		if err != nil {
			return nil, fmt.Errorf("failed to read deployments for %s: %w", network, err)
		}

		for _, entry := range entries {
			name := entry.Name()
			if entry.IsDir() || !strings.HasSuffix(name, RecordFileExt) {
				continue
			}
			if filter.ContractName != "" && strings.TrimSuffix(name, RecordFileExt) != filter.ContractName {
				continue
			}

			record, err := r.loadRecord(filepath.Join(r.rootDir, network, name))
			if err != nil {
				return nil, err
			}
			if filter.ChainID != 0 && record.ChainID != filter.ChainID {
				continue
			}
			records = append(records, record)
		}
	}

	return records, nil
}

// SaveDeployment writes the record and the network's chain id marker
func (r *FileRepository) SaveDeployment(ctx context.Context, record *models.DeploymentRecord) error {
	if record.Network == "" || record.ContractName == "" {
		return fmt.Errorf("deployment record needs a network and a contract name")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	dir := filepath.Join(r.rootDir, record.Network)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create deployments directory: %w", err)
	}

	if err := r.checkChainID(dir, record.ChainID); err != nil {
		return err
	}

	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode deployment: %w", err)
	}

	if err := writeFileAtomic(filepath.Join(dir, ChainIDFile), []byte(strconv.FormatUint(record.ChainID, 10))); err != nil {
		return fmt.Errorf("failed to save chain id: %w", err)
	}
	if err := writeFileAtomic(filepath.Join(dir, record.ContractName+RecordFileExt), data); err != nil {
		return fmt.Errorf("failed to save deployment: %w", err)
	}

	return nil
}

// checkChainID refuses to mix records of different chains under one network name
func (r *FileRepository) checkChainID(dir string, chainID uint64) error {
	data, err := os.ReadFile(filepath.Join(dir, ChainIDFile))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read chain id: %w", err)
	}

	existing, err := strconv.ParseUint(strings.TrimSpace(string(data)), 10, 64)
	if err != nil {
		return fmt.Errorf("invalid %s in %s: %w", ChainIDFile, dir, err)
	}
	if existing != chainID {
		return fmt.Errorf("%w: %s holds chain %d, record is for chain %d",
			domain.ErrNetworkMismatch, dir, existing, chainID)
	}
	return nil
}

func (r *FileRepository) networkDirs() ([]string, error) {
	entries, err := os.ReadDir(r.rootDir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read deployments directory: %w", err)
	}

	var networks []string
	for _, entry := range entries {
		if entry.IsDir() && !strings.HasPrefix(entry.Name(), ".") {
			networks = append(networks, entry.Name())
		}
	}
	sort.Strings(networks)
	return networks, nil
}

func (r *FileRepository) loadRecord(path string) (*models.DeploymentRecord, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var record models.DeploymentRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &record, nil
}

// writeFileAtomic writes to a temp file first, then renames it into place
func writeFileAtomic(path string, data []byte) error {
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmpPath, path)
}

var _ usecase.DeploymentRepository = (*FileRepository)(nil)
