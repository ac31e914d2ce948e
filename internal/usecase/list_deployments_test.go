package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/sbdeploy/internal/domain"
	"github.com/trebuchet-org/sbdeploy/internal/domain/models"
	"github.com/trebuchet-org/sbdeploy/internal/usecase"
)

func TestListDeployments(t *testing.T) {
	ctx := context.Background()

	t.Run("list all deployments sorted", func(t *testing.T) {
		deployments := []*models.DeploymentRecord{
			{ContractName: "SmartBridge", Network: "morphHolesky", ChainID: 2810, Address: common.HexToAddress("0x2").Hex()},
			{ContractName: "SmartBridge", Network: "arbitrumSepolia", ChainID: 421614, Address: common.HexToAddress("0x1").Hex()},
			{ContractName: "Adapter", Network: "morphHolesky", ChainID: 2810, Address: common.HexToAddress("0x3").Hex()},
		}

		repo := new(MockDeploymentRepository)
		repo.On("ListDeployments", ctx, domain.DeploymentFilter{}).Return(deployments, nil)
		sink := &MockProgressSink{}

		uc := usecase.NewListDeployments(repo, sink)
		result, err := uc.Run(ctx, usecase.ListDeploymentsParams{})
		require.NoError(t, err)

		require.Len(t, result.Deployments, 3)
		assert.Equal(t, "arbitrumSepolia", result.Deployments[0].Network)
		assert.Equal(t, "Adapter", result.Deployments[1].ContractName)
		assert.Equal(t, "SmartBridge", result.Deployments[2].ContractName)

		assert.Equal(t, 3, result.Summary.Total)
		assert.Equal(t, 2, result.Summary.ByNetwork["morphHolesky"])
		assert.Equal(t, 1, result.Summary.ByNetwork["arbitrumSepolia"])

		assert.Len(t, sink.events, 2)
		repo.AssertExpectations(t)
	})

	t.Run("filter is passed through", func(t *testing.T) {
		filter := domain.DeploymentFilter{Network: "arbitrumSepolia", ContractName: "SmartBridge"}
		repo := new(MockDeploymentRepository)
		repo.On("ListDeployments", ctx, filter).Return([]*models.DeploymentRecord{}, nil)

		uc := usecase.NewListDeployments(repo, &MockProgressSink{})
		result, err := uc.Run(ctx, usecase.ListDeploymentsParams{
			Network:      "arbitrumSepolia",
			ContractName: "SmartBridge",
		})
		require.NoError(t, err)
		assert.Empty(t, result.Deployments)
		assert.Equal(t, 0, result.Summary.Total)
		repo.AssertExpectations(t)
	})

	t.Run("repository error", func(t *testing.T) {
		repo := new(MockDeploymentRepository)
		repo.On("ListDeployments", ctx, mock.Anything).Return(nil, errors.New("disk error"))

		uc := usecase.NewListDeployments(repo, &MockProgressSink{})
		result, err := uc.Run(ctx, usecase.ListDeploymentsParams{})
		assert.Error(t, err)
		assert.Nil(t, result)
	})
}

func TestShowDeployment(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		record := &models.DeploymentRecord{ContractName: "SmartBridge", Network: "arbitrumSepolia"}
		repo := new(MockDeploymentRepository)
		repo.On("GetDeployment", ctx, "arbitrumSepolia", "SmartBridge").Return(record, nil)

		uc := usecase.NewShowDeployment(repo, &MockProgressSink{})
		got, err := uc.Run(ctx, usecase.ShowDeploymentParams{Network: "arbitrumSepolia", ContractName: "SmartBridge"})
		require.NoError(t, err)
		assert.Same(t, record, got)
	})

	t.Run("not found wraps sentinel", func(t *testing.T) {
		repo := new(MockDeploymentRepository)
		repo.On("GetDeployment", ctx, "morphHolesky", "SmartBridge").Return(nil, domain.ErrNotFound)

		uc := usecase.NewShowDeployment(repo, &MockProgressSink{})
		_, err := uc.Run(ctx, usecase.ShowDeploymentParams{Network: "morphHolesky", ContractName: "SmartBridge"})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("missing parameters", func(t *testing.T) {
		uc := usecase.NewShowDeployment(new(MockDeploymentRepository), &MockProgressSink{})
		_, err := uc.Run(ctx, usecase.ShowDeploymentParams{ContractName: "SmartBridge"})
		assert.Error(t, err)
	})
}
