package usecase

import (
	"context"
)

// ListNetworksParams contains parameters for listing networks
type ListNetworksParams struct {
	// Probe connects to each network to read its chain ID
	Probe bool
}

// ListNetworksResult contains the result of listing networks
type ListNetworksResult struct {
	Networks []NetworkStatus
}

// NetworkStatus represents the status of a network
type NetworkStatus struct {
	Name    string
	ChainID uint64
	Local   bool
	Error   error
}

// ListNetworks is a use case for listing available networks
type ListNetworks struct {
	resolver  NetworkResolver
	connector ChainConnector
}

// NewListNetworks creates a new ListNetworks use case
func NewListNetworks(resolver NetworkResolver, connector ChainConnector) *ListNetworks {
	return &ListNetworks{
		resolver:  resolver,
		connector: connector,
	}
}

// Run executes the use case
func (uc *ListNetworks) Run(ctx context.Context, params ListNetworksParams) (*ListNetworksResult, error) {
	networkNames := uc.resolver.GetNetworks(ctx)

	networks := make([]NetworkStatus, 0, len(networkNames))
	for _, name := range networkNames {
		status := NetworkStatus{Name: name}

		info, err := uc.resolver.ResolveNetwork(ctx, name)
		if err != nil {
			status.Error = err
			networks = append(networks, status)
			continue
		}
		status.Local = info.Local
		status.ChainID = info.ChainID

		if params.Probe || info.ChainID == 0 {
			client, err := uc.connector.Connect(ctx, info)
			if err != nil {
				status.Error = err
			} else {
				status.ChainID = info.ChainID
				client.Close()
			}
		}

		networks = append(networks, status)
	}

	return &ListNetworksResult{
		Networks: networks,
	}, nil
}
