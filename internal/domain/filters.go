package domain

// DeploymentFilter defines filtering options for deployment records
type DeploymentFilter struct {
	Network      string
	ChainID      uint64
	ContractName string
}
