package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAccountTypes(t *testing.T) {
	const (
		key  = AccountTypePrivateKey
		addr = AccountTypeAddress
	)
	assert.Equal(t, AccountType("private_key"), key)
	assert.Equal(t, AccountType("address"), addr)
}

func TestIsLocalChainID(t *testing.T) {
	assert.True(t, IsLocalChainID(31337))
	assert.True(t, IsLocalChainID(1337))
	assert.False(t, IsLocalChainID(421614))
	assert.False(t, IsLocalChainID(0))
}
