package pkg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashSecret(t *testing.T) {
	hash, err := HashSecret("map-frontend-secret")
	require.NoError(t, err)
	assert.NotEqual(t, "map-frontend-secret", hash)

	assert.True(t, CheckSecretHash("map-frontend-secret", hash))
	assert.False(t, CheckSecretHash("wrong", hash))
	assert.False(t, CheckSecretHash("map-frontend-secret", "not-a-hash"))
}
