package models

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAPIKeyProducesPrefixedSecret(t *testing.T) {
	us := &UserSettings{UserID: 1}

	raw, err := us.IssueAPIKey()
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(raw, "strt_"))
	assert.True(t, strings.HasPrefix(raw, us.APIKeyPrefix))
	assert.Equal(t, HashAPIKey(raw), us.APIKeyHash)
	assert.NotNil(t, us.APIKeyCreatedAt)
	assert.Nil(t, us.APIKeyRevokedAt)
	assert.True(t, us.HasActiveAPIKey())
}

func TestIssueAPIKeyRotatesSecret(t *testing.T) {
	us := &UserSettings{UserID: 1}

	first, err := us.IssueAPIKey()
	require.NoError(t, err)
	second, err := us.IssueAPIKey()
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.Equal(t, HashAPIKey(second), us.APIKeyHash)
	assert.NotEqual(t, HashAPIKey(first), us.APIKeyHash)
}

func TestRevokeAPIKeyClearsMaterial(t *testing.T) {
	us := &UserSettings{UserID: 1}
	_, err := us.IssueAPIKey()
	require.NoError(t, err)

	us.RevokeAPIKey()

	assert.False(t, us.HasActiveAPIKey())
	assert.Empty(t, us.APIKeyHash)
	assert.Empty(t, us.APIKeyPrefix)
	assert.NotNil(t, us.APIKeyRevokedAt)
}

func TestHashAPIKeyTrimsWhitespace(t *testing.T) {
	assert.Equal(t, HashAPIKey("strt_abc"), HashAPIKey("  strt_abc \n"))
	assert.Len(t, HashAPIKey("x"), 64)
}
