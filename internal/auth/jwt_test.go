package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testSubject struct {
	id, name string
}

func (s testSubject) AuthID() string   { return s.id }
func (s testSubject) AuthName() string { return s.name }

func TestTokenRoundTrip(t *testing.T) {
	m := NewManager("test-secret")

	token, err := m.GenerateToken(testSubject{id: "u-1", name: "gopher"})
	require.NoError(t, err)

	claims, err := m.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID)
	assert.Equal(t, "gopher", claims.Username)
}

func TestValidateTokenWrongKey(t *testing.T) {
	token, err := NewManager("secret-a").GenerateToken(testSubject{id: "u-1", name: "gopher"})
	require.NoError(t, err)

	_, err = NewManager("secret-b").ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateTokenGarbage(t *testing.T) {
	_, err := NewManager("test-secret").ValidateToken("not.a.token")
	assert.Error(t, err)
}
