package user

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStore_Memory(t *testing.T) {
	s, err := NewStore(context.Background(), Config{
		Type: TypeMemory,
		Properties: map[string]interface{}{
			"caseinsensitive": "true",
			"users": []interface{}{
				map[string]interface{}{
					"email":        "alice@example.com",
					"passwordhash": "h1",
					"roles":        []interface{}{"admin"},
				},
			},
		},
	})
	require.NoError(t, err)
	ms, ok := s.(*InMemoryStore)
	require.True(t, ok)
	assert.Equal(t, 1, ms.Len())

	u, exists, err := s.FindByEmail(context.Background(), "ALICE@example.com")
	assert.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, User{Email: "alice@example.com", PasswordHash: "h1", Roles: []string{"admin"}}, u)
	assert.NoError(t, Close(s))
}

func TestNewStore_DefaultIsMemory(t *testing.T) {
	s, err := NewStore(context.Background(), Config{})
	require.NoError(t, err)
	_, ok := s.(*InMemoryStore)
	assert.True(t, ok)
}

func TestNewStore_Ldap(t *testing.T) {
	s, err := NewStore(context.Background(), Config{
		Type: TypeLdap,
		Properties: map[string]interface{}{
			"address": "localhost:50389",
			"basedn":  "ou=users,dc=farawaygalaxy,dc=net",
			"timeout": "3s",
		},
	})
	require.NoError(t, err)
	ur, ok := s.(*userLdapRepository)
	require.True(t, ok)
	assert.Equal(t, "localhost:50389", ur.Address)
	assert.Equal(t, "mail", ur.EmailAttribute)
	assert.Equal(t, 3*time.Second, ur.Timeout)
}

func TestNewStore_Rest(t *testing.T) {
	_, err := NewStore(context.Background(), Config{Type: TypeRest})
	assert.Error(t, err)

	s, err := NewStore(context.Background(), Config{
		Type:       TypeRest,
		Properties: map[string]interface{}{"endpoint": "http://users.local/"},
	})
	require.NoError(t, err)
	ur, ok := s.(*userRestRepository)
	require.True(t, ok)
	assert.Equal(t, "http://users.local", ur.endpoint)
}

func TestNewStore_Unknown(t *testing.T) {
	_, err := NewStore(context.Background(), Config{Type: "cassandra"})
	assert.EqualError(t, err, "unknown user store type cassandra")
}

func TestNewStore_BadProperties(t *testing.T) {
	_, err := NewStore(context.Background(), Config{
		Type:       TypeMemory,
		Properties: map[string]interface{}{"users": "not a list"},
	})
	assert.Error(t, err)
}

func TestNewStore_MemoryDuplicateUsers(t *testing.T) {
	users := []interface{}{
		map[string]interface{}{"email": "Alice@example.com", "passwordhash": "h1"},
		map[string]interface{}{"email": "alice@example.com", "passwordhash": "h2"},
	}

	_, err := NewStore(context.Background(), Config{
		Type:       TypeMemory,
		Properties: map[string]interface{}{"caseinsensitive": true, "users": users},
	})
	assert.EqualError(t, err,
		"error seeding memory user store: duplicate user alice@example.com, conflicts with Alice@example.com")

	s, err := NewStore(context.Background(), Config{
		Type:       TypeMemory,
		Properties: map[string]interface{}{"users": users},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, s.(*InMemoryStore).Len())
	u, exists, err := s.FindByEmail(context.Background(), "Alice@example.com")
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, "h1", u.PasswordHash)
}
