package cmd

import (
	"bytes"
	"errors"
	"testing"

	"github.com/maximthomas/meetnow-auth/pkg/config"
	"github.com/maximthomas/meetnow-auth/pkg/credentials"
	"github.com/maximthomas/meetnow-auth/pkg/log"
	"github.com/maximthomas/meetnow-auth/pkg/user"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
)

const testConfig = "../test/meetnow-auth-dev.yaml"

func execute(args ...string) (string, error) {
	out := new(bytes.Buffer)
	rootCmd.SetOut(out)
	rootCmd.SetErr(out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestExecute(t *testing.T) {
	out, err := execute("version", "--config", testConfig)
	assert.NoError(t, err)
	assert.Equal(t, version+"\n", out)
	conf := config.GetConfig()
	assert.Equal(t, "memory", conf.UserDataStore.Type)
}

func TestResolveCommand(t *testing.T) {
	out, err := execute("resolve", "alice@example.com", "--config", testConfig)
	assert.NoError(t, err)
	assert.Contains(t, out, "identity:     alice@example.com")
	assert.Contains(t, out, "authorities:  []")
	assert.Contains(t, out, "passwordHash: [redacted]")
	assert.NotContains(t, out, "$2a$")

	_, err = execute("resolve", "Alice@example.com", "--config", testConfig)
	assert.ErrorIs(t, err, credentials.ErrIdentityNotFound)

	_, err = execute("resolve", "--config", testConfig)
	assert.Error(t, err)
}

func TestMigrateCommandRequiresPostgres(t *testing.T) {
	_, err := execute("migrate", "--config", testConfig)
	assert.EqualError(t, err, "migrations are only supported for the postgres user store, got memory")
}

type failingCloseStore struct {
	user.Store
}

func (failingCloseStore) Close() error {
	return errors.New("connection reset")
}

func TestCloseStoreLogsError(t *testing.T) {
	hook := test.NewLocal(log.Logger())
	defer hook.Reset()

	closeStore(failingCloseStore{Store: user.NewInMemoryStore(true)})
	entry := hook.LastEntry()
	if assert.NotNil(t, entry) {
		assert.Equal(t, logrus.WarnLevel, entry.Level)
		assert.Equal(t, "error closing user store connection reset", entry.Message)
	}

	hook.Reset()
	closeStore(user.NewInMemoryStore(true))
	assert.Empty(t, hook.AllEntries())
}
