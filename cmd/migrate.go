package cmd

import (
	"context"

	"github.com/maximthomas/meetnow-auth/pkg/config"
	"github.com/maximthomas/meetnow-auth/pkg/user"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

type migrator interface {
	Migrate(ctx context.Context) error
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or upgrade the postgres user store schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		conf := config.GetConfig()
		if conf.UserDataStore.Type != user.TypePostgres {
			return errors.Errorf("migrations are only supported for the postgres user store, got %v", conf.UserDataStore.Type)
		}
		store, err := user.NewStore(cmd.Context(), conf.UserDataStore)
		if err != nil {
			return err
		}
		defer closeStore(store)

		m, ok := store.(migrator)
		if !ok {
			return errors.New("user store does not support migrations")
		}
		if err = m.Migrate(cmd.Context()); err != nil {
			return err
		}
		cmd.Println("migrations applied")
		return nil
	},
}
