package cmd

import (
	"fmt"
	"strings"

	"github.com/maximthomas/meetnow-auth/pkg/config"
	"github.com/maximthomas/meetnow-auth/pkg/server"

	"github.com/spf13/cobra"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve <email>",
	Short: "Resolve the credential of an account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := server.NewApp(cmd.Context(), config.GetConfig())
		if err != nil {
			return err
		}
		defer closeStore(app.Store)

		c, err := app.Resolver.Resolve(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "identity:     %s\n", c.Identity)
		fmt.Fprintf(out, "authorities:  [%s]\n", strings.Join(c.Authorities, ", "))
		fmt.Fprintln(out, "passwordHash: [redacted]")
		return nil
	},
}
