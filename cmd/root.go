package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/maximthomas/meetnow-auth/pkg/config"
	"github.com/maximthomas/meetnow-auth/pkg/log"
	"github.com/maximthomas/meetnow-auth/pkg/server"
	"github.com/maximthomas/meetnow-auth/pkg/user"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const version = "0.1.0"

var (
	cfgFile string
	rootCmd = &cobra.Command{
		Use:   "meetnow-auth",
		Short: "meetnow-auth resolves and checks meetnow account credentials",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return server.RunServer(ctx, config.GetConfig())
		},
	}

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Shown version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version)
		},
	}
)

func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/meetnow-auth.yaml)")
	rootCmd.SilenceUsage = true
	rootCmd.AddCommand(versionCmd, resolveCmd, migrateCmd)
}

func closeStore(s user.Store) {
	if err := user.Close(s); err != nil {
		log.WithField("module", "cmd").Warnf("error closing user store %v", err)
	}
}

func er(msg interface{}) {
	fmt.Println("Error:", msg)
	os.Exit(1)
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			er(err)
		}
		viper.AddConfigPath(home)
		viper.SetConfigName("meetnow-auth")
	}

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		er(err)
	}
	fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	if err := config.InitConfig(); err != nil {
		er(err)
	}
}
