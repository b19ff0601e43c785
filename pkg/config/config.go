package config

import (
	"github.com/maximthomas/meetnow-auth/pkg/credentials"
	"github.com/maximthomas/meetnow-auth/pkg/log"
	"github.com/maximthomas/meetnow-auth/pkg/user"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

type Config struct {
	Server        Server      `yaml:"server"`
	Logging       Logging     `yaml:"logging"`
	Credentials   Credentials `yaml:"credentials"`
	UserDataStore user.Config `yaml:"userDataStore"`
}

type Server struct {
	Port int
	Cors Cors
}

type Cors struct {
	AllowedOrigins []string
}

type Logging struct {
	Level  string
	Format string
}

type Credentials struct {
	// Authorities is "none" or "roles".
	Authorities string
}

// AuthoritiesPolicy returns the parsed credentials.authorities setting.
func (c Config) AuthoritiesPolicy() credentials.AuthoritiesPolicy {
	p, _ := credentials.ParseAuthoritiesPolicy(c.Credentials.Authorities)
	return p
}

func (c Config) validate() error {
	if _, ok := credentials.ParseAuthoritiesPolicy(c.Credentials.Authorities); !ok {
		return errors.Errorf("unknown authorities policy %v", c.Credentials.Authorities)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return errors.Errorf("invalid server port %v", c.Server.Port)
	}
	return nil
}

var config Config

func setDefaults() {
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "text")
	viper.SetDefault("credentials.authorities", string(credentials.AuthoritiesNone))
	viper.SetDefault("userDataStore.type", user.TypeMemory)
}

// InitConfig reads the configuration loaded into viper.
func InitConfig() error {
	var configLogger = log.WithField("module", "config")

	setDefaults()
	var newConfig Config
	err := viper.Unmarshal(&newConfig)
	if err != nil {
		configLogger.Errorf("Fatal error config file: %s \n", err)
		return errors.Wrap(err, "error reading config")
	}
	if err = newConfig.validate(); err != nil {
		configLogger.Errorf("invalid configuration: %s \n", err)
		return err
	}
	if err = log.Configure(newConfig.Logging.Level, newConfig.Logging.Format); err != nil {
		return err
	}
	config = newConfig

	configLogger.Debugf("using user data store %v, authorities policy %v",
		config.UserDataStore.Type, config.AuthoritiesPolicy())
	return nil
}

func GetConfig() Config {
	return config
}

func SetConfig(newConfig Config) {
	config = newConfig
}
