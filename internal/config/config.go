package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/niclabs/ckabi/ck"
)

const (
	// EnvPrefix is the prefix of environment overrides, e.g. CKABI_MODULE_PATH.
	EnvPrefix = "CKABI"

	MutexesGo   = "go"
	MutexesNone = "none"
)

type Config struct {
	Module    ModuleConfig    `mapstructure:"module"`
	Inventory InventoryConfig `mapstructure:"inventory"`
	Log       LogConfig       `mapstructure:"log"`
}

type ModuleConfig struct {
	Path    string   `mapstructure:"path"`
	Flags   []string `mapstructure:"flags"`
	Mutexes string   `mapstructure:"mutexes"`
}

type InventoryConfig struct {
	Type string `mapstructure:"type"`
	Path string `mapstructure:"path"`
}

type LogConfig struct {
	Debug  bool   `mapstructure:"debug"`
	Format string `mapstructure:"format"`
	File   string `mapstructure:"file"`
}

// Every key gets a default so that environment overrides reach Unmarshal.
func setDefaults(v *viper.Viper) {
	v.SetDefault("module.path", "")
	v.SetDefault("module.flags", []string{"CKF_OS_LOCKING_OK"})
	v.SetDefault("module.mutexes", MutexesGo)
	v.SetDefault("inventory.type", "sqlite3")
	v.SetDefault("inventory.path", "ckabi.db")
	v.SetDefault("log.debug", false)
	v.SetDefault("log.format", "human")
	v.SetDefault("log.file", "")
}

// Init reads cfgFile, or a file named config in ./, /etc/ckabi/ or
// $HOME/.ckabi when cfgFile is empty. A missing default file is not an error.
func Init(cfgFile string) error {
	return load(viper.GetViper(), cfgFile)
}

func load(v *viper.Viper, cfgFile string) error {
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath("./")
		v.AddConfigPath("/etc/ckabi/")
		v.AddConfigPath("$HOME/.ckabi")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("config file: %w", err)
		}
	}
	return nil
}

// GetConfig unmarshals the global configuration.
func GetConfig() (*Config, error) {
	return unmarshal(viper.GetViper())
}

func unmarshal(v *viper.Viper) (*Config, error) {
	var conf Config
	if err := v.Unmarshal(&conf); err != nil {
		return nil, err
	}
	if err := conf.validate(); err != nil {
		return nil, err
	}
	return &conf, nil
}

func (conf *Config) validate() error {
	switch conf.Module.Mutexes {
	case MutexesGo, MutexesNone:
	default:
		return fmt.Errorf("module.mutexes must be %q or %q, got %q", MutexesGo, MutexesNone, conf.Module.Mutexes)
	}
	if _, err := conf.Module.InitializeFlags(); err != nil {
		return fmt.Errorf("module.flags: %w", err)
	}
	return nil
}

// InitializeFlags is the CK_C_INITIALIZE_ARGS flags value of the module
// settings.
func (mc ModuleConfig) InitializeFlags() (ck.ULong, error) {
	return ck.InitializeArgsFlags.ParseFlags(mc.Flags)
}
