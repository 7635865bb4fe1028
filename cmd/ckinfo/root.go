package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/niclabs/ckabi/ck"
	"github.com/niclabs/ckabi/criptoki"
	"github.com/niclabs/ckabi/internal/config"
	"github.com/niclabs/ckabi/internal/logger"
)

// conf is loaded before any subcommand runs.
var conf *config.Config

func newRootCmd() *cobra.Command {
	var cfgFile string
	rootCmd := &cobra.Command{
		Use:   "ckinfo",
		Short: "Inspect PKCS#11 libraries through their C ABI",
		Long: `ckinfo loads a PKCS#11 library, initializes it with Go mutex callbacks
or with none, and prints the CK_INFO it reports. Reports can be recorded in
an inventory to follow how the libraries of a host change over time.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Init(cfgFile); err != nil {
				return err
			}
			var err error
			if conf, err = config.GetConfig(); err != nil {
				return err
			}
			if err := logger.Init(logger.Config{
				Debug:  conf.Log.Debug,
				Format: conf.Log.Format,
				File:   conf.Log.File,
			}); err != nil {
				return err
			}
			ck.SetLogger(logger.Named("ck"))
			criptoki.SetLogger(logger.Named("criptoki"))
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Sync()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is config.yaml in ./, /etc/ckabi/ or $HOME/.ckabi)")
	flags.StringP("module", "m", "", "path of the PKCS#11 library")
	flags.StringSlice("flags", nil, "CK_C_INITIALIZE_ARGS flags, by name or number")
	flags.String("mutexes", config.MutexesGo, "mutex callbacks handed to the library: go or none")
	flags.String("inventory", "", "inventory database path")
	flags.Bool("debug", false, "enable debug logging")
	flags.String("log-format", "", "log format: json or human")
	flags.String("log-file", "", "also write logs to this file")

	viper.BindPFlag("module.path", flags.Lookup("module"))
	viper.BindPFlag("module.flags", flags.Lookup("flags"))
	viper.BindPFlag("module.mutexes", flags.Lookup("mutexes"))
	viper.BindPFlag("inventory.path", flags.Lookup("inventory"))
	viper.BindPFlag("log.debug", flags.Lookup("debug"))
	viper.BindPFlag("log.format", flags.Lookup("log-format"))
	viper.BindPFlag("log.file", flags.Lookup("log-file"))

	rootCmd.AddCommand(
		newInfoCmd(),
		newFlagsCmd(),
		newSelfTestCmd(),
		newHistoryCmd(),
		newVersionCmd(),
	)
	return rootCmd
}
