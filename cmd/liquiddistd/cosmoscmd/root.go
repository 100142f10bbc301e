// Package cosmoscmd implements the liquiddistd operator commands running the distribution keeper
// against a local store.
package cosmoscmd

import (
	"os"
	"path/filepath"
	"strings"

	"cosmossdk.io/log"
	"github.com/cosmos/cosmos-sdk/client/flags"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// EnvPrefix prefixes the environment variables overriding flags.
	EnvPrefix = "LIQUIDDIST"

	flagLogLevel = "log-level"

	configFileName = "config"
)

// DefaultNodeHome is the default home directory.
var DefaultNodeHome = filepath.Join(os.Getenv("HOME"), ".liquiddist")

// NewRootCmd returns the root command.
func NewRootCmd() *cobra.Command {
	v := viper.New()

	rootCmd := &cobra.Command{
		Use:           "liquiddistd",
		Short:         "Liquid staking reward distribution engine",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return initConfig(v, cmd.Flags())
		},
	}

	rootCmd.PersistentFlags().String(flags.FlagHome, DefaultNodeHome, "directory for config and data")
	rootCmd.PersistentFlags().String(flagLogLevel, "info", `log level, e.g. "debug" or "liquiddist:debug,*:error"`)

	rootCmd.AddCommand(
		InitCmd(v),
		DistributeCmd(v),
		StatusCmd(v),
		BalancesCmd(v),
		SetTriggerPolicyCmd(v),
		ResumeCmd(v),
	)
	return rootCmd
}

// initConfig binds flags, environment and the optional config.yaml in the home directory.
// Flags take precedence over the environment, which takes precedence over the file.
func initConfig(v *viper.Viper, flagSet *pflag.FlagSet) error {
	if err := v.BindPFlags(flagSet); err != nil {
		return errors.Wrap(err, "failed to bind flags")
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetConfigName(configFileName)
	v.SetConfigType("yaml")
	v.AddConfigPath(v.GetString(flags.FlagHome))
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return errors.Wrap(err, "failed to read config")
		}
	}
	return nil
}

func newLogger(v *viper.Viper) (log.Logger, error) {
	filter, err := log.ParseLogLevel(v.GetString(flagLogLevel))
	if err != nil {
		return nil, errors.Wrapf(err, "invalid log level %q", v.GetString(flagLogLevel))
	}
	return log.NewLogger(os.Stderr, log.FilterOption(filter)), nil
}
