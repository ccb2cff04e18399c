// Package command implements the synxkit command line.
package command

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const envPrefix = "SYNXKIT"

// Commandline holds the configuration shared by every subcommand.
type Commandline struct {
	v      *viper.Viper
	cfgFn  string
	logger *zap.Logger
}

// NewRootCmd builds the synxkit command tree.
func NewRootCmd() *cobra.Command {
	cl := &Commandline{
		v: viper.New(),
	}

	cmd := &cobra.Command{
		Use:   "synxkit",
		Short: "Exercise hand-built synchronization primitives",
		Long: `Exercise hand-built synchronization primitives.

Environment variables:
  SYNXKIT_LOG_LEVEL=info
  SYNXKIT_WORKERS=4
  SYNXKIT_ITERATIONS=500
  SYNXKIT_ACTORS=5
  SYNXKIT_MEALS=0
  SYNXKIT_DURATION=0s`,
		SilenceUsage:      true,
		DisableAutoGenTag: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return cl.init(cmd)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if cl.logger != nil {
				_ = cl.logger.Sync()
			}
		},
	}

	cmd.PersistentFlags().StringVar(&cl.cfgFn, "config", "", "config file (yaml, toml or json)")
	cmd.PersistentFlags().String("log-level", "info", "log level: debug, info, warn, error")

	cmd.AddCommand(cl.benchCmd(), cl.dineCmd())
	return cmd
}

func (cl *Commandline) init(cmd *cobra.Command) error {
	cl.v.SetEnvPrefix(envPrefix)
	cl.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	cl.v.AutomaticEnv()

	if err := bindFlags(cl.v, cmd.Flags()); err != nil {
		return err
	}
	if cl.cfgFn != "" {
		cl.v.SetConfigFile(cl.cfgFn)
		if err := cl.v.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config %s: %w", cl.cfgFn, err)
		}
	}

	l, err := buildLogger(cl.v.GetString("log-level"))
	if err != nil {
		return err
	}
	cl.logger = l
	return nil
}

// bindFlags makes every flag of fs, inherited persistent flags included,
// resolvable through v.
func bindFlags(v *viper.Viper, fs *pflag.FlagSet) (err error) {
	fs.VisitAll(func(f *pflag.Flag) {
		if err != nil {
			return
		}
		if e := v.BindPFlag(f.Name, f); e != nil {
			err = fmt.Errorf("binding flag %s: %w", f.Name, e)
		}
	})
	return err
}

func buildLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	cfg := zap.NewProductionConfig()
	if lvl == zapcore.DebugLevel {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	return cfg.Build()
}
