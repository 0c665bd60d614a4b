// Package cli implements the tsvenn command line.
package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/nao1215/tsvenn/internal/config"
)

var (
	version = "dev"
	commit  = "none"
)

// defaultConfigFile is read when --config is not given and the file exists.
const defaultConfigFile = "tsvenn.yaml"

// Execute runs the CLI.
func Execute() int {
	return run(os.Args[1:], os.Stdout, os.Stderr)
}

// run executes the root command with args and returns the exit code.
func run(args []string, stdout, stderr io.Writer) int {
	rootCmd := newRootCmd()
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	if err := rootCmd.Execute(); err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// app holds the configuration resolved before a subcommand runs.
type app struct {
	cfg    *config.Config
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	var (
		configPath string
		flagCfg    config.Config
	)
	a := &app{}

	rootCmd := &cobra.Command{
		Use:           "tsvenn",
		Short:         "Compare tab-separated datasets with SQLite set algebra",
		Long:          "Load TSV files into SQLite tables, compare two relations over them and draw a two-circle Venn diagram of the result.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(configPath, cmd.Flags().Changed("config"))
			if err != nil {
				return err
			}

			// Apply precedence: flag > env > file > default
			cfg.ApplyEnv()
			applyFlags(cmd.Flags(), cfg, &flagCfg)

			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}
			a.cfg = cfg
			a.logger = newLogger(cmd.ErrOrStderr(), cfg.SlogLevel(), cfg.LogFormat)
			return nil
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&configPath, "config", "c", defaultConfigFile, "Run configuration file (YAML)")
	flags.StringVar(&flagCfg.Store, "store", "", "SQLite database path (\":memory:\" for none)")
	flags.StringVarP(&flagCfg.Descriptor, "descriptor", "d", "", "Load descriptor \"file|skip|file|skip\"")
	flags.StringVar(&flagCfg.Arity, "arity", "", "Arity policy (strict, lenient)")
	flags.StringVar(&flagCfg.OnError, "on-error", "", "Failure policy (continue, abort)")
	flags.StringVar(&flagCfg.TableNaming, "table-naming", "", "Table naming (path, base)")
	flags.StringVar(&flagCfg.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flags.StringVar(&flagCfg.LogFormat, "log-format", "", "Log format (text, json)")

	rootCmd.AddCommand(newRunCmd(a))
	rootCmd.AddCommand(newLoadCmd(a))
	rootCmd.AddCommand(newDropCmd(a))
	rootCmd.AddCommand(newCompareCmd(a))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// loadConfig reads the configuration file. The default file is optional;
// an explicitly named one must exist.
func loadConfig(path string, explicit bool) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err == nil {
		return cfg, nil
	}
	if !explicit && errors.Is(err, os.ErrNotExist) {
		return config.Default(), nil
	}
	return nil, err
}

// applyFlags copies every changed persistent flag into cfg.
func applyFlags(fs *pflag.FlagSet, cfg, flagCfg *config.Config) {
	overrides := map[string]struct {
		dst *string
		src string
	}{
		"store":        {&cfg.Store, flagCfg.Store},
		"descriptor":   {&cfg.Descriptor, flagCfg.Descriptor},
		"arity":        {&cfg.Arity, flagCfg.Arity},
		"on-error":     {&cfg.OnError, flagCfg.OnError},
		"table-naming": {&cfg.TableNaming, flagCfg.TableNaming},
		"log-level":    {&cfg.LogLevel, flagCfg.LogLevel},
		"log-format":   {&cfg.LogFormat, flagCfg.LogFormat},
	}
	for name, o := range overrides {
		if fs.Changed(name) {
			*o.dst = o.src
		}
	}
}

// newLogger returns a text or JSON logger writing to w.
func newLogger(w io.Writer, level slog.Level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the CLI version",
		Args:  cobra.NoArgs,
		// The version needs no configuration
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "tsvenn version %s (commit: %s)\n", version, commit)
			return nil
		},
	}
}
