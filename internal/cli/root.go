// Package cli implements the leap command line interface.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/leapdb/leap/internal/config"
)

// Version information, set at build time.
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// env is the per-invocation state shared with the subcommands.
type env struct {
	cfg    *config.Config
	logger *slog.Logger
}

type envKey struct{}

// NewRootCmd returns the leap command with its subcommands.
func NewRootCmd() *cobra.Command {
	var cfgFile string
	root := &cobra.Command{
		Use:   "leap",
		Short: "Dialect-aware SQL tooling",
		Long: `leap tokenizes SQL, translates MySQL statements to other dialects,
renders statements through the dialect builders and inspects live schemas.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			switch cmd.Name() {
			case "help", "completion", "__complete":
				return nil
			}
			cfg, err := config.Load(cfgFile, cmd.Root().PersistentFlags())
			if err != nil {
				return err
			}
			level, _ := cfg.Level()
			logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
			if cfg.File != "" {
				logger.Debug("config loaded", "file", cfg.File)
			}
			cmd.SetContext(context.WithValue(cmd.Context(), envKey{}, &env{cfg: cfg, logger: logger}))
			return nil
		},
	}
	root.SetVersionTemplate("{{.Name}} {{.Version}}\n")

	flags := root.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default: ./leap.yaml)")
	flags.String("log-level", "", "log level (debug|info|warn|error)")
	flags.String("dialect", "", "default SQL dialect")
	flags.StringP("output", "o", "", "output format (text|json|yaml)")
	_ = root.RegisterFlagCompletionFunc("output", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{"text", "json", "yaml"}, cobra.ShellCompDirectiveNoFileComp
	})

	root.AddCommand(
		newTokenizeCmd(),
		newTranslateCmd(),
		newRenderCmd(),
		newKeywordsCmd(),
		newInspectCmd(),
		newVersionCmd(),
	)
	return root
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	root := NewRootCmd()
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

// envOf returns the state installed by the root command, falling back to
// the defaults for commands run on their own.
func envOf(cmd *cobra.Command) *env {
	if e, ok := cmd.Context().Value(envKey{}).(*env); ok {
		return e
	}
	return &env{
		cfg: &config.Config{
			LogLevel:       config.DefaultLogLevel,
			DefaultDialect: config.DefaultDialect,
			Output:         config.DefaultOutput,
		},
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}
