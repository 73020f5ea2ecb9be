package chatge

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/james-coso/chatge.ie/pkg/config"
)

const defaultServerURL = "http://localhost:8080"

type rootOptions struct {
	logLevel string
	logger   zerolog.Logger
}

// Execute is the main entry point for the CLI
func Execute() error {
	// A missing .env is fine.
	_ = godotenv.Load()
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:           "chatge",
		Short:         "AI assistant for Irish General Elections",
		Long:          "chatge serves a chat widget backed by an OpenAI assistant, and talks to it from the terminal.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := opts.logLevel
			if !cmd.Flags().Changed("log-level") {
				if v := os.Getenv(config.EnvLogLevel); v != "" {
					level = v
				}
			}
			logger, err := newLogger(cmd.ErrOrStderr(), level)
			if err != nil {
				return err
			}
			opts.logger = logger
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "info", "Log level: trace|debug|info|warn|error")

	rootCmd.AddCommand(newServeCmd(opts))
	rootCmd.AddCommand(newAskCmd(opts))
	rootCmd.AddCommand(newChatCmd(opts))
	rootCmd.AddCommand(newAssistantsCmd(opts))
	rootCmd.AddCommand(newSetupCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// newLogger writes human-readable logs to terminals and JSON otherwise.
func newLogger(out io.Writer, level string) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return zerolog.Nop(), errors.Wrapf(err, "invalid log level %q", level)
	}
	if lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	w := out
	if f, ok := out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		w = zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen}
	}
	return zerolog.New(w).Level(lvl).With().Timestamp().Logger(), nil
}

// serverURL resolves the chat server for client commands: flag, then environment, then default.
func serverURL(cmd *cobra.Command, flagValue string) string {
	if cmd.Flags().Changed("server") {
		return flagValue
	}
	if v := os.Getenv(config.EnvServerURL); v != "" {
		return v
	}
	return flagValue
}
