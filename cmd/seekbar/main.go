// Command seekbar drives a seek bar binding from a script or a terminal UI.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/go-drift/bind/pkg/bind"
	bindErrors "github.com/go-drift/bind/pkg/errors"
)

// Version information set at build time.
var (
	Version   = "0.1.0-dev"
	BuildTime = "unknown"
)

type rootOptions struct {
	logLevel  string
	logJSON   bool
	debugAddr string
}

// logger builds the process logger and routes binding errors and listener
// lifecycle records through it.
func (o *rootOptions) logger(w io.Writer) (*slog.Logger, error) {
	level, err := parseLogLevel(o.logLevel)
	if err != nil {
		return nil, err
	}
	handlerOpts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if o.logJSON {
		handler = slog.NewJSONHandler(w, handlerOpts)
	} else {
		handler = slog.NewTextHandler(w, handlerOpts)
	}
	logger := slog.New(handler)

	bindErrors.SetHandler(&bindErrors.LogHandler{Logger: logger, Verbose: level <= slog.LevelDebug})
	bind.SetLogger(logger)
	return logger, nil
}

func parseLogLevel(level string) (slog.Level, error) {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return slog.LevelDebug, nil
	case "", "INFO":
		return slog.LevelInfo, nil
	case "WARN", "WARNING":
		return slog.LevelWarn, nil
	case "ERROR":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log level %q", level)
	}
}

// startDebug starts the debug server for s when addr is set and returns the
// function that stops it.
func startDebug(addr string, s *session, logger *slog.Logger) (func(), error) {
	if addr == "" {
		return func() {}, nil
	}
	d, err := startDebugServer(addr, s, logger)
	if err != nil {
		return nil, err
	}
	return d.stop, nil
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	rootCmd := &cobra.Command{
		Use:   "seekbar",
		Short: "Observe a seek bar through multi-subscriber bindings",
		Long: `seekbar exercises seek bar bindings: one native callback slot shared
by any number of independent subscribers.

Use "seekbar <command> --help" for more information about a command.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	flags.BoolVar(&opts.logJSON, "log-json", false, "write logs as JSON")
	flags.StringVar(&opts.debugAddr, "debug-addr", "", "serve /health, /listeners and /metrics on this address (e.g. :9090)")

	rootCmd.AddCommand(
		replayCmd(opts),
		tuiCmd(opts),
		versionCmd(),
	)
	return rootCmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "seekbar version %s (built %s)\n", Version, BuildTime)
		},
	}
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
