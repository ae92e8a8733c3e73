package main

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/go-drift/bind/cmd/seekbar/internal/config"
	"github.com/go-drift/bind/pkg/bind"
)

func replayCmd(opts *rootOptions) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "replay [dir]",
		Short: "Replay a seek bar scenario and print every delivered event",
		Long: `Replay runs the steps of a seekbar.yaml scenario against a seek bar
and prints the events each subscriber receives, in delivery order.

Without --file the scenario is read from seekbar.yaml in dir (default: the
enclosing Go module root, or the current directory).`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := loadScenario(file, args)
			if err != nil {
				return err
			}
			logger, err := opts.logger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			return replay(sc, cmd.OutOrStdout(), logger, opts.debugAddr)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "scenario file to replay")
	return cmd
}

func loadScenario(file string, args []string) (*config.Scenario, error) {
	if file != "" {
		sc, err := config.Load(file)
		if err != nil {
			return nil, err
		}
		return config.Resolve(sc, filepath.Dir(file))
	}
	dir := "."
	if len(args) > 0 {
		dir = args[0]
	} else if root, err := config.FindProjectRoot(); err == nil {
		dir = root
	}
	return config.ResolveDir(dir)
}

func replay(sc *config.Scenario, out io.Writer, logger *slog.Logger, debugAddr string) error {
	fmt.Fprintf(out, "scenario %s: progress=%d max=%d emit_initial=%t\n", sc.Name, sc.SeekBar.Initial, sc.SeekBar.Max, sc.EmitInitial)

	s, err := newSession(sc, logger, func(sub int, e bind.SeekBarEvent) {
		fmt.Fprintf(out, "  sub#%d %s\n", sub, e)
	})
	if err != nil {
		return err
	}
	defer s.close()

	stopDebug, err := startDebug(debugAddr, s, logger)
	if err != nil {
		return err
	}
	defer stopDebug()

	for i := 0; i < sc.Subscribers; i++ {
		s.subscribe()
	}
	for i, step := range sc.Steps {
		s.flush()
		fmt.Fprintf(out, "step %d: %s\n", i, describe(step))
		if err := s.apply(step); err != nil {
			return fmt.Errorf("step %d: %w", i, err)
		}
	}
	s.flush()
	fmt.Fprintf(out, "done: %d of %d subscribers active\n", s.active(), len(s.subs))
	return nil
}

func describe(step config.Step) string {
	switch step.Op {
	case config.OpProgress, config.OpDrag:
		return fmt.Sprintf("%s %d", step.Op, step.Value)
	case config.OpUnsubscribe:
		return fmt.Sprintf("%s sub#%d", step.Op, step.Subscriber)
	default:
		return step.Op
	}
}
