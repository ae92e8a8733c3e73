package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/go-drift/bind/cmd/seekbar/internal/config"
	"github.com/go-drift/bind/pkg/bind"
)

const (
	dragStep = 5
	maxLog   = 12
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	subStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	helpStyle  = dimStyle.Italic(true)
)

func tuiCmd(opts *rootOptions) *cobra.Command {
	var (
		file    string
		logFile string
	)
	cmd := &cobra.Command{
		Use:   "tui [dir]",
		Short: "Drive a seek bar interactively and watch subscribers receive events",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := loadScenario(file, args)
			if err != nil {
				return err
			}

			var w io.Writer = io.Discard
			if logFile != "" {
				f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
				if err != nil {
					return fmt.Errorf("failed to open log file: %w", err)
				}
				defer f.Close()
				w = f
			}
			logger, err := opts.logger(w)
			if err != nil {
				return err
			}

			var p *tea.Program
			s, err := newSession(sc, logger, func(sub int, e bind.SeekBarEvent) {
				p.Send(eventMsg{sub: sub, event: e})
			})
			if err != nil {
				return err
			}
			defer s.close()

			stopDebug, err := startDebug(opts.debugAddr, s, logger)
			if err != nil {
				return err
			}
			defer stopDebug()

			p = tea.NewProgram(newModel(sc, &controller{s: s}), tea.WithOutput(cmd.OutOrStdout()))
			_, err = p.Run()
			return err
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "scenario file providing the initial seek bar")
	cmd.Flags().StringVar(&logFile, "log-file", "", "append logs to this file")
	return cmd
}

// controller serializes session work issued from tea.Cmds. Update never
// touches the session directly: delivery calls p.Send from the looper, so
// blocking Update on the looper would deadlock.
type controller struct {
	mu sync.Mutex
	s  *session
}

type eventMsg struct {
	sub   int
	event bind.SeekBarEvent
}

type statusMsg struct {
	progress int
	active   int
	total    int
}

type errMsg struct{ err error }

func (c *controller) do(fn func(s *session) error) tea.Cmd {
	return func() tea.Msg {
		c.mu.Lock()
		defer c.mu.Unlock()
		if err := fn(c.s); err != nil {
			return errMsg{err}
		}
		var st statusMsg
		c.s.looper.Sync(func() { st.progress = c.s.view.Progress() })
		st.active, st.total = c.s.active(), len(c.s.subs)
		return st
	}
}

type model struct {
	ctl         *controller
	name        string
	max         int
	subscribers int
	status      statusMsg
	bar         progress.Model
	log         []string
	counts      map[int]int
	err         error
}

func newModel(sc *config.Scenario, ctl *controller) model {
	return model{
		ctl:         ctl,
		name:        sc.Name,
		max:         sc.SeekBar.Max,
		subscribers: sc.Subscribers,
		status:      statusMsg{progress: sc.SeekBar.Initial},
		bar:         progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
		counts:      make(map[int]int),
	}
}

func (m model) Init() tea.Cmd {
	n := m.subscribers
	return m.ctl.do(func(s *session) error {
		for i := 0; i < n; i++ {
			s.subscribe()
		}
		return nil
	})
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.bar.Width = max(msg.Width-4, 10)
	case eventMsg:
		m.counts[msg.sub]++
		m.log = append(m.log, fmt.Sprintf("sub#%d %s", msg.sub, msg.event))
		if len(m.log) > maxLog {
			m.log = m.log[len(m.log)-maxLog:]
		}
		if msg.event.Is(bind.ProgressChanged) {
			m.status.progress = msg.event.Progress()
		}
	case statusMsg:
		m.status = msg
		m.err = nil
	case errMsg:
		m.err = msg.err
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	p := m.status.progress
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "left", "h":
		return m, m.ctl.do(func(s *session) error { return s.drag(p - dragStep) })
	case "right", "l":
		return m, m.ctl.do(func(s *session) error { return s.drag(p + dragStep) })
	case ",":
		return m, m.ctl.do(func(s *session) error { s.setProgress(p - 1); return nil })
	case ".":
		return m, m.ctl.do(func(s *session) error { s.setProgress(p + 1); return nil })
	case "s":
		return m, m.ctl.do(func(s *session) error { s.subscribe(); return nil })
	case "u":
		return m, m.ctl.do(func(s *session) error {
			idx := s.lastActive()
			if idx < 0 {
				return fmt.Errorf("no active subscribers")
			}
			s.unsubscribe(idx)
			s.flush()
			return nil
		})
	}
	return m, nil
}

func (m model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("seekbar " + m.name))
	b.WriteString("\n\n")

	ratio := 0.0
	if m.max > 0 {
		ratio = float64(m.status.progress) / float64(m.max)
	}
	b.WriteString(m.bar.ViewAs(ratio))
	fmt.Fprintf(&b, "\n%s\n\n", dimStyle.Render(fmt.Sprintf("progress %d/%d", m.status.progress, m.max)))

	b.WriteString(subStyle.Render(fmt.Sprintf("subscribers: %d active of %d", m.status.active, m.status.total)))
	b.WriteString("\n")
	for i := 0; i < m.status.total; i++ {
		fmt.Fprintf(&b, "  sub#%d received %d\n", i, m.counts[i])
	}
	b.WriteString("\n")

	for _, line := range m.log {
		b.WriteString(dimStyle.Render(line))
		b.WriteString("\n")
	}
	if m.err != nil {
		b.WriteString(errStyle.Render("error: " + m.err.Error()))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("←/→ drag  ,/. set progress  s subscribe  u unsubscribe  q quit"))
	b.WriteString("\n")
	return b.String()
}
