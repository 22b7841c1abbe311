package cmd

import (
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/marcus/empdesk/pkg/desk"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// isTerminal reports whether f is an interactive terminal
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// runTUI starts the interactive desk. Without a terminal it prints the list.
func runTUI(cmd *cobra.Command, args []string) error {
	if !isTerminal(os.Stdout) || !isTerminal(os.Stdin) {
		return runList(cmd, args)
	}

	s, err := openSession(cmd, nil)
	if err != nil {
		return err
	}
	defer s.Close()

	model := desk.NewModel(desk.Options{
		Client:  s.client,
		Routes:  s.cfg.Routes,
		BaseURL: s.cfg.BaseURL,
		Timeout: time.Duration(s.cfg.Timeout),
		Logger:  s.logger,
		Version: version,
	})

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		s.logger.Error("tui exited", "err", err)
		return err
	}
	return nil
}
