package tui

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// Run shows the browser full screen until the user quits or the model's
// context is cancelled.
func Run(m Model) error {
	p := tea.NewProgram(m,
		tea.WithContext(m.ctx),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("tui: run: %w", err)
	}
	return nil
}
