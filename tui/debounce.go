package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// searchDebounceMsg fires when a pending search has been quiet for the
// debounce delay.
type searchDebounceMsg struct {
	seq int
}

// debouncer owns the pending search timer. Each trigger supersedes the
// previous one, so only the last keystroke in a burst filters.
type debouncer struct {
	delay time.Duration
	seq   int
}

func (d *debouncer) trigger() tea.Cmd {
	d.seq++
	seq := d.seq
	return tea.Tick(d.delay, func(time.Time) tea.Msg {
		return searchDebounceMsg{seq: seq}
	})
}

func (d debouncer) current(msg searchDebounceMsg) bool {
	return msg.seq == d.seq
}
