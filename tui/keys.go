package tui

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/key"

	"placebook/config"
)

// ErrMissingElement is returned when a control the browser cannot work
// without has no key bound to it.
var ErrMissingElement = errors.New("tui: critical control is not bound")

// KeyMap binds keys to the browser's controls. Search, Filter, Open and Close
// are critical; Roulette, ScrollTop and ScrollBottom are optional features.
type KeyMap struct {
	Search       key.Binding
	Filter       key.Binding
	FilterPrev   key.Binding
	Up           key.Binding
	Down         key.Binding
	PageUp       key.Binding
	PageDown     key.Binding
	Open         key.Binding
	Close        key.Binding
	Escape       key.Binding
	Roulette     key.Binding
	ScrollTop    key.Binding
	ScrollBottom key.Binding
	Quit         key.Binding
}

// NewKeyMap builds the key map from configuration.
func NewKeyMap(cfg config.KeyConfig) KeyMap {
	return KeyMap{
		Search:       binding(cfg.Search, "검색"),
		Filter:       binding(cfg.Filter, "카테고리"),
		FilterPrev:   key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "이전 카테고리")),
		Up:           key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "위")),
		Down:         key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "아래")),
		PageUp:       key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "이전 페이지")),
		PageDown:     key.NewBinding(key.WithKeys("pgdown", " "), key.WithHelp("pgdn", "다음 페이지")),
		Open:         binding(cfg.Open, "상세"),
		Close:        binding(cfg.Close, "닫기"),
		Escape:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "닫기")),
		Roulette:     binding(cfg.Roulette, "룰렛"),
		ScrollTop:    binding(cfg.ScrollTop, "맨 위"),
		ScrollBottom: binding(cfg.ScrollBottom, "맨 아래"),
		Quit:         key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "종료")),
	}
}

// DefaultKeyMap is the key map for the default configuration.
func DefaultKeyMap() KeyMap {
	return NewKeyMap(config.KeyConfig{
		Search:       []string{"/"},
		Filter:       []string{"tab"},
		Open:         []string{"enter"},
		Close:        []string{"x"},
		Roulette:     []string{"r"},
		ScrollTop:    []string{"g", "home"},
		ScrollBottom: []string{"G", "end"},
	})
}

func binding(keys []string, help string) key.Binding {
	if len(keys) == 0 {
		return key.NewBinding(key.WithDisabled())
	}
	return key.NewBinding(key.WithKeys(keys...), key.WithHelp(keys[0], help))
}

// Features records which optional controls are available.
type Features struct {
	Roulette     bool
	ScrollTop    bool
	ScrollBottom bool
}

// Mount checks that every critical control is bound. Unbound optional
// controls only switch their feature off.
func Mount(km KeyMap) (Features, error) {
	critical := []struct {
		name string
		b    key.Binding
	}{
		{"search", km.Search},
		{"filter", km.Filter},
		{"open", km.Open},
		{"close", km.Close},
	}
	for _, c := range critical {
		if !bound(c.b) {
			return Features{}, fmt.Errorf("%w: %s", ErrMissingElement, c.name)
		}
	}
	return Features{
		Roulette:     bound(km.Roulette),
		ScrollTop:    bound(km.ScrollTop),
		ScrollBottom: bound(km.ScrollBottom),
	}, nil
}

func bound(b key.Binding) bool {
	return b.Enabled() && len(b.Keys()) > 0
}
