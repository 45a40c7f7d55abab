package tui

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"placebook/catalog"
)

const (
	jumpTopValue    = "top"
	jumpBottomValue = "bottom"

	jumpTopLabel    = "▲ 맨 위"
	jumpBottomLabel = "▼ 맨 아래"
)

// hit is a clickable horizontal span on one row.
type hit struct {
	start, end int
	value      string
}

func (h hit) contains(x int) bool {
	return x >= h.start && x < h.end
}

type rect struct {
	x, y, w, h int
}

func (r rect) contains(x, y int) bool {
	return x >= r.x && x < r.x+r.w && y >= r.y && y < r.y+r.h
}

func (m Model) View() string {
	switch {
	case m.alert != "":
		return m.place(modalStyle.Render(m.alert + "\n\n" + footerStyle.Render(alertHint)))
	case m.spinning:
		return m.place(modalStyle.Render(m.spinner.View() + " " + spinMessage))
	case m.session.Modal().IsOpen():
		return m.place(m.modalView())
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.headerView(), m.list.View(), m.footerView())
}

func (m Model) place(box string) string {
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

func (m Model) headerView() string {
	title := titleStyle.Render("placebook")
	if m.session.Loaded() {
		title += cardMetaStyle.Render(fmt.Sprintf("  %d곳 중 %d곳", len(m.session.Venues()), len(m.session.Results())))
	}
	bar := lipgloss.NewStyle().MaxWidth(m.width).Render(m.categoryBar())
	return strings.Join([]string{title, m.search.View(), bar, ""}, "\n")
}

func (m Model) categoryBar() string {
	var b strings.Builder
	for _, tab := range m.categoryTabs() {
		b.WriteString(tab)
	}
	return b.String()
}

func (m Model) categoryTabs() []string {
	reg := m.session.Registry()
	if reg == nil {
		return []string{activeTabStyle.Render(catalog.AllCategories)}
	}
	active := reg.ActiveIndex()
	var tabs []string
	for i, c := range reg.Controls() {
		style := tabStyle
		if i == active {
			style = activeTabStyle
		}
		tabs = append(tabs, style.Render(c.Label))
	}
	return tabs
}

func (m Model) categoryHits() []hit {
	reg := m.session.Registry()
	if reg == nil {
		return nil
	}
	controls := reg.Controls()
	var hits []hit
	x := 0
	for i, tab := range m.categoryTabs() {
		w := lipgloss.Width(tab)
		hits = append(hits, hit{start: x, end: x + w, value: controls[i].Value})
		x += w
	}
	return hits
}

func (m Model) listContent() string {
	if m.loading {
		return messageStyle.Render(loadingMessage)
	}
	cards := m.session.Cards()
	if cards.Empty() {
		return messageStyle.Render(cards.Message)
	}
	clip := lipgloss.NewStyle().MaxWidth(m.list.Width)
	lines := make([]string, 0, len(cards.Cards)*cardHeight)
	for i, c := range cards.Cards {
		marker, title := cardMarker, cardTitleStyle.Render(c.Title)
		if i == m.cursor {
			marker, title = selectedCardMarker, cardTitleStyle.Foreground(accent).Render(c.Title)
		}
		lines = append(lines,
			clip.Render(marker+title),
			clip.Render(marker+cardMetaStyle.Render(c.Category+" · "+c.ImageURL)),
			"",
		)
	}
	return strings.Join(lines, "\n")
}

func (m Model) jumpControls() []hit {
	var hits []hit
	x := 0
	add := func(label, value string) {
		w := lipgloss.Width(label)
		hits = append(hits, hit{start: x, end: x + w, value: value})
		x += w + 1
	}
	if m.features.ScrollTop && m.scroll.Top {
		add(jumpTopLabel, jumpTopValue)
	}
	if m.features.ScrollBottom && m.scroll.Bottom {
		add(jumpBottomLabel, jumpBottomValue)
	}
	return hits
}

func (m Model) footerView() string {
	var parts []string
	for _, h := range m.jumpControls() {
		label := jumpTopLabel
		if h.value == jumpBottomValue {
			label = jumpBottomLabel
		}
		parts = append(parts, jumpStyle.Render(label))
	}
	jumps := strings.Join(parts, " ")

	hm := help.New()
	hm.Width = max(m.width-lipgloss.Width(jumps)-2, 0)
	hints := hm.ShortHelpView([]key.Binding{
		m.keys.Search, m.keys.Filter, m.keys.Open, m.keys.Roulette, m.keys.Quit,
	})
	if jumps == "" {
		return footerStyle.Render(hints)
	}
	return jumps + "  " + footerStyle.Render(hints)
}

func (m Model) modalWidth() int {
	return max(min(m.width-4, 72), 30)
}

func (m Model) modalView() string {
	d := m.session.Modal().Detail()
	inner := m.modalWidth() - 6
	value := lipgloss.NewStyle().Width(max(inner-labelStyle.GetWidth(), 10))
	field := func(label, v string) string {
		return lipgloss.JoinHorizontal(lipgloss.Top, labelStyle.Render(label), value.Render(v))
	}

	rows := []string{
		titleStyle.Render(d.Title),
		cardMetaStyle.Render(d.Category),
		"",
		field("이미지", d.ImageURL),
		field("설명", d.Description),
		field("방문자 리뷰", d.VisitorReviews),
		field("블로그 리뷰", d.BlogReviews),
		field("주소", d.Address),
		field("전화", d.Phone),
		field("영업시간", d.BusinessHours),
	}
	if d.ShowMap() {
		rows = append(rows, "", linkStyle.Render(catalog.MapActionLabel)+" "+cardMetaStyle.Render(d.MapURL))
	}
	closeKeys := append(slices.Clone(m.keys.Close.Keys()), "esc")
	rows = append(rows, "", footerStyle.Render(strings.Join(closeKeys, "/")+" 닫기 · 바깥 클릭 닫기"))

	return modalStyle.Width(m.modalWidth() - 2).Render(strings.Join(rows, "\n"))
}

// modalBounds is where lipgloss.Place puts the modal box on screen.
func (m Model) modalBounds() rect {
	w, h := lipgloss.Size(m.modalView())
	return rect{x: placeOffset(m.width, w), y: placeOffset(m.height, h), w: w, h: h}
}

func placeOffset(outer, inner int) int {
	gap := outer - inner
	if gap <= 0 {
		return 0
	}
	return gap - int(math.Round(float64(gap)*0.5))
}
