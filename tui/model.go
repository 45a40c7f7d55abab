// Package tui is the interactive catalog browser: a search box, category
// tabs, a scrollable card list, a detail modal, the roulette overlay and
// jump-to-top/bottom controls.
package tui

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"placebook/catalog"
	"placebook/models"
	"placebook/utils"
)

const (
	// Layout rows, counted from the top of the screen.
	searchRow    = 1
	categoryRow  = 2
	headerHeight = 4
	footerHeight = 1

	// Each card is a title line, a meta line and a spacer.
	cardHeight = 3

	loadingMessage = "불러오는 중..."
	spinMessage    = "오늘의 식당을 고르는 중..."
	alertHint      = "아무 키나 누르면 닫힙니다"
)

// CatalogLoader fetches the venue catalog.
type CatalogLoader interface {
	Load(ctx context.Context) ([]models.Venue, error)
}

// Options configures a browser Model.
type Options struct {
	Loader    CatalogLoader
	Session   *catalog.Session
	Keys      KeyMap
	Navigator catalog.Navigator
	Debounce  time.Duration
	Logger    *utils.Logger
}

type venuesLoadedMsg struct {
	venues []models.Venue
}

type loadFailedMsg struct {
	err error
}

type rouletteDoneMsg struct{}

// Model is the Bubble Tea model of the browser.
type Model struct {
	ctx       context.Context
	loader    CatalogLoader
	session   *catalog.Session
	keys      KeyMap
	features  Features
	navigator catalog.Navigator
	logger    *utils.Logger

	search   textinput.Model
	list     viewport.Model
	spinner  spinner.Model
	debounce debouncer

	cursor   int
	loading  bool
	spinning bool
	alert    string
	scroll   catalog.ScrollVisibility

	width  int
	height int
}

// New checks the key map and builds the browser. A missing critical binding
// is reported as ErrMissingElement and nothing is started.
func New(ctx context.Context, opts Options) (Model, error) {
	logger := opts.Logger
	if logger == nil {
		logger = utils.NewNopLogger()
	}
	features, err := Mount(opts.Keys)
	if err != nil {
		logger.Error("[tui] %v", err)
		return Model{}, err
	}
	if opts.Loader == nil || opts.Session == nil {
		return Model{}, errors.New("tui: loader and session are required")
	}

	search := textinput.New()
	search.Prompt = "검색: "
	search.Placeholder = "식당 이름"
	search.CharLimit = 64

	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = jumpStyle

	m := Model{
		ctx:       ctx,
		loader:    opts.Loader,
		session:   opts.Session,
		keys:      opts.Keys,
		features:  features,
		navigator: opts.Navigator,
		logger:    logger,
		search:    search,
		list:      viewport.New(80, 24-headerHeight-footerHeight),
		spinner:   spin,
		debounce:  debouncer{delay: opts.Debounce},
		loading:   true,
		width:     80,
		height:    24,
	}
	m.layout()
	return m, nil
}

// Init starts the one catalog load.
func (m Model) Init() tea.Cmd {
	loader, ctx := m.loader, m.ctx
	return func() tea.Msg {
		venues, err := loader.Load(ctx)
		if err != nil {
			return loadFailedMsg{err: err}
		}
		return venuesLoadedMsg{venues: venues}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.layout()
		return m, nil

	case venuesLoadedMsg:
		m.loading = false
		if err := m.session.Load(msg.venues); err != nil {
			m.logger.Error("[tui] %v", err)
			return m, nil
		}
		m.logger.Info("[tui] Catalog ready: %d venues", len(msg.venues))
		m.resetCursor()
		return m, nil

	case loadFailedMsg:
		m.loading = false
		m.logger.Error("[tui] Catalog load failed: %v", msg.err)
		m.session.LoadFailed()
		m.refreshList()
		return m, nil

	case searchDebounceMsg:
		if !m.debounce.current(msg) {
			return m, nil
		}
		m.session.SetSearch(m.search.Value())
		m.resetCursor()
		return m, nil

	case rouletteDoneMsg:
		m.finishRoulette()
		return m, nil

	case spinner.TickMsg:
		if !m.spinning {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.search.Focused() {
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}
	if m.alert != "" {
		m.alert = ""
		return m, nil
	}
	if m.spinning {
		return m, nil
	}
	if m.session.Modal().IsOpen() {
		if key.Matches(msg, m.keys.Close, m.keys.Escape) {
			m.session.CloseModal()
		}
		return m, nil
	}
	if m.search.Focused() {
		return m.handleSearchKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Roulette):
		return m, m.startRoulette()
	case key.Matches(msg, m.keys.ScrollTop):
		m.jumpTop()
	case key.Matches(msg, m.keys.ScrollBottom):
		m.jumpBottom()
	case key.Matches(msg, m.keys.PageUp):
		m.scrollBy(-m.list.Height)
	case key.Matches(msg, m.keys.PageDown):
		m.scrollBy(m.list.Height)

	// Everything below needs the catalog.
	case !m.session.Loaded():
	case key.Matches(msg, m.keys.Search):
		return m, m.search.Focus()
	case key.Matches(msg, m.keys.Filter):
		m.session.NextCategory()
		m.resetCursor()
	case key.Matches(msg, m.keys.FilterPrev):
		m.session.PrevCategory()
		m.resetCursor()
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
	case key.Matches(msg, m.keys.Open):
		m.session.OpenCard(m.cursor)
	}
	return m, nil
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Escape) || msg.Type == tea.KeyEnter {
		m.search.Blur()
		return m, nil
	}
	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() == before {
		return m, cmd
	}
	return m, tea.Batch(cmd, m.debounce.trigger())
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.spinning {
		return m, nil
	}
	overlay := m.alert != "" || m.session.Modal().IsOpen()
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		if !overlay {
			m.scrollBy(-1)
		}
	case tea.MouseButtonWheelDown:
		if !overlay {
			m.scrollBy(1)
		}
	case tea.MouseButtonLeft:
		if msg.Action == tea.MouseActionPress {
			return m.handleClick(msg.X, msg.Y)
		}
	}
	return m, nil
}

func (m Model) handleClick(x, y int) (tea.Model, tea.Cmd) {
	if m.alert != "" {
		m.alert = ""
		return m, nil
	}
	if m.session.Modal().IsOpen() {
		// Clicks on the backdrop close the modal; clicks on the box do not.
		if !m.modalBounds().contains(x, y) {
			m.session.CloseModal()
		}
		return m, nil
	}

	footerRow := headerHeight + m.list.Height
	if y == footerRow {
		for _, h := range m.jumpControls() {
			if h.contains(x) {
				if h.value == jumpTopValue {
					m.jumpTop()
				} else {
					m.jumpBottom()
				}
			}
		}
		return m, nil
	}
	if !m.session.Loaded() {
		return m, nil
	}

	switch {
	case y == searchRow:
		return m, m.search.Focus()
	case y == categoryRow:
		m.search.Blur()
		for _, h := range m.categoryHits() {
			if h.contains(x) && m.session.SelectCategory(h.value) {
				m.resetCursor()
			}
		}
	case y >= headerHeight && y < footerRow:
		m.search.Blur()
		row := y - headerHeight + m.list.YOffset
		if row%cardHeight == cardHeight-1 {
			return m, nil
		}
		if i := row / cardHeight; m.session.OpenCard(i) {
			m.cursor = i
			m.renderList()
		}
	}
	return m, nil
}

func (m *Model) startRoulette() tea.Cmd {
	if len(m.session.Venues()) == 0 {
		m.alert = catalog.NotReadyMessage
		return nil
	}
	m.spinning = true
	return tea.Batch(m.spinner.Tick, tea.Tick(m.session.Picker().Delay(), func(time.Time) tea.Msg {
		return rouletteDoneMsg{}
	}))
}

func (m *Model) finishRoulette() {
	m.spinning = false
	v, err := m.session.Pick()
	if err != nil {
		m.alert = catalog.NotReadyMessage
		return
	}
	m.logger.Debug("[tui] Roulette picked %q", v.Title)
	m.session.OpenVenue(v)
}

func (m *Model) layout() {
	m.search.Width = max(m.width-len([]rune(m.search.Prompt))-1, 10)
	m.list.Width = m.width
	m.list.Height = max(m.height-headerHeight-footerHeight, 1)
	m.refreshList()
}

func (m *Model) resetCursor() {
	m.cursor = 0
	m.list.GotoTop()
	m.refreshList()
}

func (m *Model) moveCursor(delta int) {
	n := len(m.session.Cards().Cards)
	if n == 0 {
		return
	}
	m.cursor = min(max(m.cursor+delta, 0), n-1)
	m.refreshList()
}

func (m *Model) refreshList() {
	if n := len(m.session.Cards().Cards); m.cursor >= n {
		m.cursor = max(n-1, 0)
	}
	m.renderList()
	m.ensureCursorVisible()
	m.updateScroll()
}

func (m *Model) renderList() {
	m.list.SetContent(m.listContent())
}

func (m *Model) ensureCursorVisible() {
	if m.session.Cards().Empty() {
		return
	}
	top := m.cursor * cardHeight
	switch {
	case top < m.list.YOffset:
		m.list.SetYOffset(top)
	case top+cardHeight > m.list.YOffset+m.list.Height:
		m.list.SetYOffset(top + cardHeight - m.list.Height)
	}
}

func (m *Model) jumpTop() {
	m.list.SetYOffset(m.navigator.TopOffset())
	m.cursor = 0
	m.renderList()
	m.updateScroll()
}

func (m *Model) jumpBottom() {
	m.list.SetYOffset(m.navigator.BottomOffset(m.scrollState()))
	if n := len(m.session.Cards().Cards); n > 0 {
		m.cursor = n - 1
	}
	m.renderList()
	m.updateScroll()
}

func (m *Model) scrollBy(rows int) {
	m.list.SetYOffset(m.list.YOffset + rows)
	m.updateScroll()
}

func (m Model) scrollState() catalog.ScrollState {
	return catalog.ScrollState{
		Offset:         m.list.YOffset,
		ViewportHeight: m.list.Height,
		ContentHeight:  m.list.TotalLineCount(),
	}
}

func (m *Model) updateScroll() {
	m.scroll = m.navigator.Visibility(m.scrollState())
}
