package tui

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"placebook/catalog"
	"placebook/config"
	"placebook/models"
)

var testVenues = []models.Venue{
	{Title: "을지로 골뱅이", Category: "술집", URL: "https://map.naver.com/p/entry/place/1"},
	{Title: "성수 파스타", Category: "양식"},
	{Title: "골목 국수", Category: "한식", Address: "서울 중구"},
}

type stubLoader struct {
	venues []models.Venue
	err    error
}

func (s stubLoader) Load(context.Context) ([]models.Venue, error) {
	return s.venues, s.err
}

func newTestModel(t *testing.T, loader CatalogLoader, keys KeyMap) Model {
	t.Helper()
	m, err := New(context.Background(), Options{
		Loader:    loader,
		Session:   catalog.NewSession(catalog.NewPicker(rand.NewPCG(1, 2), 10*time.Millisecond)),
		Keys:      keys,
		Navigator: catalog.DefaultNavigator(),
		Debounce:  time.Millisecond,
	})
	require.NoError(t, err)
	return m
}

func loadedModel(t *testing.T, venues []models.Venue) Model {
	t.Helper()
	m := newTestModel(t, stubLoader{venues: venues}, DefaultKeyMap())
	m, _ = update(m, m.Init()())
	require.True(t, m.session.Loaded())
	return m
}

func update(m Model, msg tea.Msg) (Model, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func click(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress}
}

func TestMountMissingCriticalBinding(t *testing.T) {
	keys := NewKeyMap(config.KeyConfig{
		Filter: []string{"tab"},
		Open:   []string{"enter"},
		Close:  []string{"x"},
	})
	_, err := Mount(keys)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingElement))
	assert.Contains(t, err.Error(), "search")

	_, err = New(context.Background(), Options{
		Loader:  stubLoader{},
		Session: catalog.NewSession(catalog.NewPicker(nil, 0)),
		Keys:    keys,
	})
	assert.ErrorIs(t, err, ErrMissingElement)
}

func TestMountOptionalBindingsDisableFeatures(t *testing.T) {
	keys := NewKeyMap(config.KeyConfig{
		Search: []string{"/"},
		Filter: []string{"tab"},
		Open:   []string{"enter"},
		Close:  []string{"x"},
	})
	features, err := Mount(keys)
	require.NoError(t, err)
	assert.Equal(t, Features{}, features)

	m := newTestModel(t, stubLoader{}, keys)
	m, cmd := update(m, runes("r"))
	assert.Nil(t, cmd)
	assert.Empty(t, m.alert)
	assert.False(t, m.spinning)
}

func TestLoadRendersAllCards(t *testing.T) {
	m := loadedModel(t, testVenues)

	assert.Len(t, m.session.Cards().Cards, 3)
	view := m.View()
	for _, v := range testVenues {
		assert.Contains(t, view, v.Title)
	}
	assert.Contains(t, view, catalog.AllCategories)
}

func TestLoadFailureShowsMessage(t *testing.T) {
	m := newTestModel(t, stubLoader{err: errors.New("boom")}, DefaultKeyMap())
	m, _ = update(m, m.Init()())

	assert.True(t, m.session.Failed())
	assert.False(t, m.session.Loaded())
	assert.Contains(t, m.View(), catalog.LoadFailedMessage)

	// Controls stay inert without a catalog.
	m, cmd := update(m, runes("/"))
	assert.Nil(t, cmd)
	assert.False(t, m.search.Focused())
}

func TestFilterKeyCyclesCategories(t *testing.T) {
	m := loadedModel(t, testVenues)

	m, _ = update(m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, "술집", m.session.Registry().Active())
	require.Len(t, m.session.Results(), 1)
	assert.Equal(t, "을지로 골뱅이", m.session.Results()[0].Title)

	m, _ = update(m, tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, catalog.AllCategories, m.session.Registry().Active())
	assert.Len(t, m.session.Results(), 3)
}

func TestSearchIsDebounced(t *testing.T) {
	m := loadedModel(t, testVenues)

	m, _ = update(m, runes("/"))
	require.True(t, m.search.Focused())

	m, cmd := update(m, runes("골"))
	require.NotNil(t, cmd)
	assert.Equal(t, "골", m.search.Value())
	assert.Len(t, m.session.Results(), 3, "results change before the delay")

	stale := m.debounce.seq
	m, _ = update(m, runes("목"))
	m, _ = update(m, searchDebounceMsg{seq: stale})
	assert.Len(t, m.session.Results(), 3, "superseded timer filtered")

	m, _ = update(m, searchDebounceMsg{seq: m.debounce.seq})
	require.Len(t, m.session.Results(), 1)
	assert.Equal(t, "골목 국수", m.session.Results()[0].Title)

	m, _ = update(m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.search.Focused())
}

func TestOpenAndCloseModal(t *testing.T) {
	m := loadedModel(t, testVenues)

	m, _ = update(m, runes("j"))
	m, _ = update(m, tea.KeyMsg{Type: tea.KeyEnter})
	require.True(t, m.session.Modal().IsOpen())
	d := m.session.Modal().Detail()
	assert.Equal(t, "성수 파스타", d.Title)
	assert.False(t, d.ShowMap())
	assert.Contains(t, m.View(), "정보 없음")

	m, _ = update(m, runes("x"))
	assert.False(t, m.session.Modal().IsOpen())

	m, _ = update(m, tea.KeyMsg{Type: tea.KeyEnter})
	require.True(t, m.session.Modal().IsOpen())
	m, _ = update(m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.session.Modal().IsOpen())
}

func TestModalShowsMapAction(t *testing.T) {
	m := loadedModel(t, testVenues)

	m, _ = update(m, tea.KeyMsg{Type: tea.KeyEnter})
	require.True(t, m.session.Modal().IsOpen())
	assert.Contains(t, m.View(), catalog.MapActionLabel)
}

func TestClickOutsideModalCloses(t *testing.T) {
	m := loadedModel(t, testVenues)

	m, _ = update(m, tea.KeyMsg{Type: tea.KeyEnter})
	require.True(t, m.session.Modal().IsOpen())

	m, _ = update(m, click(m.width/2, m.height/2))
	assert.True(t, m.session.Modal().IsOpen(), "click inside the box")

	m, _ = update(m, click(0, 0))
	assert.False(t, m.session.Modal().IsOpen(), "click on the backdrop")
}

func TestClickCardOpensModal(t *testing.T) {
	m := loadedModel(t, testVenues)

	m, _ = update(m, click(2, headerHeight+cardHeight))
	require.True(t, m.session.Modal().IsOpen())
	assert.Equal(t, "성수 파스타", m.session.Modal().Detail().Title)
	assert.Equal(t, 1, m.cursor)
}

func TestClickCategoryTab(t *testing.T) {
	m := loadedModel(t, testVenues)

	hits := m.categoryHits()
	require.Len(t, hits, 4)
	m, _ = update(m, click(hits[3].start, categoryRow))
	assert.Equal(t, "한식", m.session.Registry().Active())
	assert.Len(t, m.session.Results(), 1)
}

func TestRouletteWithoutCatalogAlerts(t *testing.T) {
	m := newTestModel(t, stubLoader{}, DefaultKeyMap())

	m, cmd := update(m, runes("r"))
	assert.Nil(t, cmd)
	assert.False(t, m.spinning)
	assert.Equal(t, catalog.NotReadyMessage, m.alert)
	assert.Contains(t, m.View(), catalog.NotReadyMessage)

	m, _ = update(m, runes("a"))
	assert.Empty(t, m.alert)
}

func TestRouletteOpensPickedVenue(t *testing.T) {
	m := loadedModel(t, testVenues)

	// Narrow the view; the pick still draws from the whole catalog.
	m, _ = update(m, tea.KeyMsg{Type: tea.KeyTab})

	m, cmd := update(m, runes("r"))
	require.NotNil(t, cmd)
	assert.True(t, m.spinning)
	assert.Contains(t, m.View(), spinMessage)

	// Input is blocked while the overlay is up.
	m, _ = update(m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, m.session.Modal().IsOpen())

	m, _ = update(m, rouletteDoneMsg{})
	assert.False(t, m.spinning)
	require.True(t, m.session.Modal().IsOpen())
	picked := m.session.Modal().Detail().Title
	assert.Contains(t, []string{"을지로 골뱅이", "성수 파스타", "골목 국수"}, picked)
}

func TestScrollControlsFollowOffset(t *testing.T) {
	var venues []models.Venue
	for i := range 20 {
		venues = append(venues, models.Venue{Title: fmt.Sprintf("식당 %02d", i), Category: "한식"})
	}
	m := loadedModel(t, venues)

	assert.False(t, m.scroll.Top)
	assert.True(t, m.scroll.Bottom)
	assert.NotContains(t, m.View(), jumpTopLabel)
	assert.Contains(t, m.View(), jumpBottomLabel)

	m, _ = update(m, runes("G"))
	assert.Equal(t, 20*cardHeight-m.list.Height, m.list.YOffset)
	assert.True(t, m.scroll.Top)
	assert.False(t, m.scroll.Bottom)
	assert.Equal(t, 19, m.cursor)

	m, _ = update(m, runes("g"))
	assert.Equal(t, 0, m.list.YOffset)
	assert.False(t, m.scroll.Top)
	assert.True(t, m.scroll.Bottom)
}

func TestClickJumpControl(t *testing.T) {
	var venues []models.Venue
	for i := range 20 {
		venues = append(venues, models.Venue{Title: fmt.Sprintf("식당 %02d", i)})
	}
	m := loadedModel(t, venues)

	hits := m.jumpControls()
	require.Len(t, hits, 1)
	m, _ = update(m, click(hits[0].start, headerHeight+m.list.Height))
	assert.False(t, m.scroll.Bottom)
	assert.True(t, m.scroll.Top)
}

func TestWindowResize(t *testing.T) {
	m := loadedModel(t, testVenues)

	m, _ = update(m, tea.WindowSizeMsg{Width: 120, Height: 40})
	assert.Equal(t, 120, m.list.Width)
	assert.Equal(t, 40-headerHeight-footerHeight, m.list.Height)
}

func wheel(button tea.MouseButton) tea.MouseMsg {
	return tea.MouseMsg{Button: button, Action: tea.MouseActionPress}
}

func TestWheelScrollUpdatesControls(t *testing.T) {
	var venues []models.Venue
	for i := range 20 {
		venues = append(venues, models.Venue{Title: fmt.Sprintf("식당 %02d", i)})
	}
	m := loadedModel(t, venues)

	for range catalog.DefaultTopThreshold - 1 {
		m, _ = update(m, wheel(tea.MouseButtonWheelDown))
	}
	assert.Equal(t, catalog.DefaultTopThreshold-1, m.list.YOffset)
	assert.False(t, m.scroll.Top)

	m, _ = update(m, wheel(tea.MouseButtonWheelDown))
	assert.Equal(t, catalog.DefaultTopThreshold, m.list.YOffset)
	assert.True(t, m.scroll.Top)
	assert.True(t, m.scroll.Bottom)

	m, _ = update(m, wheel(tea.MouseButtonWheelUp))
	assert.False(t, m.scroll.Top)
}

func TestResizeUpdatesControls(t *testing.T) {
	var venues []models.Venue
	for i := range 20 {
		venues = append(venues, models.Venue{Title: fmt.Sprintf("식당 %02d", i)})
	}
	m := loadedModel(t, venues)
	require.True(t, m.scroll.Bottom)

	// Tall enough for every card: nothing left to jump to.
	m, _ = update(m, tea.WindowSizeMsg{Width: 80, Height: 20*cardHeight + headerHeight + footerHeight})
	assert.False(t, m.scroll.Top)
	assert.False(t, m.scroll.Bottom)
	assert.Empty(t, m.jumpControls())

	m, _ = update(m, tea.WindowSizeMsg{Width: 80, Height: 24})
	assert.True(t, m.scroll.Bottom)
}

func TestDebouncerLastTriggerWins(t *testing.T) {
	var d debouncer
	d.trigger()
	first := d.seq
	d.trigger()

	assert.False(t, d.current(searchDebounceMsg{seq: first}))
	assert.True(t, d.current(searchDebounceMsg{seq: d.seq}))
}
