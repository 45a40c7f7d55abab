package catalog

const (
	// DefaultTopThreshold hides the scroll-to-top control above this offset.
	DefaultTopThreshold = 16
	// DefaultBottomTolerance hides the scroll-to-bottom control this close to the end.
	DefaultBottomTolerance = 3
)

// ScrollState is the position of the scrollable card area.
type ScrollState struct {
	Offset         int
	ViewportHeight int
	ContentHeight  int
}

// ScrollVisibility says which jump controls are shown.
type ScrollVisibility struct {
	Top    bool
	Bottom bool
}

// Navigator derives jump control visibility from the scroll position.
type Navigator struct {
	TopThreshold    int
	BottomTolerance int
}

// DefaultNavigator uses the default thresholds.
func DefaultNavigator() Navigator {
	return Navigator{TopThreshold: DefaultTopThreshold, BottomTolerance: DefaultBottomTolerance}
}

// Visibility recomputes both controls for s.
func (n Navigator) Visibility(s ScrollState) ScrollVisibility {
	atBottom := s.ViewportHeight+s.Offset >= s.ContentHeight-n.BottomTolerance
	return ScrollVisibility{
		Top:    s.Offset >= n.TopThreshold,
		Bottom: !atBottom,
	}
}

// TopOffset is the jump-to-top target.
func (n Navigator) TopOffset() int {
	return 0
}

// BottomOffset is the jump-to-bottom target for s.
func (n Navigator) BottomOffset(s ScrollState) int {
	return max(s.ContentHeight-s.ViewportHeight, 0)
}
