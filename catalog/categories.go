package catalog

import "placebook/models"

// Control is one category toggle.
type Control struct {
	Label string
	Value string
}

// Registry holds the category controls built from the loaded venues and which
// of them is active. Exactly one control is active at any time.
type Registry struct {
	controls []Control
	active   int
}

// NewRegistry builds the "전체" control followed by one control per distinct
// non-empty category, in first-seen order. "전체" starts active.
func NewRegistry(venues []models.Venue) *Registry {
	controls := []Control{{Label: AllCategories, Value: AllCategories}}
	seen := map[string]struct{}{AllCategories: {}}
	for _, v := range venues {
		if v.Category == "" {
			continue
		}
		if _, ok := seen[v.Category]; ok {
			continue
		}
		seen[v.Category] = struct{}{}
		controls = append(controls, Control{Label: v.Category, Value: v.Category})
	}
	return &Registry{controls: controls}
}

// Controls returns the controls in display order.
func (r *Registry) Controls() []Control {
	out := make([]Control, len(r.controls))
	copy(out, r.controls)
	return out
}

// Active returns the active control's value.
func (r *Registry) Active() string {
	return r.controls[r.active].Value
}

// ActiveIndex returns the position of the active control.
func (r *Registry) ActiveIndex() int {
	return r.active
}

// Select activates the control tagged with value. Unknown values leave the
// current selection untouched and return false.
func (r *Registry) Select(value string) bool {
	for i, c := range r.controls {
		if c.Value == value {
			r.active = i
			return true
		}
	}
	return false
}

// Next activates the following control, wrapping around.
func (r *Registry) Next() string {
	r.active = (r.active + 1) % len(r.controls)
	return r.Active()
}

// Prev activates the preceding control, wrapping around.
func (r *Registry) Prev() string {
	r.active = (r.active - 1 + len(r.controls)) % len(r.controls)
	return r.Active()
}
