package views

// CheckState is the tri-state of a checkbox
type CheckState int

const (
	Unchecked CheckState = iota
	Indeterminate
	Checked
)

// CheckStateOf folds the "all" and "some" flags of a group into one state
func CheckStateOf(all, some bool) CheckState {
	switch {
	case all:
		return Checked
	case some:
		return Indeterminate
	default:
		return Unchecked
	}
}

// Glyph returns the plain-text box for the state
func (c CheckState) Glyph() string {
	switch c {
	case Checked:
		return "[x]"
	case Indeterminate:
		return "[-]"
	default:
		return "[ ]"
	}
}

// Checkbox renders a styled checkbox
func (r *Renderer) Checkbox(state CheckState) string {
	if state == Unchecked {
		return r.styles.Unchecked.Render(state.Glyph())
	}
	return r.styles.Checked.Render(state.Glyph())
}
