package navigation

import (
	"outcomepicker/internal/eventbus"
)

// reservedRows is the chrome around the list: tray border, search line,
// header, pagination footer and key help
const reservedRows = 10

// Service moves a cursor over the rows of the current results page
type Service struct {
	state *State
	bus   eventbus.EventBus
}

// NewService creates a new navigation service
func NewService(bus eventbus.EventBus) *Service {
	if bus == nil {
		bus = eventbus.NullBus{}
	}
	return &Service{
		state: &State{
			ViewportHeight: 10, // updated on the first window size message
		},
		bus: bus,
	}
}

// Cursor returns current cursor position
func (s *Service) Cursor() int {
	return s.state.Cursor
}

// ViewportOffset returns current viewport offset
func (s *Service) ViewportOffset() int {
	return s.state.ViewportOffset
}

// ViewportHeight returns current viewport height
func (s *Service) ViewportHeight() int {
	return s.state.ViewportHeight
}

// SetViewportHeight derives the list height from the terminal height
func (s *Service) SetViewportHeight(height int) {
	effectiveHeight := height - reservedRows
	if effectiveHeight < 1 {
		effectiveHeight = 1
	}
	s.state.ViewportHeight = effectiveHeight
	s.ensureVisible()
}

// SetCount updates the number of rows and keeps the cursor in range
func (s *Service) SetCount(n int) {
	if n < 0 {
		n = 0
	}
	s.state.Count = n
	s.state.Cursor = s.clampIndex(s.state.Cursor)
	s.ensureVisible()
}

// Reset moves the cursor back to the first row
func (s *Service) Reset() {
	s.state.Cursor = 0
	s.state.ViewportOffset = 0
}

// Navigate handles navigation in a direction
func (s *Service) Navigate(direction Direction) {
	oldCursor := s.state.Cursor

	switch direction {
	case DirectionUp:
		s.moveTo(s.state.Cursor - 1)
	case DirectionDown:
		s.moveTo(s.state.Cursor + 1)
	case DirectionPageUp:
		s.moveTo(s.state.Cursor - (s.state.ViewportHeight - 1))
	case DirectionPageDown:
		s.moveTo(s.state.Cursor + (s.state.ViewportHeight - 1))
	case DirectionHome:
		s.moveTo(0)
	case DirectionEnd:
		s.moveTo(s.state.Count - 1)
	}

	if oldCursor != s.state.Cursor {
		s.bus.Publish(eventbus.CursorMovedEvent{
			OldIndex: oldCursor,
			NewIndex: s.state.Cursor,
		})
	}
}

// VisibleRange returns the half-open range of rows inside the viewport
func (s *Service) VisibleRange() (start, end int) {
	start = s.state.ViewportOffset
	end = start + s.state.ViewportHeight
	if end > s.state.Count {
		end = s.state.Count
	}
	if start > end {
		start = end
	}
	return start, end
}

func (s *Service) moveTo(index int) {
	s.state.Cursor = s.clampIndex(index)
	s.ensureVisible()
}

func (s *Service) clampIndex(index int) int {
	if index >= s.state.Count {
		index = s.state.Count - 1
	}
	if index < 0 {
		return 0
	}
	return index
}

func (s *Service) ensureVisible() {
	if s.state.Cursor < s.state.ViewportOffset {
		s.state.ViewportOffset = s.state.Cursor
	} else if s.state.Cursor >= s.state.ViewportOffset+s.state.ViewportHeight {
		s.state.ViewportOffset = s.state.Cursor - s.state.ViewportHeight + 1
	}
	if s.state.ViewportOffset < 0 {
		s.state.ViewportOffset = 0
	}
}
