package selection

import (
	"sort"

	"outcomepicker/internal/eventbus"
)

// Service tracks which outcome ids are selected
type Service struct {
	state *State
	bus   eventbus.EventBus
}

// NewService creates a new selection service
func NewService(bus eventbus.EventBus) *Service {
	if bus == nil {
		bus = eventbus.NullBus{}
	}
	return &Service{
		state: &State{
			Selected: make(map[string]bool),
		},
		bus: bus,
	}
}

// IsSelected checks if an outcome is selected
func (s *Service) IsSelected(id string) bool {
	return s.state.Selected[id]
}

// Select adds ids to the selection. Ids already selected are ignored.
func (s *Service) Select(ids []string) {
	var added []string
	for _, id := range ids {
		if id == "" || s.state.Selected[id] {
			continue
		}
		s.state.Selected[id] = true
		added = append(added, id)
	}

	if len(added) > 0 {
		s.bus.Publish(eventbus.SelectionChangedEvent{
			Added: added,
			Total: len(s.state.Selected),
		})
	}
}

// Deselect removes ids from the selection. Ids not selected are ignored.
func (s *Service) Deselect(ids []string) {
	var removed []string
	for _, id := range ids {
		if s.state.Selected[id] {
			delete(s.state.Selected, id)
			removed = append(removed, id)
		}
	}

	if len(removed) > 0 {
		s.bus.Publish(eventbus.SelectionChangedEvent{
			Removed: removed,
			Total:   len(s.state.Selected),
		})
	}
}

// Toggle flips the selection of a single id
func (s *Service) Toggle(id string) {
	if s.state.Selected[id] {
		s.Deselect([]string{id})
	} else {
		s.Select([]string{id})
	}
}

// AllSelected is the "select all" indicator for ids: true when ids is
// non-empty and every one of them is selected
func (s *Service) AllSelected(ids []string) bool {
	if len(ids) == 0 {
		return false
	}
	for _, id := range ids {
		if !s.state.Selected[id] {
			return false
		}
	}
	return true
}

// SomeSelected reports whether at least one of ids is selected
func (s *Service) SomeSelected(ids []string) bool {
	for _, id := range ids {
		if s.state.Selected[id] {
			return true
		}
	}
	return false
}

// ToggleAll selects every id unless all are already selected, in which case
// it deselects them
func (s *Service) ToggleAll(ids []string) {
	if s.AllSelected(ids) {
		s.Deselect(ids)
	} else {
		s.Select(ids)
	}
}

// Selected returns all selected ids in sorted order
func (s *Service) Selected() []string {
	selected := make([]string, 0, len(s.state.Selected))
	for id := range s.state.Selected {
		selected = append(selected, id)
	}
	sort.Strings(selected)
	return selected
}

// Count returns the number of selected items
func (s *Service) Count() int {
	return len(s.state.Selected)
}

// HasSelection returns true if anything is selected
func (s *Service) HasSelection() bool {
	return len(s.state.Selected) > 0
}

// Reset discards the selection
func (s *Service) Reset() {
	s.state.Selected = make(map[string]bool)
	s.bus.Publish(eventbus.SelectionClearedEvent{})
}
