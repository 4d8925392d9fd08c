package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventPickerOpened     EventType = "PickerOpened"
	EventPickerClosed     EventType = "PickerClosed"
	EventSelectionChanged EventType = "SelectionChanged"
	EventSelectionCleared EventType = "SelectionCleared"
	EventSearchStarted    EventType = "SearchStarted"
	EventResultsLoaded    EventType = "ResultsLoaded"
	EventSearchFailed     EventType = "SearchFailed"
	EventPageChanged      EventType = "PageChanged"
	EventCursorMoved      EventType = "CursorMoved"
	EventConfigLoaded     EventType = "ConfigLoaded"
	EventConfigSaved      EventType = "ConfigSaved"
	EventError            EventType = "Error"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// PickerOpenedEvent is emitted when the tray opens and fresh state is created
type PickerOpenedEvent struct {
	SessionID   string
	Preselected int
}

func (e PickerOpenedEvent) Type() EventType { return EventPickerOpened }

// PickerClosedEvent is emitted when the tray closes and its state is discarded
type PickerClosedEvent struct {
	SessionID string
	Confirmed bool
	Selected  []string
}

func (e PickerClosedEvent) Type() EventType { return EventPickerClosed }

// SelectionChangedEvent carries only ids whose membership actually changed
type SelectionChangedEvent struct {
	Added   []string
	Removed []string
	Total   int
}

func (e SelectionChangedEvent) Type() EventType { return EventSelectionChanged }

// SelectionClearedEvent is emitted when the selection is reset
type SelectionClearedEvent struct{}

func (e SelectionClearedEvent) Type() EventType { return EventSelectionCleared }

// SearchStartedEvent is emitted when a query or page request goes out
type SearchStartedEvent struct {
	Query      string
	Page       int
	Generation uint64
}

func (e SearchStartedEvent) Type() EventType { return EventSearchStarted }

// ResultsLoadedEvent is emitted when a current (non-stale) result is applied
type ResultsLoadedEvent struct {
	Query string
	Page  int
	Count int
	Total int
}

func (e ResultsLoadedEvent) Type() EventType { return EventResultsLoaded }

// SearchFailedEvent is emitted when the current request fails
type SearchFailedEvent struct {
	Query string
	Page  int
	Err   error
}

func (e SearchFailedEvent) Type() EventType { return EventSearchFailed }

// PageChangedEvent is emitted when the current page moves
type PageChangedEvent struct {
	OldPage int
	NewPage int
}

func (e PageChangedEvent) Type() EventType { return EventPageChanged }

// CursorMovedEvent is emitted when the list cursor moves
type CursorMovedEvent struct {
	OldIndex int
	NewIndex int
}

func (e CursorMovedEvent) Type() EventType { return EventCursorMoved }

// ConfigLoadedEvent is emitted when configuration is loaded
type ConfigLoadedEvent struct {
	Path       string
	SourceKind string
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted when configuration is saved
type ConfigSavedEvent struct {
	Path string
}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }

// ErrorEvent is emitted when an error occurs
type ErrorEvent struct {
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }
