package views

import "outcomepicker/internal/domain"

// Row is one visible line of the results list
type Row struct {
	Outcome domain.Outcome
	Checked bool
	Cursor  bool
}

// PickerProps is the read-only snapshot the renderer draws from
type PickerProps struct {
	Title  string
	Width  int
	Height int

	SearchInput   string // rendered text input
	SearchFocused bool
	Query         string

	Rows        []Row // visible rows only
	PageEntries int   // entries on the current page
	Loading     bool
	Spinner     string
	Err         error

	Page      int // 0-based
	PageCount int
	PageSize  int
	Total     int

	SelectedCount int
	AllChecked    bool
	SomeChecked   bool

	ShowDescriptions bool
	ShowLabels       bool

	Status string
	Help   string
}
