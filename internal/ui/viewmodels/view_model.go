package viewmodels

import (
	"outcomepicker/internal/config"
	"outcomepicker/internal/ui/services/navigation"
	"outcomepicker/internal/ui/services/search"
	"outcomepicker/internal/ui/services/selection"
	"outcomepicker/internal/ui/views"
)

// Props is what the rendering layer receives: a read-only snapshot plus
// callbacks for every mutation a view may trigger
type Props struct {
	View views.PickerProps

	OnToggle    func(id string)
	OnSelectAll func()
	OnPage      func(page int) (search.Request, bool)
}

// Chrome carries the pieces rendered by bubbles components
type Chrome struct {
	Width         int
	Height        int
	SearchInput   string
	SearchFocused bool
	Spinner       string
	Status        string
	Help          string
}

// ViewModel transforms service state into view-ready props
type ViewModel struct {
	config    *config.Config
	selection *selection.Service
	search    *search.Service
	nav       *navigation.Service
}

// NewViewModel creates a new view model
func NewViewModel(cfg *config.Config, sel *selection.Service, srch *search.Service, nav *navigation.Service) *ViewModel {
	return &ViewModel{
		config:    cfg,
		selection: sel,
		search:    srch,
		nav:       nav,
	}
}

// Build snapshots the current state
func (vm *ViewModel) Build(chrome Chrome) Props {
	entries := vm.search.Entries()
	pageIDs := vm.search.IDs()

	start, end := vm.nav.VisibleRange()
	if end > len(entries) {
		end = len(entries)
	}
	if start > end {
		start = end
	}
	rows := make([]views.Row, 0, end-start)
	for i := start; i < end; i++ {
		rows = append(rows, views.Row{
			Outcome: entries[i].Sanitized(),
			Checked: vm.selection.IsSelected(entries[i].ID),
			Cursor:  i == vm.nav.Cursor(),
		})
	}

	return Props{
		View: views.PickerProps{
			Title:            vm.config.Picker.Title,
			Width:            chrome.Width,
			Height:           chrome.Height,
			SearchInput:      chrome.SearchInput,
			SearchFocused:    chrome.SearchFocused,
			Query:            vm.search.Query(),
			Rows:             rows,
			PageEntries:      len(entries),
			Loading:          vm.search.Loading(),
			Spinner:          chrome.Spinner,
			Err:              vm.search.Err(),
			Page:             vm.search.Page(),
			PageCount:        vm.search.PageCount(),
			PageSize:         vm.search.PageSize(),
			Total:            vm.search.Total(),
			SelectedCount:    vm.selection.Count(),
			AllChecked:       vm.selection.AllSelected(pageIDs),
			SomeChecked:      vm.selection.SomeSelected(pageIDs),
			ShowDescriptions: vm.config.UISettings.ShowDescriptions,
			ShowLabels:       vm.config.UISettings.ShowLabels,
			Status:           chrome.Status,
			Help:             chrome.Help,
		},
		OnToggle:    vm.selection.Toggle,
		OnSelectAll: func() { vm.selection.ToggleAll(pageIDs) },
		OnPage:      vm.search.SetPage,
	}
}
