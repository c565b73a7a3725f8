package view

// Tab selects which backing list is active
type Tab int

const (
	// TabPrimary shows the filtered and sorted primary feed
	TabPrimary Tab = iota
	// TabSearch shows platform search results
	TabSearch
	// TabHistory shows watched items
	TabHistory
)

// Tabs lists every tab in display order
var Tabs = []Tab{TabPrimary, TabSearch, TabHistory}

// String returns the tab label shown in the tab bar
func (t Tab) String() string {
	switch t {
	case TabPrimary:
		return "Current View"
	case TabSearch:
		return "Search"
	case TabHistory:
		return "History"
	default:
		return "Unknown"
	}
}

// Valid reports whether t is one of the known tabs
func (t Tab) Valid() bool {
	return t >= TabPrimary && t <= TabHistory
}

// Next returns the following tab, wrapping around
func (t Tab) Next() Tab {
	return Tab((int(t) + 1) % len(Tabs))
}

// Previous returns the preceding tab, wrapping around
func (t Tab) Previous() Tab {
	return Tab((int(t) + len(Tabs) - 1) % len(Tabs))
}
