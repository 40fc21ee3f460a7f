package ui

import (
	"github.com/Faultbox/blockfield/internal/engine/text"
)

// MapSelector is a dropdown of available maps. The first row is a title;
// item rows follow it.
type MapSelector struct {
	Open bool

	items    []string
	cursor   int
	selected string
}

// NewMapSelector creates a closed selector.
func NewMapSelector() *MapSelector {
	return &MapSelector{}
}

// SetItems replaces the list, keeping the cursor on the selected map when
// it is still present.
func (m *MapSelector) SetItems(items []string) {
	m.items = append(m.items[:0], items...)
	m.cursor = 0
	for i, it := range m.items {
		if it == m.selected {
			m.cursor = i
		}
	}
}

// Items returns the listed map names.
func (m *MapSelector) Items() []string {
	return m.items
}

// SetSelected marks name as the active map.
func (m *MapSelector) SetSelected(name string) {
	m.selected = name
	for i, it := range m.items {
		if it == name {
			m.cursor = i
		}
	}
}

// Selected returns the active map name.
func (m *MapSelector) Selected() string {
	return m.selected
}

// Toggle opens or closes the dropdown.
func (m *MapSelector) Toggle() {
	m.Open = !m.Open
}

// Next moves the cursor down, wrapping.
func (m *MapSelector) Next() {
	if len(m.items) == 0 {
		return
	}
	m.cursor = (m.cursor + 1) % len(m.items)
}

// Prev moves the cursor up, wrapping.
func (m *MapSelector) Prev() {
	if len(m.items) == 0 {
		return
	}
	m.cursor = (m.cursor - 1 + len(m.items)) % len(m.items)
}

// Confirm selects the item under the cursor and closes the dropdown.
// Returns the chosen name and whether it differs from the previous choice.
func (m *MapSelector) Confirm() (string, bool) {
	if !m.Open || len(m.items) == 0 {
		return "", false
	}
	return m.choose(m.cursor)
}

// Click selects the item drawn at panel row. Row 0 is the title.
func (m *MapSelector) Click(row int) (string, bool) {
	i := row - 1
	if !m.Open || i < 0 || i >= len(m.items) {
		return "", false
	}
	m.cursor = i
	return m.choose(i)
}

func (m *MapSelector) choose(i int) (string, bool) {
	name := m.items[i]
	changed := name != m.selected
	m.selected = name
	m.Open = false
	return name, changed
}

// Lines renders the dropdown rows.
func (m *MapSelector) Lines() []text.Line {
	title := "Map: " + m.selected
	if m.selected == "" {
		title = "Map: (none)"
	}
	if !m.Open {
		return []text.Line{{Text: title + "  [M]"}}
	}

	lines := make([]text.Line, 0, len(m.items)+1)
	lines = append(lines, text.Line{Text: title, Color: colorDim})
	if len(m.items) == 0 {
		return append(lines, text.Line{Text: "  no maps found", Color: colorBad})
	}
	for i, it := range m.items {
		prefix := "  "
		if it == m.selected {
			prefix = "* "
		}
		lines = append(lines, text.Line{Text: prefix + it, Highlight: i == m.cursor})
	}
	return lines
}
