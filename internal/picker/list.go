package picker

import (
	"github.com/GriffinCanCode/hildon-home/internal/domain/views"
)

// List is an in-memory multi-select list of view thumbnails
type List struct {
	items    []views.Item
	selected []bool
}

// NewList creates an empty list
func NewList() *List {
	return &List{}
}

// Append adds an item with its initial selection state
func (l *List) Append(item views.Item) {
	l.items = append(l.items, item)
	l.selected = append(l.selected, item.Selected)
}

// Len returns the number of items
func (l *List) Len() int {
	return len(l.items)
}

// Selected reports whether the item at pos is selected
func (l *List) Selected(pos int) bool {
	if pos < 0 || pos >= len(l.selected) {
		return false
	}
	return l.selected[pos]
}

// SetSelected changes the selection state of the item at pos
func (l *List) SetSelected(pos int, on bool) {
	if pos < 0 || pos >= len(l.selected) {
		return
	}
	l.selected[pos] = on
}

// Toggle flips the selection state of the item at pos
func (l *List) Toggle(pos int) {
	l.SetSelected(pos, !l.Selected(pos))
}

// SelectViews selects exactly the given 1-based views
func (l *List) SelectViews(ids ...int) {
	for i := range l.selected {
		l.selected[i] = false
	}
	for _, id := range ids {
		l.SetSelected(id-1, true)
	}
}

// Item returns the item at pos
func (l *List) Item(pos int) views.Item {
	return l.items[pos]
}

// SelectedViews returns the 1-based views currently selected, in display order
func (l *List) SelectedViews() []int {
	var out []int
	for i, on := range l.selected {
		if on {
			out = append(out, i+1)
		}
	}
	return out
}

var _ views.Picker = (*List)(nil)
