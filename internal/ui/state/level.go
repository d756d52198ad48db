package state

import "strings"

// Picker holds the window picker list: the full item set, the filtered view,
// cursor and viewport.
type Picker struct {
	Items          []Item
	Full           []Item
	Filter         string
	Cursor         int
	LastCursor     int
	ViewportOffset int
}

// NewPicker constructs a picker over items with the cursor on the first one.
func NewPicker(items []Item) *Picker {
	p := &Picker{LastCursor: -1}
	p.UpdateItems(items)
	return p
}

// IndexOf returns the visible index for an item identifier.
func (p *Picker) IndexOf(id string) int {
	if id == "" {
		return -1
	}
	for i, item := range p.Items {
		if item.ID == id {
			return i
		}
	}
	for i, item := range p.Items {
		if strings.EqualFold(item.ID, id) {
			return i
		}
	}
	return -1
}

// Focus moves the cursor to id when it is visible.
func (p *Picker) Focus(id string) bool {
	idx := p.IndexOf(id)
	if idx < 0 {
		return false
	}
	p.Cursor = idx
	return true
}

// Selected returns the item under the cursor.
func (p *Picker) Selected() (Item, bool) {
	if p.Cursor < 0 || p.Cursor >= len(p.Items) {
		return Item{}, false
	}
	return p.Items[p.Cursor], true
}

// UpdateItems refreshes the items, keeping the filter and viewport where possible.
func (p *Picker) UpdateItems(items []Item) {
	prevOffset := p.ViewportOffset
	p.Full = CloneItems(items)
	p.applyFilter()
	if len(p.Items) == 0 {
		p.ViewportOffset = 0
		return
	}
	if prevOffset < 0 || prevOffset > len(p.Items)-1 {
		p.ViewportOffset = 0
		return
	}
	p.ViewportOffset = prevOffset
}
