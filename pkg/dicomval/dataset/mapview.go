package dataset

import "github.com/google/uuid"

// entry is the internal record for one tag in a MapView.
type entry struct {
	values []string
	items  []View
}

// MapView is an in-memory View, built directly by tests and by any caller
// synthesizing a dataset without going through the teacher's DICOM codec.
type MapView struct {
	entries map[Tag]entry
}

// NewMapView returns an empty MapView.
func NewMapView() *MapView {
	return &MapView{entries: make(map[Tag]entry)}
}

// SetValue records one or more values for t. A tag with zero values is
// present-but-empty, distinct from an absent tag.
func (v *MapView) SetValue(t Tag, values ...string) *MapView {
	v.entries[t] = entry{values: values}
	return v
}

// SetEmpty marks t present with a zero-length value.
func (v *MapView) SetEmpty(t Tag) *MapView {
	v.entries[t] = entry{values: []string{}}
	return v
}

// SetSequence records t as a sequence holding the given item views, in
// order.
func (v *MapView) SetSequence(t Tag, items ...View) *MapView {
	v.entries[t] = entry{items: items}
	return v
}

// Delete removes t entirely, as if it had never been set.
func (v *MapView) Delete(t Tag) *MapView {
	delete(v.entries, t)
	return v
}

func (v *MapView) Has(t Tag) bool {
	_, ok := v.entries[t]
	return ok
}

func (v *MapView) IsEmpty(t Tag) bool {
	e, ok := v.entries[t]
	if !ok {
		return false
	}
	return len(e.values) == 0 && len(e.items) == 0
}

func (v *MapView) ValueCount(t Tag) int {
	return len(v.entries[t].values)
}

func (v *MapView) ValueAt(t Tag, index int) (string, bool) {
	e, ok := v.entries[t]
	if !ok || index < 0 || index >= len(e.values) {
		return "", false
	}
	return e.values[index], true
}

func (v *MapView) Items(t Tag) []View {
	return v.entries[t].items
}

// NewFixtureInstanceUID synthesizes a SOP Instance UID for a synthetic test
// dataset, rooted under a private test arc so it can never collide with a
// real assigned UID.
func NewFixtureInstanceUID() string {
	return "2.25." + uuid.New().String()
}
