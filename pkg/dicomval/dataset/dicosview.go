package dataset

import (
	"strconv"
	"strings"

	"github.com/jpfielding/dicomval/pkg/dicos"
)

// DicosView adapts a *dicos.Dataset (the teacher's own DICOM/DICOS decoder
// output) to the View contract, so a file read with dicos.ReadFile can be
// validated directly without an intermediate copy. This is the validator's
// real ingestion path; MapView exists only for tests and synthetic fixtures.
type DicosView struct {
	ds *dicos.Dataset
}

// NewDicosView wraps ds. A nil ds is treated as an empty dataset.
func NewDicosView(ds *dicos.Dataset) *DicosView {
	return &DicosView{ds: ds}
}

func (v *DicosView) element(t Tag) (*dicos.Element, bool) {
	if v.ds == nil {
		return nil, false
	}
	return v.ds.FindElement(t.Group, t.Element)
}

func (v *DicosView) Has(t Tag) bool {
	_, ok := v.element(t)
	return ok
}

func (v *DicosView) IsEmpty(t Tag) bool {
	elem, ok := v.element(t)
	if !ok {
		return false
	}
	if items, isSeq := elem.Value.([]*dicos.Dataset); isSeq {
		return len(items) == 0
	}
	return v.valueCount(elem) == 0
}

func (v *DicosView) ValueCount(t Tag) int {
	elem, ok := v.element(t)
	if !ok {
		return 0
	}
	return v.valueCount(elem)
}

func (v *DicosView) ValueAt(t Tag, index int) (string, bool) {
	elem, ok := v.element(t)
	if !ok || index < 0 {
		return "", false
	}
	values := v.stringValues(elem)
	if index >= len(values) {
		return "", false
	}
	return values[index], true
}

func (v *DicosView) Items(t Tag) []View {
	elem, ok := v.element(t)
	if !ok {
		return nil
	}
	items, ok := elem.Value.([]*dicos.Dataset)
	if !ok {
		return nil
	}
	views := make([]View, len(items))
	for i, item := range items {
		views[i] = NewDicosView(item)
	}
	return views
}

func (v *DicosView) valueCount(elem *dicos.Element) int {
	return len(v.stringValues(elem))
}

// stringValues renders an element's value as its component value strings,
// splitting multi-valued string VRs (CS, IS, DS, ...) on the DICOM "\"
// delimiter, per PS3.5 §6.4. An empty (zero-length) element yields an empty
// slice, not a one-element slice holding "".
func (v *DicosView) stringValues(elem *dicos.Element) []string {
	if elem == nil {
		return nil
	}
	switch val := elem.Value.(type) {
	case string:
		if val == "" {
			return nil
		}
		return strings.Split(val, `\`)
	case []string:
		return val
	case []*dicos.Dataset:
		return nil
	}
	if ints, ok := elem.GetInts(); ok {
		out := make([]string, len(ints))
		for i, n := range ints {
			out[i] = strconv.Itoa(n)
		}
		return out
	}
	if floats, ok := elem.GetFloats(); ok {
		out := make([]string, len(floats))
		for i, f := range floats {
			out[i] = strconv.FormatFloat(f, 'g', -1, 64)
		}
		return out
	}
	if n, ok := elem.GetInt(); ok {
		return []string{strconv.Itoa(n)}
	}
	return nil
}
