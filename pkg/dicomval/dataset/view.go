// Package dataset defines the read-only dataset contract the condition
// evaluator and IOD validator operate against, plus two implementations:
// an in-memory MapView for tests and synthetic datasets, and a DicosView
// adapter over the teacher's own pkg/dicos decoder output.
package dataset

import "github.com/jpfielding/dicomval/pkg/dicomval/dictionary"

// Tag re-exports the shared DICOM tag type.
type Tag = dictionary.Tag

// View is a read-only view over one DICOM dataset (or sequence item).
// Implementations never mutate the underlying data and must be safe for
// concurrent use by readers that each own their own View.
type View interface {
	// Has reports whether t has an entry at all, empty or not.
	Has(t Tag) bool
	// IsEmpty reports whether t is present but carries zero-length value.
	// Calling IsEmpty on an absent tag returns false.
	IsEmpty(t Tag) bool
	// ValueCount returns the number of values t holds (0 if absent).
	ValueCount(t Tag) int
	// ValueAt returns the string form of the value at the given zero-based
	// index, or false if the tag is absent or the index is out of range.
	ValueAt(t Tag, index int) (string, bool)
	// Items returns the nested dataset views for a sequence tag, in order.
	// Returns nil for a non-sequence or absent tag.
	Items(t Tag) []View
}
