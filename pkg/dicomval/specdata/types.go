// Package specdata loads and represents the IOD and module specification
// tables (PS3.3) that the validator checks datasets against: which modules
// an IOD includes, and which attributes each module requires.
package specdata

// Usage is a module's inclusion rule within an IOD.
type Usage string

const (
	UsageM Usage = "M"
	UsageC Usage = "C"
	UsageU Usage = "U"
)

// AttrType is an attribute's requirement level within a module.
type AttrType string

const (
	Type1  AttrType = "1"
	Type1C AttrType = "1C"
	Type2  AttrType = "2"
	Type2C AttrType = "2C"
	Type3  AttrType = "3"
)

// ModuleRef is one module entry within an IOD: its usage, and (for usage
// C) the English condition text governing inclusion.
type ModuleRef struct {
	Usage     Usage  `json:"usage"`
	Condition string `json:"cond,omitempty"`
}

// IODEntry is one SOP Class's full module set.
type IODEntry struct {
	Title   string               `json:"title"`
	Modules map[string]ModuleRef `json:"modules"`
}

// IODSpecs indexes every known IOD by SOP Class UID.
type IODSpecs struct {
	byUID map[string]IODEntry
}

// Lookup returns the IOD entry for a SOP Class UID.
func (s *IODSpecs) Lookup(sopClassUID string) (IODEntry, bool) {
	e, ok := s.byUID[sopClassUID]
	return e, ok
}

// Attribute is one attribute entry within a module: its type, and (for
// type 1C/2C) the English condition text governing its requirement. Items,
// when non-empty, names the module refs governing each item of a sequence
// attribute, so the validator can recurse into it.
type Attribute struct {
	Type      AttrType `json:"type"`
	Condition string   `json:"cond,omitempty"`
	Items     []string `json:"items,omitempty"`
}

// ModuleEntry is one module's attribute table, keyed by canonical tag
// string ("(GGGG,EEEE)").
type ModuleEntry map[string]Attribute

// ModuleSpecs indexes every known module definition by its reference name.
type ModuleSpecs struct {
	byRef map[string]ModuleEntry
}

// Lookup returns a module's attribute table by reference name.
func (s *ModuleSpecs) Lookup(ref string) (ModuleEntry, bool) {
	e, ok := s.byRef[ref]
	return e, ok
}
