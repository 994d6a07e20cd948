// Package dictionary indexes the DICOM data dictionary (PS3.6): tag to
// metadata, name to tag, and UID to human-readable name. It backs both the
// condition parser's name resolution and the IOD validator's reporting.
package dictionary

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jpfielding/dicomval/pkg/dicos/tag"
)

// Tag re-exports the shared DICOM tag type.
type Tag = tag.Tag

// Entry is one dictionary record: the attribute's name, value
// representation, value multiplicity, and any extra flags.
type Entry struct {
	Name string `json:"name"`
	VR   string `json:"vr"`
	VM   string `json:"vm"`
	Prop string `json:"prop"`
}

// Index is an immutable, process-wide lookup built once from the
// dictionary JSON. It is safe for concurrent read access.
type Index struct {
	byTag    map[Tag]Entry
	byName   map[string]Tag
	uidNames map[string]string
}

// rawDictEntry mirrors one dict_info.json value: "(GGGG,EEEE)" -> Entry.
type rawDictEntry struct {
	Name string `json:"name"`
	VR   string `json:"vr"`
	VM   string `json:"vm"`
	Prop string `json:"prop"`
}

// New builds an Index from the raw dict_info.json and uid_info.json bytes.
// uidJSON may be nil, in which case UID name lookups always miss.
func New(dictJSON, uidJSON []byte) (*Index, error) {
	var raw map[string]rawDictEntry
	if err := json.Unmarshal(dictJSON, &raw); err != nil {
		return nil, fmt.Errorf("parsing dictionary JSON: %w", err)
	}

	idx := &Index{
		byTag:    make(map[Tag]Entry, len(raw)),
		byName:   make(map[string]Tag, len(raw)),
		uidNames: make(map[string]string),
	}

	for key, entry := range raw {
		t, ok := ParseTagString(key)
		if !ok {
			continue
		}
		e := Entry{Name: entry.Name, VR: entry.VR, VM: entry.VM, Prop: entry.Prop}
		idx.byTag[t] = e
		if e.Name != "" {
			idx.byName[normalizeName(e.Name)] = t
		}
	}

	if uidJSON != nil {
		var categories map[string]map[string]string
		if err := json.Unmarshal(uidJSON, &categories); err != nil {
			return nil, fmt.Errorf("parsing UID JSON: %w", err)
		}
		for _, uids := range categories {
			for uid, name := range uids {
				idx.uidNames[uid] = name
			}
		}
	}

	return idx, nil
}

// LookupByTag returns the dictionary entry for t, if known.
func (idx *Index) LookupByTag(t Tag) (Entry, bool) {
	e, ok := idx.byTag[t]
	return e, ok
}

// LookupByName resolves a free-form attribute name to its tag.
//
// It tolerates the forms the standard's prose actually uses: the
// canonical name, a name with the tag embedded in trailing parentheses
// ("Modality (0008,0060)"), a name with its final word dropped ("SOP
// Class" for "SOP Class UID"), and the possessive/non-possessive
// apostrophe variants ("Patient's" vs "Patients").
func (idx *Index) LookupByName(text string) (Tag, bool) {
	text = stripEmbeddedTag(text)
	norm := normalizeName(text)
	if t, ok := idx.byName[norm]; ok {
		return t, true
	}

	// Drop a trailing word and retry: "sop class" -> "sop class uid".
	words := strings.Fields(norm)
	if len(words) > 1 {
		for name, t := range idx.byName {
			nameWords := strings.Fields(name)
			if len(nameWords) == len(words)+1 && samePrefix(nameWords, words) {
				return t, true
			}
		}
	}
	return Tag{}, false
}

// UIDName returns the human-readable name registered for a UID, if any.
func (idx *Index) UIDName(uid string) (string, bool) {
	name, ok := idx.uidNames[uid]
	return name, ok
}

func samePrefix(longer, shorter []string) bool {
	for i, w := range shorter {
		if longer[i] != w {
			return false
		}
	}
	return true
}

// stripEmbeddedTag removes a trailing "(GGGG,EEEE)" literal from text,
// since "Modality (0008,0060)" should resolve exactly like "Modality".
func stripEmbeddedTag(text string) string {
	if i := strings.LastIndexByte(text, '('); i >= 0 {
		if _, ok := ParseTagString(strings.TrimSpace(text[i:])); ok {
			return strings.TrimSpace(text[:i])
		}
	}
	return text
}

// normalizeName lowercases, strips punctuation, and collapses whitespace,
// treating possessive and non-possessive forms as equal ("patient's" and
// "patients" normalize the same way).
func normalizeName(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		switch {
		case r == '\'':
			// drop apostrophes entirely: Patient's == Patients
			continue
		case r >= 'A' && r <= 'Z':
			b.WriteRune(r - 'A' + 'a')
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// ParseTagString parses the canonical "(GGGG,EEEE)" textual form of a tag.
func ParseTagString(s string) (Tag, bool) {
	s = strings.TrimSpace(s)
	if len(s) != 11 || s[0] != '(' || s[5] != ',' || s[10] != ')' {
		return Tag{}, false
	}
	group, ok1 := parseHex16(s[1:5])
	elem, ok2 := parseHex16(s[6:10])
	if !ok1 || !ok2 {
		return Tag{}, false
	}
	return Tag{Group: group, Element: elem}, true
}

func parseHex16(s string) (uint16, bool) {
	var v uint16
	for _, r := range s {
		v <<= 4
		switch {
		case r >= '0' && r <= '9':
			v |= uint16(r - '0')
		case r >= 'A' && r <= 'F':
			v |= uint16(r-'A') + 10
		case r >= 'a' && r <= 'f':
			v |= uint16(r-'a') + 10
		default:
			return 0, false
		}
	}
	return v, true
}

// TagString renders a tag in canonical "(GGGG,EEEE)" form.
func TagString(t Tag) string {
	return fmt.Sprintf("(%04X,%04X)", t.Group, t.Element)
}
