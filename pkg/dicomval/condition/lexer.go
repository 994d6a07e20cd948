package condition

import (
	"regexp"
	"strconv"
	"strings"
)

// tagLiteralRe matches the canonical "(GGGG,EEEE)" tag literal.
var tagLiteralRe = regexp.MustCompile(`\(([0-9A-Fa-f]{4}),([0-9A-Fa-f]{4})\)`)

// valueIndexRe matches the "Value N" phrase that selects a 1-based value
// index within a multi-valued attribute.
var valueIndexRe = regexp.MustCompile(`(?i)\bvalue\s+(\d+)\b`)

// operatorPhrase is one entry of the operator alias table. Phrases are
// tried longest-first so that e.g. "is present and has a value" is matched
// before the shorter "is present".
type operatorPhrase struct {
	phrase   string
	operator Operator
	// wantsValues reports whether text after the phrase should be parsed
	// as a value list.
	wantsValues bool
	// literalValues, when non-nil, are the fixed values the operator
	// implies regardless of any following text (e.g. "is non-zero" -> 0).
	literalValues []string
}

// operatorPhrases is grounded on spec.md's §4.3.2 operator alias table. The
// order of entries does not affect which phrase is chosen:
// findOperatorPhrase picks the longest match and findLeadingOperatorPhrase
// the earliest one.
var operatorPhrases = []operatorPhrase{
	{"is present and has a value of", OpEquals, true, nil},
	{"is present and the value is", OpEquals, true, nil},
	{"is present and has a value", OpPresentNonEmpty, false, nil},
	{"is non-null", OpPresentNonEmpty, false, nil},
	{"non-null", OpPresentNonEmpty, false, nil},
	{"is present", OpPresent, false, nil},
	{"are present", OpPresent, false, nil},
	{"is sent", OpPresent, false, nil},

	{"is not present", OpAbsent, false, nil},
	{"is absent", OpAbsent, false, nil},
	{"is not sent", OpAbsent, false, nil},
	{"not present", OpAbsent, false, nil},

	{"points to", OpPointsTo, true, nil},

	{"is zero-length", OpEquals, false, []string{""}},
	{"is non-zero length", OpNotEquals, false, []string{""}},
	{"is not zero length", OpNotEquals, false, []string{""}},
	{"non-zero length", OpNotEquals, false, []string{""}},

	{"has a value of more than", OpGreater, true, nil},
	{"has a value greater than", OpGreater, true, nil},
	{"value of more than", OpGreater, true, nil},
	{"is greater than", OpGreater, true, nil},
	{"greater than zero", OpGreater, false, []string{"0"}},
	{"greater than", OpGreater, true, nil},
	{"is non-zero", OpNotEquals, false, []string{"0"}},
	{"non-zero", OpNotEquals, false, []string{"0"}},

	{"less than", OpLess, true, nil},

	{"is not equal to", OpNotEquals, true, nil},
	{"is not equal", OpNotEquals, true, nil},
	{"not equal to", OpNotEquals, true, nil},
	{"value is not", OpNotEquals, true, nil},
	{"other than", OpNotEquals, true, nil},
	{"is not", OpNotEquals, true, nil},

	{"has a value of", OpEquals, true, nil},
	{"present with a value of", OpEquals, true, nil},
	{"is equal to", OpEquals, true, nil},
	{"is equal", OpEquals, true, nil},
	{"is set to", OpEquals, true, nil},
	{"equals", OpEquals, true, nil},
	{"equal to", OpEquals, true, nil},
	{"is", OpEquals, true, nil},
	{"=", OpEquals, true, nil},
}

// findOperatorPhrase scans text (already lowercased) for every phrase in
// the alias table and returns the LONGEST match found anywhere (ties
// broken by earliest position). A clause carries exactly one true
// operator; the longer phrase is always the more specific, correct one
// (e.g. "other than" over the generic "is" it happens to follow, or
// "has a value of more than" over the "has a value of" it contains).
func findOperatorPhrase(lower string) (operatorPhrase, int, int, bool) {
	bestIdx := -1
	var best operatorPhrase
	var bestEnd int
	for _, p := range operatorPhrases {
		idx := indexWord(lower, p.phrase)
		if idx < 0 {
			continue
		}
		end := idx + len(p.phrase)
		if bestIdx == -1 || len(p.phrase) > len(best.phrase) ||
			(len(p.phrase) == len(best.phrase) && idx < bestIdx) {
			bestIdx = idx
			best = p
			bestEnd = end
		}
	}
	if bestIdx == -1 {
		return operatorPhrase{}, 0, 0, false
	}
	return best, bestIdx, bestEnd, true
}

// connectiveWordRe matches an "and"/"or" joining word, with an optional
// fused leading comma ("X, and Y" / "X, Y"'s own trailing "and Z").
var connectiveWordRe = regexp.MustCompile(`(?i)(?:,\s*)?\b(and|or)\b\s*`)

// findLeadingOperatorPhrase returns the operator phrase occurring at the
// EARLIEST position in lower, ties broken by the longest phrase sharing
// that start (so an overlapping longer phrase like "has a value of more
// than" still wins over the "has a value of" it contains). Unlike
// findOperatorPhrase's globally-longest rule — right for picking the one
// true operator inside an already-isolated clause — composite splitting
// walks a sentence left to right hunting clause boundaries, so it needs
// the first phrase encountered, not the longest one anywhere in the text.
func findLeadingOperatorPhrase(lower string) (operatorPhrase, int, int, bool) {
	bestIdx := -1
	var best operatorPhrase
	var bestEnd int
	for _, p := range operatorPhrases {
		idx := indexWord(lower, p.phrase)
		if idx < 0 {
			continue
		}
		end := idx + len(p.phrase)
		if bestIdx == -1 || idx < bestIdx || (idx == bestIdx && len(p.phrase) > len(best.phrase)) {
			bestIdx = idx
			best = p
			bestEnd = end
		}
	}
	if bestIdx == -1 {
		return operatorPhrase{}, 0, 0, false
	}
	return best, bestIdx, bestEnd, true
}

// indexWord is strings.Index restricted to matches that neither start nor
// end inside a longer word, so the phrase "is" is not found in "precision".
func indexWord(s, phrase string) int {
	inWord := func(i int) bool { return i >= 0 && i < len(s) && s[i] >= 'a' && s[i] <= 'z' }
	for from := 0; ; {
		i := strings.Index(s[from:], phrase)
		if i < 0 {
			return -1
		}
		i += from
		if !(inWord(i-1) && inWord(i)) && !(inWord(i+len(phrase)-1) && inWord(i+len(phrase))) {
			return i
		}
		from = i + 1
	}
}

// extractValueIndex finds a "Value N" phrase and returns the zero-based
// index plus the text with the phrase removed.
func extractValueIndex(text string) (int, string) {
	loc := valueIndexRe.FindStringSubmatchIndex(text)
	if loc == nil {
		return 0, text
	}
	n, err := strconv.Atoi(text[loc[2]:loc[3]])
	if err != nil || n <= 0 {
		return 0, text
	}
	cleaned := text[:loc[0]] + " " + text[loc[1]:]
	return n - 1, strings.Join(strings.Fields(cleaned), " ")
}

// extractFirstTagLiteral returns the first (GGGG,EEEE) literal in text, and
// the text with it removed.
func extractFirstTagLiteral(text string) (Tag, bool, string) {
	loc := tagLiteralRe.FindStringSubmatchIndex(text)
	if loc == nil {
		return Tag{}, false, text
	}
	groupHex := text[loc[2]:loc[3]]
	elemHex := text[loc[4]:loc[5]]
	t, ok := dictParseTag(groupHex, elemHex)
	if !ok {
		return Tag{}, false, text
	}
	rest := text[:loc[0]] + " " + text[loc[1]:]
	return t, true, strings.Join(strings.Fields(rest), " ")
}

func dictParseTag(groupHex, elemHex string) (Tag, bool) {
	g, err1 := strconv.ParseUint(groupHex, 16, 16)
	e, err2 := strconv.ParseUint(elemHex, 16, 16)
	if err1 != nil || err2 != nil {
		return Tag{}, false
	}
	return Tag{Group: uint16(g), Element: uint16(e)}, true
}

// splitValueList splits the right-hand side of an operator phrase into its
// literal values, honoring the "V", "V or V", "V, V or V", "V, V, and V"
// forms, stripping quotes, trailing punctuation, and parenthetical asides.
func splitValueList(text string) []string {
	text = strings.TrimSpace(text)
	text = strings.TrimRight(text, ".:;, ")
	if text == "" {
		return nil
	}
	// Normalize connectives to commas, handling the comma-already-present
	// form ("A, B, or C") before the bare form ("A or B") so a shared
	// comma isn't duplicated.
	text = strings.ReplaceAll(text, ", and ", ", ")
	text = strings.ReplaceAll(text, ", or ", ", ")
	text = strings.ReplaceAll(text, " and ", ", ")
	text = strings.ReplaceAll(text, " or ", ", ")
	// keep the comma inside a "(GGGG,EEEE)" value from splitting it in two
	text = tagLiteralRe.ReplaceAllString(text, "($1\x00$2)")
	parts := strings.Split(text, ",")
	values := make([]string, 0, len(parts))
	for _, p := range parts {
		v := cleanValueLiteral(strings.ReplaceAll(p, "\x00", ","))
		if v != "" {
			values = append(values, v)
		}
	}
	return values
}

// cleanValueLiteral trims whitespace, strips all leading and trailing
// straight or smart quotes, and removes a trailing parenthetical explanation such as
// "SD (Scanned Document)" -> "SD".
func cleanValueLiteral(v string) string {
	v = strings.TrimSpace(v)
	v = strings.Trim(v, `"'`)
	v = strings.Trim(v, "“”‘’")
	v = strings.TrimSpace(v)
	if idx := strings.LastIndexByte(v, '('); idx > 0 && strings.HasSuffix(v, ")") {
		if !tagLiteralRe.MatchString(v[idx:]) {
			v = strings.TrimSpace(v[:idx])
		}
	}
	return v
}
