package condition

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/jpfielding/dicomval/pkg/dicomval/dictionary"
)

// Parser turns the English "Condition" prose attached to DICOM attributes
// and modules into Condition trees, caching results by exact source text
// since the same sentence recurs across many modules.
type Parser struct {
	dict  *dictionary.Index
	cache sync.Map // string -> *Condition
}

// NewParser builds a Parser backed by dict for attribute-name resolution.
func NewParser(dict *dictionary.Index) *Parser {
	return &Parser{dict: dict}
}

// Parse converts one English sentence into a Condition, building it lazily
// and caching by the exact source text.
func (p *Parser) Parse(text string) *Condition {
	if v, ok := p.cache.Load(text); ok {
		return v.(*Condition)
	}
	c := p.parse(text)
	p.cache.Store(text, c)
	return c
}

var (
	requiredIfRe = regexp.MustCompile(`(?i)required\s+only\s+if|required\s+if|shall\s+be\s+present\s+if`)
	mayBePresRe  = regexp.MustCompile(`(?i)may\s+be\s+present`)
	mayIfTailRe  = regexp.MustCompile(`(?i)\bif\b\s*(.*)$`)
)

// sentenceEndRe matches a "." that ends a sentence rather than one inside a
// dotted value.
var sentenceEndRe = regexp.MustCompile(`\.(\s|$)`)

func (p *Parser) parse(text string) *Condition {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return newUndetermined(text)
	}

	markerLoc := requiredIfRe.FindStringIndex(trimmed)
	if markerLoc == nil {
		return newUndetermined(text)
	}

	mandatoryStart := markerLoc[1]
	mayLoc := mayBePresRe.FindStringIndex(trimmed)

	var mandatoryText, tailText string
	if mayLoc != nil && mayLoc[0] >= mandatoryStart {
		mandatoryText = trimmed[mandatoryStart:mayLoc[0]]
		tailText = trimmed[mayLoc[0]:]
	} else {
		mandatoryText = trimmed[mandatoryStart:]
	}
	mandatoryText = firstSentence(mandatoryText)

	tree := p.parseCore(mandatoryText)
	if !tree.IsDeterminate() {
		return newUndetermined(text)
	}

	if tailText == "" {
		return &Condition{Type: TypeMN, Tree: tree, Source: text}
	}

	lowerTail := strings.ToLower(tailText)
	if !strings.Contains(lowerTail, " if ") {
		// "May be present otherwise." (or a variant with no "if" clause):
		// optional when the primary condition does not hold.
		return &Condition{Type: TypeMU, Tree: tree, Source: text}
	}

	ifMatch := mayIfTailRe.FindStringSubmatch(tailText)
	if ifMatch == nil {
		return &Condition{Type: TypeMU, Tree: tree, Source: text}
	}
	otherCore := firstSentence(ifMatch[1])
	otherTree := p.parseCore(otherCore)
	if !otherTree.IsDeterminate() {
		return &Condition{Type: TypeMU, Tree: tree, Source: text}
	}
	return &Condition{Type: TypeMC, Tree: tree, OtherCondition: otherTree, Source: text}
}

// firstSentence returns text up to (not including) its first sentence-ending
// "." (one followed by whitespace or the end of text), trimmed, or the whole
// (trimmed) text if it has none. A period inside a dotted value such as a UID
// does not end the sentence.
func firstSentence(text string) string {
	text = strings.TrimSpace(text)
	if loc := sentenceEndRe.FindStringIndex(text); loc != nil {
		text = text[:loc[0]]
	}
	return strings.TrimSpace(strings.Trim(text, ",: "))
}

// parseCore performs the lexical extraction (§4.3.2) and structural
// composition (§4.3.3) of a clause or multi-clause sentence, applying the
// degradation rules (§4.3.4) on failure. Returns Undetermined on any
// unparseable input. A sentence joining more than one clause with "and"/
// "or" ("X is sent and Y is not A or B") is split and composed by
// splitComposite; a single clause falls through to parseClause.
func (p *Parser) parseCore(text string) *Node {
	text = strings.TrimSpace(text)
	text = strings.Trim(text, ".,;: ")
	if text == "" {
		return Undetermined
	}
	if node := p.splitComposite(text); node != nil {
		return node
	}
	return p.parseClause(text)
}

// parseClause parses one clause with exactly one governing operator
// phrase: a "Value N" selector, the operator itself, and whatever
// precedes/follows it. tryListDistribution is tried first for the narrow
// case of one operator shared across a list of subjects.
func (p *Parser) parseClause(text string) *Node {
	index, text := extractValueIndex(text)

	lower := strings.ToLower(text)
	phrase, start, end, ok := findOperatorPhrase(lower)
	if !ok {
		return Undetermined
	}
	left := strings.TrimSpace(text[:start])
	right := strings.TrimSpace(text[end:])

	if node := p.tryListDistribution(phrase, left, index); node != nil {
		return node
	}

	tag, hasTag := p.resolveSubject(left)
	if !hasTag {
		return Undetermined
	}

	var values []string
	switch {
	case phrase.literalValues != nil:
		values = phrase.literalValues
	case phrase.operator == OpPointsTo:
		target, ok := p.resolveSubject(right)
		if !ok {
			return Undetermined
		}
		packed := uint32(target.Group)<<16 | uint32(target.Element)
		values = []string{strconv.FormatUint(uint64(packed), 10)}
	case phrase.wantsValues:
		values = splitValueList(right)
		if len(values) == 0 {
			return Undetermined
		}
	}

	return &Node{
		Kind:     KindAtom,
		Tag:      tag,
		HasTag:   true,
		Index:    index,
		Operator: phrase.operator,
		Values:   values,
	}
}

// splitComposite splits text into independently-parsed clauses joined by
// "and"/"or", grouping "or"-joined clauses as one AND operand each (a
// sentence's "or" groups bind tighter than its "and" joins — see
// groupByAnd). Returns nil when text is a single clause (nothing to
// split), leaving that case to parseClause.
func (p *Parser) splitComposite(text string) *Node {
	segments, connectives, ok := splitClauses(text)
	if !ok {
		return nil
	}
	groups := groupByAnd(segments, connectives)

	var andChildren []*Node
	for _, group := range groups {
		var verifiable []*Node
		for _, seg := range group {
			if node := p.parseClause(seg); node.IsDeterminate() {
				verifiable = append(verifiable, node)
			}
		}
		switch len(verifiable) {
		case 0:
			return Undetermined // degradation: an invalidated AND operand invalidates the whole
		case 1:
			andChildren = append(andChildren, verifiable[0])
		default:
			andChildren = append(andChildren, &Node{Kind: KindOr, Children: verifiable})
		}
	}
	if len(andChildren) == 1 {
		return andChildren[0]
	}
	return &Node{Kind: KindAnd, Children: andChildren}
}

// splitClauses walks text for each operator phrase in turn and returns the
// clause segments plus the and/or connective joining each consecutive
// pair. ok is false when text contains fewer than two clauses (a single
// operator phrase with nothing following it).
func splitClauses(text string) (segments []string, connectives []string, ok bool) {
	cursor := 0
	for {
		lower := strings.ToLower(text[cursor:])
		_, _, pEnd, found := findLeadingOperatorPhrase(lower)
		if !found {
			break
		}
		phraseEnd := cursor + pEnd

		tail := text[phraseEnd:]
		_, p2Start, _, found2 := findLeadingOperatorPhrase(strings.ToLower(tail))
		if !found2 {
			segments = append(segments, strings.TrimSpace(text[cursor:]))
			break
		}

		loc, connective, found3 := lastConnectiveBeforeNextSubject(tail[:p2Start])
		if !found3 {
			// The next operator match isn't a genuine second clause (no
			// and/or separates it from this one, e.g. it's inside this
			// clause's own value list); stop splitting here.
			segments = append(segments, strings.TrimSpace(text[cursor:]))
			break
		}

		clauseEnd := phraseEnd + loc[0]
		nextCursor := phraseEnd + loc[1]
		segments = append(segments, strings.TrimSpace(text[cursor:clauseEnd]))
		connectives = append(connectives, connective)
		cursor = nextCursor
	}
	if len(segments) < 2 {
		return nil, nil, false
	}
	return segments, connectives, true
}

// lastConnectiveBeforeNextSubject finds the and/or connective that
// introduces the next clause's subject within between, the text strictly
// between one clause's operator phrase and the next one's. If between
// contains a (GGGG,EEEE) tag literal, that is where the next subject
// starts, so the governing connective is the LAST and/or word occurring
// before it — an earlier and/or inside between belongs to this clause's
// own trailing value list ("ORIGINAL or MIXED and Y is ..."). With no tag
// literal in between, the last connective found anywhere in it is used.
func lastConnectiveBeforeNextSubject(between string) (loc []int, connective string, ok bool) {
	matches := connectiveWordRe.FindAllStringSubmatchIndex(between, -1)
	if len(matches) == 0 {
		return nil, "", false
	}
	limit := len(between)
	if tagLoc := tagLiteralRe.FindStringIndex(between); tagLoc != nil {
		limit = tagLoc[0]
	}
	var chosen []int
	for _, m := range matches {
		if m[0] >= limit {
			break
		}
		chosen = m
	}
	if chosen == nil {
		chosen = matches[len(matches)-1]
	}
	return chosen, strings.ToLower(between[chosen[2]:chosen[3]]), true
}

// groupByAnd groups consecutive segments joined by "or" into one slice
// each, starting a new group at every "and" — the shape spec.md §4.3.3
// describes as "or" binding tighter than "and" unless the "or" group
// shares a single trailing operator, the case this same grouping serves
// for tryListDistribution's subject lists.
func groupByAnd(segments, connectives []string) [][]string {
	if len(segments) == 0 {
		return nil
	}
	groups := [][]string{{segments[0]}}
	for i, conn := range connectives {
		if conn == "or" {
			last := len(groups) - 1
			groups[last] = append(groups[last], segments[i+1])
		} else {
			groups = append(groups, []string{segments[i+1]})
		}
	}
	return groups
}

// tryListDistribution recognizes "X, Y, and Z are not present" and
// "either X or Y is present" style clauses, distributing a shared
// presence/absence operator across every listed subject, nesting any
// "or" sub-groups inside the enclosing "and" the way groupByAnd does for
// splitComposite ("A or B, and C are present" -> AND(OR(A,B), C)).
// Returns nil when left does not look like a subject list.
func (p *Parser) tryListDistribution(phrase operatorPhrase, left string, index int) *Node {
	if phrase.wantsValues || phrase.literalValues != nil {
		return nil
	}
	stripped := left
	lowerLeft := strings.ToLower(left)
	if strings.HasPrefix(lowerLeft, "either ") {
		stripped = left[len("either "):]
	} else if strings.HasPrefix(lowerLeft, "both ") {
		stripped = left[len("both "):]
	}

	segments, connectives := splitSubjectSegments(stripped)
	if len(segments) < 2 {
		return nil
	}
	groups := groupByAnd(segments, connectives)

	var andChildren []*Node
	for _, group := range groups {
		node := p.resolveSubjectGroup(group, phrase, index)
		if node == nil {
			return Undetermined // degradation: unverifiable group invalidates the AND
		}
		andChildren = append(andChildren, node)
	}
	if len(andChildren) == 1 {
		return andChildren[0]
	}
	return &Node{Kind: KindAnd, Children: andChildren}
}

// resolveSubjectGroup resolves one OR-group of subject names sharing
// phrase's operator, applying the OR degradation rule: an unverifiable
// name is dropped, and the group is kept if at least one remains. Returns
// nil when nothing in the group resolves.
func (p *Parser) resolveSubjectGroup(names []string, phrase operatorPhrase, index int) *Node {
	var atoms []*Node
	for _, name := range names {
		tag, ok := p.resolveSubject(name)
		if !ok {
			continue
		}
		atoms = append(atoms, &Node{
			Kind:     KindAtom,
			Tag:      tag,
			HasTag:   true,
			Index:    index,
			Operator: phrase.operator,
		})
	}
	switch len(atoms) {
	case 0:
		return nil
	case 1:
		return atoms[0]
	default:
		return &Node{Kind: KindOr, Children: atoms}
	}
}

// splitSubjectSegments splits a comma/and/or-joined subject list ("X, Y
// and Z", "X or Y, and Z") into its segments and the and/or connective
// joining each consecutive pair. A bare comma with no and/or word of its
// own takes the type of the nearest explicit and/or word to its right,
// matching the common list idiom "X, Y and Z" (every comma means "and",
// the connective named only once, before the last item).
func splitSubjectSegments(text string) (segments []string, connectives []string) {
	matches := listConnectiveRe.FindAllStringSubmatchIndex(text, -1)
	tagLocs := tagLiteralRe.FindAllStringIndex(text, -1)
	cursor := 0
	raw := make([]string, 0, len(matches))
	for _, m := range matches {
		// the comma inside a "(GGGG,EEEE)" literal is not a list separator
		inTag := false
		for _, tl := range tagLocs {
			inTag = inTag || (m[0] > tl[0] && m[0] < tl[1])
		}
		if inTag {
			continue
		}
		segments = append(segments, strings.TrimSpace(text[cursor:m[0]]))
		word := ""
		if m[2] >= 0 && m[3] >= 0 {
			word = strings.ToLower(text[m[2]:m[3]])
		} else if m[4] >= 0 && m[5] >= 0 {
			word = strings.ToLower(text[m[4]:m[5]])
		}
		raw = append(raw, word)
		cursor = m[1]
	}
	segments = append(segments, strings.TrimSpace(text[cursor:]))

	connectives = make([]string, len(raw))
	last := "and"
	for i := len(raw) - 1; i >= 0; i-- {
		if raw[i] == "" {
			connectives[i] = last
		} else {
			connectives[i] = raw[i]
			last = raw[i]
		}
	}
	return segments, connectives
}

// listConnectiveRe tokenizes a subject list into its separators: a comma
// fused with a following and/or word, a bare and/or word, or a bare
// comma (submatch groups empty for the bare-comma case).
var listConnectiveRe = regexp.MustCompile(`(?i),\s*(and|or)\s+|\b(and|or)\b\s+|,\s*`)

var fillerPrefixes = []string{"the value of ", "value of ", "the ", "value "}

// resolveSubject resolves text naming a single attribute, either via an
// embedded tag literal (which wins over any accompanying name) or via
// dictionary name lookup.
func (p *Parser) resolveSubject(text string) (Tag, bool) {
	text = strings.TrimSpace(text)
	if t, ok, _ := extractFirstTagLiteral(text); ok {
		return t, true
	}
	cleaned := text
	lower := strings.ToLower(cleaned)
	for _, f := range fillerPrefixes {
		if strings.HasPrefix(lower, f) {
			cleaned = cleaned[len(f):]
			lower = strings.ToLower(cleaned)
		}
	}
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" || p.dict == nil {
		return Tag{}, false
	}
	return p.dict.LookupByName(cleaned)
}

// Describe renders a human-readable summary of a parsed Condition, useful
// for CLI diagnostics (cmd/dcmvalidate parse-condition).
func (c *Condition) Describe() string {
	if c == nil {
		return "<nil>"
	}
	if c.OtherCondition != nil {
		return fmt.Sprintf("type=%s tree=%s other=%s", c.Type, c.Tree, c.OtherCondition)
	}
	return fmt.Sprintf("type=%s tree=%s", c.Type, c.Tree)
}
