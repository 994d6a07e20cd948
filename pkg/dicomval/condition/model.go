// Package condition parses the free-form English "Required if ..." clauses
// attached to conditional DICOM attributes and modules into an executable
// condition tree, and evaluates that tree against a dataset.
package condition

import (
	"fmt"
	"strings"

	"github.com/jpfielding/dicomval/pkg/dicomval/dictionary"
)

// Tag re-exports the shared DICOM tag type.
type Tag = dictionary.Tag

// Operator is one of the comparison/presence operators a condition atom can
// carry.
type Operator string

const (
	OpPresent         Operator = "+"
	OpPresentNonEmpty Operator = "++"
	OpAbsent          Operator = "-"
	OpEquals          Operator = "="
	OpNotEquals       Operator = "!="
	OpGreater         Operator = ">"
	OpLess            Operator = "<"
	OpPointsTo        Operator = "=>"
	OpNone            Operator = "*"
)

// Kind discriminates the shape of a Node: a single comparison atom, an
// AND/OR composite of atoms, or an undetermined (unparseable) placeholder.
type Kind int

const (
	KindAtom Kind = iota
	KindAnd
	KindOr
	KindUndetermined
)

// Node is one node of a condition tree. Atom fields (Tag, Index, Operator,
// Values) are meaningful only when Kind == KindAtom; Children is meaningful
// only for KindAnd/KindOr.
//
// Only the "=", "!=", ">", "<", "=>" operators ever carry Values.
type Node struct {
	Kind     Kind
	Tag      Tag
	HasTag   bool
	Index    int
	Operator Operator
	Values   []string
	Children []*Node
}

// Undetermined is the shared Undetermined leaf: a tree that can never be
// verified, evaluating to Undetermined regardless of dataset contents.
var Undetermined = &Node{Kind: KindUndetermined}

// IsDeterminate reports whether the tree can ever evaluate to a definite
// true/false, i.e. whether it (recursively) contains no Undetermined node.
func (n *Node) IsDeterminate() bool {
	if n == nil {
		return false
	}
	switch n.Kind {
	case KindUndetermined:
		return false
	case KindAtom:
		return true
	default:
		for _, c := range n.Children {
			if !c.IsDeterminate() {
				return false
			}
		}
		return true
	}
}

// Walk calls fn for every atom reachable from n, depth-first.
func (n *Node) Walk(fn func(*Node)) {
	if n == nil {
		return
	}
	if n.Kind == KindAtom {
		fn(n)
		return
	}
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// String renders a debugging form of the tree, not the original English.
func (n *Node) String() string {
	if n == nil {
		return "<nil>"
	}
	switch n.Kind {
	case KindUndetermined:
		return "undetermined"
	case KindAtom:
		if !n.HasTag {
			return "undetermined"
		}
		tagStr := dictionary.TagString(n.Tag)
		if n.Index != 0 {
			tagStr = fmt.Sprintf("%s[%d]", tagStr, n.Index)
		}
		if len(n.Values) == 0 {
			return fmt.Sprintf("%s %s", tagStr, n.Operator)
		}
		return fmt.Sprintf("%s %s %s", tagStr, n.Operator, strings.Join(n.Values, ","))
	case KindAnd:
		return joinChildren(n.Children, " and ")
	case KindOr:
		return joinChildren(n.Children, " or ")
	default:
		return "?"
	}
}

func joinChildren(children []*Node, sep string) string {
	parts := make([]string, len(children))
	for i, c := range children {
		parts[i] = c.String()
	}
	return "(" + strings.Join(parts, sep) + ")"
}

// Type is the resulting attribute/module usage a parsed condition implies.
type Type string

const (
	TypeMN Type = "MN" // mandatory when condition holds, forbidden otherwise
	TypeMU Type = "MU" // required under condition, optional otherwise
	TypeMC Type = "MC" // mandatory-conditional with a permissive "other" clause
	TypeU  Type = "U"  // unparseable; always treated as satisfied
)

// Condition is the full parse result for one English sentence: its type,
// its primary tree, and (for MC) the "may be present if" tail.
type Condition struct {
	Type           Type
	Tree           *Node
	OtherCondition *Node
	Source         string
}

// newUndetermined builds the canonical degraded result for unparseable text.
func newUndetermined(source string) *Condition {
	return &Condition{Type: TypeU, Tree: Undetermined, Source: source}
}

// Tag returns the atom tag of the primary tree, if it is a single atom with
// a resolved tag. Convenience accessor mirroring the common case of a
// simple (non-composite) condition.
func (c *Condition) Tag() (Tag, bool) {
	if c == nil || c.Tree == nil || c.Tree.Kind != KindAtom || !c.Tree.HasTag {
		return Tag{}, false
	}
	return c.Tree.Tag, true
}

// Operator returns the atom operator of the primary tree, if it is a
// single atom.
func (c *Condition) Operator() Operator {
	if c == nil || c.Tree == nil || c.Tree.Kind != KindAtom {
		return OpNone
	}
	return c.Tree.Operator
}

// Index returns the atom value-index of the primary tree, if it is a
// single atom.
func (c *Condition) Index() int {
	if c == nil || c.Tree == nil || c.Tree.Kind != KindAtom {
		return 0
	}
	return c.Tree.Index
}

// Values returns the atom values of the primary tree, if it is a single
// atom.
func (c *Condition) Values() []string {
	if c == nil || c.Tree == nil || c.Tree.Kind != KindAtom {
		return nil
	}
	return c.Tree.Values
}
