package condition

import (
	"strconv"
	"strings"

	"github.com/jpfielding/dicomval/pkg/dicomval/dataset"
)

// TriState is the three-valued result of evaluating a condition tree.
type TriState int

const (
	False TriState = iota
	True
	UndeterminedResult
)

func (t TriState) String() string {
	switch t {
	case True:
		return "true"
	case False:
		return "false"
	default:
		return "undetermined"
	}
}

// Evaluate applies tree against ds, returning true, false, or undetermined
// per §4.4. A nil or Undetermined-kind tree always evaluates undetermined.
func Evaluate(tree *Node, ds dataset.View) TriState {
	if tree == nil {
		return UndeterminedResult
	}
	switch tree.Kind {
	case KindUndetermined:
		return UndeterminedResult
	case KindAtom:
		return evaluateAtom(tree, ds)
	case KindAnd:
		return evaluateAnd(tree.Children, ds)
	case KindOr:
		return evaluateOr(tree.Children, ds)
	default:
		return UndeterminedResult
	}
}

func evaluateAtom(n *Node, ds dataset.View) TriState {
	if !n.HasTag {
		return UndeterminedResult
	}
	t := n.Tag
	switch n.Operator {
	case OpPresent:
		return boolState(ds.Has(t))
	case OpPresentNonEmpty:
		return boolState(ds.Has(t) && !ds.IsEmpty(t))
	case OpAbsent:
		return boolState(!ds.Has(t))
	case OpEquals:
		return boolState(anyValueMatches(ds, t, n.Index, n.Values))
	case OpNotEquals:
		return boolState(!anyValueMatches(ds, t, n.Index, n.Values))
	case OpGreater, OpLess:
		return evaluateNumericCompare(n, ds, t)
	case OpPointsTo:
		v, ok := ds.ValueAt(t, n.Index)
		if !ok || len(n.Values) == 0 {
			return False
		}
		return boolState(strings.TrimSpace(v) == n.Values[0])
	default:
		return UndeterminedResult
	}
}

func anyValueMatches(ds dataset.View, t Tag, index int, values []string) bool {
	if !ds.Has(t) {
		return false
	}
	actual, ok := ds.ValueAt(t, index)
	if !ok {
		// a present-but-empty tag with an expected empty-string literal
		// counts as a match (the "is zero-length" condition family).
		actual = ""
		ok = ds.IsEmpty(t) && index == 0
		if !ok {
			return false
		}
	}
	actual = strings.TrimSpace(actual)
	for _, v := range values {
		if actual == strings.TrimSpace(v) {
			return true
		}
		if af, aok := parseNumber(actual); aok {
			if vf, vok := parseNumber(v); vok && af == vf {
				return true
			}
		}
	}
	return false
}

func evaluateNumericCompare(n *Node, ds dataset.View, t Tag) TriState {
	if !ds.Has(t) || len(n.Values) == 0 {
		return False
	}
	actual, ok := ds.ValueAt(t, n.Index)
	if !ok {
		return False
	}
	af, aok := parseNumber(strings.TrimSpace(actual))
	vf, vok := parseNumber(strings.TrimSpace(n.Values[0]))
	if !aok || !vok {
		return False
	}
	if n.Operator == OpGreater {
		return boolState(af > vf)
	}
	return boolState(af < vf)
}

func parseNumber(s string) (float64, bool) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

func evaluateAnd(children []*Node, ds dataset.View) TriState {
	sawUndetermined := false
	for _, c := range children {
		switch Evaluate(c, ds) {
		case False:
			return False
		case UndeterminedResult:
			sawUndetermined = true
		}
	}
	if sawUndetermined {
		return UndeterminedResult
	}
	return True
}

func evaluateOr(children []*Node, ds dataset.View) TriState {
	sawUndetermined := false
	for _, c := range children {
		switch Evaluate(c, ds) {
		case True:
			return True
		case UndeterminedResult:
			sawUndetermined = true
		}
	}
	if sawUndetermined {
		return UndeterminedResult
	}
	return False
}

func boolState(b bool) TriState {
	if b {
		return True
	}
	return False
}
