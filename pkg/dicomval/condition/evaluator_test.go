package condition_test

import (
	"testing"

	"github.com/jpfielding/dicomval/pkg/dicomval/condition"
	"github.com/jpfielding/dicomval/pkg/dicomval/dataset"
	"github.com/jpfielding/dicomval/pkg/dicomval/dictionary"
	"github.com/stretchr/testify/assert"
)

var modalityTag = dictionary.Tag{Group: 0x0008, Element: 0x0060}

func atomNode(op condition.Operator, values ...string) *condition.Node {
	return &condition.Node{
		Kind:     condition.KindAtom,
		Tag:      modalityTag,
		HasTag:   true,
		Operator: op,
		Values:   values,
	}
}

func TestEvaluate_PresentAtom(t *testing.T) {
	ds := dataset.NewMapView()
	assert.Equal(t, condition.False, condition.Evaluate(atomNode(condition.OpPresent), ds))

	ds.SetEmpty(modalityTag)
	assert.Equal(t, condition.True, condition.Evaluate(atomNode(condition.OpPresent), ds))
}

func TestEvaluate_PresentNonEmptyAtom(t *testing.T) {
	ds := dataset.NewMapView()
	ds.SetEmpty(modalityTag)
	assert.Equal(t, condition.False, condition.Evaluate(atomNode(condition.OpPresentNonEmpty), ds))

	ds.SetValue(modalityTag, "CT")
	assert.Equal(t, condition.True, condition.Evaluate(atomNode(condition.OpPresentNonEmpty), ds))
}

func TestEvaluate_AbsentAtom(t *testing.T) {
	ds := dataset.NewMapView()
	assert.Equal(t, condition.True, condition.Evaluate(atomNode(condition.OpAbsent), ds))
	ds.SetValue(modalityTag, "CT")
	assert.Equal(t, condition.False, condition.Evaluate(atomNode(condition.OpAbsent), ds))
}

func TestEvaluate_EqualsAtom(t *testing.T) {
	ds := dataset.NewMapView()
	ds.SetValue(modalityTag, "CT")
	assert.Equal(t, condition.True, condition.Evaluate(atomNode(condition.OpEquals, "CT", "MR"), ds))
	assert.Equal(t, condition.False, condition.Evaluate(atomNode(condition.OpEquals, "MR"), ds))

	empty := dataset.NewMapView()
	assert.Equal(t, condition.False, condition.Evaluate(atomNode(condition.OpEquals, "CT"), empty))
}

func TestEvaluate_NotEqualsAtom(t *testing.T) {
	ds := dataset.NewMapView()
	ds.SetValue(modalityTag, "CT")
	assert.Equal(t, condition.False, condition.Evaluate(atomNode(condition.OpNotEquals, "CT"), ds))
	assert.Equal(t, condition.True, condition.Evaluate(atomNode(condition.OpNotEquals, "MR"), ds))
}

func TestEvaluate_GreaterAndLessNumeric(t *testing.T) {
	ds := dataset.NewMapView()
	ds.SetValue(modalityTag, "5")
	assert.Equal(t, condition.True, condition.Evaluate(atomNode(condition.OpGreater, "1"), ds))
	assert.Equal(t, condition.False, condition.Evaluate(atomNode(condition.OpLess, "1"), ds))

	ds.SetValue(modalityTag, "not-a-number")
	assert.Equal(t, condition.False, condition.Evaluate(atomNode(condition.OpGreater, "1"), ds))
}

func TestEvaluate_UndeterminedTreeIsUndetermined(t *testing.T) {
	ds := dataset.NewMapView()
	assert.Equal(t, condition.UndeterminedResult, condition.Evaluate(condition.Undetermined, ds))
	assert.Equal(t, condition.UndeterminedResult, condition.Evaluate(nil, ds))
}

func TestEvaluate_AndComposite(t *testing.T) {
	ds := dataset.NewMapView()
	seriesTag := dictionary.Tag{Group: 0x0054, Element: 0x1000}
	and := &condition.Node{
		Kind: condition.KindAnd,
		Children: []*condition.Node{
			{Kind: condition.KindAtom, Tag: modalityTag, HasTag: true, Operator: condition.OpPresent},
			{Kind: condition.KindAtom, Tag: seriesTag, HasTag: true, Operator: condition.OpPresent},
		},
	}
	assert.Equal(t, condition.False, condition.Evaluate(and, ds))

	ds.SetValue(modalityTag, "CT")
	ds.SetValue(seriesTag, "ORIGINAL")
	assert.Equal(t, condition.True, condition.Evaluate(and, ds))
}

func TestEvaluate_OrComposite(t *testing.T) {
	ds := dataset.NewMapView()
	seriesTag := dictionary.Tag{Group: 0x0054, Element: 0x1000}
	or := &condition.Node{
		Kind: condition.KindOr,
		Children: []*condition.Node{
			{Kind: condition.KindAtom, Tag: modalityTag, HasTag: true, Operator: condition.OpPresent},
			{Kind: condition.KindAtom, Tag: seriesTag, HasTag: true, Operator: condition.OpPresent},
		},
	}
	assert.Equal(t, condition.False, condition.Evaluate(or, ds))

	ds.SetValue(seriesTag, "ORIGINAL")
	assert.Equal(t, condition.True, condition.Evaluate(or, ds))
}
