package condition_test

import (
	"testing"

	"github.com/jpfielding/dicomval/pkg/dicomval/condition"
	"github.com/jpfielding/dicomval/pkg/dicomval/dictionary"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDict = `{
	"(0028,3010)": {"name": "VOI LUT Sequence", "vr": "SQ", "vm": "1", "prop": ""},
	"(003A,0247)": {"name": "Fractional Channel Display Scale", "vr": "DS", "vm": "1", "prop": ""},
	"(0070,0010)": {"name": "Bounding Box Top Left Hand Corner", "vr": "FL", "vm": "3", "prop": ""},
	"(0010,2297)": {"name": "Responsible Person", "vr": "PN", "vm": "1", "prop": ""},
	"(0068,64C0)": {"name": "3D Mating Point", "vr": "FL", "vm": "3", "prop": ""},
	"(0008,2220)": {"name": "Anatomic Region Modifier Sequence", "vr": "SQ", "vm": "1", "prop": ""},
	"(0012,0042)": {"name": "Clinical Trial Subject Reading ID", "vr": "LO", "vm": "1", "prop": ""},
	"(300C,0051)": {"name": "Referenced Dose Reference Number", "vr": "IS", "vm": "1", "prop": ""},
	"(0008,0060)": {"name": "Modality", "vr": "CS", "vm": "1", "prop": ""},
	"(0008,0008)": {"name": "Image Type", "vr": "CS", "vm": "2-n", "prop": ""},
	"(0040,A040)": {"name": "Value Type", "vr": "CS", "vm": "1", "prop": ""},
	"(0054,1000)": {"name": "Series Type", "vr": "CS", "vm": "2", "prop": ""},
	"(0028,0008)": {"name": "Number of Frames", "vr": "IS", "vm": "1", "prop": ""},
	"(0028,0002)": {"name": "Samples per Pixel", "vr": "US", "vm": "1", "prop": ""},
	"(0028,0009)": {"name": "Frame Increment Pointer", "vr": "AT", "vm": "1-n", "prop": ""},
	"(0018,1063)": {"name": "Frame Time", "vr": "DS", "vm": "1", "prop": ""},
	"(0018,1065)": {"name": "Frame Time Vector", "vr": "DS", "vm": "1-n", "prop": ""},
	"(0008,9205)": {"name": "Pixel Presentation", "vr": "CS", "vm": "1", "prop": ""},
	"(0008,0016)": {"name": "SOP Class UID", "vr": "UI", "vm": "1", "prop": ""},
	"(0008,010B)": {"name": "Context Group Extension Flag", "vr": "CS", "vm": "1", "prop": ""},
	"(0028,9001)": {"name": "Data Point Rows", "vr": "UL", "vm": "1", "prop": ""},
	"(0072,0050)": {"name": "Selector Attribute VR", "vr": "CS", "vm": "1", "prop": ""},
	"(0070,0244)": {"name": "Shadow Style", "vr": "CS", "vm": "1", "prop": ""},
	"(0054,1102)": {"name": "Decay Correction", "vr": "CS", "vm": "1", "prop": ""},
	"(0018,9410)": {"name": "Planes in Acquisition", "vr": "CS", "vm": "1", "prop": ""},
	"(0070,1B06)": {"name": "Blending Mode", "vr": "CS", "vm": "1", "prop": ""},
	"(0028,1350)": {"name": "Partial View", "vr": "CS", "vm": "1", "prop": ""},
	"(0018,2002)": {"name": "Frame Label Vector", "vr": "AT", "vm": "1-n", "prop": ""},
	"(300A,00F0)": {"name": "Number of Blocks", "vr": "IS", "vm": "1", "prop": ""},
	"(300A,02A2)": {"name": "Transfer Tube Number", "vr": "IS", "vm": "1", "prop": ""},
	"(300A,00E1)": {"name": "Material ID", "vr": "SH", "vm": "1", "prop": ""},
	"(300A,0080)": {"name": "Number of Beams", "vr": "IS", "vm": "1", "prop": ""},
	"(0018,6044)": {"name": "Pixel Component Organization", "vr": "CS", "vm": "1", "prop": ""},
	"(0040,A30A)": {"name": "Numeric Value", "vr": "DS", "vm": "1-n", "prop": ""},
	"(0072,0026)": {"name": "Selector Attribute", "vr": "AT", "vm": "1", "prop": ""},
	"(3008,0130)": {"name": "Recorded Channel Sequence", "vr": "SQ", "vm": "1", "prop": ""},
	"(300A,0202)": {"name": "Brachy Treatment Type", "vr": "CS", "vm": "1", "prop": ""},
	"(0018,1080)": {"name": "Beat Rejection Flag", "vr": "CS", "vm": "1", "prop": ""},
	"(0018,9170)": {"name": "Respiratory Motion Compensation Technique", "vr": "CS", "vm": "1-n", "prop": ""},
	"(0040,A130)": {"name": "Temporal Range Type", "vr": "CS", "vm": "1", "prop": ""},
	"(0040,A138)": {"name": "Referenced Time Offsets", "vr": "DS", "vm": "1-n", "prop": ""},
	"(0040,A13A)": {"name": "Referenced DateTime", "vr": "DT", "vm": "1", "prop": ""},
	"(0072,0402)": {"name": "Filter-by Category", "vr": "CS", "vm": "1", "prop": ""},
	"(0072,0406)": {"name": "Filter-by Operator", "vr": "CS", "vm": "1", "prop": ""},
	"(0012,0062)": {"name": "Patient Identity Removed", "vr": "CS", "vm": "1", "prop": ""},
	"(0012,0064)": {"name": "De-identification Method Code Sequence", "vr": "SQ", "vm": "1", "prop": ""},
	"(0068,6590)": {"name": "3D Point Coordinates", "vr": "FL", "vm": "3-3n", "prop": ""},
	"(0068,62C0)": {"name": "HPGL Document Sequence", "vr": "SQ", "vm": "1", "prop": ""}
}`

func newTestParser(t *testing.T) *condition.Parser {
	t.Helper()
	dict, err := dictionary.New([]byte(testDict), nil)
	require.NoError(t, err)
	return condition.NewParser(dict)
}

func TestParse_EmptyTextIsUnparseable(t *testing.T) {
	p := newTestParser(t)
	c := p.Parse("")
	assert.Equal(t, condition.TypeU, c.Type)
	_, hasTag := c.Tag()
	assert.False(t, hasTag)
}

func TestParse_UncheckableTagCondition(t *testing.T) {
	p := newTestParser(t)
	c := p.Parse(
		"Required if Numeric Value (0040,A30A) has insufficient " +
			"precision to represent the value as a string.")
	assert.Equal(t, condition.TypeU, c.Type)
}

func TestParse_ConditionWithoutTag(t *testing.T) {
	p := newTestParser(t)
	c := p.Parse("Required if present and consistent in the contributing SOP Instances.")
	assert.Equal(t, condition.TypeU, c.Type)
}

func TestParse_NotPresent(t *testing.T) {
	p := newTestParser(t)
	c := p.Parse("Required if VOI LUT Sequence (0028,3010) is not present.")
	require.Equal(t, condition.TypeMN, c.Type)
	tag, ok := c.Tag()
	require.True(t, ok)
	assert.Equal(t, dictionary.Tag{Group: 0x0028, Element: 0x3010}, tag)
	assert.Equal(t, condition.OpAbsent, c.Operator())
	assert.Empty(t, c.Values())
}

func TestParse_OperatorInTagName(t *testing.T) {
	p := newTestParser(t)
	c := p.Parse("Required if Fractional Channel Display Scale (003A,0247) is not present")
	require.Equal(t, condition.TypeMN, c.Type)
	tag, _ := c.Tag()
	assert.Equal(t, dictionary.Tag{Group: 0x003A, Element: 0x0247}, tag)
	assert.Equal(t, condition.OpAbsent, c.Operator())
}

func TestParse_IsPresent(t *testing.T) {
	p := newTestParser(t)
	c := p.Parse("Required if Bounding Box Top Left Hand Corner (0070,0010) is present.")
	require.Equal(t, condition.TypeMN, c.Type)
	assert.Equal(t, condition.OpPresent, c.Operator())
}

func TestParse_IsPresentWithValue(t *testing.T) {
	p := newTestParser(t)
	c := p.Parse("Required if Responsible Person is present and has a value.")
	require.Equal(t, condition.TypeMN, c.Type)
	tag, ok := c.Tag()
	require.True(t, ok)
	assert.Equal(t, dictionary.Tag{Group: 0x0010, Element: 0x2297}, tag)
	assert.Equal(t, condition.OpPresentNonEmpty, c.Operator())
}

func TestParse_TagNameWithDigit(t *testing.T) {
	p := newTestParser(t)
	c := p.Parse("Required if 3D Mating Point (0068,64C0) is present.")
	require.Equal(t, condition.TypeMN, c.Type)
	tag, _ := c.Tag()
	assert.Equal(t, dictionary.Tag{Group: 0x0068, Element: 0x64C0}, tag)
}

func TestParse_NotSent(t *testing.T) {
	p := newTestParser(t)
	c := p.Parse("Required if Anatomic Region Modifier Sequence (0008,2220) is not sent. ")
	require.Equal(t, condition.TypeMN, c.Type)
	assert.Equal(t, condition.OpAbsent, c.Operator())
}

func TestParse_ShallBeConditionWithAbsentTag(t *testing.T) {
	p := newTestParser(t)
	c := p.Parse(
		"Some Stuff. Shall be present if Clinical Trial Subject Reading ID" +
			" (0012,0042) is absent. May be present otherwise.")
	require.Equal(t, condition.TypeMU, c.Type)
	tag, ok := c.Tag()
	require.True(t, ok)
	assert.Equal(t, dictionary.Tag{Group: 0x0012, Element: 0x0042}, tag)
	assert.Equal(t, 0, c.Index())
	assert.Equal(t, condition.OpAbsent, c.Operator())
}

func TestParse_RequiredOnlyIf(t *testing.T) {
	p := newTestParser(t)
	c := p.Parse(
		"Required only if Referenced Dose Reference Number (300C,0051) " +
			"is not present. It shall not be present otherwise.")
	require.Equal(t, condition.TypeMN, c.Type)
	assert.Equal(t, condition.OpAbsent, c.Operator())
}

func TestParse_EqualityTag(t *testing.T) {
	p := newTestParser(t)
	c := p.Parse("C - Required if Modality (0008,0060) = IVUS")
	require.Equal(t, condition.TypeMN, c.Type)
	tag, _ := c.Tag()
	assert.Equal(t, dictionary.Tag{Group: 0x0008, Element: 0x0060}, tag)
	assert.Equal(t, condition.OpEquals, c.Operator())
	assert.Equal(t, []string{"IVUS"}, c.Values())
}

func TestParse_EqualityTagWithoutTagID(t *testing.T) {
	p := newTestParser(t)
	c := p.Parse("C - Required if Modality = IVUS")
	tag, ok := c.Tag()
	require.True(t, ok)
	assert.Equal(t, dictionary.Tag{Group: 0x0008, Element: 0x0060}, tag)
	assert.Equal(t, []string{"IVUS"}, c.Values())
}

func TestParse_MultipleValuesAndIndex(t *testing.T) {
	p := newTestParser(t)
	c := p.Parse(
		"C - Required if Image Type (0008,0008) Value 3 " +
			"is GATED, GATED TOMO, or RECON GATED TOMO")
	require.Equal(t, condition.TypeMN, c.Type)
	tag, _ := c.Tag()
	assert.Equal(t, dictionary.Tag{Group: 0x0008, Element: 0x0008}, tag)
	assert.Equal(t, 2, c.Index())
	assert.Equal(t, condition.OpEquals, c.Operator())
	assert.Equal(t, []string{"GATED", "GATED TOMO", "RECON GATED TOMO"}, c.Values())
}

func TestParse_MultipleValuesWithOr(t *testing.T) {
	p := newTestParser(t)
	c := p.Parse("Required if Value Type (0040,A040) is COMPOSITE or IMAGE or WAVEFORM.")
	tag, _ := c.Tag()
	assert.Equal(t, dictionary.Tag{Group: 0x0040, Element: 0xA040}, tag)
	assert.Equal(t, []string{"COMPOSITE", "IMAGE", "WAVEFORM"}, c.Values())
}

func TestParse_CommaBeforeValue(t *testing.T) {
	p := newTestParser(t)
	c := p.Parse("Required if Series Type (0054,1000), Value 2 is REPROJECTION.")
	assert.Equal(t, 1, c.Index())
	assert.Equal(t, []string{"REPROJECTION"}, c.Values())
}

func TestParse_MayBePresentOtherwise(t *testing.T) {
	p := newTestParser(t)
	c := p.Parse(
		"C - Required if Image Type (0008,0008) Value 1 equals ORIGINAL." +
			" May be present otherwise.")
	require.Equal(t, condition.TypeMU, c.Type)
	assert.Equal(t, 0, c.Index())
	assert.Equal(t, []string{"ORIGINAL"}, c.Values())
}

func TestParse_GreaterOperator(t *testing.T) {
	p := newTestParser(t)
	c := p.Parse("C - Required if Number of Frames is greater than 1")
	tag, _ := c.Tag()
	assert.Equal(t, dictionary.Tag{Group: 0x0028, Element: 0x0008}, tag)
	assert.Equal(t, condition.OpGreater, c.Operator())
	assert.Equal(t, []string{"1"}, c.Values())
}

func TestParse_ValueGreaterThanOperator(t *testing.T) {
	p := newTestParser(t)
	c := p.Parse("Required if Samples per Pixel (0028,0002) has a value greater than 1")
	assert.Equal(t, condition.OpGreater, c.Operator())
	assert.Equal(t, []string{"1"}, c.Values())
}

func TestParse_TagIDsAsValues(t *testing.T) {
	p := newTestParser(t)
	c := p.Parse(
		"C - Required if Frame Increment Pointer (0028,0009) " +
			"is Frame Time (0018,1063) or Frame Time Vector (0018,1065)")
	assert.Equal(t, condition.OpEquals, c.Operator())
	assert.Equal(t, []string{"Frame Time (0018,1063)", "Frame Time Vector (0018,1065)"}, c.Values())
}

func TestParse_HasAValueOf(t *testing.T) {
	p := newTestParser(t)
	c := p.Parse("Required if Pixel Presentation (0008,9205) has a value of TRUE_COLOR.")
	assert.Equal(t, condition.OpEquals, c.Operator())
	assert.Equal(t, []string{"TRUE_COLOR"}, c.Values())
}

func TestParse_RemoveApostrophes(t *testing.T) {
	p := newTestParser(t)
	c := p.Parse(`Required if Lossy Image Compression (0028,2110) is "01".`)
	assert.Equal(t, condition.OpEquals, c.Operator())
	assert.Equal(t, []string{"01"}, c.Values())
}

func TestParse_RemoveApostrophesFromUIDs(t *testing.T) {
	p := newTestParser(t)
	c := p.Parse(
		"Required if SOP Class UID (0008,0016) " +
			`equals "1.2.840.10008.5.1.4.1.1.12.1.1" ` +
			`or "1.2.840.10008.5.1.4.1.1.12.2.1". May be present otherwise.`)
	assert.Equal(t, condition.OpEquals, c.Operator())
	assert.Equal(t, []string{
		"1.2.840.10008.5.1.4.1.1.12.1.1",
		"1.2.840.10008.5.1.4.1.1.12.2.1",
	}, c.Values())
}

func TestParse_ValueOf(t *testing.T) {
	p := newTestParser(t)
	c := p.Parse(`Required if the value of Context Group Extension Flag (0008,010B) is "Y".`)
	assert.Equal(t, condition.OpEquals, c.Operator())
	assert.Equal(t, []string{"Y"}, c.Values())
}

func TestParse_ValueMoreThan(t *testing.T) {
	p := newTestParser(t)
	c := p.Parse("Required if Data Point Rows (0028,9001) has a value of more than 1.")
	assert.Equal(t, condition.OpGreater, c.Operator())
	assert.Equal(t, []string{"1"}, c.Values())
}

func TestParse_PresentWithValue(t *testing.T) {
	p := newTestParser(t)
	c := p.Parse("Required if Selector Attribute VR (0072,0050) is present and the value is AS.")
	assert.Equal(t, condition.OpEquals, c.Operator())
	assert.Equal(t, []string{"AS"}, c.Values())
}

func TestParse_ValueIsNot(t *testing.T) {
	p := newTestParser(t)
	c := p.Parse("Required if Shadow Style (0070,0244) value is not OFF.")
	assert.Equal(t, condition.OpNotEquals, c.Operator())
	assert.Equal(t, []string{"OFF"}, c.Values())
}

func TestParse_OtherThan(t *testing.T) {
	p := newTestParser(t)
	c := p.Parse("Required if Decay Correction (0054,1102) is other than NONE.")
	assert.Equal(t, condition.OpNotEquals, c.Operator())
	assert.Equal(t, []string{"NONE"}, c.Values())
}

func TestParse_NotEqualTo(t *testing.T) {
	p := newTestParser(t)
	c := p.Parse("Required if Planes in Acquisition (0018,9410) is not equal to UNDEFINED.")
	assert.Equal(t, condition.OpNotEquals, c.Operator())
	assert.Equal(t, []string{"UNDEFINED"}, c.Values())
}

func TestParse_EqualTo(t *testing.T) {
	p := newTestParser(t)
	c := p.Parse("Required if Blending Mode (0070,1B06) is equal to FOREGROUND.")
	assert.Equal(t, condition.OpEquals, c.Operator())
	assert.Equal(t, []string{"FOREGROUND"}, c.Values())
}

func TestParse_PresentWithValueOf(t *testing.T) {
	p := newTestParser(t)
	c := p.Parse("Required if Partial View (0028,1350) is present with a value of YES.")
	assert.Equal(t, condition.OpEquals, c.Operator())
	assert.Equal(t, []string{"YES"}, c.Values())
}

func TestParse_PointsToTag(t *testing.T) {
	p := newTestParser(t)
	c := p.Parse(
		"Required if Frame Increment Pointer (0028,0009) points to " +
			"Frame Label Vector (0018,2002).")
	assert.Equal(t, condition.OpPointsTo, c.Operator())
	assert.Equal(t, []string{"1581058"}, c.Values())
}

func TestParse_NonZero(t *testing.T) {
	p := newTestParser(t)
	c := p.Parse("Required if Number of Blocks (300A,00F0) is non-zero.")
	assert.Equal(t, condition.OpNotEquals, c.Operator())
	assert.Equal(t, []string{"0"}, c.Values())
}

func TestParse_NonNull(t *testing.T) {
	p := newTestParser(t)
	c := p.Parse("Required if value Transfer Tube Number (300A,02A2) is non-null.")
	tag, _ := c.Tag()
	assert.Equal(t, dictionary.Tag{Group: 0x300A, Element: 0x02A2}, tag)
	assert.Equal(t, condition.OpPresentNonEmpty, c.Operator())
	assert.Empty(t, c.Values())
}

func TestParse_ZeroLength(t *testing.T) {
	p := newTestParser(t)
	c := p.Parse(
		"Required if Material ID (300A,00E1) is zero-length. " +
			"May be present if Material ID (300A,00E1) is non-zero length.")
	require.Equal(t, condition.TypeMC, c.Type)
	tag, _ := c.Tag()
	assert.Equal(t, dictionary.Tag{Group: 0x300A, Element: 0x00E1}, tag)
	assert.Equal(t, condition.OpEquals, c.Operator())
	assert.Equal(t, []string{""}, c.Values())
	require.NotNil(t, c.OtherCondition)
	assert.Equal(t, condition.OpNotEquals, c.OtherCondition.Operator)
	assert.Equal(t, []string{""}, c.OtherCondition.Values)
}

func TestParse_GreaterThanZero(t *testing.T) {
	p := newTestParser(t)
	c := p.Parse("Required if Number of Beams (300A,0080) is greater than zero")
	// "zero" as a bare word is not a recognized numeric literal; the
	// dedicated "greater than zero" phrase covers this wording instead.
	assert.Equal(t, condition.OpGreater, c.Operator())
	assert.Equal(t, []string{"0"}, c.Values())
}

func TestParse_IsNonZeroLength(t *testing.T) {
	p := newTestParser(t)
	c := p.Parse("Required if Material ID (300A,00E1) is non-zero length.")
	assert.Equal(t, condition.OpNotEquals, c.Operator())
	assert.Equal(t, []string{""}, c.Values())
}

func TestParse_IsNotZeroLength(t *testing.T) {
	p := newTestParser(t)
	c := p.Parse("Required if value Transfer Tube Number (300A,02A2) is not zero length.")
	assert.Equal(t, condition.OpNotEquals, c.Operator())
	assert.Equal(t, []string{""}, c.Values())
}

func TestParse_EqualSign(t *testing.T) {
	p := newTestParser(t)
	c := p.Parse("Required if Pixel Component Organization = Bit aligned.")
	tag, _ := c.Tag()
	assert.Equal(t, dictionary.Tag{Group: 0x0018, Element: 0x6044}, tag)
	assert.Equal(t, condition.OpEquals, c.Operator())
	assert.Equal(t, []string{"Bit aligned"}, c.Values())
}

func TestParse_EitherOrDistributesPresence(t *testing.T) {
	p := newTestParser(t)
	c := p.Parse("Required if either Modality (0008,0060) or Value Type (0040,A040) is present.")
	require.Equal(t, condition.TypeMN, c.Type)
	require.Equal(t, condition.KindOr, c.Tree.Kind)
	require.Len(t, c.Tree.Children, 2)
	assert.Equal(t, dictionary.Tag{Group: 0x0008, Element: 0x0060}, c.Tree.Children[0].Tag)
	assert.Equal(t, dictionary.Tag{Group: 0x0040, Element: 0xA040}, c.Tree.Children[1].Tag)
}

func TestParse_ListDistributesOverAnd(t *testing.T) {
	p := newTestParser(t)
	c := p.Parse(
		"Required if Modality (0008,0060), Value Type (0040,A040), " +
			"and Series Type (0054,1000) are not present.")
	require.Equal(t, condition.TypeMN, c.Type)
	require.Equal(t, condition.KindAnd, c.Tree.Kind)
	require.Len(t, c.Tree.Children, 3)
	for _, child := range c.Tree.Children {
		assert.Equal(t, condition.OpAbsent, child.Operator)
	}
}

// TestParse_AndJoinsDifferentOperators is grounded on
// test_condition_parser.py's test_and_condition: two clauses sharing no
// operator, joined by "and", must compose into an AND of two distinct
// atoms rather than discarding the second clause.
func TestParse_AndJoinsDifferentOperators(t *testing.T) {
	p := newTestParser(t)
	c := p.Parse(
		"Required if Series Type (0054,1000), Value 1 is GATED and " +
			"Beat Rejection Flag (0018,1080) is Y.")
	require.Equal(t, condition.TypeMN, c.Type)
	require.Equal(t, condition.KindAnd, c.Tree.Kind)
	require.Len(t, c.Tree.Children, 2)
	assert.Equal(t, dictionary.Tag{Group: 0x0054, Element: 0x1000}, c.Tree.Children[0].Tag)
	assert.Equal(t, condition.OpEquals, c.Tree.Children[0].Operator)
	assert.Equal(t, []string{"GATED"}, c.Tree.Children[0].Values)
	assert.Equal(t, dictionary.Tag{Group: 0x0018, Element: 0x1080}, c.Tree.Children[1].Tag)
	assert.Equal(t, condition.OpEquals, c.Tree.Children[1].Operator)
	assert.Equal(t, []string{"Y"}, c.Tree.Children[1].Values)
}

// TestParse_AndWithoutValue is the concrete sentence traced in review:
// a presence clause AND'd with a not-equal clause carrying its own value
// list, grounded on test_condition_parser.py's test_and_without_value.
func TestParse_AndWithoutValue(t *testing.T) {
	p := newTestParser(t)
	c := p.Parse(
		"Required if Recorded Channel Sequence (3008,0130) is sent and " +
			"Brachy Treatment Type (300A,0202) is not MANUAL or PDR.")
	require.Equal(t, condition.TypeMN, c.Type)
	require.Equal(t, condition.KindAnd, c.Tree.Kind)
	require.Len(t, c.Tree.Children, 2)
	assert.Equal(t, dictionary.Tag{Group: 0x3008, Element: 0x0130}, c.Tree.Children[0].Tag)
	assert.Equal(t, condition.OpPresent, c.Tree.Children[0].Operator)
	assert.Equal(t, dictionary.Tag{Group: 0x300A, Element: 0x0202}, c.Tree.Children[1].Tag)
	assert.Equal(t, condition.OpNotEquals, c.Tree.Children[1].Operator)
	assert.Equal(t, []string{"MANUAL", "PDR"}, c.Tree.Children[1].Values)
}

// TestParse_AndWithMultipleValues is grounded on
// test_condition_parser.py's test_and_with_multiple_values: an equals
// clause with its own value list, AND'd with a not-equals clause.
func TestParse_AndWithMultipleValues(t *testing.T) {
	p := newTestParser(t)
	c := p.Parse(
		"Required if Image Type (0008,0008) Value 1 is ORIGINAL or MIXED " +
			"and Respiratory Motion Compensation Technique (0018,9170) " +
			"equals other than NONE.")
	require.Equal(t, condition.TypeMN, c.Type)
	require.Equal(t, condition.KindAnd, c.Tree.Kind)
	require.Len(t, c.Tree.Children, 2)
	assert.Equal(t, condition.OpEquals, c.Tree.Children[0].Operator)
	assert.Equal(t, []string{"ORIGINAL", "MIXED"}, c.Tree.Children[0].Values)
	assert.Equal(t, condition.OpNotEquals, c.Tree.Children[1].Operator)
	assert.Equal(t, []string{"NONE"}, c.Tree.Children[1].Values)
}

// TestParse_MixedAndOrTagPresence is grounded on
// test_condition_parser.py's test_mixed_and_or_tag_presence: "or" binds
// tighter than "and" when it isn't itself the sentence's sole connective,
// so "A or B, and C" composes as AND(OR(A,B), C).
func TestParse_MixedAndOrTagPresence(t *testing.T) {
	p := newTestParser(t)
	c := p.Parse(
		"Required if Selector Attribute (0072,0026) or Filter-by Category " +
			"(0072,0402), and Filter-by Operator (0072,0406) are present.")
	require.Equal(t, condition.TypeMN, c.Type)
	require.Equal(t, condition.KindAnd, c.Tree.Kind)
	require.Len(t, c.Tree.Children, 2)
	require.Equal(t, condition.KindOr, c.Tree.Children[0].Kind)
	require.Len(t, c.Tree.Children[0].Children, 2)
	assert.Equal(t, dictionary.Tag{Group: 0x0072, Element: 0x0026}, c.Tree.Children[0].Children[0].Tag)
	assert.Equal(t, dictionary.Tag{Group: 0x0072, Element: 0x0402}, c.Tree.Children[0].Children[1].Tag)
	assert.Equal(t, dictionary.Tag{Group: 0x0072, Element: 0x0406}, c.Tree.Children[1].Tag)
	assert.Equal(t, condition.OpPresent, c.Tree.Children[1].Operator)
}

// TestParse_MultiTagInSecondCondition is grounded on
// test_condition_parser.py's test_multi_tag_in_second_condition: one AND
// operand can itself be a shared-operator subject list, nested inside
// the outer composite.
func TestParse_MultiTagInSecondCondition(t *testing.T) {
	p := newTestParser(t)
	c := p.Parse(
		"Required if Temporal Range Type (0040,A130) is present, and if " +
			"Referenced Time Offsets (0040,A138) and Referenced DateTime " +
			"(0040,A13A) are not present.")
	require.Equal(t, condition.TypeMN, c.Type)
	require.Equal(t, condition.KindAnd, c.Tree.Kind)
	require.Len(t, c.Tree.Children, 2)
	assert.Equal(t, condition.OpPresent, c.Tree.Children[0].Operator)
	require.Equal(t, condition.KindAnd, c.Tree.Children[1].Kind)
	require.Len(t, c.Tree.Children[1].Children, 2)
	for _, child := range c.Tree.Children[1].Children {
		assert.Equal(t, condition.OpAbsent, child.Operator)
	}
}

// TestParse_IsPresentWithValueIdiom is grounded on
// test_condition_parser.py's test_ispresent_with_value: "is present and
// has a value of Y" collapses to a single equals atom rather than
// splitting into a bare presence check plus a dangling value fragment,
// even when AND'd with a further clause.
func TestParse_IsPresentWithValueIdiom(t *testing.T) {
	p := newTestParser(t)
	c := p.Parse(
		"Required if Patient Identity Removed (0012,0062) is present and " +
			"has a value of YES and De-identification Method Code Sequence " +
			"(0012,0064) is not present.")
	require.Equal(t, condition.TypeMN, c.Type)
	require.Equal(t, condition.KindAnd, c.Tree.Kind)
	require.Len(t, c.Tree.Children, 2)
	assert.Equal(t, condition.OpEquals, c.Tree.Children[0].Operator)
	assert.Equal(t, []string{"YES"}, c.Tree.Children[0].Values)
	assert.Equal(t, condition.OpAbsent, c.Tree.Children[1].Operator)
}

// TestParse_OtherConditionComposesLikeThePrimary is grounded on
// test_condition_parser.py's test_other_condition1: the "May be present
// otherwise if ..." permissive tail is parsed with the same composite
// machinery as the primary condition, so it too can be an AND of atoms.
func TestParse_OtherConditionComposesLikeThePrimary(t *testing.T) {
	p := newTestParser(t)
	c := p.Parse(
		"Required if 3D Point Coordinates (0068,6590) is not present and " +
			"HPGL Document Sequence (0068,62C0) is present. May be present " +
			"otherwise if 3D Point Coordinates (0068,6590) is present and " +
			"HPGL Document Sequence (0068,62C0) is present.")
	require.Equal(t, condition.TypeMC, c.Type)
	require.Equal(t, condition.KindAnd, c.Tree.Kind)
	require.Len(t, c.Tree.Children, 2)
	assert.Equal(t, condition.OpAbsent, c.Tree.Children[0].Operator)
	assert.Equal(t, condition.OpPresent, c.Tree.Children[1].Operator)

	require.NotNil(t, c.OtherCondition)
	require.Equal(t, condition.KindAnd, c.OtherCondition.Kind)
	require.Len(t, c.OtherCondition.Children, 2)
	assert.Equal(t, condition.OpPresent, c.OtherCondition.Children[0].Operator)
	assert.Equal(t, condition.OpPresent, c.OtherCondition.Children[1].Operator)
}
