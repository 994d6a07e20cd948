package dictionary_test

import (
	"testing"

	"github.com/jpfielding/dicomval/pkg/dicomval/dictionary"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDict = `{
	"(0008,0016)": {"name": "SOP Class UID", "vr": "UI", "vm": "1", "prop": ""},
	"(0008,0060)": {"name": "Modality", "vr": "CS", "vm": "1", "prop": ""},
	"(0010,0010)": {"name": "Patient's Name", "vr": "PN", "vm": "1", "prop": ""},
	"(0010,0040)": {"name": "Patient's Sex", "vr": "CS", "vm": "1", "prop": ""},
	"(0020,0052)": {"name": "Frame of Reference UID", "vr": "UI", "vm": "1", "prop": ""}
}`

const sampleUIDs = `{
	"SOP Class": {
		"1.2.840.10008.5.1.4.1.1.2": "CT Image Storage"
	}
}`

func newIndex(t *testing.T) *dictionary.Index {
	t.Helper()
	idx, err := dictionary.New([]byte(sampleDict), []byte(sampleUIDs))
	require.NoError(t, err)
	return idx
}

func TestLookupByTag(t *testing.T) {
	idx := newIndex(t)
	e, ok := idx.LookupByTag(dictionary.Tag{Group: 0x0008, Element: 0x0060})
	require.True(t, ok)
	assert.Equal(t, "Modality", e.Name)
	assert.Equal(t, "CS", e.VR)
}

func TestLookupByTagUnknown(t *testing.T) {
	idx := newIndex(t)
	_, ok := idx.LookupByTag(dictionary.Tag{Group: 0xFFFF, Element: 0xFFFF})
	assert.False(t, ok)
}

func TestLookupByNameCanonical(t *testing.T) {
	idx := newIndex(t)
	tg, ok := idx.LookupByName("Modality")
	require.True(t, ok)
	assert.Equal(t, dictionary.Tag{Group: 0x0008, Element: 0x0060}, tg)
}

func TestLookupByNameWithEmbeddedTag(t *testing.T) {
	idx := newIndex(t)
	tg, ok := idx.LookupByName("Modality (0008,0060)")
	require.True(t, ok)
	assert.Equal(t, dictionary.Tag{Group: 0x0008, Element: 0x0060}, tg)
}

func TestLookupByNameDroppedTrailingWord(t *testing.T) {
	idx := newIndex(t)
	tg, ok := idx.LookupByName("SOP Class")
	require.True(t, ok)
	assert.Equal(t, dictionary.Tag{Group: 0x0008, Element: 0x0016}, tg)
}

func TestLookupByNamePossessiveVariants(t *testing.T) {
	idx := newIndex(t)
	tg1, ok1 := idx.LookupByName("Patient's Name")
	tg2, ok2 := idx.LookupByName("Patients Name")
	require.True(t, ok1)
	require.True(t, ok2)
	assert.Equal(t, tg1, tg2)
}

func TestLookupByNameUnknown(t *testing.T) {
	idx := newIndex(t)
	_, ok := idx.LookupByName("Not A Real Attribute")
	assert.False(t, ok)
}

func TestUIDName(t *testing.T) {
	idx := newIndex(t)
	name, ok := idx.UIDName("1.2.840.10008.5.1.4.1.1.2")
	require.True(t, ok)
	assert.Equal(t, "CT Image Storage", name)
}

func TestParseTagString(t *testing.T) {
	tg, ok := dictionary.ParseTagString("(0008,0060)")
	require.True(t, ok)
	assert.Equal(t, dictionary.Tag{Group: 0x0008, Element: 0x0060}, tg)

	_, ok = dictionary.ParseTagString("not a tag")
	assert.False(t, ok)
}

func TestTagStringRoundTrip(t *testing.T) {
	tg := dictionary.Tag{Group: 0x0028, Element: 0x3010}
	assert.Equal(t, "(0028,3010)", dictionary.TagString(tg))
}

func TestNewInvalidJSON(t *testing.T) {
	_, err := dictionary.New([]byte("not json"), nil)
	assert.Error(t, err)
}
