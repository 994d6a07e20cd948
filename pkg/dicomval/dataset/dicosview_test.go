package dataset_test

import (
	"testing"

	"github.com/jpfielding/dicomval/pkg/dicomval/dataset"
	"github.com/jpfielding/dicomval/pkg/dicos"
	"github.com/jpfielding/dicomval/pkg/dicos/tag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDicosView_ScalarAndMultiValued(t *testing.T) {
	ds, err := dicos.NewDataset(
		dicos.WithElement(tag.Modality, "CT"),
		dicos.WithElement(tag.ImageType, `ORIGINAL\PRIMARY\AXIAL`),
		dicos.WithElement(tag.PatientName, ""),
	)
	require.NoError(t, err)
	v := dataset.NewDicosView(ds)

	modalityTag := dataset.Tag{Group: tag.Modality.Group, Element: tag.Modality.Element}
	imageTypeTag := dataset.Tag{Group: tag.ImageType.Group, Element: tag.ImageType.Element}
	patientNameTag := dataset.Tag{Group: tag.PatientName.Group, Element: tag.PatientName.Element}
	unknownTag := dataset.Tag{Group: 0x9999, Element: 0x9999}

	assert.True(t, v.Has(modalityTag))
	assert.False(t, v.IsEmpty(modalityTag))
	assert.Equal(t, 1, v.ValueCount(modalityTag))
	val, ok := v.ValueAt(modalityTag, 0)
	assert.True(t, ok)
	assert.Equal(t, "CT", val)

	assert.Equal(t, 3, v.ValueCount(imageTypeTag))
	val, ok = v.ValueAt(imageTypeTag, 1)
	assert.True(t, ok)
	assert.Equal(t, "PRIMARY", val)
	_, ok = v.ValueAt(imageTypeTag, 5)
	assert.False(t, ok)

	assert.True(t, v.Has(patientNameTag))
	assert.True(t, v.IsEmpty(patientNameTag))
	assert.Equal(t, 0, v.ValueCount(patientNameTag))

	assert.False(t, v.Has(unknownTag))
	assert.False(t, v.IsEmpty(unknownTag))
}

func TestDicosView_Sequence(t *testing.T) {
	item1, err := dicos.NewDataset(dicos.WithElement(tag.ReferencedSOPClassUID, "1.2.840.10008.5.1.4.1.1.2"))
	require.NoError(t, err)
	item2, err := dicos.NewDataset(dicos.WithElement(tag.ReferencedSOPClassUID, "1.2.840.10008.5.1.4.1.1.1.1"))
	require.NoError(t, err)

	ds, err := dicos.NewDataset(dicos.WithSequence(tag.ReferencedImageSequence, item1, item2))
	require.NoError(t, err)
	v := dataset.NewDicosView(ds)

	seqTag := dataset.Tag{Group: tag.ReferencedImageSequence.Group, Element: tag.ReferencedImageSequence.Element}
	items := v.Items(seqTag)
	require.Len(t, items, 2)

	refTag := dataset.Tag{Group: tag.ReferencedSOPClassUID.Group, Element: tag.ReferencedSOPClassUID.Element}
	val, ok := items[0].ValueAt(refTag, 0)
	assert.True(t, ok)
	assert.Equal(t, "1.2.840.10008.5.1.4.1.1.2", val)
}

func TestDicosView_NilDataset(t *testing.T) {
	v := dataset.NewDicosView(nil)
	anyTag := dataset.Tag{Group: 0x0008, Element: 0x0060}
	assert.False(t, v.Has(anyTag))
	assert.Equal(t, 0, v.ValueCount(anyTag))
}
