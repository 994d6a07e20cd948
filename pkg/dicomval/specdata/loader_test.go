package specdata_test

import (
	"testing"

	"github.com/jpfielding/dicomval/pkg/dicomval/specdata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleIODJSON = `{
	"1.2.840.10008.5.1.4.1.1.2": {
		"title": "CT Image IOD",
		"modules": {
			"patient": {"usage": "M"},
			"generalSeries": {"usage": "C", "cond": "Required if Modality is CT."}
		}
	}
}`

const sampleModuleJSON = `{
	"patient": {
		"(0010,0010)": {"type": "2"},
		"(0010,0040)": {"type": "2C", "cond": "Required if Patient's Sex is known."}
	}
}`

func TestParse_RoundTrip(t *testing.T) {
	iod, modules, err := specdata.Parse([]byte(sampleIODJSON), []byte(sampleModuleJSON))
	require.NoError(t, err)

	entry, ok := iod.Lookup("1.2.840.10008.5.1.4.1.1.2")
	require.True(t, ok)
	assert.Equal(t, "CT Image IOD", entry.Title)
	require.Contains(t, entry.Modules, "generalSeries")
	assert.Equal(t, specdata.UsageC, entry.Modules["generalSeries"].Usage)
	assert.Equal(t, "Required if Modality is CT.", entry.Modules["generalSeries"].Condition)

	_, ok = iod.Lookup("unknown")
	assert.False(t, ok)

	patient, ok := modules.Lookup("patient")
	require.True(t, ok)
	require.Contains(t, patient, "(0010,0040)")
	assert.Equal(t, specdata.Type2C, patient["(0010,0040)"].Type)
}

func TestParse_InvalidJSON(t *testing.T) {
	_, _, err := specdata.Parse([]byte("not json"), []byte(sampleModuleJSON))
	assert.Error(t, err)

	_, _, err = specdata.Parse([]byte(sampleIODJSON), []byte("not json"))
	assert.Error(t, err)
}

func TestBuiltin_HasCTAndEnhancedXA(t *testing.T) {
	iod, modules := specdata.Builtin()

	ct, ok := iod.Lookup("1.2.840.10008.5.1.4.1.1.2")
	require.True(t, ok)
	assert.Contains(t, ct.Modules, "imagePixel")

	xa, ok := iod.Lookup("1.2.840.10008.5.1.4.1.1.12.1.1")
	require.True(t, ok)
	assert.Contains(t, xa.Modules, "frameOfReference")

	frameOfRef, ok := modules.Lookup("frameOfReference")
	require.True(t, ok)
	assert.Equal(t, specdata.Type1C, frameOfRef["(0020,0052)"].Type)
}
