package specdata

// Builtin returns a small, self-contained IOD/module table covering CT
// Image Storage and Enhanced X-Ray Angiographic Image Storage, adapted from
// the teacher's per-IOD requirement tables in pkg/dicos/validate.go (which
// built composite requirement slices via append() over per-module pieces)
// into the data-driven IODSpecs/ModuleSpecs shape the validator walks. It
// exists so dcmvalidate and its tests have a usable specification without
// requiring a downloaded PS3.3 cache; LoadDir supersedes it when present.
func Builtin() (*IODSpecs, *ModuleSpecs) {
	iod := &IODSpecs{byUID: map[string]IODEntry{
		ctImageStorageUID: {
			Title: "CT Image IOD",
			Modules: map[string]ModuleRef{
				"patient":             {Usage: UsageM},
				"clinicalTrialSubject": {Usage: UsageU},
				"generalStudy":        {Usage: UsageM},
				"generalSeries":       {Usage: UsageM},
				"imagePixel":          {Usage: UsageM},
				"ctImage":             {Usage: UsageM},
				"sopCommon":           {Usage: UsageM},
			},
		},
		enhancedXAStorageUID: {
			Title: "Enhanced X-Ray Angiographic Image IOD",
			Modules: map[string]ModuleRef{
				"patient":       {Usage: UsageM},
				"generalStudy":  {Usage: UsageM},
				"generalSeries": {Usage: UsageM},
				"frameOfReference": {
					Usage:     UsageC,
					Condition: "Required if the Series includes frames whose geometry is known.",
				},
				"enhancedXAImage": {Usage: UsageM},
				"sopCommon":       {Usage: UsageM},
			},
		},
	}}

	modules := &ModuleSpecs{byRef: map[string]ModuleEntry{
		"patient": {
			"(0010,0010)": {Type: Type2}, // Patient's Name
			"(0010,0020)": {Type: Type2}, // Patient ID
			"(0010,0040)": {Type: Type2}, // Patient's Sex
		},
		"clinicalTrialSubject": {
			"(0012,0010)": {Type: Type1}, // Clinical Trial Sponsor Name
			"(0012,0020)": {Type: Type1}, // Clinical Trial Protocol ID
		},
		"generalStudy": {
			"(0020,000D)": {Type: Type1}, // Study Instance UID
			"(0008,0020)": {Type: Type2}, // Study Date
			"(0008,0030)": {Type: Type2}, // Study Time
		},
		"generalSeries": {
			"(0008,0060)": {Type: Type1}, // Modality
			"(0020,000E)": {Type: Type1}, // Series Instance UID
		},
		"imagePixel": {
			"(0028,0002)": {Type: Type1}, // Samples per Pixel
			"(0028,0004)": {Type: Type1}, // Photometric Interpretation
			"(0028,0010)": {Type: Type1}, // Rows
			"(0028,0011)": {Type: Type1}, // Columns
			"(0028,0100)": {Type: Type1}, // Bits Allocated
			"(0028,0101)": {Type: Type1}, // Bits Stored
			"(0028,0102)": {Type: Type1}, // High Bit
			"(0028,0103)": {Type: Type1}, // Pixel Representation
			"(7FE0,0010)": {Type: Type1}, // Pixel Data
		},
		"ctImage": {
			"(0028,1052)": {Type: Type1}, // Rescale Intercept
			"(0028,1053)": {Type: Type1}, // Rescale Slope
		},
		"sopCommon": {
			"(0008,0016)": {Type: Type1}, // SOP Class UID
			"(0008,0018)": {Type: Type1}, // SOP Instance UID
		},
		// Enhanced X-Ray Angiographic Image's Frame of Reference module ties
		// both of its attributes to the same presence condition on C-Arm
		// Positioner Tabletop Relationship, matching
		// dcm_spec_tools' test_iod_validator.py Enhanced XA scenarios:
		// Frame of Reference UID carries a permissive "may be present
		// otherwise" tail (so it's never flagged not-allowed), while
		// Synchronization Trigger has no such tail and is flagged
		// not-allowed when present but the condition doesn't hold.
		"frameOfReference": {
			"(0020,0052)": {
				Type:      Type1C,
				Condition: "Required if C-Arm Positioner Tabletop Relationship (0018,9476) is present. May be present otherwise.",
			},
			"(0018,106A)": {
				Type:      Type1C,
				Condition: "Required if C-Arm Positioner Tabletop Relationship (0018,9476) is present.",
			},
		},
		"enhancedXAImage": {
			"(0018,9476)": {Type: Type3}, // C-Arm Positioner Tabletop Relationship
			"(0028,0008)": {Type: Type1}, // Number of Frames
		},
	}}

	return iod, modules
}

const (
	ctImageStorageUID   = "1.2.840.10008.5.1.4.1.1.2"
	enhancedXAStorageUID = "1.2.840.10008.5.1.4.1.1.12.1.1"
)
