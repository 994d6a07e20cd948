package dicos

import "fmt"

// GetWindowLevel returns the window center and width from the dataset
func GetWindowLevel(ds *Dataset) (center, width int) {
	center, width = 40, 400 // CT soft tissue defaults

	if elem, ok := ds.FindElement(0x0028, 0x1050); ok { // Window Center
		if s, ok := elem.GetString(); ok {
			fmt.Sscanf(s, "%d", &center)
		} else if v, ok := elem.GetInt(); ok {
			center = v
		}
	}

	if elem, ok := ds.FindElement(0x0028, 0x1051); ok { // Window Width
		if s, ok := elem.GetString(); ok {
			fmt.Sscanf(s, "%d", &width)
		} else if v, ok := elem.GetInt(); ok {
			width = v
		}
	}

	return
}

// GetPixelSpacing returns the pixel spacing in mm
func GetPixelSpacing(ds *Dataset) (row, col float64) {
	row, col = 1.0, 1.0 // Defaults

	if elem, ok := ds.FindElement(0x0028, 0x0030); ok { // Pixel Spacing
		if s, ok := elem.GetString(); ok {
			fmt.Sscanf(s, "%f\\%f", &row, &col)
		}
	}

	return
}

// GetSliceThickness returns the slice thickness in mm
func GetSliceThickness(ds *Dataset) float64 {
	if elem, ok := ds.FindElement(0x0018, 0x0050); ok {
		if s, ok := elem.GetString(); ok {
			var thickness float64
			fmt.Sscanf(s, "%f", &thickness)
			return thickness
		}
	}
	return 1.0 // Default
}

// GetImagePositionPatient returns the position of the image origin
func GetImagePositionPatient(ds *Dataset) []float64 {
	if elem, ok := ds.FindElement(0x0020, 0x0032); ok {
		if s, ok := elem.GetString(); ok {
			var x, y, z float64
			if _, err := fmt.Sscanf(s, "%f\\%f\\%f", &x, &y, &z); err == nil {
				return []float64{x, y, z}
			}
		}
	}
	// Default to 0,0,0
	return []float64{0.0, 0.0, 0.0}
}

// GetImageOrientationPatient returns the orientation cosines
func GetImageOrientationPatient(ds *Dataset) []float64 {
	if elem, ok := ds.FindElement(0x0020, 0x0037); ok {
		if s, ok := elem.GetString(); ok {
			var r1, r2, r3, c1, c2, c3 float64
			if _, err := fmt.Sscanf(s, "%f\\%f\\%f\\%f\\%f\\%f", &r1, &r2, &r3, &c1, &c2, &c3); err == nil {
				return []float64{r1, r2, r3, c1, c2, c3}
			}
		}
	}
	// Default to Identity
	return []float64{1.0, 0.0, 0.0, 0.0, 1.0, 0.0}
}
