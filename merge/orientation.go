package merge

import "fmt"

// Orientation selects the page orientation for emitted output pages.
type Orientation string

const (
	// OrientationAuto derives the orientation per page from its own
	// dimensions: wider than tall means landscape.
	OrientationAuto      Orientation = "auto"
	OrientationPortrait  Orientation = "portrait"
	OrientationLandscape Orientation = "landscape"
)

// ParseOrientation maps a textual orientation to its Orientation value. The
// empty string means auto.
func ParseOrientation(s string) (Orientation, error) {
	switch Orientation(s) {
	case "", OrientationAuto:
		return OrientationAuto, nil
	case OrientationPortrait:
		return OrientationPortrait, nil
	case OrientationLandscape:
		return OrientationLandscape, nil
	default:
		return "", fmt.Errorf("merge: unknown orientation %q", s)
	}
}

// resolveOrientation applies the override precedence: the document's own
// override wins, then the merge-wide override, then the page's dimensions.
func resolveOrientation(doc, global Orientation, width, height float64) Orientation {
	if doc != OrientationAuto {
		return doc
	}
	if global != OrientationAuto {
		return global
	}
	if width > height {
		return OrientationLandscape
	}
	return OrientationPortrait
}
