package camera

import "strings"

// Change is a bitmask of the camera attributes modified since the matrices were last computed.
// View and Projection are the coarse "needs recompute" bits. Position, Scale and Rotation are
// fine-grained bits a variant uses to rebuild only the affected parts of its view matrix; any
// of them being set implies View is set too.
type Change uint8

const (
	// ChangeNone means both cached matrices are current.
	ChangeNone Change = 0
	// ChangeProjection means the projection matrix needs refreshing.
	ChangeProjection Change = 1 << (iota - 1)
	// ChangeView means the view matrix needs refreshing.
	ChangeView
	// ChangePosition means the camera position changed.
	ChangePosition
	// ChangeScale means the camera zoom changed.
	ChangeScale
	// ChangeRotation means the camera orientation changed.
	ChangeRotation

	// ChangeAll is every bit.
	ChangeAll = ChangeProjection | ChangeView | ChangePosition | ChangeScale | ChangeRotation
)

var changeNames = []struct {
	flag Change
	name string
}{
	{ChangeProjection, "Projection"},
	{ChangeView, "View"},
	{ChangePosition, "Position"},
	{ChangeScale, "Scale"},
	{ChangeRotation, "Rotation"},
}

// Has reports whether every bit in flags is set in c.
//
// Parameters:
//   - flags: the bits to test
//
// Returns:
//   - bool: true if all of flags are set
func (c Change) Has(flags Change) bool {
	return c&flags == flags
}

// Any reports whether at least one bit in flags is set in c.
func (c Change) Any(flags Change) bool {
	return c&flags != 0
}

// String returns the set flags joined by "|", e.g. "View|Position".
func (c Change) String() string {
	if c == ChangeNone {
		return "None"
	}
	if c == ChangeAll {
		return "All"
	}
	var sb strings.Builder
	for _, n := range changeNames {
		if c&n.flag == 0 {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteByte('|')
		}
		sb.WriteString(n.name)
	}
	return sb.String()
}
