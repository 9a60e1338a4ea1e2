package template

import "github.com/katalvlaran/saltmag/grid"

// ValidateForTest exposes validate to the external test package.
func ValidateForTest(k int, src, dst *grid.Surface, rebinDay, rebinLam int, relaxed bool) error {
	o := gatherOptions(WithRefined(rebinDay, rebinLam))
	o.Relaxed = relaxed

	return validate(k, src, dst, o)
}
