// SPDX-License-Identifier: MIT

package errmap

import "errors"

var (
	// ErrCoverage indicates at least one map does not cover the flux surface.
	ErrCoverage = errors.New("errmap: error maps do not cover the SED range")

	// ErrOutOfDomain indicates a color-dispersion query outside the curve.
	ErrOutOfDomain = errors.New("errmap: wavelength outside color-dispersion range")

	// ErrTooFewBins indicates a color-dispersion curve with a single node.
	ErrTooFewBins = errors.New("errmap: too few bins for lookup")

	// ErrBadOption indicates an interpolation mode outside {0, 1, 2}.
	ErrBadOption = errors.New("errmap: invalid option")
)
