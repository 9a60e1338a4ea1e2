// SPDX-License-Identifier: MIT

package photometry

import "errors"

var (
	// ErrFilter indicates an unusable filter definition.
	ErrFilter = errors.New("photometry: invalid filter")

	// ErrBinning indicates the color table and flux surface disagree on
	// wavelength binning.
	ErrBinning = errors.New("photometry: color table binning differs from flux surface")

	// ErrBadRequest indicates an epoch request the integrator cannot evaluate.
	ErrBadRequest = errors.New("photometry: invalid request")
)
