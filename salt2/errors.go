// SPDX-License-Identifier: MIT

package salt2

import "errors"

var (
	// ErrModelPath indicates a version that cannot be resolved to a directory.
	ErrModelPath = errors.New("salt2: cannot resolve model directory")

	// ErrLamRange indicates a filter whose mean rest wavelength is outside
	// the model's rest-wavelength range.
	ErrLamRange = errors.New("salt2: filter outside model wavelength range")

	// ErrArgs indicates inconsistent argument lengths.
	ErrArgs = errors.New("salt2: inconsistent arguments")
)
