// SPDX-License-Identifier: MIT

package latetime

import "errors"

var (
	// ErrNoData indicates a file without EXTRAP_PARLIST rows.
	ErrNoData = errors.New("latetime: no wavelength rows")

	// ErrDayMin indicates EXTRAP_DAYMIN below MinDayMin.
	ErrDayMin = errors.New("latetime: invalid EXTRAP_DAYMIN")

	// ErrTau indicates tau2 < tau1 in a row.
	ErrTau = errors.New("latetime: invalid decay times")

	// ErrTooManyBins indicates more than MaxLamBins rows.
	ErrTooManyBins = errors.New("latetime: too many wavelength rows")

	// ErrDay indicates an extrapolation request before DayMin.
	ErrDay = errors.New("latetime: day before EXTRAP_DAYMIN")

	// ErrInconsistent indicates an extrapolated magnitude outside [0, 99].
	ErrInconsistent = errors.New("latetime: extrapolated magnitude out of range")
)
