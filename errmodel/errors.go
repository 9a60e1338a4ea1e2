// SPDX-License-Identifier: MIT

package errmodel

import "errors"

var (
	// ErrNilMaps indicates a Model without error maps.
	ErrNilMaps = errors.New("errmodel: nil error-map store")

	// ErrNilFilter indicates an epoch without a filter.
	ErrNilFilter = errors.New("errmodel: epoch has no filter")
)
