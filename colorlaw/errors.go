// SPDX-License-Identifier: MIT

package colorlaw

import "errors"

var (
	// ErrBadVersion indicates a color-law version other than 0 or 1.
	ErrBadVersion = errors.New("colorlaw: invalid version")

	// ErrBadParams indicates a parameter vector of the wrong length or with
	// degenerate reference wavelengths.
	ErrBadParams = errors.New("colorlaw: invalid parameters")

	// ErrEndpoint indicates a color axis whose first or last node differs
	// from the requested bounds.
	ErrEndpoint = errors.New("colorlaw: color table endpoint mismatch")
)
