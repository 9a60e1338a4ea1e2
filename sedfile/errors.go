// SPDX-License-Identifier: MIT

package sedfile

import "errors"

var (
	// ErrNoData indicates a grid file without a single usable row.
	ErrNoData = errors.New("sedfile: no data")

	// ErrSyntax indicates a row with the wrong column count or a token that
	// does not coerce to a number.
	ErrSyntax = errors.New("sedfile: syntax error")

	// ErrRagged indicates phase blocks that do not all hold the same wavelengths.
	ErrRagged = errors.New("sedfile: ragged grid")

	// ErrTooManyBins indicates nPhase*nLam beyond the configured bound.
	ErrTooManyBins = errors.New("sedfile: too many bins")

	// ErrEndOfTokens indicates a key expecting more values than the stream holds.
	ErrEndOfTokens = errors.New("sedfile: unexpected end of tokens")
)
