// SPDX-License-Identifier: MIT

package errmap

import (
	"github.com/katalvlaran/saltmag/internal/logging"
	"github.com/sirupsen/logrus"
)

// Interpolation modes of the 2-D maps.
const (
	InterpOff    = 0
	InterpLinear = 1
	InterpSpline = 2
)

// Coverage tolerances.
const (
	LamTol   = 10.0 // A
	PhaseTol = 1.1  // days
)

// DefaultMaxBins bounds nPhase*nLam of one map.
const DefaultMaxBins = 200000

// Option configures Load.
type Option func(*Options)

// Options is the effective load configuration.
type Options struct {
	Interp    int
	ColorDisp bool
	Strict    bool
	MaxBins   int
	Log       logrus.FieldLogger
}

// WithInterp selects the 2-D interpolation mode. Panics on values outside
// {InterpOff, InterpLinear, InterpSpline}.
func WithInterp(mode int) Option {
	if mode < InterpOff || mode > InterpSpline {
		panic("errmap: WithInterp mode must be 0, 1 or 2")
	}

	return func(o *Options) { o.Interp = mode }
}

// WithColorDispersion enables (default) or disables the color-dispersion term.
func WithColorDispersion(on bool) Option {
	return func(o *Options) { o.ColorDisp = on }
}

// WithStrictCoverage turns coverage warnings into a single ErrCoverage.
func WithStrictCoverage() Option {
	return func(o *Options) { o.Strict = true }
}

// WithMaxBins overrides DefaultMaxBins. Panics if n <= 1.
func WithMaxBins(n int) Option {
	if n <= 1 {
		panic("errmap: WithMaxBins must be > 1")
	}

	return func(o *Options) { o.MaxBins = n }
}

// WithLogger injects the logger used for load messages and warnings.
func WithLogger(l logrus.FieldLogger) Option {
	return func(o *Options) { o.Log = l }
}

func gatherOptions(opts ...Option) Options {
	o := Options{Interp: InterpSpline, ColorDisp: true, MaxBins: DefaultMaxBins}
	for _, fn := range opts {
		if fn != nil {
			fn(&o)
		}
	}
	o.Log = logging.Or(o.Log)

	return o
}
