// SPDX-License-Identifier: MIT

package sedfile

// Read windows applied to flux grids; rows outside are dropped silently.
const (
	DefaultPhaseMin = -20.0
	DefaultPhaseMax = 200.0
	DefaultLamMin   = 1000.0
	DefaultLamMax   = 30000.0
)

// DefaultMaxBins bounds nPhase*nLam for a single grid file.
const DefaultMaxBins = 200000

// Option configures ReadGrid.
type Option func(*Options)

// Options is the effective read configuration.
type Options struct {
	PhaseMin, PhaseMax float64
	LamMin, LamMax     float64
	MaxBins            int
}

// WithPhaseRange overrides the phase read window.
// Panics if min > max (programmer error).
func WithPhaseRange(min, max float64) Option {
	if min > max {
		panic("sedfile: WithPhaseRange min > max")
	}

	return func(o *Options) { o.PhaseMin, o.PhaseMax = min, max }
}

// WithLamRange overrides the wavelength read window.
// Panics if min > max (programmer error).
func WithLamRange(min, max float64) Option {
	if min > max {
		panic("sedfile: WithLamRange min > max")
	}

	return func(o *Options) { o.LamMin, o.LamMax = min, max }
}

// WithMaxBins overrides DefaultMaxBins. Panics if n <= 0.
func WithMaxBins(n int) Option {
	if n <= 0 {
		panic("sedfile: WithMaxBins must be > 0")
	}

	return func(o *Options) { o.MaxBins = n }
}

func gatherOptions(opts ...Option) Options {
	o := Options{
		PhaseMin: DefaultPhaseMin,
		PhaseMax: DefaultPhaseMax,
		LamMin:   DefaultLamMin,
		LamMax:   DefaultLamMax,
		MaxBins:  DefaultMaxBins,
	}
	for _, fn := range opts {
		if fn != nil {
			fn(&o)
		}
	}

	return o
}
