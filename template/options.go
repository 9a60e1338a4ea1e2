// SPDX-License-Identifier: MIT

package template

import (
	"github.com/katalvlaran/saltmag/internal/logging"
	"github.com/sirupsen/logrus"
)

// Mode selects how the table is produced from the raw grids.
type Mode int

const (
	// Direct copies the raw nodes.
	Direct Mode = iota + 1
	// Refined subdivides both axes with quadratic interpolation.
	Refined
)

// Refinement defaults.
const (
	DefaultRebinDay = 5
	DefaultRebinLam = 2
)

// Validation tolerances on |Fi-Fo|/(Fi+Fo).
const (
	TolInterior = 1e-5
	TolEdge     = 1e-3
	// NegligibleFlux is skipped in relaxed mode.
	NegligibleFlux = 1e-25
)

// Option configures Build.
type Option func(*Options)

// Options is the effective build configuration.
type Options struct {
	Mode               Mode
	RebinDay, RebinLam int
	Relaxed            bool
	Log                logrus.FieldLogger
}

// WithDirect disables refinement.
func WithDirect() Option {
	return func(o *Options) { o.Mode = Direct }
}

// WithRefined enables refinement with the given factors.
// Panics if either factor is < 1.
func WithRefined(day, lam int) Option {
	if day < 1 || lam < 1 {
		panic("template: WithRefined factors must be >= 1")
	}

	return func(o *Options) { o.Mode, o.RebinDay, o.RebinLam = Refined, day, lam }
}

// WithRelaxedCheck widens the validation tolerance to TolEdge everywhere and
// skips nodes with negligible original flux.
func WithRelaxedCheck() Option {
	return func(o *Options) { o.Relaxed = true }
}

// WithLogger injects the logger used for the binning summary.
func WithLogger(l logrus.FieldLogger) Option {
	return func(o *Options) { o.Log = l }
}

func gatherOptions(opts ...Option) Options {
	o := Options{Mode: Refined, RebinDay: DefaultRebinDay, RebinLam: DefaultRebinLam}
	for _, fn := range opts {
		if fn != nil {
			fn(&o)
		}
	}
	o.Log = logging.Or(o.Log)
	if o.Mode == Direct {
		o.RebinDay, o.RebinLam = 1, 1
	}

	return o
}
