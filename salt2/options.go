// SPDX-License-Identifier: MIT

package salt2

import (
	"github.com/katalvlaran/saltmag/internal/logging"
	"github.com/katalvlaran/saltmag/photometry"
	"github.com/sirupsen/logrus"
)

// Initialize option bits.
const (
	// InitStrictCoverage fails initialization on any error-map coverage gap.
	InitStrictCoverage = 64
	// InitLegacyColor is accepted for compatibility and only logged.
	InitLegacyColor = 128
)

// ComputeMagnitude option bits.
const (
	// OptFlux returns 10^(-0.4*mag) instead of mag.
	OptFlux = 1
	// OptWarnBadFlux logs a warning for every epoch with no usable flux.
	OptWarnBadFlux = 2
	// OptNoErrors skips the error model; errors are 0.
	OptNoErrors = 4
	// OptDebug logs a debug dump of every epoch.
	OptDebug = 8
)

// Magnitude sentinels.
const (
	// MagZeroFlux is returned for epochs with no usable flux.
	MagZeroFlux = 99.0
	// MagUndefined marks spectrum bins with no magnitude.
	MagUndefined = 128.0
)

// Option configures Initialize and Loader.Load.
type Option func(*Options)

// Options is the effective initialization configuration.
type Options struct {
	Photometry []photometry.Option
	// SummaryLams are the wavelengths of the init summary; nil disables it.
	SummaryLams []float64
	Log         logrus.FieldLogger
}

// WithPhotometry passes options to the band integrator (extinction curves,
// smearing).
func WithPhotometry(opts ...photometry.Option) Option {
	return func(o *Options) { o.Photometry = append(o.Photometry, opts...) }
}

// WithSummary sets the wavelengths of the summary logged after init.
// An empty list disables the summary.
func WithSummary(lams []float64) Option {
	return func(o *Options) { o.SummaryLams = append([]float64(nil), lams...) }
}

// WithLogger injects the logger passed to every loader.
func WithLogger(l logrus.FieldLogger) Option {
	return func(o *Options) { o.Log = l }
}

func gatherOptions(opts ...Option) Options {
	o := Options{SummaryLams: DefaultSummaryLams()}
	for _, fn := range opts {
		if fn != nil {
			fn(&o)
		}
	}
	o.Log = logging.Or(o.Log)

	return o
}
