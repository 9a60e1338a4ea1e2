// SPDX-License-Identifier: MIT

package photometry

// Physical and numerical constants of the integral.
const (
	// FluxScale is the internal flux unit of the templates.
	FluxScale = 1e-12
	// HC is Planck's constant times c, in erg*A.
	HC = 6.62607015e-27 * 2.99792458e18
	// TransMin is the transmission below which a filter bin is skipped.
	TransMin = 1e-12
	// HostMin is the RV and AV threshold for host extinction.
	HostMin = 1e-9
	// DefaultMWRV is the Milky-Way total-to-selective ratio.
	DefaultMWRV = 3.1
)

// Smearer returns magnitude offsets for intrinsic scatter at rest phase
// phase, one per rest wavelength. Offsets brighten when negative.
type Smearer interface {
	MagSmear(phase float64, lamRest []float64) []float64
}

// SmearFunc adapts a plain function to Smearer.
type SmearFunc func(phase float64, lamRest []float64) []float64

// MagSmear calls f.
func (f SmearFunc) MagSmear(phase float64, lamRest []float64) []float64 { return f(phase, lamRest) }

// Option configures NewIntegrator.
type Option func(*Options)

// Options is the effective integrator configuration.
type Options struct {
	MW    Extinction
	MWRV  float64
	Host  Extinction
	Smear Smearer
}

// WithMilkyWay sets the Galactic extinction curve and its RV.
// Panics if ext is nil or rv <= 0.
func WithMilkyWay(ext Extinction, rv float64) Option {
	if ext == nil || rv <= 0 {
		panic("photometry: WithMilkyWay needs a curve and rv > 0")
	}

	return func(o *Options) { o.MW, o.MWRV = ext, rv }
}

// WithHost sets the host extinction curve, applied in the rest frame.
func WithHost(ext Extinction) Option {
	return func(o *Options) { o.Host = ext }
}

// WithSmearer enables intrinsic scatter.
func WithSmearer(s Smearer) Option {
	return func(o *Options) { o.Smear = s }
}

func gatherOptions(opts ...Option) Options {
	o := Options{MW: CCM89{}, MWRV: DefaultMWRV, Host: CCM89{}}
	for _, fn := range opts {
		if fn != nil {
			fn(&o)
		}
	}
	if o.Host == nil {
		o.Host = NoExtinction
	}

	return o
}
