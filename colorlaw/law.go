// SPDX-License-Identifier: MIT

package colorlaw

import (
	"fmt"
	"math"
)

// Reference wavelengths (A) of the B and V bands.
const (
	BWavelength = 4302.57
	VWavelength = 5428.55
)

// Interior window of the version-0 polynomial.
const (
	V0LamMin = 2000.0
	V0LamMax = 12000.0
)

// maxV1Terms is the largest npoly accepted by version 1.
const maxV1Terms = 4

// Params is the color-law parameter vector as written in the model-info
// file, including the two reference wavelengths at Coeffs[0:2].
//
//	version 0: [B, V, a2, a3]
//	version 1: [B, V, lamMin, lamMax, npoly, p1, p2, p3, p4]
type Params struct {
	Version int       `yaml:"version"`
	Coeffs  []float64 `yaml:"params,flow"`
}

// NParams returns the length of the parameter vector for version.
func NParams(version int) (int, error) {
	switch version {
	case 0:
		return 4, nil
	case 1:
		return 5 + maxV1Terms, nil
	default:
		return 0, fmt.Errorf("NParams(%d): %w", version, ErrBadVersion)
	}
}

// DefaultParams returns version 0 with zero polynomial terms.
func DefaultParams() Params {
	return Params{Version: 0, Coeffs: []float64{BWavelength, VWavelength, 0, 0}}
}

// Law is a closed-form color law.
type Law interface {
	// Version returns 0 or 1.
	Version() int
	// Poly returns P(lambda) in magnitude space.
	Poly(lam float64) float64
	// Correction returns the multiplicative flux correction at (lam, c).
	Correction(lam, c float64) float64
}

// New returns the Law selected by p.Version.
// MAIN DESCRIPTION:
//   - Validate the parameter vector and bind it to a concrete law.
//
// Errors:
//   - ErrBadVersion for an unknown version.
//   - ErrBadParams for a short vector, B == V, an empty v1 window, or
//     npoly outside [0, 4].
func New(p Params, colorOffset float64) (Law, error) {
	n, err := NParams(p.Version)
	if err != nil {
		return nil, err
	}
	if len(p.Coeffs) < n {
		return nil, fmt.Errorf("New: version %d needs %d params, got %d: %w",
			p.Version, n, len(p.Coeffs), ErrBadParams)
	}
	b, v := p.Coeffs[0], p.Coeffs[1]
	if v == b {
		return nil, fmt.Errorf("New: B == V == %g: %w", b, ErrBadParams)
	}
	base := reduced{b: b, v: v, offset: colorOffset}

	if p.Version == 0 {
		a2, a3 := p.Coeffs[2], p.Coeffs[3]
		return &poly0{reduced: base, a1: 1 - a2 - a3, a2: a2, a3: a3}, nil
	}

	lamMin, lamMax := p.Coeffs[2], p.Coeffs[3]
	if !(lamMax > lamMin) {
		return nil, fmt.Errorf("New: window [%g, %g]: %w", lamMin, lamMax, ErrBadParams)
	}
	npoly := int(p.Coeffs[4])
	if npoly < 0 || npoly > maxV1Terms {
		return nil, fmt.Errorf("New: npoly %d: %w", npoly, ErrBadParams)
	}
	l := &guy10{reduced: base, alpha: 1, coef: append([]float64(nil), p.Coeffs[5:5+npoly]...)}
	for _, c := range l.coef {
		l.alpha -= c
	}
	l.rMin, l.rMax = base.r(lamMin), base.r(lamMax)
	l.pMin, l.dMin = l.interior(l.rMin)
	l.pMax, l.dMax = l.interior(l.rMax)

	return l, nil
}

// reduced holds the reference wavelengths and the color offset.
type reduced struct {
	b, v, offset float64
}

func (r reduced) r(lam float64) float64 { return (lam - r.b) / (r.v - r.b) }

func (r reduced) correction(p, c float64) float64 {
	return math.Pow(10, 0.4*(c-r.offset)*p)
}

// poly0: P = a1 r + a2 r^2 + a3 r^3, frozen outside [V0LamMin, V0LamMax].
type poly0 struct {
	reduced
	a1, a2, a3 float64
}

func (l *poly0) Version() int { return 0 }

func (l *poly0) Poly(lam float64) float64 {
	if lam < V0LamMin {
		lam = V0LamMin
	} else if lam > V0LamMax {
		lam = V0LamMax
	}
	x := l.r(lam)

	return x * (l.a1 + x*(l.a2+x*l.a3))
}

func (l *poly0) Correction(lam, c float64) float64 { return l.correction(l.Poly(lam), c) }

// guy10: P = alpha r + sum p_i r^(i+1) inside [rMin, rMax], linear outside.
type guy10 struct {
	reduced
	alpha      float64
	coef       []float64
	rMin, rMax float64
	pMin, dMin float64 // P and dP/dr at rMin
	pMax, dMax float64 // P and dP/dr at rMax
}

func (l *guy10) Version() int { return 1 }

// interior returns P(x) and dP/dx of the window polynomial.
func (l *guy10) interior(x float64) (p, d float64) {
	p = l.alpha * x
	d = l.alpha
	xp := x // x^(i+1)
	for i, c := range l.coef {
		d += float64(i+2) * c * xp
		xp *= x
		p += c * xp
	}

	return p, d
}

func (l *guy10) Poly(lam float64) float64 {
	x := l.r(lam)
	switch {
	case x < l.rMin:
		return l.pMin + l.dMin*(x-l.rMin)
	case x > l.rMax:
		return l.pMax + l.dMax*(x-l.rMax)
	default:
		p, _ := l.interior(x)
		return p
	}
}

func (l *guy10) Correction(lam, c float64) float64 { return l.correction(l.Poly(lam), c) }
