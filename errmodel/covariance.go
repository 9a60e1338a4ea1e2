// SPDX-License-Identifier: MIT

package errmodel

import (
	"fmt"

	"github.com/katalvlaran/saltmag/photometry"
	"gonum.org/v1/gonum/mat"
)

// Integrator is the band integral the covariance needs for S1/S0.
type Integrator interface {
	Integrate(req photometry.Request) (photometry.Result, error)
}

// Epoch is one observation: a filter and an observer-frame phase.
type Epoch struct {
	Filter *photometry.Filter
	Tobs   float64
}

// Covariance returns the model covariance (mag^2) of epochs.
// MAIN DESCRIPTION:
//   - Off-diagonal: CovFactor*kcor^2 for two epochs of the same filter
//     (matched by name), 0 otherwise.
//   - Diagonal: magerr^2, with the rest phase clamped into the error-map
//     phase range and the integral evaluated at that clamped phase.
//
// Inputs:
//   - p: shared SN parameters (z, x0, x1, c, extinction); Filter and Tobs
//     are taken from each epoch.
//
// Implementation:
//   - kcor is looked up once per filter per call.
//
// Errors:
//   - ErrNilFilter; integrator and error-map errors are wrapped with the
//     offending epoch.
//
// Complexity:
//   - Time O(n^2) plus n integrals, Space O(n^2).
func (m *Model) Covariance(epochs []Epoch, p photometry.Request, in Integrator) (*mat.SymDense, error) {
	n := len(epochs)
	if n == 0 {
		return &mat.SymDense{}, nil
	}
	z1 := 1 + p.Z
	kcor := make(map[string]float64, 4)
	disp := func(f *photometry.Filter) (float64, error) {
		if v, ok := kcor[f.Name]; ok {
			return v, nil
		}
		v, err := m.maps.ColorDispersion(f.MeanLam / z1)
		if err != nil {
			return 0, err
		}
		kcor[f.Name] = v

		return v, nil
	}

	cov := mat.NewSymDense(n, nil)
	for i, ei := range epochs {
		if ei.Filter == nil {
			return nil, fmt.Errorf("Covariance: epoch %d: %w", i, ErrNilFilter)
		}

		trest := m.ClampPhase(ei.Tobs / z1)
		req := p
		req.Filter, req.Tobs = ei.Filter, trest*z1
		res, err := in.Integrate(req)
		if err != nil {
			return nil, fmt.Errorf("Covariance: epoch %d (%s): %w", i, ei.Filter.Name, err)
		}
		magerr, err := m.MagnitudeError(trest, ei.Filter.MeanLam/z1, p.Z, p.X1, res.Ratio)
		if err != nil {
			return nil, fmt.Errorf("Covariance: epoch %d (%s): %w", i, ei.Filter.Name, err)
		}
		cov.SetSym(i, i, magerr*magerr)

		for j := i + 1; j < n; j++ {
			ej := epochs[j]
			if ej.Filter == nil {
				return nil, fmt.Errorf("Covariance: epoch %d: %w", j, ErrNilFilter)
			}
			if ej.Filter.Name != ei.Filter.Name {
				continue
			}
			k, err := disp(ei.Filter)
			if err != nil {
				return nil, fmt.Errorf("Covariance: epochs %d,%d (%s): %w", i, j, ei.Filter.Name, err)
			}
			cov.SetSym(i, j, CovFactor*k*k)
		}
	}

	return cov, nil
}

// Flatten returns the row-major n*n copy of a symmetric matrix.
func Flatten(s *mat.SymDense) []float64 {
	n := s.SymmetricDim()
	out := make([]float64, 0, n*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			out = append(out, s.At(i, j))
		}
	}

	return out
}
