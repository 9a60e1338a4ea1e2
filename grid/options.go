// SPDX-License-Identifier: MIT

// Package grid: functional configuration for Dense numeric policy.
//
// Design goals:
//   - Deterministic behavior: no global state.
//   - Safe by construction: panic only on invalid parameters (programmer error).
package grid

// DefaultValidateNaNInf toggles strict finite-value validation in Set.
// Flux tables hold physical values and must stay finite.
const DefaultValidateNaNInf = true

// Option mutates internal options. Safe to apply repeatedly.
type Option func(*Options)

// Options stores the effective configuration after applying Option setters.
type Options struct {
	validateNaNInf bool
}

// WithNoValidateNaNInf disables finite-value validation in Set.
// Intended for scratch buffers that may legitimately hold sentinels.
func WithNoValidateNaNInf() Option {
	return func(o *Options) { o.validateNaNInf = false }
}

// gatherOptions applies opts over defaults.
func gatherOptions(opts ...Option) Options {
	o := Options{validateNaNInf: DefaultValidateNaNInf}
	for _, fn := range opts {
		if fn != nil {
			fn(&o)
		}
	}

	return o
}
