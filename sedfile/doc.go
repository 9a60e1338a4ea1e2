// Package sedfile reads the ASCII model files of a versioned SED model
// directory.
//
// Three shapes are supported:
//
//   - flux grids: three whitespace-separated columns (phase, wavelength,
//     value), phase-major, one row per node. Used by the two SED templates
//     and the four 2-D error maps.
//   - curves: two columns (x, y), e.g. the color-dispersion curve.
//   - key streams: "KEY: v1 v2 ..." tokens, e.g. the model-info and
//     late-time files.
//
// Lines starting with '#' and blank lines are skipped everywhere. Values are
// coerced with github.com/spf13/cast so that "7000." and "2.0" parse the same
// way the model directories write them.
package sedfile
