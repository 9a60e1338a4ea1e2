// SPDX-License-Identifier: MIT

package salt2

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/katalvlaran/saltmag/colorlaw"
	"github.com/katalvlaran/saltmag/errmap"
	"github.com/katalvlaran/saltmag/errmodel"
	"github.com/katalvlaran/saltmag/internal/fault"
	"github.com/katalvlaran/saltmag/latetime"
	"github.com/katalvlaran/saltmag/modelinfo"
	"github.com/katalvlaran/saltmag/photometry"
	"github.com/katalvlaran/saltmag/sedfile"
	"github.com/katalvlaran/saltmag/template"
	"github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"
)

// tables is everything read from a model directory.
type tables struct {
	dir     string
	variant Variant
	info    *modelinfo.Info
	fs      *template.FluxSurface
	ct      *colorlaw.Table
	maps    *errmap.Store
	late    *latetime.Model
}

// Loader builds Models and keeps the tables of every version it has read.
// A second Load of the same version, late-time override and coverage mode
// reads no file; it only prepares a fresh error-map interpolation state.
// Safe for concurrent use.
type Loader struct {
	mu     sync.Mutex
	loaded *cache.Cache
}

// NewLoader returns an empty Loader. Entries never expire.
func NewLoader() *Loader {
	return &Loader{loaded: cache.New(cache.NoExpiration, 0)}
}

var defaultLoader = NewLoader()

// Initialize loads a model version with the package default Loader.
func Initialize(version, extrapOverride string, optMask int, opts ...Option) (*Model, error) {
	return defaultLoader.Load(version, extrapOverride, optMask, opts...)
}

// Len returns the number of cached versions.
func (l *Loader) Len() int { return l.loaded.ItemCount() }

// Flush drops every cached version.
func (l *Loader) Flush() { l.loaded.Flush() }

// Load initializes a model.
// MAIN DESCRIPTION:
//   - Resolve the version, read or reuse its tables, bind the error model
//     and the integrator.
//
// Inputs:
//   - version: model name or path, see ResolveModelPath.
//   - extrapOverride: late-time model file replacing the one named in the
//     model info; "" keeps the info value.
//   - optMask: InitStrictCoverage, InitLegacyColor.
//
// Implementation:
//   - Stage 1: model info, both SED templates (refined unless the info
//     selects direct mode), the color table on the template wavelength axis.
//   - Stage 2: error maps checked against the template extent.
//   - Stage 3: the optional late-time model.
//   - Stage 4: log the effective configuration and the error summary.
//
// Errors:
//   - ErrModelPath; otherwise the first loader error (*fault.Error wrapping
//     the sentinel of the failing package).
func (l *Loader) Load(version, extrapOverride string, optMask int, opts ...Option) (*Model, error) {
	o := gatherOptions(opts...)
	dir, err := ResolveModelPath(version)
	if err != nil {
		return nil, err
	}
	v := VariantOf(dir)
	strict := optMask&InitStrictCoverage != 0
	if optMask&InitLegacyColor != 0 {
		o.Log.Info("legacy color option accepted; it has no effect")
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	key := fmt.Sprintf("%s|%s|%t", dir, extrapOverride, strict)
	var (
		t    *tables
		maps *errmap.Store
	)
	if x, ok := l.loaded.Get(key); ok {
		t = x.(*tables)
		o.Log.WithField("version", v.Name).Info("reuse model tables")
		if maps, err = t.maps.WithInterp(t.maps.Interp()); err != nil {
			return nil, fault.Newf("salt2.Load", err, "cannot prepare error maps", "dir '%s'", dir)
		}
	} else {
		if t, err = readTables(dir, v, extrapOverride, strict, o.Log); err != nil {
			return nil, err
		}
		l.loaded.Set(key, t, cache.NoExpiration)
		maps = t.maps
	}

	m, err := bind(t, maps, o)
	if err != nil {
		return nil, err
	}
	m.logSummary(o.SummaryLams)

	return m, nil
}

// readTables reads every table of a model directory.
func readTables(dir string, v Variant, extrapOverride string, strict bool, log logrus.FieldLogger) (*tables, error) {
	const op = "salt2.Load"
	log.WithFields(logrus.Fields{"version": v.Name, "dir": dir, "prefix": v.Prefix}).Info("read model")

	info, err := modelinfo.Read(dir)
	if err != nil {
		return nil, err
	}
	if y, err := info.YAML(); err == nil {
		log.Infof("model info:\n%s", y)
	}

	var raw [template.NComponents]*sedfile.Grid
	for k := range raw {
		path := filepath.Join(dir, fmt.Sprintf("%s_template_%d.dat", v.Prefix, k))
		if raw[k], err = sedfile.ReadGrid(path); err != nil {
			return nil, err
		}
	}
	topts := []template.Option{template.WithLogger(log)}
	if info.SEDInterpOpt == modelinfo.SEDDirect {
		topts = append(topts, template.WithDirect())
	} else {
		topts = append(topts, template.WithRefined(info.SEDRebin()))
	}
	if v.Relaxed {
		topts = append(topts, template.WithRelaxedCheck())
	}
	fs, err := template.Build(raw, topts...)
	if err != nil {
		return nil, err
	}

	law, err := colorlaw.New(info.ColorLaw, info.ColorOffset)
	if err != nil {
		return nil, fault.Newf(op, err, "invalid color law", "version %d in '%s'", info.ColorLaw.Version, dir)
	}
	ct, err := colorlaw.BuildTable(colorlaw.DefaultColorMin, colorlaw.DefaultColorMax, colorlaw.DefaultColorStep, fs.Lam, law)
	if err != nil {
		return nil, err
	}
	log.Infof("color-law table: %v colors x %v", ct.Color, ct.Lam)

	eopts := []errmap.Option{
		errmap.WithInterp(info.ErrMapInterpOpt),
		errmap.WithColorDispersion(info.ErrMapKcorOpt == 1),
		errmap.WithLogger(log),
	}
	if strict {
		eopts = append(eopts, errmap.WithStrictCoverage())
	}
	maps, err := errmap.Load(dir, v.Prefix, errmap.Coverage{
		DayMin: fs.DayMin(), DayMax: fs.DayMax(),
		LamMin: fs.LamMin(), LamMax: fs.LamMax(),
		Lam: fs.Lam,
	}, eopts...)
	if err != nil {
		return nil, err
	}

	t := &tables{dir: dir, variant: v, info: info, fs: fs, ct: ct, maps: maps}

	path := extrapOverride
	if path == "" && info.ExtrapLateTime != "" {
		path = info.ExtrapLateTime
		if !filepath.IsAbs(path) {
			path = filepath.Join(dir, path)
		}
	}
	if path != "" {
		if t.late, err = latetime.Load(path, latetime.WithLogger(log)); err != nil {
			return nil, err
		}
	}

	return t, nil
}

// bind builds a Model over t using maps for the error model.
func bind(t *tables, maps *errmap.Store, o Options) (*Model, error) {
	em, err := errmodel.New(maps,
		errmodel.WithFudge(errmodel.FudgeFrom(t.info)),
		errmodel.WithRetrained(t.variant.Retrained),
		errmodel.WithLogger(o.Log))
	if err != nil {
		return nil, err
	}
	in, err := photometry.NewIntegrator(t.fs, t.ct, o.Photometry...)
	if err != nil {
		return nil, err
	}

	return &Model{
		dir: t.dir, variant: t.variant, info: t.info,
		integ: in, errs: em, late: t.late, log: o.Log,
	}, nil
}
