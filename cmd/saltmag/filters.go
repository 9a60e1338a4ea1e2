// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"os"

	"github.com/katalvlaran/saltmag/photometry"
	"github.com/tidwall/gjson"
)

// filterSet is a parsed filter file, in file order.
type filterSet struct {
	order  []string
	byName map[string]*photometry.Filter
}

// get returns the named filters in the order given.
func (s *filterSet) get(names []string) ([]*photometry.Filter, error) {
	out := make([]*photometry.Filter, len(names))
	for i, n := range names {
		f, ok := s.byName[n]
		if !ok {
			return nil, fmt.Errorf("saltmag: unknown band %q (have %v)", n, s.order)
		}
		out[i] = f
	}

	return out, nil
}

func readFilters(path string) (*filterSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	set, err := parseFilters(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return set, nil
}

// parseFilters reads
//
//	{"filters": [{"name": "g", "zp": 25.0, "lam": [...], "trans": [...], "mean": 4800}]}
//
// where "mean" optionally overrides the transmission-weighted mean wavelength.
func parseFilters(data []byte) (*filterSet, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("saltmag: filter file is not valid JSON")
	}
	list := gjson.GetBytes(data, "filters")
	if !list.IsArray() || len(list.Array()) == 0 {
		return nil, fmt.Errorf("saltmag: filter file has no 'filters' array")
	}

	set := &filterSet{byName: make(map[string]*photometry.Filter)}
	for i, r := range list.Array() {
		name := r.Get("name").String()
		if name == "" {
			return nil, fmt.Errorf("saltmag: filter %d has no name", i)
		}
		if _, dup := set.byName[name]; dup {
			return nil, fmt.Errorf("saltmag: filter %q defined twice", name)
		}
		f, err := photometry.NewFilter(name, floatsOf(r.Get("lam")), floatsOf(r.Get("trans")), r.Get("zp").Float())
		if err != nil {
			return nil, err
		}
		if m := r.Get("mean"); m.Exists() {
			f.MeanLam = m.Float()
		}
		set.byName[name] = f
		set.order = append(set.order, name)
	}

	return set, nil
}

func floatsOf(r gjson.Result) []float64 {
	arr := r.Array()
	out := make([]float64, len(arr))
	for i, v := range arr {
		out[i] = v.Float()
	}

	return out
}
