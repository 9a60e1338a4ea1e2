// SPDX-License-Identifier: MIT

package sedfile

import (
	"bufio"
	"os"
	"strings"

	"github.com/katalvlaran/saltmag/internal/fault"
	"github.com/spf13/cast"
)

// maxLineBytes bounds a single ASCII row.
const maxLineBytes = 1 << 20

// scanFields calls fn with the whitespace fields of every data line of path.
// Comment lines ('#' first non-blank rune) and blank lines are skipped; a
// trailing "# ..." on a data line is cut off.
func scanFields(op, path string, fn func(lineNo int, fields []string) error) error {
	f, err := os.Open(path)
	if err != nil {
		return fault.Newf(op, err, "cannot open model file", "check '%s'", path)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := sc.Text()
		if k := strings.IndexByte(line, '#'); k >= 0 {
			line = line[:k]
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		if err = fn(lineNo, fields); err != nil {
			return err
		}
	}
	if err = sc.Err(); err != nil {
		return fault.Newf(op, err, "read error", "see '%s' after line %d", path, lineNo)
	}

	return nil
}

// parseFloats coerces the first n fields into floats.
func parseFloats(op, path string, lineNo int, fields []string, n int) ([]float64, error) {
	if len(fields) < n {
		return nil, fault.Newf(op, ErrSyntax,
			"too few columns", "'%s' line %d: want %d, got %d", path, lineNo, n, len(fields))
	}
	out := make([]float64, n)
	for k := 0; k < n; k++ {
		v, err := cast.ToFloat64E(fields[k])
		if err != nil {
			return nil, fault.Newf(op, ErrSyntax,
				"bad number", "'%s' line %d column %d: %q", path, lineNo, k+1, fields[k])
		}
		out[k] = v
	}

	return out, nil
}
