// SPDX-License-Identifier: MIT

package sedfile

import "github.com/katalvlaran/saltmag/internal/fault"

// Curve is a two-column table (x increasing).
type Curve struct {
	X, Y []float64
}

// Len returns the number of points.
func (c Curve) Len() int { return len(c.X) }

// ReadCurve reads a two-column file. An existing but empty file yields an
// empty Curve and no error; callers decide what "empty" means.
func ReadCurve(path string, maxRows int) (Curve, error) {
	const op = "sedfile.ReadCurve"
	var c Curve
	err := scanFields(op, path, func(lineNo int, fields []string) error {
		v, err := parseFloats(op, path, lineNo, fields, 2)
		if err != nil {
			return err
		}
		if maxRows > 0 && len(c.X) >= maxRows {
			return fault.Newf(op, ErrTooManyBins, "curve exceeds row bound",
				"'%s': more than %d rows", path, maxRows)
		}
		c.X = append(c.X, v[0])
		c.Y = append(c.Y, v[1])

		return nil
	})
	if err != nil {
		return Curve{}, err
	}

	return c, nil
}
