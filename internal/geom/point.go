package geom

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-sod/spatial/pkg/container/kdtree"
)

var _ kdtree.Point[float64] = Point(nil)

// Point is a location in a float64 coordinate space.
type Point []float64

func NewPoint(vec []float64) Point {
	return vec
}

// Parse reads a comma separated list of coordinates such as "1,2.5,-3".
func Parse(s string) (Point, error) {
	fields := strings.Split(s, ",")
	p := make(Point, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return nil, fmt.Errorf("coordinate %q: %w", f, err)
		}
		p = append(p, v)
	}
	return p, nil
}

func (v Point) Dimensions() int {
	return len(v)
}

func (v Point) Dim(idx int) float64 {
	return v[idx]
}
