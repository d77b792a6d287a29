// Package dataset loads point sets from TOML files of the form
//
//	dimensions = 2
//
//	[[points]]
//	id = "a"
//	coords = [1.0, 2.5]
//
// Coordinates must be written as floats. Ids are optional and default to the
// position of the point in the file.
package dataset

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/BurntSushi/toml"

	"github.com/go-sod/spatial/internal/geom"
)

var ErrInvalid = errors.New("invalid dataset")

type Record struct {
	ID     string    `toml:"id"`
	Coords []float64 `toml:"coords"`
}

type Dataset struct {
	Dimensions int      `toml:"dimensions"`
	Points     []Record `toml:"points"`
}

func Load(path string) (*Dataset, error) {
	var ds Dataset
	md, err := toml.DecodeFile(path, &ds)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	if err := ds.validate(md); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &ds, nil
}

func Decode(r io.Reader) (*Dataset, error) {
	var ds Dataset
	md, err := toml.DecodeReader(r, &ds)
	if err != nil {
		return nil, fmt.Errorf("decode dataset: %w", err)
	}
	if err := ds.validate(md); err != nil {
		return nil, err
	}
	return &ds, nil
}

func (d *Dataset) validate(md toml.MetaData) error {
	if keys := md.Undecoded(); len(keys) > 0 {
		return fmt.Errorf("unknown key %s: %w", keys[0], ErrInvalid)
	}
	if d.Dimensions == 0 && len(d.Points) > 0 {
		d.Dimensions = len(d.Points[0].Coords)
	}
	if d.Dimensions < 0 || (d.Dimensions == 0 && len(d.Points) > 0) {
		return fmt.Errorf("dimension %d: %w", d.Dimensions, ErrInvalid)
	}
	seen := make(map[string]int, len(d.Points))
	for i := range d.Points {
		rec := &d.Points[i]
		if n := len(rec.Coords); n != d.Dimensions {
			return fmt.Errorf("point %d has %d coordinates, want %d: %w", i, n, d.Dimensions, ErrInvalid)
		}
		if rec.ID == "" {
			rec.ID = strconv.Itoa(i)
		}
		if j, ok := seen[rec.ID]; ok {
			return fmt.Errorf("points %d and %d share id %q: %w", j, i, rec.ID, ErrInvalid)
		}
		seen[rec.ID] = i
	}
	return nil
}

func (d *Dataset) Len() int {
	return len(d.Points)
}

func (d *Dataset) IDs() []string {
	ids := make([]string, len(d.Points))
	for i, rec := range d.Points {
		ids[i] = rec.ID
	}
	return ids
}

// Vectors returns the coordinates as points sharing the records' storage.
func (d *Dataset) Vectors() []geom.Point {
	points := make([]geom.Point, len(d.Points))
	for i, rec := range d.Points {
		points[i] = geom.NewPoint(rec.Coords)
	}
	return points
}
