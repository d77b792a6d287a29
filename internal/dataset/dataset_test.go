package dataset

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-sod/spatial/internal/geom"
)

const sample = `
dimensions = 3

[[points]]
id = "a"
coords = [1.0, 2.0, 3.0]

[[points]]
id = "b"
coords = [3.0, 1.0, 2.0]

[[points]]
coords = [2.0, 3.0, 1.0]
`

func TestDecode(t *testing.T) {
	t.Parallel()
	ds, err := Decode(strings.NewReader(sample))
	require.NoError(t, err)
	assert.Equal(t, 3, ds.Dimensions)
	assert.Equal(t, 3, ds.Len())
	assert.Equal(t, []string{"a", "b", "2"}, ds.IDs())
	assert.Equal(t, []geom.Point{{1, 2, 3}, {3, 1, 2}, {2, 3, 1}}, ds.Vectors())
}

func TestDecodeInvalid(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		input string
	}{
		{
			name:  "dimension_mismatch",
			input: "dimensions = 2\n[[points]]\ncoords = [1.0, 2.0, 3.0]\n",
		},
		{
			name:  "ragged",
			input: "[[points]]\ncoords = [1.0, 2.0]\n[[points]]\ncoords = [1.0]\n",
		},
		{
			name:  "duplicate_id",
			input: "[[points]]\nid = \"x\"\ncoords = [1.0]\n[[points]]\nid = \"x\"\ncoords = [2.0]\n",
		},
		{
			name:  "unknown_key",
			input: "[[points]]\ncoords = [1.0]\nlabel = \"x\"\n",
		},
		{
			name:  "zero_dimensions",
			input: "[[points]]\ncoords = []\n",
		},
	}
	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			_, err := Decode(strings.NewReader(test.input))
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}

	_, err := Decode(strings.NewReader("points = ["))
	assert.Error(t, err)
}

func TestDecodeEmpty(t *testing.T) {
	t.Parallel()
	ds, err := Decode(strings.NewReader("dimensions = 4\n"))
	require.NoError(t, err)
	assert.Zero(t, ds.Len())
	assert.Equal(t, 4, ds.Dimensions)
}

func TestLoad(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "points.toml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o600))

	ds, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3, ds.Len())

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}
