package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-sod/spatial/internal/query"
)

const points = `
dimensions = 3

[[points]]
id = "a"
coords = [1.0, 2.0, 3.0]

[[points]]
id = "b"
coords = [3.0, 1.0, 2.0]

[[points]]
id = "c"
coords = [2.0, 3.0, 1.0]

[[points]]
id = "d"
coords = [2.0, 2.0, 2.0]

[[points]]
id = "e"
coords = [30.0, 30.0, 30.0]
`

func writeDataset(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "points.toml")
	require.NoError(t, os.WriteFile(path, []byte(points), 0o600))
	return path
}

func runJSON(t *testing.T, args ...string) query.Response {
	t.Helper()
	var out bytes.Buffer
	require.NoError(t, run(context.Background(), args, &out))
	var resp query.Response
	require.NoError(t, json.Unmarshal(out.Bytes(), &resp))
	require.Len(t, resp.Results, 1)
	return resp
}

func ids(r query.Result) []string {
	out := make([]string, len(r.Neighbors))
	for i, n := range r.Neighbors {
		out[i] = n.ID
	}
	return out
}

func TestRunLocal(t *testing.T) {
	data := writeDataset(t)
	tests := []struct {
		name     string
		args     []string
		expected []string
	}{
		{name: "nearest", args: []string{"-op", "nearest", "-q", "3.1,0.9,2.1"}, expected: []string{"b"}},
		{name: "knn", args: []string{"-op", "knn", "-q", "1.5,2.5,1.8", "-k", "2", "-exclude", "d"}, expected: []string{"c", "a"}},
		{name: "within", args: []string{"-op", "within", "-q", "0,0,0", "-hi", "3,3,2"}, expected: []string{"b", "c", "d"}},
		{name: "radius", args: []string{"-op", "radius", "-q", "2,1.5,2.5", "-r", "1.5"}, expected: []string{"a", "b", "d"}},
		{name: "brute", args: []string{"-op", "nearest", "-q", "29,29,29", "-alg", "BRUTE", "-metric", "chebyshev"}, expected: []string{"e"}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			resp := runJSON(t, append([]string{"-data", data}, test.args...)...)
			assert.Equal(t, test.expected, ids(resp.Results[0]))
		})
	}

	resp := runJSON(t, "-data", data, "-op", "outlier", "-id", "e")
	require.NotNil(t, resp.Results[0].Outlier)
	assert.True(t, *resp.Results[0].Outlier)

	t.Setenv("SPATIAL_LOF_WORKERS", "1")
	resp = runJSON(t, "-data", data, "-op", "outlier", "-id", "e")
	require.NotNil(t, resp.Results[0].Outlier)
	assert.True(t, *resp.Results[0].Outlier)
}

func TestRunErrors(t *testing.T) {
	data := writeDataset(t)
	tests := []struct {
		name string
		args []string
	}{
		{name: "no_source", args: []string{"-op", "nearest", "-q", "1,2,3"}},
		{name: "both_sources", args: []string{"-data", data, "-remote", "http://localhost", "-q", "1,2,3"}},
		{name: "bad_point", args: []string{"-data", data, "-q", "1,x,3"}},
		{name: "dimensions", args: []string{"-data", data, "-q", "1,2"}},
		{name: "unknown_op", args: []string{"-data", data, "-op", "farthest", "-q", "1,2,3"}},
		{name: "missing_hi", args: []string{"-data", data, "-op", "within", "-q", "1,2,3"}},
		{name: "unknown_flag", args: []string{"-data", data, "-z"}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var out bytes.Buffer
			assert.Error(t, run(context.Background(), test.args, &out))
		})
	}
}

func TestRunRemote(t *testing.T) {
	var got query.Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/knn", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"requestId": "r1", "results": [{"neighbors": [{"id": "a", "point": [1, 2], "distance": 1}]}]}`))
	}))
	defer srv.Close()
	t.Setenv("SPATIAL_CLIENT_TOKEN", "secret")

	resp := runJSON(t, "-remote", srv.URL+"/", "-op", "knn", "-q", "1,2", "-k", "3")
	assert.Equal(t, "r1", resp.RequestID)
	assert.Equal(t, []string{"a"}, ids(resp.Results[0]))
	require.Len(t, got.Queries, 1)
	assert.Equal(t, 3, got.Queries[0].K)
	assert.Equal(t, []float64{1, 2}, got.Queries[0].Point)
}
