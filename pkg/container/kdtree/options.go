package kdtree

import "runtime"

const (
	// DefaultCutoff is the sub-range length below which a parallel build
	// continues sequentially.
	DefaultCutoff = 4096

	defaultSeed uint32 = 0x2545f491
)

type Option func(*options)

type options struct {
	dims     int
	seed     uint32
	parallel bool
	workers  int
	cutoff   int
}

func newOptions(opts []Option) options {
	o := options{
		seed:    defaultSeed,
		workers: runtime.GOMAXPROCS(0),
		cutoff:  DefaultCutoff,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.workers < 1 {
		o.workers = 1
	}
	if o.cutoff < 2 {
		o.cutoff = 2
	}
	return o
}

// WithDimensions fixes the tree dimension instead of reading it from the first item.
func WithDimensions(n int) Option {
	return func(o *options) {
		o.dims = n
	}
}

// WithSeed sets the seed of pivot selection. Builds of equal input with the
// same seed produce the same layout, sequential or parallel.
func WithSeed(seed uint32) Option {
	return func(o *options) {
		o.seed = seed
	}
}

// WithParallel arranges large sub-ranges concurrently.
func WithParallel() Option {
	return func(o *options) {
		o.parallel = true
	}
}

// WithWorkers bounds the goroutines of a parallel build. Defaults to GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithCutoff sets the sub-range length below which a parallel build recurses
// sequentially.
func WithCutoff(n int) Option {
	return func(o *options) {
		o.cutoff = n
	}
}
