package kdtree

import "github.com/valyala/fastrand"

// selectKth partitions items so that the element of rank k on axis is at
// position k, nothing before it is greater and nothing after it is smaller.
//
// Pivots are drawn from a generator seeded by the sub-range position, so the
// result depends only on the input and the seed.
func (b *builder[T, S]) selectKth(items []T, k, offset, axis int) {
	var rng fastrand.RNG
	rng.Seed(pivotSeed(b.seed, offset, len(items)))

	lo, hi := 0, len(items)
	for hi-lo > 1 {
		p := lo + int(rng.Uint32n(uint32(hi-lo)))
		lt, gt := b.partition(items[lo:hi], p-lo, axis)
		lt, gt = lo+lt, lo+gt
		switch {
		case k < lt:
			hi = lt
		case k >= gt:
			lo = gt
		default:
			return
		}
	}
}

// partition rearranges items into three runs: less than, equal to and greater
// than the value at pivot on axis. It returns the bounds [lt, gt) of the
// equal run, which always holds the pivot. Runs of equal keys are settled in
// one pass, so heavy duplication does not degrade selection.
func (b *builder[T, S]) partition(items []T, pivot, axis int) (lt, gt int) {
	v := b.coord(items[pivot], axis)
	i := 0
	gt = len(items)
	for i < gt {
		switch c := Compare(b.coord(items[i], axis), v); {
		case c < 0:
			items[lt], items[i] = items[i], items[lt]
			lt++
			i++
		case c > 0:
			gt--
			items[i], items[gt] = items[gt], items[i]
		default:
			i++
		}
	}
	return lt, gt
}

func pivotSeed(seed uint32, offset, n int) uint32 {
	s := seed ^ uint32(offset)*0x9e3779b1 ^ uint32(n)*0x85ebca77
	s ^= s >> 16
	// a zero state makes fastrand reseed from the global source
	return s | 1
}
