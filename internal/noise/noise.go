// Package noise provides the deterministic value-noise lattice used for
// procedural terrain height (§4.8) and the per-chunk seed hash used for
// template variation (§4.8), plus an alternate Perlin sampler.
//
// The integer hash is a Murmur3-finalizer-style avalanche mix, grounded on
// Conwinds-NPCSim's internal/mathx/hash.go (Hash32/Hash2/Hash3); the lattice
// interpolation uses a cubic smoothstep rather than a quintic fade, since
// Value2D is only ever sampled once per column (§4.8 has no octave
// blending) and the extra fade-curve continuity a quintic buys for stacked
// octaves isn't exercised here.
package noise

import "math"

// avalanche mixes a 64-bit word so single-bit input changes spread across
// the whole output, the same finalizer shape as mathx.Hash32 scaled to 64
// bits.
func avalanche(x uint64) uint64 {
	x ^= x >> 33
	x *= 0xff51afd7ed558ccd
	x ^= x >> 33
	x *= 0xc4ceb9fe1a85ec53
	x ^= x >> 33
	return x
}

// smoothstep is the cubic 3t^2-2t^3 ease curve: C1-continuous, cheaper than
// a quintic fade, and sufficient for single-octave sampling.
func smoothstep(t float64) float64 {
	return t * t * (3 - 2*t)
}

func lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// Hash2 is a Murmur-finalizer-style integer hash over (x, z, seed), stable
// across runs for identical inputs. Each coordinate is folded in with a
// distinct odd multiplier before the avalanche step so swapping x and z
// (or x and seed) changes the result.
func Hash2(x, z, seed int64) uint64 {
	h := uint64(seed) * 0x9e3779b97f4a7c15
	h ^= uint64(x) * 0x85ebca6b2f7a1cd1
	h ^= uint64(z) * 0xc2b2ae3d27d4eb4f
	return avalanche(h)
}

func latticeValue(x, z, seed int64) float64 {
	h := Hash2(x, z, seed)
	return float64(h&0xFFFFFFFF) / float64(0xFFFFFFFF)
}

// Value2D samples the 2D value-noise lattice at (x, z), returning [0,1].
func Value2D(x, z float64, seed int64) float64 {
	x0 := math.Floor(x)
	z0 := math.Floor(z)
	x1 := x0 + 1
	z1 := z0 + 1

	fx := smoothstep(x - x0)
	fz := smoothstep(z - z0)

	v00 := latticeValue(int64(x0), int64(z0), seed)
	v10 := latticeValue(int64(x1), int64(z0), seed)
	v01 := latticeValue(int64(x0), int64(z1), seed)
	v11 := latticeValue(int64(x1), int64(z1), seed)

	i0 := lerp(v00, v10, fx)
	i1 := lerp(v01, v11, fx)
	return lerp(i0, i1, fz)
}

// ChunkSeed derives the deterministic per-chunk hash used by §4.8's
// apply_seed_variation: hash(seed, chunk_pos). Distinct from Hash2's
// height-sampling use so that variation rolls and terrain sampling never
// accidentally correlate.
func ChunkSeed(seed int64, cx, cy, cz int32) int64 {
	h := Hash2(int64(cx)*0x2545F4914F6CDD1D+int64(cz), int64(cy), seed)
	return int64(h)
}
