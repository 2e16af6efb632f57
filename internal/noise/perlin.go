package noise

import perlin "github.com/aquilax/go-perlin"

// Perlin wraps go-perlin as an alternate height sampler to the hand-rolled
// value-noise lattice above, selectable via config.TerrainSampler.
// Grounded on nicolasmd87-gopher3D's examples/Voxel/gocraft.go, which
// blends perlin.NewPerlin(2, 2, 3, seed).Noise2D at three frequencies
// (0.05/0.15/0.3 world-unit scales) with weights 0.6/0.3/0.1.
type Perlin struct {
	p *perlin.Perlin
}

// NewPerlin constructs a Perlin sampler seeded deterministically.
func NewPerlin(seed int64) *Perlin {
	return &Perlin{p: perlin.NewPerlin(2, 2, 3, seed)}
}

// Sample2D blends three octaves of the underlying Perlin.Noise2D, mirroring
// gocraft.go's baseY/detailY/fineY combination, and clamps to [0,1] since
// go-perlin's Noise2D is not guaranteed bounded.
func (n *Perlin) Sample2D(x, z float64) float64 {
	base := n.p.Noise2D(x*0.05, z*0.05)
	detail := n.p.Noise2D(x*0.15, z*0.15)
	fine := n.p.Noise2D(x*0.3, z*0.3)
	combined := base*0.6 + detail*0.3 + fine*0.1
	v := combined*0.5 + 0.5
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	return v
}
