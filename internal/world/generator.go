package world

import (
	"math"

	"voxelcore/internal/chunk"
	"voxelcore/internal/config"
	"voxelcore/internal/noise"
	"voxelcore/internal/voxel"
)

// Generator produces the procedural fallback used when no template entry
// exists for a chunk (spec §4.8 Procedural fallback). Grounded on the
// teacher's Generator (NewGenerator/HeightAt/PopulateChunk), replacing its
// octave-noise heightmap with the spec's exact single-octave value-noise
// formula and column material bands.
type Generator struct {
	seed        int64
	noiseScale  float64
	heightBase  float64
	heightScale float64
	perlin      *noise.Perlin // non-nil when cfg.TerrainSampler == "perlin"
}

// NewGenerator builds a Generator from config defaults (spec §4.8: noise_scale
// = 0.03, H_base = 10, H_scale = 10). TerrainSampler picks which of
// internal/noise's two samplers backs HeightAt: the default value-noise
// lattice, or go-perlin when the config asks for it.
func NewGenerator(seed int64, cfg config.Config) *Generator {
	g := &Generator{
		seed:        seed,
		noiseScale:  cfg.NoiseScale,
		heightBase:  cfg.HeightBase,
		heightScale: cfg.HeightScale,
	}
	if cfg.TerrainSampler == "perlin" {
		g.perlin = noise.NewPerlin(seed)
	}
	return g
}

// HeightAt samples the configured 2D noise sampler at the given world
// column and maps it to an integer height clamped to [5, 15] (spec §4.8).
func (g *Generator) HeightAt(worldX, worldZ int) int {
	var n float64
	if g.perlin != nil {
		n = g.perlin.Sample2D(float64(worldX)*g.noiseScale, float64(worldZ)*g.noiseScale)
	} else {
		n = noise.Value2D(float64(worldX)*g.noiseScale, float64(worldZ)*g.noiseScale, g.seed)
	}
	h := g.heightBase + n*g.heightScale
	height := int(math.Floor(h))
	if height < 5 {
		height = 5
	}
	if height > 15 {
		height = 15
	}
	return height
}

// Populate fills an un-authored chunk with rolling hills: Stone up to
// h-4, Dirt in [h-4, h-1), Grass at h-1, Air above (spec §4.8). Z is the
// vertical axis (the §4.3 face-axis table ties +Z/-Z to "up/down"); X and
// Y are the horizontal plane. It never touches a chunk marked authored
// (spec invariant 6).
func (g *Generator) Populate(c *chunk.Chunk, pos chunk.Pos) {
	if c.IsAuthored() {
		return
	}
	size := c.Size()
	c.FillWith(func(x, y, z int) voxel.Material {
		worldX := int(pos.X)*size.X + x
		worldY := int(pos.Y)*size.Y + y
		h := g.HeightAt(worldX, worldY)
		switch {
		case z >= h:
			return voxel.Air
		case z == h-1:
			return voxel.Grass
		case z >= h-4:
			return voxel.Dirt
		default:
			return voxel.Stone
		}
	})
}
