package template

import (
	"math"
	"math/rand"

	"voxelcore/internal/chunk"
	"voxelcore/internal/noise"
	"voxelcore/internal/voxel"
)

// ApplySeedVariation is a pure function of (chunk voxels, template, seed,
// chunk_pos): it derives a per-chunk RNG from hash(seed, chunk_pos) and
// applies, in order, terrain noise (a documented no-op, spec §9), the
// flower overlay, and the tree overlay (spec §4.8). Two invocations with
// identical inputs produce byte-identical voxel arrays.
func (t *Template) ApplySeedVariation(c *chunk.Chunk, pos chunk.Pos, seed int64) {
	if !t.AllowSeedVariations {
		return
	}
	rngSeed := noise.ChunkSeed(seed, pos.X, pos.Y, pos.Z)
	rng := rand.New(rand.NewSource(rngSeed))

	// Terrain noise overlay: documented no-op in the source ("to avoid
	// breaking hand-crafted terrain"); the field stays part of
	// VariationParams for interface parity but does nothing here.
	_ = t.VariationParams.TerrainNoiseScale
	_ = t.VariationParams.TerrainNoiseHeight

	applyFlowerOverlay(c, rng, t.VariationParams.FlowerDensity)
	applyTreeOverlay(c, rng, t.VariationParams.TreeVariation, t.Landmarks, pos)
}

// applyFlowerOverlay places a Leaves voxel (placeholder flower) one above
// every solid Grass voxel with Air above it, with probability
// flower_density per candidate (spec §4.8 Flower overlay). Z is the
// vertical axis (spec §4.3 face-axis table).
func applyFlowerOverlay(c *chunk.Chunk, rng *rand.Rand, density float64) {
	size := c.Size()
	for x := 0; x < size.X; x++ {
		for y := 0; y < size.Y; y++ {
			for z := 0; z < size.Z-1; z++ {
				if c.Get(x, y, z) != voxel.Grass {
					continue
				}
				if c.Get(x, y, z+1) != voxel.Air {
					continue
				}
				if rng.Float64() < density {
					c.Set(x, y, z+1, voxel.Leaves)
				}
			}
		}
	}
}

// applyTreeOverlay attempts floor(tree_variation*5) tree placements, each
// at a random (x,y) in [3,X-4)x[3,Y-4) that isn't within any landmark's
// protection radius, planting a trunk + spherical canopy on the topmost
// grass/dirt column with sufficient headroom (spec §4.8 Tree overlay).
func applyTreeOverlay(c *chunk.Chunk, rng *rand.Rand, treeVariation float64, landmarks []Landmark, pos chunk.Pos) {
	attempts := int(math.Floor(treeVariation * 5))
	size := c.Size()
	if size.X <= 7 || size.Y <= 7 {
		return
	}
	for i := 0; i < attempts; i++ {
		x := 3 + rng.Intn(size.X-7)
		y := 3 + rng.Intn(size.Y-7)

		if withinLandmark(landmarks, pos, size, x, y) {
			continue
		}

		top := topmostGrassOrDirt(c, x, y)
		if top < 0 {
			continue
		}
		headroom := size.Z - 1 - top
		if headroom < 8 {
			continue
		}

		trunkHeight := 4 + rng.Intn(3) // [4,6]
		for h := 1; h <= trunkHeight; h++ {
			c.Set(x, y, top+h, voxel.Wood)
		}

		canopyZ := top + trunkHeight
		const radius = 2
		for dx := -radius; dx <= radius; dx++ {
			for dy := -radius; dy <= radius; dy++ {
				for dz := -radius; dz <= radius; dz++ {
					if dx*dx+dy*dy+dz*dz > radius*radius {
						continue
					}
					if c.Get(x+dx, y+dy, canopyZ+dz) == voxel.Air {
						c.Set(x+dx, y+dy, canopyZ+dz, voxel.Leaves)
					}
				}
			}
		}
	}
}

func topmostGrassOrDirt(c *chunk.Chunk, x, y int) int {
	size := c.Size()
	for z := size.Z - 1; z >= 0; z-- {
		m := c.Get(x, y, z)
		if m == voxel.Grass || m == voxel.Dirt {
			return z
		}
	}
	return -1
}

func withinLandmark(landmarks []Landmark, pos chunk.Pos, size chunk.Size, localX, localY int) bool {
	worldX := float32(pos.X)*float32(size.X) + float32(localX)
	worldY := float32(pos.Y)*float32(size.Y) + float32(localY)
	for _, lm := range landmarks {
		dx := worldX - lm.WorldPos[0]
		dy := worldY - lm.WorldPos[1]
		if dx*dx+dy*dy <= lm.ProtectionRadius*lm.ProtectionRadius {
			return true
		}
	}
	return false
}
