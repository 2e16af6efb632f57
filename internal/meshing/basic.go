package meshing

import (
	"voxelcore/internal/chunk"
	"voxelcore/internal/voxel"
)

// Basic is the reference per-voxel mesher (spec §4.2): for every solid
// voxel and every one of its six faces, emit one unit quad iff the
// neighbor in that direction is Air or transparent-with-a-different-
// material. Used for tests, the fallback when greedy is disabled, and
// LOD1/LOD2 (spec §4.9).
//
// Complexity O(N); output bound <= 6*N quads.
func Basic(size chunk.Size, voxels []voxel.Material) []chunk.GreedyQuad {
	g := newGrid(size, voxels)
	var quads []chunk.GreedyQuad

	for z := 0; z < size.Z; z++ {
		for y := 0; y < size.Y; y++ {
			for x := 0; x < size.X; x++ {
				m := g.at(x, y, z)
				if !m.IsSolid() {
					continue
				}
				for _, f := range voxel.AllFaces {
					if voxel.FaceVisible(m, g.neighbor(x, y, z, f)) {
						quads = append(quads, chunk.GreedyQuad{
							Base:     [3]int32{int32(x), int32(y), int32(z)},
							SizeUV:   [2]uint32{1, 1},
							Face:     f,
							Material: m,
						})
					}
				}
			}
		}
	}
	return quads
}
