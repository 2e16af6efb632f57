// Package meshing implements the basic mesher (C2), greedy mesher (C3),
// and quad-to-mesh converter (C4) described in spec §4.2-§4.4.
package meshing

import (
	"voxelcore/internal/chunk"
	"voxelcore/internal/voxel"
)

// grid is a read-only view over one chunk's voxel snapshot. Coordinates
// outside [0,X)x[0,Y)x[0,Z) read as Air, matching the store's own
// out-of-range contract (spec invariant 1) and implementing the "core does
// NOT attempt seam-consistent meshing across chunks" edge policy in
// spec §4.2 — faces at chunk boundaries are always emitted.
type grid struct {
	size   chunk.Size
	voxels []voxel.Material
}

func newGrid(size chunk.Size, voxels []voxel.Material) grid {
	return grid{size: size, voxels: voxels}
}

func (g grid) at(x, y, z int) voxel.Material {
	if x < 0 || x >= g.size.X || y < 0 || y >= g.size.Y || z < 0 || z >= g.size.Z {
		return voxel.Air
	}
	return g.voxels[x+y*g.size.X+z*g.size.X*g.size.Y]
}

func (g grid) neighbor(x, y, z int, f voxel.Face) voxel.Material {
	dx, dy, dz := f.Normal()
	return g.at(x+dx, y+dy, z+dz)
}
