// Package lod selects a chunk's level of detail from its distance to the
// viewer (spec §4.9), recomputed on a fixed interval by the world manager.
//
// Grounded on the teacher's internal/config distance-banding style
// (GetChunkLoadRadius/GetChunkEvictRadius as simple threshold functions
// over a tunable radius), generalized here to the five-band table.
package lod

import "voxelcore/internal/chunk"

// Distance bands in world units (metres x 100), spec §4.9.
const (
	BandLOD0     = 5000
	BandLOD1     = 10000
	BandLOD2     = 20000
	BandLOD3     = 30000
)

// Select maps a viewer-to-chunk-center distance (world units) to an LOD
// level.
func Select(distance float64) chunk.LOD {
	switch {
	case distance < BandLOD0:
		return chunk.LOD0
	case distance < BandLOD1:
		return chunk.LOD1
	case distance < BandLOD2:
		return chunk.LOD2
	case distance < BandLOD3:
		return chunk.LOD3
	default:
		return chunk.Unloaded
	}
}

// VoxelScale returns the effective voxel-edge multiplier for a given LOD:
// LOD0 meshes at native resolution, LOD1/LOD2 fall back to the basic
// mesher at doubled voxel scale (spec §4.9); LOD3/Unloaded carry no mesh.
func VoxelScale(l chunk.LOD) float32 {
	switch l {
	case chunk.LOD1, chunk.LOD2:
		return 2
	default:
		return 1
	}
}

// UsesGreedy reports whether l should mesh with the greedy mesher (only
// LOD0 is fully specified for greedy meshing per §4.9).
func UsesGreedy(l chunk.LOD) bool {
	return l == chunk.LOD0
}
