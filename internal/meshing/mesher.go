package meshing

import (
	"voxelcore/internal/chunk"
	"voxelcore/internal/lod"
	"voxelcore/internal/voxel"
)

// ChunkMesher selects basic vs greedy meshing by LOD and converts the
// resulting quads to a validated chunk.MeshData (spec §4.9: "Only LOD0 is
// fully specified for meshing... LOD1/LOD2 fall back to basic meshing at
// doubled voxel scale"). It implements both chunk.Mesher and
// workerpool.Mesher so the same value can run synchronously or inside a
// worker-pool job.
type ChunkMesher struct {
	// EdgeLength is the voxel edge length E (spec §6.4), applied to LOD0.
	EdgeLength float32
}

// Mesh builds a MeshData for the given voxel snapshot at the requested LOD.
func (cm ChunkMesher) Mesh(size chunk.Size, voxels []voxel.Material, l chunk.LOD) (chunk.MeshData, error) {
	scale := lod.VoxelScale(l)
	e := cm.EdgeLength * scale

	var quads []chunk.GreedyQuad
	if lod.UsesGreedy(l) {
		quads = Greedy(size, voxels)
	} else {
		quads = Basic(size, voxels)
	}
	return Convert(quads, size, e)
}
