package meshing

import (
	"testing"

	"voxelcore/internal/chunk"
	"voxelcore/internal/voxel"
)

func TestChunkMesherLOD0UsesGreedyAtNativeScale(t *testing.T) {
	cm := ChunkMesher{EdgeLength: 2}
	size := chunk.Size{X: 4, Y: 4, Z: 1}
	voxels := flatSlab(size, voxel.Stone)

	mesh, err := cm.Mesh(size, voxels, chunk.LOD0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// One coalesced +Z quad spans the full 4-voxel width at edge length 2:
	// corner (0,0,*) to (8,8,*) in world units.
	maxX := float32(0)
	for _, p := range mesh.Positions {
		if p.X() > maxX {
			maxX = p.X()
		}
	}
	if maxX != 8 {
		t.Errorf("expected the quad to span 4 voxels * edge length 2 = 8 world units, got %f", maxX)
	}
}

func TestChunkMesherLOD1FallsBackToBasicAtDoubleScale(t *testing.T) {
	cm := ChunkMesher{EdgeLength: 2}
	size := chunk.Size{X: 2, Y: 2, Z: 2}
	voxels := singleVoxelChunk(size, voxel.Stone)

	lod0Mesh, err := cm.Mesh(size, voxels, chunk.LOD0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lod1Mesh, err := cm.Mesh(size, voxels, chunk.LOD1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lod1Mesh.TriangleCount() != lod0Mesh.TriangleCount() {
		t.Error("a single isolated voxel meshes the same way under basic or greedy")
	}
	// LOD1 doubles the voxel scale, so its vertex extents should be double
	// LOD0's for the same input.
	maxLOD0, maxLOD1 := float32(0), float32(0)
	for _, p := range lod0Mesh.Positions {
		if p.X() > maxLOD0 {
			maxLOD0 = p.X()
		}
	}
	for _, p := range lod1Mesh.Positions {
		if p.X() > maxLOD1 {
			maxLOD1 = p.X()
		}
	}
	if maxLOD1 != maxLOD0*2 {
		t.Errorf("expected LOD1 extents to be double LOD0's (%f), got %f", maxLOD0*2, maxLOD1)
	}
}
