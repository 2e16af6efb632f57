package meshing

import (
	"testing"

	"voxelcore/internal/chunk"
	"voxelcore/internal/voxel"
)

func flatSlab(size chunk.Size, m voxel.Material) []voxel.Material {
	voxels := make([]voxel.Material, size.Count())
	for x := 0; x < size.X; x++ {
		for y := 0; y < size.Y; y++ {
			voxels[x+y*size.X] = m // z=0 layer only
		}
	}
	return voxels
}

func TestGreedyCoalescesFlatSlabIntoOneQuadPerFace(t *testing.T) {
	size := chunk.Size{X: 8, Y: 8, Z: 1}
	voxels := flatSlab(size, voxel.Stone)
	quads := Greedy(size, voxels)

	var top, bottom int
	for _, q := range quads {
		switch q.Face {
		case voxel.PosZ:
			top++
			if q.SizeUV != [2]uint32{8, 8} {
				t.Errorf("top face should coalesce into one 8x8 quad, got %v", q.SizeUV)
			}
		case voxel.NegZ:
			bottom++
		}
	}
	if top != 1 {
		t.Errorf("expected exactly one +Z quad for a flat uniform slab, got %d", top)
	}
	if bottom != 1 {
		t.Errorf("expected exactly one -Z quad for a flat uniform slab, got %d", bottom)
	}
}

func TestGreedyStopsAtMaterialBoundary(t *testing.T) {
	size := chunk.Size{X: 4, Y: 1, Z: 1}
	voxels := []voxel.Material{voxel.Stone, voxel.Stone, voxel.Dirt, voxel.Dirt}
	quads := Greedy(size, voxels)

	var topQuads []chunk.GreedyQuad
	for _, q := range quads {
		if q.Face == voxel.PosZ {
			topQuads = append(topQuads, q)
		}
	}
	if len(topQuads) != 2 {
		t.Fatalf("a material change mid-row should split the greedy rectangle, got %d top quads", len(topQuads))
	}
	for _, q := range topQuads {
		if q.SizeUV[0] != 2 {
			t.Errorf("each half should coalesce to width 2, got %d", q.SizeUV[0])
		}
	}
}

func TestGreedyAndBasicAgreeOnFaceCount(t *testing.T) {
	// Property: greedy's total emitted face area must equal basic's face
	// count (both count unit faces, greedy just coalesces them into fewer
	// rectangles) — a cheap proxy for surface-coverage equivalence
	// (testable property 5) without depending on world-space centroids.
	size := chunk.Size{X: 5, Y: 5, Z: 5}
	voxels := make([]voxel.Material, size.Count())
	for x := 0; x < size.X; x++ {
		for y := 0; y < size.Y; y++ {
			for z := 0; z < size.Z/2; z++ { // a solid half-height slab
				voxels[x+y*size.X+z*size.X*size.Y] = voxel.Stone
			}
		}
	}

	basicFaces := len(Basic(size, voxels))

	greedyArea := 0
	for _, q := range Greedy(size, voxels) {
		greedyArea += int(q.SizeUV[0]) * int(q.SizeUV[1])
	}
	if greedyArea != basicFaces {
		t.Errorf("greedy total face area (%d) should equal basic's unit face count (%d)", greedyArea, basicFaces)
	}
}

func TestGreedyReducesTriangleCountOnUniformTerrain(t *testing.T) {
	// A solid 16^3 cube has 1536 visible unit faces (basic) but only 6
	// maximal rectangles (greedy). The test requires greedy to emit fewer
	// quads and a reduction of at least 50%.
	size := chunk.Size{X: 16, Y: 16, Z: 16}
	voxels := make([]voxel.Material, size.Count())
	for i := range voxels {
		voxels[i] = voxel.Stone
	}
	basicCount := len(Basic(size, voxels))
	greedyCount := len(Greedy(size, voxels))
	if greedyCount >= basicCount {
		t.Fatalf("greedy (%d) should emit strictly fewer quads than basic (%d) on a uniform cube", greedyCount, basicCount)
	}
	reduction := 1 - float64(greedyCount)/float64(basicCount)
	if reduction < 0.5 {
		t.Errorf("expected a large reduction on a solid uniform cube's 6 boundary faces, got %.2f", reduction)
	}
}
