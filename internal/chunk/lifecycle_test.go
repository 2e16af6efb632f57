package chunk

import (
	"errors"
	"testing"

	"voxelcore/internal/voxel"
)

// stubMesher returns a fixed, already-valid mesh regardless of input, so
// lifecycle tests can exercise BeginMeshJob/CompleteMeshJob/GenerateMeshSync
// without depending on internal/meshing.
type stubMesher struct {
	err error
}

func (s stubMesher) Mesh(size Size, voxels []voxel.Material, lod LOD) (MeshData, error) {
	if s.err != nil {
		return MeshData{}, s.err
	}
	return MeshData{}, nil
}

func newReadyChunk() *Chunk {
	c := New()
	c.Init(Pos{0, 0, 0}, Size{4, 4, 4})
	c.state = Ready
	c.dirty = false
	return c
}

func TestSetVoxelTransitionsReadyToMeshingOnChange(t *testing.T) {
	c := newReadyChunk()
	c.SetVoxel(0, 0, 0, voxel.Stone, true)
	if c.State() != Meshing {
		t.Errorf("expected Meshing after a dirtying SetVoxel with remesh=true, got %v", c.State())
	}
}

func TestSetVoxelNoOpLeavesStateAlone(t *testing.T) {
	c := newReadyChunk()
	c.SetVoxel(0, 0, 0, voxel.Air, true) // already Air
	if c.State() != Ready {
		t.Errorf("a no-op SetVoxel must not force a remesh, got %v", c.State())
	}
}

func TestSetVoxelBatchLengthMismatch(t *testing.T) {
	c := newReadyChunk()
	err := c.SetVoxelBatch([][3]int{{0, 0, 0}}, nil)
	if !errors.Is(err, voxel.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestFillRegionClampsToChunkExtents(t *testing.T) {
	c := newReadyChunk()
	c.FillRegion([3]int{-5, -5, -5}, [3]int{100, 100, 100}, voxel.Stone)
	if c.Get(0, 0, 0) != voxel.Stone || c.Get(3, 3, 3) != voxel.Stone {
		t.Error("FillRegion should clamp an out-of-range box to the chunk bounds and still fill it")
	}
}

func TestSetLODUnloadedClearsMeshWithoutTouchingGeneration(t *testing.T) {
	c := newReadyChunk()
	c.mesh = MeshData{Indices: []uint32{1, 2, 3}}
	genBefore := c.Generation()
	needsMesh := c.SetLOD(Unloaded)
	if needsMesh {
		t.Error("SetLOD(Unloaded) should never report needsMesh")
	}
	if c.Mesh().VertexCount() != 0 || len(c.Mesh().Indices) != 0 {
		t.Error("SetLOD(Unloaded) should clear the published mesh")
	}
	if c.Generation() != genBefore {
		t.Error("SetLOD(Unloaded) should not touch the generation counter")
	}
}

func TestSetLODNonUnloadedFlagsNeedsMeshWhenDirty(t *testing.T) {
	c := newReadyChunk()
	c.dirty = true
	if needsMesh := c.SetLOD(LOD0); !needsMesh {
		t.Error("SetLOD on a dirty chunk should report needsMesh=true")
	}
	if c.State() != Meshing {
		t.Errorf("expected Meshing, got %v", c.State())
	}
}

func TestBeginMeshJobRejectsWhileAlreadyMeshing(t *testing.T) {
	c := newReadyChunk()
	c.state = Meshing
	_, _, err := c.BeginMeshJob()
	if !errors.Is(err, voxel.ErrBusy) {
		t.Fatalf("expected ErrBusy, got %v", err)
	}
}

func TestBeginMeshJobSnapshotIsIndependentCopy(t *testing.T) {
	c := newReadyChunk()
	c.state = Generated
	_, snap, err := c.BeginMeshJob()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	snap[0] = voxel.Bedrock
	if c.voxels[0] == voxel.Bedrock {
		t.Error("the mesh job snapshot must be an independent copy, not an alias of the live voxel array")
	}
}

func TestCompleteMeshJobDiscardsStaleGeneration(t *testing.T) {
	c := newReadyChunk()
	c.state = Generated
	gen, _, _ := c.BeginMeshJob()
	c.generation++ // a newer job was dispatched in the meantime

	applied := c.CompleteMeshJob(gen, MeshData{}, nil)
	if applied {
		t.Error("a stale-generation completion must not apply")
	}
}

func TestCompleteMeshJobValidationFailureRevertsToGenerated(t *testing.T) {
	c := newReadyChunk()
	c.state = Generated
	gen, _, _ := c.BeginMeshJob()

	applied := c.CompleteMeshJob(gen, MeshData{}, voxel.ErrMeshValidationFailed)
	if applied {
		t.Error("a validation-failure completion must not apply")
	}
	if c.State() != Generated {
		t.Errorf("expected Generated after a validation failure, got %v", c.State())
	}
}

func TestCompleteMeshJobSuccessPublishesMeshAndClearsDirty(t *testing.T) {
	c := newReadyChunk()
	c.state = Generated
	c.dirty = true
	gen, _, _ := c.BeginMeshJob()

	mesh := MeshData{Indices: []uint32{0, 1, 2}}
	applied := c.CompleteMeshJob(gen, mesh, nil)
	if !applied {
		t.Fatal("expected the completion to apply")
	}
	if c.State() != Ready || c.IsDirty() {
		t.Error("a successful completion should transition to Ready and clear dirty")
	}
	if c.Mesh().TriangleCount() != 1 {
		t.Error("the published mesh should match what was passed to CompleteMeshJob")
	}
}

func TestCompleteMeshJobDiscardsWhileUnloading(t *testing.T) {
	c := newReadyChunk()
	c.state = Generated
	gen, _, _ := c.BeginMeshJob()
	c.state = Unloading

	if c.CompleteMeshJob(gen, MeshData{}, nil) {
		t.Error("a chunk that began unloading mid-job must discard the late result")
	}
}

func TestGenerateMeshSyncBusy(t *testing.T) {
	c := newReadyChunk()
	c.state = Meshing
	if err := c.GenerateMeshSync(stubMesher{}); !errors.Is(err, voxel.ErrBusy) {
		t.Fatalf("expected ErrBusy, got %v", err)
	}
}

func TestMarkGeneratedOnlyFromGenerating(t *testing.T) {
	c := New()
	c.Init(Pos{}, Size{2, 2, 2})
	c.MarkGenerated()
	if c.State() != Generated {
		t.Errorf("expected Generated, got %v", c.State())
	}
	c.state = Ready
	c.MarkGenerated()
	if c.State() != Ready {
		t.Error("MarkGenerated must only fire from Generating")
	}
}
