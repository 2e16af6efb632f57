package chunk

import (
	"errors"
	"testing"

	"voxelcore/internal/voxel"
)

func newTestChunk() *Chunk {
	c := New()
	c.Init(Pos{1, 2, 3}, Size{4, 4, 4})
	return c
}

func TestOutOfRangeReadsReturnAir(t *testing.T) {
	c := newTestChunk()
	if m := c.Get(-1, 0, 0); m != voxel.Air {
		t.Errorf("out-of-range Get should return Air, got %v", m)
	}
	if m := c.Get(100, 0, 0); m != voxel.Air {
		t.Errorf("out-of-range Get should return Air, got %v", m)
	}
}

func TestOutOfRangeWriteIsNoOp(t *testing.T) {
	c := newTestChunk()
	c.dirty = false
	c.Set(-1, 0, 0, voxel.Stone)
	if c.dirty {
		t.Error("an out-of-range Set must not mark the chunk dirty")
	}
}

func TestSetOnlyMarksDirtyOnActualChange(t *testing.T) {
	c := newTestChunk()
	c.dirty = false
	c.Set(0, 0, 0, voxel.Air) // already Air: no-op
	if c.dirty {
		t.Error("Set to the same value should not mark dirty")
	}
	c.Set(0, 0, 0, voxel.Stone)
	if !c.dirty {
		t.Error("Set to a different value should mark dirty")
	}
}

func TestFillWithMarksDirtyOnceRegardlessOfContent(t *testing.T) {
	c := newTestChunk()
	c.dirty = false
	c.FillWith(func(x, y, z int) voxel.Material { return voxel.Air })
	if !c.dirty {
		t.Error("FillWith must mark dirty even when every voxel is already Air")
	}
}

func TestIndexRowMajorXFastest(t *testing.T) {
	c := newTestChunk()
	c.Set(1, 0, 0, voxel.Stone)
	c.Set(0, 1, 0, voxel.Dirt)
	if c.voxels[1] != voxel.Stone {
		t.Error("x should be the fastest-varying axis in the flat index")
	}
	if c.voxels[c.size.X] != voxel.Dirt {
		t.Error("incrementing y should advance the index by size.X")
	}
}

func TestLoadVoxelsRejectsWrongLength(t *testing.T) {
	c := newTestChunk()
	err := c.LoadVoxels(make([]voxel.Material, 1))
	if err == nil {
		t.Fatal("expected an error for a mismatched voxel count")
	}
	if !errors.Is(err, voxel.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestLoadVoxelsMarksDirtyAndAuthored(t *testing.T) {
	c := newTestChunk()
	voxels := make([]voxel.Material, c.size.Count())
	voxels[5] = voxel.Grass
	if err := c.LoadVoxels(voxels); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !c.dirty || !c.authored {
		t.Error("LoadVoxels should mark the chunk dirty and authored")
	}
	if c.Get(1, 1, 0) != voxel.Grass { // index 5 == x=1,y=1,z=0 for a 4^3 chunk
		t.Error("LoadVoxels should copy the voxel array in row-major order")
	}
}

func TestReturnToPoolResetsState(t *testing.T) {
	c := newTestChunk()
	c.MarkAuthored()
	c.dirty = true
	c.state = Ready
	c.lod = LOD0
	c.ReturnToPool()
	if c.state != Uninitialized || c.dirty || c.authored || c.lod != Unloaded {
		t.Error("ReturnToPool should clear dirty/authored/lod and reset state to Uninitialized")
	}
	if c.Pos != (Pos{}) {
		t.Error("ReturnToPool should clear the chunk's position")
	}
}
