package world

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"voxelcore/internal/chunk"
	"voxelcore/internal/config"
)

func newTestManager() *Manager {
	cfg := config.Default()
	cfg.ChunkSize = 4
	cfg.VoxelEdgeLength = 2
	cfg.ChunkPoolSize = 64
	cfg.MaxConcurrentChunkGenerations = 2
	return New(cfg, 1, nil)
}

func TestWorldToChunkFloorsByChunkSpan(t *testing.T) {
	m := newTestManager() // span = 4*2 = 8 world units per chunk
	cases := []struct {
		p    mgl32.Vec3
		want chunk.Pos
	}{
		{mgl32.Vec3{0, 0, 0}, chunk.Pos{0, 0, 0}},
		{mgl32.Vec3{7.9, 0, 0}, chunk.Pos{0, 0, 0}},
		{mgl32.Vec3{8, 0, 0}, chunk.Pos{1, 0, 0}},
		{mgl32.Vec3{-0.1, 0, 0}, chunk.Pos{-1, 0, 0}},
		{mgl32.Vec3{-8, 0, 0}, chunk.Pos{-1, 0, 0}},
	}
	for _, c := range cases {
		if got := m.WorldToChunk(c.p); got != c.want {
			t.Errorf("WorldToChunk(%v) = %v, want %v", c.p, got, c.want)
		}
	}
}

func TestWorldToLocalWithinChunk(t *testing.T) {
	m := newTestManager()
	cp := chunk.Pos{X: 1, Y: 0, Z: 0}
	// chunk 1 spans world x in [8, 16); local x in [0,4)
	x, y, z := m.WorldToLocal(mgl32.Vec3{10, 2, 0}, cp)
	if x != 1 || y != 1 || z != 0 {
		t.Errorf("WorldToLocal = (%d,%d,%d), want (1,1,0)", x, y, z)
	}
}

func TestChunkWorldCenterIsMidSpan(t *testing.T) {
	m := newTestManager() // span 8, half 4
	c := m.ChunkWorldCenter(chunk.Pos{X: 0, Y: 0, Z: 0})
	if c.X() != 4 || c.Y() != 4 || c.Z() != 4 {
		t.Errorf("ChunkWorldCenter(origin) = %v, want (4,4,4)", c)
	}
	c1 := m.ChunkWorldCenter(chunk.Pos{X: 1, Y: 0, Z: 0})
	if c1.X() != 12 {
		t.Errorf("ChunkWorldCenter({1,0,0}).X = %f, want 12", c1.X())
	}
}

func TestPriorityForClampsAndScalesWithDistance(t *testing.T) {
	m := newTestManager()
	m.SetViewerPosition(mgl32.Vec3{0, 0, 0})

	near := m.priorityFor(chunk.Pos{X: 0, Y: 0, Z: 0})
	if near < 0 || near > 999 {
		t.Fatalf("priority out of clamp range: %d", near)
	}

	// center x = 200000*8+4 = 1600004, floor(1600004/1000) = 1600 > 999
	far := m.priorityFor(chunk.Pos{X: 200000, Y: 0, Z: 0})
	if far != 999 {
		t.Errorf("a far-away chunk's priority should clamp to 999, got %d", far)
	}
}
