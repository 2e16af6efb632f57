package world

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"voxelcore/internal/chunk"
	"voxelcore/internal/config"
)

func TestRequiredSetSpansFullZRangeNormally(t *testing.T) {
	cfg := config.Default()
	cfg.ChunkSize = 4
	cfg.VoxelEdgeLength = 1
	cfg.ChunkPoolSize = 1000
	cfg.ViewDistanceChunks = 1
	m := New(cfg, 1, nil)

	req := m.requiredSet(chunk.Pos{})
	wantCount := 3 * 3 * 5 // (2*1+1)^2 horizontal * 5 vertical bands
	if len(req) != wantCount {
		t.Errorf("requiredSet size = %d, want %d", len(req), wantCount)
	}
	if _, ok := req[chunk.Pos{X: 0, Y: 0, Z: 2}]; !ok {
		t.Error("normal mode should include dz=+2")
	}
	if _, ok := req[chunk.Pos{X: 0, Y: 0, Z: -2}]; !ok {
		t.Error("normal mode should include dz=-2")
	}
}

func TestRequiredSetRestrictsToZZeroUnderFlatWorldMode(t *testing.T) {
	cfg := config.Default()
	cfg.ChunkSize = 4
	cfg.VoxelEdgeLength = 1
	cfg.ChunkPoolSize = 1000
	cfg.ViewDistanceChunks = 1
	cfg.FlatWorldMode = true
	m := New(cfg, 1, nil)

	req := m.requiredSet(chunk.Pos{})
	wantCount := 3 * 3 // only dz=0
	if len(req) != wantCount {
		t.Errorf("requiredSet size under flat_world_mode = %d, want %d", len(req), wantCount)
	}
	for p := range req {
		if p.Z != 0 {
			t.Errorf("flat_world_mode should never require a non-zero-Z chunk, got %v", p)
		}
	}
}

func TestStreamTickReleasesChunksOutsideRequiredSet(t *testing.T) {
	cfg := config.Default()
	cfg.ChunkSize = 4
	cfg.VoxelEdgeLength = 1
	cfg.ChunkPoolSize = 1000
	cfg.ViewDistanceChunks = 0 // only the viewer's own chunk is required
	m := New(cfg, 1, nil)

	m.GetOrCreateChunk(chunk.Pos{X: 50, Y: 50, Z: 50}) // far outside the required set
	m.StreamTick(mgl32.Vec3{0, 0, 0})

	if _, ok := m.ChunkAt(chunk.Pos{X: 50, Y: 50, Z: 50}); ok {
		t.Error("a chunk outside the new required set should be released")
	}
	if _, ok := m.ChunkAt(chunk.Pos{X: 0, Y: 0, Z: 0}); !ok {
		t.Error("the viewer's own chunk should be created and retained")
	}
}

func TestStreamTickSkipsCreationWhenDynamicGenerationDisabled(t *testing.T) {
	cfg := config.Default()
	cfg.ChunkSize = 4
	cfg.VoxelEdgeLength = 1
	cfg.ChunkPoolSize = 1000
	cfg.ViewDistanceChunks = 0
	cfg.DisableDynamicGeneration = true
	m := New(cfg, 1, nil)

	m.StreamTick(mgl32.Vec3{0, 0, 0})
	if m.ActiveCount() != 0 {
		t.Errorf("disable_dynamic_generation should prevent any chunk creation, got %d active", m.ActiveCount())
	}
}

func TestLODTickEnqueuesOnLevelChange(t *testing.T) {
	m := newTestManager() // chunk size 4, edge length 2: chunk0 centers at (4,4,4)
	m.GetOrCreateChunk(chunk0())
	before := m.queue.len()

	// ~6000 world units out lands in the LOD1 band (BandLOD0..BandLOD1),
	// distinct from the chunk's initial Unloaded level.
	m.SetViewerPosition(mgl32.Vec3{6004, 4, 4})
	m.LODTick()

	after := m.queue.len()
	if after <= before {
		t.Error("an LOD level change should enqueue a remesh task")
	}
}
