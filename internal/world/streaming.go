package world

import (
	"github.com/go-gl/mathgl/mgl32"

	"voxelcore/internal/chunk"
	"voxelcore/internal/lod"
)

// StreamTick implements spec §4.6 steps 1-4: compute the required chunk
// set around the viewer, create whatever's missing (unless
// disable_dynamic_generation), and return anything outside the set to the
// pool. Call at chunk_update_interval (default ~100ms).
func (m *Manager) StreamTick(viewerPos mgl32.Vec3) {
	m.SetViewerPosition(viewerPos)
	v := m.WorldToChunk(viewerPos)
	required := m.requiredSet(v)

	if !m.cfg.DisableDynamicGeneration {
		for p := range required {
			if _, ok := m.active[p]; ok {
				continue
			}
			if _, err := m.GetOrCreateChunk(p); err != nil {
				continue // PoolExhausted: streaming continues (spec §7)
			}
		}
	}

	for p := range m.active {
		if _, ok := required[p]; !ok {
			m.release(p)
		}
	}
}

// requiredSet computes R = { v + (dx,dy,dz) | |dx|,|dy| <= view_distance,
// dz in Z-range } where Z-range is {0} under flat_world_mode else [-2,+2]
// (spec §4.6 step 2; Z is the up axis per §6.4).
func (m *Manager) requiredSet(v chunk.Pos) map[chunk.Pos]struct{} {
	r := m.cfg.ViewDistanceChunks
	out := make(map[chunk.Pos]struct{}, (2*r+1)*(2*r+1)*5)

	zLo, zHi := -2, 2
	if m.cfg.FlatWorldMode {
		zLo, zHi = 0, 0
	}
	for dz := zLo; dz <= zHi; dz++ {
		for dy := -r; dy <= r; dy++ {
			for dx := -r; dx <= r; dx++ {
				p := chunk.Pos{X: v.X + int32(dx), Y: v.Y + int32(dy), Z: v.Z + int32(dz)}
				if m.cfg.FlatWorldMode && p.Z != 0 {
					continue
				}
				out[p] = struct{}{}
			}
		}
	}
	return out
}

// LODTick recomputes each active chunk's LOD level from its distance to
// the viewer, enqueueing a remesh wherever the level changed and a mesh is
// still owed (spec §4.9). Call at the LOD update interval (default ~500ms).
func (m *Manager) LODTick() {
	for pos, e := range m.active {
		level := lod.Select(float64(m.distanceToViewer(pos)))
		if level == e.c.LOD() {
			continue
		}
		if e.c.SetLOD(level) {
			m.enqueue(pos, m.priorityFor(pos), true)
		}
	}
}
