package world

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"voxelcore/internal/chunk"
)

// WorldToChunk implements spec §6.4: world_to_chunk(p) = floor(p / (size*E))
// componentwise.
func (m *Manager) WorldToChunk(p mgl32.Vec3) chunk.Pos {
	span := float32(m.cfg.ChunkSize) * m.cfg.VoxelEdgeLength
	return chunk.Pos{
		X: int32(math.Floor(float64(p.X() / span))),
		Y: int32(math.Floor(float64(p.Y() / span))),
		Z: int32(math.Floor(float64(p.Z() / span))),
	}
}

// WorldToLocal implements spec §6.4:
// world_to_local(p, cp) = floor((p - cp*size*E) / E) componentwise.
func (m *Manager) WorldToLocal(p mgl32.Vec3, cp chunk.Pos) (x, y, z int) {
	e := m.cfg.VoxelEdgeLength
	size := float32(m.cfg.ChunkSize)
	lx := math.Floor(float64((p.X() - float32(cp.X)*size*e) / e))
	ly := math.Floor(float64((p.Y() - float32(cp.Y)*size*e) / e))
	lz := math.Floor(float64((p.Z() - float32(cp.Z)*size*e) / e))
	return int(lx), int(ly), int(lz)
}

// ChunkWorldCenter returns the world-space center of a chunk, used for
// distance-based priority (§4.6), LOD selection (§4.9), and eviction (§4.6).
func (m *Manager) ChunkWorldCenter(pos chunk.Pos) mgl32.Vec3 {
	e := m.cfg.VoxelEdgeLength
	size := float32(m.cfg.ChunkSize)
	half := size * e / 2
	return mgl32.Vec3{
		float32(pos.X)*size*e + half,
		float32(pos.Y)*size*e + half,
		float32(pos.Z)*size*e + half,
	}
}

// distanceToViewer is the Euclidean distance from a chunk's center to the
// last-set viewer position, in world units.
func (m *Manager) distanceToViewer(pos chunk.Pos) float32 {
	d := m.ChunkWorldCenter(pos).Sub(m.viewerPos)
	return d.Len()
}

// priorityFor computes the work-queue priority for a chunk per spec §4.6:
// floor(dist/1000), clamped to [0,999].
func (m *Manager) priorityFor(pos chunk.Pos) int {
	return clampPriority(int(math.Floor(float64(m.distanceToViewer(pos) / 1000))))
}
