package world

import (
	"sort"

	"go.uber.org/zap"

	"voxelcore/internal/chunk"
	"voxelcore/internal/logging"
)

// EstimateMemoryMB computes the spec §4.6 fudge-factor memory estimate:
// active_chunks*0.1 + total_vertices*32/2^20 + total_triangles*12/2^20.
// Monotone in active chunk count and mesh size (spec invariant 8 /
// §9 open question: the 0.1MB-per-chunk constant is acknowledged as a
// fudge factor an implementer may refine with a real measurement).
func (m *Manager) EstimateMemoryMB() float64 {
	var totalVerts, totalTris int
	for _, e := range m.active {
		mesh := e.c.Mesh()
		totalVerts += mesh.VertexCount()
		totalTris += mesh.TriangleCount()
	}
	const mib = 1 << 20
	return float64(len(m.active))*0.1 + float64(totalVerts)*32/mib + float64(totalTris)*12/mib
}

// EnforceBudget runs the spec §4.6 memory budget check: if the estimate
// exceeds the configured cap, sorts active chunks by descending distance
// to the viewer and unloads the farthest ceil(active/10) (minimum 1) back
// to the pool, returning how many were evicted. Emits BudgetExceeded once
// per over-budget excursion and rearms silently once usage drops back
// under the cap (spec §7 BudgetExceeded: "signal once... not an error").
func (m *Manager) EnforceBudget() int {
	used := m.EstimateMemoryMB()
	capMB := m.cfg.MemoryBudgetMB()

	if used <= capMB {
		if m.budgetExceeded {
			m.budgetExceeded = false
			logging.Log.Info("memory usage back under budget", zap.Float64("used_mb", used), zap.Float64("budget_mb", capMB))
		}
		return 0
	}
	if !m.budgetExceeded {
		m.budgetExceeded = true
		logging.Log.Warn("memory budget exceeded; evicting farthest chunks",
			zap.Float64("used_mb", used), zap.Float64("budget_mb", capMB))
	}

	type ranked struct {
		pos  chunk.Pos
		dist float32
	}
	list := make([]ranked, 0, len(m.active))
	for pos := range m.active {
		list = append(list, ranked{pos, m.distanceToViewer(pos)})
	}
	sort.Slice(list, func(i, j int) bool { return list[i].dist > list[j].dist })

	n := (len(list) + 9) / 10 // ceil(active/10)
	if n < 1 {
		n = 1
	}
	if n > len(list) {
		n = len(list)
	}
	for i := 0; i < n; i++ {
		m.release(list[i].pos)
	}
	return n
}
