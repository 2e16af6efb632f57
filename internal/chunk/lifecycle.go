package chunk

import (
	"fmt"

	"voxelcore/internal/voxel"
)

// Mesher produces a MeshData from a chunk snapshot. world.Manager supplies
// the concrete implementation (basic or greedy, per LOD) so this package
// stays free of a dependency on internal/meshing.
type Mesher interface {
	Mesh(size Size, voxels []voxel.Material, lod LOD) (MeshData, error)
}

// SetVoxel writes one voxel in range and marks dirty on change (spec §4.5
// set_voxel). If remesh is true and the chunk is Ready, it transitions to
// Meshing so the caller can dispatch a job; the caller is responsible for
// actually enqueuing the work (this package does not know about the
// worker pool).
func (c *Chunk) SetVoxel(x, y, z int, m voxel.Material, remesh bool) {
	c.Set(x, y, z, m)
	if remesh && c.state == Ready && c.dirty {
		c.state = Meshing
	}
}

// SetVoxelBatch applies parallel points/materials slices, failing fast on a
// length mismatch (spec §4.5 set_voxel_batch).
func (c *Chunk) SetVoxelBatch(points [][3]int, mats []voxel.Material) error {
	if len(points) != len(mats) {
		return fmt.Errorf("%w: %d points vs %d materials", voxel.ErrInvalidInput, len(points), len(mats))
	}
	for i, p := range points {
		c.Set(p[0], p[1], p[2], mats[i])
	}
	return nil
}

// FillRegion sets every voxel in [min,max) to m, clamping bounds to the
// chunk extents (spec §4.5 fill_region).
func (c *Chunk) FillRegion(min, max [3]int, m voxel.Material) {
	clamp := func(v, lo, hi int) int {
		if v < lo {
			return lo
		}
		if v > hi {
			return hi
		}
		return v
	}
	x0, y0, z0 := clamp(min[0], 0, c.size.X), clamp(min[1], 0, c.size.Y), clamp(min[2], 0, c.size.Z)
	x1, y1, z1 := clamp(max[0], 0, c.size.X), clamp(max[1], 0, c.size.Y), clamp(max[2], 0, c.size.Z)
	for z := z0; z < z1; z++ {
		for y := y0; y < y1; y++ {
			for x := x0; x < x1; x++ {
				c.Set(x, y, z, m)
			}
		}
	}
}

// SetLOD applies spec §4.5 set_lod: Unloaded clears the mesh and returns
// without touching generation state; any other level marks the chunk
// Meshing if it's dirty or not yet Ready, reporting whether a mesh job is
// now owed to the caller.
func (c *Chunk) SetLOD(l LOD) (needsMesh bool) {
	c.lod = l
	if l == Unloaded {
		c.mesh = MeshData{}
		return false
	}
	if c.dirty || c.state != Ready {
		c.state = Meshing
		return true
	}
	return false
}

// BeginMeshJob transitions Generated/Ready -> Meshing and returns the
// generation id the caller must present at completion time, along with a
// snapshot of the voxel array (spec §5 Snapshots: "handed to the job by
// copy"). Returns ErrBusy if a job is already in flight.
func (c *Chunk) BeginMeshJob() (generation uint64, voxelsSnapshot []voxel.Material, err error) {
	if c.state == Meshing {
		return 0, nil, voxel.ErrBusy
	}
	c.state = Meshing
	c.generation++
	snap := make([]voxel.Material, len(c.voxels))
	copy(snap, c.voxels)
	return c.generation, snap, nil
}

// CompleteMeshJob applies a job's result if and only if its generation
// still matches the chunk's current generation (spec §5 Ordering
// guarantees: stale completions are discarded). On success the chunk
// becomes Ready, its dirty flag clears, and the mesh is published.
// On a validation failure (err != nil) the chunk reverts to Generated so
// it can be retried on the next dirty flip (spec §7 MeshValidationFailed).
func (c *Chunk) CompleteMeshJob(generation uint64, mesh MeshData, err error) (applied bool) {
	if generation != c.generation {
		return false // stale: a newer job has since been dispatched
	}
	if c.state == Unloading {
		return false // chunk was returned to the pool while the job ran
	}
	if err != nil {
		c.state = Generated
		return false
	}
	c.mesh = mesh
	c.dirty = false
	c.state = Ready
	return true
}

// GenerateMeshSync runs a mesh job in place on the main sequence, without
// a snapshot/handoff round trip (spec §4.5 generate_mesh, sync path).
func (c *Chunk) GenerateMeshSync(m Mesher) error {
	if c.state == Meshing {
		return voxel.ErrBusy
	}
	c.state = Meshing
	c.generation++
	gen := c.generation
	mesh, err := m.Mesh(c.size, c.voxels, c.lod)
	c.CompleteMeshJob(gen, mesh, err)
	if err != nil {
		return err
	}
	return nil
}

// MarkGenerated transitions Generating -> Generated once voxel fill
// completes.
func (c *Chunk) MarkGenerated() {
	if c.state == Generating {
		c.state = Generated
	}
}

// BeginUnload marks the chunk Unloading so any in-flight job's result is
// discarded on completion (spec §5 Cancellation).
func (c *Chunk) BeginUnload() { c.state = Unloading }

// ReturnToPool clears the chunk back to its pristine pooled state: empty
// mesh, state=Uninitialized, not addressed by any position
// (spec invariant 7).
func (c *Chunk) ReturnToPool() {
	c.Pos = Pos{}
	c.dirty = false
	c.authored = false
	c.state = Uninitialized
	c.lod = Unloaded
	c.mesh = MeshData{}
}
