// Package chunk implements the dense voxel store and per-chunk state
// machine (spec §3, §4.1, §4.5).
package chunk

import (
	"fmt"

	"voxelcore/internal/voxel"
)

// Size holds the three chunk dimensions. Immutable after Init.
type Size struct {
	X, Y, Z int
}

// Count returns the total voxel count N = X*Y*Z.
func (s Size) Count() int { return s.X * s.Y * s.Z }

// Cube16 and Cube32 are the two sizes named in spec §3.
var (
	Cube16 = Size{16, 16, 16}
	Cube32 = Size{32, 32, 32}
)

// Pos is an integer chunk grid coordinate.
type Pos struct {
	X, Y, Z int32
}

// State is the chunk lifecycle state (spec §4.5).
type State int

const (
	Uninitialized State = iota
	Generating
	Generated
	Meshing
	Ready
	Unloading
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "Uninitialized"
	case Generating:
		return "Generating"
	case Generated:
		return "Generated"
	case Meshing:
		return "Meshing"
	case Ready:
		return "Ready"
	case Unloading:
		return "Unloading"
	default:
		return "Unknown"
	}
}

// LOD is the level-of-detail selection for a chunk (spec §4.9).
type LOD int

const (
	Unloaded LOD = iota
	LOD0
	LOD1
	LOD2
	LOD3
)

// Chunk owns one chunk's voxel array, mesh, and lifecycle state. The world
// manager exclusively owns every Chunk; a Chunk is never shared across
// managers (spec §3 Ownership).
type Chunk struct {
	Pos  Pos
	size Size

	voxels []voxel.Material

	dirty    bool
	authored bool
	state    State
	lod      LOD

	mesh MeshData

	// generation increments every time a mesh job is dispatched for this
	// chunk. A completed job whose captured generation no longer matches
	// is stale and its result is discarded (spec §5).
	generation uint64
}

// New allocates an uninitialized chunk. Call Init before using it; this
// mirrors the pool's "pre-allocated, hidden until assigned a position"
// lifecycle (spec §3 Lifecycle).
func New() *Chunk {
	return &Chunk{state: Uninitialized}
}

// Init allocates the voxel array, assigns position and size, and
// transitions to Generating (spec §4.5 init).
func (c *Chunk) Init(pos Pos, size Size) {
	c.Pos = pos
	c.size = size
	n := size.Count()
	if cap(c.voxels) >= n {
		c.voxels = c.voxels[:n]
		for i := range c.voxels {
			c.voxels[i] = voxel.Air
		}
	} else {
		c.voxels = make([]voxel.Material, n)
	}
	c.dirty = false
	c.authored = false
	c.state = Generating
	c.lod = Unloaded
	c.mesh = MeshData{}
	c.generation = 0
}

// Size returns the chunk's immutable dimensions.
func (c *Chunk) Size() Size { return c.size }

// index converts local (x,y,z) to a flat row-major index, x fastest.
func (c *Chunk) index(x, y, z int) (int, bool) {
	if x < 0 || x >= c.size.X || y < 0 || y >= c.size.Y || z < 0 || z >= c.size.Z {
		return 0, false
	}
	return x + y*c.size.X + z*c.size.X*c.size.Y, true
}

// Get returns the voxel at local (x,y,z). Out-of-range reads return Air and
// never panic (spec invariant 1).
func (c *Chunk) Get(x, y, z int) voxel.Material {
	i, ok := c.index(x, y, z)
	if !ok {
		return voxel.Air
	}
	return c.voxels[i]
}

// Set writes the voxel at local (x,y,z). Out of range is a silent no-op
// (spec §7 OutOfRange policy). dirty is set only when the value actually
// changes (spec invariant 2 / testable property 2).
func (c *Chunk) Set(x, y, z int, m voxel.Material) {
	i, ok := c.index(x, y, z)
	if !ok {
		return
	}
	if c.voxels[i] != m {
		c.voxels[i] = m
		c.dirty = true
	}
}

// Clear sets every voxel to Air and marks the chunk dirty.
func (c *Chunk) Clear() {
	for i := range c.voxels {
		c.voxels[i] = voxel.Air
	}
	c.dirty = true
}

// FillWith bulk-sets every voxel via a callback, marking dirty once at the
// end regardless of whether any voxel actually changed — matching the
// "bulk set via callback; one dirty=true at end" contract in spec §4.1.
func (c *Chunk) FillWith(f func(x, y, z int) voxel.Material) {
	for z := 0; z < c.size.Z; z++ {
		for y := 0; y < c.size.Y; y++ {
			for x := 0; x < c.size.X; x++ {
				i, _ := c.index(x, y, z)
				c.voxels[i] = f(x, y, z)
			}
		}
	}
	c.dirty = true
}

// LoadVoxels replaces the entire voxel array in row-major order (spec §4.8
// load_chunk: "the array fills voxels in the documented row-major order"),
// marking the chunk dirty and authored. Returns voxel.ErrInvalidInput if
// the slice length doesn't match the chunk's voxel count.
func (c *Chunk) LoadVoxels(voxels []voxel.Material) error {
	if len(voxels) != c.size.Count() {
		return fmt.Errorf("%w: %d voxels for a %d-voxel chunk", voxel.ErrInvalidInput, len(voxels), c.size.Count())
	}
	copy(c.voxels, voxels)
	c.dirty = true
	c.authored = true
	return nil
}

// IsDirty reports whether the voxel array changed since the last mesh.
func (c *Chunk) IsDirty() bool { return c.dirty }

// State returns the current lifecycle state.
func (c *Chunk) State() State { return c.state }

// LOD returns the current level of detail.
func (c *Chunk) LOD() LOD { return c.lod }

// Mesh returns the latest published mesh data (may be empty).
func (c *Chunk) Mesh() MeshData { return c.mesh }

// Generation returns the chunk's current generation counter, used by the
// worker pool to detect stale completions.
func (c *Chunk) Generation() uint64 { return c.generation }

// MarkAuthored flags the chunk as authored (editor- or template-placed
// content); the procedural generator must never overwrite it
// (spec invariant 6).
func (c *Chunk) MarkAuthored() { c.authored = true }

// IsAuthored reports whether the chunk is protected from procedural
// overwrite.
func (c *Chunk) IsAuthored() bool { return c.authored }
