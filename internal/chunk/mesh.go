package chunk

import (
	"github.com/go-gl/mathgl/mgl32"

	"voxelcore/internal/voxel"
)

// MeshData holds five parallel vertex-attribute arrays plus a flat triangle
// index list and a material-section map (spec §3 MeshData).
type MeshData struct {
	Positions []mgl32.Vec3
	Normals   []mgl32.Vec3
	UVs       []mgl32.Vec2
	Tangents  []mgl32.Vec3
	Colors    [][4]uint8

	Indices []uint32

	// MaterialSections maps a material to a contiguous section id,
	// assigned in first-seen order (spec §4.4 Material sectioning).
	MaterialSections map[voxel.Material]int
	// SectionOrder preserves first-seen material order for iteration,
	// since Go map iteration order is unspecified.
	SectionOrder []voxel.Material

	// WeldEfficiency is the fraction of emitted corners that reused an
	// existing vertex record (spec §4.4 "Welding efficiency... reported
	// in stats").
	WeldEfficiency float64
}

// VertexCount returns the number of vertex records.
func (m MeshData) VertexCount() int { return len(m.Positions) }

// TriangleCount returns indices.len / 3.
func (m MeshData) TriangleCount() int { return len(m.Indices) / 3 }

// GreedyQuad is the intermediate output of the greedy mesher: a maximal
// rectangle of coplanar, same-material, same-face-direction visible faces
// (spec §3 GreedyQuad).
type GreedyQuad struct {
	// Base is the integer voxel-space position of the quad's origin
	// corner, as reconstructed from (slice, u, v, face) per spec §4.3.
	Base [3]int32
	// SizeUV is the quad's extent in voxel units along the face's
	// (u, v) in-plane axes.
	SizeUV [2]uint32
	Face   voxel.Face
	Material voxel.Material
}
