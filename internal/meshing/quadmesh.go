package meshing

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"voxelcore/internal/chunk"
	"voxelcore/internal/voxel"
)

// vertexKey is the welding key: quantized position plus face-normal
// direction. Spec §4.4 requires keying on (quantized_pos, face_id) so that
// vertices with distinct normals are never merged, even when two
// differently-oriented faces share a corner position.
type vertexKey struct {
	qx, qy, qz int64
	face       voxel.Face
}

func quantize(v float32) int64 {
	// Multiply by 100 and round to nearest integer: 0.01 world-unit
	// granularity (spec §4.4 Quantization).
	return int64(math.Round(float64(v) * 100))
}

// corner is one of a quad's four corners in face-local (c0..c3) order,
// expressed as fractions (0 or 1) of the quad's (w,h) extents along its
// own u/v axes; worldCorner scales them by w, h and the voxel edge length E.
type corner struct{ u, v float32 }

// quadCorners is the (u,v) corner order shared by every face: it traces the
// quad's rectangle boundary the same way regardless of axis, which is what
// lets triangleIndexOrder carry the whole winding rule as a per-face
// reversal instead of six per-face corner tables (spec §4.4: the per-face
// corner table "shows the pattern"; an implementer may use one uniform
// circulation as long as the resulting triangles are wound outward).
var quadCorners = [4]corner{{0, 0}, {1, 0}, {1, 1}, {0, 1}}

func faceCorners(f voxel.Face) [4]corner { return quadCorners }

// triangleIndexOrder gives the local corner indices for the quad's two
// triangles, chosen so (v1-v0)x(v2-v0) always matches the face's own
// outward normal (spec §4.4's "concrete, testable rule").
//
// quadCorners traces the same (u,v) rectangle for every face, so
// (c1-c0)x(c2-c0) in world space always points along +(u-axis x v-axis),
// regardless of which side of the voxel the face sits on (the plane
// offset baked into worldCorner shifts all four corners together and
// drops out of the cross product). u-axis x v-axis is +X for the X faces,
// -Y for the Y faces (PlaneAxes picks (X,Z), and X x Z = -Y), and +Z for
// the Z faces. That only lines up with the face's own outward normal for
// one sign per axis (+X, -Y, +Z); the other three (-X, +Y, -Z) need the
// triangle order reversed to flip the winding.
func triangleIndexOrder(f voxel.Face) [6]int {
	positive := f.Sign() > 0
	oddAxis := f.Axis()%2 == 1 // Y is the only odd axis among X=0,Y=1,Z=2
	if positive == oddAxis {
		return [6]int{0, 3, 1, 1, 3, 2}
	}
	return [6]int{0, 1, 2, 0, 2, 3}
}

// worldCorner maps a quad corner to its world-space position. base is the
// quad's voxel-space origin (the lower corner on the face's plane), w/h
// the extents along the face's (u,v) voxel axes, e the voxel edge length.
func worldCorner(base [3]int32, face voxel.Face, w, h uint32, c corner, e float32) mgl32.Vec3 {
	axis := face.Axis()
	ua, va := face.PlaneAxes()
	sign := face.Sign()

	pos := [3]float32{
		float32(base[0]) * e,
		float32(base[1]) * e,
		float32(base[2]) * e,
	}
	// The plane itself sits at base[axis] (negative faces) or
	// base[axis]+1 (positive faces) in voxel units, per the "emit quad at
	// plane x or x+1 depending on sign" rule the teacher's greedy mesher
	// applies per axis.
	if sign > 0 {
		pos[axis] = (float32(base[axis]) + 1) * e
	}
	pos[ua] += c.u * float32(w) * e
	pos[va] += c.v * float32(h) * e
	return mgl32.Vec3{pos[0], pos[1], pos[2]}
}

// Convert turns greedy/basic quads into a validated MeshData, performing
// vertex welding by (quantized_position, face) and material sectioning in
// first-seen order (spec §4.4).
func Convert(quads []chunk.GreedyQuad, size chunk.Size, e float32) (chunk.MeshData, error) {
	mesh := chunk.MeshData{
		MaterialSections: make(map[voxel.Material]int),
	}
	index := make(map[vertexKey]uint32)

	var totalCorners, reused int

	for _, q := range quads {
		corners := faceCorners(q.Face)
		order := triangleIndexOrder(q.Face)

		if _, ok := mesh.MaterialSections[q.Material]; !ok {
			mesh.MaterialSections[q.Material] = len(mesh.SectionOrder)
			mesh.SectionOrder = append(mesh.SectionOrder, q.Material)
		}

		var localIdx [4]uint32
		nx, ny, nz := q.Face.Normal()
		normal := mgl32.Vec3{float32(nx), float32(ny), float32(nz)}

		for ci, c := range corners {
			totalCorners++
			world := worldCorner(q.Base, q.Face, q.SizeUV[0], q.SizeUV[1], c, e)
			key := vertexKey{quantize(world.X()), quantize(world.Y()), quantize(world.Z()), q.Face}
			if existing, ok := index[key]; ok {
				localIdx[ci] = existing
				reused++
				continue
			}
			vi := uint32(len(mesh.Positions))
			mesh.Positions = append(mesh.Positions, world)
			mesh.Normals = append(mesh.Normals, normal)
			mesh.UVs = append(mesh.UVs, quadUV(world, q.Face, e))
			mesh.Tangents = append(mesh.Tangents, tangentFor(q.Face))
			mesh.Colors = append(mesh.Colors, [4]uint8{255, 255, 255, 255})
			index[key] = vi
			localIdx[ci] = vi
		}

		for _, oi := range order {
			mesh.Indices = append(mesh.Indices, localIdx[oi])
		}
	}

	if totalCorners > 0 {
		mesh.WeldEfficiency = float64(reused) / float64(totalCorners)
	}

	if err := validate(mesh, size, e); err != nil {
		return chunk.MeshData{}, err
	}
	return mesh, nil
}

// quadUV projects the world-space vertex onto the plane spanned by the
// face's (u,v) axes, divided by E, then takes the fractional part — a
// tiling UV continuous across merged quads (spec §4.4 UV).
func quadUV(world mgl32.Vec3, f voxel.Face, e float32) mgl32.Vec2 {
	ua, va := f.PlaneAxes()
	comp := [3]float32{world.X(), world.Y(), world.Z()}
	u := fract(comp[ua] / e)
	v := fract(comp[va] / e)
	return mgl32.Vec2{u, v}
}

func fract(v float32) float32 {
	_, frac := math.Modf(float64(v))
	if frac < 0 {
		frac += 1
	}
	return float32(frac)
}

// tangentFor returns the edge along the quad's u-axis, normalized
// (spec §4.4 Tangent); the bitangent is left for the host to infer from
// normal x tangent.
func tangentFor(f voxel.Face) mgl32.Vec3 {
	ua, _ := f.PlaneAxes()
	t := [3]float32{}
	t[ua] = 1
	return mgl32.Vec3{t[0], t[1], t[2]}
}

// validate performs the pre-return checks in spec §4.4: index bounds,
// equal-length attribute arrays, position bounds, nonzero normals.
func validate(mesh chunk.MeshData, size chunk.Size, e float32) error {
	n := mesh.VertexCount()
	for _, idx := range mesh.Indices {
		if int(idx) >= n {
			return fmt.Errorf("%w: index %d out of range for %d vertices", voxel.ErrMeshValidationFailed, idx, n)
		}
	}
	if len(mesh.Normals) != n || len(mesh.UVs) != n || len(mesh.Colors) != n || len(mesh.Tangents) != n {
		return fmt.Errorf("%w: mismatched attribute array lengths", voxel.ErrMeshValidationFailed)
	}

	maxExtent := size.X
	if size.Y > maxExtent {
		maxExtent = size.Y
	}
	if size.Z > maxExtent {
		maxExtent = size.Z
	}
	r := 2 * float32(maxExtent) * e
	for _, p := range mesh.Positions {
		if abs(p.X()) > r || abs(p.Y()) > r || abs(p.Z()) > r {
			return fmt.Errorf("%w: vertex position outside bounds", voxel.ErrMeshValidationFailed)
		}
	}
	for _, nrm := range mesh.Normals {
		if nrm.X() == 0 && nrm.Y() == 0 && nrm.Z() == 0 {
			return fmt.Errorf("%w: zero-length normal", voxel.ErrMeshValidationFailed)
		}
	}
	return nil
}

func abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
