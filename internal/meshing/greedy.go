package meshing

import (
	"voxelcore/internal/chunk"
	"voxelcore/internal/voxel"
)

// Greedy implements the greedy mesher (spec §4.3): for each of the six face
// directions, slice the chunk along that face's primary axis, build a 2D
// mask of (material, visible) per slice, and coalesce same-material visible
// cells into maximal rectangles.
//
// Grounded on the teacher's buildGreedyForDirection (mini-mc
// internal/meshing/greedy.go): per-slice mask build, row-major scan,
// grow-width-then-height rectangle growth, zero the consumed mask region.
// Adapted to emit chunk.GreedyQuad values instead of raw float32 vertex
// data, and to operate on a material mask (not a boolean one) so that
// differently-materialed faces never merge.
//
// Complexity: O(N) per face, O(N) total (spec §4.3).
func Greedy(size chunk.Size, voxels []voxel.Material) []chunk.GreedyQuad {
	g := newGrid(size, voxels)
	var quads []chunk.GreedyQuad
	for _, f := range voxel.AllFaces {
		quads = append(quads, greedyForFace(g, size, f)...)
	}
	return quads
}

type maskCell struct {
	material voxel.Material
	visible  bool
}

func greedyForFace(g grid, size chunk.Size, f voxel.Face) []chunk.GreedyQuad {
	axis := f.Axis()
	ua, va := f.PlaneAxes()
	sliceCount := dim(size, axis)
	uCount := dim(size, ua)
	vCount := dim(size, va)

	var quads []chunk.GreedyQuad
	mask := make([]maskCell, uCount*vCount)

	for s := 0; s < sliceCount; s++ {
		for i := range mask {
			mask[i] = maskCell{}
		}
		for u := 0; u < uCount; u++ {
			for v := 0; v < vCount; v++ {
				x, y, z := voxelPos(axis, ua, va, s, u, v)
				m := g.at(x, y, z)
				if !m.IsSolid() {
					continue
				}
				if voxel.FaceVisible(m, g.neighbor(x, y, z, f)) {
					mask[u*vCount+v] = maskCell{material: m, visible: true}
				}
			}
		}

		// Row-major scan over (u,v): grow +u to its maximum, then +v,
		// tie-breaking determinism per spec §4.3.
		i := 0
		for i < len(mask) {
			cell := mask[i]
			if !cell.visible {
				i++
				continue
			}
			u0 := i / vCount
			v0 := i % vCount
			m := cell.material

			w := 1
			for u0+w < uCount {
				c := mask[(u0+w)*vCount+v0]
				if !c.visible || c.material != m {
					break
				}
				w++
			}

			h := 1
		growV:
			for v0+h < vCount {
				for uu := u0; uu < u0+w; uu++ {
					c := mask[uu*vCount+v0+h]
					if !c.visible || c.material != m {
						break growV
					}
				}
				h++
			}

			x, y, z := voxelPos(axis, ua, va, s, u0, v0)
			quads = append(quads, chunk.GreedyQuad{
				Base:     [3]int32{int32(x), int32(y), int32(z)},
				SizeUV:   [2]uint32{uint32(w), uint32(h)},
				Face:     f,
				Material: m,
			})

			for uu := u0; uu < u0+w; uu++ {
				for vv := v0; vv < v0+h; vv++ {
					mask[uu*vCount+vv] = maskCell{}
				}
			}
			i++
		}
	}
	return quads
}

func dim(size chunk.Size, axis int) int {
	switch axis {
	case 0:
		return size.X
	case 1:
		return size.Y
	default:
		return size.Z
	}
}

// voxelPos inverts the (slice, u, v) plane coordinates back to (x,y,z)
// given which axis is primary and which are the in-plane (u,v) axes
// (spec §4.3 "Position reconstruction from (s,u,v,f) inverts this
// mapping").
func voxelPos(axis, ua, va, s, u, v int) (x, y, z int) {
	coord := [3]int{}
	coord[axis] = s
	coord[ua] = u
	coord[va] = v
	return coord[0], coord[1], coord[2]
}
