package lod

import (
	"testing"

	"voxelcore/internal/chunk"
)

func TestSelectBandBoundaries(t *testing.T) {
	cases := []struct {
		distance float64
		want     chunk.LOD
	}{
		{0, chunk.LOD0},
		{BandLOD0 - 1, chunk.LOD0},
		{BandLOD0, chunk.LOD1},
		{BandLOD1 - 1, chunk.LOD1},
		{BandLOD1, chunk.LOD2},
		{BandLOD2 - 1, chunk.LOD2},
		{BandLOD2, chunk.LOD3},
		{BandLOD3 - 1, chunk.LOD3},
		{BandLOD3, chunk.Unloaded},
		{BandLOD3 + 100000, chunk.Unloaded},
	}
	for _, c := range cases {
		if got := Select(c.distance); got != c.want {
			t.Errorf("Select(%f) = %v, want %v", c.distance, got, c.want)
		}
	}
}

func TestVoxelScalePerLOD(t *testing.T) {
	cases := []struct {
		l    chunk.LOD
		want float32
	}{
		{chunk.LOD0, 1},
		{chunk.LOD1, 2},
		{chunk.LOD2, 2},
		{chunk.LOD3, 1},
		{chunk.Unloaded, 1},
	}
	for _, c := range cases {
		if got := VoxelScale(c.l); got != c.want {
			t.Errorf("VoxelScale(%v) = %f, want %f", c.l, got, c.want)
		}
	}
}

func TestUsesGreedyOnlyAtLOD0(t *testing.T) {
	if !UsesGreedy(chunk.LOD0) {
		t.Error("LOD0 should use the greedy mesher")
	}
	for _, l := range []chunk.LOD{chunk.LOD1, chunk.LOD2, chunk.LOD3, chunk.Unloaded} {
		if UsesGreedy(l) {
			t.Errorf("%v should not use the greedy mesher", l)
		}
	}
}
