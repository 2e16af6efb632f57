package voxel

import "errors"

// Sentinel errors for the error kinds in spec §7, checked with errors.Is
// and wrapped with fmt.Errorf("%w: ...") at call sites.
var (
	// ErrOutOfRange is never returned by reads (those silently clamp to
	// Air); it is kept for APIs that must distinguish a no-op write from
	// an accepted one.
	ErrOutOfRange = errors.New("voxel: coordinate out of range")

	// ErrBusy is returned when generate_mesh is called while the chunk is
	// already Meshing.
	ErrBusy = errors.New("voxel: chunk is busy meshing")

	// ErrInvalidInput covers set_voxel_batch length mismatches and
	// template decompress size mismatches.
	ErrInvalidInput = errors.New("voxel: invalid input")

	// ErrMeshValidationFailed is returned by the mesh converter. The
	// worker pool passes it on in Result.Err and chunk.GenerateMeshSync
	// returns it; the world manager logs it and the chunk reverts to
	// Generated.
	ErrMeshValidationFailed = errors.New("voxel: mesh validation failed")

	// ErrPoolExhausted is returned when the free pool is empty and a
	// fresh allocation also fails.
	ErrPoolExhausted = errors.New("voxel: chunk pool exhausted")

	// ErrTemplateChunkMissing signals that a template has no entry for
	// the requested chunk position; callers fall back to procedural fill.
	ErrTemplateChunkMissing = errors.New("voxel: template has no chunk at position")
)
