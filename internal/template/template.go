// Package template loads hand-authored world content — packed, compressed
// voxel bytes plus landmarks and variation knobs — into chunks, and applies
// deterministic seed-driven overlays on top (spec §4.8, §6.2).
//
// The file shape (JSON header/landmark metadata, zstd-compressed per-chunk
// payloads) is grounded on hellsoul86-voxelcraft.ai's
// internal/persistence/snapshot/snapshot.go, which writes a JSON-tagged
// struct through a zstd writer. internal/template keeps the header as
// plain JSON and compresses only the per-chunk byte blocks individually, so
// a template can be inspected without decompressing the whole file.
package template

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/klauspost/compress/zstd"

	"voxelcore/internal/chunk"
	"voxelcore/internal/voxel"
)

// Header is the template's metadata block (spec §6.2).
type Header struct {
	TemplateName string    `json:"template_name"`
	Description  string    `json:"description"`
	CreatedAt    time.Time `json:"created_at"`
	Creator      string    `json:"creator"`
	ChunkSize    uint32    `json:"chunk_size"`
	MinChunk     [3]int32  `json:"min_chunk"`
	MaxChunk     [3]int32  `json:"max_chunk"`
}

// ChunkRecord is one packed-and-compressed chunk entry (spec §6.2).
type ChunkRecord struct {
	ChunkPos         [3]int32 `json:"chunk_pos"`
	UncompressedSize uint32   `json:"uncompressed_size"`
	CompressedBytes  []byte   `json:"compressed_bytes"`
}

// Landmark marks a protected, possibly spawnable point of interest
// (spec §6.2).
type Landmark struct {
	Name             string  `json:"name"`
	WorldPos         [3]float32 `json:"world_pos"`
	ProtectionRadius float32 `json:"protection_radius"`
	Description      string  `json:"description"`
	Spawnable        *string `json:"spawnable,omitempty"`
}

// VariationParams tunes apply_seed_variation (spec §6.2, §4.8).
type VariationParams struct {
	GrassVariation      float64 `json:"grass_variation"`
	FlowerDensity       float64 `json:"flower_density"`
	TreeVariation       float64 `json:"tree_variation"`
	TerrainNoiseScale   float64 `json:"terrain_noise_scale"`
	TerrainNoiseHeight  float64 `json:"terrain_noise_height"`
	AllowPathVariation  bool    `json:"allow_path_variation"`
	AllowWaterVariation bool    `json:"allow_water_variation"`
}

// document is the on-disk JSON envelope: the header and landmark/variation
// metadata in plain JSON, with each chunk's voxel payload already
// zstd-compressed into ChunkRecord.CompressedBytes.
type document struct {
	Header               Header            `json:"header"`
	Chunks               []ChunkRecord     `json:"chunks"`
	Landmarks            []Landmark        `json:"landmarks"`
	VariationParams      VariationParams    `json:"variation_params"`
	AllowSeedVariations  bool              `json:"allow_seed_variations"`
}

// Template is a packaged world: metadata plus a lookup of chunk_pos to its
// compressed voxel payload, plus landmarks and variation params (spec §4.8).
type Template struct {
	Header              Header
	Chunks              map[chunk.Pos]ChunkRecord
	Landmarks           []Landmark
	VariationParams     VariationParams
	AllowSeedVariations bool
}

// Load reads and parses a template file from disk.
func Load(path string) (*Template, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Decode(f)
}

// Decode parses a template from an arbitrary reader.
func Decode(r io.Reader) (*Template, error) {
	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode template: %w", err)
	}
	t := &Template{
		Header:              doc.Header,
		Chunks:              make(map[chunk.Pos]ChunkRecord, len(doc.Chunks)),
		Landmarks:           doc.Landmarks,
		VariationParams:     doc.VariationParams,
		AllowSeedVariations: doc.AllowSeedVariations,
	}
	for _, rec := range doc.Chunks {
		pos := chunk.Pos{X: rec.ChunkPos[0], Y: rec.ChunkPos[1], Z: rec.ChunkPos[2]}
		t.Chunks[pos] = rec
	}
	return t, nil
}

// Save writes the template back out in the same JSON+zstd-per-chunk shape.
func (t *Template) Save(path string) error {
	doc := document{
		Header:              t.Header,
		Landmarks:           t.Landmarks,
		VariationParams:     t.VariationParams,
		AllowSeedVariations: t.AllowSeedVariations,
	}
	for pos, rec := range t.Chunks {
		rec.ChunkPos = [3]int32{pos.X, pos.Y, pos.Z}
		doc.Chunks = append(doc.Chunks, rec)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// PackChunk compresses a voxel array into a ChunkRecord payload, used when
// authoring a new template (spec §6.2 compression: "any general-purpose
// lossless byte codec"; the reference uses zstd at the default speed).
func PackChunk(pos chunk.Pos, voxels []voxel.Material) (ChunkRecord, error) {
	w, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return ChunkRecord{}, err
	}
	raw := make([]byte, len(voxels))
	for i, m := range voxels {
		raw[i] = byte(m)
	}
	compressed := w.EncodeAll(raw, nil)
	_ = w.Close()
	return ChunkRecord{
		ChunkPos:         [3]int32{pos.X, pos.Y, pos.Z},
		UncompressedSize: uint32(len(raw)),
		CompressedBytes:  compressed,
	}, nil
}

// unpackChunk decompresses a ChunkRecord's payload into a material slice.
func unpackChunk(rec ChunkRecord) ([]voxel.Material, error) {
	dec, err := zstd.NewReader(bytes.NewReader(rec.CompressedBytes))
	if err != nil {
		return nil, err
	}
	defer dec.Close()
	raw, err := io.ReadAll(dec)
	if err != nil {
		return nil, fmt.Errorf("decompress chunk: %w", err)
	}
	if uint32(len(raw)) != rec.UncompressedSize {
		return nil, fmt.Errorf("%w: decompressed %d bytes, header says %d", voxel.ErrInvalidInput, len(raw), rec.UncompressedSize)
	}
	out := make([]voxel.Material, len(raw))
	for i, b := range raw {
		out[i] = voxel.Material(b)
	}
	return out, nil
}

// LoadChunk implements spec §4.8 load_chunk: false if unmapped, error if
// the decompressed payload doesn't match the chunk's expected voxel count,
// else the chunk's voxels are replaced in row-major order, dirty and
// authored are set (via chunk.LoadVoxels).
func (t *Template) LoadChunk(c *chunk.Chunk, pos chunk.Pos) (bool, error) {
	rec, ok := t.Chunks[pos]
	if !ok {
		return false, nil
	}
	voxels, err := unpackChunk(rec)
	if err != nil {
		return false, err
	}
	if len(voxels) != c.Size().Count() {
		return false, fmt.Errorf("%w: template chunk has %d voxels, chunk wants %d", voxel.ErrInvalidInput, len(voxels), c.Size().Count())
	}
	if err := c.LoadVoxels(voxels); err != nil {
		return false, err
	}
	return true, nil
}
