// Command templatepack packs a directory of raw chunk dumps into a .vwt
// template file, or lists/inspects the contents of an existing one.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"voxelcore/internal/chunk"
	"voxelcore/internal/template"
	"voxelcore/internal/voxel"
)

func main() {
	var (
		mode       = flag.String("mode", "", "pack | inspect")
		rawDir     = flag.String("raw", "", "directory of <x>_<y>_<z>.raw chunk dumps (pack mode)")
		out        = flag.String("out", "", "output .vwt path (pack mode)")
		in         = flag.String("in", "", "input .vwt path (inspect mode)")
		name       = flag.String("name", "", "template_name header field (pack mode)")
		chunkSize  = flag.Int("chunk_size", 32, "voxels per chunk edge (pack mode)")
		allowSeeds = flag.Bool("allow_seed_variations", true, "allow_seed_variations header field (pack mode)")
	)
	flag.Parse()

	var err error
	switch *mode {
	case "pack":
		err = pack(*rawDir, *out, *name, *chunkSize, *allowSeeds)
	case "inspect":
		err = inspect(*in)
	default:
		fmt.Fprintln(os.Stderr, "usage: templatepack -mode=pack -raw=<dir> -out=<file.vwt>")
		fmt.Fprintln(os.Stderr, "       templatepack -mode=inspect -in=<file.vwt>")
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "templatepack:", err)
		os.Exit(1)
	}
}

// pack reads every "<x>_<y>_<z>.raw" file in dir (one byte per voxel,
// row-major x,y,z per spec §4.1 voxel indexing) and packs them into a
// single template document.
func pack(dir, out, name string, chunkSize int, allowSeeds bool) error {
	if dir == "" || out == "" {
		return fmt.Errorf("-raw and -out are required in pack mode")
	}
	ents, err := os.ReadDir(dir)
	if err != nil {
		return err
	}

	t := &template.Template{
		Header: template.Header{
			TemplateName: name,
			CreatedAt:    time.Now(),
			ChunkSize:    uint32(chunkSize),
		},
		Chunks:              make(map[chunk.Pos]template.ChunkRecord),
		AllowSeedVariations: allowSeeds,
	}

	count := t.Header.ChunkSize * t.Header.ChunkSize * t.Header.ChunkSize
	for _, e := range ents {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".raw") {
			continue
		}
		pos, err := parseChunkFilename(e.Name())
		if err != nil {
			return fmt.Errorf("%s: %w", e.Name(), err)
		}
		raw, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return err
		}
		if uint32(len(raw)) != count {
			return fmt.Errorf("%s: %d bytes, expected %d for a %d^3 chunk", e.Name(), len(raw), count, chunkSize)
		}
		voxels := make([]voxel.Material, len(raw))
		for i, b := range raw {
			voxels[i] = voxel.Material(b)
		}
		rec, err := template.PackChunk(pos, voxels)
		if err != nil {
			return err
		}
		t.Chunks[pos] = rec
		expandBounds(&t.Header, pos, len(t.Chunks) == 1)
	}

	if err := t.Save(out); err != nil {
		return err
	}
	fmt.Printf("packed %d chunks into %s\n", len(t.Chunks), out)
	return nil
}

// expandBounds widens the header's [min,max] chunk-coordinate box to
// include pos. first is true for the very first chunk packed, so the box
// is seeded at that chunk's position instead of the zero value (which
// would wrongly clamp the box to include the origin).
func expandBounds(h *template.Header, pos chunk.Pos, first bool) {
	p := [3]int32{pos.X, pos.Y, pos.Z}
	if first {
		h.MinChunk, h.MaxChunk = p, p
		return
	}
	lo, hi := h.MinChunk, h.MaxChunk
	for i := 0; i < 3; i++ {
		if p[i] < lo[i] {
			lo[i] = p[i]
		}
		if p[i] > hi[i] {
			hi[i] = p[i]
		}
	}
	h.MinChunk, h.MaxChunk = lo, hi
}

func parseChunkFilename(name string) (chunk.Pos, error) {
	base := strings.TrimSuffix(name, ".raw")
	parts := strings.Split(base, "_")
	if len(parts) != 3 {
		return chunk.Pos{}, fmt.Errorf("expected <x>_<y>_<z>.raw, got %q", name)
	}
	coords := make([]int32, 3)
	for i, p := range parts {
		v, err := strconv.ParseInt(p, 10, 32)
		if err != nil {
			return chunk.Pos{}, fmt.Errorf("bad coordinate %q: %w", p, err)
		}
		coords[i] = int32(v)
	}
	return chunk.Pos{X: coords[0], Y: coords[1], Z: coords[2]}, nil
}

// inspect prints the header, landmark list, and a sorted chunk manifest of
// an existing template, without touching the render/world stack.
func inspect(path string) error {
	if path == "" {
		return fmt.Errorf("-in is required in inspect mode")
	}
	t, err := template.Load(path)
	if err != nil {
		return err
	}

	hdr, _ := json.MarshalIndent(t.Header, "", "  ")
	fmt.Printf("header: %s\n", hdr)
	fmt.Printf("allow_seed_variations: %v\n", t.AllowSeedVariations)
	fmt.Printf("landmarks: %d\n", len(t.Landmarks))
	for _, l := range t.Landmarks {
		fmt.Printf("  %-20s pos=%v radius=%.1f\n", l.Name, l.WorldPos, l.ProtectionRadius)
	}

	positions := make([]chunk.Pos, 0, len(t.Chunks))
	for pos := range t.Chunks {
		positions = append(positions, pos)
	}
	sort.Slice(positions, func(i, j int) bool {
		a, b := positions[i], positions[j]
		if a.X != b.X {
			return a.X < b.X
		}
		if a.Y != b.Y {
			return a.Y < b.Y
		}
		return a.Z < b.Z
	})
	fmt.Printf("chunks: %d\n", len(positions))
	for _, pos := range positions {
		rec := t.Chunks[pos]
		ratio := 0.0
		if rec.UncompressedSize > 0 {
			ratio = float64(len(rec.CompressedBytes)) / float64(rec.UncompressedSize)
		}
		fmt.Printf("  (%d,%d,%d) uncompressed=%dB compressed=%dB (%.1f%%)\n",
			pos.X, pos.Y, pos.Z, rec.UncompressedSize, len(rec.CompressedBytes), ratio*100)
	}
	return nil
}
