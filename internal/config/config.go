// Package config holds the single typed configuration record passed
// explicitly into world.New, replacing the global RWMutex-guarded package
// vars the teacher used for the same settings (spec §9: "pass a Context
// ... avoid truly global state in the core").
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config is every recognized option from spec §4.6/§6.3/§6.4, settable
// before the world starts streaming.
type Config struct {
	ChunkSize                  int   `yaml:"chunk_size"`
	ViewDistanceChunks         int   `yaml:"view_distance_chunks"`
	ChunkPoolSize              int   `yaml:"chunk_pool_size"`
	UseMultithreading          bool  `yaml:"use_multithreading"`
	MaxConcurrentChunkGenerations int `yaml:"max_concurrent_chunk_generations"`
	MobileMemoryBudgetMB       float64 `yaml:"mobile_memory_budget_mb"`
	PCMemoryBudgetMB           float64 `yaml:"pc_memory_budget_mb"`
	IsMobile                   bool  `yaml:"is_mobile"`
	PreserveEditorChunks       bool  `yaml:"preserve_editor_chunks"`
	DisableDynamicGeneration   bool  `yaml:"disable_dynamic_generation"`
	FlatWorldMode              bool  `yaml:"flat_world_mode"`

	VoxelEdgeLength     float32 `yaml:"voxel_edge_length"`
	ChunkUpdateIntervalMS int   `yaml:"chunk_update_interval_ms"`
	MemoryCheckIntervalMS int   `yaml:"memory_check_interval_ms"`
	LODUpdateIntervalMS   int   `yaml:"lod_update_interval_ms"`
	MaxTasksPerDispatch   int   `yaml:"max_tasks_per_dispatch"`

	NoiseScale float64 `yaml:"noise_scale"`
	HeightBase float64 `yaml:"height_base"`
	HeightScale float64 `yaml:"height_scale"`

	// TerrainSampler selects the procedural-fallback height sampler (spec
	// §4.8): "value" (default) for the deterministic lattice in
	// internal/noise, or "perlin" for the go-perlin-backed internal/noise.Perlin.
	TerrainSampler string `yaml:"terrain_sampler"`
}

// Default returns the documented defaults (spec §4.6, §4.8, §6.4).
func Default() Config {
	return Config{
		ChunkSize:                     32,
		ViewDistanceChunks:            8,
		ChunkPoolSize:                 256,
		UseMultithreading:             true,
		MaxConcurrentChunkGenerations: 4,
		MobileMemoryBudgetMB:          256,
		PCMemoryBudgetMB:              1024,
		IsMobile:                      false,
		PreserveEditorChunks:          true,
		DisableDynamicGeneration:      false,
		FlatWorldMode:                 false,

		VoxelEdgeLength:       25,
		ChunkUpdateIntervalMS: 100,
		MemoryCheckIntervalMS: 1000,
		LODUpdateIntervalMS:   500,
		MaxTasksPerDispatch:   5,

		NoiseScale:  0.03,
		HeightBase:  10,
		HeightScale: 10,

		TerrainSampler: "value",
	}
}

// MemoryBudgetMB selects the active byte cap per IsMobile (spec §4.6).
func (c Config) MemoryBudgetMB() float64 {
	if c.IsMobile {
		return c.MobileMemoryBudgetMB
	}
	return c.PCMemoryBudgetMB
}

// Load reads and unmarshals a YAML config file, filling unset fields from
// Default first so a partial file is valid input.
func Load(path string) (Config, error) {
	cfg := Default()
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
