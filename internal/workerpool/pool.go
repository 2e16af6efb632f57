// Package workerpool runs chunk mesh jobs on a bounded set of goroutines
// and hands completed results back to the main sequence for application.
package workerpool

import (
	"context"
	"sync"
	"time"

	"voxelcore/internal/chunk"
	"voxelcore/internal/diag"
	"voxelcore/internal/logging"
	"voxelcore/internal/voxel"

	"go.uber.org/zap"
)

// Mesher builds a MeshData from a voxel snapshot. Concrete implementations
// live in internal/meshing (Basic+Convert, Greedy+Convert); the pool only
// needs the interface so it stays free of a meshing import.
type Mesher interface {
	Mesh(size chunk.Size, voxels []voxel.Material, lod chunk.LOD) (chunk.MeshData, error)
}

// Job describes one mesh computation: a snapshot of a chunk's voxels plus
// enough identity to match its Result back to the originating chunk and
// detect staleness (spec §5 job-id -> chunk-generation check).
type Job struct {
	ChunkPos       chunk.Pos
	Generation     uint64
	Size           chunk.Size
	Voxels         []voxel.Material
	LOD            chunk.LOD
	IsRegeneration bool
	Mesher         Mesher
}

// Result is a completed (or failed) mesh job, ready for main-sequence
// application via chunk.CompleteMeshJob.
type Result struct {
	ChunkPos   chunk.Pos
	Generation uint64
	Mesh       chunk.MeshData
	Err        error
}

// Pool runs jobs on a fixed number of worker goroutines (spec §4.7
// "a fixed-size pool of parallel workers"). Grounded on the teacher's
// meshing.WorkerPool (jobQueue channel, context cancellation, WaitGroup
// workers, Shutdown), extended with a mutex-guarded InFlight counter of
// running jobs. The world manager's dispatcher (§4.6) bounds
// max_concurrent_chunk_generations with its own dispatched set, not InFlight.
type Pool struct {
	jobs    chan Job
	results chan Result

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	inFlight int64
	mu       sync.Mutex
}

// New starts numWorkers goroutines reading from an internally buffered job
// queue of the given capacity. Results are delivered on the channel
// returned by Results(); the caller must drain it or Submit will eventually
// block.
func New(numWorkers, queueCapacity int) *Pool {
	ctx, cancel := context.WithCancel(context.Background())
	p := &Pool{
		jobs:    make(chan Job, queueCapacity),
		results: make(chan Result, queueCapacity),
		ctx:     ctx,
		cancel:  cancel,
	}
	for i := 0; i < numWorkers; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}
	return p
}

func (p *Pool) worker(id int) {
	defer p.wg.Done()
	for {
		select {
		case <-p.ctx.Done():
			return
		case job, ok := <-p.jobs:
			if !ok {
				return
			}
			p.run(job)
		}
	}
}

func (p *Pool) run(job Job) {
	p.mu.Lock()
	p.inFlight++
	p.mu.Unlock()
	defer func() {
		p.mu.Lock()
		p.inFlight--
		p.mu.Unlock()
	}()

	start := time.Now()
	mesh, err := job.Mesher.Mesh(job.Size, job.Voxels, job.LOD)
	elapsed := time.Since(start)
	if diag.OverBudget(elapsed) {
		logging.Log.Warn("mesh job over soft budget",
			zap.Duration("elapsed", elapsed),
			zap.Int32("x", job.ChunkPos.X), zap.Int32("y", job.ChunkPos.Y), zap.Int32("z", job.ChunkPos.Z))
	}

	result := Result{ChunkPos: job.ChunkPos, Generation: job.Generation, Mesh: mesh, Err: err}
	select {
	case p.results <- result:
	case <-p.ctx.Done():
	}
}

// Submit enqueues a job. It blocks if the internal queue is full; callers
// that must never block should check InFlight/queue depth against
// max_concurrent_chunk_generations (§4.6) before calling Submit.
func (p *Pool) Submit(job Job) {
	select {
	case p.jobs <- job:
	case <-p.ctx.Done():
	}
}

// Results returns the channel the main sequence drains to apply completed
// jobs (spec §4.7 "Completion handoff... happens on the main sequence
// only").
func (p *Pool) Results() <-chan Result { return p.results }

// InFlight returns the number of jobs currently running (not counting ones
// still sitting in the queue).
func (p *Pool) InFlight() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return int(p.inFlight)
}

// Shutdown stops accepting new jobs and waits for in-flight jobs to drain.
// Jobs still sitting in the queue run too, so their results must fit in
// the results buffer (or be drained concurrently) for Shutdown to return.
func (p *Pool) Shutdown() {
	close(p.jobs)
	p.wg.Wait()
	p.cancel()
	close(p.results)
}
