package renderer

import (
	"context"
	"fmt"
	"image"
	"math/rand"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/example/raytracer/pkg/checkpoint"
	"github.com/example/raytracer/pkg/core"
	"github.com/example/raytracer/pkg/integrator"
)

// State tracks a renderer through its lifecycle. A renderer runs at most
// one render: Idle -> Running -> one of {Completed, Checkpointed, Failed}.
type State int32

const (
	StateIdle State = iota
	StateRunning
	StateCompleted    // All pixels reached the target sample count
	StateCheckpointed // Interrupted; progress saved (or attempted) for resume
	StateFailed       // Configuration or restore error
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateCompleted:
		return "completed"
	case StateCheckpointed:
		return "checkpointed"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("state(%d)", int32(s))
	}
}

// Config contains all render parameters
type Config struct {
	Width              int           // Image width in pixels
	Height             int           // Image height in pixels
	SamplesPerPixel    int           // Target samples per pixel
	MaxBounces         int           // Path tracing recursion depth
	NumWorkers         int           // Parallel workers (0 = CPU count)
	Seed               int64         // Base seed; renders with the same seed are bit-identical
	Gamma              float64       // Output gamma (0 = 2.0)
	CheckpointPath     string        // Empty disables checkpointing
	CheckpointInterval time.Duration // Periodic checkpoint cadence (0 = interrupt-only)
}

// Each row's generator is seeded from the run seed and the row index, so a
// row's sample sequence doesn't depend on which worker renders it or on how
// many workers there are.
const rowSeedStride = 1099511628211

// Renderer drives a scanline worker pool over an accumulation buffer
type Renderer struct {
	camera      *Camera
	world       core.Hittable
	background  core.Background
	fingerprint [32]byte
	config      Config
	integrator  *integrator.PathTracingIntegrator
	buffer      *AccumulationBuffer
	logger      core.Logger

	state           atomic.Int32
	completedPixels atomic.Int64
	stopped         atomic.Bool

	// Workers hold the read lock while sampling a pixel and release it
	// between pixels. Taking the write lock therefore parks every worker at
	// a pixel boundary, which is the checkpoint snapshot barrier.
	pauseMu sync.RWMutex
}

// NewRenderer creates a renderer for the given scene components. The
// fingerprint identifies the scene in checkpoint files.
func NewRenderer(camera *Camera, world core.Hittable, background core.Background, fingerprint [32]byte, config Config, logger core.Logger) *Renderer {
	if config.NumWorkers <= 0 {
		config.NumWorkers = runtime.NumCPU()
	}
	if config.Gamma <= 0 {
		config.Gamma = 2.0
	}
	return &Renderer{
		camera:      camera,
		world:       world,
		background:  background,
		fingerprint: fingerprint,
		config:      config,
		integrator:  integrator.NewPathTracingIntegrator(config.MaxBounces),
		buffer:      NewAccumulationBuffer(config.Width, config.Height),
		logger:      logger,
	}
}

// State returns the renderer's current lifecycle state
func (r *Renderer) State() State {
	return State(r.state.Load())
}

// CheckpointParams returns the parameters that identify this render in
// checkpoint files
func (r *Renderer) CheckpointParams() checkpoint.Params {
	return checkpoint.Params{
		Width:         uint32(r.config.Width),
		Height:        uint32(r.config.Height),
		TargetSamples: uint32(r.config.SamplesPerPixel),
		MaxBounces:    uint32(r.config.MaxBounces),
		Fingerprint:   r.fingerprint,
	}
}

// Restore loads previously checkpointed pixel records into the buffer.
// Workers then only render the samples each pixel is still missing.
// Must be called before Render.
func (r *Renderer) Restore(records []checkpoint.Record) error {
	if r.State() != StateIdle {
		return fmt.Errorf("renderer: cannot restore in state %s", r.State())
	}
	if len(records) != r.config.Width*r.config.Height {
		return fmt.Errorf("renderer: restore has %d records, need %d",
			len(records), r.config.Width*r.config.Height)
	}
	for i, rec := range records {
		r.buffer.Pixels[i] = PixelAccumulator{
			Sum:   core.NewVec3(rec.SumX, rec.SumY, rec.SumZ),
			Count: rec.Count,
		}
	}
	return nil
}

// Render runs the full render, blocking until every pixel reaches the
// target sample count or ctx is cancelled. On cancellation it parks the
// workers, writes a final checkpoint if configured, and returns the partial
// image with state Checkpointed.
func (r *Renderer) Render(ctx context.Context) (*image.RGBA, error) {
	if err := r.validate(); err != nil {
		r.state.Store(int32(StateFailed))
		return nil, err
	}
	if !r.state.CompareAndSwap(int32(StateIdle), int32(StateRunning)) {
		return nil, fmt.Errorf("renderer: render already started (state %s)", r.State())
	}

	r.logger.Printf("Rendering %dx%d at %d spp with %d workers (seed %d)\n",
		r.config.Width, r.config.Height, r.config.SamplesPerPixel, r.config.NumWorkers, r.config.Seed)

	progress := newProgressReporter(r.logger, int64(r.config.Width*r.config.Height), &r.completedPixels)
	watchDone := make(chan struct{})
	var watchWg sync.WaitGroup
	watchWg.Add(1)
	go func() {
		defer watchWg.Done()
		r.watch(ctx, watchDone, progress)
	}()

	var wg sync.WaitGroup
	for w := 0; w < r.config.NumWorkers; w++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			r.renderWorker(workerID)
		}(w)
	}
	wg.Wait()

	close(watchDone)
	watchWg.Wait()

	interrupted := r.stopped.Load()
	if interrupted {
		if r.config.CheckpointPath != "" {
			if err := r.writeCheckpoint(); err != nil {
				r.logger.Printf("Checkpoint write failed: %v\n", err)
			} else {
				r.logger.Printf("Checkpoint saved to %s\n", r.config.CheckpointPath)
			}
		}
		r.state.Store(int32(StateCheckpointed))
	} else {
		r.state.Store(int32(StateCompleted))
		progress.final()
	}

	return r.buffer.Image(r.config.Gamma), nil
}

func (r *Renderer) validate() error {
	switch {
	case r.config.Width <= 0 || r.config.Height <= 0:
		return fmt.Errorf("renderer: invalid dimensions %dx%d", r.config.Width, r.config.Height)
	case r.config.SamplesPerPixel <= 0:
		return fmt.Errorf("renderer: samples per pixel must be positive, got %d", r.config.SamplesPerPixel)
	case r.config.MaxBounces <= 0:
		return fmt.Errorf("renderer: max bounces must be positive, got %d", r.config.MaxBounces)
	}
	return nil
}

// watch handles periodic progress logging, periodic checkpoints, and
// context cancellation until the workers finish
func (r *Renderer) watch(ctx context.Context, done <-chan struct{}, progress *progressReporter) {
	progressTicker := time.NewTicker(progressInterval)
	defer progressTicker.Stop()

	var checkpointC <-chan time.Time
	if r.config.CheckpointPath != "" && r.config.CheckpointInterval > 0 {
		checkpointTicker := time.NewTicker(r.config.CheckpointInterval)
		defer checkpointTicker.Stop()
		checkpointC = checkpointTicker.C
	}

	for {
		select {
		case <-done:
			return
		case <-ctx.Done():
			// Workers notice the flag at the next pixel boundary
			r.stopped.Store(true)
			r.logger.Printf("Interrupt received, stopping render...\n")
			ctx = context.Background() // Only react to cancellation once
		case <-progressTicker.C:
			progress.report()
		case <-checkpointC:
			if err := r.writeCheckpoint(); err != nil {
				r.logger.Printf("Checkpoint write failed: %v\n", err)
			}
		}
	}
}

// renderWorker renders every row owned by this worker: row r belongs to
// worker r mod NumWorkers
func (r *Renderer) renderWorker(workerID int) {
	width := r.config.Width
	height := r.config.Height
	// A 1-pixel axis has no inter-pixel spacing; its samples jitter across
	// the whole viewport
	uDenom := float64(max(width-1, 1))
	vDenom := float64(max(height-1, 1))

	for row := workerID; row < height; row += r.config.NumWorkers {
		random := rand.New(rand.NewSource(r.config.Seed + int64(row)*rowSeedStride))

		for x := 0; x < width; x++ {
			if r.stopped.Load() {
				return
			}

			r.pauseMu.RLock()
			needed := r.config.SamplesPerPixel - int(r.buffer.At(x, row).Count)
			for s := 0; s < needed; s++ {
				u := (float64(x) + random.Float64()) / uDenom
				v := 1.0 - (float64(row)+random.Float64())/vDenom
				ray := r.camera.GetRay(u, v, random)
				sample := r.integrator.RayColor(ray, r.world, r.background, random, r.config.MaxBounces)
				r.buffer.AddSample(x, row, sample)
			}
			r.pauseMu.RUnlock()

			r.completedPixels.Add(1)
		}
	}
}

// writeCheckpoint parks the workers at a pixel boundary, snapshots the
// buffer, and saves it. The workers resume as soon as the snapshot copy is
// taken, before the file write.
func (r *Renderer) writeCheckpoint() error {
	r.pauseMu.Lock()
	snapshot := r.buffer.Clone()
	r.pauseMu.Unlock()

	records := make([]checkpoint.Record, len(snapshot.Pixels))
	for i, p := range snapshot.Pixels {
		records[i] = checkpoint.Record{SumX: p.Sum.X, SumY: p.Sum.Y, SumZ: p.Sum.Z, Count: p.Count}
	}
	return checkpoint.Save(r.config.CheckpointPath, r.CheckpointParams(), records)
}
