package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image/png"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/example/raytracer/pkg/checkpoint"
	"github.com/example/raytracer/pkg/renderer"
	"github.com/example/raytracer/pkg/scene"
)

func main() {
	sceneName := flag.String("scene", "cornell-box", "Scene: 'cornell-box', 'cornell-smoke', 'random-spheres' or 'mesh'")
	meshPath := flag.String("mesh", "", "PLY mesh file for the 'mesh' scene")
	width := flag.Int("width", 400, "Image width in pixels (height follows the scene's aspect ratio)")
	samples := flag.Int("samples", 100, "Samples per pixel")
	maxBounces := flag.Int("max-bounces", 50, "Maximum ray bounce depth")
	workers := flag.Int("workers", 0, "Number of render workers (0 = CPU count)")
	seed := flag.Int64("seed", 42, "Random seed; identical seeds produce identical images")
	output := flag.String("o", "render.png", "Output PNG path")
	checkpointPath := flag.String("checkpoint", "", "Checkpoint file path (empty disables checkpointing)")
	checkpointInterval := flag.Duration("checkpoint-interval", 0, "Periodic checkpoint interval, e.g. 30s (0 = on interrupt only)")
	resume := flag.Bool("resume", false, "Resume from the checkpoint file if it exists")
	recoverCorrupt := flag.Bool("recover-corrupt", false, "Salvage complete records from a corrupt checkpoint instead of failing")
	flag.Parse()

	if err := run(*sceneName, *meshPath, *width, *samples, *maxBounces, *workers, *seed,
		*output, *checkpointPath, *checkpointInterval, *resume, *recoverCorrupt); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(sceneName, meshPath string, width, samples, maxBounces, workers int, seed int64,
	output, checkpointPath string, checkpointInterval time.Duration, resume, recoverCorrupt bool) error {

	logger := renderer.NewDefaultLogger()

	var s *scene.Scene
	var err error
	if sceneName == "mesh" {
		if meshPath == "" {
			return errors.New("-scene mesh requires -mesh <file.ply>")
		}
		s, err = scene.NewMeshView(meshPath)
	} else {
		s, err = scene.Lookup(sceneName, seed)
	}
	if err != nil {
		return err
	}
	height := int(float64(width) / s.AspectRatio)

	config := renderer.Config{
		Width:              width,
		Height:             height,
		SamplesPerPixel:    samples,
		MaxBounces:         maxBounces,
		NumWorkers:         workers,
		Seed:               seed,
		CheckpointPath:     checkpointPath,
		CheckpointInterval: checkpointInterval,
	}
	r := renderer.NewRenderer(s.Camera, s.World, s.Background, s.Fingerprint(), config, logger)

	if resume {
		if checkpointPath == "" {
			return errors.New("-resume requires -checkpoint")
		}
		result, err := checkpoint.Load(checkpointPath, r.CheckpointParams(), recoverCorrupt)
		switch {
		case err == nil:
			if err := r.Restore(result.Records); err != nil {
				return err
			}
			logger.Printf("Resuming %q from %s (%d pixels restored)\n", sceneName, checkpointPath, result.Recovered)
		case errors.Is(err, os.ErrNotExist):
			logger.Printf("No checkpoint at %s, starting fresh\n", checkpointPath)
		default:
			return err
		}
	}

	// SIGINT parks the workers and writes a final checkpoint before exit
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	img, err := r.Render(ctx)
	if err != nil {
		return err
	}

	if r.State() == renderer.StateCheckpointed {
		logger.Printf("Render interrupted, writing partial image to %s\n", output)
	}

	file, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("create %s: %w", output, err)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		return fmt.Errorf("encode %s: %w", output, err)
	}

	logger.Printf("Image saved as %s\n", output)
	return nil
}
