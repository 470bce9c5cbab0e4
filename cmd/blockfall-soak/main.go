package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand/v2"
	"os"
	"runtime"
	"time"

	"github.com/plus3/blockfall/loop"
	"github.com/plus3/blockfall/tetris"
)

// commandWeights biases the random player towards sideways moves so pieces
// spread across the board.
var commandWeights = []loop.Command{
	loop.MoveLeft, loop.MoveLeft,
	loop.MoveRight, loop.MoveRight,
	loop.RotateCW,
	loop.SoftDrop,
}

type soakConfig struct {
	Duration        time.Duration
	Seed            uint64
	MaxGames        int
	GravityDelay    int
	CommandsPerTick int
}

func main() {
	duration := flag.Duration("duration", 10*time.Second, "The total duration the soak should run for.")
	seed := flag.Uint64("seed", 1, "Seed of the first game. Each following game uses the next seed.")
	games := flag.Int("games", 0, "Stop after this many games. Zero runs until the duration elapses.")
	gravity := flag.Int("gravity", 1, "Frames between gravity steps. Must be positive.")
	commands := flag.Int("commands", 2, "Maximum random commands queued per frame.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	flag.Parse()

	log.Println("Starting soak run...")

	cfg := soakConfig{
		Duration:        *duration,
		Seed:            *seed,
		MaxGames:        *games,
		GravityDelay:    *gravity,
		CommandsPerTick: *commands,
	}

	report := &Report{GCPauseMetrics: *gcPauseMetrics}
	runtime.ReadMemStats(&report.MemStatsStart)

	log.Printf("Running for %s...\n", *duration)
	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	if err := soak(ctx, cfg, report); err != nil {
		log.Fatalf("Soak failed: %v", err)
	}
	runtime.ReadMemStats(&report.MemStatsEnd)

	log.Println("Soak finished.")

	fmt.Println("\n\n--- Soak Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		log.Fatalf("Failed to generate report: %v", err)
	}
	fmt.Println("--- End of Report ---")
}

// soak plays games back to back with a random player until ctx is done or
// MaxGames games have ended. Every finished game is checked for a consistent
// final state.
func soak(ctx context.Context, cfg soakConfig, report *Report) error {
	if cfg.GravityDelay <= 0 {
		return fmt.Errorf("gravity must be positive, got %d", cfg.GravityDelay)
	}
	if cfg.CommandsPerTick < 0 {
		return fmt.Errorf("commands must not be negative, got %d", cfg.CommandsPerTick)
	}

	report.Duration = cfg.Duration
	report.FirstSeed = cfg.Seed
	report.GravityDelay = cfg.GravityDelay

	rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed+1))
	startTime := time.Now()
	lastFrameTime := time.Now()

	for seed := cfg.Seed; cfg.MaxGames == 0 || report.Games < cfg.MaxGames; seed++ {
		game := tetris.NewGame(tetris.Config{Seed: seed, GravityDelay: cfg.GravityDelay})
		queue := loop.NewCommandQueue()
		scheduler := loop.NewScheduler(game, queue)

	Loop:
		for scheduler.Running() {
			select {
			case <-ctx.Done():
				break Loop
			default:
			}

			for range rng.IntN(cfg.CommandsPerTick + 1) {
				queue.Push(commandWeights[rng.IntN(len(commandWeights))])
			}

			deltaTime := time.Since(lastFrameTime)
			lastFrameTime = time.Now()

			updateStart := time.Now()
			scheduler.Once(deltaTime.Seconds())
			report.UpdateTime.Add(time.Since(updateStart))
		}

		report.TotalFrames += scheduler.Stats().Frames
		report.PiecesSpawned += game.Spawned()
		report.PiecesLocked += game.LockedPieces()
		report.LinesCleared += game.LinesCleared()

		input := scheduler.Input()
		report.CommandsApplied += input.Applied
		report.CommandsRejected += input.Rejected

		if !game.Over() {
			break
		}
		report.Games++

		if err := checkFinalState(game); err != nil {
			return fmt.Errorf("game with seed %d: %w", seed, err)
		}
	}

	report.TotalTime = time.Since(startTime)
	report.UpdateTime.Finalize()
	return nil
}

// checkFinalState verifies the bookkeeping of a finished game.
func checkFinalState(game *tetris.Game) error {
	if game.Active() != nil {
		return fmt.Errorf("active piece remains after game over")
	}
	// The piece that topped out was spawned but never written to the grid.
	if game.Spawned() != game.LockedPieces()+1 {
		return fmt.Errorf("spawned %d pieces but locked %d", game.Spawned(), game.LockedPieces())
	}

	var occupied int
	grid := game.Grid()
	for row := tetris.TopRow; row < tetris.GridHeight; row++ {
		for col := 0; col < tetris.GridWidth; col++ {
			if grid.Occupied(row, col) {
				occupied++
			}
		}
	}
	if want := game.LockedPieces()*4 - game.LinesCleared()*tetris.GridWidth; occupied != want {
		return fmt.Errorf("grid holds %d cells, expected %d", occupied, want)
	}
	return nil
}
