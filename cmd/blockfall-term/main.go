package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/blockfall/host/term"
	"github.com/plus3/blockfall/tetris"
)

func main() {
	seed := flag.Uint64("seed", 0, "Seed for the piece bag. Zero picks one from the clock.")
	fps := flag.Int("fps", term.DefaultFPS, "Frames per second.")
	mute := flag.Bool("mute", false, "Disable sound.")
	logFile := flag.String("log", "", "Write logs to this file instead of discarding them.")
	flag.Parse()

	// The terminal belongs to tcell while the game runs.
	if *logFile != "" {
		f, err := os.Create(*logFile)
		if err != nil {
			log.Fatalf("Failed to open log file: %v", err)
		}
		defer f.Close()
		log.SetOutput(f)
	} else {
		log.SetOutput(io.Discard)
	}

	if *seed == 0 {
		*seed = uint64(time.Now().UnixNano())
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatalf("Failed to create screen: %v", err)
	}
	if err := screen.Init(); err != nil {
		log.Fatalf("Failed to initialize screen: %v", err)
	}

	sound := term.NewSound()
	if !*mute {
		if err := sound.Init(); err != nil {
			log.Printf("Audio unavailable: %v", err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	host := term.New(screen, term.Config{Game: tetris.DefaultConfig(*seed), FPS: *fps}, sound)
	log.Printf("Starting game with seed %d", *seed)
	err = host.Run(ctx)

	sound.Close()
	screen.Fini()

	if err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("Game exited: %v", err)
	}
	log.Printf("Played %d session(s)", host.Sessions())
}
