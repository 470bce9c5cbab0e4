package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	debugui_ebiten "github.com/plus3/blockfall/debugui/ebiten"
	"github.com/plus3/blockfall/host/window"
	"github.com/plus3/blockfall/tetris"
)

const (
	debugWindowWidth  = 980
	debugWindowHeight = 660
)

func main() {
	seed := flag.Uint64("seed", 0, "Seed for the piece bag. Zero picks one from the clock.")
	scale := flag.Float64("scale", 1, "Window scale factor.")
	gravity := flag.Int("gravity", tetris.DefaultGravityDelay, "Frames between gravity steps. Must be positive.")
	debug := flag.Bool("debug", false, "Show the Dear ImGui debug windows.")
	flag.Parse()

	if *seed == 0 {
		*seed = uint64(time.Now().UnixNano())
	}
	game, err := gameConfig(*seed, *gravity)
	if err != nil {
		log.Fatalf("Invalid flags: %v", err)
	}
	cfg := window.Config{Game: game}

	if *debug {
		cfg.Overlay = debugui_ebiten.NewOverlay("Blockfall (debug)", debugWindowWidth, debugWindowHeight)
	} else {
		width := int(float64(window.BoardWidth) * *scale)
		height := int(float64(window.BoardHeight) * *scale)
		ebiten.SetWindowSize(width, height)
		ebiten.SetWindowTitle("Blockfall")
	}
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	log.Printf("Starting game with seed %d", *seed)
	if err := ebiten.RunGame(window.NewGame(cfg)); err != nil {
		log.Fatalf("Game exited: %v", err)
	}
}

// gameConfig builds the core configuration from the command line. The core
// treats a zero delay as "use the default", so it is rejected here rather
// than silently replaced.
func gameConfig(seed uint64, gravity int) (tetris.Config, error) {
	if gravity <= 0 {
		return tetris.Config{}, fmt.Errorf("gravity must be positive, got %d", gravity)
	}
	return tetris.Config{Seed: seed, GravityDelay: gravity}, nil
}
