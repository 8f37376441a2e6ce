package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	level := flag.Int("level", 0, "start this level directly instead of the menu (0 = menu)")
	seed := flag.Uint64("seed", 0, "simulation seed (0 = random per level)")
	debug := flag.Bool("debug", false, "draw colliders and the HUD")
	fresh := flag.Bool("new", false, "reset the save slot before starting")
	watch := flag.Bool("watch", false, "reload upgrade specs when files under prefabs/ change")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	flag.Parse()

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(baseWidth, baseHeight)
	ebiten.SetWindowTitle("slimegame")
	ebiten.SetTPS(ticksPerSecond)

	game, err := NewGame(Options{
		Level: *level,
		Seed:  *seed,
		Debug: *debug,
		Fresh: *fresh,
		Watch: *watch,
	})
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
