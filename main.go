package main

import (
	"flag"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/vrlocomotion/ecs/component"
	"github.com/milk9111/vrlocomotion/prefabs"
	"github.com/milk9111/vrlocomotion/results"
)

func main() {
	modeName := flag.String("mode", "free_walk", "movement mode: free_walk, look_walk or teleport")
	scene := flag.Int("scene", sceneMenu, "initial scene (0 menu, 1 arena)")
	resultsPath := flag.String("results", "results.db", "sqlite file for session results (empty to disable)")
	watch := flag.Bool("watch", false, "reload the arena when a spec in prefabs/ changes")
	seed := flag.Int64("seed", 0, "box placement seed (0 uses the clock)")
	debug := flag.Bool("debug", false, "draw physics shapes (toggle with F3)")
	mouseLook := flag.Bool("mouse", true, "look around with the mouse")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	flag.Parse()

	mode, err := component.ParseMovementMode(*modeName)
	if err != nil {
		log.Fatal(err)
	}
	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}

	cfg := GameConfig{
		Mode:  mode,
		Scene: *scene,
		Seed:  *seed,
		Input: NewEbitenInput(*mouseLook),
		Debug: *debug,
	}

	if *resultsPath != "" {
		store, err := results.OpenSQLite(*resultsPath)
		if err != nil {
			log.Fatal(err)
		}
		defer store.Close()
		cfg.Recorder = &results.Recorder{Store: store, Seed: *seed}
	}

	if *watch {
		watcher, err := prefabs.NewWatcher(prefabs.Dir)
		if err != nil {
			log.Printf("prefabs: watch %s: %v", prefabs.Dir, err)
		} else {
			defer watcher.Close()
			cfg.Watcher = watcher
		}
	}

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(1280, 720)
	ebiten.SetWindowTitle("vrlocomotion")

	game := NewGame(cfg)
	if err := ebiten.RunGame(game); err != nil {
		log.Print(err)
	}
}
