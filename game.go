package main

import (
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/vrlocomotion/common"
	"github.com/milk9111/vrlocomotion/ecs"
	"github.com/milk9111/vrlocomotion/ecs/component"
	"github.com/milk9111/vrlocomotion/ecs/entity"
	"github.com/milk9111/vrlocomotion/ecs/system"
	"github.com/milk9111/vrlocomotion/prefabs"
)

const (
	sceneMenu  = 0
	sceneArena = 1
	noScene    = -1
)

type sessionResult struct {
	Mode  component.MovementMode
	Score int
}

type Game struct {
	frames int

	scene   int
	pending int
	mode    component.MovementMode
	seed    int64

	input    *EbitenInput
	recorder system.ResultRecorder
	watcher  *prefabs.Watcher

	// menu scene
	menu      *MenuUI
	menuWorld *ecs.World
	menuInput *system.InputSystem

	// arena scene
	world    *ecs.World
	sched    *ecs.Scheduler
	physics  *system.PhysicsSystem
	arena    entity.Arena
	renderer *Renderer
	debug    bool

	lastResult *sessionResult
}

type GameConfig struct {
	Mode     component.MovementMode
	Scene    int
	Seed     int64
	Input    *EbitenInput
	Recorder system.ResultRecorder
	Watcher  *prefabs.Watcher
	Debug    bool
}

func NewGame(cfg GameConfig) *Game {
	g := &Game{
		scene:    noScene,
		pending:  cfg.Scene,
		mode:     cfg.Mode,
		seed:     cfg.Seed,
		input:    cfg.Input,
		recorder: cfg.Recorder,
		watcher:  cfg.Watcher,
		renderer: NewRenderer(),
		debug:    cfg.Debug,
	}
	g.menu = NewMenuUI(g)
	return g
}

// LoadScene switches to the scene at index at the start of the next update.
func (g *Game) LoadScene(index int) {
	g.pending = index
}

func (g *Game) SetMode(mode component.MovementMode) {
	g.mode = mode
	g.menu.Refresh(g)
	log.Printf("menu: movement mode %s", mode)
}

func (g *Game) Update() error {
	g.frames++

	g.reloadChangedSpecs()
	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		g.debug = !g.debug
	}

	if g.pending != noScene {
		next := g.pending
		g.pending = noScene
		if err := g.enterScene(next); err != nil {
			log.Printf("game: load scene %d: %v", next, err)
			if next != sceneMenu {
				_ = g.enterScene(sceneMenu)
			}
		}
	}

	dt := 1.0 / float64(ebiten.TPS())
	switch g.scene {
	case sceneMenu:
		g.updateMenu(dt)
	case sceneArena:
		if g.input.Button(ButtonBack) {
			g.LoadScene(sceneMenu)
		}
		g.sched.Update(g.world, dt)
	}
	return nil
}

func (g *Game) updateMenu(dt float64) {
	g.menuInput.Update(g.menuWorld)
	if player, ok := ecs.First(g.menuWorld, component.InputComponent.Kind()); ok {
		input, _ := ecs.Get(g.menuWorld, player, component.InputComponent.Kind())
		switch {
		case input.Left:
			g.SetMode(g.mode.Next(-1))
		case input.Right:
			g.SetMode(g.mode.Next(1))
		case input.Up:
			g.LoadScene(sceneArena)
		}
	}
	if g.input.Button(ButtonStart) {
		g.LoadScene(sceneArena)
	}
	g.menu.UI.Update()
}

func (g *Game) enterScene(index int) error {
	if g.scene == sceneArena {
		g.leaveArena()
	}

	switch index {
	case sceneMenu:
		g.menuWorld = ecs.NewWorld()
		if err := ecs.Add(g.menuWorld, ecs.CreateEntity(g.menuWorld), component.InputComponent.Kind(), &component.Input{}); err != nil {
			return err
		}
		g.menuInput = system.NewInputSystem(g.input)
		g.menu.Refresh(g)
		ebiten.SetCursorMode(ebiten.CursorModeVisible)
	case sceneArena:
		world := ecs.NewWorld()
		arena, err := entity.BuildArena(world, g.mode)
		if err != nil {
			return err
		}
		sched, physics := system.NewArenaScheduler(system.ArenaConfig{
			Input:    g.input,
			Scenes:   g,
			Recorder: g.recorder,
			Spawn:    entity.SpawnPrefab,
			Seed:     g.seed,
		})
		g.world, g.sched, g.physics, g.arena = world, sched, physics, arena
		g.seed++
		if g.input.mouseLook {
			ebiten.SetCursorMode(ebiten.CursorModeCaptured)
		}
		g.input.ResetLook()
	default:
		return fmt.Errorf("unknown scene %d", index)
	}

	g.scene = index
	log.Printf("game: scene %d", index)
	return nil
}

// leaveArena keeps the score for the menu and drops the world together with
// its pending deferred tasks.
func (g *Game) leaveArena() {
	if g.world != nil {
		if session, ok := ecs.Get(g.world, g.arena.Session, component.SessionComponent.Kind()); ok && session.Ended {
			g.lastResult = &sessionResult{Mode: session.Mode, Score: session.Score}
		}
		g.world.Deferred().Clear()
	}
	g.world, g.sched, g.physics = nil, nil, nil
	g.arena = entity.Arena{}
}

func (g *Game) reloadChangedSpecs() {
	changed := g.watcher.Drain()
	if len(changed) == 0 {
		return
	}
	log.Printf("prefabs: changed %v", changed)
	if g.scene == sceneArena {
		g.LoadScene(sceneArena)
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	switch g.scene {
	case sceneMenu:
		g.menu.UI.Draw(screen)
	case sceneArena:
		g.renderer.Draw(g.world, screen)
		if g.debug && g.physics != nil {
			DrawPhysicsDebug(g.physics.Space(), g.renderer, screen)
			ebitenutil.DebugPrintAt(screen, fmt.Sprintf("entities: %d  deferred: %d", len(ecs.Entities(g.world)), g.world.Deferred().Len()), 10, common.BaseHeight-20)
		}
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
