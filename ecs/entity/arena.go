package entity

import (
	"fmt"
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/vrlocomotion/ecs"
	"github.com/milk9111/vrlocomotion/ecs/component"
	"github.com/milk9111/vrlocomotion/prefabs"
)

var (
	defaultDropColor     = color.NRGBA{R: 0xf6, G: 0xd3, B: 0x2d, A: 0x80}
	defaultObstacleColor = color.NRGBA{R: 0x77, G: 0x76, B: 0x7b, A: 0xff}
)

// Arena holds the entities the scene shell refers to after the build.
type Arena struct {
	Player  ecs.Entity
	Camera  ecs.Entity
	Session ecs.Entity
	Fade    ecs.Entity
}

// BuildArena loads the arena and player specs and populates w for a session
// played in mode.
func BuildArena(w *ecs.World, mode component.MovementMode) (Arena, error) {
	arenaSpec, err := prefabs.LoadArenaSpec()
	if err != nil {
		return Arena{}, fmt.Errorf("arena: load spec: %w", err)
	}
	playerSpec, err := prefabs.LoadPlayerSpec()
	if err != nil {
		return Arena{}, fmt.Errorf("arena: load player spec: %w", err)
	}
	return BuildArenaFromSpec(w, arenaSpec, playerSpec, mode)
}

func BuildArenaFromSpec(w *ecs.World, arenaSpec *prefabs.ArenaSpec, playerSpec *prefabs.PlayerSpec, mode component.MovementMode) (Arena, error) {
	if arenaSpec == nil || playerSpec == nil {
		return Arena{}, fmt.Errorf("arena: nil spec")
	}

	var arena Arena
	var err error

	if _, err = NewArenaBounds(w, arenaSpec.Bounds); err != nil {
		return Arena{}, err
	}
	if arena.Session, err = NewSession(w, arenaSpec.Session, mode); err != nil {
		return Arena{}, err
	}
	if _, err = NewDropArea(w, arenaSpec.DropArea); err != nil {
		return Arena{}, err
	}
	for _, spawn := range arenaSpec.SpawnAreas {
		if _, err = NewSpawnArea(w, spawn); err != nil {
			return Arena{}, err
		}
	}
	for _, obstacle := range arenaSpec.Obstacles {
		if _, err = NewObstacle(w, obstacle); err != nil {
			return Arena{}, err
		}
	}
	if _, err = NewSign(w, arenaSpec.Sign); err != nil {
		return Arena{}, err
	}
	if arena.Player, err = NewPlayerFromSpec(w, playerSpec, mode); err != nil {
		return Arena{}, err
	}
	if arena.Camera, err = NewCamera(w, playerSpec); err != nil {
		return Arena{}, err
	}
	if arena.Fade, err = NewFadeOverlay(w); err != nil {
		return Arena{}, err
	}

	return arena, nil
}

func NewArenaBounds(w *ecs.World, spec prefabs.BoundsSpec) (ecs.Entity, error) {
	bounds := ecs.CreateEntity(w)
	if err := ecs.Add(w, bounds, component.ArenaBoundsComponent.Kind(), &component.ArenaBounds{
		Width:      spec.Width,
		Depth:      spec.Depth,
		WallHeight: spec.WallHeight,
	}); err != nil {
		return 0, fmt.Errorf("arena bounds: add bounds: %w", err)
	}
	return bounds, nil
}

func NewSession(w *ecs.World, spec prefabs.SessionSpec, mode component.MovementMode) (ecs.Entity, error) {
	duration := spec.Duration
	if duration <= 0 {
		duration = 60
	}
	session := ecs.CreateEntity(w)
	if err := ecs.Add(w, session, component.SessionComponent.Kind(), &component.Session{
		Duration:  duration,
		TimeLeft:  duration,
		Mode:      mode,
		MenuScene: spec.MenuScene,
	}); err != nil {
		return 0, fmt.Errorf("session: add session: %w", err)
	}
	return session, nil
}

// NewDropArea builds the scoring trigger volume.
func NewDropArea(w *ecs.World, spec prefabs.DropAreaSpec) (ecs.Entity, error) {
	area := ecs.CreateEntity(w)
	name := spec.Name
	if name == "" {
		name = "DropArea"
	}
	if err := ecs.Add(w, area, component.NameComponent.Kind(), &component.Name{Value: name}); err != nil {
		return 0, fmt.Errorf("drop area: add name: %w", err)
	}
	if err := ecs.Add(w, area, component.TransformComponent.Kind(), transformFromSpec(spec.Transform)); err != nil {
		return 0, fmt.Errorf("drop area: add transform: %w", err)
	}
	if err := ecs.Add(w, area, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Kind:   component.ShapeBox,
		Width:  spec.Width,
		Depth:  spec.Depth,
		Height: 1,
		Static: true,
		Sensor: true,
	}); err != nil {
		return 0, fmt.Errorf("drop area: add physics body: %w", err)
	}
	if err := ecs.Add(w, area, component.DropAreaComponent.Kind(), &component.DropArea{}); err != nil {
		return 0, fmt.Errorf("drop area: add drop area: %w", err)
	}
	if err := ecs.Add(w, area, component.TintComponent.Kind(), &component.Tint{Color: spec.Color.NRGBA(defaultDropColor)}); err != nil {
		return 0, fmt.Errorf("drop area: add tint: %w", err)
	}
	return area, nil
}

func NewSpawnArea(w *ecs.World, spec prefabs.SpawnAreaSpec) (ecs.Entity, error) {
	area := ecs.CreateEntity(w)
	if err := ecs.Add(w, area, component.TransformComponent.Kind(), transformFromSpec(spec.Transform)); err != nil {
		return 0, fmt.Errorf("spawn area: add transform: %w", err)
	}
	prefab := spec.Prefab
	if prefab == "" {
		prefab = "pickup.yaml"
	}
	if err := ecs.Add(w, area, component.SpawnAreaComponent.Kind(), &component.SpawnArea{
		Width:  spec.Width,
		Depth:  spec.Depth,
		Count:  spec.Count,
		Prefab: prefab,
	}); err != nil {
		return 0, fmt.Errorf("spawn area: add spawn area: %w", err)
	}
	return area, nil
}

// NewObstacle builds a static box the player walks around.
func NewObstacle(w *ecs.World, spec prefabs.ObstacleSpec) (ecs.Entity, error) {
	obstacle := ecs.CreateEntity(w)
	if err := ecs.Add(w, obstacle, component.NameComponent.Kind(), &component.Name{Value: spec.Name}); err != nil {
		return 0, fmt.Errorf("obstacle: add name: %w", err)
	}
	if err := ecs.Add(w, obstacle, component.TransformComponent.Kind(), transformFromSpec(spec.Transform)); err != nil {
		return 0, fmt.Errorf("obstacle: add transform: %w", err)
	}
	body := bodyFromCollider(spec.Collider)
	body.Static = true
	if err := ecs.Add(w, obstacle, component.PhysicsBodyComponent.Kind(), body); err != nil {
		return 0, fmt.Errorf("obstacle: add physics body: %w", err)
	}
	if err := ecs.Add(w, obstacle, component.TintComponent.Kind(), &component.Tint{Color: spec.Color.NRGBA(defaultObstacleColor)}); err != nil {
		return 0, fmt.Errorf("obstacle: add tint: %w", err)
	}
	return obstacle, nil
}

// NewSign builds the score sign, which always faces the camera.
func NewSign(w *ecs.World, spec prefabs.SignSpec) (ecs.Entity, error) {
	sign := ecs.CreateEntity(w)
	if err := ecs.Add(w, sign, component.NameComponent.Kind(), &component.Name{Value: "ScoreSign"}); err != nil {
		return 0, fmt.Errorf("sign: add name: %w", err)
	}
	if err := ecs.Add(w, sign, component.TransformComponent.Kind(), &component.Transform{
		Position: mgl64.Vec3{spec.Transform.X, spec.Transform.Y, spec.Transform.Z},
		Rotation: mgl64.QuatIdent(),
	}); err != nil {
		return 0, fmt.Errorf("sign: add transform: %w", err)
	}
	if err := ecs.Add(w, sign, component.BillboardComponent.Kind(), &component.Billboard{}); err != nil {
		return 0, fmt.Errorf("sign: add billboard: %w", err)
	}
	if err := ecs.Add(w, sign, component.TintComponent.Kind(), &component.Tint{Color: spec.Color.NRGBA(color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff})}); err != nil {
		return 0, fmt.Errorf("sign: add tint: %w", err)
	}
	return sign, nil
}
