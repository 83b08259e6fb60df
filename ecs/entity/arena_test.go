package entity

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/vrlocomotion/ecs"
	"github.com/milk9111/vrlocomotion/ecs/component"
	"github.com/milk9111/vrlocomotion/prefabs"
)

func TestBuildArena(t *testing.T) {
	for _, mode := range component.MovementModes {
		t.Run(mode.String(), func(t *testing.T) {
			w := ecs.NewWorld()
			arena, err := BuildArena(w, mode)
			if err != nil {
				t.Fatalf("build: %v", err)
			}

			loco, ok := ecs.Get(w, arena.Player, component.LocomotionComponent.Kind())
			if !ok || loco.Mode != mode {
				t.Fatalf("player locomotion %+v, want mode %v", loco, mode)
			}
			session, ok := ecs.Get(w, arena.Session, component.SessionComponent.Kind())
			if !ok || session.Mode != mode || session.Duration != 60 || session.Started {
				t.Fatalf("unexpected session %+v", session)
			}
			fade, ok := ecs.Get(w, arena.Fade, component.FadeOverlayComponent.Kind())
			if !ok || !fade.CameraEnabled {
				t.Fatalf("the fade should start with the camera on")
			}

			name, _ := ecs.Get(w, arena.Player, component.NameComponent.Kind())
			if name.Value != component.PlayerName {
				t.Fatalf("player name %q", name.Value)
			}
			for _, has := range []bool{
				ecs.Has(w, arena.Player, component.PlayerTagComponent.Kind()),
				ecs.Has(w, arena.Player, component.InputComponent.Kind()),
				ecs.Has(w, arena.Player, component.CarrierComponent.Kind()),
				ecs.Has(w, arena.Player, component.TeleporterComponent.Kind()),
				ecs.Has(w, arena.Player, component.PhysicsBodyComponent.Kind()),
			} {
				if !has {
					t.Fatalf("player is missing a component")
				}
			}
			if ecs.Has(w, arena.Player, component.PickupTagComponent.Kind()) {
				t.Fatalf("the player must not be in the pickup category")
			}

			player, _ := ecs.Get(w, arena.Player, component.TransformComponent.Kind())
			cam, _ := ecs.Get(w, arena.Camera, component.TransformComponent.Kind())
			rig, _ := ecs.Get(w, arena.Camera, component.CameraRigComponent.Kind())
			if cam.Position != player.Position.Add(mgl64.Vec3{0, rig.EyeHeight, 0}) {
				t.Fatalf("camera at %v, player at %v", cam.Position, player.Position)
			}

			drops := 0
			ecs.ForEach2(w, component.DropAreaComponent.Kind(), component.PhysicsBodyComponent.Kind(), func(e ecs.Entity, _ *component.DropArea, body *component.PhysicsBody) {
				drops++
				if !body.Sensor || !body.Static {
					t.Fatalf("drop area must be a static sensor")
				}
			})
			if drops != 1 {
				t.Fatalf("expected one drop area, got %d", drops)
			}

			spawns := 0
			ecs.ForEach(w, component.SpawnAreaComponent.Kind(), func(e ecs.Entity, area *component.SpawnArea) {
				spawns++
				if area.Count != 40 || area.Prefab != "pickup.yaml" {
					t.Fatalf("unexpected spawn area %+v", area)
				}
			})
			if spawns != 1 {
				t.Fatalf("expected one spawn area, got %d", spawns)
			}

			if _, ok := ecs.First(w, component.ArenaBoundsComponent.Kind()); !ok {
				t.Fatalf("arena has no bounds")
			}
			if _, ok := ecs.First(w, component.BillboardComponent.Kind()); !ok {
				t.Fatalf("arena has no score sign")
			}
		})
	}
}

func TestBuildArenaDefaults(t *testing.T) {
	w := ecs.NewWorld()
	arena, err := BuildArenaFromSpec(w, &prefabs.ArenaSpec{SpawnAreas: []prefabs.SpawnAreaSpec{{Count: 2}}}, &prefabs.PlayerSpec{}, component.Teleport)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	session, _ := ecs.Get(w, arena.Session, component.SessionComponent.Kind())
	if session.Duration != 60 || session.TimeLeft != 60 {
		t.Fatalf("session should default to 60s, got %+v", session)
	}
	areaEntity, _ := ecs.First(w, component.SpawnAreaComponent.Kind())
	area, _ := ecs.Get(w, areaEntity, component.SpawnAreaComponent.Kind())
	if area.Prefab != "pickup.yaml" {
		t.Fatalf("spawn area prefab %q, want pickup.yaml", area.Prefab)
	}
	tp, _ := ecs.Get(w, arena.Player, component.TeleporterComponent.Kind())
	if tp.ValidColor != defaultValidColor || tp.InvalidColor != defaultInvalidColor {
		t.Fatalf("marker colors should fall back to the defaults")
	}

	if _, err := BuildArenaFromSpec(w, nil, &prefabs.PlayerSpec{}, component.FreeWalk); err == nil {
		t.Fatalf("expected an error for a nil arena spec")
	}
}

func TestSpawnPrefab(t *testing.T) {
	w := ecs.NewWorld()
	box, err := SpawnPrefab(w, "pickup.yaml", mgl64.Vec3{4, 0, 6})
	if err != nil {
		t.Fatalf("spawn: %v", err)
	}

	transform, _ := ecs.Get(w, box, component.TransformComponent.Kind())
	vm, _ := ecs.Get(w, box, component.VerticalMotionComponent.Kind())
	body, _ := ecs.Get(w, box, component.PhysicsBodyComponent.Kind())
	if transform.Position != (mgl64.Vec3{4, body.Height / 2, 6}) {
		t.Fatalf("box should rest on the floor, at %v", transform.Position)
	}
	if vm.Rest != transform.Position.Y() || vm.Airborne {
		t.Fatalf("unexpected vertical motion %+v", vm)
	}
	if !ecs.Has(w, box, component.PickupTagComponent.Kind()) || body.Static || body.Sensor {
		t.Fatalf("box must be a dynamic pickup body")
	}

	if _, err := SpawnPrefab(w, "missing.yaml", mgl64.Vec3{}); err == nil {
		t.Fatalf("expected an error for an unknown prefab")
	}
}
