package system

import (
	"testing"

	"github.com/milk9111/vrlocomotion/common"
	"github.com/milk9111/vrlocomotion/ecs"
	"github.com/milk9111/vrlocomotion/ecs/component"
	"github.com/milk9111/vrlocomotion/ecs/entity"
)

func TestArenaSessionEndToEnd(t *testing.T) {
	w := ecs.NewWorld()
	arena, err := entity.BuildArena(w, component.FreeWalk)
	if err != nil {
		t.Fatalf("build arena: %v", err)
	}

	src := newFakeInput()
	src.axes[AxisLeftStickVertical] = -1
	scenes := &fakeScenes{}
	recorder := &fakeRecorder{}
	sched, physics := NewArenaScheduler(ArenaConfig{
		Input:    src,
		Scenes:   scenes,
		Recorder: recorder,
		Spawn:    entity.SpawnPrefab,
		Seed:     3,
		Step:     1.0 / 60,
	})
	if physics == nil || physics.Space() == nil {
		t.Fatalf("expected a physics space")
	}

	start, _ := ecs.Get(w, arena.Player, component.TransformComponent.Kind())
	startZ := start.Position.Z()
	for i := 0; i < 60; i++ {
		sched.Update(w, 1.0/60)
	}

	boxes := 0
	ecs.ForEach(w, component.PickupTagComponent.Kind(), func(ecs.Entity, *component.PickupTag) { boxes++ })
	if boxes != 40 {
		t.Fatalf("expected 40 spawned boxes, got %d", boxes)
	}

	player, _ := ecs.Get(w, arena.Player, component.TransformComponent.Kind())
	moved := player.Position.Z() - startZ
	if moved < 2.5 || moved > 3.1 {
		t.Fatalf("walking forward for a second at 3 m/s moved %v", moved)
	}
	view, _ := CameraView(w)
	if want := player.Position.Y() + view.Rig.EyeHeight; view.Position.Y() != want {
		t.Fatalf("camera at height %v, want %v", view.Position.Y(), want)
	}

	src.axes[AxisLeftStickVertical] = 0
	for i := 0; i < 60*61 && len(scenes.loads) == 0; i++ {
		sched.Update(w, 1.0/60)
	}
	if len(scenes.loads) != 1 || scenes.loads[0] != 0 {
		t.Fatalf("expected the menu scene after the countdown, got %v", scenes.loads)
	}
	if len(recorder.sessions) != 1 || recorder.sessions[0].mode != component.FreeWalk {
		t.Fatalf("expected one free walk result, got %+v", recorder.sessions)
	}
	if w.Clock().TimeScale() != 0 {
		t.Fatalf("time should be frozen after game over")
	}
}

func TestCarriedBoxNeverPushesPlayer(t *testing.T) {
	cases := []struct {
		name  string
		mode  component.MovementMode
		pitch float64
	}{
		{"free_walk_level", component.FreeWalk, 0},
		{"free_walk_looking_down", component.FreeWalk, 80},
		{"look_walk_below_band", component.LookWalk, 20},
		{"teleport_looking_down", component.Teleport, 80},
		{"teleport_straight_down", component.Teleport, 89},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := ecs.NewWorld()
			arena, err := entity.BuildArena(w, c.mode)
			if err != nil {
				t.Fatalf("build arena: %v", err)
			}
			sched, physics := NewArenaScheduler(ArenaConfig{
				Input:  newFakeInput(),
				Scenes: &fakeScenes{},
				Step:   1.0 / 60,
			})

			cam, _ := ecs.Get(w, arena.Camera, component.CameraRigComponent.Kind())
			cam.Yaw = 0
			cam.Pitch = common.NormalizeDegrees(c.pitch)
			sched.Update(w, 1.0/60)

			view, ok := CameraView(w)
			if !ok {
				t.Fatalf("no camera view")
			}
			carrier, _ := ecs.Get(w, arena.Player, component.CarrierComponent.Kind())
			box, err := entity.SpawnPrefab(w, "pickup.yaml", CarryTarget(view.Position, view.Forward, carrier.Offset))
			if err != nil {
				t.Fatalf("spawn box: %v", err)
			}
			physics.Sync(w)
			physics.SetKinematic(w, box, true)
			carrier.State = component.CarryCarrying
			carrier.Carried = uint64(box)

			before, _ := ecs.Get(w, arena.Player, component.TransformComponent.Kind())
			start := before.Position
			for i := 0; i < 120; i++ {
				sched.Update(w, 1.0/60)
			}

			player, _ := ecs.Get(w, arena.Player, component.TransformComponent.Kind())
			if !approxVec(player.Position, start, 1e-9) {
				t.Fatalf("player drifted from %v to %v with no input", start, player.Position)
			}
			if carrier.State != component.CarryCarrying {
				t.Fatalf("box should still be carried")
			}
		})
	}
}
