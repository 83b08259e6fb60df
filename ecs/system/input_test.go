package system

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/vrlocomotion/ecs"
	"github.com/milk9111/vrlocomotion/ecs/component"
)

func TestInputDPadEdges(t *testing.T) {
	type frame struct {
		x, y                  float64
		up, down, left, right bool
	}
	cases := []struct {
		name   string
		frames []frame
	}{
		{"press_and_hold_up", []frame{
			{y: 0},
			{y: 1, up: true},
			{y: 1},
			{y: 0},
			{y: 1, up: true},
		}},
		{"held_at_start_is_not_a_press", []frame{
			{y: -1},
			{y: -1},
			{y: 0},
			{y: -1, down: true},
		}},
		{"partial_press_is_not_a_press", []frame{
			{x: 0},
			{x: 0.6},
			{x: 1, right: true},
		}},
		{"flip_direction", []frame{
			{x: 0},
			{x: -1, left: true},
			{x: 1, right: true},
		}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r := newRig(t, component.FreeWalk)
			src := newFakeInput()
			sys := NewInputSystem(src)
			for i, f := range c.frames {
				src.axes[AxisDPadHorizontal] = f.x
				src.axes[AxisDPadVertical] = f.y
				sys.Update(r.w)
				in := r.input(t)
				if in.Up != f.up || in.Down != f.down || in.Left != f.left || in.Right != f.right {
					t.Fatalf("frame %d: got up=%v down=%v left=%v right=%v, want %+v", i, in.Up, in.Down, in.Left, in.Right, f)
				}
			}
		})
	}
}

func TestInputCopiesAxes(t *testing.T) {
	r := newRig(t, component.FreeWalk)
	src := newFakeInput()
	src.axes[AxisLeftStickHorizontal] = 0.5
	src.axes[AxisLeftStickVertical] = -1
	src.axes[AxisRightStickHorizontal] = 0.25
	src.axes[AxisRightTrigger] = 0.8

	sched := ecs.NewScheduler(0.1)
	sched.AddPre(NewInputSystem(src))
	sched.Update(r.w, 0.1)

	in := r.input(t)
	if in.Strafe != 0.5 || in.Forward != -1 || in.Rotate != 0.25 || in.Trigger != 0.8 {
		t.Fatalf("unexpected input snapshot %+v", in)
	}
	if in.PickupPressed() != in.Up || in.DropPressed() != in.Down {
		t.Fatalf("edge accessors disagree with the snapshot")
	}
}

func TestCameraFollowsPlayer(t *testing.T) {
	r := newRig(t, component.FreeWalk)
	src := newFakeInput()
	src.dyaw = 90
	src.dpitch = 120

	transform, _ := ecs.Get(r.w, r.player, component.TransformComponent.Kind())
	transform.Position[0] = 4

	NewCameraSystem(src).Update(r.w)

	view, ok := CameraView(r.w)
	if !ok {
		t.Fatalf("no camera view")
	}
	if view.Rig.Yaw != 90 {
		t.Fatalf("yaw %v, want 90", view.Rig.Yaw)
	}
	if view.Rig.Pitch != maxPitch {
		t.Fatalf("pitch %v should clamp to %v", view.Rig.Pitch, maxPitch)
	}
	if want := transform.Position.Add(mgl64.Vec3{0, testEyeHeight, 0}); !approxVec(view.Position, want, 1e-9) {
		t.Fatalf("eye at %v, want %v", view.Position, want)
	}
	if !approxVec(view.Right, mgl64.Vec3{0, 0, -1}, 1e-9) {
		t.Fatalf("right %v, want (0,0,-1)", view.Right)
	}

	src.dpitch = -200
	NewCameraSystem(src).Update(r.w)
	view, _ = CameraView(r.w)
	if view.Rig.Pitch != 360-maxPitch {
		t.Fatalf("looking up should clamp to %v, got %v", 360-maxPitch, view.Rig.Pitch)
	}
}
