package system

import (
	"image/color"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/vrlocomotion/common"
	"github.com/milk9111/vrlocomotion/ecs"
	"github.com/milk9111/vrlocomotion/ecs/component"
)

type fakeInput struct {
	axes    map[string]float64
	buttons map[string]bool
	dyaw    float64
	dpitch  float64
}

func newFakeInput() *fakeInput {
	return &fakeInput{axes: map[string]float64{}, buttons: map[string]bool{}}
}

func (f *fakeInput) Axis(name string) float64 { return f.axes[name] }
func (f *fakeInput) Button(name string) bool  { return f.buttons[name] }
func (f *fakeInput) Look() (float64, float64) { return f.dyaw, f.dpitch }

type fakeRays struct {
	hit         RayHit
	ok          bool
	calls       int
	lastExclude uint
}

func (f *fakeRays) Raycast(w *ecs.World, origin, dir mgl64.Vec3, maxDist float64, exclude uint) (RayHit, bool) {
	f.calls++
	f.lastExclude = exclude
	return f.hit, f.ok
}

type fakeBodies struct {
	kinematic map[ecs.Entity]bool
	kinCalls  int
	velocity  map[ecs.Entity]mgl64.Vec3
	teleports map[ecs.Entity][]mgl64.Vec3
}

func newFakeBodies() *fakeBodies {
	return &fakeBodies{
		kinematic: map[ecs.Entity]bool{},
		velocity:  map[ecs.Entity]mgl64.Vec3{},
		teleports: map[ecs.Entity][]mgl64.Vec3{},
	}
}

func (f *fakeBodies) SetKinematic(w *ecs.World, e ecs.Entity, kinematic bool) {
	f.kinCalls++
	f.kinematic[e] = kinematic
}

func (f *fakeBodies) SetVelocity(w *ecs.World, e ecs.Entity, v mgl64.Vec3) {
	f.velocity[e] = v
}

func (f *fakeBodies) Teleport(w *ecs.World, e ecs.Entity, pos mgl64.Vec3) {
	f.teleports[e] = append(f.teleports[e], pos)
	if transform, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
		transform.Position = pos
	}
}

type fakeScenes struct {
	loads []int
}

func (f *fakeScenes) LoadScene(index int) { f.loads = append(f.loads, index) }

type recordedSession struct {
	mode     component.MovementMode
	score    int
	duration float64
}

type fakeRecorder struct {
	sessions []recordedSession
	err      error
}

func (f *fakeRecorder) RecordSession(mode component.MovementMode, score int, duration float64) error {
	f.sessions = append(f.sessions, recordedSession{mode: mode, score: score, duration: duration})
	return f.err
}

var (
	testValid   = color.NRGBA{G: 0xff, A: 0xff}
	testInvalid = color.NRGBA{R: 0xff, A: 0xff}
)

// rig is a minimal arena: a player standing at the origin, a head rig at eye
// height and the fade overlay.
type rig struct {
	w      *ecs.World
	player ecs.Entity
	camera ecs.Entity
	fade   ecs.Entity
}

const testEyeHeight = 0.7

func newRig(t *testing.T, mode component.MovementMode) rig {
	t.Helper()
	w := ecs.NewWorld()
	r := rig{w: w}

	r.player = ecs.CreateEntity(w)
	must(t, ecs.Add(w, r.player, component.NameComponent.Kind(), &component.Name{Value: component.PlayerName}))
	must(t, ecs.Add(w, r.player, component.PlayerTagComponent.Kind(), &component.PlayerTag{}))
	must(t, ecs.Add(w, r.player, component.TransformComponent.Kind(), &component.Transform{Position: mgl64.Vec3{0, 1, 0}, Rotation: mgl64.QuatIdent()}))
	must(t, ecs.Add(w, r.player, component.InputComponent.Kind(), &component.Input{}))
	must(t, ecs.Add(w, r.player, component.LocomotionComponent.Kind(), &component.Locomotion{Mode: mode, Speed: 3, MinLookAngle: 30}))
	must(t, ecs.Add(w, r.player, component.CarrierComponent.Kind(), &component.Carrier{
		Offset: 1.5, Radius: 3, SmoothingRate: 10, RotationSpeed: 90, ThrowSpeed: 6,
	}))
	must(t, ecs.Add(w, r.player, component.TeleporterComponent.Kind(), &component.Teleporter{
		Range: 8, FadeDuration: 0.5, ActivationThreshold: 0.7, SeeThroughAlpha: 96,
		MarkerRadius: 0.3, ValidColor: testValid, InvalidColor: testInvalid,
	}))

	r.camera = ecs.CreateEntity(w)
	must(t, ecs.Add(w, r.camera, component.CameraRigComponent.Kind(), &component.CameraRig{EyeHeight: testEyeHeight, LookSpeed: 1}))
	must(t, ecs.Add(w, r.camera, component.TransformComponent.Kind(), &component.Transform{Position: mgl64.Vec3{0, 1 + testEyeHeight, 0}, Rotation: mgl64.QuatIdent()}))

	r.fade = ecs.CreateEntity(w)
	must(t, ecs.Add(w, r.fade, component.FadeOverlayComponent.Kind(), &component.FadeOverlay{CameraEnabled: true}))
	return r
}

func (r rig) input(t *testing.T) *component.Input {
	t.Helper()
	in, ok := ecs.Get(r.w, r.player, component.InputComponent.Kind())
	if !ok {
		t.Fatalf("player has no input")
	}
	return in
}

func (r rig) playerPos(t *testing.T) mgl64.Vec3 {
	t.Helper()
	return r.position(t, r.player)
}

func (r rig) position(t *testing.T, e ecs.Entity) mgl64.Vec3 {
	t.Helper()
	transform, ok := ecs.Get(r.w, e, component.TransformComponent.Kind())
	if !ok {
		t.Fatalf("entity %v has no transform", e)
	}
	return transform.Position
}

func (r rig) look(t *testing.T, yaw, pitch float64) {
	t.Helper()
	cam, _ := ecs.Get(r.w, r.camera, component.CameraRigComponent.Kind())
	cam.Yaw = common.NormalizeDegrees(yaw)
	cam.Pitch = common.NormalizeDegrees(pitch)
}

func (r rig) carrier(t *testing.T) *component.Carrier {
	t.Helper()
	c, ok := ecs.Get(r.w, r.player, component.CarrierComponent.Kind())
	if !ok {
		t.Fatalf("player has no carrier")
	}
	return c
}

func (r rig) teleporter(t *testing.T) *component.Teleporter {
	t.Helper()
	tp, ok := ecs.Get(r.w, r.player, component.TeleporterComponent.Kind())
	if !ok {
		t.Fatalf("player has no teleporter")
	}
	return tp
}

func (r rig) cameraEnabled(t *testing.T) bool {
	t.Helper()
	fade, ok := ecs.Get(r.w, r.fade, component.FadeOverlayComponent.Kind())
	if !ok {
		t.Fatalf("no fade overlay")
	}
	return fade.CameraEnabled
}

// addBox places a dynamic pickup box centered at pos.
func (r rig) addBox(t *testing.T, pos mgl64.Vec3) ecs.Entity {
	t.Helper()
	box := ecs.CreateEntity(r.w)
	must(t, ecs.Add(r.w, box, component.NameComponent.Kind(), &component.Name{Value: "Box"}))
	must(t, ecs.Add(r.w, box, component.PickupTagComponent.Kind(), &component.PickupTag{}))
	must(t, ecs.Add(r.w, box, component.TransformComponent.Kind(), &component.Transform{Position: pos, Rotation: mgl64.QuatIdent()}))
	must(t, ecs.Add(r.w, box, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{Kind: component.ShapeBox, Width: 0.5, Depth: 0.5, Height: 0.5, Mass: 2}))
	must(t, ecs.Add(r.w, box, component.VerticalMotionComponent.Kind(), &component.VerticalMotion{Gravity: 9.81, Rest: 0.25}))
	must(t, ecs.Add(r.w, box, component.TintComponent.Kind(), &component.Tint{Color: color.NRGBA{R: 0xc8, G: 0x8a, B: 0x3a, A: 0xff}}))
	return box
}

func (r rig) alpha(t *testing.T, e ecs.Entity) uint8 {
	t.Helper()
	tint, ok := ecs.Get(r.w, e, component.TintComponent.Kind())
	if !ok {
		t.Fatalf("entity %v has no tint", e)
	}
	return tint.Color.A
}

func must(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatal(err)
	}
}

func approxVec(a, b mgl64.Vec3, eps float64) bool {
	for i := 0; i < 3; i++ {
		if math.Abs(a[i]-b[i]) > eps {
			return false
		}
	}
	return true
}
