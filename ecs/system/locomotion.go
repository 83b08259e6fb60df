package system

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/vrlocomotion/common"
	"github.com/milk9111/vrlocomotion/ecs"
	"github.com/milk9111/vrlocomotion/ecs/component"
)

// LocomotionSystem moves the player each fixed step according to its
// movement mode. The displacement becomes the player body's velocity so the
// physics step sweeps it against walls and boxes; without a body the
// transform is moved directly.
type LocomotionSystem struct {
	bodies BodyController
}

func NewLocomotionSystem(bodies BodyController) *LocomotionSystem {
	return &LocomotionSystem{bodies: bodies}
}

func (ls *LocomotionSystem) Update(w *ecs.World) {
	if ls == nil || w == nil {
		return
	}
	dt := w.Clock().FixedDelta()
	if dt <= 0 {
		return
	}
	view, ok := CameraView(w)
	if !ok {
		return
	}

	ecs.ForEach3(w, component.LocomotionComponent.Kind(), component.InputComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, loco *component.Locomotion, input *component.Input, transform *component.Transform) {
		disp := Displacement(loco.Mode, *input, view, loco.Speed, loco.MinLookAngle, dt)
		if ls.bodies != nil && ecs.Has(w, e, component.PhysicsBodyComponent.Kind()) {
			ls.bodies.SetVelocity(w, e, disp.Mul(1/dt))
			return
		}
		transform.Position = transform.Position.Add(disp)
	})
}

// Displacement is the planar player displacement of one step. Teleport mode
// and a look-walk pitch outside [minLookAngle, 90) produce zero.
func Displacement(mode component.MovementMode, input component.Input, view View, speed, minLookAngle, dt float64) mgl64.Vec3 {
	switch mode {
	case component.FreeWalk:
		forward := common.SafeNormalize(common.Flatten(view.Forward))
		right := common.SafeNormalize(common.Flatten(view.Right))
		dir := right.Mul(input.Strafe).Add(forward.Mul(-input.Forward))
		return dir.Mul(speed * dt)
	case component.LookWalk:
		if view.Rig == nil {
			return mgl64.Vec3{}
		}
		pitch := common.NormalizeDegrees(view.Rig.Pitch)
		if pitch < minLookAngle || pitch >= 90 {
			return mgl64.Vec3{}
		}
		return common.Flatten(view.Forward).Mul(speed * dt)
	default:
		return mgl64.Vec3{}
	}
}
