package system

import (
	"log"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/vrlocomotion/common"
	"github.com/milk9111/vrlocomotion/ecs"
	"github.com/milk9111/vrlocomotion/ecs/component"
)

const pickupRayDistance = 100.0

// CarrySystem picks up, carries and throws pickup boxes.
type CarrySystem struct {
	rays   Raycaster
	bodies BodyController
}

func NewCarrySystem(rays Raycaster, bodies BodyController) *CarrySystem {
	return &CarrySystem{rays: rays, bodies: bodies}
}

func (cs *CarrySystem) Update(w *ecs.World) {
	if cs == nil || w == nil {
		return
	}
	view, ok := CameraView(w)
	if !ok {
		return
	}
	dt := w.Clock().Delta()

	ecs.ForEach3(w, component.CarrierComponent.Kind(), component.InputComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, carrier *component.Carrier, input *component.Input, transform *component.Transform) {
		if carrier.State == component.CarryCarrying && !ecs.IsAlive(w, ecs.Entity(carrier.Carried)) {
			carrier.State = component.CarryIdle
			carrier.Carried = 0
		}

		switch carrier.State {
		case component.CarryIdle:
			if input.PickupPressed() {
				cs.tryPickup(w, e, carrier, transform, view)
			}
		case component.CarryCarrying:
			if input.DropPressed() {
				cs.drop(w, carrier, view)
				return
			}
			cs.follow(w, carrier, input, view, dt)
		}
	})
}

func (cs *CarrySystem) tryPickup(w *ecs.World, player ecs.Entity, carrier *component.Carrier, playerTransform *component.Transform, view View) {
	if cs.rays == nil {
		return
	}
	hit, ok := cs.rays.Raycast(w, view.Position, view.Forward, pickupRayDistance, 0)
	if !ok || !hit.Entity.Valid() || hit.Entity == player {
		return
	}
	if !Pickupable(w, hit.Entity) {
		return
	}
	target, ok := ecs.Get(w, hit.Entity, component.TransformComponent.Kind())
	if !ok {
		return
	}
	if target.Position.Sub(playerTransform.Position).Len() > carrier.Radius {
		return
	}

	if cs.bodies != nil {
		cs.bodies.SetKinematic(w, hit.Entity, true)
	}
	if vm, ok := ecs.Get(w, hit.Entity, component.VerticalMotionComponent.Kind()); ok {
		vm.Velocity = 0
		vm.Airborne = false
	}
	carrier.State = component.CarryCarrying
	carrier.Carried = uint64(hit.Entity)
	log.Printf("carry: picked up %v", hit.Entity)
}

func (cs *CarrySystem) drop(w *ecs.World, carrier *component.Carrier, view View) {
	carried := ecs.Entity(carrier.Carried)
	if cs.bodies != nil {
		cs.bodies.SetKinematic(w, carried, false)
		cs.bodies.SetVelocity(w, carried, view.Forward.Mul(carrier.ThrowSpeed))
	}
	SetOpaque(w, carried)
	carrier.State = component.CarryIdle
	carrier.Carried = 0
}

func (cs *CarrySystem) follow(w *ecs.World, carrier *component.Carrier, input *component.Input, view View, dt float64) {
	carried := ecs.Entity(carrier.Carried)
	transform, ok := ecs.Get(w, carried, component.TransformComponent.Kind())
	if !ok {
		return
	}
	target := CarryTarget(view.Position, view.Forward, carrier.Offset)
	transform.Position = common.LerpVec3(transform.Position, target, common.SmoothingFactor(carrier.SmoothingRate, dt))

	if input.Rotate != 0 && dt > 0 {
		spin := common.YawRotation(carrier.RotationSpeed * -input.Rotate * dt)
		transform.Rotation = spin.Mul(transform.Rotation).Normalize()
	}
}

// CarryTarget is the point a carried object is pulled toward.
func CarryTarget(eye, forward mgl64.Vec3, offset float64) mgl64.Vec3 {
	return eye.Add(forward.Mul(offset))
}

// Pickupable reports whether e is a dynamic body in the pickup category.
func Pickupable(w *ecs.World, e ecs.Entity) bool {
	if !ecs.Has(w, e, component.PickupTagComponent.Kind()) {
		return false
	}
	body, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
	return ok && !body.Static && !body.Sensor
}

// SetOpaque restores full alpha on e's tint.
func SetOpaque(w *ecs.World, e ecs.Entity) {
	SetAlpha(w, e, 255)
}

// SetAlpha sets the alpha of e's tint.
func SetAlpha(w *ecs.World, e ecs.Entity, alpha uint8) {
	if tint, ok := ecs.Get(w, e, component.TintComponent.Kind()); ok {
		tint.Color.A = alpha
	}
}
