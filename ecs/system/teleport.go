package system

import (
	"log"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/vrlocomotion/common"
	"github.com/milk9111/vrlocomotion/ecs"
	"github.com/milk9111/vrlocomotion/ecs/component"
)

const teleportRayDistance = 100.0

// TeleportSystem drives target selection while the trigger is held and
// commits the jump on release.
type TeleportSystem struct {
	rays   Raycaster
	bodies BodyController
}

func NewTeleportSystem(rays Raycaster, bodies BodyController) *TeleportSystem {
	return &TeleportSystem{rays: rays, bodies: bodies}
}

func (ts *TeleportSystem) Update(w *ecs.World) {
	if ts == nil || w == nil {
		return
	}
	view, ok := CameraView(w)
	if !ok {
		return
	}

	ecs.ForEach4(w, component.TeleporterComponent.Kind(), component.LocomotionComponent.Kind(), component.InputComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, tp *component.Teleporter, loco *component.Locomotion, input *component.Input, transform *component.Transform) {
		if loco.Mode != component.Teleport {
			return
		}
		if tp.State == component.TeleportSelecting && !ecs.IsAlive(w, ecs.Entity(tp.Marker)) {
			tp.State = component.TeleportInactive
			tp.Marker = 0
		}

		if input.Trigger >= tp.ActivationThreshold {
			ts.updateSelection(w, e, tp, transform, view)
			return
		}
		if tp.State == component.TeleportSelecting {
			ts.release(w, e, tp, transform, view)
		}
	})
}

func (ts *TeleportSystem) updateSelection(w *ecs.World, player ecs.Entity, tp *component.Teleporter, transform *component.Transform, view View) {
	if ts.rays == nil {
		return
	}
	hit, ok := ts.rays.Raycast(w, view.Position, view.Forward, teleportRayDistance, CategoryPickup)
	if !ok {
		return
	}

	marker := ecs.Entity(tp.Marker)
	if tp.State == component.TeleportInactive {
		marker = ts.spawnMarker(w, tp, hit.Point)
		if !marker.Valid() {
			return
		}
		tp.State = component.TeleportSelecting
		tp.Marker = uint64(marker)
	}

	if markerTransform, ok := ecs.Get(w, marker, component.TransformComponent.Kind()); ok {
		markerTransform.Position = hit.Point
		markerTransform.Rotation = mgl64.QuatIdent()
	}

	tp.Target = hit.Point
	tp.Valid = common.PlanarDistance(transform.Position, hit.Point) <= tp.Range
	if tint, ok := ecs.Get(w, marker, component.TintComponent.Kind()); ok {
		if tp.Valid {
			tint.Color = tp.ValidColor
		} else {
			tint.Color = tp.InvalidColor
		}
	}

	if carried, ok := carriedEntity(w, player); ok {
		SetAlpha(w, carried, tp.SeeThroughAlpha)
	}
}

func (ts *TeleportSystem) spawnMarker(w *ecs.World, tp *component.Teleporter, at mgl64.Vec3) ecs.Entity {
	marker := ecs.CreateEntity(w)
	if err := ecs.Add(w, marker, component.TransformComponent.Kind(), &component.Transform{Position: at, Rotation: mgl64.QuatIdent()}); err != nil {
		log.Printf("teleport: add marker transform: %v", err)
		ecs.DestroyEntity(w, marker)
		return 0
	}
	_ = ecs.Add(w, marker, component.NameComponent.Kind(), &component.Name{Value: "TeleportMarker"})
	_ = ecs.Add(w, marker, component.TeleportMarkerComponent.Kind(), &component.TeleportMarker{Radius: tp.MarkerRadius})
	_ = ecs.Add(w, marker, component.TintComponent.Kind(), &component.Tint{Color: tp.ValidColor})
	return marker
}

func (ts *TeleportSystem) release(w *ecs.World, player ecs.Entity, tp *component.Teleporter, transform *component.Transform, view View) {
	marker := ecs.Entity(tp.Marker)
	carried, carrying := carriedEntity(w, player)

	if markerTransform, ok := ecs.Get(w, marker, component.TransformComponent.Kind()); ok {
		from := transform.Position
		to := mgl64.Vec3{markerTransform.Position.X(), from.Y(), markerTransform.Position.Z()}
		if to.Sub(from).Len() <= tp.Range {
			ts.commit(w, player, tp, from, to, view)
		} else if carrying {
			SetOpaque(w, carried)
		}
	}

	ecs.DestroyEntity(w, marker)
	tp.Marker = 0
	tp.State = component.TeleportInactive
	tp.Valid = false
}

func (ts *TeleportSystem) commit(w *ecs.World, player ecs.Entity, tp *component.Teleporter, from, to mgl64.Vec3, view View) {
	startFade(w, player, tp.FadeDuration)

	if ts.bodies != nil {
		ts.bodies.Teleport(w, player, to)
	} else if transform, ok := ecs.Get(w, player, component.TransformComponent.Kind()); ok {
		transform.Position = to
	}

	if carried, ok := carriedEntity(w, player); ok {
		carrier, _ := ecs.Get(w, player, component.CarrierComponent.Kind())
		eye := view.Position.Add(to.Sub(from))
		target := CarryTarget(eye, view.Forward, carrier.Offset)
		if ts.bodies != nil {
			ts.bodies.Teleport(w, carried, target)
		} else if ct, ok := ecs.Get(w, carried, component.TransformComponent.Kind()); ok {
			ct.Position = target
		}
	}
}

// startFade blacks out the view and schedules it back on after duration. A
// commit while a fade is pending replaces the pending fade.
func startFade(w *ecs.World, player ecs.Entity, duration float64) {
	fadeEntity, ok := ecs.First(w, component.FadeOverlayComponent.Kind())
	if !ok {
		return
	}
	fade, ok := ecs.Get(w, fadeEntity, component.FadeOverlayComponent.Kind())
	if !ok {
		return
	}
	if fade.Pending != 0 {
		w.Deferred().Cancel(ecs.TaskID(fade.Pending))
	}
	fade.CameraEnabled = false
	fade.Pending = uint64(w.After(duration, func(w *ecs.World) {
		if fade, ok := ecs.Get(w, fadeEntity, component.FadeOverlayComponent.Kind()); ok {
			fade.CameraEnabled = true
			fade.Pending = 0
		}
		if carried, ok := carriedEntity(w, player); ok {
			SetOpaque(w, carried)
		}
	}))
}

func carriedEntity(w *ecs.World, player ecs.Entity) (ecs.Entity, bool) {
	carrier, ok := ecs.Get(w, player, component.CarrierComponent.Kind())
	if !ok || carrier.State != component.CarryCarrying {
		return 0, false
	}
	carried := ecs.Entity(carrier.Carried)
	if !ecs.IsAlive(w, carried) {
		return 0, false
	}
	return carried, true
}
