package entity

import (
	"fmt"
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/vrlocomotion/ecs"
	"github.com/milk9111/vrlocomotion/ecs/component"
	"github.com/milk9111/vrlocomotion/prefabs"
)

var defaultPickupColor = color.NRGBA{R: 0xc8, G: 0x8a, B: 0x3a, A: 0xff}

// SpawnPrefab instantiates a pickup prefab resting on the floor at pos.
func SpawnPrefab(w *ecs.World, prefab string, pos mgl64.Vec3) (ecs.Entity, error) {
	spec, err := prefabs.LoadSpec[prefabs.PickupSpec](prefab)
	if err != nil {
		return 0, fmt.Errorf("pickup: %w", err)
	}
	return NewPickupBox(w, &spec, pos)
}

// NewPickupBox builds a dynamic box in the pickup category. pos is the point
// on the floor below its center.
func NewPickupBox(w *ecs.World, spec *prefabs.PickupSpec, pos mgl64.Vec3) (ecs.Entity, error) {
	if spec == nil {
		return 0, fmt.Errorf("pickup: nil spec")
	}

	body := bodyFromCollider(spec.Collider)
	if body.Height <= 0 {
		body.Height = 0.5
	}
	rest := pos.Y() + body.Height/2

	box := ecs.CreateEntity(w)
	name := spec.Name
	if name == "" {
		name = "Box"
	}
	if err := ecs.Add(w, box, component.NameComponent.Kind(), &component.Name{Value: name}); err != nil {
		return 0, fmt.Errorf("pickup: add name: %w", err)
	}
	if err := ecs.Add(w, box, component.PickupTagComponent.Kind(), &component.PickupTag{}); err != nil {
		return 0, fmt.Errorf("pickup: add pickup tag: %w", err)
	}
	if err := ecs.Add(w, box, component.TransformComponent.Kind(), &component.Transform{
		Position: mgl64.Vec3{pos.X(), rest, pos.Z()},
		Rotation: mgl64.QuatIdent(),
	}); err != nil {
		return 0, fmt.Errorf("pickup: add transform: %w", err)
	}
	if err := ecs.Add(w, box, component.PhysicsBodyComponent.Kind(), body); err != nil {
		return 0, fmt.Errorf("pickup: add physics body: %w", err)
	}
	if err := ecs.Add(w, box, component.VerticalMotionComponent.Kind(), &component.VerticalMotion{
		Gravity: spec.Gravity,
		Rest:    rest,
	}); err != nil {
		return 0, fmt.Errorf("pickup: add vertical motion: %w", err)
	}
	if err := ecs.Add(w, box, component.TintComponent.Kind(), &component.Tint{Color: spec.Color.NRGBA(defaultPickupColor)}); err != nil {
		return 0, fmt.Errorf("pickup: add tint: %w", err)
	}

	return box, nil
}
