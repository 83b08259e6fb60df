package entity

import (
	"fmt"
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/vrlocomotion/common"
	"github.com/milk9111/vrlocomotion/ecs"
	"github.com/milk9111/vrlocomotion/ecs/component"
	"github.com/milk9111/vrlocomotion/prefabs"
)

var (
	defaultPlayerColor  = color.NRGBA{R: 0x35, G: 0x84, B: 0xe4, A: 0xff}
	defaultValidColor   = color.NRGBA{R: 0x33, G: 0xd1, B: 0x7a, A: 0xff}
	defaultInvalidColor = color.NRGBA{R: 0xe0, G: 0x1b, B: 0x24, A: 0xff}
)

func NewPlayer(w *ecs.World, mode component.MovementMode) (ecs.Entity, error) {
	spec, err := prefabs.LoadPlayerSpec()
	if err != nil {
		return 0, fmt.Errorf("player: load spec: %w", err)
	}
	return NewPlayerFromSpec(w, spec, mode)
}

// NewPlayerFromSpec builds the player body with its locomotion, carry and
// teleport controllers.
func NewPlayerFromSpec(w *ecs.World, spec *prefabs.PlayerSpec, mode component.MovementMode) (ecs.Entity, error) {
	if spec == nil {
		return 0, fmt.Errorf("player: nil spec")
	}

	player := ecs.CreateEntity(w)
	if err := ecs.Add(w, player, component.NameComponent.Kind(), &component.Name{Value: component.PlayerName}); err != nil {
		return 0, fmt.Errorf("player: add name: %w", err)
	}
	if err := ecs.Add(w, player, component.PlayerTagComponent.Kind(), &component.PlayerTag{}); err != nil {
		return 0, fmt.Errorf("player: add player tag: %w", err)
	}
	if err := ecs.Add(w, player, component.TransformComponent.Kind(), transformFromSpec(spec.Transform)); err != nil {
		return 0, fmt.Errorf("player: add transform: %w", err)
	}
	if err := ecs.Add(w, player, component.InputComponent.Kind(), &component.Input{}); err != nil {
		return 0, fmt.Errorf("player: add input: %w", err)
	}
	if err := ecs.Add(w, player, component.LocomotionComponent.Kind(), &component.Locomotion{
		Mode:         mode,
		Speed:        spec.Locomotion.Speed,
		MinLookAngle: spec.Locomotion.MinLookAngle,
	}); err != nil {
		return 0, fmt.Errorf("player: add locomotion: %w", err)
	}
	if err := ecs.Add(w, player, component.CarrierComponent.Kind(), &component.Carrier{
		Offset:        spec.Carry.Offset,
		Radius:        spec.Carry.Radius,
		SmoothingRate: spec.Carry.SmoothingRate,
		RotationSpeed: spec.Carry.RotationSpeed,
		ThrowSpeed:    spec.Carry.ThrowSpeed,
	}); err != nil {
		return 0, fmt.Errorf("player: add carrier: %w", err)
	}
	if err := ecs.Add(w, player, component.TeleporterComponent.Kind(), &component.Teleporter{
		Range:               spec.Teleport.Range,
		FadeDuration:        spec.Teleport.FadeDuration,
		ActivationThreshold: spec.Teleport.ActivationThreshold,
		SeeThroughAlpha:     spec.Teleport.SeeThroughAlpha,
		MarkerRadius:        spec.Teleport.MarkerRadius,
		ValidColor:          spec.Teleport.ValidColor.NRGBA(defaultValidColor),
		InvalidColor:        spec.Teleport.InvalidColor.NRGBA(defaultInvalidColor),
	}); err != nil {
		return 0, fmt.Errorf("player: add teleporter: %w", err)
	}

	body := bodyFromCollider(spec.Collider)
	body.FixedRotation = true
	if err := ecs.Add(w, player, component.PhysicsBodyComponent.Kind(), body); err != nil {
		return 0, fmt.Errorf("player: add physics body: %w", err)
	}
	if err := ecs.Add(w, player, component.TintComponent.Kind(), &component.Tint{Color: spec.Color.NRGBA(defaultPlayerColor)}); err != nil {
		return 0, fmt.Errorf("player: add tint: %w", err)
	}

	return player, nil
}

// NewCamera builds the head rig at the player's eye.
func NewCamera(w *ecs.World, spec *prefabs.PlayerSpec) (ecs.Entity, error) {
	if spec == nil {
		return 0, fmt.Errorf("camera: nil spec")
	}

	camera := ecs.CreateEntity(w)
	rig := &component.CameraRig{
		Yaw:       common.NormalizeDegrees(spec.Transform.Yaw),
		Pitch:     common.NormalizeDegrees(spec.Camera.Pitch),
		EyeHeight: spec.Camera.EyeHeight,
		LookSpeed: spec.Camera.LookSpeed,
	}
	if err := ecs.Add(w, camera, component.CameraRigComponent.Kind(), rig); err != nil {
		return 0, fmt.Errorf("camera: add rig: %w", err)
	}

	eye := mgl64.Vec3{spec.Transform.X, spec.Transform.Y + rig.EyeHeight, spec.Transform.Z}
	if err := ecs.Add(w, camera, component.TransformComponent.Kind(), &component.Transform{
		Position: eye,
		Rotation: common.LookRotation(rig.Yaw, rig.Pitch),
	}); err != nil {
		return 0, fmt.Errorf("camera: add transform: %w", err)
	}

	return camera, nil
}

// NewFadeOverlay builds the teleport fade, initially showing the scene.
func NewFadeOverlay(w *ecs.World) (ecs.Entity, error) {
	fade := ecs.CreateEntity(w)
	if err := ecs.Add(w, fade, component.FadeOverlayComponent.Kind(), &component.FadeOverlay{CameraEnabled: true}); err != nil {
		return 0, fmt.Errorf("fade: add overlay: %w", err)
	}
	return fade, nil
}

func transformFromSpec(spec prefabs.TransformSpec) *component.Transform {
	return &component.Transform{
		Position: mgl64.Vec3{spec.X, spec.Y, spec.Z},
		Rotation: common.YawRotation(spec.Yaw),
	}
}

func bodyFromCollider(spec prefabs.ColliderSpec) *component.PhysicsBody {
	kind := spec.Shape
	if kind == "" {
		kind = component.ShapeBox
		if spec.Radius > 0 {
			kind = component.ShapeCircle
		}
	}
	return &component.PhysicsBody{
		Kind:       kind,
		Width:      spec.Width,
		Depth:      spec.Depth,
		Radius:     spec.Radius,
		Height:     spec.Height,
		Mass:       spec.Mass,
		Friction:   spec.Friction,
		Elasticity: spec.Elasticity,
	}
}
