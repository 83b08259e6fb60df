package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// PlayerSpec tunes the player rig and its three controllers.
type PlayerSpec struct {
	Name       string         `yaml:"name"`
	Transform  TransformSpec  `yaml:"transform"`
	Collider   ColliderSpec   `yaml:"collider"`
	Color      YAMLColor      `yaml:"color"`
	Camera     CameraSpec     `yaml:"camera"`
	Locomotion LocomotionSpec `yaml:"locomotion"`
	Carry      CarrySpec      `yaml:"carry"`
	Teleport   TeleportSpec   `yaml:"teleport"`
}

func LoadPlayerSpec() (*PlayerSpec, error) {
	spec, err := LoadSpec[PlayerSpec]("player.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type CameraSpec struct {
	EyeHeight float64 `yaml:"eye_height"`
	LookSpeed float64 `yaml:"look_speed"`
	Pitch     float64 `yaml:"pitch"`
}

type LocomotionSpec struct {
	Speed        float64 `yaml:"speed"`
	MinLookAngle float64 `yaml:"min_look_angle"`
}

type CarrySpec struct {
	Offset        float64 `yaml:"offset"`
	Radius        float64 `yaml:"radius"`
	SmoothingRate float64 `yaml:"smoothing_rate"`
	RotationSpeed float64 `yaml:"rotation_speed"`
	ThrowSpeed    float64 `yaml:"throw_speed"`
}

type TeleportSpec struct {
	Range               float64   `yaml:"range"`
	FadeDuration        float64   `yaml:"fade_duration"`
	ActivationThreshold float64   `yaml:"activation_threshold"`
	SeeThroughAlpha     uint8     `yaml:"see_through_alpha"`
	MarkerRadius        float64   `yaml:"marker_radius"`
	ValidColor          YAMLColor `yaml:"valid_color"`
	InvalidColor        YAMLColor `yaml:"invalid_color"`
}

// PickupSpec is the box the spawner scatters.
type PickupSpec struct {
	Name     string       `yaml:"name"`
	Collider ColliderSpec `yaml:"collider"`
	Color    YAMLColor    `yaml:"color"`
	Gravity  float64      `yaml:"gravity"`
}

func LoadPickupSpec() (*PickupSpec, error) {
	spec, err := LoadSpec[PickupSpec]("pickup.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

// ArenaSpec lays out the play area of the session scene.
type ArenaSpec struct {
	Name       string          `yaml:"name"`
	Bounds     BoundsSpec      `yaml:"bounds"`
	Session    SessionSpec     `yaml:"session"`
	DropArea   DropAreaSpec    `yaml:"drop_area"`
	SpawnAreas []SpawnAreaSpec `yaml:"spawn_areas"`
	Obstacles  []ObstacleSpec  `yaml:"obstacles"`
	Sign       SignSpec        `yaml:"sign"`
}

func LoadArenaSpec() (*ArenaSpec, error) {
	spec, err := LoadSpec[ArenaSpec]("arena.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type BoundsSpec struct {
	Width      float64 `yaml:"width"`
	Depth      float64 `yaml:"depth"`
	WallHeight float64 `yaml:"wall_height"`
}

type SessionSpec struct {
	Duration  float64 `yaml:"duration"`
	MenuScene int     `yaml:"menu_scene"`
}

type DropAreaSpec struct {
	Name      string        `yaml:"name"`
	Transform TransformSpec `yaml:"transform"`
	Width     float64       `yaml:"width"`
	Depth     float64       `yaml:"depth"`
	Color     YAMLColor     `yaml:"color"`
}

type SpawnAreaSpec struct {
	Name      string        `yaml:"name"`
	Transform TransformSpec `yaml:"transform"`
	Width     float64       `yaml:"width"`
	Depth     float64       `yaml:"depth"`
	Count     int           `yaml:"count"`
	Prefab    string        `yaml:"prefab"`
}

type ObstacleSpec struct {
	Name      string        `yaml:"name"`
	Transform TransformSpec `yaml:"transform"`
	Collider  ColliderSpec  `yaml:"collider"`
	Color     YAMLColor     `yaml:"color"`
}

type SignSpec struct {
	Transform TransformSpec `yaml:"transform"`
	Color     YAMLColor     `yaml:"color"`
}

// TransformSpec places an entity. Yaw is in degrees about the vertical axis.
type TransformSpec struct {
	X   float64 `yaml:"x"`
	Y   float64 `yaml:"y"`
	Z   float64 `yaml:"z"`
	Yaw float64 `yaml:"yaw"`
}

// ColliderSpec is a box (width/depth) or circle (radius) footprint extruded
// by height.
type ColliderSpec struct {
	Shape      string  `yaml:"shape"`
	Width      float64 `yaml:"width"`
	Depth      float64 `yaml:"depth"`
	Radius     float64 `yaml:"radius"`
	Height     float64 `yaml:"height"`
	Mass       float64 `yaml:"mass"`
	Friction   float64 `yaml:"friction"`
	Elasticity float64 `yaml:"elasticity"`
}

type YAMLColor struct {
	color.Color
}

// NRGBA returns the color, or fallback when none was set.
func (c YAMLColor) NRGBA(fallback color.NRGBA) color.NRGBA {
	if c.Color == nil {
		return fallback
	}
	return color.NRGBAModel.Convert(c.Color).(color.NRGBA)
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}
