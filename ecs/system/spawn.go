package system

import (
	"log"
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/vrlocomotion/common"
	"github.com/milk9111/vrlocomotion/ecs"
	"github.com/milk9111/vrlocomotion/ecs/component"
)

// SpawnFunc instantiates the named prefab standing on the floor at pos.
type SpawnFunc func(w *ecs.World, prefab string, pos mgl64.Vec3) (ecs.Entity, error)

// SpawnSystem fills every spawn area once with uniformly placed prefabs.
type SpawnSystem struct {
	spawn SpawnFunc
	rng   *rand.Rand
}

func NewSpawnSystem(spawn SpawnFunc, seed int64) *SpawnSystem {
	return &SpawnSystem{spawn: spawn, rng: rand.New(rand.NewSource(seed))}
}

func (ss *SpawnSystem) Update(w *ecs.World) {
	if ss == nil || w == nil || ss.spawn == nil {
		return
	}

	ecs.ForEach2(w, component.SpawnAreaComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, area *component.SpawnArea, transform *component.Transform) {
		if area.Done {
			return
		}
		area.Done = true

		spawned := 0
		for i := 0; i < area.Count; i++ {
			pos := ss.samplePoint(area, transform)
			if _, err := ss.spawn(w, area.Prefab, pos); err != nil {
				log.Printf("spawn: %s: %v", area.Prefab, err)
				return
			}
			spawned++
		}
		log.Printf("spawn: placed %d %s", spawned, area.Prefab)
	})
}

// samplePoint picks a point of the area rectangle, which is centered on the
// transform and turned with its yaw.
func (ss *SpawnSystem) samplePoint(area *component.SpawnArea, transform *component.Transform) mgl64.Vec3 {
	local := mgl64.Vec3{
		(ss.rng.Float64()*2 - 1) * area.Width / 2,
		0,
		(ss.rng.Float64()*2 - 1) * area.Depth / 2,
	}
	yaw := common.YawRotation(common.YawOf(transform.Rotation))
	p := transform.Position.Add(yaw.Rotate(local))
	p[1] = common.FloorY
	return p
}
