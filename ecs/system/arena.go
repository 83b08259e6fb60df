package system

import "github.com/milk9111/vrlocomotion/ecs"

// ArenaConfig carries the collaborators of the arena systems.
type ArenaConfig struct {
	Input    InputSource
	Scenes   SceneLoader
	Recorder ResultRecorder
	Spawn    SpawnFunc
	Seed     int64
	Step     float64
}

// NewArenaScheduler wires the session scene. Input is sampled before the
// fixed steps so locomotion sees the current frame; locomotion sets the
// player velocity before the physics step sweeps it.
func NewArenaScheduler(cfg ArenaConfig) (*ecs.Scheduler, *PhysicsSystem) {
	physics := NewPhysicsSystem()
	sched := ecs.NewScheduler(cfg.Step)

	sched.AddPre(NewInputSystem(cfg.Input))

	sched.AddFixed(NewLocomotionSystem(physics))
	sched.AddFixed(physics)

	sched.AddFrame(NewSpawnSystem(cfg.Spawn, cfg.Seed))
	sched.AddFrame(NewCameraSystem(cfg.Input))
	sched.AddFrame(NewCarrySystem(physics, physics))
	sched.AddFrame(NewTeleportSystem(physics, physics))
	sched.AddFrame(NewDropAreaSystem())
	sched.AddFrame(NewSessionSystem(cfg.Scenes, cfg.Recorder))
	sched.AddFrame(NewBillboardSystem())

	return sched, physics
}
