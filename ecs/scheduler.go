package ecs

// System updates a world once per phase invocation.
type System interface {
	Update(w *World)
}

// DefaultFixedStep is the fixed physics step, 60 Hz.
const DefaultFixedStep = 1.0 / 60.0

const stepEpsilon = 1e-9

// Scheduler drives the update phases of a world. Each frame it advances the
// clock, runs the pre systems (input sampling), runs as many fixed steps as
// the accumulated scaled time allows, fires due deferred tasks, runs the
// frame systems once and drops the frame's events. Events pushed by fixed
// systems or deferred tasks are visible to the frame systems.
type Scheduler struct {
	pre      []System
	fixed    []System
	frame    []System
	step     float64
	acc      float64
	maxCatch int
}

func NewScheduler(step float64) *Scheduler {
	if step <= 0 {
		step = DefaultFixedStep
	}
	return &Scheduler{step: step, maxCatch: 5}
}

// AddPre appends a system that runs once per frame before the fixed steps.
func (s *Scheduler) AddPre(system System) {
	if system == nil {
		return
	}
	s.pre = append(s.pre, system)
}

// AddFixed appends a system to the fixed-rate phase.
func (s *Scheduler) AddFixed(system System) {
	if system == nil {
		return
	}
	s.fixed = append(s.fixed, system)
}

// AddFrame appends a system to the variable-rate phase.
func (s *Scheduler) AddFrame(system System) {
	if system == nil {
		return
	}
	s.frame = append(s.frame, system)
}

// Step returns the unscaled fixed step.
func (s *Scheduler) Step() float64 {
	return s.step
}

// Update advances w by realDelta seconds of wall time.
func (s *Scheduler) Update(w *World, realDelta float64) {
	if s == nil || w == nil {
		return
	}
	if realDelta < 0 {
		realDelta = 0
	}

	w.clock.advance(realDelta)
	w.clock.fixedDelta = s.step

	for _, system := range s.pre {
		system.Update(w)
	}

	if w.clock.scale > 0 {
		s.acc += w.clock.delta
		steps := 0
		for s.acc+stepEpsilon >= s.step && steps < s.maxCatch {
			for _, system := range s.fixed {
				system.Update(w)
			}
			s.acc -= s.step
			steps++
		}
		if steps == s.maxCatch {
			s.acc = 0
		}
	} else {
		s.acc = 0
	}

	w.deferred.advance(w, w.clock.now)

	for _, system := range s.frame {
		system.Update(w)
	}

	w.events.flush()
}
