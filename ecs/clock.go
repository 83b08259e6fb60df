package ecs

// Clock is the world's simulation time. All durations are in seconds of
// scaled time; a time scale of zero freezes the simulation while frame
// systems keep running.
type Clock struct {
	now        float64
	delta      float64
	fixedDelta float64
	scale      float64
	frames     uint64
}

// Now returns elapsed scaled time.
func (c *Clock) Now() float64 { return c.now }

// Delta returns the scaled duration of the current frame.
func (c *Clock) Delta() float64 { return c.delta }

// FixedDelta returns the duration of one fixed step in scaled time.
func (c *Clock) FixedDelta() float64 { return c.fixedDelta }

// Frames returns the number of frames advanced so far.
func (c *Clock) Frames() uint64 { return c.frames }

// TimeScale returns the current time scale.
func (c *Clock) TimeScale() float64 { return c.scale }

// SetTimeScale changes how fast simulation time passes. Negative values are
// clamped to zero.
func (c *Clock) SetTimeScale(scale float64) {
	if scale < 0 {
		scale = 0
	}
	c.scale = scale
}

func (c *Clock) advance(realDelta float64) {
	c.frames++
	c.delta = realDelta * c.scale
	c.now += c.delta
}
