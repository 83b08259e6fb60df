package component

// Session is the timed scoring loop of one arena run.
type Session struct {
	Duration float64
	TimeLeft float64
	Score    int
	Mode     MovementMode
	Started  bool
	Ended    bool
	// StartedAt is the world clock time the countdown began.
	StartedAt float64
	// MenuScene is the scene loaded when the session ends.
	MenuScene int
	// EndTask is the pending end-of-session deferred task.
	EndTask uint64
}

var SessionComponent = NewComponent[Session]()

// DropArea is a trigger volume that scores pickup-category bodies.
type DropArea struct {
	Entries int
}

var DropAreaComponent = NewComponent[DropArea]()
