package system

import (
	"log"
	"math"

	"github.com/milk9111/vrlocomotion/ecs"
	"github.com/milk9111/vrlocomotion/ecs/component"
)

// SceneLoader switches scenes by index.
type SceneLoader interface {
	LoadScene(index int)
}

// ResultRecorder receives the outcome of a finished session.
type ResultRecorder interface {
	RecordSession(mode component.MovementMode, score int, duration float64) error
}

// SessionSystem runs the countdown of the arena. The end of the session is a
// one-shot deferred task scheduled when the countdown starts; TimeLeft is
// only kept for display.
type SessionSystem struct {
	scenes   SceneLoader
	recorder ResultRecorder
}

func NewSessionSystem(scenes SceneLoader, recorder ResultRecorder) *SessionSystem {
	return &SessionSystem{scenes: scenes, recorder: recorder}
}

func (ss *SessionSystem) Update(w *ecs.World) {
	if ss == nil || w == nil {
		return
	}

	ecs.ForEach(w, component.SessionComponent.Kind(), func(e ecs.Entity, session *component.Session) {
		if !session.Started {
			ss.start(w, e, session)
		}
		if session.Ended {
			return
		}
		elapsed := w.Clock().Now() - session.StartedAt
		session.TimeLeft = math.Max(0, session.Duration-elapsed)
	})
}

func (ss *SessionSystem) start(w *ecs.World, e ecs.Entity, session *component.Session) {
	session.Started = true
	session.Ended = false
	// The countdown runs from the start of the first frame, the moment the
	// scene was entered.
	session.StartedAt = w.Clock().Now() - w.Clock().Delta()
	session.TimeLeft = session.Duration
	session.EndTask = uint64(w.After(session.StartedAt+session.Duration-w.Clock().Now(), func(w *ecs.World) {
		ss.end(w, e)
	}))
	log.Printf("session: started %s for %.0fs", session.Mode, session.Duration)
}

func (ss *SessionSystem) end(w *ecs.World, e ecs.Entity) {
	session, ok := ecs.Get(w, e, component.SessionComponent.Kind())
	if !ok || session.Ended {
		return
	}
	session.Ended = true
	session.TimeLeft = 0
	session.EndTask = 0

	w.Clock().SetTimeScale(0)
	log.Printf("session: game over")
	log.Printf("session: %d points", session.Score)

	w.Events().Push(ecs.Event{Type: ecs.EventSessionEnded, Data: ecs.SessionEndedEvent{Score: session.Score}})

	if ss.recorder != nil {
		if err := ss.recorder.RecordSession(session.Mode, session.Score, session.Duration); err != nil {
			log.Printf("session: record result: %v", err)
		}
	}
	if ss.scenes != nil {
		ss.scenes.LoadScene(session.MenuScene)
	}
}
