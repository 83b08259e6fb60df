package system

import (
	"github.com/milk9111/vrlocomotion/ecs"
	"github.com/milk9111/vrlocomotion/ecs/component"
)

// DropAreaSystem scores pickup boxes entering a drop area.
type DropAreaSystem struct{}

func NewDropAreaSystem() *DropAreaSystem {
	return &DropAreaSystem{}
}

func (ds *DropAreaSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	sessionEntity, ok := ecs.First(w, component.SessionComponent.Kind())
	if !ok {
		return
	}
	session, ok := ecs.Get(w, sessionEntity, component.SessionComponent.Kind())
	if !ok || session.Ended {
		return
	}

	w.Events().Each(ecs.EventTriggerEnter, func(evt ecs.Event) {
		enter, ok := evt.Data.(ecs.TriggerEnterEvent)
		if !ok {
			return
		}
		area, ok := ecs.Get(w, enter.Trigger, component.DropAreaComponent.Kind())
		if !ok || !Scores(w, enter.Other) {
			return
		}
		area.Entries++
		session.Score++
	})
}

// Scores reports whether e entering a drop area earns a point: it must not be
// the player and must belong to the pickup category.
func Scores(w *ecs.World, e ecs.Entity) bool {
	if name, ok := ecs.Get(w, e, component.NameComponent.Kind()); ok && name.Value == component.PlayerName {
		return false
	}
	return ecs.Has(w, e, component.PickupTagComponent.Kind())
}
