package results

import (
	"context"
	"time"

	"github.com/milk9111/vrlocomotion/ecs/component"
)

const recordTimeout = 2 * time.Second

// Recorder writes finished sessions to a Store.
type Recorder struct {
	Store *Store
	Seed  int64
}

func (r *Recorder) RecordSession(mode component.MovementMode, score int, duration float64) error {
	if r == nil || r.Store == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
	defer cancel()
	_, err := r.Store.Record(ctx, Result{
		Mode:     mode.String(),
		Score:    score,
		Duration: duration,
		Seed:     r.Seed,
	})
	return err
}
