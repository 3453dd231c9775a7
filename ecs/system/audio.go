package system

import (
	"github.com/milk9111/bossfight/ecs"
	"github.com/milk9111/bossfight/ecs/component"
)

// AudioSystem forwards queued sound cues to the sink.
type AudioSystem struct {
	sink AudioSink
}

func NewAudioSystem(sink AudioSink) *AudioSystem {
	return &AudioSystem{sink: sink}
}

func (a *AudioSystem) Update(w *ecs.World) {
	ecs.ForEach(w, component.SoundQueueComponent.Kind(), func(e ecs.Entity, q *component.SoundQueue) {
		if a.sink != nil {
			for _, cue := range q.Cues {
				a.sink.PlaySound(cue)
			}
		}
		_ = ecs.Remove(w, e, component.SoundQueueComponent.Kind())
	})
}
