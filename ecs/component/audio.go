package component

// SoundQueue collects cue ids requested this tick. AudioSystem drains it into
// the audio sink and removes the component.
type SoundQueue struct {
	Cues []string
}

var SoundQueueComponent = NewComponent[SoundQueue]()
