package component

// SoundRequest asks the audio system to play, loop or stop a named sound.
// The request entity is destroyed once handled.
type SoundRequest struct {
	Name string
	Loop bool
	Stop bool
}

var SoundRequestComponent = NewComponent[SoundRequest]()
