package instrument

// NoteEventKind discriminates note lifecycle events.
type NoteEventKind uint8

const (
	NoteOn NoteEventKind = iota
	NoteOff
)

type NoteEvent struct {
	Kind   NoteEventKind
	NoteId int
}

// Keyboard turns raw key presses and releases into note events
// according to the instrument's Mode. It is the playing-side state;
// one keyboard exists per linked instrument.
//
// Retrigger fires a one-shot on every press and ignores releases.
// Continuous sounds a note for exactly as long as its key is down.
// Sustain works like continuous, except releases while the pedal is
// held keep ringing until the pedal comes up.
type Keyboard struct {
	mode  Mode
	pedal bool

	pressed  map[int]bool
	sounding map[int]bool
}

func NewKeyboard(mode Mode) *Keyboard {
	return &Keyboard{
		mode:     mode,
		pressed:  make(map[int]bool, len(Notes)),
		sounding: make(map[int]bool, len(Notes)),
	}
}

func (k *Keyboard) Mode() Mode { return k.mode }

// Press handles a key going down and returns the resulting events.
func (k *Keyboard) Press(noteId int) []NoteEvent {
	switch k.mode {
	case ModeRetrigger:
		// one-shot, nothing to track
		return []NoteEvent{{Kind: NoteOn, NoteId: noteId}}
	default:
		if k.pressed[noteId] {
			return nil
		}
		k.pressed[noteId] = true
		var events []NoteEvent
		if k.sounding[noteId] {
			// a sustained note restarts on a fresh press
			events = append(events, NoteEvent{Kind: NoteOff, NoteId: noteId})
		}
		k.sounding[noteId] = true
		return append(events, NoteEvent{Kind: NoteOn, NoteId: noteId})
	}
}

// Release handles a key coming up.
func (k *Keyboard) Release(noteId int) []NoteEvent {
	if k.mode == ModeRetrigger {
		return nil
	}
	if !k.pressed[noteId] {
		return nil
	}
	delete(k.pressed, noteId)
	if k.mode == ModeSustain && k.pedal {
		// keeps ringing until the pedal comes up
		return nil
	}
	delete(k.sounding, noteId)
	return []NoteEvent{{Kind: NoteOff, NoteId: noteId}}
}

// Pedal moves the sustain pedal. Raising it stops every note that
// rings with no key holding it down. A no-op outside ModeSustain.
func (k *Keyboard) Pedal(down bool) []NoteEvent {
	if k.mode != ModeSustain || k.pedal == down {
		return nil
	}
	k.pedal = down
	if down {
		return nil
	}
	var events []NoteEvent
	for noteId := range k.sounding {
		if !k.pressed[noteId] {
			delete(k.sounding, noteId)
			events = append(events, NoteEvent{Kind: NoteOff, NoteId: noteId})
		}
	}
	return events
}

// Sounding reports whether the note currently rings.
func (k *Keyboard) Sounding(noteId int) bool { return k.sounding[noteId] }
