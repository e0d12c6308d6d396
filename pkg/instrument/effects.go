package instrument

import "time"

// Effect is one transient note visual: a start time and a duration,
// nothing self-rescheduling. Higher notes linger slightly longer.
type Effect struct {
	InstrumentId string
	NoteId       int
	start        time.Time
	duration     time.Duration
}

func (e *Effect) Active(now time.Time) bool {
	return now.Sub(e.start) < e.duration
}

// Progress returns how far the effect has played, clamped to [0, 1].
func (e *Effect) Progress(now time.Time) float64 {
	if e.duration <= 0 {
		return 1
	}
	p := float64(now.Sub(e.start)) / float64(e.duration)
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// Effects owns the live effect set. A single external tick advances
// all of them and drops the completed ones; there are no per-effect
// callbacks or timers.
type Effects struct {
	list []*Effect
}

const (
	effectBase    = 500 * time.Millisecond
	effectPerNote = 15 * time.Millisecond
)

// Spawn adds an effect for a played note.
func (s *Effects) Spawn(instrumentId string, noteId int, now time.Time) *Effect {
	e := &Effect{
		InstrumentId: instrumentId,
		NoteId:       noteId,
		start:        now,
		duration:     effectBase + time.Duration(noteId)*effectPerNote,
	}
	s.list = append(s.list, e)
	return e
}

// Tick removes completed effects and returns the still active ones.
func (s *Effects) Tick(now time.Time) []*Effect {
	active := s.list[:0]
	for _, e := range s.list {
		if e.Active(now) {
			active = append(active, e)
		}
	}
	s.list = active
	return active
}

func (s *Effects) Len() int { return len(s.list) }
