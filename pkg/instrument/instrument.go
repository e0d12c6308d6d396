package instrument

import (
	"math"

	"github.com/openjam/jamroom/pkg/api"
)

// DefaultInteractionDistance is how close a participant has to stand,
// on the horizontal plane, to claim an instrument.
const DefaultInteractionDistance = 2.5

// Mode selects how an instrument reacts to key input. One
// parameterized type with a mode covers the whole family; variants
// differ only by their note handling and placement.
type Mode uint8

const (
	// ModeRetrigger restarts the note on every key press.
	ModeRetrigger Mode = iota
	// ModeSustain keeps released notes ringing while the pedal is held.
	ModeSustain
	// ModeContinuous holds the note for as long as the key stays down.
	ModeContinuous
)

// Linkable is the ownership capability every shared interactive
// object exposes, checked through the Rack rather than reflection.
type Linkable interface {
	IsLinked() bool
	LinkedParticipant() (string, bool)
}

// Instrument is one shared interactive object. Linkage is a
// cooperative claim tracked independently by every client from its
// own view of the broadcast stream; there is no server arbitration,
// so two participants claiming the same instant may both believe
// they succeeded.
type Instrument struct {
	id       string
	name     string
	mode     Mode
	pos      api.Position
	distance float64

	linked string
}

func New(id string, name string, mode Mode, pos api.Position) *Instrument {
	return &Instrument{id: id, name: name, mode: mode, pos: pos, distance: DefaultInteractionDistance}
}

func (i *Instrument) Id() string             { return i.id }
func (i *Instrument) Name() string           { return i.name }
func (i *Instrument) Mode() Mode             { return i.mode }
func (i *Instrument) Position() api.Position { return i.pos }

// Link claims the instrument for the participant. A no-op when
// anyone, the same participant included, already holds it.
func (i *Instrument) Link(participantId string) bool {
	if i.linked != "" {
		return false
	}
	i.linked = participantId
	return true
}

// Unlink releases the instrument unconditionally. Idempotent.
func (i *Instrument) Unlink() { i.linked = "" }

func (i *Instrument) IsLinked() bool { return i.linked != "" }

func (i *Instrument) LinkedParticipant() (string, bool) {
	return i.linked, i.linked != ""
}

func (i *Instrument) LinkedTo(participantId string) bool {
	return i.linked != "" && i.linked == participantId
}

// InRange reports whether the position is close enough to interact.
// Only the horizontal plane counts, vertical offset is ignored.
func (i *Instrument) InRange(pos api.Position) bool {
	return horizontalDistance(i.pos, pos) <= i.distance
}

// CanLink reports whether a local participant standing at pos may
// request the claim: the instrument is unlinked in this client's view
// and the participant is in range.
func (i *Instrument) CanLink(pos api.Position) bool {
	return !i.IsLinked() && i.InRange(pos)
}

func horizontalDistance(a api.Position, b api.Position) float64 {
	dx := a[0] - b[0]
	dz := a[2] - b[2]
	return math.Sqrt(dx*dx + dz*dz)
}

// Rack is the registered list of the shared objects of one room.
type Rack struct {
	items []*Instrument
}

func NewRack(items ...*Instrument) *Rack { return &Rack{items: items} }

func (r *Rack) Add(ins *Instrument) { r.items = append(r.items, ins) }

func (r *Rack) Items() []*Instrument { return r.items }

func (r *Rack) Find(id string) (*Instrument, bool) {
	for _, ins := range r.items {
		if ins.id == id {
			return ins, true
		}
	}
	return nil, false
}

// LinkedBy returns the instrument held by the participant, if any.
func (r *Rack) LinkedBy(participantId string) (*Instrument, bool) {
	for _, ins := range r.items {
		if ins.LinkedTo(participantId) {
			return ins, true
		}
	}
	return nil, false
}

// Nearest returns the closest claimable instrument in range of pos.
func (r *Rack) Nearest(pos api.Position) (*Instrument, bool) {
	var best *Instrument
	bestDist := math.MaxFloat64
	for _, ins := range r.items {
		if !ins.CanLink(pos) {
			continue
		}
		if d := horizontalDistance(ins.pos, pos); d < bestDist {
			best, bestDist = ins, d
		}
	}
	return best, best != nil
}

// UnlinkAll releases every instrument held by the participant, the
// cleanup path for a leave. Idempotent.
func (r *Rack) UnlinkAll(participantId string) {
	for _, ins := range r.items {
		if ins.LinkedTo(participantId) {
			ins.Unlink()
		}
	}
}

// StockRack lays out the default room: two rows of instruments and a
// grand piano front and center.
func StockRack() *Rack {
	return NewRack(
		New("instrument_0", "Acoustic Piano", ModeSustain, api.Position{-8, 0.5, -6}),
		New("instrument_1", "Electric Piano", ModeRetrigger, api.Position{-4, 0.5, -6}),
		New("instrument_2", "Synthesizer", ModeContinuous, api.Position{0, 0.5, -6}),
		New("instrument_3", "Drums", ModeRetrigger, api.Position{4, 0.5, -6}),
		New("instrument_4", "Violin", ModeContinuous, api.Position{8, 0.5, -6}),
		New("instrument_5", "Acoustic Guitar", ModeRetrigger, api.Position{-6, 0.5, 0}),
		New("instrument_6", "Electric Guitar", ModeRetrigger, api.Position{-2, 0.5, 0}),
		New("instrument_7", "Electric Bass", ModeRetrigger, api.Position{2, 0.5, 0}),
		New("instrument_8", "Saxophone", ModeContinuous, api.Position{6, 0.5, 0}),
		New("instrument_9", "Grand Piano", ModeSustain, api.Position{0, 0.5, 4}),
	)
}
