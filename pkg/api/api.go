package api

import "github.com/goccy/go-json"

// Type discriminates the envelope union.
type Type string

const (
	Host           Type = "host"
	Join           Type = "join"
	State          Type = "state"
	Leave          Type = "leave"
	InstrumentNote Type = "instrument_note"
	PlayerInfo     Type = "player_info"
)

// Position is a point in world coordinates, x/y/z.
type Position [3]float64

// Player is one participant snapshot as seen in player_info replies.
// Position stays nil until the participant sent its first state.
type Player struct {
	Id       string    `json:"id"`
	Position *Position `json:"position,omitempty"`
}

// Envelope is one discrete protocol message.
// Every envelope carries exactly the fields relevant to its type.
type Envelope struct {
	T        Type      `json:"type"`
	Id       string    `json:"id"`
	GameCode string    `json:"gameCode,omitempty"`
	Position *Position `json:"position,omitempty"`

	InstrumentId string `json:"instrumentId,omitempty"`
	// NoteId is a pointer because note 0 is a valid note and has to be
	// distinguishable from an absent one.
	NoteId *int `json:"noteId,omitempty"`

	Players []Player `json:"players,omitempty"`
}

func Decode(data []byte) (e Envelope, err error) {
	err = json.Unmarshal(data, &e)
	return
}

func (e Envelope) Encode() ([]byte, error) { return json.Marshal(e) }

// Note wraps a note id for the Envelope.NoteId field.
func Note(id int) *int { return &id }

// Valid reports whether the envelope carries the required
// fields for its stated type.
func (e *Envelope) Valid() bool {
	switch e.T {
	case Host, Join:
		return e.Id != "" && e.GameCode != ""
	case State:
		return e.Id != "" && e.GameCode != "" && e.Position != nil
	case InstrumentNote:
		return e.Id != "" && e.GameCode != "" && e.InstrumentId != "" && e.NoteId != nil
	case Leave:
		return e.Id != ""
	case PlayerInfo:
		return e.Id != "" && e.GameCode != ""
	}
	return false
}
