package instrument

// Note maps one playable key to its pitch.
type Note struct {
	Id        int
	Key       string
	Frequency float64
}

// Notes is the shared ten-note table of the room, laid over the
// AZERTY top row, A4 to G5.
var Notes = []Note{
	{Id: 0, Key: "A", Frequency: 440.00},
	{Id: 1, Key: "Z", Frequency: 493.88},
	{Id: 2, Key: "E", Frequency: 523.25},
	{Id: 3, Key: "R", Frequency: 554.37},
	{Id: 4, Key: "T", Frequency: 587.33},
	{Id: 5, Key: "Y", Frequency: 622.25},
	{Id: 6, Key: "U", Frequency: 659.25},
	{Id: 7, Key: "I", Frequency: 698.46},
	{Id: 8, Key: "O", Frequency: 739.99},
	{Id: 9, Key: "P", Frequency: 783.99},
}

func NoteById(id int) (Note, bool) {
	for _, n := range Notes {
		if n.Id == id {
			return n, true
		}
	}
	return Note{}, false
}

func NoteByKey(key string) (Note, bool) {
	for _, n := range Notes {
		if n.Key == key {
			return n, true
		}
	}
	return Note{}, false
}
