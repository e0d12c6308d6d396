package instrument

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyboardRetrigger(t *testing.T) {
	k := NewKeyboard(ModeRetrigger)

	// every press is a fresh one-shot, releases don't exist
	assert.Equal(t, []NoteEvent{{Kind: NoteOn, NoteId: 3}}, k.Press(3))
	assert.Equal(t, []NoteEvent{{Kind: NoteOn, NoteId: 3}}, k.Press(3))
	assert.Nil(t, k.Release(3))
	assert.False(t, k.Sounding(3))

	// the pedal means nothing here
	assert.Nil(t, k.Pedal(true))
	assert.Nil(t, k.Pedal(false))
}

func TestKeyboardContinuous(t *testing.T) {
	k := NewKeyboard(ModeContinuous)

	assert.Equal(t, []NoteEvent{{Kind: NoteOn, NoteId: 5}}, k.Press(5))
	assert.True(t, k.Sounding(5))
	// holding the key down repeats nothing
	assert.Nil(t, k.Press(5))

	assert.Equal(t, []NoteEvent{{Kind: NoteOff, NoteId: 5}}, k.Release(5))
	assert.False(t, k.Sounding(5))
	// releasing an already released key is silent
	assert.Nil(t, k.Release(5))

	// two keys sound independently
	k.Press(0)
	k.Press(9)
	assert.True(t, k.Sounding(0))
	assert.True(t, k.Sounding(9))
	k.Release(0)
	assert.False(t, k.Sounding(0))
	assert.True(t, k.Sounding(9))
}

func TestKeyboardSustain(t *testing.T) {
	k := NewKeyboard(ModeSustain)

	// without the pedal it behaves like continuous
	assert.Equal(t, []NoteEvent{{Kind: NoteOn, NoteId: 2}}, k.Press(2))
	assert.Equal(t, []NoteEvent{{Kind: NoteOff, NoteId: 2}}, k.Release(2))

	// pedal down: released keys keep ringing
	assert.Nil(t, k.Pedal(true))
	k.Press(2)
	k.Press(7)
	assert.Nil(t, k.Release(2))
	assert.True(t, k.Sounding(2))

	// a fresh press of a sustained note restarts it
	assert.Equal(t, []NoteEvent{{Kind: NoteOff, NoteId: 2}, {Kind: NoteOn, NoteId: 2}}, k.Press(2))
	assert.Nil(t, k.Release(2))

	// pedal up stops the ringing notes but not the held key
	events := k.Pedal(false)
	require.Len(t, events, 1)
	assert.Equal(t, NoteEvent{Kind: NoteOff, NoteId: 2}, events[0])
	assert.False(t, k.Sounding(2))
	assert.True(t, k.Sounding(7))
	assert.Equal(t, []NoteEvent{{Kind: NoteOff, NoteId: 7}}, k.Release(7))
}
