package bot

import (
	"testing"
	"time"

	"github.com/openjam/jamroom/pkg/api"
	conf "github.com/openjam/jamroom/pkg/config/bot"
	"github.com/openjam/jamroom/pkg/logger"
	"github.com/openjam/jamroom/pkg/motion"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBot(t *testing.T) *Bot {
	t.Helper()
	b, err := New(conf.Bot{Relay: "ws://localhost:8000/ws", Host: true}, logger.Default())
	require.NoError(t, err)
	return b
}

func TestBotHostGeneratesGameCode(t *testing.T) {
	b := newTestBot(t)
	assert.Len(t, b.GameCode(), 4)
	assert.NotEmpty(t, b.Id())
}

func TestBotTracksPeers(t *testing.T) {
	b := newTestBot(t)

	b.handle(api.Envelope{T: api.PlayerInfo, Id: b.Id(), GameCode: b.GameCode(),
		Players: []api.Player{{Id: "p1", Position: &api.Position{1, 0.5, 2}}, {Id: "p2"}}})
	peers := b.Peers()
	require.Len(t, peers, 2)
	assert.Equal(t, &api.Position{1, 0.5, 2}, peers["p1"])
	assert.Nil(t, peers["p2"])

	b.handle(api.Envelope{T: api.State, Id: "p2", GameCode: b.GameCode(), Position: &api.Position{3, 0.5, 4}})
	assert.Equal(t, &api.Position{3, 0.5, 4}, b.Peers()["p2"])

	b.handle(api.Envelope{T: api.Leave, Id: "p1"})
	assert.Len(t, b.Peers(), 1)
}

func TestBotMirrorsRemoteNotes(t *testing.T) {
	b := newTestBot(t)

	// a remote note plays, and plays only: ownership is whatever the
	// sender believes, never inferred from the note stream
	b.handle(api.Envelope{T: api.InstrumentNote, Id: "p1", GameCode: b.GameCode(),
		InstrumentId: "instrument_3", NoteId: api.Note(7)})
	assert.Equal(t, 1, b.effects.Len())
	ins, ok := b.rack.Find("instrument_3")
	require.True(t, ok)
	assert.False(t, ins.IsLinked())
}

func TestBotMotionConfig(t *testing.T) {
	// an unset motion block keeps the stock constants
	b := newTestBot(t)
	assert.Equal(t, api.Position{0, 0.5, 0}, b.body.Position())

	b2, err := New(conf.Bot{Relay: "ws://localhost:8000/ws", Host: true,
		Motion: motion.Config{MoveSpeed: 0.1, JumpForce: 0.2, Gravity: 0.02, GroundY: 1}}, logger.Default())
	require.NoError(t, err)
	assert.Equal(t, api.Position{0, 1, 0}, b2.body.Position())
}

func TestBotPlaysThroughKeyboard(t *testing.T) {
	b := newTestBot(t)

	// the spawn point sits in range of the guitar row, so the first
	// tick links the closest one and sets its keyboard up
	b.tick(time.Unix(0, 0))
	ins, ok := b.rack.LinkedBy(b.Id())
	require.True(t, ok)
	assert.Contains(t, []string{"instrument_6", "instrument_7"}, ins.Id())
	require.NotNil(t, b.keys)
	assert.Equal(t, ins.Mode(), b.keys.Mode())
}

func TestBotWanderKeepsHeading(t *testing.T) {
	b := newTestBot(t)
	first := b.wander()
	for i := 0; i < 10; i++ {
		in := b.wander()
		assert.Equal(t, first.X, in.X)
		assert.Equal(t, first.Z, in.Z)
	}
}
