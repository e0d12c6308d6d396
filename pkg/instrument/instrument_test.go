package instrument

import (
	"testing"
	"time"

	"github.com/openjam/jamroom/pkg/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinkIsFirstComeFirstServed(t *testing.T) {
	ins := New("instrument_0", "Acoustic Piano", ModeSustain, api.Position{0, 0.5, 0})

	assert.True(t, ins.Link("p1"))
	assert.False(t, ins.Link("p2"))
	// a second claim by the holder itself is also refused
	assert.False(t, ins.Link("p1"))
	assert.True(t, ins.LinkedTo("p1"))

	holder, ok := ins.LinkedParticipant()
	assert.True(t, ok)
	assert.Equal(t, "p1", holder)

	ins.Unlink()
	ins.Unlink()
	assert.False(t, ins.IsLinked())
	assert.True(t, ins.Link("p2"))
}

func TestRangeIgnoresHeight(t *testing.T) {
	ins := New("x", "x", ModeRetrigger, api.Position{0, 0.5, 0})

	assert.True(t, ins.InRange(api.Position{2.5, 0.5, 0}), "the boundary itself is in range")
	assert.False(t, ins.InRange(api.Position{2.6, 0.5, 0}))
	// a participant mid-jump right above is still in range
	assert.True(t, ins.InRange(api.Position{0, 100, 0}))
	assert.False(t, ins.InRange(api.Position{2, 0.5, 2}))

	assert.True(t, ins.CanLink(api.Position{1, 0.5, 1}))
	ins.Link("p1")
	assert.False(t, ins.CanLink(api.Position{1, 0.5, 1}))
}

func TestRackLookupsAndLeaveCleanup(t *testing.T) {
	r := NewRack(
		New("a", "A", ModeRetrigger, api.Position{0, 0.5, 0}),
		New("b", "B", ModeSustain, api.Position{10, 0.5, 0}),
	)

	ins, ok := r.Find("b")
	require.True(t, ok)
	assert.Equal(t, "B", ins.Name())
	_, ok = r.Find("zzz")
	assert.False(t, ok)

	_, ok = r.LinkedBy("p1")
	assert.False(t, ok)
	ins.Link("p1")
	held, ok := r.LinkedBy("p1")
	require.True(t, ok)
	assert.Equal(t, "b", held.Id())

	r.UnlinkAll("p1")
	r.UnlinkAll("p1")
	_, ok = r.LinkedBy("p1")
	assert.False(t, ok)
}

func TestRackNearestPrefersClosestClaimable(t *testing.T) {
	near := New("near", "Near", ModeRetrigger, api.Position{1, 0.5, 0})
	far := New("far", "Far", ModeRetrigger, api.Position{2, 0.5, 0})
	r := NewRack(near, far)

	ins, ok := r.Nearest(api.Position{0, 0.5, 0})
	require.True(t, ok)
	assert.Equal(t, "near", ins.Id())

	// a held instrument is skipped in favor of the next one in range
	near.Link("p9")
	ins, ok = r.Nearest(api.Position{0, 0.5, 0})
	require.True(t, ok)
	assert.Equal(t, "far", ins.Id())

	_, ok = r.Nearest(api.Position{50, 0.5, 50})
	assert.False(t, ok)
}

func TestStockRack(t *testing.T) {
	r := StockRack()
	assert.Len(t, r.Items(), 10)
	ins, ok := r.Find("instrument_9")
	require.True(t, ok)
	assert.Equal(t, "Grand Piano", ins.Name())
	assert.Equal(t, ModeSustain, ins.Mode())
	for _, ins := range r.Items() {
		assert.False(t, ins.IsLinked())
	}
}

func TestNoteTable(t *testing.T) {
	require.Len(t, Notes, 10)

	n, ok := NoteById(0)
	require.True(t, ok)
	assert.Equal(t, "A", n.Key)
	assert.Equal(t, 440.00, n.Frequency)

	n, ok = NoteByKey("P")
	require.True(t, ok)
	assert.Equal(t, 9, n.Id)
	assert.Equal(t, 783.99, n.Frequency)

	_, ok = NoteById(10)
	assert.False(t, ok)
	_, ok = NoteByKey("Q")
	assert.False(t, ok)

	// frequencies ascend with the ids
	for i := 1; i < len(Notes); i++ {
		assert.Greater(t, Notes[i].Frequency, Notes[i-1].Frequency)
	}
}

func TestEffectsTickDropsCompleted(t *testing.T) {
	var fx Effects
	start := time.Unix(0, 0)

	short := fx.Spawn("instrument_1", 0, start)
	long := fx.Spawn("instrument_1", 9, start)
	assert.Equal(t, 2, fx.Len())
	assert.Greater(t, long.duration, short.duration, "higher notes linger longer")

	active := fx.Tick(start.Add(100 * time.Millisecond))
	assert.Len(t, active, 2)
	assert.InDelta(t, 0.2, short.Progress(start.Add(100*time.Millisecond)), 1e-9)

	// past the short one's duration only the long one survives
	active = fx.Tick(start.Add(520 * time.Millisecond))
	require.Len(t, active, 1)
	assert.Equal(t, 9, active[0].NoteId)
	assert.Equal(t, 1, fx.Len())

	assert.Empty(t, fx.Tick(start.Add(time.Hour)))
	assert.Equal(t, 1.0, long.Progress(start.Add(time.Hour)))
}
