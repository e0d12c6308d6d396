package relay

import (
	"testing"

	"github.com/openjam/jamroom/pkg/api"
	"github.com/stretchr/testify/assert"
)

type nopSender struct{}

func (nopSender) Write([]byte) error { return nil }

func TestRegistryLifecycle(t *testing.T) {
	r := NewRegistry(0)

	assert.True(t, r.Register("ABCD", "p1", nopSender{}))
	assert.True(t, r.Register("ABCD", "p2", nopSender{}))
	assert.Equal(t, 1, r.Sessions())
	assert.Equal(t, 2, r.Participants("ABCD"))

	r.Remove("ABCD", "p1")
	assert.Equal(t, 1, r.Participants("ABCD"))
	// removing an absent participant changes nothing
	r.Remove("ABCD", "p1")
	assert.Equal(t, 1, r.Participants("ABCD"))

	r.Remove("ABCD", "p2")
	assert.Equal(t, 0, r.Sessions(), "the last leave deletes the session")
	assert.Equal(t, 0, r.Participants("ABCD"))
}

func TestRegistrySnapshotExcludesJoiner(t *testing.T) {
	r := NewRegistry(0)
	r.Register("ABCD", "p1", nopSender{})
	r.Register("ABCD", "p2", nopSender{})
	r.UpdatePosition("ABCD", "p1", api.Position{1, 0.5, 2})

	players := r.Snapshot("ABCD", "p2")
	assert.Len(t, players, 1)
	assert.Equal(t, "p1", players[0].Id)
	assert.Equal(t, &api.Position{1, 0.5, 2}, players[0].Position)

	// p2 never reported a position, so its snapshot entry carries none
	players = r.Snapshot("ABCD", "p1")
	assert.Len(t, players, 1)
	assert.Equal(t, "p2", players[0].Id)
	assert.Nil(t, players[0].Position)

	assert.Nil(t, r.Snapshot("ZZZZ", "p1"))
}

func TestRegistryUpdatePosition(t *testing.T) {
	r := NewRegistry(0)
	r.Register("ABCD", "p1", nopSender{})

	assert.True(t, r.UpdatePosition("ABCD", "p1", api.Position{3, 0.5, 4}))
	assert.False(t, r.UpdatePosition("ABCD", "nobody", api.Position{}))
	assert.False(t, r.UpdatePosition("ZZZZ", "p1", api.Position{}))
}

func TestRegistrySessionCap(t *testing.T) {
	r := NewRegistry(2)
	assert.True(t, r.Register("ABCD", "p1", nopSender{}))
	assert.True(t, r.Register("ABCD", "p2", nopSender{}))
	assert.False(t, r.Register("ABCD", "p3", nopSender{}))
	assert.Equal(t, 2, r.Participants("ABCD"))
	assert.Equal(t, 1, r.Sessions())

	// a known id always re-registers, cap or not
	assert.True(t, r.Register("ABCD", "p2", nopSender{}))

	// a rejected register must not leave an empty session behind
	r2 := NewRegistry(2)
	r2.Register("FULL", "a", nopSender{})
	r2.Register("FULL", "b", nopSender{})
	r2.Remove("FULL", "a")
	r2.Remove("FULL", "b")
	assert.Equal(t, 0, r2.Sessions())
}

func TestRegistryBroadcastTargets(t *testing.T) {
	r := NewRegistry(0)
	s1, s2 := nopSender{}, nopSender{}
	r.Register("ABCD", "p1", s1)
	r.Register("ABCD", "p2", s2)

	assert.Len(t, r.BroadcastTargets("ABCD", "p1"), 1)
	assert.Len(t, r.BroadcastTargets("ABCD", ""), 2)
	assert.Nil(t, r.BroadcastTargets("ZZZZ", ""))
}
