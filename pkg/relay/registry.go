package relay

import (
	"sync"

	"github.com/openjam/jamroom/pkg/api"
)

// Sender is the connection handle fan-out targets expose.
// Writes are best-effort and must not block.
type Sender interface {
	Write(data []byte) error
}

type participant struct {
	conn Sender
	pos  *api.Position
}

type session struct {
	participants map[string]*participant
}

// Registry is the in-memory bookkeeping of sessions and their
// participants. It holds no network code; all operations are
// linearized under a single lock.
type Registry struct {
	mu sync.Mutex
	// maxSession caps participants per session, 0 is unlimited
	maxSession int
	sessions   map[string]*session
}

func NewRegistry(maxSession int) *Registry {
	return &Registry{maxSession: maxSession, sessions: make(map[string]*session, 10)}
}

// Register creates the session on demand and inserts the participant.
// Re-registering the same participant id replaces its connection
// handle, which gives simple reconnection semantics. The only failure
// is a session already at its participant cap.
func (r *Registry) Register(code string, id string, conn Sender) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[code]
	if !ok {
		s = &session{participants: make(map[string]*participant, 4)}
		r.sessions[code] = s
	}
	if p, ok := s.participants[id]; ok {
		p.conn = conn
		return true
	}
	// a just-created session is empty and a positive cap always
	// admits the first participant, so a reject never leaves an
	// empty session behind
	if r.maxSession > 0 && len(s.participants) >= r.maxSession {
		return false
	}
	s.participants[id] = &participant{conn: conn}
	return true
}

// UpdatePosition overwrites the last known position of the participant
// and reports whether it is present.
func (r *Registry) UpdatePosition(code string, id string, pos api.Position) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[code]
	if !ok {
		return false
	}
	p, ok := s.participants[id]
	if !ok {
		return false
	}
	// replaced wholesale, never mutated in place, so snapshots may
	// share the pointer
	p.pos = &pos
	return true
}

// Remove deletes the participant and, when it was the last one, the
// session itself. Removing an absent participant is a no-op.
func (r *Registry) Remove(code string, id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[code]
	if !ok {
		return
	}
	delete(s.participants, id)
	if len(s.participants) == 0 {
		delete(r.sessions, code)
	}
}

// Snapshot lists every current participant of the session except the
// given one, with their last known positions.
func (r *Registry) Snapshot(code string, excluding string) []api.Player {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[code]
	if !ok {
		return nil
	}
	players := make([]api.Player, 0, len(s.participants))
	for id, p := range s.participants {
		if id == excluding {
			continue
		}
		players = append(players, api.Player{Id: id, Position: p.pos})
	}
	return players
}

// BroadcastTargets lists the live connection handles of every other
// participant of the session.
func (r *Registry) BroadcastTargets(code string, excluding string) []Sender {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[code]
	if !ok {
		return nil
	}
	targets := make([]Sender, 0, len(s.participants))
	for id, p := range s.participants {
		if id == excluding {
			continue
		}
		targets = append(targets, p.conn)
	}
	return targets
}

// Sessions returns the number of live sessions.
func (r *Registry) Sessions() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Participants returns the participant count of the session.
func (r *Registry) Participants(code string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.sessions[code]; ok {
		return len(s.participants)
	}
	return 0
}
