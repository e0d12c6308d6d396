package relay

import (
	"net/http"
	"sync"

	"github.com/openjam/jamroom/pkg/api"
	conf "github.com/openjam/jamroom/pkg/config/relay"
	"github.com/openjam/jamroom/pkg/logger"
	"github.com/openjam/jamroom/pkg/network/websocket"
)

// Hub terminates websocket connections, applies the protocol rules
// and fans envelopes out to the other participants of a session.
type Hub struct {
	conf     conf.Relay
	registry *Registry
	log      *logger.Logger
}

func NewHub(c conf.Relay, log *logger.Logger) *Hub {
	return &Hub{conf: c, registry: NewRegistry(c.MaxSessionSize), log: log}
}

func (h *Hub) Registry() *Registry { return h.registry }

// HandleConnection upgrades one websocket connection and serves it
// until close. Blocking; the leave cleanup runs exactly once after
// the connection is fully torn down, whatever caused the close.
func (h *Hub) HandleConnection(w http.ResponseWriter, r *http.Request) {
	sock, err := websocket.NewServer(w, r, h.conf.SendBuffer, h.log)
	if err != nil {
		h.log.Error().Err(err).Msg("couldn't upgrade the connection")
		return
	}
	c := &connection{hub: h, sock: sock, log: h.log}
	sock.SetMessageHandler(c.handleMessage)
	<-sock.Listen()
	c.leave()
}

// connection carries the per-connection protocol state:
// unjoined until the first valid host/join envelope, which pins the
// session code and participant id for the connection's lifetime.
type connection struct {
	hub  *Hub
	sock *websocket.WS
	log  *logger.Logger

	mu     sync.Mutex
	joined bool
	code   string
	id     string
}

func (c *connection) handleMessage(data []byte, err error) {
	if err != nil {
		return
	}
	e, err := api.Decode(data)
	if err != nil {
		metricMalformed.Inc()
		c.log.Debug().Err(err).Msg("dropped unparseable envelope")
		return
	}
	switch e.T {
	case api.Host, api.Join:
		c.join(&e)
	case api.State:
		c.state(&e)
	case api.InstrumentNote:
		c.note(&e)
	default:
		// leave and player_info never come from clients
		metricMalformed.Inc()
		c.log.Debug().Str("type", string(e.T)).Msg("dropped unexpected envelope")
	}
}

func (c *connection) join(e *api.Envelope) {
	if !e.Valid() {
		metricMalformed.Inc()
		return
	}
	c.mu.Lock()
	if c.joined {
		// first host/join wins for the lifetime of the connection
		c.mu.Unlock()
		return
	}
	if !c.hub.registry.Register(e.GameCode, e.Id, c.sock) {
		c.mu.Unlock()
		c.log.Warn().Str("game", e.GameCode).Str("player", e.Id).Msg("session is full, closing")
		c.sock.Close()
		return
	}
	c.joined = true
	c.code = e.GameCode
	c.id = e.Id
	c.mu.Unlock()

	metricEnvelopes.WithLabelValues(string(e.T)).Inc()
	metricParticipants.Inc()
	metricSessions.Set(float64(c.hub.registry.Sessions()))
	c.log.Info().Str("game", c.code).Str("player", c.id).Msgf("%s", e.T)

	// the joiner alone gets the snapshot of everyone else
	info := api.Envelope{
		T:        api.PlayerInfo,
		Id:       c.id,
		GameCode: c.code,
		Players:  c.hub.registry.Snapshot(c.code, c.id),
	}
	if data, err := info.Encode(); err == nil {
		if err := c.sock.Write(data); err != nil {
			metricDroppedSends.Inc()
		}
	}
	c.hub.fanout(c.code, c.id, api.Envelope{T: api.Join, Id: c.id, GameCode: c.code})
}

func (c *connection) state(e *api.Envelope) {
	code, id, ok := c.session(e)
	if !ok || e.Position == nil {
		return
	}
	metricEnvelopes.WithLabelValues(string(api.State)).Inc()
	c.hub.registry.UpdatePosition(code, id, *e.Position)
	c.hub.fanout(code, id, api.Envelope{T: api.State, Id: id, GameCode: code, Position: e.Position})
}

func (c *connection) note(e *api.Envelope) {
	code, id, ok := c.session(e)
	if !ok || !e.Valid() {
		return
	}
	metricEnvelopes.WithLabelValues(string(api.InstrumentNote)).Inc()
	c.log.Debug().Str("game", code).Str("player", id).
		Str("instrument", e.InstrumentId).Int("note", *e.NoteId).Msg("note")
	c.hub.fanout(code, id, api.Envelope{
		T:            api.InstrumentNote,
		Id:           id,
		GameCode:     code,
		InstrumentId: e.InstrumentId,
		NoteId:       e.NoteId,
	})
}

// session returns the pinned session of a joined connection. Envelopes
// sent before joining, or referencing some other game code, are
// protocol-sequence violations and make ok false.
func (c *connection) session(e *api.Envelope) (code string, id string, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.joined || e.GameCode != c.code {
		return "", "", false
	}
	return c.code, c.id, true
}

// leave removes the participant and notifies the remaining ones.
func (c *connection) leave() {
	c.mu.Lock()
	if !c.joined {
		c.mu.Unlock()
		return
	}
	code, id := c.code, c.id
	c.joined = false
	c.mu.Unlock()

	c.hub.registry.Remove(code, id)
	metricParticipants.Dec()
	metricSessions.Set(float64(c.hub.registry.Sessions()))
	c.log.Info().Str("game", code).Str("player", id).Msg("leave")
	c.hub.fanout(code, id, api.Envelope{T: api.Leave, Id: id, GameCode: code})
}

// fanout sends a copy of the envelope to every other participant of
// the session. Each target send is independent: a slow or dead peer
// is skipped, never stalling the loop.
func (h *Hub) fanout(code string, excluding string, e api.Envelope) {
	data, err := e.Encode()
	if err != nil {
		h.log.Error().Err(err).Msg("fan-out encode")
		return
	}
	for _, target := range h.registry.BroadcastTargets(code, excluding) {
		if err := target.Write(data); err != nil {
			metricDroppedSends.Inc()
			h.log.Debug().Err(err).Str("game", code).Msg("dropped fan-out send")
		}
	}
}
