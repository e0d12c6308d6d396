package bot

import (
	"context"
	"math/rand"
	"net/url"
	"sync"
	"time"

	"github.com/gofrs/uuid"
	"github.com/openjam/jamroom/pkg/api"
	"github.com/openjam/jamroom/pkg/client"
	conf "github.com/openjam/jamroom/pkg/config/bot"
	"github.com/openjam/jamroom/pkg/instrument"
	"github.com/openjam/jamroom/pkg/logger"
	"github.com/openjam/jamroom/pkg/motion"
	"github.com/openjam/jamroom/pkg/session"
)

// Bot is a headless participant: it wanders the room on a fixed tick,
// claims the nearest free instrument and pokes at its notes. Useful
// for smoke-testing a relay and for populating rooms during load
// tests.
type Bot struct {
	conf   conf.Bot
	log    *logger.Logger
	client *client.Client

	id   string
	code string

	mu       sync.Mutex
	body     *motion.Body
	reporter *motion.Reporter
	rack     *instrument.Rack
	effects  instrument.Effects
	keys     *instrument.Keyboard
	heldNote int
	holdLeft int
	peers    map[string]*api.Position
	walk     walk
	rng      *rand.Rand
}

type walk struct {
	dirX, dirZ int
	left       int
}

func New(c conf.Bot, log *logger.Logger) (*Bot, error) {
	addr, err := url.Parse(c.Relay)
	if err != nil {
		return nil, err
	}
	code := c.GameCode
	if code == "" && c.Host {
		code = session.GenerateGameCode(session.CodeLength)
	}
	mc := c.Motion
	if mc == (motion.Config{}) {
		mc = motion.DefaultConfig()
	}
	b := &Bot{
		conf:     c,
		log:      log,
		client:   client.New(*addr, log),
		id:       uuid.Must(uuid.NewV4()).String(),
		code:     code,
		body:     motion.NewBody(mc),
		reporter: motion.NewReporter(c.SendInterval, c.SendEpsilon),
		rack:     instrument.StockRack(),
		peers:    make(map[string]*api.Position),
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	b.client.OnMessage(b.handle)
	return b, nil
}

func (b *Bot) Id() string       { return b.id }
func (b *Bot) GameCode() string { return b.code }

// Run joins the session and drives the tick loop until the context
// is canceled or the connection drops.
func (b *Bot) Run(ctx context.Context) error {
	// composed before the connection opens, flushed on connect
	if err := b.client.Join(b.code, b.id, b.conf.Host); err != nil {
		return err
	}
	if err := b.client.Connect(); err != nil {
		return err
	}
	b.log.Info().Str("game", b.code).Str("player", b.id).Msg("joined")

	ticker := time.NewTicker(b.conf.Tick)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			b.client.Close()
			<-b.client.Done()
			return nil
		case <-b.client.Done():
			b.log.Info().Msg("connection closed")
			return nil
		case now := <-ticker.C:
			b.tick(now)
		}
	}
}

func (b *Bot) tick(now time.Time) {
	b.mu.Lock()
	defer b.mu.Unlock()

	pos := b.body.Step(b.wander())
	if b.reporter.ShouldSend(now, pos) {
		_ = b.client.Send(api.Envelope{T: api.State, Id: b.id, GameCode: b.code, Position: &pos})
	}
	b.effects.Tick(now)

	if ins, ok := b.rack.LinkedBy(b.id); ok {
		if !ins.InRange(pos) {
			ins.Unlink()
			b.keys = nil
			b.holdLeft = 0
			b.log.Debug().Str("instrument", ins.Id()).Msg("wandered off, unlinked")
			return
		}
		b.play(ins, now)
		return
	}
	if ins, ok := b.rack.Nearest(pos); ok && ins.Link(b.id) {
		b.keys = instrument.NewKeyboard(ins.Mode())
		b.log.Info().Str("instrument", ins.Id()).Str("name", ins.Name()).Msg("linked")
	}
}

// play drives the linked instrument's keyboard: a pressed key is held
// for a few ticks and then released, and the note on events go out on
// the wire and spawn local effects.
func (b *Bot) play(ins *instrument.Instrument, now time.Time) {
	if b.holdLeft > 0 {
		b.holdLeft--
		if b.holdLeft == 0 {
			b.keys.Release(b.heldNote)
		}
		return
	}
	if b.rng.Intn(20) != 0 {
		return
	}
	note := instrument.Notes[b.rng.Intn(len(instrument.Notes))]
	for _, ev := range b.keys.Press(note.Id) {
		if ev.Kind != instrument.NoteOn {
			continue
		}
		b.effects.Spawn(ins.Id(), ev.NoteId, now)
		_ = b.client.Send(api.Envelope{
			T:            api.InstrumentNote,
			Id:           b.id,
			GameCode:     b.code,
			InstrumentId: ins.Id(),
			NoteId:       api.Note(ev.NoteId),
		})
	}
	b.heldNote = note.Id
	b.holdLeft = 2 + b.rng.Intn(8)
}

// wander keeps a heading for a while, then picks a new one.
func (b *Bot) wander() motion.Intent {
	if b.walk.left == 0 {
		b.walk.dirX = b.rng.Intn(3) - 1
		b.walk.dirZ = b.rng.Intn(3) - 1
		b.walk.left = 20 + b.rng.Intn(60)
	}
	b.walk.left--
	return motion.Intent{X: b.walk.dirX, Z: b.walk.dirZ, Jump: b.rng.Intn(40) == 0}
}

func (b *Bot) handle(e api.Envelope) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch e.T {
	case api.PlayerInfo:
		for _, p := range e.Players {
			b.peers[p.Id] = p.Position
		}
		b.log.Info().Int("players", len(e.Players)).Msg("room snapshot")
	case api.Join:
		b.peers[e.Id] = nil
		b.log.Info().Str("player", e.Id).Msg("peer joined")
	case api.State:
		b.peers[e.Id] = e.Position
	case api.Leave:
		delete(b.peers, e.Id)
		b.rack.UnlinkAll(e.Id)
		b.log.Info().Str("player", e.Id).Msg("peer left")
	case api.InstrumentNote:
		// playback only, never gated by local linkage belief and
		// never a claim on the sender's behalf
		if e.NoteId != nil {
			b.effects.Spawn(e.InstrumentId, *e.NoteId, time.Now())
		}
	}
}

// Peers returns the bot's current view of the other participants.
func (b *Bot) Peers() map[string]*api.Position {
	b.mu.Lock()
	defer b.mu.Unlock()
	peers := make(map[string]*api.Position, len(b.peers))
	for id, pos := range b.peers {
		peers[id] = pos
	}
	return peers
}
