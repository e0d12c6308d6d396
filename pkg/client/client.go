package client

import (
	"net/url"
	"sync"

	"github.com/openjam/jamroom/pkg/api"
	"github.com/openjam/jamroom/pkg/logger"
	"github.com/openjam/jamroom/pkg/network/websocket"
)

// Handler consumes one inbound envelope.
type Handler func(e api.Envelope)

// Client keeps one persistent connection to the relay endpoint.
// Envelopes sent before the connection opens are queued and flushed
// entirely, in submission order, exactly once upon Connect. Inbound
// envelopes are dispatched synchronously to the registered handlers
// in registration order. There is no automatic reconnection.
type Client struct {
	addr url.URL
	log  *logger.Logger

	mu        sync.Mutex
	sock      *websocket.WS
	connected bool
	pending   [][]byte
	handlers  []Handler

	done     chan struct{}
	doneOnce sync.Once
}

func New(addr url.URL, log *logger.Logger) *Client {
	return &Client{addr: addr, log: log, done: make(chan struct{})}
}

// OnMessage registers a handler for inbound envelopes.
func (c *Client) OnMessage(fn Handler) {
	c.mu.Lock()
	c.handlers = append(c.handlers, fn)
	c.mu.Unlock()
}

// Connect dials the relay and flushes the outbound backlog.
func (c *Client) Connect() error {
	sock, err := websocket.NewClient(c.addr, c.log)
	if err != nil {
		return err
	}
	sock.SetMessageHandler(c.handleMessage)
	sockDone := sock.Listen()

	c.mu.Lock()
	c.sock = sock
	for _, data := range c.pending {
		if err := sock.Write(data); err != nil {
			c.log.Warn().Err(err).Msg("dropped a queued envelope")
		}
	}
	c.pending = nil
	c.connected = true
	c.mu.Unlock()

	go func() {
		<-sockDone
		c.mu.Lock()
		c.connected = false
		c.mu.Unlock()
		c.doneOnce.Do(func() { close(c.done) })
	}()
	return nil
}

// Send queues the envelope for delivery; before Connect it lands in
// the backlog and is not an error.
func (c *Client) Send(e api.Envelope) error {
	data, err := e.Encode()
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.connected {
		c.pending = append(c.pending, data)
		return nil
	}
	return c.sock.Write(data)
}

// Join composes the initial host or join envelope for a session.
func (c *Client) Join(gameCode string, id string, host bool) error {
	t := api.Join
	if host {
		t = api.Host
	}
	return c.Send(api.Envelope{T: t, Id: id, GameCode: gameCode})
}

// Done closes when the connection is gone, which is the only way
// connection loss surfaces to the application.
func (c *Client) Done() <-chan struct{} { return c.done }

func (c *Client) Close() {
	c.mu.Lock()
	sock := c.sock
	c.mu.Unlock()
	if sock != nil {
		sock.Close()
	}
}

func (c *Client) handleMessage(data []byte, err error) {
	if err != nil {
		return
	}
	e, err := api.Decode(data)
	if err != nil {
		c.log.Debug().Err(err).Msg("dropped unparseable envelope")
		return
	}
	c.mu.Lock()
	handlers := make([]Handler, len(c.handlers))
	copy(handlers, c.handlers)
	c.mu.Unlock()
	for _, fn := range handlers {
		fn(e)
	}
}
