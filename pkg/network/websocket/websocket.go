package websocket

import (
	"errors"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/openjam/jamroom/pkg/logger"
)

const (
	maxMessageSize = 10 * 1024
	pingTime       = pongTime * 9 / 10
	pongTime       = 60 * time.Second
	writeWait      = 10 * time.Second

	defaultQueueSize = 64
)

var (
	// ErrClosed is returned on writes to an already closed connection.
	ErrClosed = errors.New("connection closed")
	// ErrFullBuffer is returned when the peer doesn't drain its
	// outbound queue fast enough; the message is dropped.
	ErrFullBuffer = errors.New("send buffer is full")
)

type MessageHandler func(message []byte, err error)

// WS wraps a gorilla websocket connection with one reader and one
// writer pump, serializing all reads and writes. Outgoing messages
// pass a bounded queue so a stalled peer never blocks the caller.
type WS struct {
	conn      *websocket.Conn
	send      chan []byte
	onMessage MessageHandler
	log       *logger.Logger

	// server connections ping their peers to reap dead ones
	pingPong bool

	mu     sync.Mutex
	closed bool

	Done chan struct{}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	WriteBufferPool: &sync.Pool{},
	// the relay has no origin policy, sessions are namespaced by game code
	CheckOrigin: func(r *http.Request) bool { return true },
}

// NewServer upgrades an HTTP request to a websocket connection.
// The queue param bounds the outbound buffer, 0 picks the default.
func NewServer(w http.ResponseWriter, r *http.Request, queue int, log *logger.Logger) (*WS, error) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return nil, err
	}
	return newSocket(conn, queue, true, log), nil
}

func NewClient(address url.URL, log *logger.Logger) (*WS, error) {
	conn, _, err := websocket.DefaultDialer.Dial(address.String(), nil)
	if err != nil {
		return nil, err
	}
	return newSocket(conn, 0, false, log), nil
}

func newSocket(conn *websocket.Conn, queue int, pingPong bool, log *logger.Logger) *WS {
	if queue <= 0 {
		queue = defaultQueueSize
	}
	return &WS{
		conn:     conn,
		send:     make(chan []byte, queue),
		pingPong: pingPong,
		log:      log,
		Done:     make(chan struct{}),
	}
}

func (ws *WS) SetMessageHandler(fn MessageHandler) { ws.onMessage = fn }

// Listen starts both pumps and returns the Done channel which closes
// after the connection is fully torn down.
func (ws *WS) Listen() chan struct{} {
	go func() {
		var shutdown sync.WaitGroup
		shutdown.Add(2)
		go func() { defer shutdown.Done(); ws.writer() }()
		go func() { defer shutdown.Done(); ws.reader() }()
		shutdown.Wait()
		close(ws.Done)
	}()
	return ws.Done
}

// Write queues a message for delivery. It never blocks: a closed
// connection returns ErrClosed and a full queue ErrFullBuffer.
func (ws *WS) Write(data []byte) error {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	if ws.closed {
		return ErrClosed
	}
	select {
	case ws.send <- data:
		return nil
	default:
		return ErrFullBuffer
	}
}

// Close starts a graceful shutdown of the connection.
func (ws *WS) Close() {
	deadline := time.Now().Add(writeWait)
	_ = ws.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), deadline)
	_ = ws.conn.Close()
}

// reader pumps messages from the websocket connection to the handler.
func (ws *WS) reader() {
	defer ws.closeSend()
	ws.conn.SetReadLimit(maxMessageSize)
	if ws.pingPong {
		_ = ws.conn.SetReadDeadline(time.Now().Add(pongTime))
		ws.conn.SetPongHandler(func(string) error {
			return ws.conn.SetReadDeadline(time.Now().Add(pongTime))
		})
	}
	for {
		_, message, err := ws.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				ws.log.Debug().Err(err).Msg("read")
			}
			return
		}
		if ws.onMessage != nil {
			ws.onMessage(message, nil)
		}
	}
}

// writer pumps messages from the send queue to the websocket connection.
func (ws *WS) writer() {
	var ping <-chan time.Time
	if ws.pingPong {
		ticker := time.NewTicker(pingTime)
		defer ticker.Stop()
		ping = ticker.C
	}
	// closing the raw conn unblocks the reader as well
	defer func() { _ = ws.conn.Close() }()
	for {
		select {
		case message, ok := <-ws.send:
			if !ok {
				_ = ws.write(websocket.CloseMessage, []byte{})
				return
			}
			if err := ws.write(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ping:
			if err := ws.write(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (ws *WS) write(t int, message []byte) error {
	if err := ws.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return ws.conn.WriteMessage(t, message)
}

func (ws *WS) closeSend() {
	ws.mu.Lock()
	if !ws.closed {
		ws.closed = true
		close(ws.send)
	}
	ws.mu.Unlock()
}
