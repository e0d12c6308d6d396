package relay

import (
	"context"
	"net/http"

	conf "github.com/openjam/jamroom/pkg/config/relay"
	"github.com/openjam/jamroom/pkg/logger"
	"github.com/openjam/jamroom/pkg/monitoring"
	"github.com/openjam/jamroom/pkg/network/httpx"
	"github.com/openjam/jamroom/pkg/service"
)

// Relay bundles the websocket hub with its HTTP server and the
// optional monitoring service.
type Relay struct {
	conf     conf.Config
	log      *logger.Logger
	hub      *Hub
	services service.Group
}

func New(c conf.Config, log *logger.Logger) (*Relay, error) {
	r := &Relay{conf: c, log: log, hub: NewHub(c.Relay, log)}
	srv, err := NewHTTPServer(c, log, func(mux *http.ServeMux) {
		mux.HandleFunc("/ws", r.hub.HandleConnection)
	})
	if err != nil {
		return nil, err
	}
	r.services.Add(srv)
	r.services.AddIf(c.Relay.Monitoring.IsEnabled(),
		monitoring.New(c.Relay.Monitoring, "relay", log))
	return r, nil
}

func NewHTTPServer(c conf.Config, log *logger.Logger, fnMux func(mux *http.ServeMux)) (*httpx.Server, error) {
	return httpx.NewServer(
		c.Relay.Server.GetAddr(),
		func(*httpx.Server) http.Handler {
			h := http.NewServeMux()
			h.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusOK)
			})
			fnMux(h)
			return h
		},
		httpx.WithServerConfig(c.Relay.Server),
		httpx.WithLogger(log),
	)
}

func (r *Relay) Start() { r.services.Start() }

func (r *Relay) Shutdown(ctx context.Context) error { return r.services.Shutdown(ctx) }
