package live

import (
	"net/http"

	"github.com/gorilla/websocket"
)

// Factory sets up a new session for an upgraded request and returns its
// render function. Returning nil rejects the connection.
type Factory func(s *Session, r *http.Request) RenderFunc

// Handler upgrades requests to websocket sessions. Each session sends its
// initial render right away, then serves events until the client goes away.
type Handler struct {
	factory  Factory
	config   *Config
	upgrader websocket.Upgrader
}

// NewHandler creates a Handler. A nil config selects DefaultConfig.
func NewHandler(factory Factory, config *Config) *Handler {
	config = config.withDefaults()
	return &Handler{
		factory: factory,
		config:  config,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  config.ReadBufferSize,
			WriteBufferSize: config.WriteBufferSize,
			CheckOrigin:     config.CheckOrigin,
		},
	}
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.config.Logger.Error("websocket upgrade failed", "error", err)
		return
	}

	cfg := *h.config
	cfg.Logger = h.config.Logger.With("remote", r.RemoteAddr)
	s := NewSession(conn, nil, &cfg)

	render := h.factory(s, r)
	if render == nil {
		cfg.Logger.Info("session rejected")
		s.sendError("P002", "session rejected")
		s.Close()
		return
	}
	s.SetRender(render)
	cfg.Logger.Info("session started")

	if err := s.Render(); err != nil {
		cfg.Logger.Error("initial render failed", "error", err)
		s.Close()
		return
	}

	go s.WriteLoop()
	s.ReadLoop()
}
