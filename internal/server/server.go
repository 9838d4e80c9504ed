// Package server hosts the signaling endpoint on the device side. Every
// connected client receives the current property snapshot, property updates
// are relayed between clients, and inbound messages are dispatched by kind to
// a single registered handler each.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/cors"

	"github.com/1ureka/propsync/internal/protocol"
	"github.com/1ureka/propsync/internal/signaling"
	"github.com/1ureka/propsync/internal/util"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Handler receives a decoded message and the id of the connection it came
// from.
type Handler func(connID string, msg *protocol.Message)

// Server is the WebSocket host for controller and device clients.
type Server struct {
	handler http.Handler

	mu       sync.RWMutex
	conns    map[string]*peer
	handlers map[protocol.Kind]Handler
	props    map[string]protocol.Value

	dispatchMu sync.Mutex

	httpSrv *http.Server
}

// New creates a server with its routes installed. Call Start to listen, or
// mount Handler on an existing http.Server.
func New() *Server {
	s := &Server{
		conns:    make(map[string]*peer),
		handlers: make(map[protocol.Kind]Handler),
		props:    make(map[string]protocol.Value),
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.GET(signaling.EndpointPath, s.handleWS)
	engine.GET("/properties", s.handleProperties)

	s.handler = cors.Default().Handler(engine)
	return s
}

// Handler returns the HTTP handler serving the endpoint.
func (s *Server) Handler() http.Handler { return s.handler }

// Handle registers fn for messages of kind, replacing any previous handler.
// A nil fn unregisters.
func (s *Server) Handle(kind protocol.Kind, fn Handler) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if fn == nil {
		delete(s.handlers, kind)
		return
	}
	s.handlers[kind] = fn
}

// Start listens on addr (":0" picks a free port) and serves in the
// background. It returns the bound address.
func (s *Server) Start(addr string) (net.Addr, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to start WS server: %w", err)
	}

	s.httpSrv = &http.Server{Handler: s.handler}
	go func() {
		if err := s.httpSrv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			util.LogError("WS server stopped: %v", err)
		}
	}()

	return listener.Addr(), nil
}

// Close stops listening and drops every connection.
func (s *Server) Close() error {
	var err error
	if s.httpSrv != nil {
		err = s.httpSrv.Shutdown(context.Background())
	}

	s.mu.Lock()
	conns := make([]*peer, 0, len(s.conns))
	for _, p := range s.conns {
		conns = append(conns, p)
	}
	s.mu.Unlock()

	for _, p := range conns {
		p.close()
	}
	return err
}

// ConnectionCount returns the number of registered connections.
func (s *Server) ConnectionCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.conns)
}

// Properties returns a copy of the property snapshot.
func (s *Server) Properties() map[string]protocol.Value {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]protocol.Value, len(s.props))
	for k, v := range s.props {
		out[k] = v
	}
	return out
}

// SendProperty records a property value and broadcasts it to every client.
func (s *Server) SendProperty(name string, value protocol.Value) error {
	if name == "" || value == nil {
		return fmt.Errorf("%w: %q", signaling.ErrInvalidProperty, name)
	}

	s.mu.Lock()
	s.props[name] = value
	s.mu.Unlock()

	return s.Broadcast(protocol.Property(name, value))
}

// Broadcast writes msg to every open connection.
func (s *Server) Broadcast(msg *protocol.Message) error {
	return s.broadcastExcept("", msg)
}

func (s *Server) broadcastExcept(skipID string, msg *protocol.Message) error {
	data, err := protocol.Encode(msg)
	if err != nil {
		return err
	}

	s.mu.RLock()
	targets := make([]*peer, 0, len(s.conns))
	for id, p := range s.conns {
		if id != skipID {
			targets = append(targets, p)
		}
	}
	s.mu.RUnlock()

	for _, p := range targets {
		if err := p.write(data); err != nil {
			util.LogWarning("[%s] failed to send %q: %v", p.shortID(), msg.Kind, err)
		}
	}
	return nil
}

// ---------------------------------------------------------------------------
// HTTP handlers
// ---------------------------------------------------------------------------

func (s *Server) handleProperties(c *gin.Context) {
	c.JSON(http.StatusOK, s.Properties())
}

func (s *Server) handleWS(c *gin.Context) {
	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		util.LogWarning("websocket upgrade failed: %v", err)
		return
	}

	p := &peer{id: uuid.NewString(), ws: ws}
	util.LogInfo("[%s] new connection from %s", p.shortID(), c.ClientIP())

	s.register(p)
	defer s.unregister(p)

	s.sendSnapshot(p)

	for {
		_, data, err := ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				util.LogWarning("[%s] read error: %v", p.shortID(), err)
			}
			return
		}
		util.Stats.AddReceived()
		s.handleMessage(p.id, data)
	}
}

func (s *Server) register(p *peer) {
	s.mu.Lock()
	s.conns[p.id] = p
	s.mu.Unlock()
}

func (s *Server) unregister(p *peer) {
	s.mu.Lock()
	delete(s.conns, p.id)
	s.mu.Unlock()

	p.close()
	util.LogInfo("[%s] connection closed", p.shortID())
}

// sendSnapshot replays the known properties to a newly connected client.
func (s *Server) sendSnapshot(p *peer) {
	for name, value := range s.Properties() {
		data, err := protocol.Encode(protocol.Property(name, value))
		if err != nil {
			continue
		}
		if err := p.write(data); err != nil {
			util.LogWarning("[%s] failed to send snapshot: %v", p.shortID(), err)
			return
		}
	}
}

// handleMessage decodes one frame from connID and routes it.
func (s *Server) handleMessage(connID string, data []byte) {
	msg, err := protocol.Decode(data)
	if err != nil {
		if errors.Is(err, protocol.ErrMissingKind) {
			util.Stats.AddDropped()
			return
		}
		util.Stats.AddMalformed()
		util.LogWarning("error parsing message: %v", err)
		return
	}

	if msg.Kind == protocol.KindProperty && msg.Name != "" && msg.Value != nil {
		s.mu.Lock()
		s.props[msg.Name] = msg.Value
		s.mu.Unlock()

		if err := s.broadcastExcept(connID, msg); err != nil {
			util.LogWarning("failed to relay property %q: %v", msg.Name, err)
		}
	}

	s.mu.RLock()
	fn := s.handlers[msg.Kind]
	s.mu.RUnlock()

	if fn == nil {
		if msg.Kind != protocol.KindProperty {
			util.Stats.AddDropped()
			util.LogDebug("no handler for %q message", msg.Kind)
		}
		return
	}

	s.dispatchMu.Lock()
	defer s.dispatchMu.Unlock()
	fn(connID, msg)
}
