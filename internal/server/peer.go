package server

import (
	"errors"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/1ureka/propsync/internal/util"
)

// writeWait bounds a single frame write to a client.
const writeWait = 10 * time.Second

var errNotOpen = errors.New("websocket is not open")

// peer is one accepted client connection.
type peer struct {
	id string
	ws *websocket.Conn

	mu     sync.Mutex
	closed bool
}

func (p *peer) shortID() string { return p.id[:8] }

// write sends one text frame; writes are serialized per connection.
func (p *peer) write(data []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return errNotOpen
	}

	_ = p.ws.SetWriteDeadline(time.Now().Add(writeWait))
	if err := p.ws.WriteMessage(websocket.TextMessage, data); err != nil {
		return err
	}
	util.Stats.AddSent()
	return nil
}

func (p *peer) close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return
	}
	p.closed = true
	_ = p.ws.Close()
}
