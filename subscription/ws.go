package subscription

import (
	"sync"

	"github.com/gorilla/websocket"

	"github.com/shyptr/gqlrun/value"
)

// WSSink adapts a *websocket.Conn into a Sink, writing each delivered
// value as a JSON text frame. Writes are serialised with a mutex since
// gorilla/websocket forbids concurrent writers on one connection.
type WSSink struct {
	mu     sync.Mutex
	conn   *websocket.Conn
	closed bool
}

// NewWSSink wraps conn for delivery. The caller owns conn's read loop
// and lifecycle; Close only closes the connection once, so it is safe
// to call both from Registry eviction and from the caller's own
// disconnect handling.
func NewWSSink(conn *websocket.Conn) *WSSink {
	return &WSSink{conn: conn}
}

func (s *WSSink) Deliver(v value.Value) error {
	payload, err := v.MarshalJSON()
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn.WriteMessage(websocket.TextMessage, payload)
}

func (s *WSSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return s.conn.Close()
}
