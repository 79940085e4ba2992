package session

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/creastat/stream-gateway/pkg/logger"
)

const sendBufferSize = 64

// Conn wraps one WebSocket connection. All writes are funneled through a
// single writer pump because the underlying connection permits only one
// concurrent writer.
type Conn struct {
	ws        *websocket.Conn
	send      chan []byte
	done      chan struct{}
	closeOnce sync.Once
	log       logger.Logger
}

func newConn(ws *websocket.Conn, log logger.Logger) *Conn {
	return &Conn{
		ws:   ws,
		send: make(chan []byte, sendBufferSize),
		done: make(chan struct{}),
		log:  log,
	}
}

// Queue marshals and enqueues one outbound frame. A client too slow to
// drain its buffer is disconnected rather than allowed to block handlers.
func (c *Conn) Queue(msg any) {
	data, err := json.Marshal(msg)
	if err != nil {
		c.log.Error("failed to marshal outbound frame", "error", err)
		return
	}

	select {
	case c.send <- data:
	case <-c.done:
	default:
		c.log.Warn("send buffer full, dropping connection")
		c.close()
	}
}

func (c *Conn) writePump() {
	for {
		select {
		case data := <-c.send:
			if err := c.ws.WriteMessage(websocket.TextMessage, data); err != nil {
				c.close()
				return
			}
		case <-c.done:
			return
		}
	}
}

func (c *Conn) close() {
	c.closeOnce.Do(func() {
		close(c.done)
		c.ws.Close()
	})
}
