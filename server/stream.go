package server

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 30 * time.Second
	sendBuffer = 64
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Event is one message on the /ws stream.
type Event struct {
	Type string `json:"type"` // price, quotes or notification
	Data any    `json:"data"`
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Stream fans events out to websocket clients. Clients that fall behind are
// dropped.
type Stream struct {
	mu      sync.Mutex
	clients map[*client]struct{}
	log     *zap.Logger
}

func NewStream(log *zap.Logger) *Stream {
	if log == nil {
		log = zap.NewNop()
	}
	return &Stream{clients: make(map[*client]struct{}), log: log}
}

func (st *Stream) Broadcast(kind string, data any) {
	msg, err := json.Marshal(Event{Type: kind, Data: data})
	if err != nil {
		st.log.Warn("marshal stream event", zap.String("type", kind), zap.Error(err))
		return
	}

	st.mu.Lock()
	defer st.mu.Unlock()
	for c := range st.clients {
		select {
		case c.send <- msg:
		default:
			st.removeLocked(c)
		}
	}
}

func (st *Stream) Clients() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.clients)
}

// Close disconnects every client.
func (st *Stream) Close() {
	st.mu.Lock()
	defer st.mu.Unlock()
	for c := range st.clients {
		st.removeLocked(c)
	}
}

func (st *Stream) remove(c *client) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.removeLocked(c)
}

func (st *Stream) removeLocked(c *client) {
	if _, ok := st.clients[c]; ok {
		delete(st.clients, c)
		close(c.send)
	}
}

// ServeWS upgrades the request and registers the connection.
func (st *Stream) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		st.log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	c := &client{conn: conn, send: make(chan []byte, sendBuffer)}
	st.mu.Lock()
	st.clients[c] = struct{}{}
	n := len(st.clients)
	st.mu.Unlock()
	st.log.Debug("websocket client connected", zap.Int("clients", n))

	go st.writePump(c)
	go st.readPump(c)
}

func (st *Stream) writePump(c *client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump only watches for the peer going away.
func (st *Stream) readPump(c *client) {
	defer func() {
		st.remove(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(512)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}
