package ws

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 5 * time.Second
	pongWait       = 30 * time.Second
	pingPeriod     = 10 * time.Second
	maxMessageSize = 65536
)

// Client wraps one gorilla connection. All writes go through the mutex:
// gorilla conns do not support concurrent writers.
type Client struct {
	id   string
	conn *websocket.Conn
	mu   sync.Mutex
}

func NewClient(id string, conn *websocket.Conn) *Client {
	conn.SetReadLimit(maxMessageSize)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	return &Client{id: id, conn: conn}
}

func (c *Client) ID() string { return c.id }

// Send safely writes JSON to the client's WebSocket.
func (c *Client) Send(v interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteJSON(v)
}

func (c *Client) Close() error {
	return c.conn.Close()
}

// ReadMessage blocks for the next inbound frame and refreshes the read
// deadline, keeping the liveness window sliding while traffic flows.
func (c *Client) ReadMessage() ([]byte, error) {
	_, data, err := c.conn.ReadMessage()
	if err != nil {
		return nil, err
	}
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	return data, nil
}

// Ping sends a control ping; the pong handler extends the read deadline.
// A peer that never answers times out of ReadMessage and is reaped through
// the normal disconnect path.
func (c *Client) Ping() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait))
}

// StartPing pings until done is closed or the peer stops responding.
func (c *Client) StartPing(done <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			if err := c.Ping(); err != nil {
				return
			}
		}
	}
}
