package websocket

import (
	"context"
	"sync"
	"time"

	ws "github.com/coder/websocket"
)

const (
	sendBufferSize = 16
	pingInterval   = 30 * time.Second
	writeTimeout   = 10 * time.Second
)

// Client is one open view. Views only listen: a data frame from the peer
// closes the connection.
type Client struct {
	hub  *Hub
	conn *ws.Conn
	send chan []byte

	// lagged is closed when a broadcast could not be queued. The view has
	// missed a change, so it is disconnected and refetches on reconnect.
	lagged  chan struct{}
	lagOnce sync.Once
}

func NewClient(hub *Hub, conn *ws.Conn) *Client {
	return &Client{
		hub:    hub,
		conn:   conn,
		send:   make(chan []byte, sendBufferSize),
		lagged: make(chan struct{}),
	}
}

func (c *Client) markLagged() {
	c.lagOnce.Do(func() { close(c.lagged) })
}

// Run serves the connection until the peer leaves, the view lags behind or
// ctx ends.
func (c *Client) Run(ctx context.Context) {
	c.hub.Register(c)
	defer c.hub.Unregister(c)

	c.serve(c.conn.CloseRead(ctx))
}

func (c *Client) serve(ctx context.Context) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case msg, ok := <-c.send:
			if !ok {
				c.conn.Close(ws.StatusGoingAway, "server shutting down")
				return
			}
			if err := c.write(ctx, msg); err != nil {
				return
			}
		case <-c.lagged:
			c.conn.Close(ws.StatusTryAgainLater, "missed updates, refetch")
			return
		case <-ticker.C:
			if err := c.conn.Ping(ctx); err != nil {
				return
			}
		case <-ctx.Done():
			return
		}
	}
}

func (c *Client) write(ctx context.Context, msg []byte) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	return c.conn.Write(ctx, ws.MessageText, msg)
}
