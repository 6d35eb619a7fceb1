// Copyright (c) 2026, The Quadsculpt Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package preview pushes baked meshes to browser viewers over
// WebSockets, and rebuilds them when their source files change.
package preview

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"cogentcore.org/core/base/errors"
	"cogentcore.org/core/base/iox/jsonx"
	"github.com/gorilla/websocket"
	"github.com/quadsculpt/quadsculpt/bake"
)

// clientBuffer is the number of messages queued per client before it
// is considered too slow and dropped.
const clientBuffer = 4

// writeWait is the time allowed to write one message to a client.
const writeWait = 10 * time.Second

// Hub is an [http.Handler] that upgrades requests to WebSocket
// connections and broadcasts every published mesh to all of them.
// New clients are sent the latest mesh as soon as they connect.
type Hub struct {

	// Upgrader upgrades incoming requests.
	Upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*client]struct{}
	latest  []byte
	closed  bool
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// NewHub returns a new hub with no clients.
func NewHub() *Hub {
	return &Hub{clients: map[*client]struct{}{}}
}

// ServeHTTP serves one WebSocket client until it disconnects.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.Upgrader.Upgrade(w, r, nil)
	if errors.Log(err) != nil {
		return
	}
	c := &client{conn: conn, send: make(chan []byte, clientBuffer)}
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		conn.Close()
		return
	}
	h.clients[c] = struct{}{}
	if h.latest != nil {
		c.send <- h.latest
	}
	n := len(h.clients)
	h.mu.Unlock()
	slog.Info("preview client connected", "addr", r.RemoteAddr, "clients", n)

	go c.write()
	// clients only listen; reading detects when they go away
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
	h.remove(c)
	slog.Info("preview client disconnected", "addr", r.RemoteAddr)
}

// write sends queued messages until the send channel is closed.
func (c *client) write() {
	defer c.conn.Close()
	for msg := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			slog.Debug("preview write failed", "err", err)
			return
		}
	}
	c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}

// remove unregisters the client and stops its writer. It must not be
// called with mu held.
func (h *Hub) remove(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(c)
}

func (h *Hub) removeLocked(c *client) {
	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	close(c.send)
}

// Publish encodes the buffers as JSON, records them as the latest mesh
// and sends them to every client. Clients whose queue is full are
// dropped.
func (h *Hub) Publish(b *bake.Buffers) error {
	msg, err := jsonx.WriteBytes(b)
	if err != nil {
		return err
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.latest = msg
	for c := range h.clients {
		select {
		case c.send <- msg:
		default:
			slog.Warn("dropping slow preview client", "addr", c.conn.RemoteAddr())
			h.removeLocked(c)
		}
	}
	return nil
}

// NumClients returns the number of connected clients.
func (h *Hub) NumClients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Close disconnects all clients and refuses new ones.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for c := range h.clients {
		h.removeLocked(c)
	}
}
