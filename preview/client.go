// Copyright (c) 2026, The Quadsculpt Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package preview

import (
	"log/slog"

	"cogentcore.org/core/base/iox/jsonx"
	"github.com/gorilla/websocket"
	"github.com/quadsculpt/quadsculpt/bake"
)

// Client is a preview viewer connected to a [Hub].
// You can use [Connect] to create a new Client.
type Client struct {

	// conn is the underlying WebSocket connection.
	conn *websocket.Conn

	// done is closed when the connection is closed.
	done chan struct{}
}

// Connect connects to the hub at the given ws:// URL.
func Connect(url string) (*Client, error) {
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		return nil, err
	}
	return &Client{conn: conn, done: make(chan struct{})}, nil
}

// OnMesh sets a function to be called with every mesh received, until
// the connection closes. Messages that do not decode are logged and
// skipped. It can only be called once.
func (c *Client) OnMesh(f func(b *bake.Buffers)) {
	go func() {
		defer func() {
			c.conn.Close()
			close(c.done)
		}()
		for {
			_, msg, err := c.conn.ReadMessage()
			if err != nil {
				if !websocket.IsCloseError(err, websocket.CloseNormalClosure) {
					slog.Debug("preview client read", "err", err)
				}
				return
			}
			b := &bake.Buffers{}
			if err := jsonx.ReadBytes(b, msg); err != nil {
				slog.Error("preview client: bad mesh message", "err", err)
				continue
			}
			f(b)
		}
	}()
}

// Done returns a channel that is closed once the connection is closed
// and [Client.OnMesh] has returned.
func (c *Client) Done() <-chan struct{} {
	return c.done
}

// Close cleanly closes the connection. The hub then closes its side,
// which ends [Client.OnMesh].
func (c *Client) Close() error {
	return c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}
