package telephony

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Maximum message size allowed from peer. Media frames are small but
	// start events carry custom parameters.
	maxMessageSize = 64 * 1024
)

// Conn is the outbound half of one media-stream connection. The session
// loop is the only sender of media and marks; the mutex additionally covers
// the close message written by the read loop on teardown.
type Conn struct {
	ws *websocket.Conn
	mu sync.Mutex
}

// NewConn wraps an upgraded websocket connection.
func NewConn(ws *websocket.Conn) *Conn {
	return &Conn{ws: ws}
}

// SendMedia sends one outbound μ-law audio frame tagged with the stream
// identifier received at start.
func (c *Conn) SendMedia(streamID string, frame []byte) error {
	return c.writeJSON(newMediaMessage(streamID, frame))
}

// SendMark queues a named playback marker behind previously sent media.
func (c *Conn) SendMark(streamID string, name string) error {
	return c.writeJSON(newMarkMessage(streamID, name))
}

// SendClear discards outbound audio the transport has buffered but not yet
// played.
func (c *Conn) SendClear(streamID string) error {
	return c.writeJSON(newClearMessage(streamID))
}

func (c *Conn) writeJSON(msg wireEnvelope) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ws.SetWriteDeadline(time.Now().Add(writeWait))
	return c.ws.WriteMessage(websocket.TextMessage, payload)
}

// Close sends a close message and tears the connection down.
func (c *Conn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ws.SetWriteDeadline(time.Now().Add(writeWait))
	c.ws.WriteMessage(websocket.CloseMessage, []byte{})
	return c.ws.Close()
}
