package notify

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const writeTimeout = 10 * time.Second

// Envelope is the frame written to websocket listeners.
type Envelope struct {
	Topic string `json:"topic"`
	Event Event  `json:"event"`
}

// WebSocket pushes events as JSON frames over a single client connection.
type WebSocket struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

// DialWebSocket connects to url and returns a publisher bound to that connection.
func DialWebSocket(ctx context.Context, url string) (*WebSocket, error) {
	if url == "" {
		return nil, fmt.Errorf("websocket publisher requires a url")
	}
	dialer := websocket.Dialer{HandshakeTimeout: 10 * time.Second}
	conn, _, err := dialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", url, err)
	}
	return &WebSocket{conn: conn}, nil
}

func (w *WebSocket) Publish(ctx context.Context, topic string, event Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	deadline := time.Now().Add(writeTimeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	w.conn.SetWriteDeadline(deadline)
	return w.conn.WriteJSON(Envelope{Topic: topic, Event: event})
}

func (w *WebSocket) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	_ = w.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
	return w.conn.Close()
}
