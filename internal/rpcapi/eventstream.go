package rpcapi

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/yourorg/tilecore/internal/model"
)

// wsSendBuffer bounds how many undelivered events a slow websocket
// client can accumulate before the connection is dropped, so one stuck
// client can never back-pressure the notify.Hub's fan-out goroutines.
const wsSendBuffer = 64

// hostEvent is the envelope for every message emitted on the host event
// stream (spec.md section 6 "Host event emissions").
type hostEvent struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// wsClient is one connected websocket subscriber. It implements the
// notify optional interfaces covering the host emissions spec.md
// section 6 names: workspace_changed (NotifyWorkspaceActivated),
// workspace_windows_changed (NotifyWorkspaceWindowsChanged), and
// screen_focused (NotifyFocusChanged, since FocusState carries the
// focused screen id).
type wsClient struct {
	conn   *websocket.Conn
	send   chan hostEvent
	once   sync.Once
	closed chan struct{}
}

func newWSClient(conn *websocket.Conn) *wsClient {
	return &wsClient{
		conn:   conn,
		send:   make(chan hostEvent, wsSendBuffer),
		closed: make(chan struct{}),
	}
}

func (c *wsClient) enqueue(ev hostEvent) {
	select {
	case c.send <- ev:
	default:
		// Slow consumer: drop the event rather than block the fan-out
		// goroutine that called us from notify.Hub.
	}
}

func (c *wsClient) NotifyWorkspaceActivated(workspaceID model.WorkspaceID) {
	c.enqueue(hostEvent{Event: "workspace_changed", Data: map[string]interface{}{"workspace_id": workspaceID}})
}

func (c *wsClient) NotifyWorkspaceWindowsChanged(workspaceID model.WorkspaceID) {
	c.enqueue(hostEvent{Event: "workspace_windows_changed", Data: map[string]interface{}{"workspace_id": workspaceID}})
}

func (c *wsClient) NotifyFocusChanged(focus model.FocusState) {
	c.enqueue(hostEvent{Event: "screen_focused", Data: map[string]interface{}{
		"screen_id":    focus.ScreenID,
		"has_screen":   focus.HasScreen,
		"window_id":    focus.WindowID,
		"workspace_id": focus.WorkspaceID,
	}})
}

// run writes every queued event to the underlying connection until the
// connection errors or stop is called, and sends pings so
// intermediate proxies don't reap an idle connection.
func (c *wsClient) run() {
	defer c.stop()
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case ev, ok := <-c.send:
			if !ok {
				return
			}
			if err := c.conn.WriteJSON(ev); err != nil {
				return
			}
		case <-ticker.C:
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-c.closed:
			return
		}
	}
}

func (c *wsClient) stop() {
	c.once.Do(func() {
		close(c.closed)
		c.conn.Close()
	})
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.WithError(err).Warn("websocket upgrade failed")
		return
	}

	client := newWSClient(conn)
	_, unsubscribe := s.hub.Subscribe(client)
	defer unsubscribe()

	go client.run()

	// Drain and discard inbound frames (this stream is emit-only); exit
	// when the client disconnects or sends a close frame.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			client.stop()
			return
		}
	}
}
