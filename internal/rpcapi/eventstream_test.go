package rpcapi

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func TestEventStreamDeliversWorkspaceChanged(t *testing.T) {
	s, wsID := newTestServer(t)
	srv := httptest.NewServer(s.Router())
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/v1/events"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	// Give the server goroutine time to register the subscription
	// before the command fires, since Subscribe happens on connection
	// accept and the event races the handler loop otherwise.
	time.Sleep(50 * time.Millisecond)

	if err := s.handle.SwitchWorkspace("main"); err != nil {
		t.Fatalf("SwitchWorkspace: %v", err)
	}

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var ev hostEvent
	if err := conn.ReadJSON(&ev); err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	if ev.Event != "workspace_changed" {
		t.Fatalf("event = %q, want workspace_changed", ev.Event)
	}
	data, ok := ev.Data.(map[string]interface{})
	if !ok || data["workspace_id"] != wsID.String() {
		t.Fatalf("data = %+v, want workspace_id %s", ev.Data, wsID)
	}
}
