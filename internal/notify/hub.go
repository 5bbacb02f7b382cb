// Package notify implements the Notification Fan-out (spec.md section
// 9 "Polymorphic subscribers"): a capability set of five independent
// notification methods, broadcast to whichever registered subscribers
// implement the matching optional interface. A subscriber that only
// cares about focus changes never has to implement the other four
// methods; the Hub itself always implements the full set, so it slots
// in directly wherever an actor.Notifier is expected.
package notify

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/yourorg/tilecore/internal/model"
)

// LayoutChangedSubscriber receives layout recomputation notifications.
type LayoutChangedSubscriber interface {
	NotifyLayoutChanged(workspaceID model.WorkspaceID, urgent bool)
}

// FocusChangedSubscriber receives focus-state notifications.
type FocusChangedSubscriber interface {
	NotifyFocusChanged(focus model.FocusState)
}

// WorkspaceWindowsChangedSubscriber receives window-membership
// notifications for a workspace.
type WorkspaceWindowsChangedSubscriber interface {
	NotifyWorkspaceWindowsChanged(workspaceID model.WorkspaceID)
}

// WorkspaceActivatedSubscriber receives workspace-switch notifications.
type WorkspaceActivatedSubscriber interface {
	NotifyWorkspaceActivated(workspaceID model.WorkspaceID)
}

// AppVisibilitySubscriber receives app hide/unhide intents (spec.md
// section 4.4 "App visibility sync").
type AppVisibilitySubscriber interface {
	NotifyAppVisibility(pid int, hidden bool)
}

// Hub fans every actor notification out to its registered subscribers.
// It implements actor.Notifier in full, even though each individual
// subscriber typically implements only a subset of the capability set.
type Hub struct {
	logger *logrus.Logger
	tracer trace.Tracer

	mu          sync.RWMutex
	subscribers map[string]interface{}
}

// NewHub constructs an empty Hub.
func NewHub(logger *logrus.Logger) *Hub {
	return &Hub{
		logger:      logger,
		tracer:      otel.Tracer("tilecore/notify"),
		subscribers: make(map[string]interface{}),
	}
}

// Subscribe registers sub under a new id and returns an unsubscribe
// closure. sub need only implement the optional interfaces it cares
// about; methods it doesn't implement are simply never called.
func (h *Hub) Subscribe(sub interface{}) (id string, unsubscribe func()) {
	id = uuid.New().String()

	h.mu.Lock()
	h.subscribers[id] = sub
	h.mu.Unlock()

	h.logger.WithField("subscriber_id", id).Debug("notify subscriber registered")

	return id, func() { h.Unsubscribe(id) }
}

// Unsubscribe removes a previously registered subscriber. Unsubscribing
// an id that was never registered, or was already removed, is a no-op.
func (h *Hub) Unsubscribe(id string) {
	h.mu.Lock()
	delete(h.subscribers, id)
	h.mu.Unlock()
}

func (h *Hub) snapshot() []interface{} {
	h.mu.RLock()
	defer h.mu.RUnlock()

	out := make([]interface{}, 0, len(h.subscribers))
	for _, s := range h.subscribers {
		out = append(out, s)
	}
	return out
}

// fanout spawns one guarded goroutine per subscriber that implements
// the capability being broadcast, grounded on
// pkg/systemintegration/hub.go's PublishEvent (a goroutine per event
// handler, with per-call error/panic logging rather than letting one
// slow or failing subscriber block or take down the rest).
func fanout[S any](h *Hub, method string, call func(S)) {
	_, span := h.tracer.Start(context.Background(), "notify.Hub."+method)
	defer span.End()
	span.SetAttributes(attribute.String("notify.method", method))

	for _, s := range h.snapshot() {
		sub, ok := s.(S)
		if !ok {
			continue
		}
		go func(sub S) {
			defer func() {
				if r := recover(); r != nil {
					h.logger.WithField("method", method).
						WithField("panic", fmt.Sprintf("%v", r)).
						Error("notify subscriber panicked")
				}
			}()
			call(sub)
		}(sub)
	}
}

func (h *Hub) NotifyLayoutChanged(workspaceID model.WorkspaceID, urgent bool) {
	fanout(h, "NotifyLayoutChanged", func(s LayoutChangedSubscriber) {
		s.NotifyLayoutChanged(workspaceID, urgent)
	})
}

func (h *Hub) NotifyFocusChanged(focus model.FocusState) {
	fanout(h, "NotifyFocusChanged", func(s FocusChangedSubscriber) {
		s.NotifyFocusChanged(focus)
	})
}

func (h *Hub) NotifyWorkspaceWindowsChanged(workspaceID model.WorkspaceID) {
	fanout(h, "NotifyWorkspaceWindowsChanged", func(s WorkspaceWindowsChangedSubscriber) {
		s.NotifyWorkspaceWindowsChanged(workspaceID)
	})
}

func (h *Hub) NotifyWorkspaceActivated(workspaceID model.WorkspaceID) {
	fanout(h, "NotifyWorkspaceActivated", func(s WorkspaceActivatedSubscriber) {
		s.NotifyWorkspaceActivated(workspaceID)
	})
}

func (h *Hub) NotifyAppVisibility(pid int, hidden bool) {
	fanout(h, "NotifyAppVisibility", func(s AppVisibilitySubscriber) {
		s.NotifyAppVisibility(pid, hidden)
	})
}
