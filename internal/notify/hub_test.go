package notify

import (
	"io"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourorg/tilecore/internal/model"
)

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

type recordingFocusSubscriber struct {
	mu   sync.Mutex
	last model.FocusState
	n    int
}

func (r *recordingFocusSubscriber) NotifyFocusChanged(focus model.FocusState) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.last = focus
	r.n++
}

type recordingVisibilitySubscriber struct {
	mu     sync.Mutex
	pid    int
	hidden bool
	n      int
}

func (r *recordingVisibilitySubscriber) NotifyAppVisibility(pid int, hidden bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pid = pid
	r.hidden = hidden
	r.n++
}

func waitForCount(t *testing.T, get func() int, want int) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for get() < want {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for count >= %d, got %d", want, get())
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestHubOnlyCallsSubscribersImplementingTheCapability(t *testing.T) {
	h := NewHub(testLogger())
	focusOnly := &recordingFocusSubscriber{}
	visOnly := &recordingVisibilitySubscriber{}
	h.Subscribe(focusOnly)
	h.Subscribe(visOnly)

	h.NotifyFocusChanged(model.FocusState{})
	waitForCount(t, func() int {
		focusOnly.mu.Lock()
		defer focusOnly.mu.Unlock()
		return focusOnly.n
	}, 1)

	visOnly.mu.Lock()
	if visOnly.n != 0 {
		t.Fatalf("visOnly.n = %d, want 0 (it doesn't implement FocusChangedSubscriber)", visOnly.n)
	}
	visOnly.mu.Unlock()

	h.NotifyAppVisibility(7, true)
	waitForCount(t, func() int {
		visOnly.mu.Lock()
		defer visOnly.mu.Unlock()
		return visOnly.n
	}, 1)

	visOnly.mu.Lock()
	if visOnly.pid != 7 || !visOnly.hidden {
		t.Fatalf("got pid=%d hidden=%v, want pid=7 hidden=true", visOnly.pid, visOnly.hidden)
	}
	visOnly.mu.Unlock()
}

func TestHubUnsubscribeStopsFurtherDelivery(t *testing.T) {
	h := NewHub(testLogger())
	sub := &recordingFocusSubscriber{}
	_, unsubscribe := h.Subscribe(sub)

	h.NotifyFocusChanged(model.FocusState{})
	waitForCount(t, func() int {
		sub.mu.Lock()
		defer sub.mu.Unlock()
		return sub.n
	}, 1)

	unsubscribe()
	h.NotifyFocusChanged(model.FocusState{})
	time.Sleep(50 * time.Millisecond)

	sub.mu.Lock()
	defer sub.mu.Unlock()
	if sub.n != 1 {
		t.Fatalf("n = %d, want 1 (no delivery after unsubscribe)", sub.n)
	}
}

type panickyFocusSubscriber struct{}

func (panickyFocusSubscriber) NotifyFocusChanged(model.FocusState) {
	panic("boom")
}

func TestHubSurvivesPanickingSubscriber(t *testing.T) {
	h := NewHub(testLogger())
	h.Subscribe(panickyFocusSubscriber{})
	good := &recordingFocusSubscriber{}
	h.Subscribe(good)

	h.NotifyFocusChanged(model.FocusState{})
	waitForCount(t, func() int {
		good.mu.Lock()
		defer good.mu.Unlock()
		return good.n
	}, 1)
}
