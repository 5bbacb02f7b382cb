package platform_test

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/yourorg/tilecore/internal/actor"
	"github.com/yourorg/tilecore/internal/config"
	"github.com/yourorg/tilecore/internal/events"
	"github.com/yourorg/tilecore/internal/geometry"
	"github.com/yourorg/tilecore/internal/model"
	"github.com/yourorg/tilecore/internal/notify"
	"github.com/yourorg/tilecore/internal/platform"
)

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// TestProcessorBridgeForwardsWindowCreated wires a NullAdapter straight
// to a real actor through ProcessorBridge and a real events.Processor,
// the same path cmd/aios-tilingd assembles in production, and checks
// that a seeded window observation ends up as a tracked window in the
// store.
func TestProcessorBridgeForwardsWindowCreated(t *testing.T) {
	hub := notify.NewHub(testLogger())
	store := model.NewStore()
	screenID := model.ScreenID(1)
	store.UpsertScreen(model.Screen{
		ID:           screenID,
		Name:         "main",
		Frame:        geometry.NewRect(0, 0, 1920, 1080),
		VisibleFrame: geometry.NewRect(0, 0, 1920, 1080),
		IsMain:       true,
	})

	cfg := &config.Config{}
	cfg.Tiling.Master.Ratio = 60

	a := actor.New(store, cfg, testLogger(), hub)
	handle := a.Spawn(context.Background())
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = handle.Shutdown(ctx)
	})

	adapter := platform.NewNullAdapter()
	proc := events.New(handle, adapter.HandleCache(), testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	bridge := platform.NewProcessorBridge(ctx, proc)
	require.NoError(t, adapter.SubscribeWindowEvents(ctx, bridge))

	adapter.SeedWindow(screenID, platform.WindowObservation{
		WindowID: 42,
		PID:      100,
		AppID:    "com.test.app",
		AppName:  "Test",
		Title:    "Window",
		Frame:    geometry.NewRect(0, 0, 800, 600),
	})

	queryCtx, queryCancel := context.WithTimeout(context.Background(), time.Second)
	defer queryCancel()
	has, err := handle.HasWindow(queryCtx, 42)
	require.NoError(t, err)
	require.True(t, has, "window created through the bridge was not tracked by the actor")
}

// TestProcessorBridgeInfersDestroyOnAppTermination exercises the
// destroy-inference path (spec.md §4.2 duty 4) end to end: terminating
// the owning app should remove the window from the store even though no
// explicit OnWindowDestroyed was ever delivered.
func TestProcessorBridgeInfersDestroyOnAppTermination(t *testing.T) {
	hub := notify.NewHub(testLogger())
	store := model.NewStore()
	screenID := model.ScreenID(1)
	store.UpsertScreen(model.Screen{
		ID:           screenID,
		Name:         "main",
		Frame:        geometry.NewRect(0, 0, 1920, 1080),
		VisibleFrame: geometry.NewRect(0, 0, 1920, 1080),
		IsMain:       true,
	})

	cfg := &config.Config{}
	cfg.Tiling.Master.Ratio = 60

	a := actor.New(store, cfg, testLogger(), hub)
	handle := a.Spawn(context.Background())
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = handle.Shutdown(ctx)
	})

	adapter := platform.NewNullAdapter()
	proc := events.New(handle, adapter.HandleCache(), testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	bridge := platform.NewProcessorBridge(ctx, proc)
	require.NoError(t, adapter.SubscribeWindowEvents(ctx, bridge))

	adapter.SeedWindow(screenID, platform.WindowObservation{
		WindowID: 7,
		PID:      200,
		AppID:    "com.test.app",
		Frame:    geometry.NewRect(0, 0, 800, 600),
	})

	adapter.TerminateApp(200)

	queryCtx, queryCancel := context.WithTimeout(context.Background(), time.Second)
	defer queryCancel()
	has, err := handle.HasWindow(queryCtx, 7)
	require.NoError(t, err)
	require.False(t, has, "window should have been destroyed by inference after app termination")
}

// recordingProcessor is a bare EventProcessor double used only to
// observe ProcessorBridge's own screen-diffing logic in isolation from
// a real events.Processor.
type recordingProcessor struct {
	platform.EventProcessor
	mu            sync.Mutex
	registered    []model.ScreenID
	registeredHz  map[model.ScreenID]float64
	unregistered  []model.ScreenID
}

func (r *recordingProcessor) OnScreensChanged(screens []model.Screen) {}

func (r *recordingProcessor) RegisterScreen(ctx context.Context, screenID model.ScreenID, refreshHz float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.registered = append(r.registered, screenID)
	if r.registeredHz == nil {
		r.registeredHz = make(map[model.ScreenID]float64)
	}
	r.registeredHz[screenID] = refreshHz
}

func (r *recordingProcessor) UnregisterScreen(screenID model.ScreenID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.unregistered = append(r.unregistered, screenID)
}

// TestProcessorBridgeRegistersAndUnregistersScreens checks the
// screen-hotplug batching wiring OnScreensChanged owns: a screen
// appearing gets a batch timer registered exactly once, its refresh
// rate clamped into [30, 360], and removing it again unregisters that
// timer.
func TestProcessorBridgeRegistersAndUnregistersScreens(t *testing.T) {
	rec := &recordingProcessor{}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	bridge := platform.NewProcessorBridge(ctx, rec)

	screenID := model.ScreenID(1)
	bridge.OnScreensChanged([]model.Screen{{ID: screenID, Name: "main", RefreshRate: 500}})
	require.Equal(t, []model.ScreenID{screenID}, rec.registered)
	require.Equal(t, 360.0, rec.registeredHz[screenID])

	// Same screen reported again: no duplicate registration.
	bridge.OnScreensChanged([]model.Screen{{ID: screenID, Name: "main", RefreshRate: 500}})
	require.Len(t, rec.registered, 1)

	// Screen disappears: exactly one unregistration.
	bridge.OnScreensChanged(nil)
	require.Equal(t, []model.ScreenID{screenID}, rec.unregistered)
}
