package effects

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yourorg/tilecore/internal/actor"
	"github.com/yourorg/tilecore/internal/config"
	"github.com/yourorg/tilecore/internal/geometry"
	"github.com/yourorg/tilecore/internal/model"
	"github.com/yourorg/tilecore/internal/notify"
	"github.com/yourorg/tilecore/internal/platform"
)

// TestLayoutListenerAppliesComputedFrames spawns a real actor over a
// seeded store, registers a LayoutListener as the hub's
// LayoutChangedSubscriber, and checks that creating a window (which
// triggers a layout recompute) ends up pushing a real frame through the
// adapter without the test ever calling ApplyFrames directly.
func TestLayoutListenerAppliesComputedFrames(t *testing.T) {
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
	wsID := model.NewWorkspaceID()
	store.UpsertWorkspace(model.Workspace{
		ID:        wsID,
		Name:      "main",
		ScreenID:  screenID,
		Layout:    model.Dwindle,
		IsVisible: true,
		IsFocused: true,
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
	applier := NewApplier(adapter, config.AnimationSpec{}, nil, testLogger())
	listener := NewLayoutListener(handle, applier, testLogger())
	_, unsubscribe := hub.Subscribe(listener)
	defer unsubscribe()

	adapter.SeedWindow(screenID, platform.WindowObservation{
		WindowID: 1,
		PID:      100,
		AppID:    "com.test.app",
		Frame:    geometry.NewRect(0, 0, 800, 600),
	})
	require.NoError(t, handle.NotifyWindowCreated(actor.WindowCreatedInfo{
		WindowID: 1, PID: 100, AppID: "com.test.app", Frame: geometry.NewRect(0, 0, 800, 600),
	}))

	require.Eventually(t, func() bool {
		frame, err := adapter.GetWindowFrame(context.Background(), 1)
		require.NoError(t, err)
		return !frame.ApproxEqual(geometry.NewRect(0, 0, 800, 600))
	}, 2*time.Second, 5*time.Millisecond, "layout listener never pushed a recomputed frame through the adapter")
}
