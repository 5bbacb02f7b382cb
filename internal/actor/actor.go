// Package actor implements the State Actor (spec.md §4.1): the single
// writer of the window/workspace/screen model. All mutation flows
// through one goroutine consuming a bounded command queue; every other
// component only sees immutable snapshots returned by queries or
// identifiers passed back in commands.
package actor

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/yourorg/tilecore/internal/config"
	"github.com/yourorg/tilecore/internal/model"
	"github.com/yourorg/tilecore/internal/tilingerr"
)

// settlingDuration is how long geometry events are treated as animation
// intermediates after the Effect Applier finishes a transition (spec.md
// §4.4 "a settling window around animation end (~100 ms)").
const settlingDuration = 100 * time.Millisecond

// channelBufferSize is the command queue capacity. Sized to absorb
// bursts of geometry/focus events during a display reconfiguration or
// a rapid window-drag without backpressuring the Event Processor.
const channelBufferSize = 1024

// Notifier fans out model-change notifications to subscribers (the RPC
// websocket stream, the Effect Applier). The actor depends on it only
// through this interface so it never owns transport concerns.
type Notifier interface {
	NotifyLayoutChanged(workspaceID model.WorkspaceID, urgent bool)
	NotifyFocusChanged(focus model.FocusState)
	NotifyWorkspaceWindowsChanged(workspaceID model.WorkspaceID)
	NotifyWorkspaceActivated(workspaceID model.WorkspaceID)
	// NotifyAppVisibility is the actor's "hide this app"/"unhide this
	// app" intent (spec.md §4.4 "App visibility sync"); the actor never
	// calls the Platform Adapter itself, so the Effect Applier is the
	// only intended subscriber that acts on it.
	NotifyAppVisibility(pid int, hidden bool)
}

// Actor owns the model store and processes one message at a time.
// Exported only through Handle; callers never reach into Actor
// directly.
type Actor struct {
	store    *model.Store
	cfg      *config.Config
	logger   *logrus.Logger
	tracer   trace.Tracer
	notifier Notifier
	metrics  *metrics

	commands chan Command
	enabled  bool

	// dragInProgress and settleUntil gate geometry-event handling per
	// spec.md §4.4: while a user drag is live or the post-animation
	// settling window hasn't elapsed, reported frames update the model
	// but never trigger minimum-size inference or relayout.
	dragInProgress bool
	settleUntil    time.Time

	mu      sync.RWMutex
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// Handle is a cloneable, concurrency-safe reference to a running actor.
// It is the only type other packages hold; Actor itself never escapes
// this package.
type Handle struct {
	commands chan Command
	actor    *Actor
}

// New constructs an Actor. Spawn must be called before any command or
// query is sent.
func New(store *model.Store, cfg *config.Config, logger *logrus.Logger, notifier Notifier) *Actor {
	return &Actor{
		store:    store,
		cfg:      cfg,
		logger:   logger,
		tracer:   otel.Tracer("tilecore/actor"),
		notifier: notifier,
		metrics:  newMetrics(),
		commands: make(chan Command, channelBufferSize),
		enabled:  true,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Spawn starts the actor's message loop in a new goroutine and returns
// a Handle for sending commands and queries.
func (a *Actor) Spawn(ctx context.Context) *Handle {
	ctx, span := a.tracer.Start(ctx, "actor.Spawn")
	defer span.End()

	a.mu.Lock()
	a.running = true
	a.mu.Unlock()

	a.logger.Info("state actor starting")
	go a.run(ctx)

	return &Handle{commands: a.commands, actor: a}
}

// run is the actor's single-threaded message loop. Each handler is
// wrapped in a panic guard: a handler that unwinds is logged and
// skipped, and the loop proceeds to the next message without
// terminating (spec.md §4.1).
func (a *Actor) run(ctx context.Context) {
	defer close(a.doneCh)
	for {
		select {
		case <-a.stopCh:
			a.logger.Info("state actor stopping")
			return
		case msg := <-a.commands:
			if _, ok := msg.(Shutdown); ok {
				a.logger.Info("state actor received shutdown command")
				return
			}
			a.dispatchGuarded(ctx, msg)
		}
	}
}

func (a *Actor) dispatchGuarded(ctx context.Context, msg Command) {
	defer func() {
		if r := recover(); r != nil {
			a.logger.WithField("command", msg.commandName()).
				WithField("panic", fmt.Sprintf("%v", r)).
				Error("actor handler panicked, continuing with next message")
		}
	}()

	a.metrics.queueDepth.Set(float64(len(a.commands)))

	timer := a.metrics.startCommand(msg.commandName())
	defer timer.observeDone()

	ctx, span := a.tracer.Start(ctx, "actor.handleCommand")
	span.SetAttributes(commandNameAttr(msg.commandName()))
	defer span.End()

	a.dispatch(ctx, msg)
}

// dispatch routes a command to its handler group. Query messages are
// answered here directly since they never mutate state.
func (a *Actor) dispatch(ctx context.Context, msg Command) {
	if q, ok := msg.(*queryMsg); ok {
		q.reply <- q.run(a)
		return
	}
	if m, ok := msg.(*mutateMsg); ok {
		m.run(a)
		return
	}

	switch m := msg.(type) {
	case WindowCreated:
		a.handleWindowCreated(ctx, m.Info)
	case WindowDestroyed:
		a.handleWindowDestroyed(ctx, m.WindowID)
	case WindowFocused:
		a.handleWindowFocused(ctx, m.WindowID)
	case WindowUnfocused:
		a.handleWindowUnfocused(ctx, m.WindowID)
	case WindowMoved:
		a.handleWindowMoved(ctx, m.WindowID, m.Frame)
	case WindowResized:
		a.handleWindowResized(ctx, m.WindowID, m.Frame)
	case WindowMinimized:
		a.handleWindowMinimized(ctx, m.WindowID, m.Minimized)
	case WindowTitleChanged:
		a.handleWindowTitleChanged(ctx, m.WindowID, m.Title)
	case WindowFullscreenChanged:
		a.handleWindowFullscreenChanged(ctx, m.WindowID, m.Fullscreen)

	case AppLaunched:
		a.handleAppLaunched(ctx, m)
	case AppTerminated:
		a.handleAppTerminated(ctx, m.PID)
	case AppHidden:
		a.handleAppHidden(ctx, m.PID)
	case AppShown:
		a.handleAppShown(ctx, m.PID)
	case AppActivated:
		a.handleAppActivated(ctx, m.PID)

	case ScreensChanged:
		a.logger.Warn("ScreensChanged received without a detected screen list, ignoring")
	case SetScreens:
		a.handleSetScreens(ctx, m.Screens)

	case BatchedGeometryUpdates:
		a.handleBatchedGeometryUpdates(ctx, m.Updates)
	case BatchWindowsCreated:
		for _, info := range m.Windows {
			a.handleWindowCreated(ctx, info)
		}
	case InitComplete:
		a.handleInitComplete(ctx)

	case SwitchWorkspace:
		a.handleSwitchWorkspace(ctx, m.Name)
	case CycleWorkspace:
		a.handleCycleWorkspace(ctx, m.Direction)
	case SetLayout:
		a.handleSetLayout(ctx, m.WorkspaceID, m.Layout)
	case CycleLayout:
		a.handleCycleLayout(ctx, m.WorkspaceID)
	case BalanceWorkspace:
		a.handleBalanceWorkspace(ctx, m.WorkspaceID)

	case MoveWindowToWorkspace:
		a.handleMoveWindowToWorkspace(ctx, m.WindowID, m.WorkspaceID)
	case SwapWindows:
		a.handleSwapWindows(ctx, m.A, m.B)
	case FocusWindow:
		a.handleFocusWindow(ctx, m.Direction)
	case CycleFocus:
		a.handleCycleFocus(ctx, m.Direction)
	case SwapWindowInDirection:
		a.handleSwapWindowInDirection(ctx, m.Direction)
	case ToggleFloating:
		a.handleToggleFloating(ctx, m.WindowID)
	case *ResizeSplit:
		a.handleResizeSplit(ctx, m)
	case SendWindowToScreen:
		a.handleSendWindowToScreen(ctx, m.Target)
	case SendWorkspaceToScreen:
		a.handleSendWorkspaceToScreen(ctx, m.Target)
	case ResizeFocusedWindow:
		a.handleResizeFocusedWindow(ctx, m.Dimension, m.Amount)
	case ApplyPreset:
		a.handleApplyPreset(ctx, m.Preset)

	case SetEnabled:
		a.enabled = m.Enabled
		a.logger.WithField("enabled", m.Enabled).Info("tiling enabled state changed")
	case SetExpectedFrames:
		a.handleSetExpectedFrames(ctx, m.Frames)
	case UserResizeCompleted:
		a.handleUserResizeCompleted(ctx, m)
	case UserMoveCompleted:
		a.handleUserMoveCompleted(ctx, m.WorkspaceID)
	case *ReloadConfig:
		a.handleReloadConfig(ctx, m)

	default:
		a.logger.WithField("command", msg.commandName()).Warn("unhandled command type")
	}
}

// Send enqueues a fire-and-forget command without blocking, returning
// tilingerr.ChannelClosed if the queue is full (the backpressure the
// bounded queue exists to create).
func (h *Handle) Send(cmd Command) error {
	select {
	case h.commands <- cmd:
		return nil
	default:
		return tilingerr.New(tilingerr.ChannelClosed, "actor.Send", "command queue full, dropping "+cmd.commandName())
	}
}

// SendWait enqueues cmd, blocking until the queue has room or ctx is
// cancelled.
func (h *Handle) SendWait(ctx context.Context, cmd Command) error {
	select {
	case h.commands <- cmd:
		return nil
	case <-ctx.Done():
		return tilingerr.Wrap(tilingerr.Timeout, "actor.SendWait", "command queue full", ctx.Err())
	}
}

// PendingCommands reports the queue depth, for diagnostics.
func (h *Handle) PendingCommands() int {
	return len(h.commands)
}

// mutateMsg is the internal envelope for a fire-and-forget closure that
// needs to run on the actor's goroutine but carries no domain meaning
// of its own -- the drag/settling flags the Effect Applier toggles are
// the only users of this today.
type mutateMsg struct {
	run func(*Actor)
}

func (*mutateMsg) commandName() string { return "Mutate" }

// SetDragInProgress is called by the Effect Applier's mouse-state
// monitor on mouse-down/mouse-up, gating whether geometry events are
// treated as minimum-size violations during a live user drag (spec.md
// §4.4 "Drag detection").
func (h *Handle) SetDragInProgress(inProgress bool) error {
	return h.Send(&mutateMsg{run: func(a *Actor) { a.dragInProgress = inProgress }})
}

// BeginSettlingWindow is called by the animator when a transition ends,
// suppressing geometry-driven minimum-size inference for
// tiling.animation.settling_window (falling back to settlingDuration
// when unconfigured) so animation intermediates cannot corrupt the
// model (spec.md §4.4).
func (h *Handle) BeginSettlingWindow() error {
	return h.Send(&mutateMsg{run: func(a *Actor) {
		window := a.cfg.Tiling.Animation.SettlingWindow
		if window <= 0 {
			window = settlingDuration
		}
		a.settleUntil = currentTime().Add(window)
	}})
}

// Shutdown stops the actor's message loop and waits for it to drain.
func (h *Handle) Shutdown(ctx context.Context) error {
	a := h.actor
	a.mu.Lock()
	if !a.running {
		a.mu.Unlock()
		return nil
	}
	a.running = false
	a.mu.Unlock()

	select {
	case h.commands <- Shutdown{}:
	default:
		close(a.stopCh)
	}

	select {
	case <-a.doneCh:
		return nil
	case <-ctx.Done():
		return tilingerr.Wrap(tilingerr.Timeout, "actor.Shutdown", "actor did not stop in time", ctx.Err())
	}
}
