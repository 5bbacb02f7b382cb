package rpcapi

import (
	"context"
	"net/http"

	"github.com/yourorg/tilecore/internal/actor"
	"github.com/yourorg/tilecore/internal/model"
)

func (s *Server) handleCommand(w http.ResponseWriter, r *http.Request) {
	ctx, span := s.tracer.Start(r.Context(), "rpcapi.handleCommand")
	defer span.End()

	var req CommandRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, badRequest("rpcapi.handleCommand", err.Error()))
		return
	}

	payload, err := s.dispatchCommand(ctx, req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeOK(w, payload)
}

// dispatchCommand routes the CLI/host command surface of spec.md
// section 6 onto actor.Handle's typed Send wrappers. Raw OS observations
// (WindowCreated, AppLaunched, BatchedGeometryUpdates, ...) never arrive
// here: those are fed to the actor by the event pipeline wired in
// cmd/aios-tilingd, not by an external caller.
func (s *Server) dispatchCommand(ctx context.Context, req CommandRequest) (interface{}, error) {
	switch req.Type {
	case "switch_workspace":
		var args struct {
			Name string `json:"name"`
		}
		if err := decodeArgs(req.Args, &args); err != nil {
			return nil, badRequest("rpcapi.dispatchCommand", "invalid args for switch_workspace")
		}
		return nil, s.handle.SwitchWorkspace(args.Name)

	case "cycle_workspace":
		dir, err := decodeCycleDirection(req.Args)
		if err != nil {
			return nil, err
		}
		return nil, s.handle.CycleWorkspace(dir)

	case "set_layout":
		var args struct {
			WorkspaceID model.WorkspaceID `json:"workspace_id"`
			Layout      string            `json:"layout"`
		}
		if err := decodeArgs(req.Args, &args); err != nil {
			return nil, badRequest("rpcapi.dispatchCommand", "invalid args for set_layout")
		}
		tag, ok := model.ParseLayoutTag(args.Layout)
		if !ok {
			return nil, badRequest("rpcapi.dispatchCommand", "unknown layout tag "+args.Layout)
		}
		return nil, s.handle.SetLayout(args.WorkspaceID, tag)

	case "cycle_layout":
		var args struct {
			WorkspaceID model.WorkspaceID `json:"workspace_id"`
		}
		if err := decodeArgs(req.Args, &args); err != nil {
			return nil, badRequest("rpcapi.dispatchCommand", "invalid args for cycle_layout")
		}
		return nil, s.handle.CycleLayout(args.WorkspaceID)

	case "balance_workspace":
		var args struct {
			WorkspaceID model.WorkspaceID `json:"workspace_id"`
		}
		if err := decodeArgs(req.Args, &args); err != nil {
			return nil, badRequest("rpcapi.dispatchCommand", "invalid args for balance_workspace")
		}
		return nil, s.handle.BalanceWorkspace(args.WorkspaceID)

	case "move_window_to_workspace":
		var args struct {
			WindowID    model.WindowID    `json:"window_id"`
			WorkspaceID model.WorkspaceID `json:"workspace_id"`
		}
		if err := decodeArgs(req.Args, &args); err != nil {
			return nil, badRequest("rpcapi.dispatchCommand", "invalid args for move_window_to_workspace")
		}
		return nil, s.handle.MoveWindowToWorkspace(args.WindowID, args.WorkspaceID)

	case "swap_windows":
		var args struct {
			A model.WindowID `json:"a"`
			B model.WindowID `json:"b"`
		}
		if err := decodeArgs(req.Args, &args); err != nil {
			return nil, badRequest("rpcapi.dispatchCommand", "invalid args for swap_windows")
		}
		return nil, s.handle.SwapWindows(args.A, args.B)

	case "focus_window":
		dir, err := decodeFocusDirection(req.Args)
		if err != nil {
			return nil, err
		}
		return nil, s.handle.FocusWindow(dir)

	case "cycle_focus":
		dir, err := decodeCycleDirection(req.Args)
		if err != nil {
			return nil, err
		}
		return nil, s.handle.CycleFocus(dir)

	case "swap_window_in_direction":
		dir, err := decodeFocusDirection(req.Args)
		if err != nil {
			return nil, err
		}
		return nil, s.handle.SwapWindowInDirection(dir)

	case "toggle_floating":
		var args struct {
			WindowID model.WindowID `json:"window_id"`
		}
		if err := decodeArgs(req.Args, &args); err != nil {
			return nil, badRequest("rpcapi.dispatchCommand", "invalid args for toggle_floating")
		}
		return nil, s.handle.ToggleFloating(args.WindowID)

	case "resize_split":
		var args struct {
			WorkspaceID model.WorkspaceID `json:"workspace_id"`
			WindowIndex int               `json:"window_index"`
			Delta       float64           `json:"delta"`
		}
		if err := decodeArgs(req.Args, &args); err != nil {
			return nil, badRequest("rpcapi.dispatchCommand", "invalid args for resize_split")
		}
		return s.handle.ResizeSplit(ctx, args.WorkspaceID, args.WindowIndex, args.Delta)

	case "send_window_to_screen":
		target, err := decodeTargetScreen(req.Args)
		if err != nil {
			return nil, err
		}
		return nil, s.handle.SendWindowToScreen(target)

	case "send_workspace_to_screen":
		target, err := decodeTargetScreen(req.Args)
		if err != nil {
			return nil, err
		}
		return nil, s.handle.SendWorkspaceToScreen(target)

	case "resize_focused_window":
		var args struct {
			Dimension string `json:"dimension"`
			Amount    int    `json:"amount"`
		}
		if err := decodeArgs(req.Args, &args); err != nil {
			return nil, badRequest("rpcapi.dispatchCommand", "invalid args for resize_focused_window")
		}
		dim, ok := actor.ParseResizeDimension(args.Dimension)
		if !ok {
			return nil, badRequest("rpcapi.dispatchCommand", "dimension must be width or height")
		}
		return nil, s.handle.ResizeFocusedWindow(dim, args.Amount)

	case "apply_preset":
		var args struct {
			Preset string `json:"preset"`
		}
		if err := decodeArgs(req.Args, &args); err != nil {
			return nil, badRequest("rpcapi.dispatchCommand", "invalid args for apply_preset")
		}
		return nil, s.handle.ApplyPreset(args.Preset)

	case "set_enabled":
		var args struct {
			Enabled bool `json:"enabled"`
		}
		if err := decodeArgs(req.Args, &args); err != nil {
			return nil, badRequest("rpcapi.dispatchCommand", "invalid args for set_enabled")
		}
		return nil, s.handle.SetEnabled(args.Enabled)

	default:
		return nil, badRequest("rpcapi.dispatchCommand", "unknown command type "+req.Type)
	}
}

func decodeCycleDirection(raw []byte) (actor.CycleDirection, error) {
	var args struct {
		Direction string `json:"direction"`
	}
	if err := decodeArgs(raw, &args); err != nil {
		return 0, badRequest("rpcapi.dispatchCommand", "invalid cycle direction args")
	}
	switch args.Direction {
	case "next", "":
		return actor.CycleNext, nil
	case "previous", "prev":
		return actor.CyclePrevious, nil
	default:
		return 0, badRequest("rpcapi.dispatchCommand", "direction must be next or previous")
	}
}

func decodeFocusDirection(raw []byte) (actor.FocusDirection, error) {
	var args struct {
		Direction string `json:"direction"`
	}
	if err := decodeArgs(raw, &args); err != nil {
		return 0, badRequest("rpcapi.dispatchCommand", "invalid focus direction args")
	}
	dir, ok := actor.ParseFocusDirection(args.Direction)
	if !ok {
		return 0, badRequest("rpcapi.dispatchCommand", "unrecognized direction "+args.Direction)
	}
	return dir, nil
}

func decodeTargetScreen(raw []byte) (actor.TargetScreen, error) {
	var args struct {
		Target string `json:"target"`
	}
	if err := decodeArgs(raw, &args); err != nil {
		return actor.TargetScreen{}, badRequest("rpcapi.dispatchCommand", "invalid target args")
	}
	return actor.ParseTargetScreen(args.Target), nil
}
