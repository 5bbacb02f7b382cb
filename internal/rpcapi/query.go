package rpcapi

import (
	"context"
	"net/http"

	"github.com/yourorg/tilecore/internal/model"
)

// appInfo is a synthesized view over GetAllWindows for the CLI's
// `query apps` subcommand (spec.md section 6 CLI surface); the core
// keeps no separate app registry, so this groups by pid/app id at the
// wire boundary instead of adding actor state for it.
type appInfo struct {
	PID     int    `json:"pid"`
	AppID   string `json:"app_id"`
	AppName string `json:"app_name"`
}

func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	ctx, span := s.tracer.Start(r.Context(), "rpcapi.handleQuery")
	defer span.End()

	var req QueryRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, badRequest("rpcapi.handleQuery", err.Error()))
		return
	}

	payload, err := s.dispatchQuery(ctx, req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeOK(w, payload)
}

func (s *Server) dispatchQuery(ctx context.Context, req QueryRequest) (interface{}, error) {
	switch req.Type {
	case "screens":
		return s.handle.GetAllScreens(ctx)
	case "workspaces":
		return s.handle.GetAllWorkspaces(ctx)
	case "windows":
		return s.handle.GetAllWindows(ctx)
	case "apps":
		windows, err := s.handle.GetAllWindows(ctx)
		if err != nil {
			return nil, err
		}
		return appsFromWindows(windows), nil
	case "workspace_by_name":
		var args struct {
			Name string `json:"name"`
		}
		if err := decodeArgs(req.Args, &args); err != nil {
			return nil, badRequest("rpcapi.dispatchQuery", "invalid args for workspace_by_name")
		}
		ws, ok, err := s.handle.GetWorkspaceByName(ctx, args.Name)
		if err != nil {
			return nil, err
		}
		return foundResult{ws, ok}, nil
	case "focused_workspace":
		ws, ok, err := s.handle.GetFocusedWorkspace(ctx)
		if err != nil {
			return nil, err
		}
		return foundResult{ws, ok}, nil
	case "focus":
		return s.handle.GetFocus(ctx)
	case "enabled":
		return s.handle.GetEnabled(ctx)
	case "layout":
		var args struct {
			WorkspaceID model.WorkspaceID `json:"workspace_id"`
		}
		if err := decodeArgs(req.Args, &args); err != nil {
			return nil, badRequest("rpcapi.dispatchQuery", "invalid args for layout")
		}
		return s.handle.GetLayout(ctx, args.WorkspaceID)
	case "tabs_of":
		var args struct {
			WindowID model.WindowID `json:"window_id"`
		}
		if err := decodeArgs(req.Args, &args); err != nil {
			return nil, badRequest("rpcapi.dispatchQuery", "invalid args for tabs_of")
		}
		return s.handle.QueryTabsOf(ctx, args.WindowID)
	case "presets":
		return s.handle.QueryPresets(ctx)
	default:
		return nil, badRequest("rpcapi.dispatchQuery", "unknown query type "+req.Type)
	}
}

type foundResult struct {
	Value interface{} `json:"value"`
	Found bool        `json:"found"`
}

func appsFromWindows(windows []model.Window) []appInfo {
	seen := make(map[int]bool)
	out := make([]appInfo, 0)
	for _, w := range windows {
		if seen[w.PID] {
			continue
		}
		seen[w.PID] = true
		out = append(out, appInfo{PID: w.PID, AppID: w.AppID, AppName: w.AppName})
	}
	return out
}
