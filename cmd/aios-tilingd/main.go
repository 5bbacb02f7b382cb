// Command aios-tilingd is the tiling window manager core: a daemon
// subcommand wiring the State Actor, Event Processor, Effect Applier,
// and External Interface together over a Platform Adapter, plus thin
// CLI subcommands that drive a running daemon through its HTTP API
// (spec.md §6 "CLI surface"). Structurally grounded on
// cmd/aios-desktop/main.go's cobra root + viper config + graceful
// shutdown pattern, generalized from that file's single monolithic
// server to this core's component wiring.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/yourorg/tilecore/internal/actor"
	"github.com/yourorg/tilecore/internal/config"
	"github.com/yourorg/tilecore/internal/effects"
	"github.com/yourorg/tilecore/internal/events"
	"github.com/yourorg/tilecore/internal/model"
	"github.com/yourorg/tilecore/internal/notify"
	"github.com/yourorg/tilecore/internal/platform"
	"github.com/yourorg/tilecore/internal/rpcapi"
)

var (
	Version = "dev"
	Commit  = "unknown"
)

func main() {
	root := &cobra.Command{
		Use:   "aios-tilingd",
		Short: "Tiling window manager core",
		Long:  "State actor, event processor, and effect applier for a tiling window manager, driven through an HTTP/websocket external interface.",
	}
	root.PersistentFlags().String("config", "tilecore", "config file name, without extension")
	root.PersistentFlags().String("config-path", "", "additional config search path")
	root.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	root.PersistentFlags().String("api-addr", "http://127.0.0.1:8790", "daemon API address, for the CLI subcommands")
	viper.BindPFlags(root.PersistentFlags())

	root.AddCommand(newServeCmd())
	root.AddCommand(newQueryCmd())
	root.AddCommand(newWindowCmd())
	root.AddCommand(newWorkspaceCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func initLogger() *logrus.Logger {
	logger := logrus.New()
	level, err := logrus.ParseLevel(viper.GetString("log-level"))
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)
	logger.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339})
	return logger
}

// loadConfig reads tiling.* / bar.* from the configured file, falling
// back to the same defaults internal/config.NewLoader seeds into viper
// when no file is present -- a daemon with no config file should still
// start with sane tiling behavior rather than refusing to run. It
// returns the Loader alongside the initial Config so the caller can
// defer watchConfigFile until a running actor handle exists to reload
// into.
func loadConfig(logger *logrus.Logger) (*config.Config, *config.Loader) {
	loader := config.NewLoader(logger, viper.GetString("config-path"), viper.GetString("config"))
	cfg, err := loader.Load()
	if err != nil {
		logger.WithError(err).Warn("no usable config file found, starting with built-in defaults")
		cfg = &config.Config{}
		cfg.Tiling.Master.Ratio = 60
		cfg.Tiling.Gaps.InnerH = 8
		cfg.Tiling.Gaps.InnerV = 8
		cfg.Tiling.Animation.Enabled = true
		cfg.Tiling.Animation.Duration = 150 * time.Millisecond
		cfg.Tiling.Animation.SettlingWindow = 100 * time.Millisecond
		return cfg, nil
	}
	return cfg, loader
}

// watchConfigFile registers loader's file watch to hot-reload into the
// running actor: every reparse attempt is sent to handle as a
// ReloadConfig command, whose ack reports back whether the actor
// applied it or rejected a topology change with
// tilingerr.InvalidArgument (SPEC_FULL §A.4). A reparse/validate
// failure from the Loader itself (cfg == nil) never reaches the actor;
// it is logged here since there is no new config to apply.
func watchConfigFile(loader *config.Loader, handle *actor.Handle, logger *logrus.Logger) {
	if loader == nil {
		return
	}
	loader.Watch(func(cfg *config.Config, err error) {
		if err != nil {
			logger.WithError(err).Warn("config reload failed, keeping previous configuration")
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := handle.ReloadConfig(ctx, cfg); err != nil {
			logger.WithError(err).Warn("config reload rejected by actor")
			return
		}
		logger.Info("config reload applied")
	})
}

func newServeCmd() *cobra.Command {
	var bindAddr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the tiling core daemon",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(bindAddr)
		},
	}
	cmd.Flags().StringVar(&bindAddr, "bind-addr", ":8790", "external interface bind address")
	return cmd
}

func runServe(bindAddr string) error {
	logger := initLogger()
	cfg, loader := loadConfig(logger)

	store := model.NewStore()
	hub := notify.NewHub(logger)

	a := actor.New(store, cfg, logger, hub)
	handle := a.Spawn(context.Background())
	watchConfigFile(loader, handle, logger)

	adapter := platform.NewNullAdapter()
	logger.Warn("no macOS Accessibility binding exists in this build; running against the in-memory NullAdapter")

	applier := effects.NewApplier(adapter, cfg.Tiling.Animation, handle, logger)
	defer applier.Close()

	layoutListener := effects.NewLayoutListener(handle, applier, logger)
	visibilitySync := effects.NewVisibilitySync(adapter, logger)
	hub.Subscribe(layoutListener)
	hub.Subscribe(visibilitySync)

	proc := events.New(handle, adapter.HandleCache(), logger)
	defer proc.Close()

	subCtx, cancelSub := context.WithCancel(context.Background())
	defer cancelSub()
	bridge := platform.NewProcessorBridge(subCtx, proc)
	if err := adapter.SubscribeWindowEvents(subCtx, bridge); err != nil {
		return fmt.Errorf("subscribing to platform events: %w", err)
	}

	screens, err := adapter.EnumerateScreens(context.Background())
	if err != nil {
		return fmt.Errorf("enumerating screens: %w", err)
	}
	bridge.OnScreensChanged(screens)
	if err := handle.SetScreens(screens); err != nil {
		logger.WithError(err).Warn("initial SetScreens failed")
	}

	server := rpcapi.NewServer(handle, hub, logger)
	server.Start(bindAddr)
	logger.WithFields(logrus.Fields{"version": Version, "commit": Commit, "addr": bindAddr}).Info("aios-tilingd started")

	waitForShutdown(logger, func(ctx context.Context) {
		if err := server.Shutdown(ctx); err != nil {
			logger.WithError(err).Error("external interface shutdown failed")
		}
		if err := handle.Shutdown(ctx); err != nil {
			logger.WithError(err).Error("actor shutdown failed")
		}
	})
	return nil
}

func waitForShutdown(logger *logrus.Logger, stop func(ctx context.Context)) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down aios-tilingd")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	stop(ctx)
	logger.Info("aios-tilingd shutdown complete")
}

// --- CLI client subcommands (spec.md §6 "CLI surface") -----------------

// focusedIDs resolves the currently focused window/workspace ids
// through the "focus" query, for subcommands that operate on "the
// current window/workspace" without requiring the caller to look one
// up first.
func focusedIDs() (windowID float64, hasWindow bool, workspaceID string, hasWorkspace bool, err error) {
	out, err := apiRequest("/api/v1/query", rpcapi.QueryRequest{Type: "focus"})
	if err != nil {
		return 0, false, "", false, err
	}
	ok, _ := out["ok"].(map[string]interface{})
	if has, present := ok["HasWindow"].(bool); present && has {
		hasWindow = true
		windowID, _ = ok["WindowID"].(float64)
	}
	if has, present := ok["HasWorkspace"].(bool); present && has {
		hasWorkspace = true
		workspaceID = fmt.Sprintf("%v", ok["WorkspaceID"])
	}
	return windowID, hasWindow, workspaceID, hasWorkspace, nil
}

func apiRequest(path string, body interface{}) (map[string]interface{}, error) {
	buf, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	resp, err := http.Post(viper.GetString("api-addr")+path, "application/json", bytes.NewReader(buf))
	if err != nil {
		return nil, fmt.Errorf("contacting daemon: %w", err)
	}
	defer resp.Body.Close()

	var out map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		data, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("decoding daemon response: %w (body: %s)", err, data)
	}
	if errBody, ok := out["err"]; ok {
		return nil, fmt.Errorf("daemon error: %v", errBody)
	}
	return out, nil
}

func printResult(out map[string]interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out["ok"])
}

func newQueryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:       "query {screens|workspaces|windows|apps}",
		Short:     "Query daemon state",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"screens", "workspaces", "windows", "apps"},
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := apiRequest("/api/v1/query", rpcapi.QueryRequest{Type: args[0]})
			if err != nil {
				return err
			}
			return printResult(out)
		},
	}
	return cmd
}

func newWindowCmd() *cobra.Command {
	var (
		focus, swap, resize, preset, sendToScreen string
		sendToWorkspace                           string
		amount                                    int
	)
	cmd := &cobra.Command{
		Use:   "window",
		Short: "Operate on the focused or named window",
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				commandType string
				commandArgs map[string]interface{}
			)
			switch {
			case focus != "":
				commandType, commandArgs = "focus_window", map[string]interface{}{"direction": focus}
			case swap != "":
				commandType, commandArgs = "swap_window_in_direction", map[string]interface{}{"direction": swap}
			case resize != "":
				commandType, commandArgs = "resize_focused_window", map[string]interface{}{"dimension": resize, "amount": amount}
			case preset != "":
				commandType, commandArgs = "apply_preset", map[string]interface{}{"preset": preset}
			case sendToScreen != "":
				commandType, commandArgs = "send_window_to_screen", map[string]interface{}{"target": sendToScreen}
			case sendToWorkspace != "":
				windowID, ferr := currentWindowID()
				if ferr != nil {
					return ferr
				}
				commandType, commandArgs = "move_window_to_workspace", map[string]interface{}{"window_id": windowID, "workspace_id": sendToWorkspace}
			default:
				return fmt.Errorf("one of --focus, --swap, --resize, --preset, --send-to-screen, --send-to-workspace is required")
			}
			return runCommand(commandType, commandArgs)
		},
	}
	cmd.Flags().StringVar(&focus, "focus", "", "move focus in a direction (up|down|left|right|next|previous)")
	cmd.Flags().StringVar(&swap, "swap", "", "swap the focused window in a direction")
	cmd.Flags().StringVar(&resize, "resize", "", "resize dimension (width|height)")
	cmd.Flags().IntVar(&amount, "amount", 20, "pixels to resize by, used with --resize")
	cmd.Flags().StringVar(&preset, "preset", "", "apply a named floating preset")
	cmd.Flags().StringVar(&sendToScreen, "send-to-screen", "", "send the focused window to a screen (main|secondary|<name>)")
	cmd.Flags().StringVar(&sendToWorkspace, "send-to-workspace", "", "move the focused window to a workspace id")
	return cmd
}

func newWorkspaceCmd() *cobra.Command {
	var (
		focus, layout, sendToScreen string
		balance                     bool
	)
	cmd := &cobra.Command{
		Use:   "workspace",
		Short: "Switch or reconfigure a workspace",
		RunE: func(cmd *cobra.Command, args []string) error {
			switch {
			case focus != "":
				return runCommand("switch_workspace", map[string]interface{}{"name": focus})
			case layout != "":
				wsID, err := currentWorkspaceID()
				if err != nil {
					return err
				}
				return runCommand("set_layout", map[string]interface{}{"workspace_id": wsID, "layout": layout})
			case balance:
				wsID, err := currentWorkspaceID()
				if err != nil {
					return err
				}
				return runCommand("balance_workspace", map[string]interface{}{"workspace_id": wsID})
			case sendToScreen != "":
				return runCommand("send_workspace_to_screen", map[string]interface{}{"target": sendToScreen})
			default:
				return fmt.Errorf("one of --focus, --layout, --balance, --send-to-screen is required")
			}
		},
	}
	cmd.Flags().StringVar(&focus, "focus", "", "switch to a workspace by name")
	cmd.Flags().StringVar(&layout, "layout", "", "set the focused workspace's layout tag")
	cmd.Flags().BoolVar(&balance, "balance", false, "balance the focused workspace's split ratios")
	cmd.Flags().StringVar(&sendToScreen, "send-to-screen", "", "send the focused workspace to a screen")
	return cmd
}

func currentWorkspaceID() (string, error) {
	_, _, wsID, has, err := focusedIDs()
	if err != nil {
		return "", err
	}
	if !has {
		return "", fmt.Errorf("no workspace currently has focus")
	}
	return wsID, nil
}

func currentWindowID() (float64, error) {
	wid, has, _, _, err := focusedIDs()
	if err != nil {
		return 0, err
	}
	if !has {
		return 0, fmt.Errorf("no window currently has focus")
	}
	return wid, nil
}

func runCommand(commandType string, args map[string]interface{}) error {
	raw, err := json.Marshal(args)
	if err != nil {
		return err
	}
	_, err = apiRequest("/api/v1/command", json.RawMessage(fmt.Sprintf(`{"type":%q,"args":%s}`, commandType, raw)))
	return err
}
