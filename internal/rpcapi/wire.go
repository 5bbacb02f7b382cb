package rpcapi

import (
	"encoding/json"
	"net/http"

	"github.com/yourorg/tilecore/internal/tilingerr"
)

// QueryRequest is the decoded body of POST /api/v1/query: a type
// discriminator matching one of the query names in spec.md section 4.1,
// plus its type-specific arguments (spec.md section 4.6 "Query/command wire
// format").
type QueryRequest struct {
	Type string          `json:"type"`
	Args json.RawMessage `json:"args,omitempty"`
}

// CommandRequest is the decoded body of POST /api/v1/command, mirroring
// QueryRequest's shape for the command surface of section 4.1.
type CommandRequest struct {
	Type string          `json:"type"`
	Args json.RawMessage `json:"args,omitempty"`
}

// errorBody is the `{"err": {...}}` envelope of section 4.6.
type errorBody struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// writeOK wraps payload in the `{"ok": <payload>}` envelope and writes
// it as JSON, grounded on cmd/aios-desktop/main.go's writeJSON helper
// (here actually implemented, rather than left as a TODO stub).
func writeOK(w http.ResponseWriter, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{"ok": payload})
}

// writeError wraps err in the `{"err": {...}}` envelope, deriving the
// wire status code and kind string from tilingerr.KindOf.
func writeError(w http.ResponseWriter, err error) {
	kind := tilingerr.KindOf(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusForKind(kind))
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"err": errorBody{Kind: kind.String(), Message: err.Error()},
	})
}

func statusForKind(k tilingerr.Kind) int {
	switch k {
	case tilingerr.NotFound:
		return http.StatusNotFound
	case tilingerr.InvalidArgument:
		return http.StatusBadRequest
	case tilingerr.Timeout:
		return http.StatusGatewayTimeout
	case tilingerr.AccessibilityDenied:
		return http.StatusForbidden
	case tilingerr.PlatformFailure, tilingerr.ChannelClosed:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func decodeArgs(raw json.RawMessage, v interface{}) error {
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, v)
}

func decodeBody(r *http.Request, v interface{}) error {
	defer r.Body.Close()
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func badRequest(op, message string) *tilingerr.Error {
	return tilingerr.New(tilingerr.InvalidArgument, op, message)
}
