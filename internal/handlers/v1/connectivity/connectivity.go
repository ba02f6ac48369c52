// Package connectivity exposes the endpoints that declare the process
// online or offline, driving offline queueing and reconnect replay.
package connectivity

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

// StateResponseBody reports the connectivity state after the declaration.
type StateResponseBody struct {
	Online bool `json:"online" doc:"Whether the process is online"`
}

// StateOutput is the Huma output for the connectivity endpoints.
type StateOutput struct {
	Body StateResponseBody
}

// connectivityMonitor is the interface for flipping the connectivity flag.
type connectivityMonitor interface {
	Online() bool
	SetOnline()
	SetOffline()
}

// Handler handles POST /v1/sync/online and POST /v1/sync/offline.
type Handler struct {
	Monitor connectivityMonitor
}

// NewHandler creates a new connectivity Handler.
func NewHandler(monitor connectivityMonitor) *Handler {
	return &Handler{Monitor: monitor}
}

// Register registers the connectivity endpoints with the Huma API.
func (h *Handler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "declare-online",
		Method:      http.MethodPost,
		Path:        "/v1/sync/online",
		Summary:     "Declare online",
		Description: "Declares the connection restored. Going online replays the offline queue in the background. Redeclaring the current state has no effect.",
		Tags:        []string{"Sync"},
	}, h.online)

	huma.Register(api, huma.Operation{
		OperationID: "declare-offline",
		Method:      http.MethodPost,
		Path:        "/v1/sync/offline",
		Summary:     "Declare offline",
		Description: "Declares the connection lost. Subsequent transaction mutations queue locally until the connection is restored.",
		Tags:        []string{"Sync"},
	}, h.offline)
}

func (h *Handler) online(_ context.Context, _ *struct{}) (*StateOutput, error) {
	h.Monitor.SetOnline()
	return &StateOutput{Body: StateResponseBody{Online: h.Monitor.Online()}}, nil
}

func (h *Handler) offline(_ context.Context, _ *struct{}) (*StateOutput, error) {
	h.Monitor.SetOffline()
	return &StateOutput{Body: StateResponseBody{Online: h.Monitor.Online()}}, nil
}
