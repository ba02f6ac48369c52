package status

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/carson-networks/wallet-ledger/internal/logging"
)

// Body is the status response payload.
type Body struct {
	OK         bool `json:"ok"`
	Online     bool `json:"online"`
	Unsynced   bool `json:"unsynced"`
	QueueDepth int  `json:"queueDepth"`
}

// queueCounter reports how many offline mutations are waiting.
type queueCounter interface {
	Count(ctx context.Context) (int, error)
}

// stateReader reports the sync health flags.
type stateReader interface {
	Unsynced() bool
}

// connectivityReader reports the connectivity flag.
type connectivityReader interface {
	Online() bool
}

type Handler struct {
	Queue   queueCounter
	State   stateReader
	Monitor connectivityReader
}

func NewHandler(queue queueCounter, state stateReader, monitor connectivityReader) Handler {
	return Handler{Queue: queue, State: state, Monitor: monitor}
}

func (h *Handler) Handler(w http.ResponseWriter, req *http.Request, logData *logging.LogData) error {
	if req.Method != "GET" {
		w.WriteHeader(http.StatusBadRequest)
		return errors.New("status: method not GET")
	}

	depth, err := h.Queue.Count(req.Context())
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return fmt.Errorf("status: count queue: %w", err)
	}

	body := Body{
		OK:         true,
		Online:     h.Monitor.Online(),
		Unsynced:   h.State.Unsynced(),
		QueueDepth: depth,
	}
	logData.AddData("queueDepth", depth)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	return json.NewEncoder(w).Encode(body)
}
