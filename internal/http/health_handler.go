package http

import (
	"context"
	"net/http"
)

// Pinger reports whether the storage backend is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthResponse struct {
	Status string `json:"status"`
}

type healthHandler struct {
	pinger Pinger
}

func NewHealthHandler(pinger Pinger) AppHttpHandler {
	return &healthHandler{
		pinger: pinger,
	}
}

// Handle processes GET /health requests.
func (h *healthHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	if err := h.pinger.Ping(r.Context()); err != nil {
		return errBackendUnavailable(err)
	}

	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
	return nil
}
