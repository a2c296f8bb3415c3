package http

import (
	"net/http"

	"movie-analytics/internal/ingestors"
)

type ingestEventHandler struct {
	ingestionService ingestors.IngestionService
}

func NewIngestEventHandler(ingestionService ingestors.IngestionService) AppHttpHandler {
	return &ingestEventHandler{
		ingestionService: ingestionService,
	}
}

// Handle processes POST /v1/events requests.
func (h *ingestEventHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	result, err := h.ingestionService.IngestBatch(r.Context(), idempotencyKey(r), contentType(r), r.Body)
	if err != nil {
		return err
	}

	writeJSON(w, http.StatusAccepted, result)
	return nil
}
