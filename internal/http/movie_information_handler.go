package http

import (
	"net/http"

	"movie-analytics/internal/aggregators"
)

type movieInformationHandler struct {
	movieService aggregators.MovieInformationService
}

func NewMovieInformationHandler(movieService aggregators.MovieInformationService) AppHttpHandler {
	return &movieInformationHandler{
		movieService: movieService,
	}
}

// Handle processes GET /v1/movie?name=&startDate=&endDate= requests.
func (h *movieInformationHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	query := r.URL.Query()
	infos, err := h.movieService.GetMovieInformation(r.Context(), aggregators.MovieInformationRequest{
		Name:      query.Get(queryParamName),
		StartDate: query.Get(queryParamStartDate),
		EndDate:   query.Get(queryParamEndDate),
	})
	if err != nil {
		return err
	}

	writeJSON(w, http.StatusOK, infos)
	return nil
}
