package aggregators

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"movie-analytics/internal/models"
	"movie-analytics/internal/planners"
	"movie-analytics/internal/queries"
	"movie-analytics/internal/shared/loggers"
	"movie-analytics/internal/shared/metrics"
	"movie-analytics/internal/shared/svcerrors"
	"movie-analytics/internal/shared/validators"
	"movie-analytics/internal/stores"
)

// MovieInformationRequest carries the raw query parameters, dates in YYYY-MM-DD HH:mm (UTC).
type MovieInformationRequest struct {
	Name      string `json:"name" validate:"required"`
	StartDate string `json:"startDate" validate:"required,datetime=2006-01-02 15:04"`
	EndDate   string `json:"endDate" validate:"required,datetime=2006-01-02 15:04"`
}

// MovieInformationService answers how many events of each type a movie had within a date range.
//
// The range is split into monthly buckets, all bucket queries run concurrently and their rows are
// summed per event type while the queries are still running. Either every bucket succeeds and the
// complete summary list is returned, or an error is returned and no summaries at all.
//
//go:generate mockgen -source=movie_information_service.go -destination=./mocks/movie_information_service_mock.go -package=mocks
type MovieInformationService interface {
	GetMovieInformation(ctx context.Context, req MovieInformationRequest) ([]models.EventInfo, error)
}

type movieInformationService struct {
	planner    planners.BucketPlanner
	executor   queries.QueryExecutor
	aggregator EventAggregator
	validate   *validators.Validate
	// timeout bounds one request including all of its bucket queries, 0 disables it.
	timeout time.Duration
}

func NewMovieInformationService(planner planners.BucketPlanner, executor queries.QueryExecutor, aggregator EventAggregator, timeout time.Duration) MovieInformationService {
	return &movieInformationService{
		planner:    planner,
		executor:   executor,
		aggregator: aggregator,
		validate:   validators.New(),
		timeout:    timeout,
	}
}

func (s *movieInformationService) GetMovieInformation(ctx context.Context, req MovieInformationRequest) ([]models.EventInfo, error) {
	infos, err := s.getMovieInformation(ctx, req)

	errorCode := metrics.ErrorCodeLabel(err)
	metricMovieInformationTotal.WithLabelValues(errorCode).Inc()

	return infos, err
}

func (s *movieInformationService) getMovieInformation(ctx context.Context, req MovieInformationRequest) ([]models.EventInfo, error) {
	logger := loggers.Ctx(ctx)

	req.Name = strings.TrimSpace(req.Name)
	req.StartDate = strings.TrimSpace(req.StartDate)
	req.EndDate = strings.TrimSpace(req.EndDate)
	if err := s.validateRequest(req); err != nil {
		return nil, err
	}

	start, err := models.ParseDateTime(req.StartDate)
	if err != nil {
		return nil, errValidationFailed(fmt.Sprintf("startDate: %s", err.Error()), err)
	}
	end, err := models.ParseDateTime(req.EndDate)
	if err != nil {
		return nil, errValidationFailed(fmt.Sprintf("endDate: %s", err.Error()), err)
	}

	descriptors, err := s.planner.Plan(req.Name, start, end)
	if err != nil {
		if errors.Is(err, planners.ErrInvalidRange) {
			return nil, errInvalidRange(err)
		}
		return nil, svcerrors.NewInternalErrorUndefined(err)
	}
	metricBucketsPerRequest.WithLabelValues().Observe(float64(len(descriptors)))

	logger.Debug().
		Str(loggers.FieldMovie, req.Name).
		Int(loggers.FieldBucketCount, len(descriptors)).
		Msgf("started movie information query from %s to %s", req.StartDate, req.EndDate)

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	stream := s.executor.Execute(ctx, descriptors)
	summaries := s.aggregator.Aggregate(models.DateRange{Start: start, End: end}, stream.Events())
	if err := stream.Err(); err != nil {
		return nil, mapQueryError(err)
	}

	return AssembleEventInfos(summaries, req.Name, req.StartDate, req.EndDate), nil
}

func (s *movieInformationService) validateRequest(req MovieInformationRequest) error {
	err := s.validate.Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrors validators.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return errValidationFailed("invalid request", err)
	}

	messages := make([]string, 0, len(fieldErrors))
	for _, fieldErr := range fieldErrors {
		messages = append(messages, formatFieldError(fieldErr))
	}
	return errValidationFailed(strings.Join(messages, ", "), err)
}

// formatFieldError names the query parameter, e.g. "startDate: expected format YYYY-MM-DD HH:mm".
func formatFieldError(e validators.FieldError) string {
	param := e.Field()
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", param)
	case "datetime":
		return fmt.Sprintf("%s: expected format YYYY-MM-DD HH:mm", param)
	default:
		return fmt.Sprintf("%s is invalid (%s)", param, e.Tag())
	}
}

func mapQueryError(err error) error {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return errQueryTimeout(err)
	case errors.Is(err, stores.ErrBackendUnavailable):
		return errBackendUnavailable(err)
	default:
		return errQueryFailed(err)
	}
}
