package aggregators

import (
	"movie-analytics/internal/models"
)

// AssembleEventInfos maps summaries to response records. startDate and endDate are echoed as the
// caller sent them. The movie of the summary wins, movie only fills summaries without one.
func AssembleEventInfos(summaries []models.EventSummary, movie, startDate, endDate string) []models.EventInfo {
	infos := make([]models.EventInfo, 0, len(summaries))
	for _, summary := range summaries {
		info := models.EventInfo{
			Name:      summary.EventType,
			Partner:   summary.Partner,
			Movie:     summary.Movie,
			Count:     summary.TotalCount,
			StartDate: startDate,
			EndDate:   endDate,
		}
		if info.Movie == "" {
			info.Movie = movie
		}
		infos = append(infos, info)
	}
	return infos
}
