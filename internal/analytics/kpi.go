package analytics

import (
	"sort"

	"github.com/vizsprints/analytics-service/internal/domain"
)

// KPIPoint is one day of the engagement time series.
type KPIPoint struct {
	Date    string
	DAU     int
	Signups int
}

// ComputeKPITimeSeries builds the daily active users and signups series.
// The output covers the union of dates seen in either table, zero-filled on
// the missing side, sorted ascending by date.
func ComputeKPITimeSeries(events []domain.Event, users []domain.User) []KPIPoint {
	dauByDate := map[string]map[string]struct{}{}
	for _, ev := range events {
		date := ev.Timestamp.Format("2006-01-02")
		if dauByDate[date] == nil {
			dauByDate[date] = map[string]struct{}{}
		}
		dauByDate[date][ev.UserID] = struct{}{}
	}

	signupsByDate := map[string]int{}
	for _, u := range users {
		signupsByDate[u.JoinedAt.Format("2006-01-02")]++
	}

	dates := map[string]struct{}{}
	for d := range dauByDate {
		dates[d] = struct{}{}
	}
	for d := range signupsByDate {
		dates[d] = struct{}{}
	}

	series := make([]KPIPoint, 0, len(dates))
	for d := range dates {
		series = append(series, KPIPoint{
			Date:    d,
			DAU:     len(dauByDate[d]),
			Signups: signupsByDate[d],
		})
	}
	sort.Slice(series, func(i, j int) bool { return series[i].Date < series[j].Date })
	return series
}
