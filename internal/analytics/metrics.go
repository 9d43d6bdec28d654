package analytics

import (
	"math"
	"time"

	"github.com/vizsprints/analytics-service/internal/domain"
)

// metricsActivityWindow is the engagement window for the active-user count.
// Measured back from the newest event, not wall-clock time, so a static
// snapshot always reports the same figure.
const metricsActivityWindow = 30 * 24 * time.Hour

// Metrics is the scalar engagement rollup across both tables.
type Metrics struct {
	TotalUsers       int
	ActiveUsers      int
	ConversionRate   float64
	Revenue          int
	AvgEventsPerUser float64
	TotalEvents      int
}

// ComputeMetrics produces the overview numbers: roster size, users with
// events in the last thirty days of the log, the share of users who ever
// completed a task, estimated monthly revenue from subscriptions, and event
// volume. Empty tables yield zeros.
func ComputeMetrics(events []domain.Event, users []domain.User) Metrics {
	m := Metrics{
		TotalUsers:  len(users),
		TotalEvents: len(events),
	}

	var maxTimestamp time.Time
	for _, ev := range events {
		if ev.Timestamp.After(maxTimestamp) {
			maxTimestamp = ev.Timestamp
		}
	}
	activeSince := maxTimestamp.Add(-metricsActivityWindow)

	active := map[string]struct{}{}
	converted := map[string]struct{}{}
	for _, ev := range events {
		if !ev.Timestamp.Before(activeSince) {
			active[ev.UserID] = struct{}{}
		}
		if ev.EventName == domain.EventCompleteTask {
			converted[ev.UserID] = struct{}{}
		}
	}
	m.ActiveUsers = len(active)

	for _, u := range users {
		m.Revenue += u.MonthlyRevenue()
	}

	if m.TotalUsers > 0 {
		m.ConversionRate = round2(float64(len(converted)) / float64(m.TotalUsers) * 100)
		m.AvgEventsPerUser = round2(float64(m.TotalEvents) / float64(m.TotalUsers))
	}
	return m
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
