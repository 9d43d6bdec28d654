package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/vizsprints/analytics-service/internal/domain"
)

var sessionBase = time.Date(2023, 6, 1, 9, 0, 0, 0, time.UTC)

func eventAt(userID, name string, at time.Time) domain.Event {
	return domain.Event{
		EventID:   "e_" + userID + "_" + at.Format("150405"),
		UserID:    userID,
		EventName: name,
		Timestamp: at,
	}
}

func TestReconstructSessions_GapSplitsSession(t *testing.T) {
	// 09:00, 09:10, then a 50 minute gap, then 10:00, 10:05
	events := []domain.Event{
		eventAt("u1", "view_dashboard", sessionBase),
		eventAt("u1", "start_project", sessionBase.Add(10*time.Minute)),
		eventAt("u1", "view_dashboard", sessionBase.Add(60*time.Minute)),
		eventAt("u1", "complete_task", sessionBase.Add(65*time.Minute)),
	}

	sessions := ReconstructSessions(events, DefaultSessionTimeout)

	assert.Len(t, sessions, 2)

	assert.Equal(t, 0, sessions[0].Index)
	assert.Equal(t, 2, sessions[0].EventCount)
	assert.Equal(t, sessionBase, sessions[0].Start)
	assert.Equal(t, sessionBase.Add(10*time.Minute), sessions[0].End)

	assert.Equal(t, 1, sessions[1].Index)
	assert.Equal(t, 2, sessions[1].EventCount)
	assert.Equal(t, sessionBase.Add(60*time.Minute), sessions[1].Start)
	assert.Equal(t, sessionBase.Add(65*time.Minute), sessions[1].End)
}

func TestReconstructSessions_GapAtTimeoutStaysTogether(t *testing.T) {
	events := []domain.Event{
		eventAt("u1", "view_dashboard", sessionBase),
		eventAt("u1", "start_project", sessionBase.Add(30*time.Minute)),
	}

	sessions := ReconstructSessions(events, DefaultSessionTimeout)

	assert.Len(t, sessions, 1)
	assert.Equal(t, 2, sessions[0].EventCount)
	assert.InDelta(t, 0.5, sessions[0].DurationHours, 1e-9)
}

func TestReconstructSessions_SingleEventFloor(t *testing.T) {
	events := []domain.Event{
		eventAt("u1", "signup_success", sessionBase),
	}

	sessions := ReconstructSessions(events, DefaultSessionTimeout)

	assert.Len(t, sessions, 1)
	assert.Equal(t, 1, sessions[0].EventCount)
	assert.InDelta(t, 1.0/60, sessions[0].DurationHours, 1e-9)
}

func TestReconstructSessions_UnsortedInput(t *testing.T) {
	events := []domain.Event{
		eventAt("u1", "complete_task", sessionBase.Add(5*time.Minute)),
		eventAt("u1", "signup_success", sessionBase),
	}

	sessions := ReconstructSessions(events, DefaultSessionTimeout)

	assert.Len(t, sessions, 1)
	assert.Equal(t, sessionBase, sessions[0].Start)
	assert.Equal(t, sessionBase.Add(5*time.Minute), sessions[0].End)
}

func TestReconstructSessions_EmptyInput(t *testing.T) {
	assert.Empty(t, ReconstructSessions(nil, DefaultSessionTimeout))
}

func TestComputeSessionStats_Rollup(t *testing.T) {
	events := []domain.Event{
		// u1: two sessions, the second a single event two days later
		eventAt("u1", "view_dashboard", sessionBase),
		eventAt("u1", "start_project", sessionBase.Add(time.Hour)),
		eventAt("u1", "view_dashboard", sessionBase.Add(48*time.Hour)),
		// u2: one event ten days before u1's last, so inactive
		eventAt("u2", "signup_success", sessionBase.Add(-8*24*time.Hour)),
	}

	stats := ComputeSessionStats(events, DefaultSessionTimeout)

	byUser := map[string]UserSessionStats{}
	for _, s := range stats {
		byUser[s.UserID] = s
	}

	u1 := byUser["u1"]
	assert.Equal(t, 2, u1.TotalSessions)
	assert.InDelta(t, 1.0+1.0/60, u1.TotalHours, 0.01)
	assert.Equal(t, sessionBase, u1.FirstActivity)
	assert.Equal(t, sessionBase.Add(48*time.Hour), u1.LastActivity)
	assert.Equal(t, StatusActive, u1.Status)

	u2 := byUser["u2"]
	assert.Equal(t, 1, u2.TotalSessions)
	assert.Equal(t, StatusInactive, u2.Status)
}

func TestComputeSessionStats_UsersWithoutEventsAbsent(t *testing.T) {
	events := []domain.Event{
		eventAt("u1", "signup_success", sessionBase),
	}

	stats := ComputeSessionStats(events, DefaultSessionTimeout)

	assert.Len(t, stats, 1)
	assert.Equal(t, "u1", stats[0].UserID)
}

func TestTopSessionStats_SortAndLimit(t *testing.T) {
	stats := []UserSessionStats{
		{UserID: "u1", TotalHours: 1, TotalSessions: 9, LastActivity: sessionBase},
		{UserID: "u2", TotalHours: 5, TotalSessions: 2, LastActivity: sessionBase.Add(time.Hour)},
		{UserID: "u3", TotalHours: 3, TotalSessions: 4, LastActivity: sessionBase.Add(2 * time.Hour)},
	}

	byHours := TopSessionStats(stats, SortByTotalHours, 2)
	assert.Len(t, byHours, 2)
	assert.Equal(t, "u2", byHours[0].UserID)
	assert.Equal(t, "u3", byHours[1].UserID)

	bySessions := TopSessionStats(stats, SortByTotalSessions, 0)
	assert.Equal(t, "u1", bySessions[0].UserID)

	byActivity := TopSessionStats(stats, SortByLastActivity, 0)
	assert.Equal(t, "u3", byActivity[0].UserID)

	// input order untouched
	assert.Equal(t, "u1", stats[0].UserID)
}
