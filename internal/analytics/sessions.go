package analytics

import (
	"sort"
	"time"

	"github.com/vizsprints/analytics-service/internal/domain"
)

// DefaultSessionTimeout is the inactivity gap that closes a session.
const DefaultSessionTimeout = 30 * time.Minute

// singleEventSessionHours is the floor duration assigned to sessions holding
// exactly one event, so they do not collapse to zero and distort averages.
const singleEventSessionHours = 1.0 / 60

// Session is a contiguous run of one user's events separated by gaps no
// larger than the inactivity timeout.
type Session struct {
	UserID        string
	Index         int
	Start         time.Time
	End           time.Time
	EventCount    int
	DurationHours float64
}

// UserSessionStats aggregates a user's sessions. Only users with at least
// one event ever appear; a user with no events has no sessions at all.
type UserSessionStats struct {
	UserID             string
	TotalSessions      int
	TotalHours         float64
	AvgSessionDuration float64
	FirstActivity      time.Time
	LastActivity       time.Time
	Status             string
}

// Valid sort keys for TopSessionStats.
const (
	SortByTotalHours    = "total_hours"
	SortByTotalSessions = "total_sessions"
	SortByLastActivity  = "last_activity"
)

const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// activityWindow is how far back from the newest event a user's last
// activity may be while still counting as active.
const activityWindow = 7 * 24 * time.Hour

// ReconstructSessions splits the full event log into per-user sessions.
// Events are stably sorted by timestamp within each user; a new session
// starts on the first event and whenever the gap since the previous event
// exceeds timeout. Pass timeout <= 0 for the default.
func ReconstructSessions(events []domain.Event, timeout time.Duration) []Session {
	if timeout <= 0 {
		timeout = DefaultSessionTimeout
	}

	byUser := groupEventsByUser(events)

	userIDs := make([]string, 0, len(byUser))
	for id := range byUser {
		userIDs = append(userIDs, id)
	}
	sort.Strings(userIDs)

	var sessions []Session
	for _, userID := range userIDs {
		sessions = append(sessions, reconstructUserSessions(userID, byUser[userID], timeout)...)
	}
	return sessions
}

func reconstructUserSessions(userID string, events []domain.Event, timeout time.Duration) []Session {
	if len(events) == 0 {
		return nil
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Timestamp.Before(events[j].Timestamp)
	})

	var sessions []Session
	current := Session{
		UserID:     userID,
		Index:      0,
		Start:      events[0].Timestamp,
		End:        events[0].Timestamp,
		EventCount: 1,
	}

	for _, ev := range events[1:] {
		if ev.Timestamp.Sub(current.End) > timeout {
			sessions = append(sessions, finishSession(current))
			current = Session{
				UserID:     userID,
				Index:      current.Index + 1,
				Start:      ev.Timestamp,
				End:        ev.Timestamp,
				EventCount: 1,
			}
			continue
		}
		current.End = ev.Timestamp
		current.EventCount++
	}
	sessions = append(sessions, finishSession(current))

	return sessions
}

func finishSession(s Session) Session {
	if s.EventCount == 1 {
		s.DurationHours = singleEventSessionHours
		return s
	}
	s.DurationHours = s.End.Sub(s.Start).Hours()
	return s
}

// ComputeSessionStats reconstructs sessions for every user and rolls them up.
// A user is active when their last activity falls within seven days of the
// newest event in the whole log.
func ComputeSessionStats(events []domain.Event, timeout time.Duration) []UserSessionStats {
	sessions := ReconstructSessions(events, timeout)
	if len(sessions) == 0 {
		return nil
	}

	var maxTimestamp time.Time
	for _, ev := range events {
		if ev.Timestamp.After(maxTimestamp) {
			maxTimestamp = ev.Timestamp
		}
	}
	activeSince := maxTimestamp.Add(-activityWindow)

	byUser := map[string]*UserSessionStats{}
	var order []string
	for _, s := range sessions {
		stats, ok := byUser[s.UserID]
		if !ok {
			stats = &UserSessionStats{
				UserID:        s.UserID,
				FirstActivity: s.Start,
				LastActivity:  s.End,
			}
			byUser[s.UserID] = stats
			order = append(order, s.UserID)
		}
		stats.TotalSessions++
		stats.TotalHours += s.DurationHours
		if s.Start.Before(stats.FirstActivity) {
			stats.FirstActivity = s.Start
		}
		if s.End.After(stats.LastActivity) {
			stats.LastActivity = s.End
		}
	}

	result := make([]UserSessionStats, 0, len(byUser))
	for _, userID := range order {
		stats := byUser[userID]
		stats.AvgSessionDuration = round2(stats.TotalHours / float64(stats.TotalSessions))
		stats.TotalHours = round2(stats.TotalHours)
		stats.Status = StatusInactive
		if !stats.LastActivity.Before(activeSince) {
			stats.Status = StatusActive
		}
		result = append(result, *stats)
	}
	return result
}

// TopSessionStats sorts user session stats descending by the requested key
// and keeps at most limit entries. Unknown keys fall back to total hours;
// limit <= 0 keeps everything.
func TopSessionStats(stats []UserSessionStats, sortBy string, limit int) []UserSessionStats {
	sorted := make([]UserSessionStats, len(stats))
	copy(sorted, stats)

	switch sortBy {
	case SortByTotalSessions:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].TotalSessions > sorted[j].TotalSessions
		})
	case SortByLastActivity:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].LastActivity.After(sorted[j].LastActivity)
		})
	default:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].TotalHours > sorted[j].TotalHours
		})
	}

	if limit > 0 && len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted
}

func groupEventsByUser(events []domain.Event) map[string][]domain.Event {
	byUser := map[string][]domain.Event{}
	for _, ev := range events {
		byUser[ev.UserID] = append(byUser[ev.UserID], ev)
	}
	return byUser
}
