package analytics

import (
	"sort"
	"time"

	"github.com/vizsprints/analytics-service/internal/domain"
)

// CohortRow is one signup-month cohort with its retention per month offset.
// Retention[k] is the percentage of the cohort that produced at least one
// event k months after joining; index 0 is the join month itself.
type CohortRow struct {
	Cohort    string
	Size      int
	Retention []float64
}

// CohortTable is the full month-over-month retention matrix. Every row
// carries MaxMonths+1 retention values, zero-filled where a cohort had no
// activity in a given offset.
type CohortTable struct {
	Cohorts   []CohortRow
	MaxMonths int
}

// ComputeCohortRetention joins events to the roster on user id and buckets
// activity by (signup month, months since join). Cohort sizes come from the
// same join, so a user with no events at all is absent from both the
// numerator and the denominator. Events timestamped before the user joined
// are skipped as defective input rather than producing negative offsets.
func ComputeCohortRetention(events []domain.Event, users []domain.User) CohortTable {
	joined := map[string]time.Time{}
	for _, u := range users {
		joined[u.UserID] = u.JoinedAt
	}

	// distinct users per (cohort month, months since join), plus per-cohort
	// distinct membership for the denominator
	activity := map[string]map[int]map[string]struct{}{}
	members := map[string]map[string]struct{}{}
	maxMonths := 0

	for _, ev := range events {
		joinedAt, ok := joined[ev.UserID]
		if !ok {
			continue
		}

		cohort := joinedAt.Format("2006-01")
		offset := monthIndex(ev.Timestamp) - monthIndex(joinedAt)
		if offset < 0 {
			continue
		}
		if offset > maxMonths {
			maxMonths = offset
		}

		if activity[cohort] == nil {
			activity[cohort] = map[int]map[string]struct{}{}
		}
		if activity[cohort][offset] == nil {
			activity[cohort][offset] = map[string]struct{}{}
		}
		activity[cohort][offset][ev.UserID] = struct{}{}

		if members[cohort] == nil {
			members[cohort] = map[string]struct{}{}
		}
		members[cohort][ev.UserID] = struct{}{}
	}

	if len(activity) == 0 {
		return CohortTable{}
	}

	cohortKeys := make([]string, 0, len(activity))
	for cohort := range activity {
		cohortKeys = append(cohortKeys, cohort)
	}
	sort.Strings(cohortKeys)

	table := CohortTable{MaxMonths: maxMonths}
	for _, cohort := range cohortKeys {
		size := len(members[cohort])
		row := CohortRow{
			Cohort:    cohort,
			Size:      size,
			Retention: make([]float64, maxMonths+1),
		}
		for offset, active := range activity[cohort] {
			row.Retention[offset] = round2(float64(len(active)) / float64(size) * 100)
		}
		table.Cohorts = append(table.Cohorts, row)
	}
	return table
}

// monthIndex counts calendar months from year zero, making month arithmetic
// a plain integer subtraction.
func monthIndex(t time.Time) int {
	return t.Year()*12 + int(t.Month()) - 1
}
