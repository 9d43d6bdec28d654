package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/vizsprints/analytics-service/internal/domain"
)

func userJoined(userID string, joinedAt time.Time) domain.User {
	return domain.User{
		UserID:             userID,
		JoinedAt:           joinedAt,
		Device:             domain.DeviceDesktop,
		Country:            "US",
		SubscriptionStatus: domain.SubscriptionFree,
		ABVariant:          domain.VariantA,
	}
}

func TestComputeCohortRetention_Matrix(t *testing.T) {
	jan := time.Date(2023, 1, 10, 12, 0, 0, 0, time.UTC)
	feb := time.Date(2023, 2, 5, 12, 0, 0, 0, time.UTC)
	mar := time.Date(2023, 3, 1, 12, 0, 0, 0, time.UTC)

	users := []domain.User{
		userJoined("u1", jan),
		userJoined("u2", jan),
		userJoined("u3", feb),
	}
	events := []domain.Event{
		eventAt("u1", "signup_success", jan),
		eventAt("u2", "signup_success", jan),
		eventAt("u1", "view_dashboard", feb), // u1 retained in month 1
		eventAt("u1", "view_dashboard", mar), // and month 2
		eventAt("u3", "signup_success", feb),
	}

	table := ComputeCohortRetention(events, users)

	assert.Equal(t, 2, table.MaxMonths)
	assert.Len(t, table.Cohorts, 2)

	janCohort := table.Cohorts[0]
	assert.Equal(t, "2023-01", janCohort.Cohort)
	assert.Equal(t, 2, janCohort.Size)
	assert.Equal(t, []float64{100, 50, 50}, janCohort.Retention)

	febCohort := table.Cohorts[1]
	assert.Equal(t, "2023-02", febCohort.Cohort)
	assert.Equal(t, 1, febCohort.Size)
	// zero-filled out to the global max offset
	assert.Equal(t, []float64{100, 0, 0}, febCohort.Retention)
}

func TestComputeCohortRetention_BoundsHold(t *testing.T) {
	jan := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	users := []domain.User{userJoined("u1", jan), userJoined("u2", jan)}
	events := []domain.Event{
		eventAt("u1", "signup_success", jan),
		eventAt("u2", "signup_success", jan),
		eventAt("u1", "view_dashboard", jan.AddDate(0, 5, 0)),
	}

	table := ComputeCohortRetention(events, users)

	for _, row := range table.Cohorts {
		assert.Len(t, row.Retention, table.MaxMonths+1)
		for _, pct := range row.Retention {
			assert.GreaterOrEqual(t, pct, 0.0)
			assert.LessOrEqual(t, pct, 100.0)
		}
	}
}

func TestComputeCohortRetention_YearBoundary(t *testing.T) {
	dec := time.Date(2023, 12, 20, 0, 0, 0, 0, time.UTC)
	users := []domain.User{userJoined("u1", dec)}
	events := []domain.Event{
		eventAt("u1", "signup_success", dec),
		eventAt("u1", "view_dashboard", time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC)),
	}

	table := ComputeCohortRetention(events, users)

	assert.Equal(t, 1, table.MaxMonths)
	assert.Equal(t, []float64{100, 100}, table.Cohorts[0].Retention)
}

func TestComputeCohortRetention_EventBeforeJoinSkipped(t *testing.T) {
	feb := time.Date(2023, 2, 1, 0, 0, 0, 0, time.UTC)
	users := []domain.User{userJoined("u1", feb)}
	events := []domain.Event{
		eventAt("u1", "view_dashboard", feb.AddDate(0, -1, 0)),
		eventAt("u1", "signup_success", feb),
	}

	table := ComputeCohortRetention(events, users)

	assert.Equal(t, 0, table.MaxMonths)
	assert.Equal(t, []float64{100}, table.Cohorts[0].Retention)
}

func TestComputeCohortRetention_EmptyInput(t *testing.T) {
	table := ComputeCohortRetention(nil, nil)
	assert.Empty(t, table.Cohorts)
	assert.Equal(t, 0, table.MaxMonths)
}

func TestComputeCohortRetention_UnknownUserIgnored(t *testing.T) {
	jan := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	users := []domain.User{userJoined("u1", jan)}
	events := []domain.Event{
		eventAt("u1", "signup_success", jan),
		eventAt("ghost", "signup_success", jan),
	}

	table := ComputeCohortRetention(events, users)

	assert.Len(t, table.Cohorts, 1)
	assert.Equal(t, 1, table.Cohorts[0].Size)
}
