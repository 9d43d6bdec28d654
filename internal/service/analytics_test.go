package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/vizsprints/analytics-service/internal/domain"
	"github.com/vizsprints/analytics-service/internal/dto"
	"github.com/vizsprints/analytics-service/internal/snapshot"
)

func newTestService(events []domain.Event, users []domain.User) *AnalyticsService {
	store := snapshot.NewStore()
	store.Swap(snapshot.New(events, users))
	return NewAnalyticsService(store, zap.NewNop())
}

func testEvent(userID, eventName string, at time.Time) domain.Event {
	return domain.Event{
		EventID:   userID + "-" + eventName + "-" + at.Format("150405"),
		UserID:    userID,
		EventName: eventName,
		Timestamp: at,
	}
}

func testUser(userID string, variant domain.ABVariant) domain.User {
	return domain.User{
		UserID:             userID,
		JoinedAt:           time.Date(2023, 1, 2, 8, 30, 0, 0, time.UTC),
		Device:             domain.DeviceMobile,
		Country:            "US",
		SubscriptionStatus: domain.SubscriptionFree,
		ABVariant:          variant,
	}
}

func TestAnalyticsService_Health(t *testing.T) {
	empty := newTestService(nil, nil)
	resp := empty.Health()
	assert.Equal(t, "healthy", resp.Status)
	assert.False(t, resp.UsersLoaded)
	assert.False(t, resp.EventsLoaded)

	at := time.Date(2023, 6, 1, 9, 0, 0, 0, time.UTC)
	loaded := newTestService(
		[]domain.Event{testEvent("u_0001", domain.EventViewDashboard, at)},
		[]domain.User{testUser("u_0001", domain.VariantA)})
	resp = loaded.Health()
	assert.True(t, resp.UsersLoaded)
	assert.True(t, resp.EventsLoaded)
}

func TestAnalyticsService_GetMetrics_Empty(t *testing.T) {
	svc := newTestService(nil, nil)

	resp := svc.GetMetrics()

	assert.Equal(t, 0, resp.TotalUsers)
	assert.Equal(t, 0, resp.TotalEvents)
	assert.Equal(t, 0.0, resp.ConversionRate)
}

func TestAnalyticsService_GetFunnel_Labels(t *testing.T) {
	at := time.Date(2023, 6, 1, 9, 0, 0, 0, time.UTC)
	svc := newTestService(
		[]domain.Event{
			testEvent("u_0001", domain.EventSignupSuccess, at),
			testEvent("u_0001", domain.EventViewDashboard, at.Add(time.Minute)),
		},
		[]domain.User{
			testUser("u_0001", domain.VariantA),
			testUser("u_0002", domain.VariantB),
		})

	resp := svc.GetFunnel()

	require.Len(t, resp.Funnel, 5)
	assert.Equal(t, "Signup Success", resp.Funnel[0].Stage)
	assert.Equal(t, 1, resp.Funnel[0].Users)
	assert.Equal(t, 50.0, resp.Funnel[0].ConversionFromTotal)
	assert.Equal(t, 2, resp.TotalUsers)
}

func TestAnalyticsService_GetCohorts(t *testing.T) {
	svc := newTestService(
		[]domain.Event{
			testEvent("u_0001", domain.EventViewDashboard, time.Date(2023, 1, 10, 9, 0, 0, 0, time.UTC)),
			testEvent("u_0001", domain.EventViewDashboard, time.Date(2023, 2, 10, 9, 0, 0, 0, time.UTC)),
		},
		[]domain.User{testUser("u_0001", domain.VariantA)})

	resp := svc.GetCohorts()

	require.Len(t, resp.Cohorts, 1)
	assert.Equal(t, "2023-01", resp.Cohorts[0].Cohort)
	assert.Equal(t, 1, resp.Cohorts[0].Size)
	assert.Equal(t, []float64{100, 100}, resp.Cohorts[0].Retention)
	assert.Equal(t, 1, resp.MaxMonths)
}

func TestAnalyticsService_GetUserSessions_InvalidSortBy(t *testing.T) {
	svc := newTestService(nil, nil)

	_, err := svc.GetUserSessions(&dto.UserSessionsRequest{Limit: 100, SortBy: "revenue"})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "sort_by")
}

func TestAnalyticsService_GetUserSessions_LimitClamped(t *testing.T) {
	at := time.Date(2023, 6, 1, 9, 0, 0, 0, time.UTC)
	var events []domain.Event
	for _, id := range []string{"u_0001", "u_0002", "u_0003"} {
		events = append(events, testEvent(id, domain.EventViewDashboard, at))
	}
	svc := newTestService(events, nil)

	resp, err := svc.GetUserSessions(&dto.UserSessionsRequest{Limit: 5000, SortBy: "total_hours"})

	require.NoError(t, err)
	assert.Len(t, resp.UserSessions, 3)
	assert.Equal(t, 3, resp.TotalUsers)
}

func TestAnalyticsService_GetUserSessions_Formatting(t *testing.T) {
	start := time.Date(2023, 6, 1, 9, 0, 0, 0, time.UTC)
	svc := newTestService([]domain.Event{
		testEvent("u_0001", domain.EventViewDashboard, start),
		testEvent("u_0001", domain.EventCreateChart, start.Add(6*time.Minute)),
	}, nil)

	resp, err := svc.GetUserSessions(&dto.UserSessionsRequest{Limit: 100, SortBy: "total_hours"})

	require.NoError(t, err)
	require.Len(t, resp.UserSessions, 1)
	entry := resp.UserSessions[0]
	assert.Equal(t, "u_0001", entry.UserID)
	assert.Equal(t, 1, entry.TotalSessions)
	assert.Equal(t, 0.1, entry.TotalHours)
	assert.Equal(t, "2023-06-01T09:00:00Z", entry.FirstActivity)
	assert.Equal(t, "2023-06-01T09:06:00Z", entry.LastActivity)
	assert.Equal(t, "active", entry.Status)
}

func TestAnalyticsService_GetABTest_Simulated(t *testing.T) {
	svc := newTestService(nil, nil)

	nA, nB := 1000, 1000
	convA, convB := 10.0, 14.0
	resp, err := svc.GetABTest(&dto.ABTestRequest{
		ConfidenceLevel: 0.95,
		ManualNA:        &nA,
		ManualConvA:     &convA,
		ManualNB:        &nB,
		ManualConvB:     &convB,
	})

	require.NoError(t, err)
	assert.True(t, resp.Stats.Significant)
	assert.Less(t, resp.Stats.PValue, 0.05)
	assert.Equal(t, 40.0, resp.Lift)
	assert.Equal(t, 0.95, resp.Stats.ConfidenceLevel)
}

func TestAnalyticsService_GetABTest_SimulatedValidation(t *testing.T) {
	svc := newTestService(nil, nil)

	nA, nB := 0, 1000
	convA, convB := 10.0, 14.0
	_, err := svc.GetABTest(&dto.ABTestRequest{
		ManualNA:    &nA,
		ManualConvA: &convA,
		ManualNB:    &nB,
		ManualConvB: &convB,
	})
	assert.Error(t, err)

	nA = 1000
	convB = 140.0
	_, err = svc.GetABTest(&dto.ABTestRequest{
		ManualNA:    &nA,
		ManualConvA: &convA,
		ManualNB:    &nB,
		ManualConvB: &convB,
	})
	assert.Error(t, err)
}

func TestAnalyticsService_GetABTest_Live(t *testing.T) {
	at := time.Date(2023, 6, 1, 9, 0, 0, 0, time.UTC)
	users := []domain.User{
		testUser("u_0001", domain.VariantA),
		testUser("u_0002", domain.VariantA),
		testUser("u_0003", domain.VariantB),
		testUser("u_0004", domain.VariantB),
	}
	events := []domain.Event{
		testEvent("u_0001", domain.EventInviteUser, at),
		testEvent("u_0003", domain.EventInviteUser, at),
		testEvent("u_0004", domain.EventInviteUser, at),
		testEvent("u_0004", domain.EventViewDashboard, at.Add(time.Minute)),
	}
	svc := newTestService(events, users)

	resp, err := svc.GetABTest(&dto.ABTestRequest{ConfidenceLevel: 0.95})

	require.NoError(t, err)
	assert.Equal(t, 2, resp.VariantA.TotalUsers)
	assert.Equal(t, 2, resp.VariantB.TotalUsers)
	assert.Equal(t, 1, resp.VariantA.TotalEvents)
	assert.Equal(t, 3, resp.VariantB.TotalEvents)
	// lift is the avg-events-per-user improvement: 1.5 over 0.5
	assert.Equal(t, 200.0, resp.Lift)
	require.Len(t, resp.VariantB.Funnel, 5)
	assert.Equal(t, "invite_user", resp.VariantB.Funnel[4].Stage)
	assert.Equal(t, 100.0, resp.VariantB.Funnel[4].ConversionRate)
}

func TestAnalyticsService_GetABTest_HeadLimits(t *testing.T) {
	at := time.Date(2023, 6, 1, 9, 0, 0, 0, time.UTC)
	users := []domain.User{
		testUser("u_0001", domain.VariantA),
		testUser("u_0002", domain.VariantB),
		testUser("u_0003", domain.VariantB),
	}
	events := []domain.Event{
		testEvent("u_0001", domain.EventViewDashboard, at),
		testEvent("u_0003", domain.EventViewDashboard, at),
	}
	svc := newTestService(events, users)

	limit := 2
	resp, err := svc.GetABTest(&dto.ABTestRequest{Limit: &limit})

	require.NoError(t, err)
	// u_0003 falls outside the user head-limit, so its event drops out too
	assert.Equal(t, 1, resp.VariantA.TotalUsers)
	assert.Equal(t, 1, resp.VariantB.TotalUsers)
	assert.Equal(t, 0, resp.VariantB.TotalEvents)

	bad := 0
	_, err = svc.GetABTest(&dto.ABTestRequest{Limit: &bad})
	assert.Error(t, err)
}

func TestAnalyticsService_GetKPITimeSeries(t *testing.T) {
	svc := newTestService(
		[]domain.Event{testEvent("u_0001", domain.EventViewDashboard, time.Date(2023, 6, 1, 9, 0, 0, 0, time.UTC))},
		[]domain.User{testUser("u_0001", domain.VariantA)})

	series := svc.GetKPITimeSeries()

	require.Len(t, series, 2)
	assert.Equal(t, "2023-01-02", series[0].Date)
	assert.Equal(t, 1, series[0].Signups)
	assert.Equal(t, 0, series[0].DAU)
	assert.Equal(t, "2023-06-01", series[1].Date)
	assert.Equal(t, 1, series[1].DAU)
}

func TestAnalyticsService_ListUsers_Filters(t *testing.T) {
	users := []domain.User{
		testUser("u_0001", domain.VariantA),
		testUser("u_0002", domain.VariantB),
	}
	users[1].Country = "DE"
	users[1].SubscriptionStatus = domain.SubscriptionPremium
	svc := newTestService(nil, users)

	all := svc.ListUsers(&dto.ListUsersRequest{})
	assert.Equal(t, 2, all.Total)

	filtered := svc.ListUsers(&dto.ListUsersRequest{Country: "DE"})
	require.Equal(t, 1, filtered.Total)
	assert.Equal(t, "u_0002", filtered.Users[0].UserID)
	assert.Equal(t, "Premium", filtered.Users[0].SubscriptionStatus)
	assert.Equal(t, "2023-01-02T08:30:00Z", filtered.Users[0].JoinedAt)
}

func TestAnalyticsService_ListEvents_FiltersAndCap(t *testing.T) {
	at := time.Date(2023, 6, 1, 9, 0, 0, 0, time.UTC)
	var events []domain.Event
	for i := 0; i < maxEventRows+5; i++ {
		events = append(events, testEvent("u_0001", domain.EventViewDashboard, at.Add(time.Duration(i)*time.Second)))
	}
	events = append(events, testEvent("u_0002", domain.EventCompleteTask, at))
	svc := newTestService(events, nil)

	resp, err := svc.ListEvents(&dto.ListEventsRequest{UserID: "u_0001"})
	require.NoError(t, err)
	assert.Equal(t, maxEventRows+5, resp.Total)
	assert.Len(t, resp.Events, maxEventRows)

	resp, err = svc.ListEvents(&dto.ListEventsRequest{EventName: domain.EventCompleteTask})
	require.NoError(t, err)
	require.Equal(t, 1, resp.Total)
	assert.Equal(t, "u_0002", resp.Events[0].UserID)
}

func TestAnalyticsService_ListEvents_DateRange(t *testing.T) {
	svc := newTestService([]domain.Event{
		testEvent("u_0001", domain.EventViewDashboard, time.Date(2023, 3, 1, 9, 0, 0, 0, time.UTC)),
		testEvent("u_0001", domain.EventViewDashboard, time.Date(2023, 9, 1, 9, 0, 0, 0, time.UTC)),
	}, nil)

	resp, err := svc.ListEvents(&dto.ListEventsRequest{
		StartDate: "2023-06-01T00:00:00Z",
		EndDate:   "2023-12-31T23:59:59Z",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Total)

	_, err = svc.ListEvents(&dto.ListEventsRequest{StartDate: "last tuesday"})
	assert.Error(t, err)
}
