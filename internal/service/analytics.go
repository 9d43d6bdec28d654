package service

import (
	"encoding/json"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/vizsprints/analytics-service/internal/analytics"
	"github.com/vizsprints/analytics-service/internal/domain"
	"github.com/vizsprints/analytics-service/internal/dto"
	"github.com/vizsprints/analytics-service/internal/snapshot"
)

const (
	// maxSessionLimit caps how many user rollups a single query may return.
	maxSessionLimit = 1000

	// maxEventRows caps the event listing payload; Total still counts all matches.
	maxEventRows = 1000
)

// AnalyticsService serves all analytics queries from the current snapshot.
// Every method reads the snapshot exactly once, so a reload mid-request can
// never mix old users with new events.
type AnalyticsService struct {
	store *snapshot.Store
	log   *zap.Logger
}

// NewAnalyticsService creates a new analytics service
func NewAnalyticsService(store *snapshot.Store, log *zap.Logger) *AnalyticsService {
	return &AnalyticsService{
		store: store,
		log:   log,
	}
}

// Health reports whether both tables have been loaded
func (s *AnalyticsService) Health() *dto.HealthResponse {
	snap := s.store.Current()
	return &dto.HealthResponse{
		Status:       "healthy",
		UsersLoaded:  len(snap.Users) > 0,
		EventsLoaded: len(snap.Events) > 0,
	}
}

// GetMetrics computes the overview rollup
func (s *AnalyticsService) GetMetrics() *dto.MetricsResponse {
	snap := s.store.Current()
	m := analytics.ComputeMetrics(snap.Events, snap.Users)

	return &dto.MetricsResponse{
		TotalUsers:       m.TotalUsers,
		ActiveUsers:      m.ActiveUsers,
		ConversionRate:   m.ConversionRate,
		Revenue:          m.Revenue,
		AvgEventsPerUser: m.AvgEventsPerUser,
		TotalEvents:      m.TotalEvents,
	}
}

// GetCohorts computes the month-over-month retention matrix
func (s *AnalyticsService) GetCohorts() *dto.CohortResponse {
	snap := s.store.Current()
	table := analytics.ComputeCohortRetention(snap.Events, snap.Users)

	resp := &dto.CohortResponse{
		Cohorts:   make([]dto.CohortEntry, 0, len(table.Cohorts)),
		MaxMonths: table.MaxMonths,
	}
	for _, row := range table.Cohorts {
		resp.Cohorts = append(resp.Cohorts, dto.CohortEntry{
			Cohort:    row.Cohort,
			Size:      row.Size,
			Retention: row.Retention,
		})
	}
	return resp
}

// GetFunnel computes the overall conversion funnel
func (s *AnalyticsService) GetFunnel() *dto.FunnelResponse {
	snap := s.store.Current()
	stages := analytics.ComputeFunnel(snap.Events, snap.Users, nil)

	resp := &dto.FunnelResponse{
		Funnel:     make([]dto.FunnelStageResponse, 0, len(stages)),
		TotalUsers: len(snap.Users),
	}
	for _, st := range stages {
		resp.Funnel = append(resp.Funnel, dto.FunnelStageResponse{
			Stage:                  dto.StageLabel(st.Stage),
			Users:                  st.Users,
			ConversionFromTotal:    st.ConversionFromTotal,
			ConversionFromPrevious: st.ConversionFromPrevious,
			DropOff:                st.DropOff,
		})
	}
	return resp
}

// GetABTest compares the two experiment arms. With all four manual
// parameters present the z-test runs against those figures instead of the
// live funnel; the variant engagement blocks always reflect live data.
func (s *AnalyticsService) GetABTest(req *dto.ABTestRequest) (*dto.ABTestResponse, error) {
	snap := s.store.Current()
	events, users := snap.Events, snap.Users

	if req.Limit != nil {
		if *req.Limit <= 0 {
			return nil, fmt.Errorf("limit must be positive")
		}
		if *req.Limit < len(users) {
			users = users[:*req.Limit]
		}
	}
	if req.EventLimit != nil {
		if *req.EventLimit <= 0 {
			return nil, fmt.Errorf("event_limit must be positive")
		}
		if *req.EventLimit < len(events) {
			events = events[:*req.EventLimit]
		}
	}

	funnels := analytics.ComputeVariantFunnels(events, users, nil)
	variantA := funnels[domain.VariantA]
	variantB := funnels[domain.VariantB]

	var nA, nB int
	var convA, convB float64
	if req.Simulated() {
		if *req.ManualNA <= 0 || *req.ManualNB <= 0 {
			return nil, fmt.Errorf("manual sample sizes must be positive")
		}
		if *req.ManualConvA < 0 || *req.ManualConvA > 100 || *req.ManualConvB < 0 || *req.ManualConvB > 100 {
			return nil, fmt.Errorf("manual conversions must be percentages between 0 and 100")
		}
		nA, nB = *req.ManualNA, *req.ManualNB
		convA, convB = *req.ManualConvA/100, *req.ManualConvB/100
	} else {
		nA, convA = liveSample(variantA)
		nB, convB = liveSample(variantB)
	}

	result := analytics.EvaluateABTest(nA, convA, nB, convB, req.ConfidenceLevel)

	var lift float64
	if req.Simulated() {
		lift = relativeLift(convA, convB)
	} else {
		lift = relativeLift(variantA.AvgEventsPerUser, variantB.AvgEventsPerUser)
	}

	s.log.Info("A/B test evaluated",
		zap.Bool("simulated", req.Simulated()),
		zap.Float64("p_value", result.PValue),
		zap.Bool("significant", result.Significant))

	return &dto.ABTestResponse{
		VariantA: variantSummary(variantA),
		VariantB: variantSummary(variantB),
		Lift:     lift,
		Stats: dto.ABStats{
			PValue:          result.PValue,
			Significant:     result.Significant,
			Power:           result.Power,
			ZScore:          result.ZScore,
			ConfidenceLevel: result.ConfidenceLevel,
		},
	}, nil
}

// liveSample derives a variant's z-test inputs from its funnel: the sample is
// the variant population, the conversion its final stage rate.
func liveSample(vf analytics.VariantFunnel) (int, float64) {
	if len(vf.Funnel) == 0 {
		return vf.TotalUsers, 0
	}
	return vf.TotalUsers, vf.Funnel[len(vf.Funnel)-1].ConversionRate / 100
}

// relativeLift is B's relative improvement over A, in percent, zero when A
// has no baseline to improve on.
func relativeLift(a, b float64) float64 {
	if a == 0 {
		return 0
	}
	return math.Round((b-a)/a*100*100) / 100
}

func variantSummary(vf analytics.VariantFunnel) dto.VariantSummary {
	summary := dto.VariantSummary{
		TotalUsers:       vf.TotalUsers,
		TotalEvents:      vf.TotalEvents,
		AvgEventsPerUser: vf.AvgEventsPerUser,
		Funnel:           make([]dto.VariantStageResponse, 0, len(vf.Funnel)),
	}
	for _, st := range vf.Funnel {
		summary.Funnel = append(summary.Funnel, dto.VariantStageResponse{
			Stage:          st.Stage,
			Users:          st.Users,
			ConversionRate: st.ConversionRate,
		})
	}
	return summary
}

// GetUserSessions returns the top users by engagement
func (s *AnalyticsService) GetUserSessions(req *dto.UserSessionsRequest) (*dto.UserSessionsResponse, error) {
	switch req.SortBy {
	case analytics.SortByTotalHours, analytics.SortByTotalSessions, analytics.SortByLastActivity:
	default:
		s.log.Warn("Invalid sort_by value", zap.String("sort_by", req.SortBy))
		return nil, fmt.Errorf("sort_by must be one of total_hours, total_sessions, last_activity")
	}

	if req.Limit <= 0 {
		return nil, fmt.Errorf("limit must be positive")
	}
	limit := req.Limit
	if limit > maxSessionLimit {
		limit = maxSessionLimit
	}

	snap := s.store.Current()
	stats := analytics.ComputeSessionStats(snap.Events, 0)
	top := analytics.TopSessionStats(stats, req.SortBy, limit)

	resp := &dto.UserSessionsResponse{
		UserSessions: make([]dto.UserSessionEntry, 0, len(top)),
		TotalUsers:   len(stats),
	}
	for _, st := range top {
		resp.UserSessions = append(resp.UserSessions, dto.UserSessionEntry{
			UserID:             st.UserID,
			TotalSessions:      st.TotalSessions,
			TotalHours:         st.TotalHours,
			FirstActivity:      dto.FormatTimestamp(st.FirstActivity),
			LastActivity:       dto.FormatTimestamp(st.LastActivity),
			AvgSessionDuration: st.AvgSessionDuration,
			Status:             st.Status,
		})
	}
	return resp, nil
}

// GetKPITimeSeries returns the daily DAU and signups series
func (s *AnalyticsService) GetKPITimeSeries() []dto.KPIPointResponse {
	snap := s.store.Current()
	series := analytics.ComputeKPITimeSeries(snap.Events, snap.Users)

	resp := make([]dto.KPIPointResponse, 0, len(series))
	for _, p := range series {
		resp = append(resp, dto.KPIPointResponse{
			Date:    p.Date,
			DAU:     p.DAU,
			Signups: p.Signups,
		})
	}
	return resp
}

// ListUsers returns the roster, optionally filtered by field values
func (s *AnalyticsService) ListUsers(req *dto.ListUsersRequest) *dto.ListUsersResponse {
	snap := s.store.Current()

	resp := &dto.ListUsersResponse{Users: []dto.UserRecord{}}
	for _, u := range snap.Users {
		if req.Country != "" && u.Country != req.Country {
			continue
		}
		if req.Device != "" && string(u.Device) != req.Device {
			continue
		}
		if req.SubscriptionStatus != "" && string(u.SubscriptionStatus) != req.SubscriptionStatus {
			continue
		}
		resp.Users = append(resp.Users, dto.UserRecord{
			UserID:             u.UserID,
			JoinedAt:           dto.FormatTimestamp(u.JoinedAt),
			Device:             string(u.Device),
			Country:            u.Country,
			SubscriptionStatus: string(u.SubscriptionStatus),
			ABVariant:          string(u.ABVariant),
		})
	}
	resp.Total = len(resp.Users)
	return resp
}

// ListEvents returns the event log, optionally filtered, capped at the first
// thousand matching rows
func (s *AnalyticsService) ListEvents(req *dto.ListEventsRequest) (*dto.ListEventsResponse, error) {
	var startDate, endDate time.Time
	var err error
	if req.StartDate != "" {
		if startDate, err = time.Parse(time.RFC3339, req.StartDate); err != nil {
			return nil, fmt.Errorf("invalid start_date: %w", err)
		}
	}
	if req.EndDate != "" {
		if endDate, err = time.Parse(time.RFC3339, req.EndDate); err != nil {
			return nil, fmt.Errorf("invalid end_date: %w", err)
		}
	}

	snap := s.store.Current()

	resp := &dto.ListEventsResponse{Events: []dto.EventRecord{}}
	for _, ev := range snap.Events {
		if req.UserID != "" && ev.UserID != req.UserID {
			continue
		}
		if req.EventName != "" && ev.EventName != req.EventName {
			continue
		}
		if !startDate.IsZero() && ev.Timestamp.Before(startDate) {
			continue
		}
		if !endDate.IsZero() && ev.Timestamp.After(endDate) {
			continue
		}

		resp.Total++
		if len(resp.Events) >= maxEventRows {
			continue
		}

		encoded, err := ev.Metadata.Encode()
		if err != nil {
			s.log.Warn("Failed to encode event metadata",
				zap.String("event_id", ev.EventID),
				zap.Error(err))
			encoded = "{}"
		}

		resp.Events = append(resp.Events, dto.EventRecord{
			EventID:   ev.EventID,
			UserID:    ev.UserID,
			EventName: ev.EventName,
			Timestamp: dto.FormatTimestamp(ev.Timestamp),
			Metadata:  json.RawMessage(encoded),
		})
	}
	return resp, nil
}
