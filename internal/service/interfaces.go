package service

import (
	"github.com/vizsprints/analytics-service/internal/dto"
)

// AnalyticsServicer defines the interface for analytics service operations
type AnalyticsServicer interface {
	Health() *dto.HealthResponse
	GetMetrics() *dto.MetricsResponse
	GetCohorts() *dto.CohortResponse
	GetFunnel() *dto.FunnelResponse
	GetABTest(req *dto.ABTestRequest) (*dto.ABTestResponse, error)
	GetUserSessions(req *dto.UserSessionsRequest) (*dto.UserSessionsResponse, error)
	GetKPITimeSeries() []dto.KPIPointResponse
	ListUsers(req *dto.ListUsersRequest) *dto.ListUsersResponse
	ListEvents(req *dto.ListEventsRequest) (*dto.ListEventsResponse, error)
}
