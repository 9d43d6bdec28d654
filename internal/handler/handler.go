package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/vizsprints/analytics-service/docs"
	"github.com/vizsprints/analytics-service/internal/dto"
	"github.com/vizsprints/analytics-service/internal/service"
)

type Handler struct {
	analyticsService service.AnalyticsServicer
	router           *gin.Engine
	log              *zap.Logger
}

func NewHandler(analyticsService service.AnalyticsServicer, log *zap.Logger) *Handler {
	h := &Handler{
		analyticsService: analyticsService,
		router:           gin.Default(),
		log:              log,
	}

	h.registerRoutes()

	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

func (h *Handler) registerRoutes() {
	api := h.router.Group("/api")
	api.GET("/health", h.healthCheck)
	api.GET("/users", h.listUsers)
	api.GET("/events", h.listEvents)
	api.GET("/metrics", h.getMetrics)
	api.GET("/cohorts", h.getCohorts)
	api.GET("/funnel", h.getFunnel)
	api.GET("/ab-test", h.getABTest)
	api.GET("/user-sessions", h.getUserSessions)
	api.GET("/kpi-time-series", h.getKPITimeSeries)

	h.router.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

// healthCheck handles GET /api/health
// @Summary Health check
// @Description Check if the service is running and its data is loaded
// @Tags health
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Router /api/health [get]
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, h.analyticsService.Health())
}

// listUsers handles GET /api/users
// @Summary List users
// @Description List the user roster with optional field filters
// @Tags users
// @Produce json
// @Param country query string false "Country code filter" example:"US"
// @Param device query string false "Device filter" Enums(Mobile, Desktop, Tablet)
// @Param subscription_status query string false "Plan filter" Enums(Free, Premium, Enterprise)
// @Success 200 {object} dto.ListUsersResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/users [get]
func (h *Handler) listUsers(c *gin.Context) {
	var req dto.ListUsersRequest

	if err := c.ShouldBindQuery(&req); err != nil {
		h.log.Warn("Invalid users request", zap.Error(err))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, h.analyticsService.ListUsers(&req))
}

// listEvents handles GET /api/events
// @Summary List events
// @Description List the event log with optional filters, capped at 1000 rows
// @Tags events
// @Produce json
// @Param user_id query string false "User id filter" example:"u_0001"
// @Param event_name query string false "Event name filter" example:"view_dashboard"
// @Param start_date query string false "Inclusive lower timestamp bound (RFC3339)"
// @Param end_date query string false "Inclusive upper timestamp bound (RFC3339)"
// @Success 200 {object} dto.ListEventsResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/events [get]
func (h *Handler) listEvents(c *gin.Context) {
	var req dto.ListEventsRequest

	if err := c.ShouldBindQuery(&req); err != nil {
		h.log.Warn("Invalid events request", zap.Error(err))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
		})
		return
	}

	response, err := h.analyticsService.ListEvents(&req)
	if err != nil {
		h.log.Warn("Invalid events query",
			zap.Error(err),
			zap.String("start_date", req.StartDate),
			zap.String("end_date", req.EndDate))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, response)
}

// getMetrics handles GET /api/metrics
// @Summary Get overview metrics
// @Description Retrieve the engagement and revenue rollup across all users and events
// @Tags analytics
// @Produce json
// @Success 200 {object} dto.MetricsResponse
// @Router /api/metrics [get]
func (h *Handler) getMetrics(c *gin.Context) {
	c.JSON(http.StatusOK, h.analyticsService.GetMetrics())
}

// getCohorts handles GET /api/cohorts
// @Summary Get cohort retention
// @Description Retrieve the month-over-month retention matrix by signup cohort
// @Tags analytics
// @Produce json
// @Success 200 {object} dto.CohortResponse
// @Router /api/cohorts [get]
func (h *Handler) getCohorts(c *gin.Context) {
	c.JSON(http.StatusOK, h.analyticsService.GetCohorts())
}

// getFunnel handles GET /api/funnel
// @Summary Get conversion funnel
// @Description Retrieve the five-stage conversion funnel across all users
// @Tags analytics
// @Produce json
// @Success 200 {object} dto.FunnelResponse
// @Router /api/funnel [get]
func (h *Handler) getFunnel(c *gin.Context) {
	c.JSON(http.StatusOK, h.analyticsService.GetFunnel())
}

// getABTest handles GET /api/ab-test
// @Summary Get A/B test results
// @Description Compare experiment arms with a two-proportion z-test; manual parameters run the test in simulation mode
// @Tags analytics
// @Produce json
// @Param confidence_level query number false "Confidence level" example:"0.95"
// @Param limit query int false "Head-limit on users considered"
// @Param event_limit query int false "Head-limit on events considered"
// @Param manual_n_a query int false "Simulated sample size for variant A"
// @Param manual_conv_a query number false "Simulated conversion for variant A, percent"
// @Param manual_n_b query int false "Simulated sample size for variant B"
// @Param manual_conv_b query number false "Simulated conversion for variant B, percent"
// @Success 200 {object} dto.ABTestResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/ab-test [get]
func (h *Handler) getABTest(c *gin.Context) {
	var req dto.ABTestRequest

	if err := c.ShouldBindQuery(&req); err != nil {
		h.log.Warn("Invalid ab-test request", zap.Error(err))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
		})
		return
	}

	response, err := h.analyticsService.GetABTest(&req)
	if err != nil {
		h.log.Warn("Invalid ab-test parameters", zap.Error(err))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, response)
}

// getUserSessions handles GET /api/user-sessions
// @Summary Get user session rollups
// @Description Retrieve the top users by engagement, built from reconstructed sessions
// @Tags analytics
// @Produce json
// @Param limit query int false "Maximum rows to return (max 1000)" example:"100"
// @Param sort_by query string false "Sort key" Enums(total_hours, total_sessions, last_activity)
// @Success 200 {object} dto.UserSessionsResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/user-sessions [get]
func (h *Handler) getUserSessions(c *gin.Context) {
	var req dto.UserSessionsRequest

	if err := c.ShouldBindQuery(&req); err != nil {
		h.log.Warn("Invalid user-sessions request", zap.Error(err))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
		})
		return
	}

	response, err := h.analyticsService.GetUserSessions(&req)
	if err != nil {
		h.log.Warn("Invalid user-sessions parameters",
			zap.Error(err),
			zap.String("sort_by", req.SortBy),
			zap.Int("limit", req.Limit))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, response)
}

// getKPITimeSeries handles GET /api/kpi-time-series
// @Summary Get KPI time series
// @Description Retrieve daily active users and signups, zero-filled and date ascending
// @Tags analytics
// @Produce json
// @Success 200 {array} dto.KPIPointResponse
// @Router /api/kpi-time-series [get]
func (h *Handler) getKPITimeSeries(c *gin.Context) {
	c.JSON(http.StatusOK, h.analyticsService.GetKPITimeSeries())
}
