package dto

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// timestampLayout matches the export format of the original data files.
const timestampLayout = "2006-01-02T15:04:05Z"

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error" example:"validation_error"`
	Message string `json:"message,omitempty" example:"sort_by must be one of total_hours, total_sessions, last_activity"`
}

// HealthResponse reports process liveness and snapshot state
type HealthResponse struct {
	Status       string `json:"status" example:"healthy"`
	UsersLoaded  bool   `json:"users_loaded" example:"true"`
	EventsLoaded bool   `json:"events_loaded" example:"true"`
}

// MetricsResponse is the overview rollup
type MetricsResponse struct {
	TotalUsers       int     `json:"total_users" example:"1000"`
	ActiveUsers      int     `json:"active_users" example:"412"`
	ConversionRate   float64 `json:"conversion_rate" example:"38.5"`
	Revenue          int     `json:"revenue" example:"12325"`
	AvgEventsPerUser float64 `json:"avg_events_per_user" example:"50.2"`
	TotalEvents      int     `json:"total_events" example:"50000"`
}

// CohortEntry is one cohort row. Retention columns are emitted as flat
// month_0..month_N keys, which is why it marshals itself.
type CohortEntry struct {
	Cohort    string
	Size      int
	Retention []float64
}

func (c CohortEntry) MarshalJSON() ([]byte, error) {
	fields := map[string]any{
		"cohort": c.Cohort,
		"size":   c.Size,
	}
	for i, pct := range c.Retention {
		fields[fmt.Sprintf("month_%d", i)] = pct
	}
	return json.Marshal(fields)
}

// CohortResponse is the retention heatmap payload
type CohortResponse struct {
	Cohorts   []CohortEntry `json:"cohorts"`
	MaxMonths int           `json:"max_months" example:"11"`
}

// FunnelStageResponse is one row of the overall funnel
type FunnelStageResponse struct {
	Stage                  string  `json:"stage" example:"Signup Success"`
	Users                  int     `json:"users" example:"950"`
	ConversionFromTotal    float64 `json:"conversion_from_total" example:"95.0"`
	ConversionFromPrevious float64 `json:"conversion_from_previous" example:"100.0"`
	DropOff                float64 `json:"drop_off" example:"0.0"`
}

// FunnelResponse is the overall funnel payload
type FunnelResponse struct {
	Funnel     []FunnelStageResponse `json:"funnel"`
	TotalUsers int                   `json:"total_users" example:"1000"`
}

// VariantStageResponse is one row of a variant funnel
type VariantStageResponse struct {
	Stage          string  `json:"stage" example:"signup_success"`
	Users          int     `json:"users" example:"480"`
	ConversionRate float64 `json:"conversion_rate" example:"96.0"`
}

// VariantSummary is one experiment arm's engagement block
type VariantSummary struct {
	TotalUsers       int                    `json:"total_users" example:"500"`
	TotalEvents      int                    `json:"total_events" example:"25000"`
	AvgEventsPerUser float64                `json:"avg_events_per_user" example:"50.0"`
	Funnel           []VariantStageResponse `json:"funnel"`
}

// ABStats carries the z-test verdict
type ABStats struct {
	PValue          float64 `json:"p_value" example:"0.0321"`
	Significant     bool    `json:"significant" example:"true"`
	Power           float64 `json:"power" example:"0.8713"`
	ZScore          float64 `json:"z_score" example:"2.1432"`
	ConfidenceLevel float64 `json:"confidence_level" example:"0.95"`
}

// ABTestResponse is the full A/B comparison payload
type ABTestResponse struct {
	VariantA VariantSummary `json:"variant_A"`
	VariantB VariantSummary `json:"variant_B"`
	Lift     float64        `json:"lift" example:"4.2"`
	Stats    ABStats        `json:"stats"`
}

// UserSessionEntry is one user's session rollup
type UserSessionEntry struct {
	UserID             string  `json:"user_id" example:"u_0001"`
	TotalSessions      int     `json:"total_sessions" example:"14"`
	TotalHours         float64 `json:"total_hours" example:"9.75"`
	FirstActivity      string  `json:"first_activity" example:"2023-01-02T08:30:00Z"`
	LastActivity       string  `json:"last_activity" example:"2023-12-28T17:05:00Z"`
	AvgSessionDuration float64 `json:"avg_session_duration" example:"0.7"`
	Status             string  `json:"status" example:"active"`
}

// UserSessionsResponse is the top-users-by-engagement payload
type UserSessionsResponse struct {
	UserSessions []UserSessionEntry `json:"user_sessions"`
	TotalUsers   int                `json:"total_users" example:"100"`
}

// KPIPointResponse is one day of the DAU/signups series
type KPIPointResponse struct {
	Date    string `json:"date" example:"2023-06-01"`
	DAU     int    `json:"dau" example:"120"`
	Signups int    `json:"signups" example:"8"`
}

// UserRecord is one roster row as exposed by the listing endpoint
type UserRecord struct {
	UserID             string `json:"user_id" example:"u_0001"`
	JoinedAt           string `json:"joined_at" example:"2023-01-02T08:30:00Z"`
	Device             string `json:"device" example:"Mobile"`
	Country            string `json:"country" example:"US"`
	SubscriptionStatus string `json:"subscription_status" example:"Free"`
	ABVariant          string `json:"ab_variant" example:"A"`
}

// ListUsersResponse is the roster listing payload
type ListUsersResponse struct {
	Users []UserRecord `json:"users"`
	Total int          `json:"total" example:"1000"`
}

// EventRecord is one event row as exposed by the listing endpoint
type EventRecord struct {
	EventID   string          `json:"event_id" example:"e_1"`
	UserID    string          `json:"user_id" example:"u_0001"`
	EventName string          `json:"event_name" example:"view_dashboard"`
	Timestamp string          `json:"timestamp" example:"2023-01-02T08:30:00Z"`
	Metadata  json.RawMessage `json:"metadata" swaggertype:"object"`
}

// ListEventsResponse is the event listing payload. Events carries at most
// the first 1000 matching rows; Total counts all matches.
type ListEventsResponse struct {
	Events []EventRecord `json:"events"`
	Total  int           `json:"total" example:"50000"`
}

// StageLabel turns an event category into its display form,
// e.g. "signup_success" becomes "Signup Success".
func StageLabel(stage string) string {
	words := strings.Split(stage, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// FormatTimestamp renders instants the way the data export files do.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}
