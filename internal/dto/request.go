package dto

// UserSessionsRequest represents a user sessions query
type UserSessionsRequest struct {
	Limit  int    `form:"limit,default=100" example:"100"`
	SortBy string `form:"sort_by,default=total_hours" example:"total_hours"`
}

// ABTestRequest represents an A/B test query. When all four manual fields
// are present the test runs in simulation mode against those figures;
// otherwise live funnel data drives it. Manual conversions are percentages.
type ABTestRequest struct {
	ConfidenceLevel float64  `form:"confidence_level,default=0.95" example:"0.95"`
	Limit           *int     `form:"limit" example:"500"`
	EventLimit      *int     `form:"event_limit" example:"10000"`
	ManualNA        *int     `form:"manual_n_a" example:"1000"`
	ManualConvA     *float64 `form:"manual_conv_a" example:"10.5"`
	ManualNB        *int     `form:"manual_n_b" example:"1000"`
	ManualConvB     *float64 `form:"manual_conv_b" example:"12.0"`
}

// Simulated reports whether every manual override is present.
func (r *ABTestRequest) Simulated() bool {
	return r.ManualNA != nil && r.ManualConvA != nil && r.ManualNB != nil && r.ManualConvB != nil
}

// ListUsersRequest represents a roster query with optional filters
type ListUsersRequest struct {
	Country            string `form:"country" example:"US"`
	Device             string `form:"device" example:"Mobile"`
	SubscriptionStatus string `form:"subscription_status" example:"Premium"`
}

// ListEventsRequest represents an event log query with optional filters
type ListEventsRequest struct {
	UserID    string `form:"user_id" example:"u_0001"`
	EventName string `form:"event_name" example:"view_dashboard"`
	StartDate string `form:"start_date" example:"2023-01-01T00:00:00Z"`
	EndDate   string `form:"end_date" example:"2023-12-31T23:59:59Z"`
}
