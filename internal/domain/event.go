package domain

import (
	"encoding/json"
	"time"
)

// Well-known event categories produced by the product.
const (
	EventSignupSuccess       = "signup_success"
	EventViewDashboard       = "view_dashboard"
	EventStartProject        = "start_project"
	EventCompleteTask        = "complete_task"
	EventInviteUser          = "invite_user"
	EventUpgradeSubscription = "upgrade_subscription"
	EventExportData          = "export_data"
	EventShareReport         = "share_report"
	EventCreateChart         = "create_chart"
	EventDeleteProject       = "delete_project"
)

// Event represents a single analytics event from the event log
type Event struct {
	EventID   string    `ch:"event_id" json:"event_id"`
	UserID    string    `ch:"user_id" json:"user_id"`
	EventName string    `ch:"event_name" json:"event_name"`
	Timestamp time.Time `ch:"timestamp" json:"timestamp"`
	Metadata  Metadata  `json:"metadata"`
}

// Metadata is the event payload, decoded into typed fields for the
// categories whose shape is known and kept as an opaque map otherwise.
type Metadata struct {
	Source    string `json:"source,omitempty"`     // signup_success: acquisition channel
	Plan      string `json:"plan,omitempty"`       // upgrade_subscription: target plan
	ChartType string `json:"chart_type,omitempty"` // create_chart
	Format    string `json:"format,omitempty"`     // export_data
	Variant   string `json:"variant,omitempty"`    // ab variant echo carried by the producer

	// Extra holds keys outside the category's known shape.
	Extra map[string]any `json:"-"`
}

// knownMetadataKeys maps each event category to the payload keys it owns.
var knownMetadataKeys = map[string][]string{
	EventSignupSuccess:       {"source"},
	EventUpgradeSubscription: {"plan"},
	EventCreateChart:         {"chart_type"},
	EventExportData:          {"format"},
}

// ParseMetadata decodes a raw JSON payload for the given event category.
// Unknown categories and unknown keys land in Extra rather than being dropped.
func ParseMetadata(eventName string, raw []byte) (Metadata, error) {
	var md Metadata
	if len(raw) == 0 {
		return md, nil
	}

	fields := map[string]any{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return Metadata{}, err
	}

	if v, ok := fields["variant"].(string); ok {
		md.Variant = v
		delete(fields, "variant")
	}

	for _, key := range knownMetadataKeys[eventName] {
		v, ok := fields[key].(string)
		if !ok {
			continue
		}
		switch key {
		case "source":
			md.Source = v
		case "plan":
			md.Plan = v
		case "chart_type":
			md.ChartType = v
		case "format":
			md.Format = v
		}
		delete(fields, key)
	}

	if len(fields) > 0 {
		md.Extra = fields
	}

	return md, nil
}

// Encode serializes the metadata back to the flat JSON object form used on
// the wire and in storage.
func (m Metadata) Encode() (string, error) {
	fields := map[string]any{}
	for k, v := range m.Extra {
		fields[k] = v
	}
	if m.Source != "" {
		fields["source"] = m.Source
	}
	if m.Plan != "" {
		fields["plan"] = m.Plan
	}
	if m.ChartType != "" {
		fields["chart_type"] = m.ChartType
	}
	if m.Format != "" {
		fields["format"] = m.Format
	}
	if m.Variant != "" {
		fields["variant"] = m.Variant
	}

	raw, err := json.Marshal(fields)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}
