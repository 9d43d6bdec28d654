package csvstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/vizsprints/analytics-service/internal/domain"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoader_LoadUsers(t *testing.T) {
	dir := t.TempDir()
	usersPath := writeFile(t, dir, "users.csv",
		"user_id,joined_at,device,country,subscription_status,ab_variant\n"+
			"u_0001,2023-01-02T08:30:00Z,Mobile,US,Premium,A\n"+
			"u_0002,2023-02-14T19:05:12Z,Desktop,DE,Free,B\n")

	loader := NewLoader(usersPath, "", zap.NewNop())
	users, err := loader.LoadUsers(context.Background())

	require.NoError(t, err)
	require.Len(t, users, 2)

	assert.Equal(t, "u_0001", users[0].UserID)
	assert.Equal(t, time.Date(2023, 1, 2, 8, 30, 0, 0, time.UTC), users[0].JoinedAt)
	assert.Equal(t, domain.DeviceMobile, users[0].Device)
	assert.Equal(t, domain.SubscriptionPremium, users[0].SubscriptionStatus)
	assert.Equal(t, domain.VariantA, users[0].ABVariant)
	assert.Equal(t, domain.VariantB, users[1].ABVariant)
}

func TestLoader_LoadEvents(t *testing.T) {
	dir := t.TempDir()
	eventsPath := writeFile(t, dir, "events.csv",
		"event_id,user_id,event_name,timestamp,metadata\n"+
			`e_1,u_0001,signup_success,2023-01-02T08:30:00Z,"{""source"": ""organic"", ""variant"": ""A""}"`+"\n"+
			`e_2,u_0001,upgrade_subscription,2023-01-05T10:00:00Z,"{""plan"": ""Premium"", ""variant"": ""A""}"`+"\n")

	loader := NewLoader("", eventsPath, zap.NewNop())
	events, err := loader.LoadEvents(context.Background())

	require.NoError(t, err)
	require.Len(t, events, 2)

	assert.Equal(t, "signup_success", events[0].EventName)
	assert.Equal(t, "organic", events[0].Metadata.Source)
	assert.Equal(t, "A", events[0].Metadata.Variant)
	assert.Equal(t, "Premium", events[1].Metadata.Plan)
}

func TestLoader_RejectsBadHeader(t *testing.T) {
	dir := t.TempDir()
	usersPath := writeFile(t, dir, "users.csv", "id,name\nu_0001,Ada\n")

	loader := NewLoader(usersPath, "", zap.NewNop())
	_, err := loader.LoadUsers(context.Background())

	assert.Error(t, err)
}

func TestLoader_RejectsBadTimestamp(t *testing.T) {
	dir := t.TempDir()
	eventsPath := writeFile(t, dir, "events.csv",
		"event_id,user_id,event_name,timestamp,metadata\n"+
			"e_1,u_0001,signup_success,not-a-time,{}\n")

	loader := NewLoader("", eventsPath, zap.NewNop())
	_, err := loader.LoadEvents(context.Background())

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unparseable timestamp")
}

func TestLoader_MissingFile(t *testing.T) {
	loader := NewLoader("/nonexistent/users.csv", "/nonexistent/events.csv", zap.NewNop())

	_, err := loader.LoadUsers(context.Background())
	assert.Error(t, err)

	_, err = loader.LoadEvents(context.Background())
	assert.Error(t, err)
}
