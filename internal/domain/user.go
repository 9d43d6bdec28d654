package domain

import "time"

// Device is the device class recorded at signup.
type Device string

const (
	DeviceMobile  Device = "Mobile"
	DeviceDesktop Device = "Desktop"
	DeviceTablet  Device = "Tablet"
)

// SubscriptionStatus is the user's current plan.
type SubscriptionStatus string

const (
	SubscriptionFree       SubscriptionStatus = "Free"
	SubscriptionPremium    SubscriptionStatus = "Premium"
	SubscriptionEnterprise SubscriptionStatus = "Enterprise"
)

// ABVariant is the experiment arm a user was assigned to.
type ABVariant string

const (
	VariantA ABVariant = "A"
	VariantB ABVariant = "B"
)

// monthlyRevenue maps each plan to its monthly price in dollars.
var monthlyRevenue = map[SubscriptionStatus]int{
	SubscriptionFree:       0,
	SubscriptionPremium:    29,
	SubscriptionEnterprise: 99,
}

// User represents a single row of the user roster
type User struct {
	UserID             string             `ch:"user_id" json:"user_id"`
	JoinedAt           time.Time          `ch:"joined_at" json:"joined_at"`
	Device             Device             `ch:"device" json:"device"`
	Country            string             `ch:"country" json:"country"`
	SubscriptionStatus SubscriptionStatus `ch:"subscription_status" json:"subscription_status"`
	ABVariant          ABVariant          `ch:"ab_variant" json:"ab_variant"`
}

// MonthlyRevenue returns the revenue contribution of this user's plan.
// Unknown plans contribute nothing.
func (u User) MonthlyRevenue() int {
	return monthlyRevenue[u.SubscriptionStatus]
}
