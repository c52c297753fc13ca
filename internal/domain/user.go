package domain

import "time"

// User is a directory member who can be assigned compliance work.
type User struct {
	ID             string
	Email          string
	DisplayName    string
	OrganizationID string
	// Skills are framework/control-family tags, e.g. "SOC2" or "AC".
	Skills              []string
	WeeklyCapacityHours float64
	PerformanceScore    int // 0-100
	Available           bool
	CreatedAt           time.Time
	UpdatedAt           time.Time
}
