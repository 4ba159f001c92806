package constants

import "time"

// Context keys
const (
	ContextKeyUserID = "user_id"
)

// Auth
const (
	MinPasswordLength = 8
)

// Pagination
const (
	MinPage                = 1
	MaxPageSize            = 100
	DefaultProjectPageSize = 6
	DefaultTaskPageSize    = 5
)

// RecentWindow is the trailing window for the recently-modified
// projects listing.
const RecentWindow = 7 * 24 * time.Hour
