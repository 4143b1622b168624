package constants

// Session and context keys
const (
	SessionCookieName = "circle_session"
	ContextKeyUserID  = "user_id"
	ContextKeyProject = "project"
	ContextKeyRealm   = "realm"
)

// Validation limits
const (
	MinPasswordLength = 8
	MaxMessageLength  = 2000
)

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Upload limits
const (
	MaxUploadBytes = 10 << 20 // 10 MiB
)
