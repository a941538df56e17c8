package constants

// Context keys shared between middleware and handlers.
const (
	ContextKeyUserID   = "user_id"
	ContextKeyUserRole = "user_role"
)

// Password length bounds. The upper bound is the bcrypt input limit
// of 72 bytes.
const (
	MinPasswordLength = 8
	MaxPasswordLength = 72
)

// Pagination limits.
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// DateLayout is the wire format for date-only fields.
const DateLayout = "2006-01-02"
