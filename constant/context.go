package constant

type contextKey string

const (
	UserIDKey    contextKey = "user_id"
	UserEmailKey contextKey = "user_email"
	SessionIDKey contextKey = "session_id"
)
