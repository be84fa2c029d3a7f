package constants

const (
	// ContextKeyUserID is the gin context key holding the caller's user id.
	ContextKeyUserID = "user_id"
	// ContextKeyPrincipal is the gin context key holding the verified *auth.Principal.
	ContextKeyPrincipal = "principal"
	// SessionKeyToken is the session key under which login stores the token.
	SessionKeyToken = "token"
	// SessionCookieName names the session cookie.
	SessionCookieName = "roster_session"

	MinPasswordLength = 6

	// ClockLogPageSize and MaxClockLogPageSize bound a page of clock history.
	ClockLogPageSize    = 20
	MaxClockLogPageSize = 50
)
