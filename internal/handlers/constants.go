package handlers

const (
	SessionCookieName  = "session_id"
	RememberCookieName = "remember_token"

	ErrInvalidFormData     = "Invalid form data"
	ErrUnauthorized        = "Unauthorized"
	ErrInternalServerError = "Internal server error"
)
