package domain

import "errors"

// Sentinel errors for the verification flow. Handlers map these to HTTP
// statuses at the boundary; nothing in the core panics across it.
var (
	// ErrNoPendingVerification covers both "no such user" and "verification
	// window expired". The two cases are deliberately indistinguishable to
	// the client.
	ErrNoPendingVerification = errors.New("no pending verification found or verification expired")

	ErrInvalidCode   = errors.New("invalid verification code")
	ErrForbidden     = errors.New("you do not have permission to modify this resource")
	ErrUserNotFound  = errors.New("no account found with this information")
	ErrNotVerified   = errors.New("user is not verified")
	ErrAlreadyLiked  = errors.New("already liked this post")
	ErrLikeNotFound  = errors.New("like not found")
	ErrPostNotFound  = errors.New("post not found")
	ErrEventNotFound = errors.New("event not found")
)

// ConflictError reports a registration uniqueness collision.
type ConflictError struct {
	Field string // email | username | phone
}

func (e *ConflictError) Error() string {
	switch e.Field {
	case "email":
		return "Email is already taken"
	case "username":
		return "Username is already taken"
	case "phone":
		return "Phone number is already registered"
	}
	return "Duplicate value, please use another"
}

// ProviderError wraps a downstream SMS/email/upload failure, preserving the
// provider's message. Provider errors are never retried automatically; the
// client must re-prompt the user to resend.
type ProviderError struct {
	Provider string
	Err      error
}

func (e *ProviderError) Error() string {
	return e.Provider + ": " + e.Err.Error()
}

func (e *ProviderError) Unwrap() error { return e.Err }
