package domain

import (
	"context"
	"time"
)

// PendingRegistration holds signup data between the register request and a
// successful verification. Keyed by the chosen identifier and expired by the
// store, never by application code.
type PendingRegistration struct {
	Email              string
	Username           string
	PhoneNumber        string
	VerificationMethod VerificationMethod
}

type PendingRegistrationRepository interface {
	Save(ctx context.Context, identifier string, reg *PendingRegistration, ttl time.Duration) error
	// Get returns nil, nil when no pending registration exists for the
	// identifier (expired entries simply vanish).
	Get(ctx context.Context, identifier string) (*PendingRegistration, error)
	Delete(ctx context.Context, identifier string) error
}
