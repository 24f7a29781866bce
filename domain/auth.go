package domain

import (
	"context"

	"github.com/bbois1999/gun-event/utils"
)

// SMSVerifier is the external verification provider for the phone path. The
// provider both issues and checks the code; this system never sees it.
type SMSVerifier interface {
	// StartVerification asks the provider to deliver a code to the
	// destination. Success means the provider reports the verification as
	// pending.
	StartVerification(ctx context.Context, to string) error
	// CheckVerification submits the user's code. Returns true only for an
	// approved status; a rejected code is (false, nil). Transport and
	// provider failures come back as *ProviderError.
	CheckVerification(ctx context.Context, to, code string) (bool, error)
}

// EmailSender delivers transactional email for the email path.
type EmailSender interface {
	SendVerificationCode(ctx context.Context, to, code string) error
}

// AuthResult pairs the verified user with the session token issued for it.
type AuthResult struct {
	User  *PublicUser
	Token string
}

type RegisterRequest struct {
	Email              string
	Username           string
	PhoneNumber        string
	VerificationMethod VerificationMethod
}

type RegisterResult struct {
	// Identifier the code was dispatched to: the email address or the
	// canonical phone number, depending on the chosen method.
	Identifier string
	Method     VerificationMethod
}

type SendOTPResult struct {
	Identifier string
	Method     VerificationMethod
}

type AuthUseCase interface {
	Register(ctx context.Context, req RegisterRequest) (*RegisterResult, error)
	SendOTP(ctx context.Context, rawIdentifier string, method VerificationMethod) (*SendOTPResult, error)
	Verify(ctx context.Context, rawIdentifier, code string) (*AuthResult, error)
	DirectLogin(ctx context.Context, userID string) (*AuthResult, error)
	Me(ctx context.Context, userID string) (*PublicUser, error)
	SessionManager() *utils.SessionManager
}
