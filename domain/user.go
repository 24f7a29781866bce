package domain

import (
	"context"
	"time"
)

// VerificationMethod is the channel a user chose for OTP delivery.
type VerificationMethod string

const (
	VerifyByEmail VerificationMethod = "email"
	VerifyByPhone VerificationMethod = "phone"
)

type User struct {
	ID              string     `gorm:"primaryKey;type:uuid" json:"id"`
	Email           string     `gorm:"unique;not null" json:"email"`
	Username        string     `gorm:"unique;not null" json:"username"`
	PhoneNumber     string     `gorm:"unique;not null" json:"phoneNumber"` // canonical E.164
	VerifiedEmail   bool       `gorm:"not null;default:false" json:"verifiedEmail"`
	VerifiedPhone   bool       `gorm:"not null;default:false" json:"verifiedPhone"`
	PreferredMFA    string     `gorm:"not null" json:"-"` // email | phone
	OTPSecret       *string    `gorm:"column:otp_secret" json:"-"` // email path only; phone codes live in the provider
	OTPExpiry       *time.Time `gorm:"column:otp_expiry" json:"-"`
	ProfileImageURL *string    `json:"profileImageUrl,omitempty"`
	ProfileImageKey *string    `json:"-"`
	CreatedAt       time.Time  `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt       time.Time  `gorm:"autoUpdateTime" json:"updatedAt"`
}

// PublicUser is the user shape returned by auth and profile endpoints.
type PublicUser struct {
	ID              string  `json:"id"`
	Email           string  `json:"email"`
	Username        string  `json:"username"`
	PhoneNumber     string  `json:"phoneNumber"`
	VerifiedEmail   bool    `json:"verifiedEmail"`
	VerifiedPhone   bool    `json:"verifiedPhone"`
	ProfileImageURL *string `json:"profileImageUrl,omitempty"`
}

func (u *User) Public() *PublicUser {
	return &PublicUser{
		ID:              u.ID,
		Email:           u.Email,
		Username:        u.Username,
		PhoneNumber:     u.PhoneNumber,
		VerifiedEmail:   u.VerifiedEmail,
		VerifiedPhone:   u.VerifiedPhone,
		ProfileImageURL: u.ProfileImageURL,
	}
}

type UserRepository interface {
	CreateUser(ctx context.Context, user *User) error
	GetUserByID(ctx context.Context, id string) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	GetUserByUsername(ctx context.Context, username string) (*User, error)
	GetUserByPhone(ctx context.Context, phone string) (*User, error)

	// FindByIdentifier resolves a user by canonical identifier, falling back
	// to the legacy phone formats when enabled. Returns ErrUserNotFound on
	// miss.
	FindByIdentifier(ctx context.Context, ident Identifier) (*User, error)

	// FindPendingByIdentifier is FindByIdentifier constrained to users with a
	// verification window still open (otp_expiry in the future). Returns
	// ErrNoPendingVerification on miss.
	FindPendingByIdentifier(ctx context.Context, ident Identifier) (*User, error)

	// SetEmailOTP persists a locally generated code and opens the
	// verification window. Email path only.
	SetEmailOTP(ctx context.Context, userID, code string, expiry time.Time) error

	// SetOTPExpiry opens the verification window without storing a code.
	// Phone path: the provider owns the code, the expiry only gates the
	// local pending state.
	SetOTPExpiry(ctx context.Context, userID string, expiry time.Time) error

	// ConsumeEmailOTP atomically checks the submitted code against the
	// stored secret inside the open window and, on match, marks the email
	// verified and consumes the OTP (secret cleared, expiry back-dated to
	// now). Returns ErrInvalidCode when the conditioned update hits nothing.
	ConsumeEmailOTP(ctx context.Context, userID, code string) (*User, error)

	// ConsumePhoneOTP atomically marks the phone verified and consumes the
	// OTP, conditioned on the window still being open. Returns
	// ErrNoPendingVerification when a concurrent verify already consumed it.
	ConsumePhoneOTP(ctx context.Context, userID string) (*User, error)

	UpdateProfileImage(ctx context.Context, userID, url, key string) (*User, error)
}

type UserUseCase interface {
	GetProfile(ctx context.Context, id string) (*PublicUser, error)
	UpdateProfileImage(ctx context.Context, userID, url, key string) (*PublicUser, error)
}
