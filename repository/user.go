package repository

import (
	"context"
	"errors"
	"time"

	"github.com/bbois1999/gun-event/domain"
	"github.com/bbois1999/gun-event/utils"

	"gorm.io/gorm"
)

type userRepository struct {
	db *gorm.DB
	// legacyPhoneLookup enables the alternate-format fallback for phone
	// records stored before the current canonicalization convention. Kept
	// behind a flag so it can be retired once the data is migrated.
	legacyPhoneLookup bool
}

func NewUserRepository(db *gorm.DB, legacyPhoneLookup bool) domain.UserRepository {
	return &userRepository{db: db, legacyPhoneLookup: legacyPhoneLookup}
}

func (r *userRepository) CreateUser(ctx context.Context, user *domain.User) error {
	err := r.db.WithContext(ctx).Create(user).Error
	if err != nil && utils.IsUniqueViolation(err) {
		// Two registrations raced past the pre-checks; the constraint name
		// tells us which field collided.
		return conflictFromConstraint(err)
	}
	return err
}

func conflictFromConstraint(err error) error {
	msg := utils.TranslateDBError(err)
	switch msg {
	case "Email is already taken":
		return &domain.ConflictError{Field: "email"}
	case "Username is already taken":
		return &domain.ConflictError{Field: "username"}
	case "Phone number is already registered":
		return &domain.ConflictError{Field: "phone"}
	}
	return &domain.ConflictError{}
}

func (r *userRepository) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	return r.getUserBy(ctx, "id = ?", id)
}

func (r *userRepository) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getUserBy(ctx, "email = ?", email)
}

func (r *userRepository) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.getUserBy(ctx, "username = ?", username)
}

func (r *userRepository) GetUserByPhone(ctx context.Context, phone string) (*domain.User, error) {
	return r.getUserBy(ctx, "phone_number = ?", phone)
}

func (r *userRepository) getUserBy(ctx context.Context, query string, arg interface{}) (*domain.User, error) {
	var user domain.User
	if err := r.db.WithContext(ctx).First(&user, query, arg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByIdentifier(ctx context.Context, ident domain.Identifier) (*domain.User, error) {
	return r.findByIdentifier(ctx, ident, false)
}

func (r *userRepository) FindPendingByIdentifier(ctx context.Context, ident domain.Identifier) (*domain.User, error) {
	user, err := r.findByIdentifier(ctx, ident, true)
	if errors.Is(err, domain.ErrUserNotFound) {
		return nil, domain.ErrNoPendingVerification
	}
	return user, err
}

// findByIdentifier is the user resolver: exact canonical match first, then
// the enumerated legacy phone formats. pendingOnly additionally gates on an
// open verification window, the sole marker of "a verification is pending".
func (r *userRepository) findByIdentifier(ctx context.Context, ident domain.Identifier, pendingOnly bool) (*domain.User, error) {
	base := func() *gorm.DB {
		tx := r.db.WithContext(ctx)
		if pendingOnly {
			tx = tx.Where("otp_expiry > ?", time.Now())
		}
		return tx
	}

	var user domain.User
	column := "phone_number = ?"
	if ident.Kind == domain.IdentifierEmail {
		column = "email = ?"
	}
	err := base().First(&user, column, ident.Canonical).Error
	if err == nil {
		return &user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if ident.Kind != domain.IdentifierPhone || !r.legacyPhoneLookup {
		return nil, domain.ErrUserNotFound
	}

	err = base().First(&user, "phone_number IN ?", ident.AlternatePhoneFormats()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) SetEmailOTP(ctx context.Context, userID, code string, expiry time.Time) error {
	return r.db.WithContext(ctx).Model(&domain.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"otp_secret": code,
			"otp_expiry": expiry,
		}).Error
}

func (r *userRepository) SetOTPExpiry(ctx context.Context, userID string, expiry time.Time) error {
	// Phone path: the provider owns the code, only the window is local.
	return r.db.WithContext(ctx).Model(&domain.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"otp_secret": nil,
			"otp_expiry": expiry,
		}).Error
}

func (r *userRepository) ConsumeEmailOTP(ctx context.Context, userID, code string) (*domain.User, error) {
	// Check and consume in one conditioned UPDATE: of two racing verify
	// calls exactly one can match the open window, the loser hits zero rows.
	now := time.Now()
	res := r.db.WithContext(ctx).Model(&domain.User{}).
		Where("id = ? AND otp_secret = ? AND otp_expiry > ?", userID, code, now).
		Updates(map[string]interface{}{
			"verified_email": true,
			"otp_secret":     nil,
			"otp_expiry":     now,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, domain.ErrInvalidCode
	}
	return r.GetUserByID(ctx, userID)
}

func (r *userRepository) ConsumePhoneOTP(ctx context.Context, userID string) (*domain.User, error) {
	now := time.Now()
	res := r.db.WithContext(ctx).Model(&domain.User{}).
		Where("id = ? AND otp_expiry > ?", userID, now).
		Updates(map[string]interface{}{
			"verified_phone": true,
			"otp_secret":     nil,
			"otp_expiry":     now,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		// A concurrent verify already consumed the window.
		return nil, domain.ErrNoPendingVerification
	}
	return r.GetUserByID(ctx, userID)
}

func (r *userRepository) UpdateProfileImage(ctx context.Context, userID, url, key string) (*domain.User, error) {
	res := r.db.WithContext(ctx).Model(&domain.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"profile_image_url": url,
			"profile_image_key": key,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, domain.ErrUserNotFound
	}
	return r.GetUserByID(ctx, userID)
}
