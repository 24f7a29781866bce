package service

import (
	"context"
	"errors"
	"time"

	"github.com/bbois1999/gun-event/domain"
	"github.com/bbois1999/gun-event/utils"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// otpTTL is the single verification window used at registration and resend
// alike. The emailed template promises 10 minutes, so 10 minutes it is.
const otpTTL = 10 * time.Minute

type authService struct {
	userRepo    domain.UserRepository
	pendingRepo domain.PendingRegistrationRepository
	smsVerifier domain.SMSVerifier
	emailSender domain.EmailSender
	sessions    *utils.SessionManager
}

func NewAuthService(
	userRepo domain.UserRepository,
	pendingRepo domain.PendingRegistrationRepository,
	smsVerifier domain.SMSVerifier,
	emailSender domain.EmailSender,
	sessionSecret string,
) domain.AuthUseCase {
	return &authService{
		userRepo:    userRepo,
		pendingRepo: pendingRepo,
		smsVerifier: smsVerifier,
		emailSender: emailSender,
		sessions:    utils.NewSessionManager(sessionSecret),
	}
}

func (s *authService) SessionManager() *utils.SessionManager {
	return s.sessions
}

func (s *authService) Register(ctx context.Context, req domain.RegisterRequest) (*domain.RegisterResult, error) {
	phone := domain.ClassifyIdentifier(req.PhoneNumber)

	identifier := req.Email
	if req.VerificationMethod == domain.VerifyByPhone {
		identifier = phone.Canonical
	}

	// A repeat of the same still-unverified signup is a resend, not a
	// conflict: refresh the window and dispatch a fresh code. This also
	// covers a retry after the first dispatch failed at the provider.
	if prev, err := s.pendingRepo.Get(ctx, identifier); err == nil && prev != nil &&
		prev.Email == req.Email && prev.Username == req.Username && prev.PhoneNumber == phone.Canonical {
		if user, uerr := s.userRepo.GetUserByEmail(ctx, req.Email); uerr == nil && !user.VerifiedEmail && !user.VerifiedPhone {
			if err := s.pendingRepo.Save(ctx, identifier, prev, otpTTL); err != nil {
				return nil, err
			}
			if err := s.sendCode(ctx, user, req.VerificationMethod); err != nil {
				return nil, err
			}
			log.Info().Str("user_id", user.ID).Msg("repeat registration treated as resend")
			return &domain.RegisterResult{Identifier: identifier, Method: req.VerificationMethod}, nil
		}
	}

	// Uniqueness checks up front so the client gets a field-specific 409
	// instead of a raw constraint violation later.
	if _, err := s.userRepo.GetUserByEmail(ctx, req.Email); err == nil {
		return nil, &domain.ConflictError{Field: "email"}
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}
	if _, err := s.userRepo.GetUserByUsername(ctx, req.Username); err == nil {
		return nil, &domain.ConflictError{Field: "username"}
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}
	if _, err := s.userRepo.GetUserByPhone(ctx, phone.Canonical); err == nil {
		return nil, &domain.ConflictError{Field: "phone"}
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	pending := &domain.PendingRegistration{
		Email:              req.Email,
		Username:           req.Username,
		PhoneNumber:        phone.Canonical,
		VerificationMethod: req.VerificationMethod,
	}
	if err := s.pendingRepo.Save(ctx, identifier, pending, otpTTL); err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:           uuid.NewString(),
		Email:        req.Email,
		Username:     req.Username,
		PhoneNumber:  phone.Canonical,
		PreferredMFA: string(req.VerificationMethod),
	}
	if err := s.userRepo.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	if err := s.sendCode(ctx, user, req.VerificationMethod); err != nil {
		return nil, err
	}

	log.Info().Str("method", string(req.VerificationMethod)).Str("user_id", user.ID).
		Msg("registration pending verification")

	return &domain.RegisterResult{Identifier: identifier, Method: req.VerificationMethod}, nil
}

func (s *authService) SendOTP(ctx context.Context, rawIdentifier string, method domain.VerificationMethod) (*domain.SendOTPResult, error) {
	ident := domain.ClassifyIdentifier(rawIdentifier)

	user, err := s.userRepo.FindByIdentifier(ctx, ident)
	if err != nil {
		return nil, err
	}

	if method == "" {
		method = domain.VerifyByEmail
		if ident.Kind == domain.IdentifierPhone {
			method = domain.VerifyByPhone
		}
	}

	if err := s.sendCode(ctx, user, method); err != nil {
		return nil, err
	}

	destination := user.Email
	if method == domain.VerifyByPhone {
		destination = user.PhoneNumber
	}
	return &domain.SendOTPResult{Identifier: destination, Method: method}, nil
}

// sendCode is the verification dispatcher. Phone codes are generated and
// held by the provider; only the expiry window is tracked locally. Email
// codes are generated here, persisted, then handed to the email provider.
func (s *authService) sendCode(ctx context.Context, user *domain.User, method domain.VerificationMethod) error {
	expiry := time.Now().Add(otpTTL)

	switch method {
	case domain.VerifyByPhone:
		if err := s.smsVerifier.StartVerification(ctx, user.PhoneNumber); err != nil {
			return err
		}
		return s.userRepo.SetOTPExpiry(ctx, user.ID, expiry)

	case domain.VerifyByEmail:
		code, err := utils.GenerateOTP()
		if err != nil {
			return err
		}
		if err := s.userRepo.SetEmailOTP(ctx, user.ID, code, expiry); err != nil {
			return err
		}
		// Delivery failure surfaces to the caller; the user must resend.
		return s.emailSender.SendVerificationCode(ctx, user.Email, code)
	}
	return errors.New("unsupported verification method")
}

// Verify runs the verification state machine: classify the identifier,
// resolve the user inside the open window, check the code on the matching
// path, then atomically mark verified and consume the OTP. A replayed code
// finds no open window and deterministically comes back as
// ErrNoPendingVerification.
func (s *authService) Verify(ctx context.Context, rawIdentifier, code string) (*domain.AuthResult, error) {
	ident := domain.ClassifyIdentifier(rawIdentifier)

	user, err := s.userRepo.FindPendingByIdentifier(ctx, ident)
	if err != nil {
		return nil, err
	}

	var verified *domain.User
	switch ident.Kind {
	case domain.IdentifierEmail:
		verified, err = s.userRepo.ConsumeEmailOTP(ctx, user.ID, code)
	case domain.IdentifierPhone:
		var approved bool
		approved, err = s.smsVerifier.CheckVerification(ctx, user.PhoneNumber, code)
		if err != nil {
			return nil, err
		}
		if !approved {
			return nil, domain.ErrInvalidCode
		}
		verified, err = s.userRepo.ConsumePhoneOTP(ctx, user.ID)
	}
	if err != nil {
		return nil, err
	}

	// The signup data served its purpose; expired entries vanish on their
	// own, this just tidies up eagerly. Failure here must not fail a
	// successful verification.
	if derr := s.pendingRepo.Delete(ctx, rawIdentifier); derr != nil {
		log.Warn().Err(derr).Msg("failed to delete pending registration")
	}
	if ident.Canonical != rawIdentifier {
		_ = s.pendingRepo.Delete(ctx, ident.Canonical)
	}

	return s.issueSession(verified)
}

func (s *authService) DirectLogin(ctx context.Context, userID string) (*domain.AuthResult, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.VerifiedEmail && !user.VerifiedPhone {
		return nil, domain.ErrNotVerified
	}
	return s.issueSession(user)
}

func (s *authService) Me(ctx context.Context, userID string) (*domain.PublicUser, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return user.Public(), nil
}

// issueSession is the session bridge: both the verification path and direct
// login produce their token here, so the shapes cannot drift apart.
func (s *authService) issueSession(user *domain.User) (*domain.AuthResult, error) {
	token, err := s.sessions.Issue(utils.SessionUser{
		ID:          user.ID,
		Username:    user.Username,
		Email:       user.Email,
		PhoneNumber: user.PhoneNumber,
	})
	if err != nil {
		return nil, err
	}
	return &domain.AuthResult{User: user.Public(), Token: token}, nil
}
