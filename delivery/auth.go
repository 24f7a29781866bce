package delivery

import (
	"errors"
	"net/http"
	"os"

	"github.com/bbois1999/gun-event/domain"
	"github.com/bbois1999/gun-event/middleware"
	"github.com/bbois1999/gun-event/utils"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type AuthHandler struct {
	authUC domain.AuthUseCase
}

func NewAuthHandler(r *gin.Engine, authUC domain.AuthUseCase) {
	handler := &AuthHandler{authUC: authUC}

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	public := r.Group("/auth")
	{
		public.POST("/register", middleware.RateLimit("auth_register"), handler.Register)
		public.POST("/send-otp", middleware.RateLimit("auth_send_otp"), handler.SendOTP)
		public.POST("/verify", middleware.RateLimit("auth_verify"), handler.Verify)
		public.POST("/direct-login", middleware.RateLimit("auth_direct_login"), handler.DirectLogin)
		public.POST("/logout", handler.Logout)
	}

	protected := r.Group("/auth")
	protected.Use(middleware.SessionAuth(authUC.SessionManager()))
	{
		protected.GET("/me", handler.Me)
	}
}

type RegisterRequest struct {
	Email              string `json:"email" binding:"required,email"`
	Username           string `json:"username" binding:"required,min=3,max=30"`
	PhoneNumber        string `json:"phoneNumber" binding:"required,phone"`
	VerificationMethod string `json:"verificationMethod" binding:"required,oneof=email phone"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.TranslateValidationError(err)})
		return
	}

	result, err := h.authUC.Register(c.Request.Context(), domain.RegisterRequest{
		Email:              req.Email,
		Username:           req.Username,
		PhoneNumber:        req.PhoneNumber,
		VerificationMethod: domain.VerificationMethod(req.VerificationMethod),
	})
	if err != nil {
		// The signup itself may have gone through before the dispatch
		// failed; submitting the same registration again resends the code.
		var provErr *domain.ProviderError
		if errors.As(err, &provErr) {
			log.Error().Err(err).Str("provider", provErr.Provider).Msg("registration code dispatch failed")
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "We could not send your verification code. Submit the registration again or request a new code to continue.",
			})
			return
		}
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":    true,
		"message":    "Verification code sent to your " + string(result.Method),
		"identifier": result.Identifier,
		"method":     result.Method,
	})
}

type SendOTPRequest struct {
	Identifier string `json:"identifier" binding:"required"`
	Method     string `json:"method" binding:"omitempty,oneof=email phone"`
}

func (h *AuthHandler) SendOTP(c *gin.Context) {
	var req SendOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.TranslateValidationError(err)})
		return
	}

	result, err := h.authUC.SendOTP(c.Request.Context(), req.Identifier, domain.VerificationMethod(req.Method))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"message":    "Verification code sent to your " + string(result.Method),
		"method":     result.Method,
		"identifier": result.Identifier,
	})
}

type VerifyRequest struct {
	Identifier string `json:"identifier" binding:"required"`
	Code       string `json:"code" binding:"required,len=6,numeric"`
}

func (h *AuthHandler) Verify(c *gin.Context) {
	var req VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.TranslateValidationError(err)})
		return
	}

	result, err := h.authUC.Verify(c.Request.Context(), req.Identifier, req.Code)
	if err != nil {
		respondError(c, err)
		return
	}

	setSessionCookies(c, result.Token)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Verification successful",
		"user":    result.User,
	})
}

type DirectLoginRequest struct {
	UserID string `json:"userId" binding:"required"`
}

// DirectLogin issues a session for an already-verified user without going
// back through the OTP flow. The token shape is identical to the one the
// verify path writes.
func (h *AuthHandler) DirectLogin(c *gin.Context) {
	var req DirectLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.TranslateValidationError(err)})
		return
	}

	result, err := h.authUC.DirectLogin(c.Request.Context(), req.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	setSessionCookies(c, result.Token)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user":    result.User,
	})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(utils.SessionCookieName, "", -1, "/", "", secureCookies(), true)
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Logout successful"})
}

func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.authUC.Me(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "user": user})
}

// setSessionCookies writes the session cookie plus the short-lived flag
// cookie client code watches to detect a fresh login. The flag is not
// httpOnly on purpose; it carries nothing sensitive.
func setSessionCookies(c *gin.Context, token string) {
	secure := secureCookies()
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(utils.SessionCookieName, token, int(utils.SessionTTL.Seconds()), "/", "", secure, true)
	c.SetCookie(utils.LoginFlagCookieName, "true", int(utils.LoginFlagTTL.Seconds()), "/", "", secure, false)
}

func secureCookies() bool {
	return os.Getenv("APP_ENV") == "production"
}
