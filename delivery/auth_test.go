package delivery

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bbois1999/gun-event/domain"
	"github.com/bbois1999/gun-event/utils"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		utils.RegisterCustomValidations(v)
	}
}

type stubAuthUC struct {
	sessions *utils.SessionManager

	registerResult *domain.RegisterResult
	registerErr    error
	sendResult     *domain.SendOTPResult
	sendErr        error
	verifyResult   *domain.AuthResult
	verifyErr      error
	loginResult    *domain.AuthResult
	loginErr       error
	meUser         *domain.PublicUser
	meErr          error

	verifyCalls int
}

func (s *stubAuthUC) Register(context.Context, domain.RegisterRequest) (*domain.RegisterResult, error) {
	return s.registerResult, s.registerErr
}

func (s *stubAuthUC) SendOTP(context.Context, string, domain.VerificationMethod) (*domain.SendOTPResult, error) {
	return s.sendResult, s.sendErr
}

func (s *stubAuthUC) Verify(context.Context, string, string) (*domain.AuthResult, error) {
	s.verifyCalls++
	return s.verifyResult, s.verifyErr
}

func (s *stubAuthUC) DirectLogin(context.Context, string) (*domain.AuthResult, error) {
	return s.loginResult, s.loginErr
}

func (s *stubAuthUC) Me(context.Context, string) (*domain.PublicUser, error) {
	return s.meUser, s.meErr
}

func (s *stubAuthUC) SessionManager() *utils.SessionManager {
	return s.sessions
}

func newAuthRouter(stub *stubAuthUC) *gin.Engine {
	if stub.sessions == nil {
		stub.sessions = utils.NewSessionManager("0123456789abcdef0123456789abcdef")
	}
	r := gin.New()
	NewAuthHandler(r, stub)
	return r
}

func doJSON(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRegisterEndpoint_Created(t *testing.T) {
	stub := &stubAuthUC{registerResult: &domain.RegisterResult{Identifier: "a@example.com", Method: domain.VerifyByEmail}}
	r := newAuthRouter(stub)

	w := doJSON(r, http.MethodPost, "/auth/register",
		`{"email":"a@example.com","username":"rangeday","phoneNumber":"555-123-4567","verificationMethod":"email"}`)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"identifier":"a@example.com"`)
}

func TestRegisterEndpoint_Validation(t *testing.T) {
	r := newAuthRouter(&stubAuthUC{})

	tests := []struct {
		name string
		body string
	}{
		{"missing email", `{"username":"rangeday","phoneNumber":"5551234567","verificationMethod":"email"}`},
		{"bad email", `{"email":"nope","username":"rangeday","phoneNumber":"5551234567","verificationMethod":"email"}`},
		{"short username", `{"email":"a@example.com","username":"ab","phoneNumber":"5551234567","verificationMethod":"email"}`},
		{"bad phone", `{"email":"a@example.com","username":"rangeday","phoneNumber":"12","verificationMethod":"email"}`},
		{"bad method", `{"email":"a@example.com","username":"rangeday","phoneNumber":"5551234567","verificationMethod":"carrier-pigeon"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(r, http.MethodPost, "/auth/register", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestRegisterEndpoint_Conflict(t *testing.T) {
	stub := &stubAuthUC{registerErr: &domain.ConflictError{Field: "email"}}
	r := newAuthRouter(stub)

	w := doJSON(r, http.MethodPost, "/auth/register",
		`{"email":"a@example.com","username":"rangeday","phoneNumber":"5551234567","verificationMethod":"email"}`)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "Email is already taken")
}

func TestRegisterEndpoint_ProviderFailure(t *testing.T) {
	stub := &stubAuthUC{registerErr: &domain.ProviderError{Provider: "resend", Err: errors.New("timeout")}}
	r := newAuthRouter(stub)

	w := doJSON(r, http.MethodPost, "/auth/register",
		`{"email":"a@example.com","username":"rangeday","phoneNumber":"5551234567","verificationMethod":"email"}`)

	// The response explains the recovery path and leaks no provider detail.
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "request a new code")
	assert.NotContains(t, w.Body.String(), "timeout")
}

func TestVerifyEndpoint_ProviderFailure(t *testing.T) {
	stub := &stubAuthUC{verifyErr: &domain.ProviderError{Provider: "twilio", Err: errors.New("service 503")}}
	r := newAuthRouter(stub)

	w := doJSON(r, http.MethodPost, "/auth/verify", `{"identifier":"5551234567","code":"123456"}`)

	// Nothing is being sent on the check path, so the message stays neutral.
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Verification service unavailable")
	assert.NotContains(t, w.Body.String(), "503")
}

func TestVerifyEndpoint_SetsSessionCookies(t *testing.T) {
	sessions := utils.NewSessionManager("0123456789abcdef0123456789abcdef")
	token, err := sessions.Issue(utils.SessionUser{ID: "user-1", Username: "rangeday"})
	require.NoError(t, err)

	stub := &stubAuthUC{
		sessions:     sessions,
		verifyResult: &domain.AuthResult{User: &domain.PublicUser{ID: "user-1"}, Token: token},
	}
	r := newAuthRouter(stub)

	w := doJSON(r, http.MethodPost, "/auth/verify", `{"identifier":"a@example.com","code":"123456"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	cookies := w.Result().Cookies()
	var sessionCookie, flagCookie *http.Cookie
	for _, c := range cookies {
		switch c.Name {
		case utils.SessionCookieName:
			sessionCookie = c
		case utils.LoginFlagCookieName:
			flagCookie = c
		}
	}
	require.NotNil(t, sessionCookie)
	assert.Equal(t, token, sessionCookie.Value)
	assert.True(t, sessionCookie.HttpOnly)
	require.NotNil(t, flagCookie)
	assert.False(t, flagCookie.HttpOnly)
	assert.Equal(t, "true", flagCookie.Value)
}

func TestVerifyEndpoint_CodeFormat(t *testing.T) {
	stub := &stubAuthUC{}
	r := newAuthRouter(stub)

	for _, body := range []string{
		`{"identifier":"a@example.com","code":"12345"}`,   // too short
		`{"identifier":"a@example.com","code":"abcdef"}`,  // not numeric
		`{"identifier":"a@example.com"}`,                  // missing
	} {
		w := doJSON(r, http.MethodPost, "/auth/verify", body)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	}
	// Malformed codes are rejected before the verification flow runs.
	assert.Zero(t, stub.verifyCalls)
}

func TestVerifyEndpoint_InvalidCode(t *testing.T) {
	stub := &stubAuthUC{verifyErr: domain.ErrInvalidCode}
	r := newAuthRouter(stub)

	w := doJSON(r, http.MethodPost, "/auth/verify", `{"identifier":"a@example.com","code":"123456"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestVerifyEndpoint_NoPending(t *testing.T) {
	stub := &stubAuthUC{verifyErr: domain.ErrNoPendingVerification}
	r := newAuthRouter(stub)

	w := doJSON(r, http.MethodPost, "/auth/verify", `{"identifier":"a@example.com","code":"123456"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "no pending verification")
}

func TestDirectLoginEndpoint_NotVerified(t *testing.T) {
	stub := &stubAuthUC{loginErr: domain.ErrNotVerified}
	r := newAuthRouter(stub)

	w := doJSON(r, http.MethodPost, "/auth/direct-login", `{"userId":"user-1"}`)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestMeEndpoint(t *testing.T) {
	stub := &stubAuthUC{meUser: &domain.PublicUser{ID: "user-1", Username: "rangeday"}}
	r := newAuthRouter(stub)

	// No session: rejected.
	w := doJSON(r, http.MethodGet, "/auth/me", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Bearer token works the same as the cookie.
	token, err := stub.sessions.Issue(utils.SessionUser{ID: "user-1", Username: "rangeday"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"username":"rangeday"`)
}

func TestLogoutEndpoint(t *testing.T) {
	r := newAuthRouter(&stubAuthUC{})

	w := doJSON(r, http.MethodPost, "/auth/logout", "")
	assert.Equal(t, http.StatusOK, w.Code)

	var cleared bool
	for _, c := range w.Result().Cookies() {
		if c.Name == utils.SessionCookieName && c.MaxAge < 0 {
			cleared = true
		}
	}
	assert.True(t, cleared)
}
