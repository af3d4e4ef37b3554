package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/streamhive/accounts-backend/internal/apperrors"
	"github.com/streamhive/accounts-backend/internal/core/domain"
	portssvc "github.com/streamhive/accounts-backend/internal/core/ports/services"
	"github.com/streamhive/accounts-backend/internal/dto"
	"github.com/streamhive/accounts-backend/internal/handlers"
	"github.com/streamhive/accounts-backend/internal/platform/config"
	"github.com/streamhive/accounts-backend/internal/utils"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock AuthSvcFacade ---
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(ctx context.Context, username, email, password string) (*portssvc.LoginResult, error) {
	args := m.Called(ctx, username, email, password)
	var result *portssvc.LoginResult
	if args.Get(0) != nil {
		result = args.Get(0).(*portssvc.LoginResult)
	}
	return result, args.Error(1)
}

func (m *MockAuthService) Logout(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockAuthService) RefreshTokens(ctx context.Context, presentedRefreshToken string) (*portssvc.TokenPair, error) {
	args := m.Called(ctx, presentedRefreshToken)
	var pair *portssvc.TokenPair
	if args.Get(0) != nil {
		pair = args.Get(0).(*portssvc.TokenPair)
	}
	return pair, args.Error(1)
}

func (m *MockAuthService) ChangePassword(ctx context.Context, presentedRefreshToken, oldPassword, newPassword string) error {
	args := m.Called(ctx, presentedRefreshToken, oldPassword, newPassword)
	return args.Error(0)
}

// --- Mock UserSvcFacade ---
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) GetCurrentUser(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserService) GetWatchHistory(ctx context.Context, userID string) ([]string, error) {
	args := m.Called(ctx, userID)
	var history []string
	if args.Get(0) != nil {
		history = args.Get(0).([]string)
	}
	return history, args.Error(1)
}

func (m *MockUserService) Register(ctx context.Context, req dto.RegisterUserRequest, avatarPath, coverImagePath string) (*domain.User, error) {
	args := m.Called(ctx, req, avatarPath, coverImagePath)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserService) UpdateAccountDetails(ctx context.Context, userID string, req dto.UpdateAccountRequest) (*domain.User, error) {
	args := m.Called(ctx, userID, req)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserService) UpdateAvatar(ctx context.Context, userID string, localPath string) (*domain.User, error) {
	args := m.Called(ctx, userID, localPath)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserService) UpdateCoverImage(ctx context.Context, userID string, localPath string) (*domain.User, error) {
	args := m.Called(ctx, userID, localPath)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func testHandlerConfig() *config.Config {
	return &config.Config{
		AccessTokenSecret:  "test-access-secret",
		AccessTokenExpiry:  15 * time.Minute,
		RefreshTokenSecret: "test-refresh-secret",
		RefreshTokenExpiry: 24 * time.Hour,
		JWTIssuer:          "accounts-backend-test",
	}
}

// --- Test Suite ---
type AuthHandlerTestSuite struct {
	suite.Suite
	cfg      *config.Config
	mockAuth *MockAuthService
	mockUser *MockUserService
	router   *gin.Engine
}

func (suite *AuthHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.cfg = testHandlerConfig()
	suite.mockAuth = new(MockAuthService)
	suite.mockUser = new(MockUserService)
	suite.router = gin.New()
	handlers.RegisterRoutes(suite.router, suite.cfg, &portssvc.ServiceContainer{
		User: suite.mockUser,
		Auth: suite.mockAuth,
	})
}

// accessTokenFor mints a valid access token accepted by the auth middleware.
func (suite *AuthHandlerTestSuite) accessTokenFor(userID string) string {
	token, err := utils.GenerateAccessJWT(
		userID, "a@x.com", "alice",
		suite.cfg.AccessTokenSecret, suite.cfg.AccessTokenExpiry, suite.cfg.JWTIssuer,
	)
	suite.Require().NoError(err)
	return token
}

func (suite *AuthHandlerTestSuite) doJSON(method, path string, body any, mod func(*http.Request)) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		suite.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if mod != nil {
		mod(req)
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func setCookieNames(w *httptest.ResponseRecorder) []string {
	var names []string
	for _, c := range w.Result().Cookies() {
		names = append(names, c.Name)
	}
	return names
}

// --- Login Tests ---

func (suite *AuthHandlerTestSuite) TestLogin_Success() {
	result := &portssvc.LoginResult{
		TokenPair: portssvc.TokenPair{AccessToken: "at", RefreshToken: "rt"},
		User: &domain.User{
			UserID:       "665f1c9e8b3f4a0012345678",
			Username:     "alice",
			Email:        "a@x.com",
			FullName:     "Alice A",
			PasswordHash: "$2a$10$secret-never-leaves",
			RefreshToken: "rt",
		},
	}
	suite.mockAuth.On("Login", mock.Anything, "alice", "", "p1").Return(result, nil).Once()

	w := suite.doJSON(http.MethodPost, "/api/v1/users/login", gin.H{
		"username": "alice",
		"password": "p1",
	}, nil)

	suite.Equal(http.StatusOK, w.Code)

	var envelope struct {
		StatusCode int    `json:"statusCode"`
		Message    string `json:"message"`
		Success    bool   `json:"success"`
		Data       struct {
			User         dto.UserResponse `json:"user"`
			AccessToken  string           `json:"accessToken"`
			RefreshToken string           `json:"refreshToken"`
		} `json:"data"`
	}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &envelope))
	suite.True(envelope.Success)
	suite.Equal(http.StatusOK, envelope.StatusCode)
	suite.Equal("alice", envelope.Data.User.Username)
	suite.Equal("at", envelope.Data.AccessToken)
	suite.Equal("rt", envelope.Data.RefreshToken)

	// Sensitive fields stay out of the response body.
	suite.NotContains(w.Body.String(), "secret-never-leaves")
	suite.NotContains(w.Body.String(), "password")

	suite.Contains(setCookieNames(w), "accessToken")
	suite.Contains(setCookieNames(w), "refreshToken")
	suite.mockAuth.AssertExpectations(suite.T())
}

func (suite *AuthHandlerTestSuite) TestLogin_MissingPassword() {
	w := suite.doJSON(http.MethodPost, "/api/v1/users/login", gin.H{"username": "alice"}, nil)

	suite.Equal(http.StatusBadRequest, w.Code)

	var envelope handlers.APIErrorResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &envelope))
	suite.False(envelope.Success)
	// The required Password field surfaces as a field-level error.
	suite.NotEmpty(envelope.Errors)
	suite.mockAuth.AssertNotCalled(suite.T(), "Login", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AuthHandlerTestSuite) TestLogin_Unauthorized() {
	suite.mockAuth.On("Login", mock.Anything, "alice", "", "wrong").
		Return(nil, apperrors.ErrUnauthorized).Once()

	w := suite.doJSON(http.MethodPost, "/api/v1/users/login", gin.H{
		"username": "alice",
		"password": "wrong",
	}, nil)

	suite.Equal(http.StatusUnauthorized, w.Code)

	var envelope handlers.APIErrorResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &envelope))
	suite.False(envelope.Success)
	suite.Equal(http.StatusUnauthorized, envelope.StatusCode)
}

// --- RefreshToken Tests ---

func (suite *AuthHandlerTestSuite) TestRefreshToken_FromCookie() {
	pair := &portssvc.TokenPair{AccessToken: "new-at", RefreshToken: "new-rt"}
	suite.mockAuth.On("RefreshTokens", mock.Anything, "old-rt").Return(pair, nil).Once()

	w := suite.doJSON(http.MethodGet, "/api/v1/users/refresh-token", nil, func(req *http.Request) {
		req.AddCookie(&http.Cookie{Name: handlers.RefreshTokenCookie, Value: "old-rt"})
	})

	suite.Equal(http.StatusOK, w.Code)

	var envelope struct {
		Data dto.RefreshTokenResponse `json:"data"`
	}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &envelope))
	suite.Equal("new-at", envelope.Data.AccessToken)
	suite.Equal("new-rt", envelope.Data.RefreshToken)
	suite.Contains(setCookieNames(w), "refreshToken")
	suite.mockAuth.AssertExpectations(suite.T())
}

func (suite *AuthHandlerTestSuite) TestRefreshToken_FromBody() {
	pair := &portssvc.TokenPair{AccessToken: "new-at", RefreshToken: "new-rt"}
	suite.mockAuth.On("RefreshTokens", mock.Anything, "body-rt").Return(pair, nil).Once()

	w := suite.doJSON(http.MethodGet, "/api/v1/users/refresh-token", gin.H{"refreshToken": "body-rt"}, nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.mockAuth.AssertExpectations(suite.T())
}

func (suite *AuthHandlerTestSuite) TestRefreshToken_Replayed() {
	suite.mockAuth.On("RefreshTokens", mock.Anything, "rotated-out").
		Return(nil, apperrors.ErrUnauthorized).Once()

	w := suite.doJSON(http.MethodGet, "/api/v1/users/refresh-token", nil, func(req *http.Request) {
		req.AddCookie(&http.Cookie{Name: handlers.RefreshTokenCookie, Value: "rotated-out"})
	})

	suite.Equal(http.StatusUnauthorized, w.Code)
}

// --- Logout Tests ---

func (suite *AuthHandlerTestSuite) TestLogout_Success() {
	userID := "665f1c9e8b3f4a0012345678"
	suite.mockAuth.On("Logout", mock.Anything, userID).Return(nil).Once()

	w := suite.doJSON(http.MethodGet, "/api/v1/users/logout", nil, func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+suite.accessTokenFor(userID))
	})

	suite.Equal(http.StatusOK, w.Code)

	// Both cookies are expired on logout.
	for _, c := range w.Result().Cookies() {
		suite.LessOrEqual(c.MaxAge, 0)
	}
	suite.mockAuth.AssertExpectations(suite.T())
}

func (suite *AuthHandlerTestSuite) TestLogout_NoToken() {
	w := suite.doJSON(http.MethodGet, "/api/v1/users/logout", nil, nil)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockAuth.AssertNotCalled(suite.T(), "Logout", mock.Anything, mock.Anything)
}

func (suite *AuthHandlerTestSuite) TestLogout_TamperedToken() {
	token := suite.accessTokenFor("665f1c9e8b3f4a0012345678")

	w := suite.doJSON(http.MethodGet, "/api/v1/users/logout", nil, func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+strings.TrimSuffix(token, token[len(token)-2:])+"xx")
	})

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockAuth.AssertNotCalled(suite.T(), "Logout", mock.Anything, mock.Anything)
}

// --- ChangePassword Tests ---

func (suite *AuthHandlerTestSuite) TestChangePassword_Success() {
	userID := "665f1c9e8b3f4a0012345678"
	suite.mockAuth.On("ChangePassword", mock.Anything, "session-rt", "old", "new").Return(nil).Once()

	w := suite.doJSON(http.MethodPatch, "/api/v1/users/change-password", gin.H{
		"oldPassword": "old",
		"newPassword": "new",
	}, func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+suite.accessTokenFor(userID))
		req.AddCookie(&http.Cookie{Name: handlers.RefreshTokenCookie, Value: "session-rt"})
	})

	suite.Equal(http.StatusOK, w.Code)
	suite.mockAuth.AssertExpectations(suite.T())
}

func (suite *AuthHandlerTestSuite) TestChangePassword_SamePasswordRejected() {
	userID := "665f1c9e8b3f4a0012345678"
	suite.mockAuth.On("ChangePassword", mock.Anything, "session-rt", "same", "same").
		Return(apperrors.NewBadRequest("old and new password must not be the same")).Once()

	w := suite.doJSON(http.MethodPatch, "/api/v1/users/change-password", gin.H{
		"oldPassword": "same",
		"newPassword": "same",
	}, func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+suite.accessTokenFor(userID))
		req.AddCookie(&http.Cookie{Name: handlers.RefreshTokenCookie, Value: "session-rt"})
	})

	suite.Equal(http.StatusBadRequest, w.Code)

	var envelope handlers.APIErrorResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &envelope))
	suite.False(envelope.Success)
}

func (suite *AuthHandlerTestSuite) TestChangePassword_MissingBody() {
	userID := "665f1c9e8b3f4a0012345678"

	w := suite.doJSON(http.MethodPatch, "/api/v1/users/change-password", gin.H{
		"oldPassword": "old",
	}, func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+suite.accessTokenFor(userID))
	})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockAuth.AssertNotCalled(suite.T(), "ChangePassword", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// --- Run Suite ---
func TestAuthHandler(t *testing.T) {
	suite.Run(t, new(AuthHandlerTestSuite))
}
