package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	portssvc "github.com/SscSPs/budget_tracker_app/internal/core/ports/services"
	"github.com/SscSPs/budget_tracker_app/internal/dto"
	"github.com/SscSPs/budget_tracker_app/internal/middleware"
	"github.com/SscSPs/budget_tracker_app/internal/utils"
	"github.com/gin-gonic/gin"
)

const oauthStateCookie = "oauth_state"

// authHandler handles registration, login and the current-user endpoint.
type authHandler struct {
	userService   portssvc.UserSvcFacade
	googleService portssvc.GoogleOAuthSvcFacade
	analytics     *utils.PosthogClientWrapper
	secureCookies bool
}

func newAuthHandler(services *portssvc.ServiceContainer, analytics *utils.PosthogClientWrapper, secureCookies bool) *authHandler {
	return &authHandler{
		userService:   services.User,
		googleService: services.Google,
		analytics:     analytics,
		secureCookies: secureCookies,
	}
}

// registerAuthRoutes sets up the public authentication routes and the authenticated /me route.
func registerAuthRoutes(rg *gin.RouterGroup, h *authHandler, loginLimit, authMW gin.HandlerFunc) {
	auth := rg.Group("/auth")
	{
		auth.POST("/register", h.register)
		auth.POST("/login", loginLimit, h.login)
		auth.POST("/google", loginLimit, h.googleLogin)
		auth.GET("/google/login", h.googleRedirect)
		auth.GET("/google/callback", h.googleCallback)
		auth.GET("/me", authMW, h.me)
	}
}

// register godoc
// @Summary Register new user
// @Description Creates a user together with a "Main Account" in UAH.
// @Tags auth
// @Accept json
// @Produce json
// @Param register body dto.RegisterRequest true "Registration details"
// @Success 201 {object} dto.UserResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Email already registered"
// @Failure 500 {object} dto.ErrorResponse
// @Router /auth/register [post]
func (h *authHandler) register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	user, err := h.userService.RegisterUser(c.Request.Context(), req)
	if err != nil {
		respondWithError(c, err, "Failed to register user")
		return
	}

	h.analytics.Enqueue(strconv.FormatInt(user.UserID, 10), utils.EventUserRegistered, map[string]any{"method": "password"})
	c.JSON(http.StatusCreated, dto.ToUserResponse(user))
}

// login godoc
// @Summary User login
// @Description Authenticates with email and password and returns a bearer token. Accepts JSON or an OAuth2 password form (username, password).
// @Tags auth
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param login body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.TokenResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 429 {object} dto.ErrorResponse
// @Router /auth/login [post]
func (h *authHandler) login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		respondBindError(c, err)
		return
	}

	token, expiresAt, err := h.userService.AuthenticateUser(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondWithError(c, err, "Failed to log in")
		return
	}
	h.respondWithToken(c, token, expiresAt, "password")
}

// googleLogin godoc
// @Summary Sign in with a Google ID token
// @Description Validates an ID token obtained by the client and returns a bearer token, registering the user on first sign-in.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.GoogleLoginRequest true "Google ID token"
// @Success 200 {object} dto.TokenResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /auth/google [post]
func (h *authHandler) googleLogin(c *gin.Context) {
	var req dto.GoogleLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	token, expiresAt, err := h.userService.AuthenticateWithGoogle(c.Request.Context(), req.IDToken)
	if err != nil {
		respondWithError(c, err, "Failed to sign in with Google")
		return
	}
	h.respondWithToken(c, token, expiresAt, "google")
}

// googleRedirect godoc
// @Summary Start the Google OAuth flow
// @Description Redirects to Google's consent screen. A state cookie guards the callback.
// @Tags auth
// @Success 307
// @Failure 404 {object} dto.ErrorResponse "Google sign-in not configured"
// @Router /auth/google/login [get]
func (h *authHandler) googleRedirect(c *gin.Context) {
	if !h.googleService.IsEnabled() {
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "Google sign-in is not configured"})
		return
	}
	state, err := h.googleService.GenerateStateString(c.Request.Context())
	if err != nil {
		respondWithError(c, err, "Failed to start Google sign-in")
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(oauthStateCookie, state, int((10 * time.Minute).Seconds()), "/", "", h.secureCookies, true)
	c.Redirect(http.StatusTemporaryRedirect, h.googleService.GetGoogleLoginURL(c.Request.Context(), state))
}

// googleCallback godoc
// @Summary Complete the Google OAuth flow
// @Tags auth
// @Produce json
// @Param code query string true "Authorization code"
// @Param state query string true "State issued by /auth/google/login"
// @Success 200 {object} dto.TokenResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /auth/google/callback [get]
func (h *authHandler) googleCallback(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	expected, err := c.Cookie(oauthStateCookie)
	if err != nil || expected == "" || c.Query("state") != expected {
		logger.Warn("OAuth state mismatch")
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid OAuth state"})
		return
	}
	c.SetCookie(oauthStateCookie, "", -1, "/", "", h.secureCookies, true)

	code := c.Query("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Authorization code is required"})
		return
	}

	token, expiresAt, err := h.userService.AuthenticateWithGoogleCode(c.Request.Context(), code)
	if err != nil {
		respondWithError(c, err, "Failed to sign in with Google")
		return
	}
	h.respondWithToken(c, token, expiresAt, "google")
}

// me godoc
// @Summary Current user
// @Tags auth
// @Produce json
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /auth/me [get]
func (h *authHandler) me(c *gin.Context) {
	user, ok := middleware.GetUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "Unauthorized"})
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

func (h *authHandler) respondWithToken(c *gin.Context, token string, expiresAt time.Time, method string) {
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("User logged in", slog.String("method", method))
	c.JSON(http.StatusOK, dto.NewBearerToken(token, expiresAt))
}
