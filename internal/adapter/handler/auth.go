package handler

import (
	stdErrors "errors"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/voicenote/errors"
	authDTO "github.com/johnquangdev/voicenote/internal/adapter/dto/auth"
	"github.com/johnquangdev/voicenote/internal/adapter/dto/common"
	"github.com/johnquangdev/voicenote/internal/adapter/presenter"
	"github.com/johnquangdev/voicenote/internal/domain/entities"
	"github.com/johnquangdev/voicenote/internal/infrastructure/http/middleware"
	"github.com/johnquangdev/voicenote/internal/usecase/auth"
)

// Auth handles authentication HTTP requests
type Auth struct {
	authService *auth.Service
	logger      *zap.Logger
}

// NewAuth creates a new auth handler
func NewAuth(authService *auth.Service, logger *zap.Logger) *Auth {
	return &Auth{
		authService: authService,
		logger:      logger,
	}
}

// Register opens a new account
// @Summary      Register
// @Description  Create an account with a unique username
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request  body      authDTO.RegisterRequest  true  "Account details"
// @Success      201      {object}  authDTO.UserResponse
// @Failure      400      {object}  map[string]interface{}  "Validation failed"
// @Failure      409      {object}  map[string]interface{}  "Username or email already registered"
// @Router       /auth/register [post]
func (h *Auth) Register(c echo.Context) error {
	var req authDTO.RegisterRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	user, err := h.authService.Register(c.Request().Context(), auth.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		if stdErrors.Is(err, entities.ErrUsernameTaken) {
			return HandleError(h.logger, c, errors.ErrUserAlreadyExists(req.Username))
		}
		return HandleError(h.logger, c, err)
	}

	return HandleCreated(h.logger, c, presenter.ToUserResponse(user))
}

// Login exchanges credentials for tokens
// @Summary      Login
// @Description  Authenticate with username and password
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request  body      authDTO.LoginRequest  true  "Credentials"
// @Success      200      {object}  authDTO.AuthResponse
// @Failure      401      {object}  map[string]interface{}  "Invalid username or password"
// @Router       /auth/login [post]
func (h *Auth) Login(c echo.Context) error {
	var req authDTO.LoginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	resp, err := h.authService.Login(c.Request().Context(), auth.LoginInput{
		Username:  req.Username,
		Password:  req.Password,
		IPAddress: c.RealIP(),
		UserAgent: c.Request().UserAgent(),
	})
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, presenter.ToAuthResponse(resp))
}

// RefreshToken rotates the refresh token
// @Summary      Refresh tokens
// @Description  Exchange a refresh token for a new token pair; the old refresh token is revoked
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request  body      authDTO.RefreshTokenRequest  true  "Refresh token"
// @Success      200      {object}  authDTO.AuthResponse
// @Failure      401      {object}  map[string]interface{}  "Invalid refresh token"
// @Router       /auth/refresh [post]
func (h *Auth) RefreshToken(c echo.Context) error {
	var req authDTO.RefreshTokenRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	resp, err := h.authService.Refresh(c.Request().Context(), req.RefreshToken, c.RealIP(), c.Request().UserAgent())
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, presenter.ToAuthResponse(resp))
}

// Logout revokes a refresh token
// @Summary      Logout
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request  body      authDTO.LogoutRequest  true  "Refresh token"
// @Success      200      {object}  common.MessageResponse
// @Failure      401      {object}  map[string]interface{}  "Invalid refresh token"
// @Router       /auth/logout [post]
func (h *Auth) Logout(c echo.Context) error {
	var req authDTO.LogoutRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	if err := h.authService.Logout(c.Request().Context(), req.RefreshToken); err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, common.MessageResponse{Message: "Logged out successfully"})
}

// Me returns the current user information
// @Summary      Current user
// @Tags         Auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  authDTO.UserResponse
// @Failure      401  {object}  map[string]interface{}  "Authentication required"
// @Router       /auth/me [get]
func (h *Auth) Me(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return HandleError(h.logger, c, errors.ErrUnauthenticated())
	}

	user, err := h.authService.Me(c.Request().Context(), userID)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, presenter.ToUserResponse(user))
}

// ForgotPassword issues a one-time password reset token
// @Summary      Request password reset
// @Description  Issue a reset token valid for 15 minutes when username and email match
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request  body      authDTO.ForgotPasswordRequest  true  "Account identity"
// @Success      200      {object}  authDTO.ResetTokenResponse
// @Failure      400      {object}  map[string]interface{}  "Username and email do not match"
// @Router       /auth/password/forgot [post]
func (h *Auth) ForgotPassword(c echo.Context) error {
	var req authDTO.ForgotPasswordRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	grant, err := h.authService.ForgotPassword(c.Request().Context(), req.Username, req.Email)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, presenter.ToResetTokenResponse(grant))
}

// ResetPassword sets a new password with a reset token
// @Summary      Reset password
// @Description  Redeem a reset token; every session of the account is revoked
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request  body      authDTO.ResetPasswordRequest  true  "Token and new password"
// @Success      200      {object}  common.MessageResponse
// @Failure      400      {object}  map[string]interface{}  "Invalid or expired token"
// @Router       /auth/password/reset [post]
func (h *Auth) ResetPassword(c echo.Context) error {
	var req authDTO.ResetPasswordRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	if err := h.authService.ResetPassword(c.Request().Context(), req.Token, req.NewPassword); err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, common.MessageResponse{Message: "Password updated"})
}
