package controllers

import (
	"net/http"
	"time"

	"asset-system/internal/dto"
	"asset-system/internal/services"
	apperrors "asset-system/pkg/errors"
	"asset-system/pkg/middleware"
	"asset-system/pkg/service"
	"asset-system/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const refreshCookieName = "refreshToken"

type AuthController struct {
	authService services.AuthServiceInterface
	jwtSvc      service.JWTService
	logger      *zap.Logger
}

func NewAuthController(
	authService services.AuthServiceInterface,
	jwtSvc service.JWTService,
	logger *zap.Logger,
) *AuthController {
	return &AuthController{
		authService: authService,
		jwtSvc:      jwtSvc,
		logger:      logger,
	}
}

func (ctrl *AuthController) errorResponse(c echo.Context, err error) error {
	return utils.ErrorResponse(c, err, ctrl.logger)
}

func (ctrl *AuthController) Login(c echo.Context) error {
	var payload dto.LoginDTO

	if err := c.Bind(&payload); err != nil {
		ctrl.logger.Warn("Login: bind failed", zap.Error(err))
		return ctrl.errorResponse(c, apperrors.NewBadRequestError("invalid login payload"))
	}

	if err := c.Validate(&payload); err != nil {
		return ctrl.errorResponse(c, err)
	}

	user, err := ctrl.authService.Login(c.Request().Context(), payload)
	if err != nil {
		ctrl.logger.Warn("Login: rejected", zap.String("username", payload.Username), zap.Error(err))
		return ctrl.errorResponse(c, err)
	}

	return ctrl.generateTokensAndRespond(c, dto.NewUserPublicDTO(user), "logged in")
}

// RefreshToken trades the refresh cookie for a new token pair. The user is
// reloaded so a disabled account or a changed admin flag takes effect.
func (ctrl *AuthController) RefreshToken(c echo.Context) error {
	cookie, err := c.Cookie(refreshCookieName)
	if err != nil || cookie.Value == "" {
		return ctrl.errorResponse(c, apperrors.ErrUnauthorized)
	}

	claims, err := ctrl.jwtSvc.ValidateToken(cookie.Value)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}
	if !claims.IsRefreshToken {
		return ctrl.errorResponse(c, apperrors.NewHttpError(
			http.StatusUnauthorized,
			"a refresh token is required",
			nil,
			nil,
		))
	}

	user, err := ctrl.authService.GetUserByID(c.Request().Context(), claims.UserID)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}

	return ctrl.generateTokensAndRespond(c, dto.NewUserPublicDTO(user), "tokens refreshed")
}

// Logout revokes the access token that authenticated the request and clears
// the refresh cookie.
func (ctrl *AuthController) Logout(c echo.Context) error {
	tokenID, expiresAt := middleware.TokenFromCtx(c.Request().Context())
	if err := ctrl.authService.Logout(c.Request().Context(), tokenID, expiresAt); err != nil {
		ctrl.logger.Error("Logout: revoke failed", zap.Error(err))
		return ctrl.errorResponse(c, err)
	}

	c.SetCookie(&http.Cookie{
		Name:     refreshCookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})

	return utils.SuccessResponse(c, nil, "logged out", http.StatusOK)
}

func (ctrl *AuthController) Me(c echo.Context) error {
	userID, err := utils.GetUserIDFromCtx(c.Request().Context())
	if err != nil {
		return ctrl.errorResponse(c, apperrors.ErrUnauthorized)
	}
	user, err := ctrl.authService.GetUserByID(c.Request().Context(), userID)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}
	return utils.SuccessResponse(c, dto.NewUserPublicDTO(user), "profile", http.StatusOK)
}

func (ctrl *AuthController) generateTokensAndRespond(c echo.Context, user dto.UserPublicDTO, message string) error {
	accessToken, refreshToken, err := ctrl.jwtSvc.GenerateTokens(user.ID, user.IsAdmin)
	if err != nil {
		ctrl.logger.Error("failed to generate tokens", zap.Error(err), zap.Uint64("userID", user.ID))
		return ctrl.errorResponse(c, err)
	}

	c.SetCookie(&http.Cookie{
		Name:     refreshCookieName,
		Value:    refreshToken,
		Path:     "/",
		Expires:  time.Now().Add(ctrl.jwtSvc.GetRefreshTokenTTL()),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})

	return utils.SuccessResponse(c, dto.AuthResponseDTO{AccessToken: accessToken, User: user}, message, http.StatusOK)
}
