package middleware

import (
	"context"
	"strings"
	"time"

	"asset-system/pkg/contextkeys"
	apperrors "asset-system/pkg/errors"
	"asset-system/pkg/service"
	"asset-system/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// RevocationChecker reports whether an access token id was revoked by logout.
type RevocationChecker interface {
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

type AuthMiddleware struct {
	jwtService service.JWTService
	revoked    RevocationChecker
	logger     *zap.Logger
}

func NewAuthMiddleware(jwtSvc service.JWTService, revoked RevocationChecker, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtSvc,
		revoked:    revoked,
		logger:     logger,
	}
}

// Auth accepts "Authorization: Bearer <access token>" and stores the caller
// on the request context.
func (m *AuthMiddleware) Auth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
		if authHeader == "" {
			return utils.ErrorResponse(c, apperrors.ErrEmptyAuthHeader, m.logger)
		}

		parts := strings.Fields(authHeader)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			m.logger.Warn("auth: malformed Authorization header")
			return utils.ErrorResponse(c, apperrors.ErrInvalidAuthHeader, m.logger)
		}

		claims, err := m.jwtService.ValidateToken(parts[1])
		if err != nil {
			m.logger.Warn("auth: token validation failed", zap.Error(err))
			return utils.ErrorResponse(c, err, m.logger)
		}
		if claims.IsRefreshToken {
			m.logger.Warn("auth: refresh token used as access token", zap.Uint64("userID", claims.UserID))
			return utils.ErrorResponse(c, apperrors.ErrTokenIsNotAccess, m.logger)
		}

		if m.revoked != nil && claims.ID != "" {
			revoked, err := m.revoked.IsRevoked(c.Request().Context(), claims.ID)
			if err != nil {
				return utils.ErrorResponse(c, err, m.logger)
			}
			if revoked {
				return utils.ErrorResponse(c, apperrors.ErrTokenRevoked, m.logger)
			}
		}

		ctx := utils.WithActor(c.Request().Context(), claims.UserID, claims.IsAdmin)
		ctx = context.WithValue(ctx, contextkeys.TokenIDKey, claims.ID)
		if claims.ExpiresAt != nil {
			ctx = context.WithValue(ctx, contextkeys.TokenExpKey, claims.ExpiresAt.Time)
		}
		c.SetRequest(c.Request().WithContext(ctx))

		return next(c)
	}
}

// RequireAdmin must run after Auth.
func (m *AuthMiddleware) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !utils.IsAdminFromCtx(c.Request().Context()) {
			userID, _ := utils.GetUserIDFromCtx(c.Request().Context())
			m.logger.Warn("auth: admin route denied", zap.Uint64("userID", userID), zap.String("path", c.Path()))
			return utils.ErrorResponse(c, apperrors.ErrForbidden, m.logger)
		}
		return next(c)
	}
}

// TokenFromCtx returns the id and expiry of the access token that
// authenticated the request.
func TokenFromCtx(ctx context.Context) (string, time.Time) {
	id, _ := ctx.Value(contextkeys.TokenIDKey).(string)
	exp, _ := ctx.Value(contextkeys.TokenExpKey).(time.Time)
	return id, exp
}
