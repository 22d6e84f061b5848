package controllers

import (
	"net/http"

	apperrors "asset-system/pkg/errors"
	"asset-system/pkg/middleware"
	"asset-system/pkg/service"
	"asset-system/pkg/utils"
	appwebsocket "asset-system/pkg/websocket"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type WebSocketController struct {
	hub        *appwebsocket.Hub
	jwtService service.JWTService
	revoked    middleware.RevocationChecker
	logger     *zap.Logger
}

func NewWebSocketController(hub *appwebsocket.Hub, jwtService service.JWTService, revoked middleware.RevocationChecker, logger *zap.Logger) *WebSocketController {
	return &WebSocketController{
		hub:        hub,
		jwtService: jwtService,
		revoked:    revoked,
		logger:     logger,
	}
}

// ServeWs authenticates with ?token= because browsers cannot set headers on
// the upgrade request.
func (c *WebSocketController) ServeWs(ctx echo.Context) error {
	tokenString := ctx.QueryParam("token")
	if tokenString == "" {
		return utils.ErrorResponse(ctx, apperrors.ErrUnauthorized, c.logger)
	}

	claims, err := c.jwtService.ValidateToken(tokenString)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if claims.IsRefreshToken {
		return utils.ErrorResponse(ctx, apperrors.ErrTokenIsNotAccess, c.logger)
	}
	if c.revoked != nil && claims.ID != "" {
		revoked, err := c.revoked.IsRevoked(ctx.Request().Context(), claims.ID)
		if err != nil {
			return utils.ErrorResponse(ctx, err, c.logger)
		}
		if revoked {
			return utils.ErrorResponse(ctx, apperrors.ErrTokenRevoked, c.logger)
		}
	}

	conn, err := upgrader.Upgrade(ctx.Response(), ctx.Request(), nil)
	if err != nil {
		c.logger.Error("websocket upgrade failed", zap.Error(err))
		return err
	}

	client := appwebsocket.NewClient(c.hub, conn, claims.UserID, claims.IsAdmin)
	client.Hub.Register <- client

	go client.WritePump()
	go client.ReadPump()

	c.logger.Info("websocket client connected", zap.Uint64("userID", claims.UserID), zap.Bool("admin", claims.IsAdmin))
	return nil
}
