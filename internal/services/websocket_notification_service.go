package services

import (
	"go.uber.org/zap"

	"asset-system/pkg/websocket"
)

type WebSocketNotificationServiceInterface interface {
	SendNotification(userID uint64, payload interface{}, messageType string) error
	SendToAdmins(payload interface{}, messageType string) ([]uint64, error)
}

type WebSocketNotificationService struct {
	hub    *websocket.Hub
	logger *zap.Logger
}

func NewWebSocketNotificationService(hub *websocket.Hub, logger *zap.Logger) WebSocketNotificationServiceInterface {
	return &WebSocketNotificationService{
		hub:    hub,
		logger: logger,
	}
}

func (s *WebSocketNotificationService) SendNotification(userID uint64, payload interface{}, messageType string) error {
	s.logger.Debug("websocket notification",
		zap.Uint64("userID", userID),
		zap.String("type", messageType),
	)
	return s.hub.SendMessageToUser(userID, payload, messageType)
}

func (s *WebSocketNotificationService) SendToAdmins(payload interface{}, messageType string) ([]uint64, error) {
	reached, err := s.hub.SendMessageToAdmins(payload, messageType)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("websocket notification to admins",
		zap.String("type", messageType),
		zap.Int("reached", len(reached)),
	)
	return reached, nil
}
