package notification

import (
	"context"

	"storefront-be/internal/logger"

	"go.uber.org/zap"
)

type Service interface {
	// Notify stores a notification for userID and pushes it to the user's
	// open connections.
	Notify(ctx context.Context, userID, kind, title, message string) error
	List(ctx context.Context, userID string, params ListParams) ([]Notification, error)
	MarkRead(ctx context.Context, userID, id string) error
	Subscribe(userID string) (<-chan Notification, func())
}

type service struct {
	repo Repository
	hub  *Hub
}

func NewService(repo Repository, hub *Hub) Service {
	return &service{repo: repo, hub: hub}
}

func (s *service) Notify(ctx context.Context, userID, kind, title, message string) error {
	if userID == "" {
		return ErrMissingRecipient
	}

	n := &Notification{UserID: userID, Type: kind, Title: title, Message: message}
	if err := s.repo.Insert(ctx, n); err != nil {
		logger.FromCtx(ctx).Error("failed to store notification",
			zap.String("layer", "service"),
			zap.String("user_id", userID),
			zap.String("type", kind),
			zap.Error(err),
		)
		return err
	}

	delivered := s.hub.Publish(*n)
	logger.FromCtx(ctx).Debug("notification sent",
		zap.String("notification_id", n.ID),
		zap.String("user_id", userID),
		zap.Int("delivered", delivered),
	)
	return nil
}

func (s *service) List(ctx context.Context, userID string, params ListParams) ([]Notification, error) {
	return s.repo.ListByUser(ctx, userID, params)
}

func (s *service) MarkRead(ctx context.Context, userID, id string) error {
	found, err := s.repo.MarkRead(ctx, userID, id)
	if err != nil {
		return err
	}
	if !found {
		return ErrNotificationNotFound
	}
	return nil
}

func (s *service) Subscribe(userID string) (<-chan Notification, func()) {
	return s.hub.Subscribe(userID)
}
