package graph

import (
	"context"

	"storefront-be/internal/graph/model"
	"storefront-be/internal/notification"
)

func toGraphQLNotification(n notification.Notification) *model.Notification {
	return &model.Notification{
		ID:        n.ID,
		Type:      n.Type,
		Title:     n.Title,
		Message:   n.Message,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt,
	}
}

func (r *queryResolver) Notifications(ctx context.Context, unreadOnly bool, limit, offset *int) ([]*model.Notification, error) {
	userID, err := currentUserID(ctx)
	if err != nil {
		return nil, err
	}

	params := notification.ListParams{UnreadOnly: unreadOnly}
	if limit != nil {
		params.Limit = *limit
	}
	if offset != nil {
		params.Offset = *offset
	}

	list, err := r.NotificationSvc.List(ctx, userID, params)
	if err != nil {
		return nil, err
	}

	out := make([]*model.Notification, 0, len(list))
	for _, n := range list {
		out = append(out, toGraphQLNotification(n))
	}
	return out, nil
}

func (r *mutationResolver) MarkNotificationRead(ctx context.Context, id string) (bool, error) {
	userID, err := currentUserID(ctx)
	if err != nil {
		return false, err
	}

	if err := r.NotificationSvc.MarkRead(ctx, userID, id); err != nil {
		return false, err
	}
	return true, nil
}
