package service

import (
	"Cuben/internal/api/dto"
	"Cuben/internal/pkg/mongo"
	"context"
)

type NotificationService interface {
	GetNotifications(ctx context.Context, memberID uint64, inquiry *dto.NotificationsInquiry) (*dto.NotificationsDTO, error)
	MarkRead(ctx context.Context, memberID uint64, req *dto.NotificationReadReq) error
	MarkAllRead(ctx context.Context, memberID uint64) error
}

type notificationServiceImpl struct {
	notificationRepo mongo.NotificationRepo
}

func NewNotificationService(notificationRepo mongo.NotificationRepo) NotificationService {
	return &notificationServiceImpl{notificationRepo: notificationRepo}
}

func (s *notificationServiceImpl) GetNotifications(ctx context.Context, memberID uint64, inquiry *dto.NotificationsInquiry) (*dto.NotificationsDTO, error) {
	limit := int64(inquiry.Limit)
	offset := int64((inquiry.Page - 1) * inquiry.Limit)
	list, total, err := s.notificationRepo.List(ctx, memberID, inquiry.UnreadOnly, limit, offset)
	if err != nil {
		return nil, err
	}
	unread, err := s.notificationRepo.UnreadCount(ctx, memberID)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.NotificationDTO, 0, len(list))
	for _, msg := range list {
		items = append(items, &dto.NotificationDTO{
			ID:         msg.ID.Hex(),
			MemberID:   msg.MemberID,
			ActorID:    msg.ActorID,
			ActorNick:  msg.ActorNick,
			NotifyType: msg.NotifyType,
			TargetKind: msg.TargetKind,
			TargetID:   msg.TargetID,
			NotifyRead: msg.IsRead,
			CreatedAt:  msg.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}
	return &dto.NotificationsDTO{List: items, Total: total, Unread: unread}, nil
}

func (s *notificationServiceImpl) MarkRead(ctx context.Context, memberID uint64, req *dto.NotificationReadReq) error {
	if err := s.notificationRepo.MarkRead(ctx, memberID, req.NotificationIDs); err != nil {
		return ErrNotificationMissing
	}
	return nil
}

func (s *notificationServiceImpl) MarkAllRead(ctx context.Context, memberID uint64) error {
	return s.notificationRepo.MarkAllRead(ctx, memberID)
}
