package handler

import (
	"Cuben/internal/api/dto"
	"Cuben/internal/pkg/response"
	"Cuben/internal/service"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	notificationSvc service.NotificationService
}

func NewNotificationHandler(notificationSvc service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationSvc: notificationSvc}
}

func (s *NotificationHandler) GetNotifications(c *gin.Context) {
	memberID := c.GetUint64("member_id")
	var inquiry dto.NotificationsInquiry
	if err := c.ShouldBindQuery(&inquiry); err != nil {
		response.Error(c, err)
		return
	}
	notificationsDTO, err := s.notificationSvc.GetNotifications(c.Request.Context(), memberID, &inquiry)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, notificationsDTO)
}

func (s *NotificationHandler) MarkRead(c *gin.Context) {
	memberID := c.GetUint64("member_id")
	var req dto.NotificationReadReq
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, err)
		return
	}
	if err := s.notificationSvc.MarkRead(c.Request.Context(), memberID, &req); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *NotificationHandler) MarkAllRead(c *gin.Context) {
	memberID := c.GetUint64("member_id")
	if err := s.notificationSvc.MarkAllRead(c.Request.Context(), memberID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}
