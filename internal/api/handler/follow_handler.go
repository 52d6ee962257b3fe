package handler

import (
	"Cuben/internal/api/dto"
	"Cuben/internal/pkg/response"
	"Cuben/internal/service"

	"github.com/gin-gonic/gin"
)

type FollowHandler struct {
	followSvc service.FollowService
}

func NewFollowHandler(followSvc service.FollowService) *FollowHandler {
	return &FollowHandler{followSvc: followSvc}
}

func (s *FollowHandler) Follow(c *gin.Context) {
	meID := c.GetUint64("member_id")
	followingID := pathID(c, "member_id")
	if err := s.followSvc.Subscribe(c.Request.Context(), meID, followingID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *FollowHandler) Unfollow(c *gin.Context) {
	meID := c.GetUint64("member_id")
	followingID := pathID(c, "member_id")
	if err := s.followSvc.Unsubscribe(c.Request.Context(), meID, followingID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *FollowHandler) GetFollowers(c *gin.Context) {
	meID := c.GetUint64("member_id")
	memberID := pathID(c, "member_id")
	var page dto.PageReq
	if err := c.ShouldBindQuery(&page); err != nil {
		response.Error(c, err)
		return
	}
	membersDTO, err := s.followSvc.GetFollowers(c.Request.Context(), meID, memberID, &page)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, membersDTO)
}

func (s *FollowHandler) GetFollowings(c *gin.Context) {
	meID := c.GetUint64("member_id")
	memberID := pathID(c, "member_id")
	var page dto.PageReq
	if err := c.ShouldBindQuery(&page); err != nil {
		response.Error(c, err)
		return
	}
	membersDTO, err := s.followSvc.GetFollowings(c.Request.Context(), meID, memberID, &page)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, membersDTO)
}
