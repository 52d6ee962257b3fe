package handler

import (
	"Cuben/internal/api/dto"
	"Cuben/internal/pkg/response"
	"Cuben/internal/service"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	commentSvc service.CommentService
}

func NewCommentHandler(commentSvc service.CommentService) *CommentHandler {
	return &CommentHandler{commentSvc: commentSvc}
}

func (s *CommentHandler) CreateComment(c *gin.Context) {
	memberID := c.GetUint64("member_id")
	var req dto.CommentCreateReq
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, err)
		return
	}
	commentDTO, err := s.commentSvc.CreateComment(c.Request.Context(), memberID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, commentDTO)
}

func (s *CommentHandler) UpdateComment(c *gin.Context) {
	memberID := c.GetUint64("member_id")
	var req dto.CommentUpdateReq
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, err)
		return
	}
	commentDTO, err := s.commentSvc.UpdateComment(c.Request.Context(), memberID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, commentDTO)
}

func (s *CommentHandler) DeleteComment(c *gin.Context) {
	memberID := c.GetUint64("member_id")
	commentID := pathID(c, "comment_id")
	if err := s.commentSvc.DeleteComment(c.Request.Context(), memberID, commentID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *CommentHandler) GetComments(c *gin.Context) {
	var inquiry dto.CommentsInquiry
	if err := c.ShouldBindQuery(&inquiry); err != nil {
		response.Error(c, err)
		return
	}
	commentsDTO, err := s.commentSvc.GetComments(c.Request.Context(), &inquiry)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, commentsDTO)
}
