package handler

import (
	"Cuben/internal/api/dto"
	"Cuben/internal/pkg/response"
	"Cuben/internal/service"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	postSvc service.PostService
}

func NewPostHandler(postSvc service.PostService) *PostHandler {
	return &PostHandler{postSvc: postSvc}
}

func (s *PostHandler) CreatePost(c *gin.Context) {
	memberID := c.GetUint64("member_id")
	var req dto.PostCreateReq
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, err)
		return
	}
	postDTO, err := s.postSvc.CreatePost(c.Request.Context(), memberID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, postDTO)
}

func (s *PostHandler) GetPost(c *gin.Context) {
	meID := c.GetUint64("member_id")
	postID := pathID(c, "post_id")
	postDTO, err := s.postSvc.GetPost(c.Request.Context(), meID, postID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, postDTO)
}

func (s *PostHandler) UpdatePost(c *gin.Context) {
	memberID := c.GetUint64("member_id")
	postID := pathID(c, "post_id")
	var req dto.PostUpdateReq
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, err)
		return
	}
	postDTO, err := s.postSvc.UpdatePost(c.Request.Context(), memberID, postID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, postDTO)
}

func (s *PostHandler) GetPosts(c *gin.Context) {
	meID := c.GetUint64("member_id")
	var inquiry dto.PostsInquiry
	if err := c.ShouldBindQuery(&inquiry); err != nil {
		response.Error(c, err)
		return
	}
	postsDTO, err := s.postSvc.GetPosts(c.Request.Context(), meID, &inquiry)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, postsDTO)
}

func (s *PostHandler) LikePost(c *gin.Context) {
	memberID := c.GetUint64("member_id")
	postID := pathID(c, "post_id")
	state, err := s.postSvc.LikePost(c.Request.Context(), memberID, postID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, state)
}

func (s *PostHandler) SavePost(c *gin.Context) {
	memberID := c.GetUint64("member_id")
	postID := pathID(c, "post_id")
	state, err := s.postSvc.SavePost(c.Request.Context(), memberID, postID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, state)
}

func (s *PostHandler) ViewPost(c *gin.Context) {
	viewerID := c.GetUint64("member_id")
	postID := pathID(c, "post_id")
	state, err := s.postSvc.ViewPost(c.Request.Context(), viewerID, postID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, state)
}

func (s *PostHandler) GetAllPosts(c *gin.Context) {
	var inquiry dto.AllPostsInquiry
	if err := c.ShouldBindQuery(&inquiry); err != nil {
		response.Error(c, err)
		return
	}
	postsDTO, err := s.postSvc.GetAllPosts(c.Request.Context(), &inquiry)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, postsDTO)
}

func (s *PostHandler) UpdatePostByAdmin(c *gin.Context) {
	var req dto.PostAdminUpdateReq
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, err)
		return
	}
	postDTO, err := s.postSvc.UpdatePostByAdmin(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, postDTO)
}
