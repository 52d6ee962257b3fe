package handler

import (
	"Cuben/internal/api/dto"
	"Cuben/internal/pkg/response"
	"Cuben/internal/service"

	"github.com/gin-gonic/gin"
)

type ArticleHandler struct {
	articleSvc service.ArticleService
}

func NewArticleHandler(articleSvc service.ArticleService) *ArticleHandler {
	return &ArticleHandler{articleSvc: articleSvc}
}

func (s *ArticleHandler) CreateArticle(c *gin.Context) {
	memberID := c.GetUint64("member_id")
	var req dto.ArticleCreateReq
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, err)
		return
	}
	articleDTO, err := s.articleSvc.CreateArticle(c.Request.Context(), memberID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, articleDTO)
}

func (s *ArticleHandler) GetArticle(c *gin.Context) {
	meID := c.GetUint64("member_id")
	articleID := pathID(c, "article_id")
	articleDTO, err := s.articleSvc.GetArticle(c.Request.Context(), meID, articleID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, articleDTO)
}

func (s *ArticleHandler) UpdateArticle(c *gin.Context) {
	memberID := c.GetUint64("member_id")
	articleID := pathID(c, "article_id")
	var req dto.ArticleUpdateReq
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, err)
		return
	}
	articleDTO, err := s.articleSvc.UpdateArticle(c.Request.Context(), memberID, articleID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, articleDTO)
}

func (s *ArticleHandler) GetArticles(c *gin.Context) {
	meID := c.GetUint64("member_id")
	var inquiry dto.ArticlesInquiry
	if err := c.ShouldBindQuery(&inquiry); err != nil {
		response.Error(c, err)
		return
	}
	articlesDTO, err := s.articleSvc.GetArticles(c.Request.Context(), meID, &inquiry)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, articlesDTO)
}

func (s *ArticleHandler) LikeArticle(c *gin.Context) {
	memberID := c.GetUint64("member_id")
	articleID := pathID(c, "article_id")
	state, err := s.articleSvc.LikeArticle(c.Request.Context(), memberID, articleID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, state)
}

func (s *ArticleHandler) SaveArticle(c *gin.Context) {
	memberID := c.GetUint64("member_id")
	articleID := pathID(c, "article_id")
	state, err := s.articleSvc.SaveArticle(c.Request.Context(), memberID, articleID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, state)
}

func (s *ArticleHandler) ViewArticle(c *gin.Context) {
	viewerID := c.GetUint64("member_id")
	articleID := pathID(c, "article_id")
	state, err := s.articleSvc.ViewArticle(c.Request.Context(), viewerID, articleID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, state)
}

func (s *ArticleHandler) GetAllArticles(c *gin.Context) {
	var inquiry dto.AllArticlesInquiry
	if err := c.ShouldBindQuery(&inquiry); err != nil {
		response.Error(c, err)
		return
	}
	articlesDTO, err := s.articleSvc.GetAllArticles(c.Request.Context(), &inquiry)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, articlesDTO)
}

func (s *ArticleHandler) UpdateArticleByAdmin(c *gin.Context) {
	articleID := pathID(c, "article_id")
	var req dto.ArticleUpdateReq
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, err)
		return
	}
	articleDTO, err := s.articleSvc.UpdateArticleByAdmin(c.Request.Context(), articleID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, articleDTO)
}
