package handler

import (
	"Cuben/internal/api/dto"
	"Cuben/internal/pkg/response"
	"Cuben/internal/service"

	"github.com/gin-gonic/gin"
)

type ProductHandler struct {
	productSvc service.ProductService
}

func NewProductHandler(productSvc service.ProductService) *ProductHandler {
	return &ProductHandler{productSvc: productSvc}
}

func (s *ProductHandler) CreateProduct(c *gin.Context) {
	memberID := c.GetUint64("member_id")
	var req dto.ProductCreateReq
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, err)
		return
	}
	productDTO, err := s.productSvc.CreateProduct(c.Request.Context(), memberID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, productDTO)
}

func (s *ProductHandler) GetProduct(c *gin.Context) {
	meID := c.GetUint64("member_id")
	productID := pathID(c, "product_id")
	productDTO, err := s.productSvc.GetProduct(c.Request.Context(), meID, productID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, productDTO)
}

func (s *ProductHandler) UpdateProduct(c *gin.Context) {
	memberID := c.GetUint64("member_id")
	productID := pathID(c, "product_id")
	var req dto.ProductUpdateReq
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, err)
		return
	}
	productDTO, err := s.productSvc.UpdateProduct(c.Request.Context(), memberID, productID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, productDTO)
}

func (s *ProductHandler) GetProducts(c *gin.Context) {
	meID := c.GetUint64("member_id")
	var inquiry dto.ProductsInquiry
	if err := c.ShouldBindQuery(&inquiry); err != nil {
		response.Error(c, err)
		return
	}
	productsDTO, err := s.productSvc.GetProducts(c.Request.Context(), meID, &inquiry)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, productsDTO)
}

func (s *ProductHandler) SearchProducts(c *gin.Context) {
	meID := c.GetUint64("member_id")
	var req dto.ProductSearchReq
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, err)
		return
	}
	productsDTO, err := s.productSvc.SearchProducts(c.Request.Context(), meID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, productsDTO)
}

func (s *ProductHandler) LikeProduct(c *gin.Context) {
	memberID := c.GetUint64("member_id")
	productID := pathID(c, "product_id")
	state, err := s.productSvc.LikeProduct(c.Request.Context(), memberID, productID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, state)
}

func (s *ProductHandler) SaveProduct(c *gin.Context) {
	memberID := c.GetUint64("member_id")
	productID := pathID(c, "product_id")
	state, err := s.productSvc.SaveProduct(c.Request.Context(), memberID, productID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, state)
}

func (s *ProductHandler) ViewProduct(c *gin.Context) {
	viewerID := c.GetUint64("member_id")
	productID := pathID(c, "product_id")
	state, err := s.productSvc.ViewProduct(c.Request.Context(), viewerID, productID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, state)
}

func (s *ProductHandler) GetFavoriteProducts(c *gin.Context) {
	memberID := c.GetUint64("member_id")
	var page dto.PageReq
	if err := c.ShouldBindQuery(&page); err != nil {
		response.Error(c, err)
		return
	}
	productsDTO, err := s.productSvc.GetFavoriteProducts(c.Request.Context(), memberID, &page)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, productsDTO)
}

func (s *ProductHandler) GetSavedProducts(c *gin.Context) {
	memberID := c.GetUint64("member_id")
	var page dto.PageReq
	if err := c.ShouldBindQuery(&page); err != nil {
		response.Error(c, err)
		return
	}
	productsDTO, err := s.productSvc.GetSavedProducts(c.Request.Context(), memberID, &page)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, productsDTO)
}

func (s *ProductHandler) GetVisitedProducts(c *gin.Context) {
	memberID := c.GetUint64("member_id")
	var page dto.PageReq
	if err := c.ShouldBindQuery(&page); err != nil {
		response.Error(c, err)
		return
	}
	productsDTO, err := s.productSvc.GetVisitedProducts(c.Request.Context(), memberID, &page)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, productsDTO)
}

func (s *ProductHandler) GetAllProducts(c *gin.Context) {
	var inquiry dto.AllProductsInquiry
	if err := c.ShouldBindQuery(&inquiry); err != nil {
		response.Error(c, err)
		return
	}
	productsDTO, err := s.productSvc.GetAllProducts(c.Request.Context(), &inquiry)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, productsDTO)
}

func (s *ProductHandler) UpdateProductByAdmin(c *gin.Context) {
	productID := pathID(c, "product_id")
	var req dto.ProductUpdateReq
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, err)
		return
	}
	productDTO, err := s.productSvc.UpdateProductByAdmin(c.Request.Context(), productID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, productDTO)
}

func (s *ProductHandler) RemoveProductByAdmin(c *gin.Context) {
	productID := pathID(c, "product_id")
	if err := s.productSvc.RemoveProductByAdmin(c.Request.Context(), productID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}
