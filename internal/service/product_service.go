package service

import (
	"Cuben/internal/api/dto"
	"Cuben/internal/model"
	"Cuben/internal/pkg/consts"
	"Cuben/internal/pkg/es"
	"Cuben/internal/pkg/minio"
	"Cuben/internal/repository"
	"context"
	log "log/slog"
	"time"

	"github.com/jinzhu/copier"
)

type ProductService interface {
	CreateProduct(ctx context.Context, memberID uint64, req *dto.ProductCreateReq) (*dto.ProductDTO, error)
	GetProduct(ctx context.Context, meID, productID uint64) (*dto.ProductDTO, error)
	UpdateProduct(ctx context.Context, memberID, productID uint64, req *dto.ProductUpdateReq) (*dto.ProductDTO, error)
	GetProducts(ctx context.Context, meID uint64, inquiry *dto.ProductsInquiry) (*dto.ProductsDTO, error)
	SearchProducts(ctx context.Context, meID uint64, req *dto.ProductSearchReq) (*dto.ProductsDTO, error)

	LikeProduct(ctx context.Context, memberID, productID uint64) (*dto.EngagementStateDTO, error)
	SaveProduct(ctx context.Context, memberID, productID uint64) (*dto.EngagementStateDTO, error)
	ViewProduct(ctx context.Context, viewerID, productID uint64) (*dto.ViewStateDTO, error)

	GetFavoriteProducts(ctx context.Context, memberID uint64, page *dto.PageReq) (*dto.ProductsDTO, error)
	GetSavedProducts(ctx context.Context, memberID uint64, page *dto.PageReq) (*dto.ProductsDTO, error)
	GetVisitedProducts(ctx context.Context, memberID uint64, page *dto.PageReq) (*dto.ProductsDTO, error)

	GetAllProducts(ctx context.Context, inquiry *dto.AllProductsInquiry) (*dto.ProductsDTO, error)
	UpdateProductByAdmin(ctx context.Context, productID uint64, req *dto.ProductUpdateReq) (*dto.ProductDTO, error)
	RemoveProductByAdmin(ctx context.Context, productID uint64) error
}

type productServiceImpl struct {
	productRepo repository.ProductRepo
	memberRepo  repository.MemberRepo
	engagement  EngagementService
	productES   es.ProductRepo
}

func NewProductService(
	productRepo repository.ProductRepo,
	memberRepo repository.MemberRepo,
	engagement EngagementService,
	productES es.ProductRepo,
) ProductService {
	return &productServiceImpl{
		productRepo: productRepo,
		memberRepo:  memberRepo,
		engagement:  engagement,
		productES:   productES,
	}
}

func (s *productServiceImpl) CreateProduct(ctx context.Context, memberID uint64, req *dto.ProductCreateReq) (*dto.ProductDTO, error) {
	member, err := s.memberRepo.GetByID(ctx, memberID, model.MemberStatusActive)
	if err != nil {
		return nil, ErrMemberNotFound
	}
	if member.MemberType != model.MemberAgent && member.MemberType != model.MemberAdmin {
		return nil, UnauthorizedError
	}

	product := &model.Product{
		MemberID:       memberID,
		ProductType:    model.ProductType(req.ProductType),
		ProductStatus:  model.ProductStatusActive,
		ProductName:    req.ProductName,
		ProductPrice:   req.ProductPrice,
		ProductAddress: req.ProductAddress,
		ProductDesc:    req.ProductDesc,
		ProductImages:  req.ProductImages,
	}
	if err := s.productRepo.Create(ctx, product); err != nil {
		log.Error("create product failed", "memberID", memberID, "err", err)
		return nil, ErrCreateFailed
	}

	if _, err := s.memberRepo.AdjustCounter(ctx, memberID, consts.ColMemberProducts, 1); err != nil {
		log.Error("adjust member products failed", "memberID", memberID, "err", err)
	}

	product.Member = *member
	return s.toProductDTO(product, dto.MeEngagement{}), nil
}

func (s *productServiceImpl) GetProduct(ctx context.Context, meID, productID uint64) (*dto.ProductDTO, error) {
	product, err := s.productRepo.GetByID(ctx, productID, model.ProductStatusActive, model.ProductStatusSold)
	if err != nil {
		return nil, ErrProductNotFound
	}

	isNew, err := s.engagement.RecordView(ctx, meID, productID, model.TargetProduct)
	if err != nil {
		return nil, err
	}
	if isNew {
		if updated, err := s.productRepo.AdjustCounter(ctx, productID, consts.ColProductViews, 1); err == nil {
			product.ProductViews = updated.ProductViews
		}
	}

	me, err := s.engagement.MeEngagement(ctx, meID, productID, model.TargetProduct)
	if err != nil {
		// 标注失败不阻断读取，按未点赞未收藏兜底
		log.Error("me engagement failed", "productID", productID, "err", err)
		me = dto.MeEngagement{}
	}
	return s.toProductDTO(product, me), nil
}

func (s *productServiceImpl) UpdateProduct(ctx context.Context, memberID, productID uint64, req *dto.ProductUpdateReq) (*dto.ProductDTO, error) {
	updates, removesOwner := buildProductUpdates(req)
	if len(updates) == 0 {
		return nil, ErrParamInvalid
	}

	affected, err := s.productRepo.Update(ctx, productID, memberID, updates)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, ErrProductNotFound
	}

	if removesOwner {
		if _, err := s.memberRepo.AdjustCounter(ctx, memberID, consts.ColMemberProducts, -1); err != nil {
			log.Error("adjust member products failed", "memberID", memberID, "err", err)
		}
	}

	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, ErrProductNotFound
	}
	me, err := s.engagement.MeEngagement(ctx, memberID, productID, model.TargetProduct)
	if err != nil {
		// 标注失败不阻断读取，按未点赞未收藏兜底
		log.Error("me engagement failed", "productID", productID, "err", err)
		me = dto.MeEngagement{}
	}
	return s.toProductDTO(product, me), nil
}

func (s *productServiceImpl) GetProducts(ctx context.Context, meID uint64, inquiry *dto.ProductsInquiry) (*dto.ProductsDTO, error) {
	sortColumn, ok := consts.ProductSortFields[inquiry.Sort]
	if !ok {
		return nil, ErrParamInvalid
	}

	q := &repository.ProductQuery{
		MemberID:   inquiry.MemberID,
		Statuses:   []model.ProductStatus{model.ProductStatusActive},
		PriceMin:   inquiry.PriceMin,
		PriceMax:   inquiry.PriceMax,
		Text:       inquiry.Text,
		SortColumn: sortColumn,
		Direction:  inquiry.Direction,
		Page:       inquiry.Page,
		Limit:      inquiry.Limit,
	}
	for _, t := range inquiry.TypeList {
		q.TypeList = append(q.TypeList, model.ProductType(t))
	}
	if inquiry.PeriodFrom != "" {
		if from, err := time.Parse("2006-01-02", inquiry.PeriodFrom); err == nil {
			q.PeriodFrom = &from
		}
	}
	if inquiry.PeriodTo != "" {
		if to, err := time.Parse("2006-01-02", inquiry.PeriodTo); err == nil {
			end := to.Add(24*time.Hour - time.Second)
			q.PeriodTo = &end
		}
	}

	products, total, err := s.productRepo.Search(ctx, q)
	if err != nil {
		return nil, err
	}
	return s.expandProducts(ctx, meID, products, total)
}

// SearchProducts 全文检索走 ES 拿 id，再回 MySQL 取行保证数据一致
func (s *productServiceImpl) SearchProducts(ctx context.Context, meID uint64, req *dto.ProductSearchReq) (*dto.ProductsDTO, error) {
	from := (req.Page - 1) * req.Limit
	ids, total, err := s.productES.SearchProducts(ctx, req.Text, from, req.Limit)
	if err != nil {
		log.Error("es search failed, fallback to mysql", "err", err)
		return s.GetProducts(ctx, meID, &dto.ProductsInquiry{
			PageReq:   req.PageReq,
			Sort:      "createdAt",
			Direction: "DESC",
			Text:      req.Text,
		})
	}
	if len(ids) == 0 {
		return &dto.ProductsDTO{List: []*dto.ProductDTO{}, Total: total}, nil
	}

	products, err := s.productRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	ordered := orderProductsByIDs(products, ids)
	return s.expandProducts(ctx, meID, ordered, total)
}

func (s *productServiceImpl) LikeProduct(ctx context.Context, memberID, productID uint64) (*dto.EngagementStateDTO, error) {
	return s.toggleProduct(ctx, memberID, productID, model.ActionLike, consts.ColProductLikes)
}

func (s *productServiceImpl) SaveProduct(ctx context.Context, memberID, productID uint64) (*dto.EngagementStateDTO, error) {
	return s.toggleProduct(ctx, memberID, productID, model.ActionSave, consts.ColProductSaves)
}

func (s *productServiceImpl) toggleProduct(ctx context.Context, memberID, productID uint64, action model.EngagementAction, column string) (*dto.EngagementStateDTO, error) {
	if _, err := s.productRepo.GetByID(ctx, productID, model.ProductStatusActive, model.ProductStatusSold); err != nil {
		return nil, ErrProductNotFound
	}

	modifier, err := s.engagement.Toggle(ctx, memberID, productID, model.TargetProduct, action)
	if err != nil {
		return nil, err
	}

	updated, err := s.productRepo.AdjustCounter(ctx, productID, column, modifier)
	if err != nil {
		return nil, ErrUpdateFailed
	}

	count := updated.ProductLikes
	if action == model.ActionSave {
		count = updated.ProductSaves
	}
	return &dto.EngagementStateDTO{TargetID: productID, Modifier: modifier, Count: count}, nil
}

func (s *productServiceImpl) ViewProduct(ctx context.Context, viewerID, productID uint64) (*dto.ViewStateDTO, error) {
	product, err := s.productRepo.GetByID(ctx, productID, model.ProductStatusActive, model.ProductStatusSold)
	if err != nil {
		return nil, ErrProductNotFound
	}

	isNew, err := s.engagement.RecordView(ctx, viewerID, productID, model.TargetProduct)
	if err != nil {
		return nil, err
	}
	count := product.ProductViews
	if isNew {
		updated, err := s.productRepo.AdjustCounter(ctx, productID, consts.ColProductViews, 1)
		if err != nil {
			return nil, ErrUpdateFailed
		}
		count = updated.ProductViews
	} else if cached, err := s.engagement.GetViewCount(ctx, productID, model.TargetProduct); err == nil {
		// 重复浏览不写库，读计数缓存
		count = int(cached)
	}
	return &dto.ViewStateDTO{TargetID: productID, IsNew: isNew, Count: count}, nil
}

func (s *productServiceImpl) GetFavoriteProducts(ctx context.Context, memberID uint64, page *dto.PageReq) (*dto.ProductsDTO, error) {
	ids, total, err := s.engagement.GetActionTargetIDs(ctx, memberID, model.TargetProduct, model.ActionLike, page.Limit, (page.Page-1)*page.Limit)
	if err != nil {
		return nil, err
	}
	return s.expandProductIDs(ctx, memberID, ids, total)
}

func (s *productServiceImpl) GetSavedProducts(ctx context.Context, memberID uint64, page *dto.PageReq) (*dto.ProductsDTO, error) {
	ids, total, err := s.engagement.GetActionTargetIDs(ctx, memberID, model.TargetProduct, model.ActionSave, page.Limit, (page.Page-1)*page.Limit)
	if err != nil {
		return nil, err
	}
	return s.expandProductIDs(ctx, memberID, ids, total)
}

func (s *productServiceImpl) GetVisitedProducts(ctx context.Context, memberID uint64, page *dto.PageReq) (*dto.ProductsDTO, error) {
	ids, total, err := s.engagement.GetViewedTargetIDs(ctx, memberID, model.TargetProduct, page.Limit, (page.Page-1)*page.Limit)
	if err != nil {
		return nil, err
	}
	return s.expandProductIDs(ctx, memberID, ids, total)
}

func (s *productServiceImpl) GetAllProducts(ctx context.Context, inquiry *dto.AllProductsInquiry) (*dto.ProductsDTO, error) {
	sortColumn, ok := consts.ProductSortFields[inquiry.Sort]
	if !ok {
		return nil, ErrParamInvalid
	}

	statuses := []model.ProductStatus{model.ProductStatusActive, model.ProductStatusSold, model.ProductStatusDelete}
	if inquiry.ProductStatus != "" {
		statuses = []model.ProductStatus{model.ProductStatus(inquiry.ProductStatus)}
	}
	products, total, err := s.productRepo.Search(ctx, &repository.ProductQuery{
		Statuses:   statuses,
		SortColumn: sortColumn,
		Direction:  inquiry.Direction,
		Page:       inquiry.Page,
		Limit:      inquiry.Limit,
	})
	if err != nil {
		return nil, err
	}
	// 管理端列表不做个人状态标注
	return s.expandProducts(ctx, 0, products, total)
}

func (s *productServiceImpl) UpdateProductByAdmin(ctx context.Context, productID uint64, req *dto.ProductUpdateReq) (*dto.ProductDTO, error) {
	updates, removesOwner := buildProductUpdates(req)
	if len(updates) == 0 {
		return nil, ErrParamInvalid
	}

	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, ErrProductNotFound
	}

	affected, err := s.productRepo.UpdateAny(ctx, productID, updates)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, ErrProductNotFound
	}

	if removesOwner && product.ProductStatus != model.ProductStatusDelete {
		if _, err := s.memberRepo.AdjustCounter(ctx, product.MemberID, consts.ColMemberProducts, -1); err != nil {
			log.Error("adjust member products failed", "memberID", product.MemberID, "err", err)
		}
	}

	updated, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, ErrProductNotFound
	}
	return s.toProductDTO(updated, dto.MeEngagement{}), nil
}

func (s *productServiceImpl) RemoveProductByAdmin(ctx context.Context, productID uint64) error {
	req := &dto.ProductUpdateReq{ProductStatus: string(model.ProductStatusDelete)}
	_, err := s.UpdateProductByAdmin(ctx, productID, req)
	return err
}

func (s *productServiceImpl) expandProductIDs(ctx context.Context, meID uint64, ids []uint64, total int64) (*dto.ProductsDTO, error) {
	if len(ids) == 0 {
		return &dto.ProductsDTO{List: []*dto.ProductDTO{}, Total: total}, nil
	}
	products, err := s.productRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	ordered := orderProductsByIDs(products, ids)
	return s.expandProducts(ctx, meID, ordered, total)
}

// expandProducts 一页只做一次标注查询
func (s *productServiceImpl) expandProducts(ctx context.Context, meID uint64, products []*model.Product, total int64) (*dto.ProductsDTO, error) {
	ids := make([]uint64, 0, len(products))
	for _, p := range products {
		ids = append(ids, p.ID)
	}
	meMap, err := s.engagement.MeEngagementMap(ctx, meID, model.TargetProduct, ids)
	if err != nil {
		log.Error("me engagement map failed", "err", err)
		meMap = map[uint64]dto.MeEngagement{}
	}

	list := make([]*dto.ProductDTO, 0, len(products))
	for _, p := range products {
		list = append(list, s.toProductDTO(p, meMap[p.ID]))
	}
	return &dto.ProductsDTO{List: list, Total: total}, nil
}

func (s *productServiceImpl) toProductDTO(product *model.Product, me dto.MeEngagement) *dto.ProductDTO {
	item := &dto.ProductDTO{}
	_ = copier.Copy(item, product)

	item.ProductImages = make([]string, 0, len(product.ProductImages))
	for _, img := range product.ProductImages {
		item.ProductImages = append(item.ProductImages, minio.GetPublicURL(img))
	}
	item.MeLiked = me
	if product.Member.ID > 0 {
		item.MemberData = toMemberDTO(&product.Member)
	}
	if product.SoldAt != nil {
		item.SoldAt = product.SoldAt.Format("2006-01-02 15:04:05")
	}
	item.CreatedAt = product.CreatedAt.Format("2006-01-02 15:04:05")
	item.UpdatedAt = product.UpdatedAt.Format("2006-01-02 15:04:05")
	return item
}

func buildProductUpdates(req *dto.ProductUpdateReq) (map[string]interface{}, bool) {
	updates := map[string]interface{}{}
	removesOwner := false
	if req.ProductName != "" {
		updates["product_name"] = req.ProductName
	}
	if req.ProductPrice > 0 {
		updates["product_price"] = req.ProductPrice
	}
	if req.ProductAddress != "" {
		updates["product_address"] = req.ProductAddress
	}
	if req.ProductDesc != "" {
		updates["product_desc"] = req.ProductDesc
	}
	if len(req.ProductImages) > 0 {
		updates["product_images"] = req.ProductImages
	}
	switch model.ProductStatus(req.ProductStatus) {
	case model.ProductStatusSold:
		updates["product_status"] = model.ProductStatusSold
		updates["sold_at"] = time.Now()
	case model.ProductStatusDelete:
		updates["product_status"] = model.ProductStatusDelete
		updates["deleted_at"] = time.Now()
		removesOwner = true
	case model.ProductStatusActive:
		updates["product_status"] = model.ProductStatusActive
	}
	return updates, removesOwner
}

func orderProductsByIDs(products []*model.Product, ids []uint64) []*model.Product {
	byID := make(map[uint64]*model.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	ordered := make([]*model.Product, 0, len(products))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			ordered = append(ordered, p)
		}
	}
	return ordered
}
