package service

import (
	"Cuben/internal/api/dto"
	"Cuben/internal/model"
	"Cuben/internal/pkg/consts"
	"Cuben/internal/repository"
	"context"
	log "log/slog"

	"github.com/jinzhu/copier"
)

type ArticleService interface {
	CreateArticle(ctx context.Context, memberID uint64, req *dto.ArticleCreateReq) (*dto.ArticleDTO, error)
	GetArticle(ctx context.Context, meID, articleID uint64) (*dto.ArticleDTO, error)
	UpdateArticle(ctx context.Context, memberID, articleID uint64, req *dto.ArticleUpdateReq) (*dto.ArticleDTO, error)
	GetArticles(ctx context.Context, meID uint64, inquiry *dto.ArticlesInquiry) (*dto.ArticlesDTO, error)

	LikeArticle(ctx context.Context, memberID, articleID uint64) (*dto.EngagementStateDTO, error)
	SaveArticle(ctx context.Context, memberID, articleID uint64) (*dto.EngagementStateDTO, error)
	ViewArticle(ctx context.Context, viewerID, articleID uint64) (*dto.ViewStateDTO, error)

	GetAllArticles(ctx context.Context, inquiry *dto.AllArticlesInquiry) (*dto.ArticlesDTO, error)
	UpdateArticleByAdmin(ctx context.Context, articleID uint64, req *dto.ArticleUpdateReq) (*dto.ArticleDTO, error)
}

type articleServiceImpl struct {
	articleRepo repository.ArticleRepo
	memberRepo  repository.MemberRepo
	engagement  EngagementService
}

func NewArticleService(
	articleRepo repository.ArticleRepo,
	memberRepo repository.MemberRepo,
	engagement EngagementService,
) ArticleService {
	return &articleServiceImpl{
		articleRepo: articleRepo,
		memberRepo:  memberRepo,
		engagement:  engagement,
	}
}

func (s *articleServiceImpl) CreateArticle(ctx context.Context, memberID uint64, req *dto.ArticleCreateReq) (*dto.ArticleDTO, error) {
	member, err := s.memberRepo.GetByID(ctx, memberID, model.MemberStatusActive)
	if err != nil {
		return nil, ErrMemberNotFound
	}

	article := &model.Article{
		MemberID:        memberID,
		ArticleCategory: model.ArticleCategory(req.ArticleCategory),
		ArticleStatus:   model.ArticleStatusActive,
		ArticleTitle:    req.ArticleTitle,
		ArticleContent:  req.ArticleContent,
		ArticleImage:    req.ArticleImage,
	}
	if err := s.articleRepo.Create(ctx, article); err != nil {
		log.Error("create article failed", "memberID", memberID, "err", err)
		return nil, ErrCreateFailed
	}

	if _, err := s.memberRepo.AdjustCounter(ctx, memberID, consts.ColMemberArticles, 1); err != nil {
		log.Error("adjust member articles failed", "memberID", memberID, "err", err)
	}

	article.Member = *member
	return s.toArticleDTO(article, dto.MeEngagement{}), nil
}

func (s *articleServiceImpl) GetArticle(ctx context.Context, meID, articleID uint64) (*dto.ArticleDTO, error) {
	article, err := s.articleRepo.GetByID(ctx, articleID, model.ArticleStatusActive)
	if err != nil {
		return nil, ErrArticleNotFound
	}

	isNew, err := s.engagement.RecordView(ctx, meID, articleID, model.TargetArticle)
	if err != nil {
		return nil, err
	}
	if isNew {
		if updated, err := s.articleRepo.AdjustCounter(ctx, articleID, consts.ColArticleViews, 1); err == nil {
			article.ArticleViews = updated.ArticleViews
		}
	}

	me, err := s.engagement.MeEngagement(ctx, meID, articleID, model.TargetArticle)
	if err != nil {
		// 标注失败不阻断读取，按未点赞未收藏兜底
		log.Error("me engagement failed", "articleID", articleID, "err", err)
		me = dto.MeEngagement{}
	}
	return s.toArticleDTO(article, me), nil
}

func (s *articleServiceImpl) UpdateArticle(ctx context.Context, memberID, articleID uint64, req *dto.ArticleUpdateReq) (*dto.ArticleDTO, error) {
	updates, removesOwner := buildArticleUpdates(req)
	if len(updates) == 0 {
		return nil, ErrParamInvalid
	}

	affected, err := s.articleRepo.Update(ctx, articleID, memberID, updates)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, ErrArticleNotFound
	}

	if removesOwner {
		if _, err := s.memberRepo.AdjustCounter(ctx, memberID, consts.ColMemberArticles, -1); err != nil {
			log.Error("adjust member articles failed", "memberID", memberID, "err", err)
		}
	}

	article, err := s.articleRepo.GetByID(ctx, articleID)
	if err != nil {
		return nil, ErrArticleNotFound
	}
	me, err := s.engagement.MeEngagement(ctx, memberID, articleID, model.TargetArticle)
	if err != nil {
		// 标注失败不阻断读取，按未点赞未收藏兜底
		log.Error("me engagement failed", "articleID", articleID, "err", err)
		me = dto.MeEngagement{}
	}
	return s.toArticleDTO(article, me), nil
}

func (s *articleServiceImpl) GetArticles(ctx context.Context, meID uint64, inquiry *dto.ArticlesInquiry) (*dto.ArticlesDTO, error) {
	sortColumn, ok := consts.ArticleSortFields[inquiry.Sort]
	if !ok {
		return nil, ErrParamInvalid
	}

	articles, total, err := s.articleRepo.Search(ctx, &repository.ArticleQuery{
		MemberID:   inquiry.MemberID,
		Statuses:   []model.ArticleStatus{model.ArticleStatusActive},
		Category:   model.ArticleCategory(inquiry.ArticleCategory),
		Text:       inquiry.Text,
		SortColumn: sortColumn,
		Direction:  inquiry.Direction,
		Page:       inquiry.Page,
		Limit:      inquiry.Limit,
	})
	if err != nil {
		return nil, err
	}
	return s.expandArticles(ctx, meID, articles, total)
}

func (s *articleServiceImpl) LikeArticle(ctx context.Context, memberID, articleID uint64) (*dto.EngagementStateDTO, error) {
	return s.toggleArticle(ctx, memberID, articleID, model.ActionLike, consts.ColArticleLikes)
}

func (s *articleServiceImpl) SaveArticle(ctx context.Context, memberID, articleID uint64) (*dto.EngagementStateDTO, error) {
	return s.toggleArticle(ctx, memberID, articleID, model.ActionSave, consts.ColArticleSaves)
}

func (s *articleServiceImpl) toggleArticle(ctx context.Context, memberID, articleID uint64, action model.EngagementAction, column string) (*dto.EngagementStateDTO, error) {
	if _, err := s.articleRepo.GetByID(ctx, articleID, model.ArticleStatusActive); err != nil {
		return nil, ErrArticleNotFound
	}

	modifier, err := s.engagement.Toggle(ctx, memberID, articleID, model.TargetArticle, action)
	if err != nil {
		return nil, err
	}
	updated, err := s.articleRepo.AdjustCounter(ctx, articleID, column, modifier)
	if err != nil {
		return nil, ErrUpdateFailed
	}

	count := updated.ArticleLikes
	if action == model.ActionSave {
		count = updated.ArticleSaves
	}
	return &dto.EngagementStateDTO{TargetID: articleID, Modifier: modifier, Count: count}, nil
}

func (s *articleServiceImpl) ViewArticle(ctx context.Context, viewerID, articleID uint64) (*dto.ViewStateDTO, error) {
	article, err := s.articleRepo.GetByID(ctx, articleID, model.ArticleStatusActive)
	if err != nil {
		return nil, ErrArticleNotFound
	}

	isNew, err := s.engagement.RecordView(ctx, viewerID, articleID, model.TargetArticle)
	if err != nil {
		return nil, err
	}
	count := article.ArticleViews
	if isNew {
		updated, err := s.articleRepo.AdjustCounter(ctx, articleID, consts.ColArticleViews, 1)
		if err != nil {
			return nil, ErrUpdateFailed
		}
		count = updated.ArticleViews
	} else if cached, err := s.engagement.GetViewCount(ctx, articleID, model.TargetArticle); err == nil {
		// 重复浏览不写库，读计数缓存
		count = int(cached)
	}
	return &dto.ViewStateDTO{TargetID: articleID, IsNew: isNew, Count: count}, nil
}

func (s *articleServiceImpl) GetAllArticles(ctx context.Context, inquiry *dto.AllArticlesInquiry) (*dto.ArticlesDTO, error) {
	sortColumn, ok := consts.ArticleSortFields[inquiry.Sort]
	if !ok {
		return nil, ErrParamInvalid
	}

	statuses := []model.ArticleStatus{model.ArticleStatusActive, model.ArticleStatusDelete}
	if inquiry.ArticleStatus != "" {
		statuses = []model.ArticleStatus{model.ArticleStatus(inquiry.ArticleStatus)}
	}
	articles, total, err := s.articleRepo.Search(ctx, &repository.ArticleQuery{
		Statuses:   statuses,
		SortColumn: sortColumn,
		Direction:  inquiry.Direction,
		Page:       inquiry.Page,
		Limit:      inquiry.Limit,
	})
	if err != nil {
		return nil, err
	}
	return s.expandArticles(ctx, 0, articles, total)
}

func (s *articleServiceImpl) UpdateArticleByAdmin(ctx context.Context, articleID uint64, req *dto.ArticleUpdateReq) (*dto.ArticleDTO, error) {
	updates, removesOwner := buildArticleUpdates(req)
	if len(updates) == 0 {
		return nil, ErrParamInvalid
	}

	article, err := s.articleRepo.GetByID(ctx, articleID)
	if err != nil {
		return nil, ErrArticleNotFound
	}

	affected, err := s.articleRepo.UpdateAny(ctx, articleID, updates)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, ErrArticleNotFound
	}

	if removesOwner && article.ArticleStatus != model.ArticleStatusDelete {
		if _, err := s.memberRepo.AdjustCounter(ctx, article.MemberID, consts.ColMemberArticles, -1); err != nil {
			log.Error("adjust member articles failed", "memberID", article.MemberID, "err", err)
		}
	}

	updated, err := s.articleRepo.GetByID(ctx, articleID)
	if err != nil {
		return nil, ErrArticleNotFound
	}
	return s.toArticleDTO(updated, dto.MeEngagement{}), nil
}

func (s *articleServiceImpl) expandArticles(ctx context.Context, meID uint64, articles []*model.Article, total int64) (*dto.ArticlesDTO, error) {
	ids := make([]uint64, 0, len(articles))
	for _, a := range articles {
		ids = append(ids, a.ID)
	}
	meMap, err := s.engagement.MeEngagementMap(ctx, meID, model.TargetArticle, ids)
	if err != nil {
		log.Error("me engagement map failed", "err", err)
		meMap = map[uint64]dto.MeEngagement{}
	}

	list := make([]*dto.ArticleDTO, 0, len(articles))
	for _, a := range articles {
		list = append(list, s.toArticleDTO(a, meMap[a.ID]))
	}
	return &dto.ArticlesDTO{List: list, Total: total}, nil
}

func (s *articleServiceImpl) toArticleDTO(article *model.Article, me dto.MeEngagement) *dto.ArticleDTO {
	item := &dto.ArticleDTO{}
	_ = copier.Copy(item, article)
	item.MeLiked = me
	if article.Member.ID > 0 {
		item.MemberData = toMemberDTO(&article.Member)
	}
	item.CreatedAt = article.CreatedAt.Format("2006-01-02 15:04:05")
	item.UpdatedAt = article.UpdatedAt.Format("2006-01-02 15:04:05")
	return item
}

func buildArticleUpdates(req *dto.ArticleUpdateReq) (map[string]interface{}, bool) {
	updates := map[string]interface{}{}
	removesOwner := false
	if req.ArticleTitle != "" {
		updates["article_title"] = req.ArticleTitle
	}
	if req.ArticleContent != "" {
		updates["article_content"] = req.ArticleContent
	}
	if req.ArticleImage != "" {
		updates["article_image"] = req.ArticleImage
	}
	switch model.ArticleStatus(req.ArticleStatus) {
	case model.ArticleStatusDelete:
		updates["article_status"] = model.ArticleStatusDelete
		removesOwner = true
	case model.ArticleStatusActive:
		updates["article_status"] = model.ArticleStatusActive
	}
	return updates, removesOwner
}
