package service

import (
	"Cuben/internal/api/dto"
	"Cuben/internal/model"
	"Cuben/internal/pkg/consts"
	"Cuben/internal/pkg/minio"
	"Cuben/internal/repository"
	"context"
	log "log/slog"
	"time"

	"github.com/jinzhu/copier"
)

type PostService interface {
	CreatePost(ctx context.Context, memberID uint64, req *dto.PostCreateReq) (*dto.PostDTO, error)
	GetPost(ctx context.Context, meID, postID uint64) (*dto.PostDTO, error)
	UpdatePost(ctx context.Context, memberID, postID uint64, req *dto.PostUpdateReq) (*dto.PostDTO, error)
	GetPosts(ctx context.Context, meID uint64, inquiry *dto.PostsInquiry) (*dto.PostsDTO, error)

	LikePost(ctx context.Context, memberID, postID uint64) (*dto.EngagementStateDTO, error)
	SavePost(ctx context.Context, memberID, postID uint64) (*dto.EngagementStateDTO, error)
	ViewPost(ctx context.Context, viewerID, postID uint64) (*dto.ViewStateDTO, error)

	GetAllPosts(ctx context.Context, inquiry *dto.AllPostsInquiry) (*dto.PostsDTO, error)
	UpdatePostByAdmin(ctx context.Context, req *dto.PostAdminUpdateReq) (*dto.PostDTO, error)
}

type postServiceImpl struct {
	postRepo   repository.PostRepo
	memberRepo repository.MemberRepo
	engagement EngagementService
}

func NewPostService(
	postRepo repository.PostRepo,
	memberRepo repository.MemberRepo,
	engagement EngagementService,
) PostService {
	return &postServiceImpl{
		postRepo:   postRepo,
		memberRepo: memberRepo,
		engagement: engagement,
	}
}

func (s *postServiceImpl) CreatePost(ctx context.Context, memberID uint64, req *dto.PostCreateReq) (*dto.PostDTO, error) {
	member, err := s.memberRepo.GetByID(ctx, memberID, model.MemberStatusActive)
	if err != nil {
		return nil, ErrMemberNotFound
	}

	post := &model.Post{
		MemberID:    memberID,
		PostStatus:  model.PostStatusActive,
		PostTitle:   req.PostTitle,
		PostContent: req.PostContent,
		PostImages:  req.PostImages,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		log.Error("create post failed", "memberID", memberID, "err", err)
		return nil, ErrCreateFailed
	}

	if _, err := s.memberRepo.AdjustCounter(ctx, memberID, consts.ColMemberPosts, 1); err != nil {
		log.Error("adjust member posts failed", "memberID", memberID, "err", err)
	}

	post.Member = *member
	return s.toPostDTO(post, dto.MeEngagement{}), nil
}

func (s *postServiceImpl) GetPost(ctx context.Context, meID, postID uint64) (*dto.PostDTO, error) {
	post, err := s.postRepo.GetByID(ctx, postID, model.PostStatusActive)
	if err != nil {
		return nil, ErrPostNotFound
	}

	isNew, err := s.engagement.RecordView(ctx, meID, postID, model.TargetPost)
	if err != nil {
		return nil, err
	}
	if isNew {
		if updated, err := s.postRepo.AdjustCounter(ctx, postID, consts.ColPostViews, 1); err == nil {
			post.PostViews = updated.PostViews
		}
	}

	me, err := s.engagement.MeEngagement(ctx, meID, postID, model.TargetPost)
	if err != nil {
		// 标注失败不阻断读取，按未点赞未收藏兜底
		log.Error("me engagement failed", "postID", postID, "err", err)
		me = dto.MeEngagement{}
	}
	return s.toPostDTO(post, me), nil
}

func (s *postServiceImpl) UpdatePost(ctx context.Context, memberID, postID uint64, req *dto.PostUpdateReq) (*dto.PostDTO, error) {
	updates := map[string]interface{}{}
	removesOwner := false
	if req.PostTitle != "" {
		updates["post_title"] = req.PostTitle
	}
	if req.PostContent != "" {
		updates["post_content"] = req.PostContent
	}
	if len(req.PostImages) > 0 {
		updates["post_images"] = req.PostImages
	}
	if req.PostStatus == string(model.PostStatusDelete) {
		updates["post_status"] = model.PostStatusDelete
		updates["deleted_at"] = time.Now()
		removesOwner = true
	}
	if len(updates) == 0 {
		return nil, ErrParamInvalid
	}

	affected, err := s.postRepo.Update(ctx, postID, memberID, updates)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, ErrPostNotFound
	}

	if removesOwner {
		if _, err := s.memberRepo.AdjustCounter(ctx, memberID, consts.ColMemberPosts, -1); err != nil {
			log.Error("adjust member posts failed", "memberID", memberID, "err", err)
		}
	}

	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, ErrPostNotFound
	}
	me, err := s.engagement.MeEngagement(ctx, memberID, postID, model.TargetPost)
	if err != nil {
		// 标注失败不阻断读取，按未点赞未收藏兜底
		log.Error("me engagement failed", "postID", postID, "err", err)
		me = dto.MeEngagement{}
	}
	return s.toPostDTO(post, me), nil
}

func (s *postServiceImpl) GetPosts(ctx context.Context, meID uint64, inquiry *dto.PostsInquiry) (*dto.PostsDTO, error) {
	sortColumn, ok := consts.PostSortFields[inquiry.Sort]
	if !ok {
		return nil, ErrParamInvalid
	}

	posts, total, err := s.postRepo.Search(ctx, &repository.PostQuery{
		MemberID:   inquiry.MemberID,
		Statuses:   []model.PostStatus{model.PostStatusActive},
		Text:       inquiry.Text,
		SortColumn: sortColumn,
		Direction:  inquiry.Direction,
		Page:       inquiry.Page,
		Limit:      inquiry.Limit,
	})
	if err != nil {
		return nil, err
	}
	return s.expandPosts(ctx, meID, posts, total)
}

func (s *postServiceImpl) LikePost(ctx context.Context, memberID, postID uint64) (*dto.EngagementStateDTO, error) {
	return s.togglePost(ctx, memberID, postID, model.ActionLike, consts.ColPostLikes)
}

func (s *postServiceImpl) SavePost(ctx context.Context, memberID, postID uint64) (*dto.EngagementStateDTO, error) {
	return s.togglePost(ctx, memberID, postID, model.ActionSave, consts.ColPostSaves)
}

func (s *postServiceImpl) togglePost(ctx context.Context, memberID, postID uint64, action model.EngagementAction, column string) (*dto.EngagementStateDTO, error) {
	if _, err := s.postRepo.GetByID(ctx, postID, model.PostStatusActive); err != nil {
		return nil, ErrPostNotFound
	}

	modifier, err := s.engagement.Toggle(ctx, memberID, postID, model.TargetPost, action)
	if err != nil {
		return nil, err
	}
	updated, err := s.postRepo.AdjustCounter(ctx, postID, column, modifier)
	if err != nil {
		return nil, ErrUpdateFailed
	}

	count := updated.PostLikes
	if action == model.ActionSave {
		count = updated.PostSaves
	}
	return &dto.EngagementStateDTO{TargetID: postID, Modifier: modifier, Count: count}, nil
}

func (s *postServiceImpl) ViewPost(ctx context.Context, viewerID, postID uint64) (*dto.ViewStateDTO, error) {
	post, err := s.postRepo.GetByID(ctx, postID, model.PostStatusActive)
	if err != nil {
		return nil, ErrPostNotFound
	}

	isNew, err := s.engagement.RecordView(ctx, viewerID, postID, model.TargetPost)
	if err != nil {
		return nil, err
	}
	count := post.PostViews
	if isNew {
		updated, err := s.postRepo.AdjustCounter(ctx, postID, consts.ColPostViews, 1)
		if err != nil {
			return nil, ErrUpdateFailed
		}
		count = updated.PostViews
	} else if cached, err := s.engagement.GetViewCount(ctx, postID, model.TargetPost); err == nil {
		// 重复浏览不写库，读计数缓存
		count = int(cached)
	}
	return &dto.ViewStateDTO{TargetID: postID, IsNew: isNew, Count: count}, nil
}

func (s *postServiceImpl) GetAllPosts(ctx context.Context, inquiry *dto.AllPostsInquiry) (*dto.PostsDTO, error) {
	sortColumn, ok := consts.PostSortFields[inquiry.Sort]
	if !ok {
		return nil, ErrParamInvalid
	}

	statuses := []model.PostStatus{model.PostStatusActive, model.PostStatusDelete, model.PostStatusBlocked}
	if inquiry.PostStatus != "" {
		statuses = []model.PostStatus{model.PostStatus(inquiry.PostStatus)}
	}
	posts, total, err := s.postRepo.Search(ctx, &repository.PostQuery{
		Statuses:   statuses,
		SortColumn: sortColumn,
		Direction:  inquiry.Direction,
		Page:       inquiry.Page,
		Limit:      inquiry.Limit,
	})
	if err != nil {
		return nil, err
	}
	return s.expandPosts(ctx, 0, posts, total)
}

func (s *postServiceImpl) UpdatePostByAdmin(ctx context.Context, req *dto.PostAdminUpdateReq) (*dto.PostDTO, error) {
	post, err := s.postRepo.GetByID(ctx, req.PostID)
	if err != nil {
		return nil, ErrPostNotFound
	}

	updates := map[string]interface{}{"post_status": req.PostStatus}
	switch model.PostStatus(req.PostStatus) {
	case model.PostStatusBlocked:
		updates["blocked_at"] = time.Now()
	case model.PostStatusDelete:
		updates["deleted_at"] = time.Now()
	}
	if _, err := s.postRepo.UpdateAny(ctx, req.PostID, updates); err != nil {
		return nil, err
	}

	// 状态跨越 ACTIVE 边界时同步作者的帖子计数
	wasActive := post.PostStatus == model.PostStatusActive
	nowActive := model.PostStatus(req.PostStatus) == model.PostStatusActive
	if wasActive != nowActive {
		delta := -1
		if nowActive {
			delta = 1
		}
		if _, err := s.memberRepo.AdjustCounter(ctx, post.MemberID, consts.ColMemberPosts, delta); err != nil {
			log.Error("adjust member posts failed", "memberID", post.MemberID, "err", err)
		}
	}

	updated, err := s.postRepo.GetByID(ctx, req.PostID)
	if err != nil {
		return nil, ErrPostNotFound
	}
	return s.toPostDTO(updated, dto.MeEngagement{}), nil
}

func (s *postServiceImpl) expandPosts(ctx context.Context, meID uint64, posts []*model.Post, total int64) (*dto.PostsDTO, error) {
	ids := make([]uint64, 0, len(posts))
	for _, p := range posts {
		ids = append(ids, p.ID)
	}
	meMap, err := s.engagement.MeEngagementMap(ctx, meID, model.TargetPost, ids)
	if err != nil {
		log.Error("me engagement map failed", "err", err)
		meMap = map[uint64]dto.MeEngagement{}
	}

	list := make([]*dto.PostDTO, 0, len(posts))
	for _, p := range posts {
		list = append(list, s.toPostDTO(p, meMap[p.ID]))
	}
	return &dto.PostsDTO{List: list, Total: total}, nil
}

func (s *postServiceImpl) toPostDTO(post *model.Post, me dto.MeEngagement) *dto.PostDTO {
	item := &dto.PostDTO{}
	_ = copier.Copy(item, post)

	item.PostImages = make([]string, 0, len(post.PostImages))
	for _, img := range post.PostImages {
		item.PostImages = append(item.PostImages, minio.GetPublicURL(img))
	}
	item.MeLiked = me
	if post.Member.ID > 0 {
		item.MemberData = toMemberDTO(&post.Member)
	}
	item.CreatedAt = post.CreatedAt.Format("2006-01-02 15:04:05")
	item.UpdatedAt = post.UpdatedAt.Format("2006-01-02 15:04:05")
	return item
}
