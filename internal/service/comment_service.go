package service

import (
	"Cuben/internal/api/dto"
	"Cuben/internal/model"
	"Cuben/internal/pkg/consts"
	"Cuben/internal/repository"
	"context"
	log "log/slog"
)

type CommentService interface {
	CreateComment(ctx context.Context, memberID uint64, req *dto.CommentCreateReq) (*dto.CommentDTO, error)
	UpdateComment(ctx context.Context, memberID uint64, req *dto.CommentUpdateReq) (*dto.CommentDTO, error)
	DeleteComment(ctx context.Context, memberID, commentID uint64) error
	GetComments(ctx context.Context, inquiry *dto.CommentsInquiry) (*dto.CommentsDTO, error)
}

type commentServiceImpl struct {
	commentRepo repository.CommentRepo
	productRepo repository.ProductRepo
	articleRepo repository.ArticleRepo
	postRepo    repository.PostRepo
	memberRepo  repository.MemberRepo
}

func NewCommentService(
	commentRepo repository.CommentRepo,
	productRepo repository.ProductRepo,
	articleRepo repository.ArticleRepo,
	postRepo repository.PostRepo,
	memberRepo repository.MemberRepo,
) CommentService {
	return &commentServiceImpl{
		commentRepo: commentRepo,
		productRepo: productRepo,
		articleRepo: articleRepo,
		postRepo:    postRepo,
		memberRepo:  memberRepo,
	}
}

func (s *commentServiceImpl) CreateComment(ctx context.Context, memberID uint64, req *dto.CommentCreateReq) (*dto.CommentDTO, error) {
	member, err := s.memberRepo.GetByID(ctx, memberID, model.MemberStatusActive)
	if err != nil {
		return nil, ErrMemberNotFound
	}

	group := model.CommentGroup(req.CommentGroup)
	if err := s.checkRefActive(ctx, group, req.CommentRefID); err != nil {
		return nil, err
	}

	comment := &model.Comment{
		MemberID:       memberID,
		CommentGroup:   group,
		CommentRefID:   req.CommentRefID,
		CommentStatus:  model.CommentStatusActive,
		CommentContent: req.CommentContent,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		log.Error("create comment failed", "memberID", memberID, "err", err)
		return nil, ErrCreateFailed
	}

	s.adjustRefCommentCount(ctx, group, req.CommentRefID, 1)

	comment.Member = *member
	return toCommentDTO(comment), nil
}

func (s *commentServiceImpl) UpdateComment(ctx context.Context, memberID uint64, req *dto.CommentUpdateReq) (*dto.CommentDTO, error) {
	affected, err := s.commentRepo.Update(ctx, req.CommentID, memberID, map[string]interface{}{
		"comment_content": req.CommentContent,
	})
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, ErrCommentNotFound
	}

	comment, err := s.commentRepo.GetByID(ctx, req.CommentID)
	if err != nil || comment == nil {
		return nil, ErrCommentNotFound
	}
	return toCommentDTO(comment), nil
}

// DeleteComment 软删除，父实体评论计数同步 -1
func (s *commentServiceImpl) DeleteComment(ctx context.Context, memberID, commentID uint64) error {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return err
	}
	if comment == nil || comment.CommentStatus != model.CommentStatusActive {
		return ErrCommentNotFound
	}
	if comment.MemberID != memberID {
		return UnauthorizedError
	}

	affected, err := s.commentRepo.Update(ctx, commentID, memberID, map[string]interface{}{
		"comment_status": model.CommentStatusDelete,
	})
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrCommentNotFound
	}

	s.adjustRefCommentCount(ctx, comment.CommentGroup, comment.CommentRefID, -1)
	return nil
}

func (s *commentServiceImpl) GetComments(ctx context.Context, inquiry *dto.CommentsInquiry) (*dto.CommentsDTO, error) {
	if inquiry.Sort != "createdAt" {
		return nil, ErrParamInvalid
	}

	comments, total, err := s.commentRepo.ListByRef(ctx, &repository.CommentQuery{
		Group:      model.CommentGroup(inquiry.CommentGroup),
		RefID:      inquiry.CommentRefID,
		SortColumn: "created_at",
		Direction:  inquiry.Direction,
		Page:       inquiry.Page,
		Limit:      inquiry.Limit,
	})
	if err != nil {
		return nil, err
	}

	list := make([]*dto.CommentDTO, 0, len(comments))
	for _, c := range comments {
		list = append(list, toCommentDTO(c))
	}
	return &dto.CommentsDTO{List: list, Total: total}, nil
}

func (s *commentServiceImpl) checkRefActive(ctx context.Context, group model.CommentGroup, refID uint64) error {
	switch group {
	case model.CommentGroupProduct:
		if _, err := s.productRepo.GetByID(ctx, refID, model.ProductStatusActive, model.ProductStatusSold); err != nil {
			return ErrProductNotFound
		}
	case model.CommentGroupArticle:
		if _, err := s.articleRepo.GetByID(ctx, refID, model.ArticleStatusActive); err != nil {
			return ErrArticleNotFound
		}
	case model.CommentGroupPost:
		if _, err := s.postRepo.GetByID(ctx, refID, model.PostStatusActive); err != nil {
			return ErrPostNotFound
		}
	default:
		return ErrParamInvalid
	}
	return nil
}

func (s *commentServiceImpl) adjustRefCommentCount(ctx context.Context, group model.CommentGroup, refID uint64, delta int) {
	var err error
	switch group {
	case model.CommentGroupProduct:
		_, err = s.productRepo.AdjustCounter(ctx, refID, consts.ColProductComments, delta)
	case model.CommentGroupArticle:
		_, err = s.articleRepo.AdjustCounter(ctx, refID, consts.ColArticleComments, delta)
	case model.CommentGroupPost:
		_, err = s.postRepo.AdjustCounter(ctx, refID, consts.ColPostComments, delta)
	}
	if err != nil {
		log.Error("adjust comment count failed", "group", group, "refID", refID, "err", err)
	}
}

func toCommentDTO(comment *model.Comment) *dto.CommentDTO {
	item := &dto.CommentDTO{
		ID:             comment.ID,
		MemberID:       comment.MemberID,
		CommentGroup:   string(comment.CommentGroup),
		CommentRefID:   comment.CommentRefID,
		CommentStatus:  string(comment.CommentStatus),
		CommentContent: comment.CommentContent,
		CreatedAt:      comment.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt:      comment.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
	if comment.Member.ID > 0 {
		item.MemberData = toMemberDTO(&comment.Member)
	}
	return item
}
