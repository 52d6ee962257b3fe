package repository

import (
	"Cuben/internal/model"
	"context"
	"errors"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

type CommentQuery struct {
	Group      model.CommentGroup
	RefID      uint64
	SortColumn string
	Direction  string
	Page       int
	Limit      int
}

type CommentRepo interface {
	Create(ctx context.Context, comment *model.Comment) error
	GetByID(ctx context.Context, id uint64) (*model.Comment, error)
	Update(ctx context.Context, id, memberID uint64, updates map[string]interface{}) (int64, error)
	ListByRef(ctx context.Context, q *CommentQuery) ([]*model.Comment, int64, error)
	CountByRef(ctx context.Context, group model.CommentGroup, refID uint64) (int64, error)
}

type CommentRepoImpl struct {
	db *gorm.DB
}

func NewCommentRepo(db *gorm.DB) CommentRepo {
	return &CommentRepoImpl{db}
}

func (s *CommentRepoImpl) Create(ctx context.Context, comment *model.Comment) error {
	return s.db.WithContext(ctx).Create(comment).Error
}

func (s *CommentRepoImpl) GetByID(ctx context.Context, id uint64) (*model.Comment, error) {
	var comment model.Comment
	err := s.db.WithContext(ctx).Preload("Member").Where("id = ?", id).First(&comment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

func (s *CommentRepoImpl) Update(ctx context.Context, id, memberID uint64, updates map[string]interface{}) (int64, error) {
	q := s.db.WithContext(ctx).Model(&model.Comment{}).
		Where("id = ? AND comment_status = ?", id, model.CommentStatusActive)
	if memberID > 0 {
		q = q.Where("member_id = ?", memberID)
	}
	res := q.Updates(updates)
	return res.RowsAffected, res.Error
}

func (s *CommentRepoImpl) ListByRef(ctx context.Context, q *CommentQuery) ([]*model.Comment, int64, error) {
	scope := func(db *gorm.DB) *gorm.DB {
		return db.Where("comment_group = ? AND comment_ref_id = ? AND comment_status = ?",
			q.Group, q.RefID, model.CommentStatusActive)
	}

	var (
		comments []*model.Comment
		total    int64
	)
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return scope(s.db.WithContext(gCtx)).
			Order(q.SortColumn + " " + q.Direction).
			Limit(q.Limit).Offset((q.Page - 1) * q.Limit).
			Preload("Member").
			Find(&comments).Error
	})
	g.Go(func() error {
		return scope(s.db.WithContext(gCtx)).Model(&model.Comment{}).Count(&total).Error
	})
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}
	return comments, total, nil
}

func (s *CommentRepoImpl) CountByRef(ctx context.Context, group model.CommentGroup, refID uint64) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.Comment{}).
		Where("comment_group = ? AND comment_ref_id = ? AND comment_status = ?", group, refID, model.CommentStatusActive).
		Count(&count).Error
	return count, err
}
