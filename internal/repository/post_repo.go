package repository

import (
	"Cuben/internal/model"
	"Cuben/internal/pkg/consts"
	"context"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

type PostQuery struct {
	MemberID   uint64
	Statuses   []model.PostStatus
	Text       string
	SortColumn string
	Direction  string
	Page       int
	Limit      int
}

type PostRepo interface {
	Create(ctx context.Context, post *model.Post) error
	GetByID(ctx context.Context, id uint64, statuses ...model.PostStatus) (*model.Post, error)
	GetByIDs(ctx context.Context, ids []uint64) ([]*model.Post, error)
	Update(ctx context.Context, id, memberID uint64, updates map[string]interface{}) (int64, error)
	UpdateAny(ctx context.Context, id uint64, updates map[string]interface{}) (int64, error)
	AdjustCounter(ctx context.Context, id uint64, column string, delta int) (*model.Post, error)
	Search(ctx context.Context, q *PostQuery) ([]*model.Post, int64, error)
}

type PostRepoImpl struct {
	db *gorm.DB
}

func NewPostRepo(db *gorm.DB) PostRepo {
	return &PostRepoImpl{db}
}

func (s *PostRepoImpl) Create(ctx context.Context, post *model.Post) error {
	return s.db.WithContext(ctx).Create(post).Error
}

func (s *PostRepoImpl) GetByID(ctx context.Context, id uint64, statuses ...model.PostStatus) (*model.Post, error) {
	var post model.Post
	q := s.db.WithContext(ctx).Preload("Member").Where("id = ?", id)
	if len(statuses) > 0 {
		q = q.Where("post_status IN ?", statuses)
	}
	if err := q.First(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (s *PostRepoImpl) GetByIDs(ctx context.Context, ids []uint64) ([]*model.Post, error) {
	var posts []*model.Post
	err := s.db.WithContext(ctx).Preload("Member").Where("id IN ?", ids).Find(&posts).Error
	return posts, err
}

func (s *PostRepoImpl) Update(ctx context.Context, id, memberID uint64, updates map[string]interface{}) (int64, error) {
	q := s.db.WithContext(ctx).Model(&model.Post{}).
		Where("id = ? AND post_status = ?", id, model.PostStatusActive)
	if memberID > 0 {
		q = q.Where("member_id = ?", memberID)
	}
	res := q.Updates(updates)
	return res.RowsAffected, res.Error
}

// UpdateAny 不校验状态的更新，管理端封禁/恢复走这里
func (s *PostRepoImpl) UpdateAny(ctx context.Context, id uint64, updates map[string]interface{}) (int64, error) {
	res := s.db.WithContext(ctx).Model(&model.Post{}).
		Where("id = ?", id).
		Updates(updates)
	return res.RowsAffected, res.Error
}

func (s *PostRepoImpl) AdjustCounter(ctx context.Context, id uint64, column string, delta int) (*model.Post, error) {
	if !consts.PostCounterColumns[column] {
		return nil, ErrCounterColumn
	}
	res := s.db.WithContext(ctx).Model(&model.Post{}).
		Where("id = ?", id).
		UpdateColumn(column, gorm.Expr(column+" + ?", delta))
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return s.GetByID(ctx, id)
}

func (s *PostRepoImpl) Search(ctx context.Context, q *PostQuery) ([]*model.Post, int64, error) {
	scope := func(db *gorm.DB) *gorm.DB {
		db = db.Where("post_status IN ?", q.Statuses)
		if q.MemberID > 0 {
			db = db.Where("member_id = ?", q.MemberID)
		}
		if q.Text != "" {
			pattern := "%" + q.Text + "%"
			db = db.Where("post_title LIKE ? OR post_content LIKE ?", pattern, pattern)
		}
		return db
	}

	var (
		posts []*model.Post
		total int64
	)
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return scope(s.db.WithContext(gCtx)).
			Order(q.SortColumn + " " + q.Direction).
			Limit(q.Limit).Offset((q.Page - 1) * q.Limit).
			Preload("Member").
			Find(&posts).Error
	})
	g.Go(func() error {
		return scope(s.db.WithContext(gCtx)).Model(&model.Post{}).Count(&total).Error
	})
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}
