package repository

import (
	"Cuben/internal/model"
	"Cuben/internal/pkg/consts"
	"context"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

type ArticleQuery struct {
	MemberID   uint64
	Statuses   []model.ArticleStatus
	Category   model.ArticleCategory
	Text       string
	SortColumn string
	Direction  string
	Page       int
	Limit      int
}

type ArticleRepo interface {
	Create(ctx context.Context, article *model.Article) error
	GetByID(ctx context.Context, id uint64, statuses ...model.ArticleStatus) (*model.Article, error)
	GetByIDs(ctx context.Context, ids []uint64) ([]*model.Article, error)
	Update(ctx context.Context, id, memberID uint64, updates map[string]interface{}) (int64, error)
	UpdateAny(ctx context.Context, id uint64, updates map[string]interface{}) (int64, error)
	AdjustCounter(ctx context.Context, id uint64, column string, delta int) (*model.Article, error)
	Search(ctx context.Context, q *ArticleQuery) ([]*model.Article, int64, error)
}

type ArticleRepoImpl struct {
	db *gorm.DB
}

func NewArticleRepo(db *gorm.DB) ArticleRepo {
	return &ArticleRepoImpl{db}
}

func (s *ArticleRepoImpl) Create(ctx context.Context, article *model.Article) error {
	return s.db.WithContext(ctx).Create(article).Error
}

func (s *ArticleRepoImpl) GetByID(ctx context.Context, id uint64, statuses ...model.ArticleStatus) (*model.Article, error) {
	var article model.Article
	q := s.db.WithContext(ctx).Preload("Member").Where("id = ?", id)
	if len(statuses) > 0 {
		q = q.Where("article_status IN ?", statuses)
	}
	if err := q.First(&article).Error; err != nil {
		return nil, err
	}
	return &article, nil
}

func (s *ArticleRepoImpl) GetByIDs(ctx context.Context, ids []uint64) ([]*model.Article, error) {
	var articles []*model.Article
	err := s.db.WithContext(ctx).Preload("Member").Where("id IN ?", ids).Find(&articles).Error
	return articles, err
}

func (s *ArticleRepoImpl) Update(ctx context.Context, id, memberID uint64, updates map[string]interface{}) (int64, error) {
	q := s.db.WithContext(ctx).Model(&model.Article{}).
		Where("id = ? AND article_status = ?", id, model.ArticleStatusActive)
	if memberID > 0 {
		q = q.Where("member_id = ?", memberID)
	}
	res := q.Updates(updates)
	return res.RowsAffected, res.Error
}

// UpdateAny 不校验状态和归属的更新，管理端恢复/下架走这里
func (s *ArticleRepoImpl) UpdateAny(ctx context.Context, id uint64, updates map[string]interface{}) (int64, error) {
	res := s.db.WithContext(ctx).Model(&model.Article{}).
		Where("id = ?", id).
		Updates(updates)
	return res.RowsAffected, res.Error
}

func (s *ArticleRepoImpl) AdjustCounter(ctx context.Context, id uint64, column string, delta int) (*model.Article, error) {
	if !consts.ArticleCounterColumns[column] {
		return nil, ErrCounterColumn
	}
	res := s.db.WithContext(ctx).Model(&model.Article{}).
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

func (s *ArticleRepoImpl) Search(ctx context.Context, q *ArticleQuery) ([]*model.Article, int64, error) {
	scope := func(db *gorm.DB) *gorm.DB {
		db = db.Where("article_status IN ?", q.Statuses)
		if q.MemberID > 0 {
			db = db.Where("member_id = ?", q.MemberID)
		}
		if q.Category != "" {
			db = db.Where("article_category = ?", q.Category)
		}
		if q.Text != "" {
			pattern := "%" + q.Text + "%"
			db = db.Where("article_title LIKE ? OR article_content LIKE ?", pattern, pattern)
		}
		return db
	}

	var (
		articles []*model.Article
		total    int64
	)
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return scope(s.db.WithContext(gCtx)).
			Order(q.SortColumn + " " + q.Direction).
			Limit(q.Limit).Offset((q.Page - 1) * q.Limit).
			Preload("Member").
			Find(&articles).Error
	})
	g.Go(func() error {
		return scope(s.db.WithContext(gCtx)).Model(&model.Article{}).Count(&total).Error
	})
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}
	return articles, total, nil
}
