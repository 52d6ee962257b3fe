package repository

import (
	"Cuben/internal/model"
	"context"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

type ViewRepo interface {
	Create(ctx context.Context, v *model.View) error
	Exists(ctx context.Context, viewerID, targetID uint64, kind model.TargetKind) (bool, error)
	GetTargetIDs(ctx context.Context, viewerID uint64, kind model.TargetKind, limit, offset int) ([]uint64, int64, error)
	CountByTarget(ctx context.Context, targetID uint64, kind model.TargetKind) (int64, error)
}

type ViewRepoImpl struct {
	db *gorm.DB
}

func NewViewRepo(db *gorm.DB) ViewRepo {
	return &ViewRepoImpl{db}
}

func (s *ViewRepoImpl) Create(ctx context.Context, v *model.View) error {
	return s.db.WithContext(ctx).Create(v).Error
}

func (s *ViewRepoImpl) Exists(ctx context.Context, viewerID, targetID uint64, kind model.TargetKind) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.View{}).
		Where("viewer_id = ? AND target_id = ? AND target_kind = ?", viewerID, targetID, kind).
		Count(&count).Error
	return count > 0, err
}

func (s *ViewRepoImpl) GetTargetIDs(ctx context.Context, viewerID uint64, kind model.TargetKind, limit, offset int) ([]uint64, int64, error) {
	scope := func(db *gorm.DB) *gorm.DB {
		return db.Model(&model.View{}).
			Where("viewer_id = ? AND target_kind = ?", viewerID, kind)
	}
	var (
		ids   []uint64
		total int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return scope(s.db.WithContext(gctx)).
			Order("created_at DESC").
			Limit(limit).Offset(offset).
			Pluck("target_id", &ids).Error
	})
	g.Go(func() error {
		return scope(s.db.WithContext(gctx)).Count(&total).Error
	})
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}
	return ids, total, nil
}

func (s *ViewRepoImpl) CountByTarget(ctx context.Context, targetID uint64, kind model.TargetKind) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.View{}).
		Where("target_id = ? AND target_kind = ?", targetID, kind).
		Count(&count).Error
	return count, err
}
