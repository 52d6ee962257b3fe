package repository

import (
	"Cuben/internal/model"
	"context"
	"errors"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

type EngagementRepo interface {
	Create(ctx context.Context, e *model.Engagement) error
	Delete(ctx context.Context, memberID, targetID uint64, kind model.TargetKind, action model.EngagementAction) (int64, error)
	Find(ctx context.Context, memberID, targetID uint64, kind model.TargetKind, action model.EngagementAction) (*model.Engagement, error)
	Exists(ctx context.Context, memberID, targetID uint64, kind model.TargetKind, action model.EngagementAction) (bool, error)
	ListByMemberAndTargets(ctx context.Context, memberID uint64, kind model.TargetKind, targetIDs []uint64) ([]*model.Engagement, error)
	GetTargetIDs(ctx context.Context, memberID uint64, kind model.TargetKind, action model.EngagementAction, limit, offset int) ([]uint64, int64, error)
	CountByTarget(ctx context.Context, targetID uint64, kind model.TargetKind, action model.EngagementAction) (int64, error)
}

type EngagementRepoImpl struct {
	db *gorm.DB
}

func NewEngagementRepo(db *gorm.DB) EngagementRepo {
	return &EngagementRepoImpl{db}
}

func (s *EngagementRepoImpl) Create(ctx context.Context, e *model.Engagement) error {
	return s.db.WithContext(ctx).Create(e).Error
}

func (s *EngagementRepoImpl) Delete(ctx context.Context, memberID, targetID uint64, kind model.TargetKind, action model.EngagementAction) (int64, error) {
	res := s.db.WithContext(ctx).
		Where("member_id = ? AND target_id = ? AND target_kind = ? AND action = ?", memberID, targetID, kind, action).
		Delete(&model.Engagement{})
	return res.RowsAffected, res.Error
}

func (s *EngagementRepoImpl) Find(ctx context.Context, memberID, targetID uint64, kind model.TargetKind, action model.EngagementAction) (*model.Engagement, error) {
	var e model.Engagement
	err := s.db.WithContext(ctx).
		Where("member_id = ? AND target_id = ? AND target_kind = ? AND action = ?", memberID, targetID, kind, action).
		First(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (s *EngagementRepoImpl) Exists(ctx context.Context, memberID, targetID uint64, kind model.TargetKind, action model.EngagementAction) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.Engagement{}).
		Where("member_id = ? AND target_id = ? AND target_kind = ? AND action = ?", memberID, targetID, kind, action).
		Count(&count).Error
	return count > 0, err
}

// ListByMemberAndTargets 一次取出某人对一页目标的全部 LIKE/SAVE 记录，避免逐行查询
func (s *EngagementRepoImpl) ListByMemberAndTargets(ctx context.Context, memberID uint64, kind model.TargetKind, targetIDs []uint64) ([]*model.Engagement, error) {
	var list []*model.Engagement
	err := s.db.WithContext(ctx).
		Where("member_id = ? AND target_kind = ? AND target_id IN ?", memberID, kind, targetIDs).
		Find(&list).Error
	return list, err
}

func (s *EngagementRepoImpl) GetTargetIDs(ctx context.Context, memberID uint64, kind model.TargetKind, action model.EngagementAction, limit, offset int) ([]uint64, int64, error) {
	scope := func(db *gorm.DB) *gorm.DB {
		return db.Model(&model.Engagement{}).
			Where("member_id = ? AND target_kind = ? AND action = ?", memberID, kind, action)
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

func (s *EngagementRepoImpl) CountByTarget(ctx context.Context, targetID uint64, kind model.TargetKind, action model.EngagementAction) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.Engagement{}).
		Where("target_id = ? AND target_kind = ? AND action = ?", targetID, kind, action).
		Count(&count).Error
	return count, err
}
