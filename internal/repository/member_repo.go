package repository

import (
	"Cuben/internal/model"
	"Cuben/internal/pkg/consts"
	"context"
	"errors"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

type MemberQuery struct {
	Types      []model.MemberType
	Statuses   []model.MemberStatus
	Text       string
	SortColumn string
	Direction  string
	Page       int
	Limit      int
}

type MemberRepo interface {
	Create(ctx context.Context, member *model.Member) error
	GetByID(ctx context.Context, id uint64, statuses ...model.MemberStatus) (*model.Member, error)
	GetByNick(ctx context.Context, nick string) (*model.Member, error)
	GetByIDs(ctx context.Context, ids []uint64) ([]*model.Member, error)
	Update(ctx context.Context, id uint64, updates map[string]interface{}) (int64, error)
	UpdateAny(ctx context.Context, id uint64, updates map[string]interface{}) (int64, error)
	AdjustCounter(ctx context.Context, id uint64, column string, delta int) (*model.Member, error)
	Search(ctx context.Context, q *MemberQuery) ([]*model.Member, int64, error)
}

type MemberRepoImpl struct {
	db *gorm.DB
}

func NewMemberRepo(db *gorm.DB) MemberRepo {
	return &MemberRepoImpl{db}
}

func (s *MemberRepoImpl) Create(ctx context.Context, member *model.Member) error {
	return s.db.WithContext(ctx).Create(member).Error
}

func (s *MemberRepoImpl) GetByID(ctx context.Context, id uint64, statuses ...model.MemberStatus) (*model.Member, error) {
	var member model.Member
	q := s.db.WithContext(ctx).Where("id = ?", id)
	if len(statuses) > 0 {
		q = q.Where("member_status IN ?", statuses)
	}
	if err := q.First(&member).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

func (s *MemberRepoImpl) GetByNick(ctx context.Context, nick string) (*model.Member, error) {
	var member model.Member
	err := s.db.WithContext(ctx).Where("member_nick = ?", nick).First(&member).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &member, nil
}

func (s *MemberRepoImpl) GetByIDs(ctx context.Context, ids []uint64) ([]*model.Member, error) {
	var members []*model.Member
	err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&members).Error
	return members, err
}

func (s *MemberRepoImpl) Update(ctx context.Context, id uint64, updates map[string]interface{}) (int64, error) {
	res := s.db.WithContext(ctx).Model(&model.Member{}).
		Where("id = ? AND member_status = ?", id, model.MemberStatusActive).
		Updates(updates)
	return res.RowsAffected, res.Error
}

// UpdateAny 不校验状态的更新，封禁/解封走这里
func (s *MemberRepoImpl) UpdateAny(ctx context.Context, id uint64, updates map[string]interface{}) (int64, error) {
	res := s.db.WithContext(ctx).Model(&model.Member{}).
		Where("id = ?", id).
		Updates(updates)
	return res.RowsAffected, res.Error
}

func (s *MemberRepoImpl) AdjustCounter(ctx context.Context, id uint64, column string, delta int) (*model.Member, error) {
	if !consts.MemberCounterColumns[column] {
		return nil, ErrCounterColumn
	}
	res := s.db.WithContext(ctx).Model(&model.Member{}).
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

func (s *MemberRepoImpl) Search(ctx context.Context, q *MemberQuery) ([]*model.Member, int64, error) {
	scope := func(db *gorm.DB) *gorm.DB {
		if len(q.Types) > 0 {
			db = db.Where("member_type IN ?", q.Types)
		}
		if len(q.Statuses) > 0 {
			db = db.Where("member_status IN ?", q.Statuses)
		}
		if q.Text != "" {
			pattern := "%" + q.Text + "%"
			db = db.Where("member_nick LIKE ? OR member_full_name LIKE ?", pattern, pattern)
		}
		return db
	}

	var (
		members []*model.Member
		total   int64
	)
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return scope(s.db.WithContext(gCtx)).
			Order(q.SortColumn + " " + q.Direction).
			Limit(q.Limit).Offset((q.Page - 1) * q.Limit).
			Find(&members).Error
	})
	g.Go(func() error {
		return scope(s.db.WithContext(gCtx)).Model(&model.Member{}).Count(&total).Error
	})
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}
	return members, total, nil
}
