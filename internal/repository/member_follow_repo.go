package repository

import (
	"Cuben/internal/model"
	"context"

	"gorm.io/gorm"
)

type MemberFollowRepo interface {
	Create(ctx context.Context, follow *model.MemberFollow) error
	Delete(ctx context.Context, followerID, followingID uint64) (int64, error)
	Exists(ctx context.Context, followerID, followingID uint64) (bool, error)
	GetFollowerIDs(ctx context.Context, followingID uint64, limit, offset int) ([]uint64, int64, error)
	GetFollowingIDs(ctx context.Context, followerID uint64, limit, offset int) ([]uint64, int64, error)
	FilterFollowings(ctx context.Context, followerID uint64, candidateIDs []uint64) ([]uint64, error)
}

type MemberFollowRepoImpl struct {
	db *gorm.DB
}

func NewMemberFollowRepo(db *gorm.DB) MemberFollowRepo {
	return &MemberFollowRepoImpl{db}
}

func (s *MemberFollowRepoImpl) Create(ctx context.Context, follow *model.MemberFollow) error {
	return s.db.WithContext(ctx).Create(follow).Error
}

func (s *MemberFollowRepoImpl) Delete(ctx context.Context, followerID, followingID uint64) (int64, error) {
	res := s.db.WithContext(ctx).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Delete(&model.MemberFollow{})
	return res.RowsAffected, res.Error
}

func (s *MemberFollowRepoImpl) Exists(ctx context.Context, followerID, followingID uint64) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.MemberFollow{}).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Count(&count).Error
	return count > 0, err
}

func (s *MemberFollowRepoImpl) GetFollowerIDs(ctx context.Context, followingID uint64, limit, offset int) ([]uint64, int64, error) {
	var (
		ids   []uint64
		total int64
	)
	if err := s.db.WithContext(ctx).Model(&model.MemberFollow{}).
		Where("following_id = ?", followingID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := s.db.WithContext(ctx).Model(&model.MemberFollow{}).
		Where("following_id = ?", followingID).
		Order("created_at DESC").Limit(limit).Offset(offset).
		Pluck("follower_id", &ids).Error
	return ids, total, err
}

func (s *MemberFollowRepoImpl) GetFollowingIDs(ctx context.Context, followerID uint64, limit, offset int) ([]uint64, int64, error) {
	var (
		ids   []uint64
		total int64
	)
	if err := s.db.WithContext(ctx).Model(&model.MemberFollow{}).
		Where("follower_id = ?", followerID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := s.db.WithContext(ctx).Model(&model.MemberFollow{}).
		Where("follower_id = ?", followerID).
		Order("created_at DESC").Limit(limit).Offset(offset).
		Pluck("following_id", &ids).Error
	return ids, total, err
}

// FilterFollowings 从候选集中筛出我已关注的那部分，用于列表页的 meFollowed 批量标注
func (s *MemberFollowRepoImpl) FilterFollowings(ctx context.Context, followerID uint64, candidateIDs []uint64) ([]uint64, error) {
	var ids []uint64
	err := s.db.WithContext(ctx).Model(&model.MemberFollow{}).
		Where("follower_id = ? AND following_id IN ?", followerID, candidateIDs).
		Pluck("following_id", &ids).Error
	return ids, err
}
