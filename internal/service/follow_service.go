package service

import (
	"Cuben/internal/api/dto"
	"Cuben/internal/model"
	"Cuben/internal/pkg/consts"
	"Cuben/internal/repository"
	"context"
	log "log/slog"
	"time"
)

type FollowService interface {
	Subscribe(ctx context.Context, followerID, followingID uint64) error
	Unsubscribe(ctx context.Context, followerID, followingID uint64) error
	GetFollowers(ctx context.Context, meID, memberID uint64, page *dto.PageReq) (*dto.MembersDTO, error)
	GetFollowings(ctx context.Context, meID, memberID uint64, page *dto.PageReq) (*dto.MembersDTO, error)
}

type followServiceImpl struct {
	followRepo repository.MemberFollowRepo
	memberRepo repository.MemberRepo
	engagement EngagementService
}

func NewFollowService(
	followRepo repository.MemberFollowRepo,
	memberRepo repository.MemberRepo,
	engagement EngagementService,
) FollowService {
	return &followServiceImpl{
		followRepo: followRepo,
		memberRepo: memberRepo,
		engagement: engagement,
	}
}

func (s *followServiceImpl) Subscribe(ctx context.Context, followerID, followingID uint64) error {
	if followerID == followingID {
		return ErrFollowSelf
	}
	if _, err := s.memberRepo.GetByID(ctx, followingID, model.MemberStatusActive); err != nil {
		return ErrMemberNotFound
	}

	exists, err := s.followRepo.Exists(ctx, followerID, followingID)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	if err := s.followRepo.Create(ctx, &model.MemberFollow{
		FollowerID:  followerID,
		FollowingID: followingID,
		CreatedAt:   time.Now(),
	}); err != nil {
		return ErrCreateFailed
	}

	s.adjustFollowCounters(ctx, followerID, followingID, 1)
	return nil
}

func (s *followServiceImpl) Unsubscribe(ctx context.Context, followerID, followingID uint64) error {
	affected, err := s.followRepo.Delete(ctx, followerID, followingID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrFollowMissing
	}

	s.adjustFollowCounters(ctx, followerID, followingID, -1)
	return nil
}

func (s *followServiceImpl) GetFollowers(ctx context.Context, meID, memberID uint64, page *dto.PageReq) (*dto.MembersDTO, error) {
	ids, total, err := s.followRepo.GetFollowerIDs(ctx, memberID, page.Limit, (page.Page-1)*page.Limit)
	if err != nil {
		return nil, err
	}
	return s.expandFollowMembers(ctx, meID, ids, total)
}

func (s *followServiceImpl) GetFollowings(ctx context.Context, meID, memberID uint64, page *dto.PageReq) (*dto.MembersDTO, error) {
	ids, total, err := s.followRepo.GetFollowingIDs(ctx, memberID, page.Limit, (page.Page-1)*page.Limit)
	if err != nil {
		return nil, err
	}
	return s.expandFollowMembers(ctx, meID, ids, total)
}

func (s *followServiceImpl) expandFollowMembers(ctx context.Context, meID uint64, ids []uint64, total int64) (*dto.MembersDTO, error) {
	if len(ids) == 0 {
		return &dto.MembersDTO{List: []*dto.MemberDTO{}, Total: total}, nil
	}

	meMap, err := s.engagement.MeEngagementMap(ctx, meID, model.TargetMember, ids)
	if err != nil {
		log.Error("me engagement map failed", "err", err)
		meMap = map[uint64]dto.MeEngagement{}
	}
	followedSet := map[uint64]struct{}{}
	if meID > 0 {
		followedIDs, err := s.followRepo.FilterFollowings(ctx, meID, ids)
		if err != nil {
			return nil, err
		}
		for _, id := range followedIDs {
			followedSet[id] = struct{}{}
		}
	}

	members, err := s.memberRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uint64]*model.Member, len(members))
	for _, m := range members {
		byID[m.ID] = m
	}

	list := make([]*dto.MemberDTO, 0, len(ids))
	for _, id := range ids {
		member, ok := byID[id]
		if !ok {
			continue
		}
		item := toMemberDTO(member)
		item.MeLiked = meMap[id]
		_, item.MeFollowed = followedSet[id]
		list = append(list, item)
	}
	return &dto.MembersDTO{List: list, Total: total}, nil
}

func (s *followServiceImpl) adjustFollowCounters(ctx context.Context, followerID, followingID uint64, delta int) {
	if _, err := s.memberRepo.AdjustCounter(ctx, followerID, consts.ColMemberFollowings, delta); err != nil {
		log.Error("adjust followings failed", "memberID", followerID, "err", err)
	}
	if _, err := s.memberRepo.AdjustCounter(ctx, followingID, consts.ColMemberFollowers, delta); err != nil {
		log.Error("adjust followers failed", "memberID", followingID, "err", err)
	}
}
