package service

import (
	"Cuben/internal/api/dto"
	"Cuben/internal/model"
	"Cuben/internal/pkg/consts"
	"Cuben/internal/pkg/redis"
	"Cuben/internal/repository"
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/go-sql-driver/mysql"
)

const cacheExpiration = 7 * 24 * time.Hour

// EngagementService 点赞/收藏切换台账、浏览一次性台账与请求级状态标注。
// 只负责台账本身，冗余计数列由各内容 service 调用 AdjustCounter 维护。
type EngagementService interface {
	Toggle(ctx context.Context, memberID, targetID uint64, kind model.TargetKind, action model.EngagementAction) (int, error)
	RecordView(ctx context.Context, viewerID, targetID uint64, kind model.TargetKind) (bool, error)

	MeEngagement(ctx context.Context, memberID, targetID uint64, kind model.TargetKind) (dto.MeEngagement, error)
	MeEngagementMap(ctx context.Context, memberID uint64, kind model.TargetKind, targetIDs []uint64) (map[uint64]dto.MeEngagement, error)

	GetActionCount(ctx context.Context, targetID uint64, kind model.TargetKind, action model.EngagementAction) (int64, error)
	GetViewCount(ctx context.Context, targetID uint64, kind model.TargetKind) (int64, error)

	GetActionTargetIDs(ctx context.Context, memberID uint64, kind model.TargetKind, action model.EngagementAction, limit, offset int) ([]uint64, int64, error)
	GetViewedTargetIDs(ctx context.Context, viewerID uint64, kind model.TargetKind, limit, offset int) ([]uint64, int64, error)
}

type engagementServiceImpl struct {
	engagementRepo repository.EngagementRepo
	viewRepo       repository.ViewRepo
}

func NewEngagementService(engagementRepo repository.EngagementRepo, viewRepo repository.ViewRepo) EngagementService {
	return &engagementServiceImpl{
		engagementRepo: engagementRepo,
		viewRepo:       viewRepo,
	}
}

// Toggle 对 (member, target, kind, action) 四元组做 XOR 翻转：
// 已存在则删除返回 -1，不存在则创建返回 +1。
// 并发插入撞唯一索引时整体重试一次，重试后的删除分支就是正确结果。
func (s *engagementServiceImpl) Toggle(ctx context.Context, memberID, targetID uint64, kind model.TargetKind, action model.EngagementAction) (int, error) {
	modifier, err := s.toggleOnce(ctx, memberID, targetID, kind, action)
	if err != nil && isDuplicateError(err) {
		modifier, err = s.toggleOnce(ctx, memberID, targetID, kind, action)
		if err != nil && isDuplicateError(err) {
			return 0, ErrCreateFailed
		}
	}
	return modifier, err
}

func (s *engagementServiceImpl) toggleOnce(ctx context.Context, memberID, targetID uint64, kind model.TargetKind, action model.EngagementAction) (int, error) {
	existing, err := s.engagementRepo.Find(ctx, memberID, targetID, kind, action)
	if err != nil {
		return 0, err
	}
	if existing != nil {
		// 并发删除抢先时 affected 为 0，此时关闭态已经成立，结果不变
		if _, err := s.engagementRepo.Delete(ctx, memberID, targetID, kind, action); err != nil {
			return 0, err
		}
		return -1, nil
	}
	if err := s.engagementRepo.Create(ctx, &model.Engagement{
		MemberID:   memberID,
		TargetID:   targetID,
		TargetKind: kind,
		Action:     action,
		CreatedAt:  time.Now(),
	}); err != nil {
		return 0, err
	}
	return 1, nil
}

// RecordView 一次性浏览记录，viewerID 0 代表匿名，
// 全部匿名浏览共用 0 号键，同一目标最多收敛成一条。
func (s *engagementServiceImpl) RecordView(ctx context.Context, viewerID, targetID uint64, kind model.TargetKind) (bool, error) {
	exists, err := s.viewRepo.Exists(ctx, viewerID, targetID, kind)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}
	err = s.viewRepo.Create(ctx, &model.View{
		ViewerID:   viewerID,
		TargetID:   targetID,
		TargetKind: kind,
		CreatedAt:  time.Now(),
	})
	if err != nil {
		if isDuplicateError(err) {
			// 并发写入抢先，记录已存在
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *engagementServiceImpl) MeEngagement(ctx context.Context, memberID, targetID uint64, kind model.TargetKind) (dto.MeEngagement, error) {
	if memberID == 0 {
		return dto.MeEngagement{}, nil
	}
	liked, err := s.engagementRepo.Exists(ctx, memberID, targetID, kind, model.ActionLike)
	if err != nil {
		return dto.MeEngagement{}, err
	}
	saved, err := s.engagementRepo.Exists(ctx, memberID, targetID, kind, model.ActionSave)
	if err != nil {
		return dto.MeEngagement{}, err
	}
	return dto.MeEngagement{Liked: liked, Saved: saved}, nil
}

// MeEngagementMap 单条 IN 查询标注一整页目标，按 action 分拣，禁止逐行查询
func (s *engagementServiceImpl) MeEngagementMap(ctx context.Context, memberID uint64, kind model.TargetKind, targetIDs []uint64) (map[uint64]dto.MeEngagement, error) {
	result := make(map[uint64]dto.MeEngagement, len(targetIDs))
	for _, id := range targetIDs {
		result[id] = dto.MeEngagement{}
	}
	if memberID == 0 || len(targetIDs) == 0 {
		return result, nil
	}
	rows, err := s.engagementRepo.ListByMemberAndTargets(ctx, memberID, kind, targetIDs)
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		me := result[row.TargetID]
		switch row.Action {
		case model.ActionLike:
			me.Liked = true
		case model.ActionSave:
			me.Saved = true
		}
		result[row.TargetID] = me
	}
	return result, nil
}

// GetActionCount 先查 Redis 缓存，未命中回源台账并回填
func (s *engagementServiceImpl) GetActionCount(ctx context.Context, targetID uint64, kind model.TargetKind, action model.EngagementAction) (int64, error) {
	key := actionCountKey(kind, action, targetID)
	if key != "" {
		if count, err := redis.GetInt64(ctx, key); err == nil {
			return count, nil
		}
	}
	realCount, err := s.engagementRepo.CountByTarget(ctx, targetID, kind, action)
	if err != nil {
		return 0, err
	}
	if key != "" {
		_ = redis.SetWithExpiration(ctx, key, realCount, cacheExpiration)
	}
	return realCount, nil
}

func (s *engagementServiceImpl) GetViewCount(ctx context.Context, targetID uint64, kind model.TargetKind) (int64, error) {
	key := viewCountKey(kind, targetID)
	if key != "" {
		if count, err := redis.GetInt64(ctx, key); err == nil {
			return count, nil
		}
	}
	realCount, err := s.viewRepo.CountByTarget(ctx, targetID, kind)
	if err != nil {
		return 0, err
	}
	if key != "" {
		_ = redis.SetWithExpiration(ctx, key, realCount, cacheExpiration)
	}
	return realCount, nil
}

func (s *engagementServiceImpl) GetActionTargetIDs(ctx context.Context, memberID uint64, kind model.TargetKind, action model.EngagementAction, limit, offset int) ([]uint64, int64, error) {
	return s.engagementRepo.GetTargetIDs(ctx, memberID, kind, action, limit, offset)
}

func (s *engagementServiceImpl) GetViewedTargetIDs(ctx context.Context, viewerID uint64, kind model.TargetKind, limit, offset int) ([]uint64, int64, error) {
	return s.viewRepo.GetTargetIDs(ctx, viewerID, kind, limit, offset)
}

func actionCountKey(kind model.TargetKind, action model.EngagementAction, targetID uint64) string {
	id := strconv.FormatUint(targetID, 10)
	switch kind {
	case model.TargetProduct:
		if action == model.ActionLike {
			return consts.ProductLikeKey + id
		}
		return consts.ProductSaveKey + id
	case model.TargetArticle:
		if action == model.ActionLike {
			return consts.ArticleLikeKey + id
		}
		return consts.ArticleSaveKey + id
	case model.TargetPost:
		if action == model.ActionLike {
			return consts.PostLikeKey + id
		}
		return consts.PostSaveKey + id
	case model.TargetMember:
		if action == model.ActionLike {
			return consts.MemberLikeKey + id
		}
		return ""
	}
	return ""
}

func viewCountKey(kind model.TargetKind, targetID uint64) string {
	id := strconv.FormatUint(targetID, 10)
	switch kind {
	case model.TargetProduct:
		return consts.ProductViewKey + id
	case model.TargetArticle:
		return consts.ArticleViewKey + id
	case model.TargetPost:
		return consts.PostViewKey + id
	case model.TargetMember:
		return consts.MemberViewKey + id
	}
	return ""
}

func isDuplicateError(err error) bool {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
		return true
	}
	return false
}
