package job

import (
	"Cuben/internal/model"
	"Cuben/internal/pkg/consts"
	"Cuben/internal/pkg/logger"
	"Cuben/internal/pkg/redis"
	"Cuben/internal/pkg/util"
	"Cuben/internal/repository"
	"context"
	log "log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"
)

const countCacheExpiration = 7 * 24 * time.Hour

// CounterRecountJob 对脏集合里的目标做台账全量重算，
// 把冗余计数列和计数缓存一并覆盖回准确值。
type CounterRecountJob struct {
	engagementRepo repository.EngagementRepo
	viewRepo       repository.ViewRepo
	commentRepo    repository.CommentRepo
	productRepo    repository.ProductRepo
	articleRepo    repository.ArticleRepo
	postRepo       repository.PostRepo
	memberRepo     repository.MemberRepo
}

func NewCounterRecountJob(
	engagementRepo repository.EngagementRepo,
	viewRepo repository.ViewRepo,
	commentRepo repository.CommentRepo,
	productRepo repository.ProductRepo,
	articleRepo repository.ArticleRepo,
	postRepo repository.PostRepo,
	memberRepo repository.MemberRepo,
) *CounterRecountJob {
	return &CounterRecountJob{
		engagementRepo: engagementRepo,
		viewRepo:       viewRepo,
		commentRepo:    commentRepo,
		productRepo:    productRepo,
		articleRepo:    articleRepo,
		postRepo:       postRepo,
		memberRepo:     memberRepo,
	}
}

func (s *CounterRecountJob) Run() {
	traceID := "job-recount-" + uuid.NewString()
	ctx := context.WithValue(context.Background(), logger.TraceIDKey, traceID)

	// 多实例部署时同一轮只允许一个实例重算
	locked, err := redis.TryLock(ctx, consts.RecountLockKey, traceID, 5*time.Minute, 0)
	if err != nil || !locked {
		log.InfoContext(ctx, "CounterRecountJob skipped, lock not acquired", "err", err)
		return
	}
	defer redis.UnLock(ctx, consts.RecountLockKey, traceID)

	s.recountKind(ctx, model.TargetProduct, consts.ProductDirtyKey)
	s.recountKind(ctx, model.TargetArticle, consts.ArticleDirtyKey)
	s.recountKind(ctx, model.TargetPost, consts.PostDirtyKey)
	s.recountKind(ctx, model.TargetMember, consts.MemberDirtyKey)
}

// recountKind 消费一种目标类型的脏集合。
// 先把脏集合改名成 processing 快照，期间新产生的脏目标落到下一轮。
func (s *CounterRecountJob) recountKind(ctx context.Context, kind model.TargetKind, dirtyKey string) {
	processingKey := dirtyKey + ":processing"
	if err := redis.Rename(ctx, dirtyKey, processingKey); err != nil {
		return
	}

	tempSet, err := redis.GetSet(ctx, processingKey)
	if err != nil {
		log.ErrorContext(ctx, "get dirty set error", "kind", kind, "err", err)
		return
	}

	targetIDs, err := util.StrSliceToUInt64Slice(tempSet)
	if err != nil {
		log.ErrorContext(ctx, "convert dirty set to id slice error", "kind", kind, "err", err)
		return
	}

	log.InfoContext(ctx, "CounterRecountJob processing", "kind", kind, "target_count", len(targetIDs))

	for _, id := range targetIDs {
		if err := s.recountTarget(ctx, kind, id); err != nil {
			log.ErrorContext(ctx, "recount target error", "kind", kind, "id", id, "err", err)
			// 失败的目标回到脏集合等下一轮
			if err := redis.SAdd(ctx, dirtyKey, id); err != nil {
				log.ErrorContext(ctx, "requeue dirty target error", "kind", kind, "id", id, "err", err)
			}
		}
	}

	if err := redis.DeleteKey(ctx, processingKey); err != nil {
		log.ErrorContext(ctx, "delete processing set error", "kind", kind, "err", err)
	}

	log.InfoContext(ctx, "CounterRecountJob finished", "kind", kind, "processed_count", len(targetIDs))
}

func (s *CounterRecountJob) recountTarget(ctx context.Context, kind model.TargetKind, id uint64) error {
	likes, err := s.engagementRepo.CountByTarget(ctx, id, kind, model.ActionLike)
	if err != nil {
		return err
	}
	views, err := s.viewRepo.CountByTarget(ctx, id, kind)
	if err != nil {
		return err
	}

	idStr := strconv.FormatUint(id, 10)

	switch kind {
	case model.TargetProduct:
		saves, err := s.engagementRepo.CountByTarget(ctx, id, kind, model.ActionSave)
		if err != nil {
			return err
		}
		comments, err := s.commentRepo.CountByRef(ctx, model.CommentGroupProduct, id)
		if err != nil {
			return err
		}
		if _, err := s.productRepo.UpdateAny(ctx, id, map[string]interface{}{
			consts.ColProductLikes:    likes,
			consts.ColProductSaves:    saves,
			consts.ColProductViews:    views,
			consts.ColProductComments: comments,
		}); err != nil {
			return err
		}
		s.refreshCache(ctx, consts.ProductLikeKey+idStr, likes)
		s.refreshCache(ctx, consts.ProductSaveKey+idStr, saves)
		s.refreshCache(ctx, consts.ProductViewKey+idStr, views)
		s.refreshCache(ctx, consts.ProductCommentKey+idStr, comments)

	case model.TargetArticle:
		saves, err := s.engagementRepo.CountByTarget(ctx, id, kind, model.ActionSave)
		if err != nil {
			return err
		}
		comments, err := s.commentRepo.CountByRef(ctx, model.CommentGroupArticle, id)
		if err != nil {
			return err
		}
		if _, err := s.articleRepo.UpdateAny(ctx, id, map[string]interface{}{
			consts.ColArticleLikes:    likes,
			consts.ColArticleSaves:    saves,
			consts.ColArticleViews:    views,
			consts.ColArticleComments: comments,
		}); err != nil {
			return err
		}
		s.refreshCache(ctx, consts.ArticleLikeKey+idStr, likes)
		s.refreshCache(ctx, consts.ArticleSaveKey+idStr, saves)
		s.refreshCache(ctx, consts.ArticleViewKey+idStr, views)
		s.refreshCache(ctx, consts.ArticleCommentKey+idStr, comments)

	case model.TargetPost:
		saves, err := s.engagementRepo.CountByTarget(ctx, id, kind, model.ActionSave)
		if err != nil {
			return err
		}
		comments, err := s.commentRepo.CountByRef(ctx, model.CommentGroupPost, id)
		if err != nil {
			return err
		}
		if _, err := s.postRepo.UpdateAny(ctx, id, map[string]interface{}{
			consts.ColPostLikes:    likes,
			consts.ColPostSaves:    saves,
			consts.ColPostViews:    views,
			consts.ColPostComments: comments,
		}); err != nil {
			return err
		}
		s.refreshCache(ctx, consts.PostLikeKey+idStr, likes)
		s.refreshCache(ctx, consts.PostSaveKey+idStr, saves)
		s.refreshCache(ctx, consts.PostViewKey+idStr, views)
		s.refreshCache(ctx, consts.PostCommentKey+idStr, comments)

	case model.TargetMember:
		if _, err := s.memberRepo.UpdateAny(ctx, id, map[string]interface{}{
			consts.ColMemberLikes: likes,
			consts.ColMemberViews: views,
		}); err != nil {
			return err
		}
		s.refreshCache(ctx, consts.MemberLikeKey+idStr, likes)
		s.refreshCache(ctx, consts.MemberViewKey+idStr, views)
	}

	return nil
}

func (s *CounterRecountJob) refreshCache(ctx context.Context, key string, value int64) {
	if err := redis.SetWithExpiration(ctx, key, value, countCacheExpiration); err != nil {
		log.ErrorContext(ctx, "refresh count cache error", "key", key, "err", err)
	}
}
