package kafka

import (
	"Cuben/internal/pkg/mongo"
	"Cuben/internal/repository"
	"context"
	log "log/slog"
	"time"

	"github.com/IBM/sarama"
)

type EngagementHandler struct {
	memberRepo  repository.MemberRepo
	productRepo repository.ProductRepo
	articleRepo repository.ArticleRepo
	postRepo    repository.PostRepo
	notifyRepo  mongo.NotificationRepo
}

func NewEngagementHandler(
	memberRepo repository.MemberRepo,
	productRepo repository.ProductRepo,
	articleRepo repository.ArticleRepo,
	postRepo repository.PostRepo,
	notifyRepo mongo.NotificationRepo,
) *EngagementHandler {
	return &EngagementHandler{
		memberRepo:  memberRepo,
		productRepo: productRepo,
		articleRepo: articleRepo,
		postRepo:    postRepo,
		notifyRepo:  notifyRepo,
	}
}

func (s *EngagementHandler) Setup(sarama.ConsumerGroupSession) error {
	log.Info("engagement consumer setup")
	return nil
}

func (s *EngagementHandler) Cleanup(sarama.ConsumerGroupSession) error {
	log.Info("engagement consumer cleanup")
	return nil
}

func (s *EngagementHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	log.Info("topic-engagement consume claim")
	err := pullMessageBatch(session, claim, s.logic)
	if err != nil {
		log.Error("topic-engagement process batch error", "err", err)
		return err
	}
	return nil
}

func (s *EngagementHandler) logic(ctx context.Context, msg *sarama.ConsumerMessage) error {
	// 1. 解析 Canal 消息
	canalMsg, err := ToCanalMessage(msg, "engagements")
	if err != nil {
		return err
	}

	// 2. 台账只有物理增删，UPDATE 不会出现
	switch canalMsg.Type {
	case INSERT:
		return s.handleInsert(ctx, canalMsg)
	case DELETE:
		return s.handleDelete(ctx, canalMsg)
	default:
		return nil
	}
}

// handleInsert 处理点赞/收藏新增：INCR + DIRTY + 通知
func (s *EngagementHandler) handleInsert(ctx context.Context, msg *CanalMessage) error {
	row := msg.Data[0]
	memberID, targetID := StrToUint64(row["member_id"]), StrToUint64(row["target_id"])
	targetKind, action := StrVal(row["target_kind"]), StrVal(row["action"])

	countPrefix, dirtyKey := actionKeys(targetKind, action)
	ExecAction(ctx, ActionParams{
		TargetID:       targetID,
		CountKeyPrefix: countPrefix,
		DirtyKey:       dirtyKey,
		IsIncrement:    true,
		NotifyFunc:     func() { s.sendNotification(ctx, memberID, targetID, targetKind, action) },
	})

	log.InfoContext(ctx, "engagement inserted", "memberID", memberID, "targetKind", targetKind, "targetID", targetID, "action", action)
	return nil
}

// handleDelete 处理取消点赞/收藏：DECR + DIRTY
func (s *EngagementHandler) handleDelete(ctx context.Context, msg *CanalMessage) error {
	row := msg.Data[0]
	targetID := StrToUint64(row["target_id"])
	targetKind, action := StrVal(row["target_kind"]), StrVal(row["action"])

	countPrefix, dirtyKey := actionKeys(targetKind, action)
	ExecAction(ctx, ActionParams{
		TargetID:       targetID,
		CountKeyPrefix: countPrefix,
		DirtyKey:       dirtyKey,
		IsIncrement:    false,
	})

	log.InfoContext(ctx, "engagement removed", "targetKind", targetKind, "targetID", targetID, "action", action)
	return nil
}

// sendNotification 给目标归属者写一条收件箱通知，自己操作自己的内容不通知
func (s *EngagementHandler) sendNotification(ctx context.Context, actorID, targetID uint64, targetKind, action string) {
	ownerID, err := s.resolveOwner(ctx, targetKind, targetID)
	if err != nil || ownerID == 0 {
		log.WarnContext(ctx, "failed to resolve target owner for notification", "targetKind", targetKind, "targetID", targetID)
		return
	}
	if ownerID == actorID {
		return
	}

	var actorNick string
	if actor, err := s.memberRepo.GetByID(ctx, actorID); err == nil {
		actorNick = actor.MemberNick
	}

	notifyType := mongo.NotifyTypeLike
	if action == "SAVE" {
		notifyType = mongo.NotifyTypeSave
	}

	notification := &mongo.NotificationModel{
		MemberID:   ownerID,
		ActorID:    actorID,
		ActorNick:  actorNick,
		NotifyType: notifyType,
		TargetKind: targetKind,
		TargetID:   targetID,
		IsRead:     false,
		CreatedAt:  time.Now(),
	}

	if err := s.notifyRepo.Create(ctx, notification); err != nil {
		log.ErrorContext(ctx, "failed to create engagement notification", "targetKind", targetKind, "targetID", targetID, "err", err)
	}
}

func (s *EngagementHandler) resolveOwner(ctx context.Context, targetKind string, targetID uint64) (uint64, error) {
	switch targetKind {
	case "MEMBER":
		return targetID, nil
	case "PRODUCT":
		product, err := s.productRepo.GetByID(ctx, targetID)
		if err != nil {
			return 0, err
		}
		return product.MemberID, nil
	case "ARTICLE":
		article, err := s.articleRepo.GetByID(ctx, targetID)
		if err != nil {
			return 0, err
		}
		return article.MemberID, nil
	case "POST":
		post, err := s.postRepo.GetByID(ctx, targetID)
		if err != nil {
			return 0, err
		}
		return post.MemberID, nil
	}
	return 0, nil
}
