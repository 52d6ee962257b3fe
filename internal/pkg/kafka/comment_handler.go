package kafka

import (
	"Cuben/internal/pkg/consts"
	"Cuben/internal/pkg/mongo"
	"Cuben/internal/repository"
	"context"
	log "log/slog"
	"time"

	"github.com/IBM/sarama"
)

type CommentsHandler struct {
	memberRepo  repository.MemberRepo
	productRepo repository.ProductRepo
	articleRepo repository.ArticleRepo
	postRepo    repository.PostRepo
	notifyRepo  mongo.NotificationRepo
}

func NewCommentsHandler(
	memberRepo repository.MemberRepo,
	productRepo repository.ProductRepo,
	articleRepo repository.ArticleRepo,
	postRepo repository.PostRepo,
	notifyRepo mongo.NotificationRepo,
) *CommentsHandler {
	return &CommentsHandler{
		memberRepo:  memberRepo,
		productRepo: productRepo,
		articleRepo: articleRepo,
		postRepo:    postRepo,
		notifyRepo:  notifyRepo,
	}
}

func (s *CommentsHandler) Setup(sarama.ConsumerGroupSession) error {
	log.Info("comment consumer setup")
	return nil
}

func (s *CommentsHandler) Cleanup(sarama.ConsumerGroupSession) error {
	log.Info("comment consumer cleanup")
	return nil
}

func (s *CommentsHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	log.Info("topic-comment consume claim")
	err := pullMessageBatch(session, claim, s.logic)
	if err != nil {
		log.Error("topic-comment process batch error", "err", err)
		return err
	}
	return nil
}

func (s *CommentsHandler) logic(ctx context.Context, msg *sarama.ConsumerMessage) error {
	canalMsg, err := ToCanalMessage(msg, "comments")
	if err != nil {
		return err
	}

	switch canalMsg.Type {
	case INSERT:
		return s.handleInsert(ctx, canalMsg)
	case UPDATE:
		return s.handleUpdate(ctx, canalMsg)
	default:
		return nil
	}
}

// handleInsert 新评论：评论数缓存 INCR + DIRTY + 通知被评论内容的归属者
func (s *CommentsHandler) handleInsert(ctx context.Context, msg *CanalMessage) error {
	row := msg.Data[0]
	if StrVal(row["comment_status"]) != "ACTIVE" {
		return nil
	}
	memberID := StrToUint64(row["member_id"])
	group, refID := StrVal(row["comment_group"]), StrToUint64(row["comment_ref_id"])

	countPrefix, dirtyKey := commentKeys(group)
	ExecAction(ctx, ActionParams{
		TargetID:       refID,
		CountKeyPrefix: countPrefix,
		DirtyKey:       dirtyKey,
		IsIncrement:    true,
		NotifyFunc:     func() { s.sendCommentNotification(ctx, memberID, group, refID) },
	})

	log.InfoContext(ctx, "comment inserted", "memberID", memberID, "group", group, "refID", refID)
	return nil
}

// handleUpdate 软删除：状态从 ACTIVE 变为 DELETE 时评论数缓存 DECR
func (s *CommentsHandler) handleUpdate(ctx context.Context, msg *CanalMessage) error {
	row := msg.Data[0]
	if StrVal(row["comment_status"]) != "DELETE" {
		return nil
	}
	if len(msg.Old) == 0 || StrVal(msg.Old[0]["comment_status"]) != "ACTIVE" {
		return nil
	}
	group, refID := StrVal(row["comment_group"]), StrToUint64(row["comment_ref_id"])

	countPrefix, dirtyKey := commentKeys(group)
	ExecAction(ctx, ActionParams{
		TargetID:       refID,
		CountKeyPrefix: countPrefix,
		DirtyKey:       dirtyKey,
		IsIncrement:    false,
	})

	log.InfoContext(ctx, "comment soft deleted", "group", group, "refID", refID)
	return nil
}

func (s *CommentsHandler) sendCommentNotification(ctx context.Context, actorID uint64, group string, refID uint64) {
	ownerID, err := s.resolveOwner(ctx, group, refID)
	if err != nil || ownerID == 0 {
		log.WarnContext(ctx, "failed to resolve comment ref owner", "group", group, "refID", refID)
		return
	}
	if ownerID == actorID {
		return
	}

	var actorNick string
	if actor, err := s.memberRepo.GetByID(ctx, actorID); err == nil {
		actorNick = actor.MemberNick
	}

	notification := &mongo.NotificationModel{
		MemberID:   ownerID,
		ActorID:    actorID,
		ActorNick:  actorNick,
		NotifyType: mongo.NotifyTypeComment,
		TargetKind: group,
		TargetID:   refID,
		IsRead:     false,
		CreatedAt:  time.Now(),
	}

	if err := s.notifyRepo.Create(ctx, notification); err != nil {
		log.ErrorContext(ctx, "failed to create comment notification", "group", group, "refID", refID, "err", err)
	}
}

func (s *CommentsHandler) resolveOwner(ctx context.Context, group string, refID uint64) (uint64, error) {
	switch group {
	case "PRODUCT":
		product, err := s.productRepo.GetByID(ctx, refID)
		if err != nil {
			return 0, err
		}
		return product.MemberID, nil
	case "ARTICLE":
		article, err := s.articleRepo.GetByID(ctx, refID)
		if err != nil {
			return 0, err
		}
		return article.MemberID, nil
	case "POST":
		post, err := s.postRepo.GetByID(ctx, refID)
		if err != nil {
			return 0, err
		}
		return post.MemberID, nil
	}
	return 0, nil
}

func commentKeys(group string) (countPrefix, dirtyKey string) {
	switch group {
	case "PRODUCT":
		return consts.ProductCommentKey, consts.ProductDirtyKey
	case "ARTICLE":
		return consts.ArticleCommentKey, consts.ArticleDirtyKey
	case "POST":
		return consts.PostCommentKey, consts.PostDirtyKey
	}
	return "", ""
}
