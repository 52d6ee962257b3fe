package kafka

import (
	"context"
	log "log/slog"

	"github.com/IBM/sarama"
)

type ViewsHandler struct {
	// 浏览台账只驱动缓存和脏集合，不需要回查数据库
}

func NewViewsHandler() *ViewsHandler {
	return &ViewsHandler{}
}

func (s *ViewsHandler) Setup(sarama.ConsumerGroupSession) error {
	log.Info("view consumer setup")
	return nil
}

func (s *ViewsHandler) Cleanup(sarama.ConsumerGroupSession) error {
	log.Info("view consumer cleanup")
	return nil
}

func (s *ViewsHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	log.Info("topic-view consume claim")
	err := pullMessageBatch(session, claim, s.logic)
	if err != nil {
		log.Error("topic-view process batch error", "err", err)
		return err
	}
	return nil
}

func (s *ViewsHandler) logic(ctx context.Context, msg *sarama.ConsumerMessage) error {
	canalMsg, err := ToCanalMessage(msg, "views")
	if err != nil {
		return err
	}

	// 浏览记录只写一次，正常只有 INSERT；
	// 运维清理产生的 DELETE 也要维护计数平衡
	switch canalMsg.Type {
	case INSERT:
		return s.handleChange(ctx, canalMsg, true)
	case DELETE:
		return s.handleChange(ctx, canalMsg, false)
	default:
		return nil
	}
}

func (s *ViewsHandler) handleChange(ctx context.Context, msg *CanalMessage, increment bool) error {
	row := msg.Data[0]
	targetID, targetKind := StrToUint64(row["target_id"]), StrVal(row["target_kind"])

	countPrefix, dirtyKey := viewKeys(targetKind)
	ExecAction(ctx, ActionParams{
		TargetID:       targetID,
		CountKeyPrefix: countPrefix,
		DirtyKey:       dirtyKey,
		IsIncrement:    increment,
	})

	log.InfoContext(ctx, "view record processed", "targetKind", targetKind, "targetID", targetID, "increment", increment)
	return nil
}
