package mongo

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	NotifyTypeLike    = "LIKE"
	NotifyTypeSave    = "SAVE"
	NotifyTypeFollow  = "FOLLOW"
	NotifyTypeComment = "COMMENT"
)

// NotificationModel 通知收件箱文档，由 CDC 消费端写入
type NotificationModel struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	MemberID   uint64             `bson:"member_id" json:"memberId"`     // 通知接收者
	ActorID    uint64             `bson:"actor_id" json:"actorId"`       // 动作发起者，匿名为 0
	ActorNick  string             `bson:"actor_nick" json:"actorNick"`   // 发起者昵称快照
	NotifyType string             `bson:"notify_type" json:"notifyType"` // LIKE / SAVE / FOLLOW / COMMENT
	TargetKind string             `bson:"target_kind" json:"targetKind"`
	TargetID   uint64             `bson:"target_id" json:"targetId"`
	IsRead     bool               `bson:"is_read" json:"isRead"`
	CreatedAt  time.Time          `bson:"created_at" json:"createdAt"`
}
