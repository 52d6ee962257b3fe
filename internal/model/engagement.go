package model

import (
	"time"
)

type TargetKind string

const (
	TargetMember  TargetKind = "MEMBER"
	TargetArticle TargetKind = "ARTICLE"
	TargetPost    TargetKind = "POST"
	TargetProduct TargetKind = "PRODUCT"
)

type EngagementAction string

const (
	ActionLike EngagementAction = "LIKE"
	ActionSave EngagementAction = "SAVE"
)

// Engagement 点赞/收藏台账，一条记录对应一次有效的 Like 或 Save。
// (member_id, target_id, target_kind, action) 全局唯一，toggle 只做插入和删除。
type Engagement struct {
	ID         uint64           `gorm:"primaryKey"`
	MemberID   uint64           `gorm:"not null;uniqueIndex:idx_engagements_tuple" json:"memberId"`
	TargetID   uint64           `gorm:"not null;uniqueIndex:idx_engagements_tuple;index:idx_engagements_target" json:"targetId"`
	TargetKind TargetKind       `gorm:"type:varchar(16);not null;uniqueIndex:idx_engagements_tuple;index:idx_engagements_target" json:"targetKind"`
	Action     EngagementAction `gorm:"type:varchar(16);not null;uniqueIndex:idx_engagements_tuple" json:"action"`
	CreatedAt  time.Time        `json:"createdAt"`
}

func (Engagement) TableName() string {
	return "engagements"
}
