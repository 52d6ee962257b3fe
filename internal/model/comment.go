package model

import (
	"time"
)

type CommentGroup string

const (
	CommentGroupArticle CommentGroup = "ARTICLE"
	CommentGroupPost    CommentGroup = "POST"
	CommentGroupProduct CommentGroup = "PRODUCT"
)

type CommentStatus string

const (
	CommentStatusActive CommentStatus = "ACTIVE"
	CommentStatusDelete CommentStatus = "DELETE"
)

// Comment 评论是追加写 + 软删除，不走 toggle 台账，
// 父实体的评论计数由 comment service 直接增减。
type Comment struct {
	ID             uint64        `gorm:"primaryKey"`
	MemberID       uint64        `gorm:"not null;index:idx_comments_member" json:"memberId"`
	CommentGroup   CommentGroup  `gorm:"type:varchar(16);not null;index:idx_comments_ref" json:"commentGroup"`
	CommentRefID   uint64        `gorm:"not null;index:idx_comments_ref" json:"commentRefId"`
	CommentStatus  CommentStatus `gorm:"type:varchar(16);not null;default:'ACTIVE'" json:"commentStatus"`
	CommentContent string        `gorm:"type:varchar(1000);not null" json:"commentContent"`
	CreatedAt      time.Time     `json:"createdAt"`
	UpdatedAt      time.Time     `json:"updatedAt"`

	Member Member `gorm:"foreignKey:MemberID;references:ID"`
}

func (Comment) TableName() string {
	return "comments"
}
