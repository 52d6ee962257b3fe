package model

import (
	"time"
)

type PostStatus string

const (
	PostStatusActive  PostStatus = "ACTIVE"
	PostStatusDelete  PostStatus = "DELETE"
	PostStatusBlocked PostStatus = "BLOCKED"
)

type Post struct {
	ID          uint64     `gorm:"primaryKey"`
	MemberID    uint64     `gorm:"not null;index:idx_posts_member" json:"memberId"`
	PostStatus  PostStatus `gorm:"type:varchar(16);not null;default:'ACTIVE';index:idx_posts_status" json:"postStatus"`
	PostTitle   string     `gorm:"type:varchar(100);not null" json:"postTitle"`
	PostContent string     `gorm:"type:text;not null" json:"postContent"`
	PostImages  []string   `gorm:"type:json;serializer:json" json:"postImages"`

	PostLikes    int `gorm:"not null;default:0" json:"postLikes"`
	PostSaves    int `gorm:"not null;default:0" json:"postSaves"`
	PostViews    int `gorm:"not null;default:0" json:"postViews"`
	PostComments int `gorm:"not null;default:0" json:"postComments"`

	BlockedAt *time.Time `json:"blockedAt"`
	DeletedAt *time.Time `json:"deletedAt"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`

	Member Member `gorm:"foreignKey:MemberID;references:ID"`
}

func (Post) TableName() string {
	return "posts"
}
