package model

import (
	"time"
)

// View 浏览台账，只增不删。ViewerID 为 0 表示匿名访客，
// 所有匿名浏览共用 0 这一个键，同一目标只会落一条匿名记录。
type View struct {
	ID         uint64     `gorm:"primaryKey"`
	ViewerID   uint64     `gorm:"not null;default:0;uniqueIndex:idx_views_viewer_target" json:"viewerId"`
	TargetID   uint64     `gorm:"not null;uniqueIndex:idx_views_viewer_target;index:idx_views_target" json:"targetId"`
	TargetKind TargetKind `gorm:"type:varchar(16);not null;uniqueIndex:idx_views_viewer_target;index:idx_views_target" json:"targetKind"`
	CreatedAt  time.Time  `json:"createdAt"`
}

func (View) TableName() string {
	return "views"
}
