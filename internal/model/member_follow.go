package model

import "time"

type MemberFollow struct {
	FollowerID  uint64    `gorm:"primaryKey" json:"followerId"`
	FollowingID uint64    `gorm:"primaryKey;index:idx_member_follows_following" json:"followingId"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (MemberFollow) TableName() string {
	return "member_follows"
}
