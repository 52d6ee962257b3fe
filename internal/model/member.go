package model

import (
	"time"
)

type MemberType string

const (
	MemberUser  MemberType = "USER"
	MemberAgent MemberType = "AGENT"
	MemberAdmin MemberType = "ADMIN"
)

type MemberStatus string

const (
	MemberStatusActive MemberStatus = "ACTIVE"
	MemberStatusBlock  MemberStatus = "BLOCK"
	MemberStatusDelete MemberStatus = "DELETE"
)

type Member struct {
	ID             uint64       `gorm:"primaryKey"`
	MemberType     MemberType   `gorm:"type:varchar(16);not null;default:'USER'" json:"memberType"`
	MemberStatus   MemberStatus `gorm:"type:varchar(16);not null;default:'ACTIVE';index:idx_members_status" json:"memberStatus"`
	MemberNick     string       `gorm:"type:varchar(50);not null;uniqueIndex:idx_members_nick" json:"memberNick"`
	MemberFullName string       `gorm:"type:varchar(100)" json:"memberFullName"`
	MemberPhone    string       `gorm:"type:varchar(30);not null;uniqueIndex:idx_members_phone" json:"memberPhone"`
	MemberPassword string       `gorm:"type:varchar(255);not null" json:"-"`
	MemberImage    string       `gorm:"type:varchar(512)" json:"memberImage"`
	MemberDesc     string       `gorm:"type:varchar(500)" json:"memberDesc"`

	// 冗余计数，只允许 AdjustCounter 修改
	MemberProducts   int `gorm:"not null;default:0" json:"memberProducts"`
	MemberArticles   int `gorm:"not null;default:0" json:"memberArticles"`
	MemberPosts      int `gorm:"not null;default:0" json:"memberPosts"`
	MemberFollowers  int `gorm:"not null;default:0" json:"memberFollowers"`
	MemberFollowings int `gorm:"not null;default:0" json:"memberFollowings"`
	MemberLikes      int `gorm:"not null;default:0" json:"memberLikes"`
	MemberViews      int `gorm:"not null;default:0" json:"memberViews"`
	MemberComments   int `gorm:"not null;default:0" json:"memberComments"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Member) TableName() string {
	return "members"
}
