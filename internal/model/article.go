package model

import (
	"time"
)

type ArticleCategory string

const (
	ArticleCareer        ArticleCategory = "CAREER"
	ArticleAnnouncements ArticleCategory = "ANNOUNCEMENTS"
	ArticleKnowledge     ArticleCategory = "KNOWLEDGE"
	ArticleEvents        ArticleCategory = "EVENTS"
)

type ArticleStatus string

const (
	ArticleStatusActive ArticleStatus = "ACTIVE"
	ArticleStatusDelete ArticleStatus = "DELETE"
)

type Article struct {
	ID              uint64          `gorm:"primaryKey"`
	MemberID        uint64          `gorm:"not null;index:idx_articles_member" json:"memberId"`
	ArticleCategory ArticleCategory `gorm:"type:varchar(16);not null" json:"articleCategory"`
	ArticleStatus   ArticleStatus   `gorm:"type:varchar(16);not null;default:'ACTIVE';index:idx_articles_status" json:"articleStatus"`
	ArticleTitle    string          `gorm:"type:varchar(100);not null" json:"articleTitle"`
	ArticleContent  string          `gorm:"type:text;not null" json:"articleContent"`
	ArticleImage    string          `gorm:"type:varchar(512)" json:"articleImage"`

	ArticleLikes    int `gorm:"not null;default:0" json:"articleLikes"`
	ArticleSaves    int `gorm:"not null;default:0" json:"articleSaves"`
	ArticleViews    int `gorm:"not null;default:0" json:"articleViews"`
	ArticleComments int `gorm:"not null;default:0" json:"articleComments"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Member Member `gorm:"foreignKey:MemberID;references:ID"`
}

func (Article) TableName() string {
	return "articles"
}
