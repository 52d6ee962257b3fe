package dto

type ArticleCreateReq struct {
	ArticleCategory string `json:"articleCategory" binding:"required,oneof=CAREER ANNOUNCEMENTS KNOWLEDGE EVENTS"`
	ArticleTitle    string `json:"articleTitle" binding:"required,min=3,max=100"`
	ArticleContent  string `json:"articleContent" binding:"required,min=3"`
	ArticleImage    string `json:"articleImage" binding:"omitempty,max=512"`
}

type ArticleUpdateReq struct {
	ArticleStatus  string `json:"articleStatus" binding:"omitempty,oneof=ACTIVE DELETE"`
	ArticleTitle   string `json:"articleTitle" binding:"omitempty,min=3,max=100"`
	ArticleContent string `json:"articleContent" binding:"omitempty,min=3"`
	ArticleImage   string `json:"articleImage" binding:"omitempty,max=512"`
}

type ArticlesInquiry struct {
	PageReq
	Sort            string `form:"sort,default=createdAt"`
	Direction       string `form:"direction,default=DESC" binding:"omitempty,oneof=ASC DESC"`
	MemberID        uint64 `form:"memberId"`
	ArticleCategory string `form:"articleCategory" binding:"omitempty,oneof=CAREER ANNOUNCEMENTS KNOWLEDGE EVENTS"`
	Text            string `form:"text"`
}

type AllArticlesInquiry struct {
	PageReq
	Sort          string `form:"sort,default=createdAt"`
	Direction     string `form:"direction,default=DESC" binding:"omitempty,oneof=ASC DESC"`
	ArticleStatus string `form:"articleStatus" binding:"omitempty,oneof=ACTIVE DELETE"`
}

type ArticleDTO struct {
	ID              uint64 `json:"id"`
	MemberID        uint64 `json:"memberId"`
	ArticleCategory string `json:"articleCategory"`
	ArticleStatus   string `json:"articleStatus"`
	ArticleTitle    string `json:"articleTitle"`
	ArticleContent  string `json:"articleContent"`
	ArticleImage    string `json:"articleImage"`

	ArticleLikes    int `json:"articleLikes"`
	ArticleSaves    int `json:"articleSaves"`
	ArticleViews    int `json:"articleViews"`
	ArticleComments int `json:"articleComments"`

	MeLiked    MeEngagement `json:"meLiked"`
	MemberData *MemberDTO   `json:"memberData,omitempty"`

	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

type ArticlesDTO struct {
	List  []*ArticleDTO `json:"list"`
	Total int64         `json:"total"`
}
