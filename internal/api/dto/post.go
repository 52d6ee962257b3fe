package dto

type PostCreateReq struct {
	PostTitle   string   `json:"postTitle" binding:"required,min=3,max=100"`
	PostContent string   `json:"postContent" binding:"required,min=3"`
	PostImages  []string `json:"postImages" binding:"omitempty,max=10"`
}

type PostUpdateReq struct {
	PostStatus  string   `json:"postStatus" binding:"omitempty,oneof=ACTIVE DELETE"`
	PostTitle   string   `json:"postTitle" binding:"omitempty,min=3,max=100"`
	PostContent string   `json:"postContent" binding:"omitempty,min=3"`
	PostImages  []string `json:"postImages" binding:"omitempty,max=10"`
}

type PostAdminUpdateReq struct {
	PostID     uint64 `json:"postId" binding:"required"`
	PostStatus string `json:"postStatus" binding:"required,oneof=ACTIVE DELETE BLOCKED"`
}

type PostsInquiry struct {
	PageReq
	Sort      string `form:"sort,default=createdAt"`
	Direction string `form:"direction,default=DESC" binding:"omitempty,oneof=ASC DESC"`
	MemberID  uint64 `form:"memberId"`
	Text      string `form:"text"`
}

type AllPostsInquiry struct {
	PageReq
	Sort       string `form:"sort,default=createdAt"`
	Direction  string `form:"direction,default=DESC" binding:"omitempty,oneof=ASC DESC"`
	PostStatus string `form:"postStatus" binding:"omitempty,oneof=ACTIVE DELETE BLOCKED"`
}

type PostDTO struct {
	ID          uint64   `json:"id"`
	MemberID    uint64   `json:"memberId"`
	PostStatus  string   `json:"postStatus"`
	PostTitle   string   `json:"postTitle"`
	PostContent string   `json:"postContent"`
	PostImages  []string `json:"postImages"`

	PostLikes    int `json:"postLikes"`
	PostSaves    int `json:"postSaves"`
	PostViews    int `json:"postViews"`
	PostComments int `json:"postComments"`

	MeLiked    MeEngagement `json:"meLiked"`
	MemberData *MemberDTO   `json:"memberData,omitempty"`

	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

type PostsDTO struct {
	List  []*PostDTO `json:"list"`
	Total int64      `json:"total"`
}
