package dto

type CommentCreateReq struct {
	CommentGroup   string `json:"commentGroup" binding:"required,oneof=ARTICLE POST PRODUCT"`
	CommentRefID   uint64 `json:"commentRefId" binding:"required"`
	CommentContent string `json:"commentContent" binding:"required,min=1,max=1000"`
}

type CommentUpdateReq struct {
	CommentID      uint64 `json:"commentId" binding:"required"`
	CommentContent string `json:"commentContent" binding:"required,min=1,max=1000"`
}

type CommentsInquiry struct {
	PageReq
	Sort         string `form:"sort,default=createdAt"`
	Direction    string `form:"direction,default=DESC" binding:"omitempty,oneof=ASC DESC"`
	CommentGroup string `form:"commentGroup" binding:"required,oneof=ARTICLE POST PRODUCT"`
	CommentRefID uint64 `form:"commentRefId" binding:"required"`
}

type CommentDTO struct {
	ID             uint64 `json:"id"`
	MemberID       uint64 `json:"memberId"`
	CommentGroup   string `json:"commentGroup"`
	CommentRefID   uint64 `json:"commentRefId"`
	CommentStatus  string `json:"commentStatus"`
	CommentContent string `json:"commentContent"`

	MemberData *MemberDTO `json:"memberData,omitempty"`

	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

type CommentsDTO struct {
	List  []*CommentDTO `json:"list"`
	Total int64         `json:"total"`
}
