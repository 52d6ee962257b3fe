package dto

type SignupReq struct {
	MemberNick     string `json:"memberNick" binding:"required,min=3,max=50"`
	MemberPhone    string `json:"memberPhone" binding:"required,min=5,max=30"`
	MemberPassword string `json:"memberPassword" binding:"required,min=6,max=64"`
	MemberFullName string `json:"memberFullName" binding:"omitempty,max=100"`
	MemberType     string `json:"memberType" binding:"omitempty,oneof=USER AGENT"`
}

type LoginReq struct {
	MemberNick     string `json:"memberNick" binding:"required"`
	MemberPassword string `json:"memberPassword" binding:"required"`
}

type MemberUpdateReq struct {
	MemberNick     string `json:"memberNick" binding:"omitempty,min=3,max=50"`
	MemberFullName string `json:"memberFullName" binding:"omitempty,max=100"`
	MemberImage    string `json:"memberImage" binding:"omitempty,max=512"`
	MemberDesc     string `json:"memberDesc" binding:"omitempty,max=500"`
}

type MemberAdminUpdateReq struct {
	MemberID     uint64 `json:"memberId" binding:"required"`
	MemberStatus string `json:"memberStatus" binding:"omitempty,oneof=ACTIVE BLOCK DELETE"`
	MemberType   string `json:"memberType" binding:"omitempty,oneof=USER AGENT ADMIN"`
}

type AgentsInquiry struct {
	PageReq
	Sort      string `form:"sort,default=createdAt"`
	Direction string `form:"direction,default=DESC" binding:"omitempty,oneof=ASC DESC"`
	Text      string `form:"text"`
}

type MembersInquiry struct {
	PageReq
	Sort         string `form:"sort,default=createdAt"`
	Direction    string `form:"direction,default=DESC" binding:"omitempty,oneof=ASC DESC"`
	MemberStatus string `form:"memberStatus" binding:"omitempty,oneof=ACTIVE BLOCK DELETE"`
	MemberType   string `form:"memberType" binding:"omitempty,oneof=USER AGENT ADMIN"`
	Text         string `form:"text"`
}

// MemberDTO 嵌在内容行里的作者信息
type MemberDTO struct {
	ID             uint64 `json:"id"`
	MemberType     string `json:"memberType"`
	MemberStatus   string `json:"memberStatus"`
	MemberNick     string `json:"memberNick"`
	MemberFullName string `json:"memberFullName"`
	MemberImage    string `json:"memberImage"`
	MemberDesc     string `json:"memberDesc"`

	MemberProducts   int `json:"memberProducts"`
	MemberArticles   int `json:"memberArticles"`
	MemberPosts      int `json:"memberPosts"`
	MemberFollowers  int `json:"memberFollowers"`
	MemberFollowings int `json:"memberFollowings"`
	MemberLikes      int `json:"memberLikes"`
	MemberViews      int `json:"memberViews"`
	MemberComments   int `json:"memberComments"`

	MeLiked    MeEngagement `json:"meLiked"`
	MeFollowed bool         `json:"meFollowed"`
	CreatedAt  string       `json:"createdAt"`

	AccessToken string `json:"accessToken,omitempty"`
}

type MembersDTO struct {
	List  []*MemberDTO `json:"list"`
	Total int64        `json:"total"`
}
