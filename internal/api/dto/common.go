package dto

type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// MeEngagement 当前请求者对某个目标的点赞/收藏状态，请求级数据，不落库
type MeEngagement struct {
	Liked bool `json:"liked"`
	Saved bool `json:"saved"`
}

// PageReq 通用分页参数
type PageReq struct {
	Page  int `form:"page,default=1" binding:"omitempty,min=1"`
	Limit int `form:"limit,default=20" binding:"omitempty,min=1,max=100"`
}

// CounterDTO 点赞/收藏/浏览接口返回的最新计数
type CounterDTO struct {
	Count int `json:"count"`
}
