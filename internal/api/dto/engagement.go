package dto

// EngagementStateDTO 点赞/收藏切换后的最新状态与计数
type EngagementStateDTO struct {
	TargetID uint64 `json:"targetId"`
	Modifier int    `json:"modifier"`
	Count    int    `json:"count"`
}

// ViewStateDTO 浏览记录接口返回
type ViewStateDTO struct {
	TargetID uint64 `json:"targetId"`
	IsNew    bool   `json:"isNew"`
	Count    int    `json:"count"`
}
