package dto

type NotificationsInquiry struct {
	PageReq
	UnreadOnly bool `form:"unreadOnly"`
}

type NotificationReadReq struct {
	NotificationIDs []string `json:"notificationIds" binding:"required,min=1"`
}

type NotificationDTO struct {
	ID         string `json:"id"`
	MemberID   uint64 `json:"memberId"`
	ActorID    uint64 `json:"actorId"`
	ActorNick  string `json:"actorNick"`
	NotifyType string `json:"notifyType"`
	TargetKind string `json:"targetKind"`
	TargetID   uint64 `json:"targetId"`
	NotifyRead bool   `json:"notifyRead"`
	CreatedAt  string `json:"createdAt"`
}

type NotificationsDTO struct {
	List   []*NotificationDTO `json:"list"`
	Total  int64              `json:"total"`
	Unread int64              `json:"unread"`
}
