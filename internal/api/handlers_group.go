package api

import "Cuben/internal/api/handler"

// HandlersGroup 封装了所有已初始化的 Handler 实例
type HandlersGroup struct {
	MemberHandler       *handler.MemberHandler
	ProductHandler      *handler.ProductHandler
	ArticleHandler      *handler.ArticleHandler
	PostHandler         *handler.PostHandler
	CommentHandler      *handler.CommentHandler
	FollowHandler       *handler.FollowHandler
	NotificationHandler *handler.NotificationHandler
	MediaHandler        *handler.MediaHandler
}
