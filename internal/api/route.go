package api

import (
	"Cuben/internal/api/middleware"
	"Cuben/internal/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRouter(group *HandlersGroup) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	// TraceId & Logger & CORS
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.AuditMiddleware())
	r.Use(middleware.CORSMiddleware())
	logger.SetupGin(r)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"Code":    200,
				"Message": "pong",
				"Data":    nil,
			})
		})

		memberGroup := apiGroup.Group("/member")
		{
			memberGroup.POST("/signup", group.MemberHandler.Signup)
			memberGroup.POST("/login", group.MemberHandler.Login)

			authOptGroup := memberGroup.Group("")
			authOptGroup.Use(middleware.AuthOptionalMiddleware())
			{
				authOptGroup.GET("/agents", group.MemberHandler.GetAgents)
				authOptGroup.GET("/:member_id", group.MemberHandler.GetMember)
			}

			authGroup := memberGroup.Group("")
			authGroup.Use(middleware.AuthMiddleware())
			{
				authGroup.POST("/logout", group.MemberHandler.Logout)
				authGroup.GET("", group.MemberHandler.GetMe)
				authGroup.PUT("", group.MemberHandler.UpdateMe)
				authGroup.POST("/like/:member_id", group.MemberHandler.LikeMember)
			}

			// 需要登录 & ADMIN 类型
			adminGroup := authGroup.Group("/admin")
			adminGroup.Use(middleware.CheckMemberTypes("ADMIN"))
			{
				adminGroup.GET("/list", group.MemberHandler.GetAllMembers)
				adminGroup.PUT("", group.MemberHandler.UpdateMemberByAdmin)
			}
		}

		productGroup := apiGroup.Group("/products")
		{
			authOptGroup := productGroup.Group("")
			authOptGroup.Use(middleware.AuthOptionalMiddleware())
			{
				authOptGroup.GET("", group.ProductHandler.GetProducts)
				authOptGroup.GET("/search", group.ProductHandler.SearchProducts)
				authOptGroup.GET("/detail/:product_id", group.ProductHandler.GetProduct)
				authOptGroup.POST("/view/:product_id", group.ProductHandler.ViewProduct)
			}

			authGroup := productGroup.Group("")
			authGroup.Use(middleware.AuthMiddleware())
			{
				authGroup.POST("", middleware.CheckMemberTypes("AGENT", "ADMIN"), group.ProductHandler.CreateProduct)
				authGroup.PUT("/:product_id", group.ProductHandler.UpdateProduct)
				authGroup.POST("/like/:product_id", group.ProductHandler.LikeProduct)
				authGroup.POST("/save/:product_id", group.ProductHandler.SaveProduct)
				authGroup.GET("/favorites", group.ProductHandler.GetFavoriteProducts)
				authGroup.GET("/saved", group.ProductHandler.GetSavedProducts)
				authGroup.GET("/visited", group.ProductHandler.GetVisitedProducts)
			}

			adminGroup := authGroup.Group("/admin")
			adminGroup.Use(middleware.CheckMemberTypes("ADMIN"))
			{
				adminGroup.GET("/list", group.ProductHandler.GetAllProducts)
				adminGroup.PUT("/:product_id", group.ProductHandler.UpdateProductByAdmin)
				adminGroup.DELETE("/:product_id", group.ProductHandler.RemoveProductByAdmin)
			}
		}

		articleGroup := apiGroup.Group("/articles")
		{
			authOptGroup := articleGroup.Group("")
			authOptGroup.Use(middleware.AuthOptionalMiddleware())
			{
				authOptGroup.GET("", group.ArticleHandler.GetArticles)
				authOptGroup.GET("/detail/:article_id", group.ArticleHandler.GetArticle)
				authOptGroup.POST("/view/:article_id", group.ArticleHandler.ViewArticle)
			}

			authGroup := articleGroup.Group("")
			authGroup.Use(middleware.AuthMiddleware())
			{
				authGroup.POST("", group.ArticleHandler.CreateArticle)
				authGroup.PUT("/:article_id", group.ArticleHandler.UpdateArticle)
				authGroup.POST("/like/:article_id", group.ArticleHandler.LikeArticle)
				authGroup.POST("/save/:article_id", group.ArticleHandler.SaveArticle)
			}

			adminGroup := authGroup.Group("/admin")
			adminGroup.Use(middleware.CheckMemberTypes("ADMIN"))
			{
				adminGroup.GET("/list", group.ArticleHandler.GetAllArticles)
				adminGroup.PUT("/:article_id", group.ArticleHandler.UpdateArticleByAdmin)
			}
		}

		postGroup := apiGroup.Group("/posts")
		{
			authOptGroup := postGroup.Group("")
			authOptGroup.Use(middleware.AuthOptionalMiddleware())
			{
				authOptGroup.GET("", group.PostHandler.GetPosts)
				authOptGroup.GET("/detail/:post_id", group.PostHandler.GetPost)
				authOptGroup.POST("/view/:post_id", group.PostHandler.ViewPost)
			}

			authGroup := postGroup.Group("")
			authGroup.Use(middleware.AuthMiddleware())
			{
				authGroup.POST("", group.PostHandler.CreatePost)
				authGroup.PUT("/:post_id", group.PostHandler.UpdatePost)
				authGroup.POST("/like/:post_id", group.PostHandler.LikePost)
				authGroup.POST("/save/:post_id", group.PostHandler.SavePost)
			}

			adminGroup := authGroup.Group("/admin")
			adminGroup.Use(middleware.CheckMemberTypes("ADMIN"))
			{
				adminGroup.GET("/list", group.PostHandler.GetAllPosts)
				adminGroup.PUT("", group.PostHandler.UpdatePostByAdmin)
			}
		}

		commentGroup := apiGroup.Group("/comments")
		{
			commentGroup.GET("", group.CommentHandler.GetComments)

			authGroup := commentGroup.Group("")
			authGroup.Use(middleware.AuthMiddleware())
			{
				authGroup.POST("", group.CommentHandler.CreateComment)
				authGroup.PUT("", group.CommentHandler.UpdateComment)
				authGroup.DELETE("/:comment_id", group.CommentHandler.DeleteComment)
			}
		}

		followGroup := apiGroup.Group("/follow")
		followGroup.Use(middleware.AuthMiddleware())
		{
			followGroup.POST("/:member_id", group.FollowHandler.Follow)
			followGroup.DELETE("/:member_id", group.FollowHandler.Unfollow)
			followGroup.GET("/followers/:member_id", group.FollowHandler.GetFollowers)
			followGroup.GET("/followings/:member_id", group.FollowHandler.GetFollowings)
		}

		notificationGroup := apiGroup.Group("/notifications")
		notificationGroup.Use(middleware.AuthMiddleware())
		{
			notificationGroup.GET("", group.NotificationHandler.GetNotifications)
			notificationGroup.POST("/read", group.NotificationHandler.MarkRead)
			notificationGroup.POST("/read/all", group.NotificationHandler.MarkAllRead)
		}

		mediaGroup := apiGroup.Group("/media")
		{
			mediaGroup.Use(middleware.AuthMiddleware())
			mediaGroup.POST("/upload", group.MediaHandler.Upload)
		}
	}

	return r
}
