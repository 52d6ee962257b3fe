package wire

import (
	"Cuben/internal/api"
	"Cuben/internal/api/config"
	"Cuben/internal/api/handler"
	"Cuben/internal/job"
	"Cuben/internal/pkg/cron"
	"Cuben/internal/pkg/es"
	"Cuben/internal/pkg/kafka"
	pkgmongo "Cuben/internal/pkg/mongo"
	"Cuben/internal/repository"
	"Cuben/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router       *gin.Engine
	DB           *gorm.DB
	KafkaManager *kafka.ConsumerManager
	CronMgr      *cron.Manager
}

func BuildApplication(db *gorm.DB, mongoDB *mongo.Database, cfg *config.Config) (*ApplicationContainer, error) {
	memberRepo := repository.NewMemberRepo(db)
	productRepo := repository.NewProductRepo(db)
	articleRepo := repository.NewArticleRepo(db)
	postRepo := repository.NewPostRepo(db)
	commentRepo := repository.NewCommentRepo(db)
	engagementRepo := repository.NewEngagementRepo(db)
	viewRepo := repository.NewViewRepo(db)
	followRepo := repository.NewMemberFollowRepo(db)

	notificationRepo := pkgmongo.NewNotificationRepo(mongoDB)
	productESRepo := es.NewProductRepo(es.Client)

	engagementService := service.NewEngagementService(engagementRepo, viewRepo)
	memberService := service.NewMemberService(memberRepo, followRepo, engagementService)
	productService := service.NewProductService(productRepo, memberRepo, engagementService, productESRepo)
	articleService := service.NewArticleService(articleRepo, memberRepo, engagementService)
	postService := service.NewPostService(postRepo, memberRepo, engagementService)
	commentService := service.NewCommentService(commentRepo, productRepo, articleRepo, postRepo, memberRepo)
	followService := service.NewFollowService(followRepo, memberRepo, engagementService)
	notificationService := service.NewNotificationService(notificationRepo)

	handlers := &api.HandlersGroup{
		MemberHandler:       handler.NewMemberHandler(memberService),
		ProductHandler:      handler.NewProductHandler(productService),
		ArticleHandler:      handler.NewArticleHandler(articleService),
		PostHandler:         handler.NewPostHandler(postService),
		CommentHandler:      handler.NewCommentHandler(commentService),
		FollowHandler:       handler.NewFollowHandler(followService),
		NotificationHandler: handler.NewNotificationHandler(notificationService),
		MediaHandler:        handler.NewMediaHandler(),
	}

	router := api.SetupRouter(handlers)

	kafkaMgr, err := kafka.NewConsumerManager(cfg, memberRepo, productRepo, articleRepo, postRepo, notificationRepo, productESRepo)
	if err != nil {
		return nil, err
	}

	recountJob := job.NewCounterRecountJob(engagementRepo, viewRepo, commentRepo, productRepo, articleRepo, postRepo, memberRepo)
	cronMgr := cron.NewCronManager(recountJob)

	return &ApplicationContainer{
		Router:       router,
		DB:           db,
		KafkaManager: kafkaMgr,
		CronMgr:      cronMgr,
	}, nil
}
