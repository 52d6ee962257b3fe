package kafka

import (
	"Cuben/internal/api/config"
	"Cuben/internal/pkg/es"
	"Cuben/internal/pkg/mongo"
	"Cuben/internal/repository"
	"context"
	log "log/slog"

	"github.com/IBM/sarama"
)

// ConsumerManager 管理所有 Kafka 消费者
type ConsumerManager struct {
	engagementConsumer sarama.ConsumerGroup
	engagementHandler  sarama.ConsumerGroupHandler

	viewConsumer sarama.ConsumerGroup
	viewHandler  sarama.ConsumerGroupHandler

	commentConsumer sarama.ConsumerGroup
	commentHandler  sarama.ConsumerGroupHandler

	productConsumer sarama.ConsumerGroup
	productHandler  sarama.ConsumerGroupHandler
}

// NewConsumerManager 构造函数
func NewConsumerManager(
	cfg *config.Config,
	memberRepo repository.MemberRepo,
	productRepo repository.ProductRepo,
	articleRepo repository.ArticleRepo,
	postRepo repository.PostRepo,
	notifyRepo mongo.NotificationRepo,
	productESRepo es.ProductRepo,
) (*ConsumerManager, error) {
	saramaCfg := newSaramaConfig(cfg.Kafka)

	engagementConsumer, err := sarama.NewConsumerGroup(cfg.Kafka.Brokers, cfg.KafkaEngagementConsumer.GroupID, saramaCfg)
	if err != nil {
		return nil, err
	}
	engagementHandler := NewEngagementHandler(memberRepo, productRepo, articleRepo, postRepo, notifyRepo)

	viewConsumer, err := sarama.NewConsumerGroup(cfg.Kafka.Brokers, cfg.KafkaViewConsumer.GroupID, saramaCfg)
	if err != nil {
		return nil, err
	}
	viewHandler := NewViewsHandler()

	commentConsumer, err := sarama.NewConsumerGroup(cfg.Kafka.Brokers, cfg.KafkaCommentConsumer.GroupID, saramaCfg)
	if err != nil {
		return nil, err
	}
	commentHandler := NewCommentsHandler(memberRepo, productRepo, articleRepo, postRepo, notifyRepo)

	productConsumer, err := sarama.NewConsumerGroup(cfg.Kafka.Brokers, cfg.KafkaProductConsumer.GroupID, saramaCfg)
	if err != nil {
		return nil, err
	}
	productHandler := NewProductsHandler(productESRepo)

	return &ConsumerManager{
		engagementConsumer: engagementConsumer,
		engagementHandler:  engagementHandler,
		viewConsumer:       viewConsumer,
		viewHandler:        viewHandler,
		commentConsumer:    commentConsumer,
		commentHandler:     commentHandler,
		productConsumer:    productConsumer,
		productHandler:     productHandler,
	}, nil
}

// Start 启动所有消费者
func (m *ConsumerManager) Start(ctx context.Context, cfg *config.Config) error {
	// 启动 Engagement Consumer
	go func() {
		topic := cfg.KafkaEngagementConsumer.Topic
		log.Info("Engagement consumer started", "topic", topic)
		for {
			if err := m.engagementConsumer.Consume(ctx, []string{topic}, m.engagementHandler); err != nil {
				log.Error("Error from consumer", "err", err)
			}
			if ctx.Err() != nil {
				return
			}
		}
	}()

	// 启动 View Consumer
	go func() {
		topic := cfg.KafkaViewConsumer.Topic
		log.Info("View consumer started", "topic", topic)
		for {
			if err := m.viewConsumer.Consume(ctx, []string{topic}, m.viewHandler); err != nil {
				log.Error("Error from consumer", "err", err)
			}
			if ctx.Err() != nil {
				return
			}
		}
	}()

	// 启动 Comment Consumer
	go func() {
		topic := cfg.KafkaCommentConsumer.Topic
		log.Info("Comment consumer started", "topic", topic)
		for {
			if err := m.commentConsumer.Consume(ctx, []string{topic}, m.commentHandler); err != nil {
				log.Error("Error from consumer", "err", err)
			}
			if ctx.Err() != nil {
				return
			}
		}
	}()

	// 启动 Product Consumer
	go func() {
		topic := cfg.KafkaProductConsumer.Topic
		log.Info("Product consumer started", "topic", topic)
		for {
			if err := m.productConsumer.Consume(ctx, []string{topic}, m.productHandler); err != nil {
				log.Error("Error from consumer", "err", err)
			}
			if ctx.Err() != nil {
				return
			}
		}
	}()

	<-ctx.Done()
	log.Info("Kafka Manager shutting down...")

	if err := m.engagementConsumer.Close(); err != nil {
		log.Error("Failed to close engagement consumer", "err", err)
	}
	if err := m.viewConsumer.Close(); err != nil {
		log.Error("Failed to close view consumer", "err", err)
	}
	if err := m.commentConsumer.Close(); err != nil {
		log.Error("Failed to close comment consumer", "err", err)
	}
	if err := m.productConsumer.Close(); err != nil {
		log.Error("Failed to close product consumer", "err", err)
	}

	return nil
}
