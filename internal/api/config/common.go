package config

// Config 配置主体
type Config struct {
	Server                  ServerConfig         `mapstructure:"server"`
	DB                      DBConfig             `mapstructure:"database"`
	Redis                   RedisConfig          `mapstructure:"redis"`
	Mongo                   MongoConfig          `mapstructure:"mongo"`
	MinIO                   MinIOConfig          `mapstructure:"minio"`
	Elastic                 ElasticConfig        `mapstructure:"elastic"`
	Kafka                   KafkaConfig          `mapstructure:"kafka"`
	Logstash                LogstashConfig       `mapstructure:"logstash"`
	KafkaEngagementConsumer KafkaConsumerBinding `mapstructure:"kafka_engagement_consumer"`
	KafkaViewConsumer       KafkaConsumerBinding `mapstructure:"kafka_view_consumer"`
	KafkaCommentConsumer    KafkaConsumerBinding `mapstructure:"kafka_comment_consumer"`
	KafkaProductConsumer    KafkaConsumerBinding `mapstructure:"kafka_product_consumer"`
}

// ServerConfig Server配置
type ServerConfig struct {
	Port int `mapstructure:"port"`
}

// DBConfig 数据库配置
type DBConfig struct {
	DSN         string `mapstructure:"dsn"`
	MaxIdle     int    `mapstructure:"max_idle"`
	MaxOpen     int    `mapstructure:"max_open"`
	MaxLifetime int    `mapstructure:"max_lifetime"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

// MongoConfig MongoDB配置
type MongoConfig struct {
	URL      string `mapstructure:"url"`
	Database string `mapstructure:"database"`
}

// MinIOConfig MinIO配置
type MinIOConfig struct {
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Bucket    string `mapstructure:"bucket"`
	UseSSL    bool   `mapstructure:"use_ssl"`
}

// ElasticConfig Elastic配置
type ElasticConfig struct {
	Address  string         `mapstructure:"address"`
	Username string         `mapstructure:"username"`
	Password string         `mapstructure:"password"`
	Indices  ElasticIndices `mapstructure:"indices"`
}

// ElasticIndices Elastic索引
type ElasticIndices struct {
	ProductIndex string `mapstructure:"product_index"`
}

type KafkaConfig struct {
	Brokers  []string       `mapstructure:"brokers"`
	Sasl     SaslConfig     `mapstructure:"sasl"`
	Consumer ConsumerConfig `mapstructure:"consumer"`
}

type SaslConfig struct {
	Enable   bool   `mapstructure:"enable"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

type ConsumerConfig struct {
	SessionTimeout    int `mapstructure:"session_timeout"`
	HeartbeatInterval int `mapstructure:"heartbeat_interval"`
	RebalanceTimeout  int `mapstructure:"rebalance_timeout"`
	MaxProcessingTime int `mapstructure:"max_processing_time"`
}

// LogstashConfig 远端日志收集配置
type LogstashConfig struct {
	Address string `mapstructure:"address"`
	Token   string `mapstructure:"token"`
	Index   string `mapstructure:"index"`
}

// KafkaConsumerBinding 单个消费组的 topic 绑定
type KafkaConsumerBinding struct {
	Topic   string `mapstructure:"topic"`
	GroupID string `mapstructure:"group_id"`
}
