package config

// Config 配置主体
type Config struct {
	Server       ServerConfig       `mapstructure:"server"`
	DB           DBConfig           `mapstructure:"database"`
	Mongo        MongoConfig        `mapstructure:"mongo"`
	Redis        RedisConfig        `mapstructure:"redis"`
	MinIO        MinIOConfig        `mapstructure:"minio"`
	Elastic      ElasticConfig      `mapstructure:"elastic"`
	Logstash     LogstashConfig     `mapstructure:"logstash"`
	Notification NotificationConfig `mapstructure:"notification"`
	Upload       UploadConfig       `mapstructure:"upload"`
}

// ServerConfig Server配置
type ServerConfig struct {
	Port int `mapstructure:"port"`
}

// DBConfig 关系表存储（MySQL）配置
type DBConfig struct {
	DSN         string `mapstructure:"dsn"`
	MaxIdle     int    `mapstructure:"max_idle"`
	MaxOpen     int    `mapstructure:"max_open"`
	MaxLifetime int    `mapstructure:"max_lifetime"`
}

// MongoConfig 文档存储配置
type MongoConfig struct {
	URL             string `mapstructure:"url"`
	ComprehensiveDB string `mapstructure:"comprehensive_db"`
	StatisticsDB    string `mapstructure:"statistics_db"`
	JournalDB       string `mapstructure:"journal_db"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

// MinIOConfig MinIO配置
type MinIOConfig struct {
	InternalEndpoint string `mapstructure:"internal_endpoint"`
	ExternalEndpoint string `mapstructure:"external_endpoint"`
	AccessKey        string `mapstructure:"access_key"`
	SecretKey        string `mapstructure:"secret_key"`
	ImageBucket      string `mapstructure:"image_bucket"`
	AvatarBucket     string `mapstructure:"avatar_bucket"`
	InternalUseSSL   bool   `mapstructure:"internal_use_ssl"`
}

// ElasticConfig Elastic配置
type ElasticConfig struct {
	Address   string `mapstructure:"address"`
	Username  string `mapstructure:"username"`
	Password  string `mapstructure:"password"`
	PostIndex string `mapstructure:"post_index"`
}

// LogstashConfig 远程日志配置
type LogstashConfig struct {
	Address string `mapstructure:"address"`
	Index   string `mapstructure:"index"`
	Token   string `mapstructure:"token"`
}

// NotificationConfig 通知扇出策略：单次内容事件处理的艾特人数上限
type NotificationConfig struct {
	CreateCueLimit int `mapstructure:"create_cue_limit"`
	EditCueLimit   int `mapstructure:"edit_cue_limit"`
}

// UploadConfig 图片上传限制
type UploadConfig struct {
	MaxFileSize int64 `mapstructure:"max_file_size"`
}
