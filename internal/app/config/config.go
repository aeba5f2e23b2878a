package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config 应用配置
type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Lmstfy   LmstfyConfig   `mapstructure:"lmstfy"`
	Events   EventsConfig   `mapstructure:"events"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Mail     MailConfig     `mapstructure:"mail"`
	Auth     AuthConfig     `mapstructure:"auth"`
}

type AppConfig struct {
	Name          string `mapstructure:"name"`
	Env           string `mapstructure:"env"`
	LogLevel      string `mapstructure:"log_level"`
	NodeID        int64  `mapstructure:"node_id"`
	PublicBaseURL string `mapstructure:"public_base_url"`
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
}

// DatabaseConfig driver 取值 mysql | postgres
type DatabaseConfig struct {
	Driver string `mapstructure:"driver"`
	DSN    string `mapstructure:"dsn"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type LmstfyConfig struct {
	Host        string `mapstructure:"host"`
	Port        int    `mapstructure:"port"`
	Namespace   string `mapstructure:"namespace"`
	Token       string `mapstructure:"token"`
	NotifyQueue string `mapstructure:"notify_queue"`
	TTR         int    `mapstructure:"ttr"`
	Timeout     int    `mapstructure:"timeout"`
}

// EventsConfig driver 取值 redis | kafka | none
type EventsConfig struct {
	Driver  string   `mapstructure:"driver"`
	Channel string   `mapstructure:"channel"`
	Brokers []string `mapstructure:"brokers"`
	Topic   string   `mapstructure:"topic"`
}

// StorageConfig driver 取值 local | gridfs
type StorageConfig struct {
	Driver        string `mapstructure:"driver"`
	Dir           string `mapstructure:"dir"`
	MongoURI      string `mapstructure:"mongo_uri"`
	MongoDatabase string `mapstructure:"mongo_database"`
	Bucket        string `mapstructure:"bucket"`
	MaxBytes      int64  `mapstructure:"max_bytes"`
}

type MailConfig struct {
	Host       string `mapstructure:"host"`
	Port       int    `mapstructure:"port"`
	Username   string `mapstructure:"username"`
	Password   string `mapstructure:"password"`
	From       string `mapstructure:"from"`
	OpsMailbox string `mapstructure:"ops_mailbox"`
}

type AuthConfig struct {
	JWTSecret string        `mapstructure:"jwt_secret"`
	TokenTTL  time.Duration `mapstructure:"token_ttl"`
}

// EnvPrefix 环境变量前缀，例如 TOURSHOP_DATABASE_DSN 覆盖 database.dsn
const EnvPrefix = "TOURSHOP"

var defaults = map[string]interface{}{
	"app.name":               "tourshop",
	"app.env":                "dev",
	"app.log_level":          "info",
	"app.node_id":            1,
	"app.public_base_url":    "http://localhost:8080",
	"server.port":            "8080",
	"database.driver":        "mysql",
	"database.dsn":           "",
	"redis.addr":             "",
	"redis.password":         "",
	"redis.db":               0,
	"lmstfy.host":            "",
	"lmstfy.port":            7777,
	"lmstfy.namespace":       "tourshop",
	"lmstfy.token":           "",
	"lmstfy.notify_queue":    "order_notifications",
	"lmstfy.ttr":             30,
	"lmstfy.timeout":         3,
	"events.driver":          "none",
	"events.channel":         "tourshop:order-events",
	"events.brokers":         []string{},
	"events.topic":           "order-events",
	"storage.driver":         "local",
	"storage.dir":            "./uploads/receipts",
	"storage.mongo_uri":      "",
	"storage.mongo_database": "tourshop",
	"storage.bucket":         "receipts",
	"storage.max_bytes":      5 << 20,
	"mail.host":              "",
	"mail.port":              587,
	"mail.username":          "",
	"mail.password":          "",
	"mail.from":              "",
	"mail.ops_mailbox":       "",
	"auth.jwt_secret":        "",
	"auth.token_ttl":         "24h",
}

// Load 从配置文件加载配置，.env 与 TOURSHOP_* 环境变量优先
func Load(configPath string) (*Config, error) {
	// .env 不存在时忽略
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env failed: %w", err)
	}

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config failed: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config failed: %w", err)
	}

	cfg.App.PublicBaseURL = strings.TrimSuffix(cfg.App.PublicBaseURL, "/")
	return &cfg, nil
}

// LoadDefault 加载默认配置文件路径
func LoadDefault() (*Config, error) {
	return Load("config/config.yaml")
}

// Validate 验证 apiserver 所需配置
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "mysql", "postgres":
	default:
		return fmt.Errorf("database driver must be mysql or postgres, got %q", c.Database.Driver)
	}
	if c.Database.DSN == "" {
		return fmt.Errorf("database dsn is required")
	}
	if err := c.validateQueue(); err != nil {
		return err
	}
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("auth jwt_secret is required")
	}
	if c.Mail.OpsMailbox == "" {
		return fmt.Errorf("mail ops_mailbox is required")
	}

	switch c.Events.Driver {
	case "none", "":
	case "redis":
		if c.Redis.Addr == "" {
			return fmt.Errorf("redis addr is required for redis events")
		}
	case "kafka":
		if len(c.Events.Brokers) == 0 || c.Events.Topic == "" {
			return fmt.Errorf("events brokers and topic are required for kafka events")
		}
	default:
		return fmt.Errorf("unknown events driver %q", c.Events.Driver)
	}

	switch c.Storage.Driver {
	case "local":
		if c.Storage.Dir == "" {
			return fmt.Errorf("storage dir is required")
		}
	case "gridfs":
		if c.Storage.MongoURI == "" {
			return fmt.Errorf("storage mongo_uri is required for gridfs")
		}
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}
	return nil
}

// ValidateNotifier 验证 notifier 所需配置
func (c *Config) ValidateNotifier() error {
	if err := c.validateQueue(); err != nil {
		return err
	}
	if c.Mail.Host == "" || c.Mail.From == "" {
		return fmt.Errorf("mail host and from are required")
	}
	return nil
}

func (c *Config) validateQueue() error {
	if c.Lmstfy.Host == "" {
		return fmt.Errorf("lmstfy host is required")
	}
	if c.Lmstfy.Token == "" {
		return fmt.Errorf("lmstfy token is required")
	}
	if c.Lmstfy.NotifyQueue == "" {
		return fmt.Errorf("lmstfy notify_queue is required")
	}
	return nil
}
