package config

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/cloudwego/eino-ext/components/model/ark"
	"github.com/cloudwego/eino/components/model"
)

// Config 聚合整个服务的配置项。
type Config struct {
	Server ServerConfig
	AI     AIConfig
	Chat   ChatConfig
	Redis  RedisConfig
}

// Load 从环境变量加载配置。
func Load() (*Config, error) {
	server, err := loadServerConfig()
	if err != nil {
		return nil, err
	}

	ai, err := loadAIConfig()
	if err != nil {
		return nil, err
	}

	chat, err := loadChatConfig()
	if err != nil {
		return nil, err
	}

	redisCfg, err := loadRedisConfig()
	if err != nil {
		return nil, err
	}

	return &Config{Server: server, AI: ai, Chat: chat, Redis: redisCfg}, nil
}

// ServerConfig 描述 HTTP 服务配置。
type ServerConfig struct {
	Addr           string
	AllowedOrigins []string
	LogLevel       string
}

// loadServerConfig 解析服务器监听地址与跨域来源。
func loadServerConfig() (ServerConfig, error) {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8080"
	}

	addr := port
	if !strings.Contains(port, ":") {
		if strings.Contains(port, " ") {
			return ServerConfig{}, fmt.Errorf("invalid PORT value: %q", port)
		}
		// 允许用户直接传入 ":8080" 或 "127.0.0.1:8080"。
		addr = ":" + port
	}

	origins := []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	if raw := strings.TrimSpace(os.Getenv("ALLOWED_ORIGINS")); raw != "" {
		origins = origins[:0]
		for _, origin := range strings.Split(raw, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				origins = append(origins, origin)
			}
		}
	}

	return ServerConfig{
		Addr:           addr,
		AllowedOrigins: origins,
		LogLevel:       getEnvOrDefault("LOG_LEVEL", "info"),
	}, nil
}

// AIConfig 描述大模型相关配置。
type AIConfig struct {
	APIKey      string
	AccessKey   string
	SecretKey   string
	Model       string
	BaseURL     string
	Region      string
	Temperature float64
	MaxTokens   int
}

// Enabled 表示是否提供了必需的密钥。缺失时聊天接口退化为本地回退文案。
func (c AIConfig) Enabled() bool {
	return c.Model != "" && (c.APIKey != "" || (c.AccessKey != "" && c.SecretKey != ""))
}

// NewChatModel 使用配置创建一个模型实例。
func (c AIConfig) NewChatModel(ctx context.Context) (model.ChatModel, error) {
	if !c.Enabled() {
		return nil, fmt.Errorf("ark credentials or model missing, provide ARK_API_KEY + MODEL_NAME or AK/SK")
	}

	temperature := float32(c.Temperature)
	maxTokens := c.MaxTokens

	cfg := &ark.ChatModelConfig{
		BaseURL:     c.BaseURL,
		Region:      c.Region,
		APIKey:      c.APIKey,
		AccessKey:   c.AccessKey,
		SecretKey:   c.SecretKey,
		Model:       c.Model,
		MaxTokens:   &maxTokens,
		Temperature: &temperature,
	}

	return ark.NewChatModel(ctx, cfg)
}

func loadAIConfig() (AIConfig, error) {
	temperature, err := parseFloatEnv("ARK_TEMPERATURE", 0.7)
	if err != nil {
		return AIConfig{}, err
	}

	maxTokens, err := parseIntEnv("ARK_MAX_TOKENS", 500)
	if err != nil {
		return AIConfig{}, err
	}

	return AIConfig{
		APIKey:      strings.TrimSpace(os.Getenv("ARK_API_KEY")),
		AccessKey:   strings.TrimSpace(os.Getenv("ARK_ACCESS_KEY")),
		SecretKey:   strings.TrimSpace(os.Getenv("ARK_SECRET_KEY")),
		Model:       strings.TrimSpace(os.Getenv("MODEL_NAME")),
		BaseURL:     getEnvOrDefault("ARK_BASE_URL", "https://ark.cn-beijing.volces.com/api/v3"),
		Region:      getEnvOrDefault("ARK_REGION", "cn-beijing"),
		Temperature: temperature,
		MaxTokens:   maxTokens,
	}, nil
}

// ChatConfig 描述会话编排相关配置。
type ChatConfig struct {
	HistoryLimit   int
	DefaultAgentID string
	DefaultUserID  string
}

func loadChatConfig() (ChatConfig, error) {
	historyLimit, err := parseIntEnv("CHAT_HISTORY_LIMIT", 10)
	if err != nil {
		return ChatConfig{}, err
	}
	if historyLimit < 1 {
		historyLimit = 1
	}

	return ChatConfig{
		HistoryLimit:   historyLimit,
		DefaultAgentID: getEnvOrDefault("CHAT_DEFAULT_AGENT", "canary"),
		DefaultUserID:  getEnvOrDefault("CHAT_DEFAULT_USER", "default"),
	}, nil
}

// RedisConfig 描述可选的Redis会话存储。URL为空时使用内存存储。
type RedisConfig struct {
	URL        string
	SessionTTL time.Duration
}

// Enabled 表示是否配置了Redis存储。
func (c RedisConfig) Enabled() bool {
	return c.URL != ""
}

func loadRedisConfig() (RedisConfig, error) {
	ttlMinutes, err := parseIntEnv("SESSION_TTL_MINUTES", 0)
	if err != nil {
		return RedisConfig{}, err
	}
	if ttlMinutes < 0 {
		ttlMinutes = 0
	}

	return RedisConfig{
		URL:        strings.TrimSpace(os.Getenv("REDIS_URL")),
		SessionTTL: time.Duration(ttlMinutes) * time.Minute,
	}, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func parseIntEnv(key string, defaultValue int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue, nil
	}

	val, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", key, raw, err)
	}
	return val, nil
}

func parseFloatEnv(key string, defaultValue float64) (float64, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue, nil
	}

	val, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", key, raw, err)
	}
	return val, nil
}
