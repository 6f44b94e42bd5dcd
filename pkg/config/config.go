package config

import (
	"os"
	"strconv"
	"time"
)

// Config 进程配置，全部来自环境变量。
// 任何一个 provider 的 key 缺失都不会阻止启动，只会让对应
// provider 的请求按请求失败。
type Config struct {
	Addr string
	Mode string

	// StoreDriver: redis | mysql | memory
	StoreDriver string
	RedisAddr   string
	MySQLDSN    string

	GroqAPIKey   string
	XAIAPIKey    string
	GeminiAPIKey string
	ArkAPIKey    string

	RunwayAPIKey string
	KlingAPIKey  string
	Veo3APIKey   string
	SoraAPIKey   string
	HailuoAPIKey string

	// 各视频厂商接口地址，可按环境覆盖
	VideoEndpoints map[string]string

	ProviderTimeout time.Duration
	// EnablePlaceholderFallback 显式开启文生图兜底占位图
	EnablePlaceholderFallback bool
}

// 视频厂商缺省接口地址
var defaultVideoEndpoints = map[string]string{
	"runway": "https://api.runwayml.com/v1/video/generate",
	"kling":  "https://api.klingai.com/v1/videos/text2video",
	"veo3":   "https://generativelanguage.googleapis.com/v1beta/models/veo-3:generateVideo",
	"sora":   "https://api.openai.com/v1/videos/generations",
	"hailuo": "https://api.minimax.io/v1/video_generation",
}

// 视频厂商接口地址的环境变量覆盖项
var videoEndpointEnv = map[string]string{
	"runway": "RUNWAY_API_URL",
	"kling":  "KLING_API_URL",
	"veo3":   "VEO3_API_URL",
	"sora":   "SORA_API_URL",
	"hailuo": "HAILUO_API_URL",
}

// Load 从环境变量加载配置
func Load() *Config {
	cfg := &Config{
		Addr:        getEnv("ADDR", ":8001"),
		Mode:        getEnv("MODE", "release"),
		StoreDriver: getEnv("STORE_DRIVER", "redis"),
		RedisAddr:   getEnv("REDIS_ADDR", "localhost:6379"),
		MySQLDSN:    getEnv("MYSQL_DSN", ""),

		GroqAPIKey:   getEnv("GROQ_API_KEY", ""),
		XAIAPIKey:    getEnv("XAI_API_KEY", ""),
		GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
		ArkAPIKey:    getEnv("ARK_API_KEY", ""),

		RunwayAPIKey: getEnv("RUNWAY_API_KEY", ""),
		KlingAPIKey:  getEnv("KLING_API_KEY", ""),
		Veo3APIKey:   getEnv("VEO3_API_KEY", ""),
		SoraAPIKey:   getEnv("SORA_API_KEY", ""),
		HailuoAPIKey: getEnv("HAILUO_API_KEY", ""),

		ProviderTimeout:           getDurationEnv("PROVIDER_TIMEOUT", 120*time.Second),
		EnablePlaceholderFallback: getBoolEnv("ENABLE_PLACEHOLDER_FALLBACK", false),
	}

	cfg.VideoEndpoints = make(map[string]string, len(defaultVideoEndpoints))
	for name, endpoint := range defaultVideoEndpoints {
		cfg.VideoEndpoints[name] = getEnv(videoEndpointEnv[name], endpoint)
	}
	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getBoolEnv(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
