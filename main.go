package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/nexorasim/LotayaAI/controller"
	"github.com/nexorasim/LotayaAI/dao/mysql"
	"github.com/nexorasim/LotayaAI/dao/store"
	"github.com/nexorasim/LotayaAI/logic"
	"github.com/nexorasim/LotayaAI/pkg/config"
	"github.com/nexorasim/LotayaAI/pkg/logger"
	"github.com/nexorasim/LotayaAI/pkg/sse"
	"github.com/nexorasim/LotayaAI/provider"
)

func main() {
	cfg := config.Load()

	if err := logger.Init(cfg.Mode); err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer zap.L().Sync()

	if cfg.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 存储不可用不是致命错误：降级到内存存储，无状态接口照常服务
	st, cleanup := buildStore(cfg)
	defer cleanup()

	registry := buildRegistry(cfg)

	hub := sse.NewHub()
	orch := logic.NewOrchestrator(st, registry, hub, cfg.ProviderTimeout)
	h := controller.NewHandler(orch, logic.NewStatusReader(st), registry)

	r := controller.SetupRouter(h, hub)
	zap.L().Info("LotayaAI gateway starting", zap.String("addr", cfg.Addr))
	if err := r.Run(cfg.Addr); err != nil {
		zap.L().Fatal("server exited", zap.Error(err))
	}
}

func buildStore(cfg *config.Config) (store.GenerationStore, func()) {
	switch cfg.StoreDriver {
	case "mysql":
		db, err := mysql.New(cfg.MySQLDSN)
		if err != nil {
			zap.L().Error("mysql unavailable, falling back to in-memory store", zap.Error(err))
			return store.NewMemoryStore(), func() {}
		}
		return mysql.NewStore(db), func() { _ = db.Close() }
	case "memory":
		return store.NewMemoryStore(), func() {}
	default:
		rs := store.NewRedisStore(cfg.RedisAddr)
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := rs.Ping(ctx); err != nil {
			// 只告警不退出：redis 恢复后请求自然恢复持久化
			zap.L().Warn("redis unreachable at startup, persistence degraded", zap.Error(err))
		}
		return rs, func() { _ = rs.Close() }
	}
}

func buildRegistry(cfg *config.Config) *provider.Registry {
	registry := provider.NewRegistry()

	imageProviders := []provider.ImageProvider{
		provider.NewGroq(cfg.GroqAPIKey),
		provider.NewXAI(cfg.XAIAPIKey),
		provider.NewGemini(cfg.GeminiAPIKey),
	}
	for _, p := range imageProviders {
		if cfg.EnablePlaceholderFallback {
			p = provider.WithFallback(p)
		}
		if err := registry.RegisterImage(p); err != nil {
			zap.L().Fatal("register image provider", zap.Error(err))
		}
	}

	videoKeys := map[string]string{
		"runway": cfg.RunwayAPIKey,
		"kling":  cfg.KlingAPIKey,
		"veo3":   cfg.Veo3APIKey,
		"sora":   cfg.SoraAPIKey,
		"hailuo": cfg.HailuoAPIKey,
	}
	for name, key := range videoKeys {
		p := provider.NewHTTPVideo(name, cfg.VideoEndpoints[name], key, cfg.ProviderTimeout)
		if err := registry.RegisterVideo(p); err != nil {
			zap.L().Fatal("register video provider", zap.Error(err))
		}
	}
	if err := registry.RegisterVideo(provider.NewSeedance(cfg.ArkAPIKey)); err != nil {
		zap.L().Fatal("register video provider", zap.Error(err))
	}

	return registry
}
