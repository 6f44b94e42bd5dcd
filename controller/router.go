package controller

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/nexorasim/LotayaAI/pkg/sse"
)

// SetupRouter 注册全部路由。CORS 全放开，与原服务行为一致。
func SetupRouter(h *Handler, hub *sse.Hub) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	corsCfg := cors.DefaultConfig()
	corsCfg.AllowAllOrigins = true
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")
	r.Use(cors.New(corsCfg))

	api := r.Group("/api")
	{
		api.GET("/health", h.HealthCheck)
		api.GET("/models", h.GetModels)
		api.POST("/generate/image", h.GenerateImage)
		api.POST("/generate/video", h.GenerateVideo)
		api.POST("/convert/text-to-video", h.TextToVideo)
		api.GET("/generations/:id", h.GetGenerationStatus)
		if hub != nil {
			api.GET("/events", sse.ServeSSE(hub))
		}
	}
	return r
}
