package controller

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/nexorasim/LotayaAI/logic"
	"github.com/nexorasim/LotayaAI/models"
	"github.com/nexorasim/LotayaAI/provider"
)

// Handler 持有编排器和状态读取器，由 main 显式注入
type Handler struct {
	orch     *logic.Orchestrator
	status   *logic.StatusReader
	registry *provider.Registry
}

// NewHandler 构造 HTTP handler
func NewHandler(orch *logic.Orchestrator, status *logic.StatusReader, registry *provider.Registry) *Handler {
	return &Handler{orch: orch, status: status, registry: registry}
}

// HealthCheck 健康检查
// @Summary 存活探针
// @Produce json
// @Success 200 {object} map[string]string
// @Router /api/health [get]
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"message": "LotayaAI API is running",
	})
}

// GetModels 枚举可用的模型与特效
// @Summary 模型列表
// @Produce json
// @Success 200 {object} map[string][]string
// @Router /api/models [get]
func (h *Handler) GetModels(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"image_models": h.registry.ImageModels(),
		"video_models": h.registry.VideoModels(),
		"effects":      models.Effects,
	})
}

// GenerateImage 文生图
// @Summary 提交文生图请求
// @Accept json
// @Produce json
// @Param request body models.ImageGenerationRequest true "生成请求"
// @Success 200 {object} models.ImageGenerationResponse
// @Failure 400 {object} map[string]interface{} "请求参数错误或模型不支持"
// @Router /api/generate/image [post]
func (h *Handler) GenerateImage(c *gin.Context) {
	var req models.ImageGenerationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.bindError(c, "generate image", err)
		return
	}

	resp, err := h.orch.GenerateImage(c.Request.Context(), &req)
	if err != nil {
		h.orchestrateError(c, "generate image", err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GenerateVideo 文生视频
// @Summary 提交文生视频请求
// @Accept json
// @Produce json
// @Param request body models.VideoGenerationRequest true "生成请求"
// @Success 200 {object} models.VideoGenerationResponse
// @Failure 400 {object} map[string]interface{} "请求参数错误或模型不支持"
// @Router /api/generate/video [post]
func (h *Handler) GenerateVideo(c *gin.Context) {
	var req models.VideoGenerationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.bindError(c, "generate video", err)
		return
	}

	resp, err := h.orch.GenerateVideo(c.Request.Context(), &req)
	if err != nil {
		h.orchestrateError(c, "generate video", err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// TextToVideo 剧本转视频
// @Summary 提交剧本转视频请求
// @Accept json
// @Produce json
// @Param request body models.TextToVideoRequest true "转换请求"
// @Success 200 {object} models.TextToVideoResponse
// @Failure 400 {object} map[string]interface{} "请求参数错误或模型不支持"
// @Router /api/convert/text-to-video [post]
func (h *Handler) TextToVideo(c *gin.Context) {
	var req models.TextToVideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.bindError(c, "text to video", err)
		return
	}

	resp, err := h.orch.ConvertScript(c.Request.Context(), &req)
	if err != nil {
		h.orchestrateError(c, "text to video", err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetGenerationStatus 状态轮询。未知 id 返回 not_found 的正常响应，
// 对这个接口来说不存在"查不到"这种异常。
// @Summary 查询生成任务状态
// @Produce json
// @Param id path string true "generation_id"
// @Success 200 {object} models.StatusResponse
// @Router /api/generations/{id} [get]
func (h *Handler) GetGenerationStatus(c *gin.Context) {
	id := c.Param("id")
	c.JSON(http.StatusOK, h.status.Get(c.Request.Context(), id))
}

func (h *Handler) bindError(c *gin.Context, op string, err error) {
	zap.L().Error(op+" with invalid param", zap.Error(err))
	// validator 错误带字段信息，原样透出给前端
	var errs validator.ValidationErrors
	if errors.As(err, &errs) {
		ResponseErrorWithMsg(c, CodeInvalidParams, errs.Error())
		return
	}
	ResponseError(c, CodeInvalidParams)
}

func (h *Handler) orchestrateError(c *gin.Context, op string, err error) {
	var verr *logic.ValidationError
	if errors.As(err, &verr) {
		code := CodeInvalidParams
		if strings.Contains(verr.Error(), "unknown") {
			code = CodeModelNotSupported
		}
		ResponseErrorWithMsg(c, code, verr.Error())
		return
	}
	zap.L().Error(op+" failed", zap.Error(err))
	ResponseError(c, CodeServerBusy)
}
