package logic

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nexorasim/LotayaAI/dao/store"
	"github.com/nexorasim/LotayaAI/models"
	"github.com/nexorasim/LotayaAI/provider"
)

// Notifier 终态事件的推送出口（SSE hub 实现了它），可以为 nil
type Notifier interface {
	PublishTopic(topic string, msg []byte)
}

// EventsTopic 所有生成任务终态事件的广播主题
const EventsTopic = "generations"

// Orchestrator 负责生成请求的完整生命周期：
// 校验 -> 建记录(processing) -> 派发 provider -> 写终态 -> 返回响应。
// 失败只上报不重试，重提交是客户端的事。
type Orchestrator struct {
	store    store.GenerationStore
	registry *provider.Registry
	notifier Notifier
	timeout  time.Duration
}

// NewOrchestrator 构造编排器。timeout 是 provider 调用的兜底时限，
// notifier 传 nil 则不推送事件。
func NewOrchestrator(s store.GenerationStore, r *provider.Registry, n Notifier, timeout time.Duration) *Orchestrator {
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	return &Orchestrator{store: s, registry: r, notifier: n, timeout: timeout}
}

// GenerateImage 文生图编排
func (o *Orchestrator) GenerateImage(ctx context.Context, req *models.ImageGenerationRequest) (*models.ImageGenerationResponse, error) {
	prompt := strings.TrimSpace(req.Prompt)
	if prompt == "" {
		return nil, validationErrorf("prompt must not be empty")
	}
	if req.NumImages < 0 {
		return nil, validationErrorf("num_images must be a positive integer")
	}
	modelName := req.Model
	if modelName == "" {
		modelName = models.DefaultImageModel
	}
	p, ok := o.registry.Image(modelName)
	if !ok {
		return nil, validationErrorf("unknown image model %q", modelName)
	}

	size := req.Size
	if size == "" {
		size = models.DefaultSize
	}
	count := req.NumImages
	if count == 0 {
		count = models.DefaultNumImages
	}
	// 派发前按适配器上限截断，让记录里的张数和实际请求一致
	count = provider.ClampCount(count, p.MaxImages())

	rec := &models.GenerationRecord{
		GenerationID: uuid.New().String(),
		Kind:         models.KindImage,
		Prompt:       prompt,
		Model:        modelName,
		Style:        req.Style,
		Size:         size,
		NumImages:    count,
		Status:       models.StatusProcessing,
		CreatedAt:    time.Now().Unix(),
	}
	o.createRecord(ctx, rec)

	callCtx, cancel := o.providerContext()
	defer cancel()
	images, err := p.GenerateImages(callCtx, provider.ImageRequest{
		Prompt: prompt,
		Count:  count,
		Size:   size,
		Style:  req.Style,
	})
	if err != nil {
		o.finish(rec, store.TerminalUpdate{Status: models.StatusFailed, Error: err.Error()})
		return &models.ImageGenerationResponse{
			Success:      false,
			Message:      "Image generation failed",
			ModelUsed:    modelName,
			Prompt:       prompt,
			GenerationID: rec.GenerationID,
			Error:        err.Error(),
		}, nil
	}

	o.finish(rec, store.TerminalUpdate{Status: models.StatusCompleted, Images: images})
	return &models.ImageGenerationResponse{
		Success:      true,
		Message:      "Image generation completed",
		ModelUsed:    modelName,
		Prompt:       prompt,
		GenerationID: rec.GenerationID,
		Images:       images,
	}, nil
}

// GenerateVideo 文生视频编排
func (o *Orchestrator) GenerateVideo(ctx context.Context, req *models.VideoGenerationRequest) (*models.VideoGenerationResponse, error) {
	prompt := strings.TrimSpace(req.Prompt)
	if prompt == "" {
		return nil, validationErrorf("prompt must not be empty")
	}
	if req.Duration < 0 {
		return nil, validationErrorf("duration must be a positive integer")
	}
	modelName := req.Model
	if modelName == "" {
		modelName = models.DefaultVideoModel
	}
	p, ok := o.registry.Video(modelName)
	if !ok {
		return nil, validationErrorf("unknown video model %q", modelName)
	}

	duration := req.Duration
	if duration == 0 {
		duration = models.DefaultDuration
	}

	rec := &models.GenerationRecord{
		GenerationID: uuid.New().String(),
		Kind:         models.KindVideo,
		Prompt:       prompt,
		Model:        modelName,
		Duration:     duration,
		Status:       models.StatusProcessing,
		CreatedAt:    time.Now().Unix(),
	}
	o.createRecord(ctx, rec)

	callCtx, cancel := o.providerContext()
	defer cancel()
	videoURL, err := p.GenerateVideo(callCtx, provider.VideoRequest{
		Prompt:   prompt,
		Duration: duration,
	})
	if err != nil {
		o.finish(rec, store.TerminalUpdate{Status: models.StatusFailed, Error: err.Error()})
		return &models.VideoGenerationResponse{
			Success:      false,
			Message:      "Video generation failed",
			ModelUsed:    modelName,
			Prompt:       prompt,
			GenerationID: rec.GenerationID,
			Error:        err.Error(),
		}, nil
	}

	o.finish(rec, store.TerminalUpdate{Status: models.StatusCompleted, ResultURL: videoURL})
	return &models.VideoGenerationResponse{
		Success:      true,
		Message:      "Video generation completed",
		ModelUsed:    modelName,
		Prompt:       prompt,
		GenerationID: rec.GenerationID,
		VideoURL:     videoURL,
	}, nil
}

// ConvertScript 剧本转视频编排
func (o *Orchestrator) ConvertScript(ctx context.Context, req *models.TextToVideoRequest) (*models.TextToVideoResponse, error) {
	script := strings.TrimSpace(req.Script)
	if script == "" {
		return nil, validationErrorf("script must not be empty")
	}
	modelName := req.Model
	if modelName == "" {
		modelName = models.DefaultVideoModel
	}
	p, ok := o.registry.Video(modelName)
	if !ok {
		return nil, validationErrorf("unknown video model %q", modelName)
	}

	rec := &models.GenerationRecord{
		GenerationID: uuid.New().String(),
		Kind:         models.KindTextToVideo,
		Prompt:       script,
		Model:        modelName,
		Style:        req.Style,
		Duration:     models.DefaultDuration,
		Status:       models.StatusProcessing,
		CreatedAt:    time.Now().Unix(),
	}
	o.createRecord(ctx, rec)

	callCtx, cancel := o.providerContext()
	defer cancel()
	videoURL, err := p.GenerateVideo(callCtx, provider.VideoRequest{
		Prompt:   script,
		Duration: rec.Duration,
		Style:    req.Style,
	})
	if err != nil {
		o.finish(rec, store.TerminalUpdate{Status: models.StatusFailed, Error: err.Error()})
		return &models.TextToVideoResponse{
			Success:      false,
			Message:      "Text to video conversion failed",
			Script:       script,
			ModelUsed:    modelName,
			ConversionID: rec.GenerationID,
			Error:        err.Error(),
		}, nil
	}

	o.finish(rec, store.TerminalUpdate{Status: models.StatusCompleted, ResultURL: videoURL})
	return &models.TextToVideoResponse{
		Success:      true,
		Message:      "Text to video conversion completed",
		Script:       script,
		ModelUsed:    modelName,
		VideoURL:     videoURL,
		ConversionID: rec.GenerationID,
	}, nil
}

// providerContext 返回派发用的上下文：只继承时限不继承取消。
// 客户端断开后任务照常跑完并写终态，不留半截记录。
func (o *Orchestrator) providerContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), o.timeout)
}

// createRecord 尽力而为地创建记录；存储故障只记日志，请求继续
func (o *Orchestrator) createRecord(ctx context.Context, rec *models.GenerationRecord) {
	if err := o.store.Create(ctx, rec); err != nil {
		zap.L().Error("create generation record failed",
			zap.String("generation_id", rec.GenerationID),
			zap.Error(err))
	}
}

// finish 写入终态并推送事件。终态写失败只记日志：
// 降级模式下后续查状态拿到 not_found 是可接受的不一致。
func (o *Orchestrator) finish(rec *models.GenerationRecord, upd store.TerminalUpdate) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := o.store.UpdateTerminal(ctx, rec.GenerationID, upd); err != nil {
		zap.L().Error("update terminal state failed",
			zap.String("generation_id", rec.GenerationID),
			zap.String("status", upd.Status),
			zap.Error(err))
	}
	o.publish(rec, upd)
}

func (o *Orchestrator) publish(rec *models.GenerationRecord, upd store.TerminalUpdate) {
	if o.notifier == nil {
		return
	}
	event := struct {
		GenerationID string `json:"generation_id"`
		Kind         string `json:"kind"`
		Model        string `json:"model"`
		Status       string `json:"status"`
		ResultURL    string `json:"result_url,omitempty"`
		Error        string `json:"error,omitempty"`
	}{
		GenerationID: rec.GenerationID,
		Kind:         rec.Kind,
		Model:        rec.Model,
		Status:       upd.Status,
		ResultURL:    upd.ResultURL,
		Error:        upd.Error,
	}
	b, err := json.Marshal(event)
	if err != nil {
		return
	}
	o.notifier.PublishTopic(EventsTopic, b)
	o.notifier.PublishTopic(rec.GenerationID, b)
}
