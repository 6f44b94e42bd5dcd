package models

// 状态常量
const (
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
	// StatusNotFound 只出现在状态查询响应里，不会被持久化
	StatusNotFound = "not_found"
)

// 生成类型
const (
	KindImage       = "image"
	KindVideo       = "video"
	KindTextToVideo = "text_to_video"
)

// 默认值，与原始 API 行为保持一致
const (
	DefaultImageModel = "groq"
	DefaultVideoModel = "runway"
	DefaultSize       = "1024x1024"
	DefaultNumImages  = 1
	DefaultDuration   = 10
)

// Effects 是 /api/models 返回的特效枚举，目前只做展示
var Effects = []string{"ai_hug", "ai_kissing", "french_kiss", "decapitate", "eye_pop"}

// ImageGenerationRequest 文生图请求
type ImageGenerationRequest struct {
	Prompt    string `json:"prompt" binding:"required"`
	Model     string `json:"model"`
	Style     string `json:"style,omitempty"`
	Size      string `json:"size,omitempty"`
	NumImages int    `json:"num_images,omitempty"`
}

// VideoGenerationRequest 文生视频请求
type VideoGenerationRequest struct {
	Prompt   string `json:"prompt" binding:"required"`
	Model    string `json:"model"`
	Duration int    `json:"duration,omitempty"`
}

// TextToVideoRequest 剧本转视频请求
type TextToVideoRequest struct {
	Script string `json:"script" binding:"required"`
	Model  string `json:"model"`
	Style  string `json:"style,omitempty"`
}

// GenerationRecord 是持久化的生成任务文档。
// GenerationID 在派发给 provider 之前分配，之后不可变；
// 状态只会从 processing 变为 completed 或 failed，Result 与 Error 互斥。
type GenerationRecord struct {
	GenerationID string   `json:"generation_id" db:"generation_id"`
	Kind         string   `json:"kind" db:"kind"`
	Prompt       string   `json:"prompt" db:"prompt"`
	Model        string   `json:"model" db:"model"`
	Style        string   `json:"style,omitempty" db:"style"`
	Size         string   `json:"size,omitempty" db:"size"`
	NumImages    int      `json:"num_images,omitempty" db:"num_images"`
	Duration     int      `json:"duration,omitempty" db:"duration"`
	Status       string   `json:"status" db:"status"`
	Images       []string `json:"images,omitempty" db:"-"`
	ResultURL    string   `json:"result_url,omitempty" db:"result_url"`
	Error        string   `json:"error,omitempty" db:"error_message"`
	CreatedAt    int64    `json:"created_at" db:"created_at"`
}

// ImageGenerationResponse 文生图响应
type ImageGenerationResponse struct {
	Success      bool     `json:"success"`
	Message      string   `json:"message"`
	ModelUsed    string   `json:"model_used"`
	Prompt       string   `json:"prompt"`
	GenerationID string   `json:"generation_id"`
	Images       []string `json:"images,omitempty"`
	Error        string   `json:"error,omitempty"`
}

// VideoGenerationResponse 文生视频响应
type VideoGenerationResponse struct {
	Success      bool   `json:"success"`
	Message      string `json:"message"`
	ModelUsed    string `json:"model_used"`
	Prompt       string `json:"prompt"`
	GenerationID string `json:"generation_id"`
	VideoURL     string `json:"video_url,omitempty"`
	Error        string `json:"error,omitempty"`
}

// TextToVideoResponse 剧本转视频响应
type TextToVideoResponse struct {
	Success      bool   `json:"success"`
	Message      string `json:"message"`
	Script       string `json:"script"`
	ModelUsed    string `json:"model_used"`
	VideoURL     string `json:"video_url,omitempty"`
	ConversionID string `json:"conversion_id"`
	Error        string `json:"error,omitempty"`
}

// StatusResponse 状态查询响应。
// progress: processing=50 / completed=100，其余为 0。
type StatusResponse struct {
	GenerationID string   `json:"generation_id"`
	Status       string   `json:"status"`
	Progress     int      `json:"progress"`
	ResultURL    string   `json:"result_url,omitempty"`
	Images       []string `json:"images,omitempty"`
	Error        string   `json:"error,omitempty"`
}
