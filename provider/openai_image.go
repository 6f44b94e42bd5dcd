package provider

import (
	"context"
	"net/http"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIImage 覆盖所有 OpenAI 兼容的文生图后端（groq、xai）。
// 两家只有 BaseURL 和模型名不同，请求/响应结构完全一致。
type OpenAIImage struct {
	name   string
	apiKey string
	model  string
	max    int
	client *openai.Client
}

const openAIImageTimeout = 60 * time.Second

func newOpenAIImage(name, baseURL, apiKey, model string) *OpenAIImage {
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = baseURL
	cfg.HTTPClient = &http.Client{Timeout: openAIImageTimeout}
	return &OpenAIImage{
		name:   name,
		apiKey: apiKey,
		model:  model,
		max:    10,
		client: openai.NewClientWithConfig(cfg),
	}
}

// NewGroq groq 文生图适配器
func NewGroq(apiKey string) *OpenAIImage {
	return newOpenAIImage("groq", "https://api.groq.com/openai/v1", apiKey, "flux-schnell")
}

// NewXAI xai (grok) 文生图适配器
func NewXAI(apiKey string) *OpenAIImage {
	return newOpenAIImage("xai", "https://api.x.ai/v1", apiKey, "grok-2-image")
}

func (o *OpenAIImage) Name() string { return o.name }

func (o *OpenAIImage) MaxImages() int { return o.max }

func (o *OpenAIImage) GenerateImages(ctx context.Context, req ImageRequest) ([]string, error) {
	if o.apiKey == "" {
		return nil, ErrMissingKey(o.name)
	}

	prompt := req.Prompt
	if req.Style != "" {
		// 风格只是提示词附加信息，不做解释
		prompt = prompt + ", " + req.Style + " style"
	}
	count := ClampCount(req.Count, o.max)

	resp, err := o.client.CreateImage(ctx, openai.ImageRequest{
		Model:          o.model,
		Prompt:         prompt,
		N:              count,
		Size:           req.Size,
		ResponseFormat: openai.CreateImageResponseFormatB64JSON,
	})
	if err != nil {
		return nil, NewError(o.name, 0, err.Error())
	}
	if len(resp.Data) == 0 {
		return nil, NewError(o.name, 0, "empty image response")
	}

	images := make([]string, 0, len(resp.Data))
	for _, d := range resp.Data {
		switch {
		case d.B64JSON != "":
			images = append(images, "data:image/png;base64,"+d.B64JSON)
		case d.URL != "":
			// 个别模型忽略 response_format 只回 URL，拉回来内联
			uri, err := FetchDataURI(ctx, nil, o.name, d.URL)
			if err != nil {
				return nil, err
			}
			images = append(images, uri)
		}
	}
	if len(images) == 0 {
		return nil, NewError(o.name, 0, "no usable image payloads in response")
	}
	return images, nil
}
