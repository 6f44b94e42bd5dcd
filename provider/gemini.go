package provider

import (
	"context"
	"time"

	"google.golang.org/genai"
)

// Gemini 通过 google genai SDK 调用 Imagen 出图。
// 返回的是内联字节，直接编码成 data URI。
type Gemini struct {
	apiKey  string
	model   string
	max     int
	timeout time.Duration
}

// NewGemini gemini 文生图适配器
func NewGemini(apiKey string) *Gemini {
	return &Gemini{
		apiKey:  apiKey,
		model:   "imagen-3.0-generate-002",
		max:     4,
		timeout: 90 * time.Second,
	}
}

func (g *Gemini) Name() string { return "gemini" }

func (g *Gemini) MaxImages() int { return g.max }

func (g *Gemini) GenerateImages(ctx context.Context, req ImageRequest) ([]string, error) {
	if g.apiKey == "" {
		return nil, ErrMissingKey(g.Name())
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  g.apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, NewError(g.Name(), 0, "init client: "+err.Error())
	}

	prompt := req.Prompt
	if req.Style != "" {
		prompt = prompt + ", " + req.Style + " style"
	}
	count := ClampCount(req.Count, g.max)

	resp, err := client.Models.GenerateImages(ctx, g.model, prompt, &genai.GenerateImagesConfig{
		NumberOfImages: int32(count),
	})
	if err != nil {
		return nil, NewError(g.Name(), 0, err.Error())
	}
	if len(resp.GeneratedImages) == 0 {
		return nil, NewError(g.Name(), 0, "empty image response")
	}

	images := make([]string, 0, len(resp.GeneratedImages))
	for _, img := range resp.GeneratedImages {
		if img.Image == nil || len(img.Image.ImageBytes) == 0 {
			continue
		}
		images = append(images, DataURI(img.Image.MIMEType, img.Image.ImageBytes))
	}
	if len(images) == 0 {
		return nil, NewError(g.Name(), 0, "no usable image payloads in response")
	}
	return images, nil
}
