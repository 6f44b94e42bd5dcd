package provider

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// FallbackImage 是显式开启的兜底策略：被包装的适配器远端调用失败时，
// 本地合成占位图顶上，保证调用方总能拿到结果。
// 校验在派发之前完成，所以这里兜底的只会是远端故障，不会掩盖非法输入。
type FallbackImage struct {
	inner ImageProvider
}

// WithFallback 给文生图适配器加兜底
func WithFallback(p ImageProvider) *FallbackImage {
	return &FallbackImage{inner: p}
}

func (f *FallbackImage) Name() string { return f.inner.Name() }

func (f *FallbackImage) MaxImages() int { return f.inner.MaxImages() }

func (f *FallbackImage) GenerateImages(ctx context.Context, req ImageRequest) ([]string, error) {
	images, err := f.inner.GenerateImages(ctx, req)
	if err == nil {
		return images, nil
	}

	zap.L().Warn("provider failed, substituting placeholder images",
		zap.String("provider", f.inner.Name()),
		zap.Error(err))

	count := ClampCount(req.Count, f.inner.MaxImages())
	w, h := ParseSize(req.Size)
	out := make([]string, 0, count)
	for i := 0; i < count; i++ {
		uri, perr := PlaceholderPNG(w, h, i)
		if perr != nil {
			return nil, err // 兜底也失败就报原始错误
		}
		out = append(out, uri)
	}
	return out, nil
}

// ParseSize 解析 "{width}x{height}"，非法输入退回 1024x1024
func ParseSize(s string) (int, int) {
	parts := strings.SplitN(s, "x", 2)
	if len(parts) != 2 {
		return 1024, 1024
	}
	w, err1 := strconv.Atoi(strings.TrimSpace(parts[0]))
	h, err2 := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err1 != nil || err2 != nil || w <= 0 || h <= 0 {
		return 1024, 1024
	}
	return w, h
}

// 占位图配色，按序号轮转
var placeholderColors = []color.RGBA{
	{R: 0x4a, G: 0x90, B: 0xd9, A: 0xff},
	{R: 0xd9, G: 0x6a, B: 0x4a, A: 0xff},
	{R: 0x5c, G: 0xb8, B: 0x5c, A: 0xff},
	{R: 0x9b, G: 0x59, B: 0xb6, A: 0xff},
}

// PlaceholderPNG 合成一张纯色占位图并编码成 data URI。
// 占位图刻意做得很小（按 8 像素缩放），避免响应体膨胀。
func PlaceholderPNG(width, height, seq int) (string, error) {
	const scale = 8
	w, h := width/scale, height/scale
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	c := placeholderColors[seq%len(placeholderColors)]
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("encode placeholder: %w", err)
	}
	return DataURI("image/png", buf.Bytes()), nil
}
