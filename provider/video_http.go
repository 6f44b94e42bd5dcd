package provider

import (
	"context"
	"net/http"
	"time"
)

// HTTPVideo 是没有 Go SDK 的视频厂商（runway/kling/veo3/sora/hailuo）
// 共用的适配器：POST 一个 JSON 请求，拿回视频定位 URL。
type HTTPVideo struct {
	name     string
	endpoint string
	apiKey   string
	client   *http.Client
}

// NewHTTPVideo 通用文生视频适配器
func NewHTTPVideo(name, endpoint, apiKey string, timeout time.Duration) *HTTPVideo {
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	return &HTTPVideo{
		name:     name,
		endpoint: endpoint,
		apiKey:   apiKey,
		client:   &http.Client{Timeout: timeout},
	}
}

func (v *HTTPVideo) Name() string { return v.name }

func (v *HTTPVideo) GenerateVideo(ctx context.Context, req VideoRequest) (string, error) {
	if v.apiKey == "" {
		return "", ErrMissingKey(v.name)
	}

	payload := struct {
		Prompt   string `json:"prompt"`
		Duration int    `json:"duration,omitempty"`
		Style    string `json:"style,omitempty"`
	}{
		Prompt:   req.Prompt,
		Duration: req.Duration,
		Style:    req.Style,
	}
	var out struct {
		VideoURL string `json:"video_url"`
		URL      string `json:"url"`
	}

	headers := map[string]string{"Authorization": "Bearer " + v.apiKey}
	if err := postJSON(ctx, v.client, v.name, v.endpoint, headers, payload, &out); err != nil {
		return "", err
	}

	switch {
	case out.VideoURL != "":
		return out.VideoURL, nil
	case out.URL != "":
		return out.URL, nil
	}
	return "", NewError(v.name, 0, "no video url in response")
}
