package provider

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/volcengine/volcengine-go-sdk/service/arkruntime"
	"github.com/volcengine/volcengine-go-sdk/service/arkruntime/model"
	"github.com/volcengine/volcengine-go-sdk/volcengine"
)

// Seedance 走火山方舟的内容生成任务接口：先创建任务再轮询，
// 直到拿到终态或超时。
type Seedance struct {
	apiKey       string
	model        string
	timeout      time.Duration
	pollInterval time.Duration
}

// NewSeedance seedance 文生视频适配器
func NewSeedance(apiKey string) *Seedance {
	return &Seedance{
		apiKey:       apiKey,
		model:        "doubao-seedance-1-0-pro-250528",
		timeout:      120 * time.Second,
		pollInterval: 5 * time.Second,
	}
}

func (s *Seedance) Name() string { return "seedance" }

func (s *Seedance) GenerateVideo(ctx context.Context, req VideoRequest) (string, error) {
	if s.apiKey == "" {
		return "", ErrMissingKey(s.Name())
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	client := arkruntime.NewClientWithApiKey(s.apiKey)

	// 时长等生成参数通过文本指令传给方舟接口
	text := req.Prompt
	if req.Duration > 0 {
		text = fmt.Sprintf("%s --duration %d", text, req.Duration)
	}

	createResp, err := client.CreateContentGenerationTask(ctx, model.CreateContentGenerationTaskRequest{
		Model: s.model,
		Content: []*model.CreateContentGenerationContentItem{
			{
				Type: model.ContentGenerationContentItemTypeText,
				Text: volcengine.String(text),
			},
		},
	})
	if err != nil {
		return "", NewError(s.Name(), 0, "create task: "+err.Error())
	}

	// 轮询直到任务终态
	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()
	for {
		getReq := model.GetContentGenerationTaskRequest{}
		getReq.ID = createResp.ID
		getResp, err := client.GetContentGenerationTask(ctx, getReq)
		if err != nil {
			return "", NewError(s.Name(), 0, "get task: "+err.Error())
		}

		switch strings.ToLower(getResp.Status) {
		case "succeeded":
			if getResp.Content.VideoURL == "" {
				return "", NewError(s.Name(), 0, "task succeeded without video url")
			}
			return getResp.Content.VideoURL, nil
		case "failed", "cancelled":
			return "", NewError(s.Name(), 0, "task "+strings.ToLower(getResp.Status))
		}

		select {
		case <-ctx.Done():
			return "", NewError(s.Name(), 0, "timed out waiting for task "+createResp.ID)
		case <-ticker.C:
		}
	}
}
