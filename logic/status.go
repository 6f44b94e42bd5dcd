package logic

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/nexorasim/LotayaAI/dao/store"
	"github.com/nexorasim/LotayaAI/models"
)

// StatusReader 把持久化记录投影成状态轮询响应
type StatusReader struct {
	store store.GenerationStore
}

// NewStatusReader 构造状态读取器
func NewStatusReader(s store.GenerationStore) *StatusReader {
	return &StatusReader{store: s}
}

// Get 查询生成任务状态。未知 id 不是异常：返回 not_found 的正常响应。
// 存储不可用时同样按 not_found 处理（降级模式下可接受的不一致）。
func (r *StatusReader) Get(ctx context.Context, id string) *models.StatusResponse {
	rec, err := r.store.Find(ctx, id)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			zap.L().Error("find generation record failed",
				zap.String("generation_id", id),
				zap.Error(err))
		}
		return &models.StatusResponse{
			GenerationID: id,
			Status:       models.StatusNotFound,
			Progress:     0,
		}
	}

	resp := &models.StatusResponse{
		GenerationID: rec.GenerationID,
		Status:       rec.Status,
	}
	switch rec.Status {
	case models.StatusProcessing:
		resp.Progress = 50
	case models.StatusCompleted:
		resp.Progress = 100
		resp.Images = rec.Images
		resp.ResultURL = rec.ResultURL
	case models.StatusFailed:
		resp.Error = rec.Error
	}
	return resp
}
