// Package store 定义生成记录的持久化契约。
// 记录一生最多写两次：创建时一次，进入终态时一次。
package store

import (
	"context"
	"errors"

	"github.com/nexorasim/LotayaAI/models"
)

var (
	// ErrDuplicateID 创建时 generation_id 已存在
	ErrDuplicateID = errors.New("generation id already exists")
	// ErrNotFound 查询的记录不存在
	ErrNotFound = errors.New("generation record not found")
)

// TerminalUpdate 是终态部分更新：Status 只能是 completed 或 failed，
// Images/ResultURL 与 Error 互斥。
type TerminalUpdate struct {
	Status    string
	Images    []string
	ResultURL string
	Error     string
}

// GenerationStore 生成记录存储的最小接口
type GenerationStore interface {
	// Create 插入新记录，id 冲突返回 ErrDuplicateID
	Create(ctx context.Context, rec *models.GenerationRecord) error
	// UpdateTerminal 按 id 写入终态；编排层保证每个 id 最多调用一次，
	// 重复调用按后写覆盖处理
	UpdateTerminal(ctx context.Context, id string, upd TerminalUpdate) error
	// Find 按 id 点查，不存在返回 ErrNotFound
	Find(ctx context.Context, id string) (*models.GenerationRecord, error)
}
