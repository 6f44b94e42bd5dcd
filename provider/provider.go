// Package provider 定义生成后端的适配器契约。
// 每个适配器负责把统一的生成请求翻译成厂商 API 调用，
// 并把厂商返回（二进制、远程 URL 或内联 base64）统一成
// data URI（图片）或结果定位 URL（视频）。
package provider

import (
	"context"
	"fmt"
)

// ImageRequest 是派发给文生图适配器的统一请求。
// Prompt 由调用方保证非空，Count 由适配器按自身上限截断。
type ImageRequest struct {
	Prompt string
	Count  int
	Size   string
	Style  string
}

// VideoRequest 是派发给文生视频适配器的统一请求
type VideoRequest struct {
	Prompt   string
	Duration int
	Style    string
}

// ImageProvider 文生图后端。返回的每个元素都是
// "data:<mime>;base64,..." 形式的自描述编码，客户端无需二次拉取。
type ImageProvider interface {
	Name() string
	// MaxImages 单次调用可返回的图片上限，超出的请求会被静默截断
	MaxImages() int
	GenerateImages(ctx context.Context, req ImageRequest) ([]string, error)
}

// VideoProvider 文生视频后端，返回结果定位 URL
type VideoProvider interface {
	Name() string
	GenerateVideo(ctx context.Context, req VideoRequest) (string, error)
}

// Error 是远端调用失败时的类型化错误，携带厂商名和远端状态码
type Error struct {
	Provider   string
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: status %d: %s", e.Provider, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Provider, e.Message)
}

// NewError 构造一个 provider 级错误
func NewError(provider string, statusCode int, message string) *Error {
	return &Error{Provider: provider, StatusCode: statusCode, Message: message}
}

// ErrMissingKey 凭证未配置时返回的按请求失败。
// 缺少 key 不会阻止进程启动，只会让对应 provider 的请求失败。
func ErrMissingKey(provider string) *Error {
	return &Error{Provider: provider, Message: "api key not configured"}
}

// ClampCount 把请求张数限制到 [1, max]
func ClampCount(n, max int) int {
	if n < 1 {
		n = 1
	}
	if max > 0 && n > max {
		n = max
	}
	return n
}
