package provider

import (
	"fmt"
	"sort"
	"sync"
)

// Registry 按名字保存已注册的适配器。
// 图片和视频是两个互不相交的命名空间：新增 provider 只需要注册一个
// 适配器，编排逻辑不用改。
type Registry struct {
	mu     sync.RWMutex
	images map[string]ImageProvider
	videos map[string]VideoProvider
}

// NewRegistry 创建空的 provider 注册表
func NewRegistry() *Registry {
	return &Registry{
		images: make(map[string]ImageProvider),
		videos: make(map[string]VideoProvider),
	}
}

// RegisterImage 注册文生图适配器，重名返回错误
func (r *Registry) RegisterImage(p ImageProvider) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := p.Name()
	if _, exists := r.images[name]; exists {
		return fmt.Errorf("image provider %q already registered", name)
	}
	r.images[name] = p
	return nil
}

// RegisterVideo 注册文生视频适配器，重名返回错误
func (r *Registry) RegisterVideo(p VideoProvider) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := p.Name()
	if _, exists := r.videos[name]; exists {
		return fmt.Errorf("video provider %q already registered", name)
	}
	r.videos[name] = p
	return nil
}

// Image 按名字查找文生图适配器
func (r *Registry) Image(name string) (ImageProvider, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.images[name]
	return p, ok
}

// Video 按名字查找文生视频适配器
func (r *Registry) Video(name string) (VideoProvider, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.videos[name]
	return p, ok
}

// ImageModels 返回排序后的图片模型名列表，用于 /api/models
func (r *Registry) ImageModels() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.images))
	for name := range r.images {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// VideoModels 返回排序后的视频模型名列表
func (r *Registry) VideoModels() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.videos))
	for name := range r.videos {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
