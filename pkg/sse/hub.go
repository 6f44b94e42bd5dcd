// Package sse 提供基于 topic 的生成任务事件推送。
// 编排器在任务进入终态时向 "generations" 广播主题和对应
// generation_id 主题各发一条事件，前端按需订阅。
package sse

import "sync"

// Hub 管理 topic -> 订阅通道集合。
// 通道归订阅方所有：Hub 只负责投递，订阅方负责取消订阅并关闭通道。
type Hub struct {
	mu     sync.RWMutex
	topics map[string]map[chan []byte]bool
}

// NewHub 创建空的事件 Hub
func NewHub() *Hub {
	return &Hub{topics: make(map[string]map[chan []byte]bool)}
}

// Subscribe 订阅一个 topic
func (h *Hub) Subscribe(ch chan []byte, topic string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	subs, ok := h.topics[topic]
	if !ok {
		subs = make(map[chan []byte]bool)
		h.topics[topic] = subs
	}
	subs[ch] = true
}

// Unsubscribe 取消订阅；topic 没有订阅者后清掉条目
func (h *Hub) Unsubscribe(ch chan []byte, topic string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	subs, ok := h.topics[topic]
	if !ok {
		return
	}
	delete(subs, ch)
	if len(subs) == 0 {
		delete(h.topics, topic)
	}
}

// PublishTopic 向 topic 的所有订阅者投递消息。
// 订阅通道写满就丢弃该条，慢消费者不能阻塞发布方。
func (h *Hub) PublishTopic(topic string, msg []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for ch := range h.topics[topic] {
		select {
		case ch <- msg:
		default:
		}
	}
}
