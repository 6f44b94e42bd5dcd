package sse

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ServeSSE 处理 SSE（Server-Sent Events）连接。
// 通过查询参数 `topic` 指定订阅的主题，缺省订阅所有生成任务的
// 终态广播；传 generation_id 可以只听单个任务。
// @Summary 订阅生成任务事件流（SSE）
// @Produce text/event-stream
// @Param topic query string false "topic（缺省 generations，或传 generation_id）"
// @Success 200 {string} string "event stream"
// @Router /api/events [get]
func ServeSSE(hub *Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		topic := c.DefaultQuery("topic", "generations")

		// 设置 SSE 必要的响应头，确保浏览器或代理以流式方式处理
		c.Writer.Header().Set("Content-Type", "text/event-stream")
		c.Writer.Header().Set("Cache-Control", "no-cache")
		c.Writer.Header().Set("Connection", "keep-alive")

		flusher, ok := c.Writer.(http.Flusher)
		if !ok {
			c.String(http.StatusInternalServerError, "streaming unsupported")
			return
		}

		// 每个连接专用的消息通道（缓冲 16），断开时取消订阅并关闭
		msgCh := make(chan []byte, 16)
		hub.Subscribe(msgCh, topic)
		defer func() {
			hub.Unsubscribe(msgCh, topic)
			close(msgCh)
		}()

		for {
			select {
			case <-c.Request.Context().Done():
				return
			case msg := <-msgCh:
				fmt.Fprintf(c.Writer, "data: %s\n\n", msg)
				flusher.Flush()
			}
		}
	}
}
