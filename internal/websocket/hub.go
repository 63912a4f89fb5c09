package websocket

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/nikita2423/approval-bff/internal/service"
)

// Envelope 推送消息信封
type Envelope struct {
	Type      string      `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// Hub 管理所有 WebSocket 连接
// 决定提交后把事件广播给全部已连接客户端
type Hub struct {
	// 已注册的客户端
	clients map[*Client]bool

	// 广播消息到所有客户端
	Broadcast chan []byte

	// 注册新客户端
	Register chan *Client

	// 注销客户端
	Unregister chan *Client

	// 互斥锁,保护 clients map
	mu sync.RWMutex

	logger *logrus.Logger
}

// NewHub 创建新的 Hub
func NewHub(logger *logrus.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		Broadcast:  make(chan []byte, 16),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		logger:     logger,
	}
}

// Run 运行 Hub
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()

		case client := <-h.Unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
			}
			h.mu.Unlock()

		case message := <-h.Broadcast:
			h.mu.Lock()
			for client := range h.clients {
				select {
				case client.Send <- message:
				default:
					close(client.Send)
					delete(h.clients, client)
				}
			}
			h.mu.Unlock()
		}
	}
}

// NotifyDecision 广播决定提交事件
// 实现决定提交服务的通知接口
// 事件广播给全部客户端,提交人额外收到一条确认回执
func (h *Hub) NotifyDecision(event service.DecisionEvent) {
	message, err := json.Marshal(Envelope{
		Type:      "decision_committed",
		Timestamp: time.Now(),
		Payload:   event,
	})
	if err != nil {
		h.logger.WithError(err).Warn("failed to marshal decision event")
		return
	}
	// 不阻塞决定提交流程: 广播队列满时丢弃事件
	select {
	case h.Broadcast <- message:
	default:
		h.logger.Warn("decision event dropped, broadcast queue full")
	}

	if event.UserID == "" {
		return
	}
	receipt, err := json.Marshal(Envelope{
		Type:      "commit_receipt",
		Timestamp: time.Now(),
		Payload:   event,
	})
	if err != nil {
		h.logger.WithError(err).Warn("failed to marshal commit receipt")
		return
	}
	h.BroadcastToUser(event.UserID, receipt)
}

// BroadcastToUser 向特定用户广播消息
func (h *Hub) BroadcastToUser(userID string, message []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for client := range h.clients {
		if client.UserID == userID {
			select {
			case client.Send <- message:
			default:
				close(client.Send)
				delete(h.clients, client)
			}
		}
	}
}

// ClientCount 获取客户端数量
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.clients)
}
