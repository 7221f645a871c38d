package ws

import (
	"encoding/json"
	"sync"
	"sync/atomic"

	"github.com/Diapolo10/5G00EV25-3001-server/internal/metrics"
	"github.com/google/uuid"
)

// Hub 按房间管理子 Hub，懒创建、并发安全。REST 层在消息落库后
// 通过 Publish 把事件推给订阅了该房间的客户端。
type Hub struct {
	mu    sync.RWMutex
	rooms map[uuid.UUID]*RoomHub
}

func NewHub() *Hub { return &Hub{rooms: make(map[uuid.UUID]*RoomHub)} }

// GetRoom 若房间未初始化则懒加载一个 RoomHub。
func (h *Hub) GetRoom(roomID uuid.UUID) *RoomHub {
	h.mu.RLock()
	room := h.rooms[roomID]
	h.mu.RUnlock()
	if room != nil {
		return room
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	room = h.rooms[roomID]
	if room != nil {
		return room
	}
	room = NewRoomHub(roomID)
	h.rooms[roomID] = room
	go room.run()
	return room
}

// Publish 把任意可序列化事件广播给房间的订阅者。
func (h *Hub) Publish(roomID uuid.UUID, event any) {
	b, err := json.Marshal(event)
	if err != nil {
		return
	}
	rh := h.GetRoom(roomID)
	select {
	case rh.broadcast <- b:
	default:
		// 广播队列满时丢弃事件，REST 写入本身不受影响。
	}
}

func (h *Hub) Online(roomID uuid.UUID) int {
	h.mu.RLock()
	room := h.rooms[roomID]
	h.mu.RUnlock()
	if room == nil {
		return 0
	}
	return room.Online()
}

type RoomHub struct {
	roomID     uuid.UUID
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	online     int32
}

func NewRoomHub(roomID uuid.UUID) *RoomHub {
	return &RoomHub{
		roomID:     roomID,
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 256),
	}
}

func (rh *RoomHub) run() {
	for {
		select {
		case c := <-rh.register:
			rh.clients[c] = true
			atomic.StoreInt32(&rh.online, int32(len(rh.clients)))
			metrics.WsConnections.Inc()
			rh.fanout(rh.presenceEvent("join", c))
		case c := <-rh.unregister:
			if _, ok := rh.clients[c]; ok {
				delete(rh.clients, c)
				close(c.send)
				atomic.StoreInt32(&rh.online, int32(len(rh.clients)))
				metrics.WsConnections.Dec()
				rh.fanout(rh.presenceEvent("leave", c))
			}
		case msg := <-rh.broadcast:
			rh.fanout(msg)
		}
	}
}

// fanout 把一帧数据发给所有客户端，发不动的客户端直接踢掉。
func (rh *RoomHub) fanout(msg []byte) {
	if msg == nil {
		return
	}
	for c := range rh.clients {
		select {
		case c.send <- msg:
		default:
			close(c.send)
			delete(rh.clients, c)
			metrics.WsConnections.Dec()
		}
	}
}

func (rh *RoomHub) presenceEvent(kind string, c *Client) []byte {
	evt := map[string]any{
		"type":    kind,
		"room_id": rh.roomID,
		"user_id": c.userID,
		"online":  int(atomic.LoadInt32(&rh.online)),
	}
	b, err := json.Marshal(evt)
	if err != nil {
		return nil
	}
	return b
}

// Online 返回房间在线客户端数量，供 REST 接口复用。
func (rh *RoomHub) Online() int { return int(atomic.LoadInt32(&rh.online)) }
