package ws

import (
	"net/http"
	"time"

	"github.com/Diapolo10/5G00EV25-3001-server/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"gorm.io/gorm"
)

// Client 是一个只读订阅者：消息的写入走 REST 接口，socket 只负责
// 把落库后的事件推下去。
type Client struct {
	room   *RoomHub
	conn   *websocket.Conn
	send   chan []byte
	userID uuid.UUID
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Serve 处理 GET /ws?room_id=&user_id=，校验房间存在后升级连接。
func Serve(h *Hub, db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		roomID, err := uuid.Parse(c.Query("room_id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid room_id"})
			return
		}
		var room models.Room
		if err := db.Where("id = ?", roomID).First(&room).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
			return
		}

		// user_id 可选，仅用于 join/leave 事件的标注。
		userID, _ := uuid.Parse(c.Query("user_id"))

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			return
		}
		rh := h.GetRoom(roomID)
		client := &Client{room: rh, conn: conn, send: make(chan []byte, 256), userID: userID}
		rh.register <- client

		go client.writePump()
		client.readPump()
	}
}

// readPump 只消费控制帧并探测断开，入站数据帧一律忽略。
func (c *Client) readPump() {
	defer func() {
		c.room.unregister <- c
		_ = c.conn.Close()
	}()
	c.conn.SetReadLimit(4096)
	c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			break
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(30 * time.Second)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()
	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			_, _ = w.Write(message)
			_ = w.Close()
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
