package service

import (
	"errors"
	"time"

	"github.com/Diapolo10/5G00EV25-3001-server/internal/config"
	"github.com/Diapolo10/5G00EV25-3001-server/internal/metrics"
	"github.com/Diapolo10/5G00EV25-3001-server/internal/models"
	"github.com/Diapolo10/5G00EV25-3001-server/internal/ws"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MessageService 封装消息相关的业务逻辑，写操作落库后把事件推给
// 房间的 websocket 订阅者。
type MessageService struct {
	db  *gorm.DB
	cfg config.Config
	hub *ws.Hub
}

func NewMessageService(db *gorm.DB, cfg config.Config, hub *ws.Hub) *MessageService {
	return &MessageService{db: db, cfg: cfg, hub: hub}
}

// MessageEvent 是推给订阅者的消息事件。
type MessageEvent struct {
	Type    string         `json:"type"`
	RoomID  uuid.UUID      `json:"room_id"`
	Message models.Message `json:"message"`
}

// List 分页查询房间内的消息。limit <= 0 表示不限制条数，
// 除存储顺序外不保证排序。
func (s *MessageService) List(roomID uuid.UUID, skip, limit int) ([]models.Message, error) {
	msgs := make([]models.Message, 0)
	err := s.db.Where("room_id = ?", roomID).Scopes(paginate(skip, limit)).Find(&msgs).Error
	if err != nil {
		return nil, err
	}
	return msgs, nil
}

// Get 在指定房间里取消息。ID 存在但挂在别的房间下时同样按未命中处理。
func (s *MessageService) Get(roomID, messageID uuid.UUID) (*models.Message, error) {
	var msg models.Message
	err := s.db.Where("id = ? AND room_id = ?", messageID, roomID).First(&msg).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMessageNotFound
		}
		return nil, err
	}
	return &msg, nil
}

// Create 在房间内创建消息，创建时间由服务端赋值，LastEdited 保持 NULL。
func (s *MessageService) Create(msg models.Message, roomID uuid.UUID) (*models.Message, error) {
	if err := ValidateMessageBody(msg.Body, s.cfg); err != nil {
		return nil, err
	}
	var count int64
	if err := s.db.Model(&models.Message{}).Where("id = ? AND room_id = ?", msg.ID, roomID).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrMessageExists
	}
	msg.RoomID = roomID
	msg.CreationTime = time.Now()
	msg.LastEdited = nil
	if err := s.db.Create(&msg).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrMessageExists
		}
		return nil, err
	}
	metrics.MessagesCreatedTotal.Inc()
	s.hub.Publish(roomID, MessageEvent{Type: "message", RoomID: roomID, Message: msg})
	return &msg, nil
}

// Update 改写消息正文并刷新 LastEdited。没有匹配行时返回未命中，
// 绝不隐式创建（没有 upsert 语义）。
func (s *MessageService) Update(roomID, messageID uuid.UUID, body string) (*models.Message, error) {
	if err := ValidateMessageBody(body, s.cfg); err != nil {
		return nil, err
	}
	now := time.Now()
	res := s.db.Model(&models.Message{}).
		Where("id = ? AND room_id = ?", messageID, roomID).
		Updates(map[string]any{"message": body, "last_edited": now})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrMessageNotFound
	}
	msg, err := s.Get(roomID, messageID)
	if err != nil {
		return nil, err
	}
	metrics.MessagesEditedTotal.Inc()
	s.hub.Publish(roomID, MessageEvent{Type: "message_edited", RoomID: roomID, Message: *msg})
	return msg, nil
}

// Delete 删除消息，目标不存在时静默成功。
func (s *MessageService) Delete(roomID, messageID uuid.UUID) error {
	res := s.db.Where("id = ? AND room_id = ?", messageID, roomID).Delete(&models.Message{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		s.hub.Publish(roomID, MessageEvent{
			Type:    "message_deleted",
			RoomID:  roomID,
			Message: models.Message{ID: messageID, RoomID: roomID},
		})
	}
	return nil
}
