package service

import (
	"errors"

	"github.com/Diapolo10/5G00EV25-3001-server/internal/models"
	"github.com/Diapolo10/5G00EV25-3001-server/internal/ws"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RoomService 封装房间相关的业务逻辑。
type RoomService struct {
	db  *gorm.DB
	hub *ws.Hub
}

func NewRoomService(db *gorm.DB, hub *ws.Hub) *RoomService {
	return &RoomService{db: db, hub: hub}
}

// RoomDTO 是对外输出的房间数据。
type RoomDTO struct {
	ID     uuid.UUID  `json:"id"`
	Name   string     `json:"name"`
	Public bool       `json:"public"`
	Owner  *uuid.UUID `json:"owner,omitempty"`
	Online int        `json:"online"`
}

func (s *RoomService) toDTO(r models.Room) RoomDTO {
	return RoomDTO{ID: r.ID, Name: r.Name, Public: r.Public, Owner: r.Owner, Online: s.hub.Online(r.ID)}
}

// ListPublic 返回全部公开房间，无排序保证，没有房间时返回空切片。
func (s *RoomService) ListPublic() ([]RoomDTO, error) {
	var rooms []models.Room
	if err := s.db.Where("public = ?", true).Find(&rooms).Error; err != nil {
		return nil, err
	}
	out := make([]RoomDTO, 0, len(rooms))
	for _, r := range rooms {
		out = append(out, s.toDTO(r))
	}
	return out, nil
}

// Get 按 ID 取房间，未命中返回 ErrRoomNotFound。
func (s *RoomService) Get(roomID uuid.UUID) (*RoomDTO, error) {
	var room models.Room
	if err := s.db.Where("id = ?", roomID).First(&room).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	dto := s.toDTO(room)
	return &dto, nil
}

// Create 创建房间。ID 由调用方提供，重复创建不是幂等操作而是冲突。
func (s *RoomService) Create(room models.Room) (*RoomDTO, error) {
	if err := ValidateRoom(room); err != nil {
		return nil, err
	}
	var count int64
	if err := s.db.Model(&models.Room{}).Where("id = ?", room.ID).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrRoomExists
	}
	if err := s.db.Create(&room).Error; err != nil {
		// 两个并发创建在唯一约束上相遇时，输家同样报冲突。
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrRoomExists
		}
		return nil, err
	}
	dto := s.toDTO(room)
	return &dto, nil
}

// Delete 删除房间。目标不存在时静默成功（删除是幂等的）。
func (s *RoomService) Delete(roomID uuid.UUID) error {
	return s.db.Where("id = ?", roomID).Delete(&models.Room{}).Error
}
