package service

import (
	"github.com/Diapolo10/5G00EV25-3001-server/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MembershipService 维护用户与房间的成员关系。加入和退出都按
// 幂等删除/插入处理，重复操作不是错误。
type MembershipService struct {
	db *gorm.DB
}

func NewMembershipService(db *gorm.DB) *MembershipService {
	return &MembershipService{db: db}
}

// Join 把用户加入房间，重复加入是 no-op。
func (s *MembershipService) Join(roomID, userID uuid.UUID) error {
	member := models.RoomMember{UserID: userID, RoomID: roomID}
	return s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&member).Error
}

// Leave 把用户移出房间，本就不在房间里时静默成功。
func (s *MembershipService) Leave(roomID, userID uuid.UUID) error {
	return s.db.Where("room_id = ? AND user_id = ?", roomID, userID).Delete(&models.RoomMember{}).Error
}

// Members 返回房间内全部成员的用户 ID。
func (s *MembershipService) Members(roomID uuid.UUID) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0)
	err := s.db.Model(&models.RoomMember{}).Where("room_id = ?", roomID).Pluck("user_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// RoomsForUser 返回用户加入的全部房间。
func (s *MembershipService) RoomsForUser(userID uuid.UUID) ([]models.Room, error) {
	rooms := make([]models.Room, 0)
	err := s.db.
		Joins("JOIN room_members ON room_members.room_id = rooms.id").
		Where("room_members.user_id = ?", userID).
		Find(&rooms).Error
	if err != nil {
		return nil, err
	}
	return rooms, nil
}
