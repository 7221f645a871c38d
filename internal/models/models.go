package models

import (
	"time"

	"github.com/google/uuid"
)

// AccessLevel 是用户的全局权限等级，数值越大权限越高。
type AccessLevel int

const (
	AccessBanned AccessLevel = iota + 1
	AccessBasic
	AccessVerified
	AccessModerator
	AccessAdministrator
)

// Room 的主键由调用方提供，私有房间必须带 Owner（在校验层保证）。
type Room struct {
	ID     uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Name   string     `gorm:"size:256;not null" json:"name"`
	Public bool       `gorm:"not null" json:"public"`
	Owner  *uuid.UUID `gorm:"type:uuid" json:"owner,omitempty"`
}

// Message 以 (RoomID, ID) 为复合主键，消息 ID 只在房间内唯一。
// LastEdited 在首次编辑前保持 NULL。
type Message struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	RoomID       uuid.UUID  `gorm:"type:uuid;primaryKey" json:"room_id"`
	UserID       uuid.UUID  `gorm:"type:uuid;index;not null" json:"user_id"`
	Body         string     `gorm:"column:message;size:256;not null" json:"message"`
	CreationTime time.Time  `json:"creation_time"`
	LastEdited   *time.Time `json:"last_edited"`
}

type User struct {
	ID                uuid.UUID   `gorm:"type:uuid;primaryKey"`
	Username          string      `gorm:"size:64;not null"`
	Email             string      `gorm:"uniqueIndex;size:255;not null"`
	PasswordHash      string      `gorm:"size:128;not null"`
	GlobalAccessLevel AccessLevel `gorm:"default:2"`
}

// RoomMember 是 users 和 rooms 之间的成员关系表。
type RoomMember struct {
	UserID uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	RoomID uuid.UUID `gorm:"type:uuid;primaryKey" json:"room_id"`
}
