package service

import (
	"errors"

	"github.com/Diapolo10/5G00EV25-3001-server/internal/auth"
	"github.com/Diapolo10/5G00EV25-3001-server/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserService 封装用户相关的业务逻辑。
type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// UserCreate 是注册时的入站数据，密码只在这一层出现。
type UserCreate struct {
	ID                uuid.UUID          `json:"id"`
	Username          string             `json:"username"`
	Email             string             `json:"email"`
	Password          string             `json:"password"`
	GlobalAccessLevel models.AccessLevel `json:"global_access_level"`
}

// UserView 是对外输出的用户数据，永远不携带密码哈希。
type UserView struct {
	ID                uuid.UUID          `json:"id"`
	Username          string             `json:"username"`
	Email             string             `json:"email"`
	GlobalAccessLevel models.AccessLevel `json:"global_access_level"`
}

func toUserView(u models.User) UserView {
	return UserView{ID: u.ID, Username: u.Username, Email: u.Email, GlobalAccessLevel: u.GlobalAccessLevel}
}

// Create 注册新用户。ID 与邮箱各自全局唯一，先查 ID 再查邮箱。
// 密码在这里做 bcrypt 哈希，库里永远不落明文。
func (s *UserService) Create(in UserCreate) (*UserView, error) {
	if err := ValidateUsername(in.Username); err != nil {
		return nil, err
	}
	if err := ValidateEmail(in.Email); err != nil {
		return nil, err
	}
	var count int64
	if err := s.db.Model(&models.User{}).Where("id = ?", in.ID).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrUserExists
	}
	if err := s.db.Model(&models.User{}).Where("email = ?", in.Email).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrEmailTaken
	}
	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	level := in.GlobalAccessLevel
	if level == 0 {
		level = models.AccessBasic
	}
	user := models.User{
		ID:                in.ID,
		Username:          in.Username,
		Email:             in.Email,
		PasswordHash:      hash,
		GlobalAccessLevel: level,
	}
	if err := s.db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUserExists
		}
		return nil, err
	}
	view := toUserView(user)
	return &view, nil
}

// Get 按 ID 取用户，未命中返回 ErrUserNotFound。
func (s *UserService) Get(userID uuid.UUID) (*UserView, error) {
	var user models.User
	if err := s.db.Where("id = ?", userID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	view := toUserView(user)
	return &view, nil
}

// GetByEmail 按邮箱取用户。
func (s *UserService) GetByEmail(email string) (*UserView, error) {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	view := toUserView(user)
	return &view, nil
}

// List 分页返回用户，limit <= 0 表示不限制条数。
func (s *UserService) List(skip, limit int) ([]UserView, error) {
	var users []models.User
	if err := s.db.Scopes(paginate(skip, limit)).Find(&users).Error; err != nil {
		return nil, err
	}
	out := make([]UserView, 0, len(users))
	for _, u := range users {
		out = append(out, toUserView(u))
	}
	return out, nil
}

// Update 按 (ID, Email) 匹配并只更新用户名。邮箱对不上时匹配零行，
// 按未命中处理。
func (s *UserService) Update(userID uuid.UUID, email, username string) (*UserView, error) {
	if err := ValidateUsername(username); err != nil {
		return nil, err
	}
	res := s.db.Model(&models.User{}).
		Where("id = ? AND email = ?", userID, email).
		Update("username", username)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrUserNotFound
	}
	return s.Get(userID)
}

// Delete 删除用户，目标不存在时静默成功。
func (s *UserService) Delete(userID uuid.UUID) error {
	return s.db.Where("id = ?", userID).Delete(&models.User{}).Error
}
