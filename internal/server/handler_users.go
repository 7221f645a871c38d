package server

import (
	"net/http"

	"github.com/Diapolo10/5G00EV25-3001-server/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CreateUser 注册用户。ID 和邮箱都全局唯一，占用即冲突。
func (h *Handler) CreateUser(c *gin.Context) {
	var req service.UserCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	if req.ID == uuid.Nil {
		req.ID = uuid.New()
	}
	user, err := h.userSvc.Create(req)
	if err != nil {
		writeError(c, err, "create user")
		return
	}
	c.JSON(http.StatusCreated, user)
}

// ListUsers 分页返回用户列表。
func (h *Handler) ListUsers(c *gin.Context) {
	skip, limit := pagination(c)
	users, err := h.userSvc.List(skip, limit)
	if err != nil {
		writeError(c, err, "list users")
		return
	}
	c.JSON(http.StatusOK, users)
}

// GetUser 按 ID 返回用户。
func (h *Handler) GetUser(c *gin.Context) {
	userID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	user, err := h.userSvc.Get(userID)
	if err != nil {
		writeError(c, err, "get user")
		return
	}
	c.JSON(http.StatusOK, user)
}

// UpdateUser 按 (ID, 邮箱) 匹配并更新用户名，邮箱对不上按 404 处理。
func (h *Handler) UpdateUser(c *gin.Context) {
	userID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	user, err := h.userSvc.Update(userID, req.Email, req.Username)
	if err != nil {
		writeError(c, err, "update user")
		return
	}
	c.JSON(http.StatusOK, user)
}

// DeleteUser 删除用户，无论目标是否存在都返回 204。
func (h *Handler) DeleteUser(c *gin.Context) {
	userID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	if err := h.userSvc.Delete(userID); err != nil {
		writeError(c, err, "delete user")
		return
	}
	c.Status(http.StatusNoContent)
}

// Login 目前只是占位：原样回显用户数据，不建立任何会话。
// 真正的认证属于外部身份服务。
func (h *Handler) Login(c *gin.Context) {
	var req service.UserView
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	c.JSON(http.StatusOK, req)
}

// Logout 同 Login，占位回显。
func (h *Handler) Logout(c *gin.Context) {
	var req service.UserView
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	c.JSON(http.StatusOK, req)
}
