package server

import (
	"net/http"
	"strconv"

	"github.com/Diapolo10/5G00EV25-3001-server/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// pagination 解析 skip/limit 查询参数，limit 缺省时不限制条数。
func pagination(c *gin.Context) (skip, limit int) {
	if v, err := strconv.Atoi(c.Query("skip")); err == nil && v > 0 {
		skip = v
	}
	limit = -1
	if v, err := strconv.Atoi(c.Query("limit")); err == nil && v > 0 {
		limit = v
	}
	return skip, limit
}

func pathUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return uuid.Nil, false
	}
	return id, true
}

// ListRooms 返回全部公开房间。
func (h *Handler) ListRooms(c *gin.Context) {
	rooms, err := h.roomSvc.ListPublic()
	if err != nil {
		writeError(c, err, "list rooms")
		return
	}
	c.JSON(http.StatusOK, rooms)
}

// CreateRoom 创建房间，ID 可由调用方提供，缺省时由服务端生成。
func (h *Handler) CreateRoom(c *gin.Context) {
	var req struct {
		ID     uuid.UUID  `json:"id"`
		Name   string     `json:"name"`
		Public *bool      `json:"public"`
		Owner  *uuid.UUID `json:"owner"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	if req.ID == uuid.Nil {
		req.ID = uuid.New()
	}
	public := true
	if req.Public != nil {
		public = *req.Public
	}
	room, err := h.roomSvc.Create(models.Room{ID: req.ID, Name: req.Name, Public: public, Owner: req.Owner})
	if err != nil {
		writeError(c, err, "create room")
		return
	}
	c.JSON(http.StatusOK, room)
}

// GetRoom 按 ID 返回房间。
func (h *Handler) GetRoom(c *gin.Context) {
	roomID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	room, err := h.roomSvc.Get(roomID)
	if err != nil {
		writeError(c, err, "get room")
		return
	}
	c.JSON(http.StatusOK, room)
}

// DeleteRoom 删除房间，无论目标是否存在都返回 204。
func (h *Handler) DeleteRoom(c *gin.Context) {
	roomID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	if err := h.roomSvc.Delete(roomID); err != nil {
		writeError(c, err, "delete room")
		return
	}
	c.Status(http.StatusNoContent)
}

// CreateMessage 向房间发送消息。
func (h *Handler) CreateMessage(c *gin.Context) {
	roomID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req struct {
		ID     uuid.UUID `json:"id"`
		UserID uuid.UUID `json:"user_id"`
		Body   string    `json:"message"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	if req.ID == uuid.Nil {
		req.ID = uuid.New()
	}
	msg, err := h.msgSvc.Create(models.Message{ID: req.ID, UserID: req.UserID, Body: req.Body}, roomID)
	if err != nil {
		writeError(c, err, "create message")
		return
	}
	c.JSON(http.StatusOK, msg)
}

// ListMessages 分页返回房间内的消息。
func (h *Handler) ListMessages(c *gin.Context) {
	roomID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	skip, limit := pagination(c)
	msgs, err := h.msgSvc.List(roomID, skip, limit)
	if err != nil {
		writeError(c, err, "list messages")
		return
	}
	c.JSON(http.StatusOK, msgs)
}

// GetMessage 返回房间内的指定消息。
func (h *Handler) GetMessage(c *gin.Context) {
	roomID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	messageID, ok := pathUUID(c, "mid")
	if !ok {
		return
	}
	msg, err := h.msgSvc.Get(roomID, messageID)
	if err != nil {
		writeError(c, err, "get message")
		return
	}
	c.JSON(http.StatusOK, msg)
}

// UpdateMessage 编辑消息正文，同时刷新编辑时间。
func (h *Handler) UpdateMessage(c *gin.Context) {
	roomID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	messageID, ok := pathUUID(c, "mid")
	if !ok {
		return
	}
	var req struct {
		Body string `json:"message"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	msg, err := h.msgSvc.Update(roomID, messageID, req.Body)
	if err != nil {
		writeError(c, err, "update message")
		return
	}
	c.JSON(http.StatusOK, msg)
}

// DeleteMessage 删除消息，无论目标是否存在都返回 204。
func (h *Handler) DeleteMessage(c *gin.Context) {
	roomID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	messageID, ok := pathUUID(c, "mid")
	if !ok {
		return
	}
	if err := h.msgSvc.Delete(roomID, messageID); err != nil {
		writeError(c, err, "delete message")
		return
	}
	c.Status(http.StatusNoContent)
}

// ListMembers 返回房间成员的用户 ID 列表。
func (h *Handler) ListMembers(c *gin.Context) {
	roomID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	members, err := h.memberSvc.Members(roomID)
	if err != nil {
		writeError(c, err, "list members")
		return
	}
	c.JSON(http.StatusOK, members)
}

// JoinRoom 把用户加入房间，重复加入返回同样的 204。
func (h *Handler) JoinRoom(c *gin.Context) {
	roomID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	userID, ok := pathUUID(c, "uid")
	if !ok {
		return
	}
	if err := h.memberSvc.Join(roomID, userID); err != nil {
		writeError(c, err, "join room")
		return
	}
	c.Status(http.StatusNoContent)
}

// LeaveRoom 把用户移出房间，不在房间里时同样返回 204。
func (h *Handler) LeaveRoom(c *gin.Context) {
	roomID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	userID, ok := pathUUID(c, "uid")
	if !ok {
		return
	}
	if err := h.memberSvc.Leave(roomID, userID); err != nil {
		writeError(c, err, "leave room")
		return
	}
	c.Status(http.StatusNoContent)
}
