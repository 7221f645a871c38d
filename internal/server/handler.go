package server

import (
	"errors"
	"net/http"

	"github.com/Diapolo10/5G00EV25-3001-server/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// robots.txt 的内容，直接内联避免对工作目录的依赖。
const robotsTxt = "User-agent: *\nDisallow:\n"

// Handler 聚合所有 HTTP handler，依赖注入 service 层。
type Handler struct {
	roomSvc   *service.RoomService
	msgSvc    *service.MessageService
	userSvc   *service.UserService
	memberSvc *service.MembershipService
}

func NewHandler(roomSvc *service.RoomService, msgSvc *service.MessageService, userSvc *service.UserService, memberSvc *service.MembershipService) *Handler {
	return &Handler{roomSvc: roomSvc, msgSvc: msgSvc, userSvc: userSvc, memberSvc: memberSvc}
}

// writeError 把业务层错误映射到 HTTP 状态码：
// 校验失败 422、创建冲突 400、未命中 404，其余按存储故障 500 处理。
func writeError(c *gin.Context, err error, logMsg string) {
	if ve, ok := service.AsValidation(err); ok {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": ve.Reason, "field": ve.Field})
		return
	}
	switch {
	case errors.Is(err, service.ErrRoomExists),
		errors.Is(err, service.ErrMessageExists),
		errors.Is(err, service.ErrUserExists),
		errors.Is(err, service.ErrEmailTaken):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrRoomNotFound),
		errors.Is(err, service.ErrMessageNotFound),
		errors.Is(err, service.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		log.Error().Err(err).Msg(logMsg)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// Root 是一个用于连通性测试的默认路由。
func (h *Handler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"hello": "Hello, world!"})
}

// RobotsTxt 返回 robots.txt 的内容。
func (h *Handler) RobotsTxt(c *gin.Context) {
	c.String(http.StatusOK, robotsTxt)
}
