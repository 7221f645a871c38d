package server

import (
	"net/http"
	"time"

	"github.com/Diapolo10/5G00EV25-3001-server/internal/config"
	"github.com/Diapolo10/5G00EV25-3001-server/internal/metrics"
	"github.com/Diapolo10/5G00EV25-3001-server/internal/mw"
	"github.com/Diapolo10/5G00EV25-3001-server/internal/service"
	"github.com/Diapolo10/5G00EV25-3001-server/internal/ws"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"
	"gorm.io/gorm"
)

// SetupRouter 统一初始化 Gin 中间件、REST API 以及 WebSocket 端点。
func SetupRouter(cfg config.Config, db *gorm.DB, hub *ws.Hub) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(metrics.GinMiddleware())
	r.Use(mw.CORS(cfg.Env))
	// 控制单个 IP+路由的速率，避免接口被刷爆。
	r.Use(mw.RateLimit(rate.Every(time.Second/20), 40))

	h := NewHandler(
		service.NewRoomService(db, hub),
		service.NewMessageService(db, cfg, hub),
		service.NewUserService(db),
		service.NewMembershipService(db),
	)

	r.GET("/", h.Root)
	r.GET("/robots.txt", h.RobotsTxt)
	r.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/ws", ws.Serve(hub, db))

	api := r.Group("/api/v1")

	rooms := api.Group("/rooms")
	rooms.GET("", h.ListRooms)
	rooms.POST("", h.CreateRoom)
	rooms.GET("/:id", h.GetRoom)
	rooms.POST("/:id", h.CreateMessage)
	rooms.DELETE("/:id", h.DeleteRoom)
	rooms.GET("/:id/messages", h.ListMessages)
	rooms.GET("/:id/messages/:mid", h.GetMessage)
	rooms.PUT("/:id/messages/:mid", h.UpdateMessage)
	rooms.DELETE("/:id/messages/:mid", h.DeleteMessage)
	rooms.GET("/:id/users", h.ListMembers)
	rooms.POST("/:id/users/:uid", h.JoinRoom)
	rooms.DELETE("/:id/users/:uid", h.LeaveRoom)

	users := api.Group("/users")
	users.POST("", h.CreateUser)
	users.GET("", h.ListUsers)
	users.POST("/login", h.Login)
	users.POST("/logout", h.Logout)
	users.GET("/:id", h.GetUser)
	users.PUT("/:id", h.UpdateUser)
	users.DELETE("/:id", h.DeleteUser)

	return r
}
