package main

import (
	"github.com/Diapolo10/5G00EV25-3001-server/internal/config"
	"github.com/Diapolo10/5G00EV25-3001-server/internal/db"
	clog "github.com/Diapolo10/5G00EV25-3001-server/internal/log"
	"github.com/Diapolo10/5G00EV25-3001-server/internal/server"
	"github.com/Diapolo10/5G00EV25-3001-server/internal/ws"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

func main() {
	// 本地开发时从 .env 读配置，文件不存在不算错误。
	_ = godotenv.Load()

	cfg := config.Load()
	clog.Init(cfg.Env)
	if err := config.Validate(cfg); err != nil {
		log.Fatal().Err(err).Msg("config validate")
	}

	gdb, err := db.Connect(cfg.DatabaseDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("db connect")
	}
	if err := db.Migrate(gdb); err != nil {
		log.Fatal().Err(err).Msg("db migrate")
	}

	hub := ws.NewHub()
	r := server.SetupRouter(cfg, gdb, hub)
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server run")
	}
}
