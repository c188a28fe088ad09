package main

import (
	"github.com/gin-gonic/gin"
	"github.com/seedfund/sfs/internal/config"
	"github.com/seedfund/sfs/internal/database"
	"github.com/seedfund/sfs/internal/ethereum"
	"github.com/seedfund/sfs/internal/logger"
	"github.com/seedfund/sfs/internal/router"
	"github.com/seedfund/sfs/internal/task"
)

func main() {
	// 加载配置
	cfg := config.Load()

	// 初始化日志
	level := logger.ParseLogLevel(cfg.Log.Level)
	var l *logger.Logger
	var err error
	if cfg.Log.Output == "file" {
		l, err = logger.NewWithFileRotation(level, cfg.Log.File)
	} else {
		l, err = logger.New(level)
	}
	if err != nil {
		panic(err)
	}
	logger.SetDefaultLogger(l)

	// 初始化数据库
	db, err := database.Init(cfg.Database)
	if err != nil {
		logger.Fatal("Failed to initialize database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		logger.Fatal("Failed to migrate database: %v", err)
	}
	if err := database.SeedPlatformConfig(db, cfg.Platform); err != nil {
		logger.Fatal("Failed to seed platform config: %v", err)
	}

	// 初始化以太坊客户端
	ethClient, err := ethereum.Init(cfg.Chain)
	if err != nil {
		logger.Fatal("Failed to initialize ethereum client: %v", err)
	}

	// 设置Gin模式
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 初始化路由
	r := router.Setup(db, ethClient, cfg)

	// 启动定时任务
	manager := task.Start(db, ethClient, cfg)
	defer manager.Stop()

	// 启动服务器
	logger.Info("Server starting on port %s", cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		logger.Fatal("Failed to start server: %v", err)
	}
}
