package router

import (
	"github.com/gin-gonic/gin"
	"github.com/seedfund/sfs/internal/config"
	"github.com/seedfund/sfs/internal/ethereum"
	"github.com/seedfund/sfs/internal/handler"
	"gorm.io/gorm"
)

func Setup(db *gorm.DB, ethClient *ethereum.Client, cfg *config.Config) *gin.Engine {
	r := gin.Default()

	// 中间件
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(corsMiddleware())

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": "seedfund-service",
		})
	})

	// API版本组
	v1 := r.Group("/api/v1")
	{
		// 项目相关路由
		projectHandler := handler.NewProjectHandler(db)
		contributeHandler := handler.NewContributeHandler(db, ethClient)
		milestoneHandler := handler.NewMilestoneHandler(db)
		whitelistHandler := handler.NewWhitelistHandler(db)
		projects := v1.Group("/projects")
		{
			projects.POST("", projectHandler.AddProject)
			projects.GET("", projectHandler.GetProjects)
			projects.GET("/:id", projectHandler.GetProject)
			projects.DELETE("/:id", projectHandler.RemoveProject)
			projects.POST("/:id/approve", projectHandler.ApproveProject)
			projects.PUT("/:id/status", projectHandler.SetProjectStatus)
			projects.PUT("/:id/stage", projectHandler.SetFundraisingStage)

			projects.POST("/:id/whitelist/open", whitelistHandler.OpenWhitelist)
			projects.POST("/:id/whitelist/register", whitelistHandler.RegisterWhitelist)
			projects.POST("/:id/whitelist/close", whitelistHandler.CloseWhitelist)

			projects.POST("/:id/contributions", contributeHandler.Contribute)
			projects.POST("/:id/contributions/external", contributeHandler.ContributeExternal)

			projects.POST("/:id/milestones/vote", milestoneHandler.CastVote)
			projects.POST("/:id/milestones/release", milestoneHandler.ReleaseMilestone)
			projects.POST("/:id/complete", milestoneHandler.CompleteProject)
			projects.POST("/:id/fail", milestoneHandler.FailProject)
		}

		// 平台管理路由
		platformHandler := handler.NewPlatformHandler(db)
		platform := v1.Group("/platform")
		{
			platform.GET("/config", platformHandler.GetConfig)
			platform.PUT("/config", platformHandler.SetConfig)
			platform.POST("/transfer-all", platformHandler.TransferAllFunds)
		}

		// 社区成员路由
		community := v1.Group("/community")
		{
			community.GET("", platformHandler.GetCommunity)
			community.POST("", platformHandler.AddCommunityMember)
			community.DELETE("/:wallet", platformHandler.RemoveCommunityMember)
		}
	}

	return r
}

// CORS中间件
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
