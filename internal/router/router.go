package router

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/bacompass/backend/config"
	"github.com/bacompass/backend/internal/handler"
)

func Setup(
	cfg *config.Config,
	projectHandler *handler.ProjectHandler,
	frameworkHandler *handler.FrameworkHandler,
	roadmapHandler *handler.RoadmapHandler,
	uploadHandler *handler.UploadHandler,
	configHandler *handler.ConfigHandler,
) *gin.Engine {
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	api := r.Group("/api")
	{
		projects := api.Group("/projects")
		{
			projects.POST("", projectHandler.Create)
			projects.GET("", projectHandler.List)
			projects.GET("/:id", projectHandler.Get)
			projects.DELETE("/:id", projectHandler.Delete)
			projects.POST("/:id/interview", projectHandler.SaveInterview)
			projects.POST("/:id/roadmap", roadmapHandler.Generate)
			projects.GET("/:id/roadmap", roadmapHandler.GetActive)
			projects.GET("/:id/artifacts", roadmapHandler.ListArtifacts)
			projects.POST("/:id/upload", uploadHandler.Upload)
			projects.GET("/:id/files", uploadHandler.List)
		}

		frameworks := api.Group("/frameworks")
		{
			frameworks.GET("", frameworkHandler.List)
			frameworks.POST("/recommend", frameworkHandler.Recommend)
		}

		api.DELETE("/roadmaps/:id", roadmapHandler.Delete)
		api.PUT("/tasks/:id/status", roadmapHandler.UpdateTaskStatus)
		api.PUT("/artifacts/:id/status", roadmapHandler.UpdateArtifactStatus)

		api.GET("/config", configHandler.Get)
		api.PUT("/config", configHandler.Update)
	}

	return r
}
