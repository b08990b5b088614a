package main

import (
	"flag"
	"log"
	"os"

	"github.com/joho/godotenv"
	"k8s.io/klog/v2"

	"github.com/bacompass/backend/config"
	"github.com/bacompass/backend/internal/handler"
	"github.com/bacompass/backend/internal/pkg/database"
	"github.com/bacompass/backend/internal/pkg/extractor"
	"github.com/bacompass/backend/internal/pkg/llm"
	"github.com/bacompass/backend/internal/repository"
	"github.com/bacompass/backend/internal/router"
	"github.com/bacompass/backend/internal/service"
	"github.com/bacompass/backend/internal/service/recommend"
	"github.com/bacompass/backend/internal/service/roadmap"
)

func main() {
	// 初始化 klog
	klog.InitFlags(nil)
	flag.Parse()
	defer klog.Flush()

	// .env 存在时先加载，环境变量随后覆盖配置文件
	_ = godotenv.Load()

	klog.V(6).Info("服务启动中...")

	cfg := config.GetConfig()

	if err := os.MkdirAll(cfg.Data.Dir, 0755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}
	if err := os.MkdirAll(cfg.Data.UploadDir, 0755); err != nil {
		log.Fatalf("Failed to create upload directory: %v", err)
	}

	// 初始化数据库并预置参考数据
	db, err := database.InitDB(cfg.Database.Type, cfg.Database.DSN)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	if err := service.InitCatalog(db); err != nil {
		log.Fatalf("Failed to seed catalog: %v", err)
	}

	// 初始化 Repository
	catalogRepo := repository.NewCatalogRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	roadmapRepo := repository.NewRoadmapRepository(db)
	artifactRepo := repository.NewArtifactRepository(db)
	fileRepo := repository.NewFileRepository(db)

	// 初始化 Service
	llmClient := llm.NewClient(cfg)
	hintProvider := recommend.NewLLMHintProvider(llmClient, cfg.LLM.HintTimeout)
	generator := roadmap.NewGenerator(db, projectRepo, catalogRepo, roadmapRepo)

	projectService := service.NewProjectService(projectRepo)
	frameworkService := service.NewFrameworkService(catalogRepo, hintProvider)
	roadmapService := service.NewRoadmapService(generator, catalogRepo, roadmapRepo, artifactRepo)
	fileService := service.NewFileService(
		cfg.Data.UploadDir,
		cfg.Classifier.AutoCreateThreshold,
		fileRepo, artifactRepo, catalogRepo, projectRepo,
		extractor.NewClient(cfg),
	)

	// 初始化 Handler
	projectHandler := handler.NewProjectHandler(projectService)
	frameworkHandler := handler.NewFrameworkHandler(frameworkService)
	roadmapHandler := handler.NewRoadmapHandler(roadmapService)
	uploadHandler := handler.NewUploadHandler(fileService)
	configHandler := handler.NewConfigHandler(cfg)

	// 设置路由
	r := router.Setup(cfg, projectHandler, frameworkHandler, roadmapHandler, uploadHandler, configHandler)

	log.Printf("Server starting on port %s...", cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
