package main

import (
	"context"
	"flag"
	"log"
	"os"
	"path/filepath"

	"k8s.io/klog/v2"

	"github.com/Lolek-Productions/liturgy-faith-sub000/config"
	"github.com/Lolek-Productions/liturgy-faith-sub000/internal/eventbus"
	"github.com/Lolek-Productions/liturgy-faith-sub000/internal/handler"
	"github.com/Lolek-Productions/liturgy-faith-sub000/internal/pkg/cache"
	"github.com/Lolek-Productions/liturgy-faith-sub000/internal/pkg/database"
	"github.com/Lolek-Productions/liturgy-faith-sub000/internal/pkg/llm"
	"github.com/Lolek-Productions/liturgy-faith-sub000/internal/repository"
	"github.com/Lolek-Productions/liturgy-faith-sub000/internal/router"
	"github.com/Lolek-Productions/liturgy-faith-sub000/internal/service"
	"github.com/Lolek-Productions/liturgy-faith-sub000/internal/service/petitiongen"
	"github.com/Lolek-Productions/liturgy-faith-sub000/internal/subscriber"
)

func main() {
	// 初始化 klog
	klog.InitFlags(nil)
	flag.Parse()
	defer klog.Flush()

	klog.V(6).Info("服务启动中...")

	cfg := config.GetConfig()

	if cfg.Database.Type == "" || cfg.Database.Type == "sqlite" {
		if err := os.MkdirAll(filepath.Dir(cfg.Database.DSN), 0755); err != nil {
			log.Fatalf("Failed to create data directory: %v", err)
		}
	}

	// 初始化数据库
	db, err := database.InitDB(cfg.Database.Type, cfg.Database.DSN)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	promptCache, err := cache.New(context.Background(), cfg)
	if err != nil {
		klog.Warningf("Redis 不可用，禁用缓存: %v", err)
		promptCache = cache.Noop{}
	}

	if cfg.LLM.APIKey == "" {
		klog.Warningf("未配置 LLM API Key，所有祈祷意向将使用回退内容")
	}

	// 初始化 Repository
	parishRepo := repository.NewParishRepository(db)
	petitionRepo := repository.NewPetitionRepository(db)
	templateRepo := repository.NewPetitionTemplateRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	logRepo := repository.NewGenerationLogRepository(db)

	// 初始化事件总线
	bus := eventbus.NewPetitionEventBus()
	subscriber.NewGenerationSubscriber(logRepo).Register(bus)

	// 初始化 Service
	settingsService := service.NewSettingsService(settingsRepo, promptCache)
	llmClient, err := llm.NewClient(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize LLM client: %v", err)
	}
	generator := petitiongen.New(llmClient, templateRepo, settingsService, cfg.LLM.Timeout)
	parishService := service.NewParishService(parishRepo, templateRepo)
	petitionService := service.NewPetitionService(petitionRepo, templateRepo, logRepo, generator, bus)
	templateService := service.NewTemplateService(templateRepo)

	// 初始化 Handler
	handlers := router.Handlers{
		Parish:   handler.NewParishHandler(parishService),
		Petition: handler.NewPetitionHandler(petitionService),
		Template: handler.NewTemplateHandler(templateService),
		Settings: handler.NewSettingsHandler(settingsService),
		Health:   handler.NewHealthHandler(db),
	}

	// 设置路由
	r := router.Setup(cfg, parishService, handlers)

	log.Printf("Server starting on port %s...", cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
