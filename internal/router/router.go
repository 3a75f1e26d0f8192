package router

import (
	"github.com/Lolek-Productions/liturgy-faith-sub000/config"
	"github.com/Lolek-Productions/liturgy-faith-sub000/internal/handler"
	"github.com/Lolek-Productions/liturgy-faith-sub000/internal/service"
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handlers 路由依赖的处理器集合
type Handlers struct {
	Parish   *handler.ParishHandler
	Petition *handler.PetitionHandler
	Template *handler.TemplateHandler
	Settings *handler.SettingsHandler
	Health   *handler.HealthHandler
}

func Setup(cfg *config.Config, parishes service.ParishService, h Handlers) *gin.Engine {
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	handler.RegisterValidators()

	r := gin.New()
	r.Use(gin.Recovery(), handler.RequestLogger())
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	r.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", handler.HeaderParishID, handler.HeaderRequestID},
		ExposeHeaders: []string{"Content-Length", handler.HeaderRequestID},
	}))

	r.GET("/healthz", h.Health.Healthz)
	if cfg.Metrics.Enabled {
		r.GET(cfg.Metrics.Path, gin.WrapH(promhttp.Handler()))
	}

	api := r.Group("/api")
	{
		h.Parish.RegisterRoutes(api)

		// 以下路由都需要 X-Parish-ID
		scoped := api.Group("", handler.ParishScope(parishes))
		h.Petition.RegisterRoutes(scoped)
		h.Template.RegisterRoutes(scoped)
		h.Settings.RegisterRoutes(scoped)
	}

	return r
}
