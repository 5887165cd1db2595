package server

import (
	"aerocode/internal/config"
	"aerocode/internal/handlers"
	"aerocode/internal/metrics"
	"aerocode/internal/middleware"
	"aerocode/internal/models"

	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func NewRouter(cfg *config.Config, logger *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	r.Use(middleware.RequestID())
	r.Use(middleware.RequestTimer(logger, m))
	r.Use(middleware.CORS())
	r.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/metrics"})))

	store := cookie.NewStore([]byte(cfg.Session.Secret))
	store.Options(sessions.Options{Path: "/", HttpOnly: true, MaxAge: 8 * 3600})
	r.Use(sessions.Sessions(cfg.Session.Name, store))
	r.Use(middleware.InjectEmployee())

	r.GET("/status", handlers.Status)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	// AUTH
	r.POST("/login", handlers.Login)
	r.POST("/logout", handlers.Logout)
	r.GET("/me", handlers.Me)

	// AERONAVES
	r.GET("/aeronaves", handlers.ListAircraft)
	r.POST("/aeronaves", handlers.CreateAircraft)
	r.GET("/aeronaves/:id", handlers.GetAircraft)
	r.PUT("/aeronaves/:id", handlers.UpdateAircraft)
	r.GET("/aeronaves/:id/relatorio", handlers.AircraftReport)

	// PEÇAS
	r.GET("/pecas", handlers.ListParts)
	r.POST("/pecas", handlers.CreatePart)
	r.GET("/pecas/:id", handlers.GetPart)
	r.PUT("/pecas/:id", handlers.UpdatePart)

	// ETAPAS
	r.GET("/etapas", handlers.ListStages)
	r.POST("/etapas", handlers.CreateStage)
	r.GET("/etapas/:id", handlers.GetStage)
	r.PUT("/etapas/:id", handlers.UpdateStage)
	r.PUT("/etapas/:id/status", handlers.UpdateStageStatus)

	// TESTES
	r.GET("/testes", handlers.ListTests)
	r.POST("/testes", handlers.CreateTest)
	r.GET("/testes/:id", handlers.GetTest)
	r.PUT("/testes/:id", handlers.UpdateTest)

	// FUNCIONÁRIOS
	r.GET("/funcionarios", handlers.ListEmployees)
	r.POST("/funcionarios", handlers.CreateEmployee)
	r.GET("/funcionarios/:id", handlers.GetEmployee)
	r.PUT("/funcionarios/:id", handlers.UpdateEmployee)

	// ASSOCIAÇÕES
	assoc := r.Group("/associacoes")
	assoc.POST("/peca", handlers.AssociatePart)
	assoc.POST("/etapa", handlers.AssociateStage)
	assoc.POST("/teste", handlers.AssociateTest)
	assoc.POST("/funcionario", handlers.AssociateEmployee)

	// AUDITORIA (admin, engenheiro)
	r.GET("/auditoria",
		middleware.RequireLevel(models.LevelAdmin, models.LevelEngineer),
		handlers.ListAuditLogs,
	)

	return r
}
