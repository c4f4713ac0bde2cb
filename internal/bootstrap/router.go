package bootstrap

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	httpapi "github.com/vannarellifabrizio-hash/ses-app/internal/api/http"
	reporthttp "github.com/vannarellifabrizio-hash/ses-app/internal/report/http"
	"github.com/vannarellifabrizio-hash/ses-app/internal/report/service"
	"github.com/vannarellifabrizio-hash/ses-app/internal/store"
)

type RouterDeps struct {
	ServiceName     string
	Version         string
	DB              *pgxpool.Pool
	Cache           *redis.Client
	Store           *store.Store
	Reports         *service.ReportService
	ExportPerMinute int
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.Default()
	r.Use(cors.Default())

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.DB, dep.Cache)
	healthHandler.RegisterRoutes(r)

	api := r.Group("/api/v1")

	var exportLimit gin.HandlerFunc
	if dep.ExportPerMinute > 0 {
		exportLimit = reporthttp.ExportRateLimit(dep.ExportPerMinute)
	}

	handler := reporthttp.NewHandler(dep.Reports, dep.Store.Projects, dep.Store.Profiles, dep.Store.Activities)
	handler.Register(api, exportLimit)

	return r
}
