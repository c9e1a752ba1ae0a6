package bootstrap

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	httpapi "github.com/swapnilyadv/CloneX/internal/api/http"
	"github.com/swapnilyadv/CloneX/internal/api/http/middleware"
	"github.com/swapnilyadv/CloneX/internal/api/http/routes"
)

type RouterDeps struct {
	ServiceName    string
	Version        string
	Environment    string
	AllowedOrigins []string
	Health         *httpapi.HealthHandler
	V1             routes.V1Deps
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	if dep.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     dep.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.HeaderRequestID, "X-User-Id", "X-User-Email"},
		ExposeHeaders:    []string{middleware.HeaderRequestID, "Location"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	if dep.Health != nil {
		dep.Health.RegisterRoutes(r)
	}

	routes.RegisterV1(r, dep.V1)
	return r
}
