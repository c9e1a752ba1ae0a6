package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/swapnilyadv/CloneX/internal/api/http/middleware"
	"github.com/swapnilyadv/CloneX/internal/auth"
	authhttp "github.com/swapnilyadv/CloneX/internal/auth/http"
	authservice "github.com/swapnilyadv/CloneX/internal/auth/service"
	"github.com/swapnilyadv/CloneX/internal/composer"
	composerhttp "github.com/swapnilyadv/CloneX/internal/composer/http"
	"github.com/swapnilyadv/CloneX/internal/notify"
	notifyhttp "github.com/swapnilyadv/CloneX/internal/notify/http"
	projectshttp "github.com/swapnilyadv/CloneX/internal/projects/http"
	"github.com/swapnilyadv/CloneX/internal/projects/repository"
)

type V1Deps struct {
	Store       repository.Store
	Sessions    *composer.Sessions
	AuthService *authservice.AuthService
	// Authenticate resolves the user; every /api/v1 route runs behind it.
	Authenticate gin.HandlerFunc
	// Feed is nil when Redis is not configured.
	Feed *notify.RedisNotifier

	SubmitPerMinute int
	SubmitBurst     int
	// SubmitMaxKeys bounds how many users hold a submit bucket at once.
	SubmitMaxKeys int
}

func RegisterV1(r *gin.Engine, dep V1Deps) {
	api := r.Group("/api/v1")
	api.Use(dep.Authenticate)

	composerhttp.RegisterModels(api)

	limiter := middleware.NewKeyedLimiter(rate.Every(time.Minute/time.Duration(dep.SubmitPerMinute)), dep.SubmitBurst, dep.SubmitMaxKeys)
	composerhttp.New(dep.Sessions).Register(api.Group("/draft"), middleware.RateLimit(limiter, auth.UserFirebaseUID))

	projectshttp.New(dep.Store).Register(api.Group("/projects"))
	authhttp.New(dep.AuthService).Register(api.Group("/auth"))

	if dep.Feed != nil {
		notifyhttp.New(dep.Feed).Register(api.Group("/notifications"))
	}
}
