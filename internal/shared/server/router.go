package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"report-uploader/internal/shared/config"
	"report-uploader/internal/shared/metrics"
	"report-uploader/internal/shared/server/middleware"
	"report-uploader/internal/shared/server/respond"
	"report-uploader/internal/webform"
)

// RouterDeps are the handlers the router mounts.
type RouterDeps struct {
	Config      config.Config
	FormHandler *webform.Handler
	Metrics     *metrics.Metrics
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	if deps.Config.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.SetHTMLTemplate(webform.Templates())

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
	)

	r.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	if deps.Metrics != nil {
		r.GET("/metrics", deps.Metrics.Handler())
	}
	if deps.FormHandler != nil {
		deps.FormHandler.RegisterRoutes(r)
	}

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
