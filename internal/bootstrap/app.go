package bootstrap

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"report-uploader/internal/form"
	"report-uploader/internal/remote"
	"report-uploader/internal/session"
	"report-uploader/internal/shared/config"
	"report-uploader/internal/shared/metrics"
	"report-uploader/internal/shared/server"
	"report-uploader/internal/webform"
)

// App holds shared dependencies for every front end.
type App struct {
	Config  config.Config
	Remote  *remote.Client
	Metrics *metrics.Metrics
	Session *session.Session
	Router  *gin.Engine
}

// Overrides replaces dependencies in tests.
type Overrides struct {
	Backend form.Backend
	Now     func() time.Time
	IDs     func() string
}

// Build prepares shared dependencies and the HTTP router.
func Build(cfg config.Config) (*App, error) {
	return BuildWith(cfg, Overrides{})
}

// BuildWith is Build with injectable dependencies.
func BuildWith(cfg config.Config, ov Overrides) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var opts []remote.Option
	if cfg.AuthToken != "" {
		opts = append(opts, remote.WithBearerToken(cfg.AuthToken))
	}
	client, err := remote.New(cfg.EndpointBase(), opts...)
	if err != nil {
		return nil, fmt.Errorf("build remote client: %w", err)
	}

	backend := ov.Backend
	if backend == nil {
		backend = client
	}

	m := metrics.New()
	sessOpts := []session.Option{session.WithMetrics(m)}
	if ov.IDs != nil {
		sessOpts = append(sessOpts, session.WithIDs(ov.IDs))
	}
	sess := session.New(backend, form.Options{Reporting: cfg.Reporting, Now: ov.Now}, sessOpts...)

	app := &App{
		Config:  cfg,
		Remote:  client,
		Metrics: m,
		Session: sess,
	}
	app.Router = server.NewRouter(server.RouterDeps{
		Config:      cfg,
		FormHandler: webform.NewHandler(sess),
		Metrics:     m,
	})
	return app, nil
}
