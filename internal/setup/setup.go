package setup

import (
	"github.com/quizdeck-dev/quizdeck/internal/config"
	"github.com/quizdeck-dev/quizdeck/internal/handler"
	"github.com/quizdeck-dev/quizdeck/internal/jwt"
	"github.com/quizdeck-dev/quizdeck/internal/logger"
	"github.com/quizdeck-dev/quizdeck/internal/middleware"
	"github.com/quizdeck-dev/quizdeck/internal/service"
	"github.com/quizdeck-dev/quizdeck/internal/storage/pg"
)

// Dependencies holds everything the router and entrypoint need.
type Dependencies struct {
	Config         *config.Config
	Storage        *pg.Storage
	Subject        *service.ActivitySubject
	Handler        *handler.Handler
	AuthMiddleware *middleware.Auth
	Jwt            jwt.JwtService
}

// SetupDependencies initializes all dependencies required for the application.
// The activity subject is created here, once per process, and handed to
// everything that publishes events.
func SetupDependencies(cfg *config.Config) (*Dependencies, error) {
	storage, err := pg.New(cfg)
	if err != nil {
		return nil, err
	}

	subject := service.NewActivitySubject()
	subject.Attach(service.NewConsoleActivityLogger(logger.Log))
	subject.Attach(service.NewPersistentActivityLogger(storage))

	svc := &service.Services{
		Users:    service.NewUser(storage),
		Sets:     service.NewSet(storage),
		Cards:    service.NewCard(storage),
		Shares:   service.NewShare(storage),
		Activity: service.NewActivity(storage, cfg.Public.ActivityPageLimit),
		Subject:  subject,
	}

	jwtService := jwt.New(cfg.JwtKey(), cfg.JwtTTL())
	h := handler.New(svc, cfg, jwtService)
	authMw := middleware.NewAuth(jwtService, cfg.Public.SecureCookies)

	return &Dependencies{
		Config:         cfg,
		Storage:        storage,
		Subject:        subject,
		Handler:        h,
		AuthMiddleware: authMw,
		Jwt:            jwtService,
	}, nil
}

// Shutdown tears down process-wide resources in reverse order of setup.
func (d *Dependencies) Shutdown() error {
	d.Subject.DetachAll()
	return d.Storage.Cleanup()
}
