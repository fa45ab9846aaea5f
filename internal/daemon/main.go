// Package daemon boots the application: database, migrations, seed data,
// session storage and the web service.
package daemon

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	sessionmemory "github.com/gofiber/storage/memory/v2"
	sessionmysql "github.com/gofiber/storage/mysql/v2"
	sessionpostgres "github.com/gofiber/storage/postgres/v3"
	"github.com/rs/zerolog/log"
	gormmysql "gorm.io/driver/mysql"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/vipulnarang95/django-cms/internal/config"
	"github.com/vipulnarang95/django-cms/internal/db/dsn"
	"github.com/vipulnarang95/django-cms/internal/db/models"
	"github.com/vipulnarang95/django-cms/internal/web"
	"github.com/vipulnarang95/django-cms/internal/web/session"
)

// Daemon represents the main application daemon.
type Daemon struct {
	cfg        *config.Config
	webService web.Service
}

// Start starts the Daemon's web service.
func (d *Daemon) Start() error {
	return d.webService.Start(fmt.Sprintf(":%d", d.cfg.Webserver.Port))
}

// New creates a new Daemon instance with the provided configuration.
func New(cfg *config.Config) *Daemon {
	if cfg == nil {
		log.Fatal().Msg("config is nil")
		return nil
	}

	db, err := gorm.Open(openDialector(cfg), &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}

	if err = db.AutoMigrate(
		&models.Site{},
		&models.StaticPlaceholder{},
		&models.Role{},
		&models.Permission{},
		&models.RolePermission{},
		&models.User{},
	); err != nil {
		panic("failed to migrate database")
	}

	seed(cfg, db)

	session.Init(newSessionStorage(cfg))

	return &Daemon{
		cfg:        cfg,
		webService: *web.New(cfg, db),
	}
}

// openDialector selects the GORM driver for the configured engine.
func openDialector(cfg *config.Config) gorm.Dialector {
	if cfg.DB.GormEngine == config.GormEnginePostgres {
		return gormpostgres.Open(dsn.Create(cfg))
	}

	return gormmysql.Open(dsn.Create(cfg))
}

// newSessionStorage creates the fiber session storage backend. In dev mode
// sessions live in memory; otherwise they are stored in the configured
// database so they survive restarts.
func newSessionStorage(cfg *config.Config) fiber.Storage {
	if cfg.DevMode {
		log.Warn().Msg("dev mode enabled: sessions are stored in memory")
		return sessionmemory.New()
	}

	if cfg.DB.GormEngine == config.GormEnginePostgres {
		return sessionpostgres.New(sessionpostgres.Config{
			ConnectionURI: dsn.Create(cfg),
			Table:         "sessions",
		})
	}

	return sessionmysql.New(sessionmysql.Config{
		ConnectionURI: dsn.Create(cfg),
		Table:         "sessions",
	})
}
