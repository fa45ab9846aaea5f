package login

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/vipulnarang95/django-cms/internal/auth"
	"github.com/vipulnarang95/django-cms/internal/config"
	"github.com/vipulnarang95/django-cms/internal/db/models"
	"github.com/vipulnarang95/django-cms/internal/web/handler"
	"github.com/vipulnarang95/django-cms/internal/web/handler/dashboard"
	"github.com/vipulnarang95/django-cms/internal/web/session"
)

const (
	// Path is the path to the login page.
	Path = "/login"

	// TemplateName is the name of the login template.
	TemplateName = "login"
)

// Service is the login handler service.
type Service struct {
	handler.Service
	cfg       *config.Config
	db        *gorm.DB
	localAuth *auth.LocalProvider
}

// Handler is the login handler.
var Handler = Service{}

// Init initializes the login handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB) error {
	if app == nil || cfg == nil || db == nil {
		return errors.New(handler.ErrNilACDFatalLogMsg)
	}

	s.db = db
	s.cfg = cfg
	s.localAuth = auth.NewLocalProvider(db)

	// register routes
	app.Route(Path, func(router fiber.Router) {
		router.Get(handler.RouterRootPath, s.Get)
		router.Post(handler.RouterRootPath, s.Post)
	})

	return nil
}

// Get handles the login page rendering.
func (s *Service) Get(c *fiber.Ctx) error {
	return c.Render(TemplateName, fiber.Map{
		"Title": s.cfg.Title,
	})
}

// Post handles the login form submission.
func (s *Service) Post(c *fiber.Ctx) error {
	form := new(models.User)

	if err := c.BodyParser(form); err != nil {
		return s.renderError(c, ErrInvalidFormData.Error())
	}

	user, err := s.localAuth.Authenticate(form.Username, form.Password)
	if err != nil {
		log.Warn().Err(err).Str("username", form.Username).Msg("login failed")
		return s.renderError(c, ErrInvalidCredentials.Error())
	}

	sessionID, err := session.GenerateSessionID()
	if err != nil {
		log.Error().Err(err).Msg("failed to generate session ID")
		return s.renderError(c, ErrInternalServerError.Error())
	}

	userSession := &session.Data{
		User: *user,
	}

	if err = userSession.Write(sessionID, s.cfg.Webserver.Session.ExpiryTime); err != nil {
		log.Error().Err(err).Msg("failed to write session")
		return s.renderError(c, ErrInternalServerError.Error())
	}

	// set login cookie
	cookieSettings := &fiber.Cookie{
		Name:     "session",
		Value:    sessionID,
		MaxAge:   int(s.cfg.Webserver.Session.ExpiryTime.Seconds()),
		Secure:   true,
		HTTPOnly: true,
		SameSite: "Lax",
	}

	if s.cfg.DevMode {
		cookieSettings.Secure = false
	}

	c.Cookie(cookieSettings)

	return c.Redirect(dashboard.Path)
}

func (s *Service) renderError(c *fiber.Ctx, message string) error {
	return c.Render(TemplateName, fiber.Map{
		"Title": s.cfg.Title,
		"error": message,
	})
}
