// Package dashboard provides the administrative index page listing the
// entity types that can be managed.
package dashboard

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/vipulnarang95/django-cms/internal/admin"
	"github.com/vipulnarang95/django-cms/internal/auth"
	"github.com/vipulnarang95/django-cms/internal/config"
	"github.com/vipulnarang95/django-cms/internal/web/handler"
	"github.com/vipulnarang95/django-cms/internal/web/navigation"
)

const (
	// Path is the path to the administrative index page.
	Path = handler.RootPath + "admin"

	// TemplateName is the name of the index template.
	TemplateName = "dashboard/dashboard"
)

// Section is one manageable entity type shown on the index page.
type Section struct {
	Label     string
	Path      string
	CanAdd    bool
	CanChange bool
}

// Service is the administrative index handler service.
type Service struct {
	handler.Service
	cfg         *config.Config
	db          *gorm.DB
	authService *auth.Service
	registry    *admin.Registry
}

// Handler is the administrative index handler.
var Handler = Service{}

// Init initializes the administrative index handler.
func (s *Service) Init(
	app *fiber.App,
	cfg *config.Config,
	db *gorm.DB,
	authService *auth.Service,
	registry *admin.Registry,
) {
	if app == nil || cfg == nil || db == nil || registry == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return
	}

	s.db = db
	s.cfg = cfg
	s.authService = authService
	s.registry = registry

	app.Get(Path,
		auth.RequirePermission(authService, auth.PermAdminIndex),
		s.Get,
	)
}

// Get handles the index page rendering. Only entity types the user may view
// are listed.
func (s *Service) Get(c *fiber.Ctx) error {
	nav := navigation.NewContext("Administration", "admin", "index").
		AddBreadcrumb("Home", Path, false).
		AddBreadcrumb("Administration", Path, true)

	sections := make([]Section, 0)

	for _, entry := range s.registry.Entries() {
		if !auth.HasPermissionInContext(c, s.authService, entry.Name+".view") {
			continue
		}

		sections = append(sections, Section{
			Label:     entry.Label,
			Path:      entry.Path,
			CanAdd:    auth.HasPermissionInContext(c, s.authService, entry.Name+".add"),
			CanChange: auth.HasPermissionInContext(c, s.authService, entry.Name+".change"),
		})
	}

	log.Debug().Int("sections", len(sections)).Msg("administrative index rendered")

	return c.Render(TemplateName, fiber.Map{
		"Navigation": nav,
		"Sections":   sections,
	}, handler.BaseLayout)
}
