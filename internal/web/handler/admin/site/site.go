// Package site provides the administrative handlers for managing sites.
package site

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/vipulnarang95/django-cms/internal/admin"
	"github.com/vipulnarang95/django-cms/internal/auth"
	"github.com/vipulnarang95/django-cms/internal/config"
	controller "github.com/vipulnarang95/django-cms/internal/db/controller/site"
	"github.com/vipulnarang95/django-cms/internal/db/models"
	"github.com/vipulnarang95/django-cms/internal/web/handler"
	"github.com/vipulnarang95/django-cms/internal/web/navigation"
)

const (
	// Name is the entity type slug used for registration and permissions.
	Name = "site"

	// Path is the path to the site list page.
	Path = "admin/site"

	// ListTemplate is the name of the list view template.
	ListTemplate = "admin/site/list"

	// FormTemplate is the name of the add/change form template.
	FormTemplate = "admin/site/form"
)

// Form carries the submitted add/change form fields.
type Form struct {
	Domain string `form:"domain" validate:"required,max=255"`
	Name   string `form:"name" validate:"max=100"`
}

// Service is the site admin handler service.
type Service struct {
	handler.Service
	cfg       *config.Config
	db        *gorm.DB
	validator *validator.Validate
}

// Handler is the site admin handler.
var Handler = Service{}

// Init initializes the handler and registers the entity type with its view
// descriptor.
func (s *Service) Init(
	app *fiber.App,
	cfg *config.Config,
	db *gorm.DB,
	authService *auth.Service,
	registry *admin.Registry,
) error {
	if app == nil || cfg == nil || db == nil || registry == nil {
		return errors.New(handler.ErrNilACDFatalLogMsg)
	}

	s.db = db
	s.cfg = cfg
	s.validator = validator.New()

	err := registry.Register(Name, "Sites", handler.RootPath+Path,
		&models.Site{},
		admin.Descriptor{
			ListDisplay:  []string{"domain", "name"},
			SearchFields: []string{"domain", "name"},
		},
	)
	if err != nil {
		return err
	}

	app.Route(handler.RootPath+Path, func(router fiber.Router) {
		router.Get(handler.RouterRootPath,
			auth.RequirePermission(authService, auth.PermSiteView), s.List)
		router.Get("/add",
			auth.RequirePermission(authService, auth.PermSiteAdd), s.AddForm)
		router.Post("/add",
			auth.RequirePermission(authService, auth.PermSiteAdd), s.AddSubmit)
		router.Get("/:id/change",
			auth.RequirePermission(authService, auth.PermSiteChange), s.ChangeForm)
		router.Post("/:id/change",
			auth.RequirePermission(authService, auth.PermSiteChange), s.ChangeSubmit)
		router.Post("/:id/delete",
			auth.RequirePermission(authService, auth.PermSiteDelete), s.Delete)
	})

	return nil
}

// List handles the site list rendering.
func (s *Service) List(c *fiber.Ctx) error {
	nav := s.navContext("Sites", true)

	sites, err := controller.GetAll(s.db)
	if err != nil {
		log.Error().Err(err).Msg("failed to list sites")
		return c.Status(fiber.StatusInternalServerError).SendString("Failed to load sites")
	}

	return c.Render(ListTemplate, fiber.Map{
		"Navigation": nav,
		"Sites":      sites,
	}, handler.BaseLayout)
}

// AddForm handles the add form rendering.
func (s *Service) AddForm(c *fiber.Ctx) error {
	return s.renderForm(c, &Form{}, 0, "")
}

// AddSubmit handles the add form submission.
func (s *Service) AddSubmit(c *fiber.Ctx) error {
	form := new(Form)

	if err := c.BodyParser(form); err != nil {
		log.Error().Err(err).Msg("failed to parse site form")
		return s.renderForm(c.Status(fiber.StatusBadRequest), form, 0, "Invalid form data")
	}

	if msg := s.validateForm(form); msg != "" {
		return s.renderForm(c.Status(fiber.StatusBadRequest), form, 0, msg)
	}

	site, err := controller.Create(s.db, form.Domain, form.Name)
	if err != nil {
		if errors.Is(err, controller.ErrSiteAlreadyExists) || errors.Is(err, controller.ErrSiteDomainEmpty) {
			return s.renderForm(c.Status(fiber.StatusBadRequest), form, 0, err.Error())
		}

		log.Error().Err(err).Msg("failed to create site")

		return s.renderForm(c.Status(fiber.StatusInternalServerError), form, 0, "Failed to create site")
	}

	log.Info().Uint64("id", site.ID).Str("domain", site.Domain).Msg("site created")

	return c.Redirect(handler.RootPath + Path)
}

// ChangeForm handles the change form rendering.
func (s *Service) ChangeForm(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return c.Status(fiber.StatusBadRequest).SendString("Invalid ID")
	}

	site, err := controller.Get(s.db, uint64(id))
	if err != nil {
		if errors.Is(err, controller.ErrSiteNotFound) {
			return c.Status(fiber.StatusNotFound).SendString("Site not found")
		}

		log.Error().Err(err).Int("id", id).Msg("failed to load site")

		return c.Status(fiber.StatusInternalServerError).SendString("Internal Server Error")
	}

	form := &Form{
		Domain: site.Domain,
		Name:   site.Name,
	}

	return s.renderForm(c, form, site.ID, "")
}

// ChangeSubmit handles the change form submission.
func (s *Service) ChangeSubmit(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return c.Status(fiber.StatusBadRequest).SendString("Invalid ID")
	}

	form := new(Form)

	if err := c.BodyParser(form); err != nil {
		log.Error().Err(err).Msg("failed to parse site form")
		return s.renderForm(c.Status(fiber.StatusBadRequest), form, uint64(id), "Invalid form data")
	}

	if msg := s.validateForm(form); msg != "" {
		return s.renderForm(c.Status(fiber.StatusBadRequest), form, uint64(id), msg)
	}

	site, err := controller.Update(s.db, uint64(id), form.Domain, form.Name)
	if err != nil {
		switch {
		case errors.Is(err, controller.ErrSiteNotFound):
			return c.Status(fiber.StatusNotFound).SendString("Site not found")
		case errors.Is(err, controller.ErrSiteDomainEmpty):
			return s.renderForm(c.Status(fiber.StatusBadRequest), form, uint64(id), err.Error())
		}

		log.Error().Err(err).Int("id", id).Msg("failed to update site")

		return s.renderForm(c.Status(fiber.StatusInternalServerError), form, uint64(id), "Failed to update site")
	}

	log.Info().Uint64("id", site.ID).Str("domain", site.Domain).Msg("site updated")

	return c.Redirect(handler.RootPath + Path)
}

// Delete handles site deletion. Placeholders scoped to the site are removed
// with it through the foreign key constraint.
func (s *Service) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return c.Status(fiber.StatusBadRequest).SendString("Invalid ID")
	}

	if err := controller.Delete(s.db, uint64(id)); err != nil {
		if errors.Is(err, controller.ErrSiteNotFound) {
			return c.Status(fiber.StatusNotFound).SendString("Site not found")
		}

		log.Error().Err(err).Int("id", id).Msg("failed to delete site")

		return c.Status(fiber.StatusInternalServerError).SendString("Internal Server Error")
	}

	log.Info().Int("id", id).Msg("site deleted")

	return c.Redirect(handler.RootPath + Path)
}

func (s *Service) navContext(title string, active bool) *navigation.Context {
	return navigation.NewContext(title, "admin", Name).
		AddBreadcrumb("Home", "/admin", false).
		AddBreadcrumb("Administration", "/admin", false).
		AddBreadcrumb("Sites", handler.RootPath+Path, active)
}

func (s *Service) validateForm(form *Form) string {
	if err := s.validator.Struct(form); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
			ve := validationErrors[0]
			return "Field '" + ve.Field() + "' failed validation tag '" + ve.Tag() + "'"
		}

		return "Invalid form data"
	}

	return ""
}

func (s *Service) renderForm(c *fiber.Ctx, form *Form, id uint64, errorMsg string) error {
	title := "Add site"
	if id != 0 {
		title = "Change site"
	}

	data := fiber.Map{
		"Navigation": s.navContext(title, false).AddBreadcrumb(title, "#", true),
		"Form":       form,
		"ID":         id,
	}

	if errorMsg != "" {
		data["Error"] = errorMsg
	}

	return c.Render(FormTemplate, data, handler.BaseLayout)
}
