// Package staticplaceholder provides the administrative handlers for
// managing static placeholders: a searchable, filterable list view plus
// add, change and delete forms.
package staticplaceholder

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/vipulnarang95/django-cms/internal/admin"
	"github.com/vipulnarang95/django-cms/internal/auth"
	"github.com/vipulnarang95/django-cms/internal/config"
	sitecontroller "github.com/vipulnarang95/django-cms/internal/db/controller/site"
	controller "github.com/vipulnarang95/django-cms/internal/db/controller/staticplaceholder"
	"github.com/vipulnarang95/django-cms/internal/db/models"
	"github.com/vipulnarang95/django-cms/internal/web/handler"
	"github.com/vipulnarang95/django-cms/internal/web/navigation"
)

const (
	// Name is the entity type slug used for registration and permissions.
	Name = "staticplaceholder"

	// Path is the path to the static placeholder list page.
	Path = "admin/staticplaceholder"

	// ListTemplate is the name of the list view template.
	ListTemplate = "admin/staticplaceholder/list"

	// FormTemplate is the name of the add/change form template.
	FormTemplate = "admin/staticplaceholder/form"
)

// Service is the static placeholder admin handler service.
type Service struct {
	handler.Service
	cfg       *config.Config
	db        *gorm.DB
	validator *validator.Validate
	registry  *admin.Registry
}

// Handler is the static placeholder admin handler.
var Handler = Service{}

// Init initializes the handler and registers the entity type with its view
// descriptor. A descriptor referencing an unknown field makes Init fail, so
// a misconfiguration is caught at startup.
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
	s.registry = registry

	err := registry.Register(Name, "Static placeholders", handler.RootPath+Path,
		&models.StaticPlaceholder{},
		admin.Descriptor{
			ListDisplay:  []string{"get_name", "code", "site", "creation_method"},
			SearchFields: []string{"name", "code"},
			Exclude:      []string{"creation_method"},
			ListFilter:   []string{"creation_method", "site"},
		},
	)
	if err != nil {
		return err
	}

	// register routes with permission checks
	app.Route(handler.RootPath+Path, func(router fiber.Router) {
		router.Get(handler.RouterRootPath,
			auth.RequirePermission(authService, auth.PermPlaceholderView), s.List)
		router.Get("/add",
			auth.RequirePermission(authService, auth.PermPlaceholderAdd), s.AddForm)
		router.Post("/add",
			auth.RequirePermission(authService, auth.PermPlaceholderAdd), s.AddSubmit)
		router.Get("/:id/change",
			auth.RequirePermission(authService, auth.PermPlaceholderChange), s.ChangeForm)
		router.Post("/:id/change",
			auth.RequirePermission(authService, auth.PermPlaceholderChange), s.ChangeSubmit)
		router.Post("/:id/delete",
			auth.RequirePermission(authService, auth.PermPlaceholderDelete), s.Delete)
	})

	return nil
}

// List handles the list view: keyword search over the searchable fields,
// exact facet filters, sorting and pagination.
func (s *Service) List(c *fiber.Ctx) error {
	nav := s.navContext("Static placeholders", true)

	params := controller.ListParams{
		Search:         c.Query("q", ""),
		CreationMethod: c.Query("creation_method", ""),
		SiteID:         uint64(c.QueryInt("site", 0)),
		Page:           c.QueryInt("page", 1),
		PageSize:       c.QueryInt("pageSize", controller.DefaultPageSize),
		SortField:      c.Query("sort", "code"),
		SortOrder:      c.Query("order", "asc"),
	}

	result, err := controller.List(s.db, params)
	if err != nil {
		log.Error().Err(err).Msg("failed to list static placeholders")
		return c.Status(fiber.StatusInternalServerError).SendString("Failed to load placeholders")
	}

	descriptor, err := s.registry.Descriptor(Name)
	if err != nil {
		log.Error().Err(err).Msg("descriptor lookup failed")
		return c.Status(fiber.StatusInternalServerError).SendString("Internal Server Error")
	}

	rows := make([]Row, 0, len(result.Items))
	for i := range result.Items {
		rows = append(rows, buildRow(&result.Items[i], descriptor.ListDisplay))
	}

	sites, err := sitecontroller.GetAll(s.db)
	if err != nil {
		log.Error().Err(err).Msg("failed to load sites for filter facet")
		return c.Status(fiber.StatusInternalServerError).SendString("Failed to load sites")
	}

	log.Debug().
		Int64("total", result.TotalItems).
		Int("page", result.Page).
		Str("search", params.Search).
		Str("creation_method", params.CreationMethod).
		Uint64("site", params.SiteID).
		Msg("static placeholder list rendered")

	return c.Render(ListTemplate, fiber.Map{
		"Navigation":      nav,
		"Columns":         descriptor.ListDisplay,
		"Rows":            rows,
		"Page":            result.Page,
		"PageSize":        result.PageSize,
		"TotalItems":      result.TotalItems,
		"TotalPages":      result.TotalPages,
		"HasPrevPage":     result.Page > 1,
		"HasNextPage":     result.Page < result.TotalPages,
		"PrevPage":        result.Page - 1,
		"NextPage":        result.Page + 1,
		"Search":          params.Search,
		"CreationMethod":  params.CreationMethod,
		"SiteID":          params.SiteID,
		"SortField":       params.SortField,
		"SortOrder":       params.SortOrder,
		"Sites":           sites,
		"CreationMethods": models.CreationMethods(),
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
		log.Error().Err(err).Msg("failed to parse placeholder form")
		return s.renderForm(c.Status(fiber.StatusBadRequest), form, 0, "Invalid form data")
	}

	siteID, err := parseSiteID(c)
	if err != nil {
		return s.renderForm(c.Status(fiber.StatusBadRequest), form, 0, "Invalid site")
	}

	form.SiteID = siteID

	if msg := s.validateForm(form); msg != "" {
		return s.renderForm(c.Status(fiber.StatusBadRequest), form, 0, msg)
	}

	placeholder, err := controller.Create(s.db, form.Name, form.Code, form.SiteID)
	if err != nil {
		if errors.Is(err, controller.ErrCodeTaken) {
			return s.renderForm(c.Status(fiber.StatusBadRequest), form, 0, err.Error())
		}

		log.Error().Err(err).Msg("failed to create static placeholder")

		return s.renderForm(c.Status(fiber.StatusInternalServerError), form, 0, "Failed to create placeholder")
	}

	log.Info().Uint64("id", placeholder.ID).Str("code", placeholder.Code).
		Msg("static placeholder created")

	return c.Redirect(handler.RootPath + Path)
}

// ChangeForm handles the change form rendering.
func (s *Service) ChangeForm(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return c.Status(fiber.StatusBadRequest).SendString("Invalid ID")
	}

	placeholder, err := controller.Get(s.db, uint64(id))
	if err != nil {
		if errors.Is(err, controller.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).SendString("Placeholder not found")
		}

		log.Error().Err(err).Int("id", id).Msg("failed to load static placeholder")

		return c.Status(fiber.StatusInternalServerError).SendString("Internal Server Error")
	}

	form := &Form{
		Name:   placeholder.Name,
		Code:   placeholder.Code,
		SiteID: placeholder.SiteID,
	}

	return s.renderForm(c, form, placeholder.ID, "")
}

// ChangeSubmit handles the change form submission. Only the editable fields
// reach the controller; the creation method keeps its stored value.
func (s *Service) ChangeSubmit(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return c.Status(fiber.StatusBadRequest).SendString("Invalid ID")
	}

	form := new(Form)

	if err := c.BodyParser(form); err != nil {
		log.Error().Err(err).Msg("failed to parse placeholder form")
		return s.renderForm(c.Status(fiber.StatusBadRequest), form, uint64(id), "Invalid form data")
	}

	siteID, err := parseSiteID(c)
	if err != nil {
		return s.renderForm(c.Status(fiber.StatusBadRequest), form, uint64(id), "Invalid site")
	}

	form.SiteID = siteID

	if msg := s.validateForm(form); msg != "" {
		return s.renderForm(c.Status(fiber.StatusBadRequest), form, uint64(id), msg)
	}

	placeholder, err := controller.Update(s.db, uint64(id), form.Name, form.Code, form.SiteID)
	if err != nil {
		switch {
		case errors.Is(err, controller.ErrNotFound):
			return c.Status(fiber.StatusNotFound).SendString("Placeholder not found")
		case errors.Is(err, controller.ErrCodeTaken):
			return s.renderForm(c.Status(fiber.StatusBadRequest), form, uint64(id), err.Error())
		}

		log.Error().Err(err).Int("id", id).Msg("failed to update static placeholder")

		return s.renderForm(c.Status(fiber.StatusInternalServerError), form, uint64(id), "Failed to update placeholder")
	}

	log.Info().Uint64("id", placeholder.ID).Str("code", placeholder.Code).
		Msg("static placeholder updated")

	return c.Redirect(handler.RootPath + Path)
}

// Delete handles placeholder deletion.
func (s *Service) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return c.Status(fiber.StatusBadRequest).SendString("Invalid ID")
	}

	if err := controller.Delete(s.db, uint64(id)); err != nil {
		if errors.Is(err, controller.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).SendString("Placeholder not found")
		}

		log.Error().Err(err).Int("id", id).Msg("failed to delete static placeholder")

		return c.Status(fiber.StatusInternalServerError).SendString("Internal Server Error")
	}

	log.Info().Int("id", id).Msg("static placeholder deleted")

	return c.Redirect(handler.RootPath + Path)
}

func (s *Service) navContext(title string, active bool) *navigation.Context {
	return navigation.NewContext(title, "admin", Name).
		AddBreadcrumb("Home", "/admin", false).
		AddBreadcrumb("Administration", "/admin", false).
		AddBreadcrumb("Static placeholders", handler.RootPath+Path, active)
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
	title := "Add static placeholder"
	if id != 0 {
		title = "Change static placeholder"
	}

	sites, err := sitecontroller.GetAll(s.db)
	if err != nil {
		log.Error().Err(err).Msg("failed to load sites for form")
		return c.Status(fiber.StatusInternalServerError).SendString("Failed to load sites")
	}

	data := fiber.Map{
		"Navigation": s.navContext(title, false).AddBreadcrumb(title, "#", true),
		"Form":       form,
		"ID":         id,
		"Sites":      sites,
	}

	if errorMsg != "" {
		data["Error"] = errorMsg
	}

	return c.Render(FormTemplate, data, handler.BaseLayout)
}

// parseSiteID reads the optional site_id form value. An empty value means
// the placeholder is shared across all sites.
func parseSiteID(c *fiber.Ctx) (*uint64, error) {
	raw := c.FormValue("site_id")
	if raw == "" {
		return nil, nil
	}

	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return nil, err
	}

	return &id, nil
}

// buildRow resolves the display value of every list column for one record.
func buildRow(p *models.StaticPlaceholder, columns []string) Row {
	values := make([]string, 0, len(columns))

	for _, column := range columns {
		switch column {
		case "get_name":
			values = append(values, p.GetName())
		case "name":
			values = append(values, p.Name)
		case "code":
			values = append(values, p.Code)
		case "site":
			values = append(values, p.Site.String())
		case "creation_method":
			values = append(values, string(p.CreationMethod))
		case "id":
			values = append(values, fmt.Sprintf("%d", p.ID))
		default:
			values = append(values, "")
		}
	}

	return Row{ID: p.ID, Columns: values}
}
