package login

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/vipulnarang95/django-cms/internal/auth"
	"github.com/vipulnarang95/django-cms/internal/config"
	"github.com/vipulnarang95/django-cms/internal/db/models"
	"github.com/vipulnarang95/django-cms/internal/web/handler/dashboard"
	websess "github.com/vipulnarang95/django-cms/internal/web/session"
)

// noOpViews is a minimal Fiber Views engine used for tests.
// It writes the "error" field from the provided fiber.Map (if any)
// so tests can assert error messages rendered by handlers.
type noOpViews struct{}

func (noOpViews) Load() error { return nil }

func (noOpViews) Render(w io.Writer, name string, data interface{}, _ ...string) error {
	if m, ok := data.(fiber.Map); ok {
		if v, exists := m["error"]; exists && v != nil {
			_, _ = io.WriteString(w, v.(string))
			return nil
		}
	}
	// write template name to have some content
	_, _ = io.WriteString(w, name)

	return nil
}

func newTestApp() *fiber.App {
	return fiber.New(fiber.Config{Views: noOpViews{}})
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite in-memory db: %v", err)
	}

	if err := db.AutoMigrate(&models.Role{}, &models.User{}); err != nil {
		t.Fatalf("failed to migrate models: %v", err)
	}

	return db
}

func newTestConfig() *config.Config {
	return &config.Config{
		DevMode: false,
		Title:   "CMS Admin",
		Webserver: config.Webserver{
			URL:     "http://localhost",
			Port:    3000,
			Session: config.Session{ExpiryTime: time.Minute},
		},
	}
}

// testStorage is a minimal in-memory session storage for tests.
type testStorage struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func (s *testStorage) Get(key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v := s.data[key]
	out := make([]byte, len(v))
	copy(out, v)

	return out, nil
}

func (s *testStorage) Set(key string, val []byte, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.data == nil {
		s.data = make(map[string][]byte)
	}

	buf := make([]byte, len(val))
	copy(buf, val)
	s.data[key] = buf

	return nil
}

func (s *testStorage) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.data, key)

	return nil
}

func (s *testStorage) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data = make(map[string][]byte)

	return nil
}

func (s *testStorage) Close() error { return nil }

func initSessionStore() {
	// Initialize a fresh in-memory session store for each test.
	websess.Init(&testStorage{data: make(map[string][]byte)})
}

func createUser(t *testing.T, db *gorm.DB, username, password string) {
	t.Helper()

	role := models.Role{Name: username + "-role"}
	if err := db.Create(&role).Error; err != nil {
		t.Fatalf("failed to create role: %v", err)
	}

	lp := auth.NewLocalProvider(db)
	if _, err := lp.CreateUser(username, username+"@example.com", password, "", "", role.ID); err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
}

func performPost(t *testing.T, app *fiber.App, target string, form url.Values) *http.Response {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test failed: %v", err)
	}

	return resp
}

func TestPost_Success_SetsCookieAndRedirects(t *testing.T) {
	db := newTestDB(t)
	cfg := newTestConfig()
	cfg.DevMode = false // Secure cookie expected

	app := newTestApp()

	initSessionStore()

	var s Service
	if err := s.Init(app, cfg, db); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	createUser(t, db, "bob", "s3cr3t")

	form := url.Values{
		"username": {"bob"},
		"password": {"s3cr3t"},
	}
	resp := performPost(t, app, Path+"/", form)

	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusFound {
		t.Fatalf("expected 302 Found, got %d", resp.StatusCode)
	}

	if loc := resp.Header.Get("Location"); loc != dashboard.Path {
		t.Fatalf("expected redirect to %s, got %s", dashboard.Path, loc)
	}

	setCookie := resp.Header.Get("Set-Cookie")
	if !strings.Contains(setCookie, "session=") {
		t.Fatalf("expected session cookie, got %q", setCookie)
	}

	if !strings.Contains(strings.ToLower(setCookie), "secure") {
		t.Fatalf("expected Secure flag on cookie when DevMode=false, got %q", setCookie)
	}
}

func TestPost_Success_DevModeDisablesSecure(t *testing.T) {
	db := newTestDB(t)
	cfg := newTestConfig()
	cfg.DevMode = true // Secure=false expected

	app := newTestApp()

	initSessionStore()

	var s Service
	if err := s.Init(app, cfg, db); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	createUser(t, db, "carol", "pass")

	form := url.Values{
		"username": {"carol"},
		"password": {"pass"},
	}
	resp := performPost(t, app, Path+"/", form)

	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusFound {
		t.Fatalf("expected 302 Found, got %d", resp.StatusCode)
	}

	setCookie := resp.Header.Get("Set-Cookie")
	if strings.Contains(strings.ToLower(setCookie), "secure") {
		t.Fatalf("did not expect Secure flag when DevMode=true, got %q", setCookie)
	}
}

func TestPost_InvalidCredentials_RendersError(t *testing.T) {
	db := newTestDB(t)
	cfg := newTestConfig()
	app := newTestApp()

	initSessionStore()

	var s Service
	if err := s.Init(app, cfg, db); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	createUser(t, db, "dave", "right")

	form := url.Values{
		"username": {"dave"},
		"password": {"wrong"},
	}
	resp := performPost(t, app, Path+"/", form)

	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 OK on render error page, got %d", resp.StatusCode)
	}

	bodyBytes, _ := io.ReadAll(resp.Body)

	if !strings.Contains(string(bodyBytes), ErrInvalidCredentials.Error()) {
		t.Fatalf("expected error message in body, got %q", string(bodyBytes))
	}
}

func TestPost_InvalidForm_RendersError(t *testing.T) {
	db := newTestDB(t)
	cfg := newTestConfig()
	app := newTestApp()

	initSessionStore()

	var s Service
	if err := s.Init(app, cfg, db); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	// Malformed JSON to force BodyParser error
	req := httptest.NewRequest(http.MethodPost, Path+"/", strings.NewReader("{"))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test failed: %v", err)
	}

	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 OK on render error page, got %d", resp.StatusCode)
	}

	bodyBytes, _ := io.ReadAll(resp.Body)

	if !strings.Contains(string(bodyBytes), ErrInvalidFormData.Error()) {
		t.Fatalf("expected error message in body, got %q", string(bodyBytes))
	}
}

func TestGet_RendersLoginTemplate(t *testing.T) {
	db := newTestDB(t)
	cfg := newTestConfig()
	app := newTestApp()

	initSessionStore()

	var s Service
	if err := s.Init(app, cfg, db); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, Path+"/", nil)

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test failed: %v", err)
	}

	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", resp.StatusCode)
	}

	bodyBytes, _ := io.ReadAll(resp.Body)

	if !strings.Contains(string(bodyBytes), TemplateName) {
		t.Fatalf("expected login template name in body, got %q", string(bodyBytes))
	}
}
