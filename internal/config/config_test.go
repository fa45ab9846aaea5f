package config

import (
	"path/filepath"
	"testing"
)

func TestReadConfig(t *testing.T) {
	var (
		err         error
		projectRoot string
	)

	// Get the project root by going up from internal/config
	projectRoot, err = filepath.Abs("../../")
	if err != nil {
		t.Fatalf("failed to get project root: %v", err)
	}

	configPath := filepath.Join(projectRoot, "etc") + string(filepath.Separator)

	var cfg Config

	cfg, err = ReadConfig(configPath)
	if err != nil {
		t.Fatalf("ReadConfig() error = %v", err)
	}

	// Test basic config fields
	if cfg.Title == "" {
		t.Error("Config.Title should not be empty")
	}

	if cfg.Webserver.Port == 0 {
		t.Error("Webserver.Port should not be 0")
	}

	if cfg.Webserver.URL == "" {
		t.Error("Webserver.URL should not be empty")
	}

	// Test DB config
	if cfg.DB.Host == "" {
		t.Error("DB.Host should not be empty")
	}

	if cfg.DB.GormEngine != GormEngineMySQL && cfg.DB.GormEngine != GormEnginePostgres {
		t.Errorf("DB.GormEngine = %q, want mysql or postgres", cfg.DB.GormEngine)
	}
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		name    string
		cfg     Config
		wantErr error
	}{
		{
			name:    "missing port",
			cfg:     Config{Webserver: Webserver{URL: "http://localhost"}},
			wantErr: ErrWebServerPortCanNotBeZero,
		},
		{
			name:    "missing url",
			cfg:     Config{Webserver: Webserver{Port: 8080}},
			wantErr: ErrEmptyURL,
		},
		{
			name: "valid",
			cfg:  Config{Webserver: Webserver{Port: 8080, URL: "http://localhost"}},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := validate(tc.cfg)

			if tc.wantErr == nil {
				if err != nil {
					t.Fatalf("validate() error = %v, want nil", err)
				}

				return
			}

			if err == nil {
				t.Fatalf("validate() error = nil, want %v", tc.wantErr)
			}
		})
	}
}
