// Package dsn provides Data Source Name construction utilities for database connections.
package dsn

import (
	"fmt"

	"github.com/vipulnarang95/django-cms/internal/config"
)

// Create builds the Data Source Name from the configuration for the
// configured GORM engine.
func Create(dbCfg *config.Config) string {
	if dbCfg.DB.GormEngine == config.GormEnginePostgres {
		return CreatePostgres(dbCfg)
	}

	return CreateMySQL(dbCfg)
}

// CreateMySQL builds a MySQL Data Source Name from the configuration.
func CreateMySQL(dbCfg *config.Config) string {
	out := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?%s",
		dbCfg.DB.User,
		dbCfg.DB.Password,
		dbCfg.DB.Host,
		dbCfg.DB.Port,
		dbCfg.DB.Name,
		dbCfg.DB.Extras,
	)

	return out
}

// CreatePostgres builds a PostgreSQL Data Source Name from the configuration.
func CreatePostgres(dbCfg *config.Config) string {
	out := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s %s",
		dbCfg.DB.Host,
		dbCfg.DB.Port,
		dbCfg.DB.User,
		dbCfg.DB.Password,
		dbCfg.DB.Name,
		dbCfg.DB.Extras,
	)

	return out
}
