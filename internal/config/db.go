package config

// Supported GORM engines.
const (
	// GormEngineMySQL selects the MySQL driver.
	GormEngineMySQL = "mysql"
	// GormEnginePostgres selects the PostgreSQL driver.
	GormEnginePostgres = "postgres"
)

// DB holds the database configuration settings.
type DB struct {
	Extras     string
	Host       string
	Port       int
	User       string
	Password   string
	Name       string
	GormEngine string
}
