package config // package config loads application configuration from environment variables

import (
	"fmt"
	"os"
	"strings"

	"github.com/iliyamo/stagebook/internal/database"
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.
type Config struct {
	Env                  string // application environment (e.g. "dev", "prod")
	Port                 string // HTTP port to listen on
	DBDriver             string // "mysql" or "sqlite3"
	DBUser               string // database username
	DBPass               string // database password (optional)
	DBHost               string // database host address
	DBPort               string // database port number
	DBName               string // database name
	SQLitePath           string // database file when DBDriver is sqlite3
	FlashSecret          string // secret used to sign flash cookies
	LogLevel             string // zerolog level name
	AutoMigrate          bool   // apply pending migrations at startup
	ListingEventsEnabled bool   // publish and consume listing.created events
	RabbitMQURL          string // broker URL for listing events
	ListingLogPath       string // file the listing consumer appends to
}

// Load reads configuration values from environment variables.  Every
// missing required variable is reported in one error.
func Load() (Config, error) {
	var l loader
	cfg := Config{
		Env:                  l.must("APP_ENV"),
		Port:                 l.must("APP_PORT"),
		FlashSecret:          l.must("FLASH_SECRET"),
		LogLevel:             envStr("LOG_LEVEL", "info"),
		AutoMigrate:          envBool("AUTO_MIGRATE", false),
		ListingEventsEnabled: envBool("LISTING_EVENTS_ENABLED", false),
		RabbitMQURL:          envStr("RABBITMQ_URL", os.Getenv("AMQP_URL")),
		ListingLogPath:       envStr("LISTING_LOG_PATH", "logs/listing.log"),
	}
	if err := l.database(&cfg); err != nil {
		return Config{}, err
	}
	if err := l.err(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadDatabase reads only the DB_* variables.  The migrate command uses it
// so it can run without the server settings.
func LoadDatabase() (database.Options, error) {
	var l loader
	var cfg Config
	if err := l.database(&cfg); err != nil {
		return database.Options{}, err
	}
	if err := l.err(); err != nil {
		return database.Options{}, err
	}
	return cfg.Database(), nil
}

// Database returns the connection options for database.Open.
func (c Config) Database() database.Options {
	return database.Options{
		Driver: c.DBDriver,
		User:   c.DBUser,
		Pass:   c.DBPass,
		Host:   c.DBHost,
		Port:   c.DBPort,
		Name:   c.DBName,
		Path:   c.SQLitePath,
	}
}

// IsDev reports whether the application runs in a development environment.
func (c Config) IsDev() bool {
	return c.Env == "dev" || c.Env == "development" || c.Env == "local"
}

// loader collects the names of required variables that are unset.
type loader struct {
	missing []string
}

// must retrieves the value of a required environment variable, recording
// it as missing when unset or empty.
func (l *loader) must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		l.missing = append(l.missing, key)
	}
	return v
}

// database fills the DB_* fields.  mysql needs the connection variables;
// sqlite3 only a file path.
func (l *loader) database(cfg *Config) error {
	cfg.DBDriver = envStr("DB_DRIVER", database.MySQL)
	cfg.DBPass = os.Getenv("DB_PASS")
	switch cfg.DBDriver {
	case database.MySQL:
		cfg.DBUser = l.must("DB_USER")
		cfg.DBHost = l.must("DB_HOST")
		cfg.DBPort = l.must("DB_PORT")
		cfg.DBName = l.must("DB_NAME")
	case database.SQLite:
		cfg.SQLitePath = envStr("SQLITE_PATH", "stagebook.db")
	default:
		return fmt.Errorf("invalid DB_DRIVER %q: want mysql or sqlite3", cfg.DBDriver)
	}
	return nil
}

func (l *loader) err() error {
	if len(l.missing) == 0 {
		return nil
	}
	return fmt.Errorf("missing required env vars: %s", strings.Join(l.missing, ", "))
}
