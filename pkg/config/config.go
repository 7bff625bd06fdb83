package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	HTTP         HTTPConfig
	DB           DBConfig
	JWT          JWTConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"STORESVC_APP_ENV" default:"dev"`
	Port         string `envconfig:"STORESVC_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"STORESVC_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"STORESVC_LOG_WARN_STACK" default:"false"`
}

type HTTPConfig struct {
	ReadTimeout     time.Duration `envconfig:"STORESVC_HTTP_READ_TIMEOUT" default:"10s"`
	WriteTimeout    time.Duration `envconfig:"STORESVC_HTTP_WRITE_TIMEOUT" default:"10s"`
	ShutdownTimeout time.Duration `envconfig:"STORESVC_HTTP_SHUTDOWN_TIMEOUT" default:"15s"`
	CORSOrigins     []string      `envconfig:"STORESVC_CORS_ORIGINS" default:"http://localhost:3000"`
}

type DBConfig struct {
	DSN    string `envconfig:"STORESVC_DB_DSN"`
	Driver string `envconfig:"STORESVC_DB_DRIVER" default:"postgres"`

	Host     string `envconfig:"STORESVC_DB_HOST"`
	Port     int    `envconfig:"STORESVC_DB_PORT" default:"5432"`
	User     string `envconfig:"STORESVC_DB_USER"`
	Password string `envconfig:"STORESVC_DB_PASSWORD"`
	Name     string `envconfig:"STORESVC_DB_NAME"`
	SSLMode  string `envconfig:"STORESVC_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"STORESVC_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"STORESVC_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"STORESVC_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"STORESVC_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

// IsSQLite reports whether the configured driver is the embedded SQLite one.
func (db DBConfig) IsSQLite() bool {
	return strings.EqualFold(strings.TrimSpace(db.Driver), DriverSQLite)
}

type JWTConfig struct {
	Secret            string `envconfig:"STORESVC_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"STORESVC_JWT_ISSUER"`
	ExpirationMinutes int    `envconfig:"STORESVC_JWT_EXPIRATION_MINUTES" default:"60"`
}

// Expiration returns the lifetime of minted access tokens.
func (j JWTConfig) Expiration() time.Duration {
	if j.ExpirationMinutes <= 0 {
		return 0
	}
	return time.Duration(j.ExpirationMinutes) * time.Minute
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"STORESVC_AUTO_MIGRATE" default:"true"`
}

func (db *DBConfig) ensureDSN() error {
	driver := strings.ToLower(strings.TrimSpace(db.Driver))
	switch driver {
	case DriverPostgres, DriverSQLite:
		db.Driver = driver
	default:
		return fmt.Errorf("unsupported %s %q (expected %s or %s)", EnvDBDriver, db.Driver, DriverPostgres, DriverSQLite)
	}

	if db.DSN != "" {
		return nil
	}

	if db.IsSQLite() {
		if db.Name == "" {
			return fmt.Errorf("either %s or %s is required for sqlite", EnvDBDSN, EnvDBName)
		}
		db.DSN = fmt.Sprintf("file:%s?_foreign_keys=on", db.Name)
		return nil
	}

	missing := []string{}
	partValues := map[string]string{
		EnvDBHost: db.Host,
		EnvDBUser: db.User,
		EnvDBName: db.Name,
	}
	for _, env := range dsnPartEnvVars {
		if partValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.User)
	if db.Password != "" {
		userInfo = url.UserPassword(db.User, db.Password)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.Host, db.Port),
		Path:   db.Name,
	}

	if db.SSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.SSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
