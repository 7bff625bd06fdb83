package config

// EnvPrefix is handed to envconfig; every field carries its full variable name.
const EnvPrefix = "STORESVC"

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

const (
	EnvAppEnv    = "STORESVC_APP_ENV"
	EnvPort      = "STORESVC_APP_PORT"
	EnvDBDSN     = "STORESVC_DB_DSN"
	EnvDBDriver  = "STORESVC_DB_DRIVER"
	EnvDBHost    = "STORESVC_DB_HOST"
	EnvDBPort    = "STORESVC_DB_PORT"
	EnvDBUser    = "STORESVC_DB_USER"
	EnvDBPass    = "STORESVC_DB_PASSWORD"
	EnvDBName    = "STORESVC_DB_NAME"
	EnvJWTSecret = "STORESVC_JWT_SECRET"
)

var dsnPartEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
