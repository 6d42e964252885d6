package config

// EnvPrefix is passed to envconfig; the struct tags already carry the full
// RESTOPOS_ names so the prefix stays empty.
const EnvPrefix = ""

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

// Environment variable names shared between Load, its error messages and
// the test helpers.
const (
	EnvAppEnv     = "RESTOPOS_APP_ENV"
	EnvPort       = "RESTOPOS_APP_PORT"
	EnvDBDSN      = "RESTOPOS_DB_DSN"
	EnvDBHost     = "RESTOPOS_DB_HOST"
	EnvDBUser     = "RESTOPOS_DB_USER"
	EnvDBName     = "RESTOPOS_DB_NAME"
	EnvRedisURL   = "RESTOPOS_REDIS_URL"
	EnvJWTSecret  = "RESTOPOS_JWT_SECRET"
	EnvJWTIssuer  = "RESTOPOS_JWT_ISSUER"
	EnvJWTExpMins = "RESTOPOS_JWT_EXPIRATION_MINUTES"
)

// legacyDBEnvVars are the discrete connection vars accepted when no DSN is
// provided, mirroring the pre-DSN deployment layout.
var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
