package config

// EnvPrefix is the envconfig namespace for all portal variables.
const EnvPrefix = "LOUNGECAST"

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

const (
	EnvAppEnv     = "LOUNGECAST_APP_ENV"
	EnvPort       = "LOUNGECAST_APP_PORT"
	EnvDBDSN      = "LOUNGECAST_DB_DSN"
	EnvDBHost     = "LOUNGECAST_DB_HOST"
	EnvDBUser     = "LOUNGECAST_DB_USER"
	EnvDBName     = "LOUNGECAST_DB_NAME"
	EnvRedisURL   = "LOUNGECAST_REDIS_URL"
	EnvJWTSecret  = "LOUNGECAST_JWT_SECRET"
	EnvJWTIssuer  = "LOUNGECAST_JWT_ISSUER"
	EnvJWTExpMins = "LOUNGECAST_JWT_EXPIRATION_MINUTES"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
