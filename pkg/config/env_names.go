package config

// EnvPrefix is applied by envconfig on top of the explicit tags below.
const EnvPrefix = "SUPPLYSIM"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvAppEnv    = "SUPPLYSIM_APP_ENV"
	EnvPort      = "SUPPLYSIM_APP_PORT"
	EnvJWTSecret = "SUPPLYSIM_JWT_SECRET"
	EnvJWTIssuer = "SUPPLYSIM_JWT_ISSUER"

	EnvDBDSN  = "SUPPLYSIM_DB_DSN"
	EnvDBHost = "SUPPLYSIM_DB_HOST"
	EnvDBUser = "SUPPLYSIM_DB_USER"
	EnvDBName = "SUPPLYSIM_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
