package config

// EnvPrefix scopes every environment variable the service reads.
const EnvPrefix = "PRINTCRAFT"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvDBDSN  = "PRINTCRAFT_DB_DSN"
	EnvDBHost = "PRINTCRAFT_DB_HOST"
	EnvDBUser = "PRINTCRAFT_DB_USER"
	EnvDBName = "PRINTCRAFT_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
