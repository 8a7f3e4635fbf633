package config

const (
	EnvPrefix = "WISHLIST"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvAppEnv       = "WISHLIST_APP_ENV"
	EnvPort         = "WISHLIST_APP_PORT"
	EnvAPIPrefix    = "WISHLIST_API_PREFIX"
	EnvCORSOrigins  = "WISHLIST_CORS_ORIGINS"
	EnvDBDSN        = "WISHLIST_DB_DSN"
	EnvDBDriver     = "WISHLIST_DB_DRIVER"
	EnvDBHost       = "WISHLIST_DB_HOST"
	EnvDBPort       = "WISHLIST_DB_PORT"
	EnvDBUser       = "WISHLIST_DB_USER"
	EnvDBPassword   = "WISHLIST_DB_PASSWORD"
	EnvDBName       = "WISHLIST_DB_NAME"
	EnvDBSSLMode    = "WISHLIST_DB_SSLMODE"
	EnvRedisURL     = "WISHLIST_REDIS_URL"
	EnvMaxImageSize = "WISHLIST_GIFT_MAX_IMAGE_CHARS"
	EnvPlaceholder  = "WISHLIST_GIFT_PLACEHOLDER_URL"
	EnvImageWidth   = "WISHLIST_MEDIA_IMAGE_MAX_WIDTH"
	EnvImageQuality = "WISHLIST_MEDIA_IMAGE_QUALITY"
	EnvTogetherFrom = "WISHLIST_TOGETHER_START"
	EnvAutoMigrate  = "WISHLIST_AUTO_MIGRATE"
	EnvAPIURL       = "WISHLIST_API_URL"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	// DefaultMaxImageChars bounds the encoded image length accepted by both the
	// server and the client, leaving room under a 5MB request body.
	DefaultMaxImageChars = 4_500_000
	// DefaultPlaceholderURL is persisted for gifts created without a photo.
	DefaultPlaceholderURL = "https://placehold.co/150?text=Sem+Foto"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
