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
	DB           DBConfig
	Redis        RedisConfig
	Gifts        GiftsConfig
	Media        MediaConfig
	Together     TogetherConfig
	FeatureFlags FeatureFlagsConfig
	Client       ClientConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ClientSettings is the subset of the configuration the CLI needs. It does
// not require any database settings.
type ClientSettings struct {
	Client ClientConfig
	Gifts  GiftsConfig
	Media  MediaConfig
}

func LoadClient() (*ClientSettings, error) {
	var cfg ClientSettings
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing client config: %w", err)
	}
	if strings.TrimSpace(cfg.Client.APIURL) == "" {
		return nil, fmt.Errorf("%s is required", EnvAPIURL)
	}
	if cfg.Gifts.MaxImageChars <= 0 {
		return nil, fmt.Errorf("%s must be positive", EnvMaxImageSize)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Gifts.MaxImageChars <= 0 {
		return fmt.Errorf("%s must be positive", EnvMaxImageSize)
	}
	if c.Media.ImageMaxWidth <= 0 {
		return fmt.Errorf("%s must be positive", EnvImageWidth)
	}
	if c.Media.ImageQuality < 1 || c.Media.ImageQuality > 100 {
		return fmt.Errorf("%s must be within 1..100", EnvImageQuality)
	}
	if _, err := c.Together.StartDate(); err != nil {
		return err
	}
	return nil
}

type AppConfig struct {
	Env          string        `envconfig:"WISHLIST_APP_ENV" default:"dev"`
	Port         string        `envconfig:"WISHLIST_APP_PORT" default:"5000"`
	LogLevel     string        `envconfig:"WISHLIST_LOG_LEVEL" default:"info"`
	LogWarnStack bool          `envconfig:"WISHLIST_LOG_WARN_STACK" default:"false"`
	APIPrefix    string        `envconfig:"WISHLIST_API_PREFIX" default:"/api"`
	CORSOrigins  []string      `envconfig:"WISHLIST_CORS_ORIGINS" default:"*"`
	ReadTimeout  time.Duration `envconfig:"WISHLIST_HTTP_READ_TIMEOUT" default:"30s"`
	WriteTimeout time.Duration `envconfig:"WISHLIST_HTTP_WRITE_TIMEOUT" default:"30s"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"WISHLIST_DB_DSN"`
	Driver string `envconfig:"WISHLIST_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"WISHLIST_DB_HOST"`
	LegacyPort     int    `envconfig:"WISHLIST_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"WISHLIST_DB_USER"`
	LegacyPassword string `envconfig:"WISHLIST_DB_PASSWORD"`
	LegacyName     string `envconfig:"WISHLIST_DB_NAME"`
	LegacySSLMode  string `envconfig:"WISHLIST_DB_SSLMODE" default:"require"`

	MaxOpenConns    int           `envconfig:"WISHLIST_DB_MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns    int           `envconfig:"WISHLIST_DB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `envconfig:"WISHLIST_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"WISHLIST_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

// IsSQLite reports whether the sqlite driver is selected.
func (db DBConfig) IsSQLite() bool {
	return strings.EqualFold(strings.TrimSpace(db.Driver), DriverSQLite)
}

// RedisConfig is optional; an empty URL and address disables redis-backed features.
type RedisConfig struct {
	URL          string        `envconfig:"WISHLIST_REDIS_URL"`
	Address      string        `envconfig:"WISHLIST_REDIS_ADDR"`
	Password     string        `envconfig:"WISHLIST_REDIS_PASSWORD"`
	DB           int           `envconfig:"WISHLIST_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"WISHLIST_REDIS_POOL_SIZE" default:"10"`
	DialTimeout  time.Duration `envconfig:"WISHLIST_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"WISHLIST_REDIS_READ_TIMEOUT" default:"3s"`
	WriteTimeout time.Duration `envconfig:"WISHLIST_REDIS_WRITE_TIMEOUT" default:"3s"`
	// IdempotencyTTL controls how long a replayable POST /gifts response is kept.
	IdempotencyTTL time.Duration `envconfig:"WISHLIST_REDIS_IDEMPOTENCY_TTL" default:"24h"`
}

func (r RedisConfig) Enabled() bool {
	return strings.TrimSpace(r.URL) != "" || strings.TrimSpace(r.Address) != ""
}

type GiftsConfig struct {
	MaxImageChars  int    `envconfig:"WISHLIST_GIFT_MAX_IMAGE_CHARS" default:"4500000"`
	PlaceholderURL string `envconfig:"WISHLIST_GIFT_PLACEHOLDER_URL" default:"https://placehold.co/150?text=Sem+Foto"`
}

// MaxBodyBytes is the request body cap for gift creation: the image ceiling
// plus headroom for the remaining JSON fields.
func (g GiftsConfig) MaxBodyBytes() int64 {
	return int64(g.MaxImageChars) + 64*1024
}

type MediaConfig struct {
	ImageMaxWidth int `envconfig:"WISHLIST_MEDIA_IMAGE_MAX_WIDTH" default:"600"`
	// ImageQuality is the JPEG quality on a 1..100 scale (50 == 0.5).
	ImageQuality  int   `envconfig:"WISHLIST_MEDIA_IMAGE_QUALITY" default:"50"`
	MaxInputBytes int64 `envconfig:"WISHLIST_MEDIA_MAX_INPUT_BYTES" default:"20971520"`
}

type TogetherConfig struct {
	Start string `envconfig:"WISHLIST_TOGETHER_START" default:"2025-09-13"`
}

// StartDate parses the configured start day in local time.
func (t TogetherConfig) StartDate() (time.Time, error) {
	parsed, err := time.ParseInLocation(time.DateOnly, strings.TrimSpace(t.Start), time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s must be YYYY-MM-DD: %w", EnvTogetherFrom, err)
	}
	return parsed, nil
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"WISHLIST_AUTO_MIGRATE" default:"false"`
}

// ClientConfig drives the wishlist CLI.
type ClientConfig struct {
	APIURL  string        `envconfig:"WISHLIST_API_URL" default:"http://localhost:5000/api"`
	Timeout time.Duration `envconfig:"WISHLIST_API_TIMEOUT" default:"30s"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}
	if db.IsSQLite() {
		return fmt.Errorf("%s is required for the sqlite driver", EnvDBDSN)
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
